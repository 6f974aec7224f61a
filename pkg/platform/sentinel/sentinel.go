package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores, brokers and sinks return
// these (optionally wrapped) so callers can tell a retryable outage apart from
// a record that will never normalize.
//
// For record validation failures, use pkg/domain-errors directly.
var (
	// ErrUnavailable: a backing service (Redis, Kafka) could not be reached.
	ErrUnavailable = errors.New("unavailable")
)
