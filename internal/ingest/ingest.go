// Package ingest turns raw roster payloads into canonical records: it
// normalizes each payload, drops stale deliveries and re-serializes the
// domain record into its canonical wire form.
package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/tidwall/gjson"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"roster/internal/ingest/metrics"
	"roster/internal/ingest/watermark"
	"roster/internal/roster/normalize"
	dErrors "roster/pkg/domain-errors"
)

// Entity names a roster record kind.
type Entity string

const (
	EntityClass       Entity = "class"
	EntityDemographic Entity = "demographic"
	EntitySession     Entity = "session"
)

// Entities lists every supported entity.
func Entities() []Entity {
	return []Entity{EntityClass, EntityDemographic, EntitySession}
}

// ParseEntity accepts the entity names used in routes and topic bindings.
func ParseEntity(s string) (Entity, error) {
	for _, e := range Entities() {
		if string(e) == s {
			return e, nil
		}
	}
	return "", dErrors.Newf(dErrors.CodeNotFound, "unknown entity %q", s)
}

// Record is one raw payload awaiting normalization.
type Record struct {
	Entity  Entity
	Payload []byte
}

// Result is a normalized record. Skipped is set when a newer version of the
// record was already accepted; Canonical is still populated.
type Result struct {
	Entity    Entity          `json:"entity"`
	SourcedID string          `json:"sourcedId"`
	Modified  time.Time       `json:"dateLastModified"`
	Canonical json.RawMessage `json:"record"`
	Skipped   bool            `json:"skipped,omitempty"`
}

// Outcome pairs a batch entry with its result or error.
type Outcome struct {
	Result *Result
	Err    error
}

const defaultWorkers = 8

// Pipeline normalizes records. The zero value is not usable; build one with New.
type Pipeline struct {
	logger     *slog.Logger
	metrics    *metrics.Metrics
	watermarks watermark.Store
	tracer     trace.Tracer
	workers    int
}

// Option configures a Pipeline.
type Option func(*Pipeline)

func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) { p.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(p *Pipeline) { p.metrics = m }
}

// WithWatermarks enables stale-delivery detection. The pipeline only reads
// marks; whoever delivers the result commits it.
func WithWatermarks(store watermark.Store) Option {
	return func(p *Pipeline) { p.watermarks = store }
}

func WithTracer(tracer trace.Tracer) Option {
	return func(p *Pipeline) { p.tracer = tracer }
}

// WithWorkers bounds ProcessBatch concurrency. Values below 1 are ignored.
func WithWorkers(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.workers = n
		}
	}
}

func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		logger:  slog.Default(),
		tracer:  otel.Tracer("roster/ingest"),
		workers: defaultWorkers,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process normalizes one record. Validation failures come back as coded
// dErrors; watermark outages wrap sentinel.ErrUnavailable.
func (p *Pipeline) Process(ctx context.Context, rec Record) (*Result, error) {
	ctx, span := p.tracer.Start(ctx, "ingest.Process",
		trace.WithAttributes(attribute.String("roster.entity", string(rec.Entity))))
	defer span.End()

	start := time.Now()
	res, err := p.normalize(rec)
	if p.metrics != nil {
		p.metrics.ObserveNormalizeDuration(string(rec.Entity), time.Since(start).Seconds())
	}
	if err != nil {
		code := dErrors.CodeOf(err)
		span.RecordError(err)
		span.SetStatus(codes.Error, string(code))
		if p.metrics != nil {
			p.metrics.IncrementRejected(string(rec.Entity), string(code))
		}
		p.logger.WarnContext(ctx, "record rejected",
			"entity", rec.Entity,
			"sourced_id", gjson.GetBytes(rec.Payload, "sourcedId").String(),
			"field", dErrors.FieldOf(err),
			"code", code,
			"error", err,
		)
		return nil, err
	}
	span.SetAttributes(attribute.String("roster.sourced_id", res.SourcedID))

	if p.watermarks != nil {
		fresh, err := p.watermarks.IsFresh(ctx, watermark.Key{Entity: string(rec.Entity), SourcedID: res.SourcedID}, res.Modified)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "watermark")
			return nil, err
		}
		if !fresh {
			res.Skipped = true
			if p.metrics != nil {
				p.metrics.IncrementSkipped(string(rec.Entity))
			}
			p.logger.DebugContext(ctx, "stale record skipped",
				"entity", rec.Entity,
				"sourced_id", res.SourcedID,
				"date_last_modified", res.Modified,
			)
			return res, nil
		}
	}

	if p.metrics != nil {
		p.metrics.IncrementNormalized(string(rec.Entity))
	}
	return res, nil
}

// ProcessBatch normalizes records concurrently. A failing record never
// affects another; the returned error is only set when ctx ends first.
func (p *Pipeline) ProcessBatch(ctx context.Context, recs []Record) ([]Outcome, error) {
	out := make([]Outcome, len(recs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for i, rec := range recs {
		i, rec := i, rec
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := p.Process(gctx, rec)
			out[i] = Outcome{Result: res, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return out, fmt.Errorf("batch interrupted: %w", err)
	}
	return out, nil
}

func (p *Pipeline) normalize(rec Record) (*Result, error) {
	switch rec.Entity {
	case EntityClass:
		c, err := normalize.ParseClass(rec.Payload)
		if err != nil {
			return nil, err
		}
		return encode(rec.Entity, c.ID.String(), c.Modified, normalize.ClassToWire(c))
	case EntityDemographic:
		d, err := normalize.ParseDemographic(rec.Payload)
		if err != nil {
			return nil, err
		}
		return encode(rec.Entity, d.ID.String(), d.Modified, normalize.DemographicToWire(d))
	case EntitySession:
		s, err := normalize.ParseSession(rec.Payload)
		if err != nil {
			return nil, err
		}
		return encode(rec.Entity, s.ID.String(), s.Modified, normalize.SessionToWire(s))
	}
	return nil, dErrors.Newf(dErrors.CodeNotFound, "unknown entity %q", rec.Entity)
}

func encode(entity Entity, sourcedID string, modified time.Time, wireRecord any) (*Result, error) {
	body, err := json.Marshal(wireRecord)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "encode canonical record")
	}
	return &Result{
		Entity:    entity,
		SourcedID: sourcedID,
		Modified:  modified,
		Canonical: body,
	}, nil
}
