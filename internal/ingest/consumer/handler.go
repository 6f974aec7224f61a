package consumer

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Sink,Processor

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"roster/internal/ingest"
	"roster/internal/ingest/watermark"
	"roster/internal/platform/kafka"
	"roster/pkg/platform/sentinel"
)

// Sink receives canonical records.
type Sink interface {
	Publish(ctx context.Context, res *ingest.Result) error
}

// Processor normalizes one record; *ingest.Pipeline satisfies it.
type Processor interface {
	Process(ctx context.Context, rec ingest.Record) (*ingest.Result, error)
}

// RecordHandler normalizes messages of one entity and forwards the canonical
// form to a Sink. Records that fail validation are logged by the pipeline and
// acknowledged; only infrastructure failures are returned for retry.
//
// When marks is set the record's watermark is committed only after the sink
// accepts it, so a failed publish is retried instead of being seen as stale.
type RecordHandler struct {
	entity    ingest.Entity
	processor Processor
	sink      Sink
	marks     watermark.Store
	logger    *slog.Logger
}

func NewRecordHandler(entity ingest.Entity, processor Processor, sink Sink, marks watermark.Store, logger *slog.Logger) (*RecordHandler, error) {
	if processor == nil {
		return nil, errors.New("processor is required")
	}
	if sink == nil {
		return nil, errors.New("sink is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RecordHandler{entity: entity, processor: processor, sink: sink, marks: marks, logger: logger}, nil
}

func (h *RecordHandler) Handle(ctx context.Context, msg *kafka.Message) error {
	res, err := h.processor.Process(ctx, ingest.Record{Entity: h.entity, Payload: msg.Value})
	if err != nil {
		if errors.Is(err, sentinel.ErrUnavailable) {
			return err
		}
		h.logger.InfoContext(ctx, "dropping rejected record",
			"topic", msg.Topic,
			"partition", msg.Partition,
			"offset", msg.Offset,
		)
		return nil
	}
	if res.Skipped {
		return nil
	}
	if err := h.sink.Publish(ctx, res); err != nil {
		return err
	}
	if h.marks == nil {
		return nil
	}
	return h.marks.Commit(ctx, watermark.Key{Entity: string(res.Entity), SourcedID: res.SourcedID}, res.Modified)
}

// KafkaSink publishes canonical records to one topic keyed by entity and
// sourcedId, so every version of a record lands on the same partition.
type KafkaSink struct {
	producer *kafka.Producer
	topic    string
}

func NewKafkaSink(producer *kafka.Producer, topic string) *KafkaSink {
	return &KafkaSink{producer: producer, topic: topic}
}

func (s *KafkaSink) Publish(ctx context.Context, res *ingest.Result) error {
	return s.producer.Produce(ctx, CanonicalMessage(s.topic, res))
}

// CanonicalMessage builds the outbound message for a normalized record.
func CanonicalMessage(topic string, res *ingest.Result) *kafka.Message {
	return &kafka.Message{
		Topic: topic,
		Key:   []byte(string(res.Entity) + ":" + res.SourcedID),
		Value: res.Canonical,
		Headers: map[string]string{
			"entity":           string(res.Entity),
			"dateLastModified": res.Modified.UTC().Format(time.RFC3339Nano),
		},
	}
}
