package consumer

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"roster/internal/ingest"
	"roster/internal/ingest/consumer/mocks"
	"roster/internal/ingest/watermark"
	"roster/internal/platform/kafka"
	"roster/pkg/platform/sentinel"
	"roster/pkg/testutil"
)

// =============================================================================
// Record Handler Test Suite
// =============================================================================
// The handler decides which failures are acknowledged and which are retried.
// A rejected record must never block its partition; an outage must.

type HandlerSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	sink      *mocks.MockSink
	processor *mocks.MockProcessor
	logger    *slog.Logger
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.sink = mocks.NewMockSink(s.ctrl)
	s.processor = mocks.NewMockProcessor(s.ctrl)
	s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (s *HandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *HandlerSuite) pipelineHandler(entity ingest.Entity) *RecordHandler {
	return s.pipelineHandlerWith(entity, watermark.NewMemoryStore())
}

func (s *HandlerSuite) pipelineHandlerWith(entity ingest.Entity, marks watermark.Store) *RecordHandler {
	p := ingest.New(ingest.WithLogger(s.logger), ingest.WithWatermarks(marks))
	h, err := NewRecordHandler(entity, p, s.sink, marks, s.logger)
	s.Require().NoError(err)
	return h
}

func (s *HandlerSuite) TestNewRecordHandler() {
	s.Run("nil processor returns error", func() {
		_, err := NewRecordHandler(ingest.EntityClass, nil, s.sink, nil, nil)
		s.ErrorContains(err, "processor is required")
	})

	s.Run("nil sink returns error", func() {
		_, err := NewRecordHandler(ingest.EntityClass, s.processor, nil, nil, nil)
		s.ErrorContains(err, "sink is required")
	})
}

func (s *HandlerSuite) TestPublishesNormalizedRecord() {
	h := s.pipelineHandler(ingest.EntityClass)
	s.sink.EXPECT().
		Publish(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, res *ingest.Result) error {
			s.Equal(ingest.EntityClass, res.Entity)
			s.Equal(testutil.ClassGUID, res.SourcedID)
			return nil
		})

	err := h.Handle(context.Background(), &kafka.Message{Topic: "classes", Value: testutil.ClassJSON(s.T(), nil)})
	s.NoError(err)
}

func (s *HandlerSuite) TestRejectedRecordIsAcknowledged() {
	h := s.pipelineHandler(ingest.EntityClass)
	payload := testutil.ClassJSON(s.T(), map[string]any{"terms": nil})

	err := h.Handle(context.Background(), &kafka.Message{Topic: "classes", Value: payload})
	s.NoError(err)
}

func (s *HandlerSuite) TestStaleRecordIsNotPublished() {
	h := s.pipelineHandler(ingest.EntitySession)
	newer := &kafka.Message{Topic: "sessions", Value: testutil.SessionJSON(s.T(), map[string]any{"dateLastModified": "2024-04-01T00:00:00Z"})}
	older := &kafka.Message{Topic: "sessions", Value: testutil.SessionJSON(s.T(), nil)}
	s.sink.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	s.NoError(h.Handle(context.Background(), newer))
	s.NoError(h.Handle(context.Background(), newer), "redelivery of a published record is skipped")
	s.NoError(h.Handle(context.Background(), older))
}

func (s *HandlerSuite) TestFailedPublishIsRetried() {
	marks := watermark.NewMemoryStore()
	h := s.pipelineHandlerWith(ingest.EntitySession, marks)
	msg := &kafka.Message{Topic: "sessions", Value: testutil.SessionJSON(s.T(), nil)}
	gomock.InOrder(
		s.sink.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(sentinel.ErrUnavailable),
		s.sink.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil),
	)

	s.ErrorIs(h.Handle(context.Background(), msg), sentinel.ErrUnavailable)

	key := watermark.Key{Entity: string(ingest.EntitySession), SourcedID: testutil.SessionGUID}
	fresh, err := marks.IsFresh(context.Background(), key, time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC))
	s.Require().NoError(err)
	s.True(fresh, "a failed publish must not move the watermark")

	s.NoError(h.Handle(context.Background(), msg))
	s.NoError(h.Handle(context.Background(), msg))
}

type brokenMarks struct{ watermark.Store }

func (brokenMarks) Commit(context.Context, watermark.Key, time.Time) error {
	return sentinel.ErrUnavailable
}

func (s *HandlerSuite) TestCommitOutageIsReturned() {
	h := s.pipelineHandlerWith(ingest.EntityClass, brokenMarks{Store: watermark.NewMemoryStore()})
	s.sink.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

	err := h.Handle(context.Background(), &kafka.Message{Topic: "classes", Value: testutil.ClassJSON(s.T(), nil)})
	s.ErrorIs(err, sentinel.ErrUnavailable)
}

func (s *HandlerSuite) TestOutagesAreReturned() {
	h, err := NewRecordHandler(ingest.EntityClass, s.processor, s.sink, nil, s.logger)
	s.Require().NoError(err)

	s.Run("processor outage", func() {
		s.processor.EXPECT().Process(gomock.Any(), gomock.Any()).Return(nil, sentinel.ErrUnavailable)
		err := h.Handle(context.Background(), &kafka.Message{})
		s.ErrorIs(err, sentinel.ErrUnavailable)
	})

	s.Run("sink outage", func() {
		res := &ingest.Result{Entity: ingest.EntityClass, SourcedID: testutil.ClassGUID}
		s.processor.EXPECT().Process(gomock.Any(), gomock.Any()).Return(res, nil)
		s.sink.EXPECT().Publish(gomock.Any(), res).Return(sentinel.ErrUnavailable)
		err := h.Handle(context.Background(), &kafka.Message{})
		s.ErrorIs(err, sentinel.ErrUnavailable)
	})
}

// =============================================================================
// Router Tests
// =============================================================================

type recordingHandler struct {
	got []*kafka.Message
	err error
}

func (r *recordingHandler) Handle(_ context.Context, msg *kafka.Message) error {
	r.got = append(r.got, msg)
	return r.err
}

func TestRouter(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("dispatches by topic", func(t *testing.T) {
		classes := &recordingHandler{}
		sessions := &recordingHandler{err: errors.New("boom")}
		r := NewRouter(logger, nil)
		r.Register("classes", classes)
		r.Register("sessions", sessions)

		if err := r.Handle(context.Background(), &kafka.Message{Topic: "classes"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := r.Handle(context.Background(), &kafka.Message{Topic: "sessions"}); err == nil {
			t.Fatal("expected handler error to propagate")
		}
		if len(classes.got) != 1 || len(sessions.got) != 1 {
			t.Fatalf("expected one message per handler, got %d and %d", len(classes.got), len(sessions.got))
		}
	})

	t.Run("unknown topic uses fallback", func(t *testing.T) {
		fallback := &recordingHandler{}
		r := NewRouter(logger, fallback)
		_ = r.Handle(context.Background(), &kafka.Message{Topic: "other"})
		if len(fallback.got) != 1 {
			t.Fatal("expected fallback to receive message")
		}
	})

	t.Run("unknown topic without fallback is skipped", func(t *testing.T) {
		r := NewRouter(logger, nil)
		if err := r.Handle(context.Background(), &kafka.Message{Topic: "other"}); err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
	})
}

func TestCanonicalMessage(t *testing.T) {
	res := &ingest.Result{
		Entity:    ingest.EntitySession,
		SourcedID: testutil.SessionGUID,
		Modified:  time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC),
		Canonical: []byte(`{}`),
	}
	msg := CanonicalMessage("roster.normalized", res)

	if got := string(msg.Key); got != "session:"+testutil.SessionGUID {
		t.Fatalf("unexpected key %q", got)
	}
	if msg.Headers["dateLastModified"] != "2024-03-01T12:30:00Z" {
		t.Fatalf("unexpected header %q", msg.Headers["dateLastModified"])
	}
}
