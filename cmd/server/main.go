package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"roster/internal/ingest"
	"roster/internal/ingest/consumer"
	"roster/internal/ingest/handler"
	"roster/internal/ingest/metrics"
	"roster/internal/ingest/watermark"
	"roster/internal/platform/config"
	"roster/internal/platform/httpserver"
	"roster/internal/platform/kafka"
	"roster/internal/platform/logger"
	httpmetrics "roster/internal/platform/metrics"
	"roster/internal/platform/redis"
	httptransport "roster/internal/transport/http"
)

// main wires configuration, the normalization pipeline, the optional Kafka
// consumer and the HTTP surface. Domain logic lives under internal/roster.
func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	checks := map[string]httptransport.HealthCheck{}
	var marks watermark.Store = watermark.NewMemoryStore()
	rdb, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	if rdb != nil {
		defer rdb.Close()
		marks = watermark.NewRedisStore(rdb.Client, cfg.Redis.WatermarkTTL)
		checks["redis"] = rdb.Health
	}

	// HTTP callers get a pure transform; only the consumer, which knows when
	// a record was delivered, skips stale versions and commits marks.
	ingestMetrics := metrics.New(prometheus.DefaultRegisterer)
	httpPipeline := ingest.New(
		ingest.WithLogger(log),
		ingest.WithMetrics(ingestMetrics),
		ingest.WithWorkers(cfg.Pipeline.Workers),
	)

	var kc *kafka.Consumer
	if cfg.KafkaEnabled() {
		streamPipeline := ingest.New(
			ingest.WithLogger(log),
			ingest.WithMetrics(ingestMetrics),
			ingest.WithWatermarks(marks),
		)
		c, producer, err := newConsumer(ctx, cfg, streamPipeline, marks, log)
		if err != nil {
			return err
		}
		defer producer.Close()
		defer c.Close()
		checks["kafka"] = producer.Ping
		kc = c
	}

	router := httptransport.NewRouter(httptransport.Options{
		Checks:  checks,
		Metrics: httpmetrics.New(prometheus.DefaultRegisterer),
	}, handler.New(httpPipeline, log))
	srv := httpserver.New(cfg.Server.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting roster normalizer", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if kc != nil {
		g.Go(func() error {
			if err := kc.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("kafka consumer: %w", err)
			}
			return nil
		})
	}

	return g.Wait()
}

func newConsumer(ctx context.Context, cfg config.Config, pipeline *ingest.Pipeline, marks watermark.Store, log *slog.Logger) (*kafka.Consumer, *kafka.Producer, error) {
	kcfg := kafka.Config{Brokers: cfg.Kafka.Brokers, Group: cfg.Kafka.ConsumerGroup}
	producer, err := kafka.NewProducer(kcfg)
	if err != nil {
		return nil, nil, err
	}
	if err := producer.EnsureTopics(ctx, 1, 1, cfg.Kafka.OutputTopic); err != nil {
		log.Warn("could not ensure output topic", "topic", cfg.Kafka.OutputTopic, "error", err)
	}

	sink := consumer.NewKafkaSink(producer, cfg.Kafka.OutputTopic)
	router := consumer.NewRouter(log, nil)
	bindings := map[string]ingest.Entity{
		cfg.Kafka.ClassTopic:   ingest.EntityClass,
		cfg.Kafka.DemoTopic:    ingest.EntityDemographic,
		cfg.Kafka.SessionTopic: ingest.EntitySession,
	}
	for topic, entity := range bindings {
		h, err := consumer.NewRecordHandler(entity, pipeline, sink, marks, log)
		if err != nil {
			producer.Close()
			return nil, nil, err
		}
		router.Register(topic, h)
	}

	c, err := kafka.NewConsumer(kcfg, router.Topics(), router, log)
	if err != nil {
		producer.Close()
		return nil, nil, err
	}
	return c, producer, nil
}
