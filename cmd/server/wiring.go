package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"kycgate/internal/kyc/evidence/cache"
	"kycgate/internal/kyc/evidence/fetch"
	"kycgate/internal/kyc/evidence/liveness"
	"kycgate/internal/kyc/evidence/ocr"
	"kycgate/internal/kyc/evidence/similarity"
	"kycgate/internal/kyc/handler"
	"kycgate/internal/kyc/metrics"
	"kycgate/internal/kyc/models"
	"kycgate/internal/kyc/notify"
	"kycgate/internal/kyc/service"
	"kycgate/internal/kyc/store"
	"kycgate/internal/platform/config"
	"kycgate/internal/platform/database"
	"kycgate/internal/platform/health"
	"kycgate/internal/platform/kafka"
	"kycgate/internal/platform/kafka/producer"
	"kycgate/internal/platform/redis"
	"kycgate/internal/platform/tracer"
	"kycgate/migrations"
	"kycgate/pkg/platform/circuit"
)

// application holds the wired components and the resources to release on shutdown.
type application struct {
	handler *handler.Handler
	health  *health.Handler

	storeKind    string
	notifierKind string
	cacheEnabled bool

	closers []func(context.Context) error
}

func (a *application) close(ctx context.Context, log *slog.Logger) {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			log.Warn("failed to release resource", "error", err)
		}
	}
}

func build(ctx context.Context, cfg config.Config, log *slog.Logger) (*application, error) {
	app := &application{health: health.New(cfg.Environment)}
	kycMetrics := metrics.New()
	tr := tracer.NewOTel()

	requiredTypes, err := models.ParseRequiredTypes(cfg.RequiredTypes)
	if err != nil {
		return nil, fmt.Errorf("KYC_REQUIRED_TYPES: %w", err)
	}

	recordStore, err := buildStore(ctx, cfg, app)
	if err != nil {
		return nil, err
	}

	resultCache, err := buildCache(ctx, cfg, app)
	if err != nil {
		return nil, err
	}

	notifier, err := buildNotifier(cfg, log, app)
	if err != nil {
		return nil, err
	}

	httpClient := &http.Client{Transport: http.DefaultTransport.(*http.Transport).Clone()}
	fetcher := fetch.New(
		fetch.WithHTTPClient(httpClient),
		fetch.WithTimeout(cfg.Evidence.FetchTimeout),
		fetch.WithMaxBytes(cfg.Evidence.MaxImageBytes),
		fetch.WithMaxPixels(cfg.Evidence.MaxImagePixels),
	)

	var recognizer ocr.Recognizer = ocr.Unavailable{}
	if cfg.Evidence.OCREngineURL != "" {
		recognizer = ocr.NewHTTPRecognizer(cfg.Evidence.OCREngineURL, ocr.WithHTTPClient(httpClient))
	} else {
		log.Warn("KYC_OCR_ENGINE_URL not set; document extraction will degrade")
	}
	extractorOpts := []ocr.Option{ocr.WithLogger(log), ocr.WithTracer(tr), ocr.WithMetrics(kycMetrics)}
	if resultCache != nil {
		extractorOpts = append(extractorOpts, ocr.WithCache(resultCache))
	}
	extractor := ocr.NewExtractor(fetcher, recognizer, extractorOpts...)

	livenessScorer := liveness.New(fetcher,
		liveness.WithLogger(log), liveness.WithTracer(tr), liveness.WithMetrics(kycMetrics))

	var inference similarity.Inference = similarity.Unavailable{}
	if cfg.Evidence.InferenceURL != "" {
		inference = similarity.NewHTTPInference(cfg.Evidence.InferenceURL, similarity.WithHTTPClient(httpClient))
	} else {
		log.Warn("KYC_INFERENCE_URL not set; identity similarity will score 0")
	}
	breaker := circuit.New("similarity-inference",
		circuit.WithFailureThreshold(cfg.Evidence.BreakerFailures),
		circuit.WithCoolDown(cfg.Evidence.BreakerCoolDown),
	)
	similarityScorer := similarity.New(fetcher, inference,
		similarity.WithRange(cfg.Evidence.SimilarityMin, cfg.Evidence.SimilarityMax),
		similarity.WithBreaker(breaker),
		similarity.WithLogger(log), similarity.WithTracer(tr), similarity.WithMetrics(kycMetrics),
	)

	svc, err := service.New(recordStore, service.Stages{
		Extractor:  extractor,
		Liveness:   livenessScorer,
		Similarity: similarityScorer,
	}, service.Config{
		RequiredTypes:   requiredTypes,
		EvidenceTimeout: cfg.EvidenceTimeout,
	},
		service.WithLogger(log),
		service.WithTracer(tr),
		service.WithMetrics(kycMetrics),
		service.WithNotifier(notifier),
	)
	if err != nil {
		return nil, fmt.Errorf("create kyc service: %w", err)
	}

	app.handler = handler.New(svc, log)
	return app, nil
}

func buildStore(ctx context.Context, cfg config.Config, app *application) (service.RecordStore, error) {
	pool, err := database.New(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	if pool == nil {
		app.storeKind = "memory"
		return store.NewInMemory(), nil
	}

	if cfg.Database.Migrate {
		if err := database.Migrate(ctx, pool.DB(), migrations.FS); err != nil {
			_ = pool.Close()
			return nil, fmt.Errorf("migrate database: %w", err)
		}
	}
	app.storeKind = "postgres"
	app.health.RegisterCheck("postgres", pool.Health)
	app.closers = append(app.closers, func(context.Context) error { return pool.Close() })
	return store.NewPostgres(pool.DB()), nil
}

func buildCache(ctx context.Context, cfg config.Config, app *application) (ocr.ResultCache, error) {
	client, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, nil
	}

	statsCtx, cancel := context.WithCancel(context.Background())
	go client.RunPoolStats(statsCtx, 15*time.Second)

	app.cacheEnabled = true
	app.health.RegisterCheck("redis", client.Health)
	app.closers = append(app.closers, func(context.Context) error {
		cancel()
		return client.Close()
	})
	return cache.NewRedisCache(client, cfg.Evidence.EvidenceCacheTTL), nil
}

func buildNotifier(cfg config.Config, log *slog.Logger, app *application) (service.Notifier, error) {
	if cfg.Kafka.Brokers == "" {
		app.notifierKind = "log"
		return notify.NewLogNotifier(log), nil
	}

	p, err := producer.New(cfg.Kafka, log)
	if err != nil {
		return nil, err
	}
	app.notifierKind = "kafka"
	app.health.RegisterCheck("kafka", kafka.NewHealthChecker(cfg.Kafka.Brokers).Check)
	app.closers = append(app.closers, func(context.Context) error { return p.Close() })
	return notify.NewKafkaNotifier(p, cfg.Kafka.NotificationTopic), nil
}
