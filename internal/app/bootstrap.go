package app

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Gunvolt24/wc_bronze_sync/config"
	"github.com/Gunvolt24/wc_bronze_sync/internal/kafka"
	"github.com/Gunvolt24/wc_bronze_sync/internal/ports"
	rest "github.com/Gunvolt24/wc_bronze_sync/internal/transport/http"
	"github.com/Gunvolt24/wc_bronze_sync/internal/usecase"
	"github.com/Gunvolt24/wc_bronze_sync/pkg/logger"
	"github.com/Gunvolt24/wc_bronze_sync/pkg/metrics"
	"github.com/Gunvolt24/wc_bronze_sync/pkg/telemetry"
	"github.com/gin-gonic/gin"
)

// App — собранное приложение и его внешние интерфейсы (HTTP, consumer).
// KafkaConsumer == nil — Kafka выключена.
type App struct {
	Logger          ports.Logger          // логгер
	HTTPServer      *http.Server          // HTTP-сервер
	KafkaConsumer   ports.TriggerConsumer // консьюмер сообщений
	gracefulTimeout time.Duration         // время ожидания завершения HTTP-сервера
}

// Cleanup — функция освобождения ресурсов.
type Cleanup func()

// applyGinMode — устанавливает режим Gin по строке;
// неизвестное значение → debug и предупреждение в лог.
func applyGinMode(ctx context.Context, mode string, log ports.Logger) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	case "", "debug":
		gin.SetMode(gin.DebugMode)
	default:
		gin.SetMode(gin.DebugMode)
		log.Warnf(ctx, "unknown GIN_MODE=%q, fallback to debug", mode)
	}
}

// Bootstrap — собирает зависимости и возвращает приложение, функцию очистки и ошибку.
func Bootstrap(ctx context.Context, cfg *config.Config) (*App, Cleanup, error) {
	// Логгер (dev/prod режим задаётся конфигурацией).
	logg, cleanupLogger, err := logger.NewZapLogger(cfg.Logger.IsProd)
	if err != nil {
		return nil, func() {}, err
	}
	closeLogger := func() {
		if cErr := cleanupLogger(); cErr != nil {
			logg.Warnf(ctx, "cleanup logger: %v", cErr)
		}
	}

	// Конфиг консьюмера проверяем до того, как что-либо открыто.
	kafkaCfg := kafka.ConsumerConfig{
		Brokers:        cfg.Kafka.Brokers,
		GroupID:        cfg.Kafka.GroupID,
		Topic:          cfg.Kafka.TriggerTopic,
		StartOffset:    cfg.Kafka.StartOffset,
		ProcessTimeout: cfg.Kafka.ProcessTimeout,
		RetryInitial:   cfg.Kafka.RetryInitial,
		RetryMax:       cfg.Kafka.RetryMax,
	}
	if cfg.Kafka.Enabled {
		if err := kafkaCfg.Validate(); err != nil {
			closeLogger()
			return nil, func() {}, err
		}
	}

	// Регистрация метрик (Prometheus).
	metrics.MustRegister()

	// Трейсинг OTEL (при включённой конфигурации); по умолчанию — no-op.
	shutdownTrace := func(context.Context) error { return nil }
	if cfg.Tracing.Enabled {
		setup, tErr := telemetry.SetupTracing(ctx, telemetry.Options{
			ServiceName: cfg.Tracing.ServiceName,
			Endpoint:    cfg.Tracing.Endpoint,
			SampleRatio: cfg.Tracing.SampleRatio,
		})
		if tErr != nil {
			logg.Warnf(ctx, "failed to setup tracing: %v", tErr)
		} else {
			logg.Infof(ctx, "otel tracing enabled service=%s endpoint=%s sample=%.2f",
				cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
			shutdownTrace = setup
		}
	}

	// Публикация отчётов и продолжений в Kafka (опционально).
	var (
		publisher    *kafka.Publisher
		orchOpts     []usecase.OrchestratorOption
		continuation ports.TriggerPublisher
	)
	if cfg.Kafka.Enabled {
		pubCfg := kafka.PublisherConfig{Brokers: cfg.Kafka.Brokers, ReportTopic: cfg.Kafka.ReportTopic}
		if cfg.Kafka.Continue {
			pubCfg.TriggerTopic = cfg.Kafka.TriggerTopic
		}
		publisher = kafka.NewPublisher(pubCfg)
		orchOpts = append(orchOpts, usecase.WithPublisher(publisher))
		if cfg.Kafka.Continue {
			continuation = publisher
		}
	}

	// Сборка зависимостей доменного слоя.
	stack, cleanupStack, err := BuildStack(ctx, cfg, logg, orchOpts...)
	if err != nil {
		if publisher != nil {
			_ = publisher.Close()
		}
		_ = shutdownTrace(context.Background())
		closeLogger()
		return nil, func() {}, err
	}

	// Режим Gin.
	applyGinMode(ctx, cfg.HTTP.GinMode, logg)

	// Имя сервиса для otelgin (только при включённом трейсинге).
	otelServiceName := ""
	if cfg.Tracing.Enabled {
		otelServiceName = cfg.Tracing.ServiceName
	}

	// Роутер и HTTP-сервер.
	if !cfg.Auth.Configured() {
		logg.Warnf(ctx, "neither JWT nor cron secret configured: POST /sync will answer 500")
	}
	auth := rest.NewAuthenticator(cfg.Auth.JWTSecret, cfg.Auth.CronSecret).WithIssuer(cfg.Auth.JWTIssuer)
	httpHandler := rest.NewHandler(stack.Service, auth, logg, cfg.Sync.InvocationTimeout)
	metricsPath := cfg.Metrics.Path
	if !cfg.Metrics.Enabled {
		metricsPath = ""
	}
	httpHandler.WithMetricsPath(metricsPath)
	router := rest.NewRouter(httpHandler, otelServiceName)

	httpSrv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
	}

	// Консьюмер триггеров Kafka.
	var consumer *kafka.Consumer
	if cfg.Kafka.Enabled {
		handler := kafka.NewTriggerHandler(stack.Service, continuation, logg)
		consumer = kafka.NewConsumer(&kafkaCfg, handler, logg)
	}

	app := &App{
		Logger:          logg,
		HTTPServer:      httpSrv,
		gracefulTimeout: cfg.HTTP.GracefulTimeout,
	}
	if consumer != nil {
		app.KafkaConsumer = consumer
	}

	// Очистка ресурсов (в обратном порядке).
	cleanup := func() {
		if terr := shutdownTrace(context.Background()); terr != nil {
			logg.Warnf(ctx, "shutdown tracing: %v", terr)
		}
		if consumer != nil {
			if err := consumer.Close(); err != nil {
				logg.Warnf(ctx, "kafka consumer close error: %v", err)
			}
		}
		if publisher != nil {
			if err := publisher.Close(); err != nil {
				logg.Warnf(ctx, "kafka publisher close error: %v", err)
			}
		}
		cleanupStack()
		closeLogger()
	}

	return app, cleanup, nil
}

// Run — запускает HTTP-сервер и консьюмера; ждёт отмены контекста или ошибки и останавливает их.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 2)

	// Запуск консьюмера (если Kafka включена).
	if a.KafkaConsumer != nil {
		go func() {
			a.Logger.Infof(ctx, "kafka consumer starting")
			if err := a.KafkaConsumer.Run(ctx); err != nil {
				errCh <- err
			}
		}()
	}

	// Запуск HTTP-сервера.
	go func() {
		a.Logger.Infof(ctx, "http server starting (addr=%s)", a.HTTPServer.Addr)
		if err := a.HTTPServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Ожидание сигнала остановки или фоновой ошибки.
	select {
	case <-ctx.Done():
		a.Logger.Infof(ctx, "shutdown requested, starting graceful shutdown")
	case err := <-errCh:
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			a.Logger.Infof(ctx, "background component stopped: %v", err)
		} else {
			a.Logger.Warnf(ctx, "background error: %v", err)
		}
	}

	gt := a.gracefulTimeout
	if gt <= 0 {
		gt = 5 * time.Second
	}

	// Корректная остановка HTTP-сервера.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), gt)
	defer cancel()

	if err := a.HTTPServer.Shutdown(shutdownCtx); err != nil {
		a.Logger.Warnf(ctx, "http server shutdown failed: %v", err)
	} else {
		a.Logger.Infof(ctx, "http server stopped gracefully")
	}

	// Остановка Kafka-консьюмера
	if a.KafkaConsumer != nil {
		if err := a.KafkaConsumer.Close(); err != nil {
			a.Logger.Warnf(ctx, "kafka consumer close error: %v", err)
		}
	}

	a.Logger.Infof(ctx, "service stopped")
	return nil
}
