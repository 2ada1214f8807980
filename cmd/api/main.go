package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"go-chi-calculator/internal/calculator"
	"go-chi-calculator/internal/config"
	"go-chi-calculator/internal/messaging"
	"go-chi-calculator/internal/observability"
	"go-chi-calculator/internal/server"
)

func main() {

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	// Logger
	if err := observability.InitLogger(cfg.ServiceName); err != nil {
		panic(err)
	}
	defer observability.SyncLogger()

	if err := run(cfg); err != nil {
		observability.Logger.Error("service exited with error", zap.Error(err))
		observability.SyncLogger()
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Tracing, metrics, logs
	tel, err := initTelemetry(ctx, cfg)
	if err != nil {
		return err
	}

	// Read after initTelemetry, which may tee the logger to OTLP.
	logger := observability.Logger
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := tel.shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown", zap.Error(err))
		}
	}()

	g, gctx := errgroup.WithContext(ctx)

	// The publisher outlives the server: it is stopped once Shutdown has
	// drained in-flight requests.
	pubCtx, stopPublisher := context.WithCancel(context.WithoutCancel(gctx))
	defer stopPublisher()

	// Publisher
	var publisher calculator.Publisher
	if cfg.Kafka.PublisherEnabled {
		producer, err := messaging.NewWriter(messaging.WriterConfig{
			Brokers:      cfg.Kafka.Brokers,
			Topic:        cfg.Kafka.Topic,
			ClientID:     cfg.ServiceName,
			BatchTimeout: cfg.Kafka.BatchTimeout,
		}, tel.tracerProvider)
		if err != nil {
			return err
		}
		defer closeWith(logger, "kafka producer", producer.Close)

		p := messaging.NewPublisher(producer, logger.Named("publisher"), cfg.Kafka.QueueSize)
		g.Go(func() error { return p.Run(pubCtx) })
		publisher = p
	}

	// Consumer
	if cfg.Kafka.ConsumerEnabled {
		consumer, err := messaging.NewReader(messaging.ReaderConfig{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
			GroupID: cfg.Kafka.GroupID,
		})
		if err != nil {
			return err
		}
		defer closeWith(logger, "kafka consumer", consumer.Close)

		svc := messaging.NewConsumerService(consumer, calculator.NewProcessor(), logger.Named("consumer"))
		g.Go(func() error { return svc.Start(gctx) })
	}

	// Router
	router := server.NewRouter(cfg.APIBasePath, calculator.NewHandler(publisher))

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	g.Go(func() error {
		logger.Info("server started", zap.String("addr", cfg.HTTPAddr))

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		return shutdownServer(gctx, srv, cfg.ShutdownTimeout, logger, stopPublisher)
	})

	return g.Wait()
}

// shutdownServer waits for ctx, shuts srv down and then calls after, so
// workers fed by handlers stop only once no request is in flight.
func shutdownServer(ctx context.Context, srv *http.Server, timeout time.Duration, logger *zap.Logger, after func()) error {
	<-ctx.Done()
	defer after()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	logger.Info("shutting down server")
	return srv.Shutdown(shutdownCtx)
}

func closeWith(logger *zap.Logger, name string, closeFn func() error) {
	if err := closeFn(); err != nil {
		logger.Error("close "+name, zap.Error(err))
	}
}
