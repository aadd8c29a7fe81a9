// Package app собирает зависимости и управляет жизненным циклом сервиса.
package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/backoffice/configs"
	healthcheck "github.com/vladislavdragonenkov/backoffice/internal/health"
	"github.com/vladislavdragonenkov/backoffice/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/backoffice/internal/metrics"
	"github.com/vladislavdragonenkov/backoffice/internal/service/auth"
	"github.com/vladislavdragonenkov/backoffice/internal/service/customer"
	"github.com/vladislavdragonenkov/backoffice/internal/service/order"
	"github.com/vladislavdragonenkov/backoffice/internal/service/product"
	"github.com/vladislavdragonenkov/backoffice/internal/storage/postgres"
	transporthttp "github.com/vladislavdragonenkov/backoffice/internal/transport/http"
	"github.com/vladislavdragonenkov/backoffice/internal/version"
)

// Run запускает API-сервер и ops-листенер и блокируется до отмены ctx
// или фатальной ошибки сервера.
func Run(ctx context.Context, cfg configs.Config) error {
	logger := log.WithField("component", "app")

	deps := NewDependencies(logger)

	// Postgres подключается только при заданном DSN; иначе хранилище
	// остаётся в памяти.
	var store *postgres.Store
	if cfg.Postgres.DSN != "" {
		var err error
		store, err = postgres.Open(ctx, cfg.Postgres.DSN)
		if err != nil {
			return err
		}
		deps.Customers = postgres.NewCustomerRepository(store)
		deps.Products = postgres.NewProductRepository(store)
		deps.Orders = postgres.NewOrderRepository(store)
		deps.Items = postgres.NewOrderItemRepository(store)
		logger.Info("хранилище: postgres")
	} else {
		logger.Info("хранилище: память (postgres.dsn не задан)")
	}

	// Kafka опциональна: без брокеров события отбрасываются.
	deps.Events = kafka.NewNoopPublisher()
	if len(cfg.Kafka.Brokers) > 0 {
		publisher, err := kafka.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.TopicEvents)
		if err != nil {
			logger.WithError(err).Warn("kafka недоступна, события отключены")
		} else {
			deps.Events = publisher
			logger.WithField("brokers", cfg.Kafka.Brokers).Info("kafka publisher инициализирован")
		}
	}

	orderMetrics := metrics.NewOrderMetrics()
	tokens := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.Audience, cfg.Auth.TokenTTL)

	orderSvc := order.NewService(deps.Orders, deps.Items, deps.Customers, deps.Products,
		deps.Events, orderMetrics, logger.WithField("component", "order-service"))
	customerSvc := customer.NewService(deps.Customers, logger.WithField("component", "customer-service"))
	productSvc := product.NewService(deps.Products, logger.WithField("component", "product-service"))

	router := transporthttp.NewRouter(transporthttp.RouterDeps{
		Auth:      transporthttp.NewAuthHandler(tokens, cfg.Auth.Username, cfg.Auth.Password, nil),
		Customers: transporthttp.NewCustomerHandler(customerSvc, nil),
		Products:  transporthttp.NewProductHandler(productSvc, nil),
		Orders:    transporthttp.NewOrderHandler(orderSvc, nil),
		Tokens:    tokens,
		Logger:    logger.WithField("component", "http"),
	})

	healthHandler := healthcheck.NewHandler(version.String())
	if store != nil {
		healthHandler.RegisterChecker("postgres", healthcheck.NewSimpleChecker("postgres", func() error {
			pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return store.Ping(pingCtx)
		}))
	}

	metricsSrv := startMetricsServer(ctx, cfg.App.MetricsAddr, logger, healthHandler)

	srv := &http.Server{
		Addr:         cfg.App.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("HTTP сервер слушает %s", cfg.App.HTTPAddr)
		errCh <- srv.ListenAndServe()
	}()

	cleanup := func() {
		shutdownHTTP(metricsSrv, logger)
		if err := deps.Events.Close(); err != nil {
			logger.WithError(err).Warn("не удалось закрыть издателя событий")
		}
		if store != nil {
			if err := store.Close(); err != nil {
				logger.WithError(err).Warn("не удалось закрыть подключение к postgres")
			}
		}
	}

	select {
	case <-ctx.Done():
		logger.Info("получен сигнал остановки, останавливаем HTTP сервер")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.WithError(err).Warn("graceful stop превысил таймаут, принудительно останавливаем")
			_ = srv.Close()
		}
		cleanup()
		return ctx.Err()
	case err := <-errCh:
		cleanup()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// startMetricsServer запускает ops-листенер: /metrics, /healthz, /livez.
func startMetricsServer(ctx context.Context, addr string, logger *log.Entry, healthHandler http.Handler) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/healthz", healthHandler)
	mux.HandleFunc("/livez", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		logger.Infof("метрики доступны по адресу %s/metrics", addr)
		logger.Infof("health checks: %s/healthz, %s/livez", addr, addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Warn("metrics server failed")
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownHTTP(srv, logger)
	}()

	return srv
}

// shutdownHTTP аккуратно останавливает HTTP-сервер.
func shutdownHTTP(srv *http.Server, logger *log.Entry) {
	if srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).Warn("metrics shutdown with error")
	}
}
