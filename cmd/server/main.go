package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/dukerupert/skuld/internal"
	"github.com/dukerupert/skuld/internal/handler"
	"github.com/dukerupert/skuld/internal/middleware"
	"github.com/dukerupert/skuld/internal/router"
	"github.com/dukerupert/skuld/internal/service"
	"github.com/dukerupert/skuld/internal/shipping"
	"github.com/dukerupert/skuld/internal/stock"
	"github.com/dukerupert/skuld/internal/telemetry"
)

func run() error {
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	// HTTP metrics middleware owns the registry; business metrics register
	// into the same one so /metrics exposes both.
	httpMetrics := middleware.NewMetrics(cfg.MetricsNamespace)
	checkoutMetrics := telemetry.NewCheckoutMetrics(cfg.MetricsNamespace, httpMetrics.Registry())

	ledger := stock.NewInMemoryLedger()
	quoter := shipping.NewBandedTableQuoter(cfg.ShippingLeadTimeBase)

	svc, err := service.NewCheckoutService(service.Config{
		Ledger:           ledger,
		Quoter:           quoter,
		OriginPostalCode: cfg.OriginPostalCode,
		Logger:           logger,
		Metrics:          checkoutMetrics,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize checkout service: %w", err)
	}

	r := router.New(
		middleware.RequestID,
		middleware.WithRequestLogger(logger),
		httpMetrics.Middleware,
	)

	handler.NewCheckoutHandler(svc, ledger).Routes(r)

	r.Handle(http.MethodGet, "/metrics", httpMetrics.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	logger.Info("Starting checkout server", "address", addr, "env", cfg.Env)

	if err := http.ListenAndServe(addr, r); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
