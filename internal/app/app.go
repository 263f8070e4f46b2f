package app

import (
	"context"
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/app"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Katharina-R/online-bookstore/internal/domain/cart"
	"github.com/Katharina-R/online-bookstore/internal/domain/checkout"
	"github.com/Katharina-R/online-bookstore/internal/domain/payment"
	"github.com/Katharina-R/online-bookstore/internal/handler"
	"github.com/Katharina-R/online-bookstore/internal/memstore"
	"github.com/Katharina-R/online-bookstore/internal/notify"
	"github.com/Katharina-R/online-bookstore/pkg/health"
	"github.com/Katharina-R/online-bookstore/pkg/httpmiddleware"
)

// Run creates all dependencies, starts the HTTP server, and handles graceful
// shutdown. It is the single wiring point for the application.
func Run(ctx context.Context, lg *zap.Logger, m *app.Telemetry, cfg *Config) error {
	lg.Info("Initializing", zap.String("addr", cfg.Addr))

	// In-memory stores. The catalog is fixed at startup; orders and accounts
	// accumulate for the lifetime of the process.
	books := memstore.SeedCatalog()
	users := memstore.NewUsers()
	orders := memstore.NewOrders()
	shoppingCart := cart.New()

	// Domain services.
	gateway := payment.NewMockGateway()
	notifier := notify.NewConsoleNotifier()
	checkoutSvc := checkout.NewService(orders, gateway, notifier)

	// Health check service.
	healthSvc := health.New()
	healthSvc.AddLivenessCheck("goroutines", time.Second, health.GoroutineCountCheck(10000))
	healthSvc.AddReadinessCheck("catalog", time.Second, func(context.Context) error {
		if len(books.List()) == 0 {
			return errors.New("catalog is empty")
		}
		return nil
	})
	healthSvc.Start(ctx, 10*time.Second)
	healthSvc.SetReady(true)

	// HTTP handlers.
	h := handler.New(
		handler.Config{SessionPepper: cfg.SessionPepper},
		books,
		shoppingCart,
		users,
		orders,
		checkoutSvc,
	)

	mux := http.NewServeMux()
	mux.HandleFunc("/livez", healthSvc.LiveEndpoint)
	mux.HandleFunc("/readyz", healthSvc.ReadyEndpoint)
	mux.Handle("/api/", h.Routes())

	server := &http.Server{
		ReadHeaderTimeout: time.Second,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20,
		Addr:              cfg.Addr,
		Handler: httpmiddleware.Wrap(mux,
			httpmiddleware.Recovery(),
			httpmiddleware.CORS(httpmiddleware.CORSConfig{
				AllowOrigins:     cfg.CORS.Origins,
				AllowHeaders:     []string{"Content-Type"},
				AllowCredentials: cfg.CORS.AllowCredentials,
				MaxAge:           86400,
			}),
			httpmiddleware.RateLimitWithCleanup(ctx, httpmiddleware.RateLimitConfig{
				Max:    cfg.RateLimit.Max,
				Window: cfg.RateLimit.Window,
			}),
			httpmiddleware.RequestID(),
			httpmiddleware.InjectLogger(zctx.From(ctx)),
			httpmiddleware.Instrument("bookstore-api", m),
			httpmiddleware.LogRequests(),
		),
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		lg.Info("Server listening", zap.String("addr", cfg.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "server")
		}
		return nil
	})
	// Graceful shutdown: wait for context cancellation, drain, then stop.
	g.Go(func() error {
		<-ctx.Done()
		healthSvc.SetReady(false)
		lg.Info("Readiness set to false, draining", zap.Duration("delay", cfg.Graceful.ReadinessDelay))
		time.Sleep(cfg.Graceful.ReadinessDelay)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Graceful.ShutdownTimeout)
		defer cancel()

		lg.Info("Shutting down server", zap.Duration("timeout", cfg.Graceful.ShutdownTimeout))
		if err := server.Shutdown(shutdownCtx); err != nil {
			lg.Error("Server shutdown error", zap.Error(err))
		}
		healthSvc.Stop()
		return nil
	})
	return g.Wait()
}
