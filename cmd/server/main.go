package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"salesdash/internal/backend"
	"salesdash/internal/cart"
	"salesdash/internal/config"
	"salesdash/internal/db"
	"salesdash/internal/handler"
	"salesdash/internal/logger"
	"salesdash/internal/metrics"
	"salesdash/internal/middleware"
	"salesdash/internal/order"
	"salesdash/internal/product"
	"salesdash/internal/session"
	"salesdash/internal/user"
)

const shutdownTimeout = 10 * time.Second

// Swapped out in tests.
var (
	initDBFunc      = db.InitDB
	startServerFunc = startServer
)

// strictRoutes are rate limited in the strict tier.
var strictRoutes = []string{
	"POST /api/session",
	"POST /api/cart/checkout",
	"POST /api/orders",
	"POST /api/users",
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := initDBFunc(cfg)
	defer database.Close()

	srv, err := newServer(cfg, database)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go srv.limiter.Run(ctx)

	logger.L().Info("salesdash api listening",
		zap.String("port", cfg.AppPort),
		zap.String("backend", cfg.BackendURL),
	)
	return startServerFunc(ctx, ":"+cfg.AppPort, srv.router)
}

type server struct {
	router  http.Handler
	limiter *middleware.RateLimiter
}

type routerDeps struct {
	corsOrigin string
	issuer     *session.Issuer
	limiter    *middleware.RateLimiter
	registry   *metrics.Registry
	loader     *backend.Loader

	sessions  *handler.SessionHandler
	dashboard *handler.DashboardHandler
	users     *handler.UserHandler
	products  *handler.ProductHandler
	carts     *handler.CartHandler
	orders    *handler.OrderHandler
}

// newServer wires the backend client, the cart store and the services into
// a router.
func newServer(cfg *config.Config, database *sql.DB) (*server, error) {
	issuer, err := session.NewIssuer(cfg.JWTSecret, session.DefaultTTL)
	if err != nil {
		return nil, err
	}

	assets, err := product.LoadAssetTable(cfg.AssetManifest)
	if err != nil {
		return nil, err
	}

	registry := metrics.NewRegistry()
	client := backend.NewClient(cfg.BackendURL, cfg.BackendTimeout, registry)

	productSvc := product.NewService(client, assets)
	userSvc := user.NewService(client)
	cartSvc := cart.NewService(cart.NewRepository(database), productSvc)
	orderSvc := order.NewService(client, cartSvc, productSvc)
	loader := backend.NewLoader(client)

	limiter := middleware.NewRateLimiter(strictRoutes...)

	router := setupRouter(routerDeps{
		corsOrigin: cfg.CORSOrigin,
		issuer:     issuer,
		limiter:    limiter,
		registry:   registry,
		loader:     loader,
		sessions:   handler.NewSessionHandler(issuer, cfg.AppEnv == "production"),
		dashboard:  handler.NewDashboardHandler(loader),
		users:      handler.NewUserHandler(userSvc),
		products:   handler.NewProductHandler(productSvc),
		carts:      handler.NewCartHandler(cartSvc, orderSvc),
		orders:     handler.NewOrderHandler(orderSvc),
	})

	return &server{router: router, limiter: limiter}, nil
}

func setupRouter(d routerDeps) chi.Router {
	r := chi.NewRouter()
	r.Use(logger.RequestIDMiddleware)
	r.Use(logger.LoggingMiddleware)
	r.Use(middleware.CORS(d.corsOrigin))

	r.Get("/health", handler.Health(d.registry, d.loader))

	r.Route("/api", func(r chi.Router) {
		// Issuing a session ignores whatever stale token the client holds.
		r.Group(func(r chi.Router) {
			r.Use(d.limiter.Middleware)
			r.Route("/session", d.sessions.RegisterRoutes)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Session(d.issuer))
			r.Use(d.limiter.Middleware)

			r.Route("/dashboard", d.dashboard.RegisterRoutes)
			r.Route("/users", d.users.RegisterRoutes)
			r.Route("/products", d.products.RegisterRoutes)
			r.Route("/orders", d.orders.RegisterRoutes)
			r.Route("/cart", func(r chi.Router) {
				r.Use(middleware.RequireSession)
				d.carts.RegisterRoutes(r)
			})
		})
	})
	return r
}

// startServer blocks until ctx is done, then drains in-flight requests.
func startServer(ctx context.Context, addr string, h http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.L().Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
