package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/marketloop/storefront-backend/api/controllers"
	"github.com/marketloop/storefront-backend/api/middleware"
	authsvc "github.com/marketloop/storefront-backend/internal/auth"
	cartsvc "github.com/marketloop/storefront-backend/internal/cart"
	ordersvc "github.com/marketloop/storefront-backend/internal/orders"
	productsvc "github.com/marketloop/storefront-backend/internal/products"
	"github.com/marketloop/storefront-backend/pkg/auth/session"
	"github.com/marketloop/storefront-backend/pkg/config"
	"github.com/marketloop/storefront-backend/pkg/logger"
	"github.com/marketloop/storefront-backend/pkg/metrics"
	pkgredis "github.com/marketloop/storefront-backend/pkg/redis"
)

type sessionManager interface {
	session.AccessSessionChecker
	Revoke(context.Context, string) error
}

// Deps carries everything the router mounts.
type Deps struct {
	Config   *config.Config
	Logger   *logger.Logger
	Sessions sessionManager

	DBPinger    controllers.Pinger
	RedisClient *pkgredis.Client

	AuthService    authsvc.Service
	ProductService productsvc.Service
	CartService    cartsvc.Service
	OrderService   ordersvc.Service

	MetricsRegistry prometheus.Gatherer
	HTTPMetrics     *metrics.HTTPMetrics
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPMetrics),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy("login", cfg.Auth.LoginWindow, cfg.Auth.LoginIPLimit, cfg.Auth.LoginEmailLimit)
	registerPolicy := middleware.NewAuthRateLimitPolicy("register", cfg.Auth.RegisterWindow, cfg.Auth.RegisterIPLimit, cfg.Auth.RegisterEmailLimit)

	var idemStore pkgredis.IdempotencyStore
	var rateStore middleware.RateLimiterStore
	if deps.RedisClient != nil {
		idemStore = deps.RedisClient
		rateStore = deps.RedisClient
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, map[string]controllers.Pinger{
			"postgres": deps.DBPinger,
			"redis":    pingerOrNil(deps.RedisClient),
		}))
	})

	if deps.MetricsRegistry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.MetricsRegistry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/auth", func(r chi.Router) {
		r.With(
			middleware.AuthRateLimit(registerPolicy, rateStore, logg),
			middleware.Idempotency(idemStore, cfg.Pricing.CheckoutIdempotencyTTL, logg),
		).Post("/register", controllers.AuthRegister(deps.AuthService, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, rateStore, logg)).
			Post("/login", controllers.AuthLogin(deps.AuthService, logg))
		r.Post("/logout", controllers.AuthLogout(deps.Sessions, cfg.JWT, logg))
		r.With(middleware.Auth(cfg.JWT, deps.Sessions, logg)).
			Get("/me", controllers.AuthMe(deps.AuthService, logg))
	})

	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", controllers.ProductList(deps.ProductService, logg))
		r.Get("/{productID}", controllers.ProductDetail(deps.ProductService, logg))
		r.With(middleware.Auth(cfg.JWT, deps.Sessions, logg)).
			Post("/{productID}/reviews", controllers.ProductAddReview(deps.ProductService, logg))
	})

	r.Route("/api/cart", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))
		r.Get("/", controllers.CartFetch(deps.CartService, logg))
		r.Post("/add", controllers.CartAddItem(deps.CartService, logg))
		r.Put("/update/{itemID}", controllers.CartUpdateItem(deps.CartService, logg))
		r.Delete("/remove/{itemID}", controllers.CartRemoveItem(deps.CartService, logg))
		r.Delete("/clear", controllers.CartClear(deps.CartService, logg))
	})

	r.Route("/api/orders", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))
		r.Use(middleware.Idempotency(idemStore, cfg.Pricing.CheckoutIdempotencyTTL, logg))

		r.Post("/", controllers.OrderCreate(deps.OrderService, logg))
		r.Get("/", controllers.OrderListMine(deps.OrderService, logg))
		r.With(middleware.RequireRole("admin", logg)).
			Get("/admin/all", controllers.OrderAdminList(deps.OrderService, logg))
		r.Get("/{orderID}", controllers.OrderDetail(deps.OrderService, logg))
		r.Put("/{orderID}/pay", controllers.OrderPay(deps.OrderService, logg))
		r.With(middleware.RequireRole("admin", logg)).
			Put("/{orderID}/deliver", controllers.OrderDeliver(deps.OrderService, logg))
		r.With(middleware.RequireRole("admin", logg)).
			Put("/{orderID}/status", controllers.OrderSetStatus(deps.OrderService, logg))
	})

	return r
}

func pingerOrNil(client *pkgredis.Client) controllers.Pinger {
	if client == nil {
		return nil
	}
	return client
}
