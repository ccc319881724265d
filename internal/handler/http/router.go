package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shirin-nasim/spice-nut-giftshop-sub000/internal/domain"
	"github.com/shirin-nasim/spice-nut-giftshop-sub000/internal/service"
	"github.com/shirin-nasim/spice-nut-giftshop-sub000/internal/session"
	"github.com/shirin-nasim/spice-nut-giftshop-sub000/pkg/health"
	"github.com/shirin-nasim/spice-nut-giftshop-sub000/pkg/middleware"
)

const (
	serviceName           = "storefront"
	categoriesCacheMaxAge = 300
	requestTimeout        = 30 * time.Second
)

// Services bundles the application services the router dispatches to.
type Services struct {
	Catalog        *service.CatalogService
	Resolver       *service.Resolver
	Reviews        *service.ReviewService
	RecentlyViewed *service.RecentlyViewedService
	Auth           *service.AuthService
	Account        *service.AccountService
	Admin          *service.AdminService
	Sessions       *session.Factory
}

// RouterConfig carries the request-pipeline settings.
type RouterConfig struct {
	CORSAllowedOrigins []string
	PprofAllowedCIDRs  []string
	VisitorCookieTTL   time.Duration
	SecureCookies      bool
	AuthRateLimitRPS   float64
	AuthRateLimitBurst int
}

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(
	svc Services,
	validate middleware.TokenValidator,
	healthHandler *health.Handler,
	cfg RouterConfig,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.RealIP)
	r.Use(middleware.CORS(middleware.DefaultCORSConfig(cfg.CORSAllowedOrigins)))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(requestTimeout))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics(serviceName))
	r.Use(middleware.Tracing(serviceName))
	r.Use(middleware.RequestLogger(logger))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	// Pprof debug endpoints with IP allowlist.
	middleware.RegisterPprof(r, cfg.PprofAllowedCIDRs, logger)

	catalogHandler := NewCatalogHandler(svc.Catalog, svc.Resolver, svc.RecentlyViewed, logger)
	reviewHandler := NewReviewHandler(svc.Reviews, svc.Resolver, logger)
	recentHandler := NewRecentlyViewedHandler(svc.RecentlyViewed, logger)
	authHandler := NewAuthHandler(svc.Auth, svc.Sessions, logger)
	cartHandler := NewCartHandler(svc.Sessions, logger)
	accountHandler := NewAccountHandler(svc.Account, logger)
	adminHandler := NewAdminHandler(svc.Admin, svc.Catalog, logger)

	requireAuth := middleware.Auth(validate)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(middleware.VisitorID(cfg.VisitorCookieTTL, cfg.SecureCookies))
		r.Use(middleware.OptionalAuth(validate))

		// Catalog
		r.Get("/products", catalogHandler.ListProducts)
		r.Route("/products/{idOrSlug}", func(r chi.Router) {
			r.Get("/", catalogHandler.GetProduct)
			r.Get("/related", catalogHandler.RelatedProducts)
			r.Get("/reviews", reviewHandler.ListReviews)
			r.Get("/reviews/summary", reviewHandler.ReviewSummary)
			r.With(requireAuth).Post("/reviews", reviewHandler.CreateReview)
		})
		r.Group(func(r chi.Router) {
			r.Use(middleware.CacheControl(categoriesCacheMaxAge))
			r.Get("/categories", catalogHandler.ListCategories)
		})
		r.Get("/categories/{slug}/products", catalogHandler.ListCategoryProducts)

		// Reviews by id
		r.With(requireAuth).Put("/reviews/{id}", reviewHandler.UpdateReview)
		r.With(requireAuth).Delete("/reviews/{id}", reviewHandler.DeleteReview)

		// Recently viewed
		r.Get("/recently-viewed", recentHandler.List)
		r.Delete("/recently-viewed", recentHandler.Clear)

		// Auth
		r.Route("/auth", func(r chi.Router) {
			r.Use(middleware.RateLimit(cfg.AuthRateLimitRPS, cfg.AuthRateLimitBurst, logger))

			r.Post("/signup", authHandler.SignUp)
			r.Post("/signin", authHandler.SignIn)
			r.Post("/refresh", authHandler.Refresh)
			r.With(requireAuth).Post("/signout", authHandler.SignOut)
			r.With(requireAuth).Get("/session", authHandler.Session)
		})

		// Cart and checkout
		r.Group(func(r chi.Router) {
			r.Use(requireAuth)

			r.Get("/cart", cartHandler.GetCart)
			r.Delete("/cart", cartHandler.ClearCart)
			r.Post("/cart/items", cartHandler.AddItem)
			r.Put("/cart/items/{productID}", cartHandler.UpdateItem)
			r.Delete("/cart/items/{productID}", cartHandler.RemoveItem)

			r.Get("/checkout", cartHandler.CheckoutSummary)
			r.Post("/checkout", cartHandler.PlaceOrder)
		})

		// Account
		r.Route("/account", func(r chi.Router) {
			r.Use(requireAuth)

			r.Get("/profile", accountHandler.GetProfile)
			r.Put("/profile", accountHandler.UpdateProfile)
			r.Get("/wishlist", accountHandler.ListWishlist)
			r.Post("/wishlist", accountHandler.AddToWishlist)
			r.Delete("/wishlist/{productID}", accountHandler.RemoveFromWishlist)
			r.Get("/orders", accountHandler.ListOrders)
		})

		// Admin
		r.Route("/admin", func(r chi.Router) {
			r.Use(requireAuth)
			r.Use(middleware.RequireRole(domain.RoleAdmin))

			r.Get("/dashboard", adminHandler.Dashboard)
			r.Get("/users", adminHandler.ListUsers)
			r.Get("/products", adminHandler.ListProducts)
			r.Post("/seed/{set}", adminHandler.Seed)
		})
	})

	return r
}
