package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/auraluxe/auraluxe-backend/api/controllers"
	"github.com/auraluxe/auraluxe-backend/api/middleware"
	"github.com/auraluxe/auraluxe-backend/internal/cart"
	"github.com/auraluxe/auraluxe-backend/internal/catalog"
	checkoutsvc "github.com/auraluxe/auraluxe-backend/internal/checkout"
	"github.com/auraluxe/auraluxe-backend/internal/concierge"
	"github.com/auraluxe/auraluxe-backend/internal/orders"
	"github.com/auraluxe/auraluxe-backend/internal/rates"
	"github.com/auraluxe/auraluxe-backend/pkg/config"
	"github.com/auraluxe/auraluxe-backend/pkg/db"
	"github.com/auraluxe/auraluxe-backend/pkg/logger"
	"github.com/auraluxe/auraluxe-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	catalogService catalog.Service,
	rateService rates.Service,
	cartService cart.Service,
	checkoutService checkoutsvc.Service,
	orderService orders.Service,
	conciergeService *concierge.Service,
	metricsGatherer prometheus.Gatherer,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	if metricsGatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(metricsGatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductList(catalogService, logg))
			r.Get("/{productId}", controllers.ProductDetail(catalogService, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Use(middleware.RequireCartToken(logg))
			r.Get("/", controllers.CartFetch(cartService, logg))
			r.Post("/items", controllers.CartAdd(cartService, logg))
			r.Patch("/items", controllers.CartUpdateQuantity(cartService, logg))
			r.Delete("/items/{productId}", controllers.CartRemove(cartService, logg))
			r.Delete("/", controllers.CartClear(cartService, logg))
		})

		r.With(middleware.RequireCartToken(logg)).
			Post("/checkout", controllers.Checkout(checkoutService, logg))

		r.Get("/rates", controllers.RateList(rateService, logg))

		r.Get("/orders/{reference}", controllers.OrderTrack(orderService, logg))

		if conciergeService != nil {
			r.Post("/concierge", controllers.ConciergeAsk(conciergeService, logg))
		}
	})

	r.Post("/api/admin/v1/auth/login", controllers.AdminLogin(cfg, logg))

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.AdminProductList(catalogService, logg))
			r.Post("/", controllers.AdminProductCreate(catalogService, logg))
			r.Put("/{productId}/stock", controllers.AdminProductSetStock(catalogService, logg))
			r.Post("/{productId}/toggle", controllers.AdminProductToggle(catalogService, logg))
		})

		r.Route("/rates", func(r chi.Router) {
			r.Get("/", controllers.AdminRateList(rateService, logg))
			r.Put("/", controllers.AdminRateUpsert(rateService, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.AdminOrderList(orderService, logg))
			r.Get("/{orderId}", controllers.AdminOrderDetail(orderService, logg))
			r.Put("/{orderId}/status", controllers.AdminOrderUpdateStatus(orderService, logg))
		})
	})

	return r
}
