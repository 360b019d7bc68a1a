package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ghorkotha/ghorkotha-backend/api/controllers"
	"github.com/ghorkotha/ghorkotha-backend/api/middleware"
	authsvc "github.com/ghorkotha/ghorkotha-backend/internal/auth"
	"github.com/ghorkotha/ghorkotha-backend/internal/cart"
	categorysvc "github.com/ghorkotha/ghorkotha-backend/internal/categories"
	checkoutsvc "github.com/ghorkotha/ghorkotha-backend/internal/checkout"
	ordersvc "github.com/ghorkotha/ghorkotha-backend/internal/orders"
	productsvc "github.com/ghorkotha/ghorkotha-backend/internal/products"
	themesvc "github.com/ghorkotha/ghorkotha-backend/internal/themes"
	whatsappsvc "github.com/ghorkotha/ghorkotha-backend/internal/whatsapp"
	"github.com/ghorkotha/ghorkotha-backend/pkg/config"
	"github.com/ghorkotha/ghorkotha-backend/pkg/db"
	"github.com/ghorkotha/ghorkotha-backend/pkg/logger"
	"github.com/ghorkotha/ghorkotha-backend/pkg/redis"
)

// Services bundles everything the router mounts.
type Services struct {
	Auth     *authsvc.Service
	Sessions *cart.Sessions
	Products *productsvc.Service
	Category *categorysvc.Service
	Orders   *ordersvc.Service
	Themes   *themesvc.Service
	Applier  *themesvc.Applier
	Presence *themesvc.Presence
	Poller   *themesvc.Poller
	WhatsApp *whatsappsvc.Service
	Checkout *checkoutsvc.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", controllers.AdminLogin(svcs.Auth, logg))

		r.Route("/theme", func(r chi.Router) {
			r.Get("/active", controllers.ActiveTheme(svcs.Themes, logg))
			r.Get("/css", controllers.ThemeStylesheet(svcs.Applier))
		})

		r.Get("/whatsapp/chat-link", controllers.WhatsAppChatLink(svcs.WhatsApp, logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(svcs.Products, logg))
			r.Get("/{productId}", controllers.GetProduct(svcs.Products, logg))
		})

		r.Get("/categories", controllers.ListCategories(svcs.Category, logg))

		// Everything touching the cart runs behind the session cookie.
		r.Group(func(r chi.Router) {
			r.Use(middleware.CartSession(svcs.Sessions, logg))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.CartFetch(logg))
				r.Delete("/", controllers.CartClear(logg))
				r.Post("/load", controllers.CartLoad(svcs.Products, logg))
				r.Post("/items", controllers.CartAddItem(svcs.Products, logg))
				r.Put("/items/{productId}", controllers.CartSetQuantity(logg))
				r.Delete("/items/{productId}", controllers.CartRemoveItem(logg))
			})

			r.Post("/checkout", controllers.Checkout(svcs.Checkout, logg))
		})
	})

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(middleware.AdminAuth(svcs.Auth, logg))

		r.Get("/me", controllers.AdminMe(logg))

		r.Route("/themes", func(r chi.Router) {
			r.Get("/", controllers.AdminListThemes(svcs.Themes, logg))
			r.Post("/", controllers.AdminCreateTheme(svcs.Themes, logg))
			r.Get("/{themeId}", controllers.AdminGetTheme(svcs.Themes, logg))
			r.Put("/{themeId}", controllers.AdminUpdateTheme(svcs.Themes, logg))
			r.Delete("/{themeId}", controllers.AdminDeleteTheme(svcs.Themes, logg))
			r.Post("/{themeId}/activate", controllers.AdminActivateTheme(svcs.Themes, svcs.Poller, logg))
		})
		r.Post("/theme/heartbeat", controllers.ThemeHeartbeat(svcs.Presence, svcs.Poller, logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.AdminListProducts(svcs.Products, logg))
			r.Post("/", controllers.AdminCreateProduct(svcs.Products, logg))
			r.Get("/{productId}", controllers.AdminGetProduct(svcs.Products, logg))
			r.Put("/{productId}", controllers.AdminUpdateProduct(svcs.Products, logg))
			r.Delete("/{productId}", controllers.AdminDeleteProduct(svcs.Products, logg))
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", controllers.AdminListCategories(svcs.Category, logg))
			r.Post("/", controllers.AdminCreateCategory(svcs.Category, logg))
			r.Get("/{categoryId}", controllers.AdminGetCategory(svcs.Category, logg))
			r.Put("/{categoryId}", controllers.AdminUpdateCategory(svcs.Category, logg))
			r.Delete("/{categoryId}", controllers.AdminDeleteCategory(svcs.Category, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.AdminListOrders(svcs.Orders, logg))
			r.Get("/{orderId}", controllers.AdminGetOrder(svcs.Orders, logg))
			r.Patch("/{orderId}/status", controllers.AdminUpdateOrderStatus(svcs.Orders, logg))
		})

		r.Route("/whatsapp", func(r chi.Router) {
			r.Get("/settings", controllers.AdminWhatsAppSettings(svcs.WhatsApp, logg))
			r.Put("/settings", controllers.AdminUpdateWhatsAppSettings(svcs.WhatsApp, logg))
		})
	})

	return r
}
