package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ghorkotha/ghorkotha-backend/api/routes"
	authsvc "github.com/ghorkotha/ghorkotha-backend/internal/auth"
	"github.com/ghorkotha/ghorkotha-backend/internal/cart"
	categorysvc "github.com/ghorkotha/ghorkotha-backend/internal/categories"
	checkoutsvc "github.com/ghorkotha/ghorkotha-backend/internal/checkout"
	ordersvc "github.com/ghorkotha/ghorkotha-backend/internal/orders"
	productsvc "github.com/ghorkotha/ghorkotha-backend/internal/products"
	themesvc "github.com/ghorkotha/ghorkotha-backend/internal/themes"
	whatsappsvc "github.com/ghorkotha/ghorkotha-backend/internal/whatsapp"
	"github.com/ghorkotha/ghorkotha-backend/pkg/colorspace"
	"github.com/ghorkotha/ghorkotha-backend/pkg/config"
	"github.com/ghorkotha/ghorkotha-backend/pkg/db"
	"github.com/ghorkotha/ghorkotha-backend/pkg/logger"
	"github.com/ghorkotha/ghorkotha-backend/pkg/metrics"
	"github.com/ghorkotha/ghorkotha-backend/pkg/migrate"
	"github.com/ghorkotha/ghorkotha-backend/pkg/redis"
)

// Server-side carts outlive browser sessions by a wide margin so a
// returning shopper finds their cart where they left it.
const cartTTL = 30 * 24 * time.Hour

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	syncMetrics := metrics.NewThemeSyncMetrics(prometheus.DefaultRegisterer)

	authService, err := authsvc.NewService(dbClient.DB(), cfg.JWT, cfg.Password, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	categoryRepo := categorysvc.NewRepository(dbClient.DB())
	categoryService, err := categorysvc.NewService(categoryRepo, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create category service", err)
		os.Exit(1)
	}

	productService, err := productsvc.NewService(productsvc.NewRepository(dbClient.DB()), categoryRepo, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create product service", err)
		os.Exit(1)
	}

	orderService, err := ordersvc.NewService(ordersvc.NewRepository(dbClient.DB()), dbClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create order service", err)
		os.Exit(1)
	}

	whatsappService, err := whatsappsvc.NewService(dbClient.DB(), cfg.WhatsApp, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create whatsapp service", err)
		os.Exit(1)
	}

	cartSessions, err := cart.NewSessions(cart.NewRedisPersister(redisClient, cartTTL), logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart sessions", err)
		os.Exit(1)
	}

	checkoutService, err := checkoutsvc.NewService(productService, orderService, whatsappService, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	themeService, err := themesvc.NewService(themesvc.NewRepository(dbClient.DB()), logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create theme service", err)
		os.Exit(1)
	}

	applier := themesvc.NewApplier(colorspace.NewConverter(cfg.Theme.ColorCacheSize), cfg.Theme.TransitionWindow)
	presence := themesvc.NewPresence(cfg.Theme.PresenceTimeout)

	broadcaster, err := themesvc.NewBroadcaster(
		themesvc.NewRedisTransport(redisClient),
		cfg.Theme.BroadcastFreshness,
		syncMetrics,
		logg,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create theme broadcaster", err)
		os.Exit(1)
	}

	// One instance per deployment polls the database; the others follow
	// the broadcast channel and take over when the lock expires.
	pollLock, err := themesvc.NewRedisLock(redisClient, redisClient.LockKey(themesvc.PollerLockName), 0)
	if err != nil {
		logg.Error(context.Background(), "failed to create theme poll lock", err)
		os.Exit(1)
	}

	poller, err := themesvc.NewPoller(
		themeService,
		applier,
		broadcaster,
		presence,
		pollLock,
		cfg.Theme.PollInterval,
		cfg.Theme.MaxPollFailures,
		syncMetrics,
		logg,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create theme poller", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		if err := poller.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logg.Error(ctx, "theme poller stopped unexpectedly", err)
		}
	}()
	go func() {
		err := broadcaster.Listen(ctx, func(event themesvc.ChangeEvent) {
			applier.Apply(event.Theme)
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			logg.Error(ctx, "theme broadcast listener stopped unexpectedly", err)
		}
	}()

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	runCtx := logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(runCtx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, routes.Services{
			Auth:     authService,
			Sessions: cartSessions,
			Products: productService,
			Category: categoryService,
			Orders:   orderService,
			Themes:   themeService,
			Applier:  applier,
			Presence: presence,
			Poller:   poller,
			WhatsApp: whatsappService,
			Checkout: checkoutService,
		}),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(runCtx, "error shutting down api server", err)
		}
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(runCtx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}

	logg.Info(runCtx, "api server shut down gracefully")
}
