package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jambidev/barokah/internal/adminauth"
	"github.com/jambidev/barokah/internal/auth"
	"github.com/jambidev/barokah/internal/bookings"
	"github.com/jambidev/barokah/internal/cache"
	"github.com/jambidev/barokah/internal/config"
	"github.com/jambidev/barokah/internal/dashboard"
	"github.com/jambidev/barokah/internal/db"
	"github.com/jambidev/barokah/internal/metrics"
	"github.com/jambidev/barokah/internal/middleware"
	"github.com/jambidev/barokah/internal/notify"
	"github.com/jambidev/barokah/internal/printerbrands"
	"github.com/jambidev/barokah/internal/problemcats"
	"github.com/jambidev/barokah/internal/technicians"
	"github.com/jambidev/barokah/internal/transport"
	"github.com/jambidev/barokah/internal/validation"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, cols, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		logger.Error("mongo connection failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("mongo connected")
	defer client.Disconnect(context.Background())

	if err := db.EnsureIndexes(ctx, cols); err != nil {
		logger.Error("index creation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var cacheStore cache.Cache = cache.NewNoop()
	if cfg.RedisURL != "" || cfg.RedisAddr != "" {
		var redisCache *cache.RedisCache
		var err error
		if cfg.RedisURL != "" {
			redisCache, err = cache.NewRedisFromURL(cfg.RedisURL)
		} else {
			redisCache = cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		}
		if err != nil {
			logger.Error("redis connection failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		if err := redisCache.Ping(ctx); err != nil {
			logger.Error("redis connection failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("redis connected")
		cacheStore = redisCache
	}

	metrics.Register()

	var jwtManager *auth.Manager
	if cfg.JWTSecret != "" {
		jwtManager = &auth.Manager{
			Secret:     []byte(cfg.JWTSecret),
			AccessTTL:  time.Duration(cfg.AccessTTLMinutes) * time.Minute,
			RefreshTTL: time.Duration(cfg.RefreshTTLMinutes) * time.Minute,
			Issuer:     "barokah-backend",
		}
	}

	val := validation.New()
	cacheTTL := time.Duration(cfg.CacheTTLSeconds) * time.Second

	bookingsRepo := bookings.NewRepository(cols.Bookings, cols.BookingTimeline)
	bookingsService := bookings.NewService(bookingsRepo, cfg.Timezone)
	bookingsHandler := bookings.NewHandler(bookingsService, val, logger)

	techniciansRepo := technicians.NewRepository(cols.Technicians)
	techniciansService := technicians.NewService(techniciansRepo, cfg.Timezone)
	techniciansHandler := technicians.NewHandler(techniciansService, val, logger, cacheStore, cacheTTL)

	brandsRepo := printerbrands.NewRepository(cols.PrinterBrands)
	brandsService := printerbrands.NewService(brandsRepo, cfg.Timezone)
	brandsHandler := printerbrands.NewHandler(brandsService, val, logger, cacheStore, cacheTTL)

	categoriesRepo := problemcats.NewRepository(cols.ProblemCategories)
	categoriesService := problemcats.NewService(categoriesRepo, cfg.Timezone)
	categoriesHandler := problemcats.NewHandler(categoriesService, val, logger, cacheStore, cacheTTL)

	usersRepo := adminauth.NewRepository(cols.Users)
	usersService := adminauth.NewService(usersRepo, cfg.Timezone, cfg.AdminUser, cfg.AdminPassword)
	var authHandler *adminauth.Handler
	if jwtManager != nil {
		authHandler = adminauth.NewHandler(usersService, *jwtManager, val, logger, cfg.AdminSetupKey, cfg.CookieSecure)
	} else {
		authHandler = adminauth.NewHandler(usersService, auth.Manager{}, val, logger, cfg.AdminSetupKey, cfg.CookieSecure)
	}

	notifier := notify.New(notify.DefaultCap, notify.DefaultTTL)
	defer notifier.Close()
	messenger := notify.NewWhatsAppClient(cfg.WhatsAppPhone, logger)
	if messenger == nil {
		logger.Info("whatsapp messenger disabled")
	} else {
		logger.Info("whatsapp messenger enabled")
	}

	gateway := dashboard.ServiceGateway{
		Bookings:    bookingsService,
		Technicians: techniciansService,
		Brands:      brandsService,
		Categories:  categoriesService,
	}
	var dashMessenger dashboard.Messenger
	if messenger != nil {
		dashMessenger = messenger
	}
	controller := dashboard.NewController(gateway, bookingsService, notifier, dashMessenger, logger)
	dashboardHandler := dashboard.NewHandler(controller, val, logger)

	pollCtx, stopPoller := context.WithCancel(context.Background())
	poller := dashboard.NewPoller(controller, time.Duration(cfg.PollIntervalSeconds)*time.Second, logger)
	go poller.Run(pollCtx)

	r := chi.NewRouter()
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS(cfg.FrontendOrigin))
	r.Use(chiMiddleware.Timeout(30 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		transport.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	bookingLimiter := middleware.NewRateLimiter(cfg.RateLimitBookings, time.Duration(cfg.RateLimitWindowSec)*time.Second)

	r.Route("/api", func(api chi.Router) {
		api.Get("/brands", brandsHandler.PublicList)
		api.Get("/problem-categories", categoriesHandler.PublicList)
		api.Get("/technicians", techniciansHandler.PublicList)

		api.With(bookingLimiter.Middleware).Post("/bookings", bookingsHandler.Create)
		api.Post("/bookings/lookup", bookingsHandler.Lookup)
		api.Get("/bookings/{id}", bookingsHandler.Get)
		api.Get("/bookings/{id}/timeline", bookingsHandler.Timeline)

		api.Route("/admin", func(admin chi.Router) {
			admin.Post("/register", authHandler.Register)
			admin.Post("/login", authHandler.Login)
			admin.Post("/refresh", authHandler.Refresh)
			admin.Post("/logout", authHandler.Logout)

			// chi requires middlewares before routes; session endpoints above
			// stay public, everything else goes through the sub-router.
			admin.Group(func(protected chi.Router) {
				protected.Use(middleware.AdminAuth(cfg.AdminAPIKey, jwtManager))

				protected.Get("/dashboard", dashboardHandler.Overview)
				protected.Get("/dashboard/snapshot", dashboardHandler.Snapshot)
				protected.Get("/dashboard/bookings", dashboardHandler.Bookings)
				protected.Post("/dashboard/refresh", dashboardHandler.Refresh)
				protected.Get("/dashboard/notifications", dashboardHandler.Notifications)
				protected.Delete("/dashboard/notifications/{id}", dashboardHandler.DismissNotification)
				protected.Patch("/dashboard/notifications/{id}/read", dashboardHandler.MarkNotificationRead)

				protected.Get("/bookings", bookingsHandler.AdminList)
				protected.Get("/bookings/{id}/timeline", bookingsHandler.AdminTimeline)
				protected.Patch("/bookings/{id}/status", dashboardHandler.UpdateStatus)
				protected.Patch("/bookings/{id}/technician", dashboardHandler.AssignTechnician)
				protected.Patch("/bookings/{id}/cost", dashboardHandler.UpdateCost)

				protected.Get("/technicians", techniciansHandler.AdminList)
				protected.Post("/technicians", techniciansHandler.AdminCreate)
				protected.Put("/technicians/{id}", techniciansHandler.AdminUpdate)
				protected.Delete("/technicians/{id}", techniciansHandler.AdminDelete)

				protected.Get("/brands", brandsHandler.AdminList)
				protected.Post("/brands", brandsHandler.AdminCreate)
				protected.Put("/brands/{id}", brandsHandler.AdminUpdate)
				protected.Post("/brands/{id}/models", brandsHandler.AdminAddModel)

				protected.Get("/problem-categories", categoriesHandler.AdminList)
				protected.Post("/problem-categories", categoriesHandler.AdminCreate)
				protected.Put("/problem-categories/{id}", categoriesHandler.AdminUpdate)
				protected.Delete("/problem-categories/{id}", categoriesHandler.AdminDelete)
				protected.Post("/problem-categories/{id}/problems", categoriesHandler.AdminAddProblem)

				protected.Post("/users", authHandler.CreateUser)
				protected.Patch("/users/{id}/password", authHandler.UpdateUserPassword)
			})
		})
	})

	srv := &http.Server{
		Addr:    cfg.ServerAddr,
		Handler: r,
	}

	go func() {
		logger.Info("server started", slog.String("addr", cfg.ServerAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.String("error", err.Error()))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	stopPoller()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.String("error", err.Error()))
	}
}
