package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/fairyhunter13/storefront-checkout/internal/cart"
	"github.com/fairyhunter13/storefront-checkout/internal/config"
	"github.com/fairyhunter13/storefront-checkout/internal/handler"
	"github.com/fairyhunter13/storefront-checkout/internal/migrate"
	"github.com/fairyhunter13/storefront-checkout/internal/region"
	"github.com/fairyhunter13/storefront-checkout/internal/repository"
	"github.com/fairyhunter13/storefront-checkout/internal/service"
	"github.com/fairyhunter13/storefront-checkout/internal/validator"
	"github.com/fairyhunter13/storefront-checkout/pkg/cache"
	"github.com/fairyhunter13/storefront-checkout/pkg/database"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	initLogger(cfg)

	ctx := context.Background()

	pool, err := database.NewPool(ctx, cfg.DB.DSN(), cfg.DB.MaxRetries)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	if cfg.DB.AutoMigrate {
		if err := migrate.Apply(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("failed to apply database migrations")
		}
	}

	// Carts live in process memory unless CART_STORE=redis.
	var (
		sessions    cart.SessionStore
		redisClient *redis.Client
		cachePinger handler.Pinger
	)
	if cfg.Cart.UseRedis() {
		redisClient, err = cache.NewRedisClient(ctx, cache.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, cfg.Redis.MaxRetries)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		sessions = cart.NewRedisSessionStore(redisClient, cfg.Cart.TTL)
		cachePinger = cache.Pinger{Client: redisClient}
	} else {
		sessions = cart.NewMemorySessionStore()
	}
	log.Info().Str("store", cfg.Cart.Store).Dur("ttl", cfg.Cart.TTL).Msg("cart session store ready")

	app := fiber.New(fiber.Config{
		AppName:      "Storefront Checkout",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
		BodyLimit:    1 * 1024 * 1024,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.Server.AllowOrigins,
		AllowMethods:  "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:  "Origin,Content-Type,Accept," + handler.HeaderSessionID,
		ExposeHeaders: handler.HeaderSessionID,
	}))

	validate := validator.New()
	regions := region.NewTable()

	promoRepo := repository.NewPromoCodeRepository(pool)
	productRepo := repository.NewProductRepository(pool)
	orderRepo := repository.NewOrderRepository(pool)

	promoService := service.NewPromoCodeService(pool, promoRepo)
	cartService := service.NewCartService(sessions, productRepo, promoService, regions)
	checkoutService := service.NewCheckoutService(orderRepo, sessions, promoService, regions)

	promoHandler := handler.NewPromoCodeHandler(promoService, validate)
	cartHandler := handler.NewCartHandler(cartService, validate)
	checkoutHandler := handler.NewCheckoutHandler(checkoutService, validate)

	healthHandler := handler.NewHealthHandler(pool, cachePinger)
	app.Get("/health", healthHandler.Check)

	api := app.Group("/api")

	// Storefront routes
	api.Get("/regions", cartHandler.Regions)
	api.Get("/cart", cartHandler.Get)
	api.Delete("/cart", cartHandler.Clear)
	api.Post("/cart/items", cartHandler.AddItem)
	api.Patch("/cart/items", cartHandler.UpdateQuantity)
	api.Delete("/cart/items", cartHandler.RemoveItem)
	api.Put("/cart/region", cartHandler.SetRegion)
	api.Post("/cart/promo", cartHandler.ApplyPromoCode)
	api.Delete("/cart/promo", cartHandler.RemovePromoCode)
	api.Post("/promo-codes/validate", promoHandler.Validate)
	api.Post("/checkout", checkoutHandler.SubmitOrder)

	// Admin routes
	admin := api.Group("/admin")
	admin.Post("/promo-codes", promoHandler.Create)
	admin.Get("/promo-codes", promoHandler.List)
	admin.Delete("/promo-codes/:id", promoHandler.Delete)
	admin.Get("/orders", checkoutHandler.ListOrders)

	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("starting server")
		if err := app.Listen(":" + cfg.Server.Port); err != nil {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("received shutdown signal")
	log.Info().Int("timeout_seconds", cfg.Server.ShutdownTimeout).Msg("shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer shutdownCancel()

	log.Info().Msg("waiting for in-flight requests to complete...")
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during server shutdown")
	}

	// Backing stores close only after in-flight requests have drained.
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error().Err(err).Msg("error closing redis client")
		}
		log.Info().Msg("redis connection closed")
	}

	log.Info().Msg("closing database connections...")
	pool.Close()
	log.Info().Msg("database connections closed")
	log.Info().Msg("server stopped")
}

// initLogger configures zerolog based on the application configuration.
func initLogger(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Log.Pretty {
		// Human-readable output for development
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).
			With().Timestamp().Logger()
	} else {
		zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	}
}
