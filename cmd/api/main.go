package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/kabidey/privity-sub000/internal/application/auth"
	"github.com/kabidey/privity-sub000/internal/application/booking"
	"github.com/kabidey/privity-sub000/internal/application/inventory"
	"github.com/kabidey/privity-sub000/internal/application/sequence"
	"github.com/kabidey/privity-sub000/internal/application/usecase"
	"github.com/kabidey/privity-sub000/internal/infrastructure/postgres"
	"github.com/kabidey/privity-sub000/internal/infrastructure/rabbitmq"
	infraredis "github.com/kabidey/privity-sub000/internal/infrastructure/redis"
	httpRouter "github.com/kabidey/privity-sub000/internal/interfaces/http"
	"github.com/kabidey/privity-sub000/pkg/config"
	"github.com/kabidey/privity-sub000/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	securityRepo := postgres.NewSecurityRepository(pool)
	lotRepo := postgres.NewPurchaseLotRepository(pool)
	bookingRepo := postgres.NewBookingRepository(pool)
	snapshotRepo := postgres.NewSnapshotRepository(pool)
	counterRepo := postgres.NewCounterRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	vendorRepo := postgres.NewVendorRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Cache de snapshots: opcional. Sin REDIS_ADDR el proyector lee siempre la DB.
	var cache inventory.SnapshotCache
	if cfg.Redis.Addr != "" {
		redisCache, err := infraredis.NewSnapshotCache(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer redisCache.Close()
		cache = redisCache
	}

	// Publisher de eventos: opcional. Sin AMQP_URL los eventos solo quedan en el log.
	var events booking.EventPublisher
	if cfg.AMQP.URL != "" {
		publisher, err := rabbitmq.NewPublisher(cfg.AMQP)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a RabbitMQ")
		}
		defer publisher.Close()
		events = publisher
	}

	seq := sequence.NewGenerator(counterRepo)
	projector := inventory.NewProjector(lotRepo, bookingRepo, snapshotRepo, txRunner, cache, log)
	ledger := inventory.NewLedger(lotRepo, securityRepo, vendorRepo, seq, projector)
	lifecycle := booking.NewLifecycle(
		txRunner, securityRepo, clientRepo, bookingRepo, paymentRepo,
		seq, projector, booking.DefaultCapabilities(), events, log,
	)

	securityUC := usecase.NewSecurityUseCase(securityRepo)
	directoryUC := usecase.NewDirectoryUseCase(clientRepo, vendorRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Privity Back-Office API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		SecurityUC:  securityUC,
		DirectoryUC: directoryUC,
		Ledger:      ledger,
		Projector:   projector,
		Lifecycle:   lifecycle,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
