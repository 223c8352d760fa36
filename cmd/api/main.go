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

	appauth "github.com/ecopuntos/reciclaje-api/internal/application/auth"
	"github.com/ecopuntos/reciclaje-api/internal/application/coupons"
	"github.com/ecopuntos/reciclaje-api/internal/application/rewards"
	"github.com/ecopuntos/reciclaje-api/internal/application/waste"
	"github.com/ecopuntos/reciclaje-api/internal/infrastructure/postgres"
	httpRouter "github.com/ecopuntos/reciclaje-api/internal/interfaces/http"
	"github.com/ecopuntos/reciclaje-api/pkg/config"
	"github.com/ecopuntos/reciclaje-api/pkg/logger"
)

// Spec OpenAPI versionado que sirve el middleware de swagger. La ruta es
// relativa a la raíz del repo, desde donde arranca el binario.
const swaggerSpecPath = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
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

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migración del esquema")
	}

	retryCfg := postgres.RetryConfig{
		MaxAttempts: cfg.Retry.MaxAttempts,
		BaseDelay:   cfg.Retry.BaseDelay,
	}
	txRunner := postgres.NewTxRunner(pool, retryCfg, log)
	couponRepo := postgres.NewCouponRepository(pool)
	itemRepo := postgres.NewRewardItemRepository(pool)
	redemptionRepo := postgres.NewRedemptionRepository(pool)
	wasteRepo := postgres.NewWasteRecordRepository(pool)
	userRepo := postgres.NewUserRepository(pool)

	mutatorUC := coupons.NewMutatorUseCase(txRunner, log)
	redeemUC := coupons.NewRedeemUseCase(txRunner, log)
	queryUC := coupons.NewQueryUseCase(couponRepo)
	rewardsUC := rewards.NewUseCase(itemRepo, redemptionRepo)
	wasteUC := waste.NewUseCase(wasteRepo, mutatorUC, log)
	authUC := appauth.NewUseCase(userRepo, appauth.JWTConfig{
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
		FilePath: swaggerSpecPath,
		Path:     "docs",
		Title:    "EcoPuntos API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CouponQuery:   queryUC,
		CouponMutator: mutatorUC,
		Redeem:        redeemUC,
		RewardsUC:     rewardsUC,
		WasteUC:       wasteUC,
		AuthUC:        authUC,
		JWTSecret:     cfg.JWT.Secret,
		Production:    cfg.App.IsProduction(),
		Log:           log,
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
