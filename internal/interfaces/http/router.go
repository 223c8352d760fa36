package http

import (
	"github.com/gofiber/fiber/v2"

	appauth "github.com/ecopuntos/reciclaje-api/internal/application/auth"
	"github.com/ecopuntos/reciclaje-api/internal/application/coupons"
	"github.com/ecopuntos/reciclaje-api/internal/application/rewards"
	"github.com/ecopuntos/reciclaje-api/internal/application/waste"
	"github.com/ecopuntos/reciclaje-api/internal/domain/entity"
	"github.com/ecopuntos/reciclaje-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CouponQuery   *coupons.QueryUseCase
	CouponMutator *coupons.MutatorUseCase
	Redeem        *coupons.RedeemUseCase
	RewardsUC     *rewards.UseCase
	WasteUC       *waste.UseCase
	AuthUC        *appauth.UseCase
	JWTSecret     string
	Production    bool
	Log           *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	errs := errorWriter{production: deps.Production, log: deps.Log}
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, errs)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Libro de cupones (protegido; abonos y ajustes solo admin)
	couponsGroup := protected.Group("/coupons")
	couponHandler := NewCouponHandler(deps.CouponQuery, deps.CouponMutator, errs)
	couponsGroup.Get("/balance", couponHandler.GetBalance)
	couponsGroup.Get("/transactions", couponHandler.ListTransactions)
	couponsGroup.Get("/summary", couponHandler.GetSummary)
	couponsGroup.Post("/add", RequireRole(entity.RoleAdmin), couponHandler.Add)
	couponsGroup.Post("/adjust", RequireRole(entity.RoleAdmin), couponHandler.Adjust)

	// Tienda de recompensas (protegido; CRUD solo admin)
	rewardsGroup := protected.Group("/rewards")
	rewardHandler := NewRewardHandler(deps.RewardsUC, deps.Redeem, errs)
	rewardsGroup.Get("/", rewardHandler.List)
	rewardsGroup.Post("/", RequireRole(entity.RoleAdmin), rewardHandler.Create)
	rewardsGroup.Get("/redemptions", rewardHandler.ListRedemptions)
	rewardsGroup.Put("/:id", RequireRole(entity.RoleAdmin), rewardHandler.Update)
	rewardsGroup.Post("/:id/redeem", rewardHandler.Redeem)

	// Registros de residuos (protegido)
	wasteGroup := protected.Group("/waste-records")
	wasteHandler := NewWasteHandler(deps.WasteUC, errs)
	wasteGroup.Post("/", wasteHandler.Submit)
	wasteGroup.Get("/", wasteHandler.List)
}
