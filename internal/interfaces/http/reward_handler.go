package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ecopuntos/reciclaje-api/internal/application/coupons"
	"github.com/ecopuntos/reciclaje-api/internal/application/dto"
	"github.com/ecopuntos/reciclaje-api/internal/application/rewards"
	"github.com/ecopuntos/reciclaje-api/internal/domain/entity"
)

// RewardHandler maneja la tienda de recompensas: artículos, canjes e historial.
type RewardHandler struct {
	uc     *rewards.UseCase
	redeem *coupons.RedeemUseCase
	errs   errorWriter
}

// NewRewardHandler construye el handler.
func NewRewardHandler(uc *rewards.UseCase, redeem *coupons.RedeemUseCase, errs errorWriter) *RewardHandler {
	return &RewardHandler{uc: uc, redeem: redeem, errs: errs}
}

// List godoc
// @Summary      Listar artículos de la tienda
// @Tags         rewards
// @Security     Bearer
// @Produce      json
// @Param        all    query  bool  false  "incluir inactivos (solo admin los ve)"
// @Param        page   query  int   false  "página"
// @Param        limit  query  int   false  "filas por página"
// @Success      200  {object}  dto.RewardItemListResponse
// @Router       /api/rewards [get]
func (h *RewardHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválido"})
	}
	includeInactive := c.QueryBool("all") && GetRole(c) == entity.RoleAdmin
	resp, err := h.uc.ListItems(c.Context(), includeInactive, page)
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.JSON(resp)
}

// Create godoc
// @Summary      Crear artículo (admin)
// @Tags         rewards
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRewardItemRequest  true  "name único, cost >= 1, stock >= 0"
// @Success      201  {object}  dto.RewardItemDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/rewards [post]
func (h *RewardHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRewardItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	item, err := h.uc.CreateItem(c.Context(), in)
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// Update godoc
// @Summary      Modificar artículo (admin)
// @Tags         rewards
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                       true  "id del artículo"
// @Param        body  body  dto.UpdateRewardItemRequest  true  "campos a modificar"
// @Success      200  {object}  dto.RewardItemDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/rewards/{id} [put]
func (h *RewardHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateRewardItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	item, err := h.uc.UpdateItem(c.Context(), c.Params("id"), in)
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.JSON(item)
}

// Redeem godoc
// @Summary      Canjear cupones por un artículo
// @Description  Verifica artículo activo, stock y saldo dentro de la misma
//
//	transacción que aplica el canje; todo o nada.
//
// @Tags         rewards
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string             true  "id del artículo"
// @Param        body  body  dto.RedeemRequest  true  "quantity >= 1, notes opcional"
// @Success      200  {object}  dto.RedeemResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/rewards/{id}/redeem [post]
func (h *RewardHandler) Redeem(c *fiber.Ctx) error {
	var in dto.RedeemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.redeem.Redeem(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.JSON(resp)
}

// ListRedemptions godoc
// @Summary      Historial de canjes
// @Tags         rewards
// @Security     Bearer
// @Produce      json
// @Param        page   query  int  false  "página"
// @Param        limit  query  int  false  "filas por página"
// @Success      200  {object}  dto.RedemptionListResponse
// @Router       /api/rewards/redemptions [get]
func (h *RewardHandler) ListRedemptions(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválido"})
	}
	resp, err := h.uc.ListRedemptions(c.Context(), page)
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.JSON(resp)
}
