package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ecopuntos/reciclaje-api/internal/application/coupons"
	"github.com/ecopuntos/reciclaje-api/internal/application/dto"
)

// CouponHandler maneja las peticiones HTTP del libro de cupones.
type CouponHandler struct {
	query   *coupons.QueryUseCase
	mutator *coupons.MutatorUseCase
	errs    errorWriter
}

// NewCouponHandler construye el handler.
func NewCouponHandler(query *coupons.QueryUseCase, mutator *coupons.MutatorUseCase, errs errorWriter) *CouponHandler {
	return &CouponHandler{query: query, mutator: mutator, errs: errs}
}

// GetBalance godoc
// @Summary      Saldo actual de cupones
// @Tags         coupons
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.BalanceResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/coupons/balance [get]
func (h *CouponHandler) GetBalance(c *fiber.Ctx) error {
	resp, err := h.query.Balance(c.Context())
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.JSON(resp)
}

// ListTransactions godoc
// @Summary      Historial del libro de cupones
// @Tags         coupons
// @Security     Bearer
// @Produce      json
// @Param        period  query  string  false  "today | week | month | year"
// @Param        type    query  string  false  "ADD | CONSUME | ADJUST"
// @Param        page    query  int     false  "página (desde 1)"
// @Param        limit   query  int     false  "filas por página (máx 100)"
// @Success      200  {object}  dto.TransactionListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/coupons/transactions [get]
func (h *CouponHandler) ListTransactions(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválido"})
	}
	resp, err := h.query.Transactions(c.Context(), c.Query("period"), c.Query("type"), page)
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.JSON(resp)
}

// GetSummary godoc
// @Summary      Resumen periódico de abonos y débitos
// @Tags         coupons
// @Security     Bearer
// @Produce      json
// @Param        period  query  string  false  "daily | weekly | monthly"
// @Success      200  {object}  dto.SummaryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/coupons/summary [get]
func (h *CouponHandler) GetSummary(c *fiber.Ctx) error {
	resp, err := h.query.Summary(c.Context(), c.Query("period"))
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.JSON(resp)
}

// Add godoc
// @Summary      Abonar cupones (admin)
// @Tags         coupons
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddRequest  true  "amount > 0, notes opcional"
// @Success      200  {object}  dto.MutationResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/coupons/add [post]
func (h *CouponHandler) Add(c *fiber.Ctx) error {
	var in dto.AddRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.mutator.Add(c.Context(), GetUserID(c), in)
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.JSON(resp)
}

// Adjust godoc
// @Summary      Ajustar saldo de cupones (admin)
// @Tags         coupons
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustRequest  true  "amount != 0 con signo, reason obligatorio"
// @Success      200  {object}  dto.MutationResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/coupons/adjust [post]
func (h *CouponHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.mutator.Adjust(c.Context(), GetUserID(c), in)
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.JSON(resp)
}
