package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ecopuntos/reciclaje-api/internal/application/dto"
	"github.com/ecopuntos/reciclaje-api/internal/application/waste"
)

// WasteHandler maneja el registro y consulta de residuos.
type WasteHandler struct {
	uc   *waste.UseCase
	errs errorWriter
}

// NewWasteHandler construye el handler.
func NewWasteHandler(uc *waste.UseCase, errs errorWriter) *WasteHandler {
	return &WasteHandler{uc: uc, errs: errs}
}

// Submit godoc
// @Summary      Registrar residuos del día
// @Description  Guarda el registro y dispara el débito de cupones asociado.
//
//	Un saldo insuficiente omite el débito pero no hace fallar el registro.
//
// @Tags         waste
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SubmitWasteRequest  true  "category, weight (kg), couponCost opcional"
// @Success      201  {object}  dto.SubmitWasteResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/waste-records [post]
func (h *WasteHandler) Submit(c *fiber.Ctx) error {
	var in dto.SubmitWasteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.Submit(c.Context(), GetUserID(c), in)
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// List godoc
// @Summary      Listar registros de residuos
// @Tags         waste
// @Security     Bearer
// @Produce      json
// @Param        from   query  string  false  "fecha inicial (YYYY-MM-DD)"
// @Param        to     query  string  false  "fecha final (YYYY-MM-DD)"
// @Param        page   query  int     false  "página"
// @Param        limit  query  int     false  "filas por página"
// @Success      200  {object}  dto.WasteRecordListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/waste-records [get]
func (h *WasteHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválido"})
	}
	from, err := parseDate(c.Query("from"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "from inválido (YYYY-MM-DD)"})
	}
	to, err := parseDate(c.Query("to"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "to inválido (YYYY-MM-DD)"})
	}
	// El límite superior cubre el día completo
	if to != nil {
		end := to.AddDate(0, 0, 1).Add(-time.Nanosecond)
		to = &end
	}
	resp, err := h.uc.List(c.Context(), from, to, page)
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.JSON(resp)
}

func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
