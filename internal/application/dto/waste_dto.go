package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ecopuntos/reciclaje-api/internal/domain/entity"
)

// SubmitWasteRequest registro de residuos de un día.
// CouponCost es el débito de cupones del servicio; cero = sin débito.
type SubmitWasteRequest struct {
	Category   string          `json:"category"`
	Weight     decimal.Decimal `json:"weight"` // kg
	CouponCost int64           `json:"couponCost"`
	Notes      string          `json:"notes"`
	Date       *time.Time      `json:"date"`
}

// WasteRecordDTO registro de residuos para respuestas HTTP.
type WasteRecordDTO struct {
	ID         string          `json:"id"`
	Category   string          `json:"category"`
	Weight     decimal.Decimal `json:"weight"`
	CouponCost int64           `json:"couponCost"`
	Notes      string          `json:"notes,omitempty"`
	Date       time.Time       `json:"date"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// SubmitWasteResponse resultado del registro. CouponsApplied indica si el débito
// de cupones se aplicó; un saldo insuficiente no impide registrar el residuo.
type SubmitWasteResponse struct {
	Record         WasteRecordDTO  `json:"record"`
	CouponsApplied bool            `json:"couponsApplied"`
	Transaction    *TransactionDTO `json:"transaction,omitempty"`
}

// WasteRecordListResponse listado paginado de registros.
type WasteRecordListResponse struct {
	Data       []WasteRecordDTO `json:"data"`
	Pagination Pagination       `json:"pagination"`
}

// ToWasteRecordDTO convierte la entidad a su representación HTTP.
func ToWasteRecordDTO(r *entity.WasteRecord) WasteRecordDTO {
	return WasteRecordDTO{
		ID:         r.ID,
		Category:   r.Category,
		Weight:     r.Weight,
		CouponCost: r.CouponCost,
		Notes:      r.Notes,
		Date:       r.Date,
		CreatedAt:  r.CreatedAt,
	}
}
