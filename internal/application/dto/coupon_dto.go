package dto

import (
	"time"

	"github.com/ecopuntos/reciclaje-api/internal/domain/entity"
	"github.com/ecopuntos/reciclaje-api/internal/domain/repository"
)

// AddRequest abono manual de cupones.
type AddRequest struct {
	Amount int64  `json:"amount"`
	Notes  string `json:"notes"`
}

// AdjustRequest ajuste manual del administrador (monto con signo, motivo obligatorio).
type AdjustRequest struct {
	Amount int64  `json:"amount"`
	Reason string `json:"reason"`
	Notes  string `json:"notes"`
}

// BalanceResponse saldo actual de la cuenta de cupones.
type BalanceResponse struct {
	Balance   int64 `json:"balance"`
	Used      int64 `json:"used"`
	Available int64 `json:"available"`
}

// TransactionDTO entrada del libro de cupones para respuestas HTTP.
type TransactionDTO struct {
	ID               string    `json:"id"`
	Kind             string    `json:"kind"`
	Amount           int64     `json:"amount"`
	ResultingBalance int64     `json:"resultingBalance"`
	Reason           string    `json:"reason"`
	WasteRecordID    *string   `json:"wasteRecordId,omitempty"`
	RedemptionID     *string   `json:"redemptionId,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
}

// MutationResponse resultado de un abono o ajuste aplicado.
type MutationResponse struct {
	PreviousBalance int64          `json:"previousBalance"`
	AddedAmount     int64          `json:"addedAmount"`
	NewBalance      int64          `json:"newBalance"`
	Transaction     TransactionDTO `json:"transaction"`
}

// TransactionListResponse historial paginado.
type TransactionListResponse struct {
	Data       []TransactionDTO `json:"data"`
	Pagination Pagination       `json:"pagination"`
}

// SummaryRow totales de un periodo.
type SummaryRow struct {
	PeriodStart time.Time `json:"periodStart"`
	Earned      int64     `json:"earned"`
	Used        int64     `json:"used"`
	Net         int64     `json:"net"`
}

// SummaryResponse agregado periódico del libro.
type SummaryResponse struct {
	Period string       `json:"period"`
	Data   []SummaryRow `json:"data"`
}

// ToTransactionDTO convierte la entidad a su representación HTTP.
func ToTransactionDTO(tx *entity.CouponTransaction) TransactionDTO {
	return TransactionDTO{
		ID:               tx.ID,
		Kind:             tx.Kind,
		Amount:           tx.Amount,
		ResultingBalance: tx.ResultingBalance,
		Reason:           tx.Reason,
		WasteRecordID:    tx.WasteRecordID,
		RedemptionID:     tx.RedemptionID,
		CreatedAt:        tx.CreatedAt,
	}
}

// ToSummaryRows convierte las filas del repositorio.
func ToSummaryRows(rows []*repository.PeriodSummary) []SummaryRow {
	out := make([]SummaryRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, SummaryRow{PeriodStart: r.PeriodStart, Earned: r.Earned, Used: r.Used, Net: r.Net})
	}
	return out
}
