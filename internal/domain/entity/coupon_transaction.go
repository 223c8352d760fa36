package entity

import "time"

// Tipos de transacción del libro de cupones.
const (
	TxKindADD     = "ADD"     // abono (recolección, bono)
	TxKindCONSUME = "CONSUME" // débito automático o canje
	TxKindADJUST  = "ADJUST"  // ajuste manual del administrador
)

// CouponTransaction es una entrada inmutable del libro de cupones.
// Amount es con signo: ADD > 0, CONSUME < 0, ADJUST cualquier signo distinto de cero.
// ResultingBalance es el saldo de la cuenta inmediatamente después de aplicar
// esta transacción; se congela al escribir y nunca se recalcula.
type CouponTransaction struct {
	ID               string
	Kind             string
	Amount           int64
	ResultingBalance int64
	Reason           string
	WasteRecordID    *string
	RedemptionID     *string
	CreatedAt        time.Time
	CreatedBy        string
}
