package repository

import (
	"time"

	"github.com/ecopuntos/reciclaje-api/internal/domain/entity"
)

// TransactionFilter filtros para el historial de transacciones.
// From/To acotan por created_at; Kind vacío = todos los tipos.
type TransactionFilter struct {
	From   *time.Time
	To     *time.Time
	Kind   string
	Limit  int
	Offset int
}

// PeriodSummary totales de cupones agregados por periodo.
type PeriodSummary struct {
	PeriodStart time.Time
	Earned      int64 // suma de montos positivos
	Used        int64 // suma de |montos negativos|
	Net         int64
}

// CouponRepository define el puerto de persistencia del libro de cupones.
// La cuenta es una fila única; las mutaciones deben ejecutarse dentro de una
// transacción (ver coupons.TxRunner) para que actualización de cuenta e inserción
// de la entrada del libro sean una sola unidad atómica.
type CouponRepository interface {
	// GetAccount devuelve la cuenta única, creándola en cero si no existe.
	// Nunca falla con "no encontrado".
	GetAccount() (*entity.CouponAccount, error)
	// GetAccountForUpdate bloquea la fila de la cuenta (SELECT FOR UPDATE).
	// Solo tiene sentido dentro de una transacción.
	GetAccountForUpdate() (*entity.CouponAccount, error)
	UpdateAccount(account *entity.CouponAccount) error
	CreateTransaction(tx *entity.CouponTransaction) error
	ListTransactions(filter TransactionFilter) ([]*entity.CouponTransaction, int64, error)
	// Summary agrega abonos y débitos por periodo (daily, weekly, monthly).
	Summary(bucket string, from, to time.Time) ([]*PeriodSummary, error)
}
