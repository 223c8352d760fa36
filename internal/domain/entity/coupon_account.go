package entity

import "time"

// AccountID id fijo de la cuenta de cupones. Existe exactamente una fila;
// la tabla lo exige con un CHECK (id = 1).
const AccountID = 1

// CouponAccount es la cuenta única de cupones del programa.
// Balance nunca es negativo; TotalUsed solo crece (suma acumulada de débitos).
type CouponAccount struct {
	ID        int
	Balance   int64
	TotalUsed int64
	UpdatedAt time.Time
}

// Available devuelve el saldo disponible para canjes.
func (a *CouponAccount) Available() int64 {
	return a.Balance
}
