package entity

import "time"

// Redemption registra un canje de cupones por un artículo. Inmutable una vez creado.
// TotalCost = item.Cost × Quantity al momento del canje; cambios posteriores al
// costo del artículo no lo afectan.
type Redemption struct {
	ID        string
	ItemID    string
	Quantity  int64
	TotalCost int64
	Notes     string
	CreatedAt time.Time
	CreatedBy string
}
