package entity

import "time"

// RewardItem es un artículo de la tienda de recompensas, canjeable por cupones.
type RewardItem struct {
	ID          string
	Name        string // único
	Description string
	Cost        int64 // cupones por unidad, >= 1
	Stock       int64 // >= 0
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
