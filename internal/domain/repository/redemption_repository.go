package repository

import "github.com/ecopuntos/reciclaje-api/internal/domain/entity"

// RedemptionRepository define el puerto de persistencia de canjes.
type RedemptionRepository interface {
	Create(redemption *entity.Redemption) error
	GetByID(id string) (*entity.Redemption, error)
	List(limit, offset int) ([]*entity.Redemption, int64, error)
}
