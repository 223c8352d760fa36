package repository

import "github.com/ecopuntos/reciclaje-api/internal/domain/entity"

// RewardItemRepository define el puerto de persistencia de artículos de la tienda.
type RewardItemRepository interface {
	Create(item *entity.RewardItem) error
	GetByID(id string) (*entity.RewardItem, error)
	// GetByIDForUpdate bloquea la fila del artículo (SELECT FOR UPDATE).
	// Usado por el canje para decrementar stock sin carreras.
	GetByIDForUpdate(id string) (*entity.RewardItem, error)
	Update(item *entity.RewardItem) error
	List(includeInactive bool, limit, offset int) ([]*entity.RewardItem, int64, error)
}
