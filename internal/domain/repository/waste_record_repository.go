package repository

import (
	"time"

	"github.com/ecopuntos/reciclaje-api/internal/domain/entity"
)

// WasteRecordRepository define el puerto de persistencia de registros de residuos.
type WasteRecordRepository interface {
	Create(record *entity.WasteRecord) error
	GetByID(id string) (*entity.WasteRecord, error)
	List(from, to *time.Time, limit, offset int) ([]*entity.WasteRecord, int64, error)
}
