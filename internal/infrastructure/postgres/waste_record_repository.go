package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/ecopuntos/reciclaje-api/internal/domain/entity"
	"github.com/ecopuntos/reciclaje-api/internal/domain/repository"
)

var _ repository.WasteRecordRepository = (*WasteRecordRepo)(nil)

// WasteRecordRepo implementación de WasteRecordRepository sobre PostgreSQL (usable con pool o tx).
type WasteRecordRepo struct {
	q Querier
}

// NewWasteRecordRepository construye el adaptador de registros de residuos. Pasar pool o tx (Querier).
func NewWasteRecordRepository(q Querier) *WasteRecordRepo {
	return &WasteRecordRepo{q: q}
}

// Create persiste un registro de residuos.
func (r *WasteRecordRepo) Create(record *entity.WasteRecord) error {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	query := `
		INSERT INTO waste_records (id, category, weight, coupon_cost, notes, date, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		record.ID, record.Category, record.Weight, record.CouponCost,
		record.Notes, record.Date, record.CreatedAt, record.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("create waste record: %w", err)
	}
	return nil
}

// GetByID obtiene un registro por ID. nil si no existe.
func (r *WasteRecordRepo) GetByID(id string) (*entity.WasteRecord, error) {
	query := `
		SELECT id, category, weight, coupon_cost, notes, date, created_at, created_by
		FROM waste_records WHERE id = $1`
	var rec entity.WasteRecord
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&rec.ID, &rec.Category, &rec.Weight, &rec.CouponCost,
		&rec.Notes, &rec.Date, &rec.CreatedAt, &rec.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get waste record: %w", err)
	}
	return &rec, nil
}

// List registros en un rango de fechas, más recientes primero, paginado.
func (r *WasteRecordRepo) List(from, to *time.Time, limit, offset int) ([]*entity.WasteRecord, int64, error) {
	where := ` WHERE 1=1`
	args := []any{}
	pos := 1
	if from != nil {
		where += fmt.Sprintf(" AND date >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		where += fmt.Sprintf(" AND date <= $%d", pos)
		args = append(args, *to)
		pos++
	}

	var total int64
	if err := r.q.QueryRow(context.Background(), `SELECT count(*) FROM waste_records`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count waste records: %w", err)
	}

	query := `
		SELECT id, category, weight, coupon_cost, notes, date, created_at, created_by
		FROM waste_records` + where +
		fmt.Sprintf(" ORDER BY date DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list waste records: %w", err)
	}
	defer rows.Close()

	var list []*entity.WasteRecord
	for rows.Next() {
		var rec entity.WasteRecord
		if err := rows.Scan(&rec.ID, &rec.Category, &rec.Weight, &rec.CouponCost,
			&rec.Notes, &rec.Date, &rec.CreatedAt, &rec.CreatedBy); err != nil {
			return nil, 0, fmt.Errorf("scan waste record: %w", err)
		}
		list = append(list, &rec)
	}
	return list, total, rows.Err()
}
