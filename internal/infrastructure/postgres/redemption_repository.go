package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/ecopuntos/reciclaje-api/internal/domain/entity"
	"github.com/ecopuntos/reciclaje-api/internal/domain/repository"
)

var _ repository.RedemptionRepository = (*RedemptionRepo)(nil)

// RedemptionRepo implementación de RedemptionRepository sobre PostgreSQL (usable con pool o tx).
type RedemptionRepo struct {
	q Querier
}

// NewRedemptionRepository construye el adaptador de canjes. Pasar pool o tx (Querier).
func NewRedemptionRepository(q Querier) *RedemptionRepo {
	return &RedemptionRepo{q: q}
}

// Create persiste un canje. Inmutable: no hay Update.
func (r *RedemptionRepo) Create(redemption *entity.Redemption) error {
	if redemption.ID == "" {
		redemption.ID = uuid.New().String()
	}
	query := `
		INSERT INTO redemptions (id, item_id, quantity, total_cost, notes, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		redemption.ID, redemption.ItemID, redemption.Quantity, redemption.TotalCost,
		redemption.Notes, redemption.CreatedAt, redemption.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("create redemption: %w", err)
	}
	return nil
}

// GetByID obtiene un canje por ID. nil si no existe.
func (r *RedemptionRepo) GetByID(id string) (*entity.Redemption, error) {
	query := `
		SELECT id, item_id, quantity, total_cost, notes, created_at, created_by
		FROM redemptions WHERE id = $1`
	var red entity.Redemption
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&red.ID, &red.ItemID, &red.Quantity, &red.TotalCost, &red.Notes, &red.CreatedAt, &red.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get redemption: %w", err)
	}
	return &red, nil
}

// List canjes más recientes primero, paginado.
func (r *RedemptionRepo) List(limit, offset int) ([]*entity.Redemption, int64, error) {
	var total int64
	if err := r.q.QueryRow(context.Background(), `SELECT count(*) FROM redemptions`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count redemptions: %w", err)
	}

	query := `
		SELECT id, item_id, quantity, total_cost, notes, created_at, created_by
		FROM redemptions ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list redemptions: %w", err)
	}
	defer rows.Close()

	var list []*entity.Redemption
	for rows.Next() {
		var red entity.Redemption
		if err := rows.Scan(&red.ID, &red.ItemID, &red.Quantity, &red.TotalCost,
			&red.Notes, &red.CreatedAt, &red.CreatedBy); err != nil {
			return nil, 0, fmt.Errorf("scan redemption: %w", err)
		}
		list = append(list, &red)
	}
	return list, total, rows.Err()
}
