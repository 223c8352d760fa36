package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/ecopuntos/reciclaje-api/internal/domain"
	"github.com/ecopuntos/reciclaje-api/internal/domain/entity"
	"github.com/ecopuntos/reciclaje-api/internal/domain/repository"
)

var _ repository.RewardItemRepository = (*RewardItemRepo)(nil)

// RewardItemRepo implementación de RewardItemRepository sobre PostgreSQL (usable con pool o tx).
type RewardItemRepo struct {
	q Querier
}

// NewRewardItemRepository construye el adaptador de artículos. Pasar pool o tx (Querier).
func NewRewardItemRepository(q Querier) *RewardItemRepo {
	return &RewardItemRepo{q: q}
}

const itemColumns = `id, name, description, cost, stock, is_active, created_at, updated_at`

// Create persiste un artículo nuevo. Nombre duplicado -> ErrDuplicate.
func (r *RewardItemRepo) Create(item *entity.RewardItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	query := `
		INSERT INTO reward_items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Name, item.Description, item.Cost, item.Stock,
		item.IsActive, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert reward item: %w", err)
	}
	return nil
}

// GetByID obtiene un artículo por ID. nil si no existe.
func (r *RewardItemRepo) GetByID(id string) (*entity.RewardItem, error) {
	query := `SELECT ` + itemColumns + ` FROM reward_items WHERE id = $1`
	return r.scanItem(r.q.QueryRow(context.Background(), query, id))
}

// GetByIDForUpdate obtiene el artículo y bloquea la fila (SELECT FOR UPDATE).
func (r *RewardItemRepo) GetByIDForUpdate(id string) (*entity.RewardItem, error) {
	query := `SELECT ` + itemColumns + ` FROM reward_items WHERE id = $1 FOR UPDATE`
	return r.scanItem(r.q.QueryRow(context.Background(), query, id))
}

func (r *RewardItemRepo) scanItem(row pgx.Row) (*entity.RewardItem, error) {
	var item entity.RewardItem
	err := row.Scan(&item.ID, &item.Name, &item.Description, &item.Cost,
		&item.Stock, &item.IsActive, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get reward item: %w", err)
	}
	return &item, nil
}

// Update persiste todos los campos mutables del artículo. El CHECK stock >= 0
// de la tabla respalda el invariante si un caso de uso valida mal.
func (r *RewardItemRepo) Update(item *entity.RewardItem) error {
	query := `
		UPDATE reward_items
		SET name = $2, description = $3, cost = $4, stock = $5, is_active = $6, updated_at = $7
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		item.ID, item.Name, item.Description, item.Cost, item.Stock, item.IsActive, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isCheckViolation(err) {
			return domain.ErrInsufficientStock
		}
		return fmt.Errorf("update reward item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

// List artículos ordenados por nombre, paginado. includeInactive=false filtra
// los desactivados (vista de la tienda).
func (r *RewardItemRepo) List(includeInactive bool, limit, offset int) ([]*entity.RewardItem, int64, error) {
	where := ""
	if !includeInactive {
		where = " WHERE is_active"
	}

	var total int64
	if err := r.q.QueryRow(context.Background(), `SELECT count(*) FROM reward_items`+where).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count reward items: %w", err)
	}

	query := `SELECT ` + itemColumns + ` FROM reward_items` + where + ` ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list reward items: %w", err)
	}
	defer rows.Close()

	var list []*entity.RewardItem
	for rows.Next() {
		var item entity.RewardItem
		if err := rows.Scan(&item.ID, &item.Name, &item.Description, &item.Cost,
			&item.Stock, &item.IsActive, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan reward item: %w", err)
		}
		list = append(list, &item)
	}
	return list, total, rows.Err()
}
