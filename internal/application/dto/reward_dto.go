package dto

import (
	"time"

	"github.com/ecopuntos/reciclaje-api/internal/domain/entity"
)

// CreateRewardItemRequest alta de un artículo en la tienda.
type CreateRewardItemRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Cost        int64  `json:"cost"`
	Stock       int64  `json:"stock"`
}

// UpdateRewardItemRequest modificación de un artículo. Punteros = campo opcional.
type UpdateRewardItemRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Cost        *int64  `json:"cost"`
	Stock       *int64  `json:"stock"`
	IsActive    *bool   `json:"isActive"`
}

// RewardItemDTO artículo para respuestas HTTP.
type RewardItemDTO struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Cost        int64     `json:"cost"`
	Stock       int64     `json:"stock"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// RewardItemListResponse listado paginado de artículos.
type RewardItemListResponse struct {
	Data       []RewardItemDTO `json:"data"`
	Pagination Pagination      `json:"pagination"`
}

// RedeemRequest canje de un artículo por cupones.
type RedeemRequest struct {
	Quantity int64  `json:"quantity"`
	Notes    string `json:"notes"`
}

// RedemptionDTO canje realizado.
type RedemptionDTO struct {
	ID        string    `json:"id"`
	ItemID    string    `json:"itemId"`
	Quantity  int64     `json:"quantity"`
	TotalCost int64     `json:"totalCost"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// RedeemResponse resultado de un canje exitoso.
type RedeemResponse struct {
	Redemption RedemptionDTO `json:"redemption"`
	Item       RewardItemDTO `json:"item"`
	NewBalance int64         `json:"newBalance"`
}

// RedemptionListResponse historial paginado de canjes.
type RedemptionListResponse struct {
	Data       []RedemptionDTO `json:"data"`
	Pagination Pagination      `json:"pagination"`
}

// ToRewardItemDTO convierte la entidad a su representación HTTP.
func ToRewardItemDTO(item *entity.RewardItem) RewardItemDTO {
	return RewardItemDTO{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Cost:        item.Cost,
		Stock:       item.Stock,
		IsActive:    item.IsActive,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}

// ToRedemptionDTO convierte la entidad a su representación HTTP.
func ToRedemptionDTO(r *entity.Redemption) RedemptionDTO {
	return RedemptionDTO{
		ID:        r.ID,
		ItemID:    r.ItemID,
		Quantity:  r.Quantity,
		TotalCost: r.TotalCost,
		Notes:     r.Notes,
		CreatedAt: r.CreatedAt,
	}
}
