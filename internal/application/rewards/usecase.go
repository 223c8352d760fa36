package rewards

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ecopuntos/reciclaje-api/internal/application/dto"
	"github.com/ecopuntos/reciclaje-api/internal/domain"
	"github.com/ecopuntos/reciclaje-api/internal/domain/entity"
	"github.com/ecopuntos/reciclaje-api/internal/domain/repository"
)

// UseCase administración de la tienda de recompensas: CRUD de artículos e
// historial de canjes. El decremento de stock por canje NO pasa por aquí,
// solo por el coordinador de canje.
type UseCase struct {
	itemRepo       repository.RewardItemRepository
	redemptionRepo repository.RedemptionRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(itemRepo repository.RewardItemRepository, redemptionRepo repository.RedemptionRepository) *UseCase {
	return &UseCase{itemRepo: itemRepo, redemptionRepo: redemptionRepo}
}

// CreateItem da de alta un artículo activo. Nombre único, costo >= 1, stock >= 0.
func (uc *UseCase) CreateItem(ctx context.Context, in dto.CreateRewardItemRequest) (*dto.RewardItemDTO, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.Cost < 1 || in.Stock < 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	item := &entity.RewardItem{
		ID:          uuid.New().String(),
		Name:        name,
		Description: in.Description,
		Cost:        in.Cost,
		Stock:       in.Stock,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.itemRepo.Create(item); err != nil {
		return nil, err
	}
	out := dto.ToRewardItemDTO(item)
	return &out, nil
}

// UpdateItem modifica los campos presentes en la petición. Cambiar el costo no
// afecta canjes ya realizados: su costo total quedó congelado al canjear.
func (uc *UseCase) UpdateItem(ctx context.Context, id string, in dto.UpdateRewardItemRequest) (*dto.RewardItemDTO, error) {
	item, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrItemNotFound
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		item.Name = name
	}
	if in.Description != nil {
		item.Description = *in.Description
	}
	if in.Cost != nil {
		if *in.Cost < 1 {
			return nil, domain.ErrInvalidInput
		}
		item.Cost = *in.Cost
	}
	if in.Stock != nil {
		if *in.Stock < 0 {
			return nil, domain.ErrInvalidInput
		}
		item.Stock = *in.Stock
	}
	if in.IsActive != nil {
		item.IsActive = *in.IsActive
	}
	item.UpdatedAt = time.Now()
	if err := uc.itemRepo.Update(item); err != nil {
		return nil, err
	}
	out := dto.ToRewardItemDTO(item)
	return &out, nil
}

// ListItems lista artículos de la tienda, paginado.
func (uc *UseCase) ListItems(ctx context.Context, includeInactive bool, page dto.PageRequest) (*dto.RewardItemListResponse, error) {
	page.Normalize()
	items, total, err := uc.itemRepo.List(includeInactive, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	data := make([]dto.RewardItemDTO, 0, len(items))
	for _, item := range items {
		data = append(data, dto.ToRewardItemDTO(item))
	}
	return &dto.RewardItemListResponse{
		Data:       data,
		Pagination: dto.NewPagination(page.Page, page.Limit, total),
	}, nil
}

// ListRedemptions historial de canjes, más reciente primero.
func (uc *UseCase) ListRedemptions(ctx context.Context, page dto.PageRequest) (*dto.RedemptionListResponse, error) {
	page.Normalize()
	redemptions, total, err := uc.redemptionRepo.List(page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	data := make([]dto.RedemptionDTO, 0, len(redemptions))
	for _, r := range redemptions {
		data = append(data, dto.ToRedemptionDTO(r))
	}
	return &dto.RedemptionListResponse{
		Data:       data,
		Pagination: dto.NewPagination(page.Page, page.Limit, total),
	}, nil
}
