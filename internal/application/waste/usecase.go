package waste

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ecopuntos/reciclaje-api/internal/application/coupons"
	"github.com/ecopuntos/reciclaje-api/internal/application/dto"
	"github.com/ecopuntos/reciclaje-api/internal/domain"
	"github.com/ecopuntos/reciclaje-api/internal/domain/entity"
	"github.com/ecopuntos/reciclaje-api/internal/domain/repository"
	"github.com/ecopuntos/reciclaje-api/pkg/logger"
)

// UseCase registro diario de residuos. El registro dispara el débito
// automático de cupones (CouponCost) a través del mutador; si el saldo no
// alcanza, el débito se omite y el registro igual queda guardado.
type UseCase struct {
	recordRepo repository.WasteRecordRepository
	mutator    *coupons.MutatorUseCase
	log        *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(recordRepo repository.WasteRecordRepository, mutator *coupons.MutatorUseCase, log *logger.Logger) *UseCase {
	return &UseCase{recordRepo: recordRepo, mutator: mutator, log: log}
}

// Submit guarda el registro de residuos y luego intenta el débito de cupones.
// El resultado indica si el débito se aplicó; un saldo insuficiente nunca hace
// fallar el registro.
func (uc *UseCase) Submit(ctx context.Context, userID string, in dto.SubmitWasteRequest) (*dto.SubmitWasteResponse, error) {
	if !entity.ValidCategory(in.Category) {
		return nil, domain.ErrInvalidInput
	}
	if in.Weight.LessThanOrEqual(decimal.Zero) || in.CouponCost < 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	date := now
	if in.Date != nil {
		date = *in.Date
	}
	record := &entity.WasteRecord{
		ID:         uuid.New().String(),
		Category:   in.Category,
		Weight:     in.Weight,
		CouponCost: in.CouponCost,
		Notes:      in.Notes,
		Date:       date,
		CreatedAt:  now,
		CreatedBy:  userID,
	}
	if err := uc.recordRepo.Create(record); err != nil {
		return nil, err
	}

	resp := &dto.SubmitWasteResponse{Record: dto.ToWasteRecordDTO(record)}
	if in.CouponCost == 0 {
		return resp, nil
	}

	result, err := uc.mutator.Consume(ctx, record.ID, in.CouponCost, userID)
	if err != nil {
		// El registro ya quedó guardado; un fallo del débito no lo revierte.
		uc.log.Error().Err(err).Str("waste_record_id", record.ID).Msg("débito de cupones falló tras registrar residuos")
		return resp, nil
	}
	if result.Applied() {
		resp.CouponsApplied = true
		tx := dto.ToTransactionDTO(result.Transaction)
		resp.Transaction = &tx
	}
	return resp, nil
}

// List registros de residuos por rango de fechas, paginado.
func (uc *UseCase) List(ctx context.Context, from, to *time.Time, page dto.PageRequest) (*dto.WasteRecordListResponse, error) {
	page.Normalize()
	records, total, err := uc.recordRepo.List(from, to, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	data := make([]dto.WasteRecordDTO, 0, len(records))
	for _, r := range records {
		data = append(data, dto.ToWasteRecordDTO(r))
	}
	return &dto.WasteRecordListResponse{
		Data:       data,
		Pagination: dto.NewPagination(page.Page, page.Limit, total),
	}, nil
}
