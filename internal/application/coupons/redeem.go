package coupons

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ecopuntos/reciclaje-api/internal/application/dto"
	"github.com/ecopuntos/reciclaje-api/internal/domain"
	"github.com/ecopuntos/reciclaje-api/internal/domain/entity"
	"github.com/ecopuntos/reciclaje-api/internal/domain/repository"
	"github.com/ecopuntos/reciclaje-api/pkg/logger"
)

// RedeemUseCase canjea cupones por stock de la tienda de recompensas como una
// sola unidad atómica sobre dos agregados: la cuenta de cupones y el artículo.
// Todas las precondiciones se verifican dentro de la misma transacción que
// aplica la mutación, con las filas bloqueadas, para cerrar la ventana de
// carrera entre verificación y escritura. Orden de bloqueo fijo: primero el
// artículo, después la cuenta.
type RedeemUseCase struct {
	txRunner TxRunner
	log      *logger.Logger
}

// NewRedeemUseCase construye el caso de uso.
func NewRedeemUseCase(txRunner TxRunner, log *logger.Logger) *RedeemUseCase {
	return &RedeemUseCase{txRunner: txRunner, log: log}
}

// Redeem descuenta stock y saldo, e inserta el canje y su entrada del libro,
// todo o nada. TotalCost se congela al momento del canje: cambios posteriores
// al costo del artículo no lo alteran.
func (uc *RedeemUseCase) Redeem(ctx context.Context, userID, itemID string, in dto.RedeemRequest) (*dto.RedeemResponse, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidAmount
	}

	var resp *dto.RedeemResponse
	err := uc.txRunner.RunRedemption(ctx, func(
		couponRepo repository.CouponRepository,
		itemRepo repository.RewardItemRepository,
		redemptionRepo repository.RedemptionRepository,
	) error {
		item, err := itemRepo.GetByIDForUpdate(itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrItemNotFound
		}
		if !item.IsActive {
			return domain.ErrItemInactive
		}
		if item.Stock < in.Quantity {
			return domain.ErrInsufficientStock
		}

		account, err := couponRepo.GetAccountForUpdate()
		if err != nil {
			return err
		}
		totalCost := item.Cost * in.Quantity
		if account.Balance < totalCost {
			return domain.ErrInsufficientBalance
		}

		now := time.Now()
		item.Stock -= in.Quantity
		item.UpdatedAt = now
		if err := itemRepo.Update(item); err != nil {
			return err
		}

		account.Balance -= totalCost
		account.TotalUsed += totalCost
		account.UpdatedAt = now
		if err := couponRepo.UpdateAccount(account); err != nil {
			return err
		}

		redemption := &entity.Redemption{
			ID:        uuid.New().String(),
			ItemID:    item.ID,
			Quantity:  in.Quantity,
			TotalCost: totalCost,
			Notes:     in.Notes,
			CreatedAt: now,
			CreatedBy: userID,
		}
		if err := redemptionRepo.Create(redemption); err != nil {
			return err
		}

		redemptionID := redemption.ID
		tx := &entity.CouponTransaction{
			ID:               uuid.New().String(),
			Kind:             entity.TxKindCONSUME,
			Amount:           -totalCost,
			ResultingBalance: account.Balance,
			Reason:           "canje de recompensa: " + item.Name,
			RedemptionID:     &redemptionID,
			CreatedAt:        now,
			CreatedBy:        userID,
		}
		if err := couponRepo.CreateTransaction(tx); err != nil {
			return err
		}

		resp = &dto.RedeemResponse{
			Redemption: dto.ToRedemptionDTO(redemption),
			Item:       dto.ToRewardItemDTO(item),
			NewBalance: account.Balance,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("item_id", itemID).
		Int64("quantity", in.Quantity).
		Int64("total_cost", resp.Redemption.TotalCost).
		Int64("balance", resp.NewBalance).
		Msg("canje realizado")
	return resp, nil
}
