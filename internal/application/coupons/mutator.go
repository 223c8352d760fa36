package coupons

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ecopuntos/reciclaje-api/internal/application/dto"
	"github.com/ecopuntos/reciclaje-api/internal/domain"
	"github.com/ecopuntos/reciclaje-api/internal/domain/entity"
	"github.com/ecopuntos/reciclaje-api/internal/domain/repository"
	"github.com/ecopuntos/reciclaje-api/pkg/logger"
)

// Motivos autocompletados para transacciones sin motivo explícito.
const (
	reasonAdd     = "abono manual de cupones"
	reasonConsume = "débito por registro de residuos"
)

// Resultado de Consume. Un saldo insuficiente no es un error: el registro de
// residuos nunca se bloquea por falta de cupones, así que el débito se omite
// y se deja constancia en el log.
const (
	ConsumeApplied = "APPLIED"
	ConsumeSkipped = "SKIPPED_INSUFFICIENT_FUNDS"
)

// ConsumeResult resultado tipado del débito automático.
type ConsumeResult struct {
	Status      string
	Transaction *entity.CouponTransaction
}

// Applied indica si el débito se aplicó.
func (r *ConsumeResult) Applied() bool {
	return r != nil && r.Status == ConsumeApplied
}

// MutatorUseCase es el único punto de entrada para mutaciones del saldo fuera
// del canje: Add, Adjust y Consume. Cada operación relee la cuenta con bloqueo
// de fila (SELECT FOR UPDATE) dentro de la transacción, revalida su
// precondición contra ese estado y escribe exactamente una entrada del libro.
type MutatorUseCase struct {
	txRunner TxRunner
	log      *logger.Logger
}

// NewMutatorUseCase construye el caso de uso.
func NewMutatorUseCase(txRunner TxRunner, log *logger.Logger) *MutatorUseCase {
	return &MutatorUseCase{txRunner: txRunner, log: log}
}

// Add abona cupones a la cuenta. Amount debe ser > 0.
func (uc *MutatorUseCase) Add(ctx context.Context, userID string, in dto.AddRequest) (*dto.MutationResponse, error) {
	if in.Amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	reason := strings.TrimSpace(in.Notes)
	if reason == "" {
		reason = reasonAdd
	}

	var resp *dto.MutationResponse
	err := uc.txRunner.Run(ctx, func(repo repository.CouponRepository) error {
		account, err := repo.GetAccountForUpdate()
		if err != nil {
			return err
		}
		previous := account.Balance
		account.Balance += in.Amount
		account.UpdatedAt = time.Now()
		if err := repo.UpdateAccount(account); err != nil {
			return err
		}
		tx := &entity.CouponTransaction{
			ID:               uuid.New().String(),
			Kind:             entity.TxKindADD,
			Amount:           in.Amount,
			ResultingBalance: account.Balance,
			Reason:           reason,
			CreatedAt:        time.Now(),
			CreatedBy:        userID,
		}
		if err := repo.CreateTransaction(tx); err != nil {
			return err
		}
		resp = &dto.MutationResponse{
			PreviousBalance: previous,
			AddedAmount:     in.Amount,
			NewBalance:      account.Balance,
			Transaction:     dto.ToTransactionDTO(tx),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("amount", in.Amount).Int64("balance", resp.NewBalance).Msg("cupones abonados")
	return resp, nil
}

// Adjust aplica un ajuste manual con signo. Requiere motivo y rechaza con
// ErrInsufficientBalance los ajustes que dejarían el saldo negativo.
func (uc *MutatorUseCase) Adjust(ctx context.Context, userID string, in dto.AdjustRequest) (*dto.MutationResponse, error) {
	if in.Amount == 0 {
		return nil, domain.ErrInvalidAmount
	}
	if strings.TrimSpace(in.Reason) == "" {
		return nil, domain.ErrMissingReason
	}

	var resp *dto.MutationResponse
	err := uc.txRunner.Run(ctx, func(repo repository.CouponRepository) error {
		account, err := repo.GetAccountForUpdate()
		if err != nil {
			return err
		}
		if account.Balance+in.Amount < 0 {
			return domain.ErrInsufficientBalance
		}
		previous := account.Balance
		account.Balance += in.Amount
		account.UpdatedAt = time.Now()
		if err := repo.UpdateAccount(account); err != nil {
			return err
		}
		tx := &entity.CouponTransaction{
			ID:               uuid.New().String(),
			Kind:             entity.TxKindADJUST,
			Amount:           in.Amount,
			ResultingBalance: account.Balance,
			Reason:           strings.TrimSpace(in.Reason),
			CreatedAt:        time.Now(),
			CreatedBy:        userID,
		}
		if err := repo.CreateTransaction(tx); err != nil {
			return err
		}
		resp = &dto.MutationResponse{
			PreviousBalance: previous,
			AddedAmount:     in.Amount,
			NewBalance:      account.Balance,
			Transaction:     dto.ToTransactionDTO(tx),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("amount", in.Amount).Int64("balance", resp.NewBalance).Str("reason", in.Reason).Msg("ajuste de cupones aplicado")
	return resp, nil
}

// Consume debita cupones por un registro de residuos. Si el saldo no alcanza,
// omite el débito sin error (resultado SKIPPED_INSUFFICIENT_FUNDS): el flujo
// de registro de residuos nunca se bloquea por falta de cupones.
func (uc *MutatorUseCase) Consume(ctx context.Context, wasteRecordID string, amount int64, userID string) (*ConsumeResult, error) {
	if amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}

	result := &ConsumeResult{}
	err := uc.txRunner.Run(ctx, func(repo repository.CouponRepository) error {
		account, err := repo.GetAccountForUpdate()
		if err != nil {
			return err
		}
		if account.Balance < amount {
			result.Status = ConsumeSkipped
			result.Transaction = nil
			return nil
		}
		account.Balance -= amount
		account.TotalUsed += amount
		account.UpdatedAt = time.Now()
		if err := repo.UpdateAccount(account); err != nil {
			return err
		}
		recordID := wasteRecordID
		tx := &entity.CouponTransaction{
			ID:               uuid.New().String(),
			Kind:             entity.TxKindCONSUME,
			Amount:           -amount,
			ResultingBalance: account.Balance,
			Reason:           reasonConsume,
			WasteRecordID:    &recordID,
			CreatedAt:        time.Now(),
			CreatedBy:        userID,
		}
		if err := repo.CreateTransaction(tx); err != nil {
			return err
		}
		result.Status = ConsumeApplied
		result.Transaction = tx
		return nil
	})
	if err != nil {
		return nil, err
	}
	if result.Status == ConsumeSkipped {
		uc.log.Warn().
			Str("waste_record_id", wasteRecordID).
			Int64("amount", amount).
			Msg("débito de cupones omitido por saldo insuficiente")
	}
	return result, nil
}
