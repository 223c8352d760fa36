package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ecopuntos/reciclaje-api/internal/application/coupons"
	"github.com/ecopuntos/reciclaje-api/internal/domain/repository"
	"github.com/ecopuntos/reciclaje-api/pkg/logger"
)

// Ensure TxRunner implements coupons.TxRunner.
var _ coupons.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL, con
// reintento ante fallos transitorios. Cada intento abre una transacción
// nueva y el callback relee su estado con FOR UPDATE, así que reejecutar
// nunca duplica una escritura a medias.
type TxRunner struct {
	pool  *pgxpool.Pool
	retry RetryConfig
	log   *logger.Logger
}

// NewTxRunner construye el runner con el pool y la política de reintentos.
func NewTxRunner(pool *pgxpool.Pool, retry RetryConfig, log *logger.Logger) *TxRunner {
	return &TxRunner{pool: pool, retry: retry, log: log}
}

// Run inicia una transacción, ejecuta fn con el repositorio de cupones atado
// a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(couponRepo repository.CouponRepository) error) error {
	return WithRetry(ctx, r.retry, r.log, func() error {
		tx, err := r.pool.Begin(ctx)
		if err != nil {
			return fmt.Errorf("begin transaction: %w", err)
		}
		defer func() { _ = tx.Rollback(ctx) }()

		if err := fn(NewCouponRepository(tx)); err != nil {
			return err
		}
		if err := tx.Commit(ctx); err != nil {
			return fmt.Errorf("commit transaction: %w", err)
		}
		return nil
	})
}

// RunRedemption inicia una transacción con los repos de cupones, artículos y
// canjes (para Redeem, que muta cuenta y stock en la misma unidad).
func (r *TxRunner) RunRedemption(ctx context.Context, fn func(
	couponRepo repository.CouponRepository,
	itemRepo repository.RewardItemRepository,
	redemptionRepo repository.RedemptionRepository,
) error) error {
	return WithRetry(ctx, r.retry, r.log, func() error {
		tx, err := r.pool.Begin(ctx)
		if err != nil {
			return fmt.Errorf("begin transaction: %w", err)
		}
		defer func() { _ = tx.Rollback(ctx) }()

		couponRepo := NewCouponRepository(tx)
		itemRepo := NewRewardItemRepository(tx)
		redemptionRepo := NewRedemptionRepository(tx)

		if err := fn(couponRepo, itemRepo, redemptionRepo); err != nil {
			return err
		}
		if err := tx.Commit(ctx); err != nil {
			return fmt.Errorf("commit transaction: %w", err)
		}
		return nil
	})
}
