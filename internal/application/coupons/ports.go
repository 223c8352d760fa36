package coupons

import (
	"context"

	"github.com/ecopuntos/reciclaje-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Toda mutación del libro de cupones pasa por
// aquí: la actualización de la cuenta y la inserción de la entrada del libro
// se confirman o descartan juntas. La implementación reintenta fn ante fallos
// transitorios del almacén, por lo que fn debe releer y revalidar su estado
// en cada ejecución.
type TxRunner interface {
	Run(ctx context.Context, fn func(couponRepo repository.CouponRepository) error) error

	// RunRedemption abre una transacción que abarca cuenta, artículo y canje
	// (para Redeem, que muta dos agregados en una sola unidad).
	RunRedemption(ctx context.Context, fn func(
		couponRepo repository.CouponRepository,
		itemRepo repository.RewardItemRepository,
		redemptionRepo repository.RedemptionRepository,
	) error) error
}
