package coupons

import (
	"context"
	"time"

	"github.com/ecopuntos/reciclaje-api/internal/application/dto"
	"github.com/ecopuntos/reciclaje-api/internal/domain"
	"github.com/ecopuntos/reciclaje-api/internal/domain/entity"
	"github.com/ecopuntos/reciclaje-api/internal/domain/repository"
)

// Ventanas aceptadas para el filtro de historial.
const (
	PeriodToday = "today"
	PeriodWeek  = "week"
	PeriodMonth = "month"
	PeriodYear  = "year"
)

// Cubetas de agregación del resumen.
const (
	BucketDaily   = "daily"
	BucketWeekly  = "weekly"
	BucketMonthly = "monthly"
)

// QueryUseCase lecturas del libro de cupones: saldo, historial y resumen
// periódico. Solo lectura, sin responsabilidad sobre invariantes.
type QueryUseCase struct {
	couponRepo repository.CouponRepository
}

// NewQueryUseCase construye el caso de uso.
func NewQueryUseCase(couponRepo repository.CouponRepository) *QueryUseCase {
	return &QueryUseCase{couponRepo: couponRepo}
}

// Balance devuelve el saldo actual. La cuenta se crea en cero si aún no existe.
func (uc *QueryUseCase) Balance(ctx context.Context) (*dto.BalanceResponse, error) {
	account, err := uc.couponRepo.GetAccount()
	if err != nil {
		return nil, err
	}
	return &dto.BalanceResponse{
		Balance:   account.Balance,
		Used:      account.TotalUsed,
		Available: account.Available(),
	}, nil
}

// Transactions devuelve el historial filtrado por ventana temporal y tipo,
// ordenado por fecha descendente y paginado.
func (uc *QueryUseCase) Transactions(ctx context.Context, period, kind string, page dto.PageRequest) (*dto.TransactionListResponse, error) {
	switch kind {
	case "", entity.TxKindADD, entity.TxKindCONSUME, entity.TxKindADJUST:
	default:
		return nil, domain.ErrInvalidInput
	}
	from, err := periodStart(period, time.Now())
	if err != nil {
		return nil, err
	}
	page.Normalize()

	txs, total, err := uc.couponRepo.ListTransactions(repository.TransactionFilter{
		From:   from,
		Kind:   kind,
		Limit:  page.Limit,
		Offset: page.Offset(),
	})
	if err != nil {
		return nil, err
	}
	data := make([]dto.TransactionDTO, 0, len(txs))
	for _, tx := range txs {
		data = append(data, dto.ToTransactionDTO(tx))
	}
	return &dto.TransactionListResponse{
		Data:       data,
		Pagination: dto.NewPagination(page.Page, page.Limit, total),
	}, nil
}

// Summary agrega abonos y débitos por periodo. La ventana depende de la
// cubeta: 30 días, 12 semanas o 12 meses hacia atrás.
func (uc *QueryUseCase) Summary(ctx context.Context, bucket string) (*dto.SummaryResponse, error) {
	now := time.Now()
	var from time.Time
	switch bucket {
	case "", BucketDaily:
		bucket = BucketDaily
		from = now.AddDate(0, 0, -30)
	case BucketWeekly:
		from = now.AddDate(0, 0, -12*7)
	case BucketMonthly:
		from = now.AddDate(0, -12, 0)
	default:
		return nil, domain.ErrInvalidInput
	}
	rows, err := uc.couponRepo.Summary(bucket, from, now)
	if err != nil {
		return nil, err
	}
	return &dto.SummaryResponse{
		Period: bucket,
		Data:   dto.ToSummaryRows(rows),
	}, nil
}

// periodStart traduce la ventana del query string al inicio del rango.
// Ventana vacía = sin límite inferior.
func periodStart(period string, now time.Time) (*time.Time, error) {
	var from time.Time
	switch period {
	case "":
		return nil, nil
	case PeriodToday:
		from = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	case PeriodWeek:
		from = now.AddDate(0, 0, -7)
	case PeriodMonth:
		from = now.AddDate(0, -1, 0)
	case PeriodYear:
		from = now.AddDate(-1, 0, 0)
	default:
		return nil, domain.ErrInvalidInput
	}
	return &from, nil
}
