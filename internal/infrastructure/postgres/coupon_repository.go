package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/ecopuntos/reciclaje-api/internal/domain"
	"github.com/ecopuntos/reciclaje-api/internal/domain/entity"
	"github.com/ecopuntos/reciclaje-api/internal/domain/repository"
)

var _ repository.CouponRepository = (*CouponRepo)(nil)

// CouponRepo implementación de CouponRepository sobre PostgreSQL (usable con pool o tx).
type CouponRepo struct {
	q Querier
}

// NewCouponRepository construye el adaptador del libro de cupones. Pasar pool o tx (Querier).
func NewCouponRepository(q Querier) *CouponRepo {
	return &CouponRepo{q: q}
}

const accountColumns = `id, balance, total_used, updated_at`

// GetAccount devuelve la cuenta única, creándola en cero si no existe.
func (r *CouponRepo) GetAccount() (*entity.CouponAccount, error) {
	if err := r.ensureAccount(); err != nil {
		return nil, err
	}
	query := `SELECT ` + accountColumns + ` FROM coupon_accounts WHERE id = $1`
	return r.scanAccount(r.q.QueryRow(context.Background(), query, entity.AccountID))
}

// GetAccountForUpdate bloquea la fila de la cuenta (SELECT FOR UPDATE).
// Las mutaciones concurrentes se serializan sobre este bloqueo.
func (r *CouponRepo) GetAccountForUpdate() (*entity.CouponAccount, error) {
	if err := r.ensureAccount(); err != nil {
		return nil, err
	}
	query := `SELECT ` + accountColumns + ` FROM coupon_accounts WHERE id = $1 FOR UPDATE`
	return r.scanAccount(r.q.QueryRow(context.Background(), query, entity.AccountID))
}

// ensureAccount crea la fila única en cero si aún no existe.
func (r *CouponRepo) ensureAccount() error {
	query := `
		INSERT INTO coupon_accounts (id, balance, total_used, updated_at)
		VALUES ($1, 0, 0, now())
		ON CONFLICT (id) DO NOTHING`
	if _, err := r.q.Exec(context.Background(), query, entity.AccountID); err != nil {
		return fmt.Errorf("ensure coupon account: %w", err)
	}
	return nil
}

func (r *CouponRepo) scanAccount(row pgx.Row) (*entity.CouponAccount, error) {
	var a entity.CouponAccount
	if err := row.Scan(&a.ID, &a.Balance, &a.TotalUsed, &a.UpdatedAt); err != nil {
		return nil, fmt.Errorf("get coupon account: %w", err)
	}
	return &a, nil
}

// UpdateAccount persiste saldo y acumulado. El CHECK balance >= 0 de la tabla
// actúa como red de seguridad: si una escritura dejara el saldo negativo, el
// motor la rechaza y aquí se traduce a ErrInsufficientBalance.
func (r *CouponRepo) UpdateAccount(account *entity.CouponAccount) error {
	query := `
		UPDATE coupon_accounts
		SET balance = $2, total_used = $3, updated_at = now()
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, account.ID, account.Balance, account.TotalUsed)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrInsufficientBalance
		}
		return fmt.Errorf("update coupon account: %w", err)
	}
	return nil
}

// CreateTransaction inserta una entrada inmutable del libro.
func (r *CouponRepo) CreateTransaction(tx *entity.CouponTransaction) error {
	query := `
		INSERT INTO coupon_transactions (id, kind, amount, resulting_balance, reason, waste_record_id, redemption_id, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		tx.ID, tx.Kind, tx.Amount, tx.ResultingBalance, tx.Reason,
		tx.WasteRecordID, tx.RedemptionID, tx.CreatedAt, tx.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("create coupon transaction: %w", err)
	}
	return nil
}

// ListTransactions historial filtrado por ventana y tipo, más reciente primero.
// Devuelve también el total de filas que cumplen el filtro, para paginación.
func (r *CouponRepo) ListTransactions(filter repository.TransactionFilter) ([]*entity.CouponTransaction, int64, error) {
	where := ` WHERE 1=1`
	args := []any{}
	pos := 1
	if filter.From != nil {
		where += fmt.Sprintf(" AND created_at >= $%d", pos)
		args = append(args, *filter.From)
		pos++
	}
	if filter.To != nil {
		where += fmt.Sprintf(" AND created_at <= $%d", pos)
		args = append(args, *filter.To)
		pos++
	}
	if filter.Kind != "" {
		where += fmt.Sprintf(" AND kind = $%d", pos)
		args = append(args, filter.Kind)
		pos++
	}

	var total int64
	countQuery := `SELECT count(*) FROM coupon_transactions` + where
	if err := r.q.QueryRow(context.Background(), countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count transactions: %w", err)
	}

	query := `
		SELECT id, kind, amount, resulting_balance, reason, waste_record_id, redemption_id, created_at, created_by
		FROM coupon_transactions` + where +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var list []*entity.CouponTransaction
	for rows.Next() {
		var t entity.CouponTransaction
		var createdBy *string
		if err := rows.Scan(&t.ID, &t.Kind, &t.Amount, &t.ResultingBalance, &t.Reason,
			&t.WasteRecordID, &t.RedemptionID, &t.CreatedAt, &createdBy); err != nil {
			return nil, 0, fmt.Errorf("scan transaction: %w", err)
		}
		if createdBy != nil {
			t.CreatedBy = *createdBy
		}
		list = append(list, &t)
	}
	return list, total, rows.Err()
}

// Summary agrega abonos y débitos por periodo con date_trunc.
func (r *CouponRepo) Summary(bucket string, from, to time.Time) ([]*repository.PeriodSummary, error) {
	var trunc string
	switch bucket {
	case "daily":
		trunc = "day"
	case "weekly":
		trunc = "week"
	case "monthly":
		trunc = "month"
	default:
		return nil, domain.ErrInvalidInput
	}
	query := `
		SELECT date_trunc($1, created_at) AS period,
		       COALESCE(SUM(CASE WHEN amount > 0 THEN amount ELSE 0 END), 0) AS earned,
		       COALESCE(SUM(CASE WHEN amount < 0 THEN -amount ELSE 0 END), 0) AS used
		FROM coupon_transactions
		WHERE created_at >= $2 AND created_at <= $3
		GROUP BY period
		ORDER BY period DESC`
	rows, err := r.q.Query(context.Background(), query, trunc, from, to)
	if err != nil {
		return nil, fmt.Errorf("summary: %w", err)
	}
	defer rows.Close()

	var list []*repository.PeriodSummary
	for rows.Next() {
		var s repository.PeriodSummary
		if err := rows.Scan(&s.PeriodStart, &s.Earned, &s.Used); err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		s.Net = s.Earned - s.Used
		list = append(list, &s)
	}
	return list, rows.Err()
}
