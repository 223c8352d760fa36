package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Migrate crea el esquema si no existe. Los CHECK de coupon_accounts son la
// red de seguridad del invariante de saldo: aunque un caso de uso valide mal,
// el motor rechaza cualquier escritura que deje el saldo negativo.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id uuid PRIMARY KEY,
			email text NOT NULL UNIQUE,
			password_hash text NOT NULL,
			name text NOT NULL,
			role text NOT NULL,
			status text NOT NULL DEFAULT 'active',
			created_at timestamptz NOT NULL,
			updated_at timestamptz NOT NULL
		)`,
		// Cuenta única: el CHECK (id = 1) impide que exista más de una fila.
		`CREATE TABLE IF NOT EXISTS coupon_accounts (
			id int PRIMARY KEY CHECK (id = 1),
			balance bigint NOT NULL DEFAULT 0 CHECK (balance >= 0),
			total_used bigint NOT NULL DEFAULT 0 CHECK (total_used >= 0),
			updated_at timestamptz NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS reward_items (
			id uuid PRIMARY KEY,
			name text NOT NULL UNIQUE,
			description text NOT NULL DEFAULT '',
			cost bigint NOT NULL CHECK (cost >= 1),
			stock bigint NOT NULL CHECK (stock >= 0),
			is_active boolean NOT NULL DEFAULT true,
			created_at timestamptz NOT NULL,
			updated_at timestamptz NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS redemptions (
			id uuid PRIMARY KEY,
			item_id uuid NOT NULL REFERENCES reward_items (id),
			quantity bigint NOT NULL CHECK (quantity >= 1),
			total_cost bigint NOT NULL CHECK (total_cost >= 1),
			notes text NOT NULL DEFAULT '',
			created_at timestamptz NOT NULL,
			created_by text NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS waste_records (
			id uuid PRIMARY KEY,
			category text NOT NULL,
			weight numeric(12,3) NOT NULL,
			coupon_cost bigint NOT NULL DEFAULT 0,
			notes text NOT NULL DEFAULT '',
			date timestamptz NOT NULL,
			created_at timestamptz NOT NULL,
			created_by text NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS coupon_transactions (
			id uuid PRIMARY KEY,
			kind text NOT NULL CHECK (kind IN ('ADD', 'CONSUME', 'ADJUST')),
			amount bigint NOT NULL CHECK (amount <> 0),
			resulting_balance bigint NOT NULL CHECK (resulting_balance >= 0),
			reason text NOT NULL,
			waste_record_id uuid,
			redemption_id uuid REFERENCES redemptions (id),
			created_at timestamptz NOT NULL,
			created_by text NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS idx_coupon_transactions_created_at
			ON coupon_transactions (created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_waste_records_date
			ON waste_records (date DESC)`,
	}
	for _, stmt := range stmts {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
