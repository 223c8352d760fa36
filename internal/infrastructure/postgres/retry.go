package postgres

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ecopuntos/reciclaje-api/pkg/logger"
)

// RetryConfig reintentos con backoff exponencial para fallos transitorios
// del almacén. El retardo del intento n es BaseDelay × 4^(n-1).
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
}

// DefaultRetryConfig 3 intentos, 100ms de base.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{MaxAttempts: 3, BaseDelay: 100 * time.Millisecond}
}

func (c RetryConfig) normalized() RetryConfig {
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = 3
	}
	if c.BaseDelay <= 0 {
		c.BaseDelay = 100 * time.Millisecond
	}
	return c
}

// WithRetry ejecuta fn hasta MaxAttempts veces. Solo reintenta fallos
// transitorios (ver IsTransient); los errores permanentes — violaciones de
// constraint, errores de dominio — se devuelven de inmediato. fn debe ser
// seguro de reejecutar: cada intento abre su propia transacción y no deja
// estado parcial.
func WithRetry(ctx context.Context, cfg RetryConfig, log *logger.Logger, fn func() error) error {
	cfg = cfg.normalized()
	var err error
	for attempt := 1; ; attempt++ {
		err = fn()
		if err == nil {
			return nil
		}
		if !IsTransient(err) {
			return err
		}
		if attempt >= cfg.MaxAttempts {
			return err
		}
		delay := cfg.BaseDelay << (2 * (attempt - 1)) // ×4 por intento
		log.Warn().Err(err).Int("attempt", attempt).Dur("delay", delay).Msg("fallo transitorio del almacén, reintentando")
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
}

// IsTransient clasifica un fallo del almacén. Transitorios: caída de conexión,
// timeout de red, conflicto de serialización (40001), deadlock (40P01) y lock
// no disponible (55P03). Permanentes: violaciones de constraint (23xxx) y
// cualquier error que no provenga del motor o de la red.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", "40P01", "55P03":
			return true
		}
		// Clase 08 = fallos de conexión
		return strings.HasPrefix(pgErr.Code, "08")
	}
	if pgconn.SafeToRetry(err) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
