package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")

	// Errores del libro de cupones.
	ErrInvalidAmount       = errors.New("monto inválido")
	ErrMissingReason       = errors.New("el ajuste requiere un motivo")
	ErrInsufficientBalance = errors.New("saldo de cupones insuficiente")

	// Errores de canje en la tienda de recompensas.
	ErrItemNotFound      = errors.New("artículo no encontrado")
	ErrItemInactive      = errors.New("artículo inactivo")
	ErrInsufficientStock = errors.New("stock insuficiente")
)
