package http

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecopuntos/reciclaje-api/internal/domain"
	"github.com/ecopuntos/reciclaje-api/pkg/logger"
)

// respondWith monta un handler que siempre falla con err y devuelve la respuesta.
func respondWith(t *testing.T, w errorWriter, err error) (*http.Response, string) {
	t.Helper()
	app := fiber.New()
	app.Get("/fail", func(c *fiber.Ctx) error {
		return w.respond(c, err)
	})
	resp, reqErr := app.Test(httptest.NewRequest(http.MethodGet, "/fail", nil), -1)
	require.NoError(t, reqErr)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp, string(body)
}

func TestErrorWriter_MapeoDeDominio(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"monto invalido", domain.ErrInvalidAmount, http.StatusBadRequest, "INVALID_AMOUNT"},
		{"motivo faltante", domain.ErrMissingReason, http.StatusBadRequest, "MISSING_REASON"},
		{"validacion", domain.ErrInvalidInput, http.StatusBadRequest, "VALIDATION"},
		{"saldo insuficiente", domain.ErrInsufficientBalance, http.StatusBadRequest, "INSUFFICIENT_BALANCE"},
		{"stock insuficiente", domain.ErrInsufficientStock, http.StatusBadRequest, "INSUFFICIENT_STOCK"},
		{"articulo inactivo", domain.ErrItemInactive, http.StatusBadRequest, "ITEM_INACTIVE"},
		{"articulo no encontrado", domain.ErrItemNotFound, http.StatusNotFound, "ITEM_NOT_FOUND"},
		{"no encontrado", domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"email duplicado", domain.ErrEmailAlreadyExists, http.StatusConflict, "DUPLICATE"},
		{"no autorizado", domain.ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"prohibido", domain.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
	}

	w := errorWriter{production: true, log: logger.Nop()}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, body := respondWith(t, w, tc.err)
			assert.Equal(t, tc.wantStatus, resp.StatusCode)
			assert.Contains(t, body, tc.wantCode)
		})
	}
}

// Un error envuelto debe mapearse igual que el sentinel que contiene.
func TestErrorWriter_ErrorEnvuelto(t *testing.T) {
	w := errorWriter{production: true, log: logger.Nop()}
	wrapped := errors.Join(errors.New("al actualizar la cuenta"), domain.ErrInsufficientBalance)

	resp, body := respondWith(t, w, wrapped)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body, "INSUFFICIENT_BALANCE")
}

func TestErrorWriter_InternoOcultaDetalleEnProduccion(t *testing.T) {
	boom := errors.New("detalle sensible de la base de datos")

	resp, body := respondWith(t, errorWriter{production: true, log: logger.Nop()}, boom)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, body, "INTERNAL")
	assert.NotContains(t, body, "detalle sensible")

	resp, body = respondWith(t, errorWriter{production: false, log: logger.Nop()}, boom)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, body, "detalle sensible")
}
