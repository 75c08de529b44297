package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/deppfellow/persona-api/internal/errs"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToHTTPError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "HTTPError passes through",
			err:        fmt.Errorf("wrapped: %w", errs.NewNotFoundError("falta", true, nil)),
			wantStatus: http.StatusNotFound,
			wantMsg:    "falta",
		},
		{
			name:       "echo route not found",
			err:        echo.ErrNotFound,
			wantStatus: http.StatusNotFound,
			wantMsg:    "Ruta no encontrada",
		},
		{
			name:       "echo method not allowed",
			err:        echo.ErrMethodNotAllowed,
			wantStatus: http.StatusMethodNotAllowed,
			wantMsg:    "Method Not Allowed",
		},
		{
			name:       "driver constraint violation",
			err:        &pgconn.PgError{Code: "23514", TableName: "personas", Message: "violates check"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown error",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    http.StatusText(http.StatusInternalServerError),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := toHTTPError(tt.err)
			assert.Equal(t, tt.wantStatus, got.Status)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, got.Message)
			}
		})
	}
}

func TestGlobalErrorHandler_WritesDetail(t *testing.T) {
	global := &GlobalMiddlewares{}
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodDelete, "/personas/1", nil), rec)

	global.GlobalErrorHandler(
		errs.NewServerError("Error al eliminar la persona", "PERSONA_DELETE_FAILED").WithError(errors.New("locked")),
		c,
	)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Error al eliminar la persona", body["message"])
	assert.Equal(t, "locked", body["error"])
	assert.Equal(t, "PERSONA_DELETE_FAILED", body["code"])
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, http.StatusOK, statusOf(nil, http.StatusOK))
	assert.Equal(t, http.StatusBadRequest, statusOf(errs.NewBadRequestError("x", false, nil, nil), http.StatusOK))
	assert.Equal(t, http.StatusNotFound, statusOf(echo.ErrNotFound, http.StatusOK))
	assert.Equal(t, http.StatusInternalServerError, statusOf(errors.New("x"), http.StatusOK))
}

func TestRequestID(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	var seen string
	err := RequestID()(func(c echo.Context) error {
		seen = GetRequestID(c)
		return nil
	})(c)

	require.NoError(t, err)
	assert.Len(t, seen, 36)
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))
}

func TestGetLogger_WithoutEnhancer(t *testing.T) {
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	assert.NotNil(t, GetLogger(c))
}
