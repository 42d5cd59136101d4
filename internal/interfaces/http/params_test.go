package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateParam(t *testing.T) {
	got, ok := parseDateParam("", false)
	assert.True(t, ok)
	assert.Nil(t, got)

	got, ok = parseDateParam("2026-03-01", false)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), *got)

	got, ok = parseDateParam("2026-03-01", true)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 3, 1, 23, 59, 59, 999999999, time.UTC), *got)

	got, ok = parseDateParam("2026-03-01T10:30:00-05:00", true)
	require.True(t, ok)
	assert.True(t, got.Equal(time.Date(2026, 3, 1, 15, 30, 0, 0, time.UTC)), "RFC3339 no se extiende al fin del día")

	_, ok = parseDateParam("01/03/2026", false)
	assert.False(t, ok)
}

// Las fechas se validan antes de llegar al caso de uso: sin dependencias basta el handler.
func TestMovementHistory_FiltrosInvalidos400(t *testing.T) {
	h := NewInventoryHandler(nil, nil, nil, nil)
	app := fiber.New()
	app.Get("/movements", h.MovementHistory)
	app.Get("/report", h.MovementReport)

	for _, q := range []string{
		"dateFrom=ayer",
		"dateTo=2026-13-45",
		"dateFrom=2026-03-02&dateTo=2026-03-01",
	} {
		for _, path := range []string{"/movements", "/report"} {
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, path+"?"+q, nil), -1)
			require.NoError(t, err)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "%s?%s", path, q)
			resp.Body.Close()
		}
	}
}
