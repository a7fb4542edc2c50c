package update_color_rules

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CalendarService/internal/api/middleware"
	rulesStore "github.com/m04kA/SMC-CalendarService/internal/infra/storage/rules"
	"github.com/m04kA/SMC-CalendarService/internal/service/rules"
	"github.com/m04kA/SMC-CalendarService/internal/service/rules/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func currentAsRequest(t *testing.T, svc *rules.Service) models.ReplaceRulesRequest {
	t.Helper()
	c := svc.Current(context.Background())
	return models.ReplaceRulesRequest{
		Version:        c.Version,
		Enabled:        c.Enabled,
		AdvancedRules:  c.AdvancedRules,
		CustomPatterns: c.CustomPatterns,
		TimeBasedRules: c.TimeBasedRules,
		RecurringRules: c.RecurringRules,
		Palette:        c.Palette,
		PriorityOrder:  c.PriorityOrder,
	}
}

func doPut(h *Handler, userID int64, body interface{}) *httptest.ResponseRecorder {
	data, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/color-rules", bytes.NewReader(data))
	if userID > 0 {
		req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	}
	rr := httptest.NewRecorder()
	h.Handle(rr, req)
	return rr
}

func TestHandler_Replace(t *testing.T) {
	svc := rules.NewService(rulesStore.NewStore(nil), nil, nopLogger{})
	h := NewHandler(svc, nopLogger{})

	body := currentAsRequest(t, svc)
	body.Enabled = false

	rr := doPut(h, 7, body)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp models.RulesResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, int64(2), resp.Version)
	assert.False(t, resp.Enabled)

	// Та же версия второй раз - конфликт
	rr = doPut(h, 7, body)
	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestHandler_ReplaceErrors(t *testing.T) {
	svc := rules.NewService(rulesStore.NewStore(nil), nil, nopLogger{})
	h := NewHandler(svc, nopLogger{})

	t.Run("missing user", func(t *testing.T) {
		rr := doPut(h, 0, currentAsRequest(t, svc))
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("invalid color", func(t *testing.T) {
		body := currentAsRequest(t, svc)
		body.Palette.Durations.Short = "red"
		rr := doPut(h, 7, body)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), msgInvalidData)
	})

	t.Run("broken json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/api/v1/color-rules", bytes.NewReader([]byte("{")))
		req = req.WithContext(middleware.WithUserID(req.Context(), 7))
		rr := httptest.NewRecorder()
		h.Handle(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
