package preview_color

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
	rulesStore "github.com/m04kA/SMC-CalendarService/internal/infra/storage/rules"
	"github.com/m04kA/SMC-CalendarService/internal/service/rules"
	"github.com/m04kA/SMC-CalendarService/internal/service/rules/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newHandler() *Handler {
	svc := rules.NewService(rulesStore.NewStore(nil), nil, nopLogger{})
	return NewHandler(svc, nopLogger{})
}

func TestHandler_Preview(t *testing.T) {
	h := newHandler()

	body := `{"category":"meeting","type":"email","priority":"high","title":"URGENT: созвон"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/color-rules/preview", strings.NewReader(body))
	rr := httptest.NewRecorder()

	h.Handle(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp models.PreviewResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Matched)
	assert.Equal(t, domain.TierPattern, resp.Tier)
	assert.Equal(t, "#dc2626", resp.DisplayColor)
	assert.Equal(t, int64(1), resp.Version)
}

func TestHandler_PreviewInvalidBody(t *testing.T) {
	h := newHandler()

	for _, body := range []string{"", "{", `{"startTime": 930}`} {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/color-rules/preview", strings.NewReader(body))
		rr := httptest.NewRecorder()

		h.Handle(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code, "body %q", body)
	}
}
