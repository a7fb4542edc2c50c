package delete_advanced_rule

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-CalendarService/internal/api/middleware"
	"github.com/m04kA/SMC-CalendarService/internal/service/rules"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	gotID string
	err   error
}

func (f *fakeService) DeleteAdvancedRule(_ context.Context, ruleID string, _ int64) error {
	f.gotID = ruleID
	return f.err
}

func TestHandler_Delete(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"deleted", nil, http.StatusNoContent},
		{"not found", rules.ErrRuleNotFound, http.StatusNotFound},
		{"internal", rules.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{err: tt.err}
			r := mux.NewRouter()
			r.HandleFunc("/api/v1/color-rules/advanced-rules/{ruleId}", NewHandler(svc, nopLogger{}).Handle).Methods(http.MethodDelete)

			req := httptest.NewRequest(http.MethodDelete, "/api/v1/color-rules/advanced-rules/vip", nil)
			req = req.WithContext(middleware.WithUserID(req.Context(), 3))
			rr := httptest.NewRecorder()

			r.ServeHTTP(rr, req)
			assert.Equal(t, tt.status, rr.Code)
			assert.Equal(t, "vip", svc.gotID)
		})
	}
}
