package get_company_calendar

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CalendarService/internal/api/middleware"
	"github.com/m04kA/SMC-CalendarService/internal/domain"
	getCompanyCalendar "github.com/m04kA/SMC-CalendarService/internal/usecase/get_company_calendar"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeUseCase struct {
	got  *getCompanyCalendar.Request
	resp *getCompanyCalendar.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *getCompanyCalendar.Request) (*getCompanyCalendar.Response, error) {
	f.got = req
	return f.resp, f.err
}

func doGet(uc UseCase, target string, userID int64) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/companies/{companyId}/calendar", NewHandler(uc, nopLogger{}).Handle).Methods(http.MethodGet)

	req := httptest.NewRequest(http.MethodGet, target, nil)
	if userID != 0 {
		req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestHandler_GetCalendar(t *testing.T) {
	date := time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)
	uc := &fakeUseCase{resp: &getCompanyCalendar.Response{
		Date:         date,
		CompanyID:    10,
		RulesVersion: 2,
		Events: []getCompanyCalendar.ColoredEvent{{
			BookingID: 1,
			Color:     "#7dd3fc",
			Source:    domain.TierDuration,
		}},
	}}

	rr := doGet(uc, "/api/v1/companies/10/calendar?date=2026-10-14&addressId=3", 7)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, int64(7), uc.got.UserID)
	assert.Equal(t, int64(10), uc.got.CompanyID)
	require.NotNil(t, uc.got.AddressID)
	assert.Equal(t, int64(3), *uc.got.AddressID)

	var resp CalendarResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "2026-10-14", resp.Date)
	require.Len(t, resp.Events, 1)
	assert.Equal(t, domain.TierDuration, resp.Events[0].Source)
}

func TestHandler_GetCalendarErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"invalid input", getCompanyCalendar.ErrInvalidInput, http.StatusBadRequest},
		{"access denied", getCompanyCalendar.ErrAccessDenied, http.StatusForbidden},
		{"company not found", getCompanyCalendar.ErrCompanyNotFound, http.StatusNotFound},
		{"internal", getCompanyCalendar.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := doGet(&fakeUseCase{err: tt.err}, "/api/v1/companies/10/calendar?date=2026-10-14", 7)
			assert.Equal(t, tt.status, rr.Code)
		})
	}
}

func TestHandler_GetCalendarBadRequest(t *testing.T) {
	uc := &fakeUseCase{}

	assert.Equal(t, http.StatusBadRequest, doGet(uc, "/api/v1/companies/abc/calendar?date=2026-10-14", 7).Code)
	assert.Equal(t, http.StatusUnauthorized, doGet(uc, "/api/v1/companies/10/calendar?date=2026-10-14", 0).Code)
	assert.Equal(t, http.StatusBadRequest, doGet(uc, "/api/v1/companies/10/calendar", 7).Code)
	assert.Nil(t, uc.got)
}
