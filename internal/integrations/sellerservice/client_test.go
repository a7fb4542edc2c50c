package sellerservice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestClient_GetCompany(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/internal/companies/10":
			assert.Equal(t, http.MethodGet, r.Method)
			_, _ = w.Write([]byte(`{"id":10,"name":"Чистая машина","manager_ids":[1,7]}`))
		case "/internal/companies/11":
			_, _ = w.Write([]byte(`{"id":`))
		case "/internal/companies/12":
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("maintenance"))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, nopLogger{})
	ctx := context.Background()

	company, err := client.GetCompany(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(10), company.ID)
	assert.Equal(t, "Чистая машина", company.Name)
	assert.Equal(t, []int64{1, 7}, company.ManagerIDs)

	_, err = client.GetCompany(ctx, 404)
	assert.ErrorIs(t, err, ErrCompanyNotFound)

	_, err = client.GetCompany(ctx, 11)
	assert.ErrorIs(t, err, ErrInvalidResponse)

	_, err = client.GetCompany(ctx, 12)
	assert.ErrorIs(t, err, ErrInvalidResponse)
	assert.Contains(t, err.Error(), "maintenance")
}

func TestClient_GetCompanyUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := NewClient(srv.URL, time.Second, nopLogger{})

	_, err := client.GetCompany(context.Background(), 10)
	assert.ErrorIs(t, err, ErrInternal)
}
