package get_company_calendar

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
	"github.com/m04kA/SMC-CalendarService/internal/integrations/sellerservice"
	rulesStore "github.com/m04kA/SMC-CalendarService/internal/infra/storage/rules"
	"github.com/m04kA/SMC-CalendarService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeBookingRepo struct {
	bookings []*domain.Booking
	err      error
	filter   domain.CompanyBookingsFilter
}

func (f *fakeBookingRepo) GetByCompanyWithFilter(_ context.Context, filter domain.CompanyBookingsFilter) ([]*domain.Booking, error) {
	f.filter = filter
	return f.bookings, f.err
}

type fakeSellerClient struct {
	company *sellerservice.Company
	err     error
}

func (f *fakeSellerClient) GetCompany(_ context.Context, companyID int64) (*sellerservice.Company, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.company, nil
}

func managedBy(companyID int64, managerIDs ...int64) *fakeSellerClient {
	return &fakeSellerClient{company: &sellerservice.Company{ID: companyID, ManagerIDs: managerIDs}}
}

type tierCounter map[string]int

func (c tierCounter) ObserveResolution(tier string) { c[tier]++ }

func strPtr(s string) *string { return &s }

func TestUseCase_Execute(t *testing.T) {
	date := time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)
	addressID := int64(3)

	repo := &fakeBookingRepo{bookings: []*domain.Booking{
		{
			ID:              1,
			CompanyID:       10,
			StartTime:       types.TimeString("10:00"),
			DurationMinutes: 20,
			Status:          domain.StatusConfirmed,
			ServiceName:     "Комплексная мойка",
			Notes:           strPtr("VIP клиент"),
		},
		{
			ID:              2,
			CompanyID:       10,
			StartTime:       types.TimeString("23:30"),
			DurationMinutes: 60,
			Status:          domain.StatusCancelledByUser,
			ServiceName:     "Полировка",
		},
		{
			ID:              3,
			CompanyID:       10,
			StartTime:       types.TimeString("15:00"),
			DurationMinutes: 60,
			Status:          domain.StatusConfirmed,
			ServiceName:     "Химчистка",
		},
	}}
	counter := tierCounter{}

	uc := NewUseCase(repo, managedBy(10, 7, 1), rulesStore.NewStore(nil), counter, nopLogger{})
	resp, err := uc.Execute(context.Background(), &Request{
		UserID:          1,
		CompanyID:       10,
		AddressID:       &addressID,
		Date:            date,
		IncludeInactive: true,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(10), repo.filter.CompanyID)
	assert.Equal(t, &addressID, repo.filter.AddressID)
	assert.True(t, repo.filter.StartDate.Equal(date))
	assert.True(t, repo.filter.EndDate.Equal(date))
	assert.True(t, repo.filter.IncludeInactive)

	assert.Equal(t, int64(1), resp.RulesVersion)
	require.Len(t, resp.Events, 3)

	vip := resp.Events[0]
	assert.Equal(t, int64(1), vip.BookingID)
	assert.Equal(t, "booking-1", vip.Event.ID)
	assert.Equal(t, types.TimeString("10:20"), vip.Event.EndTime)
	assert.Equal(t, domain.TierPattern, vip.Source)
	assert.Equal(t, "#a855f7", vip.Color)
	assert.Equal(t, "vip", vip.RuleID)

	// Окончание после полуночи не задано - длительность пропускается, срабатывает статус
	cancelled := resp.Events[1]
	assert.Empty(t, cancelled.Event.EndTime)
	assert.Equal(t, domain.TierStatus, cancelled.Source)
	assert.Equal(t, "#9ca3af", cancelled.Color)

	// Час работы - средняя длительность, раньше статуса и канала
	plain := resp.Events[2]
	assert.Equal(t, domain.TierDuration, plain.Source)
	assert.Equal(t, "#7dd3fc", plain.Color)

	assert.Equal(t, 1, counter[string(domain.TierPattern)])
	assert.Equal(t, 1, counter[string(domain.TierStatus)])
	assert.Equal(t, 1, counter[string(domain.TierDuration)])
}

func TestUseCase_ExecuteValidation(t *testing.T) {
	uc := NewUseCase(&fakeBookingRepo{}, managedBy(1, 1), rulesStore.NewStore(nil), nil, nopLogger{})
	ctx := context.Background()
	bad := int64(0)

	_, err := uc.Execute(ctx, &Request{CompanyID: 0, Date: time.Now()})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(ctx, &Request{CompanyID: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(ctx, &Request{CompanyID: 1, AddressID: &bad, Date: time.Now()})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUseCase_ExecuteRepositoryError(t *testing.T) {
	repo := &fakeBookingRepo{err: errors.New("connection refused")}
	uc := NewUseCase(repo, managedBy(1, 1), rulesStore.NewStore(nil), nil, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{UserID: 1, CompanyID: 1, Date: time.Now()})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestUseCase_ExecuteManagerAccess(t *testing.T) {
	tests := []struct {
		name    string
		seller  *fakeSellerClient
		wantErr error
	}{
		{"not a manager", managedBy(10, 7, 8), ErrAccessDenied},
		{"no managers", managedBy(10), ErrAccessDenied},
		{"company not found", &fakeSellerClient{err: sellerservice.ErrCompanyNotFound}, ErrCompanyNotFound},
		{"seller unavailable", &fakeSellerClient{err: fmt.Errorf("%w: timeout", sellerservice.ErrInternal)}, ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeBookingRepo{bookings: []*domain.Booking{{ID: 1, CompanyID: 10}}}
			uc := NewUseCase(repo, tt.seller, rulesStore.NewStore(nil), nil, nopLogger{})

			resp, err := uc.Execute(context.Background(), &Request{UserID: 1, CompanyID: 10, Date: time.Now()})
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, resp)
			// Бронирования чужой компании не читаются
			assert.Zero(t, repo.filter.CompanyID)
		})
	}
}
