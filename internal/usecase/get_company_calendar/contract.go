package get_company_calendar

import (
	"context"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
	"github.com/m04kA/SMC-CalendarService/internal/integrations/sellerservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetByCompanyWithFilter получает бронирования компании по фильтру
	GetByCompanyWithFilter(ctx context.Context, filter domain.CompanyBookingsFilter) ([]*domain.Booking, error)
}

// SellerServiceClient интерфейс клиента для SellerService
type SellerServiceClient interface {
	GetCompany(ctx context.Context, companyID int64) (*sellerservice.Company, error)
}

// RulesProvider источник текущей конфигурации правил раскраски
type RulesProvider interface {
	Current(ctx context.Context) *domain.RuleConfiguration
}

// MetricsCollector интерфейс для метрик раскраски
type MetricsCollector interface {
	ObserveResolution(tier string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
