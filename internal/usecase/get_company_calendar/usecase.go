package get_company_calendar

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CalendarService/internal/colorrules"
	"github.com/m04kA/SMC-CalendarService/internal/domain"
	sellerClient "github.com/m04kA/SMC-CalendarService/internal/integrations/sellerservice"
)

// UseCase use case для получения раскрашенного календаря компании на день
type UseCase struct {
	bookingRepo  BookingRepository
	sellerClient SellerServiceClient
	rules        RulesProvider
	metrics      MetricsCollector
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
// metrics может быть nil (метрики выключены)
func NewUseCase(
	bookingRepo BookingRepository,
	sellerClient SellerServiceClient,
	rules RulesProvider,
	metrics MetricsCollector,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		sellerClient: sellerClient,
		rules:        rules,
		metrics:      metrics,
		logger:       logger,
	}
}

// Execute выполняет use case получения календаря
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetCompanyCalendar: user=%d, company=%d, address=%v, date=%s",
		req.UserID, req.CompanyID, req.AddressID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetCompanyCalendar: validation failed: %v", err)
		return nil, err
	}

	// 2. Календарь компании доступен только ее менеджерам
	if err := uc.checkManagerAccess(ctx, req.CompanyID, req.UserID); err != nil {
		return nil, err
	}

	// 3. Получаем бронирования компании на день
	date := req.Date
	bookings, err := uc.bookingRepo.GetByCompanyWithFilter(ctx, domain.CompanyBookingsFilter{
		CompanyID:       req.CompanyID,
		AddressID:       req.AddressID,
		StartDate:       &date,
		EndDate:         &date,
		IncludeInactive: req.IncludeInactive,
	})
	if err != nil {
		uc.logger.Error("GetCompanyCalendar: failed to get bookings for company=%d: %v", req.CompanyID, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 4. Один снимок правил на весь ответ
	cfg := uc.rules.Current(ctx)

	// 5. Раскрашиваем события
	events := make([]ColoredEvent, 0, len(bookings))
	for _, booking := range bookings {
		event := booking.ToCalendarEvent()
		decision := colorrules.DisplayColor(&event, cfg)
		uc.observe(decision.Source)

		events = append(events, ColoredEvent{
			BookingID:   booking.ID,
			Event:       event,
			Color:       decision.Color,
			Source:      decision.Source,
			RuleID:      decision.Match.RuleID,
			RuleName:    decision.Match.RuleName,
			Explanation: decision.Explanation,
		})
	}

	uc.logger.Info("GetCompanyCalendar: company=%d, %d events colored with rules version=%d",
		req.CompanyID, len(events), cfg.Version)

	return &Response{
		Date:         req.Date,
		CompanyID:    req.CompanyID,
		AddressID:    req.AddressID,
		RulesVersion: cfg.Version,
		Events:       events,
	}, nil
}

// checkManagerAccess проверяет, что пользователь является менеджером компании
func (uc *UseCase) checkManagerAccess(ctx context.Context, companyID int64, userID int64) error {
	company, err := uc.sellerClient.GetCompany(ctx, companyID)
	if err != nil {
		if errors.Is(err, sellerClient.ErrCompanyNotFound) {
			uc.logger.Warn("GetCompanyCalendar: company id=%d not found", companyID)
			return ErrCompanyNotFound
		}
		uc.logger.Error("GetCompanyCalendar: failed to get company id=%d: %v", companyID, err)
		return fmt.Errorf("%w: failed to get company: %v", ErrInternal, err)
	}

	for _, managerID := range company.ManagerIDs {
		if managerID == userID {
			return nil
		}
	}

	uc.logger.Warn("GetCompanyCalendar: user=%d is not a manager of company=%d", userID, companyID)
	return ErrAccessDenied
}

func (uc *UseCase) observe(tier domain.Tier) {
	if uc.metrics != nil {
		uc.metrics.ObserveResolution(string(tier))
	}
}
