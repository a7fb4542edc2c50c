package get_company_calendar

import (
	"context"

	getCompanyCalendar "github.com/m04kA/SMC-CalendarService/internal/usecase/get_company_calendar"
)

type UseCase interface {
	Execute(ctx context.Context, req *getCompanyCalendar.Request) (*getCompanyCalendar.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
