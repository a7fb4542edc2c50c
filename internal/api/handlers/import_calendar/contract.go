package import_calendar

import (
	"context"

	importCalendar "github.com/m04kA/SMC-CalendarService/internal/usecase/import_calendar"
)

type UseCase interface {
	Execute(ctx context.Context, req *importCalendar.Request) (*importCalendar.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
