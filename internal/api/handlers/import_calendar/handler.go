package import_calendar

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CalendarService/internal/api/handlers"
	"github.com/m04kA/SMC-CalendarService/internal/api/middleware"
	importCalendar "github.com/m04kA/SMC-CalendarService/internal/usecase/import_calendar"
)

const (
	msgMissingUserID       = "отсутствует ID пользователя"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidCalendar     = "некорректный календарь"
	msgCalendarNotFound    = "календарь не найден"
	msgCalendarTooLarge    = "календарь слишком большой"
	msgCalendarUnavailable = "источник календаря недоступен"
)

type Handler struct {
	useCase UseCase
	logger  Logger
}

func NewHandler(useCase UseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/calendar/import
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /calendar/import - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req ImportRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /calendar/import - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, importCalendar.ErrInvalidInput), errors.Is(err, importCalendar.ErrInvalidCalendar):
			h.logger.Warn("POST /calendar/import - Invalid calendar: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidCalendar)

		case errors.Is(err, importCalendar.ErrCalendarNotFound):
			h.logger.Warn("POST /calendar/import - Calendar not found: user_id=%d, error=%v", userID, err)
			handlers.RespondNotFound(w, msgCalendarNotFound)

		case errors.Is(err, importCalendar.ErrCalendarTooLarge):
			h.logger.Warn("POST /calendar/import - Calendar too large: user_id=%d", userID)
			handlers.RespondError(w, http.StatusRequestEntityTooLarge, msgCalendarTooLarge)

		case errors.Is(err, importCalendar.ErrCalendarUnavailable):
			h.logger.Warn("POST /calendar/import - Calendar source unavailable: user_id=%d, error=%v", userID, err)
			handlers.RespondError(w, http.StatusBadGateway, msgCalendarUnavailable)

		default:
			h.logger.Error("POST /calendar/import - Failed to import calendar: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /calendar/import - Calendar imported: user_id=%d, events=%d", userID, len(result.Events))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
