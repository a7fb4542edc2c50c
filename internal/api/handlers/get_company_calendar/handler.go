package get_company_calendar

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CalendarService/internal/api/handlers"
	"github.com/m04kA/SMC-CalendarService/internal/api/middleware"
	getCompanyCalendar "github.com/m04kA/SMC-CalendarService/internal/usecase/get_company_calendar"
)

const (
	msgInvalidCompanyID = "некорректный ID компании"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgInvalidParams    = "некорректные параметры запроса"
	msgForbidden        = "доступ запрещен"
	msgCompanyNotFound  = "компания не найдена"
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

// Handle GET /api/v1/companies/{companyId}/calendar
// Query params: date (обязательно), addressId, includeInactive (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	companyID, err := strconv.ParseInt(mux.Vars(r)["companyId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /companies/{id}/calendar - Invalid company ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCompanyID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /companies/{id}/calendar - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	query := r.URL.Query()
	req, err := ToUseCaseRequest(companyID, userID, query.Get("date"), query.Get("addressId"), query.Get("includeInactive"))
	if err != nil {
		h.logger.Warn("GET /companies/{id}/calendar - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getCompanyCalendar.ErrInvalidInput):
			h.logger.Warn("GET /companies/{id}/calendar - Invalid input: company_id=%d, error=%v", companyID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		case errors.Is(err, getCompanyCalendar.ErrAccessDenied):
			h.logger.Warn("GET /companies/{id}/calendar - Access denied: company_id=%d, user_id=%d", companyID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, getCompanyCalendar.ErrCompanyNotFound):
			h.logger.Warn("GET /companies/{id}/calendar - Company not found: company_id=%d", companyID)
			handlers.RespondNotFound(w, msgCompanyNotFound)

		default:
			h.logger.Error("GET /companies/{id}/calendar - Failed to build calendar: company_id=%d, error=%v", companyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /companies/{id}/calendar - Calendar built: company_id=%d, events=%d, rules_version=%d",
		companyID, len(result.Events), result.RulesVersion)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
