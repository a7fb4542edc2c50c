package import_calendar

import (
	"fmt"
	"strings"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	hasURL := strings.TrimSpace(req.URL) != ""
	hasICS := strings.TrimSpace(req.ICS) != ""

	if hasURL == hasICS {
		return fmt.Errorf("%w: exactly one of url or ics is required", ErrInvalidInput)
	}

	return nil
}
