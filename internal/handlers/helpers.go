package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/glowbook/salon-api/internal/httperr"
)

// businessErrorStatus maps use case error codes to HTTP statuses. Anything
// not listed falls through as an internal error.
var businessErrorStatus = map[string]int{
	"profile_not_found":       http.StatusNotFound,
	"checklist_not_found":     http.StatusNotFound,
	"hairdresser_not_found":   http.StatusNotFound,
	"amendment_not_found":     http.StatusNotFound,
	"no_data_found":           http.StatusNotFound,
	"requirements_not_met":    http.StatusUnprocessableEntity,
	"invalid_status":          http.StatusBadRequest,
	"invalid_checklist_item":  http.StatusBadRequest,
	"invalid_amendment_field": http.StatusBadRequest,
	"invalid_action":          http.StatusBadRequest,
	"missing_new_value":       http.StatusBadRequest,
	"invalid_month":           http.StatusBadRequest,
	"invalid_year":            http.StatusBadRequest,
	"checklist_exists":        http.StatusConflict,
}

// writeUsecaseError turns a use case failure into the JSON error envelope,
// preserving the code when it is a known business error.
func writeUsecaseError(c *gin.Context, err error) {
	if code := httperr.BusinessCode(err); code != "" {
		if status, ok := businessErrorStatus[code]; ok {
			httperr.Write(c, status, code, friendlyMessage(code))
			return
		}
		httperr.BadRequest(c, code, friendlyMessage(code))
		return
	}
	httperr.Internal(c, "internal_error", "Something went wrong.")
}

func friendlyMessage(code string) string {
	switch code {
	case "profile_not_found":
		return "Business profile not found."
	case "checklist_not_found":
		return "Checklist not found."
	case "hairdresser_not_found":
		return "Hairdresser not found."
	case "amendment_not_found":
		return "Amendment request not found."
	case "no_data_found":
		return "No completed bookings in that period."
	case "requirements_not_met":
		return "All checklist prerequisites must be verified first."
	default:
		return "Request could not be processed."
	}
}
