// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"planai/internal/modules/itinerary"
)

type errorResponse struct {
	Error  string                `json:"error"`
	Fields []itinerary.Violation `json:"fields,omitempty"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

// writePlanError maps a plan failure to its status. Only request validation is
// the caller's fault; every model-side failure is a plain 500.
func writePlanError(c *gin.Context, err error) {
	switch itinerary.Kind(err) {
	case itinerary.KindRequestValidation:
		var fields []itinerary.Violation
		if verr, ok := asRequestError(err); ok {
			fields = verr.Violations
		}
		writeJSON(c, http.StatusBadRequest, errorResponse{Error: "invalid trip request", Fields: fields})
	case itinerary.KindGeneration:
		writeError(c, http.StatusInternalServerError, "itinerary generation failed")
	case itinerary.KindResponseParse, itinerary.KindResponseValidation:
		writeError(c, http.StatusInternalServerError, "model returned an invalid itinerary")
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
