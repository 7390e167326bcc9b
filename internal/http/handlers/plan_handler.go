// README: Plan handler; POST /api/v1/plan turns a TripRequest into an itinerary.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"planai/internal/modules/itinerary"
)

// MaxBodyBytes caps the size of a plan request body.
const MaxBodyBytes = 1 << 20

// Planner is the slice of itinerary.Service the handler needs.
type Planner interface {
	PlanJSON(ctx context.Context, body []byte) (itinerary.TripResponse, error)
}

type PlanHandler struct {
	planner Planner
	timeout time.Duration
	log     *zap.Logger
}

func NewPlanHandler(planner Planner, timeout time.Duration, log *zap.Logger) *PlanHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &PlanHandler{planner: planner, timeout: timeout, log: log}
}

// Plan handles POST /api/v1/plan.
func (h *PlanHandler) Plan(c *gin.Context) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(c, http.StatusBadRequest, errorResponse{
				Error:  "invalid trip request",
				Fields: []itinerary.Violation{{Field: "body", Message: fmt.Sprintf("must not exceed %d bytes", MaxBodyBytes)}},
			})
			return
		}
		writeError(c, http.StatusBadRequest, "could not read request body")
		return
	}

	ctx := c.Request.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	resp, err := h.planner.PlanJSON(ctx, body)
	if err != nil {
		if itinerary.Kind(err) == itinerary.KindRequestValidation {
			h.log.Info("rejected trip request", zap.Error(err))
		}
		writePlanError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, resp)
}

func asRequestError(err error) (*itinerary.RequestValidationError, bool) {
	var verr *itinerary.RequestValidationError
	ok := errors.As(err, &verr)
	return verr, ok
}
