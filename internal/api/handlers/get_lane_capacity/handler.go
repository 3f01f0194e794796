package get_lane_capacity

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-LaneBooking/internal/api/handlers"
	getLaneCapacity "github.com/m04kA/SMC-LaneBooking/internal/usecase/get_lane_capacity"
)

const (
	msgMissingRange  = "Query parameters from and to are required"
	msgInvalidParams = "Invalid lane id or time range, expected RFC3339 timestamps"
	msgInvalidRange  = "Range end must be after its start"
	msgRangeTooLong  = "Range must not exceed 31 days"
	msgLaneNotFound  = "Lane not found"
)

type Handler struct {
	useCase GetLaneCapacityUseCase
	logger  Logger
}

func NewHandler(useCase GetLaneCapacityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/lanes/{laneId}/capacity
// Query params: from, to (required, RFC3339)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	laneIDStr := mux.Vars(r)["laneId"]
	fromStr := r.URL.Query().Get("from")
	toStr := r.URL.Query().Get("to")

	if fromStr == "" || toStr == "" {
		h.logger.Warn("GET /lanes/{id}/capacity - Missing range: lane_id=%s", laneIDStr)
		handlers.RespondBadRequest(w, msgMissingRange)
		return
	}

	useCaseReq, err := ToUseCaseRequest(laneIDStr, fromStr, toStr)
	if err != nil {
		h.logger.Warn("GET /lanes/{id}/capacity - Invalid params: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getLaneCapacity.ErrInvalidInput):
			h.logger.Warn("GET /lanes/{id}/capacity - Invalid range: lane_id=%s, error=%v", laneIDStr, err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, getLaneCapacity.ErrRangeTooLong):
			h.logger.Warn("GET /lanes/{id}/capacity - Range too long: lane_id=%s", laneIDStr)
			handlers.RespondBadRequest(w, msgRangeTooLong)

		case errors.Is(err, getLaneCapacity.ErrLaneNotFound):
			h.logger.Warn("GET /lanes/{id}/capacity - Lane not found: lane_id=%s", laneIDStr)
			handlers.RespondNotFound(w, msgLaneNotFound)

		default:
			h.logger.Error("GET /lanes/{id}/capacity - Failed to get capacity: lane_id=%s, error=%v", laneIDStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /lanes/{id}/capacity - Capacity retrieved successfully: lane_id=%s, intervals=%d",
		laneIDStr, len(result.Intervals))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
