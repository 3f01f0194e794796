package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-LaneBooking/internal/api/handlers"
	"github.com/m04kA/SMC-LaneBooking/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-LaneBooking/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "Invalid request body"
	msgUnauthorized       = "Unauthorized"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: user_id=%s, error=%v", userID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(userID))
	if err != nil {
		var bookingErr *createBooking.Error
		if !errors.As(err, &bookingErr) {
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%s, error=%v", userID, err)
			handlers.RespondInternalError(w)
			return
		}

		// Обработка ошибок use case
		switch {
		case errors.Is(err, createBooking.ErrValidation):
			h.logger.Warn("POST /bookings - Validation failed: user_id=%s, reason=%s", userID, bookingErr.Message)
			handlers.RespondBadRequest(w, bookingErr.Message)

		case errors.Is(err, createBooking.ErrNotFound):
			h.logger.Warn("POST /bookings - Not found: user_id=%s, reason=%s", userID, bookingErr.Message)
			handlers.RespondNotFound(w, bookingErr.Message)

		case errors.Is(err, createBooking.ErrConflict):
			h.logger.Warn("POST /bookings - Conflict: user_id=%s, reason=%s", userID, bookingErr.Message)
			handlers.RespondConflict(w, bookingErr.Message)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%s, error=%v", userID, err)
			handlers.RespondError(w, http.StatusInternalServerError, bookingErr.Message)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%s, user_id=%s, lane_id=%s",
		result.BookingID, userID, result.LaneID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
