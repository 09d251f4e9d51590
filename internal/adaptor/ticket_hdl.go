package adaptor

import (
	"encoding/json"
	"net/http"

	"cinema-reservation/internal/dto/request"
	"cinema-reservation/internal/usecase"
	"cinema-reservation/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type TicketHandler struct {
	service usecase.TicketService
	log     *zap.Logger
}

func NewTicketHandler(service usecase.TicketService, log *zap.Logger) *TicketHandler {
	return &TicketHandler{
		service: service,
		log:     log.With(zap.String("handler", "ticket")),
	}
}

// BookTicket handles POST /api/tickets
func (h *TicketHandler) BookTicket(w http.ResponseWriter, r *http.Request) {
	var req request.BookTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	ticket, err := h.service.BookTicket(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "book ticket")
		return
	}

	utils.ResponseCreated(w, "Ticket booked successfully", ticket)
}

// UpdateTicket handles PUT /api/tickets (action: cancel or change)
func (h *TicketHandler) UpdateTicket(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	ticket, err := h.service.UpdateTicket(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update ticket")
		return
	}

	message := "Ticket updated successfully"
	if req.Action == request.ActionCancel {
		message = "Ticket canceled successfully"
	}
	utils.ResponseSuccess(w, message, ticket)
}

// GetUserBookings handles GET /api/users/{userId}/bookings
func (h *TicketHandler) GetUserBookings(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	if userID == "" {
		utils.ResponseBadRequest(w, "User ID is required", nil)
		return
	}

	bookings, err := h.service.ListUserBookings(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.log, err, "list user bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}
