package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/sprmobility/pool-backend/internal/models"
	"github.com/sprmobility/pool-backend/internal/service"
	"github.com/sprmobility/pool-backend/pkg/utils"
)

type BookingHandler struct {
	bookingService service.BookingService
	validate       *validator.Validate
}

func NewBookingHandler(bookingService service.BookingService) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
		validate:       validator.New(),
	}
}

func (h *BookingHandler) RegisterRoutes(r chi.Router) {
	r.Post("/bookings", h.CreateBooking)
	r.Get("/bookings", h.ListBookings)
	r.Get("/bookings/{id}", h.GetBooking)
}

// POST /v1/bookings
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req models.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		utils.BadRequest(w, err.Error())
		return
	}

	booking, pool, err := h.bookingService.CreateBooking(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	resp := booking.ToResponse()
	resp.Pool = pool.ToResponse()
	utils.Created(w, resp)
}

// GET /v1/bookings?rider_id=...
func (h *BookingHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	riderID := r.URL.Query().Get("rider_id")
	if riderID == "" {
		utils.BadRequest(w, "rider_id is required")
		return
	}

	bookings, err := h.bookingService.ListBookingsByRider(r.Context(), riderID)
	if err != nil {
		handleError(w, err)
		return
	}

	out := make([]*models.BookingResponse, 0, len(bookings))
	for i := range bookings {
		out = append(out, bookings[i].ToResponse())
	}
	utils.Success(w, http.StatusOK, out)
}

// GET /v1/bookings/{id}
func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		utils.BadRequest(w, "booking id is required")
		return
	}

	booking, err := h.bookingService.GetBooking(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	utils.Success(w, http.StatusOK, booking.ToResponse())
}
