package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/Tamoora69/abdeen-barber-shop/internal/appointments/service"
	"github.com/Tamoora69/abdeen-barber-shop/pkg/catalog"
	apperrors "github.com/Tamoora69/abdeen-barber-shop/pkg/errors"
	httputil "github.com/Tamoora69/abdeen-barber-shop/pkg/http"
	"github.com/Tamoora69/abdeen-barber-shop/pkg/logger"
	"github.com/Tamoora69/abdeen-barber-shop/pkg/model"
	"github.com/Tamoora69/abdeen-barber-shop/pkg/whatsapp"
)

// AppointmentHandler serves the public booking API: the service catalog,
// per-date availability and appointment creation.
type AppointmentHandler struct {
	service      service.AppointmentService
	shopWhatsApp string
	log          *logger.Logger
}

func NewAppointmentHandler(service service.AppointmentService, shopWhatsApp string, log *logger.Logger) *AppointmentHandler {
	return &AppointmentHandler{
		service:      service,
		shopWhatsApp: shopWhatsApp,
		log:          log,
	}
}

type AvailabilityResponse struct {
	Date           string   `json:"date"`
	AvailableTimes []string `json:"available_times"`
}

type PaymentLinkResponse struct {
	WhatsAppURL string `json:"whatsapp_url"`
}

func (h *AppointmentHandler) ListServices(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := httputil.WriteSuccess(w, catalog.All()); err != nil {
		h.log.Error("failed to write success response", "handler", "ListServices", "operation", "WriteSuccess", "error", err)
	}
}

func (h *AppointmentHandler) ListSlots(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := httputil.WriteSuccess(w, h.service.Slots()); err != nil {
		h.log.Error("failed to write success response", "handler", "ListSlots", "operation", "WriteSuccess", "error", err)
	}
}

func (h *AppointmentHandler) Availability(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	date := r.URL.Query().Get("date")
	if date == "" {
		if writeErr := httputil.WriteError(w, apperrors.InvalidInput("Missing required query parameter: date")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Availability", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	available, err := h.service.Availability(r.Context(), date)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Availability", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, AvailabilityResponse{
		Date:           date,
		AvailableTimes: available,
	}); err != nil {
		h.log.Error("failed to write success response", "handler", "Availability", "operation", "WriteSuccess", "error", err)
	}
}

func (h *AppointmentHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var appt model.Appointment
	if err := json.NewDecoder(r.Body).Decode(&appt); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Create", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	if err := h.service.Create(r.Context(), &appt); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, appt); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

// PaymentLink returns the pre-filled WhatsApp chat link the payment page
// offers after the customer uploads an Instapay screenshot.
func (h *AppointmentHandler) PaymentLink(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := httputil.WriteSuccess(w, PaymentLinkResponse{
		WhatsAppURL: whatsapp.PaymentConfirmationLink(h.shopWhatsApp),
	}); err != nil {
		h.log.Error("failed to write success response", "handler", "PaymentLink", "operation", "WriteSuccess", "error", err)
	}
}

func (h *AppointmentHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/services", h.ListServices)
	router.GET("/api/v1/slots", h.ListSlots)
	router.GET("/api/v1/availability", h.Availability)
	router.POST("/api/v1/appointments", h.Create)
	router.GET("/api/v1/payment-link", h.PaymentLink)
}
