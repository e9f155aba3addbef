package wizard

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	httputil "github.com/Tamoora69/abdeen-barber-shop/pkg/http"
	"github.com/Tamoora69/abdeen-barber-shop/pkg/logger"
	"github.com/Tamoora69/abdeen-barber-shop/pkg/model"
)

// Handler exposes the wizard flow over HTTP. Each mutation returns the full
// session state so the client can render the current step without a second
// round trip.
type Handler struct {
	manager *Manager
	log     *logger.Logger
}

func NewHandler(manager *Manager, log *logger.Logger) *Handler {
	return &Handler{
		manager: manager,
		log:     log,
	}
}

type selectServiceRequest struct {
	ServiceID string `json:"service_id"`
}

type selectDateRequest struct {
	Date string `json:"date"`
}

type selectTimeRequest struct {
	Time string `json:"time"`
}

type submitRequest struct {
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
}

type submitResponse struct {
	State       State              `json:"state"`
	Appointment *model.Appointment `json:"appointment"`
}

func (h *Handler) Start(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	state := h.manager.Start()
	if err := httputil.WriteCreated(w, state); err != nil {
		h.log.Error("failed to write created response", "handler", "Start", "operation", "WriteCreated", "error", err)
	}
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	state, err := h.manager.Get(ps.ByName("id"))
	if err != nil {
		h.writeError(w, "Get", err)
		return
	}
	h.writeState(w, "Get", state)
}

func (h *Handler) SelectService(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req selectServiceRequest
	if !h.decode(w, r, "SelectService", &req) {
		return
	}

	state, err := h.manager.SelectService(ps.ByName("id"), req.ServiceID)
	if err != nil {
		h.writeError(w, "SelectService", err)
		return
	}
	h.writeState(w, "SelectService", state)
}

func (h *Handler) SelectDate(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req selectDateRequest
	if !h.decode(w, r, "SelectDate", &req) {
		return
	}

	state, err := h.manager.SelectDate(r.Context(), ps.ByName("id"), req.Date)
	if err != nil {
		h.writeError(w, "SelectDate", err)
		return
	}
	h.writeState(w, "SelectDate", state)
}

func (h *Handler) SelectTime(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req selectTimeRequest
	if !h.decode(w, r, "SelectTime", &req) {
		return
	}

	state, err := h.manager.SelectTime(ps.ByName("id"), req.Time)
	if err != nil {
		h.writeError(w, "SelectTime", err)
		return
	}
	h.writeState(w, "SelectTime", state)
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req submitRequest
	if !h.decode(w, r, "Submit", &req) {
		return
	}

	state, appt, err := h.manager.Submit(r.Context(), ps.ByName("id"), req.CustomerName, req.CustomerPhone)
	if err != nil {
		h.writeError(w, "Submit", err)
		return
	}

	if err := httputil.WriteCreated(w, submitResponse{State: state, Appointment: appt}); err != nil {
		h.log.Error("failed to write created response", "handler", "Submit", "operation", "WriteCreated", "error", err)
	}
}

func (h *Handler) Back(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	state, err := h.manager.Back(ps.ByName("id"))
	if err != nil {
		h.writeError(w, "Back", err)
		return
	}
	h.writeState(w, "Back", state)
}

func (h *Handler) Abandon(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.manager.Abandon(ps.ByName("id")); err != nil {
		h.writeError(w, "Abandon", err)
		return
	}
	httputil.WriteNoContent(w)
}

func (h *Handler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/wizard", h.Start)
	router.GET("/api/v1/wizard/:id", h.Get)
	router.POST("/api/v1/wizard/:id/service", h.SelectService)
	router.POST("/api/v1/wizard/:id/date", h.SelectDate)
	router.POST("/api/v1/wizard/:id/time", h.SelectTime)
	router.POST("/api/v1/wizard/:id/submit", h.Submit)
	router.POST("/api/v1/wizard/:id/back", h.Back)
	router.DELETE("/api/v1/wizard/:id", h.Abandon)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, handlerName string, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", handlerName, "operation", "WriteJSON", "error", writeErr)
		}
		return false
	}
	return true
}

func (h *Handler) writeState(w http.ResponseWriter, handlerName string, state State) {
	if err := httputil.WriteSuccess(w, state); err != nil {
		h.log.Error("failed to write success response", "handler", handlerName, "operation", "WriteSuccess", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, handlerName string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handlerName, "operation", "WriteError", "error", writeErr)
	}
}
