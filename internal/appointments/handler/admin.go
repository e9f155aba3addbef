package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"

	"github.com/Tamoora69/abdeen-barber-shop/internal/appointments/service"
	"github.com/Tamoora69/abdeen-barber-shop/pkg/config"
	apperrors "github.com/Tamoora69/abdeen-barber-shop/pkg/errors"
	httputil "github.com/Tamoora69/abdeen-barber-shop/pkg/http"
	"github.com/Tamoora69/abdeen-barber-shop/pkg/logger"
)

// AdminHandler serves the owner's dashboard: the full appointment list and
// appointment deletion. Password checking happens in the auth middleware, not
// here.
type AdminHandler struct {
	service service.AppointmentService
	log     *logger.Logger
}

func NewAdminHandler(service service.AppointmentService, log *logger.Logger) *AdminHandler {
	return &AdminHandler{
		service: service,
		log:     log,
	}
}

func (h *AdminHandler) ListAppointments(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()

	limit := 0
	if limitStr := query.Get("limit"); limitStr != "" {
		var err error
		limit, err = strconv.Atoi(limitStr)
		if err != nil {
			if writeErr := httputil.WriteError(w, apperrors.InvalidInput(fmt.Sprintf("invalid limit parameter: %s", limitStr))); writeErr != nil {
				h.log.Error("failed to write error response", "handler", "ListAppointments", "operation", "WriteError", "error", writeErr)
			}
			return
		}
	}

	var offset int64
	if offsetStr := query.Get("offset"); offsetStr != "" {
		parsed, err := strconv.ParseInt(offsetStr, 10, 64)
		if err != nil {
			if writeErr := httputil.WriteError(w, apperrors.InvalidInput(fmt.Sprintf("invalid offset parameter: %s", offsetStr))); writeErr != nil {
				h.log.Error("failed to write error response", "handler", "ListAppointments", "operation", "WriteError", "error", writeErr)
			}
			return
		}
		offset = parsed
	}

	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	appointments, total, err := h.service.GetAll(r.Context(), limit, offset)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ListAppointments", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WritePaginated(w, appointments, total, limit, int(offset)); err != nil {
		h.log.Error("failed to write paginated response", "handler", "ListAppointments", "operation", "WritePaginated", "error", err)
	}
}

func (h *AdminHandler) DeleteAppointment(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "DeleteAppointment", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	httputil.WriteNoContent(w)
}

func (h *AdminHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/admin/appointments", h.ListAppointments)
	router.DELETE("/api/v1/admin/appointments/:id", h.DeleteAppointment)
}
