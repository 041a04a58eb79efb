package handlers

import (
	"errors"
	"fmt"
	"io"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/lab-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/lab-scheduler/internal/dto"
	"github.com/BruksfildServices01/lab-scheduler/internal/httperr"
	"github.com/BruksfildServices01/lab-scheduler/internal/httpresp"
	ucAppointment "github.com/BruksfildServices01/lab-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	list   *ucAppointment.ListAppointments
	get    *ucAppointment.GetAppointment
	create *ucAppointment.CreateAppointment
	update *ucAppointment.UpdateAppointment
	patch  *ucAppointment.PatchAppointment
	remove *ucAppointment.DeleteAppointment

	log *zap.Logger
}

func NewAppointmentHandler(
	list *ucAppointment.ListAppointments,
	get *ucAppointment.GetAppointment,
	create *ucAppointment.CreateAppointment,
	update *ucAppointment.UpdateAppointment,
	patch *ucAppointment.PatchAppointment,
	remove *ucAppointment.DeleteAppointment,
	log *zap.Logger,
) *AppointmentHandler {
	return &AppointmentHandler{
		list:   list,
		get:    get,
		create: create,
		update: update,
		patch:  patch,
		remove: remove,
		log:    log,
	}
}

const (
	msgUpdated = "Agendamento alterado com sucesso"
	msgRemoved = "Agendamento %s removido com sucesso"
)

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	list, err := h.list.Execute(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}

	httpresp.List(c, list)
}

// ======================================================
// GET
// ======================================================

func (h *AppointmentHandler) Get(c *gin.Context) {
	ap, err := h.get.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req dto.AppointmentRequest
	if !bindBody(c, &req) {
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), req.Fields())
	if err != nil {
		h.writeError(c, err)
		return
	}

	httpresp.Created(c, ap)
}

// ======================================================
// UPDATE (full replace)
// ======================================================

func (h *AppointmentHandler) Update(c *gin.Context) {
	var req dto.AppointmentRequest
	if !bindBody(c, &req) {
		return
	}

	if _, err := h.update.Execute(c.Request.Context(), c.Param("id"), req.Fields()); err != nil {
		h.writeError(c, err)
		return
	}

	httpresp.Text(c, msgUpdated)
}

// ======================================================
// PATCH
// ======================================================

func (h *AppointmentHandler) Patch(c *gin.Context) {
	var req dto.AppointmentPatchRequest
	if !bindBody(c, &req) {
		return
	}

	ap, err := h.patch.Execute(c.Request.Context(), c.Param("id"), req.Fields())
	if err != nil {
		h.writeError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// DELETE
// ======================================================

func (h *AppointmentHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	if err := h.remove.Execute(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}

	httpresp.Text(c, fmt.Sprintf(msgRemoved, id))
}

// ======================================================
// HELPERS
// ======================================================

// bindBody decodes the JSON body. An empty body counts as {}.
func bindBody(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		httperr.BadRequest(c, "invalid_request", httperr.Message("invalid_request"))
		return false
	}
	return true
}

func (h *AppointmentHandler) writeError(c *gin.Context, err error) {
	switch code := httperr.CodeOf(err); code {
	case domain.CodeNotFound:
		httperr.NotFoundText(c, httperr.Message(code))
	case domain.CodeConflict, domain.CodeDuplicateID:
		httperr.Conflict(c, code, httperr.Message(code))
	default:
		h.log.Error("appointment operation failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		_ = c.Error(err)
		httperr.Internal(c, "persist_failed", httperr.Message("persist_failed"))
	}
}
