package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/ADTrauts/block-on-block-sub003/internal/domain/shift"
	"github.com/ADTrauts/block-on-block-sub003/internal/handler/http/middleware"
	"github.com/ADTrauts/block-on-block-sub003/internal/handler/http/response"
	shiftService "github.com/ADTrauts/block-on-block-sub003/internal/service/shift"
	"github.com/go-chi/chi/v5"
)

type ShiftHandler interface {
	UpsertTemplate(w http.ResponseWriter, r *http.Request)
	ListTemplates(w http.ResponseWriter, r *http.Request)
	ArchiveTemplate(w http.ResponseWriter, r *http.Request)
	Assign(w http.ResponseWriter, r *http.Request)
	UpdateAssignment(w http.ResponseWriter, r *http.Request)
	ListAssignments(w http.ResponseWriter, r *http.Request)
	UpcomingShifts(w http.ResponseWriter, r *http.Request)
}

type shiftHandlerImpl struct {
	shiftService shiftService.ShiftService
}

func NewShiftHandler(svc shiftService.ShiftService) ShiftHandler {
	return &shiftHandlerImpl{shiftService: svc}
}

// UpsertTemplate implements ShiftHandler.
func (h *shiftHandlerImpl) UpsertTemplate(w http.ResponseWriter, r *http.Request) {
	businessID, ok := middleware.BusinessID(r)
	if !ok {
		response.Unauthorized(w, "business_id claim is missing or invalid")
		return
	}

	var req shift.UpsertTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.shiftService.UpsertTemplate(r.Context(), businessID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if req.ID != nil {
		response.SuccessWithMessage(w, "Shift template updated", result)
		return
	}
	response.Created(w, "Shift template created", result)
}

// ListTemplates implements ShiftHandler.
func (h *shiftHandlerImpl) ListTemplates(w http.ResponseWriter, r *http.Request) {
	businessID, ok := middleware.BusinessID(r)
	if !ok {
		response.Unauthorized(w, "business_id claim is missing or invalid")
		return
	}

	includeArchived := r.URL.Query().Get("include_archived") == "true"

	result, err := h.shiftService.ListTemplates(r.Context(), businessID, includeArchived)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ArchiveTemplate implements ShiftHandler.
func (h *shiftHandlerImpl) ArchiveTemplate(w http.ResponseWriter, r *http.Request) {
	businessID, ok := middleware.BusinessID(r)
	if !ok {
		response.Unauthorized(w, "business_id claim is missing or invalid")
		return
	}

	id := chi.URLParam(r, "templateID")

	if err := h.shiftService.ArchiveTemplate(r.Context(), businessID, id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shift template archived", nil)
}

// Assign implements ShiftHandler.
func (h *shiftHandlerImpl) Assign(w http.ResponseWriter, r *http.Request) {
	businessID, ok := middleware.BusinessID(r)
	if !ok {
		response.Unauthorized(w, "business_id claim is missing or invalid")
		return
	}

	var req shift.AssignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.shiftService.Assign(r.Context(), businessID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Shift assigned", result)
}

// UpdateAssignment implements ShiftHandler.
func (h *shiftHandlerImpl) UpdateAssignment(w http.ResponseWriter, r *http.Request) {
	businessID, ok := middleware.BusinessID(r)
	if !ok {
		response.Unauthorized(w, "business_id claim is missing or invalid")
		return
	}

	id := chi.URLParam(r, "assignmentID")

	var patch shift.UpdateAssignmentPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.shiftService.UpdateAssignment(r.Context(), businessID, id, patch)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shift assignment updated", result)
}

// ListAssignments implements ShiftHandler.
func (h *shiftHandlerImpl) ListAssignments(w http.ResponseWriter, r *http.Request) {
	businessID, ok := middleware.BusinessID(r)
	if !ok {
		response.Unauthorized(w, "business_id claim is missing or invalid")
		return
	}

	query := r.URL.Query()
	filter := shift.AssignmentFilter{
		DropArchivedTemplates: query.Get("drop_archived_templates") == "true",
	}
	if v := query.Get("employee_position_id"); v != "" {
		filter.EmployeePositionID = &v
	}
	if v := query.Get("template_id"); v != "" {
		filter.TemplateID = &v
	}
	if v := query.Get("status"); v != "" {
		filter.Status = &v
	}

	result, err := h.shiftService.ListAssignments(r.Context(), businessID, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpcomingShifts implements ShiftHandler.
func (h *shiftHandlerImpl) UpcomingShifts(w http.ResponseWriter, r *http.Request) {
	businessID, ok := middleware.BusinessID(r)
	if !ok {
		response.Unauthorized(w, "business_id claim is missing or invalid")
		return
	}

	employeePositionID := chi.URLParam(r, "employeePositionID")
	query := r.URL.Query()

	asOf := time.Now().UTC()
	if v := query.Get("as_of"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			response.BadRequest(w, "as_of must be a date in YYYY-MM-DD format", nil)
			return
		}
		asOf = parsed
	}

	windowDays := 0
	if v := query.Get("window_days"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			response.BadRequest(w, "window_days must be a number", nil)
			return
		}
		windowDays = parsed
	}

	result, err := h.shiftService.UpcomingShifts(r.Context(), businessID, employeePositionID, asOf, windowDays)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
