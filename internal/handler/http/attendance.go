package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/ADTrauts/block-on-block-sub003/internal/domain/attendance"
	"github.com/ADTrauts/block-on-block-sub003/internal/handler/http/middleware"
	"github.com/ADTrauts/block-on-block-sub003/internal/handler/http/response"
	attendanceService "github.com/ADTrauts/block-on-block-sub003/internal/service/attendance"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler interface {
	PunchIn(w http.ResponseWriter, r *http.Request)
	PunchOut(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendanceService.AttendanceService
}

func NewAttendanceHandler(svc attendanceService.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{attendanceService: svc}
}

// PunchIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) PunchIn(w http.ResponseWriter, r *http.Request) {
	businessID, ok := middleware.BusinessID(r)
	if !ok {
		response.Unauthorized(w, "business_id claim is missing or invalid")
		return
	}

	var req attendance.PunchInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.PunchIn(r.Context(), businessID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Punch in successful", result)
}

// PunchOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) PunchOut(w http.ResponseWriter, r *http.Request) {
	businessID, ok := middleware.BusinessID(r)
	if !ok {
		response.Unauthorized(w, "business_id claim is missing or invalid")
		return
	}

	var req attendance.PunchOutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.PunchOut(r.Context(), businessID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Punch out successful", result)
}

// List implements AttendanceHandler.
func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	businessID, ok := middleware.BusinessID(r)
	if !ok {
		response.Unauthorized(w, "business_id claim is missing or invalid")
		return
	}

	employeePositionID := chi.URLParam(r, "employeePositionID")

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			response.BadRequest(w, "limit must be a number", nil)
			return
		}
		limit = parsed
	}

	result, err := h.attendanceService.ListRecords(r.Context(), businessID, employeePositionID, limit)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
