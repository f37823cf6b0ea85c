package http

import (
	"encoding/json"
	"net/http"

	"github.com/ADTrauts/block-on-block-sub003/internal/domain/exception"
	"github.com/ADTrauts/block-on-block-sub003/internal/handler/http/middleware"
	"github.com/ADTrauts/block-on-block-sub003/internal/handler/http/response"
	exceptionService "github.com/ADTrauts/block-on-block-sub003/internal/service/exception"
	"github.com/go-chi/chi/v5"
)

type ExceptionHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Resolve(w http.ResponseWriter, r *http.Request)
}

type exceptionHandlerImpl struct {
	exceptionService exceptionService.ExceptionService
}

func NewExceptionHandler(svc exceptionService.ExceptionService) ExceptionHandler {
	return &exceptionHandlerImpl{exceptionService: svc}
}

// List implements ExceptionHandler.
//
// The filter arrives as a POST body because the visible-position set can be
// large; the org-chart caller computes it before calling this endpoint.
func (h *exceptionHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	businessID, ok := middleware.BusinessID(r)
	if !ok {
		response.Unauthorized(w, "business_id claim is missing or invalid")
		return
	}

	var filter exception.ListFilter
	if err := json.NewDecoder(r.Body).Decode(&filter); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.exceptionService.ListForManager(r.Context(), businessID, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Exceptions, &response.Meta{
		Page:       result.Page,
		PageSize:   result.PageSize,
		TotalItems: result.TotalCount,
		TotalPages: result.TotalPages,
	})
}

// Resolve implements ExceptionHandler.
func (h *exceptionHandlerImpl) Resolve(w http.ResponseWriter, r *http.Request) {
	businessID, ok := middleware.BusinessID(r)
	if !ok {
		response.Unauthorized(w, "business_id claim is missing or invalid")
		return
	}

	managerUserID, ok := middleware.UserID(r)
	if !ok {
		response.Unauthorized(w, "user_id claim is missing or invalid")
		return
	}

	exceptionID := chi.URLParam(r, "exceptionID")

	var req exception.ResolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.exceptionService.Resolve(r.Context(), businessID, exceptionID, managerUserID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Exception resolution recorded", result)
}
