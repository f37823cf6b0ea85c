package http

import (
	"encoding/json"
	"net/http"

	"github.com/ADTrauts/block-on-block-sub003/internal/domain/policy"
	"github.com/ADTrauts/block-on-block-sub003/internal/handler/http/middleware"
	"github.com/ADTrauts/block-on-block-sub003/internal/handler/http/response"
	policyService "github.com/ADTrauts/block-on-block-sub003/internal/service/policy"
)

type PolicyHandler interface {
	Upsert(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type policyHandlerImpl struct {
	policyService policyService.PolicyService
}

func NewPolicyHandler(svc policyService.PolicyService) PolicyHandler {
	return &policyHandlerImpl{policyService: svc}
}

// Upsert implements PolicyHandler.
func (h *policyHandlerImpl) Upsert(w http.ResponseWriter, r *http.Request) {
	businessID, ok := middleware.BusinessID(r)
	if !ok {
		response.Unauthorized(w, "business_id claim is missing or invalid")
		return
	}

	var req policy.UpsertPolicyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.policyService.UpsertPolicy(r.Context(), businessID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if req.ID != nil {
		response.SuccessWithMessage(w, "Policy updated", result)
		return
	}
	response.Created(w, "Policy created", result)
}

// List implements PolicyHandler.
func (h *policyHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	businessID, ok := middleware.BusinessID(r)
	if !ok {
		response.Unauthorized(w, "business_id claim is missing or invalid")
		return
	}

	includeArchived := r.URL.Query().Get("include_archived") == "true"

	result, err := h.policyService.ListPolicies(r.Context(), businessID, includeArchived)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
