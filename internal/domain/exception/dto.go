package exception

import (
	"strings"
	"time"

	"github.com/ADTrauts/block-on-block-sub003/internal/pkg/validator"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ListFilter carries the manager-facing listing filters. The caller (an
// org-chart collaborator) computes which employee positions the manager may
// see; this core enforces no authorization of its own.
type ListFilter struct {
	EmployeePositionIDs []string   `json:"employee_position_ids"`
	Statuses            []string   `json:"statuses,omitempty"`
	DetectedFrom        *time.Time `json:"detected_from,omitempty"`
	DetectedTo          *time.Time `json:"detected_to,omitempty"`
	Search              *string    `json:"search,omitempty"`
	Page                int        `json:"page"`
	PageSize            int        `json:"page_size"`
}

// Clamp normalizes page to >= 1 and page size to [1, 100].
func (f *ListFilter) Clamp() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = DefaultPageSize
	}
	if f.PageSize > MaxPageSize {
		f.PageSize = MaxPageSize
	}
}

type ResolveRequest struct {
	Status                string                 `json:"status"`
	ResolutionNote        *string                `json:"resolution_note,omitempty"`
	ManagerNote           *string                `json:"manager_note,omitempty"`
	ResolutionPayload     map[string]any         `json:"resolution_payload,omitempty"`
	AttendanceAdjustments *AttendanceAdjustments `json:"attendance_adjustments,omitempty"`
}

// AttendanceAdjustments carries the optional retroactive corrections applied
// to the linked attendance record. Only explicitly-provided fields are
// patched.
type AttendanceAdjustments struct {
	ClockInAt       *string `json:"clock_in_at,omitempty"`
	ClockOutAt      *string `json:"clock_out_at,omitempty"`
	Status          *string `json:"status,omitempty"`
	VarianceMinutes *int    `json:"variance_minutes,omitempty"`
}

func (r *ResolveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Status) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status is required",
		})
	} else if !validator.IsInSlice(strings.ToUpper(r.Status), StatusValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: " + strings.Join(StatusValues, ", "),
		})
	}
	if r.AttendanceAdjustments != nil {
		adj := r.AttendanceAdjustments
		if adj.ClockInAt != nil {
			if _, err := time.Parse(time.RFC3339, *adj.ClockInAt); err != nil {
				errs = append(errs, validator.ValidationError{
					Field:   "attendance_adjustments.clock_in_at",
					Message: "clock_in_at must be an RFC3339 timestamp",
				})
			}
		}
		if adj.ClockOutAt != nil {
			if _, err := time.Parse(time.RFC3339, *adj.ClockOutAt); err != nil {
				errs = append(errs, validator.ValidationError{
					Field:   "attendance_adjustments.clock_out_at",
					Message: "clock_out_at must be an RFC3339 timestamp",
				})
			}
		}
		if adj.Status != nil && *adj.Status != "IN_PROGRESS" && *adj.Status != "COMPLETED" {
			errs = append(errs, validator.ValidationError{
				Field:   "attendance_adjustments.status",
				Message: "status must be IN_PROGRESS or COMPLETED",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ExceptionResponse struct {
	ID                 string         `json:"id"`
	BusinessID         string         `json:"business_id"`
	EmployeePositionID string         `json:"employee_position_id"`
	EmployeeName       *string        `json:"employee_name,omitempty"`
	EmployeeEmail      *string        `json:"employee_email,omitempty"`
	RecordID           *string        `json:"record_id,omitempty"`
	Type               string         `json:"type"`
	Status             string         `json:"status"`
	DetectedAt         string         `json:"detected_at"`
	ResolvedByID       *string        `json:"resolved_by_id,omitempty"`
	ResolvedAt         *string        `json:"resolved_at,omitempty"`
	ResolutionNote     *string        `json:"resolution_note,omitempty"`
	ManagerNote        *string        `json:"manager_note,omitempty"`
	ResolutionPayload  map[string]any `json:"resolution_payload,omitempty"`
	CreatedAt          string         `json:"created_at"`
	UpdatedAt          string         `json:"updated_at"`
}

// ListPage is one page of manager-facing exception results.
type ListPage struct {
	TotalCount int64               `json:"total_count"`
	Page       int                 `json:"page"`
	PageSize   int                 `json:"page_size"`
	TotalPages int                 `json:"total_pages"`
	Exceptions []ExceptionResponse `json:"exceptions"`
}

func ToExceptionResponse(e AttendanceException) ExceptionResponse {
	var resolvedAt *string
	if e.ResolvedAt != nil {
		s := e.ResolvedAt.Format(time.RFC3339)
		resolvedAt = &s
	}
	return ExceptionResponse{
		ID:                 e.ID,
		BusinessID:         e.BusinessID,
		EmployeePositionID: e.EmployeePositionID,
		EmployeeName:       e.EmployeeName,
		EmployeeEmail:      e.EmployeeEmail,
		RecordID:           e.RecordID,
		Type:               e.Type,
		Status:             string(e.Status),
		DetectedAt:         e.DetectedAt.Format(time.RFC3339),
		ResolvedByID:       e.ResolvedByID,
		ResolvedAt:         resolvedAt,
		ResolutionNote:     e.ResolutionNote,
		ManagerNote:        e.ManagerNote,
		ResolutionPayload:  e.ResolutionPayload,
		CreatedAt:          e.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          e.UpdatedAt.Format(time.RFC3339),
	}
}
