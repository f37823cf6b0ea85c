package attendance

import (
	"strings"
	"time"

	"github.com/ADTrauts/block-on-block-sub003/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type PunchInRequest struct {
	EmployeePositionID string         `json:"employee_position_id"`
	Method             string         `json:"method"`
	Source             *string        `json:"source,omitempty"`
	Location           map[string]any `json:"location,omitempty"`
	Metadata           map[string]any `json:"metadata,omitempty"`
}

func (r *PunchInRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeePositionID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_position_id",
			Message: "employee_position_id is required",
		})
	}
	if validator.IsEmpty(r.Method) {
		errs = append(errs, validator.ValidationError{
			Field:   "method",
			Message: "method is required",
		})
	} else if !validator.IsInSlice(strings.ToUpper(r.Method), MethodValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "method",
			Message: "method must be one of: " + strings.Join(MethodValues, ", "),
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type PunchOutRequest struct {
	EmployeePositionID string         `json:"employee_position_id"`
	Method             string         `json:"method"`
	Source             *string        `json:"source,omitempty"`
	Location           map[string]any `json:"location,omitempty"`
	Metadata           map[string]any `json:"metadata,omitempty"`
	RecordID           *string        `json:"record_id,omitempty"`
}

func (r *PunchOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeePositionID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_position_id",
			Message: "employee_position_id is required",
		})
	}
	if validator.IsEmpty(r.Method) {
		errs = append(errs, validator.ValidationError{
			Field:   "method",
			Message: "method is required",
		})
	} else if !validator.IsInSlice(strings.ToUpper(r.Method), MethodValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "method",
			Message: "method must be one of: " + strings.Join(MethodValues, ", "),
		})
	}
	if r.RecordID != nil && !validator.IsValidUUID(*r.RecordID) {
		errs = append(errs, validator.ValidationError{
			Field:   "record_id",
			Message: "record_id must be a valid UUID",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RecordResponse struct {
	ID                 string         `json:"id"`
	BusinessID         string         `json:"business_id"`
	EmployeePositionID string         `json:"employee_position_id"`
	EmployeeName       *string        `json:"employee_name,omitempty"`
	WorkDate           string         `json:"work_date"`
	ClockInAt          string         `json:"clock_in_at"`
	ClockOutAt         *string        `json:"clock_out_at,omitempty"`
	ClockInMethod      string         `json:"clock_in_method"`
	ClockOutMethod     *string        `json:"clock_out_method,omitempty"`
	ClockInSource      *string        `json:"clock_in_source,omitempty"`
	ClockOutSource     *string        `json:"clock_out_source,omitempty"`
	ClockInLocation    map[string]any `json:"clock_in_location,omitempty"`
	ClockOutLocation   map[string]any `json:"clock_out_location,omitempty"`
	DurationMinutes    *int           `json:"duration_minutes,omitempty"`
	VarianceMinutes    *int           `json:"variance_minutes,omitempty"`
	Status             string         `json:"status"`
	ExceptionFlagged   bool           `json:"exception_flagged"`
	PolicyID           *string        `json:"policy_id,omitempty"`
	Metadata           map[string]any `json:"metadata,omitempty"`
	CreatedAt          string         `json:"created_at"`
	UpdatedAt          string         `json:"updated_at"`
}

func ToRecordResponse(rec AttendanceRecord) RecordResponse {
	return RecordResponse{
		ID:                 rec.ID,
		BusinessID:         rec.BusinessID,
		EmployeePositionID: rec.EmployeePositionID,
		EmployeeName:       rec.EmployeeName,
		WorkDate:           rec.WorkDate.Format("2006-01-02"),
		ClockInAt:          rec.ClockInAt.Format(time.RFC3339),
		ClockOutAt:         timePtrToString(rec.ClockOutAt),
		ClockInMethod:      rec.ClockInMethod,
		ClockOutMethod:     rec.ClockOutMethod,
		ClockInSource:      rec.ClockInSource,
		ClockOutSource:     rec.ClockOutSource,
		ClockInLocation:    rec.ClockInLocation,
		ClockOutLocation:   rec.ClockOutLocation,
		DurationMinutes:    rec.DurationMinutes,
		VarianceMinutes:    rec.VarianceMinutes,
		Status:             string(rec.Status),
		ExceptionFlagged:   rec.ExceptionFlagged,
		PolicyID:           rec.PolicyID,
		Metadata:           rec.Metadata,
		CreatedAt:          rec.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          rec.UpdatedAt.Format(time.RFC3339),
	}
}

func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
