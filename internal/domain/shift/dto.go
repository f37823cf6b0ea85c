package shift

import (
	"strings"
	"time"

	"github.com/ADTrauts/block-on-block-sub003/internal/pkg/validator"
)

// ========================================
// TEMPLATE DTOs
// ========================================

type UpsertTemplateRequest struct {
	ID           *string  `json:"id,omitempty"`
	Name         string   `json:"name"`
	Timezone     string   `json:"timezone"`
	StartMinute  *int     `json:"start_minute"`
	EndMinute    *int     `json:"end_minute"`
	BreakMinutes *int     `json:"break_minutes,omitempty"`
	DaysOfWeek   []string `json:"days_of_week"`
	PolicyID     *string  `json:"policy_id,omitempty"`
}

func (r *UpsertTemplateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if validator.IsEmpty(r.Timezone) {
		errs = append(errs, validator.ValidationError{
			Field:   "timezone",
			Message: "timezone is required",
		})
	} else if !validator.IsValidTimezone(r.Timezone) {
		errs = append(errs, validator.ValidationError{
			Field:   "timezone",
			Message: "timezone must be a valid IANA timezone name",
		})
	}
	if r.StartMinute == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "start_minute",
			Message: "start_minute is required",
		})
	}
	if r.EndMinute == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "end_minute",
			Message: "end_minute is required",
		})
	}
	if r.BreakMinutes != nil && *r.BreakMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "break_minutes",
			Message: "break_minutes must be a non-negative number",
		})
	}
	if len(r.DaysOfWeek) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "days_of_week",
			Message: "days_of_week is required",
		})
	}
	for _, day := range r.DaysOfWeek {
		if !validator.IsValidWeekday(day) {
			errs = append(errs, validator.ValidationError{
				Field:   "days_of_week",
				Message: "days_of_week entries must be MONDAY..SUNDAY",
			})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ValidateWindow checks the minute-of-day window of a shift template. Both
// bounds must lie in [0, 1440] and the end must exceed the start.
func ValidateWindow(startMinute, endMinute int) error {
	var errs validator.ValidationErrors

	if !validator.IsValidMinuteOfDay(startMinute) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_minute",
			Message: "start_minute must be between 0 and 1440",
		})
	}
	if !validator.IsValidMinuteOfDay(endMinute) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_minute",
			Message: "end_minute must be between 0 and 1440",
		})
	}
	if len(errs) == 0 && endMinute <= startMinute {
		errs = append(errs, validator.ValidationError{
			Field:   "end_minute",
			Message: "end_minute must be greater than start_minute",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type TemplateResponse struct {
	ID           string   `json:"id"`
	BusinessID   string   `json:"business_id"`
	Name         string   `json:"name"`
	Timezone     string   `json:"timezone"`
	StartMinute  int      `json:"start_minute"`
	EndMinute    int      `json:"end_minute"`
	BreakMinutes int      `json:"break_minutes"`
	DaysOfWeek   []string `json:"days_of_week"`
	PolicyID     *string  `json:"policy_id,omitempty"`
	Status       string   `json:"status"`
	CreatedAt    string   `json:"created_at"`
	UpdatedAt    string   `json:"updated_at"`
}

func ToTemplateResponse(t ShiftTemplate) TemplateResponse {
	return TemplateResponse{
		ID:           t.ID,
		BusinessID:   t.BusinessID,
		Name:         t.Name,
		Timezone:     t.Timezone,
		StartMinute:  t.StartMinute,
		EndMinute:    t.EndMinute,
		BreakMinutes: t.BreakMinutes,
		DaysOfWeek:   t.DaysOfWeek,
		PolicyID:     t.PolicyID,
		Status:       string(t.Status),
		CreatedAt:    t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    t.UpdatedAt.Format(time.RFC3339),
	}
}

// ========================================
// ASSIGNMENT DTOs
// ========================================

type AssignRequest struct {
	TemplateID         string         `json:"template_id"`
	EmployeePositionID string         `json:"employee_position_id"`
	EffectiveFrom      string         `json:"effective_from"`
	EffectiveTo        *string        `json:"effective_to,omitempty"`
	Status             *string        `json:"status,omitempty"`
	IsPrimary          *bool          `json:"is_primary,omitempty"`
	Overrides          map[string]any `json:"overrides,omitempty"`
}

func (r *AssignRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.TemplateID) {
		errs = append(errs, validator.ValidationError{
			Field:   "template_id",
			Message: "template_id is required",
		})
	}
	if validator.IsEmpty(r.EmployeePositionID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_position_id",
			Message: "employee_position_id is required",
		})
	}
	from, okFrom := validator.IsValidDate(r.EffectiveFrom)
	if !okFrom {
		errs = append(errs, validator.ValidationError{
			Field:   "effective_from",
			Message: "effective_from must be a date in YYYY-MM-DD format",
		})
	}
	if r.EffectiveTo != nil {
		to, ok := validator.IsValidDate(*r.EffectiveTo)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "effective_to",
				Message: "effective_to must be a date in YYYY-MM-DD format",
			})
		} else if okFrom && to.Before(from) {
			errs = append(errs, validator.ValidationError{
				Field:   "effective_to",
				Message: "effective_to must not precede effective_from",
			})
		}
	}
	if r.Status != nil && !validator.IsInSlice(strings.ToUpper(*r.Status), AssignmentStatusValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: " + strings.Join(AssignmentStatusValues, ", "),
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateAssignmentPatch struct {
	Status      *string        `json:"status,omitempty"`
	EffectiveTo *string        `json:"effective_to,omitempty"`
	Overrides   map[string]any `json:"overrides,omitempty"`
	IsPrimary   *bool          `json:"is_primary,omitempty"`
}

func (r *UpdateAssignmentPatch) Validate() error {
	var errs validator.ValidationErrors

	if r.Status != nil && !validator.IsInSlice(strings.ToUpper(*r.Status), AssignmentStatusValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: " + strings.Join(AssignmentStatusValues, ", "),
		})
	}
	if r.EffectiveTo != nil {
		if _, ok := validator.IsValidDate(*r.EffectiveTo); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "effective_to",
				Message: "effective_to must be a date in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func (r *UpdateAssignmentPatch) IsZero() bool {
	return r.Status == nil && r.EffectiveTo == nil && r.Overrides == nil && r.IsPrimary == nil
}

type AssignmentFilter struct {
	EmployeePositionID *string `json:"employee_position_id,omitempty"`
	TemplateID         *string `json:"template_id,omitempty"`
	Status             *string `json:"status,omitempty"`

	// DropArchivedTemplates removes assignments whose template has since been
	// archived. Applied after the join, in-process over the fetched rows,
	// because it depends on the template row's current status rather than the
	// assignment's own columns.
	DropArchivedTemplates bool `json:"drop_archived_templates,omitempty"`
}

type AssignmentResponse struct {
	ID                 string         `json:"id"`
	BusinessID         string         `json:"business_id"`
	TemplateID         string         `json:"template_id"`
	TemplateName       *string        `json:"template_name,omitempty"`
	TemplateStatus     *string        `json:"template_status,omitempty"`
	PolicyID           *string        `json:"policy_id,omitempty"`
	EmployeePositionID string         `json:"employee_position_id"`
	EmployeeName       *string        `json:"employee_name,omitempty"`
	EffectiveFrom      string         `json:"effective_from"`
	EffectiveTo        *string        `json:"effective_to,omitempty"`
	Status             string         `json:"status"`
	IsPrimary          bool           `json:"is_primary"`
	Overrides          map[string]any `json:"overrides,omitempty"`
	CreatedAt          string         `json:"created_at"`
	UpdatedAt          string         `json:"updated_at"`
}

func ToAssignmentResponse(a ShiftAssignment) AssignmentResponse {
	var templateStatus *string
	if a.TemplateStatus != nil {
		s := string(*a.TemplateStatus)
		templateStatus = &s
	}
	return AssignmentResponse{
		ID:                 a.ID,
		BusinessID:         a.BusinessID,
		TemplateID:         a.TemplateID,
		TemplateName:       a.TemplateName,
		TemplateStatus:     templateStatus,
		PolicyID:           a.PolicyID,
		EmployeePositionID: a.EmployeePositionID,
		EmployeeName:       a.EmployeeName,
		EffectiveFrom:      a.EffectiveFrom.Format("2006-01-02"),
		EffectiveTo:        formatDatePtr(a.EffectiveTo),
		Status:             string(a.Status),
		IsPrimary:          a.IsPrimary,
		Overrides:          a.Overrides,
		CreatedAt:          a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          a.UpdatedAt.Format(time.RFC3339),
	}
}

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}
