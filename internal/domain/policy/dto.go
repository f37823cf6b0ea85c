package policy

import (
	"time"

	"github.com/ADTrauts/block-on-block-sub003/internal/pkg/validator"
)

type UpsertPolicyRequest struct {
	ID                       *string        `json:"id,omitempty"`
	Name                     string         `json:"name"`
	Timezone                 string         `json:"timezone"`
	RoundingIncrementMinutes *int           `json:"rounding_increment_minutes"`
	GracePeriodMinutes       *int           `json:"grace_period_minutes"`
	AutoClockOutAfterMinutes *int           `json:"auto_clock_out_after_minutes,omitempty"`
	RequireGeofence          *bool          `json:"require_geofence,omitempty"`
	GeofenceRadiusMeters     *int           `json:"geofence_radius_meters,omitempty"`
	WorkingDays              []string       `json:"working_days"`
	IsDefault                *bool          `json:"is_default,omitempty"`
	EffectiveFrom            *string        `json:"effective_from,omitempty"`
	EffectiveTo              *string        `json:"effective_to,omitempty"`
	Metadata                 map[string]any `json:"metadata,omitempty"`
}

func (r *UpsertPolicyRequest) Validate() error {
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
	if r.GracePeriodMinutes != nil && *r.GracePeriodMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "grace_period_minutes",
			Message: "grace_period_minutes must be a non-negative number",
		})
	}
	if r.RoundingIncrementMinutes != nil && *r.RoundingIncrementMinutes < 1 {
		errs = append(errs, validator.ValidationError{
			Field:   "rounding_increment_minutes",
			Message: "rounding_increment_minutes must be at least 1",
		})
	}
	if r.AutoClockOutAfterMinutes != nil && *r.AutoClockOutAfterMinutes < 1 {
		errs = append(errs, validator.ValidationError{
			Field:   "auto_clock_out_after_minutes",
			Message: "auto_clock_out_after_minutes must be at least 1",
		})
	}
	if len(r.WorkingDays) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "working_days",
			Message: "working_days is required",
		})
	}
	for _, day := range r.WorkingDays {
		if !validator.IsValidWeekday(day) {
			errs = append(errs, validator.ValidationError{
				Field:   "working_days",
				Message: "working_days entries must be MONDAY..SUNDAY",
			})
			break
		}
	}
	if r.EffectiveFrom != nil {
		if _, ok := validator.IsValidDate(*r.EffectiveFrom); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "effective_from",
				Message: "effective_from must be a date in YYYY-MM-DD format",
			})
		}
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

type PolicyResponse struct {
	ID                       string         `json:"id"`
	BusinessID               string         `json:"business_id"`
	Name                     string         `json:"name"`
	Timezone                 string         `json:"timezone"`
	RoundingIncrementMinutes int            `json:"rounding_increment_minutes"`
	GracePeriodMinutes       int            `json:"grace_period_minutes"`
	AutoClockOutAfterMinutes *int           `json:"auto_clock_out_after_minutes,omitempty"`
	RequireGeofence          bool           `json:"require_geofence"`
	GeofenceRadiusMeters     *int           `json:"geofence_radius_meters,omitempty"`
	WorkingDays              []string       `json:"working_days"`
	IsDefault                bool           `json:"is_default"`
	Status                   string         `json:"status"`
	EffectiveFrom            *string        `json:"effective_from,omitempty"`
	EffectiveTo              *string        `json:"effective_to,omitempty"`
	Metadata                 map[string]any `json:"metadata,omitempty"`
	CreatedAt                string         `json:"created_at"`
	UpdatedAt                string         `json:"updated_at"`
}

func ToPolicyResponse(p AttendancePolicy) PolicyResponse {
	return PolicyResponse{
		ID:                       p.ID,
		BusinessID:               p.BusinessID,
		Name:                     p.Name,
		Timezone:                 p.Timezone,
		RoundingIncrementMinutes: p.RoundingIncrementMinutes,
		GracePeriodMinutes:       p.GracePeriodMinutes,
		AutoClockOutAfterMinutes: p.AutoClockOutAfterMinutes,
		RequireGeofence:          p.RequireGeofence,
		GeofenceRadiusMeters:     p.GeofenceRadiusMeters,
		WorkingDays:              p.WorkingDays,
		IsDefault:                p.IsDefault,
		Status:                   string(p.Status),
		EffectiveFrom:            formatDatePtr(p.EffectiveFrom),
		EffectiveTo:              formatDatePtr(p.EffectiveTo),
		Metadata:                 p.Metadata,
		CreatedAt:                p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:                p.UpdatedAt.Format(time.RFC3339),
	}
}

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}
