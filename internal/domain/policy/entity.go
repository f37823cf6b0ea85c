package policy

import "time"

type AttendancePolicy struct {
	ID                       string
	BusinessID               string
	Name                     string
	Timezone                 string
	RoundingIncrementMinutes int
	GracePeriodMinutes       int
	AutoClockOutAfterMinutes *int
	RequireGeofence          bool
	GeofenceRadiusMeters     *int
	WorkingDays              []string
	IsDefault                bool
	Status                   LifecycleStatus
	EffectiveFrom            *time.Time
	EffectiveTo              *time.Time
	Metadata                 map[string]any
	CreatedAt                time.Time
	UpdatedAt                time.Time
}

type LifecycleStatus string

const (
	StatusActive   LifecycleStatus = "ACTIVE"
	StatusArchived LifecycleStatus = "ARCHIVED"
)

var WeekdayValues = []string{
	"MONDAY", "TUESDAY", "WEDNESDAY", "THURSDAY", "FRIDAY", "SATURDAY", "SUNDAY",
}
