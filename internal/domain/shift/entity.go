package shift

import "time"

type ShiftTemplate struct {
	ID           string
	BusinessID   string
	Name         string
	Timezone     string
	StartMinute  int
	EndMinute    int
	BreakMinutes int
	DaysOfWeek   []string
	PolicyID     *string
	Status       TemplateStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type TemplateStatus string

const (
	TemplateActive   TemplateStatus = "ACTIVE"
	TemplateArchived TemplateStatus = "ARCHIVED"
)

type ShiftAssignment struct {
	ID                 string
	BusinessID         string
	TemplateID         string
	EmployeePositionID string
	EffectiveFrom      time.Time
	EffectiveTo        *time.Time
	Status             AssignmentStatus
	IsPrimary          bool
	Overrides          map[string]any
	CreatedAt          time.Time
	UpdatedAt          time.Time

	// DTO
	TemplateName   *string
	TemplateStatus *TemplateStatus
	PolicyID       *string
	EmployeeName   *string
}

type AssignmentStatus string

const (
	AssignmentActive    AssignmentStatus = "ACTIVE"
	AssignmentSuspended AssignmentStatus = "SUSPENDED"
	AssignmentEnded     AssignmentStatus = "ENDED"
)

var AssignmentStatusValues = []string{
	string(AssignmentActive),
	string(AssignmentSuspended),
	string(AssignmentEnded),
}

// BlockingStatuses are the assignment statuses that participate in the
// no-overlap rule. ENDED rows are history and never block a new assignment.
var BlockingStatuses = []AssignmentStatus{AssignmentActive, AssignmentSuspended}

// RangesOverlap tests two inclusive effective ranges, treating a nil end as
// open-ended. Two ranges overlap unless one's end strictly precedes the
// other's start.
func RangesOverlap(from1 time.Time, to1 *time.Time, from2 time.Time, to2 *time.Time) bool {
	if to1 != nil && to1.Before(from2) {
		return false
	}
	if to2 != nil && to2.Before(from1) {
		return false
	}
	return true
}
