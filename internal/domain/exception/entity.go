package exception

import "time"

// AttendanceException is produced by the platform's detection job; this core
// only reads, filters and transitions it.
type AttendanceException struct {
	ID                 string
	BusinessID         string
	EmployeePositionID string
	RecordID           *string
	Type               string
	Status             Status
	DetectedAt         time.Time
	ResolvedByID       *string
	ResolvedAt         *time.Time
	ResolutionNote     *string
	ManagerNote        *string
	ResolutionPayload  map[string]any
	CreatedAt          time.Time
	UpdatedAt          time.Time

	// DTO
	EmployeeName  *string
	EmployeeEmail *string
}

type Status string

const (
	StatusOpen        Status = "OPEN"
	StatusUnderReview Status = "UNDER_REVIEW"
	StatusResolved    Status = "RESOLVED"
	StatusDismissed   Status = "DISMISSED"
)

var StatusValues = []string{
	string(StatusOpen),
	string(StatusUnderReview),
	string(StatusResolved),
	string(StatusDismissed),
}

// UnresolvedStatuses are the statuses that keep a record's exception flag
// raised.
var UnresolvedStatuses = []Status{StatusOpen, StatusUnderReview}
