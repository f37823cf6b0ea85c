package position

import "time"

// EmployeePosition is owned by the platform's org module; this core reads it
// to validate punch and assignment requests and to join display data.
type EmployeePosition struct {
	ID           string
	BusinessID   string
	UserID       string
	Title        string
	DepartmentID *string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// DTO
	UserName  *string
	UserEmail *string
}
