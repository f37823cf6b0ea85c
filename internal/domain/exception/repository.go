package exception

import (
	"context"
	"time"
)

type ExceptionRepository interface {
	// GetByID retrieves an exception with business isolation.
	GetByID(ctx context.Context, id string, businessID string) (AttendanceException, error)

	// List retrieves exceptions for the given employee positions with
	// filters and pagination, newest-detected first, joined with employee
	// display data.
	List(ctx context.Context, businessID string, filter ListFilter) ([]AttendanceException, int64, error)

	// UpdateResolution stamps status, resolver identity/time, notes and
	// payload on the exception.
	UpdateResolution(ctx context.Context, id string, businessID string, res Resolution) error

	// CountUnresolvedForRecord counts OPEN/UNDER_REVIEW exceptions
	// referencing the record.
	CountUnresolvedForRecord(ctx context.Context, recordID string, businessID string) (int64, error)
}

type Resolution struct {
	Status            Status
	ResolvedByID      string
	ResolvedAt        time.Time
	ResolutionNote    *string
	ManagerNote       *string
	ResolutionPayload map[string]any
}
