package shift

import (
	"context"
	"time"
)

type TemplateRepository interface {
	Create(ctx context.Context, t ShiftTemplate) (ShiftTemplate, error)
	GetByID(ctx context.Context, id string, businessID string) (ShiftTemplate, error)
	Update(ctx context.Context, t ShiftTemplate) (ShiftTemplate, error)

	// List returns templates active-first then newest-first. Archived
	// templates are included only when includeArchived is set.
	List(ctx context.Context, businessID string, includeArchived bool) ([]ShiftTemplate, error)

	// Archive sets the template status to ARCHIVED. Existing assignments
	// referencing the template are left untouched.
	Archive(ctx context.Context, id string, businessID string) error
}

type AssignmentRepository interface {
	Create(ctx context.Context, a ShiftAssignment) (ShiftAssignment, error)
	GetByID(ctx context.Context, id string, businessID string) (ShiftAssignment, error)

	// ListBlocking returns the position's assignments whose status
	// participates in the no-overlap rule (ACTIVE or SUSPENDED).
	ListBlocking(ctx context.Context, businessID, employeePositionID string) ([]ShiftAssignment, error)

	Update(ctx context.Context, req UpdateAssignmentPatch, id string, businessID string) error

	// List returns assignments joined with template, policy and employee
	// display data.
	List(ctx context.Context, businessID string, filter AssignmentFilter) ([]ShiftAssignment, error)

	// ListIntersecting returns ACTIVE assignments of the position whose
	// effective range intersects [from, to], joined with template data.
	ListIntersecting(ctx context.Context, businessID, employeePositionID string, from, to time.Time) ([]ShiftAssignment, error)
}
