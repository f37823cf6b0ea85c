package policy

import (
	"context"
)

// PolicyRepository defines data access for attendance policies.
// All methods take businessID to prevent cross-business data access.
type PolicyRepository interface {
	Create(ctx context.Context, p AttendancePolicy) (AttendancePolicy, error)

	GetByID(ctx context.Context, id string, businessID string) (AttendancePolicy, error)

	Update(ctx context.Context, p AttendancePolicy) (AttendancePolicy, error)

	// List returns policies for a business, default first then newest first.
	// Archived policies are included only when includeArchived is set.
	List(ctx context.Context, businessID string, includeArchived bool) ([]AttendancePolicy, error)

	// GetActiveDefault returns the active policy flagged as default, if any.
	GetActiveDefault(ctx context.Context, businessID string) (*AttendancePolicy, error)

	// GetOldestActive returns the oldest active policy, if any.
	GetOldestActive(ctx context.Context, businessID string) (*AttendancePolicy, error)

	// DemoteOtherDefaults clears is_default on every active policy of the
	// business except keepID. Runs against the querier in ctx so it can share
	// a transaction with the write that set the new default.
	DemoteOtherDefaults(ctx context.Context, businessID string, keepID string) error
}
