package position

import "context"

// PositionRepository is the read-only lookup this core consumes from the org
// module's tables.
type PositionRepository interface {
	// GetActive returns the employee position only if it exists, is active
	// and belongs to the business.
	GetActive(ctx context.Context, id string, businessID string) (EmployeePosition, error)
}
