package attendance

import (
	"context"
	"time"
)

// RecordRepository defines data access for attendance records.
// All methods include businessID to prevent cross-business data access.
type RecordRepository interface {
	Create(ctx context.Context, record AttendanceRecord) (AttendanceRecord, error)

	GetByID(ctx context.Context, id string, businessID string) (AttendanceRecord, error)

	// GetOpenRecord returns the IN_PROGRESS record for the position, or
	// pgx.ErrNoRows wrapped if none exists. recordID narrows the lookup to a
	// specific record when non-nil.
	GetOpenRecord(ctx context.Context, businessID, employeePositionID string, recordID *string) (AttendanceRecord, error)

	// HasOpenRecord reports whether the position currently has an IN_PROGRESS record.
	HasOpenRecord(ctx context.Context, businessID, employeePositionID string) (bool, error)

	Update(ctx context.Context, record AttendanceRecord) error

	// ApplyAdjustments patches only the provided fields onto the record.
	ApplyAdjustments(ctx context.Context, id string, businessID string, adj RecordAdjustments) error

	// SetExceptionFlagged toggles the record's exception flag.
	SetExceptionFlagged(ctx context.Context, id string, businessID string, flagged bool) error

	// List returns most-recent-first records for a position, capped at limit.
	List(ctx context.Context, businessID, employeePositionID string, limit int) ([]AttendanceRecord, error)

	// ListOverdueOpen returns IN_PROGRESS records whose policy defines
	// auto_clock_out_after_minutes and whose clock-in is older than that
	// limit relative to now.
	ListOverdueOpen(ctx context.Context, now time.Time) ([]OverdueRecord, error)
}

// OverdueRecord pairs an open record with its policy's auto clock-out limit.
type OverdueRecord struct {
	Record               AttendanceRecord
	AutoClockOutAfterMin int
}

// RecordAdjustments carries the optional fields an exception resolution may
// patch onto a record. Nil fields are left untouched.
type RecordAdjustments struct {
	ClockInAt       *time.Time
	ClockOutAt      *time.Time
	Status          *RecordStatus
	VarianceMinutes *int
}

func (a RecordAdjustments) IsZero() bool {
	return a.ClockInAt == nil && a.ClockOutAt == nil && a.Status == nil && a.VarianceMinutes == nil
}
