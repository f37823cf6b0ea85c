package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/ADTrauts/block-on-block-sub003/internal/domain/attendance"
	"github.com/ADTrauts/block-on-block-sub003/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.RecordRepository {
	return &attendanceRepository{db: db}
}

const recordColumns = `
	id, business_id, employee_position_id, work_date, clock_in_at, clock_out_at,
	clock_in_method, clock_out_method, clock_in_source, clock_out_source,
	clock_in_location, clock_out_location, duration_minutes, variance_minutes,
	status, exception_flagged, policy_id, metadata, created_at, updated_at
`

func scanRecord(row pgx.Row) (attendance.AttendanceRecord, error) {
	var rec attendance.AttendanceRecord
	err := row.Scan(
		&rec.ID, &rec.BusinessID, &rec.EmployeePositionID, &rec.WorkDate, &rec.ClockInAt, &rec.ClockOutAt,
		&rec.ClockInMethod, &rec.ClockOutMethod, &rec.ClockInSource, &rec.ClockOutSource,
		&rec.ClockInLocation, &rec.ClockOutLocation, &rec.DurationMinutes, &rec.VarianceMinutes,
		&rec.Status, &rec.ExceptionFlagged, &rec.PolicyID, &rec.Metadata, &rec.CreatedAt, &rec.UpdatedAt,
	)
	return rec, err
}

// Create implements attendance.RecordRepository.
func (a *attendanceRepository) Create(ctx context.Context, rec attendance.AttendanceRecord) (attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, a.db)

	if rec.ID == "" {
		rec.ID = uuid.Must(uuid.NewV7()).String()
	}

	query := `
		INSERT INTO attendance_records (
			id, business_id, employee_position_id, work_date, clock_in_at,
			clock_in_method, clock_in_source, clock_in_location,
			status, exception_flagged, policy_id, metadata
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		rec.ID, rec.BusinessID, rec.EmployeePositionID, rec.WorkDate, rec.ClockInAt,
		rec.ClockInMethod, rec.ClockInSource, rec.ClockInLocation,
		rec.Status, rec.ExceptionFlagged, rec.PolicyID, rec.Metadata,
	).Scan(&rec.CreatedAt, &rec.UpdatedAt)

	if err != nil {
		return attendance.AttendanceRecord{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return rec, nil
}

// GetByID implements attendance.RecordRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string, businessID string) (attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + recordColumns + ` FROM attendance_records WHERE id = $1 AND business_id = $2`

	rec, err := scanRecord(q.QueryRow(ctx, query, id, businessID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.AttendanceRecord{}, attendance.ErrRecordNotFound
		}
		return attendance.AttendanceRecord{}, fmt.Errorf("failed to get attendance record by ID: %w", err)
	}

	return rec, nil
}

// GetOpenRecord implements attendance.RecordRepository.
func (a *attendanceRepository) GetOpenRecord(ctx context.Context, businessID, employeePositionID string, recordID *string) (attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + recordColumns + `
		FROM attendance_records
		WHERE business_id = $1
		  AND employee_position_id = $2
		  AND status = 'IN_PROGRESS'
	`
	args := []interface{}{businessID, employeePositionID}
	if recordID != nil {
		query += ` AND id = $3`
		args = append(args, *recordID)
	}
	query += ` ORDER BY clock_in_at DESC LIMIT 1`

	rec, err := scanRecord(q.QueryRow(ctx, query, args...))
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.AttendanceRecord{}, fmt.Errorf("no open attendance record found: %w", err)
		}
		return attendance.AttendanceRecord{}, fmt.Errorf("failed to get open attendance record: %w", err)
	}

	return rec, nil
}

// HasOpenRecord implements attendance.RecordRepository.
func (a *attendanceRepository) HasOpenRecord(ctx context.Context, businessID, employeePositionID string) (bool, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM attendance_records
			WHERE business_id = $1 AND employee_position_id = $2 AND status = 'IN_PROGRESS'
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, businessID, employeePositionID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check for open attendance record: %w", err)
	}

	return exists, nil
}

// Update implements attendance.RecordRepository.
func (a *attendanceRepository) Update(ctx context.Context, rec attendance.AttendanceRecord) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance_records
		SET clock_out_at = $3, clock_out_method = $4, clock_out_source = $5,
			clock_out_location = $6, duration_minutes = $7, variance_minutes = $8,
			status = $9, metadata = $10, updated_at = NOW()
		WHERE id = $1 AND business_id = $2
	`

	tag, err := q.Exec(ctx, query,
		rec.ID, rec.BusinessID, rec.ClockOutAt, rec.ClockOutMethod, rec.ClockOutSource,
		rec.ClockOutLocation, rec.DurationMinutes, rec.VarianceMinutes,
		rec.Status, rec.Metadata,
	)
	if err != nil {
		return fmt.Errorf("failed to update attendance record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrRecordNotFound
	}

	return nil
}

// ApplyAdjustments implements attendance.RecordRepository.
func (a *attendanceRepository) ApplyAdjustments(ctx context.Context, id string, businessID string, adj attendance.RecordAdjustments) error {
	if adj.IsZero() {
		return nil
	}

	q := GetQuerier(ctx, a.db)

	// Patch only the explicitly-provided fields.
	query := `UPDATE attendance_records SET updated_at = NOW()`
	args := []interface{}{id, businessID}
	argIdx := 3

	if adj.ClockInAt != nil {
		query += fmt.Sprintf(", clock_in_at = $%d", argIdx)
		args = append(args, *adj.ClockInAt)
		argIdx++
	}
	if adj.ClockOutAt != nil {
		query += fmt.Sprintf(", clock_out_at = $%d", argIdx)
		args = append(args, *adj.ClockOutAt)
		argIdx++
	}
	if adj.Status != nil {
		query += fmt.Sprintf(", status = $%d", argIdx)
		args = append(args, *adj.Status)
		argIdx++
	}
	if adj.VarianceMinutes != nil {
		query += fmt.Sprintf(", variance_minutes = $%d", argIdx)
		args = append(args, *adj.VarianceMinutes)
		argIdx++
	}

	query += ` WHERE id = $1 AND business_id = $2`

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to apply attendance adjustments: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrRecordNotFound
	}

	return nil
}

// SetExceptionFlagged implements attendance.RecordRepository.
func (a *attendanceRepository) SetExceptionFlagged(ctx context.Context, id string, businessID string, flagged bool) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance_records
		SET exception_flagged = $3, updated_at = NOW()
		WHERE id = $1 AND business_id = $2
	`

	tag, err := q.Exec(ctx, query, id, businessID, flagged)
	if err != nil {
		return fmt.Errorf("failed to set exception flag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrRecordNotFound
	}

	return nil
}

// List implements attendance.RecordRepository.
func (a *attendanceRepository) List(ctx context.Context, businessID, employeePositionID string, limit int) ([]attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + recordColumns + `
		FROM attendance_records
		WHERE business_id = $1 AND employee_position_id = $2
		ORDER BY clock_in_at DESC
		LIMIT $3
	`

	rows, err := q.Query(ctx, query, businessID, employeePositionID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.AttendanceRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance records: %w", err)
	}

	return records, nil
}

// ListOverdueOpen implements attendance.RecordRepository.
func (a *attendanceRepository) ListOverdueOpen(ctx context.Context, now time.Time) ([]attendance.OverdueRecord, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT r.id, r.business_id, r.employee_position_id, r.work_date, r.clock_in_at, r.clock_out_at,
			   r.clock_in_method, r.clock_out_method, r.clock_in_source, r.clock_out_source,
			   r.clock_in_location, r.clock_out_location, r.duration_minutes, r.variance_minutes,
			   r.status, r.exception_flagged, r.policy_id, r.metadata, r.created_at, r.updated_at,
			   p.auto_clock_out_after_minutes
		FROM attendance_records r
		JOIN attendance_policies p ON p.id = r.policy_id
		WHERE r.status = 'IN_PROGRESS'
		  AND p.auto_clock_out_after_minutes IS NOT NULL
		  AND r.clock_in_at < $1 - make_interval(mins => p.auto_clock_out_after_minutes)
	`

	rows, err := q.Query(ctx, query, now)
	if err != nil {
		return nil, fmt.Errorf("failed to list overdue open records: %w", err)
	}
	defer rows.Close()

	var overdue []attendance.OverdueRecord
	for rows.Next() {
		var rec attendance.AttendanceRecord
		var limit int
		err := rows.Scan(
			&rec.ID, &rec.BusinessID, &rec.EmployeePositionID, &rec.WorkDate, &rec.ClockInAt, &rec.ClockOutAt,
			&rec.ClockInMethod, &rec.ClockOutMethod, &rec.ClockInSource, &rec.ClockOutSource,
			&rec.ClockInLocation, &rec.ClockOutLocation, &rec.DurationMinutes, &rec.VarianceMinutes,
			&rec.Status, &rec.ExceptionFlagged, &rec.PolicyID, &rec.Metadata, &rec.CreatedAt, &rec.UpdatedAt,
			&limit,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan overdue record: %w", err)
		}
		overdue = append(overdue, attendance.OverdueRecord{Record: rec, AutoClockOutAfterMin: limit})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate overdue records: %w", err)
	}

	return overdue, nil
}
