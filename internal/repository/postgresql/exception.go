package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/ADTrauts/block-on-block-sub003/internal/domain/exception"
	"github.com/ADTrauts/block-on-block-sub003/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type exceptionRepository struct {
	db *database.DB
}

func NewExceptionRepository(db *database.DB) exception.ExceptionRepository {
	return &exceptionRepository{db: db}
}

// GetByID implements exception.ExceptionRepository.
func (r *exceptionRepository) GetByID(ctx context.Context, id string, businessID string) (exception.AttendanceException, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT e.id, e.business_id, e.employee_position_id, e.record_id, e.type, e.status,
			   e.detected_at, e.resolved_by_id, e.resolved_at, e.resolution_note,
			   e.manager_note, e.resolution_payload, e.created_at, e.updated_at
		FROM attendance_exceptions e
		WHERE e.id = $1 AND e.business_id = $2
	`

	var e exception.AttendanceException
	err := q.QueryRow(ctx, query, id, businessID).Scan(
		&e.ID, &e.BusinessID, &e.EmployeePositionID, &e.RecordID, &e.Type, &e.Status,
		&e.DetectedAt, &e.ResolvedByID, &e.ResolvedAt, &e.ResolutionNote,
		&e.ManagerNote, &e.ResolutionPayload, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return exception.AttendanceException{}, exception.ErrExceptionNotFound
		}
		return exception.AttendanceException{}, fmt.Errorf("failed to get attendance exception by ID: %w", err)
	}

	return e, nil
}

// List implements exception.ExceptionRepository.
func (r *exceptionRepository) List(ctx context.Context, businessID string, filter exception.ListFilter) ([]exception.AttendanceException, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "e.business_id = $1 AND e.employee_position_id = ANY($2)"
	args := []interface{}{businessID, filter.EmployeePositionIDs}
	argIdx := 3

	if len(filter.Statuses) > 0 {
		baseWhere += fmt.Sprintf(" AND e.status = ANY($%d)", argIdx)
		args = append(args, filter.Statuses)
		argIdx++
	}
	if filter.DetectedFrom != nil {
		baseWhere += fmt.Sprintf(" AND e.detected_at >= $%d", argIdx)
		args = append(args, *filter.DetectedFrom)
		argIdx++
	}
	if filter.DetectedTo != nil {
		baseWhere += fmt.Sprintf(" AND e.detected_at <= $%d", argIdx)
		args = append(args, *filter.DetectedTo)
		argIdx++
	}
	if filter.Search != nil && strings.TrimSpace(*filter.Search) != "" {
		baseWhere += fmt.Sprintf(" AND (u.name ILIKE $%d OR u.email ILIKE $%d)", argIdx, argIdx)
		args = append(args, "%"+strings.TrimSpace(*filter.Search)+"%")
		argIdx++
	}

	joins := `
		FROM attendance_exceptions e
		LEFT JOIN employee_positions ep ON ep.id = e.employee_position_id
		LEFT JOIN users u ON u.id = ep.user_id
	`

	countQuery := `SELECT COUNT(*) ` + joins + ` WHERE ` + baseWhere

	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance exceptions: %w", err)
	}

	offset := (filter.Page - 1) * filter.PageSize
	query := `
		SELECT e.id, e.business_id, e.employee_position_id, e.record_id, e.type, e.status,
			   e.detected_at, e.resolved_by_id, e.resolved_at, e.resolution_note,
			   e.manager_note, e.resolution_payload, e.created_at, e.updated_at,
			   u.name AS employee_name, u.email AS employee_email
		` + joins + `
		WHERE ` + baseWhere + `
		ORDER BY e.detected_at DESC
	` + fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, filter.PageSize, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendance exceptions: %w", err)
	}
	defer rows.Close()

	var exceptions []exception.AttendanceException
	for rows.Next() {
		var e exception.AttendanceException
		err := rows.Scan(
			&e.ID, &e.BusinessID, &e.EmployeePositionID, &e.RecordID, &e.Type, &e.Status,
			&e.DetectedAt, &e.ResolvedByID, &e.ResolvedAt, &e.ResolutionNote,
			&e.ManagerNote, &e.ResolutionPayload, &e.CreatedAt, &e.UpdatedAt,
			&e.EmployeeName, &e.EmployeeEmail,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance exception: %w", err)
		}
		exceptions = append(exceptions, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate attendance exceptions: %w", err)
	}

	return exceptions, total, nil
}

// UpdateResolution implements exception.ExceptionRepository.
func (r *exceptionRepository) UpdateResolution(ctx context.Context, id string, businessID string, res exception.Resolution) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_exceptions
		SET status = $3, resolved_by_id = $4, resolved_at = $5, resolution_note = $6,
			manager_note = $7, resolution_payload = $8, updated_at = NOW()
		WHERE id = $1 AND business_id = $2
	`

	tag, err := q.Exec(ctx, query,
		id, businessID, res.Status, res.ResolvedByID, res.ResolvedAt,
		res.ResolutionNote, res.ManagerNote, res.ResolutionPayload,
	)
	if err != nil {
		return fmt.Errorf("failed to update exception resolution: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return exception.ErrExceptionNotFound
	}

	return nil
}

// CountUnresolvedForRecord implements exception.ExceptionRepository.
func (r *exceptionRepository) CountUnresolvedForRecord(ctx context.Context, recordID string, businessID string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*)
		FROM attendance_exceptions
		WHERE record_id = $1 AND business_id = $2 AND status IN ('OPEN', 'UNDER_REVIEW')
	`

	var count int64
	if err := q.QueryRow(ctx, query, recordID, businessID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count unresolved exceptions for record: %w", err)
	}

	return count, nil
}
