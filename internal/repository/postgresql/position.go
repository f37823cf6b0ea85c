package postgresql

import (
	"context"
	"fmt"

	"github.com/ADTrauts/block-on-block-sub003/internal/domain/position"
	"github.com/ADTrauts/block-on-block-sub003/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type positionRepository struct {
	db *database.DB
}

func NewPositionRepository(db *database.DB) position.PositionRepository {
	return &positionRepository{db: db}
}

// GetActive implements position.PositionRepository.
func (r *positionRepository) GetActive(ctx context.Context, id string, businessID string) (position.EmployeePosition, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ep.id, ep.business_id, ep.user_id, ep.title, ep.department_id, ep.active,
			   ep.created_at, ep.updated_at,
			   u.name AS user_name, u.email AS user_email
		FROM employee_positions ep
		LEFT JOIN users u ON u.id = ep.user_id
		WHERE ep.id = $1 AND ep.business_id = $2 AND ep.active = TRUE
	`

	var p position.EmployeePosition
	err := q.QueryRow(ctx, query, id, businessID).Scan(
		&p.ID, &p.BusinessID, &p.UserID, &p.Title, &p.DepartmentID, &p.Active,
		&p.CreatedAt, &p.UpdatedAt,
		&p.UserName, &p.UserEmail,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return position.EmployeePosition{}, position.ErrPositionNotFound
		}
		return position.EmployeePosition{}, fmt.Errorf("failed to get employee position: %w", err)
	}

	return p, nil
}
