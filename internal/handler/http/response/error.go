package response

import (
	"errors"
	"net/http"

	"github.com/ADTrauts/block-on-block-sub003/internal/domain/attendance"
	"github.com/ADTrauts/block-on-block-sub003/internal/domain/exception"
	"github.com/ADTrauts/block-on-block-sub003/internal/domain/policy"
	"github.com/ADTrauts/block-on-block-sub003/internal/domain/position"
	"github.com/ADTrauts/block-on-block-sub003/internal/domain/shift"
	"github.com/ADTrauts/block-on-block-sub003/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyClockedIn):
		Conflict(w, "An attendance record is already in progress")
	case errors.Is(err, attendance.ErrNoOpenRecord):
		NotFound(w, "No in-progress attendance record found")
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")

	// Position domain errors
	case errors.Is(err, position.ErrPositionNotFound):
		NotFound(w, "Employee position not found or inactive")

	// Policy domain errors
	case errors.Is(err, policy.ErrPolicyNotFound):
		NotFound(w, "Attendance policy not found")

	// Shift domain errors
	case errors.Is(err, shift.ErrTemplateNotFound):
		NotFound(w, "Shift template not found")
	case errors.Is(err, shift.ErrTemplateUnavailable):
		Conflict(w, "Shift template is missing, archived, or belongs to another business")
	case errors.Is(err, shift.ErrAssignmentNotFound):
		NotFound(w, "Shift assignment not found")
	case errors.Is(err, shift.ErrOverlappingAssignment):
		Conflict(w, "Assignment range overlaps an existing assignment")

	// Exception domain errors
	case errors.Is(err, exception.ErrExceptionNotFound):
		NotFound(w, "Attendance exception not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
