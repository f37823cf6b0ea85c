package shift

import "errors"

var (
	// Template errors
	ErrTemplateNotFound    = errors.New("shift template not found")
	ErrTemplateUnavailable = errors.New("shift template is missing, archived, or belongs to another business")

	// Assignment errors
	ErrAssignmentNotFound     = errors.New("shift assignment not found")
	ErrOverlappingAssignment  = errors.New("overlapping shift assignment detected")
	ErrInvalidAssignmentRange = errors.New("effective_to must not precede effective_from")
)
