package attendance

import "errors"

// Attendance domain errors
var (
	ErrAlreadyClockedIn = errors.New("an attendance record is already in progress for this position")
	ErrNoOpenRecord     = errors.New("no in-progress attendance record found for this position")
	ErrRecordNotFound   = errors.New("attendance record not found")
)
