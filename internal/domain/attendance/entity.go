package attendance

import (
	"time"
)

type AttendanceRecord struct {
	ID                 string
	BusinessID         string
	EmployeePositionID string
	WorkDate           time.Time
	ClockInAt          time.Time
	ClockOutAt         *time.Time
	ClockInMethod      string
	ClockOutMethod     *string
	ClockInSource      *string
	ClockOutSource     *string
	ClockInLocation    map[string]any
	ClockOutLocation   map[string]any
	DurationMinutes    *int
	VarianceMinutes    *int
	Status             RecordStatus
	ExceptionFlagged   bool
	PolicyID           *string
	Metadata           map[string]any
	CreatedAt          time.Time
	UpdatedAt          time.Time

	// DTO
	EmployeeName *string
}

type RecordStatus string

const (
	RecordInProgress RecordStatus = "IN_PROGRESS"
	RecordCompleted  RecordStatus = "COMPLETED"
)

// Punch methods accepted from the transport layer. AUTO is reserved for the
// auto clock-out sweep.
const (
	MethodManual = "MANUAL"
	MethodMobile = "MOBILE"
	MethodKiosk  = "KIOSK"
	MethodAuto   = "AUTO"
)

var MethodValues = []string{MethodManual, MethodMobile, MethodKiosk}
