package fixtures

import (
	"github.com/ADTrauts/block-on-block-sub003/internal/domain/policy"
)

// ==========================================
// FALLBACK POLICY DEFAULTS
// ==========================================

// Values used when a business punches in without ever configuring a policy.
const (
	FallbackPolicyName               = "Default Attendance Policy"
	FallbackPolicyTimezone           = "UTC"
	FallbackGracePeriodMinutes       = 5
	FallbackRoundingIncrementMinutes = 1
)

// FallbackWorkingDays returns a fresh Monday-Friday working week.
func FallbackWorkingDays() []string {
	return []string{"MONDAY", "TUESDAY", "WEDNESDAY", "THURSDAY", "FRIDAY"}
}

// FallbackPolicy builds the hard-coded policy seeded on first punch-in for a
// business with no policies.
func FallbackPolicy(businessID string) policy.AttendancePolicy {
	return policy.AttendancePolicy{
		BusinessID:               businessID,
		Name:                     FallbackPolicyName,
		Timezone:                 FallbackPolicyTimezone,
		RoundingIncrementMinutes: FallbackRoundingIncrementMinutes,
		GracePeriodMinutes:       FallbackGracePeriodMinutes,
		WorkingDays:              FallbackWorkingDays(),
		IsDefault:                true,
		Status:                   policy.StatusActive,
	}
}
