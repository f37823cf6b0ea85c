package shift

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRangesOverlap(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2026, 4, d, 0, 0, 0, 0, time.UTC)
	}
	ptr := func(t time.Time) *time.Time { return &t }

	tests := []struct {
		name  string
		from1 time.Time
		to1   *time.Time
		from2 time.Time
		to2   *time.Time
		want  bool
	}{
		{"disjoint", day(1), ptr(day(5)), day(10), ptr(day(15)), false},
		{"disjoint reversed", day(10), ptr(day(15)), day(1), ptr(day(5)), false},
		{"adjacent days do not overlap", day(1), ptr(day(5)), day(6), ptr(day(10)), false},
		{"shared boundary day overlaps", day(1), ptr(day(5)), day(5), ptr(day(10)), true},
		{"contained", day(1), ptr(day(30)), day(10), ptr(day(15)), true},
		{"partial overlap", day(1), ptr(day(10)), day(5), ptr(day(15)), true},
		{"open-ended blocks later start", day(1), nil, day(20), ptr(day(25)), true},
		{"open-ended after closed range", day(10), nil, day(1), ptr(day(5)), false},
		{"both open-ended", day(1), nil, day(20), nil, true},
		{"single day ranges equal", day(3), ptr(day(3)), day(3), ptr(day(3)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RangesOverlap(tt.from1, tt.to1, tt.from2, tt.to2)
			assert.Equal(t, tt.want, got)
		})
	}
}
