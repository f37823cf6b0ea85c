package exception

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListFilterClamp(t *testing.T) {
	tests := []struct {
		name         string
		page         int
		pageSize     int
		wantPage     int
		wantPageSize int
	}{
		{"zero values", 0, 0, 1, DefaultPageSize},
		{"negative page", -3, 10, 1, 10},
		{"page size over max", 1, 500, 1, MaxPageSize},
		{"in range untouched", 2, 50, 2, 50},
		{"negative page size", 1, -1, 1, DefaultPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := ListFilter{Page: tt.page, PageSize: tt.pageSize}
			f.Clamp()
			assert.Equal(t, tt.wantPage, f.Page)
			assert.Equal(t, tt.wantPageSize, f.PageSize)
		})
	}
}
