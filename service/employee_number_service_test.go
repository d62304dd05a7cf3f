package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/talentforge/hcm/api/service"
)

func TestNextEmployeeNumber(t *testing.T) {
	tests := []struct {
		name     string
		existing []string
		want     string
	}{
		{
			name:     "empty set starts the sequence",
			existing: nil,
			want:     "EMP-1001",
		},
		{
			name:     "one past the maximum, not the latest",
			existing: []string{"EMP-1001", "EMP-1005", "EMP-1003"},
			want:     "EMP-1006",
		},
		{
			name:     "gaps are not refilled",
			existing: []string{"EMP-1001", "EMP-1003"},
			want:     "EMP-1004",
		},
		{
			name:     "malformed numbers are skipped",
			existing: []string{"INVALID-NUMBER", "EMP-"},
			want:     "EMP-1001",
		},
		{
			name:     "malformed mixed with valid",
			existing: []string{"INVALID-NUMBER", "EMP-1002"},
			want:     "EMP-1003",
		},
		{
			name:     "legacy prefixes still count",
			existing: []string{"STAFF-2001"},
			want:     "EMP-2002",
		},
		{
			name:     "padding holds to four digits",
			existing: []string{"EMP-1009"},
			want:     "EMP-1010",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, service.NextEmployeeNumber(tt.existing))
		})
	}
}
