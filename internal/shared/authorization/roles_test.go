package authorization

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseUserRole(t *testing.T) {
	tests := []struct {
		in   string
		want UserRole
	}{
		{"admin", RoleAdmin},
		{"technician", RoleTechnician},
		{"viewer", RoleViewer},
		{"root", RoleViewer},
		{"", RoleViewer},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseUserRole(tt.in))
		})
	}
}
