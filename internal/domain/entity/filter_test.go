package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr[T any](v T) *T {
	return &v
}

func TestUserFilter_Matches(t *testing.T) {
	maria := &User{Name: "Maria Silva", Email: "maria.silva@example.com", Age: 28, IsActive: true}

	tests := []struct {
		name   string
		filter UserFilter
		want   bool
	}{
		{name: "no filter", filter: UserFilter{}, want: true},
		{name: "q matches name case-insensitively", filter: UserFilter{Q: ptr("SILVA")}, want: true},
		{name: "q matches email", filter: UserFilter{Q: ptr("example.com")}, want: true},
		{name: "q without match", filter: UserFilter{Q: ptr("joao")}, want: false},
		{name: "blank q ignored", filter: UserFilter{Q: ptr("   ")}, want: true},
		{name: "q is literal, not a pattern", filter: UserFilter{Q: ptr("m.ria")}, want: false},
		{name: "min age inclusive", filter: UserFilter{MinAge: ptr(28)}, want: true},
		{name: "min age excludes", filter: UserFilter{MinAge: ptr(29)}, want: false},
		{name: "max age inclusive", filter: UserFilter{MaxAge: ptr(28)}, want: true},
		{name: "max age excludes", filter: UserFilter{MaxAge: ptr(27)}, want: false},
		{name: "inverted range matches nothing", filter: UserFilter{MinAge: ptr(30), MaxAge: ptr(20)}, want: false},
		{name: "is_active equal", filter: UserFilter{IsActive: ptr(true)}, want: true},
		{name: "is_active differs", filter: UserFilter{IsActive: ptr(false)}, want: false},
		{
			name:   "all combined",
			filter: UserFilter{Q: ptr("maria"), MinAge: ptr(20), MaxAge: ptr(30), IsActive: ptr(true)},
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Matches(maria))
		})
	}
}
