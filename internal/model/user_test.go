package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNeedsAccessCode(t *testing.T) {
	now := time.Now()
	role := RoleDoctor
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name string
		user User
		want bool
	}{
		{"fresh account", User{}, true},
		{"role but inactive", User{Role: &role}, true},
		{"active without role", User{Active: true}, true},
		{"active with role", User{Role: &role, Active: true}, false},
		{"expired", User{Role: &role, Active: true, ExpiresAt: &past}, true},
		{"not yet expired", User{Role: &role, Active: true, ExpiresAt: &future}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.user.NeedsAccessCode(now))
		})
	}
}

func TestHasRole(t *testing.T) {
	role := RoleAdmin
	user := User{Role: &role}
	assert.True(t, user.HasRole(RoleAdmin))
	assert.False(t, user.HasRole(RoleDoctor))
	assert.False(t, (&User{}).HasRole(RoleAdmin))
}

func TestValidRole(t *testing.T) {
	for _, r := range Roles {
		assert.True(t, ValidRole(r))
	}
	assert.False(t, ValidRole("superuser"))
	assert.False(t, ValidRole(""))
}
