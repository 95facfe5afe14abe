package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	role, err := ParseRole("ADMIN")
	assert.NoError(t, err)
	assert.Equal(t, RoleAdmin, role)

	role, err = ParseRole("USER")
	assert.NoError(t, err)
	assert.Equal(t, RoleUser, role)
}

func TestParseRole_Unknown(t *testing.T) {
	// Unknown values are rejected, never coerced to a default role
	for _, raw := range []string{"", "admin", "SUPERADMIN", "Admin "} {
		_, err := ParseRole(raw)
		assert.ErrorIs(t, err, ErrUnknownRole, "input %q", raw)
	}
}

func TestStatus_IsValid(t *testing.T) {
	assert.True(t, StatusActive.IsValid())
	assert.True(t, StatusInactive.IsValid())
	assert.False(t, Status("DELETED").IsValid())
	assert.False(t, Status("active").IsValid())
}
