package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEffectiveStatus(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name      string
		status    string
		lastLogin time.Time
		want      string
	}{
		{"recently active", StatusActive, now.Add(-time.Hour), StatusActive},
		{"exactly at threshold", StatusActive, now.Add(-InactivityThreshold), StatusActive},
		{"idle past threshold", StatusActive, now.Add(-8 * 24 * time.Hour), StatusInactive},
		{"inactive stays inactive", StatusInactive, now.Add(-time.Hour), StatusInactive},
		{"deleted never projected", StatusDeleted, now.Add(-30 * 24 * time.Hour), StatusDeleted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := User{Status: tt.status, LastLogin: tt.lastLogin}
			got := u.EffectiveStatus(now)
			assert.Equal(t, tt.want, got)
			// Projection never writes back.
			assert.Equal(t, tt.status, u.Status)
		})
	}
}

func TestPasswordHashNeverSerialized(t *testing.T) {
	u := User{ID: 1, Username: "alice", Email: "a@x.com", PasswordHash: "secret-hash"}
	data, err := json.Marshal(u)
	assert.NoError(t, err)
	assert.NotContains(t, string(data), "secret-hash")
	assert.NotContains(t, string(data), "password")
}

func TestValidRoleAndStatus(t *testing.T) {
	assert.True(t, ValidRole(RoleUsuario))
	assert.True(t, ValidRole(RoleAdmin))
	assert.True(t, ValidRole(RoleSuperadmin))
	assert.False(t, ValidRole("root"))
	assert.False(t, ValidRole(""))

	assert.True(t, ValidStatus(StatusActive))
	assert.True(t, ValidStatus(StatusInactive))
	assert.True(t, ValidStatus(StatusDeleted))
	assert.False(t, ValidStatus("banned"))
}
