package model

import "time"

// Roles, lowest to highest privilege.
const (
	RoleUsuario    = "usuario"
	RoleAdmin      = "admin"
	RoleSuperadmin = "superadmin"
)

// Account statuses. StatusDeleted is a logical tombstone: the row is
// kept so username/email stay globally unique.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusDeleted  = "deleted"
)

// InactivityThreshold is how long an account may go without logging in
// before the read path presents it as inactive.
const InactivityThreshold = 7 * 24 * time.Hour

// ValidRole reports whether r is one of the known roles.
func ValidRole(r string) bool {
	return r == RoleUsuario || r == RoleAdmin || r == RoleSuperadmin
}

// ValidStatus reports whether s is one of the known statuses.
func ValidStatus(s string) bool {
	return s == StatusActive || s == StatusInactive || s == StatusDeleted
}

// User represents an account in the system.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;size:255;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role         string    `json:"role" gorm:"size:50;default:'usuario'"`
	Status       string    `json:"status" gorm:"size:50;default:'active'"`
	LastLogin    time.Time `json:"lastLogin"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// EffectiveStatus is the status shown on the read path: an active
// account whose last login is older than InactivityThreshold presents
// as inactive. Pure projection, never persisted; authorization
// decisions use the stored Status.
func (u *User) EffectiveStatus(now time.Time) string {
	if u.Status == StatusActive && now.Sub(u.LastLogin) > InactivityThreshold {
		return StatusInactive
	}
	return u.Status
}
