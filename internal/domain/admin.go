package domain

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleAdmin      Role = "admin"
	RoleEditor     Role = "editor"
)

type Admin struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Username     string     `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Email        string     `gorm:"size:255;uniqueIndex;not null" json:"email"`
	FullName     string     `gorm:"size:255;not null" json:"fullName"`
	PasswordHash string     `gorm:"type:text;not null" json:"-"`
	Role         Role       `gorm:"type:varchar(20);default:editor;not null" json:"role"`
	Avatar       *string    `gorm:"type:text" json:"avatar"`
	IsActive     bool       `gorm:"default:true;index" json:"isActive"`
	LastLoginAt  *time.Time `json:"lastLoginAt"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// CanCreateAdmin reports whether actor may add new admins.
func CanCreateAdmin(actor *Admin) bool {
	return actor != nil && actor.Role == RoleSuperAdmin
}

// CanEditAdmin reports whether actor may update target, ending with role requested.
// An empty requested role keeps the target's role.
func CanEditAdmin(actor, target *Admin, requested Role) bool {
	if actor == nil || target == nil {
		return false
	}
	if requested == "" {
		requested = target.Role
	}
	switch {
	case actor.Role == RoleSuperAdmin:
		return true
	case actor.ID == target.ID:
		return requested == target.Role
	case actor.Role == RoleAdmin:
		return target.Role == RoleEditor && requested == RoleEditor
	}
	return false
}

// CanDeleteAdmin reports whether actor may deactivate target. Nobody removes themself.
func CanDeleteAdmin(actor, target *Admin) bool {
	if actor == nil || target == nil || actor.ID == target.ID {
		return false
	}
	return actor.Role == RoleSuperAdmin
}
