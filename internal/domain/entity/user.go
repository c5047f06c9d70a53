package entity

import "time"

// Roles válidos para User.
const (
	RoleOwner      = "owner"
	RoleIncharge   = "incharge"
	RoleShopkeeper = "shopkeeper"
)

// Estados de usuario.
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// User representa un usuario del sistema.
type User struct {
	ID           string
	Username     string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // owner, incharge, shopkeeper
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsValidRole indica si role es uno de los roles del sistema.
func IsValidRole(role string) bool {
	switch role {
	case RoleOwner, RoleIncharge, RoleShopkeeper:
		return true
	}
	return false
}
