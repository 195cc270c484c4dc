package entity

import "time"

// Roles válidos para User. Manajer es de solo lectura:
// las rutas de mutación exigen admin o kepala.
const (
	RoleAdmin   = "admin"
	RoleKepala  = "kepala"
	RoleManajer = "manajer"
)

// ValidRole verifica que el rol pertenezca al conjunto conocido.
func ValidRole(r string) bool {
	return r == RoleAdmin || r == RoleKepala || r == RoleManajer
}

// User representa un usuario del sistema de almacén.
type User struct {
	ID           string
	Username     string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string // admin, kepala, manajer
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
