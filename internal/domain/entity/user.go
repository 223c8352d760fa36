package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin      = "admin"
	RoleRecolector = "recolector"
	RoleUsuario    = "usuario"
)

// User usuario de la plataforma.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string
	Status       string // active | disabled
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
