package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleVendedor = "vendedor"
)

// User usuario del sistema (tabla usuarios).
type User struct {
	ID           int64
	Name         string
	Email        string
	Role         string
	Phone        string
	PasswordHash string // bcrypt; valores en texto plano se rechazan en login
	RegisteredAt time.Time
}
