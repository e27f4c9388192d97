package entity

import "time"

// Roles válidos para Usuario.
const (
	RolAdmin   = "admin"
	RolUsuario = "usuario"
)

// Usuario representa una cuenta del sistema.
type Usuario struct {
	ID             int64
	NombreCompleto string
	Email          string
	Usuario        string
	PasswordHash   string // bcrypt, nunca plano después de persistir
	Rol            string // admin | usuario
	FechaRegistro  time.Time
	Activo         bool
}
