package dto

import "time"

// RegisterRequest entrada del registro de usuarios.
type RegisterRequest struct {
	NombreCompleto string `json:"nombre_completo" validate:"required,max=100"`
	Email          string `json:"email" validate:"required,email"`
	Usuario        string `json:"usuario" validate:"required,max=50"`
	Password       string `json:"password" validate:"required,min=6"`
	Rol            string `json:"rol"`
}

// LoginRequest entrada del login.
type LoginRequest struct {
	Usuario  string `json:"usuario" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UpdatePasswordRequest cambio de contraseña de la cuenta autenticada. Exige
// la contraseña vigente; la cuenta sale del token, nunca del cuerpo.
type UpdatePasswordRequest struct {
	PasswordActual string `json:"password_actual" validate:"required"`
	Password       string `json:"password" validate:"required,min=6"`
}

// UserResponse salida de un usuario (sin hash).
type UserResponse struct {
	ID             int64     `json:"id"`
	NombreCompleto string    `json:"nombre_completo"`
	Email          string    `json:"email"`
	Usuario        string    `json:"usuario"`
	Rol            string    `json:"rol"`
	FechaRegistro  time.Time `json:"fecha_registro"`
	Activo         bool      `json:"activo"`
}

// LoginResponse token + usuario autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
