package repository

import "github.com/usm-ti/almacen-api/internal/domain/entity"

// UsuarioRepository define el puerto de persistencia para cuentas de usuario.
type UsuarioRepository interface {
	Create(u *entity.Usuario) error
	GetByID(id int64) (*entity.Usuario, error)
	FindByUsuario(usuario string) (*entity.Usuario, error)
	FindByEmail(email string) (*entity.Usuario, error)
	// Exists indica si el ID corresponde a un usuario registrado (cualquier estado).
	Exists(id int64) (bool, error)
	UpdatePassword(id int64, passwordHash string) error
	SetActivo(id int64, activo bool) error
	List() ([]*entity.Usuario, error)
}
