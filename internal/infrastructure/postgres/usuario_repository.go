package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/usm-ti/almacen-api/internal/domain"
	"github.com/usm-ti/almacen-api/internal/domain/entity"
	"github.com/usm-ti/almacen-api/internal/domain/repository"
)

var _ repository.UsuarioRepository = (*UsuarioRepo)(nil)

// UsuarioRepo implementación del puerto de usuarios sobre PostgreSQL.
type UsuarioRepo struct {
	q Querier
}

// NewUsuarioRepository construye el adaptador. Pasar pool o tx (Querier).
func NewUsuarioRepository(q Querier) *UsuarioRepo {
	return &UsuarioRepo{q: q}
}

const usuarioSelect = `
	SELECT id, nombre_completo, email, usuario, password_hash, rol, fecha_registro, activo
	FROM usuarios`

// Create inserta una cuenta y deja ID y fecha de registro asignados.
func (r *UsuarioRepo) Create(u *entity.Usuario) error {
	query := `
		INSERT INTO usuarios (nombre_completo, email, usuario, password_hash, rol, fecha_registro, activo)
		VALUES ($1, $2, $3, $4, $5, NOW(), $6)
		RETURNING id, fecha_registro`
	err := r.q.QueryRow(context.Background(), query,
		u.NombreCompleto, u.Email, u.Usuario, u.PasswordHash, u.Rol, u.Activo,
	).Scan(&u.ID, &u.FechaRegistro)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert usuario: %w", err)
	}
	return nil
}

func (r *UsuarioRepo) getOne(where string, arg any) (*entity.Usuario, error) {
	var u entity.Usuario
	err := r.q.QueryRow(context.Background(), usuarioSelect+where, arg).Scan(
		&u.ID, &u.NombreCompleto, &u.Email, &u.Usuario, &u.PasswordHash, &u.Rol, &u.FechaRegistro, &u.Activo,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get usuario: %w", err)
	}
	return &u, nil
}

// GetByID obtiene una cuenta por ID (nil si no existe).
func (r *UsuarioRepo) GetByID(id int64) (*entity.Usuario, error) {
	return r.getOne(` WHERE id = $1`, id)
}

// FindByUsuario obtiene una cuenta por nombre de usuario (para login).
func (r *UsuarioRepo) FindByUsuario(usuario string) (*entity.Usuario, error) {
	return r.getOne(` WHERE usuario = $1`, usuario)
}

// FindByEmail obtiene una cuenta por email (para detectar duplicados en el alta).
func (r *UsuarioRepo) FindByEmail(email string) (*entity.Usuario, error) {
	return r.getOne(` WHERE email = $1`, email)
}

// Exists indica si el ID corresponde a un usuario registrado (cualquier estado).
func (r *UsuarioRepo) Exists(id int64) (bool, error) {
	var ok bool
	err := r.q.QueryRow(context.Background(), `SELECT EXISTS(SELECT 1 FROM usuarios WHERE id = $1)`, id).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("exists usuario: %w", err)
	}
	return ok, nil
}

// UpdatePassword reemplaza el hash de la cuenta indicada.
func (r *UsuarioRepo) UpdatePassword(id int64, passwordHash string) error {
	cmd, err := r.q.Exec(context.Background(), `UPDATE usuarios SET password_hash = $2 WHERE id = $1`, id, passwordHash)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// SetActivo activa o desactiva una cuenta.
func (r *UsuarioRepo) SetActivo(id int64, activo bool) error {
	cmd, err := r.q.Exec(context.Background(), `UPDATE usuarios SET activo = $2 WHERE id = $1`, id, activo)
	if err != nil {
		return fmt.Errorf("set activo usuario: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// List devuelve todas las cuentas ordenadas por fecha de registro.
func (r *UsuarioRepo) List() ([]*entity.Usuario, error) {
	rows, err := r.q.Query(context.Background(), usuarioSelect+` ORDER BY fecha_registro`)
	if err != nil {
		return nil, fmt.Errorf("list usuarios: %w", err)
	}
	defer rows.Close()

	var out []*entity.Usuario
	for rows.Next() {
		var u entity.Usuario
		if err := rows.Scan(&u.ID, &u.NombreCompleto, &u.Email, &u.Usuario, &u.PasswordHash, &u.Rol, &u.FechaRegistro, &u.Activo); err != nil {
			return nil, fmt.Errorf("scan usuario: %w", err)
		}
		out = append(out, &u)
	}
	return out, rows.Err()
}
