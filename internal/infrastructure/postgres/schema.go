package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/usm-ti/almacen-api/internal/domain/entity"
	"github.com/usm-ti/almacen-api/pkg/config"
	"golang.org/x/crypto/bcrypt"
)

// ddl crea el esquema completo. Idempotente: todas las sentencias usan IF NOT EXISTS.
var ddl = []string{
	`CREATE TABLE IF NOT EXISTS categorias (
		id BIGSERIAL PRIMARY KEY,
		nombre TEXT NOT NULL UNIQUE,
		activo BOOLEAN NOT NULL DEFAULT TRUE
	)`,
	`CREATE TABLE IF NOT EXISTS marcas (
		id BIGSERIAL PRIMARY KEY,
		nombre TEXT NOT NULL UNIQUE,
		activo BOOLEAN NOT NULL DEFAULT TRUE
	)`,
	`CREATE TABLE IF NOT EXISTS ubicaciones (
		id BIGSERIAL PRIMARY KEY,
		nombre TEXT NOT NULL UNIQUE,
		activo BOOLEAN NOT NULL DEFAULT TRUE
	)`,
	`CREATE TABLE IF NOT EXISTS departamentos (
		id BIGSERIAL PRIMARY KEY,
		nombre TEXT NOT NULL UNIQUE,
		activo BOOLEAN NOT NULL DEFAULT TRUE
	)`,
	`CREATE TABLE IF NOT EXISTS solicitantes (
		id BIGSERIAL PRIMARY KEY,
		cedula TEXT NOT NULL UNIQUE,
		nombre TEXT NOT NULL,
		departamento_id BIGINT REFERENCES departamentos(id),
		activo BOOLEAN NOT NULL DEFAULT TRUE
	)`,
	`CREATE TABLE IF NOT EXISTS usuarios (
		id BIGSERIAL PRIMARY KEY,
		nombre_completo TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		usuario TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		rol TEXT NOT NULL DEFAULT 'usuario',
		fecha_registro TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		activo BOOLEAN NOT NULL DEFAULT TRUE
	)`,
	`CREATE TABLE IF NOT EXISTS productos (
		id BIGSERIAL PRIMARY KEY,
		codigo TEXT NOT NULL UNIQUE,
		nombre TEXT NOT NULL,
		marca_id BIGINT REFERENCES marcas(id),
		categoria_id BIGINT REFERENCES categorias(id),
		stock_minimo INTEGER NOT NULL DEFAULT 0 CHECK (stock_minimo >= 0),
		activo BOOLEAN NOT NULL DEFAULT TRUE
	)`,
	`CREATE TABLE IF NOT EXISTS inventario (
		id BIGSERIAL PRIMARY KEY,
		producto_id BIGINT NOT NULL UNIQUE REFERENCES productos(id),
		ubicacion_id BIGINT REFERENCES ubicaciones(id),
		stock INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
		estado_stock TEXT NOT NULL DEFAULT 'agotado',
		estado_bloqueado BOOLEAN NOT NULL DEFAULT FALSE,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS movimientos (
		id BIGSERIAL PRIMARY KEY,
		producto_id BIGINT NOT NULL REFERENCES productos(id),
		tipo TEXT NOT NULL CHECK (tipo IN ('Entrada', 'Salida')),
		cantidad INTEGER NOT NULL CHECK (cantidad > 0),
		responsable_id BIGINT REFERENCES usuarios(id),
		referencia TEXT NOT NULL DEFAULT '',
		transaccion_id TEXT NOT NULL DEFAULT '',
		fecha TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_movimientos_producto ON movimientos (producto_id)`,
	`CREATE INDEX IF NOT EXISTS idx_movimientos_fecha ON movimientos (fecha DESC)`,
	`CREATE TABLE IF NOT EXISTS solicitudes (
		id BIGSERIAL PRIMARY KEY,
		departamento_id BIGINT NOT NULL REFERENCES departamentos(id),
		solicitante_id BIGINT NOT NULL REFERENCES solicitantes(id),
		responsable_id BIGINT NOT NULL REFERENCES usuarios(id),
		comentario TEXT NOT NULL,
		fecha TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		activo BOOLEAN NOT NULL DEFAULT TRUE
	)`,
	`CREATE TABLE IF NOT EXISTS detalle_solicitud (
		id BIGSERIAL PRIMARY KEY,
		solicitud_id BIGINT NOT NULL REFERENCES solicitudes(id),
		producto_id BIGINT NOT NULL REFERENCES productos(id),
		cantidad INTEGER NOT NULL CHECK (cantidad > 0)
	)`,
	`CREATE TABLE IF NOT EXISTS solicitudes_compra (
		id BIGSERIAL PRIMARY KEY,
		producto TEXT NOT NULL,
		cantidad INTEGER NOT NULL CHECK (cantidad > 0),
		motivo TEXT NOT NULL,
		prioridad TEXT NOT NULL CHECK (prioridad IN ('Alta', 'Media', 'Baja')),
		proveedor TEXT NOT NULL DEFAULT '',
		fecha TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		estado TEXT NOT NULL DEFAULT 'Pendiente'
	)`,
	`CREATE TABLE IF NOT EXISTS proveedores (
		id BIGSERIAL PRIMARY KEY,
		nombre TEXT NOT NULL UNIQUE,
		contacto TEXT NOT NULL DEFAULT '',
		telefono TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT '',
		direccion TEXT NOT NULL DEFAULT '',
		redes_sociales TEXT NOT NULL DEFAULT '',
		valoracion INTEGER CHECK (valoracion BETWEEN 1 AND 5),
		manejo_precios TEXT NOT NULL DEFAULT '',
		comentarios TEXT NOT NULL DEFAULT '',
		activo BOOLEAN NOT NULL DEFAULT TRUE
	)`,
	`CREATE TABLE IF NOT EXISTS proveedor_categoria (
		proveedor_id BIGINT NOT NULL REFERENCES proveedores(id) ON DELETE CASCADE,
		categoria_id BIGINT NOT NULL REFERENCES categorias(id) ON DELETE CASCADE,
		PRIMARY KEY (proveedor_id, categoria_id)
	)`,
}

// EnsureSchema crea las tablas que falten y siembra la cuenta admin si la
// tabla de usuarios está vacía. Se ejecuta en cada arranque.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool, admin config.AdminConfig) error {
	for _, stmt := range ddl {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return seedAdmin(ctx, pool, admin)
}

// seedAdmin crea la cuenta admin inicial solo si no existe ningún usuario.
func seedAdmin(ctx context.Context, pool *pgxpool.Pool, admin config.AdminConfig) error {
	var existe bool
	if err := pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM usuarios)`).Scan(&existe); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	if existe {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed admin hash: %w", err)
	}
	_, err = pool.Exec(ctx, `
		INSERT INTO usuarios (nombre_completo, email, usuario, password_hash, rol, activo)
		VALUES ($1, $2, $3, $4, $5, TRUE)`,
		"Administrador", admin.Email, admin.Usuario, string(hash), entity.RolAdmin,
	)
	if err != nil {
		return fmt.Errorf("seed admin insert: %w", err)
	}
	return nil
}
