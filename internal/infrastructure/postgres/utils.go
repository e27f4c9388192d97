package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Códigos SQLSTATE que los repositorios traducen a errores de dominio.
const (
	codigoUniqueViolation = "23505"
	codigoFKViolation     = "23503"
)

func codigoPG(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isUniqueViolation detecta choques contra índices únicos: código de producto,
// cédula de solicitante, nombre de catálogo, usuario o email repetidos.
func isUniqueViolation(err error) bool {
	return codigoPG(err) == codigoUniqueViolation
}

// isFKViolation detecta inserts que apuntan a una fila inexistente, p. ej. un
// solicitante cuyo departamento fue eliminado entre la validación y el insert.
func isFKViolation(err error) bool {
	return codigoPG(err) == codigoFKViolation
}
