package postgres

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	codeUniqueViolation = "23505"
	codeCheckViolation  = "23514"
	codeFKViolation     = "23503"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	return hasCode(err, codeUniqueViolation)
}

// isCheckViolation detecta CHECK (p. ej. quantity >= 0) rechazado por la base.
func isCheckViolation(err error) bool {
	return hasCode(err, codeCheckViolation)
}

func isForeignKeyViolation(err error) bool {
	return hasCode(err, codeFKViolation)
}

func hasCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}
	return err != nil && strings.Contains(err.Error(), code)
}

// likePattern arma el patrón ILIKE escapando los comodines del texto buscado.
func likePattern(search string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.TrimSpace(search)) + "%"
}

// isUUID evita enviar a la base ids que la columna uuid rechazaría con error de sintaxis.
func isUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
