package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrInsufficientStock = errors.New("stock insuficiente")
)

// ValidationError estado resultante inválido de una entidad (la escritura se aborta completa).
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Is permite errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError construye un ValidationError.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// RejectionError petición de ajuste mal formada o semánticamente inválida. Message es estable
// y se devuelve tal cual al cliente. Cause opcional (p. ej. ErrInsufficientStock).
type RejectionError struct {
	Message string
	Cause   error
}

func (e *RejectionError) Error() string {
	return e.Message
}

// Is permite errors.Is(err, ErrInvalidInput).
func (e *RejectionError) Is(target error) bool {
	return target == ErrInvalidInput
}

// Unwrap expone la causa para errors.Is.
func (e *RejectionError) Unwrap() error {
	return e.Cause
}

// Reject construye un RejectionError con formato.
func Reject(format string, args ...any) *RejectionError {
	return &RejectionError{Message: fmt.Sprintf(format, args...)}
}

// RejectBecause igual que Reject pero conserva la causa.
func RejectBecause(cause error, format string, args ...any) *RejectionError {
	return &RejectionError{Message: fmt.Sprintf(format, args...), Cause: cause}
}

// InternalError fallo inesperado de persistencia o lógica durante una operación válida.
// No se reintenta.
type InternalError struct {
	Op  string
	Err error
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *InternalError) Unwrap() error {
	return e.Err
}
