package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-tracker-api/internal/application/dto"
	"github.com/jhoicas/stock-tracker-api/internal/domain"
)

// localError clave de Locals donde queda la causa de un 5xx para el logger de peticiones.
const localError = "request_error"

// writeError traduce errores de dominio al envelope {code, message}.
func writeError(c *fiber.Ctx, err error) error {
	status, body := classify(err)
	if status >= fiber.StatusInternalServerError {
		c.Locals(localError, err)
	}
	return c.Status(status).JSON(body)
}

func classify(err error) (int, dto.ErrorResponse) {
	var (
		validation *domain.ValidationError
		rejection  *domain.RejectionError
		internal   *domain.InternalError
		fiberErr   *fiber.Error
	)
	switch {
	case errors.As(err, &validation):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: dto.CodeValidation, Message: validation.Message}
	case errors.As(err, &rejection):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: dto.CodeBadRequest, Message: rejection.Message}
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: dto.CodeNotFound, Message: "Not found"}
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: dto.CodeDuplicate, Message: "A record with this unique value already exists"}
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: dto.CodeBadRequest, Message: err.Error()}
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, dto.ErrorResponse{Code: dto.CodeUnauthorized, Message: "Invalid or expired token"}
	case errors.As(err, &internal):
		return fiber.StatusInternalServerError, dto.ErrorResponse{Code: dto.CodeInternal, Message: internal.Error()}
	case errors.As(err, &fiberErr):
		return fiberErr.Code, dto.ErrorResponse{Code: fiberCode(fiberErr.Code), Message: fiberErr.Message}
	}
	return fiber.StatusInternalServerError, dto.ErrorResponse{Code: dto.CodeInternal, Message: "Internal server error"}
}

func fiberCode(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return dto.CodeNotFound
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	}
	if status >= fiber.StatusInternalServerError {
		return dto.CodeInternal
	}
	return dto.CodeBadRequest
}

// ErrorHandler handler de errores de Fiber: rutas inexistentes, panics recuperados y errores
// devueltos sin pasar por writeError.
func ErrorHandler(c *fiber.Ctx, err error) error {
	return writeError(c, err)
}
