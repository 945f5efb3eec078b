package http

import (
	"errors"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/stockmaster-api/internal/application/dto"
	"github.com/jhoicas/stockmaster-api/internal/domain"
)

var validate = newValidator()

// newValidator reporta los campos con su nombre JSON (o query) en lugar del nombre Go.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "query"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return f.Name
	})
	return v
}

// requestError error de la petición (cuerpo, query o validación) ya listo para responder con 400.
type requestError struct {
	resp dto.ErrorResponse
}

func (e *requestError) Error() string { return e.resp.Message }

// bindBody parsea el cuerpo JSON en dst y lo valida.
func bindBody(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return &requestError{dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"}}
	}
	return validateStruct(dst)
}

// bindQuery parsea los query params en dst y los valida.
func bindQuery(c *fiber.Ctx, dst any) error {
	if err := c.QueryParser(dst); err != nil {
		return &requestError{dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros de consulta inválidos"}}
	}
	return validateStruct(dst)
}

func validateStruct(dst any) error {
	err := validate.Struct(dst)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &requestError{dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()}}
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		// Namespace incluye el tipo raíz: CreateOperationRequest.lines[0].product_id
		ns := fe.Namespace()
		if i := strings.IndexByte(ns, '.'); i >= 0 {
			ns = ns[i+1:]
		}
		fields[ns] = fieldMessage(fe)
	}
	return &requestError{dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos", Fields: fields}}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "es requerido"
	case "uuid":
		return "debe ser un UUID"
	case "email":
		return "debe ser un email válido"
	case "oneof":
		return "debe ser uno de: " + fe.Param()
	case "min":
		return "mínimo " + fe.Param()
	case "max":
		return "máximo " + fe.Param()
	default:
		return "no cumple la regla " + fe.Tag()
	}
}

// writeError traduce un error de aplicación a la respuesta HTTP.
func writeError(c *fiber.Ctx, err error) error {
	var reqErr *requestError
	if errors.As(err, &reqErr) {
		return c.Status(fiber.StatusBadRequest).JSON(reqErr.resp)
	}

	resp := dto.ErrorResponse{Message: err.Error()}
	var stockErr *domain.StockError
	if errors.As(err, &stockErr) {
		resp.Fields = map[string]string{
			"line":       strconv.Itoa(stockErr.Line),
			"product_id": stockErr.ProductID,
		}
	}

	var status int
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		status, resp.Code = fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrNotFound):
		status, resp.Code = fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrDuplicate):
		status, resp.Code = fiber.StatusConflict, "DUPLICATE"
	case errors.Is(err, domain.ErrInvalidState):
		status, resp.Code = fiber.StatusConflict, "INVALID_STATE"
	case errors.Is(err, domain.ErrInsufficientStock):
		status, resp.Code = fiber.StatusConflict, "INSUFFICIENT_STOCK"
	default:
		log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error interno")
		status = fiber.StatusInternalServerError
		resp = dto.ErrorResponse{Code: "INTERNAL", Message: "error interno del servidor"}
	}
	return c.Status(status).JSON(resp)
}

// notFound respuesta 404 con el mensaje indicado.
func notFound(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: msg})
}
