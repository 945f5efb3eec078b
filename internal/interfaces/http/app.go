package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"

	"github.com/jhoicas/stockmaster-api/internal/application/dto"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// NewApp crea la aplicación Fiber con el codec JSON de jsoniter y un ErrorHandler que responde
// con dto.ErrorResponse.
func NewApp(name string) *fiber.App {
	return fiber.New(fiber.Config{
		AppName:      name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				code = fe.Code
			}
			resp := dto.ErrorResponse{Code: "INTERNAL", Message: "error interno del servidor"}
			if code != fiber.StatusInternalServerError {
				resp = dto.ErrorResponse{Code: "HTTP_ERROR", Message: err.Error()}
				if code == fiber.StatusNotFound {
					resp.Code = "NOT_FOUND"
				}
			}
			return c.Status(code).JSON(resp)
		},
	})
}
