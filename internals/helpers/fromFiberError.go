package helper

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"kioskhr_backend/internals/constants"
)

// FromFiberError renders *fiber.Error as-is and validator output as 422.
// Anything else is logged and answered with a generic 500 so driver
// messages never reach the client.
func FromFiberError(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		if fe.Code >= 500 {
			log.Printf("[ERROR] %s %s: %v", c.Method(), c.Path(), fe.Message)
		}
		return JsonError(c, fe.Code, fe.Message)
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return JsonValidationError(c, validationFields(ve))
	}
	log.Printf("[ERROR] %s %s reqid=%v: %v", c.Method(), c.Path(), c.Locals(constants.LocReqID), err)
	return JsonError(c, fiber.StatusInternalServerError, "internal server error")
}

// ErrorHandler is installed as fiber.Config.ErrorHandler.
func ErrorHandler(c *fiber.Ctx, err error) error {
	return FromFiberError(c, err)
}
