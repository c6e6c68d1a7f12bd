package helper

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Validate is shared by every request DTO.
var Validate = validator.New()

// BindAndValidate parses the JSON body into dst and runs struct validation.
// The returned error is meant for FromFiberError.
func BindAndValidate(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	return Validate.Struct(dst)
}

func validationFields(ve validator.ValidationErrors) map[string][]string {
	fields := make(map[string][]string, len(ve))
	for _, fe := range ve {
		name := strings.ToLower(fe.Field())
		fields[name] = append(fields[name], fe.Tag())
	}
	return fields
}
