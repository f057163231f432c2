package helpers

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// ValidateStruct runs tag validation on a bound request body and shapes the
// failures into one user-facing message.
func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// ValidationError converts validator failures into a 400 JSON response.
func ValidationError(c *fiber.Ctx, err error) error {
	var fields []string
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, ve := range verrs {
			fields = append(fields, strings.ToLower(ve.Field())+" ("+ve.Tag()+")")
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Validation failed: " + strings.Join(fields, ", "),
		})
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
}
