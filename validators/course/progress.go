package courseValidator

import (
	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

// ============ Progress Validators ============

// SetProgress validates the module completion toggle request
func SetProgress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			ModuleID  uint  `json:"module_id"`
			Completed *bool `json:"completed"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.ModuleID == 0 {
			errors["module_id"] = "A valid module_id is required!"
		}
		if reqData.Completed == nil {
			errors["completed"] = "completed is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedProgress", reqData)
		return c.Next()
	}
}
