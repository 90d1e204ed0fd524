package courseValidator

import (
	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

// ============ Enrollment Validators ============

// EnrollStudent validates the admin enroll request
func EnrollStudent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := parseIDParam(c, "id", "courseID"); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		reqData := new(struct {
			UserID uint `json:"user_id"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.UserID == 0 {
			return middleware.ValidationErrorResponse(c, map[string]string{"user_id": "A valid user_id is required!"})
		}

		c.Locals("validatedEnroll", reqData)
		return c.Next()
	}
}

// UnenrollStudent validates the admin unenroll request
func UnenrollStudent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := parseIDParam(c, "id", "courseID"); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}
		if _, err := parseIDParam(c, "user_id", "targetUserID"); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid User ID!", nil)
		}
		return c.Next()
	}
}

// StudentID validates a student id route parameter
func StudentID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := parseIDParam(c, "id", "targetUserID"); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Student ID!", nil)
		}
		return c.Next()
	}
}
