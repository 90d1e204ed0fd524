package controllers

import (
	"errors"
	"lms/database"
	"lms/middleware"
	"lms/progress"
	"log"

	"github.com/gofiber/fiber/v2"
)

// SetModuleCompletion toggles the session student's completion flag for a
// module. This is the single write path for module progress.
func SetModuleCompletion(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedProgress").(*struct {
		ModuleID  uint  `json:"module_id"`
		Completed *bool `json:"completed"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	svc := progress.NewService(database.Database.Db)
	row, err := svc.SetModuleCompletion(userID, reqData.ModuleID, *reqData.Completed)
	if err != nil {
		switch {
		case errors.Is(err, progress.ErrModuleNotFound):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found or inactive!", nil)
		case errors.Is(err, progress.ErrNotEnrolled):
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not enrolled in this course!", nil)
		default:
			log.Printf("Failed to set completion for user %d module %d: %v", userID, reqData.ModuleID, err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress updated successfully!", row)
}
