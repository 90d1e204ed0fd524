package courseValidator

import (
	"lms/middleware"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// parseIDParam reads a positive integer route parameter into c.Locals
func parseIDParam(c *fiber.Ctx, param, localKey string) (int, error) {
	raw := strings.TrimSpace(c.Params(param))
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest)
	}
	c.Locals(localKey, id)
	return id, nil
}

// ============ Course Validators ============

// CreateCourse validates admin course creation request
func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title        string `json:"title"`
			Description  string `json:"description"`
			Category     string `json:"category"`
			ThumbnailURL string `json:"thumbnail_url"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Title = strings.TrimSpace(reqData.Title)
		reqData.Description = strings.TrimSpace(reqData.Description)
		reqData.Category = strings.TrimSpace(reqData.Category)

		if reqData.Title == "" {
			errors["title"] = "Title is required!"
		} else if len(reqData.Title) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

// UpdateCourse validates admin course update request
func UpdateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := parseIDParam(c, "id", "courseID"); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		reqData := new(struct {
			Title        string `json:"title"`
			Description  string `json:"description"`
			Category     string `json:"category"`
			ThumbnailURL string `json:"thumbnail_url"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Title = strings.TrimSpace(reqData.Title)
		reqData.Description = strings.TrimSpace(reqData.Description)
		reqData.Category = strings.TrimSpace(reqData.Category)

		if reqData.Title != "" && len(reqData.Title) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourseUpdate", reqData)
		return c.Next()
	}
}

// CourseID validates a bare course id route parameter
func CourseID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := parseIDParam(c, "id", "courseID"); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}
		return c.Next()
	}
}

// SetCourseActive validates the course activate/deactivate request
func SetCourseActive() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := parseIDParam(c, "id", "courseID"); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		reqData := new(struct {
			IsActive *bool `json:"is_active"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.IsActive == nil {
			return middleware.ValidationErrorResponse(c, map[string]string{"is_active": "is_active is required!"})
		}

		c.Locals("courseActive", *reqData.IsActive)
		return c.Next()
	}
}

// CourseList validates course list pagination query params
func CourseList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page  *int `json:"page"`
			Limit *int `json:"limit"`
		})

		if pageStr := c.Query("page"); pageStr != "" {
			page, err := strconv.Atoi(pageStr)
			if err != nil || page <= 0 {
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid page!", nil)
			}
			reqData.Page = &page
		}

		if limitStr := c.Query("limit"); limitStr != "" {
			limit, err := strconv.Atoi(limitStr)
			if err != nil || limit <= 0 || limit > 100 {
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid limit!", nil)
			}
			reqData.Limit = &limit
		}

		c.Locals("validatedCourseList", reqData)
		return c.Next()
	}
}
