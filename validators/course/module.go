package courseValidator

import (
	"lms/middleware"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// isYouTubeURL accepts the usual watch/short/embed YouTube link shapes
func isYouTubeURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return false
	}
	host := strings.TrimPrefix(u.Host, "www.")
	return host == "youtube.com" || host == "youtu.be" || host == "m.youtube.com"
}

// ============ Module Validators ============

// CreateModule validates admin module creation request
func CreateModule() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := parseIDParam(c, "id", "courseID"); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		reqData := new(struct {
			Title           string `json:"title"`
			Description     string `json:"description"`
			VideoURL        string `json:"video_url"`
			DurationMinutes int    `json:"duration_minutes"`
			OrderIndex      int    `json:"order_index"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Title = strings.TrimSpace(reqData.Title)
		reqData.Description = strings.TrimSpace(reqData.Description)
		reqData.VideoURL = strings.TrimSpace(reqData.VideoURL)

		if reqData.VideoURL == "" {
			errors["video_url"] = "Video URL is required!"
		} else if !isYouTubeURL(reqData.VideoURL) {
			errors["video_url"] = "Video URL must be a YouTube link!"
		}

		if reqData.DurationMinutes < 0 {
			errors["duration_minutes"] = "Duration must not be negative!"
		}

		if reqData.OrderIndex < 0 {
			errors["order_index"] = "Order index must not be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedModule", reqData)
		return c.Next()
	}
}

// UpdateModule validates admin module update request
func UpdateModule() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := parseIDParam(c, "course_id", "courseID"); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}
		if _, err := parseIDParam(c, "module_id", "moduleID"); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Module ID!", nil)
		}

		reqData := new(struct {
			Title           string `json:"title"`
			Description     string `json:"description"`
			VideoURL        string `json:"video_url"`
			DurationMinutes *int   `json:"duration_minutes"`
			OrderIndex      *int   `json:"order_index"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Title = strings.TrimSpace(reqData.Title)
		reqData.Description = strings.TrimSpace(reqData.Description)
		reqData.VideoURL = strings.TrimSpace(reqData.VideoURL)

		if reqData.VideoURL != "" && !isYouTubeURL(reqData.VideoURL) {
			errors["video_url"] = "Video URL must be a YouTube link!"
		}

		if reqData.DurationMinutes != nil && *reqData.DurationMinutes < 0 {
			errors["duration_minutes"] = "Duration must not be negative!"
		}

		if reqData.OrderIndex != nil && *reqData.OrderIndex < 0 {
			errors["order_index"] = "Order index must not be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedModuleUpdate", reqData)
		return c.Next()
	}
}

// SetModuleActive validates the module activate/deactivate request
func SetModuleActive() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := parseIDParam(c, "course_id", "courseID"); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}
		if _, err := parseIDParam(c, "module_id", "moduleID"); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Module ID!", nil)
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

		c.Locals("moduleActive", *reqData.IsActive)
		return c.Next()
	}
}
