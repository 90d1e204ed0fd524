package courseRoutes

import (
	controllers "lms/controllers/course"
	"lms/middleware"
	"lms/models"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up the student-facing course routes
func SetupCourseRoutes(app *fiber.App) {
	userGroup := app.Group("/course", middleware.JWTMiddleware, middleware.RequireRole(models.RoleStudent))

	userGroup.Get("/list", controllers.GetMyCourses)
	userGroup.Get("/:id", validators.CourseID(), controllers.GetCourseDetail)
}
