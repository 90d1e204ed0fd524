package analyticsRoutes

import (
	controllers "lms/controllers/course"
	"lms/middleware"
	"lms/models"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupAnalyticsRoutes sets up the aggregation endpoints. Paths are part of
// the API contract consumed by the admin dashboard and student views.
func SetupAnalyticsRoutes(app *fiber.App) {
	app.Get("/analytics/dashboard",
		middleware.JWTMiddleware, middleware.RequireRole(models.RoleAdmin),
		controllers.GetDashboardStats)

	app.Get("/students/stats",
		middleware.JWTMiddleware, middleware.RequireRole(models.RoleAdmin),
		controllers.GetAllStudentStats)

	// Admins can read any student; students can only read themselves.
	app.Get("/students/:id/stats",
		middleware.JWTMiddleware, middleware.LoadSessionUser,
		validators.StudentID(), controllers.GetStudentStats)

	app.Get("/courses/:id/students",
		middleware.JWTMiddleware, middleware.RequireRole(models.RoleAdmin),
		validators.CourseID(), controllers.GetCourseStudents)

	app.Post("/progress",
		middleware.JWTMiddleware, middleware.RequireRole(models.RoleStudent),
		validators.SetProgress(), controllers.SetModuleCompletion)
}
