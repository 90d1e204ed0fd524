package courseRoutes

import (
	controllers "lms/controllers/course"
	"lms/middleware"
	"lms/models"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminCourseRoutes sets up all admin course management routes
func SetupAdminCourseRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin/course", middleware.JWTMiddleware, middleware.RequireRole(models.RoleAdmin))

	// Course CRUD
	adminGroup.Post("/create", validators.CreateCourse(), controllers.AdminCreateCourse)
	adminGroup.Put("/:id", validators.UpdateCourse(), controllers.AdminUpdateCourse)
	adminGroup.Patch("/:id/active", validators.SetCourseActive(), controllers.AdminSetCourseActive)
	adminGroup.Get("/list", validators.CourseList(), controllers.AdminGetAllCourses)
	adminGroup.Get("/:id", validators.CourseID(), controllers.AdminGetCourseDetails)

	// Module Management
	adminGroup.Post("/:id/module", validators.CreateModule(), controllers.AdminCreateModule)
	adminGroup.Put("/:course_id/module/:module_id", validators.UpdateModule(), controllers.AdminUpdateModule)
	adminGroup.Patch("/:course_id/module/:module_id/active", validators.SetModuleActive(), controllers.AdminSetModuleActive)
	adminGroup.Get("/:id/modules", validators.CourseID(), controllers.AdminListModules)

	// Enrollment Management
	adminGroup.Post("/:id/enroll", validators.EnrollStudent(), controllers.AdminEnrollStudent)
	adminGroup.Delete("/:id/enroll/:user_id", validators.UnenrollStudent(), controllers.AdminUnenrollStudent)
	adminGroup.Get("/:id/enrollments", validators.CourseID(), controllers.AdminGetCourseEnrollments)
}
