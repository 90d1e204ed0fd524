package controllers

import (
	"errors"
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/progress"
	"log"

	"github.com/gofiber/fiber/v2"
)

// GetDashboardStats returns the system-wide dashboard aggregates
func GetDashboardStats(c *fiber.Ctx) error {
	svc := progress.NewService(database.Database.Db)

	stats, err := svc.ComputeSystemDashboardStats()
	if err != nil {
		log.Printf("Failed to compute dashboard stats: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to compute dashboard stats!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard stats fetched successfully!", stats)
}

// GetAllStudentStats returns stats for every student
func GetAllStudentStats(c *fiber.Ctx) error {
	svc := progress.NewService(database.Database.Db)

	overviews, err := svc.ComputeAllStudentStats()
	if err != nil {
		log.Printf("Failed to compute student stats: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to compute student stats!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Student stats fetched successfully!", fiber.Map{
		"students": overviews,
		"total":    len(overviews),
	})
}

// GetStudentStats returns one student's stats. Admins can read any student;
// a student can only read their own.
func GetStudentStats(c *fiber.Ctx) error {
	sessionUser, ok := c.Locals("sessionUser").(*models.User)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	targetID := c.Locals("targetUserID").(int)

	if sessionUser.Role != models.RoleAdmin && sessionUser.ID != uint(targetID) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You can only view your own stats!", nil)
	}

	// A missing or wrong-role account is Not Found; a student with no
	// enrollments is a valid empty result, never a 404.
	var student models.User
	err := database.Database.Db.
		Where("id = ? AND role = ? AND is_deleted = ?", targetID, models.RoleStudent, false).
		First(&student).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Student not found!", nil)
	}

	svc := progress.NewService(database.Database.Db)
	stats, err := svc.ComputeStudentStats(student.ID)
	if err != nil {
		log.Printf("Failed to compute stats for student %d: %v", student.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to compute student stats!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Student stats fetched successfully!", fiber.Map{
		"student": fiber.Map{
			"id":    student.ID,
			"name":  student.Name,
			"email": student.Email,
		},
		"stats": stats,
	})
}

// GetCourseStudents returns the per-student progress matrix for a course
func GetCourseStudents(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	svc := progress.NewService(database.Database.Db)
	matrix, err := svc.ComputeCourseStudentMatrix(uint(courseID))
	if err != nil {
		if errors.Is(err, progress.ErrCourseNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found or inactive!", nil)
		}
		log.Printf("Failed to compute course matrix for course %d: %v", courseID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to compute course stats!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course students fetched successfully!", fiber.Map{
		"students": matrix,
		"total":    len(matrix),
	})
}
