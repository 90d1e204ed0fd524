package controllers

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/progress"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
)

// AdminEnrollStudent enrolls a student into a course
func AdminEnrollStudent(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	reqData, ok := c.Locals("validatedEnroll").(*struct {
		UserID uint `json:"user_id"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var student models.User
	err := database.Database.Db.
		Where("id = ? AND role = ? AND is_deleted = ?", reqData.UserID, models.RoleStudent, false).
		First(&student).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Student not found!", nil)
	}

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_active = ?", courseID, true).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found or inactive!", nil)
	}

	var existing courseModels.Enrollment
	err = database.Database.Db.Where("user_id = ? AND course_id = ?", student.ID, courseID).First(&existing).Error
	if err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Student already enrolled in this course!", nil)
	}

	enrollment := courseModels.Enrollment{
		UserID:   student.ID,
		CourseID: uint(courseID),
	}

	if err := database.Database.Db.Create(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll student!", nil)
	}

	go utils.SendEnrollmentEmail(student.Email, student.Name, course.Title)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Student enrolled successfully!", enrollment)
}

// AdminUnenrollStudent removes a student from a course. The student's
// progress rows for the course's modules go with the enrollment, in one
// transaction, so stale progress can never resurface on re-enroll.
func AdminUnenrollStudent(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)
	studentID := c.Locals("targetUserID").(int)

	var enrollment courseModels.Enrollment
	err := database.Database.Db.Where("user_id = ? AND course_id = ?", studentID, courseID).First(&enrollment).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
	}

	svc := progress.NewService(database.Database.Db)

	tx := database.Database.Db.Begin()
	if err := svc.RemoveStudentCourseProgress(tx, uint(studentID), uint(courseID)); err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to remove progress!", nil)
	}
	if err := tx.Delete(&enrollment).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to unenroll student!", nil)
	}
	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Student unenrolled successfully!", nil)
}

// AdminGetCourseEnrollments lists enrollments for a course with student identity
func AdminGetCourseEnrollments(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ?", courseID).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var enrollments []courseModels.Enrollment
	if err := database.Database.Db.Where("course_id = ?", courseID).
		Order("created_at desc").Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	type EnrollmentWithUser struct {
		courseModels.Enrollment
		UserName  string `json:"user_name"`
		UserEmail string `json:"user_email"`
	}

	result := make([]EnrollmentWithUser, len(enrollments))
	for i, e := range enrollments {
		var enrolledUser models.User
		database.Database.Db.Select("name, email").Where("id = ?", e.UserID).First(&enrolledUser)
		result[i] = EnrollmentWithUser{
			Enrollment: e,
			UserName:   enrolledUser.Name,
			UserEmail:  enrolledUser.Email,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", fiber.Map{
		"enrollments": result,
		"total":       len(result),
	})
}
