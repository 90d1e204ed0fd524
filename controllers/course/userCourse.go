package controllers

import (
	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"
	"lms/progress"

	"github.com/gofiber/fiber/v2"
)

// GetMyCourses lists the student's enrolled active courses with live
// recomputed progress. The denormalized enrollment percentage is never used
// here.
func GetMyCourses(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	svc := progress.NewService(database.Database.Db)
	summaries, err := svc.ComputeStudentCourseSummaries(userID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	type EnrolledCourse struct {
		courseModels.Course
		progress.CourseProgressSummary
	}

	result := make([]EnrolledCourse, 0, len(summaries))
	for _, s := range summaries {
		var course courseModels.Course
		if err := database.Database.Db.Where("id = ?", s.CourseID).First(&course).Error; err != nil {
			continue
		}
		result = append(result, EnrolledCourse{Course: course, CourseProgressSummary: s})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": result,
		"total":   len(result),
	})
}

// GetCourseDetail returns an enrolled course's active modules with the
// student's per-module completion flags
func GetCourseDetail(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_active = ?", courseID, true).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not enrolled in this course!", nil)
	}

	var modules []courseModels.Module
	if err := database.Database.Db.Where("course_id = ? AND is_active = ?", courseID, true).
		Order("order_index asc, id asc").Find(&modules).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch modules!", nil)
	}

	var completions []courseModels.ModuleProgress
	if err := database.Database.Db.Where("user_id = ? AND completed = ?", userID, true).
		Find(&completions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}
	completedSet := make(map[uint]bool, len(completions))
	for _, mp := range completions {
		completedSet[mp.ModuleID] = true
	}

	type ModuleWithProgress struct {
		courseModels.Module
		IsCompleted bool `json:"is_completed"`
	}

	result := make([]ModuleWithProgress, len(modules))
	completedCount := 0
	for i, m := range modules {
		done := completedSet[m.ID]
		if done {
			completedCount++
		}
		result[i] = ModuleWithProgress{Module: m, IsCompleted: done}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", fiber.Map{
		"course":            course,
		"modules":           result,
		"completed_modules": completedCount,
		"total_modules":     len(result),
	})
}
