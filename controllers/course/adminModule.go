package controllers

import (
	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"
	"lms/utils"
	"log"

	"github.com/gofiber/fiber/v2"
)

// enrichModuleFromYouTube fills a missing module title and refreshes the
// thumbnail from the video's oEmbed metadata. Runs off the request path; a
// lookup failure only logs. Admin-given titles are never overwritten, but the
// thumbnail always tracks the current video.
func enrichModuleFromYouTube(moduleID uint, videoURL string) {
	meta, err := utils.FetchYouTubeMetadata(videoURL)
	if err != nil {
		log.Printf("YouTube metadata lookup failed for module %d: %v", moduleID, err)
		return
	}

	var module courseModels.Module
	if err := database.Database.Db.Where("id = ?", moduleID).First(&module).Error; err != nil {
		return
	}

	updates := map[string]interface{}{}
	if module.Title == "" && meta.Title != "" {
		updates["title"] = meta.Title
	}
	if meta.ThumbnailURL != "" && meta.ThumbnailURL != module.ThumbnailURL {
		updates["thumbnail_url"] = meta.ThumbnailURL
	}
	if len(updates) == 0 {
		return
	}

	if err := database.Database.Db.Model(&module).Updates(updates).Error; err != nil {
		log.Printf("Failed to enrich module %d: %v", moduleID, err)
	}
}

// AdminCreateModule adds a module (a YouTube-backed lesson) to a course
func AdminCreateModule(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	reqData, ok := c.Locals("validatedModule").(*struct {
		Title           string `json:"title"`
		Description     string `json:"description"`
		VideoURL        string `json:"video_url"`
		DurationMinutes int    `json:"duration_minutes"`
		OrderIndex      int    `json:"order_index"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_active = ?", courseID, true).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found or inactive!", nil)
	}

	module := courseModels.Module{
		CourseID:        uint(courseID),
		Title:           reqData.Title,
		Description:     reqData.Description,
		VideoURL:        reqData.VideoURL,
		DurationMinutes: reqData.DurationMinutes,
		OrderIndex:      reqData.OrderIndex,
		IsActive:        true,
	}

	if err := database.Database.Db.Create(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create module!", nil)
	}

	go enrichModuleFromYouTube(module.ID, module.VideoURL)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Module created successfully!", module)
}

// AdminUpdateModule updates module fields; empty fields are left unchanged
func AdminUpdateModule(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)
	moduleID := c.Locals("moduleID").(int)

	reqData, ok := c.Locals("validatedModuleUpdate").(*struct {
		Title           string `json:"title"`
		Description     string `json:"description"`
		VideoURL        string `json:"video_url"`
		DurationMinutes *int   `json:"duration_minutes"`
		OrderIndex      *int   `json:"order_index"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var module courseModels.Module
	if err := database.Database.Db.Where("id = ? AND course_id = ?", moduleID, courseID).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	videoChanged := false
	if reqData.Title != "" {
		module.Title = reqData.Title
	}
	if reqData.Description != "" {
		module.Description = reqData.Description
	}
	if reqData.VideoURL != "" && reqData.VideoURL != module.VideoURL {
		module.VideoURL = reqData.VideoURL
		videoChanged = true
	}
	if reqData.DurationMinutes != nil {
		module.DurationMinutes = *reqData.DurationMinutes
	}
	if reqData.OrderIndex != nil {
		module.OrderIndex = *reqData.OrderIndex
	}

	if err := database.Database.Db.Save(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update module!", nil)
	}

	if videoChanged {
		go enrichModuleFromYouTube(module.ID, module.VideoURL)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module updated successfully!", module)
}

// AdminSetModuleActive flips the module soft-delete flag. Progress rows
// against a deactivated module survive but stop counting toward any aggregate.
func AdminSetModuleActive(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)
	moduleID := c.Locals("moduleID").(int)
	isActive := c.Locals("moduleActive").(bool)

	var module courseModels.Module
	if err := database.Database.Db.Where("id = ? AND course_id = ?", moduleID, courseID).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	module.IsActive = isActive
	if err := database.Database.Db.Save(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update module!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module updated successfully!", module)
}

// AdminListModules lists all modules of a course, active and inactive
func AdminListModules(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ?", courseID).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var modules []courseModels.Module
	if err := database.Database.Db.Where("course_id = ?", courseID).
		Order("order_index asc, id asc").Find(&modules).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch modules!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Modules fetched successfully!", fiber.Map{
		"modules": modules,
		"total":   len(modules),
	})
}
