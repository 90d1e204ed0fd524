package progress

import (
	"fmt"
	"time"

	courseModels "lms/models/course"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SetModuleCompletion flips the completion flag on the (student, module) row,
// creating it on first toggle. Completing sets completed_at to now — also on
// a repeated completion, so last-activity ordering follows the most recent
// action. Un-completing clears the timestamp.
//
// The module must exist and be active, its course must be active, and the
// student must be enrolled in that course; otherwise nothing is written.
// The denormalized enrollment percentage is deliberately not touched here —
// the read path recomputes from ModuleProgress rows and the cron scheduler
// refreshes the cached value.
func (s *Service) SetModuleCompletion(studentID, moduleID uint, completed bool) (courseModels.ModuleProgress, error) {
	var row courseModels.ModuleProgress

	var module courseModels.Module
	err := s.db.
		Joins("JOIN courses ON courses.id = modules.course_id AND courses.is_active = ?", true).
		Where("modules.id = ? AND modules.is_active = ?", moduleID, true).
		First(&module).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return row, ErrModuleNotFound
		}
		return row, fmt.Errorf("fetch module: %w", err)
	}

	var enrollment courseModels.Enrollment
	err = s.db.Where("user_id = ? AND course_id = ?", studentID, module.CourseID).First(&enrollment).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return row, ErrNotEnrolled
		}
		return row, fmt.Errorf("fetch enrollment: %w", err)
	}

	now := time.Now()
	var completedAt *time.Time
	if completed {
		completedAt = &now
	}

	row = courseModels.ModuleProgress{
		UserID:      studentID,
		ModuleID:    moduleID,
		Completed:   completed,
		CompletedAt: completedAt,
	}

	// Concurrent toggles on the same pair race here; last write wins.
	err = s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "module_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"completed":    completed,
			"completed_at": completedAt,
			"updated_at":   now,
		}),
	}).Create(&row).Error
	if err != nil {
		return row, fmt.Errorf("upsert module progress: %w", err)
	}

	if err := s.db.Where("user_id = ? AND module_id = ?", studentID, moduleID).First(&row).Error; err != nil {
		return row, fmt.Errorf("reload module progress: %w", err)
	}
	return row, nil
}

// RemoveStudentCourseProgress deletes the student's progress rows for every
// module of the course, active or not. Called inside the unenroll transaction
// so the enrollment and its progress disappear together.
func (s *Service) RemoveStudentCourseProgress(tx *gorm.DB, studentID, courseID uint) error {
	moduleIDs := tx.Model(&courseModels.Module{}).Select("id").Where("course_id = ?", courseID)
	err := tx.Where("user_id = ? AND module_id IN (?)", studentID, moduleIDs).
		Delete(&courseModels.ModuleProgress{}).Error
	if err != nil {
		return fmt.Errorf("delete module progress: %w", err)
	}
	return nil
}

// RefreshEnrollmentProgressCache recomputes the denormalized
// progress_percentage on every enrollment. Display hint only; nothing on the
// read path trusts it.
func (s *Service) RefreshEnrollmentProgressCache() error {
	moduleCounts, err := s.activeModuleCounts()
	if err != nil {
		return err
	}

	rows, err := s.activeProgress(0)
	if err != nil {
		return err
	}
	completed := completedPerPair(rows)

	var enrollments []courseModels.Enrollment
	if err := s.db.Find(&enrollments).Error; err != nil {
		return fmt.Errorf("fetch enrollments: %w", err)
	}

	now := time.Now()
	for _, e := range enrollments {
		total := moduleCounts[e.CourseID]
		done := completed[pairKey{e.UserID, e.CourseID}]
		pct := roundPercent(done, total)

		updates := map[string]interface{}{"progress_percentage": pct}
		if total > 0 && done == total {
			if e.CompletedAt == nil {
				updates["completed_at"] = now
			}
		} else if e.CompletedAt != nil {
			// Course grew or progress was withdrawn; completion no longer holds.
			updates["completed_at"] = nil
		}

		if pct == e.ProgressPercentage && len(updates) == 1 {
			continue
		}

		err := s.db.Model(&courseModels.Enrollment{}).Where("id = ?", e.ID).Updates(updates).Error
		if err != nil {
			return fmt.Errorf("update enrollment %d: %w", e.ID, err)
		}
	}
	return nil
}
