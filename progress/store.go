package progress

import (
	"fmt"
	"lms/models"
	courseModels "lms/models/course"
	"time"

	"gorm.io/gorm"
)

// Service computes completion metrics and owns the single write path for
// module completion. Every analytics endpoint goes through it so the
// active-course/active-module filters live in exactly one place.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// enrollmentRow is the slice of an enrollment the aggregator needs.
type enrollmentRow struct {
	UserID   uint
	CourseID uint
}

// progressRow is a module-progress row joined with its module's course.
type progressRow struct {
	UserID      uint
	ModuleID    uint
	CourseID    uint
	Completed   bool
	CompletedAt *time.Time
}

// activeEnrollments fetches enrollments whose course is still active.
// studentID and courseID of 0 mean "all".
func (s *Service) activeEnrollments(studentID, courseID uint) ([]enrollmentRow, error) {
	q := s.db.Model(&courseModels.Enrollment{}).
		Select("enrollments.user_id, enrollments.course_id").
		Joins("JOIN courses ON courses.id = enrollments.course_id AND courses.is_active = ?", true)

	if studentID != 0 {
		q = q.Where("enrollments.user_id = ?", studentID)
	}
	if courseID != 0 {
		q = q.Where("enrollments.course_id = ?", courseID)
	}

	var rows []enrollmentRow
	if err := q.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("fetch enrollments: %w", err)
	}
	return rows, nil
}

// activeModuleCounts returns the number of active modules per active course.
// Courses with zero active modules are simply absent from the map.
func (s *Service) activeModuleCounts() (map[uint]int, error) {
	var rows []struct {
		CourseID uint
		Total    int
	}

	err := s.db.Model(&courseModels.Module{}).
		Select("modules.course_id, COUNT(*) AS total").
		Joins("JOIN courses ON courses.id = modules.course_id AND courses.is_active = ?", true).
		Where("modules.is_active = ?", true).
		Group("modules.course_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("fetch module counts: %w", err)
	}

	counts := make(map[uint]int, len(rows))
	for _, r := range rows {
		counts[r.CourseID] = r.Total
	}
	return counts, nil
}

// activeProgress fetches module-progress rows whose module and course are both
// still active. Historical rows against soft-deleted modules or courses are
// invisible here, which keeps them out of every aggregate.
func (s *Service) activeProgress(studentID uint) ([]progressRow, error) {
	q := s.db.Model(&courseModels.ModuleProgress{}).
		Select("module_progresses.user_id, module_progresses.module_id, modules.course_id, module_progresses.completed, module_progresses.completed_at").
		Joins("JOIN modules ON modules.id = module_progresses.module_id AND modules.is_active = ?", true).
		Joins("JOIN courses ON courses.id = modules.course_id AND courses.is_active = ?", true)

	if studentID != 0 {
		q = q.Where("module_progresses.user_id = ?", studentID)
	}

	var rows []progressRow
	if err := q.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("fetch module progress: %w", err)
	}
	return rows, nil
}

// listStudents returns all non-deleted student accounts.
func (s *Service) listStudents() ([]models.User, error) {
	var students []models.User
	err := s.db.Where("role = ? AND is_deleted = ?", models.RoleStudent, false).
		Order("id asc").
		Find(&students).Error
	if err != nil {
		return nil, fmt.Errorf("fetch students: %w", err)
	}
	return students, nil
}

// countStudents counts all non-deleted student accounts.
func (s *Service) countStudents() (int, error) {
	var total int64
	err := s.db.Model(&models.User{}).
		Where("role = ? AND is_deleted = ?", models.RoleStudent, false).
		Count(&total).Error
	if err != nil {
		return 0, fmt.Errorf("count students: %w", err)
	}
	return int(total), nil
}

// countActiveCourses counts courses that are not soft-deleted.
func (s *Service) countActiveCourses() (int, error) {
	var total int64
	err := s.db.Model(&courseModels.Course{}).
		Where("is_active = ?", true).
		Count(&total).Error
	if err != nil {
		return 0, fmt.Errorf("count courses: %w", err)
	}
	return int(total), nil
}
