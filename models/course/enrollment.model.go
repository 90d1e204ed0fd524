package course

import "time"

// Enrollment tracks a student's membership in a course.
//
// ProgressPercentage is a denormalized display hint refreshed by the cron
// scheduler. The aggregator never reads it; live progress is always recomputed
// from ModuleProgress rows.
//
// Enrollments are hard-deleted on unenroll (together with the student's
// ModuleProgress rows for that course), so there is no gorm.Model soft delete
// here that could shadow the unique index.
type Enrollment struct {
	ID                 uint       `json:"id" gorm:"primarykey"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
	UserID             uint       `json:"user_id" gorm:"not null;uniqueIndex:idx_enrollment_user_course"`
	CourseID           uint       `json:"course_id" gorm:"not null;uniqueIndex:idx_enrollment_user_course"`
	ProgressPercentage int        `json:"progress_percentage" gorm:"default:0"`
	CompletedAt        *time.Time `json:"completed_at"`
}
