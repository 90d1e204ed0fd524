package progress

import (
	"errors"
	"time"
)

// Sentinel errors returned by the service. Controllers map these to HTTP
// statuses; anything else is an upstream data-access failure.
var (
	ErrCourseNotFound = errors.New("course not found or inactive")
	ErrModuleNotFound = errors.New("module not found or inactive")
	ErrNotEnrolled    = errors.New("student is not enrolled in the module's course")
)

// StudentStats holds the derived completion metrics for one student.
// TotalModules counts the active modules across the student's active enrolled
// courses (the accessible set); it is the denominator for AverageProgress.
type StudentStats struct {
	EnrolledCourses  int        `json:"enrolled_courses"`
	CompletedCourses int        `json:"completed_courses"`
	TotalModules     int        `json:"total_modules"`
	CompletedModules int        `json:"completed_modules"`
	AverageProgress  int        `json:"average_progress"`
	LastActivity     *time.Time `json:"last_activity"`
}

// StudentOverview is a student's identity plus their stats, used by the
// all-students admin listing.
type StudentOverview struct {
	StudentID uint   `json:"student_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	StudentStats
}

// StudentCourseStat is one student's progress within a single course.
type StudentCourseStat struct {
	StudentID                uint   `json:"student_id"`
	Name                     string `json:"name"`
	Email                    string `json:"email"`
	CompletedModulesInCourse int    `json:"completed_modules_in_course"`
	TotalModulesInCourse     int    `json:"total_modules_in_course"`
	ProgressPercentage       int    `json:"progress_percentage"`
}

// CourseProgressSummary is one enrolled course's progress fragment for a
// single student. Completed is recomputed against the course's current active
// module set, so a course that gains a module stops counting as completed.
type CourseProgressSummary struct {
	CourseID           uint `json:"course_id"`
	CompletedModules   int  `json:"completed_modules"`
	TotalModules       int  `json:"total_modules"`
	ProgressPercentage int  `json:"progress_percentage"`
	Completed          bool `json:"completed"`
}

// DashboardStats aggregates across all students and all active courses.
// AverageProgress is enrollment-weighted: total completed module instances
// over total accessible module instances, not an average of per-student
// percentages.
type DashboardStats struct {
	TotalCourses     int `json:"total_courses"`
	TotalStudents    int `json:"total_students"`
	TotalModules     int `json:"total_modules"`
	AverageProgress  int `json:"average_progress"`
	TotalCompletions int `json:"total_completions"`
	ActiveStudents   int `json:"active_students"`
}
