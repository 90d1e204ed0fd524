package progress

import (
	"math"

	courseModels "lms/models/course"
)

// pairKey identifies one (student, course) enrollment.
type pairKey struct {
	UserID   uint
	CourseID uint
}

// roundPercent produces a percentage rounded half-up, defined as 0 when the
// denominator is 0. Rounding happens only here, at the point a percentage is
// produced; all intermediate sums stay exact integers.
func roundPercent(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(completed) * 100 / float64(total)))
}

// completedPerPair groups completed progress rows by (student, course).
func completedPerPair(rows []progressRow) map[pairKey]int {
	completed := make(map[pairKey]int)
	for _, r := range rows {
		if r.Completed {
			completed[pairKey{r.UserID, r.CourseID}]++
		}
	}
	return completed
}

// aggregateStudent computes one student's stats from already-fetched rows.
// Tolerant of empty input: a student with zero enrollments degrades to all
// zeroes and a nil LastActivity.
func aggregateStudent(studentID uint, enrollments []enrollmentRow, moduleCounts map[uint]int, rows []progressRow) StudentStats {
	stats := StudentStats{}
	completedIn := make(map[uint]int)

	for _, r := range rows {
		if r.UserID != studentID || !r.Completed {
			continue
		}
		stats.CompletedModules++
		completedIn[r.CourseID]++
		if r.CompletedAt != nil && (stats.LastActivity == nil || r.CompletedAt.After(*stats.LastActivity)) {
			t := *r.CompletedAt
			stats.LastActivity = &t
		}
	}

	for _, e := range enrollments {
		if e.UserID != studentID {
			continue
		}
		stats.EnrolledCourses++
		total := moduleCounts[e.CourseID]
		stats.TotalModules += total
		// A course with zero active modules can never count as completed.
		if total > 0 && completedIn[e.CourseID] == total {
			stats.CompletedCourses++
		}
	}

	stats.AverageProgress = roundPercent(stats.CompletedModules, stats.TotalModules)
	return stats
}

// ComputeStudentStats computes completion metrics for a single student.
// Callers must have already validated that studentID refers to a student
// account; an unknown id yields empty stats here, not an error.
func (s *Service) ComputeStudentStats(studentID uint) (StudentStats, error) {
	enrollments, err := s.activeEnrollments(studentID, 0)
	if err != nil {
		return StudentStats{}, err
	}

	moduleCounts, err := s.activeModuleCounts()
	if err != nil {
		return StudentStats{}, err
	}

	rows, err := s.activeProgress(studentID)
	if err != nil {
		return StudentStats{}, err
	}

	return aggregateStudent(studentID, enrollments, moduleCounts, rows), nil
}

// ComputeAllStudentStats computes stats for every student in one fetch pass
// instead of a per-student query loop. Any failed read fails the whole batch;
// partial results would silently misreport students as having no progress.
func (s *Service) ComputeAllStudentStats() ([]StudentOverview, error) {
	students, err := s.listStudents()
	if err != nil {
		return nil, err
	}

	enrollments, err := s.activeEnrollments(0, 0)
	if err != nil {
		return nil, err
	}

	moduleCounts, err := s.activeModuleCounts()
	if err != nil {
		return nil, err
	}

	rows, err := s.activeProgress(0)
	if err != nil {
		return nil, err
	}

	overviews := make([]StudentOverview, len(students))
	for i, st := range students {
		overviews[i] = StudentOverview{
			StudentID:    st.ID,
			Name:         st.Name,
			Email:        st.Email,
			StudentStats: aggregateStudent(st.ID, enrollments, moduleCounts, rows),
		}
	}
	return overviews, nil
}

// ComputeStudentCourseSummaries returns the per-course progress fragment for
// each of the student's active enrolled courses.
func (s *Service) ComputeStudentCourseSummaries(studentID uint) ([]CourseProgressSummary, error) {
	enrollments, err := s.activeEnrollments(studentID, 0)
	if err != nil {
		return nil, err
	}

	moduleCounts, err := s.activeModuleCounts()
	if err != nil {
		return nil, err
	}

	rows, err := s.activeProgress(studentID)
	if err != nil {
		return nil, err
	}
	completed := completedPerPair(rows)

	summaries := make([]CourseProgressSummary, 0, len(enrollments))
	for _, e := range enrollments {
		total := moduleCounts[e.CourseID]
		done := completed[pairKey{studentID, e.CourseID}]
		summaries = append(summaries, CourseProgressSummary{
			CourseID:           e.CourseID,
			CompletedModules:   done,
			TotalModules:       total,
			ProgressPercentage: roundPercent(done, total),
			Completed:          total > 0 && done == total,
		})
	}
	return summaries, nil
}

// ComputeCourseStudentMatrix returns per-student progress for every student
// enrolled in the given course. Returns ErrCourseNotFound when the course is
// missing or soft-deleted.
func (s *Service) ComputeCourseStudentMatrix(courseID uint) ([]StudentCourseStat, error) {
	var c courseModels.Course
	if err := s.db.Where("id = ? AND is_active = ?", courseID, true).First(&c).Error; err != nil {
		return nil, ErrCourseNotFound
	}

	enrollments, err := s.activeEnrollments(0, courseID)
	if err != nil {
		return nil, err
	}

	moduleCounts, err := s.activeModuleCounts()
	if err != nil {
		return nil, err
	}
	totalModules := moduleCounts[courseID]

	rows, err := s.activeProgress(0)
	if err != nil {
		return nil, err
	}
	completed := completedPerPair(rows)

	students, err := s.listStudents()
	if err != nil {
		return nil, err
	}
	identity := make(map[uint]StudentOverview, len(students))
	for _, st := range students {
		identity[st.ID] = StudentOverview{StudentID: st.ID, Name: st.Name, Email: st.Email}
	}

	result := make([]StudentCourseStat, 0, len(enrollments))
	for _, e := range enrollments {
		done := completed[pairKey{e.UserID, courseID}]
		stat := StudentCourseStat{
			StudentID:                e.UserID,
			CompletedModulesInCourse: done,
			TotalModulesInCourse:     totalModules,
			ProgressPercentage:       roundPercent(done, totalModules),
		}
		if id, ok := identity[e.UserID]; ok {
			stat.Name = id.Name
			stat.Email = id.Email
		}
		result = append(result, stat)
	}
	return result, nil
}

// ComputeSystemDashboardStats aggregates across all students and all active
// courses in one pass. The average is enrollment-weighted: every accessible
// module instance carries the same weight regardless of which course or
// student it belongs to.
func (s *Service) ComputeSystemDashboardStats() (DashboardStats, error) {
	stats := DashboardStats{}

	totalCourses, err := s.countActiveCourses()
	if err != nil {
		return stats, err
	}
	stats.TotalCourses = totalCourses

	totalStudents, err := s.countStudents()
	if err != nil {
		return stats, err
	}
	stats.TotalStudents = totalStudents

	moduleCounts, err := s.activeModuleCounts()
	if err != nil {
		return stats, err
	}
	for _, n := range moduleCounts {
		stats.TotalModules += n
	}

	enrollments, err := s.activeEnrollments(0, 0)
	if err != nil {
		return stats, err
	}

	rows, err := s.activeProgress(0)
	if err != nil {
		return stats, err
	}
	completed := completedPerPair(rows)

	activeStudents := make(map[uint]bool)
	accessibleTotal := 0
	completedTotal := 0

	for _, e := range enrollments {
		key := pairKey{e.UserID, e.CourseID}
		activeStudents[e.UserID] = true

		total := moduleCounts[e.CourseID]
		done := completed[key]
		accessibleTotal += total
		completedTotal += done
		if total > 0 && done == total {
			stats.TotalCompletions++
		}
	}

	// Progress rows without a matching enrollment never enter the sums above,
	// so stale rows a cascade missed cannot skew the average.
	stats.AverageProgress = roundPercent(completedTotal, accessibleTotal)
	stats.ActiveStudents = len(activeStudents)
	return stats, nil
}
