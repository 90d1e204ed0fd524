package progress

import (
	"testing"
	"time"

	courseModels "lms/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStudentStatsZeroEnrollments(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	student := createStudent(t, db, "idle")

	stats, err := svc.ComputeStudentStats(student.ID)
	require.NoError(t, err)

	assert.Equal(t, 0, stats.EnrolledCourses)
	assert.Equal(t, 0, stats.CompletedCourses)
	assert.Equal(t, 0, stats.TotalModules)
	assert.Equal(t, 0, stats.CompletedModules)
	assert.Equal(t, 0, stats.AverageProgress)
	assert.Nil(t, stats.LastActivity)
}

func TestZeroModuleCourseNeverCompletes(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	student := createStudent(t, db, "alice")
	empty := createCourse(t, db, "Empty Course", true)
	enroll(t, db, student.ID, empty.ID)

	stats, err := svc.ComputeStudentStats(student.ID)
	require.NoError(t, err)

	// Enrolled, but "all zero modules done" must not read as completion.
	assert.Equal(t, 1, stats.EnrolledCourses)
	assert.Equal(t, 0, stats.CompletedCourses)
	assert.Equal(t, 0, stats.TotalModules)
	assert.Equal(t, 0, stats.AverageProgress)
}

func TestSoftDeletedModulesExcluded(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	student := createStudent(t, db, "bob")
	course := createCourse(t, db, "Go Basics", true)
	enroll(t, db, student.ID, course.ID)

	var activeModules []courseModels.Module
	for i := 0; i < 5; i++ {
		activeModules = append(activeModules, createModule(t, db, course.ID, "active", true))
	}
	inactive1 := createModule(t, db, course.ID, "retired", true)
	inactive2 := createModule(t, db, course.ID, "retired", true)

	// Progress recorded while the modules were still active.
	complete(t, svc, student.ID, inactive1.ID)
	complete(t, svc, student.ID, inactive2.ID)
	complete(t, svc, student.ID, activeModules[0].ID)

	require.NoError(t, db.Model(&courseModels.Module{}).
		Where("id IN ?", []uint{inactive1.ID, inactive2.ID}).
		Update("is_active", false).Error)

	stats, err := svc.ComputeStudentStats(student.ID)
	require.NoError(t, err)

	assert.Equal(t, 5, stats.TotalModules)
	assert.Equal(t, 1, stats.CompletedModules)
	assert.Equal(t, 20, stats.AverageProgress)
}

func TestSoftDeletedCourseExcluded(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	student := createStudent(t, db, "carol")

	live := createCourse(t, db, "Live", true)
	dead := createCourse(t, db, "Dead", true)
	enroll(t, db, student.ID, live.ID)
	enroll(t, db, student.ID, dead.ID)

	liveMod := createModule(t, db, live.ID, "m1", true)
	deadMod := createModule(t, db, dead.ID, "m1", true)
	complete(t, svc, student.ID, liveMod.ID)
	complete(t, svc, student.ID, deadMod.ID)

	require.NoError(t, db.Model(&courseModels.Course{}).
		Where("id = ?", dead.ID).Update("is_active", false).Error)

	stats, err := svc.ComputeStudentStats(student.ID)
	require.NoError(t, err)

	// The deactivated course vanishes from every numerator and denominator,
	// even though its enrollment and progress rows still exist.
	assert.Equal(t, 1, stats.EnrolledCourses)
	assert.Equal(t, 1, stats.TotalModules)
	assert.Equal(t, 1, stats.CompletedModules)
	assert.Equal(t, 1, stats.CompletedCourses)
	assert.Equal(t, 100, stats.AverageProgress)
}

func TestRoundingHalfUp(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	student := createStudent(t, db, "dave")
	course := createCourse(t, db, "Thirds", true)
	enroll(t, db, student.ID, course.ID)

	m1 := createModule(t, db, course.ID, "m1", true)
	createModule(t, db, course.ID, "m2", true)
	createModule(t, db, course.ID, "m3", true)
	complete(t, svc, student.ID, m1.ID)

	stats, err := svc.ComputeStudentStats(student.ID)
	require.NoError(t, err)
	assert.Equal(t, 33, stats.AverageProgress) // 100/3 rounds down to 33

	// 1/8 = 12.5 rounds half-up to 13.
	assert.Equal(t, 13, roundPercent(1, 8))
	assert.Equal(t, 0, roundPercent(3, 0))
	assert.Equal(t, 100, roundPercent(7, 7))
}

func TestCourseReopeningUncompletes(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	student := createStudent(t, db, "erin")
	course := createCourse(t, db, "Growing Course", true)
	enroll(t, db, student.ID, course.ID)

	for i := 0; i < 3; i++ {
		m := createModule(t, db, course.ID, "m", true)
		complete(t, svc, student.ID, m.ID)
	}

	stats, err := svc.ComputeStudentStats(student.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.CompletedCourses)

	// Completion is recomputed against the current module set: adding a
	// fourth module un-completes the course.
	fourth := createModule(t, db, course.ID, "m4", true)

	stats, err = svc.ComputeStudentStats(student.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.CompletedCourses)
	assert.Equal(t, 75, stats.AverageProgress)

	complete(t, svc, student.ID, fourth.ID)
	stats, err = svc.ComputeStudentStats(student.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.CompletedCourses)
}

func TestLastActivityIsMaxCompletedAt(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	student := createStudent(t, db, "frank")
	course := createCourse(t, db, "History", true)
	enroll(t, db, student.ID, course.ID)

	m1 := createModule(t, db, course.ID, "m1", true)
	m2 := createModule(t, db, course.ID, "m2", true)

	older := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	newer := time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)
	completeAt(t, db, student.ID, m2.ID, newer)
	completeAt(t, db, student.ID, m1.ID, older)

	stats, err := svc.ComputeStudentStats(student.ID)
	require.NoError(t, err)
	require.NotNil(t, stats.LastActivity)
	assert.True(t, stats.LastActivity.Equal(newer))
}

func TestDashboardEnrollmentWeightedAverage(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	small := createCourse(t, db, "Small", true)
	big := createCourse(t, db, "Big", true)

	smallMod := createModule(t, db, small.ID, "m", true)
	var bigMods []courseModels.Module
	for i := 0; i < 10; i++ {
		bigMods = append(bigMods, createModule(t, db, big.ID, "m", true))
	}

	done := createStudent(t, db, "done")
	slow := createStudent(t, db, "slow")
	enroll(t, db, done.ID, small.ID)
	enroll(t, db, slow.ID, big.ID)

	complete(t, svc, done.ID, smallMod.ID)
	complete(t, svc, slow.ID, bigMods[0].ID)

	stats, err := svc.ComputeSystemDashboardStats()
	require.NoError(t, err)

	// (1+1)/(1+10) = 18%, not the 55% average-of-percentages.
	assert.Equal(t, 18, stats.AverageProgress)
	assert.Equal(t, 2, stats.TotalCourses)
	assert.Equal(t, 2, stats.TotalStudents)
	assert.Equal(t, 11, stats.TotalModules)
	assert.Equal(t, 1, stats.TotalCompletions)
	assert.Equal(t, 2, stats.ActiveStudents)
}

func TestDashboardCountsUnenrolledStudents(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	createStudent(t, db, "ghost") // no enrollments
	course := createCourse(t, db, "C", true)
	createModule(t, db, course.ID, "m", true)
	active := createStudent(t, db, "active")
	enroll(t, db, active.ID, course.ID)

	stats, err := svc.ComputeSystemDashboardStats()
	require.NoError(t, err)

	assert.Equal(t, 2, stats.TotalStudents)
	assert.Equal(t, 1, stats.ActiveStudents)
	assert.Equal(t, 0, stats.AverageProgress)
}

func TestDashboardIgnoresOrphanedProgressRows(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	course := createCourse(t, db, "C", true)
	m1 := createModule(t, db, course.ID, "m1", true)
	m2 := createModule(t, db, course.ID, "m2", true)

	enrolled := createStudent(t, db, "enrolled")
	enroll(t, db, enrolled.ID, course.ID)
	complete(t, svc, enrolled.ID, m1.ID)

	// Leftover completed rows for a student with no enrollment, as a missed
	// cascade would leave behind. They must not enter the average at all.
	outsider := createStudent(t, db, "outsider")
	completeAt(t, db, outsider.ID, m1.ID, time.Now())
	completeAt(t, db, outsider.ID, m2.ID, time.Now())

	stats, err := svc.ComputeSystemDashboardStats()
	require.NoError(t, err)

	assert.Equal(t, 50, stats.AverageProgress)
	assert.Equal(t, 0, stats.TotalCompletions)
	assert.Equal(t, 1, stats.ActiveStudents)
}

func TestCourseStudentMatrix(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	course := createCourse(t, db, "Matrix", true)
	m1 := createModule(t, db, course.ID, "m1", true)
	m2 := createModule(t, db, course.ID, "m2", true)

	a := createStudent(t, db, "a")
	b := createStudent(t, db, "b")
	enroll(t, db, a.ID, course.ID)
	enroll(t, db, b.ID, course.ID)

	complete(t, svc, a.ID, m1.ID)
	complete(t, svc, a.ID, m2.ID)

	matrix, err := svc.ComputeCourseStudentMatrix(course.ID)
	require.NoError(t, err)
	require.Len(t, matrix, 2)

	byID := make(map[uint]StudentCourseStat)
	for _, s := range matrix {
		byID[s.StudentID] = s
	}

	assert.Equal(t, 2, byID[a.ID].CompletedModulesInCourse)
	assert.Equal(t, 100, byID[a.ID].ProgressPercentage)
	assert.Equal(t, 0, byID[b.ID].CompletedModulesInCourse)
	assert.Equal(t, 2, byID[b.ID].TotalModulesInCourse)
	assert.Equal(t, 0, byID[b.ID].ProgressPercentage)
}

func TestCourseStudentMatrixZeroModules(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	course := createCourse(t, db, "Empty", true)
	a := createStudent(t, db, "a")
	enroll(t, db, a.ID, course.ID)

	matrix, err := svc.ComputeCourseStudentMatrix(course.ID)
	require.NoError(t, err)
	require.Len(t, matrix, 1)
	assert.Equal(t, 0, matrix[0].TotalModulesInCourse)
	assert.Equal(t, 0, matrix[0].ProgressPercentage)
}

func TestCourseStudentMatrixNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	_, err := svc.ComputeCourseStudentMatrix(999)
	assert.ErrorIs(t, err, ErrCourseNotFound)

	inactive := createCourse(t, db, "Inactive", false)
	_, err = svc.ComputeCourseStudentMatrix(inactive.ID)
	assert.ErrorIs(t, err, ErrCourseNotFound)
}

func TestComputeAllStudentStats(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	course := createCourse(t, db, "C", true)
	m := createModule(t, db, course.ID, "m", true)

	a := createStudent(t, db, "a")
	b := createStudent(t, db, "b")
	enroll(t, db, a.ID, course.ID)
	complete(t, svc, a.ID, m.ID)

	overviews, err := svc.ComputeAllStudentStats()
	require.NoError(t, err)
	require.Len(t, overviews, 2)

	assert.Equal(t, a.ID, overviews[0].StudentID)
	assert.Equal(t, 100, overviews[0].AverageProgress)
	assert.Equal(t, 1, overviews[0].CompletedCourses)

	assert.Equal(t, b.ID, overviews[1].StudentID)
	assert.Equal(t, 0, overviews[1].EnrolledCourses)
	assert.Equal(t, 0, overviews[1].AverageProgress)
}

func TestStudentCourseSummaries(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	student := createStudent(t, db, "s")
	c1 := createCourse(t, db, "One", true)
	c2 := createCourse(t, db, "Two", true)
	enroll(t, db, student.ID, c1.ID)
	enroll(t, db, student.ID, c2.ID)

	m1 := createModule(t, db, c1.ID, "m", true)
	createModule(t, db, c2.ID, "m", true)
	createModule(t, db, c2.ID, "m", true)
	complete(t, svc, student.ID, m1.ID)

	summaries, err := svc.ComputeStudentCourseSummaries(student.ID)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	byCourse := make(map[uint]CourseProgressSummary)
	for _, s := range summaries {
		byCourse[s.CourseID] = s
	}

	assert.True(t, byCourse[c1.ID].Completed)
	assert.Equal(t, 100, byCourse[c1.ID].ProgressPercentage)
	assert.False(t, byCourse[c2.ID].Completed)
	assert.Equal(t, 2, byCourse[c2.ID].TotalModules)
	assert.Equal(t, 0, byCourse[c2.ID].ProgressPercentage)
}

func TestUnenrollRemovesFromAggregates(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	student := createStudent(t, db, "leaver")
	course := createCourse(t, db, "Dropped", true)
	enrollment := enroll(t, db, student.ID, course.ID)

	m1 := createModule(t, db, course.ID, "m1", true)
	m2 := createModule(t, db, course.ID, "m2", true)
	complete(t, svc, student.ID, m1.ID)
	complete(t, svc, student.ID, m2.ID)

	tx := db.Begin()
	require.NoError(t, svc.RemoveStudentCourseProgress(tx, student.ID, course.ID))
	require.NoError(t, tx.Delete(&enrollment).Error)
	require.NoError(t, tx.Commit().Error)

	assert.Equal(t, int64(0), progressCount(t, db, student.ID, m1.ID))
	assert.Equal(t, int64(0), progressCount(t, db, student.ID, m2.ID))

	stats, err := svc.ComputeStudentStats(student.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.EnrolledCourses)
	assert.Equal(t, 0, stats.TotalModules)
	assert.Equal(t, 0, stats.CompletedModules)

	dash, err := svc.ComputeSystemDashboardStats()
	require.NoError(t, err)
	assert.Equal(t, 0, dash.TotalCompletions)
	assert.Equal(t, 0, dash.ActiveStudents)
}
