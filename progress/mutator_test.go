package progress

import (
	"testing"
	"time"

	courseModels "lms/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetModuleCompletionUpserts(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	student := createStudent(t, db, "toggler")
	course := createCourse(t, db, "C", true)
	module := createModule(t, db, course.ID, "m", true)
	enroll(t, db, student.ID, course.ID)

	row, err := svc.SetModuleCompletion(student.ID, module.ID, true)
	require.NoError(t, err)
	assert.True(t, row.Completed)
	require.NotNil(t, row.CompletedAt)

	// Completing again leaves exactly one row.
	row, err = svc.SetModuleCompletion(student.ID, module.ID, true)
	require.NoError(t, err)
	assert.True(t, row.Completed)
	assert.Equal(t, int64(1), progressCount(t, db, student.ID, module.ID))

	// Un-completing flips the same row and clears the timestamp.
	row, err = svc.SetModuleCompletion(student.ID, module.ID, false)
	require.NoError(t, err)
	assert.False(t, row.Completed)
	assert.Nil(t, row.CompletedAt)
	assert.Equal(t, int64(1), progressCount(t, db, student.ID, module.ID))
}

func TestRecompletingRefreshesTimestamp(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	student := createStudent(t, db, "repeat")
	course := createCourse(t, db, "C", true)
	module := createModule(t, db, course.ID, "m", true)
	enroll(t, db, student.ID, course.ID)

	first, err := svc.SetModuleCompletion(student.ID, module.ID, true)
	require.NoError(t, err)
	require.NotNil(t, first.CompletedAt)

	time.Sleep(10 * time.Millisecond)

	second, err := svc.SetModuleCompletion(student.ID, module.ID, true)
	require.NoError(t, err)
	require.NotNil(t, second.CompletedAt)
	assert.True(t, second.CompletedAt.After(*first.CompletedAt))
}

func TestSetModuleCompletionRejectsUnknownModule(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	student := createStudent(t, db, "s")
	_, err := svc.SetModuleCompletion(student.ID, 12345, true)
	assert.ErrorIs(t, err, ErrModuleNotFound)
}

func TestSetModuleCompletionRejectsInactiveModule(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	student := createStudent(t, db, "s")
	course := createCourse(t, db, "C", true)
	module := createModule(t, db, course.ID, "m", false)
	enroll(t, db, student.ID, course.ID)

	_, err := svc.SetModuleCompletion(student.ID, module.ID, true)
	assert.ErrorIs(t, err, ErrModuleNotFound)
	assert.Equal(t, int64(0), progressCount(t, db, student.ID, module.ID))
}

func TestSetModuleCompletionRejectsInactiveCourse(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	student := createStudent(t, db, "s")
	course := createCourse(t, db, "C", false)
	module := createModule(t, db, course.ID, "m", true)
	enroll(t, db, student.ID, course.ID)

	_, err := svc.SetModuleCompletion(student.ID, module.ID, true)
	assert.ErrorIs(t, err, ErrModuleNotFound)
}

func TestSetModuleCompletionRequiresEnrollment(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	student := createStudent(t, db, "outsider")
	course := createCourse(t, db, "C", true)
	module := createModule(t, db, course.ID, "m", true)

	_, err := svc.SetModuleCompletion(student.ID, module.ID, true)
	assert.ErrorIs(t, err, ErrNotEnrolled)
	assert.Equal(t, int64(0), progressCount(t, db, student.ID, module.ID))
}

func TestRefreshEnrollmentProgressCache(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	student := createStudent(t, db, "cached")
	course := createCourse(t, db, "C", true)
	enrollment := enroll(t, db, student.ID, course.ID)

	m1 := createModule(t, db, course.ID, "m1", true)
	m2 := createModule(t, db, course.ID, "m2", true)
	complete(t, svc, student.ID, m1.ID)

	require.NoError(t, svc.RefreshEnrollmentProgressCache())

	var refreshed courseModels.Enrollment
	require.NoError(t, db.First(&refreshed, enrollment.ID).Error)
	assert.Equal(t, 50, refreshed.ProgressPercentage)
	assert.Nil(t, refreshed.CompletedAt)

	complete(t, svc, student.ID, m2.ID)
	require.NoError(t, svc.RefreshEnrollmentProgressCache())

	// Fresh struct per reload: scanning a NULL completed_at into an already
	// populated *time.Time leaves the old value in place.
	var completedState courseModels.Enrollment
	require.NoError(t, db.First(&completedState, enrollment.ID).Error)
	assert.Equal(t, 100, completedState.ProgressPercentage)
	assert.NotNil(t, completedState.CompletedAt)

	// A new module reopens the course; the cached completion clears.
	createModule(t, db, course.ID, "m3", true)
	require.NoError(t, svc.RefreshEnrollmentProgressCache())

	var reopenedState courseModels.Enrollment
	require.NoError(t, db.First(&reopenedState, enrollment.ID).Error)
	assert.Equal(t, 67, reopenedState.ProgressPercentage)
	assert.Nil(t, reopenedState.CompletedAt)
}
