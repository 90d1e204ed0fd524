package progress

import (
	"fmt"
	"testing"
	"time"

	"lms/models"
	courseModels "lms/models/course"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database with the full schema.
// MaxOpenConns(1) keeps every query on the single connection holding the
// in-memory store.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&courseModels.Course{},
		&courseModels.Module{},
		&courseModels.Enrollment{},
		&courseModels.ModuleProgress{},
	))

	return db
}

var studentSeq int

func createStudent(t *testing.T, db *gorm.DB, name string) models.User {
	t.Helper()
	studentSeq++
	user := models.User{
		Name:     name,
		Email:    fmt.Sprintf("%s-%d@example.com", name, studentSeq),
		Password: "x",
		Role:     models.RoleStudent,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createCourse(t *testing.T, db *gorm.DB, title string, active bool) courseModels.Course {
	t.Helper()
	course := courseModels.Course{Title: title, IsActive: active}
	require.NoError(t, db.Create(&course).Error)
	if !active {
		// IsActive carries `gorm:"default:true"`, so Create drops the zero
		// value; flip the column explicitly to persist an inactive fixture.
		require.NoError(t, db.Model(&courseModels.Course{}).
			Where("id = ?", course.ID).Update("is_active", false).Error)
	}
	return course
}

func createModule(t *testing.T, db *gorm.DB, courseID uint, title string, active bool) courseModels.Module {
	t.Helper()
	module := courseModels.Module{
		CourseID: courseID,
		Title:    title,
		VideoURL: "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		IsActive: active,
	}
	require.NoError(t, db.Create(&module).Error)
	if !active {
		// Same default-tag trap as createCourse: persist the inactive flag
		// with a column update.
		require.NoError(t, db.Model(&courseModels.Module{}).
			Where("id = ?", module.ID).Update("is_active", false).Error)
	}
	return module
}

func enroll(t *testing.T, db *gorm.DB, userID, courseID uint) courseModels.Enrollment {
	t.Helper()
	enrollment := courseModels.Enrollment{UserID: userID, CourseID: courseID}
	require.NoError(t, db.Create(&enrollment).Error)
	return enrollment
}

func complete(t *testing.T, svc *Service, userID, moduleID uint) {
	t.Helper()
	_, err := svc.SetModuleCompletion(userID, moduleID, true)
	require.NoError(t, err)
}

func progressCount(t *testing.T, db *gorm.DB, userID, moduleID uint) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&courseModels.ModuleProgress{}).
		Where("user_id = ? AND module_id = ?", userID, moduleID).
		Count(&n).Error)
	return n
}

// completeAt inserts a completed row with an explicit timestamp, bypassing the
// mutator, for last-activity ordering tests.
func completeAt(t *testing.T, db *gorm.DB, userID, moduleID uint, at time.Time) {
	t.Helper()
	row := courseModels.ModuleProgress{
		UserID:      userID,
		ModuleID:    moduleID,
		Completed:   true,
		CompletedAt: &at,
	}
	require.NoError(t, db.Create(&row).Error)
}
