package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	"learntrack/models"
	"learntrack/utils"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testUserID int64 = 1

// openTestDB opens a fresh in-memory database seeded with the reference
// data. The database is named after the test so parallel tests never share
// state.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, utils.AutoMigrate(db))
	require.NoError(t, utils.SeedData(db, testUserID))
	return db
}

func newTestServices(t *testing.T) (*gorm.DB, *ProgressService, *AchievementService) {
	t.Helper()

	db := openTestDB(t)
	achievements := NewAchievementService(db, zap.NewNop())
	progress := NewProgressService(db, achievements, zap.NewNop())
	return db, progress, achievements
}

// seededCourse loads a seeded course with its chapters and lessons in a
// deterministic order.
func seededCourse(t *testing.T, db *gorm.DB, name string) models.Course {
	t.Helper()

	var course models.Course
	require.NoError(t, db.Preload("Chapters.Lessons").Where("name = ?", name).First(&course).Error)
	sort.Slice(course.Chapters, func(i, j int) bool { return course.Chapters[i].ID < course.Chapters[j].ID })
	for i := range course.Chapters {
		lessons := course.Chapters[i].Lessons
		sort.Slice(lessons, func(a, b int) bool { return lessons[a].ID < lessons[b].ID })
	}
	return course
}

func completionOf(lessonID int64, completedAt time.Time) models.CompletedLessonRequest {
	return models.CompletedLessonRequest{
		ID:           lessonID,
		StartTime:    completedAt.Add(-time.Hour),
		CompleteTime: completedAt,
	}
}

func completionsOf(lessons []models.Lesson, completedAt time.Time) []models.CompletedLessonRequest {
	completions := make([]models.CompletedLessonRequest, 0, len(lessons))
	for _, lesson := range lessons {
		completions = append(completions, completionOf(lesson.ID, completedAt))
	}
	return completions
}

// achievementProgress returns the user's progress row for the named
// achievement, reporting whether it exists at all.
func achievementProgress(t *testing.T, db *gorm.DB, name string) (models.UserAchievement, bool) {
	t.Helper()

	var achievement models.Achievement
	require.NoError(t, db.Where("name = ?", name).First(&achievement).Error)

	var row models.UserAchievement
	err := db.Where("user_id = ? AND achievement_id = ?", testUserID, achievement.ID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.UserAchievement{}, false
	}
	require.NoError(t, err)
	return row, true
}

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()

	var count int64
	require.NoError(t, db.Model(model).Count(&count).Error)
	return count
}
