package services

import (
	"context"
	"testing"

	"learntrack/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccumulationCapsAtTarget(t *testing.T) {
	db, _, achievements := newTestServices(t)

	require.NoError(t, achievements.TrackLessons(db, testUserID, 3))
	require.NoError(t, achievements.TrackLessons(db, testUserID, 7))

	// 3 + 7 lands exactly on the cap for the 5-lesson achievement.
	row, ok := achievementProgress(t, db, "Complete 5 lessons")
	require.True(t, ok)
	assert.Equal(t, 5, row.Progress)
	assert.True(t, row.Completed)

	row, ok = achievementProgress(t, db, "Complete 25 lessons")
	require.True(t, ok)
	assert.Equal(t, 10, row.Progress)
	assert.False(t, row.Completed)
}

func TestFirstBatchLargerThanTargetIsCapped(t *testing.T) {
	db, _, achievements := newTestServices(t)

	require.NoError(t, achievements.TrackLessons(db, testUserID, 8))

	row, ok := achievementProgress(t, db, "Complete 5 lessons")
	require.True(t, ok)
	assert.Equal(t, 5, row.Progress)
	assert.True(t, row.Completed)
}

func TestCompletedRowsAreFrozen(t *testing.T) {
	db, _, achievements := newTestServices(t)

	require.NoError(t, achievements.TrackLessons(db, testUserID, 5))
	require.NoError(t, achievements.TrackLessons(db, testUserID, 10))

	row, ok := achievementProgress(t, db, "Complete 5 lessons")
	require.True(t, ok)
	assert.Equal(t, 5, row.Progress)
	assert.True(t, row.Completed)
}

func TestZeroCountStartsTrackingAtZero(t *testing.T) {
	db, _, achievements := newTestServices(t)

	require.NoError(t, achievements.TrackChapters(db, testUserID, 0))

	row, ok := achievementProgress(t, db, "Complete 1 chapter")
	require.True(t, ok)
	assert.Equal(t, 0, row.Progress)
	assert.False(t, row.Completed)

	// Applying zero again changes nothing.
	require.NoError(t, achievements.TrackChapters(db, testUserID, 0))
	row, _ = achievementProgress(t, db, "Complete 1 chapter")
	assert.Equal(t, 0, row.Progress)
}

func TestTrackCoursesAdvancesTheMatchingAchievement(t *testing.T) {
	db, _, achievements := newTestServices(t)
	course := seededCourse(t, db, "Swift")

	require.NoError(t, achievements.TrackCourses(db, testUserID, []CourseProgress{
		{CourseID: course.ID, CompletedChapters: 1},
	}))
	row, ok := achievementProgress(t, db, "Complete the Swift course")
	require.True(t, ok)
	assert.Equal(t, 1, row.Progress)
	assert.False(t, row.Completed)

	require.NoError(t, achievements.TrackCourses(db, testUserID, []CourseProgress{
		{CourseID: course.ID, CompletedChapters: 1},
	}))
	row, _ = achievementProgress(t, db, "Complete the Swift course")
	assert.Equal(t, 2, row.Progress)
	assert.True(t, row.Completed)

	// Frozen once completed.
	require.NoError(t, achievements.TrackCourses(db, testUserID, []CourseProgress{
		{CourseID: course.ID, CompletedChapters: 1},
	}))
	row, _ = achievementProgress(t, db, "Complete the Swift course")
	assert.Equal(t, 2, row.Progress)

	// Other courses' achievements are untouched.
	_, ok = achievementProgress(t, db, "Complete the Javascript course")
	assert.False(t, ok)
}

func TestTrackCoursesFailsOnMissingAchievement(t *testing.T) {
	db, _, achievements := newTestServices(t)

	err := achievements.TrackCourses(db, testUserID, []CourseProgress{
		{CourseID: 99999, CompletedChapters: 1},
	})

	var internalNotFound *InternalNotFoundError
	require.ErrorAs(t, err, &internalNotFound)
	assert.Contains(t, internalNotFound.ID, "99999")
}

func TestGetUserAchievementsOmitsUntouched(t *testing.T) {
	db, _, achievements := newTestServices(t)

	result, err := achievements.GetUserAchievements(context.Background(), testUserID)
	require.NoError(t, err)
	assert.Empty(t, result)

	require.NoError(t, achievements.TrackLessons(db, testUserID, 1))

	result, err = achievements.GetUserAchievements(context.Background(), testUserID)
	require.NoError(t, err)
	require.Len(t, result, 3)
	for _, achievement := range result {
		assert.Equal(t, 1, achievement.Progress)
		assert.False(t, achievement.Completed)
	}
}

func TestGetUserAchievementsIsPerUser(t *testing.T) {
	db, _, achievements := newTestServices(t)
	require.NoError(t, db.Create(&models.User{ID: 2}).Error)

	require.NoError(t, achievements.TrackLessons(db, testUserID, 2))

	result, err := achievements.GetUserAchievements(context.Background(), 2)
	require.NoError(t, err)
	assert.Empty(t, result)
}
