package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"learntrack/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AchievementService advances per-user achievement progress with a capped,
// monotonic accumulation rule: progress only grows, never passes the target,
// and a completed row is frozen. The Track methods run inside the progress
// transaction; the read path is a plain projection.
type AchievementService struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewAchievementService(db *gorm.DB, log *zap.Logger) *AchievementService {
	return &AchievementService{db: db, log: log}
}

// GetUserAchievements returns progress for the achievements the user has
// started tracking. Untouched achievements are omitted, not returned as
// zero progress.
func (s *AchievementService) GetUserAchievements(ctx context.Context, userID int64) ([]models.AchievementResponse, error) {
	var rows []models.UserAchievement
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("achievement_id").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("loading user achievements: %w", err)
	}

	achievements := make([]models.AchievementResponse, 0, len(rows))
	for _, row := range rows {
		achievements = append(achievements, models.AchievementResponse{
			ID:        row.AchievementID,
			Completed: row.Completed,
			Progress:  row.Progress,
		})
	}
	return achievements, nil
}

// TrackLessons applies the count of lessons newly completed in this batch to
// every lesson-category achievement.
func (s *AchievementService) TrackLessons(tx *gorm.DB, userID int64, completed int) error {
	return s.trackCategory(tx, userID, models.CategoryLesson, completed)
}

// TrackChapters applies the count of chapters completed in this batch to
// every chapter-category achievement. Progress is a running sum across
// calls, so the count here is per batch, never a lifetime total.
func (s *AchievementService) TrackChapters(tx *gorm.DB, userID int64, completed int) error {
	return s.trackCategory(tx, userID, models.CategoryChapter, completed)
}

// TrackCourses applies each course delta to that course's achievement. A
// course with chapter completions but no achievement is broken reference
// data, reported as an internal not-found.
func (s *AchievementService) TrackCourses(tx *gorm.DB, userID int64, progresses []CourseProgress) error {
	for _, p := range progresses {
		var achievement models.Achievement
		err := tx.Where("category = ? AND course_id = ?", models.CategoryCourse, p.CourseID).
			First(&achievement).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &InternalNotFoundError{NotFoundError{
				Entity: "course achievement",
				ID:     strconv.FormatInt(p.CourseID, 10),
			}}
		}
		if err != nil {
			return fmt.Errorf("loading course achievement: %w", err)
		}

		if err := s.advance(tx, userID, achievement, p.CompletedChapters); err != nil {
			return err
		}
	}
	return nil
}

func (s *AchievementService) trackCategory(tx *gorm.DB, userID int64, category models.AchievementCategory, completed int) error {
	var achievements []models.Achievement
	if err := tx.Where("category = ?", category).Find(&achievements).Error; err != nil {
		return fmt.Errorf("loading %s achievements: %w", category, err)
	}

	for _, achievement := range achievements {
		if err := s.advance(tx, userID, achievement, completed); err != nil {
			return err
		}
	}
	return nil
}

// advance adds completed to the user's progress row, capping at the target.
func (s *AchievementService) advance(tx *gorm.DB, userID int64, achievement models.Achievement, completed int) error {
	var row models.UserAchievement
	err := tx.Where("user_id = ? AND achievement_id = ?", userID, achievement.ID).
		First(&row).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		row = models.UserAchievement{
			UserID:        userID,
			AchievementID: achievement.ID,
			Progress:      min(completed, achievement.Target),
			Completed:     completed >= achievement.Target,
		}
		if err := tx.Create(&row).Error; err != nil {
			return fmt.Errorf("creating achievement progress: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("loading achievement progress: %w", err)
	}

	// Completed rows are frozen.
	if row.Completed || completed == 0 {
		return nil
	}

	progress := min(row.Progress+completed, achievement.Target)
	if err := tx.Model(&models.UserAchievement{}).
		Where("user_id = ? AND achievement_id = ?", userID, achievement.ID).
		Updates(map[string]interface{}{
			"progress":  progress,
			"completed": progress >= achievement.Target,
		}).Error; err != nil {
		return fmt.Errorf("updating achievement progress: %w", err)
	}
	return nil
}
