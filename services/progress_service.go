package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"learntrack/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProgressService resolves the completion cascade: it records lesson
// completions, derives chapter and course completion from them, and feeds
// the resulting deltas to the achievement service. One Track call is one
// database transaction; either everything persists or nothing does.
type ProgressService struct {
	db           *gorm.DB
	achievements *AchievementService
	log          *zap.Logger
}

func NewProgressService(db *gorm.DB, achievements *AchievementService, log *zap.Logger) *ProgressService {
	return &ProgressService{db: db, achievements: achievements, log: log}
}

// completedLesson is a lesson that gained its first completion in the
// current batch. Repeat completions and in-batch duplicates never appear
// here, so downstream counting cannot double-apply.
type completedLesson struct {
	LessonID    int64
	ChapterID   int64
	CompletedAt time.Time
}

// ChapterProgress is emitted for every chapter touched by the batch.
// CompletedAt is set only when the chapter became complete in this call;
// a nil value still matters because the owning course must be re-checked.
type ChapterProgress struct {
	CourseID    int64
	CompletedAt *time.Time
}

// CourseProgress is emitted for every course touched by a chapter delta.
// CompletedChapters counts chapters of this course completed in this batch,
// not the user's lifetime total.
type CourseProgress struct {
	CourseID          int64
	CompletedChapters int
}

func (s *ProgressService) Track(ctx context.Context, userID int64, completions []models.CompletedLessonRequest) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "user", ID: strconv.FormatInt(userID, 10)}
			}
			return fmt.Errorf("loading user: %w", err)
		}

		newlyCompleted, err := s.trackLessons(tx, userID, completions)
		if err != nil {
			return err
		}
		chapterProgress, err := s.trackChapters(tx, userID, newlyCompleted)
		if err != nil {
			return err
		}
		courseProgress, err := s.trackCourses(tx, userID, chapterProgress)
		if err != nil {
			return err
		}

		completedChapters := 0
		for _, cp := range chapterProgress {
			if cp.CompletedAt != nil {
				completedChapters++
			}
		}

		if err := s.achievements.TrackLessons(tx, userID, len(newlyCompleted)); err != nil {
			return err
		}
		if err := s.achievements.TrackChapters(tx, userID, completedChapters); err != nil {
			return err
		}
		if err := s.achievements.TrackCourses(tx, userID, courseProgress); err != nil {
			return err
		}

		s.log.Debug("tracked lesson batch",
			zap.Int64("user_id", userID),
			zap.Int("completions", len(completions)),
			zap.Int("newly_completed_lessons", len(newlyCompleted)),
			zap.Int("completed_chapters", completedChapters),
		)
		return nil
	})
}

// trackLessons validates the batch against known lessons, appends one
// history row per input completion and returns the lessons that were
// completed for the first time.
func (s *ProgressService) trackLessons(tx *gorm.DB, userID int64, completions []models.CompletedLessonRequest) ([]completedLesson, error) {
	ids := make([]int64, 0, len(completions))
	seen := make(map[int64]bool, len(completions))
	for _, c := range completions {
		if !seen[c.ID] {
			seen[c.ID] = true
			ids = append(ids, c.ID)
		}
	}

	var lessons []models.Lesson
	if err := tx.Where("id IN ?", ids).Find(&lessons).Error; err != nil {
		return nil, fmt.Errorf("loading lessons: %w", err)
	}
	chapterByLesson := make(map[int64]int64, len(lessons))
	for _, lesson := range lessons {
		chapterByLesson[lesson.ID] = lesson.ChapterID
	}
	if len(lessons) != len(ids) {
		missing := make([]string, 0, len(ids)-len(lessons))
		for _, id := range ids {
			if _, ok := chapterByLesson[id]; !ok {
				missing = append(missing, strconv.FormatInt(id, 10))
			}
		}
		return nil, &NotFoundError{Entity: "lesson", ID: strings.Join(missing, ",")}
	}

	var priorIDs []int64
	if err := tx.Model(&models.UserLesson{}).
		Where("user_id = ? AND lesson_id IN ?", userID, ids).
		Distinct().
		Pluck("lesson_id", &priorIDs).Error; err != nil {
		return nil, fmt.Errorf("loading prior completions: %w", err)
	}
	prior := make(map[int64]bool, len(priorIDs))
	for _, id := range priorIDs {
		prior[id] = true
	}

	rows := make([]models.UserLesson, 0, len(completions))
	counted := make(map[int64]bool, len(completions))
	var newlyCompleted []completedLesson
	for _, c := range completions {
		// Repeat completions are kept as history rows but only a lesson's
		// first ever completion counts toward achievements.
		rows = append(rows, models.UserLesson{
			UserID:      userID,
			LessonID:    c.ID,
			StartedAt:   c.StartTime,
			CompletedAt: c.CompleteTime,
		})
		if !prior[c.ID] && !counted[c.ID] {
			counted[c.ID] = true
			newlyCompleted = append(newlyCompleted, completedLesson{
				LessonID:    c.ID,
				ChapterID:   chapterByLesson[c.ID],
				CompletedAt: c.CompleteTime,
			})
		}
	}
	if len(rows) > 0 {
		if err := tx.Create(&rows).Error; err != nil {
			return nil, fmt.Errorf("recording lesson completions: %w", err)
		}
	}

	return newlyCompleted, nil
}

// trackChapters re-derives completion for every chapter touched by a newly
// completed lesson. Chapter completion is never cached: it is recomputed
// from the lesson history on every call.
func (s *ProgressService) trackChapters(tx *gorm.DB, userID int64, newlyCompleted []completedLesson) ([]ChapterProgress, error) {
	chapterIDs := make([]int64, 0, len(newlyCompleted))
	seen := make(map[int64]bool, len(newlyCompleted))
	for _, lesson := range newlyCompleted {
		if !seen[lesson.ChapterID] {
			seen[lesson.ChapterID] = true
			chapterIDs = append(chapterIDs, lesson.ChapterID)
		}
	}
	if len(chapterIDs) == 0 {
		return nil, nil
	}

	var chapters []models.Chapter
	if err := tx.Preload("Lessons").Where("id IN ?", chapterIDs).Find(&chapters).Error; err != nil {
		return nil, fmt.Errorf("loading chapters: %w", err)
	}

	var completedChapterIDs []int64
	if err := tx.Model(&models.UserChapter{}).
		Where("user_id = ? AND chapter_id IN ?", userID, chapterIDs).
		Pluck("chapter_id", &completedChapterIDs).Error; err != nil {
		return nil, fmt.Errorf("loading chapter completions: %w", err)
	}
	alreadyComplete := make(map[int64]bool, len(completedChapterIDs))
	for _, id := range completedChapterIDs {
		alreadyComplete[id] = true
	}

	progress := make([]ChapterProgress, 0, len(chapters))
	for _, chapter := range chapters {
		lessonIDs := make([]int64, 0, len(chapter.Lessons))
		for _, lesson := range chapter.Lessons {
			lessonIDs = append(lessonIDs, lesson.ID)
		}

		var completedLessons int64
		if err := tx.Model(&models.UserLesson{}).
			Where("user_id = ? AND lesson_id IN ?", userID, lessonIDs).
			Distinct("lesson_id").
			Count(&completedLessons).Error; err != nil {
			return nil, fmt.Errorf("counting completed lessons: %w", err)
		}

		if completedLessons < int64(len(lessonIDs)) || alreadyComplete[chapter.ID] {
			progress = append(progress, ChapterProgress{CourseID: chapter.CourseID})
			continue
		}

		completedAt := latestCompletion(newlyCompleted, chapter.ID)
		row := models.UserChapter{UserID: userID, ChapterID: chapter.ID, CompletedAt: completedAt}
		result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&row)
		if result.Error != nil {
			return nil, fmt.Errorf("recording chapter completion: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			// A concurrent batch won the insert; count nothing here.
			progress = append(progress, ChapterProgress{CourseID: chapter.CourseID})
			continue
		}
		progress = append(progress, ChapterProgress{CourseID: chapter.CourseID, CompletedAt: &completedAt})
	}

	return progress, nil
}

// trackCourses re-derives completion for every course referenced by a
// chapter delta and emits the per-course completed-chapter counts the
// course achievements accumulate.
func (s *ProgressService) trackCourses(tx *gorm.DB, userID int64, chapterProgress []ChapterProgress) ([]CourseProgress, error) {
	courseIDs := make([]int64, 0, len(chapterProgress))
	seen := make(map[int64]bool, len(chapterProgress))
	for _, cp := range chapterProgress {
		if !seen[cp.CourseID] {
			seen[cp.CourseID] = true
			courseIDs = append(courseIDs, cp.CourseID)
		}
	}
	if len(courseIDs) == 0 {
		return nil, nil
	}

	var courses []models.Course
	if err := tx.Preload("Chapters").Where("id IN ?", courseIDs).Find(&courses).Error; err != nil {
		return nil, fmt.Errorf("loading courses: %w", err)
	}

	progress := make([]CourseProgress, 0, len(courses))
	for _, course := range courses {
		var completedInBatch int
		var completedAt *time.Time
		for _, cp := range chapterProgress {
			if cp.CourseID != course.ID || cp.CompletedAt == nil {
				continue
			}
			completedInBatch++
			if completedAt == nil || cp.CompletedAt.After(*completedAt) {
				completedAt = cp.CompletedAt
			}
		}

		complete, err := s.courseComplete(tx, userID, course)
		if err != nil {
			return nil, err
		}
		if complete && completedAt != nil {
			row := models.UserCourse{UserID: userID, CourseID: course.ID, CompletedAt: *completedAt}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
				return nil, fmt.Errorf("recording course completion: %w", err)
			}
		}

		progress = append(progress, CourseProgress{CourseID: course.ID, CompletedChapters: completedInBatch})
	}

	return progress, nil
}

func (s *ProgressService) courseComplete(tx *gorm.DB, userID int64, course models.Course) (bool, error) {
	chapterIDs := make([]int64, 0, len(course.Chapters))
	for _, chapter := range course.Chapters {
		chapterIDs = append(chapterIDs, chapter.ID)
	}

	var completedChapters int64
	if err := tx.Model(&models.UserChapter{}).
		Where("user_id = ? AND chapter_id IN ?", userID, chapterIDs).
		Count(&completedChapters).Error; err != nil {
		return false, fmt.Errorf("counting completed chapters: %w", err)
	}
	return completedChapters == int64(len(chapterIDs)), nil
}

func latestCompletion(newlyCompleted []completedLesson, chapterID int64) time.Time {
	var latest time.Time
	for _, lesson := range newlyCompleted {
		if lesson.ChapterID == chapterID && lesson.CompletedAt.After(latest) {
			latest = lesson.CompletedAt
		}
	}
	return latest
}
