package utils

import (
	"errors"
	"fmt"

	"learntrack/models"

	"gorm.io/gorm"
)

// SeedData inserts the reference data the service runs against: the default
// user, three courses of two chapters with three lessons each, the generic
// lesson and chapter achievements, and one completion achievement per course.
// Safe to run on every startup.
func SeedData(db *gorm.DB, defaultUserID int64) error {
	user := models.User{ID: defaultUserID}
	if err := db.FirstOrCreate(&user, models.User{ID: defaultUserID}).Error; err != nil {
		return fmt.Errorf("seeding default user: %w", err)
	}

	courses := make([]*models.Course, 0, 3)
	for _, name := range []string{"Swift", "Javascript", "C#"} {
		course, err := seedCourse(db, name)
		if err != nil {
			return err
		}
		courses = append(courses, course)
	}

	generic := []struct {
		name     string
		category models.AchievementCategory
		target   int
	}{
		{"Complete 5 lessons", models.CategoryLesson, 5},
		{"Complete 25 lessons", models.CategoryLesson, 25},
		{"Complete 50 lessons", models.CategoryLesson, 50},
		{"Complete 1 chapter", models.CategoryChapter, 1},
		{"Complete 5 chapters", models.CategoryChapter, 5},
	}
	for _, a := range generic {
		if err := seedAchievement(db, a.name, a.category, a.target, nil); err != nil {
			return err
		}
	}

	for _, course := range courses {
		name := fmt.Sprintf("Complete the %s course", course.Name)
		courseID := course.ID
		if err := seedAchievement(db, name, models.CategoryCourse, len(course.Chapters), &courseID); err != nil {
			return err
		}
	}

	return nil
}

func seedCourse(db *gorm.DB, name string) (*models.Course, error) {
	var course models.Course
	err := db.Preload("Chapters").Where("name = ?", name).First(&course).Error
	if err == nil {
		return &course, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("looking up course %q: %w", name, err)
	}

	course = models.Course{
		Name: name,
		Chapters: []models.Chapter{
			{Name: "First Chapter", Position: 1, Lessons: threeLessons()},
			{Name: "Second Chapter", Position: 2, Lessons: threeLessons()},
		},
	}
	if err := db.Create(&course).Error; err != nil {
		return nil, fmt.Errorf("seeding course %q: %w", name, err)
	}
	return &course, nil
}

func threeLessons() []models.Lesson {
	return []models.Lesson{
		{Name: "First Lesson", Position: 1},
		{Name: "Second Lesson", Position: 2},
		{Name: "Third Lesson", Position: 3},
	}
}

func seedAchievement(db *gorm.DB, name string, category models.AchievementCategory, target int, courseID *int64) error {
	var achievement models.Achievement
	err := db.Where("name = ?", name).First(&achievement).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("looking up achievement %q: %w", name, err)
	}

	achievement = models.Achievement{
		Name:     name,
		Category: category,
		Target:   target,
		CourseID: courseID,
	}
	if err := db.Create(&achievement).Error; err != nil {
		return fmt.Errorf("seeding achievement %q: %w", name, err)
	}
	return nil
}
