package models

type AchievementCategory string

const (
	CategoryLesson  AchievementCategory = "lesson"
	CategoryChapter AchievementCategory = "chapter"
	CategoryCourse  AchievementCategory = "course"
)

type Achievement struct {
	ID       int64               `gorm:"primaryKey"`
	Name     string              `gorm:"size:100;uniqueIndex;not null"`
	Category AchievementCategory `gorm:"size:20;index;not null"`
	Target   int                 `gorm:"not null"`
	// Only course achievements reference a course, and each course has at
	// most one achievement. Null for the lesson and chapter categories.
	CourseID *int64 `gorm:"uniqueIndex"`
}

// UserAchievement tracks one user's progress toward one achievement.
// Progress never decreases, never exceeds the target, and the row is frozen
// once Completed is set.
type UserAchievement struct {
	UserID        int64 `gorm:"primaryKey;autoIncrement:false"`
	AchievementID int64 `gorm:"primaryKey;autoIncrement:false"`
	Progress      int
	Completed     bool
}
