package models

import "time"

type User struct {
	ID        int64 `gorm:"primaryKey"`
	CreatedAt time.Time
}

// UserLesson is an append-only completion history. A lesson can be completed
// any number of times and every completion is kept, so there is no uniqueness
// on (user, lesson).
type UserLesson struct {
	ID          int64 `gorm:"primaryKey"`
	UserID      int64 `gorm:"index:idx_user_lessons_user_lesson;not null"`
	LessonID    int64 `gorm:"index:idx_user_lessons_user_lesson;not null"`
	StartedAt   time.Time
	CompletedAt time.Time
}

// UserChapter exists iff the user has completed every lesson of the chapter.
// The row is written once; its absence means "not yet complete".
type UserChapter struct {
	UserID      int64 `gorm:"primaryKey;autoIncrement:false"`
	ChapterID   int64 `gorm:"primaryKey;autoIncrement:false"`
	CompletedAt time.Time
}

// UserCourse mirrors UserChapter one level up: written once, when the last
// chapter of the course completes.
type UserCourse struct {
	UserID      int64 `gorm:"primaryKey;autoIncrement:false"`
	CourseID    int64 `gorm:"primaryKey;autoIncrement:false"`
	CompletedAt time.Time
}
