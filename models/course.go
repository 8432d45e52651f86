package models

// Course, Chapter and Lesson are long-lived reference data, seeded once at
// startup. Users never create or modify them through the API.

type Course struct {
	ID       int64     `gorm:"primaryKey" json:"id"`
	Name     string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Chapters []Chapter `json:"chapters,omitempty"`
}

type Chapter struct {
	ID       int64    `gorm:"primaryKey" json:"id"`
	CourseID int64    `gorm:"index;not null" json:"courseId"`
	Name     string   `gorm:"size:100;not null" json:"name"`
	Position int      `json:"position"`
	Lessons  []Lesson `json:"lessons,omitempty"`
}

type Lesson struct {
	ID        int64  `gorm:"primaryKey" json:"id"`
	ChapterID int64  `gorm:"index;not null" json:"chapterId"`
	Name      string `gorm:"size:100;not null" json:"name"`
	Position  int    `json:"position"`
}
