package models

import "time"

// CompletedLessonRequest is one element of the POST /user/lessons batch.
// The id only has to be present; whether the lesson exists is checked by the
// progress service and reported as 404, not as a validation failure.
type CompletedLessonRequest struct {
	ID           int64     `json:"id" validate:"required"`
	StartTime    time.Time `json:"startTime" validate:"required"`
	CompleteTime time.Time `json:"completeTime" validate:"required"`
}

type AchievementResponse struct {
	ID        int64 `json:"id"`
	Completed bool  `json:"completed"`
	Progress  int   `json:"progress"`
}

// ErrorResponse is the envelope for every non-2xx response. Validation
// failures populate Errors with field-level messages; not-found and internal
// failures leave it empty.
type ErrorResponse struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
}
