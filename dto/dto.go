package dto

import (
	"github.com/google/uuid"
)

// JobMessage is the transcode request published for the external worker.
type JobMessage struct {
	JobId      uuid.UUID `json:"jobId"`
	ObjectPath string    `json:"objectPath"`
	FileName   string    `json:"fileName"`
}

// StreamToken authorizes one video stream for one user until Expires.
type StreamToken struct {
	VideoID   uuid.UUID `json:"video_id"`
	UserID    uuid.UUID `json:"user_id"`
	Expires   int64     `json:"expires"`
	Signature string    `json:"signature"`
}

type ProgressRequest struct {
	WatchedSeconds int  `json:"watched_seconds" binding:"gte=0"`
	Completed      bool `json:"completed"`
}

type ProgressResponse struct {
	WatchedSeconds  int  `json:"watched_seconds"`
	Completed       bool `json:"completed"`
	ProgressPercent int  `json:"progress_percent"`
}

// QuizSubmissionRequest carries raw answers keyed by question id. Values are
// left untyped: free text for text questions, a choice id for single choice,
// an array of choice ids for multi choice.
type QuizSubmissionRequest struct {
	Answers map[string]interface{} `json:"answers"`
}

type QuizResultResponse struct {
	Score          float64 `json:"score"`
	Passed         bool    `json:"passed"`
	CorrectCount   int     `json:"correct_count"`
	TotalQuestions int     `json:"total_questions"`
}

type CreateVideoRequest struct {
	Title           string     `json:"title" binding:"required"`
	CourseID        *uuid.UUID `json:"course_id"`
	ObjectName      string     `json:"object_name" binding:"required"`
	DurationSeconds int        `json:"duration_seconds" binding:"gte=0"`
	OrderIndex      int        `json:"order_index" binding:"gte=0"`
}

type VideoItem struct {
	ID              uuid.UUID  `json:"id"`
	CourseID        *uuid.UUID `json:"course_id"`
	Title           string     `json:"title"`
	DurationSeconds int        `json:"duration_seconds"`
	ViewsCount      int        `json:"views_count"`
	OrderIndex      int        `json:"order_index"`
	IsPublished     bool       `json:"is_published"`
	WatchedSeconds  int        `json:"watched_seconds"`
	Completed       bool       `json:"completed"`
	ProgressPercent int        `json:"progress_percent"`
}

type VideoDetail struct {
	VideoItem
	StreamToken StreamToken `json:"stream_token"`
}

type CourseItem struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DailyLimit  int       `json:"daily_limit"`
	AllowedDays string    `json:"allowed_days"`
}

type CourseDetail struct {
	CourseItem
	Videos []VideoItem `json:"videos"`
}
