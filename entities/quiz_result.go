package entities

import (
	"time"

	"github.com/google/uuid"
)

// QuizResult is one graded submission. Rows are append-only; every
// submission creates a new attempt.
type QuizResult struct {
	ID              uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID          uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index:idx_quiz_results_user_id"`
	VideoID         uuid.UUID `json:"video_id" gorm:"type:uuid;not null;index:idx_quiz_results_video_id"`
	CorrectAnswers  int       `json:"correct_answers" gorm:"not null"`
	TotalQuestions  int       `json:"total_questions" gorm:"not null"`
	ScorePercentage float64   `json:"score_percentage" gorm:"not null"`
	Passed          bool      `json:"passed" gorm:"not null;default:false"`
	CreatedAt       time.Time `json:"created_at" gorm:"type:timestamptz;not null;default:CURRENT_TIMESTAMP"`
}

func (QuizResult) TableName() string {
	return "quiz_results"
}
