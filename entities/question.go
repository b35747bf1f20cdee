package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"media-access/constant"
)

type Question struct {
	ID      uuid.UUID             `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	VideoID uuid.UUID             `json:"video_id" gorm:"type:uuid;not null;index:idx_questions_video_id"`
	Type    constant.QuestionType `json:"type" gorm:"type:varchar(20);not null;default:'choice'"`
	Text    string                `json:"text" gorm:"type:text;not null"`
	// Accepted answers for text questions, one per content language.
	CorrectAnswerUz string    `json:"correct_answer_uz" gorm:"type:varchar(255)"`
	CorrectAnswerRu string    `json:"correct_answer_ru" gorm:"type:varchar(255)"`
	CorrectAnswerEn string    `json:"correct_answer_en" gorm:"type:varchar(255)"`
	Choices         []Choice  `json:"choices" gorm:"foreignKey:QuestionID"`
	CreatedAt       time.Time `json:"created_at" gorm:"type:timestamptz;not null;default:CURRENT_TIMESTAMP"`
}

func (Question) TableName() string {
	return "questions"
}

// AcceptedAnswers returns the non-empty text answers, case-folded and
// trimmed for comparison.
func (q *Question) AcceptedAnswers() []string {
	var answers []string
	for _, raw := range []string{q.CorrectAnswerUz, q.CorrectAnswerRu, q.CorrectAnswerEn} {
		normalized := strings.ToLower(strings.TrimSpace(raw))
		if normalized != "" {
			answers = append(answers, normalized)
		}
	}
	return answers
}
