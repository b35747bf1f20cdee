package entities

import "github.com/google/uuid"

type Choice struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	QuestionID uuid.UUID `json:"question_id" gorm:"type:uuid;not null;index:idx_choices_question_id"`
	Text       string    `json:"text" gorm:"type:varchar(255);not null"`
	IsCorrect  bool      `json:"is_correct" gorm:"not null;default:false"`
}

func (Choice) TableName() string {
	return "choices"
}
