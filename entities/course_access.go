package entities

import (
	"time"

	"github.com/google/uuid"
)

// CourseAccess grants a student access to one course.
type CourseAccess struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:unique_user_course"`
	CourseID  uuid.UUID `json:"course_id" gorm:"type:uuid;not null;uniqueIndex:unique_user_course"`
	CreatedAt time.Time `json:"created_at" gorm:"type:timestamptz;not null;default:CURRENT_TIMESTAMP"`
}

func (CourseAccess) TableName() string {
	return "user_allowed_courses"
}
