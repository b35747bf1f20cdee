package entities

import (
	"time"

	"github.com/google/uuid"
	"media-access/constant"
)

type Video struct {
	ID       uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CourseID *uuid.UUID `json:"course_id" gorm:"type:uuid;index:idx_videos_course_id"`
	Title    string     `json:"title" gorm:"type:varchar(255);not null"`
	// ObjectName is the source object in the media bucket. Renditions live
	// under videos/{quality}/ with the same base name.
	ObjectName       string             `json:"object_name" gorm:"type:varchar(500);not null"`
	ProcessingStatus constant.JobStatus `json:"processing_status" gorm:"type:varchar(20);not null;default:'PENDING'"`
	IsPublished      bool               `json:"is_published" gorm:"not null;default:true"`
	DurationSeconds  int                `json:"duration_seconds" gorm:"not null;default:0"`
	ViewsCount       int                `json:"views_count" gorm:"not null;default:0"`
	OrderIndex       int                `json:"order_index" gorm:"not null;default:0"`
	CreatedAt        time.Time          `json:"created_at" gorm:"type:timestamptz;not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt        time.Time          `json:"updated_at" gorm:"type:timestamptz;not null;default:CURRENT_TIMESTAMP"`
}

func (Video) TableName() string {
	return "videos"
}
