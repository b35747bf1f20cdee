package entities

import (
	"time"

	"github.com/google/uuid"
	"media-access/constant"
)

// Job tracks one transcode request for a video. Rows are created here when
// an upload is registered and worked off by the external transcode worker.
type Job struct {
	ID        uuid.UUID          `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	VideoID   uuid.UUID          `json:"video_id" gorm:"type:uuid;not null;index:idx_jobs_video_id"`
	Status    constant.JobStatus `json:"status" gorm:"type:varchar(20);not null;default:'PENDING'"`
	CreatedAt time.Time          `json:"created_at" gorm:"type:timestamptz;not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time          `json:"updated_at" gorm:"type:timestamptz;not null;default:CURRENT_TIMESTAMP"`
}

func (Job) TableName() string {
	return "jobs"
}
