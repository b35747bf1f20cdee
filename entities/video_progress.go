package entities

import (
	"time"

	"github.com/google/uuid"
)

// VideoProgress records one student's progress through one video. The row's
// CreatedAt marks the day the video was first unlocked, which is what the
// daily limit counts.
type VideoProgress struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID         uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:unique_user_video"`
	VideoID        uuid.UUID `json:"video_id" gorm:"type:uuid;not null;uniqueIndex:unique_user_video"`
	WatchedSeconds int       `json:"watched_seconds" gorm:"not null;default:0"`
	Completed      bool      `json:"completed" gorm:"not null;default:false"`
	LastWatched    time.Time `json:"last_watched" gorm:"type:timestamptz;not null;default:CURRENT_TIMESTAMP"`
	CreatedAt      time.Time `json:"created_at" gorm:"type:timestamptz;not null;default:CURRENT_TIMESTAMP"`
}

func (VideoProgress) TableName() string {
	return "video_progress"
}

// ProgressPercent is the watched share of the video, capped at 100.
func (p *VideoProgress) ProgressPercent(durationSeconds int) int {
	if durationSeconds == 0 {
		return 0
	}
	percent := p.WatchedSeconds * 100 / durationSeconds
	if percent > 100 {
		return 100
	}
	return percent
}
