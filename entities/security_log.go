package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"media-access/constant"
)

// SecurityLog is the append-only audit trail of security-relevant events.
type SecurityLog struct {
	ID        uuid.UUID               `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID    *uuid.UUID              `json:"user_id" gorm:"type:uuid;index:idx_security_logs_user_id"`
	Action    constant.SecurityAction `json:"action" gorm:"type:varchar(20);not null;index:idx_security_logs_action"`
	IPAddress string                  `json:"ip_address" gorm:"type:varchar(45)"`
	UserAgent string                  `json:"user_agent" gorm:"type:varchar(500)"`
	Metadata  datatypes.JSON          `json:"metadata" gorm:"type:jsonb"`
	CreatedAt time.Time               `json:"created_at" gorm:"type:timestamptz;not null;default:CURRENT_TIMESTAMP"`
}

func (SecurityLog) TableName() string {
	return "security_logs"
}
