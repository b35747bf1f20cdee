package entities

import (
	"time"

	"github.com/google/uuid"
	"media-access/constant"
)

type User struct {
	ID               uuid.UUID     `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Username         string        `json:"username" gorm:"type:varchar(150);not null;uniqueIndex"`
	Role             constant.Role `json:"role" gorm:"type:varchar(10);not null;default:'student'"`
	IsBlocked        bool          `json:"is_blocked" gorm:"not null;default:false"`
	DailyStreak      int           `json:"daily_streak" gorm:"not null;default:0"`
	LastActivityDate *time.Time    `json:"last_activity_date" gorm:"type:date"`
	CreatedAt        time.Time     `json:"created_at" gorm:"type:timestamptz;not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt        time.Time     `json:"updated_at" gorm:"type:timestamptz;not null;default:CURRENT_TIMESTAMP"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsAdmin() bool {
	return u.Role == constant.RoleAdmin
}
