package entities

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Course struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Title       string    `json:"title" gorm:"type:varchar(255);not null"`
	Description string    `json:"description" gorm:"type:text"`
	// DailyLimit caps how many new videos a student may start per calendar
	// day. 0 means unlimited.
	DailyLimit int `json:"daily_limit" gorm:"not null;default:0"`
	// AllowedDays is a comma-separated weekday list, 0=Monday .. 6=Sunday.
	// Empty means every day.
	AllowedDays string    `json:"allowed_days" gorm:"type:varchar(50);default:'0,1,2,3,4,5,6'"`
	CreatedAt   time.Time `json:"created_at" gorm:"type:timestamptz;not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"type:timestamptz;not null;default:CURRENT_TIMESTAMP"`
}

func (Course) TableName() string {
	return "courses"
}

// AllowedWeekdays parses AllowedDays into a weekday set. A malformed or
// empty value yields an empty set, which callers treat as "no restriction".
func (c *Course) AllowedWeekdays() map[int]struct{} {
	days := make(map[int]struct{})
	for _, part := range strings.Split(c.AllowedDays, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		day, err := strconv.Atoi(part)
		if err != nil || day < 0 || day > 6 {
			continue
		}
		days[day] = struct{}{}
	}
	return days
}
