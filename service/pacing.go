package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"media-access/entities"
	"media-access/repository"
)

// Pacing decides whether a student may open a video right now. Both the
// video detail request and the progress report run the same check, so
// neither endpoint can be used to sidestep the other.
type Pacing interface {
	CheckUnlock(ctx context.Context, user *entities.User, video *entities.Video, now time.Time) error
	TouchStreak(ctx context.Context, userID uuid.UUID, now time.Time) error
}

type pacing struct {
	repo     repository.Store
	location *time.Location
}

func NewPacing(repo repository.Store, location *time.Location) Pacing {
	if location == nil {
		location = time.Local
	}
	return &pacing{
		repo:     repo,
		location: location,
	}
}

// CheckUnlock applies the course pacing policy in order: full-completion
// bypass, then the allowed-weekday window, then the daily unlock cap.
// Admins and videos outside any course are never throttled.
func (p *pacing) CheckUnlock(ctx context.Context, user *entities.User, video *entities.Video, now time.Time) error {
	if user.IsAdmin() || video.CourseID == nil {
		return nil
	}

	course, err := p.repo.FindCourseById(ctx, *video.CourseID)
	if err != nil {
		return err
	}

	totalVideos, err := p.repo.CountPublishedVideos(ctx, course.ID)
	if err != nil {
		return err
	}
	completedVideos, err := p.repo.CountCompletedVideos(ctx, user.ID, course.ID)
	if err != nil {
		return err
	}

	// A student who finished every published video in the course is never
	// throttled again, whatever the weekday or the daily cap say.
	if totalVideos > 0 && completedVideos >= totalVideos {
		return nil
	}

	today := now.In(p.location)

	allowedDays := course.AllowedWeekdays()
	if len(allowedDays) > 0 {
		if _, ok := allowedDays[mondayBasedWeekday(today)]; !ok {
			return forbidden("this course is not available today, wait for your scheduled day")
		}
	}

	if course.DailyLimit > 0 {
		// Re-opening an already started video never counts against the cap.
		alreadyUnlocked, err := p.repo.HasProgress(ctx, user.ID, video.ID)
		if err != nil {
			return err
		}
		if !alreadyUnlocked {
			from := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, p.location)
			to := from.AddDate(0, 0, 1)
			unlockedToday, err := p.repo.CountUnlockedBetween(ctx, user.ID, course.ID, from, to)
			if err != nil {
				return err
			}
			if unlockedToday >= int64(course.DailyLimit) {
				return forbidden(fmt.Sprintf("daily unlock limit reached (%d), new videos open tomorrow", course.DailyLimit))
			}
		}
	}

	return nil
}

// TouchStreak registers activity for today. The increment happens at most
// once per day; the repository guard makes repeated calls no-ops.
func (p *pacing) TouchStreak(ctx context.Context, userID uuid.UUID, now time.Time) error {
	err := p.repo.UpdateUserStreak(ctx, userID, now.In(p.location))
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("user_id", userID.String()).Msg("failed to update streak")
		return err
	}
	return nil
}

// mondayBasedWeekday maps Go's Sunday-first weekday onto the stored
// convention, 0=Monday .. 6=Sunday.
func mondayBasedWeekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}
