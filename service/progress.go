package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"media-access/constant"
	"media-access/dto"
	"media-access/entities"
	"media-access/repository"
)

type Progress interface {
	Update(ctx context.Context, user *entities.User, videoID uuid.UUID, req dto.ProgressRequest, now time.Time) (*dto.ProgressResponse, error)
}

type progress struct {
	repo    repository.Store
	pacing  Pacing
	auditor Auditor
}

func NewProgress(repo repository.Store, pacing Pacing, auditor Auditor) Progress {
	return &progress{
		repo:    repo,
		pacing:  pacing,
		auditor: auditor,
	}
}

// Update records a progress report. It runs the same pacing gate as the
// video detail request, then applies the report through the monotonic
// upsert: watched seconds never move backwards, completion never reverts.
func (s *progress) Update(ctx context.Context, user *entities.User, videoID uuid.UUID, req dto.ProgressRequest, now time.Time) (*dto.ProgressResponse, error) {
	video, err := s.repo.FindVideoById(ctx, videoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("video not found")
		}
		return nil, err
	}

	if err := s.pacing.CheckUnlock(ctx, user, video, now); err != nil {
		if errors.Is(err, ErrForbidden) {
			s.auditor.Record(ctx, &user.ID, constant.SecurityActionAccessDenied, map[string]any{
				"video_id": video.ID.String(),
				"reason":   err.Error(),
			})
		}
		return nil, err
	}

	stored, err := s.repo.UpsertProgress(ctx, user.ID, video.ID, req.WatchedSeconds, req.Completed)
	if err != nil {
		return nil, err
	}

	if err := s.pacing.TouchStreak(ctx, user.ID, now); err != nil {
		return nil, err
	}

	return &dto.ProgressResponse{
		WatchedSeconds:  stored.WatchedSeconds,
		Completed:       stored.Completed,
		ProgressPercent: stored.ProgressPercent(video.DurationSeconds),
	}, nil
}
