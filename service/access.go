package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"media-access/constant"
	"media-access/dto"
	"media-access/entities"
	"media-access/pkg/signer"
	"media-access/repository"
)

// Access is the authorize-and-issue entry point: it resolves the video,
// applies entitlement and pacing, and mints the stream token.
type Access interface {
	CanAccessCourse(ctx context.Context, user *entities.User, courseID uuid.UUID) (bool, error)
	CanAccessVideo(ctx context.Context, user *entities.User, video *entities.Video) (bool, error)
	AuthorizeVideo(ctx context.Context, user *entities.User, videoID uuid.UUID, now time.Time) (*entities.Video, dto.StreamToken, error)
}

type access struct {
	repo    repository.Store
	pacing  Pacing
	signer  *signer.Signer
	auditor Auditor
}

func NewAccess(repo repository.Store, pacing Pacing, tokenSigner *signer.Signer, auditor Auditor) Access {
	return &access{
		repo:    repo,
		pacing:  pacing,
		signer:  tokenSigner,
		auditor: auditor,
	}
}

func (s *access) CanAccessCourse(ctx context.Context, user *entities.User, courseID uuid.UUID) (bool, error) {
	if user.IsAdmin() {
		return true, nil
	}
	return s.repo.HasCourseAccess(ctx, user.ID, courseID)
}

// CanAccessVideo is true for admins, for videos outside any course, and for
// students holding a grant on the owning course.
func (s *access) CanAccessVideo(ctx context.Context, user *entities.User, video *entities.Video) (bool, error) {
	if user.IsAdmin() || video.CourseID == nil {
		return true, nil
	}
	return s.repo.HasCourseAccess(ctx, user.ID, *video.CourseID)
}

func (s *access) AuthorizeVideo(ctx context.Context, user *entities.User, videoID uuid.UUID, now time.Time) (*entities.Video, dto.StreamToken, error) {
	video, err := s.repo.FindVideoById(ctx, videoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, dto.StreamToken{}, notFound("video not found")
		}
		return nil, dto.StreamToken{}, err
	}
	if !video.IsPublished && !user.IsAdmin() {
		return nil, dto.StreamToken{}, notFound("video not found")
	}

	allowed, err := s.CanAccessVideo(ctx, user, video)
	if err != nil {
		return nil, dto.StreamToken{}, err
	}
	if !allowed {
		s.auditor.Record(ctx, &user.ID, constant.SecurityActionAccessDenied, map[string]any{
			"video_id": video.ID.String(),
			"reason":   "no course access",
		})
		return nil, dto.StreamToken{}, forbidden("you do not have access to this video")
	}

	if err := s.pacing.CheckUnlock(ctx, user, video, now); err != nil {
		if errors.Is(err, ErrForbidden) {
			s.auditor.Record(ctx, &user.ID, constant.SecurityActionAccessDenied, map[string]any{
				"video_id": video.ID.String(),
				"reason":   err.Error(),
			})
		}
		return nil, dto.StreamToken{}, err
	}

	// View counting is best-effort and must not block access.
	if err := s.repo.IncrementViews(ctx, video.ID); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("video_id", video.ID.String()).Msg("failed to increment views")
	}

	token := s.signer.Issue(video.ID, user.ID)
	s.auditor.Record(ctx, &user.ID, constant.SecurityActionVideoAccess, map[string]any{
		"video_id":    video.ID.String(),
		"video_title": video.Title,
	})

	return video, token, nil
}
