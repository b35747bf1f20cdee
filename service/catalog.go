package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"media-access/config"
	"media-access/constant"
	"media-access/dto"
	"media-access/entities"
	"media-access/pkg/rabbitmq"
	"media-access/repository"
)

// Catalog serves course/video listings filtered by entitlement, registers
// admin uploads, and resolves stream objects for verified tokens.
type Catalog interface {
	ListCourses(ctx context.Context, user *entities.User) ([]dto.CourseItem, error)
	GetCourse(ctx context.Context, user *entities.User, courseID uuid.UUID) (*dto.CourseDetail, error)
	ListVideos(ctx context.Context, user *entities.User, courseID *uuid.UUID) ([]dto.VideoItem, error)
	CreateVideo(ctx context.Context, user *entities.User, req dto.CreateVideoRequest) (*entities.Video, error)
	ResolveStreamObject(ctx context.Context, videoID uuid.UUID, res string) (string, error)
}

type catalog struct {
	repo      repository.Store
	cfg       *config.Config
	publisher rabbitmq.Publisher
	access    Access
	auditor   Auditor
}

func NewCatalog(repo repository.Store, cfg *config.Config, publisher rabbitmq.Publisher, access Access, auditor Auditor) Catalog {
	return &catalog{
		repo:      repo,
		cfg:       cfg,
		publisher: publisher,
		access:    access,
		auditor:   auditor,
	}
}

func (s *catalog) ListCourses(ctx context.Context, user *entities.User) ([]dto.CourseItem, error) {
	var (
		courses []*entities.Course
		err     error
	)
	if user.IsAdmin() {
		courses, err = s.repo.ListCourses(ctx)
	} else {
		courses, err = s.repo.ListCoursesForUser(ctx, user.ID)
	}
	if err != nil {
		return nil, err
	}

	items := make([]dto.CourseItem, 0, len(courses))
	for _, course := range courses {
		items = append(items, courseItem(course))
	}
	return items, nil
}

func (s *catalog) GetCourse(ctx context.Context, user *entities.User, courseID uuid.UUID) (*dto.CourseDetail, error) {
	course, err := s.repo.FindCourseById(ctx, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("course not found")
		}
		return nil, err
	}

	allowed, err := s.access.CanAccessCourse(ctx, user, course.ID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, forbidden("you do not have access to this course")
	}

	videos, err := s.repo.ListVideos(ctx, user.ID, user.IsAdmin(), &course.ID)
	if err != nil {
		return nil, err
	}
	items, err := s.videoItems(ctx, user, videos)
	if err != nil {
		return nil, err
	}

	return &dto.CourseDetail{
		CourseItem: courseItem(course),
		Videos:     items,
	}, nil
}

func (s *catalog) ListVideos(ctx context.Context, user *entities.User, courseID *uuid.UUID) ([]dto.VideoItem, error) {
	videos, err := s.repo.ListVideos(ctx, user.ID, user.IsAdmin(), courseID)
	if err != nil {
		return nil, err
	}
	return s.videoItems(ctx, user, videos)
}

// CreateVideo registers an uploaded object as a published video and hands
// the transcode work to the worker through the queue. The job row is
// written in the same transaction as the video; the queue publish is
// best-effort on top of it.
func (s *catalog) CreateVideo(ctx context.Context, user *entities.User, req dto.CreateVideoRequest) (*entities.Video, error) {
	if req.CourseID != nil {
		if _, err := s.repo.FindCourseById(ctx, *req.CourseID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, notFound("course not found")
			}
			return nil, err
		}
	}

	video := &entities.Video{
		CourseID:         req.CourseID,
		Title:            req.Title,
		ObjectName:       req.ObjectName,
		ProcessingStatus: constant.JobStatusPending,
		IsPublished:      true,
		DurationSeconds:  req.DurationSeconds,
		OrderIndex:       req.OrderIndex,
	}
	job := &entities.Job{
		Status: constant.JobStatusPending,
	}
	if err := s.repo.CreateVideoWithJob(ctx, video, job); err != nil {
		return nil, err
	}

	if s.publisher == nil {
		zerolog.Ctx(ctx).Warn().Str("job_id", job.ID.String()).Msg("transcode queue unavailable, job left pending")
	} else {
		message := dto.JobMessage{
			JobId:      job.ID,
			ObjectPath: video.ObjectName,
			FileName:   path.Base(video.ObjectName),
		}
		if err := s.publisher.Publish(ctx, message); err != nil {
			zerolog.Ctx(ctx).Error().Err(err).Str("job_id", job.ID.String()).Msg("failed to enqueue transcode job")
		}
	}

	s.auditor.Record(ctx, &user.ID, constant.SecurityActionVideoUpload, map[string]any{
		"video_id": video.ID.String(),
		"title":    video.Title,
	})

	return video, nil
}

var streamQualities = map[string]struct{}{
	"360p":  {},
	"480p":  {},
	"720p":  {},
	"1080p": {},
}

// ResolveStreamObject picks the object to stream: the requested rendition
// when it exists, otherwise the source upload.
func (s *catalog) ResolveStreamObject(ctx context.Context, videoID uuid.UUID, res string) (string, error) {
	video, err := s.repo.FindVideoById(ctx, videoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", notFound("video not found")
		}
		return "", err
	}

	if _, ok := streamQualities[res]; ok {
		rendition := renditionObject(video.ObjectName, res)
		if _, err := s.cfg.Storage.StatObject(ctx, s.cfg.MinIOBucket, rendition, minio.StatObjectOptions{}); err == nil {
			return rendition, nil
		}
	}

	if _, err := s.cfg.Storage.StatObject(ctx, s.cfg.MinIOBucket, video.ObjectName, minio.StatObjectOptions{}); err != nil {
		return "", notFound("video file not found")
	}
	return video.ObjectName, nil
}

// renditionObject maps a source object to its transcoded variant, e.g.
// videos/source/intro.mp4 -> videos/720p/intro_720p.mp4.
func renditionObject(objectName, res string) string {
	base := path.Base(objectName)
	ext := path.Ext(base)
	name := strings.TrimSuffix(base, ext)
	return path.Join("videos", res, fmt.Sprintf("%s_%s%s", name, res, ext))
}

func courseItem(course *entities.Course) dto.CourseItem {
	return dto.CourseItem{
		ID:          course.ID,
		Title:       course.Title,
		Description: course.Description,
		DailyLimit:  course.DailyLimit,
		AllowedDays: course.AllowedDays,
	}
}

func (s *catalog) videoItems(ctx context.Context, user *entities.User, videos []*entities.Video) ([]dto.VideoItem, error) {
	ids := make([]uuid.UUID, 0, len(videos))
	for _, video := range videos {
		ids = append(ids, video.ID)
	}
	records, err := s.repo.ListProgressForVideos(ctx, user.ID, ids)
	if err != nil {
		return nil, err
	}
	byVideo := make(map[uuid.UUID]*entities.VideoProgress, len(records))
	for _, record := range records {
		byVideo[record.VideoID] = record
	}

	items := make([]dto.VideoItem, 0, len(videos))
	for _, video := range videos {
		item := dto.VideoItem{
			ID:              video.ID,
			CourseID:        video.CourseID,
			Title:           video.Title,
			DurationSeconds: video.DurationSeconds,
			ViewsCount:      video.ViewsCount,
			OrderIndex:      video.OrderIndex,
			IsPublished:     video.IsPublished,
		}
		if record, ok := byVideo[video.ID]; ok {
			item.WatchedSeconds = record.WatchedSeconds
			item.Completed = record.Completed
			item.ProgressPercent = record.ProgressPercent(video.DurationSeconds)
		}
		items = append(items, item)
	}
	return items, nil
}
