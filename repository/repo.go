package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
	"media-access/entities"
)

type Store interface {
	GetDB() *gorm.DB

	FindUserById(ctx context.Context, id uuid.UUID) (*entities.User, error)
	UpdateUserStreak(ctx context.Context, userID uuid.UUID, today time.Time) error

	FindCourseById(ctx context.Context, id uuid.UUID) (*entities.Course, error)
	ListCourses(ctx context.Context) ([]*entities.Course, error)
	ListCoursesForUser(ctx context.Context, userID uuid.UUID) ([]*entities.Course, error)
	HasCourseAccess(ctx context.Context, userID, courseID uuid.UUID) (bool, error)

	FindVideoById(ctx context.Context, id uuid.UUID) (*entities.Video, error)
	ListVideos(ctx context.Context, userID uuid.UUID, admin bool, courseID *uuid.UUID) ([]*entities.Video, error)
	CountPublishedVideos(ctx context.Context, courseID uuid.UUID) (int64, error)
	IncrementViews(ctx context.Context, videoID uuid.UUID) error
	CreateVideoWithJob(ctx context.Context, video *entities.Video, job *entities.Job) error

	HasProgress(ctx context.Context, userID, videoID uuid.UUID) (bool, error)
	CountCompletedVideos(ctx context.Context, userID, courseID uuid.UUID) (int64, error)
	CountUnlockedBetween(ctx context.Context, userID, courseID uuid.UUID, from, to time.Time) (int64, error)
	UpsertProgress(ctx context.Context, userID, videoID uuid.UUID, watchedSeconds int, completed bool) (*entities.VideoProgress, error)
	ListProgressForVideos(ctx context.Context, userID uuid.UUID, videoIDs []uuid.UUID) ([]*entities.VideoProgress, error)

	GetQuestionsByVideoId(ctx context.Context, videoID uuid.UUID) ([]*entities.Question, error)
	CreateQuizResult(ctx context.Context, result *entities.QuizResult) error

	CreateSecurityLog(ctx context.Context, entry *entities.SecurityLog) error
}

type repo struct {
	db *gorm.DB
}

func NewRepo(db *sql.DB) Store {
	gormDB, _ := gorm.Open(postgres.New(postgres.Config{
		Conn: db}),
		&gorm.Config{
			Logger: logger.Default.LogMode(logger.Warn),
		},
	)
	return &repo{
		db: gormDB,
	}
}

func (r *repo) GetDB() *gorm.DB {
	return r.db
}

func (r *repo) FindUserById(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	user := &entities.User{}
	err := r.GetDB().WithContext(ctx).First(user, "id = ?", id).Error
	if err != nil {
		return nil, err
	}

	return user, nil
}

// UpdateUserStreak advances the daily streak at most once per day: the guard
// on last_activity_date makes a second report the same day a no-op, so
// concurrent reports cannot double-increment.
func (r *repo) UpdateUserStreak(ctx context.Context, userID uuid.UUID, today time.Time) error {
	day := today.Format("2006-01-02")
	yesterday := today.AddDate(0, 0, -1).Format("2006-01-02")
	return r.GetDB().WithContext(ctx).Exec(`
		UPDATE users
		SET daily_streak = CASE WHEN last_activity_date = ?::date THEN daily_streak + 1 ELSE 1 END,
		    last_activity_date = ?::date,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND (last_activity_date IS NULL OR last_activity_date < ?::date)`,
		yesterday, day, userID, day).Error
}

func (r *repo) FindCourseById(ctx context.Context, id uuid.UUID) (*entities.Course, error) {
	course := &entities.Course{}
	err := r.GetDB().WithContext(ctx).First(course, "id = ?", id).Error
	if err != nil {
		return nil, err
	}

	return course, nil
}

func (r *repo) ListCourses(ctx context.Context) ([]*entities.Course, error) {
	var courses []*entities.Course
	err := r.GetDB().WithContext(ctx).Order("created_at DESC").Find(&courses).Error
	if err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *repo) ListCoursesForUser(ctx context.Context, userID uuid.UUID) ([]*entities.Course, error) {
	var courses []*entities.Course
	err := r.GetDB().WithContext(ctx).
		Where("id IN (SELECT course_id FROM user_allowed_courses WHERE user_id = ?)", userID).
		Order("created_at DESC").
		Find(&courses).Error
	if err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *repo) HasCourseAccess(ctx context.Context, userID, courseID uuid.UUID) (bool, error) {
	var count int64
	err := r.GetDB().WithContext(ctx).Model(&entities.CourseAccess{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repo) FindVideoById(ctx context.Context, id uuid.UUID) (*entities.Video, error) {
	video := &entities.Video{}
	err := r.GetDB().WithContext(ctx).First(video, "id = ?", id).Error
	if err != nil {
		return nil, err
	}

	return video, nil
}

func (r *repo) ListVideos(ctx context.Context, userID uuid.UUID, admin bool, courseID *uuid.UUID) ([]*entities.Video, error) {
	query := r.GetDB().WithContext(ctx).Where("is_published = ?", true)
	if !admin {
		query = query.Where(
			"course_id IS NULL OR course_id IN (SELECT course_id FROM user_allowed_courses WHERE user_id = ?)",
			userID,
		)
	}
	if courseID != nil {
		query = query.Where("course_id = ?", *courseID)
	}

	var videos []*entities.Video
	err := query.Order("order_index ASC").Find(&videos).Error
	if err != nil {
		return nil, err
	}
	return videos, nil
}

func (r *repo) CountPublishedVideos(ctx context.Context, courseID uuid.UUID) (int64, error) {
	var count int64
	err := r.GetDB().WithContext(ctx).Model(&entities.Video{}).
		Where("course_id = ? AND is_published = ?", courseID, true).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *repo) IncrementViews(ctx context.Context, videoID uuid.UUID) error {
	return r.GetDB().WithContext(ctx).Model(&entities.Video{}).
		Where("id = ?", videoID).
		Update("views_count", gorm.Expr("views_count + 1")).Error
}

func (r *repo) CreateVideoWithJob(ctx context.Context, video *entities.Video, job *entities.Job) error {
	return r.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(video).Error; err != nil {
			return err
		}
		job.VideoID = video.ID
		return tx.Create(job).Error
	})
}

func (r *repo) HasProgress(ctx context.Context, userID, videoID uuid.UUID) (bool, error) {
	var count int64
	err := r.GetDB().WithContext(ctx).Model(&entities.VideoProgress{}).
		Where("user_id = ? AND video_id = ?", userID, videoID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repo) CountCompletedVideos(ctx context.Context, userID, courseID uuid.UUID) (int64, error) {
	var count int64
	err := r.GetDB().WithContext(ctx).Model(&entities.VideoProgress{}).
		Joins("JOIN videos ON videos.id = video_progress.video_id").
		Where("video_progress.user_id = ? AND videos.course_id = ? AND video_progress.completed = ?", userID, courseID, true).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *repo) CountUnlockedBetween(ctx context.Context, userID, courseID uuid.UUID, from, to time.Time) (int64, error) {
	var count int64
	err := r.GetDB().WithContext(ctx).Model(&entities.VideoProgress{}).
		Joins("JOIN videos ON videos.id = video_progress.video_id").
		Where("video_progress.user_id = ? AND videos.course_id = ?", userID, courseID).
		Where("video_progress.created_at >= ? AND video_progress.created_at < ?", from, to).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// UpsertProgress inserts or advances one progress row in a single statement.
// watched_seconds only moves forward and completed never reverts, so retried
// or reordered reports cannot lose progress; the unique (user_id, video_id)
// index resolves concurrent first reports to one row.
func (r *repo) UpsertProgress(ctx context.Context, userID, videoID uuid.UUID, watchedSeconds int, completed bool) (*entities.VideoProgress, error) {
	progress := &entities.VideoProgress{
		UserID:         userID,
		VideoID:        videoID,
		WatchedSeconds: watchedSeconds,
		Completed:      completed,
	}
	err := r.GetDB().WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "video_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"watched_seconds": gorm.Expr("GREATEST(video_progress.watched_seconds, EXCLUDED.watched_seconds)"),
			"completed":       gorm.Expr("video_progress.completed OR EXCLUDED.completed"),
			"last_watched":    gorm.Expr("CURRENT_TIMESTAMP"),
		}),
	}).Create(progress).Error
	if err != nil {
		return nil, err
	}

	stored := &entities.VideoProgress{}
	err = r.GetDB().WithContext(ctx).
		First(stored, "user_id = ? AND video_id = ?", userID, videoID).Error
	if err != nil {
		return nil, err
	}
	return stored, nil
}

func (r *repo) ListProgressForVideos(ctx context.Context, userID uuid.UUID, videoIDs []uuid.UUID) ([]*entities.VideoProgress, error) {
	if len(videoIDs) == 0 {
		return nil, nil
	}
	var records []*entities.VideoProgress
	err := r.GetDB().WithContext(ctx).
		Where("user_id = ? AND video_id IN ?", userID, videoIDs).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *repo) GetQuestionsByVideoId(ctx context.Context, videoID uuid.UUID) ([]*entities.Question, error) {
	var questions []*entities.Question
	err := r.GetDB().WithContext(ctx).
		Preload("Choices").
		Where("video_id = ?", videoID).
		Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *repo) CreateQuizResult(ctx context.Context, result *entities.QuizResult) error {
	return r.GetDB().WithContext(ctx).Create(result).Error
}

func (r *repo) CreateSecurityLog(ctx context.Context, entry *entities.SecurityLog) error {
	return r.GetDB().WithContext(ctx).Create(entry).Error
}
