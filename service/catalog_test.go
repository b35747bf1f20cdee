package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"media-access/config"
	"media-access/constant"
	"media-access/dto"
	"media-access/entities"
)

type fakePublisher struct {
	messages []any
	err      error
}

func (f *fakePublisher) Publish(ctx context.Context, message any) error {
	if f.err != nil {
		return f.err
	}
	f.messages = append(f.messages, message)
	return nil
}

func (f *fakePublisher) Close() error {
	return nil
}

type catalogFixture struct {
	store     *fakeStore
	publisher *fakePublisher
	service   Catalog
}

func newCatalogFixture() *catalogFixture {
	store := newFakeStore()
	publisher := &fakePublisher{}
	auditor := NewAuditor(store)
	access := NewAccess(store, NewPacing(store, time.UTC), nil, auditor)
	return &catalogFixture{
		store:     store,
		publisher: publisher,
		service:   NewCatalog(store, &config.Config{}, publisher, access, auditor),
	}
}

func TestListCoursesFiltersByGrant(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()
	student := f.store.addUser(&entities.User{Username: "student", Role: constant.RoleStudent})
	admin := f.store.addUser(&entities.User{Username: "root", Role: constant.RoleAdmin})
	granted := f.store.addCourse(&entities.Course{Title: "Harmony"})
	f.store.addCourse(&entities.Course{Title: "Rhythm"})
	f.store.grant(student.ID, granted.ID)

	visible, err := f.service.ListCourses(ctx, student)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, "Harmony", visible[0].Title)

	all, err := f.service.ListCourses(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestGetCourseRequiresGrant(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()
	student := f.store.addUser(&entities.User{Username: "student", Role: constant.RoleStudent})
	course := f.store.addCourse(&entities.Course{Title: "Harmony"})
	video := f.store.addVideo(&entities.Video{CourseID: &course.ID, Title: "lesson", IsPublished: true, DurationSeconds: 200})
	f.store.addVideo(&entities.Video{CourseID: &course.ID, Title: "draft", IsPublished: false})

	_, err := f.service.GetCourse(ctx, student, course.ID)
	require.ErrorIs(t, err, ErrForbidden)

	f.store.grant(student.ID, course.ID)
	f.store.addProgress(&entities.VideoProgress{UserID: student.ID, VideoID: video.ID, WatchedSeconds: 50, CreatedAt: monday})

	detail, err := f.service.GetCourse(ctx, student, course.ID)
	require.NoError(t, err)
	require.Len(t, detail.Videos, 1) // unpublished video hidden
	assert.Equal(t, 50, detail.Videos[0].WatchedSeconds)
	assert.Equal(t, 25, detail.Videos[0].ProgressPercent)

	_, err = f.service.GetCourse(ctx, student, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateVideoEnqueuesTranscode(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()
	admin := f.store.addUser(&entities.User{Username: "root", Role: constant.RoleAdmin})
	course := f.store.addCourse(&entities.Course{Title: "Harmony"})

	video, err := f.service.CreateVideo(ctx, admin, dto.CreateVideoRequest{
		Title:           "new lesson",
		CourseID:        &course.ID,
		ObjectName:      "videos/source/new-lesson.mp4",
		DurationSeconds: 300,
	})
	require.NoError(t, err)
	assert.True(t, video.IsPublished)
	assert.Equal(t, constant.JobStatusPending, video.ProcessingStatus)

	require.Len(t, f.store.jobs, 1)
	require.Len(t, f.publisher.messages, 1)
	message, ok := f.publisher.messages[0].(dto.JobMessage)
	require.True(t, ok)
	assert.Equal(t, f.store.jobs[0].ID, message.JobId)
	assert.Equal(t, "videos/source/new-lesson.mp4", message.ObjectPath)
	assert.Equal(t, "new-lesson.mp4", message.FileName)

	// the upload is audited
	require.NotEmpty(t, f.store.logs)
	assert.Equal(t, constant.SecurityActionVideoUpload, f.store.logs[len(f.store.logs)-1].Action)
}

func TestCreateVideoUnknownCourse(t *testing.T) {
	f := newCatalogFixture()
	admin := f.store.addUser(&entities.User{Username: "root", Role: constant.RoleAdmin})
	missing := uuid.New()

	_, err := f.service.CreateVideo(context.Background(), admin, dto.CreateVideoRequest{
		Title:      "orphan",
		CourseID:   &missing,
		ObjectName: "videos/source/orphan.mp4",
	})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, f.publisher.messages)
}

func TestRenditionObject(t *testing.T) {
	assert.Equal(t, "videos/720p/intro_720p.mp4", renditionObject("videos/source/intro.mp4", "720p"))
	assert.Equal(t, "videos/360p/intro_360p.mp4", renditionObject("intro.mp4", "360p"))
	assert.Equal(t, "videos/480p/raw_480p", renditionObject("uploads/raw", "480p"))
}
