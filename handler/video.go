package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"media-access/constant"
	"media-access/dto"
	"media-access/middleware"
)

// ListVideos returns published videos visible to the caller, optionally
// filtered by course.
// GET /api/videos?course=<id>
func (h *Handler) ListVideos(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var courseID *uuid.UUID
	if raw := c.Query("course"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			respondValidation(c, "invalid course id")
			return
		}
		courseID = &id
	}

	videos, err := h.catalog.ListVideos(c.Request.Context(), user, courseID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, videos)
}

// GetVideo authorizes the caller for one video and issues its stream token.
// GET /api/videos/:id
func (h *Handler) GetVideo(c *gin.Context) {
	user := middleware.CurrentUser(c)

	videoID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondValidation(c, "invalid video id")
		return
	}

	video, token, err := h.access.AuthorizeVideo(c.Request.Context(), user, videoID, time.Now())
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, dto.VideoDetail{
		VideoItem: dto.VideoItem{
			ID:              video.ID,
			CourseID:        video.CourseID,
			Title:           video.Title,
			DurationSeconds: video.DurationSeconds,
			ViewsCount:      video.ViewsCount,
			OrderIndex:      video.OrderIndex,
			IsPublished:     video.IsPublished,
		},
		StreamToken: token,
	})
}

// StreamVideo serves video bytes to an unauthenticated request carrying a
// stream token as query parameters. Expired, malformed and forged tokens
// all get the same denial.
// GET /api/videos/:id/stream?user_id=...&expires=...&signature=...&res=...
func (h *Handler) StreamVideo(c *gin.Context) {
	videoID := c.Param("id")
	userID := c.Query("user_id")
	expires := c.Query("expires")
	signature := c.Query("signature")

	if userID == "" || expires == "" || signature == "" {
		respondValidation(c, "missing request parameters")
		return
	}

	if !h.signer.Verify(videoID, userID, expires, signature) {
		// the claimed user id is unverified; attribute the event to it only
		// when it parses
		var subject *uuid.UUID
		if id, err := uuid.Parse(userID); err == nil {
			subject = &id
		}
		h.auditor.Record(c.Request.Context(), subject, constant.SecurityActionAccessDenied, map[string]any{
			"video_id": videoID,
			"reason":   "invalid stream token",
		})
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error":   gin.H{"message": "stream link is expired or invalid"},
		})
		return
	}

	id, err := uuid.Parse(videoID)
	if err != nil {
		// Verify already parsed the id; this is unreachable for any token
		// that passed it.
		respondValidation(c, "invalid video id")
		return
	}

	objectName, err := h.catalog.ResolveStreamObject(c.Request.Context(), id, c.Query("res"))
	if err != nil {
		respondError(c, err)
		return
	}

	object, err := h.cfg.Storage.GetObject(c.Request.Context(), h.cfg.MinIOBucket, objectName, minio.GetObjectOptions{})
	if err != nil {
		respondError(c, err)
		return
	}
	defer object.Close()

	stat, err := object.Stat()
	if err != nil {
		respondError(c, err)
		return
	}

	contentType := stat.ContentType
	if contentType == "" {
		contentType = "video/mp4"
	}

	c.DataFromReader(http.StatusOK, stat.Size, contentType, object, map[string]string{
		"Content-Disposition": "inline",
		"Cache-Control":       "no-store, no-cache, must-revalidate",
	})
}

// UpdateProgress records a watched-seconds/completed report.
// POST /api/videos/:id/progress
func (h *Handler) UpdateProgress(c *gin.Context) {
	user := middleware.CurrentUser(c)

	videoID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondValidation(c, "invalid video id")
		return
	}

	var req dto.ProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "invalid progress payload")
		return
	}

	result, err := h.progress.Update(c.Request.Context(), user, videoID, req, time.Now())
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, result)
}

// SubmitQuiz grades the caller's answers for the video's quiz.
// POST /api/videos/:id/quiz
func (h *Handler) SubmitQuiz(c *gin.Context) {
	user := middleware.CurrentUser(c)

	videoID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondValidation(c, "invalid video id")
		return
	}

	var req dto.QuizSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "invalid quiz payload")
		return
	}

	result, err := h.quiz.Submit(c.Request.Context(), user, videoID, req.Answers)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, result)
}
