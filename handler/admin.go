package handler

import (
	"github.com/gin-gonic/gin"
	"media-access/dto"
	"media-access/middleware"
)

// CreateVideo registers an uploaded object as a new published video and
// enqueues its transcode job.
// POST /api/admin/videos
func (h *Handler) CreateVideo(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req dto.CreateVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "invalid video payload")
		return
	}

	video, err := h.catalog.CreateVideo(c.Request.Context(), user, req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondCreated(c, video)
}
