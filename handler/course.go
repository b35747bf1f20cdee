package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"media-access/middleware"
)

// ListCourses returns the courses the caller may see.
// GET /api/courses
func (h *Handler) ListCourses(c *gin.Context) {
	user := middleware.CurrentUser(c)

	courses, err := h.catalog.ListCourses(c.Request.Context(), user)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, courses)
}

// GetCourse returns one course with its published videos and the caller's
// progress on each.
// GET /api/courses/:id
func (h *Handler) GetCourse(c *gin.Context) {
	user := middleware.CurrentUser(c)

	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondValidation(c, "invalid course id")
		return
	}

	course, err := h.catalog.GetCourse(c.Request.Context(), user, courseID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, course)
}
