package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
	"media-access/constant"
	"media-access/entities"
	"media-access/repository"
)

// stubStore overrides the single lookup Principal needs; the embedded
// interface leaves the rest unimplemented.
type stubStore struct {
	repository.Store
	user *entities.User
	err  error
}

func (s *stubStore) FindUserById(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.user, nil
}

func principalRequest(store repository.Store, header string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Principal(store))
	r.GET("/", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("X-User-ID", header)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestPrincipal(t *testing.T) {
	user := &entities.User{ID: uuid.New(), Username: "student", Role: constant.RoleStudent}

	cases := []struct {
		name   string
		store  *stubStore
		header string
		status int
	}{
		{"resolved user", &stubStore{user: user}, user.ID.String(), http.StatusOK},
		{"missing header", &stubStore{user: user}, "", http.StatusUnauthorized},
		{"malformed id", &stubStore{user: user}, "not-a-uuid", http.StatusUnauthorized},
		{"unknown user", &stubStore{err: gorm.ErrRecordNotFound}, uuid.NewString(), http.StatusUnauthorized},
		{"blocked user", &stubStore{user: &entities.User{ID: user.ID, IsBlocked: true}}, user.ID.String(), http.StatusForbidden},
		{"datastore failure", &stubStore{err: errors.New("connection refused")}, uuid.NewString(), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := principalRequest(tc.store, tc.header)
			assert.Equal(t, tc.status, w.Code)
		})
	}
}
