package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"media-access/config"
	"media-access/constant"
	"media-access/pkg/signer"
)

type recordedEvent struct {
	userID *uuid.UUID
	action constant.SecurityAction
}

type fakeAuditor struct {
	events []recordedEvent
}

func (f *fakeAuditor) Record(ctx context.Context, userID *uuid.UUID, action constant.SecurityAction, metadata map[string]any) {
	f.events = append(f.events, recordedEvent{userID: userID, action: action})
}

func streamRequest(h *Handler, videoID, query string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/videos/"+videoID+"/stream?"+query, nil)
	c.Params = gin.Params{{Key: "id", Value: videoID}}
	h.StreamVideo(c)
	return w
}

func TestStreamRejectsBadToken(t *testing.T) {
	auditor := &fakeAuditor{}
	tokenSigner := signer.New("stream-key", time.Hour)
	h := New(&config.Config{}, nil, nil, nil, nil, tokenSigner, auditor)

	videoID := uuid.New()
	userID := uuid.New()
	token := tokenSigner.Issue(videoID, userID)
	expires := strconv.FormatInt(token.Expires, 10)

	w := streamRequest(h, videoID.String(),
		"user_id="+userID.String()+"&expires="+expires+"&signature=forged")
	assert.Equal(t, http.StatusForbidden, w.Code)

	// the denial is audited and attributed to the claimed user
	require.Len(t, auditor.events, 1)
	assert.Equal(t, constant.SecurityActionAccessDenied, auditor.events[0].action)
	require.NotNil(t, auditor.events[0].userID)
	assert.Equal(t, userID, *auditor.events[0].userID)
}

func TestStreamBadTokenWithUnparseableUser(t *testing.T) {
	auditor := &fakeAuditor{}
	h := New(&config.Config{}, nil, nil, nil, nil, signer.New("stream-key", time.Hour), auditor)

	w := streamRequest(h, uuid.NewString(), "user_id=nobody&expires=123&signature=forged")
	assert.Equal(t, http.StatusForbidden, w.Code)

	require.Len(t, auditor.events, 1)
	assert.Nil(t, auditor.events[0].userID)
}

func TestStreamMissingParameters(t *testing.T) {
	auditor := &fakeAuditor{}
	h := New(&config.Config{}, nil, nil, nil, nil, signer.New("stream-key", time.Hour), auditor)

	w := streamRequest(h, uuid.NewString(), "user_id=x&expires=123")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, auditor.events)
}
