package service

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"media-access/constant"
	"media-access/entities"
	"media-access/repository"
)

// Auditor records security-relevant events. Recording is best-effort: a
// failed write is logged and never fails the operation being audited.
type Auditor interface {
	Record(ctx context.Context, userID *uuid.UUID, action constant.SecurityAction, metadata map[string]any)
}

type auditor struct {
	repo repository.Store
}

func NewAuditor(repo repository.Store) Auditor {
	return &auditor{repo: repo}
}

func (a *auditor) Record(ctx context.Context, userID *uuid.UUID, action constant.SecurityAction, metadata map[string]any) {
	entry := &entities.SecurityLog{
		UserID:    userID,
		Action:    action,
		IPAddress: clientIP(ctx),
		UserAgent: userAgent(ctx),
	}
	if metadata != nil {
		raw, err := json.Marshal(metadata)
		if err == nil {
			entry.Metadata = datatypes.JSON(raw)
		}
	}

	if err := a.repo.CreateSecurityLog(ctx, entry); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("action", string(action)).Msg("failed to write security log")
	}
}

type requestMetaKey struct{}

// RequestMeta carries transport details into audit records.
type RequestMeta struct {
	ClientIP  string
	UserAgent string
}

func WithRequestMeta(ctx context.Context, meta RequestMeta) context.Context {
	return context.WithValue(ctx, requestMetaKey{}, meta)
}

func clientIP(ctx context.Context) string {
	if meta, ok := ctx.Value(requestMetaKey{}).(RequestMeta); ok {
		return meta.ClientIP
	}
	return ""
}

func userAgent(ctx context.Context) string {
	if meta, ok := ctx.Value(requestMetaKey{}).(RequestMeta); ok {
		return meta.UserAgent
	}
	return ""
}
