package handler

import (
	"media-access/config"
	"media-access/pkg/signer"
	"media-access/service"
)

type Handler struct {
	cfg      *config.Config
	catalog  service.Catalog
	access   service.Access
	progress service.Progress
	quiz     service.Quiz
	signer   *signer.Signer
	auditor  service.Auditor
}

func New(cfg *config.Config, catalog service.Catalog, access service.Access, progress service.Progress, quiz service.Quiz, tokenSigner *signer.Signer, auditor service.Auditor) *Handler {
	return &Handler{
		cfg:      cfg,
		catalog:  catalog,
		access:   access,
		progress: progress,
		quiz:     quiz,
		signer:   tokenSigner,
		auditor:  auditor,
	}
}
