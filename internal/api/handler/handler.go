package handler

import (
	"samadhan/backend/internal/assistant"
	"samadhan/backend/internal/lifecycle"
	"samadhan/backend/internal/storage"
	"samadhan/backend/internal/wizard"
)

// Handler carries the services behind the HTTP API.
type Handler struct {
	Storage   storage.Storage
	Wizard    *wizard.Service
	Lifecycle *lifecycle.Service
	Assistant *assistant.Responder
	Media     *storage.MediaStore
	JWTSecret []byte
}

func NewHandler(s storage.Storage, w *wizard.Service, l *lifecycle.Service, a *assistant.Responder, media *storage.MediaStore, jwtSecret []byte) *Handler {
	return &Handler{
		Storage:   s,
		Wizard:    w,
		Lifecycle: l,
		Assistant: a,
		Media:     media,
		JWTSecret: jwtSecret,
	}
}
