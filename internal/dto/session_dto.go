package dto

import (
	"streetmix-be/internal/entity"
	"streetmix-be/pkg/pageurl"
)

type CreateSessionResponse struct {
	Session *entity.NavigationSession `json:"session"`
	Token   string                    `json:"token"`
}

// NavigateRequest carries a location path. A query part ("?debug-...")
// replaces the session's debug flags.
type NavigateRequest struct {
	Path string `json:"path"`
}

type UpdatePageURLRequest struct {
	ForceGallery bool                `json:"forceGallery"`
	Debug        *pageurl.DebugFlags `json:"debug"`
}
