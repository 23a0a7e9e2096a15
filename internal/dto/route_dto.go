package dto

import (
	"streetmix-be/pkg/pageurl"
	"streetmix-be/pkg/route"
)

type ResolveRouteResponse struct {
	Path    string        `json:"path"`
	Mode    route.Mode    `json:"mode"`
	Context route.Context `json:"context"`
	Rule    string        `json:"rule"`
}

type BuildPageURLRequest struct {
	ForceGallery  bool               `json:"forceGallery"`
	Street        route.StreetRef    `json:"street"`
	GalleryUserId *string            `json:"galleryUserId"`
	Debug         pageurl.DebugFlags `json:"debug"`
}

type PageURLResponse struct {
	URL string `json:"url"`
}
