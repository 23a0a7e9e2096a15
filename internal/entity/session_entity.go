package entity

import (
	"time"

	"streetmix-be/pkg/pageurl"
	"streetmix-be/pkg/route"
)

// NavigationSession is the server-side copy of one browser tab's location
// state: what the last resolved path selected and what the page URL is now.
type NavigationSession struct {
	Id            string             `json:"id"`
	Mode          route.Mode         `json:"mode"`
	RouteContext  route.Context      `json:"routeContext"`
	Street        route.StreetRef    `json:"street"`
	GalleryUserId *string            `json:"galleryUserId,omitempty"`
	DebugFlags    pageurl.DebugFlags `json:"debugFlags"`
	CurrentURL    string             `json:"currentUrl"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
}

// PageState is the part of the session the page URL is built from.
func (s *NavigationSession) PageState() pageurl.State {
	return pageurl.State{Street: s.Street, GalleryUserID: s.GalleryUserId}
}
