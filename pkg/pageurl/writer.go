package pageurl

import (
	"context"
	"fmt"
	"strings"

	"streetmix-be/pkg/route"
)

// State is the part of the application state that shows up in the URL.
type State struct {
	Street        route.StreetRef `json:"street"`
	GalleryUserID *string         `json:"galleryUserId,omitempty"`
}

// History receives the page URL. The write replaces the current entry
// instead of adding a navigable one.
type History interface {
	ReplaceState(ctx context.Context, url string) error
}

// ShareMenu is told to refresh once the page URL changed.
type ShareMenu interface {
	Update(ctx context.Context, url string) error
}

// Builder serializes application state into a page URL.
type Builder struct {
	formatter StreetFormatter
	tokens    route.Tokens
}

func NewBuilder(tokens route.Tokens, formatter StreetFormatter) *Builder {
	tokens = tokens.WithDefaults()
	if formatter == nil {
		formatter = NewStreetFormatter(tokens)
	}
	return &Builder{formatter: formatter, tokens: tokens}
}

// Build returns the page URL for state. Debug flags are appended as
// "&debug-<name>" and afterwards only the first "&" becomes "?". Clients
// parse this exact format, so the replacement is deliberately not global.
func (b *Builder) Build(forceGallery bool, state State, flags DebugFlags) string {
	var u string
	if forceGallery {
		slug := b.tokens.GlobalGallery + "/"
		if state.GalleryUserID != nil && *state.GalleryUserID != "" {
			slug = *state.GalleryUserID
		}
		u = "/" + slug
	} else {
		u = b.formatter.StreetPath(state.Street)
	}

	for _, name := range flags.Active() {
		u += "&" + debugPrefix + name
	}

	return strings.Replace(u, "&", "?", 1)
}

// Writer builds the page URL and pushes it to the history and share menu.
type Writer struct {
	builder   *Builder
	history   History
	shareMenu ShareMenu
}

func NewWriter(builder *Builder, history History, shareMenu ShareMenu) *Writer {
	return &Writer{builder: builder, history: history, shareMenu: shareMenu}
}

// Update writes the URL for state into the history, then refreshes the share
// menu. Inputs are not validated.
func (w *Writer) Update(ctx context.Context, forceGallery bool, state State, flags DebugFlags) (string, error) {
	u := w.builder.Build(forceGallery, state, flags)

	if err := w.history.ReplaceState(ctx, u); err != nil {
		return "", fmt.Errorf("replace page url: %w", err)
	}
	if w.shareMenu != nil {
		if err := w.shareMenu.Update(ctx, u); err != nil {
			return u, fmt.Errorf("update share menu: %w", err)
		}
	}
	return u, nil
}

var defaultBuilder = NewBuilder(route.DefaultTokens(), nil)

// BuildURL builds a page URL with the default vocabulary and formatter.
func BuildURL(forceGallery bool, state State, flags DebugFlags) string {
	return defaultBuilder.Build(forceGallery, state, flags)
}
