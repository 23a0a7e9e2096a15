package pageurl

import (
	"context"
	"errors"
	"strings"
	"testing"

	"streetmix-be/pkg/route"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestBuildURL(t *testing.T) {
	tests := []struct {
		name         string
		forceGallery bool
		state        State
		flags        DebugFlags
		want         string
	}{
		{
			name:         "global gallery",
			forceGallery: true,
			want:         "/gallery/",
		},
		{
			name:         "user gallery",
			forceGallery: true,
			state:        State{GalleryUserID: strPtr("bob")},
			want:         "/bob",
		},
		{
			name:         "empty gallery user falls back to global",
			forceGallery: true,
			state:        State{GalleryUserID: strPtr("")},
			want:         "/gallery/",
		},
		{
			name:  "anonymous street",
			state: State{Street: route.StreetRef{NamespacedID: "42"}},
			want:  "/-/42",
		},
		{
			name:  "owned street with slug",
			state: State{Street: route.StreetRef{CreatorID: strPtr("alice"), NamespacedID: "42", Name: "Main Street"}},
			want:  "/alice/42/main-street",
		},
		{
			name:  "creator colliding with reserved token",
			state: State{Street: route.StreetRef{CreatorID: strPtr("gallery"), NamespacedID: "3"}},
			want:  "/~gallery/3",
		},
		{
			name:  "one flag",
			state: State{Street: route.StreetRef{NamespacedID: "42"}},
			flags: DebugFlags{ForceMetric: true},
			want:  "/-/42?debug-force-metric",
		},
		{
			name:         "two flags keep enumeration order",
			forceGallery: true,
			flags:        DebugFlags{Experimental: true, HoverPolygon: true},
			want:         "/gallery/?debug-hover-polygon&debug-experimental",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildURL(tt.forceGallery, tt.state, tt.flags))
		})
	}
}

func TestBuildURLOnlyFirstSeparatorReplaced(t *testing.T) {
	flags := DebugFlags{HoverPolygon: true, ForceTouch: true, ForceNoInternet: true}
	got := BuildURL(true, State{GalleryUserID: strPtr("bob")}, flags)

	assert.Equal(t, 1, strings.Count(got, "?"))
	assert.Equal(t, 2, strings.Count(got, "&"))
	assert.Less(t, strings.Index(got, "?"), strings.Index(got, "&"))
}

func TestBuildURLAllFlags(t *testing.T) {
	var flags DebugFlags
	for _, name := range FlagNames() {
		require.True(t, flags.Set(name))
	}

	got := BuildURL(true, State{}, flags)
	want := "/gallery/?debug-" + strings.Join(FlagNames(), "&debug-")
	assert.Equal(t, want, got)
}

func TestParseDebugFlags(t *testing.T) {
	flags := ParseDebugFlags("?debug-hover-polygon&debug-force-metric=1&debug-unknown&other")

	assert.True(t, flags.HoverPolygon)
	assert.True(t, flags.ForceMetric)
	assert.Equal(t, []string{"hover-polygon", "force-metric"}, flags.Active())
	assert.False(t, flags.Set("unknown"))
	assert.Empty(t, ParseDebugFlags("").Active())
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "main-street", Slug("Main Street"))
	assert.Equal(t, "a-b", Slug("  A -- B!! "))
	assert.Equal(t, "", Slug("???"))
}

type recordingHistory struct {
	urls []string
	err  error
}

func (h *recordingHistory) ReplaceState(_ context.Context, url string) error {
	if h.err != nil {
		return h.err
	}
	h.urls = append(h.urls, url)
	return nil
}

type recordingShareMenu struct {
	urls []string
}

func (s *recordingShareMenu) Update(_ context.Context, url string) error {
	s.urls = append(s.urls, url)
	return nil
}

func TestWriterUpdate(t *testing.T) {
	history := &recordingHistory{}
	menu := &recordingShareMenu{}
	w := NewWriter(NewBuilder(route.DefaultTokens(), nil), history, menu)

	got, err := w.Update(context.Background(), false, State{Street: route.StreetRef{NamespacedID: "7"}}, DebugFlags{SecretSegments: true})
	require.NoError(t, err)

	assert.Equal(t, "/-/7?debug-secret-segments", got)
	assert.Equal(t, []string{got}, history.urls)
	assert.Equal(t, []string{got}, menu.urls)
}

func TestWriterUpdateHistoryFailure(t *testing.T) {
	history := &recordingHistory{err: errors.New("gone")}
	menu := &recordingShareMenu{}
	w := NewWriter(NewBuilder(route.DefaultTokens(), nil), history, menu)

	_, err := w.Update(context.Background(), true, State{}, DebugFlags{})
	require.Error(t, err)
	assert.Empty(t, menu.urls, "share menu is not refreshed when the history write failed")
}
