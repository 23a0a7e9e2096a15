package main

import (
	"bytes"
	"testing"

	"streetmix-be/pkg/pageurl"
	"streetmix-be/pkg/route"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestCheck(t *testing.T) {
	color.NoColor = true
	resolver := route.NewResolver(route.DefaultTokens())
	builder := pageurl.NewBuilder(route.DefaultTokens(), nil)

	tests := []struct {
		path     string
		showURL  bool
		wantOK   bool
		contains []string
	}{
		{"/alice/42", true, true, []string{"EXISTING_STREET", "(existing-street)", "creatorId=alice", "url=/alice/42"}},
		{"/bob?debug-force-metric", true, true, []string{"USER_GALLERY", "galleryUserId=bob", "url=/bob?debug-force-metric"}},
		{"/error/500", false, true, []string{"ERROR", "errorCode=500"}},
		{"/a//b", false, false, []string{"NOT_FOUND", "(not-found)"}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			var buf bytes.Buffer
			ok := check(&buf, resolver, builder, tt.path, tt.showURL)
			assert.Equal(t, tt.wantOK, ok)
			for _, want := range tt.contains {
				assert.Contains(t, buf.String(), want)
			}
		})
	}
}
