package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveURLPrecedence(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{
			name: "large thumbnail wins",
			in: map[string]any{
				"url": "https://cdn/raw.jpg",
				"thumbnails": map[string]any{
					"large": map[string]any{"url": "https://cdn/large.jpg"},
					"full":  map[string]any{"url": "https://cdn/full.jpg"},
				},
			},
			want: "https://cdn/large.jpg",
		},
		{
			name: "full when no large",
			in: map[string]any{
				"url":        "https://cdn/raw.jpg",
				"thumbnails": map[string]any{"full": map[string]any{"url": "https://cdn/full.jpg"}},
			},
			want: "https://cdn/full.jpg",
		},
		{
			name: "raw url only",
			in:   map[string]any{"url": "https://cdn/raw.jpg"},
			want: "https://cdn/raw.jpg",
		},
		{
			name: "empty large falls through",
			in: map[string]any{
				"url":        "https://cdn/raw.jpg",
				"thumbnails": map[string]any{"large": map[string]any{"url": ""}},
			},
			want: "https://cdn/raw.jpg",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			atts := Attachments(tt.in)
			if assert.Len(t, atts, 1) {
				assert.Equal(t, tt.want, atts[0].ResolveURL())
			}
		})
	}
}

func TestAttachmentsAcceptsArraysAndSkipsJunk(t *testing.T) {
	in := []any{
		map[string]any{"url": "https://cdn/1.png", "filename": "one.png"},
		"not an attachment",
		map[string]any{"filename": "no-url.png", "id": "att2"},
		nil,
	}

	atts := Attachments(in)
	assert.Len(t, atts, 2)
	assert.Equal(t, "one.png", atts[0].Filename)

	withURL := WithURL(atts)
	assert.Len(t, withURL, 1)
	assert.Equal(t, "https://cdn/1.png", withURL[0].URL)
}

func TestAttachmentsNil(t *testing.T) {
	assert.Empty(t, Attachments(nil))
	assert.Empty(t, Attachments("https://cdn/x.png"))
}
