package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRawPost_ImageURL_DirectImage tests the image.uri candidate path
func TestRawPost_ImageURL_DirectImage(t *testing.T) {
	raw := RawPost{
		"media": []any{
			map[string]any{"image": map[string]any{"uri": "https://cdn.example/full.jpg"}},
		},
	}

	assert.Equal(t, "https://cdn.example/full.jpg", raw.ImageURL())
}

// TestRawPost_ImageURL_Priority tests that image.uri beats photo_image and thumbnail
func TestRawPost_ImageURL_Priority(t *testing.T) {
	raw := RawPost{
		"media": []any{
			map[string]any{
				"image":       map[string]any{"uri": "https://cdn.example/a.jpg"},
				"photo_image": map[string]any{"uri": "https://cdn.example/b.jpg"},
				"thumbnail":   "https://cdn.example/c.jpg",
			},
		},
	}

	assert.Equal(t, "https://cdn.example/a.jpg", raw.ImageURL())
}

// TestRawPost_ImageURL_PhotoImageFallback tests photo_image.uri when image is absent
func TestRawPost_ImageURL_PhotoImageFallback(t *testing.T) {
	raw := RawPost{
		"media": []any{
			map[string]any{
				"photo_image": map[string]any{"uri": "https://cdn.example/b.jpg"},
				"thumbnail":   "https://cdn.example/c.jpg",
			},
		},
	}

	assert.Equal(t, "https://cdn.example/b.jpg", raw.ImageURL())
}

// TestRawPost_ImageURL_ThumbnailFallback tests thumbnail as the last direct candidate
func TestRawPost_ImageURL_ThumbnailFallback(t *testing.T) {
	raw := RawPost{
		"media": []any{
			map[string]any{"thumbnail": "https://cdn.example/c.jpg"},
		},
	}

	assert.Equal(t, "https://cdn.example/c.jpg", raw.ImageURL())
}

// TestRawPost_ImageURL_MediaWrapper tests recursion through a media wrapper node
func TestRawPost_ImageURL_MediaWrapper(t *testing.T) {
	raw := RawPost{
		"attachments": []any{
			map[string]any{
				"media": map[string]any{
					"image": map[string]any{"uri": "https://cdn.example/wrapped.jpg"},
				},
			},
		},
	}

	assert.Equal(t, "https://cdn.example/wrapped.jpg", raw.ImageURL())
}

// TestRawPost_ImageURL_Subattachments tests multi-photo subattachment groups
func TestRawPost_ImageURL_Subattachments(t *testing.T) {
	for _, key := range subattachmentKeys {
		raw := RawPost{
			"attachments": []any{
				map[string]any{
					key: map[string]any{
						"nodes": []any{
							map[string]any{"image": map[string]any{"uri": "https://cdn.example/album.jpg"}},
						},
					},
				},
			},
		}

		assert.Equal(t, "https://cdn.example/album.jpg", raw.ImageURL(), "key %s", key)
	}
}

// TestRawPost_ImageURL_None tests a payload with no media at all
func TestRawPost_ImageURL_None(t *testing.T) {
	raw := RawPost{"text": "plain text post"}

	assert.Empty(t, raw.ImageURL())
}

// TestRawPost_ImageURL_MalformedNodes tests that non-map nodes are skipped
func TestRawPost_ImageURL_MalformedNodes(t *testing.T) {
	raw := RawPost{
		"media": []any{
			"not an object",
			42,
			map[string]any{"image": map[string]any{"uri": "https://cdn.example/ok.jpg"}},
		},
	}

	assert.Equal(t, "https://cdn.example/ok.jpg", raw.ImageURL())
}

// TestRawPost_OCRText_TopLevel tests the top-level ocrText field
func TestRawPost_OCRText_TopLevel(t *testing.T) {
	raw := RawPost{"ocrText": "text in image"}

	assert.Equal(t, "text in image", raw.OCRText())
}

// TestRawPost_OCRText_AccessibilityCaption tests the caption fallback inside media
func TestRawPost_OCRText_AccessibilityCaption(t *testing.T) {
	raw := RawPost{
		"media": []any{
			map[string]any{"accessibility_caption": "May be an image of a cat"},
		},
	}

	assert.Equal(t, "May be an image of a cat", raw.OCRText())
}

// TestRawPost_OCRText_PrefersOcrText tests ocrText beating accessibility_caption
func TestRawPost_OCRText_PrefersOcrText(t *testing.T) {
	raw := RawPost{
		"media": []any{
			map[string]any{
				"ocrText":               "recognised text",
				"accessibility_caption": "generic caption",
			},
		},
	}

	assert.Equal(t, "recognised text", raw.OCRText())
}

// TestRawPost_Reactions tests collection of named reaction counters
func TestRawPost_Reactions(t *testing.T) {
	raw := RawPost{
		"loveReactionCount":  float64(12),
		"hahaReactionCount":  float64(3),
		"angryReactionCount": float64(0),
	}

	reactions := raw.Reactions()
	assert.Equal(t, 12, reactions["love"])
	assert.Equal(t, 3, reactions["haha"])
	assert.NotContains(t, reactions, "angry")
}

// TestRawPost_Reactions_Empty tests that all-zero counters yield nil
func TestRawPost_Reactions_Empty(t *testing.T) {
	raw := RawPost{"text": "no reactions"}

	assert.Nil(t, raw.Reactions())
}

// TestNewSavedPost_FullPayload tests mapping a complete scraper payload
func TestNewSavedPost_FullPayload(t *testing.T) {
	raw := RawPost{
		"postId":      "1234567890",
		"facebookUrl": "https://facebook.com/posts/1234567890",
		"text":        "Learning Go one package at a time",
		"user": map[string]any{
			"id":         "42",
			"name":       "Ada Lovelace",
			"profilePic": "https://cdn.example/ada.jpg",
		},
		"likes":    float64(10),
		"comments": float64(2),
		"shares":   float64(1),
		"time":     "2026-01-15T12:30:00Z",
		"media": []any{
			map[string]any{"image": map[string]any{"uri": "https://cdn.example/post.jpg"}},
		},
	}

	post, err := NewSavedPost(raw)
	require.NoError(t, err)

	assert.Equal(t, "1234567890", post.ExternalID)
	assert.Equal(t, "facebook", post.Platform)
	assert.Equal(t, "https://facebook.com/posts/1234567890", post.URL)
	assert.Equal(t, "Ada Lovelace", post.AuthorName)
	assert.Equal(t, "42", post.AuthorID)
	assert.Equal(t, "Learning Go one package at a time", post.Text)
	assert.Equal(t, 10, post.Engagement.Likes)
	assert.Equal(t, 2, post.Engagement.Comments)
	assert.Equal(t, 1, post.Engagement.Shares)
	assert.Equal(t, "https://cdn.example/post.jpg", post.ImageURL)
	assert.Equal(t, time.Date(2026, 1, 15, 12, 30, 0, 0, time.UTC), post.PublishedAt)
	assert.False(t, post.CreatedAt.IsZero())
	require.Len(t, post.Media, 1)
	assert.Equal(t, MediaPhoto, post.Media[0].Type)
}

// TestNewSavedPost_UnknownAuthor tests the author fallback
func TestNewSavedPost_UnknownAuthor(t *testing.T) {
	raw := RawPost{"text": "anonymous wisdom"}

	post, err := NewSavedPost(raw)
	require.NoError(t, err)

	assert.Equal(t, "Unknown", post.AuthorName)
}

// TestNewSavedPost_UnixTimestamp tests falling back to the unix timestamp field
func TestNewSavedPost_UnixTimestamp(t *testing.T) {
	raw := RawPost{
		"text":      "older scraper format",
		"timestamp": float64(1700000000),
	}

	post, err := NewSavedPost(raw)
	require.NoError(t, err)

	assert.Equal(t, time.Unix(1700000000, 0).UTC(), post.PublishedAt)
}

// TestNewSavedPost_EmptyPayload tests rejection of a payload with nothing usable
func TestNewSavedPost_EmptyPayload(t *testing.T) {
	_, err := NewSavedPost(RawPost{})

	assert.ErrorIs(t, err, ErrExtractionFailed)
}

// TestNewSavedPost_CounterVariants tests alternate counter field names
func TestNewSavedPost_CounterVariants(t *testing.T) {
	raw := RawPost{
		"url":           "https://facebook.com/posts/99",
		"content":       "alternate field names",
		"likesCount":    "25",
		"commentsCount": float64(5),
	}

	post, err := NewSavedPost(raw)
	require.NoError(t, err)

	assert.Equal(t, 25, post.Engagement.Likes)
	assert.Equal(t, 5, post.Engagement.Comments)
}
