package domain

import (
	"fmt"
	"strconv"
	"time"
)

// RawPost is the untyped JSON object the scraping API returns for one
// post. Field names and nesting vary between scraper versions, so the
// accessors below probe a list of candidate paths in priority order.
type RawPost map[string]any

// subattachmentKeys are the grouping keys multi-photo posts hide their
// attachments under, probed in this order.
var subattachmentKeys = []string{
	"subattachments",
	"two_photos_subattachments",
	"three_photos_subattachments",
	"four_photos_subattachments",
	"five_photos_subattachments",
	"album_subattachments",
}

// str returns the first non-empty string among the given top-level keys.
func (r RawPost) str(keys ...string) string {
	for _, k := range keys {
		if s, ok := r[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// num returns the first numeric value among the given top-level keys.
// Scraper output mixes float64 (JSON numbers) and numeric strings.
func (r RawPost) num(keys ...string) int {
	for _, k := range keys {
		switch v := r[k].(type) {
		case float64:
			return int(v)
		case int:
			return v
		case string:
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
	}
	return 0
}

// nested returns the string at a two-level path like user.name.
func (r RawPost) nested(outer, inner string) string {
	if m, ok := r[outer].(map[string]any); ok {
		if s, ok := m[inner].(string); ok {
			return s
		}
	}
	return ""
}

// imageFrom inspects a single attachment node for a usable image URL.
// Nodes wrap their payload one level deep under "media" often enough
// that the probe recurses through it.
func imageFrom(node any) string {
	m, ok := node.(map[string]any)
	if !ok {
		return ""
	}
	if img, ok := m["image"].(map[string]any); ok {
		if uri, ok := img["uri"].(string); ok && uri != "" {
			return uri
		}
	}
	if img, ok := m["photo_image"].(map[string]any); ok {
		if uri, ok := img["uri"].(string); ok && uri != "" {
			return uri
		}
	}
	if thumb, ok := m["thumbnail"].(string); ok && thumb != "" {
		return thumb
	}
	if media, ok := m["media"]; ok {
		return imageFrom(media)
	}
	return ""
}

// ocrFrom inspects a single attachment node for recognised image text.
func ocrFrom(node any) string {
	m, ok := node.(map[string]any)
	if !ok {
		return ""
	}
	if s, ok := m["ocrText"].(string); ok && s != "" {
		return s
	}
	if s, ok := m["accessibility_caption"].(string); ok && s != "" {
		return s
	}
	if media, ok := m["media"]; ok {
		return ocrFrom(media)
	}
	return ""
}

// probeAttachments walks the post's attachment structures in priority
// order and returns the first non-empty probe result: direct media
// entries, then plain attachments, then each subattachment group's nodes.
func (r RawPost) probeAttachments(probe func(any) string) string {
	if items, ok := r["media"].([]any); ok {
		for _, item := range items {
			if found := probe(item); found != "" {
				return found
			}
		}
	}
	if items, ok := r["attachments"].([]any); ok {
		for _, item := range items {
			if found := probe(item); found != "" {
				return found
			}
			m, ok := item.(map[string]any)
			if !ok {
				continue
			}
			for _, key := range subattachmentKeys {
				group, ok := m[key].(map[string]any)
				if !ok {
					continue
				}
				nodes, ok := group["nodes"].([]any)
				if !ok {
					continue
				}
				for _, node := range nodes {
					if found := probe(node); found != "" {
						return found
					}
				}
			}
		}
	}
	return ""
}

// ImageURL returns the post's primary image, or "" if none is present.
func (r RawPost) ImageURL() string {
	return r.probeAttachments(imageFrom)
}

// OCRText returns text recognised inside the post's images, or "".
func (r RawPost) OCRText() string {
	if s := r.str("ocrText"); s != "" {
		return s
	}
	return r.probeAttachments(ocrFrom)
}

// reactionKinds are the named reaction counters the scraper reports.
var reactionKinds = []string{"like", "love", "care", "haha", "wow", "sad", "angry"}

// Reactions collects the per-kind reaction counters, skipping zeroes.
func (r RawPost) Reactions() map[string]int {
	out := map[string]int{}
	for _, kind := range reactionKinds {
		if n := r.num(kind + "ReactionCount"); n > 0 {
			out[kind] = n
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// publishedAt parses the post timestamp, preferring the formatted time
// string over the unix timestamp field.
func (r RawPost) publishedAt() time.Time {
	if s := r.str("time", "date"); s != "" {
		for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
			if t, err := time.Parse(layout, s); err == nil {
				return t
			}
		}
	}
	if ts := r.num("timestamp"); ts > 0 {
		return time.Unix(int64(ts), 0).UTC()
	}
	return time.Time{}
}

// NewSavedPost maps a raw scraper payload onto a SavedPost. The mapping
// is lossy on purpose: only fields the library uses survive.
func NewSavedPost(r RawPost) (*SavedPost, error) {
	url := r.str("facebookUrl", "url", "postUrl")
	text := r.str("text", "content", "message")
	image := r.ImageURL()
	if url == "" && text == "" && image == "" {
		return nil, fmt.Errorf("%w: payload has no url, text or media", ErrExtractionFailed)
	}

	author := r.nested("user", "name")
	if author == "" {
		author = r.str("userName", "authorName")
	}
	if author == "" {
		author = "Unknown"
	}

	post := &SavedPost{
		ExternalID:   r.str("postId", "post_id", "id"),
		Platform:     "facebook",
		URL:          url,
		AuthorName:   author,
		AuthorID:     r.nested("user", "id"),
		AuthorAvatar: r.nested("user", "profilePic"),
		Text:         text,
		PublishedAt:  r.publishedAt(),
		Engagement: Engagement{
			Likes:    r.num("likes", "likesCount"),
			Comments: r.num("comments", "commentsCount"),
			Shares:   r.num("shares", "sharesCount"),
		},
		Reactions: r.Reactions(),
		ImageURL:  image,
		OCRText:   r.OCRText(),
		CreatedAt: time.Now().UTC(),
	}
	if post.ImageURL != "" {
		post.Media = []MediaItem{{
			Type:    MediaPhoto,
			URL:     post.ImageURL,
			OCRText: post.OCRText,
		}}
	}
	return post, nil
}
