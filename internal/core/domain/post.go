package domain

import "time"

// MediaType identifies the kind of media attached to a post.
type MediaType string

const (
	MediaPhoto MediaType = "photo"
	MediaVideo MediaType = "video"
)

// MediaItem is one piece of media attached to a saved post.
type MediaItem struct {
	// Type is photo or video.
	Type MediaType `json:"type"`

	// URL points at the full-size asset.
	URL string `json:"url"`

	// Thumbnail is a smaller preview, may be empty.
	Thumbnail string `json:"thumbnail,omitempty"`

	// OCRText is text recognised inside the image, may be empty.
	OCRText string `json:"ocr_text,omitempty"`
}

// Engagement holds the interaction counters captured with a post.
type Engagement struct {
	Likes    int `json:"likes"`
	Comments int `json:"comments"`
	Shares   int `json:"shares"`
}

// SavedPost is a social media post captured into the user's library.
type SavedPost struct {
	// ID is the backend row identifier, assigned on insert.
	ID string `json:"id"`

	// ExternalID is the post's identifier on the source platform.
	// Search index rows reference posts by this value.
	ExternalID string `json:"external_id"`

	// Platform names the source network, e.g. "facebook".
	Platform string `json:"platform"`

	// URL is the canonical link to the original post.
	URL string `json:"url"`

	// AuthorName is the display name of the post author.
	AuthorName string `json:"author_name"`

	// AuthorID is the author's identifier on the platform, may be empty.
	AuthorID string `json:"author_id,omitempty"`

	// AuthorAvatar is the author's profile picture URL, may be empty.
	AuthorAvatar string `json:"author_avatar,omitempty"`

	// Text is the full post body as captured.
	Text string `json:"text"`

	// Summary is the assistant-generated abstract, may be empty.
	Summary string `json:"summary,omitempty"`

	// Sentiment is the assistant's sentiment label, may be empty.
	Sentiment string `json:"sentiment,omitempty"`

	// Topics are assistant-assigned topic tags.
	Topics []string `json:"topics,omitempty"`

	// Category is the assistant-assigned category, may be empty.
	Category string `json:"category,omitempty"`

	// PublishedAt is when the post appeared on the platform.
	PublishedAt time.Time `json:"published_at"`

	// Engagement holds like, comment and share counts.
	Engagement Engagement `json:"engagement"`

	// Reactions maps reaction kind to count, e.g. "love" -> 12.
	Reactions map[string]int `json:"reactions,omitempty"`

	// Media lists attached photos and videos.
	Media []MediaItem `json:"media,omitempty"`

	// ImageURL is the primary image chosen at capture time, may be empty.
	ImageURL string `json:"image_url,omitempty"`

	// OCRText is text recognised in the primary image, may be empty.
	OCRText string `json:"ocr_text,omitempty"`

	// CreatedAt is when the post was saved into the library.
	CreatedAt time.Time `json:"created_at"`
}

// PrimaryImage returns the post's lead image URL: the explicit capture
// choice first, then the first photo attachment.
func (p *SavedPost) PrimaryImage() string {
	if p.ImageURL != "" {
		return p.ImageURL
	}
	for _, m := range p.Media {
		if m.Type == MediaPhoto && m.URL != "" {
			return m.URL
		}
	}
	return ""
}

// TotalReactions sums all reaction counters.
func (p *SavedPost) TotalReactions() int {
	total := 0
	for _, n := range p.Reactions {
		total += n
	}
	return total
}
