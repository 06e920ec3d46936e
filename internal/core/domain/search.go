package domain

import "strings"

// SearchMode selects how the library is searched.
type SearchMode string

const (
	// SearchKeyword filters the already-loaded post list by substring.
	SearchKeyword SearchMode = "keyword"

	// SearchSemantic queries the backend's vector index.
	SearchSemantic SearchMode = "semantic"
)

// IsValid reports whether m is a known search mode.
func (m SearchMode) IsValid() bool {
	return m == SearchKeyword || m == SearchSemantic
}

// Description returns a short label for display.
func (m SearchMode) Description() string {
	switch m {
	case SearchSemantic:
		return "Semantic (AI)"
	default:
		return "Keyword"
	}
}

// SearchResult is a single search hit in either mode. Keyword hits carry
// the whole post text with score 1.0; semantic hits carry index chunks.
type SearchResult struct {
	// Content is the matched text.
	Content string `json:"content"`

	// PostID is the external id of the post the hit belongs to.
	PostID string `json:"post_id,omitempty"`

	// Author is the post author, may be empty.
	Author string `json:"author,omitempty"`

	// URL links to the original post, may be empty.
	URL string `json:"url,omitempty"`

	// Score is the relevance score, 0 to 1.
	Score float64 `json:"score"`
}

// chunkSeparator joins index chunks of the same post when hits are merged.
const chunkSeparator = " ... "

// MergeResultsByPost collapses multiple hits on the same post into one
// result per post. Distinct chunk texts are joined with an ellipsis, the
// best score wins, and first-appearance order is preserved. Hits without
// a post id pass through unmerged.
func MergeResultsByPost(results []SearchResult) []SearchResult {
	merged := make([]SearchResult, 0, len(results))
	byPost := map[string]int{}
	for _, hit := range results {
		if hit.PostID == "" {
			merged = append(merged, hit)
			continue
		}
		idx, seen := byPost[hit.PostID]
		if !seen {
			byPost[hit.PostID] = len(merged)
			merged = append(merged, hit)
			continue
		}
		prev := &merged[idx]
		if hit.Content != "" && !strings.Contains(prev.Content, hit.Content) {
			if prev.Content == "" {
				prev.Content = hit.Content
			} else {
				prev.Content += chunkSeparator + hit.Content
			}
		}
		if hit.Score > prev.Score {
			prev.Score = hit.Score
		}
	}
	return merged
}

// FilterPostsKeyword returns the posts whose text, summary or author
// contains the query, case-insensitively. An empty query matches all.
func FilterPostsKeyword(posts []SavedPost, query string) []SavedPost {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return posts
	}
	matched := make([]SavedPost, 0, len(posts))
	for _, p := range posts {
		if strings.Contains(strings.ToLower(p.Text), query) ||
			strings.Contains(strings.ToLower(p.Summary), query) ||
			strings.Contains(strings.ToLower(p.AuthorName), query) {
			matched = append(matched, p)
		}
	}
	return matched
}
