package domain

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Bookmark is a single saved post with its author, tags and media.
// TweetURL is the natural key: at most one stored bookmark per URL.
type Bookmark struct {
	ID         string    `json:"id"`
	TweetURL   string    `json:"tweet_url"`
	Content    string    `json:"content"`
	NoteText   string    `json:"note_text,omitempty"`
	TweetedAt  time.Time `json:"tweeted_at"`
	ImportedAt time.Time `json:"imported_at"`

	AuthorHandle       string `json:"author_handle"`
	AuthorName         string `json:"author_name"`
	AuthorProfileURL   string `json:"author_profile_url,omitempty"`
	AuthorProfileImage string `json:"author_profile_image,omitempty"`

	Tags       []string `json:"tags"`
	Comments   string   `json:"comments,omitempty"`
	Media      []Media  `json:"media"`
	IsFavorite bool     `json:"is_favorite"`

	// SearchText feeds the full-text index. Never set it directly.
	SearchText string `json:"-"`
}

// BookmarkParams carries the raw field values a parser extracted for one
// record. NewBookmark is the only place they are validated.
type BookmarkParams struct {
	TweetURL           string
	Content            string
	NoteText           string
	TweetedAt          time.Time
	AuthorHandle       string
	AuthorName         string
	AuthorProfileURL   string
	AuthorProfileImage string
	Comments           string
	Tags               []string
	MediaURLs          []string
}

// AddTag appends tag unless it is empty or already present (exact match).
func (p *BookmarkParams) AddTag(tag string) {
	if tag == "" {
		return
	}
	for _, t := range p.Tags {
		if t == tag {
			return
		}
	}
	p.Tags = append(p.Tags, tag)
}

// AddMedia appends a media URL unless it is empty.
func (p *BookmarkParams) AddMedia(url string) {
	if url == "" {
		return
	}
	p.MediaURLs = append(p.MediaURLs, url)
}

// Validate reports every missing required field at once.
func (p BookmarkParams) Validate() error {
	var missing []string
	if p.TweetURL == "" {
		missing = append(missing, "tweet_url")
	}
	if p.TweetedAt.IsZero() {
		missing = append(missing, "tweeted_at")
	}
	if p.AuthorHandle == "" {
		missing = append(missing, "author_handle")
	}
	if len(missing) > 0 {
		return &MissingFieldError{Fields: missing}
	}
	return nil
}

// NewBookmark builds a canonical bookmark from parser output. It assigns a
// fresh ID and import time, deduplicates tags, classifies media and computes
// the search text. Timestamps keep whole-second precision, as stored.
func NewBookmark(p BookmarkParams) (*Bookmark, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	b := &Bookmark{
		ID:                 uuid.NewString(),
		TweetURL:           p.TweetURL,
		Content:            p.Content,
		NoteText:           p.NoteText,
		TweetedAt:          p.TweetedAt.UTC().Truncate(time.Second),
		ImportedAt:         time.Now().UTC().Truncate(time.Second),
		AuthorHandle:       p.AuthorHandle,
		AuthorName:         p.AuthorName,
		AuthorProfileURL:   p.AuthorProfileURL,
		AuthorProfileImage: p.AuthorProfileImage,
		Comments:           p.Comments,
		Tags:               []string{},
		Media:              []Media{},
	}
	if b.AuthorName == "" {
		b.AuthorName = b.AuthorHandle
	}

	// Re-run the tag rules so params filled without AddTag obey them too.
	var tags BookmarkParams
	for _, t := range p.Tags {
		tags.AddTag(t)
	}
	if tags.Tags != nil {
		b.Tags = tags.Tags
	}

	for _, u := range p.MediaURLs {
		if u == "" {
			continue
		}
		b.Media = append(b.Media, Media{URL: u, Type: ClassifyMedia(u)})
	}

	b.ComputeSearchText()
	return b, nil
}

// ComputeSearchText rebuilds SearchText from the current field values.
func (b *Bookmark) ComputeSearchText() {
	parts := []string{b.Content, b.AuthorHandle, b.AuthorName}
	if b.NoteText != "" {
		parts = append(parts, b.NoteText)
	}
	if b.Comments != "" {
		parts = append(parts, b.Comments)
	}
	parts = append(parts, b.Tags...)
	b.SearchText = strings.Join(parts, " ")
}

// TagsText is the space-joined tag list stored in the search index.
func (b *Bookmark) TagsText() string {
	return strings.Join(b.Tags, " ")
}

// HasMedia reports whether the bookmark carries any attachment.
func (b *Bookmark) HasMedia() bool {
	return len(b.Media) > 0
}

var (
	hashtagPattern = regexp.MustCompile(`#(\w+)`)
	mentionPattern = regexp.MustCompile(`@(\w+)`)
)

// Hashtags returns the lower-cased hashtags found in Content.
func (b *Bookmark) Hashtags() []string {
	return captureLower(hashtagPattern, b.Content)
}

// Mentions returns the lower-cased @handles found in Content.
func (b *Bookmark) Mentions() []string {
	return captureLower(mentionPattern, b.Content)
}

func captureLower(re *regexp.Regexp, s string) []string {
	matches := re.FindAllStringSubmatch(s, -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, strings.ToLower(m[1]))
	}
	return out
}
