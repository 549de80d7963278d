package ingestion

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"eterea/internal/domain"
)

// rawBookmark accepts the field spellings of the known JSON exports.
// For each concept the first alias present wins.
type rawBookmark struct {
	TweetURL *string `json:"tweet_url"`
	URL      *string `json:"url"`

	FullText *string `json:"full_text"`
	Text     *string `json:"text"`
	Content  *string `json:"content"`

	NoteTweetText *string `json:"note_tweet_text"`

	TweetedAt *string `json:"tweeted_at"`
	CreatedAt *string `json:"created_at"`

	ScreenName   *string `json:"screen_name"`
	AuthorHandle *string `json:"author_handle"`
	Username     *string `json:"username"`

	Name        *string `json:"name"`
	AuthorName  *string `json:"author_name"`
	DisplayName *string `json:"display_name"`

	ProfileImageURLHTTPS *string `json:"profile_image_url_https"`
	ProfileImage         *string `json:"profile_image"`

	Tags  []string   `json:"tags"`
	Media []rawMedia `json:"media"`
}

type rawMedia struct {
	URL      *string `json:"url"`
	MediaURL *string `json:"media_url"`
}

// JSONParser reads a JSON array of bookmark objects
type JSONParser struct{}

func (JSONParser) Format() Format { return FormatJSON }

// Parse decodes the top-level array, then each entry on its own so that a
// malformed entry is skipped without losing the rest.
func (p JSONParser) Parse(r io.Reader) (*ParseResult, error) {
	var entries []json.RawMessage
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("expected a JSON array of bookmarks: %w", err)
	}

	res := &ParseResult{Format: FormatJSON, Bookmarks: make([]*domain.Bookmark, 0, len(entries))}
	for i, entry := range entries {
		var raw rawBookmark
		if err := json.Unmarshal(entry, &raw); err != nil {
			res.skip(i+1, err)
			continue
		}
		b, err := p.convert(raw)
		if err != nil {
			res.skip(i+1, err)
			continue
		}
		res.Bookmarks = append(res.Bookmarks, b)
	}
	return res, nil
}

func (JSONParser) convert(raw rawBookmark) (*domain.Bookmark, error) {
	var tweetedAt time.Time
	if date := first(raw.TweetedAt, raw.CreatedAt); date != nil {
		t, err := ParseJSONDate(*date)
		if err != nil {
			return nil, err
		}
		tweetedAt = t
	}

	params := domain.BookmarkParams{
		TweetURL:           value(first(raw.TweetURL, raw.URL)),
		Content:            value(first(raw.FullText, raw.Text, raw.Content)),
		NoteText:           value(raw.NoteTweetText),
		TweetedAt:          tweetedAt,
		AuthorHandle:       value(first(raw.ScreenName, raw.AuthorHandle, raw.Username)),
		AuthorName:         value(first(raw.Name, raw.AuthorName, raw.DisplayName)),
		AuthorProfileImage: value(first(raw.ProfileImageURLHTTPS, raw.ProfileImage)),
	}
	for _, tag := range raw.Tags {
		params.AddTag(tag)
	}
	for _, m := range raw.Media {
		params.AddMedia(value(first(m.URL, m.MediaURL)))
	}

	return domain.NewBookmark(params)
}

// first returns the first non-nil alias
func first(aliases ...*string) *string {
	for _, a := range aliases {
		if a != nil {
			return a
		}
	}
	return nil
}

func value(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
