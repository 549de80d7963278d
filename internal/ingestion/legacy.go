package ingestion

import (
	"io"
	"strings"

	"eterea/internal/domain"
)

// Legacy export columns, in file order
const (
	legacyDate = iota
	legacyPostedBy
	legacyProfilePic
	legacyProfileURL
	legacyHandle
	legacyTweetURL
	legacyContent
	legacyTags
	legacyComments
	legacyMedia
)

// LegacyCSVParser reads the older bookmark-manager export. Tags are a
// comma-separated list (a tag cannot contain a comma) and media URLs are
// separated by semicolons.
type LegacyCSVParser struct{}

func (LegacyCSVParser) Format() Format { return FormatLegacyCSV }

func (p LegacyCSVParser) Parse(r io.Reader) (*ParseResult, error) {
	return parseCSV(r, FormatLegacyCSV, p.parseRecord)
}

func (LegacyCSVParser) parseRecord(record []string) (*domain.Bookmark, error) {
	tweetedAt, err := optionalDate(field(record, legacyDate), ParseLegacyDate)
	if err != nil {
		return nil, err
	}

	params := domain.BookmarkParams{
		TweetURL:           strings.TrimSpace(field(record, legacyTweetURL)),
		Content:            field(record, legacyContent),
		TweetedAt:          tweetedAt,
		AuthorHandle:       strings.TrimSpace(field(record, legacyHandle)),
		AuthorName:         field(record, legacyPostedBy),
		AuthorProfileURL:   field(record, legacyProfileURL),
		AuthorProfileImage: field(record, legacyProfilePic),
		Comments:           field(record, legacyComments),
	}
	for _, tag := range splitList(field(record, legacyTags), ",") {
		params.AddTag(tag)
	}
	for _, url := range splitList(field(record, legacyMedia), ";") {
		params.AddMedia(url)
	}

	return domain.NewBookmark(params)
}
