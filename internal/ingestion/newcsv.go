package ingestion

import (
	"io"
	"strings"

	"eterea/internal/domain"
)

// New export columns, in file order
const (
	newProfileImage = iota
	newScreenName
	newName
	newFullText
	newNoteText
	newTweetedAt
	newTweetURL
)

// NewCSVParser reads the platform's own bookmark export. It carries no
// tags, comments or media.
type NewCSVParser struct{}

func (NewCSVParser) Format() Format { return FormatNewCSV }

func (p NewCSVParser) Parse(r io.Reader) (*ParseResult, error) {
	return parseCSV(r, FormatNewCSV, p.parseRecord)
}

func (NewCSVParser) parseRecord(record []string) (*domain.Bookmark, error) {
	tweetedAt, err := optionalDate(field(record, newTweetedAt), ParseNewDate)
	if err != nil {
		return nil, err
	}

	return domain.NewBookmark(domain.BookmarkParams{
		TweetURL:           strings.TrimSpace(field(record, newTweetURL)),
		Content:            field(record, newFullText),
		NoteText:           field(record, newNoteText),
		TweetedAt:          tweetedAt,
		AuthorHandle:       strings.TrimSpace(field(record, newScreenName)),
		AuthorName:         field(record, newName),
		AuthorProfileImage: field(record, newProfileImage),
	})
}
