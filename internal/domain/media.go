package domain

import "strings"

// MediaType classifies an attachment URL
type MediaType int

const (
	MediaUnknown MediaType = iota
	MediaImage
	MediaVideo
	MediaGif
)

// String returns the stored name of the media type
func (t MediaType) String() string {
	switch t {
	case MediaImage:
		return "image"
	case MediaVideo:
		return "video"
	case MediaGif:
		return "gif"
	default:
		return "unknown"
	}
}

// ParseMediaType is the inverse of MediaType.String
func ParseMediaType(s string) MediaType {
	switch s {
	case "image":
		return MediaImage
	case "video":
		return MediaVideo
	case "gif":
		return MediaGif
	default:
		return MediaUnknown
	}
}

// MarshalText stores the type by name in JSON output
func (t MediaType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText accepts the names produced by MarshalText
func (t *MediaType) UnmarshalText(b []byte) error {
	*t = ParseMediaType(string(b))
	return nil
}

// Media is one attachment of a bookmark
type Media struct {
	URL  string    `json:"url"`
	Type MediaType `json:"media_type"`
}

var (
	videoMarkers = []string{".mp4", "video"}
	imageMarkers = []string{".jpg", ".jpeg", ".png", ".webp", "pbs.twimg.com"}
)

// ClassifyMedia infers the attachment type from URL patterns.
// Animated images win over video, video over image.
func ClassifyMedia(url string) MediaType {
	lower := strings.ToLower(url)
	switch {
	case strings.Contains(lower, "gif"):
		return MediaGif
	case containsAny(lower, videoMarkers):
		return MediaVideo
	case containsAny(lower, imageMarkers):
		return MediaImage
	default:
		return MediaUnknown
	}
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
