package portfolio

import (
	"errors"
	"net/url"
	"time"
)

type ItemType string

const (
	TypeImage ItemType = "image"
	TypeVideo ItemType = "video"
)

var (
	ErrMissingRequiredFields = errors.New("missing required fields")
	ErrInvalidItemType       = errors.New("invalid item type")
	ErrInvalidURL            = errors.New("invalid url")
)

// Categories is the enumerated set of marketing-service categories
// offered to the admin upload form. Category membership is not enforced
// on write.
var Categories = []string{
	"إعلانات مدفوعة",
	"سوشال ميديا",
	"هوية بصرية",
	"موشن جرافيك",
	"تصميم جرافيك",
	"تدريب",
	"أخرى",
}

// Item is a single portfolio entry. ID and CreatedAt are assigned by the
// store at creation and never mutated. Thumbnail is meaningful mainly for
// video items but is stored regardless of the type.
type Item struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Category    string    `json:"category"`
	Type        ItemType  `json:"type"`
	URL         string    `json:"url"`
	Thumbnail   string    `json:"thumbnail,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Validate checks the fields required on create and full replace.
func (i *Item) Validate() error {
	if i.Title == "" || i.Category == "" || i.Type == "" || i.URL == "" {
		return ErrMissingRequiredFields
	}
	if i.Type != TypeImage && i.Type != TypeVideo {
		return ErrInvalidItemType
	}
	if !urlIsValid(i.URL) {
		return ErrInvalidURL
	}
	if i.Thumbnail != "" && !urlIsValid(i.Thumbnail) {
		return ErrInvalidURL
	}
	return nil
}

func urlIsValid(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return parsed.Scheme != "" && parsed.Host != ""
}
