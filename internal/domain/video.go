// internal/domain/video.go
package domain

// VideoPlatform is the hosting platform of a video link, derived once when the entry is created.
type VideoPlatform string

const (
	PlatformYouTube  VideoPlatform = "youtube"
	PlatformFacebook VideoPlatform = "facebook"
	PlatformUnknown  VideoPlatform = "unknown"
)

// UncategorizedLabel is shown for entries without a category.
const UncategorizedLabel = "uncategorized"

// VideoItem is a reference to an externally hosted video.
type VideoItem struct {
	ID              string        `json:"id"`
	URL             string        `json:"url"`             // Original source URL, not normalized
	Platform        VideoPlatform `json:"platform"`        // Set at creation via the platform detector
	Title           string        `json:"title,omitempty"` // Filled lazily by title enrichment
	Category        string        `json:"category,omitempty"`
	ThumbnailURL    string        `json:"thumbnailUrl,omitempty"`
	DurationSeconds *int          `json:"durationSeconds,omitempty"`
	Notes           string        `json:"notes,omitempty"`
	Visibility      Visibility    `json:"visibility"`
	OwnerID         string        `json:"ownerId,omitempty"` // Principal that last upserted the entry
}

func (v VideoItem) GetVisibility() Visibility { return v.Visibility }
func (v VideoItem) GetOwnerID() string        { return v.OwnerID }

// CategoryLabel returns the category, or "uncategorized" when absent.
func (v VideoItem) CategoryLabel() string {
	if v.Category == "" {
		return UncategorizedLabel
	}
	return v.Category
}

// NeedsTitle reports whether the video is a candidate for title enrichment.
func (v VideoItem) NeedsTitle() bool {
	return v.Platform == PlatformYouTube && v.Title == ""
}

// DisplayTitle returns the stored title or a generic label for the platform.
func (v VideoItem) DisplayTitle() string {
	if v.Title != "" {
		return v.Title
	}
	switch v.Platform {
	case PlatformYouTube:
		return "YouTube Video"
	case PlatformFacebook:
		return "Facebook Video"
	default:
		return "Video"
	}
}
