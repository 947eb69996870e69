// internal/domain/resource.go
package domain

import "time"

// ResourcePlatform is the social platform a Resource points at.
type ResourcePlatform string

const (
	ResourceYouTube   ResourcePlatform = "youtube"
	ResourceInstagram ResourcePlatform = "instagram"
	ResourceFacebook  ResourcePlatform = "facebook"
)

// Valid reports whether p is a supported resource platform.
func (p ResourcePlatform) Valid() bool {
	switch p {
	case ResourceYouTube, ResourceInstagram, ResourceFacebook:
		return true
	}
	return false
}

// Resource is a curated social profile or channel. It is independent of VideoItem
// even when both point at YouTube.
type Resource struct {
	ID            string           `json:"id"` // resource-<unix ms>-<random>, never content derived
	Name          string           `json:"name"`
	Platform      ResourcePlatform `json:"platform"`
	URL           string           `json:"url"`
	Description   string           `json:"description,omitempty"`
	ThumbnailURL  string           `json:"thumbnailUrl,omitempty"`
	FollowerCount string           `json:"followerCount,omitempty"` // Display string, e.g. "1.2M"
	IsVerified    bool             `json:"isVerified,omitempty"`
	Visibility    Visibility       `json:"visibility"`
	OwnerID       string           `json:"ownerId,omitempty"`
	AddedAt       time.Time        `json:"addedAt"` // Immutable after creation
}

func (r Resource) GetVisibility() Visibility { return r.Visibility }
func (r Resource) GetOwnerID() string        { return r.OwnerID }

// ResourcePatch carries the fields of a partial update. Nil fields keep their
// previous value. ID and AddedAt cannot be patched.
type ResourcePatch struct {
	Name          *string           `json:"name,omitempty"`
	Platform      *ResourcePlatform `json:"platform,omitempty"`
	URL           *string           `json:"url,omitempty"`
	Description   *string           `json:"description,omitempty"`
	ThumbnailURL  *string           `json:"thumbnailUrl,omitempty"`
	FollowerCount *string           `json:"followerCount,omitempty"`
	IsVerified    *bool             `json:"isVerified,omitempty"`
	Visibility    *Visibility       `json:"visibility,omitempty"`
}

// Apply shallow-merges the patch over r and returns the result.
func (p ResourcePatch) Apply(r Resource) Resource {
	if p.Name != nil {
		r.Name = *p.Name
	}
	if p.Platform != nil {
		r.Platform = *p.Platform
	}
	if p.URL != nil {
		r.URL = *p.URL
	}
	if p.Description != nil {
		r.Description = *p.Description
	}
	if p.ThumbnailURL != nil {
		r.ThumbnailURL = *p.ThumbnailURL
	}
	if p.FollowerCount != nil {
		r.FollowerCount = *p.FollowerCount
	}
	if p.IsVerified != nil {
		r.IsVerified = *p.IsVerified
	}
	if p.Visibility != nil {
		r.Visibility = *p.Visibility
	}
	return r
}
