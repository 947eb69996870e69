// Package platform classifies URLs into content platforms and extracts the
// identifiers the stores need. Every function is pure.
package platform

import (
	"net/url"
	"strings"

	"alcyxob/hoops-trainer/internal/domain"
)

// parse accepts absolute URLs only and returns the lowercased host without "www.".
func parse(raw string) (*url.URL, string, bool) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, "", false
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	return u, host, true
}

func segments(u *url.URL) []string {
	var out []string
	for _, s := range strings.Split(u.Path, "/") {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func isYouTubeHost(host string) bool {
	return strings.Contains(host, "youtube.com") || strings.Contains(host, "youtu.be")
}

func isFacebookVideoHost(host string) bool {
	return strings.Contains(host, "facebook.com") || strings.Contains(host, "fb.watch")
}

// DetectVideoPlatform classifies a video URL. Unparseable URLs are "unknown".
func DetectVideoPlatform(raw string) domain.VideoPlatform {
	_, host, ok := parse(raw)
	if !ok {
		return domain.PlatformUnknown
	}
	switch {
	case isYouTubeHost(host):
		return domain.PlatformYouTube
	case isFacebookVideoHost(host):
		return domain.PlatformFacebook
	default:
		return domain.PlatformUnknown
	}
}

// ExtractYouTubeID returns the video id of a YouTube URL. It understands
// youtu.be/<id> short links, ?v=<id> watch links, and /shorts/<id> or /embed/<id> paths.
func ExtractYouTubeID(raw string) (string, bool) {
	u, host, ok := parse(raw)
	if !ok || !isYouTubeHost(host) {
		return "", false
	}
	segs := segments(u)
	if strings.Contains(host, "youtu.be") {
		if len(segs) == 0 {
			return "", false
		}
		return segs[0], true
	}
	if v := u.Query().Get("v"); v != "" {
		return v, true
	}
	for i, s := range segs {
		if (s == "shorts" || s == "embed") && i+1 < len(segs) {
			return segs[i+1], true
		}
	}
	return "", false
}

// EmbedCheck is the outcome of an embeddability check. Reason and Hint are meant
// for direct display next to the form field.
type EmbedCheck struct {
	OK     bool
	Reason string
	Hint   string
}

// ValidateFacebookEmbeddable accepts only the permalink shapes the Facebook video
// plugin can render: fb.watch links, /watch?v=, /videos/<id>, /reel/<id>,
// /share/v/<id>, /share/r/<id> and video.php?v=.
func ValidateFacebookEmbeddable(raw string) EmbedCheck {
	u, host, ok := parse(raw)
	if !ok {
		return EmbedCheck{Reason: "The URL is not valid.", Hint: "Paste the full link, starting with https://."}
	}
	if !isFacebookVideoHost(host) {
		return EmbedCheck{Reason: "This is not a Facebook link."}
	}
	if strings.Contains(host, "fb.watch") {
		if len(segments(u)) > 0 {
			return EmbedCheck{OK: true}
		}
		return EmbedCheck{Reason: "This fb.watch link has no video id.", Hint: facebookHint}
	}

	segs := segments(u)
	q := u.Query()
	switch {
	case len(segs) >= 1 && segs[0] == "watch" && q.Get("v") != "":
		return EmbedCheck{OK: true}
	case len(segs) >= 1 && segs[0] == "video.php" && q.Get("v") != "":
		return EmbedCheck{OK: true}
	case len(segs) >= 2 && segs[0] == "reel":
		return EmbedCheck{OK: true}
	case len(segs) >= 3 && segs[0] == "share" && (segs[1] == "v" || segs[1] == "r"):
		return EmbedCheck{OK: true}
	}
	for i, s := range segs {
		if s == "videos" && i+1 < len(segs) {
			return EmbedCheck{OK: true}
		}
	}
	return EmbedCheck{Reason: "This Facebook link can't be embedded.", Hint: facebookHint}
}

const facebookHint = "Open the video itself and copy its link (for example facebook.com/<page>/videos/<id>, facebook.com/watch?v=<id> or facebook.com/reel/<id>)."

// FacebookEmbedURL returns the video plugin URL for a Facebook permalink.
func FacebookEmbedURL(raw string) string {
	return "https://www.facebook.com/plugins/video.php?href=" + url.QueryEscape(raw) + "&show_text=false"
}

// EmbedURL returns the URL to put in an iframe for v.
func EmbedURL(v domain.VideoItem) string {
	switch v.Platform {
	case domain.PlatformYouTube:
		if id, ok := ExtractYouTubeID(v.URL); ok {
			return "https://www.youtube.com/embed/" + id
		}
	case domain.PlatformFacebook:
		return FacebookEmbedURL(v.URL)
	}
	return v.URL
}
