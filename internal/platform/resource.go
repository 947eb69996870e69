package platform

import (
	"strings"

	"alcyxob/hoops-trainer/internal/domain"
)

// DetectResourcePlatform classifies a profile or channel URL. Unlike
// DetectVideoPlatform there is no "unknown" result: unclassifiable URLs report false.
func DetectResourcePlatform(raw string) (domain.ResourcePlatform, bool) {
	_, host, ok := parse(raw)
	if !ok {
		return "", false
	}
	switch {
	case isYouTubeHost(host):
		return domain.ResourceYouTube, true
	case strings.Contains(host, "instagram.com"):
		return domain.ResourceInstagram, true
	case strings.Contains(host, "facebook.com") || strings.Contains(host, "fb.com"):
		return domain.ResourceFacebook, true
	}
	return "", false
}

// instagram paths that point at content rather than a profile
var instagramReserved = map[string]bool{
	"p": true, "reel": true, "reels": true, "tv": true, "stories": true, "explore": true,
}

// ExtractResourceName derives a display name from the URL path, falling back to
// a generic label per platform.
func ExtractResourceName(raw string, p domain.ResourcePlatform) string {
	u, _, ok := parse(raw)
	if !ok {
		return "Resource"
	}
	segs := segments(u)
	first := ""
	if len(segs) > 0 {
		first = segs[0]
	}

	switch p {
	case domain.ResourceYouTube:
		switch {
		case strings.HasPrefix(first, "@") && len(first) > 1:
			return strings.TrimPrefix(first, "@")
		case first == "c" && len(segs) > 1:
			return segs[1]
		case first == "user" && len(segs) > 1:
			return segs[1]
		case first == "user":
			return "YouTube User"
		}
		return "YouTube Channel"

	case domain.ResourceInstagram:
		if first != "" && !instagramReserved[strings.ToLower(first)] {
			return first
		}
		return "Instagram Profile"

	case domain.ResourceFacebook:
		if first == "pages" {
			if len(segs) > 1 {
				return segs[1]
			}
			return "Facebook Page"
		}
		if first != "" && first != "profile.php" {
			return first
		}
		return "Facebook Page"
	}
	return "Resource"
}

// ExtractYouTubeChannel derives channel identity from a YouTube URL. Video links
// map to a per-video placeholder channel ("video-<id>") because the real channel
// is not part of the URL.
func ExtractYouTubeChannel(raw string) (domain.ChannelInfo, bool) {
	u, host, ok := parse(raw)
	if !ok || !isYouTubeHost(host) {
		return domain.ChannelInfo{}, false
	}
	segs := segments(u)
	if !strings.Contains(host, "youtu.be") && len(segs) > 0 {
		first := segs[0]
		switch {
		case strings.HasPrefix(first, "@") && len(first) > 1:
			handle := strings.TrimPrefix(first, "@")
			return channel("@"+handle, handle, "https://www.youtube.com/@"+handle), true
		case first == "c" && len(segs) > 1:
			return channel("@"+segs[1], segs[1], "https://www.youtube.com/@"+segs[1]), true
		case first == "user" && len(segs) > 1:
			return channel(segs[1], segs[1], "https://www.youtube.com/user/"+segs[1]), true
		}
	}
	if id, ok := ExtractYouTubeID(raw); ok {
		return channel("video-"+id, "YouTube Channel", "https://www.youtube.com/watch?v="+id), true
	}
	return channel("youtube-generic", "YouTube Channel", "https://www.youtube.com/"), true
}

func channel(id, name, link string) domain.ChannelInfo {
	return domain.ChannelInfo{ChannelID: id, ChannelName: name, ChannelURL: link}
}
