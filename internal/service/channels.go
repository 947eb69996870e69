package service

import (
	"sort"

	"alcyxob/hoops-trainer/internal/domain"
	"alcyxob/hoops-trainer/internal/platform"
)

// CollectChannels groups YouTube videos by the channel their URL points at.
// The first video seen for a channel becomes its LatestVideo, since the
// library lists newest entries first. Channels are ordered by video count.
func CollectChannels(videos []domain.VideoItem) []domain.ChannelInfo {
	byID := make(map[string]*domain.ChannelInfo)
	var order []string

	for _, v := range videos {
		if v.Platform != domain.PlatformYouTube {
			continue
		}
		info, ok := platform.ExtractYouTubeChannel(v.URL)
		if !ok {
			continue
		}
		existing, seen := byID[info.ChannelID]
		if !seen {
			info.LatestVideo = &domain.ChannelVideo{
				ID:           v.ID,
				Title:        v.DisplayTitle(),
				ThumbnailURL: v.ThumbnailURL,
				URL:          v.URL,
			}
			byID[info.ChannelID] = &info
			order = append(order, info.ChannelID)
			existing = &info
		}
		existing.VideoCount++
	}

	out := make([]domain.ChannelInfo, 0, len(order))
	for _, id := range order {
		out = append(out, *byID[id])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].VideoCount > out[j].VideoCount
	})
	return out
}
