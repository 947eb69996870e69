package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alcyxob/hoops-trainer/internal/domain"
)

func TestCollectChannels(t *testing.T) {
	videos := []domain.VideoItem{
		{ID: "v1", URL: "https://www.youtube.com/@coach/videos", Platform: domain.PlatformYouTube, Title: "Newest"},
		{ID: "v2", URL: "https://youtu.be/abc", Platform: domain.PlatformYouTube},
		{ID: "v3", URL: "https://www.youtube.com/@coach", Platform: domain.PlatformYouTube},
		{ID: "v4", URL: "https://www.facebook.com/watch?v=1", Platform: domain.PlatformFacebook},
		{ID: "v5", URL: "https://www.youtube.com/c/coach", Platform: domain.PlatformYouTube},
	}

	channels := CollectChannels(videos)
	require.Len(t, channels, 2)

	assert.Equal(t, "@coach", channels[0].ChannelID)
	assert.Equal(t, 3, channels[0].VideoCount, "@coach and /c/coach are the same channel")
	require.NotNil(t, channels[0].LatestVideo)
	assert.Equal(t, "v1", channels[0].LatestVideo.ID)
	assert.Equal(t, "Newest", channels[0].LatestVideo.Title)

	assert.Equal(t, "video-abc", channels[1].ChannelID)
	assert.Equal(t, 1, channels[1].VideoCount)
	assert.Equal(t, "YouTube Video", channels[1].LatestVideo.Title)
}

func TestCollectChannels_Empty(t *testing.T) {
	assert.Empty(t, CollectChannels(nil))
	assert.NotNil(t, CollectChannels(nil))
}
