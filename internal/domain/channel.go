package domain

// ChannelVideo is the sample video shown for a channel.
type ChannelVideo struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
	URL          string `json:"url"`
}

// ChannelInfo groups library videos coming from the same YouTube channel.
type ChannelInfo struct {
	ChannelID   string        `json:"channelId"`
	ChannelName string        `json:"channelName"`
	ChannelURL  string        `json:"channelUrl"`
	VideoCount  int           `json:"videoCount"`
	LatestVideo *ChannelVideo `json:"latestVideo,omitempty"`
}
