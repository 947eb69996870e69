// Package oembed fetches video titles from YouTube's oEmbed endpoint.
package oembed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// DefaultEndpoint is YouTube's public oEmbed endpoint.
const DefaultEndpoint = "https://www.youtube.com/oembed"

// maxBodyBytes caps how much of a response is read.
const maxBodyBytes = 1 << 20

// ErrNoTitle is returned when the endpoint answered but carried no title.
var ErrNoTitle = errors.New("oembed response has no title")

// Client calls the oEmbed endpoint.
type Client struct {
	httpClient *http.Client
	endpoint   string
}

// NewClient creates a client. An empty endpoint means DefaultEndpoint.
func NewClient(httpClient *http.Client, endpoint string) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{httpClient: httpClient, endpoint: endpoint}
}

type response struct {
	Title        string `json:"title"`
	AuthorName   string `json:"author_name"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// FetchTitle returns the title of the YouTube video with the given id.
// Any network failure, non-200 status or malformed body is an error.
func (c *Client) FetchTitle(ctx context.Context, videoID string) (string, error) {
	if videoID == "" {
		return "", errors.New("video id is required")
	}

	reqURL, err := url.Parse(c.endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid oembed endpoint: %w", err)
	}
	q := reqURL.Query()
	q.Set("url", "https://www.youtube.com/watch?v="+videoID)
	q.Set("format", "json")
	reqURL.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return "", fmt.Errorf("build oembed request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("oembed request for %s: %w", videoID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("oembed returned status %d for %s", resp.StatusCode, videoID)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("read oembed response: %w", err)
	}

	var result response
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("parse oembed response: %w", err)
	}

	title := strings.TrimSpace(result.Title)
	if title == "" {
		return "", ErrNoTitle
	}
	return title, nil
}
