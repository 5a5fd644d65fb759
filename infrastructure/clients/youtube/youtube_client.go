package youtube

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// Metadata is the subset of video metadata used to autofill catalog entries.
type Metadata struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	ThumbnailURL string `json:"thumbnailUrl"`
}

// Client is a read-only YouTube Data API client (API key mode).
type Client struct {
	service *youtube.Service
}

func NewClient(ctx context.Context, apiKey string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("youtube api key not configured")
	}
	service, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service with API key: %w", err)
	}
	return &Client{service: service}, nil
}

// VideoMetadata fetches snippet data for a video id.
func (c *Client) VideoMetadata(ctx context.Context, videoID string) (*Metadata, error) {
	call := c.service.Videos.List([]string{"snippet"}).Id(videoID)
	resp, err := call.Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("youtube videos.list: %w", err)
	}
	if len(resp.Items) == 0 {
		return nil, fmt.Errorf("video %s not found", videoID)
	}

	snippet := resp.Items[0].Snippet
	meta := &Metadata{
		Title:       snippet.Title,
		Description: snippet.Description,
	}
	if snippet.Thumbnails != nil {
		switch {
		case snippet.Thumbnails.Maxres != nil:
			meta.ThumbnailURL = snippet.Thumbnails.Maxres.Url
		case snippet.Thumbnails.High != nil:
			meta.ThumbnailURL = snippet.Thumbnails.High.Url
		case snippet.Thumbnails.Default != nil:
			meta.ThumbnailURL = snippet.Thumbnails.Default.Url
		}
	}
	return meta, nil
}
