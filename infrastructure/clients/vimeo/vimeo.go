package vimeo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"time"

	"github.com/google/go-querystring/query"
)

var ErrNoThumbnail = errors.New("vimeo returned no thumbnail")

var videoIDRe = regexp.MustCompile(`vimeo\.com/(?:video/)?(\d+)(?:/([0-9a-fA-F]+))?`)

// Client resolves Vimeo thumbnails: the public simple API for plain numeric
// ids, oEmbed for private/hashed URLs (the simple API does not serve those).
type Client struct {
	apiEndpoint    string
	oembedEndpoint string
	httpClient     *http.Client
}

func NewClient(apiEndpoint, oembedEndpoint string) *Client {
	return &Client{
		apiEndpoint:    apiEndpoint,
		oembedEndpoint: oembedEndpoint,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type oembedParams struct {
	URL   string `url:"url"`
	Width int    `url:"width,omitempty"`
}

// ThumbnailURL fetches the thumbnail for a Vimeo video URL.
func (c *Client) ThumbnailURL(ctx context.Context, videoURL string) (string, error) {
	m := videoIDRe.FindStringSubmatch(videoURL)
	if m == nil {
		return "", fmt.Errorf("not a vimeo video url: %s", videoURL)
	}
	if m[2] != "" {
		return c.oembedThumbnail(ctx, videoURL)
	}
	return c.simpleAPIThumbnail(ctx, m[1])
}

func (c *Client) simpleAPIThumbnail(ctx context.Context, videoID string) (string, error) {
	endpoint := fmt.Sprintf("%s/video/%s.json", c.apiEndpoint, videoID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("vimeo api status %d", resp.StatusCode)
	}

	var videos []struct {
		ThumbnailLarge  string `json:"thumbnail_large"`
		ThumbnailMedium string `json:"thumbnail_medium"`
	}
	raw, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(raw, &videos); err != nil || len(videos) == 0 {
		return "", ErrNoThumbnail
	}
	if videos[0].ThumbnailLarge != "" {
		return videos[0].ThumbnailLarge, nil
	}
	if videos[0].ThumbnailMedium != "" {
		return videos[0].ThumbnailMedium, nil
	}
	return "", ErrNoThumbnail
}

func (c *Client) oembedThumbnail(ctx context.Context, videoURL string) (string, error) {
	params, err := query.Values(oembedParams{URL: videoURL, Width: 640})
	if err != nil {
		return "", err
	}
	endpoint := c.oembedEndpoint + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("vimeo oembed status %d", resp.StatusCode)
	}

	var parsed struct {
		ThumbnailURL string `json:"thumbnail_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil || parsed.ThumbnailURL == "" {
		return "", ErrNoThumbnail
	}
	return parsed.ThumbnailURL, nil
}
