package framegrab

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

var ErrNotConfigured = errors.New("frame capture endpoint not configured")

// Client asks an external frame-capture endpoint for a still image of a video
// that has no deterministic thumbnail (Dropbox/Catbox sources). The endpoint
// is a printf-style template receiving the escaped video URL and redirecting
// to (or serving) the captured frame.
type Client struct {
	template   string
	httpClient *http.Client
}

func NewClient(template string) *Client {
	return &Client{
		template:   template,
		httpClient: &http.Client{},
	}
}

// Capture returns a loadable thumbnail URL for the video, or an error when
// the endpoint cannot produce one. The caller owns timeout and retry policy
// via ctx.
func (c *Client) Capture(ctx context.Context, videoURL string) (string, error) {
	if c.template == "" {
		return "", ErrNotConfigured
	}
	captureURL := fmt.Sprintf(c.template, url.QueryEscape(videoURL))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, captureURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("frame capture status %d", resp.StatusCode)
	}
	// The endpoint either serves the frame directly or redirects to it; the
	// final request URL is the loadable thumbnail either way.
	return resp.Request.URL.String(), nil
}
