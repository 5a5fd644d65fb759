package imagehost

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"twistedbrody/infrastructure/logger"
)

// Upload failure taxonomy. The size ceiling is enforced before any network
// call is made.
var (
	ErrNoFile            = errors.New("no file provided")
	ErrFileTooLarge      = errors.New("file exceeds maximum upload size")
	ErrUploadFailed      = errors.New("image host returned an error status")
	ErrMalformedResponse = errors.New("image host returned a malformed response")
)

// Client talks to the third-party image upload endpoint: POST multipart form
// with fields image (binary) and key (static credential); success is a JSON
// body carrying data.url.
type Client struct {
	endpoint   string
	apiKey     string
	maxBytes   int64
	httpClient *http.Client
}

func NewClient(endpoint, apiKey string, maxBytes int64) *Client {
	return &Client{
		endpoint: endpoint,
		apiKey:   apiKey,
		maxBytes: maxBytes,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// MaxBytes reports the configured upload size ceiling.
func (c *Client) MaxBytes() int64 {
	return c.maxBytes
}

// Upload pushes an image and returns its publicly addressable URL.
func (c *Client) Upload(ctx context.Context, filename string, file io.Reader, size int64) (string, error) {
	if filename == "" || file == nil {
		return "", ErrNoFile
	}
	if size > c.maxBytes {
		return "", fmt.Errorf("%w: %d > %d bytes", ErrFileTooLarge, size, c.maxBytes)
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", err
	}
	if err := writer.WriteField("key", c.apiKey); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		logger.GetLogger().
			WithField("status", resp.StatusCode).
			WithField("body", string(raw)).
			Error("Image upload rejected")
		return "", fmt.Errorf("%w: status %d", ErrUploadFailed, resp.StatusCode)
	}

	var parsed struct {
		Data struct {
			URL string `json:"url"`
		} `json:"data"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil || parsed.Data.URL == "" {
		return "", ErrMalformedResponse
	}
	return parsed.Data.URL, nil
}
