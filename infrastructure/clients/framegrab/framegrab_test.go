package framegrab

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaptureFollowsRedirectToFrame(t *testing.T) {
	frame := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer frame.Close()
	capture := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.URL.Query().Get("url"))
		http.Redirect(w, r, frame.URL+"/frame.jpg", http.StatusFound)
	}))
	defer capture.Close()

	client := NewClient(capture.URL + "/capture?url=%s")
	got, err := client.Capture(context.Background(), "https://www.dropbox.com/s/abc/video.mp4")
	require.NoError(t, err)
	assert.Equal(t, frame.URL+"/frame.jpg", got)
}

func TestCaptureDirectServe(t *testing.T) {
	capture := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer capture.Close()

	client := NewClient(capture.URL + "/capture?url=%s")
	got, err := client.Capture(context.Background(), "https://files.catbox.moe/abc.mp4")
	require.NoError(t, err)
	assert.Contains(t, got, capture.URL)
}

func TestCaptureErrorStatus(t *testing.T) {
	capture := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "busy", http.StatusServiceUnavailable)
	}))
	defer capture.Close()

	client := NewClient(capture.URL + "/capture?url=%s")
	_, err := client.Capture(context.Background(), "https://files.catbox.moe/abc.mp4")
	assert.Error(t, err)
}

func TestCaptureNotConfigured(t *testing.T) {
	client := NewClient("")
	_, err := client.Capture(context.Background(), "https://files.catbox.moe/abc.mp4")
	assert.ErrorIs(t, err, ErrNotConfigured)
}
