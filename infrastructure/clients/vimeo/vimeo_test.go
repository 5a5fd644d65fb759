package vimeo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThumbnailURLSimpleAPI(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/video/123456789.json", r.URL.Path)
		_, _ = w.Write([]byte(`[{"thumbnail_large":"https://i.vimeocdn.com/video/large.jpg","thumbnail_medium":"https://i.vimeocdn.com/video/medium.jpg"}]`))
	}))
	defer api.Close()

	client := NewClient(api.URL, "http://unused")
	thumb, err := client.ThumbnailURL(context.Background(), "https://vimeo.com/123456789")
	require.NoError(t, err)
	assert.Equal(t, "https://i.vimeocdn.com/video/large.jpg", thumb)
}

func TestThumbnailURLFallsBackToMedium(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"thumbnail_medium":"https://i.vimeocdn.com/video/medium.jpg"}]`))
	}))
	defer api.Close()

	client := NewClient(api.URL, "http://unused")
	thumb, err := client.ThumbnailURL(context.Background(), "https://vimeo.com/123456789")
	require.NoError(t, err)
	assert.Equal(t, "https://i.vimeocdn.com/video/medium.jpg", thumb)
}

func TestThumbnailURLHashedUsesOEmbed(t *testing.T) {
	oembed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "https://vimeo.com/123456789/abcdef12", r.URL.Query().Get("url"))
		assert.Equal(t, "640", r.URL.Query().Get("width"))
		_, _ = w.Write([]byte(`{"thumbnail_url":"https://i.vimeocdn.com/video/private.jpg"}`))
	}))
	defer oembed.Close()

	client := NewClient("http://unused", oembed.URL)
	thumb, err := client.ThumbnailURL(context.Background(), "https://vimeo.com/123456789/abcdef12")
	require.NoError(t, err)
	assert.Equal(t, "https://i.vimeocdn.com/video/private.jpg", thumb)
}

func TestThumbnailURLNotVimeo(t *testing.T) {
	client := NewClient("http://unused", "http://unused")
	_, err := client.ThumbnailURL(context.Background(), "https://example.com/video.mp4")
	assert.Error(t, err)
}

func TestThumbnailURLEmptyResponse(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer api.Close()

	client := NewClient(api.URL, "http://unused")
	_, err := client.ThumbnailURL(context.Background(), "https://vimeo.com/123456789")
	assert.ErrorIs(t, err, ErrNoThumbnail)
}
