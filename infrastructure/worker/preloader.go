package worker

import (
	"context"
	"net/http"
	"sync"
	"time"

	"twistedbrody/domain/model"
	"twistedbrody/domain/provider"
	"twistedbrody/infrastructure/cache"
	"twistedbrody/infrastructure/logger"

	"golang.org/x/sync/errgroup"
)

const preloadConcurrency = 4

// VimeoResolver fetches a thumbnail for a Vimeo video URL.
type VimeoResolver interface {
	ThumbnailURL(ctx context.Context, videoURL string) (string, error)
}

// FrameCapturer produces a still image URL for a video without a
// deterministic thumbnail.
type FrameCapturer interface {
	Capture(ctx context.Context, videoURL string) (string, error)
}

// Preloader resolves video thumbnails ahead of rendering. Capture attempts
// are retried up to a fixed cap per video id, then marked permanently errored
// for the session; every failure degrades to the placeholder, never to a
// broken image.
type Preloader struct {
	cache          *cache.ThumbnailCache
	vimeo          VimeoResolver
	capturer       FrameCapturer
	placeholder    string
	captureTimeout time.Duration
	maxRetries     int
	httpClient     *http.Client

	mu       sync.Mutex
	attempts map[string]int
	errored  map[string]struct{}
}

func NewPreloader(thumbCache *cache.ThumbnailCache, vimeo VimeoResolver, capturer FrameCapturer, placeholder string, captureTimeout time.Duration, maxRetries int) *Preloader {
	return &Preloader{
		cache:          thumbCache,
		vimeo:          vimeo,
		capturer:       capturer,
		placeholder:    placeholder,
		captureTimeout: captureTimeout,
		maxRetries:     maxRetries,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		attempts: make(map[string]int),
		errored:  make(map[string]struct{}),
	}
}

// Placeholder reports the fixed fallback thumbnail.
func (p *Preloader) Placeholder() string {
	return p.placeholder
}

// ThumbnailFor is the synchronous accessor: custom thumbnail, deterministic
// derivation, then whatever is already cached. Returns "" when only async
// resolution could answer.
func (p *Preloader) ThumbnailFor(ctx context.Context, video model.Video) string {
	if video.CustomThumbnailURL != "" {
		return video.CustomThumbnailURL
	}
	if thumb := provider.ThumbnailURL(video.URL); thumb != "" {
		return thumb
	}
	if provider.Detect(video.URL) == provider.Vimeo {
		if thumb, ok := p.cache.GetVimeo(ctx, video.URL); ok {
			return thumb
		}
		return ""
	}
	if thumb, ok := p.cache.Get(ctx, video.URL); ok {
		return thumb
	}
	return ""
}

// Resolve resolves one video's thumbnail, populating the caches. It never
// fails: every error path yields the placeholder.
func (p *Preloader) Resolve(ctx context.Context, video model.Video) string {
	if video.CustomThumbnailURL != "" {
		if p.probe(ctx, video.CustomThumbnailURL) {
			return video.CustomThumbnailURL
		}
		logger.GetLogger().WithField("videoId", video.ID).Warn("Custom thumbnail not loadable")
		return p.placeholder
	}

	if thumb := provider.ThumbnailURL(video.URL); thumb != "" {
		if p.probe(ctx, thumb) {
			return thumb
		}
		return p.placeholder
	}

	switch provider.Detect(video.URL) {
	case provider.Vimeo:
		return p.resolveVimeo(ctx, video.URL)
	case provider.Dropbox, provider.Catbox:
		return p.resolveCapture(ctx, video)
	}
	return p.placeholder
}

// Preload resolves a batch concurrently. Individual failures substitute the
// placeholder and never abort the batch.
func (p *Preloader) Preload(ctx context.Context, videos []model.Video) map[string]string {
	results := make(map[string]string, len(videos))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(preloadConcurrency)
	for _, video := range videos {
		g.Go(func() error {
			thumb := p.Resolve(gctx, video)
			mu.Lock()
			results[video.ID] = thumb
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func (p *Preloader) resolveVimeo(ctx context.Context, videoURL string) string {
	if thumb, ok := p.cache.GetVimeo(ctx, videoURL); ok {
		return thumb
	}
	if p.vimeo == nil {
		return p.placeholder
	}
	thumb, err := p.vimeo.ThumbnailURL(ctx, videoURL)
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("Vimeo thumbnail lookup failed")
		return p.placeholder
	}
	p.cache.SetVimeo(ctx, videoURL, thumb)
	return thumb
}

func (p *Preloader) resolveCapture(ctx context.Context, video model.Video) string {
	if thumb, ok := p.cache.Get(ctx, video.URL); ok {
		return thumb
	}
	if p.capturer == nil {
		return p.placeholder
	}

	p.mu.Lock()
	if _, dead := p.errored[video.ID]; dead {
		p.mu.Unlock()
		return p.placeholder
	}
	if p.attempts[video.ID] >= p.maxRetries {
		p.errored[video.ID] = struct{}{}
		p.mu.Unlock()
		logger.GetLogger().WithField("videoId", video.ID).Warn("Frame capture marked errored for this session")
		return p.placeholder
	}
	p.attempts[video.ID]++
	p.mu.Unlock()

	captureCtx, cancel := context.WithTimeout(ctx, p.captureTimeout)
	defer cancel()
	thumb, err := p.capturer.Capture(captureCtx, video.URL)
	if err != nil {
		logger.GetLogger().
			WithField("videoId", video.ID).
			WithField("error", err).
			Warn("Frame capture failed")
		return p.placeholder
	}

	p.mu.Lock()
	delete(p.attempts, video.ID)
	p.mu.Unlock()
	p.cache.Set(ctx, video.URL, thumb)
	return thumb
}

// probe checks that a thumbnail URL actually loads.
func (p *Preloader) probe(ctx context.Context, thumbURL string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, thumbURL, nil)
	if err != nil {
		return false
	}
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode < http.StatusBadRequest
}
