package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"twistedbrody/domain/model"
	"twistedbrody/infrastructure/cache"
	"twistedbrody/infrastructure/clients/framegrab"
	"twistedbrody/infrastructure/clients/imagehost"
	"twistedbrody/infrastructure/clients/vimeo"
	youtubeclient "twistedbrody/infrastructure/clients/youtube"
	"twistedbrody/infrastructure/configuration"
	"twistedbrody/infrastructure/logger"
	"twistedbrody/infrastructure/persistence"
	"twistedbrody/infrastructure/realtime"
	"twistedbrody/infrastructure/worker"
	httpHandler "twistedbrody/interfaces/http"
	"twistedbrody/server"
	"twistedbrody/usecase"

	"golang.org/x/sync/errgroup"
)

var httpServer *http.Server

func recoverPanic() {
	if err := recover(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Application panic recovered")
	}
}

// metadataAdapter bridges the YouTube client into the store's autofill port.
type metadataAdapter struct {
	client *youtubeclient.Client
}

func (a metadataAdapter) VideoMetadata(ctx context.Context, videoID string) (*usecase.VideoMetadata, error) {
	meta, err := a.client.VideoMetadata(ctx, videoID)
	if err != nil {
		return nil, err
	}
	return &usecase.VideoMetadata{
		Title:        meta.Title,
		Description:  meta.Description,
		ThumbnailURL: meta.ThumbnailURL,
	}, nil
}

func main() {
	defer recoverPanic()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupt)

	g, ctx := errgroup.WithContext(ctx)

	// Load env from files (non-destructive; OS env still has precedence)
	configuration.LoadEnvFromFile("config.env", ".env")

	app := configuration.C.App
	mongoCfg := configuration.C.Mongo

	// The catalog cannot run without its document store: bounded retries,
	// then give up.
	mongoClient, err := persistence.ConnectWithRetry(
		ctx,
		mongoCfg.Host,
		mongoCfg.Port,
		mongoCfg.User,
		mongoCfg.Password,
		mongoCfg.Name,
		mongoCfg.ProbeAttempts,
		time.Duration(mongoCfg.ProbeTimeoutSeconds)*time.Second,
	)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("MongoDB unreachable after retries")
		os.Exit(1)
	}
	logger.GetLogger().Info("MongoDB connected successfully")
	db := mongoClient.Database(mongoCfg.Name)

	redisClient, err := cache.NewCache(
		ctx,
		fmt.Sprintf("%s:%s", configuration.C.RedisClient.Host, configuration.C.RedisClient.Port),
		configuration.C.RedisClient.Username,
		configuration.C.RedisClient.Password,
	)
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("Redis not available - thumbnail caches run in-memory only")
	}

	videoRepository := persistence.NewVideoRepository(db)
	categoryRepository := persistence.NewCategoryRepository(db)
	playlistRepository := persistence.NewPlaylistRepository(db)
	mangaRepository := persistence.NewMangaRepository(db)
	galleryRepository := persistence.NewGalleryRepository(db)
	userDataRepository := persistence.NewUserDataRepository(db)
	historyRepository := persistence.NewHistoryRepository(db)
	settingsRepository := persistence.NewSettingsRepository(configuration.C.Settings.FilePath)

	hub := realtime.NewCatalogHub()

	store := usecase.NewStore(
		videoRepository,
		categoryRepository,
		playlistRepository,
		mangaRepository,
		galleryRepository,
		userDataRepository,
		historyRepository,
		settingsRepository,
		hub,
		model.DefaultUserID,
	)

	if configuration.C.YouTube.APIKey != "" {
		ytClient, err := youtubeclient.NewClient(ctx, configuration.C.YouTube.APIKey)
		if err != nil {
			logger.GetLogger().WithField("error", err).Warn("YouTube client unavailable - metadata autofill disabled")
		} else {
			store.WithMetadataResolver(metadataAdapter{client: ytClient})
			logger.GetLogger().Info("YouTube metadata autofill enabled")
		}
	} else {
		logger.GetLogger().Info("YouTube API key not configured - metadata autofill disabled")
	}

	if err := store.Initialize(ctx); err != nil {
		logger.GetLogger().WithField("error", err).Error("Store initialization failed")
		os.Exit(1)
	}
	defer store.Close()

	thumbnailCache := cache.NewThumbnailCache(
		configuration.C.Thumbnail.CacheSize,
		configuration.C.Thumbnail.VimeoCacheSize,
		redisClient,
	)
	vimeoClient := vimeo.NewClient(configuration.C.Vimeo.APIEndpoint, configuration.C.Vimeo.OEmbedEndpoint)
	var capturer worker.FrameCapturer
	if configuration.C.Thumbnail.CaptureEndpoint != "" {
		capturer = framegrab.NewClient(configuration.C.Thumbnail.CaptureEndpoint)
	}
	preloader := worker.NewPreloader(
		thumbnailCache,
		vimeoClient,
		capturer,
		configuration.C.Thumbnail.PlaceholderURL,
		time.Duration(configuration.C.Thumbnail.CaptureTimeoutSeconds)*time.Second,
		configuration.C.Thumbnail.MaxCaptureRetries,
	)

	imageHost := imagehost.NewClient(
		configuration.C.ImageHost.Endpoint,
		configuration.C.ImageHost.APIKey,
		configuration.C.ImageHost.MaxUploadBytes,
	)

	router := server.InitiateRouter(
		httpHandler.NewCatalogHandler(store, preloader),
		httpHandler.NewLibraryHandler(store),
		httpHandler.NewMediaHandler(store),
		httpHandler.NewUploadHandler(imageHost),
		httpHandler.NewSettingsHandler(store),
		httpHandler.NewAuthHandler(),
		hub,
		app.CORSOrigins,
	)

	port := app.Port
	logger.GetLogger().WithField("port", port).Info("Starting application")
	g.Go(func() error {
		httpServer = &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: router,
		}
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	select {
	case <-interrupt:
		logger.GetLogger().Info("Application shutdown requested")
	case <-ctx.Done():
	}

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if httpServer != nil {
		_ = httpServer.Shutdown(shutdownCtx)
	}
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.GetLogger().WithField("error", err).Error("Server returned an error")
		os.Exit(2)
	}
}
