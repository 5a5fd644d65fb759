package usecase

import (
	"context"
	"sync"

	"twistedbrody/domain/model"
	"twistedbrody/domain/repository"
	"twistedbrody/infrastructure/logger"
)

// historyLimit caps the viewing history, most-recently-viewed first.
const historyLimit = 10

// IBroadcaster pushes collection-change events to UI subscribers.
type IBroadcaster interface {
	Broadcast(userID, collection string, data interface{})
}

// VideoMetadata is provider metadata used to autofill new entries.
type VideoMetadata struct {
	Title        string
	Description  string
	ThumbnailURL string
}

// IMetadataResolver looks up provider metadata for a video id. Optional.
type IMetadataResolver interface {
	VideoMetadata(ctx context.Context, videoID string) (*VideoMetadata, error)
}

// Store is the single source of truth for all entity collections and
// user-scoped state. It brokers every remote mutation: remote write first,
// local patch only on success. Construct with NewStore, then call Initialize
// before any action; until then every action is a silent no-op.
type Store struct {
	videoRepo    repository.IVideo
	categoryRepo repository.ICategory
	playlistRepo repository.IPlaylist
	mangaRepo    repository.IManga
	galleryRepo  repository.IGallery
	userDataRepo repository.IUserData
	historyRepo  repository.IHistory
	settingsRepo repository.ISettings
	metadata     IMetadataResolver
	hub          IBroadcaster
	userID       string

	mu          sync.RWMutex
	initialized bool
	videos      []model.Video
	categories  []model.Category
	history     []model.HistoryEntry
	playlists   []model.Playlist
	userData    model.UserData
	mangas      []model.Manga
	galleries   []model.Gallery
	settings    model.Settings

	unsubscribes []func()
}

func NewStore(
	videoRepo repository.IVideo,
	categoryRepo repository.ICategory,
	playlistRepo repository.IPlaylist,
	mangaRepo repository.IManga,
	galleryRepo repository.IGallery,
	userDataRepo repository.IUserData,
	historyRepo repository.IHistory,
	settingsRepo repository.ISettings,
	hub IBroadcaster,
	userID string,
) *Store {
	s := &Store{
		videoRepo:    videoRepo,
		categoryRepo: categoryRepo,
		playlistRepo: playlistRepo,
		mangaRepo:    mangaRepo,
		galleryRepo:  galleryRepo,
		userDataRepo: userDataRepo,
		historyRepo:  historyRepo,
		settingsRepo: settingsRepo,
		hub:          hub,
		userID:       userID,
		videos:       []model.Video{},
		categories:   []model.Category{},
		history:      []model.HistoryEntry{},
		playlists:    []model.Playlist{},
		mangas:       []model.Manga{},
		galleries:    []model.Gallery{},
	}
	s.userData = model.UserData{UserID: userID}
	s.userData.Normalize()

	// Settings are read once at store construction; absence yields the baseline.
	settings, err := settingsRepo.Load()
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("Failed to load settings, using defaults")
	}
	s.settings = settings
	return s
}

// WithMetadataResolver attaches the optional provider metadata autofill.
func (s *Store) WithMetadataResolver(resolver IMetadataResolver) *Store {
	s.metadata = resolver
	return s
}

// Initialize loads the user-scoped state and registers the two live
// subscriptions (user data document, playlists query). Their callbacks
// overwrite the corresponding local state wholesale on every remote change.
func (s *Store) Initialize(ctx context.Context) error {
	s.mu.Lock()
	if s.initialized {
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	data, err := s.userDataRepo.Get(ctx, s.userID)
	if err != nil {
		return err
	}
	playlists, err := s.playlistRepo.GetAllByUser(ctx, s.userID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.userData = *data
	s.playlists = playlists
	s.initialized = true
	s.mu.Unlock()

	s.subscribeUserData(ctx)
	s.subscribePlaylists(ctx)
	return nil
}

// Close cancels the live subscriptions. The store refuses actions again
// afterwards.
func (s *Store) Close() {
	s.mu.Lock()
	unsubs := s.unsubscribes
	s.unsubscribes = nil
	s.initialized = false
	s.mu.Unlock()
	for _, unsub := range unsubs {
		unsub()
	}
}

// ready reports whether actions may run. Callers tolerate silent inaction
// before initialization rather than an error.
func (s *Store) ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.initialized {
		logger.GetLogger().Debug("Store action ignored: not initialized")
	}
	return s.initialized
}

func (s *Store) subscribeUserData(ctx context.Context) {
	ch, unsub, err := s.userDataRepo.Subscribe(ctx, s.userID)
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("User data subscription unavailable - continuing without live updates")
		return
	}
	s.mu.Lock()
	s.unsubscribes = append(s.unsubscribes, unsub)
	s.mu.Unlock()
	go func() {
		for snapshot := range ch {
			s.mu.Lock()
			s.userData = snapshot
			s.mu.Unlock()
			s.broadcast("userData", snapshot)
		}
	}()
}

func (s *Store) subscribePlaylists(ctx context.Context) {
	ch, unsub, err := s.playlistRepo.Subscribe(ctx, s.userID)
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("Playlist subscription unavailable - continuing without live updates")
		return
	}
	s.mu.Lock()
	s.unsubscribes = append(s.unsubscribes, unsub)
	s.mu.Unlock()
	go func() {
		for snapshot := range ch {
			s.mu.Lock()
			s.playlists = snapshot
			s.mu.Unlock()
			s.broadcast("playlists", snapshot)
		}
	}()
}

func (s *Store) broadcast(collection string, data interface{}) {
	if s.hub != nil {
		s.hub.Broadcast(s.userID, collection, data)
	}
}

// Snapshot accessors. Each returns a copy so callers never alias store state.

func (s *Store) Videos() []model.Video {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Video, len(s.videos))
	copy(out, s.videos)
	return out
}

func (s *Store) Categories() []model.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Category, len(s.categories))
	copy(out, s.categories)
	return out
}

func (s *Store) History() []model.HistoryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.HistoryEntry, len(s.history))
	copy(out, s.history)
	return out
}

func (s *Store) Playlists() []model.Playlist {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Playlist, len(s.playlists))
	copy(out, s.playlists)
	return out
}

func (s *Store) Mangas() []model.Manga {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Manga, len(s.mangas))
	copy(out, s.mangas)
	return out
}

func (s *Store) Galleries() []model.Gallery {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Gallery, len(s.galleries))
	copy(out, s.galleries)
	return out
}

func (s *Store) UserData() model.UserData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data := s.userData
	data.Favorites = append([]string{}, data.Favorites...)
	data.Saved = append([]string{}, data.Saved...)
	data.WatchLater = append([]string{}, data.WatchLater...)
	return data
}

func (s *Store) Settings() model.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}
