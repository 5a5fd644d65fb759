package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"twistedbrody/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVideoRepo struct {
	mu           sync.Mutex
	videos       map[string]model.Video
	createErr    error
	deleteErr    error
	catRemoveErr error
	increments   []string
	catRemovals  []string
}

func newFakeVideoRepo() *fakeVideoRepo {
	return &fakeVideoRepo{videos: map[string]model.Video{}}
}

func (f *fakeVideoRepo) GetAll(ctx context.Context) ([]model.Video, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.Video, 0, len(f.videos))
	for _, v := range f.videos {
		out = append(out, v)
	}
	return out, nil
}

func (f *fakeVideoRepo) GetByID(ctx context.Context, id string) (*model.Video, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if v, ok := f.videos[id]; ok {
		return &v, nil
	}
	return nil, nil
}

func (f *fakeVideoRepo) Create(ctx context.Context, video model.Video) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.videos[video.ID] = video
	return nil
}

func (f *fakeVideoRepo) Update(ctx context.Context, id string, patch map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.videos[id]
	if !ok {
		return errors.New("not found")
	}
	if title, ok := patch["title"].(string); ok {
		v.Title = title
	}
	f.videos[id] = v
	return nil
}

func (f *fakeVideoRepo) Delete(ctx context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.videos, id)
	return nil
}

func (f *fakeVideoRepo) IncrementViews(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.increments = append(f.increments, id)
	return nil
}

func (f *fakeVideoRepo) RemoveCategoryFromAll(ctx context.Context, categoryID string) (int64, error) {
	if f.catRemoveErr != nil {
		return 0, f.catRemoveErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.catRemovals = append(f.catRemovals, categoryID)
	return 1, nil
}

type fakeCategoryRepo struct {
	mu         sync.Mutex
	categories []model.Category
}

func (f *fakeCategoryRepo) GetAll(ctx context.Context) ([]model.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.Category{}, f.categories...), nil
}

func (f *fakeCategoryRepo) Create(ctx context.Context, category model.Category) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.categories = append(f.categories, category)
	return nil
}

func (f *fakeCategoryRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := f.categories[:0]
	for _, c := range f.categories {
		if c.ID != id {
			out = append(out, c)
		}
	}
	f.categories = out
	return nil
}

type fakePlaylistRepo struct {
	mu           sync.Mutex
	playlists    []model.Playlist
	updates      int
	videoRemoved []string
	ch           chan []model.Playlist
}

func newFakePlaylistRepo() *fakePlaylistRepo {
	return &fakePlaylistRepo{ch: make(chan []model.Playlist, 1)}
}

func (f *fakePlaylistRepo) GetAllByUser(ctx context.Context, userID string) ([]model.Playlist, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.Playlist{}, f.playlists...), nil
}

func (f *fakePlaylistRepo) Create(ctx context.Context, playlist model.Playlist) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.playlists = append(f.playlists, playlist)
	return nil
}

func (f *fakePlaylistRepo) Update(ctx context.Context, id string, patch map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates++
	for i := range f.playlists {
		if f.playlists[i].ID == id {
			if ids, ok := patch["videoIds"].([]string); ok {
				f.playlists[i].VideoIDs = ids
			}
		}
	}
	return nil
}

func (f *fakePlaylistRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := f.playlists[:0]
	for _, p := range f.playlists {
		if p.ID != id {
			out = append(out, p)
		}
	}
	f.playlists = out
	return nil
}

func (f *fakePlaylistRepo) RemoveVideoFromAll(ctx context.Context, userID, videoID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.videoRemoved = append(f.videoRemoved, videoID)
	return nil
}

func (f *fakePlaylistRepo) Subscribe(ctx context.Context, userID string) (<-chan []model.Playlist, func(), error) {
	return f.ch, func() {}, nil
}

type fakeMangaRepo struct {
	mu     sync.Mutex
	mangas map[string]model.Manga
}

func newFakeMangaRepo() *fakeMangaRepo {
	return &fakeMangaRepo{mangas: map[string]model.Manga{}}
}

func (f *fakeMangaRepo) GetAll(ctx context.Context) ([]model.Manga, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.Manga, 0, len(f.mangas))
	for _, m := range f.mangas {
		out = append(out, m)
	}
	return out, nil
}

func (f *fakeMangaRepo) GetByID(ctx context.Context, id string) (*model.Manga, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if m, ok := f.mangas[id]; ok {
		return &m, nil
	}
	return nil, nil
}

func (f *fakeMangaRepo) Create(ctx context.Context, manga model.Manga) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mangas[manga.ID] = manga
	return nil
}

func (f *fakeMangaRepo) Update(ctx context.Context, id string, patch map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.mangas[id]
	if !ok {
		return errors.New("not found")
	}
	if versions, ok := patch["versions"].([]model.MangaVersion); ok {
		m.Versions = versions
	}
	f.mangas[id] = m
	return nil
}

func (f *fakeMangaRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.mangas, id)
	return nil
}

type fakeGalleryRepo struct {
	mu        sync.Mutex
	galleries map[string]model.Gallery
}

func newFakeGalleryRepo() *fakeGalleryRepo {
	return &fakeGalleryRepo{galleries: map[string]model.Gallery{}}
}

func (f *fakeGalleryRepo) GetAll(ctx context.Context) ([]model.Gallery, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.Gallery, 0, len(f.galleries))
	for _, g := range f.galleries {
		out = append(out, g)
	}
	return out, nil
}

func (f *fakeGalleryRepo) GetByID(ctx context.Context, id string) (*model.Gallery, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if g, ok := f.galleries[id]; ok {
		return &g, nil
	}
	return nil, nil
}

func (f *fakeGalleryRepo) Create(ctx context.Context, gallery model.Gallery) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.galleries[gallery.ID] = gallery
	return nil
}

func (f *fakeGalleryRepo) Update(ctx context.Context, id string, patch map[string]interface{}) error {
	return nil
}

func (f *fakeGalleryRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.galleries, id)
	return nil
}

type fakeUserDataRepo struct {
	mu         sync.Mutex
	data       model.UserData
	saveErr    error
	saves      int
	refRemoved []string
	persons    map[string]map[string]string
	ch         chan model.UserData
}

func newFakeUserDataRepo(userID string) *fakeUserDataRepo {
	data := model.UserData{UserID: userID}
	data.Normalize()
	return &fakeUserDataRepo{
		data:    data,
		persons: map[string]map[string]string{},
		ch:      make(chan model.UserData, 1),
	}
}

func (f *fakeUserDataRepo) Get(ctx context.Context, userID string) (*model.UserData, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data := f.data
	return &data, nil
}

func (f *fakeUserDataRepo) Save(ctx context.Context, data model.UserData) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data = data
	f.saves++
	return nil
}

func (f *fakeUserDataRepo) RemoveVideoRefs(ctx context.Context, userID, videoID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refRemoved = append(f.refRemoved, videoID)
	return nil
}

func (f *fakeUserDataRepo) Subscribe(ctx context.Context, userID string) (<-chan model.UserData, func(), error) {
	return f.ch, func() {}, nil
}

func (f *fakeUserDataRepo) GetPersonMap(ctx context.Context, kind string) (*model.PersonMap, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return &model.PersonMap{Kind: kind, Images: f.persons[kind]}, nil
}

func (f *fakeUserDataRepo) SavePersonMap(ctx context.Context, kind string, images map[string]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.persons[kind] = images
	return nil
}

type fakeHistoryRepo struct {
	mu      sync.Mutex
	entries map[string]time.Time
	deleted []string
}

func newFakeHistoryRepo() *fakeHistoryRepo {
	return &fakeHistoryRepo{entries: map[string]time.Time{}}
}

func (f *fakeHistoryRepo) List(ctx context.Context, limit int) ([]model.HistoryEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.HistoryEntry, 0, len(f.entries))
	for id, at := range f.entries {
		out = append(out, model.HistoryEntry{VideoID: id, ViewedAt: at})
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeHistoryRepo) Record(ctx context.Context, videoID string, viewedAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[videoID] = viewedAt
	return nil
}

func (f *fakeHistoryRepo) Delete(ctx context.Context, videoID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.entries, videoID)
	f.deleted = append(f.deleted, videoID)
	return nil
}

type fakeSettingsRepo struct {
	settings model.Settings
	saves    int
}

func (f *fakeSettingsRepo) Load() (model.Settings, error) {
	return f.settings, nil
}

func (f *fakeSettingsRepo) Save(settings model.Settings) error {
	f.settings = settings
	f.saves++
	return nil
}

type fakeHub struct {
	mu     sync.Mutex
	events []string
}

func (f *fakeHub) Broadcast(userID, collection string, data interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, collection)
}

func (f *fakeHub) has(collection string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.events {
		if c == collection {
			return true
		}
	}
	return false
}

type storeFixture struct {
	store     *Store
	videos    *fakeVideoRepo
	cats      *fakeCategoryRepo
	playlists *fakePlaylistRepo
	mangas    *fakeMangaRepo
	galleries *fakeGalleryRepo
	userData  *fakeUserDataRepo
	history   *fakeHistoryRepo
	settings  *fakeSettingsRepo
	hub       *fakeHub
}

func newFixture(t *testing.T) *storeFixture {
	t.Helper()
	f := &storeFixture{
		videos:    newFakeVideoRepo(),
		cats:      &fakeCategoryRepo{},
		playlists: newFakePlaylistRepo(),
		mangas:    newFakeMangaRepo(),
		galleries: newFakeGalleryRepo(),
		userData:  newFakeUserDataRepo(model.DefaultUserID),
		history:   newFakeHistoryRepo(),
		settings:  &fakeSettingsRepo{settings: model.DefaultSettings()},
		hub:       &fakeHub{},
	}
	f.store = NewStore(
		f.videos, f.cats, f.playlists, f.mangas, f.galleries,
		f.userData, f.history, f.settings, f.hub, model.DefaultUserID,
	)
	return f
}

func newInitializedFixture(t *testing.T) *storeFixture {
	t.Helper()
	f := newFixture(t)
	require.NoError(t, f.store.Initialize(context.Background()))
	return f
}

func TestActionsBeforeInitializeAreNoOps(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.store.AddVideo(ctx, model.Video{URL: "https://example.com/v.mp4"})
	assert.NoError(t, err)
	assert.Nil(t, created)
	assert.Empty(t, f.videos.videos, "no remote write before initialization")

	assert.Nil(t, f.store.FetchVideos(ctx))
	assert.NoError(t, f.store.RemoveVideo(ctx, "x"))
	assert.False(t, f.store.ToggleInSet(ctx, SetFavorites, "x"))
	assert.Zero(t, f.userData.saves)
}

func TestAddVideoAppliesDefaults(t *testing.T) {
	f := newInitializedFixture(t)

	created, err := f.store.AddVideo(context.Background(), model.Video{
		Title:    "Clip",
		URL:      "https://example.com/v.mp4",
		Views:    99,
		IsHidden: true,
	})
	require.NoError(t, err)
	require.NotNil(t, created)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, model.DefaultUserID, created.UserID)
	assert.NotEmpty(t, created.CreatedAt)
	assert.Zero(t, created.Views, "view counter always starts at zero")
	assert.True(t, created.IsHidden, "an explicitly hidden upload stays hidden")
	assert.NotNil(t, created.Servers)
	assert.NotNil(t, created.Hashtags)
	assert.NotNil(t, created.CategoryIDs)

	videos := f.store.Videos()
	require.Len(t, videos, 1)
	assert.Equal(t, created.ID, videos[0].ID)
	assert.True(t, f.hub.has("videos"))
}

func TestAddVideoCleansDanglingRefs(t *testing.T) {
	f := newInitializedFixture(t)
	ctx := context.Background()

	category, err := f.store.AddCategory(ctx, "action", model.CategoryTypeVideo)
	require.NoError(t, err)
	existing, err := f.store.AddVideo(ctx, model.Video{URL: "https://example.com/a.mp4"})
	require.NoError(t, err)

	created, err := f.store.AddVideo(ctx, model.Video{
		ID:           "v-new",
		URL:          "https://example.com/b.mp4",
		CategoryIDs:  []string{category.ID, "ghost-category"},
		LinkedVideos: []string{existing.ID, "ghost-video", "v-new"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{category.ID}, created.CategoryIDs, "unknown category ids are dropped")
	assert.Equal(t, []string{existing.ID}, created.LinkedVideos, "unknown video ids and self-links are dropped")

	stored := f.videos.videos[created.ID]
	assert.Equal(t, []string{category.ID}, stored.CategoryIDs, "the remote store receives the cleaned lists")
	assert.Equal(t, []string{existing.ID}, stored.LinkedVideos)
}

func TestUpdateVideoCleansPatchRefs(t *testing.T) {
	f := newInitializedFixture(t)
	ctx := context.Background()

	first, err := f.store.AddVideo(ctx, model.Video{URL: "https://example.com/a.mp4"})
	require.NoError(t, err)
	second, err := f.store.AddVideo(ctx, model.Video{URL: "https://example.com/b.mp4"})
	require.NoError(t, err)

	patch := map[string]interface{}{
		"categoryIds":  []interface{}{"ghost-category"},
		"linkedVideos": []interface{}{second.ID, first.ID, "ghost-video"},
	}
	require.NoError(t, f.store.UpdateVideo(ctx, first.ID, patch))

	assert.Equal(t, []string{}, patch["categoryIds"], "unknown category ids are dropped from the patch")
	assert.Equal(t, []string{second.ID}, patch["linkedVideos"], "self-link and unknown video id are dropped")
}

type fakeMetadataResolver struct {
	mu    sync.Mutex
	asked []string
	meta  VideoMetadata
}

func (f *fakeMetadataResolver) VideoMetadata(ctx context.Context, videoID string) (*VideoMetadata, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.asked = append(f.asked, videoID)
	meta := f.meta
	return &meta, nil
}

func TestAddVideoAutofillUsesBareVideoID(t *testing.T) {
	f := newInitializedFixture(t)
	resolver := &fakeMetadataResolver{meta: VideoMetadata{Title: "Fetched", Description: "From the API"}}
	f.store.WithMetadataResolver(resolver)

	created, err := f.store.AddVideo(context.Background(), model.Video{
		URL: "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
	})
	require.NoError(t, err)
	require.NotNil(t, created)

	assert.Equal(t, []string{"dQw4w9WgXcQ"}, resolver.asked, "the lookup takes the provider id, not the embed URL")
	assert.Equal(t, "Fetched", created.Title)
	assert.Equal(t, "From the API", created.Description)
}

func TestAddVideoRemoteFailureLeavesLocalUntouched(t *testing.T) {
	f := newInitializedFixture(t)
	f.videos.createErr = errors.New("write refused")

	created, err := f.store.AddVideo(context.Background(), model.Video{URL: "https://example.com/v.mp4"})
	assert.Error(t, err)
	assert.Nil(t, created)
	assert.Empty(t, f.store.Videos())
}

func TestRemoveVideoCascades(t *testing.T) {
	f := newInitializedFixture(t)
	ctx := context.Background()

	created, err := f.store.AddVideo(ctx, model.Video{URL: "https://example.com/v.mp4"})
	require.NoError(t, err)
	id := created.ID

	require.True(t, f.store.ToggleInSet(ctx, SetFavorites, id))
	playlist, err := f.store.CreatePlaylist(ctx, "watch", "")
	require.NoError(t, err)
	require.NoError(t, f.store.AddVideoToPlaylist(ctx, playlist.ID, id))
	f.store.RecordView(id)

	require.NoError(t, f.store.RemoveVideo(ctx, id))

	assert.Empty(t, f.store.Videos())
	assert.Empty(t, f.store.UserData().Favorites)
	assert.Empty(t, f.store.Playlists()[0].VideoIDs)
	assert.Empty(t, f.store.History())
	assert.Contains(t, f.userData.refRemoved, id)
	assert.Contains(t, f.playlists.videoRemoved, id)
	assert.Contains(t, f.history.deleted, id)
}

func TestRemoveVideoDeleteFailureStopsCascade(t *testing.T) {
	f := newInitializedFixture(t)
	ctx := context.Background()

	created, err := f.store.AddVideo(ctx, model.Video{URL: "https://example.com/v.mp4"})
	require.NoError(t, err)

	f.videos.deleteErr = errors.New("delete refused")
	assert.Error(t, f.store.RemoveVideo(ctx, created.ID))
	assert.Len(t, f.store.Videos(), 1, "failed delete must not patch local state")
	assert.Empty(t, f.userData.refRemoved)
}

func TestToggleIsIdempotentPerPair(t *testing.T) {
	f := newInitializedFixture(t)
	ctx := context.Background()

	assert.True(t, f.store.ToggleInSet(ctx, SetWatchLater, "v1"))
	assert.True(t, f.store.IsInSet(SetWatchLater, "v1"))

	assert.False(t, f.store.ToggleInSet(ctx, SetWatchLater, "v1"))
	assert.False(t, f.store.IsInSet(SetWatchLater, "v1"))
	assert.Empty(t, f.store.UserData().WatchLater)
	assert.Equal(t, 2, f.userData.saves)
}

func TestTogglePersistFailureLeavesLocalUntouched(t *testing.T) {
	f := newInitializedFixture(t)
	f.userData.saveErr = errors.New("save refused")

	assert.False(t, f.store.ToggleInSet(context.Background(), SetFavorites, "v1"))
	assert.False(t, f.store.IsInSet(SetFavorites, "v1"))
}

func TestRecordViewBumpsLocalCounterAndHistory(t *testing.T) {
	f := newInitializedFixture(t)
	ctx := context.Background()

	created, err := f.store.AddVideo(ctx, model.Video{URL: "https://example.com/v.mp4"})
	require.NoError(t, err)

	f.store.RecordView(created.ID)
	f.store.RecordView(created.ID)

	videos := f.store.Videos()
	require.Len(t, videos, 1)
	assert.Equal(t, int64(2), videos[0].Views, "local counter advances immediately")

	history := f.store.History()
	require.Len(t, history, 1, "history holds one entry per video")
	assert.Equal(t, created.ID, history[0].VideoID)
}

func TestHistoryIsCapped(t *testing.T) {
	f := newInitializedFixture(t)

	for i := 0; i < historyLimit+5; i++ {
		f.store.RecordView(string(rune('a' + i)))
	}
	assert.Len(t, f.store.History(), historyLimit)
}

func TestHistoryMostRecentFirst(t *testing.T) {
	f := newInitializedFixture(t)

	f.store.RecordView("v1")
	f.store.RecordView("v2")
	f.store.RecordView("v1")

	history := f.store.History()
	require.Len(t, history, 2)
	assert.Equal(t, "v1", history[0].VideoID)
	assert.Equal(t, "v2", history[1].VideoID)
}

func TestAddVideoToPlaylistChecksDuplicates(t *testing.T) {
	f := newInitializedFixture(t)
	ctx := context.Background()

	playlist, err := f.store.CreatePlaylist(ctx, "mix", "")
	require.NoError(t, err)

	require.NoError(t, f.store.AddVideoToPlaylist(ctx, playlist.ID, "v1"))
	updatesAfterFirst := f.playlists.updates
	require.NoError(t, f.store.AddVideoToPlaylist(ctx, playlist.ID, "v1"))

	assert.Equal(t, updatesAfterFirst, f.playlists.updates, "duplicate add must not write")
	assert.Equal(t, []string{"v1"}, f.store.Playlists()[0].VideoIDs)
}

func TestRemoveLastPlaylistVideoLeavesEmptyPlaylist(t *testing.T) {
	f := newInitializedFixture(t)
	ctx := context.Background()

	playlist, err := f.store.CreatePlaylist(ctx, "mix", "")
	require.NoError(t, err)
	require.NoError(t, f.store.AddVideoToPlaylist(ctx, playlist.ID, "v1"))
	require.NoError(t, f.store.RemoveVideoFromPlaylist(ctx, playlist.ID, "v1"))

	playlists := f.store.Playlists()
	require.Len(t, playlists, 1, "playlist survives losing its last video")
	assert.Empty(t, playlists[0].VideoIDs)
}

func TestRemoveCategoryCascadesToVideos(t *testing.T) {
	f := newInitializedFixture(t)
	ctx := context.Background()

	category, err := f.store.AddCategory(ctx, "action", model.CategoryTypeVideo)
	require.NoError(t, err)
	_, err = f.store.AddVideo(ctx, model.Video{
		URL:         "https://example.com/v.mp4",
		CategoryIDs: []string{category.ID},
	})
	require.NoError(t, err)

	require.NoError(t, f.store.RemoveCategory(ctx, category.ID))

	assert.Empty(t, f.store.Categories())
	assert.Contains(t, f.videos.catRemovals, category.ID)
	videos := f.store.Videos()
	require.Len(t, videos, 1)
	assert.NotContains(t, videos[0].CategoryIDs, category.ID)
}

func TestRemoveCategoryKeepsDocumentWhenCascadeFails(t *testing.T) {
	f := newInitializedFixture(t)
	ctx := context.Background()

	category, err := f.store.AddCategory(ctx, "action", model.CategoryTypeVideo)
	require.NoError(t, err)

	f.videos.catRemoveErr = errors.New("rewrite refused")
	assert.Error(t, f.store.RemoveCategory(ctx, category.ID))

	assert.Len(t, f.cats.categories, 1, "the document delete commits only after the video rewrites")
	assert.Len(t, f.store.Categories(), 1)
}

func TestSnapshotsSurviveLaterMutations(t *testing.T) {
	f := newInitializedFixture(t)
	ctx := context.Background()

	first, err := f.store.AddVideo(ctx, model.Video{URL: "https://example.com/a.mp4"})
	require.NoError(t, err)
	second, err := f.store.AddVideo(ctx, model.Video{URL: "https://example.com/b.mp4"})
	require.NoError(t, err)

	playlist, err := f.store.CreatePlaylist(ctx, "mix", "")
	require.NoError(t, err)
	require.NoError(t, f.store.AddVideoToPlaylist(ctx, playlist.ID, first.ID))
	require.NoError(t, f.store.AddVideoToPlaylist(ctx, playlist.ID, second.ID))

	before := f.store.Playlists()
	require.Len(t, before, 1)
	require.ElementsMatch(t, []string{first.ID, second.ID}, before[0].VideoIDs)

	require.NoError(t, f.store.RemoveVideo(ctx, first.ID))

	assert.ElementsMatch(t, []string{first.ID, second.ID}, before[0].VideoIDs,
		"an earlier snapshot must not change under later mutations")
	assert.Equal(t, []string{second.ID}, f.store.Playlists()[0].VideoIDs)
}

func TestMangaDefaultVersionLastWriterWins(t *testing.T) {
	f := newInitializedFixture(t)
	ctx := context.Background()

	manga, err := f.store.AddManga(ctx, model.Manga{Title: "Title"})
	require.NoError(t, err)
	require.Len(t, manga.Versions, 1)
	assert.True(t, manga.Versions[0].IsDefault)

	require.NoError(t, f.store.AddMangaVersion(ctx, manga.ID, model.MangaVersion{
		Name:      "Uncensored",
		IsDefault: true,
	}))

	mangas := f.store.Mangas()
	require.Len(t, mangas, 1)
	require.Len(t, mangas[0].Versions, 2)
	assert.False(t, mangas[0].Versions[0].IsDefault, "previous default must be cleared")
	assert.True(t, mangas[0].Versions[1].IsDefault)
}

func TestRemoveMangaVersionRefusesLast(t *testing.T) {
	f := newInitializedFixture(t)
	ctx := context.Background()

	manga, err := f.store.AddManga(ctx, model.Manga{Title: "Title"})
	require.NoError(t, err)

	require.NoError(t, f.store.RemoveMangaVersion(ctx, manga.ID, manga.Versions[0].ID))
	mangas := f.store.Mangas()
	require.Len(t, mangas, 1)
	assert.Len(t, mangas[0].Versions, 1, "the only version cannot be removed")
}

func TestSubscriptionOverwritesUserDataWholesale(t *testing.T) {
	f := newInitializedFixture(t)

	snapshot := model.UserData{
		UserID:    model.DefaultUserID,
		Favorites: []string{"remote-1", "remote-2"},
	}
	snapshot.Normalize()
	f.userData.ch <- snapshot

	assert.Eventually(t, func() bool {
		return len(f.store.UserData().Favorites) == 2
	}, time.Second, 10*time.Millisecond)
	assert.True(t, f.hub.has("userData"))
}

func TestSubscriptionOverwritesPlaylistsWholesale(t *testing.T) {
	f := newInitializedFixture(t)

	f.playlists.ch <- []model.Playlist{{ID: "p-remote", Name: "from-remote", VideoIDs: []string{}}}

	assert.Eventually(t, func() bool {
		playlists := f.store.Playlists()
		return len(playlists) == 1 && playlists[0].ID == "p-remote"
	}, time.Second, 10*time.Millisecond)
	assert.True(t, f.hub.has("playlists"))
}

func TestSaveSettingsReplacesWholesale(t *testing.T) {
	f := newInitializedFixture(t)

	next := model.Settings{ShowHiddenVideos: true, ShowAddButton: false}
	require.NoError(t, f.store.SaveSettings(next))
	assert.Equal(t, next, f.store.Settings())
	assert.Equal(t, 1, f.settings.saves)
}

func TestPersonMapRoundtrip(t *testing.T) {
	f := newInitializedFixture(t)
	ctx := context.Background()

	require.NoError(t, f.store.SavePersonImage(ctx, model.PersonKindActress, "Jane Doe", "https://img.example.com/jane.jpg"))
	images := f.store.FetchPersonMap(ctx, model.PersonKindActress)
	assert.Equal(t, "https://img.example.com/jane.jpg", images["Jane Doe"])

	require.NoError(t, f.store.RemovePersonImage(ctx, model.PersonKindActress, "Jane Doe"))
	images = f.store.FetchPersonMap(ctx, model.PersonKindActress)
	assert.NotContains(t, images, "Jane Doe")
}
