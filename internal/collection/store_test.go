package collection

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/pipocahq/pipoca/internal/domain"
	"github.com/pipocahq/pipoca/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testStore(t *testing.T) (*Store, *storage.MemoryProvider) {
	t.Helper()
	provider := storage.NewMemoryProvider()
	store := NewStore(provider, testLogger())
	store.now = func() time.Time { return time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC) }
	return store, provider
}

func testItem(id, title string) domain.Item {
	return domain.Item{ID: id, Title: title, Type: domain.MediaTypeMovie, Genre: "Ação"}
}

// flakyProvider wraps a working provider with switchable failures.
type flakyProvider struct {
	inner   *storage.MemoryProvider
	failGet bool
	failSet bool
}

func (p *flakyProvider) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if p.failGet {
		return nil, false, errors.New("disk offline")
	}
	return p.inner.Get(ctx, key)
}

func (p *flakyProvider) Set(ctx context.Context, key string, value []byte) error {
	if p.failSet {
		return errors.New("disk offline")
	}
	return p.inner.Set(ctx, key, value)
}

func (p *flakyProvider) Close() error { return nil }

func TestEnsureDefaultsSeedsOnce(t *testing.T) {
	store, provider := testStore(t)
	ctx := context.Background()

	require.NoError(t, store.EnsureDefaults(ctx))
	require.NoError(t, store.EnsureDefaults(ctx))

	playlists, err := store.Playlists(ctx)
	require.NoError(t, err)
	require.Len(t, playlists, 4)

	assert.Equal(t, DefaultActionID, playlists[0].ID)
	assert.Equal(t, "Ação de Respeito", playlists[0].Name)
	assert.Equal(t, "🔥", playlists[0].Icon)
	for _, p := range playlists {
		assert.True(t, p.IsDefault)
		assert.Empty(t, p.Items)
	}

	// Seeds survive a restart without being re-derived.
	fresh := NewStore(provider, testLogger())
	again, err := fresh.Playlists(ctx)
	require.NoError(t, err)
	assert.Len(t, again, 4)
}

func TestEnsureDefaultsKeepsUserPlaylists(t *testing.T) {
	store, _ := testStore(t)
	ctx := context.Background()

	require.NoError(t, store.EnsureDefaults(ctx))
	require.NoError(t, store.SavePlaylist(ctx, domain.Playlist{ID: "playlist-1", Name: "Minha"}))

	require.NoError(t, store.EnsureDefaults(ctx))

	playlists, err := store.Playlists(ctx)
	require.NoError(t, err)
	assert.Len(t, playlists, 5)
}

func TestFavoritesEmptyWhenNeverSaved(t *testing.T) {
	store, _ := testStore(t)

	favorites, err := store.Favorites(context.Background())
	require.NoError(t, err)
	assert.Empty(t, favorites)
}

func TestAddFavoriteAppendsInOrder(t *testing.T) {
	store, provider := testStore(t)
	ctx := context.Background()

	require.NoError(t, store.AddFavorite(ctx, testItem("m1", "Matrix")))
	require.NoError(t, store.AddFavorite(ctx, testItem("m2", "Interestelar")))

	favorites, err := store.Favorites(ctx)
	require.NoError(t, err)
	require.Len(t, favorites, 2)
	assert.Equal(t, "m1", favorites[0].ID)
	assert.Equal(t, "m2", favorites[1].ID)

	// A fresh store over the same provider sees the persisted state.
	fresh := NewStore(provider, testLogger())
	reloaded, err := fresh.Favorites(ctx)
	require.NoError(t, err)
	assert.Equal(t, favorites, reloaded)
}

func TestAddFavoriteDuplicateRejected(t *testing.T) {
	store, _ := testStore(t)
	ctx := context.Background()

	require.NoError(t, store.AddFavorite(ctx, testItem("m1", "Matrix")))

	err := store.AddFavorite(ctx, testItem("m1", "Matrix"))
	assert.ErrorIs(t, err, domain.ErrDuplicateFavorite)

	favorites, err := store.Favorites(ctx)
	require.NoError(t, err)
	assert.Len(t, favorites, 1)
}

func TestAddFavoriteValidatesBeforeWrite(t *testing.T) {
	store, _ := testStore(t)
	ctx := context.Background()

	err := store.AddFavorite(ctx, domain.Item{Title: "Sem ID", Type: domain.MediaTypeMovie})
	assert.True(t, domain.IsValidation(err))

	favorites, err := store.Favorites(ctx)
	require.NoError(t, err)
	assert.Empty(t, favorites)
}

func TestRemoveFavoriteAbsentIsNoop(t *testing.T) {
	store, _ := testStore(t)
	ctx := context.Background()

	require.NoError(t, store.AddFavorite(ctx, testItem("m1", "Matrix")))
	require.NoError(t, store.RemoveFavorite(ctx, "nope"))

	favorites, err := store.Favorites(ctx)
	require.NoError(t, err)
	assert.Len(t, favorites, 1)

	require.NoError(t, store.RemoveFavorite(ctx, "m1"))
	favorites, err = store.Favorites(ctx)
	require.NoError(t, err)
	assert.Empty(t, favorites)
}

func TestSaveReviewStampsDateAndUpserts(t *testing.T) {
	store, _ := testStore(t)
	ctx := context.Background()

	first := domain.NewReview(testItem("m1", "Matrix"), 4, "clássico")
	saved, err := store.SaveReview(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, store.now(), saved.Date)

	second := domain.NewReview(testItem("m2", "Interestelar"), 5, "")
	_, err = store.SaveReview(ctx, second)
	require.NoError(t, err)

	reviews, err := store.Reviews(ctx)
	require.NoError(t, err)
	require.Len(t, reviews, 2)
	// New reviews go to the front; re-saving keeps position.
	assert.Equal(t, "m2", reviews[0].ID)
	assert.Equal(t, "m1", reviews[1].ID)

	edited := domain.NewReview(testItem("m1", "Matrix"), 2, "revi e mudei de ideia")
	_, err = store.SaveReview(ctx, edited)
	require.NoError(t, err)

	reviews, err = store.Reviews(ctx)
	require.NoError(t, err)
	require.Len(t, reviews, 2)
	assert.Equal(t, "m1", reviews[1].ID)
	assert.Equal(t, 2, reviews[1].Rating)
	assert.Equal(t, "revi e mudei de ideia", reviews[1].Comment)
}

func TestSaveReviewRejectsZeroRating(t *testing.T) {
	store, _ := testStore(t)
	ctx := context.Background()

	_, err := store.SaveReview(ctx, domain.NewReview(testItem("m1", "Matrix"), 0, ""))
	assert.True(t, domain.IsValidation(err))

	reviews, err := store.Reviews(ctx)
	require.NoError(t, err)
	assert.Empty(t, reviews)
}

func TestSaveReviewRejectsLongComment(t *testing.T) {
	store, _ := testStore(t)

	long := strings.Repeat("é", domain.MaxReviewComment+1)
	_, err := store.SaveReview(context.Background(), domain.NewReview(testItem("m1", "Matrix"), 3, long))
	assert.True(t, domain.IsValidation(err))

	// Exactly at the limit is fine.
	ok := strings.Repeat("é", domain.MaxReviewComment)
	_, err = store.SaveReview(context.Background(), domain.NewReview(testItem("m1", "Matrix"), 3, ok))
	assert.NoError(t, err)
}

func TestDeleteReview(t *testing.T) {
	store, _ := testStore(t)
	ctx := context.Background()

	_, err := store.SaveReview(ctx, domain.NewReview(testItem("m1", "Matrix"), 4, ""))
	require.NoError(t, err)

	require.NoError(t, store.DeleteReview(ctx, "m1"))
	require.NoError(t, store.DeleteReview(ctx, "m1")) // absent: no-op

	reviews, err := store.Reviews(ctx)
	require.NoError(t, err)
	assert.Empty(t, reviews)
}

func TestSavePlaylistNewAndEdit(t *testing.T) {
	store, _ := testStore(t)
	ctx := context.Background()
	require.NoError(t, store.EnsureDefaults(ctx))

	created := domain.Playlist{ID: "playlist-1", Name: "Maratona", Description: "fim de semana", Icon: "🍿"}
	require.NoError(t, store.SavePlaylist(ctx, created))

	playlists, err := store.Playlists(ctx)
	require.NoError(t, err)
	require.Len(t, playlists, 5)
	// New playlists go to the front, ahead of the defaults.
	assert.Equal(t, "playlist-1", playlists[0].ID)
	assert.False(t, playlists[0].IsDefault)
	assert.Equal(t, store.now(), playlists[0].CreatedAt)
	assert.NotNil(t, playlists[0].Items)

	require.NoError(t, store.AddToPlaylist(ctx, "playlist-1", testItem("m1", "Matrix")))

	// Editing with nil Items keeps the membership and the creation time.
	edit := domain.Playlist{ID: "playlist-1", Name: "Maratona 2", Icon: "🎬"}
	require.NoError(t, store.SavePlaylist(ctx, edit))

	playlists, err = store.Playlists(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Maratona 2", playlists[0].Name)
	assert.Equal(t, store.now(), playlists[0].CreatedAt)
	require.Len(t, playlists[0].Items, 1)
	assert.Equal(t, "m1", playlists[0].Items[0].ID)
}

func TestSavePlaylistValidation(t *testing.T) {
	store, _ := testStore(t)
	ctx := context.Background()

	err := store.SavePlaylist(ctx, domain.Playlist{ID: "playlist-1", Name: "   "})
	assert.True(t, domain.IsValidation(err))

	err = store.SavePlaylist(ctx, domain.Playlist{ID: "playlist-1", Name: strings.Repeat("a", domain.MaxPlaylistName+1)})
	assert.True(t, domain.IsValidation(err))

	err = store.SavePlaylist(ctx, domain.Playlist{ID: "playlist-1", Name: "ok", Icon: "🤖"})
	assert.True(t, domain.IsValidation(err))
}

func TestDefaultPlaylistsAreImmutable(t *testing.T) {
	store, _ := testStore(t)
	ctx := context.Background()
	require.NoError(t, store.EnsureDefaults(ctx))

	err := store.SavePlaylist(ctx, domain.Playlist{ID: DefaultActionID, Name: "Renomeada", Icon: "🔥"})
	assert.ErrorIs(t, err, domain.ErrDefaultPlaylist)

	err = store.DeletePlaylist(ctx, DefaultComedyID)
	assert.ErrorIs(t, err, domain.ErrDefaultPlaylist)

	// Their items still change through membership operations.
	require.NoError(t, store.AddToPlaylist(ctx, DefaultActionID, testItem("m1", "Matrix")))
	playlists, err := store.Playlists(ctx)
	require.NoError(t, err)
	assert.Len(t, playlists[0].Items, 1)
}

func TestAddToPlaylistMembership(t *testing.T) {
	store, _ := testStore(t)
	ctx := context.Background()
	require.NoError(t, store.EnsureDefaults(ctx))

	item := testItem("m1", "Matrix")
	require.NoError(t, store.AddToPlaylist(ctx, DefaultActionID, item))

	err := store.AddToPlaylist(ctx, DefaultActionID, item)
	assert.ErrorIs(t, err, domain.ErrAlreadyInPlaylist)

	playlists, err := store.Playlists(ctx)
	require.NoError(t, err)
	assert.Len(t, playlists[0].Items, 1)

	err = store.AddToPlaylist(ctx, "playlist-missing", item)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRemoveFromPlaylist(t *testing.T) {
	store, _ := testStore(t)
	ctx := context.Background()
	require.NoError(t, store.EnsureDefaults(ctx))

	require.NoError(t, store.AddToPlaylist(ctx, DefaultActionID, testItem("m1", "Matrix")))
	require.NoError(t, store.RemoveFromPlaylist(ctx, DefaultActionID, "absent")) // no-op
	require.NoError(t, store.RemoveFromPlaylist(ctx, DefaultActionID, "m1"))

	playlists, err := store.Playlists(ctx)
	require.NoError(t, err)
	assert.Empty(t, playlists[0].Items)
}

func TestPreferencesLifecycle(t *testing.T) {
	store, provider := testStore(t)
	ctx := context.Background()

	prefs, err := store.Preferences(ctx)
	require.NoError(t, err)
	assert.Nil(t, prefs)

	saved := domain.Preferences{UserName: "Ana", Genres: []string{"Ação", "Sci-Fi"}, MinRating: 7}
	require.NoError(t, store.SavePreferences(ctx, saved))

	fresh := NewStore(provider, testLogger())
	prefs, err = fresh.Preferences(ctx)
	require.NoError(t, err)
	require.NotNil(t, prefs)
	assert.Equal(t, saved, *prefs)
}

func TestSavePreferencesValidation(t *testing.T) {
	store, _ := testStore(t)
	ctx := context.Background()

	err := store.SavePreferences(ctx, domain.Preferences{UserName: "  "})
	assert.True(t, domain.IsValidation(err))

	err = store.SavePreferences(ctx, domain.Preferences{UserName: "Ana", Genres: []string{"Faroeste"}})
	assert.True(t, domain.IsValidation(err))

	err = store.SavePreferences(ctx, domain.Preferences{UserName: "Ana", MinRating: 11})
	assert.True(t, domain.IsValidation(err))
}

func TestReadFailureYieldsEmptyStateAndError(t *testing.T) {
	flaky := &flakyProvider{inner: storage.NewMemoryProvider(), failGet: true}
	store := NewStore(flaky, testLogger())

	favorites, err := store.Favorites(context.Background())
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
	assert.Empty(t, favorites)
}

func TestWriteFailureInvalidatesCache(t *testing.T) {
	flaky := &flakyProvider{inner: storage.NewMemoryProvider()}
	store := NewStore(flaky, testLogger())
	ctx := context.Background()

	require.NoError(t, store.AddFavorite(ctx, testItem("m1", "Matrix")))

	flaky.failSet = true
	err := store.AddFavorite(ctx, testItem("m2", "Interestelar"))
	assert.ErrorIs(t, err, domain.ErrStorageWriteFailed)

	// The cached blob was dropped, so the next read reflects what actually
	// persisted: just the first favorite.
	favorites, err := store.Favorites(ctx)
	require.NoError(t, err)
	require.Len(t, favorites, 1)
	assert.Equal(t, "m1", favorites[0].ID)
}

func TestCorruptBlobTreatedAsEmpty(t *testing.T) {
	provider := storage.NewMemoryProvider()
	ctx := context.Background()
	require.NoError(t, provider.Set(ctx, KeyFavorites, []byte("{not json")))

	store := NewStore(provider, testLogger())
	favorites, err := store.Favorites(ctx)
	require.NoError(t, err)
	assert.Empty(t, favorites)
}

func TestInvalidRecordsDroppedOnLoad(t *testing.T) {
	provider := storage.NewMemoryProvider()
	ctx := context.Background()
	blob := `[{"id":"m1","title":"Matrix","type":"Filme","genre":"Ação"},{"title":"sem id","type":"Filme"},"not an object"]`
	require.NoError(t, provider.Set(ctx, KeyFavorites, []byte(blob)))

	store := NewStore(provider, testLogger())
	favorites, err := store.Favorites(ctx)
	require.NoError(t, err)
	require.Len(t, favorites, 1)
	assert.Equal(t, "m1", favorites[0].ID)
}

func TestInvalidateForcesReread(t *testing.T) {
	provider := storage.NewMemoryProvider()
	ctx := context.Background()
	store := NewStore(provider, testLogger())

	require.NoError(t, store.AddFavorite(ctx, testItem("m1", "Matrix")))

	// Another writer updates storage behind this store's cache.
	other := NewStore(provider, testLogger())
	require.NoError(t, other.AddFavorite(ctx, testItem("m2", "Interestelar")))

	favorites, err := store.Favorites(ctx)
	require.NoError(t, err)
	assert.Len(t, favorites, 1) // stale cache

	store.Invalidate(KeyFavorites)
	favorites, err = store.Favorites(ctx)
	require.NoError(t, err)
	assert.Len(t, favorites, 2)
}

func TestNewPlaylistID(t *testing.T) {
	store, _ := testStore(t)
	id := store.NewPlaylistID()
	assert.True(t, strings.HasPrefix(id, "playlist-"))
}
