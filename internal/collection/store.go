// Package collection implements the local collection store: read-modify-write
// access to the four persisted collections (favorites, reviews, playlists,
// preferences), each stored as one JSON blob under a fixed key.
package collection

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/pipocahq/pipoca/internal/domain"
)

// Storage keys. One serialized blob per collection.
const (
	KeyFavorites   = "favorites"
	KeyReviews     = "reviews"
	KeyPlaylists   = "playlists"
	KeyPreferences = "preferences"
)

// defaultOpTimeout bounds a single load/save round trip. A hung provider
// surfaces as a storage error instead of hanging the triggering action.
const defaultOpTimeout = 5 * time.Second

// Store owns the four collections. Reads go through an in-memory blob cache;
// writes update storage first and only then the cache. Per-key mutexes
// serialize read-modify-write cycles, so concurrent callers on the same
// collection cannot interleave. There is no atomicity across keys.
type Store struct {
	provider domain.StorageProvider
	logger   *slog.Logger

	now     func() time.Time
	timeout time.Duration

	cacheMu sync.RWMutex
	cache   map[string][]byte

	locks map[string]*sync.Mutex
}

// NewStore creates a collection store over the given provider.
func NewStore(provider domain.StorageProvider, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	locks := make(map[string]*sync.Mutex, 4)
	for _, key := range []string{KeyFavorites, KeyReviews, KeyPlaylists, KeyPreferences} {
		locks[key] = &sync.Mutex{}
	}
	return &Store{
		provider: provider,
		logger:   logger,
		now:      time.Now,
		timeout:  defaultOpTimeout,
		cache:    make(map[string][]byte),
		locks:    locks,
	}
}

// === Lifecycle ===

// EnsureDefaults seeds the four default playlists when the playlists
// collection is empty or absent, persisting them immediately so later loads
// see them without re-deriving. Idempotent; called once at startup.
func (s *Store) EnsureDefaults(ctx context.Context) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	s.locks[KeyPlaylists].Lock()
	defer s.locks[KeyPlaylists].Unlock()

	data, found, err := s.readBlob(ctx, KeyPlaylists)
	if err != nil {
		return err
	}
	if found {
		if existing := decodeAll[domain.Playlist](data, nil, s.logger, KeyPlaylists); len(existing) > 0 {
			return nil
		}
	}

	defaults := DefaultPlaylists(s.now())
	if err := s.writeCollection(ctx, KeyPlaylists, defaults); err != nil {
		return err
	}
	s.logger.Info("seeded default playlists", "count", len(defaults))
	return nil
}

// === Favorites ===

// Favorites returns the favorites collection. A read failure yields the
// empty state plus ErrStorageUnavailable; callers decide whether to surface
// it.
func (s *Store) Favorites(ctx context.Context) ([]domain.Item, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()
	return s.loadItems(ctx, KeyFavorites)
}

// AddFavorite appends an item snapshot to the favorites. Favoriting an item
// already present is rejected with ErrDuplicateFavorite, not silently
// ignored (unlike playlist membership).
func (s *Store) AddFavorite(ctx context.Context, item domain.Item) error {
	if err := item.Validate(); err != nil {
		return err
	}

	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	s.locks[KeyFavorites].Lock()
	defer s.locks[KeyFavorites].Unlock()

	favorites, err := s.loadItems(ctx, KeyFavorites)
	if err != nil {
		return err
	}
	if ContainsID(favorites, item.ID, itemID) {
		return domain.ErrDuplicateFavorite
	}

	favorites = append(favorites, item)
	if err := s.writeCollection(ctx, KeyFavorites, favorites); err != nil {
		return err
	}
	s.logger.Info("added favorite", "id", item.ID, "title", item.Title)
	return nil
}

// RemoveFavorite drops the favorite with the given id. Removing an absent id
// is a no-op.
func (s *Store) RemoveFavorite(ctx context.Context, id string) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	s.locks[KeyFavorites].Lock()
	defer s.locks[KeyFavorites].Unlock()

	favorites, err := s.loadItems(ctx, KeyFavorites)
	if err != nil {
		return err
	}
	remaining := RemoveByID(favorites, id, itemID)
	if len(remaining) == len(favorites) {
		return nil
	}

	if err := s.writeCollection(ctx, KeyFavorites, remaining); err != nil {
		return err
	}
	s.logger.Info("removed favorite", "id", id)
	return nil
}

// === Reviews ===

// Reviews returns the reviews collection in stored order.
func (s *Store) Reviews(ctx context.Context) ([]domain.Review, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()
	return s.loadReviews(ctx)
}

// SaveReview creates or overwrites the review keyed by its item id. The
// date is stamped with the current time on every save, edits included. The
// stamped review is returned.
func (s *Store) SaveReview(ctx context.Context, review domain.Review) (domain.Review, error) {
	if err := review.Validate(); err != nil {
		return domain.Review{}, err
	}
	review.Date = s.now()

	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	s.locks[KeyReviews].Lock()
	defer s.locks[KeyReviews].Unlock()

	reviews, err := s.loadReviews(ctx)
	if err != nil {
		return domain.Review{}, err
	}
	reviews = UpsertByID(reviews, review, reviewID)

	if err := s.writeCollection(ctx, KeyReviews, reviews); err != nil {
		return domain.Review{}, err
	}
	s.logger.Info("saved review", "id", review.ID, "rating", review.Rating)
	return review, nil
}

// DeleteReview drops the review with the given id.
func (s *Store) DeleteReview(ctx context.Context, id string) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	s.locks[KeyReviews].Lock()
	defer s.locks[KeyReviews].Unlock()

	reviews, err := s.loadReviews(ctx)
	if err != nil {
		return err
	}
	remaining := RemoveByID(reviews, id, reviewID)
	if len(remaining) == len(reviews) {
		return nil
	}

	if err := s.writeCollection(ctx, KeyReviews, remaining); err != nil {
		return err
	}
	s.logger.Info("deleted review", "id", id)
	return nil
}

// === Playlists ===

// Playlists returns the playlists collection in stored order.
func (s *Store) Playlists(ctx context.Context) ([]domain.Playlist, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()
	return s.loadPlaylists(ctx)
}

// NewPlaylistID mints an id for a user-created playlist.
func (s *Store) NewPlaylistID() string {
	return "playlist-" + strconv.FormatInt(s.now().UnixMilli(), 10)
}

// SavePlaylist creates or edits a playlist by id. Edits replace the entry in
// place; new playlists are prepended. Default playlists reject edits through
// this path; only their items sequence changes, via AddToPlaylist and
// RemoveFromPlaylist.
func (s *Store) SavePlaylist(ctx context.Context, playlist domain.Playlist) error {
	if err := playlist.Validate(); err != nil {
		return err
	}

	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	s.locks[KeyPlaylists].Lock()
	defer s.locks[KeyPlaylists].Unlock()

	playlists, err := s.loadPlaylists(ctx)
	if err != nil {
		return err
	}

	now := s.now()
	existing := findPlaylist(playlists, playlist.ID)
	if existing != nil {
		if existing.IsDefault {
			return domain.ErrDefaultPlaylist
		}
		playlist.CreatedAt = existing.CreatedAt
		if playlist.Items == nil {
			playlist.Items = existing.Items
		}
	} else {
		playlist.IsDefault = false
		if playlist.CreatedAt.IsZero() {
			playlist.CreatedAt = now
		}
		if playlist.Items == nil {
			playlist.Items = []domain.Item{}
		}
	}
	playlist.UpdatedAt = now

	playlists = UpsertByID(playlists, playlist, playlistID)
	if err := s.writeCollection(ctx, KeyPlaylists, playlists); err != nil {
		return err
	}
	s.logger.Info("saved playlist", "id", playlist.ID, "name", playlist.Name)
	return nil
}

// DeletePlaylist removes a user playlist. Default playlists cannot be
// deleted.
func (s *Store) DeletePlaylist(ctx context.Context, id string) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	s.locks[KeyPlaylists].Lock()
	defer s.locks[KeyPlaylists].Unlock()

	playlists, err := s.loadPlaylists(ctx)
	if err != nil {
		return err
	}
	if existing := findPlaylist(playlists, id); existing != nil && existing.IsDefault {
		return domain.ErrDefaultPlaylist
	}

	remaining := RemoveByID(playlists, id, playlistID)
	if len(remaining) == len(playlists) {
		return nil
	}

	if err := s.writeCollection(ctx, KeyPlaylists, remaining); err != nil {
		return err
	}
	s.logger.Info("deleted playlist", "id", id)
	return nil
}

// AddToPlaylist adds an item to a playlist unless it is already a member, in
// which case ErrAlreadyInPlaylist is returned and the playlist is left
// unchanged. Callers surface that as a warning, not an error state.
func (s *Store) AddToPlaylist(ctx context.Context, playlistID string, item domain.Item) error {
	if err := item.Validate(); err != nil {
		return err
	}

	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	s.locks[KeyPlaylists].Lock()
	defer s.locks[KeyPlaylists].Unlock()

	playlists, err := s.loadPlaylists(ctx)
	if err != nil {
		return err
	}
	idx := playlistIndex(playlists, playlistID)
	if idx < 0 {
		return fmt.Errorf("playlist %s: %w", playlistID, domain.ErrNotFound)
	}
	if playlists[idx].Contains(item.ID) {
		return domain.ErrAlreadyInPlaylist
	}

	playlists[idx].Items = append(playlists[idx].Items, item)
	playlists[idx].UpdatedAt = s.now()

	if err := s.writeCollection(ctx, KeyPlaylists, playlists); err != nil {
		return err
	}
	s.logger.Info("added item to playlist", "playlist", playlistID, "item", item.ID)
	return nil
}

// RemoveFromPlaylist drops an item from a playlist. Removing an absent item
// is a no-op.
func (s *Store) RemoveFromPlaylist(ctx context.Context, playlistID, itemID string) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	s.locks[KeyPlaylists].Lock()
	defer s.locks[KeyPlaylists].Unlock()

	playlists, err := s.loadPlaylists(ctx)
	if err != nil {
		return err
	}
	idx := playlistIndex(playlists, playlistID)
	if idx < 0 {
		return fmt.Errorf("playlist %s: %w", playlistID, domain.ErrNotFound)
	}
	if !playlists[idx].Contains(itemID) {
		return nil
	}

	playlists[idx].Items = RemoveByID(playlists[idx].Items, itemID, func(i domain.Item) string { return i.ID })
	playlists[idx].UpdatedAt = s.now()

	if err := s.writeCollection(ctx, KeyPlaylists, playlists); err != nil {
		return err
	}
	s.logger.Info("removed item from playlist", "playlist", playlistID, "item", itemID)
	return nil
}

// === Preferences ===

// Preferences returns the profile record, or nil when none has been saved.
func (s *Store) Preferences(ctx context.Context) (*domain.Preferences, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	data, found, err := s.readBlob(ctx, KeyPreferences)
	if err != nil || !found {
		return nil, err
	}

	var prefs domain.Preferences
	if err := json.Unmarshal(data, &prefs); err != nil {
		s.logger.Warn("discarding unreadable preferences blob", "error", err)
		return nil, nil
	}
	return &prefs, nil
}

// SavePreferences replaces the profile record wholesale.
func (s *Store) SavePreferences(ctx context.Context, prefs domain.Preferences) error {
	if err := prefs.Validate(); err != nil {
		return err
	}

	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	s.locks[KeyPreferences].Lock()
	defer s.locks[KeyPreferences].Unlock()

	if err := s.writeCollection(ctx, KeyPreferences, prefs); err != nil {
		return err
	}
	s.logger.Info("saved preferences", "user", prefs.UserName)
	return nil
}

// === Cache ===

// Invalidate drops the cached blob for a key so the next load re-reads
// storage. The TUI calls this on tab focus.
func (s *Store) Invalidate(key string) {
	s.cacheMu.Lock()
	delete(s.cache, key)
	s.cacheMu.Unlock()
}

// InvalidateAll drops every cached blob.
func (s *Store) InvalidateAll() {
	s.cacheMu.Lock()
	s.cache = make(map[string][]byte)
	s.cacheMu.Unlock()
}

// === Internals ===

func itemID(i domain.Item) string         { return i.ID }
func reviewID(r domain.Review) string     { return r.ID }
func playlistID(p domain.Playlist) string { return p.ID }

func findPlaylist(playlists []domain.Playlist, id string) *domain.Playlist {
	if idx := playlistIndex(playlists, id); idx >= 0 {
		return &playlists[idx]
	}
	return nil
}

func playlistIndex(playlists []domain.Playlist, id string) int {
	for i := range playlists {
		if playlists[i].ID == id {
			return i
		}
	}
	return -1
}

// opCtx applies the store's deadline unless the caller already set one.
func (s *Store) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}

func (s *Store) loadItems(ctx context.Context, key string) ([]domain.Item, error) {
	data, found, err := s.readBlob(ctx, key)
	if err != nil || !found {
		return []domain.Item{}, err
	}
	return decodeAll(data, domain.Item.Validate, s.logger, key), nil
}

func (s *Store) loadReviews(ctx context.Context) ([]domain.Review, error) {
	data, found, err := s.readBlob(ctx, KeyReviews)
	if err != nil || !found {
		return []domain.Review{}, err
	}
	// Stored reviews are checked for shape only; the 1-5 rating rule is a
	// write-time invariant and already-persisted records satisfy it.
	return decodeAll[domain.Review](data, nil, s.logger, KeyReviews), nil
}

func (s *Store) loadPlaylists(ctx context.Context) ([]domain.Playlist, error) {
	data, found, err := s.readBlob(ctx, KeyPlaylists)
	if err != nil || !found {
		return []domain.Playlist{}, err
	}
	return decodeAll[domain.Playlist](data, nil, s.logger, KeyPlaylists), nil
}

// readBlob fetches a blob, preferring the memory cache. Provider failures
// map to ErrStorageUnavailable; a missing key is found=false with no error.
func (s *Store) readBlob(ctx context.Context, key string) ([]byte, bool, error) {
	s.cacheMu.RLock()
	if data, ok := s.cache[key]; ok {
		s.cacheMu.RUnlock()
		return data, true, nil
	}
	s.cacheMu.RUnlock()

	data, found, err := s.provider.Get(ctx, key)
	if err != nil {
		s.logger.Error("storage read failed", "key", key, "error", err)
		return nil, false, fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	if !found {
		return nil, false, nil
	}

	s.cacheMu.Lock()
	s.cache[key] = data
	s.cacheMu.Unlock()
	return data, true, nil
}

// writeCollection serializes the full collection and writes it back, one
// write per call. On failure the cached blob is dropped: the state the
// caller was about to commit must not be treated as persisted.
func (s *Store) writeCollection(ctx context.Context, key string, v any) error {
	data, err := encode(v)
	if err != nil {
		return err
	}

	if err := s.provider.Set(ctx, key, data); err != nil {
		s.Invalidate(key)
		s.logger.Error("storage write failed", "key", key, "error", err)
		return fmt.Errorf("%w: %v", domain.ErrStorageWriteFailed, err)
	}

	s.cacheMu.Lock()
	s.cache[key] = data
	s.cacheMu.Unlock()
	return nil
}
