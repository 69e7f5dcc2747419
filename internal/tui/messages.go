package tui

import "github.com/pipocahq/pipoca/internal/domain"

// statusLevel selects how the status line is rendered.
type statusLevel int

const (
	statusInfo statusLevel = iota
	statusWarn
	statusError
)

// catalogMsg carries popular items for the catalog tab.
type catalogMsg struct {
	items []domain.Item
	err   error
}

// searchMsg carries remote search results for the catalog tab.
type searchMsg struct {
	query string
	items []domain.Item
	err   error
}

// detailsMsg carries the resolved record for the details overlay. On a fetch
// failure item holds the snapshot the user selected.
type detailsMsg struct {
	item domain.Item
	err  error
}

// favoritesMsg carries the loaded favorites collection.
type favoritesMsg struct {
	items []domain.Item
	err   error
}

// reviewsMsg carries the loaded reviews collection.
type reviewsMsg struct {
	reviews []domain.Review
	err     error
}

// playlistsMsg carries the loaded playlists collection.
type playlistsMsg struct {
	playlists []domain.Playlist
	err       error
}

// preferencesMsg carries the loaded profile preferences (nil when unset).
type preferencesMsg struct {
	prefs *domain.Preferences
	err   error
}

// actionMsg reports the outcome of a mutating store call. touched names the
// collection key whose view should reload on success.
type actionMsg struct {
	status  string
	level   statusLevel
	err     error
	touched string
}
