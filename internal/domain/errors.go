package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for store operations
var (
	// ErrStorageUnavailable indicates the storage provider's read failed.
	// A missing key is not an error; callers get the empty state instead.
	ErrStorageUnavailable = errors.New("storage is unavailable")

	// ErrStorageWriteFailed indicates a save did not persist. In-memory
	// state the caller optimistically applied must be treated as unconfirmed.
	ErrStorageWriteFailed = errors.New("storage write failed")

	// ErrDuplicateFavorite indicates the item is already favorited.
	// Surfaced to the user, not a silent no-op.
	ErrDuplicateFavorite = errors.New("item is already a favorite")

	// ErrAlreadyInPlaylist indicates the item is already in the playlist.
	// Non-fatal; the playlist is left unchanged.
	ErrAlreadyInPlaylist = errors.New("item is already in this playlist")

	// ErrDefaultPlaylist indicates an attempt to edit or delete a seeded
	// default playlist. Only their items may change.
	ErrDefaultPlaylist = errors.New("default playlists cannot be edited or deleted")

	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrMetadataUnavailable indicates the metadata source is unreachable.
	// Retryable from the UI; the store neither caches nor retries.
	ErrMetadataUnavailable = errors.New("metadata source is unreachable")
)

// ValidationError reports a record failing an invariant before any write is
// attempted. No I/O happens and no partial state change occurs.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s %s", e.Field, e.Reason)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
