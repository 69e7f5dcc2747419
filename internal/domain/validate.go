package domain

import (
	"strings"
	"unicode/utf8"
)

// Field limits enforced before any write reaches storage.
const (
	MaxReviewComment    = 500
	MaxPlaylistName     = 50
	MaxPlaylistDesc     = 150
	MinReviewRating     = 1
	MaxReviewRating     = 5
	MaxPreferenceRating = 10
)

// Validate checks the item snapshot is well formed enough to embed.
func (i Item) Validate() error {
	if i.ID == "" {
		return &ValidationError{Field: "id", Reason: "must not be empty"}
	}
	if !i.Type.Valid() {
		return &ValidationError{Field: "type", Reason: "must be a movie or series"}
	}
	return nil
}

// Validate enforces the review invariants. A zero rating means "not yet
// reviewed" and is rejected at write time.
func (r Review) Validate() error {
	if r.ID == "" {
		return &ValidationError{Field: "id", Reason: "must not be empty"}
	}
	if r.Rating < MinReviewRating || r.Rating > MaxReviewRating {
		return &ValidationError{Field: "rating", Reason: "must be between 1 and 5"}
	}
	if utf8.RuneCountInString(r.Comment) > MaxReviewComment {
		return &ValidationError{Field: "comment", Reason: "must be at most 500 characters"}
	}
	if !r.ItemType.Valid() {
		return &ValidationError{Field: "itemType", Reason: "must be a movie or series"}
	}
	return nil
}

// Validate enforces the playlist invariants.
func (p Playlist) Validate() error {
	if p.ID == "" {
		return &ValidationError{Field: "id", Reason: "must not be empty"}
	}
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return &ValidationError{Field: "name", Reason: "must not be blank"}
	}
	if utf8.RuneCountInString(name) > MaxPlaylistName {
		return &ValidationError{Field: "name", Reason: "must be at most 50 characters"}
	}
	if utf8.RuneCountInString(p.Description) > MaxPlaylistDesc {
		return &ValidationError{Field: "description", Reason: "must be at most 150 characters"}
	}
	if p.Icon != "" && !validIcon(p.Icon) {
		return &ValidationError{Field: "icon", Reason: "must be one of the playlist icons"}
	}
	return nil
}

func validIcon(icon string) bool {
	for _, g := range PlaylistIcons {
		if g == icon {
			return true
		}
	}
	return false
}

// Validate enforces the preferences invariants.
func (p Preferences) Validate() error {
	if strings.TrimSpace(p.UserName) == "" {
		return &ValidationError{Field: "userName", Reason: "must not be blank"}
	}
	if p.MinRating < 0 || p.MinRating > MaxPreferenceRating {
		return &ValidationError{Field: "minRating", Reason: "must be between 0 and 10"}
	}
	for _, g := range p.Genres {
		if !validProfileGenre(g) {
			return &ValidationError{Field: "genres", Reason: "contains an unknown genre"}
		}
	}
	return nil
}

func validProfileGenre(genre string) bool {
	for _, g := range ProfileGenres {
		if g == genre {
			return true
		}
	}
	return false
}
