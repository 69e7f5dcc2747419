package domain

import (
	"fmt"
	"time"
)

// MediaType distinguishes movies from series. The stored values are the
// pt-BR labels the app has always written, so existing blobs round-trip.
type MediaType string

const (
	MediaTypeMovie  MediaType = "Filme"
	MediaTypeSeries MediaType = "Série"
)

// Valid reports whether the type is one of the two known kinds.
func (t MediaType) Valid() bool {
	return t == MediaTypeMovie || t == MediaTypeSeries
}

// Item is a movie or series descriptor. Items are produced by the metadata
// source (or the bundled mock catalog) and embedded by value into favorites,
// reviews and playlists; they are never updated in place.
type Item struct {
	ID          string    `json:"id"` // "movie-603", "tv-66732", mock "m1".."m10"
	Title       string    `json:"title"`
	Type        MediaType `json:"type"`
	Genre       string    `json:"genre"` // first matched genre, "Geral" when unknown
	Description string    `json:"description"`
	Rating      float64   `json:"rating,omitempty"`      // 0-10 community rating
	Poster      string    `json:"poster,omitempty"`      // poster image URL
	Image       string    `json:"image,omitempty"`       // backdrop image URL
	ReleaseDate string    `json:"releaseDate,omitempty"` // "2006-01-02"

	// Movie-specific
	Runtime int `json:"runtime,omitempty"` // minutes

	// Series-specific
	Seasons  int `json:"seasons,omitempty"`
	Episodes int `json:"episodes,omitempty"`
}

// Meta returns the "genre • type" line shown under titles.
func (i Item) Meta() string {
	return fmt.Sprintf("%s • %s", i.Genre, i.Type)
}

// FormattedRating returns the community rating as "★ 8.4", or "" when unrated.
func (i Item) FormattedRating() string {
	if i.Rating <= 0 {
		return ""
	}
	return fmt.Sprintf("★ %.1f", i.Rating)
}

// Year returns the release year, or 0 when the release date is absent.
func (i Item) Year() int {
	if len(i.ReleaseDate) < 4 {
		return 0
	}
	t, err := time.Parse("2006-01-02", i.ReleaseDate)
	if err != nil {
		return 0
	}
	return t.Year()
}

// Review is a user's star review of an item. At most one review exists per
// item; the review id equals the reviewed item's id. The item fields are a
// denormalized snapshot taken at review time and do not track later updates
// to the canonical item.
type Review struct {
	ID         string    `json:"id"`
	ItemTitle  string    `json:"itemTitle"`
	ItemType   MediaType `json:"itemType"`
	ItemPoster string    `json:"itemPoster,omitempty"`
	ItemGenre  string    `json:"itemGenre"`
	Rating     int       `json:"rating"` // 1-5 stars; 0 means "not reviewed" and is rejected
	Comment    string    `json:"comment"`
	Date       time.Time `json:"date"` // restamped on every save, edits included
}

// NewReview snapshots an item into a review. Date is left zero; the store
// stamps it on save.
func NewReview(item Item, rating int, comment string) Review {
	return Review{
		ID:         item.ID,
		ItemTitle:  item.Title,
		ItemType:   item.Type,
		ItemPoster: item.Poster,
		ItemGenre:  item.Genre,
		Rating:     rating,
		Comment:    comment,
	}
}

// Stars returns the rating rendered as "★★★☆☆".
func (r Review) Stars() string {
	s := ""
	for i := 1; i <= 5; i++ {
		if i <= r.Rating {
			s += "★"
		} else {
			s += "☆"
		}
	}
	return s
}

// Playlist groups items under a named, icon-tagged list. Default playlists
// are seeded by the store; their name/description/icon cannot be changed and
// they cannot be deleted, only their items change.
type Playlist struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`                  // 1-50 chars
	Description string    `json:"description,omitempty"` // 0-150 chars
	Icon        string    `json:"icon"`                  // one glyph from PlaylistIcons
	Items       []Item    `json:"items"`                 // ordered, unique by item id
	IsDefault   bool      `json:"isDefault,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt,omitempty"`
}

// Contains reports whether the playlist already holds an item with the id.
func (p Playlist) Contains(itemID string) bool {
	for _, it := range p.Items {
		if it.ID == itemID {
			return true
		}
	}
	return false
}

// PlaylistIcons is the fixed glyph palette for playlist icons.
var PlaylistIcons = []string{
	"🎬", "🍿", "🎥", "📺", "🎭", "🎪",
	"🔥", "❤️", "⭐", "🌟", "💫", "✨",
	"😂", "😱", "🚀", "👻", "🦸", "🧙",
}

// Preferences is the singleton profile record. Saving replaces it wholesale.
type Preferences struct {
	UserName  string   `json:"userName"`
	Genres    []string `json:"genres"`
	MinRating float64  `json:"minRating"` // legacy 0-10 threshold
}

// ProfileGenres is the fixed set of genres selectable in preferences.
var ProfileGenres = []string{
	"Ação", "Comédia", "Drama", "Sci-Fi", "Romance",
	"Crime", "Thriller", "Terror", "Animação",
}
