package metadata

// TMDB wire types. Only the fields the mapper reads are declared.

type movieResult struct {
	ID           int     `json:"id"`
	Title        string  `json:"title"`
	Name         string  `json:"name"` // multi-search movies sometimes carry name only
	GenreIDs     []int   `json:"genre_ids"`
	Genres       []genre `json:"genres"` // detail responses expand genres
	Overview     string  `json:"overview"`
	VoteAverage  float64 `json:"vote_average"`
	PosterPath   string  `json:"poster_path"`
	BackdropPath string  `json:"backdrop_path"`
	ReleaseDate  string  `json:"release_date"`
	Runtime      int     `json:"runtime"`
}

type tvResult struct {
	ID               int     `json:"id"`
	Name             string  `json:"name"`
	OriginalName     string  `json:"original_name"`
	GenreIDs         []int   `json:"genre_ids"`
	Genres           []genre `json:"genres"`
	Overview         string  `json:"overview"`
	VoteAverage      float64 `json:"vote_average"`
	PosterPath       string  `json:"poster_path"`
	BackdropPath     string  `json:"backdrop_path"`
	FirstAirDate     string  `json:"first_air_date"`
	NumberOfSeasons  int     `json:"number_of_seasons"`
	NumberOfEpisodes int     `json:"number_of_episodes"`
}

type genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type moviePage struct {
	Page    int           `json:"page"`
	Results []movieResult `json:"results"`
}

type tvPage struct {
	Page    int        `json:"page"`
	Results []tvResult `json:"results"`
}

type multiResult struct {
	MediaType string `json:"media_type"`

	// Superset of movie and tv fields; split by MediaType in the mapper.
	ID           int     `json:"id"`
	Title        string  `json:"title"`
	Name         string  `json:"name"`
	OriginalName string  `json:"original_name"`
	GenreIDs     []int   `json:"genre_ids"`
	Overview     string  `json:"overview"`
	VoteAverage  float64 `json:"vote_average"`
	PosterPath   string  `json:"poster_path"`
	BackdropPath string  `json:"backdrop_path"`
	ReleaseDate  string  `json:"release_date"`
	FirstAirDate string  `json:"first_air_date"`
}

type multiPage struct {
	Page    int           `json:"page"`
	Results []multiResult `json:"results"`
}
