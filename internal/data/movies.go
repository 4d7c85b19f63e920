package data

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"

	"github.com/leebrouse/favorites/internal/validator"
)

// {
// 	"id": 1,
// 	"title": "Titanic",
// 	"img": "https://m.media-amazon.com/images/M/...jpg",
// 	"is_favorite": true
// }

type Movie struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	Img        string `json:"img"`
	IsFavorite bool   `json:"is_favorite,omitempty"` // absent means not a favorite
}

const (
	titanicPoster  = "https://m.media-amazon.com/images/M/MV5BYzYyN2FiZmUtYWYzMy00MzViLWJkZTMtOGY1ZjgzNWMwN2YxXkEyXkFqcGc@._V1_SX300.jpg"
	notebookPoster = "https://m.media-amazon.com/images/M/MV5BZjE0ZjgzMzYtMTAxYi00NGMzLThmZDktNzFlMzA2MWRmYWQ0XkEyXkFqcGc@._V1_SX300.jpg"
)

// BuiltinMovies returns a fresh copy of the compiled-in seed list.
func BuiltinMovies() []*Movie {
	return []*Movie{
		{ID: 1, Title: "Titanic", Img: titanicPoster, IsFavorite: true},
		{ID: 2, Title: "My Movie", Img: titanicPoster},
		{ID: 3, Title: "My Movie", Img: titanicPoster, IsFavorite: true},
		{ID: 4, Title: "Notebook", Img: notebookPoster},
		{ID: 5, Title: "Notebook", Img: notebookPoster},
		{ID: 6, Title: "Notebook", Img: notebookPoster},
	}
}

func ValidateMovie(v *validator.Validator, movie *Movie) {
	v.Check(movie.ID > 0, "id", "must be greater than zero")
	v.Check(movie.Title != "", "title", "must be provided")
	v.Check(len(movie.Title) <= 500, "title", "must not be more than 500 bytes long")
	v.Check(movie.Img != "", "img", "must be provided")
	v.Check(validImageURL(movie.Img), "img", "must be an absolute http or https URL")
}

// ValidateMovies checks every record and the uniqueness of ids across the list.
// Error keys are prefixed with the record position, e.g. "movies[2].title".
func ValidateMovies(v *validator.Validator, movies []*Movie) {
	seen := make(map[int64]bool, len(movies))

	for i, movie := range movies {
		mv := validator.New()
		ValidateMovie(mv, movie)
		for key, msg := range mv.Errors {
			v.AddError(fmt.Sprintf("movies[%d].%s", i, key), msg)
		}

		if seen[movie.ID] {
			v.AddError(fmt.Sprintf("movies[%d].id", i), "must be unique")
		}
		seen[movie.ID] = true
	}
}

func validImageURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// MovieModel holds the seeded list for the lifetime of the process. It is
// never mutated after construction, so it is safe for concurrent readers.
type MovieModel struct {
	movies []Movie
	byID   map[int64]int
}

func NewMovieModel(movies []*Movie) (*MovieModel, error) {
	v := validator.New()
	if ValidateMovies(v, movies); !v.Valid() {
		return nil, &SeedError{Errors: v.Errors}
	}

	m := &MovieModel{
		movies: make([]Movie, len(movies)),
		byID:   make(map[int64]int, len(movies)),
	}
	for i, movie := range movies {
		m.movies[i] = *movie
		m.byID[movie.ID] = i
	}

	return m, nil
}

// GetAll returns copies of every record in seed order.
func (m *MovieModel) GetAll() []*Movie {
	movies := make([]*Movie, len(m.movies))
	for i := range m.movies {
		movie := m.movies[i]
		movies[i] = &movie
	}
	return movies
}

func (m *MovieModel) Get(id int64) (*Movie, error) {
	if id < 1 {
		return nil, ErrRecordNotFound
	}

	i, ok := m.byID[id]
	if !ok {
		return nil, ErrRecordNotFound
	}

	movie := m.movies[i]
	return &movie, nil
}

func (m *MovieModel) Len() int {
	return len(m.movies)
}

// LoadMovies reads the seed list from the movies table. The service only ever
// reads from the database.
func LoadMovies(ctx context.Context, db *sql.DB) ([]*Movie, error) {
	query := `
		SELECT id, title, img, is_favorite
		FROM movies
		ORDER BY id`

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query movies: %w", err)
	}
	defer rows.Close()

	movies := []*Movie{}

	for rows.Next() {
		var (
			movie    Movie
			favorite sql.NullBool
		)

		err := rows.Scan(&movie.ID, &movie.Title, &movie.Img, &favorite)
		if err != nil {
			return nil, fmt.Errorf("scan movie: %w", err)
		}

		movie.IsFavorite = favorite.Valid && favorite.Bool
		movies = append(movies, &movie)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate movies: %w", err)
	}

	return movies, nil
}
