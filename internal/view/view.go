// Package view renders the favorites page: a grid of movie cards, one card
// per record, each showing the title, background image and favorite marker.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/leebrouse/favorites/internal/data"
)

//go:embed templates/*.tmpl.html
var templateFS embed.FS

const DefaultHeading = "My favorites"

// Card holds the display parameters of one movie record.
type Card struct {
	ID            int64
	Title         string
	BackgroundImg string
	IsFavorite    bool
}

func CardFromMovie(m *data.Movie) Card {
	return Card{
		ID:            m.ID,
		Title:         m.Title,
		BackgroundImg: m.Img,
		IsFavorite:    m.IsFavorite,
	}
}

func CardsFromMovies(movies []*data.Movie) []Card {
	cards := make([]Card, len(movies))
	for i, m := range movies {
		cards[i] = CardFromMovie(m)
	}
	return cards
}

type FavoritesPage struct {
	Heading string
	Cards   []Card
}

type Renderer struct {
	tmpl *template.Template
}

func New() (*Renderer, error) {
	tmpl, err := template.New("").ParseFS(templateFS, "templates/*.tmpl.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// RenderFavorites writes the page to w only once it has rendered completely.
func (r *Renderer) RenderFavorites(w io.Writer, page FavoritesPage) error {
	if page.Heading == "" {
		page.Heading = DefaultHeading
	}

	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "favorites", page); err != nil {
		return fmt.Errorf("render favorites: %w", err)
	}

	_, err := buf.WriteTo(w)
	return err
}
