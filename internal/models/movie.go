package models

import (
	"fmt"
	"strings"

	"github.com/desertthunder/watchlist/internal/shared"
)

const (
	MaxTitleLength = 60
	MaxYearLength  = 4
)

var _ Model = (*Movie)(nil)

// Movie is a single watchlist entry.
type Movie struct {
	timestamps
	id    int64
	title string
	year  string
}

// NewMovie creates a Movie with surrounding whitespace trimmed from title and year.
func NewMovie(title, year string) *Movie {
	return &Movie{
		timestamps: newTimestamps(),
		title:      strings.TrimSpace(title),
		year:       strings.TrimSpace(year),
	}
}

func (m *Movie) ID() int64         { return m.id }
func (m *Movie) Title() string     { return m.title }
func (m *Movie) Year() string      { return m.year }
func (m *Movie) SetID(id int64)    { m.id = id }
func (m *Movie) SetTitle(t string) { m.title = strings.TrimSpace(t) }
func (m *Movie) SetYear(y string)  { m.year = strings.TrimSpace(y) }

// Validate requires a title of 1..60 characters and a year of 1..4 characters.
func (m *Movie) Validate() error {
	return ValidateMovieInput(m.title, m.year)
}

// ValidateMovieInput checks raw form values against the movie length limits.
func ValidateMovieInput(title, year string) error {
	switch n := shared.CharCount(title); {
	case n == 0:
		return fmt.Errorf("%w: title is required", shared.ErrInvalidInput)
	case n > MaxTitleLength:
		return fmt.Errorf("%w: title must be at most %d characters", shared.ErrInvalidInput, MaxTitleLength)
	}

	switch n := shared.CharCount(year); {
	case n == 0:
		return fmt.Errorf("%w: year is required", shared.ErrInvalidInput)
	case n > MaxYearLength:
		return fmt.Errorf("%w: year must be at most %d characters", shared.ErrInvalidInput, MaxYearLength)
	}
	return nil
}
