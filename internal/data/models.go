package data

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrInvalidSeed    = errors.New("invalid seed data")
)

// SeedError carries the validator's field errors for a rejected seed list.
// errors.Is(err, ErrInvalidSeed) reports true for it.
type SeedError struct {
	Errors map[string]string
}

func (e *SeedError) Error() string {
	keys := make([]string, 0, len(e.Errors))
	for k := range e.Errors {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s %s", k, e.Errors[k]))
	}

	return fmt.Sprintf("%s: %s", ErrInvalidSeed, strings.Join(parts, "; "))
}

func (e *SeedError) Is(target error) bool {
	return target == ErrInvalidSeed
}

// Models wraps all individual models.
type Models struct {
	Movies *MovieModel
}

func NewModels(movies []*Movie) (Models, error) {
	mm, err := NewMovieModel(movies)
	if err != nil {
		return Models{}, err
	}

	return Models{Movies: mm}, nil
}
