package logic

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"recipebox/internal/domain"
)

// ErrInvalidFilter is wrapped by ParseFilter errors
var ErrInvalidFilter = errors.New("invalid filter")

type predicate func(r domain.Recipe, ann Annotations) bool

// Filter is a parsed filter query. Every term must match.
//
//	category:beef   area:italian   tag:pasta   fav
//	rated:>=4       rated:5        name:*chicken*
//	anything else   substring of name, category, area or tags
type Filter struct {
	query string
	terms []predicate
}

// ParseFilter parses a whitespace separated filter query
func ParseFilter(query string) (*Filter, error) {
	f := &Filter{query: strings.TrimSpace(query)}

	for _, field := range strings.Fields(query) {
		term, err := parseTerm(field)
		if err != nil {
			return nil, err
		}
		f.terms = append(f.terms, term)
	}
	return f, nil
}

// String returns the query the filter was parsed from
func (f *Filter) String() string {
	if f == nil {
		return ""
	}
	return f.query
}

// IsEmpty reports whether the filter matches everything
func (f *Filter) IsEmpty() bool {
	return f == nil || len(f.terms) == 0
}

// Matches checks if a recipe matches every term
func (f *Filter) Matches(r domain.Recipe, ann Annotations) bool {
	if f == nil {
		return true
	}
	for _, term := range f.terms {
		if !term(r, ann) {
			return false
		}
	}
	return true
}

// Apply returns the matching recipes in their original order
func (f *Filter) Apply(recipes []domain.Recipe, ann Annotations) []domain.Recipe {
	if f.IsEmpty() {
		return recipes
	}
	out := make([]domain.Recipe, 0, len(recipes))
	for _, r := range recipes {
		if f.Matches(r, ann) {
			out = append(out, r)
		}
	}
	return out
}

func parseTerm(field string) (predicate, error) {
	key, value, hasKey := strings.Cut(field, ":")
	if !hasKey {
		switch strings.ToLower(field) {
		case "fav", "favs", "favorite", "favorites":
			return func(r domain.Recipe, ann Annotations) bool {
				return ann.IsFavorite(r.ID)
			}, nil
		}
		return matchAny(Fold(field)), nil
	}

	if value == "" {
		return nil, fmt.Errorf("%w: %q has no value", ErrInvalidFilter, field)
	}
	folded := Fold(value)

	switch strings.ToLower(key) {
	case "category", "cat":
		return func(r domain.Recipe, _ Annotations) bool {
			return Fold(r.Category) == folded
		}, nil
	case "area":
		return func(r domain.Recipe, _ Annotations) bool {
			return Fold(r.Area) == folded
		}, nil
	case "tag":
		return func(r domain.Recipe, _ Annotations) bool {
			for _, tag := range r.Tags {
				if Fold(tag) == folded {
					return true
				}
			}
			return false
		}, nil
	case "name":
		if !doublestar.ValidatePattern(folded) {
			return nil, fmt.Errorf("%w: bad name pattern %q", ErrInvalidFilter, value)
		}
		return func(r domain.Recipe, _ Annotations) bool {
			ok, _ := doublestar.Match(folded, Fold(r.Name))
			return ok
		}, nil
	case "rated":
		return parseRated(value)
	default:
		// Unknown keys such as "12:30" are plain text
		return matchAny(Fold(field)), nil
	}
}

func parseRated(value string) (predicate, error) {
	cmp := "="
	for _, op := range []string{">=", "<=", ">", "<", "="} {
		if strings.HasPrefix(value, op) {
			cmp = op
			value = strings.TrimPrefix(value, op)
			break
		}
	}

	stars, err := strconv.Atoi(value)
	if err != nil || stars < 0 || stars > domain.MaxRating {
		return nil, fmt.Errorf("%w: rating must be 0-%d, got %q", ErrInvalidFilter, domain.MaxRating, value)
	}

	return func(r domain.Recipe, ann Annotations) bool {
		got := ann.Rating(r.ID)
		switch cmp {
		case ">=":
			return got >= stars
		case "<=":
			return got <= stars
		case ">":
			return got > stars
		case "<":
			return got < stars
		default:
			return got == stars
		}
	}, nil
}

func matchAny(needle string) predicate {
	return func(r domain.Recipe, _ Annotations) bool {
		if strings.Contains(Fold(r.Name), needle) ||
			strings.Contains(Fold(r.Category), needle) ||
			strings.Contains(Fold(r.Area), needle) {
			return true
		}
		for _, tag := range r.Tags {
			if strings.Contains(Fold(tag), needle) {
				return true
			}
		}
		return false
	}
}
