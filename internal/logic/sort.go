package logic

import (
	"fmt"
	"sort"
	"strings"

	"recipebox/internal/domain"
)

// SortMode represents different sort modes
type SortMode int

const (
	SortByName SortMode = iota
	SortByCategory
	SortByArea
	SortByRating
	SortByFavorites
)

var sortModeNames = []string{"name", "category", "area", "rating", "favorites"}

func (m SortMode) String() string {
	if m < 0 || int(m) >= len(sortModeNames) {
		return "unknown"
	}
	return sortModeNames[m]
}

// Next returns the following mode, wrapping around
func (m SortMode) Next() SortMode {
	return SortMode((int(m) + 1) % len(sortModeNames))
}

// SortModeNames lists the accepted names in display order
func SortModeNames() []string {
	return append([]string(nil), sortModeNames...)
}

// ParseSortMode maps a name to a mode. The empty string means SortByName.
func ParseSortMode(name string) (SortMode, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return SortByName, nil
	}
	for i, n := range sortModeNames {
		if n == name {
			return SortMode(i), nil
		}
	}
	return SortByName, fmt.Errorf("unknown sort mode %q (want one of %s)", name, strings.Join(sortModeNames, ", "))
}

// Annotations carries the user's local data about recipes
type Annotations struct {
	Favorites map[string]bool
	Ratings   map[string]int
}

// IsFavorite reports whether the recipe is starred
func (a Annotations) IsFavorite(id string) bool {
	return a.Favorites[id]
}

// Rating returns the recipe's stars, 0 when unrated
func (a Annotations) Rating(id string) int {
	return a.Ratings[id]
}

// RecipeSorter handles recipe sorting logic
type RecipeSorter struct {
	ann Annotations
}

// NewRecipeSorter creates a new recipe sorter
func NewRecipeSorter(ann Annotations) *RecipeSorter {
	return &RecipeSorter{ann: ann}
}

// SortRecipes sorts recipes in place. Ties always fall back to the name so
// the order is deterministic.
func (s *RecipeSorter) SortRecipes(recipes []domain.Recipe, mode SortMode) {
	byName := func(i, j int) bool {
		return Fold(recipes[i].Name) < Fold(recipes[j].Name)
	}

	switch mode {
	case SortByCategory:
		s.sortByField(recipes, func(r domain.Recipe) string { return r.Category }, byName)
	case SortByArea:
		s.sortByField(recipes, func(r domain.Recipe) string { return r.Area }, byName)
	case SortByRating:
		sort.SliceStable(recipes, func(i, j int) bool {
			ri, rj := s.ann.Rating(recipes[i].ID), s.ann.Rating(recipes[j].ID)
			if ri != rj {
				return ri > rj
			}
			return byName(i, j)
		})
	case SortByFavorites:
		sort.SliceStable(recipes, func(i, j int) bool {
			fi, fj := s.ann.IsFavorite(recipes[i].ID), s.ann.IsFavorite(recipes[j].ID)
			if fi != fj {
				return fi
			}
			return byName(i, j)
		})
	default:
		sort.SliceStable(recipes, byName)
	}
}

// sortByField orders by field, putting recipes with an empty field last
func (s *RecipeSorter) sortByField(recipes []domain.Recipe, field func(domain.Recipe) string, byName func(i, j int) bool) {
	sort.SliceStable(recipes, func(i, j int) bool {
		fi, fj := Fold(field(recipes[i])), Fold(field(recipes[j]))
		if fi != fj {
			if fi == "" || fj == "" {
				return fj == ""
			}
			return fi < fj
		}
		return byName(i, j)
	})
}
