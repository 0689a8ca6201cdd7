//go:build e2e && unix

package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
)

// fakeMeal is the subset of a TheMealDB meal the fixtures fill in
type fakeMeal struct {
	ID           string
	Name         string
	Category     string
	Area         string
	Instructions string
	Ingredients  [][2]string // name, measure
}

func (m fakeMeal) wire() map[string]any {
	out := map[string]any{
		"idMeal":          m.ID,
		"strMeal":         m.Name,
		"strCategory":     m.Category,
		"strArea":         m.Area,
		"strInstructions": m.Instructions,
		"strTags":         nil,
	}
	for i, ing := range m.Ingredients {
		out["strIngredient"+strconv.Itoa(i+1)] = ing[0]
		out["strMeasure"+strconv.Itoa(i+1)] = ing[1]
	}
	return out
}

var defaultMeals = []fakeMeal{
	{ID: "52768", Name: "Apple Frangipan Tart", Category: "Dessert", Area: "British",
		Instructions: "Preheat the oven to 200C.\nBake for 20-25 minutes.",
		Ingredients:  [][2]string{{"Digestive Biscuits", "175g"}, {"Butter", "75g"}, {"Bramley Apples", "200g"}}},
	{ID: "52893", Name: "Apple & Blackberry Crumble", Category: "Dessert", Area: "British",
		Instructions: "Heat oven to 190C.\nScatter the crumble over the fruit.",
		Ingredients:  [][2]string{{"Plain Flour", "120g"}, {"Blackberries", "300g"}}},
	{ID: "52795", Name: "Chicken Handi", Category: "Chicken", Area: "Indian",
		Instructions: "Take a large pot or wok.",
		Ingredients:  [][2]string{{"Chicken", "1.2 kg"}, {"Onion", "5 thinly sliced"}}},
	{ID: "52813", Name: "Kentucky Fried Chicken", Category: "Chicken", Area: "American",
		Instructions: "Preheat fryer to 350F.",
		Ingredients:  [][2]string{{"Chicken", "1 whole"}, {"Flour", "2 cups"}}},
	{ID: "52874", Name: "Beef and Mustard Pie", Category: "Beef", Area: "British",
		Instructions: "Preheat the oven to 150C.",
		Ingredients:  [][2]string{{"Beef", "1kg"}, {"Mustard", "2 tbs"}}},
}

// fakeAPI serves the TheMealDB endpoints the app calls
type fakeAPI struct {
	server *httptest.Server

	mu       sync.Mutex
	meals    []fakeMeal
	searches []string
	failing  bool
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()
	api := &fakeAPI{meals: defaultMeals}
	mux := http.NewServeMux()
	mux.HandleFunc("/search.php", api.search)
	mux.HandleFunc("/lookup.php", api.lookup)
	mux.HandleFunc("/categories.php", api.categories)
	mux.HandleFunc("/filter.php", api.filter)
	mux.HandleFunc("/random.php", api.random)
	api.server = httptest.NewServer(mux)
	return api
}

// URL is the API base URL, with the trailing slash the client resolves against
func (a *fakeAPI) URL() string {
	return a.server.URL + "/"
}

func (a *fakeAPI) Close() {
	a.server.Close()
}

// Searches returns every query the app sent
func (a *fakeAPI) Searches() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.searches...)
}

// SetFailing makes search requests fail with 503
func (a *fakeAPI) SetFailing(failing bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.failing = failing
}

func (a *fakeAPI) search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("s")

	a.mu.Lock()
	a.searches = append(a.searches, q)
	failing := a.failing
	var found []map[string]any
	for _, m := range a.meals {
		if strings.Contains(strings.ToLower(m.Name), strings.ToLower(q)) {
			found = append(found, m.wire())
		}
	}
	a.mu.Unlock()

	if failing {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
		return
	}
	writeMeals(w, found)
}

func (a *fakeAPI) lookup(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("i")

	a.mu.Lock()
	var found []map[string]any
	for _, m := range a.meals {
		if m.ID == id {
			found = append(found, m.wire())
		}
	}
	a.mu.Unlock()

	writeMeals(w, found)
}

// categories lists each category of the fixture meals once, in first-seen order
func (a *fakeAPI) categories(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	seen := make(map[string]bool)
	var out []map[string]any
	for _, m := range a.meals {
		if seen[m.Category] {
			continue
		}
		seen[m.Category] = true
		out = append(out, map[string]any{
			"idCategory":             strconv.Itoa(len(out) + 1),
			"strCategory":            m.Category,
			"strCategoryThumb":       "",
			"strCategoryDescription": m.Category + " recipes",
		})
	}
	a.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"categories": out})
}

// filter answers filter.php?c= with the short form the real API uses
func (a *fakeAPI) filter(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("c")

	a.mu.Lock()
	var found []map[string]any
	for _, m := range a.meals {
		if strings.EqualFold(m.Category, category) {
			found = append(found, map[string]any{"idMeal": m.ID, "strMeal": m.Name, "strMealThumb": ""})
		}
	}
	a.mu.Unlock()

	writeMeals(w, found)
}

// random always picks the last fixture meal so tests can expect it
func (a *fakeAPI) random(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	meal := a.meals[len(a.meals)-1].wire()
	a.mu.Unlock()

	writeMeals(w, []map[string]any{meal})
}

// writeMeals encodes no match as "meals": null, like the real API
func writeMeals(w http.ResponseWriter, meals []map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	body := map[string]any{"meals": nil}
	if len(meals) > 0 {
		body["meals"] = meals
	}
	_ = json.NewEncoder(w).Encode(body)
}
