package ui

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"recipebox/internal/config"
	"recipebox/internal/domain"
	"recipebox/internal/eventbus"
	"recipebox/internal/logic"
	"recipebox/internal/recipes"
	"recipebox/internal/search"
	"recipebox/internal/ui/input"
	inputtypes "recipebox/internal/ui/input/types"
	"recipebox/internal/ui/views"
)

// statusTimeout is how long transient status messages stay on screen
const statusTimeout = 3 * time.Second

// chromeLines is the number of screen rows not available to the recipe list
const chromeLines = 7

// preloadCategories is how many categories are fetched ahead at startup
const preloadCategories = 4

// SearchController is the part of the search controller the UI drives
type SearchController interface {
	SetQuery(query string)
	Refetch()
	ClearCache()
	SetDelay(d time.Duration)
	State() search.State[[]domain.Recipe]
}

// RecipeSource fetches recipe details and category listings
type RecipeSource interface {
	Lookup(ctx context.Context, id string) (*domain.Recipe, error)
	Random(ctx context.Context) (*domain.Recipe, error)
	Categories(ctx context.Context) ([]domain.Category, error)
	ByCategory(ctx context.Context, category string) ([]domain.Recipe, error)
	Preload(ctx context.Context, categories []string) (map[string][]domain.Recipe, error)
}

// Annotator persists favorites and ratings
type Annotator interface {
	ToggleFavorite(ctx context.Context, r domain.Recipe) (bool, error)
	SetRating(ctx context.Context, id string, stars int) error
	ClearRating(ctx context.Context, id string) error
	FavoriteIDs(ctx context.Context) (map[string]bool, error)
	Ratings(ctx context.Context) (map[string]int, error)
	Favorites(ctx context.Context) ([]domain.Favorite, error)
}

// Services groups the collaborators the model talks to
type Services struct {
	Bus     eventbus.EventBus // optional
	Search  SearchController
	Recipes RecipeSource
	Store   Annotator
}

// Model represents the UI state
type Model struct {
	ctx    context.Context
	bus    eventbus.EventBus
	config *config.Config

	search  SearchController
	recipes RecipeSource
	store   Annotator

	width  int
	height int

	searchState   search.State[[]domain.Recipe]
	favorites     map[string]bool
	ratings       map[string]int
	favoriteList  []domain.Favorite
	favoritesView bool

	categories      []domain.Category
	categoryIndex   int
	category        string // browsed instead of search results when set
	categoryLoading bool
	categoryRows    map[string][]domain.Recipe

	filter       *logic.Filter
	filterText   string
	filterBefore string // restored when filter editing is cancelled
	filterErr    error
	currentSort  logic.SortMode
	sortIndex    int
	pageSize     int

	debouncePinned bool

	rows []domain.Recipe // filtered and sorted, across all pages

	statusMessage string
	statusID      int
	popup         string

	inPagerMode   bool
	tickSuspended bool
	e2e           bool

	spinner      spinner.Model
	navigator    *logic.Navigator
	renderer     *views.Renderer
	helpRenderer *HelpRenderer
	inputHandler *input.Handler
	pager        *Pager

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model
func NewModel(ctx context.Context, cfg *config.Config, svc Services) *Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	sortMode, err := logic.ParseSortMode(cfg.UI.DefaultSort)
	if err != nil {
		log.Printf("ui: %v, falling back to name", err)
		sortMode = logic.SortByName
	}

	pageSize := cfg.UI.PageSize
	if pageSize <= 0 {
		pageSize = config.DefaultPageSize
	}

	m := &Model{
		ctx:          ctx,
		bus:          svc.Bus,
		config:       cfg,
		search:       svc.Search,
		recipes:      svc.Recipes,
		store:        svc.Store,
		favorites:    make(map[string]bool),
		ratings:      make(map[string]int),
		categoryRows: make(map[string][]domain.Recipe),
		currentSort:  sortMode,
		pageSize:     pageSize,
		spinner:      spinner.New(spinner.WithSpinner(spinner.Dot)),
		navigator:    logic.NewNavigator(pageSize),
		renderer:     views.NewRenderer(),
		helpRenderer: NewHelpRenderer(),
		inputHandler: input.New(),
		pager:        NewPager(),
		e2e:          os.Getenv("RECIPEBOX_E2E_TEST") == "1",
	}

	if m.search != nil {
		m.searchState = m.search.State()
	}
	m.rebuild(true)
	return m
}

// PinDebounce keeps the current debounce delay across config reloads, for a
// delay given on the command line.
func (m *Model) PinDebounce() {
	m.debouncePinned = true
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.pager.SetProgram(p)
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadAnnotations(), m.loadCategories())
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.rebuild(false)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	default:
		return m.handleNonKeyboardMsg(msg)
	}
}

// handleKey routes a key press through the input handler
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.popup != "" {
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc", "q", "enter":
			m.popup = ""
		}
		return m, nil
	}

	before := m.inputHandler.CurrentMode()
	actions, cmd := m.inputHandler.HandleKey(msg, m.inputContext())
	if after := m.inputHandler.CurrentMode(); after != before && after == inputtypes.ModeFilter {
		m.filterBefore = m.filterText
	}

	cmds := []tea.Cmd{cmd}
	for _, action := range actions {
		cmds = append(cmds, m.processAction(action))
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) inputContext() *input.ModelContext {
	return &input.ModelContext{
		Rows:          m.rows,
		Index:         m.navigator.Selected(),
		Query:         m.searchState.Query,
		Filter:        m.filterText,
		CurrentSort:   m.currentSort,
		FavoritesView: m.favoritesView,
		Category:      m.category,
		CategoryNames: m.categoryNames(),
	}
}

func (m *Model) categoryNames() []string {
	names := make([]string, 0, len(m.categories))
	for _, c := range m.categories {
		names = append(names, c.Name)
	}
	return names
}

// processAction processes an action from the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	switch a := action.(type) {
	case inputtypes.NavigateAction:
		m.navigate(a.Direction)

	case inputtypes.UpdateTextAction:
		switch a.Mode {
		case inputtypes.ModeSearch:
			m.setQuery(a.Text)
		case inputtypes.ModeFilter:
			m.setFilter(a.Text)
		}

	case inputtypes.SubmitTextAction:
		if a.Mode == inputtypes.ModeFilter {
			m.setFilter(a.Text)
		}

	case inputtypes.CancelTextAction:
		// The search query is live; only the filter reverts
		if a.Mode == inputtypes.ModeFilter {
			m.setFilter(m.filterBefore)
		}

	case inputtypes.ClearFilterAction:
		m.setFilter("")

	case inputtypes.OpenRecipeAction:
		if r, ok := m.selectedRecipe(); ok {
			return m.fetchDetail(r)
		}

	case inputtypes.ToggleFavoriteAction:
		if r, ok := m.selectedRecipe(); ok {
			return m.toggleFavorite(r)
		}

	case inputtypes.RateAction:
		if r, ok := m.selectedRecipe(); ok {
			return m.rate(r, a.Stars)
		}

	case inputtypes.ToggleFavoritesViewAction:
		m.favoritesView = !m.favoritesView
		m.leaveCategory()
		m.rebuild(true)
		if m.favoritesView {
			return m.loadFavorites()
		}

	case inputtypes.BrowseCategoryAction:
		return m.browseCategory(a.Name)

	case inputtypes.BackToResultsAction:
		m.favoritesView = false
		m.leaveCategory()
		m.rebuild(true)

	case inputtypes.UpdateCategoryIndexAction:
		m.categoryIndex = a.Index

	case inputtypes.RandomRecipeAction:
		return m.fetchRandom()

	case inputtypes.RefetchAction:
		if m.favoritesView {
			return m.loadFavorites()
		}
		if m.category != "" {
			delete(m.categoryRows, m.category)
			return m.browseCategory(m.category)
		}
		if m.search != nil {
			m.search.Refetch()
			m.applySearchState(m.search.State())
		}

	case inputtypes.ClearCacheAction:
		if m.search != nil {
			m.search.ClearCache()
			m.applySearchState(m.search.State())
		}
		return m.setStatus("Search cache cleared")

	case inputtypes.SortByAction:
		mode, err := logic.ParseSortMode(a.Criteria)
		if err != nil {
			log.Printf("ui: %v", err)
			return nil
		}
		m.currentSort = mode
		m.rebuild(false)

	case inputtypes.UpdateSortIndexAction:
		m.sortIndex = a.Index

	case inputtypes.ToggleHelpAction:
		return m.fetchHelpPager(m.helpRenderer.RenderHelpContent())

	case inputtypes.QuitAction:
		return tea.Quit
	}

	return nil
}

// handleNonKeyboardMsg handles non-keyboard messages
func (m *Model) handleNonKeyboardMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case EventMsg:
		return m, m.handleEvent(msg.Event)

	case spinner.TickMsg:
		// Don't continue tick loop if we're in pager mode
		if m.inPagerMode {
			m.tickSuspended = true
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case annotationsMsg:
		if msg.err != nil {
			log.Printf("ui: loading favorites and ratings: %v", msg.err)
			return m, m.setStatus("Could not load favorites")
		}
		m.favorites = msg.favorites
		m.ratings = msg.ratings
		m.rebuild(false)
		return m, nil

	case categoriesMsg:
		if msg.err != nil {
			log.Printf("ui: loading categories: %v", msg.err)
			if m.inputHandler.CurrentMode() == inputtypes.ModeCategory {
				return m, m.setStatus("Could not load categories")
			}
			return m, nil
		}
		m.categories = msg.categories
		return m, m.preload()

	case categoryMsg:
		if msg.err != nil {
			log.Printf("ui: loading category %s: %v", msg.name, msg.err)
			if msg.name == "" || msg.name != m.category {
				return m, nil
			}
			m.categoryLoading = false
			return m, m.setStatus(fmt.Sprintf("Could not load %s: %v", logic.Title(msg.name), msg.err))
		}
		for name, rows := range msg.recipes {
			if _, ok := m.categoryRows[name]; !ok || msg.name != "" {
				m.categoryRows[name] = rows
			}
		}
		if _, ok := msg.recipes[m.category]; ok && m.category != "" {
			m.categoryLoading = false
			m.rebuild(msg.name == m.category)
		}
		return m, nil

	case favoritesMsg:
		if msg.err != nil {
			log.Printf("ui: loading favorites: %v", msg.err)
			return m, m.setStatus("Could not load favorites")
		}
		m.favoriteList = msg.favorites
		if m.favoritesView {
			m.rebuild(false)
		}
		return m, nil

	case detailMsg:
		if msg.err != nil {
			log.Printf("ui: loading recipe details: %v", msg.err)
			return m, m.setStatus(fmt.Sprintf("Could not load recipe: %v", msg.err))
		}
		if m.bus != nil {
			m.bus.Publish(eventbus.RecipeOpenedEvent{RecipeID: msg.recipe.ID, Name: msg.recipe.Name})
		}
		content := views.RenderDetail(*msg.recipe, m.rowState(msg.recipe.ID), m.config.UI.ShowThumbnailURLs)
		if m.program == nil {
			m.popup = content
			return m, nil
		}
		return m, m.fetchRecipePager(*msg.recipe, content)

	case recipePagerMsg:
		if msg.err != nil {
			// Pager failed, log and fall back to popup silently
			log.Printf("Recipe pager failed for %s: %v, falling back to popup", msg.recipe.Name, msg.err)
			m.popup = views.RenderDetail(msg.recipe, m.rowState(msg.recipe.ID), m.config.UI.ShowThumbnailURLs)
		}
		return m, nil

	case helpPagerMsg:
		if msg.err != nil {
			log.Printf("Help pager failed: %v", msg.err)
			m.popup = msg.content
		}
		return m, nil

	case storeResultMsg:
		if msg.err != nil {
			log.Printf("ui: %s: %v", msg.status, msg.err)
			// Undo the optimistic update
			return m, tea.Batch(m.setStatus(fmt.Sprintf("Failed: %v", msg.err)), m.loadAnnotations())
		}
		return m, m.setStatus(msg.status)

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		if m.tickSuspended {
			m.tickSuspended = false
			return m, m.spinner.Tick
		}
		return m, nil

	case clearStatusMsg:
		if msg.id == m.statusID {
			m.statusMessage = ""
		}
		return m, nil

	default:
		// Cursor blink and other text input housekeeping
		return m, m.inputHandler.Update(msg)
	}
}

// handleEvent applies a domain event forwarded from the bus
func (m *Model) handleEvent(event eventbus.DomainEvent) tea.Cmd {
	switch e := event.(type) {
	case eventbus.SearchStateChangedEvent:
		if m.search != nil && e.Version > m.searchState.Version {
			m.applySearchState(m.search.State())
		}

	case eventbus.FavoriteToggledEvent:
		m.setFavorite(e.RecipeID, e.Favorite)
		if m.favoritesView {
			return m.loadFavorites()
		}

	case eventbus.RatingChangedEvent:
		m.setRating(e.RecipeID, e.Stars)

	case eventbus.ConfigChangedEvent:
		m.applyConfig(e)
		return m.setStatus("Configuration reloaded")

	case eventbus.ErrorEvent:
		return m.setStatus(e.Message)
	}
	return nil
}

// applySearchState adopts a controller snapshot unless a newer one was already seen
func (m *Model) applySearchState(st search.State[[]domain.Recipe]) {
	if st.Version < m.searchState.Version {
		return
	}
	queryChanged := st.DebouncedQuery != m.searchState.DebouncedQuery
	m.searchState = st
	if !m.favoritesView && m.category == "" {
		m.rebuild(queryChanged)
	}
}

func (m *Model) applyConfig(e eventbus.ConfigChangedEvent) {
	if e.PageSize > 0 {
		m.pageSize = e.PageSize
	}
	if mode, err := logic.ParseSortMode(e.DefaultSort); err == nil {
		m.currentSort = mode
	}
	if m.search != nil && !m.debouncePinned {
		m.search.SetDelay(e.Debounce)
	}
	if e.CacheCapacity != m.config.Search.CacheCapacity {
		log.Printf("ui: cache capacity change to %d applies after restart", e.CacheCapacity)
	}
	m.rebuild(false)
}

func (m *Model) setQuery(query string) {
	if m.search == nil {
		return
	}
	m.favoritesView = false
	if m.category != "" {
		m.leaveCategory()
		m.rebuild(true)
	}
	m.search.SetQuery(query)
	m.applySearchState(m.search.State())
}

// setFilter parses and applies a filter; an invalid filter keeps the previous one
func (m *Model) setFilter(text string) {
	f, err := logic.ParseFilter(text)
	if err != nil {
		m.filterErr = err
		return
	}
	m.filter = f
	m.filterText = f.String()
	m.filterErr = nil
	m.rebuild(true)
}

func (m *Model) setFavorite(id string, fav bool) {
	if fav {
		m.favorites[id] = true
	} else {
		delete(m.favorites, id)
	}
	m.rebuild(false)
}

func (m *Model) setRating(id string, stars int) {
	if stars <= 0 {
		delete(m.ratings, id)
	} else {
		m.ratings[id] = stars
	}
	m.rebuild(false)
}

// rebuild recomputes the listed rows from the current source, filter and sort
func (m *Model) rebuild(resetSelection bool) {
	var source []domain.Recipe
	if m.favoritesView {
		source = make([]domain.Recipe, 0, len(m.favoriteList))
		for _, f := range m.favoriteList {
			source = append(source, f.Recipe())
		}
	} else if m.category != "" {
		source = append([]domain.Recipe(nil), m.categoryRows[m.category]...)
	} else if m.searchState.HasResult {
		// The result slice is shared with the search cache; never sort it in place
		source = append([]domain.Recipe(nil), m.searchState.Result...)
	}

	ann := m.annotations()
	rows := m.filter.Apply(source, ann)
	logic.NewRecipeSorter(ann).SortRecipes(rows, m.currentSort)

	selectedID := ""
	if r, ok := m.selectedRecipe(); ok && !resetSelection {
		selectedID = r.ID
	}

	m.rows = rows
	m.navigator.SetPageSize(m.visibleRows())
	m.navigator.SetTotal(len(rows))

	if selectedID == "" {
		m.navigator.Top()
		return
	}
	for i, r := range rows {
		if r.ID == selectedID {
			m.navigator.Select(i)
			return
		}
	}
}

func (m *Model) annotations() logic.Annotations {
	return logic.Annotations{Favorites: m.favorites, Ratings: m.ratings}
}

// visibleRows is the page size, shrunk to what fits on screen
func (m *Model) visibleRows() int {
	n := m.pageSize
	if m.height > 0 && m.height-chromeLines < n {
		n = m.height - chromeLines
	}
	if n < 1 {
		n = 1
	}
	return n
}

func (m *Model) navigate(direction string) {
	page := m.visibleRows()
	switch direction {
	case "up":
		m.navigator.Move(-1)
	case "down":
		m.navigator.Move(1)
	case "pageup":
		m.navigator.Move(-page)
	case "pagedown":
		m.navigator.Move(page)
	case "home":
		m.navigator.Top()
	case "end":
		m.navigator.Bottom()
	}
}

func (m *Model) selectedRecipe() (domain.Recipe, bool) {
	i := m.navigator.Selected()
	if i < 0 || i >= len(m.rows) {
		return domain.Recipe{}, false
	}
	return m.rows[i], true
}

func (m *Model) rowState(id string) views.RowState {
	return views.RowState{Favorite: m.favorites[id], Stars: m.ratings[id]}
}

// setStatus shows a transient status message
func (m *Model) setStatus(text string) tea.Cmd {
	m.statusID++
	m.statusMessage = text
	id := m.statusID
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg { return clearStatusMsg{id: id} })
}

func (m *Model) loadAnnotations() tea.Cmd {
	if m.store == nil {
		return nil
	}
	return func() tea.Msg {
		favs, err := m.store.FavoriteIDs(m.ctx)
		if err != nil {
			return annotationsMsg{err: err}
		}
		ratings, err := m.store.Ratings(m.ctx)
		return annotationsMsg{favorites: favs, ratings: ratings, err: err}
	}
}

func (m *Model) loadFavorites() tea.Cmd {
	if m.store == nil {
		return nil
	}
	return func() tea.Msg {
		favs, err := m.store.Favorites(m.ctx)
		return favoritesMsg{favorites: favs, err: err}
	}
}

func (m *Model) toggleFavorite(r domain.Recipe) tea.Cmd {
	if m.store == nil {
		return nil
	}
	// Optimistic; the store's event confirms it
	m.setFavorite(r.ID, !m.favorites[r.ID])
	return func() tea.Msg {
		fav, err := m.store.ToggleFavorite(m.ctx, r)
		if err != nil {
			return storeResultMsg{status: "toggle favorite", err: err}
		}
		if fav {
			return storeResultMsg{status: fmt.Sprintf("Added %s to favorites", r.Name)}
		}
		return storeResultMsg{status: fmt.Sprintf("Removed %s from favorites", r.Name)}
	}
}

func (m *Model) rate(r domain.Recipe, stars int) tea.Cmd {
	if m.store == nil {
		return nil
	}
	m.setRating(r.ID, stars)
	return func() tea.Msg {
		if stars == 0 {
			if err := m.store.ClearRating(m.ctx, r.ID); err != nil {
				return storeResultMsg{status: "clear rating", err: err}
			}
			return storeResultMsg{status: fmt.Sprintf("Cleared rating for %s", r.Name)}
		}
		if err := m.store.SetRating(m.ctx, r.ID, stars); err != nil {
			return storeResultMsg{status: "set rating", err: err}
		}
		return storeResultMsg{status: fmt.Sprintf("Rated %s %s", r.Name, views.Stars(stars))}
	}
}

func (m *Model) leaveCategory() {
	m.category = ""
	m.categoryLoading = false
}

// browseCategory lists a category in place of the search results, fetching
// it unless it was loaded before
func (m *Model) browseCategory(name string) tea.Cmd {
	m.favoritesView = false
	m.category = name
	_, cached := m.categoryRows[name]
	m.categoryLoading = !cached
	m.rebuild(true)
	if cached || m.recipes == nil {
		m.categoryLoading = false
		return nil
	}
	return func() tea.Msg {
		rows, err := m.recipes.ByCategory(m.ctx, name)
		return categoryMsg{name: name, recipes: map[string][]domain.Recipe{name: rows}, err: err}
	}
}

func (m *Model) loadCategories() tea.Cmd {
	if m.recipes == nil {
		return nil
	}
	return func() tea.Msg {
		categories, err := m.recipes.Categories(m.ctx)
		return categoriesMsg{categories: categories, err: err}
	}
}

// preload fetches the first few categories so browsing them is instant
func (m *Model) preload() tea.Cmd {
	if m.recipes == nil || len(m.categories) == 0 {
		return nil
	}
	names := m.categoryNames()
	if len(names) > preloadCategories {
		names = names[:preloadCategories]
	}
	return func() tea.Msg {
		rows, err := m.recipes.Preload(m.ctx, names)
		return categoryMsg{recipes: rows, err: err}
	}
}

func (m *Model) fetchRandom() tea.Cmd {
	if m.recipes == nil {
		return nil
	}
	return func() tea.Msg {
		r, err := m.recipes.Random(m.ctx)
		return detailMsg{recipe: r, err: err}
	}
}

// fetchDetail returns a command that loads full recipe details
func (m *Model) fetchDetail(r domain.Recipe) tea.Cmd {
	if m.recipes == nil {
		return func() tea.Msg { return detailMsg{recipe: &r} }
	}
	return func() tea.Msg {
		full, err := m.recipes.Lookup(m.ctx, r.ID)
		return detailMsg{recipe: full, err: err}
	}
}

// fetchRecipePager returns a command that shows a recipe using the ov pager
func (m *Model) fetchRecipePager(r domain.Recipe, content string) tea.Cmd {
	return func() tea.Msg {
		// Send pause message to stop rendering
		m.program.Send(pauseRenderingMsg{})

		err := m.pager.Show(content)

		// Send resume message to restart rendering
		m.program.Send(resumeRenderingMsg{})

		return recipePagerMsg{recipe: r, err: err}
	}
}

// fetchHelpPager returns a command that shows help using the ov pager
func (m *Model) fetchHelpPager(helpContent string) tea.Cmd {
	if m.program == nil {
		return func() tea.Msg { return helpPagerMsg{content: helpContent, err: errNoProgram} }
	}
	return func() tea.Msg {
		m.program.Send(pauseRenderingMsg{})
		err := m.pager.Show(helpContent)
		m.program.Send(resumeRenderingMsg{})
		return helpPagerMsg{content: helpContent, err: err}
	}
}

// View renders the UI
func (m *Model) View() string {
	if m.inPagerMode {
		return ""
	}

	page := m.navigator.Page()

	st := m.searchState
	capacity := 0
	if m.config != nil {
		capacity = m.config.Search.CacheCapacity
	}

	state := views.ViewState{
		Width:         m.width,
		Height:        m.height,
		Rows:          m.rows[page.Start:page.End],
		Total:         len(m.rows),
		SelectedIndex: m.navigator.Selected() - page.Start,
		Favorites:     m.favorites,
		Ratings:       m.ratings,
		Search: views.SearchStatus{
			Query:          st.Query,
			DebouncedQuery: st.DebouncedQuery,
			Pending:        st.Phase == search.PhasePending,
			Loading:        st.Loading,
			Err:            st.Err,
			Retryable:      recipes.Retryable(st.Err),
			Empty:          st.Empty() || (st.HasResult && len(st.Result) == 0),
			CacheSize:      st.CacheSize,
			CacheCapacity:  capacity,
		},
		Spinner:         m.spinner.View(),
		FilterQuery:     m.filterText,
		FilterErr:       m.filterErr,
		FavoritesView:   m.favoritesView,
		CategoryLoading: m.categoryLoading,
		CategoryIndex:   m.categoryIndex,
		SortName:        m.currentSort.String(),
		Page:            page.Index,
		PageCount:       page.Count,
		StatusMessage:   m.statusMessage,
		SortOptionIndex: m.sortIndex,
		Popup:           m.popup,
	}

	switch m.inputHandler.CurrentMode() {
	case inputtypes.ModeSearch:
		state.InputMode = "search"
		state.TextInput = "Search: " + m.inputHandler.TextInput().View()
	case inputtypes.ModeFilter:
		state.InputMode = "filter"
		state.TextInput = "Filter: " + m.inputHandler.TextInput().View()
	case inputtypes.ModeSort:
		state.InputMode = "sort"
	case inputtypes.ModeCategory:
		state.InputMode = "category"
		for _, c := range m.categories {
			state.Categories = append(state.Categories, logic.Title(c.Name))
		}
	}
	if m.category != "" {
		state.Category = logic.Title(m.category)
	}

	out := m.renderer.Render(state)
	if m.e2e {
		out += "\n__READY__"
	}
	return out
}
