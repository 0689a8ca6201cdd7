package domain

import "time"

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventSearchStateChanged EventType = "SearchStateChanged"
	EventRecipeOpened       EventType = "RecipeOpened"
	EventFavoriteToggled    EventType = "FavoriteToggled"
	EventRatingChanged      EventType = "RatingChanged"
	EventError              EventType = "Error"
	EventConfigLoaded       EventType = "ConfigLoaded"
	EventConfigSaved        EventType = "ConfigSaved"
	EventConfigChanged      EventType = "ConfigChanged"
	EventAppReady           EventType = "AppReady"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// SearchStateChangedEvent is emitted whenever the search controller's
// observable state changes. Consumers read the full state from the controller.
type SearchStateChangedEvent struct {
	Query   string
	Phase   string
	Version uint64
}

func (e SearchStateChangedEvent) Type() EventType { return EventSearchStateChanged }

// RecipeOpenedEvent is emitted when a recipe's details are shown
type RecipeOpenedEvent struct {
	RecipeID string
	Name     string
}

func (e RecipeOpenedEvent) Type() EventType { return EventRecipeOpened }

// FavoriteToggledEvent is emitted when a recipe is starred or unstarred
type FavoriteToggledEvent struct {
	RecipeID string
	Favorite bool
}

func (e FavoriteToggledEvent) Type() EventType { return EventFavoriteToggled }

// RatingChangedEvent is emitted when a rating is set or cleared (Stars == 0)
type RatingChangedEvent struct {
	RecipeID string
	Stars    int
}

func (e RatingChangedEvent) Type() EventType { return EventRatingChanged }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path    string
	Default bool // no file existed, defaults were used
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }

// ConfigChangedEvent is emitted when the config file changed on disk and was
// reloaded. It carries the settings the running app can apply live.
type ConfigChangedEvent struct {
	Path          string
	PageSize      int
	DefaultSort   string
	Debounce      time.Duration
	CacheCapacity int
}

func (e ConfigChangedEvent) Type() EventType { return EventConfigChanged }

// AppReadyEvent is emitted when the app is fully initialized and ready
type AppReadyEvent struct {
	HasExistingConfig bool
}

func (e AppReadyEvent) Type() EventType { return EventAppReady }
