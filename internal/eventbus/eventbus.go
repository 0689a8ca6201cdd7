package eventbus

import (
	"log"
	"runtime/debug"
	"sync"

	"recipebox/internal/domain"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Event type constants
const (
	EventSearchStateChanged = domain.EventSearchStateChanged
	EventRecipeOpened       = domain.EventRecipeOpened
	EventFavoriteToggled    = domain.EventFavoriteToggled
	EventRatingChanged      = domain.EventRatingChanged
	EventError              = domain.EventError
	EventConfigLoaded       = domain.EventConfigLoaded
	EventConfigSaved        = domain.EventConfigSaved
	EventConfigChanged      = domain.EventConfigChanged
	EventAppReady           = domain.EventAppReady
)

// Re-export domain event types
type SearchStateChangedEvent = domain.SearchStateChangedEvent
type RecipeOpenedEvent = domain.RecipeOpenedEvent
type FavoriteToggledEvent = domain.FavoriteToggledEvent
type RatingChangedEvent = domain.RatingChangedEvent
type ErrorEvent = domain.ErrorEvent
type ConfigLoadedEvent = domain.ConfigLoadedEvent
type ConfigSavedEvent = domain.ConfigSavedEvent
type ConfigChangedEvent = domain.ConfigChangedEvent
type AppReadyEvent = domain.AppReadyEvent

// EventHandler is a function that handles domain events
type EventHandler func(DomainEvent)

// EventBus is the interface for the event bus
type EventBus interface {
	Publish(event DomainEvent)
	// Subscribe registers handler for eventType and returns a function that
	// removes it again.
	Subscribe(eventType EventType, handler EventHandler) func()
	Close()
}

const queueSize = 1000

type subscription struct {
	id      uint64
	handler EventHandler
}

// bus is the concrete implementation of EventBus
type bus struct {
	mu        sync.RWMutex
	handlers  map[EventType][]subscription
	nextID    uint64
	eventChan chan DomainEvent
	wg        sync.WaitGroup
	quit      chan struct{}
	closeOnce sync.Once
}

// New creates a new event bus
func New() EventBus {
	b := &bus{
		handlers:  make(map[EventType][]subscription),
		eventChan: make(chan DomainEvent, queueSize),
		quit:      make(chan struct{}),
	}

	b.wg.Add(1)
	go b.dispatch()

	return b
}

// Publish queues an event for delivery. It never blocks; when the queue is
// full the event is dropped and logged.
func (b *bus) Publish(event DomainEvent) {
	switch event.Type() {
	case EventSearchStateChanged:
		// Fires on every keystroke, too noisy to log
	default:
		log.Printf("EventBus: Publishing event %s", event.Type())
	}

	select {
	case <-b.quit:
		log.Printf("EventBus: closed, dropping event %s", event.Type())
		return
	default:
	}

	select {
	case b.eventChan <- event:
	default:
		log.Printf("Event bus channel full, dropping event: %v", event.Type())
	}
}

// Subscribe subscribes to events of a specific type
func (b *bus) Subscribe(eventType EventType, handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers[eventType] = append(b.handlers[eventType], subscription{id: id, handler: handler})

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()

			subs := b.handlers[eventType]
			for i, s := range subs {
				if s.id == id {
					b.handlers[eventType] = append(subs[:i:i], subs[i+1:]...)
					break
				}
			}
		})
	}
}

// Close stops the dispatcher. Queued events that were not yet dispatched are
// discarded. Close is safe to call more than once.
func (b *bus) Close() {
	b.closeOnce.Do(func() {
		close(b.quit)
	})
	b.wg.Wait()
}

// dispatch handles event distribution to subscribers
func (b *bus) dispatch() {
	defer b.wg.Done()

	for {
		select {
		case event := <-b.eventChan:
			b.mu.RLock()
			subs := b.handlers[event.Type()]
			// Copy so handlers run without the lock held
			handlersCopy := make([]EventHandler, len(subs))
			for i, s := range subs {
				handlersCopy[i] = s.handler
			}
			b.mu.RUnlock()

			for _, handler := range handlersCopy {
				// Each handler gets its own goroutine so a slow one cannot stall the bus
				go func(h EventHandler, eventType EventType) {
					defer func() {
						if r := recover(); r != nil {
							log.Printf("Event handler panic for %s: %v\nStack: %s", eventType, r, debug.Stack())
						}
					}()
					h(event)
				}(handler, event.Type())
			}

		case <-b.quit:
			for {
				select {
				case <-b.eventChan:
				default:
					return
				}
			}
		}
	}
}
