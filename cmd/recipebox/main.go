package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"recipebox/internal/config"
	"recipebox/internal/domain"
	"recipebox/internal/eventbus"
	"recipebox/internal/recipes"
	"recipebox/internal/search"
	"recipebox/internal/store"
	"recipebox/internal/ui"
)

// configReloadDelay coalesces bursts of file events from editors
const configReloadDelay = 200 * time.Millisecond

// forwardedEvents are the bus events the UI reacts to
var forwardedEvents = []eventbus.EventType{
	eventbus.EventSearchStateChanged,
	eventbus.EventFavoriteToggled,
	eventbus.EventRatingChanged,
	eventbus.EventConfigChanged,
	eventbus.EventError,
}

func main() {
	var (
		configPath string
		apiURL     string
		logPath    string
		debounce   time.Duration
	)
	flag.StringVar(&configPath, "config", config.DefaultPath(), "Path to the config file")
	flag.StringVar(&apiURL, "api", "", "Recipe API base URL (overrides the config)")
	flag.StringVar(&logPath, "log", "", "Log file (default: recipebox.log next to the config)")
	flag.DurationVar(&debounce, "debounce", -1, "Search debounce delay, e.g. 300ms (overrides the config)")
	flag.Parse()

	initialQuery := strings.Join(flag.Args(), " ")

	// Set up logging
	if logPath == "" {
		logPath = filepath.Join(filepath.Dir(configPath), "recipebox.log")
	}
	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		log.Printf("Could not create log directory: %v", err)
	}
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.Printf("Could not open log file: %v", err)
	} else {
		defer logFile.Close()
		log.SetOutput(logFile)
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	bus := eventbus.New()
	defer bus.Close()

	// Load configuration
	configSvc := config.NewConfigServiceAt(configPath, bus)
	cfg, err := configSvc.Load()
	if err != nil {
		log.Printf("Error loading config: %v", err)
		// Use default config
		cfg = config.DefaultConfig()
	}
	if apiURL != "" {
		cfg.API.BaseURL = apiURL
	}
	if debounce >= 0 {
		cfg.Search.Debounce = config.Duration(debounce)
	}

	st, err := store.Open(ctx, cfg.StorePath(configPath), bus)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	client, err := recipes.NewClient(recipes.Config{
		BaseURL:           cfg.API.BaseURL,
		Timeout:           cfg.API.Timeout.Std(),
		RequestsPerSecond: cfg.API.RequestsPerSecond,
		Burst:             cfg.API.Burst,
		UserAgent:         cfg.API.UserAgent,
		DetailCacheSize:   cfg.API.DetailCacheSize,
		DetailCacheTTL:    cfg.API.DetailCacheTTL.Std(),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating recipe client: %v\n", err)
		os.Exit(1)
	}

	// The controller reports changes through the bus; the UI pulls the
	// snapshot itself so the callback never blocks on the program.
	var ctrl *search.Controller[[]domain.Recipe]
	ctrl = search.New[[]domain.Recipe](client.Search,
		search.WithDelay(cfg.Search.Debounce.Std()),
		search.WithCacheCapacity(cfg.Search.CacheCapacity),
		search.WithContext(ctx),
		search.WithOnChange(func() {
			s := ctrl.State()
			bus.Publish(eventbus.SearchStateChangedEvent{
				Query:   s.Query,
				Phase:   s.Phase.String(),
				Version: s.Version,
			})
		}),
	)
	defer ctrl.Close()

	watcher, err := config.NewWatcher(configSvc, bus, configReloadDelay)
	if err != nil {
		log.Printf("Config hot reload disabled: %v", err)
	} else {
		watcher.Start(ctx)
		defer watcher.Close()
	}

	uiModel := ui.NewModel(ctx, cfg, ui.Services{
		Bus:     bus,
		Search:  ctrl,
		Recipes: client,
		Store:   st,
	})

	if debounce >= 0 {
		uiModel.PinDebounce()
	}

	// Create Bubble Tea program
	p := tea.NewProgram(uiModel, tea.WithAltScreen(), tea.WithContext(ctx))
	uiModel.SetProgram(p)

	// Set up event forwarding to UI
	eventChan := make(chan eventbus.DomainEvent, 100)
	for _, eventType := range forwardedEvents {
		unsubscribe := bus.Subscribe(eventType, func(e eventbus.DomainEvent) {
			select {
			case eventChan <- e:
			default:
				log.Printf("Event channel full, dropping %s", e.Type())
			}
		})
		defer unsubscribe()
	}

	// Start forwarding events to UI in background
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case event := <-eventChan:
				p.Send(ui.EventMsg{Event: event})
			}
		}
	}()

	if initialQuery != "" {
		ctrl.SetQuery(initialQuery)
	}

	// Run the UI
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}
