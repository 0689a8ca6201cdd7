package ui

import (
	"errors"
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/noborus/ov/oviewer"
)

var errNoProgram = errors.New("program not set")

// Pager shows long content (recipe details, help) in ov, handing the terminal
// over to it for the duration.
type Pager struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
	run     func(r io.Reader) error
}

// NewPager creates a pager backed by ov
func NewPager() *Pager {
	return &Pager{run: runOviewer}
}

// SetProgram sets the program reference for terminal management
func (p *Pager) SetProgram(program *tea.Program) {
	p.program = program
}

// Show pages content until the user quits the pager
func (p *Pager) Show(content string) error {
	if p.program == nil {
		return errNoProgram
	}

	// Release terminal control to run ov
	if err := p.program.ReleaseTerminal(); err != nil {
		return err
	}

	// Ensure terminal is restored even if ov fails
	defer func() {
		// Small delay to ensure ov has fully exited before restoring terminal
		time.Sleep(100 * time.Millisecond)
		_ = p.program.RestoreTerminal()
	}()

	return p.run(strings.NewReader(content))
}

func runOviewer(r io.Reader) error {
	root, err := oviewer.NewRoot(r)
	if err != nil {
		return err
	}

	// Configure ov to not write on exit (to avoid messing with our screen)
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false

	configureVimKeyBindings(&config)

	root.SetConfig(config)
	return root.Run()
}

// vimKeys are added on top of ov's defaults. Keys ov already uses keep their
// original meaning.
var vimKeys = []struct {
	action string
	keys   []string
}{
	{"down", []string{"j"}},
	{"up", []string{"k"}},
	{"top", []string{"g"}},
	{"bottom", []string{"G"}},
	{"page_down", []string{"f", "space"}},
	{"page_up", []string{"b"}},
	{"page_half_down", []string{"d"}},
	{"page_half_up", []string{"u"}},
}

// configureVimKeyBindings adds vim-like navigation to the pager
func configureVimKeyBindings(config *oviewer.Config) {
	binds := oviewer.GetKeyBinds(*config)

	used := make(map[string]bool)
	for _, keys := range binds {
		for _, k := range keys {
			used[k] = true
		}
	}

	for _, vk := range vimKeys {
		for _, k := range vk.keys {
			if used[k] {
				continue
			}
			binds[vk.action] = append(binds[vk.action], k)
			used[k] = true
		}
	}
	config.Keybind = binds
}
