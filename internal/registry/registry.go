// Package registry provides global registries for games and pilots.
// Both register themselves in init() functions, allowing the platform
// to discover and instantiate them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-lander/internal/core"
	"github.com/vovakirdan/tui-lander/internal/lander"
)

// Game is the interface the terminal platform drives.
// Games contain pure logic with no external dependencies (especially no Bubble Tea).
// The platform handles input mapping, timing, and rendering.
type Game interface {
	// ID returns a unique identifier, used for CLI commands and score storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset initializes or resets the game state.
	// Called once at start and again when restarting after game over.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current game state into the provided screen buffer.
	// The screen is pre-cleared before this call.
	Render(dst *core.Screen)

	// State returns the current game state (score, game over, paused).
	State() core.GameState
}

// Pilot chooses a lander action from an observation.
type Pilot interface {
	// Name returns the registry ID (e.g., "autopilot").
	Name() string

	// Description returns a one-line summary for listings.
	Description() string

	// Reset clears per-episode state before a new episode.
	Reset()

	// Act returns the action for the current observation.
	Act(obs lander.Observation) lander.Action
}

// Info contains metadata about a registered entry.
type Info struct {
	ID    string
	Title string
}

// table is one thread-safe registry.
type table[T any] struct {
	kind      string
	mu        sync.RWMutex
	factories map[string]func() T
	titles    map[string]string
}

func newTable[T any](kind string) *table[T] {
	return &table[T]{
		kind:      kind,
		factories: make(map[string]func() T),
		titles:    make(map[string]string),
	}
}

func (t *table[T]) register(id string, f func() T, title func(T) string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.factories[id]; exists {
		panic(fmt.Sprintf("registry: %s %q already registered", t.kind, id))
	}
	t.factories[id] = f
	t.titles[id] = title(f())
}

func (t *table[T]) list() []Info {
	t.mu.RLock()
	defer t.mu.RUnlock()

	result := make([]Info, 0, len(t.factories))
	for id := range t.factories {
		result = append(result, Info{ID: id, Title: t.titles[id]})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

func (t *table[T]) create(id string) (T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	f, ok := t.factories[id]
	if !ok {
		var zero T
		return zero, fmt.Errorf("registry: unknown %s %q", t.kind, id)
	}
	return f(), nil
}

func (t *table[T]) exists(id string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	_, ok := t.factories[id]
	return ok
}

var (
	games  = newTable[Game]("game")
	pilots = newTable[Pilot]("pilot")
)

// GameFactory creates a new game instance.
type GameFactory func() Game

// PilotFactory creates a new pilot instance.
type PilotFactory func() Pilot

// RegisterGame adds a game factory. Panics if the ID is already registered.
func RegisterGame(id string, f GameFactory) {
	games.register(id, f, Game.Title)
}

// Games returns all registered games, sorted by ID.
func Games() []Info { return games.list() }

// CreateGame instantiates a game by its ID.
func CreateGame(id string) (Game, error) { return games.create(id) }

// GameExists checks if a game with the given ID is registered.
func GameExists(id string) bool { return games.exists(id) }

// RegisterPilot adds a pilot factory. Panics if the ID is already registered.
func RegisterPilot(id string, f PilotFactory) {
	pilots.register(id, f, Pilot.Description)
}

// Pilots returns all registered pilots, sorted by ID.
func Pilots() []Info { return pilots.list() }

// CreatePilot instantiates a pilot by its ID.
func CreatePilot(id string) (Pilot, error) { return pilots.create(id) }

// PilotExists checks if a pilot with the given ID is registered.
func PilotExists(id string) bool { return pilots.exists(id) }
