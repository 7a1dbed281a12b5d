// Package engine is the life simulation of a guardian beast: its stats,
// conditions, inventory, the ambient world clock, combat encounters and the
// training mini-game.
//
// All state lives in one Game. Every exported method and every scheduled
// callback runs under the Game's lock, so state transitions never interleave.
package engine

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/jinyier/jinyier/internal/models"
	"github.com/jinyier/jinyier/internal/sched"
)

// Mode is the exclusive activity the session is in.
type Mode string

const (
	// ModeSetup means no beast has been summoned yet.
	ModeSetup Mode = "setup"
	// ModeIdle is ordinary gameplay. Only here does the world clock run.
	ModeIdle      Mode = "idle"
	ModeEncounter Mode = "encounter"
	ModeTraining  Mode = "training"
)

// Roller is the source of randomness. *rand.Rand satisfies it.
type Roller interface {
	Float64() float64
	IntN(n int) int
}

// AdversaryDescriber produces the opponent for an encounter. A nil result or
// an error means nothing was found.
type AdversaryDescriber interface {
	DescribeAdversary(ctx context.Context, level int) (*models.Adversary, error)
}

// SnapshotStore persists the list of saved sessions as a whole.
type SnapshotStore interface {
	List(ctx context.Context) ([]models.Snapshot, error)
	Write(ctx context.Context, snapshots []models.Snapshot) error
}

// Timings are the delays that drive the simulation.
type Timings struct {
	Tick         time.Duration
	Retaliation  time.Duration
	Warning      time.Duration
	Strike       time.Duration
	Recover      time.Duration
	SecretWindow time.Duration
	ChatBubble   time.Duration
}

// DefaultTimings returns the standard pacing.
func DefaultTimings() Timings {
	return Timings{
		Tick:         12 * time.Second,
		Retaliation:  800 * time.Millisecond,
		Warning:      1500 * time.Millisecond,
		Strike:       1000 * time.Millisecond,
		Recover:      400 * time.Millisecond,
		SecretWindow: 60 * time.Second,
		ChatBubble:   4 * time.Second,
	}
}

// Options configure a Game. Zero values get sensible defaults.
type Options struct {
	Scheduler sched.Scheduler
	Roller    Roller
	Describer AdversaryDescriber
	Store     SnapshotStore
	Logger    *slog.Logger
	Timings   Timings
}

// Game is the whole mutable session.
type Game struct {
	mu sync.Mutex
	// storeMu serializes read-modify-write cycles against the store.
	storeMu sync.Mutex

	sched     sched.Scheduler
	rng       Roller
	describer AdversaryDescriber
	store     SnapshotStore
	log       *slog.Logger
	timings   Timings

	mode      Mode
	beast     models.BeastProfile
	portrait  string
	stats     models.Stats
	events    *EventLog
	inventory []models.InventoryItem
	cond      models.Conditions
	pet       *models.Pet
	chat      *chatBubble

	clock    *task
	combat   combatSession
	training trainingSession
}

type chatBubble struct {
	text      string
	expiresAt time.Time
}

// New creates a game in setup mode.
func New(opts Options) *Game {
	if opts.Scheduler == nil {
		opts.Scheduler = sched.Real{}
	}
	if opts.Roller == nil {
		opts.Roller = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.Timings == (Timings{}) {
		opts.Timings = DefaultTimings()
	}

	g := &Game{
		sched:     opts.Scheduler,
		rng:       opts.Roller,
		describer: opts.Describer,
		store:     opts.Store,
		log:       opts.Logger,
		timings:   opts.Timings,
	}
	g.events = NewEventLog(g.sched.Now)
	g.resetLocked()
	return g
}

// task is a scheduled callback that can be canceled. Once canceled or run,
// a late firing is a no-op.
type task struct {
	timer sched.Timer
	done  bool
}

// schedule must be called with g.mu held.
func (g *Game) schedule(d time.Duration, fn func()) *task {
	t := &task{}
	t.timer = g.sched.AfterFunc(d, func() {
		g.mu.Lock()
		defer g.mu.Unlock()
		if t.done {
			return
		}
		t.done = true
		fn()
	})
	return t
}

func (t *task) cancel() {
	if t == nil || t.done {
		return
	}
	t.done = true
	t.timer.Stop()
}

func (g *Game) logEvent(message string, category models.Category) {
	g.events.Append(message, category)
}

// requireIdle gates the everyday actions.
func (g *Game) requireIdle() error {
	switch g.mode {
	case ModeSetup:
		return ErrNoBeast
	case ModeIdle:
		return nil
	case ModeEncounter, ModeTraining:
		return ErrModeActive
	}
	return ErrModeActive
}

func (g *Game) enterIdle() {
	if g.mode != ModeIdle {
		g.log.Debug("mode change", "from", g.mode, "to", ModeIdle)
	}
	g.mode = ModeIdle
	g.startClock()
}

func (g *Game) leaveIdle(next Mode) {
	g.stopClock()
	g.log.Debug("mode change", "from", g.mode, "to", next)
	g.mode = next
}

// cancelAll releases every scheduled callback.
func (g *Game) cancelAll() {
	g.stopClock()
	g.cancelRetaliations()
	g.training.phase.cancel()
}

// Begin summons a beast and starts ordinary gameplay.
func (g *Game) Begin(profile models.BeastProfile, portrait string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.mode != ModeSetup {
		return ErrModeActive
	}
	g.beast = profile.Clone()
	g.portrait = portrait
	g.stats = models.InitialStats()
	g.logEvent("Your guardian beast has descended into the world!", models.CategoryRare)
	g.log.Info("beast summoned", "name", profile.Name)
	g.enterIdle()
	return nil
}

// Reset discards the session and returns to setup.
func (g *Game) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.resetLocked()
	g.log.Info("session reset")
}

func (g *Game) resetLocked() {
	g.cancelAll()
	g.mode = ModeSetup
	g.beast = models.BeastProfile{}
	g.portrait = ""
	g.stats = models.InitialStats()
	g.events.Replace(nil)
	g.inventory = nil
	g.cond = models.DefaultConditions()
	g.pet = nil
	g.chat = nil
	g.clearCombat()
	g.training = newTrainingSession()
}

// clearCombat drops the encounter but keeps counting attempts, so a search
// still running from before never matches a later encounter.
func (g *Game) clearCombat() {
	attempt := g.combat.attempt
	g.combat = newCombatSession()
	g.combat.attempt = attempt
}

// Subscribe registers fn for every new event log entry. fn must not block and
// must not call back into the Game.
func (g *Game) Subscribe(fn func(models.GameEvent)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.events.Subscribe(fn)
}

// Mode reports the current exclusive mode.
func (g *Game) Mode() Mode {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.mode
}

// Busy reports whether an encounter or training session holds the session.
func (g *Game) Busy() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.mode == ModeEncounter || g.mode == ModeTraining
}

func (g *Game) Stats() models.Stats {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.stats
}

func (g *Game) Conditions() models.Conditions {
	g.mu.Lock()
	defer g.mu.Unlock()
	c := g.cond
	if c.Secret != nil {
		secret := *c.Secret
		c.Secret = &secret
	}
	return c
}

func (g *Game) Inventory() []models.InventoryItem {
	g.mu.Lock()
	defer g.mu.Unlock()
	return models.CloneInventory(g.inventory)
}

func (g *Game) Events() []models.GameEvent {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.events.Events()
}

func (g *Game) Pet() *models.Pet {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.pet == nil {
		return nil
	}
	pet := *g.pet
	return &pet
}

func (g *Game) Beast() models.BeastProfile {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.beast.Clone()
}

func (g *Game) Portrait() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.portrait
}

// ChatBubble returns the last chat line while it is still on screen.
func (g *Game) ChatBubble() (string, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.chat == nil || !g.sched.Now().Before(g.chat.expiresAt) {
		return "", false
	}
	return g.chat.text, true
}
