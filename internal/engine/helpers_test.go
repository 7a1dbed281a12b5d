package engine

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jinyier/jinyier/internal/models"
	"github.com/jinyier/jinyier/internal/sched"
	"github.com/jinyier/jinyier/internal/store"
)

var epoch = time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)

// scriptedRoller hands out queued values. When a queue runs dry it returns a
// roll that triggers nothing: 0.5 for floats, 0 for ints.
type scriptedRoller struct {
	mu     sync.Mutex
	floats []float64
	ints   []int
}

func (r *scriptedRoller) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.floats) == 0 {
		return 0.5
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func (r *scriptedRoller) IntN(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	if v >= n {
		panic("scripted int out of range")
	}
	return v
}

func (r *scriptedRoller) queueFloats(v ...float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.floats = append(r.floats, v...)
}

func (r *scriptedRoller) queueInts(v ...int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ints = append(r.ints, v...)
}

type stubDescriber struct {
	adv    *models.Adversary
	err    error
	calls  int
	levels []int
	// gate, when set, blocks DescribeAdversary until it is closed.
	gate chan struct{}
}

func (d *stubDescriber) DescribeAdversary(ctx context.Context, level int) (*models.Adversary, error) {
	d.calls++
	d.levels = append(d.levels, level)
	if d.gate != nil {
		<-d.gate
	}
	return d.adv, d.err
}

var errArtistDown = errors.New("artist unavailable")

type fixture struct {
	game      *Game
	clock     *sched.Manual
	rng       *scriptedRoller
	describer *stubDescriber
	store     *store.Memory
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		clock: sched.NewManual(epoch),
		rng:   &scriptedRoller{},
		describer: &stubDescriber{
			adv: &models.Adversary{Name: "Shadow Wolf", Portrait: "sketch:wolf"},
		},
		store: store.NewMemory(),
	}
	f.game = New(Options{
		Scheduler: f.clock,
		Roller:    f.rng,
		Describer: f.describer,
		Store:     f.store,
	})
	return f
}

// newStartedFixture returns a fixture whose beast has been summoned.
func newStartedFixture(t *testing.T) *fixture {
	t.Helper()
	f := newFixture(t)
	require.NoError(t, f.game.Begin(models.BeastProfile{Name: "Aurel", Stance: models.StanceQuadruped}, "sketch:aurel"))
	return f
}

// set mutates the game directly, under its lock.
func (f *fixture) set(fn func(g *Game)) {
	f.game.mu.Lock()
	defer f.game.mu.Unlock()
	fn(f.game)
}

func (f *fixture) lastEvent(t *testing.T) models.GameEvent {
	t.Helper()
	events := f.game.Events()
	require.NotEmpty(t, events)
	return events[len(events)-1]
}

func (f *fixture) eventsSince(n int) []models.GameEvent {
	return f.game.Events()[n:]
}

func ptr[T any](v T) *T { return &v }
