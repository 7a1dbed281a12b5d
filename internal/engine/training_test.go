package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jinyier/jinyier/internal/models"
)

const (
	warnDelay    = 1500 * time.Millisecond
	strikeDelay  = 1000 * time.Millisecond
	recoverDelay = 400 * time.Millisecond
)

func startTraining(t *testing.T, f *fixture) {
	t.Helper()
	require.NoError(t, f.game.StartTraining())
	require.Equal(t, models.TrainingIntro, f.game.Training().State)
	f.game.BeginTraining()
	require.Equal(t, models.TrainingActive, f.game.Training().State)
}

func TestTrainingRefusedWhenSick(t *testing.T) {
	f := newStartedFixture(t)
	f.set(func(g *Game) { g.cond.Sick = true })

	require.NoError(t, f.game.StartTraining())

	assert.Equal(t, ModeIdle, f.game.Mode())
	assert.Equal(t, models.TrainingInactive, f.game.Training().State)
	assert.Equal(t, models.CategoryNegative, f.lastEvent(t).Category)
}

func TestTrainingHazardLoop(t *testing.T) {
	f := newStartedFixture(t)
	startTraining(t, f)
	assert.Equal(t, StartLane, f.game.Training().PlayerLane)

	f.rng.queueInts(StartLane)
	f.clock.Advance(warnDelay)
	view := f.game.Training()
	assert.True(t, view.WarningActive)
	assert.False(t, view.DamageActive)
	require.NotNil(t, view.DangerLane)
	assert.Equal(t, StartLane, *view.DangerLane)

	f.clock.Advance(strikeDelay)
	view = f.game.Training()
	assert.False(t, view.WarningActive)
	assert.True(t, view.DamageActive)
	assert.Equal(t, 100-LaneHitDamage, f.game.Stats().Health)

	f.clock.Advance(recoverDelay)
	view = f.game.Training()
	assert.False(t, view.DamageActive)
	assert.Nil(t, view.DangerLane)

	// The next hazard lands in another lane.
	f.rng.queueInts(0)
	f.clock.Advance(warnDelay + strikeDelay + recoverDelay)
	assert.Equal(t, 100-LaneHitDamage, f.game.Stats().Health)
	assert.Equal(t, ModeTraining, f.game.Mode())
}

func TestTrainingLaneSampledAtStrike(t *testing.T) {
	f := newStartedFixture(t)
	startTraining(t, f)

	f.rng.queueInts(2)
	f.clock.Advance(warnDelay)
	require.NoError(t, f.game.SetPlayerLane(2))
	require.NoError(t, f.game.SetPlayerLane(0))
	f.clock.Advance(strikeDelay)
	assert.Equal(t, 100, f.game.Stats().Health)

	f.rng.queueInts(0)
	f.clock.Advance(recoverDelay + warnDelay)
	require.NoError(t, f.game.SetPlayerLane(1))
	require.NoError(t, f.game.SetPlayerLane(0))
	f.clock.Advance(strikeDelay)
	assert.Equal(t, 100-LaneHitDamage, f.game.Stats().Health)
}

func TestSetPlayerLaneValidates(t *testing.T) {
	f := newStartedFixture(t)
	startTraining(t, f)

	assert.ErrorIs(t, f.game.SetPlayerLane(-1), ErrInvalidLane)
	assert.ErrorIs(t, f.game.SetPlayerLane(models.Lanes), ErrInvalidLane)
	assert.Equal(t, StartLane, f.game.Training().PlayerLane)
}

func TestQuitTrainingCancelsPhases(t *testing.T) {
	f := newStartedFixture(t)
	startTraining(t, f)

	f.rng.queueInts(StartLane, StartLane, StartLane, StartLane)
	f.clock.Advance(warnDelay)
	require.True(t, f.game.Training().WarningActive)

	f.game.QuitTraining()
	assert.Equal(t, models.TrainingInactive, f.game.Training().State)
	assert.Equal(t, ModeIdle, f.game.Mode())
	n := len(f.game.Events())

	f.clock.Advance(11 * time.Second)

	assert.Equal(t, 100, f.game.Stats().Health)
	assert.Len(t, f.game.Events(), n)
	assert.Equal(t, 1, f.clock.Pending(), "only the world clock remains")
}

func TestTrainingVictory(t *testing.T) {
	f := newStartedFixture(t)
	startTraining(t, f)

	for i := 0; i < 4; i++ {
		f.game.TrainingAttack()
	}
	assert.Equal(t, DummyHealth-4*21, f.game.Training().DummyHealth)
	assert.Equal(t, models.TrainingActive, f.game.Training().State)

	f.game.TrainingAttack()

	view := f.game.Training()
	assert.Equal(t, models.TrainingVictory, view.State)
	assert.Equal(t, 0, view.DummyHealth)
	assert.Equal(t, 0, f.clock.Pending())

	stats := f.game.Stats()
	assert.Equal(t, 2, stats.Level)
	assert.Equal(t, TrainingExp-100, stats.Exp)
	assert.Equal(t, 100, stats.Mood)
	assert.Equal(t, "Training complete!", f.lastEvent(t).Message)

	f.game.TrainingAttack()
	assert.Equal(t, stats, f.game.Stats())

	f.game.QuitTraining()
	assert.Equal(t, ModeIdle, f.game.Mode())
}

func TestTrainingDefeat(t *testing.T) {
	f := newStartedFixture(t)
	startTraining(t, f)
	f.set(func(g *Game) { g.stats.Health = LaneHitDamage })

	f.rng.queueInts(StartLane)
	f.clock.Advance(warnDelay + strikeDelay)

	assert.Equal(t, 0, f.game.Stats().Health)
	assert.Equal(t, models.TrainingDefeat, f.game.Training().State)
	assert.Equal(t, 0, f.clock.Pending())

	f.game.QuitTraining()
	assert.Equal(t, ModeIdle, f.game.Mode())
}

func TestTrainingIgnoresMovesBeforeBegin(t *testing.T) {
	f := newStartedFixture(t)
	require.NoError(t, f.game.StartTraining())

	f.game.TrainingAttack()
	f.clock.Advance(time.Minute)

	view := f.game.Training()
	assert.Equal(t, models.TrainingIntro, view.State)
	assert.Equal(t, DummyHealth, view.DummyHealth)
}
