package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jinyier/jinyier/internal/models"
)

func TestActionsNeedABeast(t *testing.T) {
	f := newFixture(t)

	assert.ErrorIs(t, f.game.Feed(), ErrNoBeast)
	assert.ErrorIs(t, f.game.Rest(), ErrNoBeast)
	assert.ErrorIs(t, f.game.Explore(context.Background()), ErrNoBeast)
	_, err := f.game.Chat()
	assert.ErrorIs(t, err, ErrNoBeast)
	assert.Equal(t, ModeSetup, f.game.Mode())
	assert.Empty(t, f.game.Events())
}

func TestBeginTwice(t *testing.T) {
	f := newStartedFixture(t)
	assert.ErrorIs(t, f.game.Begin(models.BeastProfile{Name: "Other"}, ""), ErrModeActive)
	assert.Equal(t, "Aurel", f.game.Beast().Name)
}

func TestFeedWithoutGold(t *testing.T) {
	f := newStartedFixture(t)
	f.set(func(g *Game) { g.stats.Gold = 4 })
	before := f.game.Stats()
	n := len(f.game.Events())

	require.NoError(t, f.game.Feed())

	assert.Equal(t, before, f.game.Stats())
	added := f.eventsSince(n)
	require.Len(t, added, 1)
	assert.Equal(t, models.CategoryNegative, added[0].Category)
}

func TestFeedSatisfiesFoodCraving(t *testing.T) {
	f := newStartedFixture(t)
	f.set(func(g *Game) {
		g.stats = models.Stats{Health: 50, Mood: 40, Exp: 0, Level: 1, Gold: 10}
		g.cond.Craving = models.CravingFood
	})
	n := len(f.game.Events())

	require.NoError(t, f.game.Feed())

	assert.Equal(t, models.Stats{Health: 65, Mood: 70, Exp: 20, Level: 1, Gold: 5}, f.game.Stats())
	assert.Equal(t, models.CravingNone, f.game.Conditions().Craving)
	added := f.eventsSince(n)
	require.Len(t, added, 1)
	assert.Equal(t, models.CategoryRare, added[0].Category)
}

func TestFeedSnack(t *testing.T) {
	f := newStartedFixture(t)
	f.set(func(g *Game) {
		g.stats = models.Stats{Health: 50, Mood: 40, Exp: 0, Level: 1, Gold: 12}
	})

	require.NoError(t, f.game.Feed())

	assert.Equal(t, models.Stats{Health: 65, Mood: 50, Exp: 5, Level: 1, Gold: 7}, f.game.Stats())
	assert.Equal(t, models.CategoryPositive, f.lastEvent(t).Category)
}

func TestCure(t *testing.T) {
	f := newStartedFixture(t)
	n := len(f.game.Events())

	require.NoError(t, f.game.Cure())
	assert.Len(t, f.game.Events(), n, "curing a healthy beast does nothing")

	f.set(func(g *Game) {
		g.cond.Sick = true
		g.stats.Gold = 19
	})
	require.NoError(t, f.game.Cure())
	assert.True(t, f.game.Conditions().Sick)
	assert.Equal(t, 19, f.game.Stats().Gold)
	assert.Equal(t, models.CategoryNegative, f.lastEvent(t).Category)

	f.set(func(g *Game) {
		g.stats.Gold = 30
		g.stats.Health = 40
		g.stats.Mood = 90
	})
	require.NoError(t, f.game.Cure())
	stats := f.game.Stats()
	assert.False(t, f.game.Conditions().Sick)
	assert.Equal(t, 10, stats.Gold)
	assert.Equal(t, 70, stats.Health)
	assert.Equal(t, 100, stats.Mood)
}

func TestRest(t *testing.T) {
	f := newStartedFixture(t)
	f.set(func(g *Game) {
		g.stats.Health = 30
		g.stats.Mood = 30
		g.cond.Sick = true
	})

	f.rng.queueFloats(0.9)
	require.NoError(t, f.game.Rest())
	assert.Equal(t, 55, f.game.Stats().Health)
	assert.Equal(t, 40, f.game.Stats().Mood)
	assert.True(t, f.game.Conditions().Sick)

	f.rng.queueFloats(0.1)
	require.NoError(t, f.game.Rest())
	assert.False(t, f.game.Conditions().Sick)
	assert.Equal(t, models.CategoryPositive, f.lastEvent(t).Category)
}

func TestChat(t *testing.T) {
	f := newStartedFixture(t)

	f.rng.queueInts(1)
	line, err := f.game.Chat()
	require.NoError(t, err)
	assert.Equal(t, chatLines[1], line)

	bubble, ok := f.game.ChatBubble()
	assert.True(t, ok)
	assert.Equal(t, line, bubble)

	f.clock.Advance(4 * time.Second)
	_, ok = f.game.ChatBubble()
	assert.False(t, ok)

	f.set(func(g *Game) { g.cond.Sick = true })
	line, err = f.game.Chat()
	require.NoError(t, err)
	assert.Equal(t, "I feel awful...", line)
}

func TestExploreTooWeak(t *testing.T) {
	f := newStartedFixture(t)
	f.set(func(g *Game) { g.stats.Health = ExploreMinHealth - 1 })
	before := f.game.Stats()

	require.NoError(t, f.game.Explore(context.Background()))

	assert.Equal(t, before, f.game.Stats())
	assert.Empty(t, f.game.Inventory())
	assert.Equal(t, models.CategoryNegative, f.lastEvent(t).Category)
}

func TestExploreFindsItem(t *testing.T) {
	f := newStartedFixture(t)
	f.rng.queueFloats(0.3)
	f.rng.queueInts(0)

	require.NoError(t, f.game.Explore(context.Background()))

	inv := f.game.Inventory()
	require.Len(t, inv, 1)
	assert.Equal(t, models.Catalog[0].ID, inv[0].ID)
	assert.NotEmpty(t, inv[0].InstanceID)
	stats := f.game.Stats()
	assert.Equal(t, 15, stats.Exp)
	assert.Equal(t, 85, stats.Mood)
	assert.Equal(t, models.CategoryPositive, f.lastEvent(t).Category)
}

func TestExploreFindsNothing(t *testing.T) {
	f := newStartedFixture(t)
	f.rng.queueFloats(0.7)

	require.NoError(t, f.game.Explore(context.Background()))

	assert.Equal(t, 10, f.game.Stats().Exp)
	assert.Empty(t, f.game.Inventory())
	assert.Equal(t, models.CategoryNeutral, f.lastEvent(t).Category)
}

func TestExploreCravingAndSecret(t *testing.T) {
	f := newStartedFixture(t)
	f.set(func(g *Game) { g.cond.Craving = models.CravingExplore })
	n := len(f.game.Events())
	f.rng.queueFloats(0.05)
	f.rng.queueInts(2)

	require.NoError(t, f.game.Explore(context.Background()))

	cond := f.game.Conditions()
	assert.Equal(t, models.CravingNone, cond.Craving)
	require.NotNil(t, cond.Secret)
	assert.Equal(t, models.SecretCave, cond.Secret.Kind)
	assert.Equal(t, "Crystal Cave", cond.Secret.Name)
	assert.Equal(t, epoch.Add(DefaultTimings().SecretWindow), cond.Secret.ExpiresAt)

	stats := f.game.Stats()
	assert.Equal(t, 15, stats.Exp)
	assert.Equal(t, 100, stats.Mood)

	added := f.eventsSince(n)
	require.Len(t, added, 2)
	assert.Equal(t, models.CategoryRare, added[0].Category)
	assert.Equal(t, models.CategoryRare, added[1].Category)
}

func TestExploreLowRollWithActiveSecretFindsItem(t *testing.T) {
	f := newStartedFixture(t)
	f.set(func(g *Game) {
		g.cond.Secret = &models.SecretLocation{Name: "Fairy Ring", Kind: models.SecretFairy, ExpiresAt: epoch.Add(time.Minute)}
	})
	f.rng.queueFloats(0.05)

	require.NoError(t, f.game.Explore(context.Background()))

	assert.Len(t, f.game.Inventory(), 1)
	assert.Equal(t, models.SecretFairy, f.game.Conditions().Secret.Kind)
}

func TestExploreStartsEncounter(t *testing.T) {
	f := newStartedFixture(t)
	f.rng.queueFloats(0.9)

	require.NoError(t, f.game.Explore(context.Background()))

	assert.Equal(t, ModeEncounter, f.game.Mode())
	combat := f.game.Combat()
	assert.Equal(t, models.CombatEncounter, combat.State)
	require.NotNil(t, combat.Enemy)
	assert.Equal(t, "Shadow Wolf", combat.Enemy.Name)
	assert.Equal(t, 80, combat.Enemy.MaxHealth)
	assert.Equal(t, models.CategoryCombat, f.lastEvent(t).Category)
	assert.Equal(t, []int{1}, f.describer.levels)
}

func TestExploreEncounterFindsNothing(t *testing.T) {
	f := newStartedFixture(t)
	f.describer.err = errArtistDown
	f.rng.queueFloats(0.9)

	require.NoError(t, f.game.Explore(context.Background()))

	assert.Equal(t, ModeIdle, f.game.Mode())
	assert.Equal(t, models.CombatIdle, f.game.Combat().State)
	last := f.lastEvent(t)
	assert.Equal(t, "Found nothing.", last.Message)
	assert.Equal(t, models.CategoryNeutral, last.Category)
}

func TestCareActionsBlockedDuringEncounter(t *testing.T) {
	f := newStartedFixture(t)
	require.NoError(t, f.game.StartEncounter(context.Background()))
	require.Equal(t, ModeEncounter, f.game.Mode())

	assert.ErrorIs(t, f.game.Feed(), ErrModeActive)
	assert.ErrorIs(t, f.game.Rest(), ErrModeActive)
	assert.ErrorIs(t, f.game.Cure(), ErrModeActive)
	assert.ErrorIs(t, f.game.StartTraining(), ErrModeActive)
	assert.ErrorIs(t, f.game.StartEncounter(context.Background()), ErrModeActive)
	assert.True(t, f.game.Busy())
}
