package engine

import (
	"context"
	"fmt"

	"github.com/jinyier/jinyier/internal/models"
)

// Costs of the care actions.
const (
	FeedCost = 5
	CureCost = 20
	// ExploreMinHealth is the health below which the beast will not explore.
	ExploreMinHealth = 20
)

var chatLines = []string{
	"I feel full of power!",
	"Where shall we adventure next?",
	"I will guard you forever.",
	"Nice weather today.",
	"I'm a little peckish.",
}

// Feed buys the beast a snack.
func (g *Game) Feed() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.requireIdle(); err != nil {
		return err
	}
	if g.stats.Gold < FeedCost {
		g.logEvent("Not enough gold!", models.CategoryNegative)
		return nil
	}
	if g.cond.Craving == models.CravingFood {
		g.cond.Craving = models.CravingNone
		g.applyDelta(models.D().WithGold(-FeedCost).WithHealth(15).WithMood(30).WithExp(20))
		g.logEvent("Delicious! Craving satisfied.", models.CategoryRare)
		return nil
	}
	g.applyDelta(models.D().WithGold(-FeedCost).WithHealth(15).WithMood(10).WithExp(5))
	g.logEvent("Fed your beast a snack.", models.CategoryPositive)
	return nil
}

// Cure pays for medicine when the beast is sick.
func (g *Game) Cure() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.requireIdle(); err != nil {
		return err
	}
	if !g.cond.Sick {
		return nil
	}
	if g.stats.Gold < CureCost {
		g.logEvent(fmt.Sprintf("Not enough gold! (%d gold)", CureCost), models.CategoryNegative)
		return nil
	}
	g.cond.Sick = false
	g.applyDelta(models.D().WithGold(-CureCost).WithHealth(30).WithMood(20))
	g.logEvent("Your beast is cured!", models.CategoryPositive)
	return nil
}

// Rest always helps, and sometimes shakes off sickness.
func (g *Game) Rest() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.requireIdle(); err != nil {
		return err
	}
	g.applyDelta(models.D().WithHealth(25).WithMood(10))
	g.logEvent("Resting...", models.CategoryNeutral)
	if g.cond.Sick && g.rng.Float64() < 0.3 {
		g.cond.Sick = false
		g.logEvent("After a good rest the sickness is miraculously gone!", models.CategoryPositive)
	}
	return nil
}

// Chat asks the beast how it is doing and returns what it says.
func (g *Game) Chat() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.requireIdle(); err != nil {
		return "", err
	}
	var line string
	switch {
	case g.cond.Sick:
		line = "I feel awful..."
	case g.cond.Craving == models.CravingFood:
		line = "I'm so hungry..."
	default:
		line = chatLines[g.rng.IntN(len(chatLines))]
	}
	g.chat = &chatBubble{text: line, expiresAt: g.sched.Now().Add(g.timings.ChatBubble)}
	g.logEvent(fmt.Sprintf("Beast: %q", line), models.CategoryNeutral)
	return line, nil
}

// Explore sends the beast out. A bad roll starts an encounter, in which case
// Explore blocks until the adversary has been described.
func (g *Game) Explore(ctx context.Context) error {
	g.mu.Lock()
	if err := g.requireIdle(); err != nil {
		g.mu.Unlock()
		return err
	}
	fight := g.explore()
	var attempt encounterAttempt
	if fight {
		attempt = g.beginEncounter()
	}
	g.mu.Unlock()

	if fight {
		g.resolveEncounter(ctx, attempt)
	}
	return nil
}

// explore reports whether the outing ends in a fight.
func (g *Game) explore() bool {
	if g.cond.Sick || g.stats.Health < ExploreMinHealth {
		g.logEvent("Too weak to go exploring.", models.CategoryNegative)
		return false
	}
	if g.cond.Craving == models.CravingExplore {
		g.cond.Craving = models.CravingNone
		g.applyDelta(models.D().WithMood(20).WithExp(15))
		g.logEvent("Adventure at last! Craving satisfied.", models.CategoryRare)
	}

	roll := g.rng.Float64()
	switch {
	case roll < 0.15 && g.cond.Secret == nil:
		g.discoverSecret()
	case roll < 0.60:
		item := g.grantRandomItem()
		g.applyDelta(models.D().WithExp(15).WithMood(5))
		g.logEvent(fmt.Sprintf("Lucky! Found a %s while exploring!", item.Name), models.CategoryPositive)
	case roll < 0.80:
		g.applyDelta(models.D().WithExp(10))
		g.logEvent("Found nothing, but the walk was good exercise.", models.CategoryNeutral)
	default:
		return true
	}
	return false
}
