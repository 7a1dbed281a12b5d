package engine

import (
	"context"
	"fmt"

	"github.com/jinyier/jinyier/internal/models"
)

// CombatAction is a player move during an encounter.
type CombatAction string

const (
	ActionAttack CombatAction = "attack"
	ActionFlee   CombatAction = "flee"
)

type combatSession struct {
	state     models.CombatState
	enemy     *models.Enemy
	searching bool
	// attempt identifies the encounter so a late adversary description for
	// an abandoned encounter is dropped.
	attempt uint64
	level   int
	// retaliations holds one enemy strike per attack that has not landed yet.
	retaliations []*task
}

func newCombatSession() combatSession {
	return combatSession{state: models.CombatIdle}
}

type encounterAttempt struct {
	id    uint64
	level int
}

// Combat returns a view of the current encounter.
func (g *Game) Combat() models.Combat {
	g.mu.Lock()
	defer g.mu.Unlock()
	view := models.Combat{State: g.combat.state, Searching: g.combat.searching}
	if g.combat.enemy != nil {
		enemy := *g.combat.enemy
		view.Enemy = &enemy
	}
	return view
}

// StartEncounter looks for an adversary at the beast's level. It blocks while
// the adversary is described; if nothing is found the session returns to idle.
func (g *Game) StartEncounter(ctx context.Context) error {
	g.mu.Lock()
	if err := g.requireIdle(); err != nil {
		g.mu.Unlock()
		return err
	}
	attempt := g.beginEncounter()
	g.mu.Unlock()

	g.resolveEncounter(ctx, attempt)
	return nil
}

func (g *Game) beginEncounter() encounterAttempt {
	g.leaveIdle(ModeEncounter)
	next := g.combat.attempt + 1
	g.combat = combatSession{
		state:     models.CombatEncounter,
		searching: true,
		attempt:   next,
		level:     g.stats.Level,
	}
	return encounterAttempt{id: next, level: g.stats.Level}
}

// resolveEncounter runs without the lock held.
func (g *Game) resolveEncounter(ctx context.Context, attempt encounterAttempt) {
	var (
		adv *models.Adversary
		err error
	)
	if g.describer != nil {
		adv, err = g.describer.DescribeAdversary(ctx, attempt.level)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.mode != ModeEncounter || g.combat.attempt != attempt.id || !g.combat.searching {
		return
	}
	if err != nil {
		g.log.Warn("describe adversary", "level", attempt.level, "error", err)
	}
	if err != nil || adv == nil || adv.Name == "" || adv.Portrait == "" {
		g.logEvent("Found nothing.", models.CategoryNeutral)
		g.endEncounter()
		return
	}
	enemy := models.NewEnemy(*adv, attempt.level)
	g.combat.enemy = &enemy
	g.combat.searching = false
	g.logEvent(fmt.Sprintf("A wild %s appears!", enemy.Name), models.CategoryCombat)
}

// endEncounter releases the encounter and resumes idle play.
func (g *Game) endEncounter() {
	g.cancelRetaliations()
	g.combat = combatSession{state: models.CombatIdle, attempt: g.combat.attempt}
	g.enterIdle()
}

// CombatAction resolves a player move. Moves that do not apply to the current
// phase are ignored.
func (g *Game) CombatAction(action CombatAction) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	switch action {
	case ActionAttack:
		g.attack()
	case ActionFlee:
		g.flee()
	default:
		return fmt.Errorf("unknown combat action %q", action)
	}
	return nil
}

func (g *Game) attack() {
	if g.mode != ModeEncounter || g.combat.enemy == nil {
		return
	}
	if g.combat.state != models.CombatEncounter && g.combat.state != models.CombatFighting {
		return
	}
	g.combat.state = models.CombatFighting
	enemy := g.combat.enemy

	damage := g.rng.IntN(15) + 10 + g.stats.Level*3
	enemy.CurrentHealth = max(0, enemy.CurrentHealth-damage)
	g.logEvent(fmt.Sprintf("You attack for %d damage.", damage), models.CategoryCombat)

	if enemy.CurrentHealth == 0 {
		g.combat.state = models.CombatVictory
		g.applyDelta(models.D().WithExp(enemy.RewardExp).WithGold(enemy.RewardGold).WithMood(15))
		g.logEvent(fmt.Sprintf("Defeated the %s! +%d exp, +%d gold.", enemy.Name, enemy.RewardExp, enemy.RewardGold), models.CategoryCombat)
		g.cancelRetaliations()
		return
	}
	pending := g.combat.retaliations[:0]
	for _, t := range g.combat.retaliations {
		if !t.done {
			pending = append(pending, t)
		}
	}
	g.combat.retaliations = append(pending, g.schedule(g.timings.Retaliation, g.retaliate))
}

func (g *Game) cancelRetaliations() {
	for _, t := range g.combat.retaliations {
		t.cancel()
	}
	g.combat.retaliations = nil
}

// retaliate lands one enemy strike. Strikes queued behind a decided fight do nothing.
func (g *Game) retaliate() {
	enemy := g.combat.enemy
	if g.mode != ModeEncounter || g.combat.state != models.CombatFighting || enemy == nil {
		return
	}
	damage := g.rng.IntN(enemy.DamagePerHit) + 5
	g.applyDelta(models.D().WithHealth(-damage))
	g.logEvent(fmt.Sprintf("The %s strikes back for %d damage.", enemy.Name, damage), models.CategoryCombat)
	if g.stats.Health <= 0 {
		g.combat.state = models.CombatDefeat
		g.logEvent(fmt.Sprintf("Your beast was defeated by the %s...", enemy.Name), models.CategoryCombat)
		g.cancelRetaliations()
	}
}

func (g *Game) flee() {
	if g.mode != ModeEncounter {
		return
	}
	if g.combat.state != models.CombatEncounter && g.combat.state != models.CombatFighting {
		return
	}
	g.logEvent("Escaped safely!", models.CategoryNeutral)
	g.endEncounter()
}

// Acknowledge closes a finished encounter and returns to idle play.
func (g *Game) Acknowledge() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.mode != ModeEncounter {
		return
	}
	if g.combat.state != models.CombatVictory && g.combat.state != models.CombatDefeat {
		return
	}
	g.endEncounter()
}
