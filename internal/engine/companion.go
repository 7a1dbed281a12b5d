package engine

import (
	"fmt"

	"github.com/jinyier/jinyier/internal/models"
)

func (g *Game) companionEvent() {
	if g.pet == nil {
		return
	}
	if g.rng.Float64() < 0.4 {
		gold := g.rng.IntN(20) + 5
		g.applyDelta(models.D().WithGold(gold))
		g.logEvent(fmt.Sprintf("%s found %d gold!", g.pet.Name, gold), models.CategoryPositive)
		return
	}
	g.applyDelta(models.D().WithMood(5))
	g.logEvent(fmt.Sprintf("%s cheers your beast up.", g.pet.Name), models.CategoryPositive)
}

// AdoptPet takes in a companion. Only one pet is kept at a time.
func (g *Game) AdoptPet(pet models.Pet) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.requireIdle(); err != nil {
		return err
	}
	if g.pet != nil {
		g.logEvent(fmt.Sprintf("%s already keeps your beast company.", g.pet.Name), models.CategoryNeutral)
		return nil
	}
	g.pet = &pet
	g.logEvent(fmt.Sprintf("%s joined your beast!", pet.Name), models.CategoryRare)
	return nil
}

// PlayWithPet lets the beast romp with its companion. It satisfies a craving
// to play.
func (g *Game) PlayWithPet() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.requireIdle(); err != nil {
		return err
	}
	if g.pet == nil {
		return nil
	}
	g.applyDelta(models.D().WithMood(5))
	g.logEvent(fmt.Sprintf("Your beast plays with %s.", g.pet.Name), models.CategoryPositive)
	if g.cond.Craving == models.CravingPlay {
		g.cond.Craving = models.CravingNone
		g.applyDelta(models.D().WithMood(20).WithExp(15))
		g.logEvent("What fun! Craving satisfied.", models.CategoryRare)
	}
	return nil
}
