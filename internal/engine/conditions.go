package engine

import (
	"fmt"

	"github.com/jinyier/jinyier/internal/models"
)

// randomWorldEvent rolls once; a range whose guard fails falls through to the
// next range.
func (g *Game) randomWorldEvent() {
	roll := g.rng.IntN(100)
	switch {
	case roll < 10:
		g.changeWeather()
	case roll < 20 && g.cond.Craving == models.CravingNone:
		g.cond.Craving = models.Cravings[g.rng.IntN(len(models.Cravings))]
		g.logEvent("Your beast seems to be longing for something...", models.CategoryNeutral)
	case roll < 35 && !g.cond.Sick:
		g.cond.Sick = true
		g.logEvent("Your beast looks sick!", models.CategoryNegative)
	case roll < 45:
		item := g.grantRandomItem()
		g.logEvent(fmt.Sprintf("Found a %s!", item.Name), models.CategoryPositive)
	default:
		g.logEvent("All is quiet...", models.CategoryNeutral)
	}
}

func (g *Game) changeWeather() {
	others := make([]models.Weather, 0, len(models.Weathers)-1)
	for _, w := range models.Weathers {
		if w != g.cond.Weather {
			others = append(others, w)
		}
	}
	g.cond.Weather = others[g.rng.IntN(len(others))]
	g.logEvent("The weather turns "+weatherLabel(g.cond.Weather)+".", models.CategoryNeutral)
}

func weatherLabel(w models.Weather) string {
	switch w {
	case models.WeatherClear:
		return "clear"
	case models.WeatherRain:
		return "rainy"
	case models.WeatherStorm:
		return "stormy"
	case models.WeatherMist:
		return "misty"
	}
	return string(w)
}

// discoverSecret opens a time-boxed secret location. Callers check that none
// is active.
func (g *Game) discoverSecret() {
	kind := models.SecretKinds[g.rng.IntN(len(models.SecretKinds))]
	g.cond.Secret = &models.SecretLocation{
		Name:      models.SecretName(kind),
		Kind:      kind,
		ExpiresAt: g.sched.Now().Add(g.timings.SecretWindow),
	}
	g.logEvent(fmt.Sprintf("Discovered a hidden place: %s!", g.cond.Secret.Name), models.CategoryRare)
}

func (g *Game) expireSecret() {
	secret := g.cond.Secret
	if secret == nil || !g.sched.Now().After(secret.ExpiresAt) {
		return
	}
	g.cond.Secret = nil
	g.logEvent(fmt.Sprintf("The entrance to the %s has vanished.", secret.Name), models.CategoryNeutral)
}

// EnterSecretLocation consumes the active secret location and hands out its
// reward.
func (g *Game) EnterSecretLocation() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.requireIdle(); err != nil {
		return err
	}
	secret := g.cond.Secret
	if secret == nil {
		return nil
	}
	g.cond.Secret = nil

	switch secret.Kind {
	case models.SecretRuins:
		g.applyDelta(models.D().WithGold(100).WithExp(50))
		g.grantItem(models.ItemAncientCoin)
		g.logEvent("Deep in the ruins you uncover an ancient treasure!", models.CategoryRare)
	case models.SecretFairy:
		g.applyDelta(models.D().WithHealth(100).WithMood(100).WithExp(20))
		g.logEvent("Bathed in the glow of the fairy ring, your beast is fully restored!", models.CategoryRare)
	case models.SecretCave:
		g.applyDelta(models.D().WithExp(40))
		g.grantItem(models.ItemEnergyCrystal)
		g.grantItem(models.ItemEnergyCrystal)
		g.logEvent("The cave glitters with crystals. You gather a few.", models.CategoryRare)
	}
	return nil
}
