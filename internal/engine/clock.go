package engine

import (
	"github.com/jinyier/jinyier/internal/models"
)

func (g *Game) startClock() {
	g.stopClock()
	g.clock = g.schedule(g.timings.Tick, g.tick)
}

func (g *Game) stopClock() {
	g.clock.cancel()
	g.clock = nil
}

// tick is one beat of the world clock. It reschedules itself.
func (g *Game) tick() {
	if g.mode != ModeIdle {
		return
	}
	g.weatherTick()
	g.expireSecret()
	g.ambientTick()
	g.clock = g.schedule(g.timings.Tick, g.tick)
}

func (g *Game) weatherTick() {
	roll := g.rng.Float64()
	switch g.cond.Weather {
	case models.WeatherStorm:
		if roll < 0.3 {
			g.applyDelta(models.D().WithHealth(-1).WithMood(-2))
			g.logEvent("The raging storm leaves your beast miserable...", models.CategoryNegative)
		}
	case models.WeatherRain:
		if roll < 0.2 {
			g.applyDelta(models.D().WithMood(-1))
		}
	case models.WeatherClear:
		if roll < 0.2 {
			g.applyDelta(models.D().WithMood(1))
		}
	case models.WeatherMist:
	}
}

func (g *Game) ambientTick() {
	if g.cond.Sick {
		g.applyDelta(models.D().WithHealth(-2).WithMood(-2))
		if g.rng.Float64() < 0.2 {
			g.logEvent("Your beast groans in pain...", models.CategoryNegative)
		}
		return
	}
	if g.pet != nil && g.rng.Float64() < 0.2 {
		g.companionEvent()
		return
	}
	if g.rng.Float64() > 0.5 {
		g.randomWorldEvent()
	}
}
