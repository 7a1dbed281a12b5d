package engine

import (
	"fmt"

	"github.com/jinyier/jinyier/internal/models"
)

// applyDelta is the only way stats change.
func (g *Game) applyDelta(d models.Delta) {
	if d.IsZero() {
		return
	}
	if g.stats.Apply(d) {
		g.logEvent(fmt.Sprintf("Level up! Reached Lv.%d!", g.stats.Level), models.CategoryRare)
		g.log.Info("level up", "level", g.stats.Level)
	}
}
