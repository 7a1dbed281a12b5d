package engine

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/jinyier/jinyier/internal/models"
)

func newInstance(def models.ItemDefinition) models.InventoryItem {
	item := models.CloneInventory([]models.InventoryItem{{ItemDefinition: def}})[0]
	item.InstanceID = uuid.NewString()
	return item
}

func (g *Game) grantRandomItem() models.InventoryItem {
	item := newInstance(models.Catalog[g.rng.IntN(len(models.Catalog))])
	g.inventory = append(g.inventory, item)
	return item
}

func (g *Game) grantItem(id string) {
	def, ok := models.LookupItem(id)
	if !ok {
		g.log.Warn("unknown catalog item", "id", id)
		return
	}
	g.inventory = append(g.inventory, newInstance(def))
}

func (g *Game) findItem(instanceID string) (int, bool) {
	for i, it := range g.inventory {
		if it.InstanceID == instanceID {
			return i, true
		}
	}
	return -1, false
}

func (g *Game) removeItemAt(i int) {
	g.inventory = append(g.inventory[:i:i], g.inventory[i+1:]...)
}

// UseItem consumes one consumable instance. Unknown ids and items that are not
// consumable are ignored.
func (g *Game) UseItem(instanceID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.requireIdle(); err != nil {
		return err
	}
	i, ok := g.findItem(instanceID)
	if !ok {
		return nil
	}
	item := g.inventory[i]
	if item.Kind != models.ItemConsumable {
		return nil
	}
	if item.Effects != nil {
		g.applyDelta(*item.Effects)
	}
	g.removeItemAt(i)
	g.logEvent(fmt.Sprintf("Used %s.", item.Name), models.CategoryPositive)
	return nil
}

// SellItem sells one instance of any kind for its sell value. Unknown ids are
// ignored.
func (g *Game) SellItem(instanceID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.requireIdle(); err != nil {
		return err
	}
	i, ok := g.findItem(instanceID)
	if !ok {
		return nil
	}
	item := g.inventory[i]
	g.applyDelta(models.D().WithGold(item.SellValue))
	g.removeItemAt(i)
	g.logEvent(fmt.Sprintf("Sold %s for %d gold.", item.Name, item.SellValue), models.CategoryNeutral)
	return nil
}
