package models

// ItemKind separates what an item can be used for.
type ItemKind string

const (
	ItemConsumable ItemKind = "consumable"
	ItemTreasure   ItemKind = "treasure"
	ItemJunk       ItemKind = "junk"
)

// ItemDefinition is a static catalog entry.
type ItemDefinition struct {
	ID          string   `yaml:"id" json:"id"`
	Name        string   `yaml:"name" json:"name"`
	Kind        ItemKind `yaml:"kind" json:"kind"`
	Description string   `yaml:"description" json:"description"`
	SellValue   int      `yaml:"sell_value" json:"sellValue"`
	// Effects never carry gold.
	Effects *Delta `yaml:"effects,omitempty" json:"effects,omitempty"`
}

// InventoryItem is one owned instance of a catalog item.
type InventoryItem struct {
	ItemDefinition `yaml:",inline"`
	InstanceID     string `yaml:"instance_id" json:"instanceId"`
}

// CloneInventory copies items so the result shares nothing with the input.
func CloneInventory(items []InventoryItem) []InventoryItem {
	if items == nil {
		return nil
	}
	out := make([]InventoryItem, len(items))
	for i, it := range items {
		out[i] = it
		if it.Effects != nil {
			out[i].Effects = it.Effects.clone()
		}
	}
	return out
}

func (d Delta) clone() *Delta {
	out := Delta{}
	if d.Health != nil {
		out = out.WithHealth(*d.Health)
	}
	if d.Mood != nil {
		out = out.WithMood(*d.Mood)
	}
	if d.Exp != nil {
		out = out.WithExp(*d.Exp)
	}
	if d.Gold != nil {
		out = out.WithGold(*d.Gold)
	}
	return &out
}

func effects(d Delta) *Delta { return &d }

// Catalog item ids referenced by game rules.
const (
	ItemAncientCoin   = "ancient_coin"
	ItemEnergyCrystal = "energy_crystal"
)

// Catalog is the item registry. It is never mutated.
var Catalog = []ItemDefinition{
	{ID: "mystic_berry", Name: "Mystic Berry", Kind: ItemConsumable, Description: "A glowing fruit that restores health.", SellValue: 10, Effects: effects(D().WithHealth(20).WithMood(5))},
	{ID: "star_water", Name: "Starlight Water", Kind: ItemConsumable, Description: "Cool spring water that mirrors the night sky.", SellValue: 15, Effects: effects(D().WithHealth(10).WithMood(15))},
	{ID: ItemEnergyCrystal, Name: "Energy Crystal", Kind: ItemConsumable, Description: "A crystal brimming with raw power.", SellValue: 50, Effects: effects(D().WithExp(50).WithMood(-10))},
	{ID: "golden_apple", Name: "Golden Apple", Kind: ItemConsumable, Description: "The fruit of legend. Restores everything.", SellValue: 100, Effects: effects(D().WithHealth(50).WithMood(50).WithExp(20))},
	{ID: "spicy_root", Name: "Spicy Root", Kind: ItemConsumable, Description: "Burns like fire, lifts the spirits.", SellValue: 20, Effects: effects(D().WithMood(30).WithHealth(-5))},
	{ID: ItemAncientCoin, Name: "Ancient Coin", Kind: ItemTreasure, Description: "A coin from a lost civilisation.", SellValue: 100},
	{ID: "gem_fragment", Name: "Gem Fragment", Kind: ItemTreasure, Description: "It sparkles in the light. Very valuable.", SellValue: 250},
	{ID: "dragon_scale", Name: "Dragon Scale", Kind: ItemTreasure, Description: "Warm to the touch and extremely rare.", SellValue: 500},
	{ID: "lost_crown", Name: "Lost Crown", Kind: ItemTreasure, Description: "Relic of an ancient kingdom.", SellValue: 1000},
	{ID: "shiny_rock", Name: "Shiny Rock", Kind: ItemJunk, Description: "Just a pretty rock. Worthless.", SellValue: 1},
	{ID: "tangled_roots", Name: "Tangled Roots", Kind: ItemJunk, Description: "A clump of dry roots.", SellValue: 0},
	{ID: "broken_pot", Name: "Broken Pot", Kind: ItemJunk, Description: "The sad remains of some pottery.", SellValue: 2},
}

// LookupItem finds a catalog item by id.
func LookupItem(id string) (ItemDefinition, bool) {
	for _, def := range Catalog {
		if def.ID == id {
			return def, true
		}
	}
	return ItemDefinition{}, false
}

// Pets are the companions that can be adopted.
var Pets = []Pet{
	{ID: "slime_blue", Name: "Jelly Slime", Kind: PetSlime, Description: "A translucent blue slime. Always sticky."},
	{ID: "fox_ember", Name: "Ember Fox", Kind: PetElemental, Description: "A little fox with a faint flame at the tip of its tail."},
	{ID: "owl_mech", Name: "Clockwork Owl", Kind: PetMech, Description: "A mechanical owl whose eyes turn like lenses."},
	{ID: "rock_buddy", Name: "Pebble Golem", Kind: PetElemental, Description: "A small living stone. Very quiet."},
	{ID: "ghost_wisp", Name: "Ghost Wisp", Kind: PetBeast, Description: "A floating white wisp that seems to have lost its way."},
}

// LookupPet finds an adoptable pet by id.
func LookupPet(id string) (Pet, bool) {
	for _, p := range Pets {
		if p.ID == id {
			return p, true
		}
	}
	return Pet{}, false
}

// SecretName is the display name of a secret location kind.
func SecretName(kind SecretKind) string {
	switch kind {
	case SecretRuins:
		return "Ancient Ruins"
	case SecretFairy:
		return "Fairy Ring"
	case SecretCave:
		return "Crystal Cave"
	}
	return string(kind)
}
