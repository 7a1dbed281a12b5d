package models

import "time"

// Category classifies an entry of the event log.
type Category string

const (
	CategoryPositive Category = "positive"
	CategoryNegative Category = "negative"
	CategoryNeutral  Category = "neutral"
	CategoryRare     Category = "rare"
	CategoryCombat   Category = "combat"
)

// GameEvent is one narrated occurrence. Events are never modified once appended.
type GameEvent struct {
	ID        string    `yaml:"id" json:"id"`
	Message   string    `yaml:"message" json:"message"`
	Category  Category  `yaml:"category" json:"category"`
	Timestamp time.Time `yaml:"timestamp" json:"timestamp"`
}

// Weather is the ambient weather. Exactly one is always active.
type Weather string

const (
	WeatherClear Weather = "clear"
	WeatherRain  Weather = "rain"
	WeatherStorm Weather = "storm"
	WeatherMist  Weather = "mist"
)

// Weathers lists every weather in a stable order.
var Weathers = []Weather{WeatherClear, WeatherRain, WeatherStorm, WeatherMist}

// Craving is a wish the beast wants satisfied.
type Craving string

const (
	CravingNone    Craving = ""
	CravingFood    Craving = "food"
	CravingPlay    Craving = "play"
	CravingExplore Craving = "explore"
)

// Cravings lists the cravings that can be rolled.
var Cravings = []Craving{CravingFood, CravingPlay, CravingExplore}

// SecretKind is the kind of a hidden location found while exploring.
type SecretKind string

const (
	SecretRuins SecretKind = "ruins"
	SecretFairy SecretKind = "fairy"
	SecretCave  SecretKind = "cave"
)

// SecretKinds lists every secret location kind.
var SecretKinds = []SecretKind{SecretRuins, SecretFairy, SecretCave}

// SecretLocation is a time-boxed discovery.
type SecretLocation struct {
	Name      string     `yaml:"name" json:"name"`
	Kind      SecretKind `yaml:"kind" json:"kind"`
	ExpiresAt time.Time  `yaml:"expires_at" json:"expiresAt"`
}

// Conditions holds the independent condition slots of the beast.
type Conditions struct {
	Weather Weather         `yaml:"weather" json:"weather"`
	Craving Craving         `yaml:"craving" json:"craving"`
	Sick    bool            `yaml:"sick" json:"sick"`
	Secret  *SecretLocation `yaml:"secret,omitempty" json:"secret,omitempty"`
}

// DefaultConditions is the state of a fresh or freshly loaded session.
func DefaultConditions() Conditions {
	return Conditions{Weather: WeatherClear, Craving: CravingNone}
}

// PetKind is the family of a companion pet.
type PetKind string

const (
	PetSlime     PetKind = "slime"
	PetElemental PetKind = "elemental"
	PetMech      PetKind = "mech"
	PetBeast     PetKind = "beast"
)

// Pet is a companion. At most one is owned at a time.
type Pet struct {
	ID          string  `yaml:"id" json:"id"`
	Name        string  `yaml:"name" json:"name"`
	Kind        PetKind `yaml:"kind" json:"kind"`
	Description string  `yaml:"description" json:"description"`
}

// Adversary is what the image synthesis collaborator hands back for an encounter.
type Adversary struct {
	Name     string
	Portrait string
}

// Enemy is the opponent of a single encounter.
type Enemy struct {
	Name          string `json:"name"`
	Portrait      string `json:"portrait"`
	Level         int    `json:"level"`
	MaxHealth     int    `json:"maxHealth"`
	CurrentHealth int    `json:"currentHealth"`
	DamagePerHit  int    `json:"damagePerHit"`
	RewardExp     int    `json:"rewardExp"`
	RewardGold    int    `json:"rewardGold"`
}

// NewEnemy scales a fresh enemy to the given level.
func NewEnemy(adv Adversary, level int) Enemy {
	maxHealth := 60 + level*20
	return Enemy{
		Name:          adv.Name,
		Portrait:      adv.Portrait,
		Level:         level,
		MaxHealth:     maxHealth,
		CurrentHealth: maxHealth,
		DamagePerHit:  8 + level*2,
		RewardExp:     50 + level*10,
		RewardGold:    30 + level*5,
	}
}

// CombatState is the phase of the encounter state machine.
type CombatState string

const (
	CombatIdle      CombatState = "idle"
	CombatEncounter CombatState = "encounter"
	CombatFighting  CombatState = "fighting"
	CombatVictory   CombatState = "victory"
	CombatDefeat    CombatState = "defeat"
)

// Combat is a read-only view of the encounter.
type Combat struct {
	State CombatState `json:"state"`
	Enemy *Enemy      `json:"enemy,omitempty"`
	// Searching is true while the adversary is still being described.
	Searching bool `json:"searching"`
}

// TrainingState is the phase of the training mini-game.
type TrainingState string

const (
	TrainingInactive TrainingState = "inactive"
	TrainingIntro    TrainingState = "intro"
	TrainingActive   TrainingState = "active"
	TrainingVictory  TrainingState = "victory"
	TrainingDefeat   TrainingState = "defeat"
)

// Lanes is the number of lanes in the training arena.
const Lanes = 3

// Training is a read-only view of the training mini-game.
type Training struct {
	State         TrainingState `json:"state"`
	DummyHealth   int           `json:"dummyHealth"`
	PlayerLane    int           `json:"playerLane"`
	DangerLane    *int          `json:"dangerLane,omitempty"`
	WarningActive bool          `json:"warningActive"`
	DamageActive  bool          `json:"damageActive"`
}

// Stance is how the beast stands.
type Stance string

const (
	StanceBipedal   Stance = "bipedal"
	StanceQuadruped Stance = "quadruped"
)

// Element is one of the five elemental affinities.
type Element string

const (
	ElementGold  Element = "gold"
	ElementWood  Element = "wood"
	ElementWater Element = "water"
	ElementFire  Element = "fire"
	ElementEarth Element = "earth"
)

// MaxElements is how many elements a beast may carry.
const MaxElements = 2

// BeastProfile is the character description produced by the creation wizard.
type BeastProfile struct {
	Name       string    `yaml:"name" json:"name"`
	Stance     Stance    `yaml:"stance" json:"stance"`
	Head       string    `yaml:"head" json:"head"`
	FrontLimbs string    `yaml:"front_limbs" json:"frontLimbs"`
	Body       string    `yaml:"body" json:"body"`
	HindLimbs  string    `yaml:"hind_limbs" json:"hindLimbs"`
	Wings      string    `yaml:"wings,omitempty" json:"wings,omitempty"`
	Tail       string    `yaml:"tail" json:"tail"`
	Elements   []Element `yaml:"elements" json:"elements"`
	Purposes   []string  `yaml:"purposes" json:"purposes"`
}

// Clone returns a copy that shares no slices with p.
func (p BeastProfile) Clone() BeastProfile {
	p.Elements = append([]Element(nil), p.Elements...)
	p.Purposes = append([]string(nil), p.Purposes...)
	return p
}

// Snapshot is a self-contained saved session.
type Snapshot struct {
	ID        string          `yaml:"id" json:"id"`
	Beast     BeastProfile    `yaml:"beast" json:"beast"`
	Stats     Stats           `yaml:"stats" json:"stats"`
	Portrait  string          `yaml:"portrait" json:"portrait"`
	Inventory []InventoryItem `yaml:"inventory" json:"inventory"`
	Events    []GameEvent     `yaml:"events" json:"events"`
	Pet       *Pet            `yaml:"pet,omitempty" json:"pet,omitempty"`
	SavedAt   time.Time       `yaml:"saved_at" json:"savedAt"`
}

// Clone returns a deep copy of s.
func (s Snapshot) Clone() Snapshot {
	s.Beast = s.Beast.Clone()
	s.Inventory = CloneInventory(s.Inventory)
	s.Events = append([]GameEvent(nil), s.Events...)
	if s.Pet != nil {
		pet := *s.Pet
		s.Pet = &pet
	}
	return s
}
