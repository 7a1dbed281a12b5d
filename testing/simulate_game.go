package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"math/rand/v2"
	"os"
	"slices"
	"time"

	"github.com/jinyier/jinyier/internal/artist"
	"github.com/jinyier/jinyier/internal/config"
	"github.com/jinyier/jinyier/internal/engine"
	"github.com/jinyier/jinyier/internal/models"
	"github.com/jinyier/jinyier/internal/sched"
	"github.com/jinyier/jinyier/internal/store"
)

const (
	maxTurns = 40
	// turnGap is the game time that passes between two player decisions.
	turnGap = 15 * time.Second
	// maxRounds bounds a single fight or training session.
	maxRounds = 200
)

type describer interface {
	engine.AdversaryDescriber
	RenderBeast(ctx context.Context, profile models.BeastProfile) (string, error)
}

func main() {
	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	level, err := cfg.SlogLevel()
	if err != nil {
		log.Fatalf("Failed to read log level: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	rng := rand.New(rand.NewPCG(seed, 1))

	var painter describer = artist.NewSketcher(rand.New(rand.NewPCG(seed, 2)))
	if cfg.HasGemini() {
		gem, err := artist.NewGemini(ctx, cfg.GeminiAPIKey, cfg.ImageModel, rand.New(rand.NewPCG(seed, 2)), logger)
		if err != nil {
			log.Fatalf("Failed to create Gemini client: %v", err)
		}
		defer gem.Close()
		painter = gem
	}

	clock := sched.NewManual(time.Now())
	game := engine.New(engine.Options{
		Scheduler: clock,
		Roller:    rng,
		Describer: painter,
		Store:     store.NewMemory(),
		Logger:    logger,
	})
	timings := engine.DefaultTimings()

	// 1. Summon the beast
	fmt.Printf("--- Step 1: Summoning a beast (seed %d) ---\n", seed)
	profile := models.BeastProfile{
		Name:       "Aurel",
		Stance:     models.StanceQuadruped,
		Head:       "a dragon",
		FrontLimbs: "eagle talons",
		Body:       "a tiger",
		HindLimbs:  "deer legs",
		Wings:      "feathered wings",
		Tail:       "a phoenix plume",
		Elements:   []models.Element{models.ElementFire, models.ElementWood},
		Purposes:   []string{"guard the valley"},
	}
	portrait, err := painter.RenderBeast(ctx, profile)
	if err != nil {
		log.Fatalf("Failed to render beast: %v", err)
	}
	if err := game.Begin(profile, portrait); err != nil {
		log.Fatalf("Failed to begin: %v", err)
	}

	// 2. Play
	p := &player{game: game, clock: clock, rng: rng, timings: timings}
	printed := 0
	for turn := 1; turn <= maxTurns; turn++ {
		fmt.Printf("--- Turn %d ---\n", turn)
		action, err := p.act(ctx)
		fmt.Printf("Player Action: %s\n", action)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
		}
		clock.Advance(turnGap)

		events := game.Events()
		for _, e := range events[printed:] {
			fmt.Printf("[%s] %s\n", e.Category, e.Message)
		}
		printed = len(events)

		s := game.Stats()
		c := game.Conditions()
		fmt.Printf("Stats: Lv.%d Health=%d Mood=%d Exp=%d/%d Gold=%d Weather=%s Sick=%t Craving=%q Items=%d\n\n",
			s.Level, s.Health, s.Mood, s.Exp, s.ExpToNext(), s.Gold, c.Weather, c.Sick, c.Craving, len(game.Inventory()))
	}

	// 3. Archive the soul
	snap, err := game.Save(ctx)
	if err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	fmt.Printf("Saved %s at level %d with %d events.\n", snap.Beast.Name, snap.Stats.Level, len(snap.Events))
}

// player picks one action per turn from the beast's needs.
type player struct {
	game    *engine.Game
	clock   *sched.Manual
	rng     *rand.Rand
	timings engine.Timings
}

func (p *player) act(ctx context.Context) (string, error) {
	g := p.game
	s := g.Stats()
	c := g.Conditions()
	inv := g.Inventory()

	switch {
	case c.Sick && s.Gold >= engine.CureCost:
		return "cure", g.Cure()
	case s.Health < 40:
		if i := slices.IndexFunc(inv, healing); i >= 0 {
			return "use " + inv[i].Name, g.UseItem(inv[i].InstanceID)
		}
		return "rest", g.Rest()
	case c.Secret != nil:
		return "enter " + c.Secret.Name, g.EnterSecretLocation()
	case c.Craving == models.CravingFood && s.Gold >= engine.FeedCost:
		return "feed", g.Feed()
	case c.Craving == models.CravingPlay && g.Pet() != nil:
		return "play with pet", g.PlayWithPet()
	case g.Pet() == nil && s.Level >= 2:
		pet := models.Pets[p.rng.IntN(len(models.Pets))]
		return "adopt " + pet.Name, g.AdoptPet(pet)
	}
	if i := slices.IndexFunc(inv, sellable); i >= 0 {
		return "sell " + inv[i].Name, g.SellItem(inv[i].InstanceID)
	}
	if i := slices.IndexFunc(inv, func(it models.InventoryItem) bool { return it.Kind == models.ItemConsumable }); i >= 0 && s.Mood < 50 {
		return "use " + inv[i].Name, g.UseItem(inv[i].InstanceID)
	}

	switch roll := p.rng.IntN(10); {
	case roll < 2 && s.Health > 70 && !c.Sick:
		if err := g.StartTraining(); err != nil {
			return "train", err
		}
		p.train()
		return "train", nil
	case roll < 4 && s.Health > 60:
		if err := g.StartEncounter(ctx); err != nil {
			return "battle", err
		}
		p.fight()
		return "battle", nil
	case roll < 5:
		_, err := g.Chat()
		return "chat", err
	default:
		err := g.Explore(ctx)
		p.fight()
		return "explore", err
	}
}

// fight attacks until the encounter is decided. It does nothing outside one.
func (p *player) fight() {
	g := p.game
	for range maxRounds {
		if g.Mode() != engine.ModeEncounter {
			return
		}
		switch g.Combat().State {
		case models.CombatVictory, models.CombatDefeat:
			g.Acknowledge()
			return
		}
		if g.Stats().Health < 25 {
			g.CombatAction(engine.ActionFlee)
			return
		}
		g.CombatAction(engine.ActionAttack)
		p.clock.Advance(p.timings.Retaliation)
	}
}

// train dodges every warned lane and strikes in between.
func (p *player) train() {
	g := p.game
	g.BeginTraining()
	step := p.timings.Recover / 2
	for range maxRounds {
		t := g.Training()
		if t.State != models.TrainingActive {
			break
		}
		if t.WarningActive && t.DangerLane != nil && *t.DangerLane == t.PlayerLane {
			g.SetPlayerLane((t.PlayerLane + 1) % models.Lanes)
		} else {
			g.TrainingAttack()
		}
		p.clock.Advance(step)
	}
	g.QuitTraining()
}

func healing(it models.InventoryItem) bool {
	return it.Kind == models.ItemConsumable && it.Effects != nil && it.Effects.Health != nil && *it.Effects.Health > 0
}

func sellable(it models.InventoryItem) bool {
	return it.Kind == models.ItemTreasure || it.Kind == models.ItemJunk
}
