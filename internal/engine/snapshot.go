package engine

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jinyier/jinyier/internal/models"
)

// Save archives the current session at the front of the saved list.
func (g *Game) Save(ctx context.Context) (models.Snapshot, error) {
	if g.store == nil {
		return models.Snapshot{}, ErrNoStore
	}

	g.mu.Lock()
	if err := g.requireIdle(); err != nil {
		g.mu.Unlock()
		return models.Snapshot{}, err
	}
	snap := models.Snapshot{
		ID:        uuid.NewString(),
		Beast:     g.beast,
		Stats:     g.stats,
		Portrait:  g.portrait,
		Inventory: g.inventory,
		Events:    g.events.Events(),
		Pet:       g.pet,
		SavedAt:   g.sched.Now(),
	}.Clone()
	g.mu.Unlock()

	g.storeMu.Lock()
	defer g.storeMu.Unlock()
	saved, err := g.store.List(ctx)
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("list snapshots: %w", err)
	}
	saved = append([]models.Snapshot{snap}, saved...)
	if err := g.store.Write(ctx, saved); err != nil {
		g.log.Error("save snapshot", "id", snap.ID, "error", err)
		return models.Snapshot{}, fmt.Errorf("write snapshots: %w", err)
	}
	g.log.Info("snapshot saved", "id", snap.ID, "events", len(snap.Events))

	g.mu.Lock()
	g.logEvent("Your guardian beast's soul has been archived.", models.CategoryRare)
	g.mu.Unlock()
	return snap.Clone(), nil
}

// Snapshots lists the saved sessions, newest first.
func (g *Game) Snapshots(ctx context.Context) ([]models.Snapshot, error) {
	if g.store == nil {
		return nil, ErrNoStore
	}
	g.storeMu.Lock()
	defer g.storeMu.Unlock()
	saved, err := g.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	return saved, nil
}

// Load replaces the whole live session with a saved one. Whatever was going
// on, including an encounter or training, is abandoned.
func (g *Game) Load(ctx context.Context, id string) error {
	snap, err := g.findSnapshot(ctx, id)
	if err != nil {
		return err
	}
	g.Restore(snap)
	return nil
}

// Restore replaces the live session with snap.
func (g *Game) Restore(snap models.Snapshot) {
	snap = snap.Clone()

	g.mu.Lock()
	defer g.mu.Unlock()
	g.cancelAll()
	g.beast = snap.Beast
	g.portrait = snap.Portrait
	g.stats = snap.Stats
	g.inventory = snap.Inventory
	g.events.Replace(snap.Events)
	g.pet = snap.Pet
	g.cond = models.DefaultConditions()
	g.chat = nil
	g.clearCombat()
	g.training = newTrainingSession()
	g.mode = ModeSetup
	g.enterIdle()
	g.log.Info("snapshot loaded", "id", snap.ID, "name", snap.Beast.Name)
}

// Delete forgets one saved session. The live session is untouched.
func (g *Game) Delete(ctx context.Context, id string) error {
	if g.store == nil {
		return ErrNoStore
	}
	g.storeMu.Lock()
	defer g.storeMu.Unlock()
	saved, err := g.store.List(ctx)
	if err != nil {
		return fmt.Errorf("list snapshots: %w", err)
	}
	kept := make([]models.Snapshot, 0, len(saved))
	for _, s := range saved {
		if s.ID != id {
			kept = append(kept, s)
		}
	}
	if len(kept) == len(saved) {
		return ErrSnapshotNotFound
	}
	if err := g.store.Write(ctx, kept); err != nil {
		return fmt.Errorf("write snapshots: %w", err)
	}
	g.log.Info("snapshot deleted", "id", id)
	return nil
}

func (g *Game) findSnapshot(ctx context.Context, id string) (models.Snapshot, error) {
	saved, err := g.Snapshots(ctx)
	if err != nil {
		return models.Snapshot{}, err
	}
	for _, s := range saved {
		if s.ID == id {
			return s, nil
		}
	}
	return models.Snapshot{}, ErrSnapshotNotFound
}
