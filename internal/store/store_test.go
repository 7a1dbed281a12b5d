package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/jinyier/jinyier/internal/models"
)

type snapshotStore interface {
	List(ctx context.Context) ([]models.Snapshot, error)
	Write(ctx context.Context, snapshots []models.Snapshot) error
}

func sampleSnapshot(id string) models.Snapshot {
	berry, _ := models.LookupItem("mystic_berry")
	coin, _ := models.LookupItem(models.ItemAncientCoin)
	return models.Snapshot{
		ID: id,
		Beast: models.BeastProfile{
			Name:     "Aurel",
			Stance:   models.StanceBipedal,
			Head:     "dragon",
			Tail:     "burning flame",
			Elements: []models.Element{models.ElementFire, models.ElementGold},
			Purposes: []string{"guard the valley"},
		},
		Stats:    models.Stats{Health: 71, Mood: 64, Exp: 35, Level: 3, Gold: 120},
		Portrait: "data:image/png;base64,AAAA",
		Inventory: []models.InventoryItem{
			{ItemDefinition: berry, InstanceID: "inst-1"},
			{ItemDefinition: berry, InstanceID: "inst-2"},
			{ItemDefinition: coin, InstanceID: "inst-3"},
		},
		Events: []models.GameEvent{
			{ID: "e1", Message: "Your guardian beast has descended into the world!", Category: models.CategoryRare, Timestamp: time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)},
			{ID: "e2", Message: "You attack for 19 damage.", Category: models.CategoryCombat, Timestamp: time.Date(2026, 1, 1, 9, 5, 0, 0, time.UTC)},
		},
		Pet:     &models.Pet{ID: "fox_ember", Name: "Ember Fox", Kind: models.PetElemental},
		SavedAt: time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC),
	}
}

func assertSameSnapshot(t *testing.T, want, got models.Snapshot) {
	t.Helper()
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.Beast, got.Beast)
	assert.Equal(t, want.Stats, got.Stats)
	assert.Equal(t, want.Portrait, got.Portrait)
	assert.Equal(t, want.Inventory, got.Inventory)
	assert.Equal(t, want.Pet, got.Pet)
	assert.True(t, want.SavedAt.Equal(got.SavedAt), "saved at %v, got %v", want.SavedAt, got.SavedAt)
	require.Len(t, got.Events, len(want.Events))
	for i := range want.Events {
		assert.Equal(t, want.Events[i].ID, got.Events[i].ID)
		assert.Equal(t, want.Events[i].Message, got.Events[i].Message)
		assert.Equal(t, want.Events[i].Category, got.Events[i].Category)
		assert.True(t, want.Events[i].Timestamp.Equal(got.Events[i].Timestamp))
	}
}

func exerciseStore(t *testing.T, s snapshotStore) {
	ctx := context.Background()

	empty, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	first, second := sampleSnapshot("a"), sampleSnapshot("b")
	second.Pet = nil
	second.Beast.Name = "Borin"
	require.NoError(t, s.Write(ctx, []models.Snapshot{second, first}))

	got, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assertSameSnapshot(t, second, got[0])
	assertSameSnapshot(t, first, got[1])

	require.NoError(t, s.Write(ctx, []models.Snapshot{first}))
	got, err = s.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].ID)
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemory())
}

func TestMemoryStoreCopiesOnWrite(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	snap := sampleSnapshot("a")
	require.NoError(t, m.Write(ctx, []models.Snapshot{snap}))

	snap.Stats.Gold = 0
	snap.Inventory[0].InstanceID = "mutated"

	got, err := m.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 120, got[0].Stats.Gold)
	assert.Equal(t, "inst-1", got[0].Inventory[0].InstanceID)
}

func TestFileStore(t *testing.T) {
	exerciseStore(t, NewFile(filepath.Join(t.TempDir(), "saves")))
}

func TestFileStoreRejectsNewerVersion(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, savesFile), []byte("version: 99\nsnapshots: []\n"), 0644))

	_, err := NewFile(dir).List(context.Background())
	assert.Error(t, err)
}

func TestSnapshotYAML(t *testing.T) {
	snap := sampleSnapshot("a")

	data, err := yaml.Marshal(snap)
	if err != nil {
		t.Fatalf("Failed to marshal snapshot: %v", err)
	}

	var snap2 models.Snapshot
	if err := yaml.Unmarshal(data, &snap2); err != nil {
		t.Fatalf("Failed to unmarshal snapshot: %v", err)
	}

	if snap2.Inventory[0].Name != "Mystic Berry" {
		t.Errorf("Expected item name %s, got %s", "Mystic Berry", snap2.Inventory[0].Name)
	}
	if snap2.Inventory[0].Effects == nil || *snap2.Inventory[0].Effects.Health != 20 {
		t.Errorf("Expected berry effects to survive the round trip, got %+v", snap2.Inventory[0].Effects)
	}
	if len(snap2.Events) != 2 {
		t.Errorf("Expected 2 events, got %d", len(snap2.Events))
	}
}

func TestSQLiteStore(t *testing.T) {
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "db", "beasts.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	exerciseStore(t, s)
}

func TestOpenSQLiteRequiresPath(t *testing.T) {
	_, err := OpenSQLite("  ")
	assert.Error(t, err)
}
