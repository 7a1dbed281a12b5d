package store

import (
	"context"
	"sync"

	"github.com/jinyier/jinyier/internal/models"
)

// Memory keeps snapshots in process. Stored values are deep copies.
type Memory struct {
	mu        sync.Mutex
	snapshots []models.Snapshot
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) List(ctx context.Context) ([]models.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneAll(m.snapshots), nil
}

func (m *Memory) Write(ctx context.Context, snapshots []models.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshots = cloneAll(snapshots)
	return nil
}

func cloneAll(in []models.Snapshot) []models.Snapshot {
	out := make([]models.Snapshot, len(in))
	for i, s := range in {
		out[i] = s.Clone()
	}
	return out
}
