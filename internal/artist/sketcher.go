package artist

import (
	"context"
	"strings"

	"github.com/jinyier/jinyier/internal/models"
)

// SketchPrefix marks portraits drawn by the Sketcher.
const SketchPrefix = "sketch:"

// Sketcher works without a network connection. Its portraits are "sketch:"
// references the terminal renders as ASCII art.
type Sketcher struct {
	rng Roller
}

func NewSketcher(r Roller) *Sketcher {
	return &Sketcher{rng: &lockedRoller{r: r}}
}

func (s *Sketcher) DescribeAdversary(ctx context.Context, level int) (*models.Adversary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name := EnemyName(s.rng)
	return &models.Adversary{Name: name, Portrait: SketchPrefix + slug(name)}, nil
}

func (s *Sketcher) RenderBeast(ctx context.Context, profile models.BeastProfile) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return SketchPrefix + slug(profile.Name), nil
}

func slug(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), "-"))
}
