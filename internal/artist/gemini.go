package artist

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/jinyier/jinyier/internal/models"
)

// DefaultModel is the image model used when none is configured.
const DefaultModel = "gemini-2.5-flash-image"

var errNoImage = errors.New("no image returned from Gemini")

// Gemini paints portraits with a Gemini image model.
type Gemini struct {
	client *genai.Client
	model  *genai.GenerativeModel
	rng    Roller
	log    *slog.Logger
}

// NewGemini connects to Gemini. An empty modelName selects DefaultModel.
func NewGemini(ctx context.Context, apiKey, modelName string, r Roller, logger *slog.Logger) (*Gemini, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	if modelName == "" {
		modelName = DefaultModel
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Gemini{
		client: client,
		model:  client.GenerativeModel(modelName),
		rng:    &lockedRoller{r: r},
		log:    logger.With("model", modelName),
	}, nil
}

func (g *Gemini) Close() error {
	return g.client.Close()
}

// DescribeAdversary paints a monster scaled to level. A reply without an image
// means nothing was found and yields a nil adversary.
func (g *Gemini) DescribeAdversary(ctx context.Context, level int) (*models.Adversary, error) {
	prompt, err := adversaryPromptFor(level)
	if err != nil {
		return nil, err
	}
	parts, err := g.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	portrait := portraitFrom(parts)
	if portrait == "" {
		g.log.Warn("adversary reply had no image", "level", level)
		return nil, nil
	}
	name := parseName(textFrom(parts))
	if name == "" {
		name = EnemyName(g.rng)
	}
	return &models.Adversary{Name: name, Portrait: portrait}, nil
}

// RenderBeast paints the summoned beast.
func (g *Gemini) RenderBeast(ctx context.Context, profile models.BeastProfile) (string, error) {
	prompt, err := beastPromptFor(profile)
	if err != nil {
		return "", err
	}
	parts, err := g.generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	portrait := portraitFrom(parts)
	if portrait == "" {
		return "", errNoImage
	}
	return portrait, nil
}

func (g *Gemini) generate(ctx context.Context, prompt string) ([]genai.Part, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no content returned from Gemini")
	}
	return resp.Candidates[0].Content.Parts, nil
}

// portraitFrom turns the last inline image of a reply into a data URI.
func portraitFrom(parts []genai.Part) string {
	var portrait string
	for _, part := range parts {
		blob, ok := part.(genai.Blob)
		if !ok || len(blob.Data) == 0 {
			continue
		}
		mime := blob.MIMEType
		if mime == "" {
			mime = "image/png"
		}
		portrait = "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(blob.Data)
	}
	return portrait
}

func textFrom(parts []genai.Part) string {
	for _, part := range parts {
		if text, ok := part.(genai.Text); ok {
			return string(text)
		}
	}
	return ""
}
