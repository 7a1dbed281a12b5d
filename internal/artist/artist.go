// Package artist draws the beast and the monsters it meets. Gemini paints real
// portraits; Sketcher is the offline stand-in.
package artist

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"sync"
	"text/template"

	"gopkg.in/yaml.v3"

	"github.com/jinyier/jinyier/internal/models"
)

//go:embed prompts/adversary.txt
var adversaryPrompt string

//go:embed prompts/beast.txt
var beastPrompt string

var (
	namePrefixes = []string{"Shadow", "Iron", "Venom", "Crystal", "Flame", "Dark", "Frenzied", "Frost", "Thunder"}
	nameSuffixes = []string{"Wolf", "Bear", "Serpent", "Golem", "Drake", "Spider", "Wraith", "Scorpion", "Tiger"}
)

// Roller picks random indexes. *rand.Rand satisfies it.
type Roller interface {
	IntN(n int) int
}

// lockedRoller makes a Roller safe to share between concurrent requests.
type lockedRoller struct {
	mu sync.Mutex
	r  Roller
}

func (l *lockedRoller) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.IntN(n)
}

// EnemyName draws a monster name from the prefix and suffix tables.
func EnemyName(r Roller) string {
	return namePrefixes[r.IntN(len(namePrefixes))] + " " + nameSuffixes[r.IntN(len(nameSuffixes))]
}

// Difficulty describes how threatening monsters look at a level.
func Difficulty(level int) string {
	switch {
	case level < 3:
		return "small and mischievous"
	case level < 6:
		return "dangerous and wild"
	default:
		return "legendary and terrifying"
	}
}

func renderPrompt(name, text string, data any) (string, error) {
	tmpl, err := template.New(name).Parse(text)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func adversaryPromptFor(level int) (string, error) {
	return renderPrompt("adversary", adversaryPrompt, struct{ Difficulty string }{Difficulty(level)})
}

func beastPromptFor(profile models.BeastProfile) (string, error) {
	if strings.EqualFold(profile.Wings, "none") {
		profile.Wings = ""
	}
	doc, err := yaml.Marshal(profile)
	if err != nil {
		return "", fmt.Errorf("encode profile: %w", err)
	}
	elements := make([]string, len(profile.Elements))
	for i, e := range profile.Elements {
		elements[i] = string(e)
	}
	data := struct {
		Profile  string
		Wings    string
		Elements string
		Purposes string
	}{
		Profile:  string(doc),
		Wings:    profile.Wings,
		Elements: strings.Join(elements, ", "),
		Purposes: strings.Join(profile.Purposes, ", "),
	}
	return renderPrompt("beast", beastPrompt, data)
}

// stripFence removes a surrounding markdown code fence from a model reply.
func stripFence(text string) string {
	clean := strings.TrimSpace(text)
	clean = strings.TrimPrefix(clean, "```yaml")
	clean = strings.TrimPrefix(clean, "```")
	clean = strings.TrimSuffix(clean, "```")
	return strings.TrimSpace(clean)
}

// parseName reads the monster name from a YAML reply. Anything unusable
// yields "".
func parseName(text string) string {
	var reply struct {
		Name string `yaml:"name"`
	}
	if err := yaml.Unmarshal([]byte(stripFence(text)), &reply); err != nil {
		return ""
	}
	name := strings.TrimSpace(reply.Name)
	if strings.ContainsAny(name, "<>\n") || len(name) > 40 {
		return ""
	}
	return name
}
