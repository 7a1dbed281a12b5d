package tui

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/jinyier/jinyier/internal/models"
)

var errEmptyAnswer = errors.New("please give an answer")

type wizardStep struct {
	title       string
	prompt      string
	placeholder string
	apply       func(p *models.BeastProfile, value string) error
}

// text stores a required free-form answer.
func text(field func(p *models.BeastProfile) *string) func(*models.BeastProfile, string) error {
	return func(p *models.BeastProfile, value string) error {
		if value == "" {
			return errEmptyAnswer
		}
		*field(p) = value
		return nil
	}
}

var wizardSteps = []wizardStep{
	{"Name", "What is your guardian called?", "Aurel", text(func(p *models.BeastProfile) *string { return &p.Name })},
	{"Stance", "Does it walk on two legs or four? (bipedal / quadruped)", "quadruped", func(p *models.BeastProfile, value string) error {
		stance, err := parseStance(value)
		p.Stance = stance
		return err
	}},
	{"Head", "What does its head resemble?", "a dragon, a lion, an owl...", text(func(p *models.BeastProfile) *string { return &p.Head })},
	{"Front limbs", "And its front limbs?", "eagle talons, bear paws...", text(func(p *models.BeastProfile) *string { return &p.FrontLimbs })},
	{"Body", "What is its body like?", "a tiger, a serpent, a stag...", text(func(p *models.BeastProfile) *string { return &p.Body })},
	{"Hind limbs", "And its hind limbs?", "deer legs, lion haunches...", text(func(p *models.BeastProfile) *string { return &p.HindLimbs })},
	{"Wings", "Does it have wings? Leave empty for none.", "feathered wings, demon wings, none...", func(p *models.BeastProfile, value string) error {
		if strings.EqualFold(value, "none") {
			value = ""
		}
		p.Wings = value
		return nil
	}},
	{"Tail", "What kind of tail?", "a phoenix plume, a scorpion sting...", text(func(p *models.BeastProfile) *string { return &p.Tail })},
	{"Elements", "Choose one or two elements: gold, wood, water, fire, earth.", "fire, wood", func(p *models.BeastProfile, value string) error {
		elements, err := parseElements(value)
		p.Elements = elements
		return err
	}},
	{"Purpose", "Why was it born? Separate several purposes with ';'.", "guard the valley; bring good fortune", func(p *models.BeastProfile, value string) error {
		purposes := parsePurposes(value)
		if len(purposes) == 0 {
			return errEmptyAnswer
		}
		p.Purposes = purposes
		return nil
	}},
}

func parseStance(value string) (models.Stance, error) {
	switch strings.ToLower(value) {
	case "bipedal", "two", "2":
		return models.StanceBipedal, nil
	case "quadruped", "four", "4":
		return models.StanceQuadruped, nil
	}
	return "", fmt.Errorf("%q is not a stance; answer bipedal or quadruped", value)
}

var allElements = []models.Element{models.ElementGold, models.ElementWood, models.ElementWater, models.ElementFire, models.ElementEarth}

func parseElements(value string) ([]models.Element, error) {
	fields := strings.FieldsFunc(strings.ToLower(value), func(r rune) bool { return r == ',' || r == ' ' })
	var out []models.Element
	for _, f := range fields {
		e := models.Element(f)
		if !slices.Contains(allElements, e) {
			return nil, fmt.Errorf("unknown element %q", f)
		}
		if !slices.Contains(out, e) {
			out = append(out, e)
		}
	}
	if len(out) == 0 || len(out) > models.MaxElements {
		return nil, fmt.Errorf("choose one or %d elements", models.MaxElements)
	}
	return out, nil
}

func parsePurposes(value string) []string {
	var out []string
	for _, p := range strings.Split(value, ";") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// wizard walks the player through describing their beast.
type wizard struct {
	step    int
	profile models.BeastProfile
	input   textinput.Model
	err     error
}

func newWizard() wizard {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 80
	ti.Width = 50
	w := wizard{input: ti}
	w.prepare()
	return w
}

func (w *wizard) prepare() {
	w.input.Reset()
	w.input.Placeholder = wizardSteps[w.step].placeholder
}

func (w *wizard) current() wizardStep {
	return wizardSteps[w.step]
}

// submit applies the typed answer and reports whether the profile is complete.
func (w *wizard) submit() bool {
	value := strings.TrimSpace(w.input.Value())
	if err := w.current().apply(&w.profile, value); err != nil {
		w.err = err
		return false
	}
	w.err = nil
	if w.step == len(wizardSteps)-1 {
		return true
	}
	w.step++
	w.prepare()
	return false
}

func (w *wizard) back() {
	if w.step == 0 {
		return
	}
	w.err = nil
	w.step--
	w.prepare()
}
