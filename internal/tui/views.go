package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jinyier/jinyier/internal/artist"
	"github.com/jinyier/jinyier/internal/engine"
	"github.com/jinyier/jinyier/internal/models"
)

var (
	gameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	stateStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#3C3C3C")).
			PaddingLeft(2).
			Foreground(lipgloss.Color("#AAAAAA"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true).
			Underline(true)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EEEEEE")).
			Background(lipgloss.Color("#5F5F87")).
			Bold(true).
			PaddingLeft(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5F5F"))

	bubbleStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#87AFFF")).
			Padding(0, 1)

	portraitStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("#FFA500")).
			Padding(0, 1).
			Align(lipgloss.Center)

	categoryStyles = map[models.Category]lipgloss.Style{
		models.CategoryPositive: lipgloss.NewStyle().Foreground(lipgloss.Color("#87D787")),
		models.CategoryNegative: lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F5F")),
		models.CategoryNeutral:  lipgloss.NewStyle().Foreground(lipgloss.Color("#BCBCBC")),
		models.CategoryRare:     lipgloss.NewStyle().Foreground(lipgloss.Color("#D7AFFF")).Bold(true),
		models.CategoryCombat:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FFAF5F")),
	}
)

func (m model) View() string {
	var s string

	switch m.state {
	case stateWizard:
		s = m.renderWizard()

	case stateSummoning:
		s = fmt.Sprintf("\n  Summoning %s... please wait.\n", m.wizard.profile.Name)

	case statePlaying:
		s = m.renderPlaying()

	case stateInventory:
		s = m.renderInventory()

	case statePets:
		s = m.renderPets()

	case stateSaves:
		s = m.renderSaves()

	case stateConfirm:
		s = "\n  " + m.confirm.prompt + "\n"

	case stateError:
		s = fmt.Sprintf("\n  Error: %v\n\nPress Esc to quit.", m.err)
	}

	return "\n" + s + "\n"
}

func (m model) renderWizard() string {
	step := m.wizard.current()
	header := titleStyle.Render(fmt.Sprintf("SUMMON A GUARDIAN BEAST (%d/%d): %s", m.wizard.step+1, len(wizardSteps), strings.ToUpper(step.title)))
	lines := []string{header, "", step.prompt, "", m.wizard.input.View()}
	if m.wizard.err != nil {
		lines = append(lines, "", errorStyle.Render(m.wizard.err.Error()))
	}
	lines = append(lines, "", helpStyle.Render("Enter to continue, Esc to go back, Ctrl+C to quit."))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m model) renderPlaying() string {
	var main string
	switch m.game.Mode() {
	case engine.ModeEncounter:
		main = m.renderEncounter()
	case engine.ModeTraining:
		main = m.renderTraining()
	default:
		main = m.viewport.View()
	}

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, main, m.renderState())

	status := ""
	if m.status != "" {
		status = "\n" + gameStyle.Render(m.status)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		mainView,
		status,
		"\n"+helpStyle.Render(m.helpLine()),
	)
}

func (m model) helpLine() string {
	switch m.game.Mode() {
	case engine.ModeEncounter:
		switch m.game.Combat().State {
		case models.CombatVictory, models.CombatDefeat:
			return "Enter: continue"
		}
		return "a: attack  f: flee"
	case engine.ModeTraining:
		switch m.game.Training().State {
		case models.TrainingIntro:
			return "Enter: begin  Esc: leave"
		case models.TrainingActive:
			return "left/right or 1-3: move  space: strike  Esc: leave"
		}
		return "Enter: leave the arena"
	}
	return "f: feed  c: chat  r: rest  m: medicine  e: explore  g: enter secret  b: battle  t: train\n" +
		"i: inventory  a: adopt  p: play with pet  s: save  l: load  n: new beast  q: quit"
}

// renderState is the side panel: portrait, stats and conditions.
func (m model) renderState() string {
	beast := m.game.Beast()
	stats := m.game.Stats()
	cond := m.game.Conditions()
	width := max(20, int(float64(m.width)*0.35))

	var b strings.Builder
	b.WriteString(renderPortrait(m.game.Portrait(), beast.Name) + "\n")
	if line, ok := m.game.ChatBubble(); ok {
		b.WriteString(bubbleStyle.Width(width-4).Render(line) + "\n")
	}

	b.WriteString("\n" + titleStyle.Render("STATS") + "\n")
	fmt.Fprintf(&b, "Level %d %s\n", stats.Level, elementList(beast.Elements))
	fmt.Fprintf(&b, "Health %s %3d\n", bar(stats.Health, models.MaxStat, 12), stats.Health)
	fmt.Fprintf(&b, "Mood   %s %3d\n", bar(stats.Mood, models.MaxStat, 12), stats.Mood)
	fmt.Fprintf(&b, "Exp    %s %s/%s\n", bar(stats.Exp, stats.ExpToNext(), 12), m.number(stats.Exp), m.number(stats.ExpToNext()))
	fmt.Fprintf(&b, "Gold   %s\n", m.number(stats.Gold))

	b.WriteString("\n" + titleStyle.Render("CONDITIONS") + "\n")
	fmt.Fprintf(&b, "Weather: %s\n", cond.Weather)
	if cond.Sick {
		b.WriteString(categoryStyles[models.CategoryNegative].Render("Sick") + "\n")
	}
	if cond.Craving != models.CravingNone {
		fmt.Fprintf(&b, "Craving: %s\n", cond.Craving)
	}
	if cond.Secret != nil {
		fmt.Fprintf(&b, "Secret: %s (until %s)\n", cond.Secret.Name, cond.Secret.ExpiresAt.Format("15:04:05"))
	}
	if pet := m.game.Pet(); pet != nil {
		fmt.Fprintf(&b, "Companion: %s\n", pet.Name)
	}

	return stateStyle.Width(width).Height(m.viewport.Height).Render(b.String())
}

func (m model) renderEncounter() string {
	combat := m.game.Combat()
	width := m.viewport.Width
	if combat.Searching || combat.Enemy == nil {
		return gameStyle.Width(width).Render("Searching the wilds for an opponent...")
	}
	enemy := combat.Enemy
	var b strings.Builder
	b.WriteString(titleStyle.Render(strings.ToUpper(enemy.Name)) + fmt.Sprintf("  Lv.%d\n", enemy.Level))
	b.WriteString(renderPortrait(enemy.Portrait, enemy.Name) + "\n")
	fmt.Fprintf(&b, "HP %s %d/%d\n\n", bar(enemy.CurrentHealth, enemy.MaxHealth, 20), enemy.CurrentHealth, enemy.MaxHealth)

	switch combat.State {
	case models.CombatVictory:
		b.WriteString(categoryStyles[models.CategoryPositive].Render(
			fmt.Sprintf("Victory! +%s exp, +%s gold", m.number(enemy.RewardExp), m.number(enemy.RewardGold))) + "\n")
	case models.CombatDefeat:
		b.WriteString(categoryStyles[models.CategoryNegative].Render("Your beast collapsed...") + "\n")
	case models.CombatFighting:
		b.WriteString(helpStyle.Render("The enemy prepares to strike back...") + "\n")
	}
	b.WriteString("\n" + m.tail(6))
	return gameStyle.Width(width).Render(b.String())
}

func (m model) renderTraining() string {
	t := m.game.Training()
	width := m.viewport.Width
	var b strings.Builder
	b.WriteString(titleStyle.Render("TRAINING ARENA") + "\n\n")

	switch t.State {
	case models.TrainingIntro:
		b.WriteString("Dodge the dummy's slashes by changing lanes and strike back when it is safe.\n")
	case models.TrainingVictory:
		b.WriteString(categoryStyles[models.CategoryPositive].Render("The dummy breaks apart. Training complete!") + "\n")
	case models.TrainingDefeat:
		b.WriteString(categoryStyles[models.CategoryNegative].Render("Your beast is exhausted.") + "\n")
	default:
		fmt.Fprintf(&b, "Dummy %s %d\n\n", bar(t.DummyHealth, engine.DummyHealth, 20), t.DummyHealth)
		b.WriteString(renderLanes(t) + "\n")
	}
	b.WriteString("\n" + m.tail(4))
	return gameStyle.Width(width).Render(b.String())
}

// renderLanes draws one cell per lane with the hazard and the beast.
func renderLanes(t models.Training) string {
	cells := make([]string, models.Lanes)
	for lane := range models.Lanes {
		mark := "   "
		if t.DangerLane != nil && *t.DangerLane == lane {
			switch {
			case t.DamageActive:
				mark = "XXX"
			case t.WarningActive:
				mark = "!!!"
			}
		}
		beast := "     "
		if t.PlayerLane == lane {
			beast = " (@) "
		}
		cells[lane] = fmt.Sprintf("[%s]\n%s", mark, beast)
	}
	cols := make([]string, len(cells))
	for i, c := range cells {
		cols[i] = lipgloss.NewStyle().Width(7).Align(lipgloss.Center).Render(c)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

func (m model) renderInventory() string {
	items := m.game.Inventory()
	var b strings.Builder
	b.WriteString(titleStyle.Render("INVENTORY") + fmt.Sprintf("  Gold: %s\n\n", m.number(m.game.Stats().Gold)))
	if len(items) == 0 {
		b.WriteString("(empty)\n")
	}
	for i, it := range items {
		line := fmt.Sprintf("%-16s %-10s %s g", it.Name, it.Kind, m.number(it.SellValue))
		if i == m.cursor {
			b.WriteString(selectedStyle.Render(line) + "\n")
			b.WriteString(helpStyle.Render("  "+it.Description) + "\n")
			continue
		}
		b.WriteString("  " + line + "\n")
	}
	if m.status != "" {
		b.WriteString("\n" + gameStyle.Render(m.status) + "\n")
	}
	b.WriteString("\n" + helpStyle.Render("j/k: move  u: use  s: sell  Esc: back"))
	return b.String()
}

func (m model) renderPets() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("ADOPT A COMPANION") + "\n\n")
	for i, pet := range models.Pets {
		line := fmt.Sprintf("%-14s %s", pet.Name, pet.Kind)
		if i == m.cursor {
			b.WriteString(selectedStyle.Render(line) + "\n")
			b.WriteString(helpStyle.Render("  "+pet.Description) + "\n")
			continue
		}
		b.WriteString("  " + line + "\n")
	}
	b.WriteString("\n" + helpStyle.Render("j/k: move  Enter: adopt  Esc: back"))
	return b.String()
}

func (m model) renderSaves() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("SAVED BEASTS") + "\n\n")
	if m.saves == nil {
		b.WriteString("Loading...\n")
	} else if len(m.saves) == 0 {
		b.WriteString("(no saves yet)\n")
	}
	for i, snap := range m.saves {
		line := fmt.Sprintf("%-16s Lv.%-3d %s gold  %s", snap.Beast.Name, snap.Stats.Level, m.number(snap.Stats.Gold), snap.SavedAt.Local().Format("2006-01-02 15:04"))
		if i == m.cursor {
			b.WriteString(selectedStyle.Render(line) + "\n")
			continue
		}
		b.WriteString("  " + line + "\n")
	}
	if m.status != "" {
		b.WriteString("\n" + gameStyle.Render(m.status) + "\n")
	}
	b.WriteString("\n" + helpStyle.Render("j/k: move  Enter: load  d: delete  Esc: back"))
	return b.String()
}

func (m model) renderLog(events []models.GameEvent) string {
	var b strings.Builder
	for _, e := range events {
		style, ok := categoryStyles[e.Category]
		if !ok {
			style = gameStyle
		}
		line := helpStyle.Render(e.Timestamp.Local().Format("15:04:05")) + " " + style.Render(e.Message)
		b.WriteString(lipgloss.NewStyle().Width(m.viewport.Width).Render(line) + "\n")
	}
	return b.String()
}

// tail renders the newest n log lines.
func (m model) tail(n int) string {
	events := m.game.Events()
	if len(events) > n {
		events = events[len(events)-n:]
	}
	return m.renderLog(events)
}

// number groups digits the way the player's locale does.
func (m model) number(n int) string {
	return m.printer.Sprintf("%d", n)
}

func bar(value, total, width int) string {
	if total <= 0 {
		return strings.Repeat("░", width)
	}
	filled := min(width, max(0, value*width/total))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func elementList(elements []models.Element) string {
	if len(elements) == 0 {
		return ""
	}
	names := make([]string, len(elements))
	for i, e := range elements {
		names[i] = string(e)
	}
	return "(" + strings.Join(names, "/") + ")"
}

// renderPortrait shows sketches as a small frame and real images as a note.
func renderPortrait(portrait, name string) string {
	switch {
	case portrait == "":
		return portraitStyle.Render("?")
	case strings.HasPrefix(portrait, artist.SketchPrefix):
		return portraitStyle.Render(fmt.Sprintf(" /\\_/\\ \n( o.o )\n > ^ < \n%s", name))
	case strings.HasPrefix(portrait, "data:"):
		mime, _, _ := strings.Cut(strings.TrimPrefix(portrait, "data:"), ";")
		return portraitStyle.Render(fmt.Sprintf("%s\n[%s, %d KB]", name, mime, len(portrait)*3/4/1024))
	}
	return portraitStyle.Render(name)
}
