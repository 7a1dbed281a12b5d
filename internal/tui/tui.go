package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jinyier/jinyier/internal/engine"
	"github.com/jinyier/jinyier/internal/models"
)

type sessionState int

const (
	stateWizard sessionState = iota
	stateSummoning
	statePlaying
	stateInventory
	stateSaves
	statePets
	stateConfirm
	stateError
)

const refreshInterval = 200 * time.Millisecond

// Artist paints the beast once the wizard is done.
type Artist interface {
	RenderBeast(ctx context.Context, profile models.BeastProfile) (string, error)
}

type confirmation struct {
	prompt string
	yes    tea.Cmd
	onYes  sessionState
	onNo   sessionState
}

type model struct {
	state    sessionState
	game     *engine.Game
	artist   Artist
	wizard   wizard
	viewport viewport.Model
	printer  *message.Printer
	width    int
	height   int
	status   string
	cursor   int
	saves    []models.Snapshot
	confirm  confirmation
	logLen   int
	err      error
}

func NewModel(game *engine.Game, artist Artist) model {
	m := model{
		state:   stateWizard,
		game:    game,
		artist:  artist,
		wizard:  newWizard(),
		printer: message.NewPrinter(language.English),
	}
	if game.Mode() != engine.ModeSetup {
		m.state = statePlaying
	}
	return m
}

type tickMsg time.Time

type summonedMsg struct {
	profile  models.BeastProfile
	portrait string
	err      error
}

type actionDoneMsg struct {
	status string
	err    error
	// reload is set when the whole session was replaced.
	reload bool
}

type savesLoadedMsg struct {
	saves []models.Snapshot
	err   error
}

type errMsg struct {
	err error
}

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tick())
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeLog()
		m.refreshLog(true)

	case tickMsg:
		m.refreshLog(false)
		return m, tick()

	case summonedMsg:
		if msg.err != nil {
			m.state = stateWizard
			m.wizard.err = fmt.Errorf("the summoning failed: %w", msg.err)
			return m, nil
		}
		if err := m.game.Begin(msg.profile, msg.portrait); err != nil {
			m.err = err
			m.state = stateError
			return m, nil
		}
		m.state = statePlaying
		m.status = ""
		m.refreshLog(true)

	case actionDoneMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
		} else {
			m.status = msg.status
		}
		m.refreshLog(msg.reload && msg.err == nil)

	case savesLoadedMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
			m.state = statePlaying
			return m, nil
		}
		m.saves = msg.saves
		m.cursor = min(m.cursor, max(0, len(m.saves)-1))

	case errMsg:
		m.err = msg.err
		m.state = stateError
	}

	if m.state == stateWizard {
		var cmd tea.Cmd
		m.wizard.input, cmd = m.wizard.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.state {
	case stateWizard:
		return m.wizardKey(msg)
	case statePlaying:
		switch m.game.Mode() {
		case engine.ModeEncounter:
			return m.combatKey(msg)
		case engine.ModeTraining:
			return m.trainingKey(msg)
		default:
			return m.idleKey(msg)
		}
	case stateInventory:
		return m.inventoryKey(msg)
	case stateSaves:
		return m.savesKey(msg)
	case statePets:
		return m.petsKey(msg)
	case stateConfirm:
		switch msg.String() {
		case "y", "Y":
			m.state = m.confirm.onYes
			return m, m.confirm.yes
		case "n", "N", "esc":
			m.state = m.confirm.onNo
		}
	case stateError:
		if msg.String() == "esc" || msg.String() == "q" {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m model) wizardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		if !m.wizard.submit() {
			return m, nil
		}
		m.state = stateSummoning
		return m, m.summon(m.wizard.profile)
	case tea.KeyEsc:
		m.wizard.back()
		return m, nil
	}
	var cmd tea.Cmd
	m.wizard.input, cmd = m.wizard.input.Update(msg)
	return m, cmd
}

func (m model) idleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	g := m.game
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "f":
		return m, m.do("", g.Feed)
	case "r":
		return m, m.do("", g.Rest)
	case "m":
		return m, m.do("", g.Cure)
	case "c":
		return m, m.do("", func() error {
			_, err := g.Chat()
			return err
		})
	case "e":
		m.status = "Exploring..."
		return m, m.do("", func() error { return g.Explore(context.Background()) })
	case "g":
		return m, m.do("", g.EnterSecretLocation)
	case "b":
		m.status = "Looking for trouble..."
		return m, m.do("", func() error { return g.StartEncounter(context.Background()) })
	case "t":
		return m, m.do("", g.StartTraining)
	case "p":
		return m, m.do("", g.PlayWithPet)
	case "a":
		m.state = statePets
		m.cursor = 0
	case "i":
		m.state = stateInventory
		m.cursor = 0
	case "s":
		return m, m.do("Saved.", func() error {
			_, err := g.Save(context.Background())
			return err
		})
	case "l":
		m.state = stateSaves
		m.cursor = 0
		m.saves = nil
		return m, m.loadSaves()
	case "n":
		m.confirm = confirmation{
			prompt: fmt.Sprintf("Release %s and summon a new beast? (y/n)", g.Beast().Name),
			onYes:  stateWizard,
			onNo:   statePlaying,
			yes: func() tea.Msg {
				g.Reset()
				return actionDoneMsg{}
			},
		}
		m.wizard = newWizard()
		m.state = stateConfirm
		return m, nil
	}
	return m, nil
}

func (m model) combatKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	g := m.game
	combat := g.Combat()
	switch combat.State {
	case models.CombatVictory, models.CombatDefeat:
		if msg.String() == "enter" || msg.String() == " " {
			return m, m.do("", func() error { g.Acknowledge(); return nil })
		}
		return m, nil
	}
	switch msg.String() {
	case "a", " ":
		return m, m.do("", func() error { return g.CombatAction(engine.ActionAttack) })
	case "f", "esc":
		return m, m.do("", func() error { return g.CombatAction(engine.ActionFlee) })
	}
	return m, nil
}

func (m model) trainingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	g := m.game
	training := g.Training()
	key := msg.String()
	if key == "esc" || key == "q" {
		return m, m.do("", func() error { g.QuitTraining(); return nil })
	}
	switch training.State {
	case models.TrainingIntro:
		if key == "enter" || key == " " {
			return m, m.do("", func() error { g.BeginTraining(); return nil })
		}
	case models.TrainingActive:
		switch key {
		case "left", "h":
			return m, m.do("", func() error { return g.SetPlayerLane(max(0, training.PlayerLane-1)) })
		case "right", "l":
			return m, m.do("", func() error { return g.SetPlayerLane(min(models.Lanes-1, training.PlayerLane+1)) })
		case "1", "2", "3":
			lane := int(key[0] - '1')
			return m, m.do("", func() error { return g.SetPlayerLane(lane) })
		case " ", "a":
			return m, m.do("", func() error { g.TrainingAttack(); return nil })
		}
	case models.TrainingVictory, models.TrainingDefeat:
		if key == "enter" || key == " " {
			return m, m.do("", func() error { g.QuitTraining(); return nil })
		}
	}
	return m, nil
}

func (m model) inventoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	inv := m.game.Inventory()
	switch msg.String() {
	case "esc", "i", "q":
		m.state = statePlaying
	case "up", "k":
		m.cursor = max(0, m.cursor-1)
	case "down", "j":
		m.cursor = min(max(0, len(inv)-1), m.cursor+1)
	case "u", "enter":
		if m.cursor < len(inv) {
			id := inv[m.cursor].InstanceID
			m.cursor = max(0, min(m.cursor, len(inv)-2))
			return m, m.do("", func() error { return m.game.UseItem(id) })
		}
	case "s":
		if m.cursor < len(inv) {
			id := inv[m.cursor].InstanceID
			m.cursor = max(0, min(m.cursor, len(inv)-2))
			return m, m.do("", func() error { return m.game.SellItem(id) })
		}
	}
	return m, nil
}

func (m model) petsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.state = statePlaying
	case "up", "k":
		m.cursor = max(0, m.cursor-1)
	case "down", "j":
		m.cursor = min(len(models.Pets)-1, m.cursor+1)
	case "enter":
		pet := models.Pets[m.cursor]
		m.state = statePlaying
		return m, m.do("", func() error { return m.game.AdoptPet(pet) })
	}
	return m, nil
}

func (m model) savesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.state = statePlaying
	case "up", "k":
		m.cursor = max(0, m.cursor-1)
	case "down", "j":
		m.cursor = min(max(0, len(m.saves)-1), m.cursor+1)
	case "enter":
		if m.cursor < len(m.saves) {
			snap := m.saves[m.cursor]
			m.confirm = confirmation{
				prompt: fmt.Sprintf("Abandon the current session and load %s (Lv.%d)? (y/n)", snap.Beast.Name, snap.Stats.Level),
				onYes:  statePlaying,
				onNo:   stateSaves,
				yes: func() tea.Msg {
					err := m.game.Load(context.Background(), snap.ID)
					return actionDoneMsg{status: fmt.Sprintf("Welcome back, %s.", snap.Beast.Name), err: err, reload: true}
				},
			}
			m.state = stateConfirm
		}
	case "d":
		if m.cursor < len(m.saves) {
			snap := m.saves[m.cursor]
			m.confirm = confirmation{
				prompt: fmt.Sprintf("Delete the save of %s from %s forever? (y/n)", snap.Beast.Name, snap.SavedAt.Format(time.DateTime)),
				onYes:  stateSaves,
				onNo:   stateSaves,
				yes: tea.Sequence(
					m.do("Save deleted.", func() error { return m.game.Delete(context.Background(), snap.ID) }),
					m.loadSaves(),
				),
			}
			m.state = stateConfirm
		}
	}
	return m, nil
}

// do runs an engine action off the UI goroutine.
func (m model) do(status string, fn func() error) tea.Cmd {
	return func() tea.Msg {
		return actionDoneMsg{status: status, err: fn()}
	}
}

func (m model) summon(profile models.BeastProfile) tea.Cmd {
	return func() tea.Msg {
		portrait, err := m.artist.RenderBeast(context.Background(), profile)
		return summonedMsg{profile: profile, portrait: portrait, err: err}
	}
}

func (m model) loadSaves() tea.Cmd {
	return func() tea.Msg {
		saves, err := m.game.Snapshots(context.Background())
		return savesLoadedMsg{saves: saves, err: err}
	}
}

func (m *model) resizeLog() {
	m.viewport.Width = int(float64(m.width) * 0.55)
	m.viewport.Height = max(3, m.height-8)
}

// refreshLog re-renders the event log when it grew, or always when forced.
func (m *model) refreshLog(force bool) {
	events := m.game.Events()
	if !force && len(events) == m.logLen {
		return
	}
	m.logLen = len(events)
	m.viewport.SetContent(m.renderLog(events))
	m.viewport.GotoBottom()
}

func Run(game *engine.Game, artist Artist) error {
	p := tea.NewProgram(NewModel(game, artist), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
