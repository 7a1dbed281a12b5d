package engine

import (
	"github.com/jinyier/jinyier/internal/models"
)

// Training tuning.
const (
	DummyHealth    = 100
	StartLane      = 1
	LaneHitDamage  = 10
	TrainingExp    = 150
	TrainingMood   = 20
	dummyBaseSlash = 20
)

type trainingSession struct {
	state   models.TrainingState
	dummy   int
	lane    int
	danger  *int
	warning bool
	damage  bool
	// phase is the one pending step of the warning/strike/recover loop.
	phase *task
}

func newTrainingSession() trainingSession {
	return trainingSession{state: models.TrainingInactive, dummy: DummyHealth, lane: StartLane}
}

// Training returns a view of the mini-game.
func (g *Game) Training() models.Training {
	g.mu.Lock()
	defer g.mu.Unlock()
	t := g.training
	view := models.Training{
		State:         t.state,
		DummyHealth:   t.dummy,
		PlayerLane:    t.lane,
		WarningActive: t.warning,
		DamageActive:  t.damage,
	}
	if t.danger != nil {
		lane := *t.danger
		view.DangerLane = &lane
	}
	return view
}

// StartTraining opens the training arena. A sick beast refuses.
func (g *Game) StartTraining() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.requireIdle(); err != nil {
		return err
	}
	if g.cond.Sick {
		g.logEvent("Your beast is too sick to train.", models.CategoryNegative)
		return nil
	}
	g.leaveIdle(ModeTraining)
	g.training = newTrainingSession()
	g.training.state = models.TrainingIntro
	return nil
}

// BeginTraining leaves the intro and starts the hazard loop.
func (g *Game) BeginTraining() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.mode != ModeTraining || g.training.state != models.TrainingIntro {
		return
	}
	g.training.state = models.TrainingActive
	g.scheduleWarning()
}

func (g *Game) scheduleWarning() {
	g.training.phase = g.schedule(g.timings.Warning, g.trainingWarn)
}

func (g *Game) trainingWarn() {
	if g.mode != ModeTraining || g.training.state != models.TrainingActive {
		return
	}
	lane := g.rng.IntN(models.Lanes)
	g.training.danger = &lane
	g.training.warning = true
	g.training.phase = g.schedule(g.timings.Strike, g.trainingStrike)
}

// trainingStrike resolves the hazard against the lane the player is in now.
func (g *Game) trainingStrike() {
	t := &g.training
	if g.mode != ModeTraining || t.state != models.TrainingActive || t.danger == nil {
		return
	}
	t.warning = false
	t.damage = true
	if t.lane == *t.danger {
		g.applyDelta(models.D().WithHealth(-LaneHitDamage))
		if g.stats.Health <= 0 {
			t.phase = nil
			t.state = models.TrainingDefeat
			t.damage = false
			t.danger = nil
			g.logEvent("Your beast collapsed during training...", models.CategoryNegative)
			return
		}
	}
	t.phase = g.schedule(g.timings.Recover, g.trainingRecover)
}

func (g *Game) trainingRecover() {
	t := &g.training
	t.damage = false
	t.danger = nil
	t.phase = nil
	if g.mode == ModeTraining && t.state == models.TrainingActive {
		g.scheduleWarning()
	}
}

// SetPlayerLane moves the beast between the arena lanes.
func (g *Game) SetPlayerLane(lane int) error {
	if lane < 0 || lane >= models.Lanes {
		return ErrInvalidLane
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.mode != ModeTraining {
		return nil
	}
	g.training.lane = lane
	return nil
}

// TrainingAttack strikes the training dummy.
func (g *Game) TrainingAttack() {
	g.mu.Lock()
	defer g.mu.Unlock()
	t := &g.training
	if g.mode != ModeTraining || t.state != models.TrainingActive {
		return
	}
	t.dummy -= dummyBaseSlash + g.stats.Level
	if t.dummy > 0 {
		return
	}
	t.dummy = 0
	t.phase.cancel()
	t.phase = nil
	t.warning = false
	t.damage = false
	t.danger = nil
	t.state = models.TrainingVictory
	g.applyDelta(models.D().WithExp(TrainingExp).WithMood(TrainingMood))
	g.logEvent("Training complete!", models.CategoryRare)
}

// QuitTraining leaves the arena at any phase. Pending hazards are dropped.
func (g *Game) QuitTraining() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.mode != ModeTraining {
		return
	}
	g.training.phase.cancel()
	g.training = newTrainingSession()
	g.enterIdle()
}
