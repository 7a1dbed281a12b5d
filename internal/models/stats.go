package models

// Stat bounds.
const (
	MaxStat = 100
	MinStat = 0
)

// Stats are the four core resources of the beast plus its level.
type Stats struct {
	Health int `yaml:"health" json:"health"`
	Mood   int `yaml:"mood" json:"mood"`
	Exp    int `yaml:"exp" json:"exp"`
	Level  int `yaml:"level" json:"level"`
	Gold   int `yaml:"gold" json:"gold"`
}

// InitialStats are the stats of a newly summoned beast.
func InitialStats() Stats {
	return Stats{Health: 100, Mood: 80, Exp: 0, Level: 1, Gold: 0}
}

// ExpToNext is the experience needed to leave the current level.
func (s Stats) ExpToNext() int {
	return s.Level * 100
}

// Delta is a partial change to Stats. Nil fields are left alone.
type Delta struct {
	Health *int `yaml:"health,omitempty" json:"health,omitempty"`
	Mood   *int `yaml:"mood,omitempty" json:"mood,omitempty"`
	Exp    *int `yaml:"exp,omitempty" json:"exp,omitempty"`
	Gold   *int `yaml:"gold,omitempty" json:"gold,omitempty"`
}

// D starts an empty delta: D().WithHealth(15).WithMood(10).
func D() Delta { return Delta{} }

func (d Delta) WithHealth(v int) Delta {
	d.Health = &v
	return d
}

func (d Delta) WithMood(v int) Delta {
	d.Mood = &v
	return d
}

func (d Delta) WithExp(v int) Delta {
	d.Exp = &v
	return d
}

func (d Delta) WithGold(v int) Delta {
	d.Gold = &v
	return d
}

// IsZero reports whether the delta changes nothing.
func (d Delta) IsZero() bool {
	return d.Health == nil && d.Mood == nil && d.Exp == nil && d.Gold == nil
}

// Apply adds d to s, clamps health and mood, floors gold and applies at most
// one level-up. It reports whether a level-up happened.
func (s *Stats) Apply(d Delta) (leveledUp bool) {
	if d.Health != nil {
		s.Health = clamp(s.Health + *d.Health)
	}
	if d.Mood != nil {
		s.Mood = clamp(s.Mood + *d.Mood)
	}
	if d.Gold != nil {
		s.Gold = max(0, s.Gold+*d.Gold)
	}
	if d.Exp == nil {
		return false
	}
	s.Exp = max(0, s.Exp+*d.Exp)
	if s.Level < 1 {
		s.Level = 1
	}
	// One step only, even if the remainder clears the next threshold too.
	if s.Exp >= s.ExpToNext() {
		s.Exp -= s.ExpToNext()
		s.Level++
		s.Health = MaxStat
		s.Mood = MaxStat
		return true
	}
	return false
}

func clamp(v int) int {
	return min(MaxStat, max(MinStat, v))
}
