package stats

import "math"

// Stat names as they appear in config weight vectors and activity targets.
const (
	Speed   = "speed"
	Stamina = "stamina"
	Accel   = "accel"
	Agility = "agility"
	Heart   = "heart"
	Focus   = "focus"
)

// Names lists all six stats in canonical order.
var Names = []string{Speed, Stamina, Accel, Agility, Heart, Focus}

// Block holds one value per stat. It is used for base stats (derived from
// token traits, may exceed the training cap), trained stats (bounded by
// PerStatCap and TotalBudget) and race-type weight vectors.
type Block struct {
	Speed   float64 `json:"speed" yaml:"speed"`
	Stamina float64 `json:"stamina" yaml:"stamina"`
	Accel   float64 `json:"accel" yaml:"accel"`
	Agility float64 `json:"agility" yaml:"agility"`
	Heart   float64 `json:"heart" yaml:"heart"`
	Focus   float64 `json:"focus" yaml:"focus"`
}

// Get returns the value for a stat name, 0 for unknown names.
func (b Block) Get(name string) float64 {
	switch name {
	case Speed:
		return b.Speed
	case Stamina:
		return b.Stamina
	case Accel:
		return b.Accel
	case Agility:
		return b.Agility
	case Heart:
		return b.Heart
	case Focus:
		return b.Focus
	}
	return 0
}

// Set assigns the value for a stat name. Unknown names are ignored.
func (b *Block) Set(name string, v float64) {
	switch name {
	case Speed:
		b.Speed = v
	case Stamina:
		b.Stamina = v
	case Accel:
		b.Accel = v
	case Agility:
		b.Agility = v
	case Heart:
		b.Heart = v
	case Focus:
		b.Focus = v
	}
}

// Total returns the sum of all six stats.
func (b Block) Total() float64 {
	return b.Speed + b.Stamina + b.Accel + b.Agility + b.Heart + b.Focus
}

// Add returns the element-wise sum of two blocks. Effective stats at race
// time are Add(base, trained).
func (b Block) Add(o Block) Block {
	return Block{
		Speed:   b.Speed + o.Speed,
		Stamina: b.Stamina + o.Stamina,
		Accel:   b.Accel + o.Accel,
		Agility: b.Agility + o.Agility,
		Heart:   b.Heart + o.Heart,
		Focus:   b.Focus + o.Focus,
	}
}

// IsKnown reports whether name is one of the six stats.
func IsKnown(name string) bool {
	for _, n := range Names {
		if n == name {
			return true
		}
	}
	return false
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
