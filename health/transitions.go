package health

import "fmt"

// EffectKind is a host-side consequence of a condition transition.
type EffectKind uint8

const (
	EffectDie EffectKind = iota
	EffectExhaust
	EffectRecover
	EffectLowHealth
)

func (k EffectKind) String() string {
	switch k {
	case EffectDie:
		return "die"
	case EffectExhaust:
		return "exhaust"
	case EffectRecover:
		return "recover"
	case EffectLowHealth:
		return "low_health"
	}
	return fmt.Sprintf("effect(%d)", k)
}

// Effect is one transition result to be applied to the status and host.
type Effect struct {
	Kind   EffectKind
	Kerbal string
}

// State is everything a transition decision depends on.
type State struct {
	HP     float64
	PrevHP float64 // HP before this update's integration
	MaxHP  float64

	Exhausted bool

	ExhaustionStart float64 // Fractions of MaxHP
	ExhaustionEnd   float64
	LowHealthAlert  float64
	DeathEnabled    bool
}

// Transition decides which condition changes follow from st. Death is
// terminal and excludes every other effect; recovery is checked before
// exhaustion.
func Transition(st State) []Effect {
	if st.DeathEnabled && st.HP <= 0 {
		return []Effect{{Kind: EffectDie}}
	}

	var out []Effect
	switch {
	case st.Exhausted && st.HP >= st.ExhaustionEnd*st.MaxHP:
		out = append(out, Effect{Kind: EffectRecover})
	case !st.Exhausted && st.HP < st.ExhaustionStart*st.MaxHP:
		out = append(out, Effect{Kind: EffectExhaust})
	}

	alert := st.LowHealthAlert * st.MaxHP
	if st.PrevHP >= alert && st.HP < alert {
		out = append(out, Effect{Kind: EffectLowHealth})
	}
	return out
}
