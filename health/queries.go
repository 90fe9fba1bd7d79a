package health

import "math"

// BalanceHP is the HP at which recuperation and decay cancel the fixed daily
// change. It is 0 when decay is at least recuperation.
func (s *Status) BalanceHP() float64 {
	if s.LastDecay >= s.LastRecuperation {
		return 0
	}
	return (s.MaxHP()*s.LastRecuperation + s.LastChange*100) / (s.LastRecuperation - s.LastDecay)
}

// TimeToValue projects how long the current total rate takes to reach
// target, in days or seconds. It is NaN when the rate is zero or moves away
// from target.
func (s *Status) TimeToValue(target float64, inSeconds bool) float64 {
	if target == s.hp {
		return 0
	}
	rate := s.LastChangeTotal
	if rate == 0 {
		return math.NaN()
	}
	days := (target - s.hp) / rate
	if days < 0 {
		return math.NaN()
	}
	if inSeconds {
		return days * s.cfg.Time.DayLength
	}
	return days
}

// NextConditionHP is the HP threshold the current rate is heading for:
// MaxHP or the end of exhaustion when rising, the start of exhaustion or 0
// when falling. NaN when HP is steady.
func (s *Status) NextConditionHP() float64 {
	rate := s.LastChangeTotal
	h := s.cfg.Health
	switch {
	case rate > 0:
		if s.HasCondition(Exhausted) {
			return h.ExhaustionEnd * s.MaxHP()
		}
		return s.MaxHP()
	case rate < 0:
		start := h.ExhaustionStart * s.MaxHP()
		if !s.HasCondition(Exhausted) && s.hp > start {
			return start
		}
		return 0
	}
	return math.NaN()
}

// TimeToNextCondition returns days until NextConditionHP is reached.
func (s *Status) TimeToNextCondition() float64 {
	return s.TimeToValue(s.NextConditionHP(), false)
}
