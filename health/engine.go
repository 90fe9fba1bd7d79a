package health

import (
	"errors"
	"log/slog"

	"github.com/pthm-cable/crewhealth/config"
	"github.com/pthm-cable/crewhealth/equipment"
	"github.com/pthm-cable/crewhealth/factors"
	"github.com/pthm-cable/crewhealth/radiation"
)

// Engine updates statuses against a host. It reuses scratch accumulators
// between calls, so one Engine must not update two statuses concurrently.
type Engine struct {
	cfg      *config.Config
	catalog  *factors.Catalog
	system   *radiation.System
	host     Host
	notifier Notifier
	log      *slog.Logger

	channels *factors.Channels
}

// NewEngine wires an engine. A nil system disables cosmic radiation (equipment
// radioactivity still applies), a nil notifier drops messages and a nil
// logger falls back to slog.Default(). A nil catalog evaluates no factors.
func NewEngine(cfg *config.Config, catalog *factors.Catalog, system *radiation.System, host Host, notifier Notifier, logger *slog.Logger) *Engine {
	if catalog == nil {
		catalog, _ = factors.NewCatalog()
	}
	if notifier == nil {
		notifier = NotifierFunc(func(Message) {})
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		cfg:      cfg,
		catalog:  catalog,
		system:   system,
		host:     host,
		notifier: notifier,
		log:      logger,
		channels: factors.NewChannels(catalog),
	}
}

// Config returns the engine's configuration.
func (e *Engine) Config() *config.Config { return e.cfg }

// NewStatus creates a status bound to this engine's configuration.
func (e *Engine) NewStatus(name string, level int) *Status {
	return NewStatus(e.cfg, name, level)
}

// equipmentTotals is what a kerbal's equipment adds up to in one update.
type equipmentTotals struct {
	change float64
	recup  float64
	decay  float64
}

// crewContext is one update's resolved view of the host.
type crewContext struct {
	rec      CrewRecord
	sur      Surroundings
	assigned bool
}

func (e *Engine) resolve(s *Status) (crewContext, bool) {
	rec, ok := e.host.Crew(s.name)
	if !ok {
		e.log.Warn("crew record not found", "kerbal", s.name)
		return crewContext{}, false
	}
	sur, assigned := e.host.Surroundings(s.name)
	return crewContext{rec: rec, sur: sur, assigned: assigned}, true
}

// Update advances s by interval seconds and returns the transitions applied.
func (e *Engine) Update(s *Status, interval float64) []Effect {
	ctx, ok := e.resolve(s)
	if !ok {
		return nil
	}
	if s.IsDead() || ctx.rec.RosterStatus() == RosterDead {
		return nil
	}

	s.SetLevel(ctx.rec.Level())
	if s.OnEVA && (ctx.rec.Seated() || !ctx.assigned) {
		s.OnEVA = false
	}

	eq := e.gather(s, ctx)
	e.irradiate(s, ctx, interval)

	if s.Frozen() {
		return nil
	}

	change := e.changePerDay(s, ctx, eq)
	prev := s.HP()
	s.SetHP(prev + change/e.cfg.Time.DayLength*interval)

	h := e.cfg.Health
	effects := Transition(State{
		HP:              s.HP(),
		PrevHP:          prev,
		MaxHP:           s.MaxHP(),
		Exhausted:       s.HasCondition(Exhausted),
		ExhaustionStart: h.ExhaustionStart,
		ExhaustionEnd:   h.ExhaustionEnd,
		LowHealthAlert:  h.LowHealthAlert,
		DeathEnabled:    h.DeathEnabled,
	})
	for i := range effects {
		effects[i].Kerbal = s.name
	}
	e.apply(s, ctx.rec, effects)
	return effects
}

// UpdateAll updates every status in the list and returns all effects applied.
func (e *Engine) UpdateAll(l *List, interval float64) []Effect {
	var out []Effect
	l.Each(func(s *Status) {
		out = append(out, e.Update(s, interval)...)
	})
	return out
}

// HealthChangePerDay recomputes s's total HP/day change without integrating
// it. It returns 0 when the crew record cannot be found.
func (e *Engine) HealthChangePerDay(s *Status) float64 {
	ctx, ok := e.resolve(s)
	if !ok {
		return 0
	}
	eq := e.gather(s, ctx)
	return e.changePerDay(s, ctx, eq)
}

// gather collects equipment effects into s and the multiplier channels,
// then composes the channels.
func (e *Engine) gather(s *Status, ctx crewContext) equipmentTotals {
	e.channels.Reset()
	s.Shielding = 0
	s.PartsRadiation = 0

	var t equipmentTotals
	crew := 1
	if ctx.assigned {
		crew = len(ctx.sur.Crew)
		for _, eff := range equipment.Affecting(ctx.sur.Parts, s.name, crew) {
			share := eff.Share()
			t.change += eff.HPChangePerDay * share
			t.recup += eff.Recuperation * share
			t.decay += eff.Decay * share
			s.Shielding += eff.Shielding
			s.PartsRadiation += eff.Radioactivity
			if err := e.channels.Gather(eff.MultiplyFactor, eff.Multiplier, eff.CrewCap, eff.Affected); err != nil {
				e.log.Warn("ignoring equipment multiplier", "kerbal", s.name, "vessel", ctx.sur.Vessel, "err", err)
			}
		}
		s.Shielding += equipment.ResourceShielding(e.cfg.Radiation.ResourceShielding, ctx.sur.Resources)
	}
	e.channels.Compose(crew)

	s.LastRecuperation = t.recup
	s.LastDecay = t.decay
	return t
}

// irradiate refreshes radiation fields and accrues dose. Dose accrues even
// for frozen kerbals.
// TODO: confirm whether stasis should shield from dose; current behavior keeps accruing.
func (e *Engine) irradiate(s *Status, ctx crewContext, interval float64) {
	rc := &e.cfg.Radiation
	if !rc.Enabled {
		return
	}

	loc := radiation.Location{}
	capacity := 1
	if ctx.assigned {
		loc = ctx.sur.Location
		capacity = ctx.sur.Capacity
	} else if e.system != nil {
		loc = e.system.HomeSurface()
	}

	s.Radiation = 0
	if e.system != nil {
		rate, err := radiation.CosmicRate(rc, e.system, loc, e.cfg.Time.DayLength)
		if err != nil {
			e.log.Warn("cosmic radiation unavailable", "kerbal", s.name, "body", loc.Body, "err", err)
		} else {
			s.Radiation = rate
		}
	}

	s.Exposure = radiation.Exposure(s.Shielding, rc.ShieldingEffect, capacity)
	s.AddDose(radiation.DoseIncrement(s.Exposure*(s.PartsRadiation+s.Radiation), e.cfg.Time.DayLength, interval))
}

// changePerDay evaluates factors and sets LastChange and LastChangeTotal.
// Cachable factors are only re-evaluated when the kerbal is actively
// simulated; otherwise CachedChange is reused.
func (e *Engine) changePerDay(s *Status, ctx crewContext, eq equipmentTotals) float64 {
	subj := e.subject(s, ctx)
	if s.Factors == nil {
		s.Factors = make(map[string]float64, e.catalog.Len())
	}

	if !ctx.assigned || ctx.sur.Loaded {
		cached, err := e.catalog.Evaluate(subj, e.channels, true, s.Factors)
		if err != nil {
			e.logEvalError(s, err)
		} else {
			s.CachedChange = cached
		}
	}
	volatile, err := e.catalog.Evaluate(subj, e.channels, false, s.Factors)
	if err != nil {
		e.logEvalError(s, err)
	}

	s.LastChange = s.CachedChange + volatile + eq.change
	s.LastChangeTotal = s.LastChange +
		(s.MaxHP()-s.HP())*s.LastRecuperation/100 -
		s.HP()*s.LastDecay/100
	return s.LastChangeTotal
}

func (e *Engine) logEvalError(s *Status, err error) {
	if errors.Is(err, factors.ErrNotComposed) {
		e.log.Error("factor evaluation before compose", "kerbal", s.name)
		return
	}
	e.log.Warn("factor evaluation failed", "kerbal", s.name, "err", err)
}

func (e *Engine) subject(s *Status, ctx crewContext) factors.Subject {
	trait := ctx.rec.Trait()
	if s.trait != "" {
		trait = s.trait
	}
	subj := factors.Subject{
		Name:     s.name,
		Trait:    trait,
		Level:    s.level,
		Assigned: ctx.assigned,
		OnEVA:    s.OnEVA,
		Loner:    e.cfg.IsLoner(trait),
	}
	if ctx.assigned {
		subj.Crew = len(ctx.sur.Crew)
		subj.Capacity = ctx.sur.Capacity
		subj.Situation = ctx.sur.Situation
		subj.AtHome = ctx.sur.AtHome
		subj.Connected = ctx.sur.Connected
	}
	return subj
}
