// Package game is a headless reference host for the crew health engine: an
// ECS world of crew and vessels stepped on a fixed tick.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/crewhealth/components"
	"github.com/pthm-cable/crewhealth/config"
	"github.com/pthm-cable/crewhealth/events"
	"github.com/pthm-cable/crewhealth/factors"
	"github.com/pthm-cable/crewhealth/health"
	"github.com/pthm-cable/crewhealth/radiation"
	"github.com/pthm-cable/crewhealth/telemetry"
)

// Options configures a new game.
type Options struct {
	Config    *config.Config // nil uses config.Cfg()
	Scenario  *Scenario      // nil uses the embedded default
	Seed      int64          // 0 = time-based
	LogStats  bool
	OutputDir string // empty disables CSV output
	Logger    *slog.Logger

	// StatsCallback receives every flushed stats window.
	StatsCallback func(telemetry.WindowStats)
}

// Game holds the complete simulation state.
type Game struct {
	cfg   *config.Config
	world *ecs.World
	rng   *rand.Rand
	seed  int64
	runID uuid.UUID
	log   *slog.Logger

	// Entity mappers
	crewMapper   *ecs.Map2[components.Crew, components.Assignment]
	crewFilter   *ecs.Filter2[components.Crew, components.Assignment]
	vesselMapper *ecs.Map2[components.Vessel, components.Hull]

	// Individual component mappers for lookups
	crewMap   *ecs.Map1[components.Crew]
	assignMap *ecs.Map1[components.Assignment]
	vesselMap *ecs.Map1[components.Vessel]
	hullMap   *ecs.Map1[components.Hull]

	// Name indices
	crewIndex   map[string]ecs.Entity
	vesselIndex map[string]ecs.Entity

	// Health
	system   *radiation.System
	engine   *health.Engine
	events   *events.Manager
	statuses *health.List
	messages *MessageLog

	// Telemetry
	collector        *telemetry.Collector
	stepTimer        *telemetry.StepTimer
	lifetimeTracker  *telemetry.LifetimeTracker
	bookmarkDetector *telemetry.BookmarkDetector
	outputManager    *telemetry.OutputManager
	logStats         bool
	statsCallback    func(telemetry.WindowStats)

	// State
	tick      int32
	refreshes int
}

// NewGame creates a game from the default scenario and global config.
func NewGame() (*Game, error) {
	return NewGameWithOptions(Options{})
}

// NewGameWithOptions creates a game instance.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}
	scn := opts.Scenario
	if scn == nil {
		var err error
		if scn, err = DefaultScenario(); err != nil {
			return nil, err
		}
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	system, err := radiation.NewSystem(scn.Home, scn.Bodies)
	if err != nil {
		return nil, fmt.Errorf("building planetary system: %w", err)
	}

	world := ecs.NewWorld()
	g := &Game{
		cfg:   cfg,
		world: world,
		rng:   rand.New(rand.NewSource(seed)),
		seed:  seed,
		runID: uuid.New(),
		log:   logger,

		crewMapper:   ecs.NewMap2[components.Crew, components.Assignment](world),
		crewFilter:   ecs.NewFilter2[components.Crew, components.Assignment](world),
		vesselMapper: ecs.NewMap2[components.Vessel, components.Hull](world),
		crewMap:      ecs.NewMap1[components.Crew](world),
		assignMap:    ecs.NewMap1[components.Assignment](world),
		vesselMap:    ecs.NewMap1[components.Vessel](world),
		hullMap:      ecs.NewMap1[components.Hull](world),

		crewIndex:   make(map[string]ecs.Entity),
		vesselIndex: make(map[string]ecs.Entity),

		system:   system,
		statuses: health.NewList(),
		messages: NewMessageLog(logger, 256),

		logStats:      opts.LogStats,
		statsCallback: opts.StatsCallback,
	}

	g.engine = health.NewEngine(cfg, factors.Default(cfg), system, g, g.messages, logger)
	g.events = events.NewManager(cfg, g.rng, g.messages, logger, events.NewAccident(cfg))

	if err := g.populate(scn); err != nil {
		return nil, err
	}

	// Telemetry
	g.collector = telemetry.NewCollector(cfg.Derived.StatsWindowSecs, cfg.Time.TickSeconds, cfg.Time.DayLength)
	g.stepTimer = telemetry.NewStepTimer(cfg.Telemetry.PerfCollectorWindow)
	g.lifetimeTracker = telemetry.NewLifetimeTracker(cfg.Time.DayLength)
	g.bookmarkDetector = telemetry.NewBookmarkDetector(cfg.Telemetry.BookmarkHistorySize, cfg.Telemetry.DoseMilestone)

	g.outputManager, err = telemetry.NewOutputManager(opts.OutputDir, g.runID)
	if err != nil {
		return nil, fmt.Errorf("creating output manager: %w", err)
	}
	if err := g.outputManager.WriteConfig(cfg); err != nil {
		g.outputManager.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	g.statuses.Each(func(s *health.Status) {
		g.lifetimeTracker.Observe(s, 0, 0)
	})

	g.log.Info("game created",
		"run_id", g.runID,
		"seed", seed,
		"crew", g.statuses.Len(),
		"vessels", len(g.vesselIndex),
	)
	return g, nil
}

// populate creates vessel and crew entities and a status per kerbal.
func (g *Game) populate(scn *Scenario) error {
	for _, vs := range scn.Vessels {
		if _, ok := g.system.Body(vs.Body); !ok {
			return fmt.Errorf("vessel %q: unknown body %q", vs.Name, vs.Body)
		}
		v := components.Vessel{
			Name:      vs.Name,
			Loaded:    vs.Loaded,
			Location:  radiation.Location{Body: vs.Body, Altitude: vs.Altitude},
			Situation: vs.Situation,
			Connected: vs.Connected,
		}
		v.AtHome = g.atHome(v)
		hull := components.Hull{Parts: vs.Parts, Resources: vs.Resources}
		g.vesselIndex[vs.Name] = g.vesselMapper.NewEntity(&v, &hull)
	}

	for _, cs := range scn.Crew {
		crew := components.Crew{
			Name:   cs.Name,
			Level:  cs.Level,
			Trait:  cs.Trait,
			Type:   cs.Type,
			Roster: health.RosterAvailable,
			Part:   cs.Part,
			EVA:    cs.EVA,
		}
		var assign components.Assignment
		if cs.Vessel != "" {
			assign = components.Assignment{Vessel: g.vesselIndex[cs.Vessel], Aboard: true}
			crew.Roster = health.RosterAssigned
		}
		g.crewIndex[cs.Name] = g.crewMapper.NewEntity(&crew, &assign)

		s := g.engine.NewStatus(cs.Name, cs.Level)
		s.OnEVA = cs.EVA
		if err := g.statuses.Add(s); err != nil {
			return err
		}
	}
	return nil
}

// atHome reports whether a vessel is landed or splashed on the home body.
func (g *Game) atHome(v components.Vessel) bool {
	if v.Location.Body != g.system.Home {
		return false
	}
	return v.Situation == factors.SituationLanded ||
		v.Situation == factors.SituationSplashed ||
		v.Situation == factors.SituationPrelaunch
}

// Step advances the simulation by one tick.
func (g *Game) Step() {
	interval := g.cfg.Time.TickSeconds
	g.stepTimer.BeginStep(g.statuses.Len())

	g.stepTimer.Enter(telemetry.PhaseHealth)
	for _, e := range g.engine.UpdateAll(g.statuses, interval) {
		g.collector.RecordEffect(e)
		g.lifetimeTracker.RecordEffect(e)
	}

	g.stepTimer.Enter(telemetry.PhaseEvents)
	for _, o := range g.events.UpdateAll(g.statuses, interval) {
		g.collector.RecordAccident()
		g.lifetimeTracker.RecordAccident(o.Kerbal)
	}

	g.tick++

	g.stepTimer.Enter(telemetry.PhaseTelemetry)
	g.statuses.Each(func(s *health.Status) {
		g.lifetimeTracker.Observe(s, g.tick, interval)
	})
	g.flushTelemetry()

	g.stepTimer.EndStep()
}

// Run steps the simulation for the given number of host days.
func (g *Game) Run(days float64) {
	steps := int(days * g.cfg.Derived.TicksPerDay)
	for i := 0; i < steps; i++ {
		g.Step()
	}
}

// Unload flushes lifetime stats and closes output files.
func (g *Game) Unload() error {
	if err := g.outputManager.WriteLifetimes(g.lifetimeTracker); err != nil {
		g.log.Error("failed to write lifetimes", "error", err)
	}
	return g.outputManager.Close()
}

// Tick returns the current simulation tick.
func (g *Game) Tick() int32 {
	return g.tick
}

// SimDays returns the simulated time in host days.
func (g *Game) SimDays() float64 {
	return float64(g.tick) * g.cfg.Time.TickSeconds / g.cfg.Time.DayLength
}

// RunID identifies this run in telemetry output.
func (g *Game) RunID() uuid.UUID { return g.runID }

// Seed returns the RNG seed.
func (g *Game) Seed() int64 { return g.seed }

// Statuses returns the health list.
func (g *Game) Statuses() *health.List { return g.statuses }

// Engine returns the health engine.
func (g *Game) Engine() *health.Engine { return g.engine }

// Messages returns the notification log.
func (g *Game) Messages() *MessageLog { return g.messages }

// Lifetimes returns per-kerbal lifetime stats.
func (g *Game) Lifetimes() *telemetry.LifetimeTracker { return g.lifetimeTracker }
