package main

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"slices"
	"sync"

	"github.com/pthm-cable/crewhealth/config"
	"github.com/pthm-cable/crewhealth/game"
	"github.com/pthm-cable/crewhealth/health"
)

// Mission is the vessel whose crew is scored and how long it flies.
type Mission struct {
	Vessel string
	Days   float64
}

// FitnessEvaluator runs headless missions and computes fitness.
type FitnessEvaluator struct {
	params     *ParamVector
	cfg        *config.Config
	scenario   *game.Scenario
	mission    Mission
	seeds      []int64
	costWeight float64

	mu          sync.Mutex
	lastQuality float64 // health score from most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator. cfg and scn are shared by
// concurrent runs and must not be modified afterwards.
func NewFitnessEvaluator(params *ParamVector, cfg *config.Config, scn *game.Scenario, mission Mission, seeds []int64, costWeight float64) (*FitnessEvaluator, error) {
	found := false
	for _, v := range scn.Vessels {
		if v.Name == mission.Vessel {
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("mission vessel %q not in scenario", mission.Vessel)
	}
	return &FitnessEvaluator{
		params:     params,
		cfg:        cfg,
		scenario:   scn,
		mission:    mission,
		seeds:      seeds,
		costWeight: costWeight,
	}, nil
}

// LastQuality returns the health score from the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastQuality
}

// Evaluate computes fitness for a raw parameter vector (lower = better):
// cost weighted by costWeight minus the mean crew health score over seeds.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	scores := make([]float64, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			score, err := fe.runMission(x, s)
			if err != nil {
				slog.Error("mission failed", "seed", s, "error", err)
				score = 0
			}
			scores[idx] = score
		}(i, seed)
	}
	wg.Wait()

	var total float64
	for _, s := range scores {
		total += s
	}
	quality := total / float64(len(scores))

	fe.mu.Lock()
	fe.lastQuality = quality
	fe.mu.Unlock()

	return fe.costWeight*fe.params.Cost(x) - quality
}

// runMission flies the mission once and returns the crew health score.
func (fe *FitnessEvaluator) runMission(x []float64, seed int64) (float64, error) {
	g, err := game.NewGameWithOptions(game.Options{
		Config:   fe.cfg,
		Scenario: fe.fitted(x),
		Seed:     seed,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err != nil {
		return 0, err
	}
	defer g.Unload()

	g.Run(fe.mission.Days)

	return healthScore(g, fe.missionCrew(), fe.mission.Days), nil
}

// fitted copies the scenario with the tuned part added to the mission vessel.
func (fe *FitnessEvaluator) fitted(x []float64) *game.Scenario {
	scn := *fe.scenario
	scn.Vessels = slices.Clone(fe.scenario.Vessels)
	for i := range scn.Vessels {
		v := &scn.Vessels[i]
		if v.Name == fe.mission.Vessel {
			v.Parts = append(slices.Clone(v.Parts), fe.params.Part(x))
		}
	}
	return &scn
}

// missionCrew lists the kerbals that started aboard the mission vessel.
func (fe *FitnessEvaluator) missionCrew() []string {
	var crew []string
	for _, c := range fe.scenario.Crew {
		if c.Vessel == fe.mission.Vessel {
			crew = append(crew, c.Name)
		}
	}
	return crew
}

// healthScore rates a crew in [0, 1]: mean lowest HP ratio, less the share
// of the mission spent exhausted. Dead kerbals score 0.
func healthScore(g *game.Game, crew []string, days float64) float64 {
	if len(crew) == 0 {
		return 0
	}
	var total float64
	for _, name := range crew {
		ls := g.Lifetimes().Get(name)
		s, ok := g.Statuses().Find(name)
		if ls == nil || !ok || s.IsDead() {
			continue
		}
		score := ls.MinHPRatio
		if days > 0 {
			score -= ls.DaysExhausted / days
		}
		if s.HasCondition(health.Exhausted) {
			score /= 2
		}
		total += math.Max(score, 0)
	}
	return total / float64(len(crew))
}
