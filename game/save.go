package game

import (
	"fmt"
	"sort"

	"github.com/pthm-cable/crewhealth/health"
	"github.com/pthm-cable/crewhealth/persist"
)

// Save writes every kerbal's health status to path.
func (g *Game) Save(path string) error {
	if err := persist.WriteFile(path, g.statuses.Save()); err != nil {
		return fmt.Errorf("saving health: %w", err)
	}
	g.log.Info("health saved", "path", path, "kerbals", g.statuses.Len())
	return nil
}

// Load replaces the health list with one saved by Save. Statuses without a
// roster entry are kept but ignored by the engine; roster entries missing
// from the save get a fresh status. Roster entries are brought
// in line with the loaded conditions: dead kerbals are marked dead and
// exhausted crew with a saved trait are demoted.
func (g *Game) Load(path string) error {
	root, err := persist.ReadFile(path)
	if err != nil {
		return fmt.Errorf("loading health: %w", err)
	}
	l, err := health.LoadList(g.cfg, root)
	if err != nil {
		return fmt.Errorf("loading health: %w", err)
	}

	l.Each(func(s *health.Status) {
		rec, ok := g.Crew(s.Name())
		if !ok {
			g.log.Warn("loaded status has no roster entry", "kerbal", s.Name())
			return
		}
		switch {
		case s.IsDead():
			rec.Unseat()
			rec.SetRosterStatus(health.RosterDead)
		case s.HasCondition(health.Exhausted) && rec.Type() == health.TypeCrew:
			if s.Trait() == "" {
				g.log.Warn("exhausted kerbal saved without a trait, keeping role", "kerbal", s.Name())
				return
			}
			rec.SetType(health.TypeTourist)
			rec.SetTrait(health.TouristTrait)
		}
	})
	g.RefreshCrew()

	// Kerbals hired after the save start fresh
	names := make([]string, 0, len(g.crewIndex))
	for name := range g.crewIndex {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if _, ok := l.Find(name); ok {
			continue
		}
		c := g.crewMap.Get(g.crewIndex[name])
		if err := l.Add(g.engine.NewStatus(name, c.Level)); err != nil {
			return err
		}
	}

	g.statuses = l
	g.log.Info("health loaded", "path", path, "kerbals", l.Len())
	return nil
}
