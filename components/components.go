// Package components defines ECS components for the reference host.
package components

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/crewhealth/health"
)

// Crew is a roster entry. Every kerbal, assigned or not, has one.
type Crew struct {
	Name   string
	Level  int
	Trait  string
	Type   health.CrewType
	Roster health.RosterStatus
	Part   string // Seat part; empty when not seated
	EVA    bool
}

// Seated reports whether the kerbal occupies a seat.
func (c *Crew) Seated() bool {
	return c.Part != ""
}

// Assignment links a crew entity to the vessel it is aboard. Vessel is
// meaningless unless Aboard is set.
type Assignment struct {
	Vessel ecs.Entity
	Aboard bool
}
