package game

import (
	"fmt"
	"io"
	"math"

	"github.com/pthm-cable/crewhealth/health"
)

// logWriter is the destination for report output.
var logWriter io.Writer

// SetLogWriter sets the report output destination.
func SetLogWriter(w io.Writer) {
	logWriter = w
}

// Logf writes a formatted report line.
func Logf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if logWriter != nil {
		fmt.Fprintln(logWriter, msg)
	} else {
		fmt.Println(msg)
	}
}

// LogRoster writes a per-kerbal health report.
func (g *Game) LogRoster() {
	Logf("=== Roster @ day %.2f (tick %d) ===", g.SimDays(), g.tick)
	Logf("  %-20s %-10s %7s %7s %8s %10s  %s", "kerbal", "vessel", "hp", "max", "hp/day", "next", "conditions")

	g.statuses.Each(func(s *health.Status) {
		vessel := "-"
		if sur, ok := g.Surroundings(s.Name()); ok {
			vessel = sur.Vessel
		}

		next := "-"
		if !s.IsDead() {
			if t := s.TimeToNextCondition(); !math.IsNaN(t) {
				next = fmt.Sprintf("%.1fd", t)
			}
		}

		conds := s.ConditionString()
		if conds == "" {
			conds = "-"
		}
		Logf("  %-20s %-10.10s %7.1f %7.1f %+8.2f %10s  %s",
			s.Name(), vessel, s.HP(), s.MaxHP(), s.LastChangeTotal, next, conds)
	})

	Logf("  messages: %d info, %d warning, %d alert",
		g.messages.Count(health.SeverityInfo),
		g.messages.Count(health.SeverityWarning),
		g.messages.Count(health.SeverityAlert),
	)
	Logf("")
}
