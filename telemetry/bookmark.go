package telemetry

import (
	"fmt"
	"log/slog"
	"math"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkFirstDeath     BookmarkType = "first_death"
	BookmarkMassExhaustion BookmarkType = "mass_exhaustion"
	BookmarkCrewRecovered  BookmarkType = "crew_recovered"
	BookmarkDoseMilestone  BookmarkType = "dose_milestone"
	BookmarkHealthDecline  BookmarkType = "health_decline"
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Tick        int32        `csv:"tick"`
	SimDays     float64      `csv:"sim_days"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark to log.
func (b Bookmark) LogBookmark(log *slog.Logger) {
	log.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"sim_days", b.SimDays,
		"description", b.Description,
	)
}

// BookmarkDetector detects notable moments in crew health.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	doseMilestone float64

	// State tracking
	sawDeath         bool
	massExhausted    bool // latched until fewer than half are exhausted
	milestonesPassed int  // highest dose milestone reached
}

// NewBookmarkDetector creates a detector with the given history size.
// doseMilestone is the BED step between dose bookmarks; 0 disables them.
func NewBookmarkDetector(historySize int, doseMilestone float64) *BookmarkDetector {
	if historySize < 3 {
		historySize = 3
	}
	return &BookmarkDetector{
		history:       make([]WindowStats, historySize),
		historySize:   historySize,
		doseMilestone: doseMilestone,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	for _, check := range []func(WindowStats) *Bookmark{
		bd.checkFirstDeath,
		bd.checkMassExhaustion,
		bd.checkCrewRecovered,
		bd.checkDoseMilestone,
		bd.checkHealthDecline,
	} {
		if b := check(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
	}

	bd.addToHistory(stats)
	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) getHistory() []WindowStats {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

// previous returns the most recent window, or nil before the first Check.
func (bd *BookmarkDetector) previous() *WindowStats {
	if !bd.historyFull && bd.historyIdx == 0 {
		return nil
	}
	i := (bd.historyIdx - 1 + bd.historySize) % bd.historySize
	return &bd.history[i]
}

func mark(t BookmarkType, stats WindowStats, format string, args ...any) *Bookmark {
	return &Bookmark{
		Type:        t,
		Tick:        stats.WindowEndTick,
		SimDays:     stats.SimDays,
		Description: fmt.Sprintf(format, args...),
	}
}

func (bd *BookmarkDetector) checkFirstDeath(stats WindowStats) *Bookmark {
	if bd.sawDeath || stats.Deaths == 0 {
		return nil
	}
	bd.sawDeath = true
	return mark(BookmarkFirstDeath, stats, "First crew death, %d alive", stats.Alive)
}

func (bd *BookmarkDetector) checkMassExhaustion(stats WindowStats) *Bookmark {
	mass := stats.Alive > 0 && stats.Exhausted*2 >= stats.Alive
	if !mass {
		bd.massExhausted = false
		return nil
	}
	if bd.massExhausted {
		return nil
	}
	bd.massExhausted = true
	return mark(BookmarkMassExhaustion, stats, "%d of %d living kerbals exhausted", stats.Exhausted, stats.Alive)
}

func (bd *BookmarkDetector) checkCrewRecovered(stats WindowStats) *Bookmark {
	prev := bd.previous()
	if prev == nil || prev.Exhausted == 0 || stats.Exhausted > 0 || stats.Alive == 0 {
		return nil
	}
	return mark(BookmarkCrewRecovered, stats, "All %d living kerbals recovered", stats.Alive)
}

func (bd *BookmarkDetector) checkDoseMilestone(stats WindowStats) *Bookmark {
	if bd.doseMilestone <= 0 {
		return nil
	}
	reached := int(math.Floor(stats.DoseMax / bd.doseMilestone))
	if reached <= bd.milestonesPassed {
		return nil
	}
	bd.milestonesPassed = reached
	return mark(BookmarkDoseMilestone, stats, "Peak dose %.3g BED passed milestone %d", stats.DoseMax, reached)
}

// checkHealthDecline fires when mean HP ratio falls below 75% of its rolling average.
func (bd *BookmarkDetector) checkHealthDecline(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 || stats.Alive == 0 {
		return nil
	}

	var total float64
	for _, h := range history {
		total += h.HPRatioMean
	}
	avg := total / float64(len(history))
	if avg == 0 || stats.HPRatioMean >= avg*0.75 {
		return nil
	}
	return mark(BookmarkHealthDecline, stats, "Mean HP ratio %.2f is %.0f%% of average (%.2f)",
		stats.HPRatioMean, stats.HPRatioMean/avg*100, avg)
}
