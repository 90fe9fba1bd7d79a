package health

import (
	"fmt"

	"github.com/pthm-cable/crewhealth/config"
	"github.com/pthm-cable/crewhealth/persist"
)

// ScenarioNodeName is the root node of a saved List.
const ScenarioNodeName = "KerbalHealthScenario"

// List holds statuses keyed by kerbal name, in insertion order.
type List struct {
	order []*Status
	index map[string]int
}

// NewList returns an empty list.
func NewList() *List {
	return &List{index: make(map[string]int)}
}

// Add inserts s. It fails if a status with the same name is present.
func (l *List) Add(s *Status) error {
	if _, dup := l.index[s.name]; dup {
		return fmt.Errorf("health status for %q already exists", s.name)
	}
	l.index[s.name] = len(l.order)
	l.order = append(l.order, s)
	return nil
}

// Remove deletes the status with the given name and reports whether it existed.
func (l *List) Remove(name string) bool {
	i, ok := l.index[name]
	if !ok {
		return false
	}
	l.order = append(l.order[:i], l.order[i+1:]...)
	delete(l.index, name)
	for j := i; j < len(l.order); j++ {
		l.index[l.order[j].name] = j
	}
	return true
}

// Find returns the status for name.
func (l *List) Find(name string) (*Status, bool) {
	i, ok := l.index[name]
	if !ok {
		return nil, false
	}
	return l.order[i], true
}

// Len returns the number of statuses.
func (l *List) Len() int { return len(l.order) }

// Names returns kerbal names in insertion order.
func (l *List) Names() []string {
	names := make([]string, len(l.order))
	for i, s := range l.order {
		names[i] = s.name
	}
	return names
}

// Each calls fn for every status in insertion order. fn must not add or
// remove statuses.
func (l *List) Each(fn func(*Status)) {
	for _, s := range l.order {
		fn(s)
	}
}

// Save snapshots every status under a scenario root node.
func (l *List) Save() *persist.Node {
	root := persist.NewNode(ScenarioNodeName)
	for _, s := range l.order {
		root.AddNode(s.Save())
	}
	return root
}

// LoadList rebuilds a list saved by Save.
func LoadList(cfg *config.Config, root *persist.Node) (*List, error) {
	if root.Name != ScenarioNodeName {
		return nil, fmt.Errorf("expected %s node, got %q", ScenarioNodeName, root.Name)
	}
	l := NewList()
	for _, n := range root.Nodes(StatusNodeName) {
		s, err := LoadStatus(cfg, n)
		if err != nil {
			return nil, err
		}
		if err := l.Add(s); err != nil {
			return nil, err
		}
	}
	return l, nil
}
