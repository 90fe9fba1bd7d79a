package health

import "strings"

// Known condition names.
const (
	OK        = "OK"
	Exhausted = "Exhausted"
	Sick      = "Sick"
	Infected  = "Infected"
	Frozen    = "Frozen"
	Dead      = "Dead"
)

// Condition is a named health state. Hidden conditions act as tags and are
// left out of the player summary.
type Condition struct {
	Name    string
	Title   string
	Visible bool
}

// NewCondition returns a visible condition titled by its name.
func NewCondition(name string) Condition {
	return Condition{Name: name, Title: name, Visible: true}
}

// DisplayTitle returns Title, falling back to Name.
func (c Condition) DisplayTitle() string {
	if c.Title == "" {
		return c.Name
	}
	return c.Title
}

// HasCondition reports whether any condition with the name is present.
func (s *Status) HasCondition(name string) bool {
	_, ok := s.GetCondition(name)
	return ok
}

// GetCondition returns the first condition with the name.
func (s *Status) GetCondition(name string) (Condition, bool) {
	for _, c := range s.conditions {
		if c.Name == name {
			return c, true
		}
	}
	return Condition{}, false
}

// AddCondition appends c. Unless additive, a condition whose name is
// already present is left as it is.
//
// This only touches the registry. Engine.AddCondition also applies the
// role changes tied to Exhausted and OK.
func (s *Status) AddCondition(c Condition, additive bool) {
	if !additive && s.HasCondition(c.Name) {
		return
	}
	if c.Title == "" {
		c.Title = c.Name
	}
	s.conditions = append(s.conditions, c)
}

// RemoveCondition removes the first condition with the name, or every one
// when all is set.
func (s *Status) RemoveCondition(name string, all bool) {
	for i := 0; i < len(s.conditions); i++ {
		if s.conditions[i].Name != name {
			continue
		}
		s.conditions = append(s.conditions[:i], s.conditions[i+1:]...)
		if !all {
			return
		}
		i--
	}
}

// Conditions returns a copy of the conditions in insertion order.
func (s *Status) Conditions() []Condition {
	out := make([]Condition, len(s.conditions))
	copy(out, s.conditions)
	return out
}

// ConditionString joins the titles of visible conditions.
func (s *Status) ConditionString() string {
	var titles []string
	for _, c := range s.conditions {
		if c.Visible {
			titles = append(titles, c.DisplayTitle())
		}
	}
	return strings.Join(titles, ", ")
}
