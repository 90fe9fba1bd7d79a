package health

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/pthm-cable/crewhealth/config"
	"github.com/pthm-cable/crewhealth/persist"
)

// Saved node names.
const (
	StatusNodeName    = "KerbalHealthStatus"
	ConditionNodeName = "condition"
)

// Save snapshots s. Optional keys are written only when they differ from
// their defaults.
func (s *Status) Save() *persist.Node {
	n := persist.NewNode(StatusNodeName)
	n.SetValue("name", s.name)
	n.SetValue("level", strconv.Itoa(s.level))
	n.SetFloat("health", s.hp)
	if s.maxHPModifier != 0 {
		n.SetFloat("maxHPModifier", s.maxHPModifier)
	}
	n.SetFloat("dose", s.dose)
	if s.Radiation != 0 {
		n.SetFloat("radiation", s.Radiation)
	}
	if s.PartsRadiation != 0 {
		n.SetFloat("partsRadiation", s.PartsRadiation)
	}
	if s.Exposure != 1 {
		n.SetFloat("exposure", s.Exposure)
	}
	if s.CachedChange != 0 {
		n.SetFloat("cachedChange", s.CachedChange)
	}
	if s.LastRecuperation != 0 {
		n.SetFloat("lastRecuperation", s.LastRecuperation)
	}
	if s.LastDecay != 0 {
		n.SetFloat("lastDecay", s.LastDecay)
	}
	if s.OnEVA {
		n.SetBool("onEva", true)
	}
	if s.HasCondition(Exhausted) && s.trait != "" {
		n.SetValue("trait", s.trait)
	}
	for _, c := range s.conditions {
		cn := n.AddNode(persist.NewNode(ConditionNodeName))
		cn.SetValue("name", c.Name)
		if c.Title != "" && c.Title != c.Name {
			cn.SetValue("title", c.Title)
		}
		if !c.Visible {
			cn.SetBool("visible", false)
		}
	}
	return n
}

// LoadStatus rebuilds a status saved by Save.
func LoadStatus(cfg *config.Config, n *persist.Node) (*Status, error) {
	name, ok := n.Value("name")
	if !ok || name == "" {
		return nil, errors.New("health status without a name")
	}
	s := &Status{cfg: cfg, name: name, Exposure: 1, Factors: make(map[string]float64)}

	raw, hasLevel := n.Value("level")
	if hasLevel {
		level, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("status %q: level: %w", name, err)
		}
		s.level = level
	}

	var errs []error
	float := func(key string, def float64) float64 {
		v, err := n.Float(key, def)
		if err != nil {
			errs = append(errs, err)
		}
		return v
	}
	hp := float("health", 0)
	s.maxHPModifier = float("maxHPModifier", 0)
	s.dose = float("dose", 0)
	s.Radiation = float("radiation", 0)
	s.PartsRadiation = float("partsRadiation", 0)
	s.Exposure = float("exposure", 1)
	s.CachedChange = float("cachedChange", 0)
	s.LastRecuperation = float("lastRecuperation", 0)
	s.LastDecay = float("lastDecay", 0)

	onEVA, err := n.Bool("onEva", false)
	if err != nil {
		errs = append(errs, err)
	}
	s.OnEVA = onEVA

	for _, cn := range n.Nodes(ConditionNodeName) {
		cname, ok := cn.Value("name")
		if !ok || cname == "" {
			errs = append(errs, errors.New("condition without a name"))
			continue
		}
		visible, err := cn.Bool("visible", true)
		if err != nil {
			errs = append(errs, err)
		}
		s.conditions = append(s.conditions, Condition{
			Name:    cname,
			Title:   cn.Get("title", cname),
			Visible: visible,
		})
	}
	if s.HasCondition(Exhausted) {
		s.trait = n.Get("trait", "")
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("status %q: %w", name, errors.Join(errs...))
	}
	if hasLevel {
		s.SetHP(hp)
	} else {
		// MaxHP is unknown until the roster level is resolved; the first
		// SetLevel clamps.
		s.hp = math.Max(hp, 0)
	}
	return s, nil
}
