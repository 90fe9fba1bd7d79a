package health

import "fmt"

// apply carries out transition effects on s and its crew record.
func (e *Engine) apply(s *Status, rec CrewRecord, effects []Effect) {
	for _, eff := range effects {
		switch eff.Kind {
		case EffectDie:
			e.die(s, rec)
		case EffectExhaust:
			if s.HasCondition(Exhausted) {
				continue
			}
			s.AddCondition(NewCondition(Exhausted), false)
			e.demote(s, rec)
			e.notify(s, SeverityWarning, "Exhausted",
				fmt.Sprintf("%s is exhausted and refuses to work until rested.", s.name))
		case EffectRecover:
			s.RemoveCondition(Exhausted, true)
			e.restoreRole(s, rec)
			e.notify(s, SeverityInfo, "Recovered",
				fmt.Sprintf("%s has recovered from exhaustion and is back on duty.", s.name))
		case EffectLowHealth:
			e.notify(s, SeverityWarning, "Low health",
				fmt.Sprintf("%s's health is dangerously low (%.1f / %.1f HP).", s.name, s.HP(), s.MaxHP()))
		}
	}
}

func (e *Engine) die(s *Status, rec CrewRecord) {
	s.AddCondition(NewCondition(Dead), false)
	s.OnEVA = false
	rec.Unseat()
	rec.SetRosterStatus(RosterDead)
	e.host.RefreshCrew()
	e.log.Info("kerbal died", "kerbal", s.name, "dose", s.dose)
	e.notify(s, SeverityAlert, "Death", fmt.Sprintf("%s has died of poor health.", s.name))
}

// demote turns a working crew member into a passenger, remembering the trait.
// A record that is no longer Crew was changed by someone else and is left alone.
func (e *Engine) demote(s *Status, rec CrewRecord) {
	if rec.Type() != TypeCrew {
		e.log.Info("skipping demotion, crew record already changed", "kerbal", s.name, "type", rec.Type())
		return
	}
	s.trait = rec.Trait()
	rec.SetType(TypeTourist)
	rec.SetTrait(TouristTrait)
	e.host.RefreshCrew()
}

// restoreRole undoes demote. Records that are not Tourist, or statuses with no
// remembered trait, are left alone.
func (e *Engine) restoreRole(s *Status, rec CrewRecord) {
	if rec.Type() != TypeTourist || s.trait == "" {
		e.log.Info("skipping role restore", "kerbal", s.name, "type", rec.Type(), "stored_trait", s.trait)
		return
	}
	rec.SetTrait(s.trait)
	rec.SetType(TypeCrew)
	s.trait = ""
	e.host.RefreshCrew()
}

func (e *Engine) notify(s *Status, sev Severity, title, text string) {
	e.notifier.Notify(NewMessage(s.name, sev, title, text))
}

// AddCondition adds c to s and applies the role change tied to it: Exhausted
// demotes the kerbal and OK restores its role.
func (e *Engine) AddCondition(s *Status, c Condition, additive bool) {
	if !additive && s.HasCondition(c.Name) {
		return
	}
	s.AddCondition(c, additive)
	if c.Name != Exhausted && c.Name != OK {
		return
	}
	rec, ok := e.host.Crew(s.name)
	if !ok {
		e.log.Warn("crew record not found", "kerbal", s.name, "condition", c.Name)
		return
	}
	if c.Name == Exhausted {
		e.demote(s, rec)
	} else {
		e.restoreRole(s, rec)
	}
}

// RemoveCondition removes conditions from s. Removing Exhausted restores
// the kerbal's role.
func (e *Engine) RemoveCondition(s *Status, name string, all bool) {
	if !s.HasCondition(name) {
		return
	}
	s.RemoveCondition(name, all)
	if name != Exhausted {
		return
	}
	rec, ok := e.host.Crew(s.name)
	if !ok {
		e.log.Warn("crew record not found", "kerbal", s.name, "condition", name)
		return
	}
	e.restoreRole(s, rec)
}
