package game

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/crewhealth/components"
	"github.com/pthm-cable/crewhealth/factors"
	"github.com/pthm-cable/crewhealth/health"
)

func TestDefaultScenario(t *testing.T) {
	s, err := DefaultScenario()
	if err != nil {
		t.Fatal(err)
	}
	if s.Home != "Kerbin" || len(s.Bodies) != 5 || len(s.Vessels) != 2 || len(s.Crew) != 5 {
		t.Errorf("scenario = home %s, %d bodies, %d vessels, %d crew", s.Home, len(s.Bodies), len(s.Vessels), len(s.Crew))
	}
	if s.Vessels[1].Situation != factors.SituationLanded {
		t.Errorf("Munar Base situation = %v", s.Vessels[1].Situation)
	}
	mod := s.Vessels[0].Parts[0].Modules[0]
	if mod.MultiplyFactor != factors.Crowded || mod.Multiplier != 0.8 || mod.CrewCap != 2 {
		t.Errorf("hygiene kit = %+v", mod)
	}
}

func TestLoadScenarioFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	data := `
home: Kerbin
bodies:
  - name: Sun
  - name: Kerbin
    parent: Sun
    radius: 600000
vessels:
  - name: Pod
    body: Kerbin
    situation: orbiting
    parts:
      - name: pod
        seats: 1
crew:
  - name: Jeb
    type: tourist
    vessel: Pod
    part: pod
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	s, err := LoadScenario(path)
	if err != nil {
		t.Fatal(err)
	}
	if s.Crew[0].Type != health.TypeTourist || s.Vessels[0].Parts[0].Seats != 1 {
		t.Errorf("scenario = %+v", s)
	}

	if _, err := LoadScenario(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("missing file should fail")
	}
}

func TestScenarioValidate(t *testing.T) {
	pod := VesselSpec{Name: "Pod", Body: "Kerbin"}
	pod.Parts = append(pod.Parts, podPart(1))

	tests := []struct {
		name    string
		s       Scenario
		wantErr string
	}{
		{"ok", Scenario{Vessels: []VesselSpec{pod}, Crew: []CrewSpec{{Name: "Jeb", Vessel: "Pod", Part: "pod"}}}, ""},
		{"duplicate kerbal", Scenario{Crew: []CrewSpec{{Name: "Jeb"}, {Name: "Jeb"}}}, "duplicate kerbal"},
		{"unnamed", Scenario{Crew: []CrewSpec{{}}}, "without a name"},
		{"duplicate vessel", Scenario{Vessels: []VesselSpec{pod, pod}}, "duplicate vessel"},
		{"unknown vessel", Scenario{Crew: []CrewSpec{{Name: "Jeb", Vessel: "Ghost"}}}, "unknown vessel"},
		{"unknown part", Scenario{Vessels: []VesselSpec{pod}, Crew: []CrewSpec{{Name: "Jeb", Vessel: "Pod", Part: "lab"}}}, "no part"},
		{"part without vessel", Scenario{Crew: []CrewSpec{{Name: "Jeb", Part: "pod"}}}, "no vessel"},
		{"overfull", Scenario{Vessels: []VesselSpec{pod}, Crew: []CrewSpec{
			{Name: "Jeb", Vessel: "Pod", Part: "pod"},
			{Name: "Bill", Vessel: "Pod", Part: "pod"},
		}}, "2 kerbals in 1 seats"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.s.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func podPart(seats int) components.PartSpec {
	return components.PartSpec{Name: "pod", Seats: seats}
}
