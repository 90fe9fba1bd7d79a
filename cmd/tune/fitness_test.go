package main

import (
	"testing"

	"github.com/pthm-cable/crewhealth/config"
	"github.com/pthm-cable/crewhealth/game"
)

func testEvaluator(t *testing.T, costWeight float64) *FitnessEvaluator {
	t.Helper()
	cfg := config.Default()
	cfg.Events.Enabled = false
	scn, err := game.DefaultScenario()
	if err != nil {
		t.Fatal(err)
	}
	fe, err := NewFitnessEvaluator(NewParamVector(), cfg, scn, Mission{Vessel: "Kerbal X", Days: 2}, []int64{1, 2}, costWeight)
	if err != nil {
		t.Fatal(err)
	}
	return fe
}

func TestEvaluatorRejectsUnknownVessel(t *testing.T) {
	scn, _ := game.DefaultScenario()
	if _, err := NewFitnessEvaluator(NewParamVector(), config.Default(), scn, Mission{Vessel: "Ghost"}, []int64{1}, 0); err == nil {
		t.Error("expected error for unknown vessel")
	}
}

func TestEquipmentImprovesFitness(t *testing.T) {
	fe := testEvaluator(t, 0)

	bare := fe.Evaluate([]float64{0, 0, 0, 1})
	bareHealth := fe.LastQuality()
	fitted := fe.Evaluate([]float64{5, 5, 10, 0.5})
	fittedHealth := fe.LastQuality()

	if fittedHealth <= 0 || fittedHealth > 1 {
		t.Errorf("fitted health = %v, want in (0, 1]", fittedHealth)
	}
	if bareHealth >= fittedHealth || bare <= fitted {
		t.Errorf("bare fitness %v (health %v) should be worse than fitted %v (health %v)",
			bare, bareHealth, fitted, fittedHealth)
	}
}

func TestCostWeightPenalizes(t *testing.T) {
	free := testEvaluator(t, 0)
	costly := testEvaluator(t, 1)
	x := []float64{5, 5, 10, 0.5}

	if diff := costly.Evaluate(x) - free.Evaluate(x); diff < 4-1e-9 || diff > 4+1e-9 {
		t.Errorf("cost penalty = %v, want 4", diff)
	}
}

func TestFittedLeavesScenario(t *testing.T) {
	fe := testEvaluator(t, 0)
	before := len(fe.scenario.Vessels[0].Parts)
	scn := fe.fitted(NewParamVector().DefaultVector())
	if len(scn.Vessels[0].Parts) != before+1 {
		t.Errorf("fitted parts = %d, want %d", len(scn.Vessels[0].Parts), before+1)
	}
	if len(fe.scenario.Vessels[0].Parts) != before {
		t.Error("base scenario modified")
	}
}
