package qualify

import (
	"math"
	"strings"
	"testing"
)

func TestEngineQualifyDefaults(t *testing.T) {
	engine := NewEngine(nil, EngineConfig{})

	result, err := engine.Qualify(baseRequest())
	if err != nil {
		t.Fatalf("Qualify failed: %v", err)
	}

	if math.Abs(result.Allowed.FrontEnd-31) > 0.001 || math.Abs(result.Allowed.BackEnd-43) > 0.001 {
		t.Errorf("Allowed = %+v, expected {31 43}", result.Allowed)
	}
	if result.MaxPITI <= 0 {
		t.Errorf("MaxPITI = %.2f, expected > 0", result.MaxPITI)
	}
	if result.StrongFactorCount != 0 {
		t.Errorf("StrongFactorCount = %d, expected 0", result.StrongFactorCount)
	}
	if !result.HasFlag(FlagWithinLimits) {
		t.Errorf("expected withinLimits, got %v", result.Flags)
	}
}

// Two strong factors raise the allowed back end and, when the back-end
// ceiling binds, the solved payment.
func TestEngineQualifyStrongFactors(t *testing.T) {
	engine := NewEngine(nil, EngineConfig{})

	// Debts chosen so the back-end ceiling binds and the boost is visible
	// in the solved payment.
	base := baseRequest()
	base.MonthlyDebts = 700

	withoutFactors, err := engine.Qualify(base)
	if err != nil {
		t.Fatalf("Qualify failed: %v", err)
	}

	boosted := base
	boosted.Factors = map[string]string{
		"cash_reserves":      "6+ months",
		"credit_utilization": "<10%",
	}

	withFactors, err := engine.Qualify(boosted)
	if err != nil {
		t.Fatalf("Qualify failed: %v", err)
	}

	if withFactors.StrongFactorCount != 2 {
		t.Errorf("StrongFactorCount = %d, expected 2", withFactors.StrongFactorCount)
	}
	if withFactors.Allowed.BackEnd <= withoutFactors.Allowed.BackEnd {
		t.Errorf("Allowed.BackEnd %.2f not greater than %.2f", withFactors.Allowed.BackEnd, withoutFactors.Allowed.BackEnd)
	}
	if withFactors.MaxPITI <= withoutFactors.MaxPITI {
		t.Errorf("MaxPITI %.2f not greater than %.2f", withFactors.MaxPITI, withoutFactors.MaxPITI)
	}
}

func TestEngineQualifyUnknownProgram(t *testing.T) {
	engine := NewEngine(nil, EngineConfig{})

	req := baseRequest()
	req.Program = "jumbo"

	_, err := engine.Qualify(req)
	if err == nil {
		t.Fatal("expected an error for unknown program, got nil")
	}
	if !strings.Contains(err.Error(), "jumbo") {
		t.Errorf("error should name the unknown program, got %q", err.Error())
	}
}

func TestEngineQualifyUnknownFactorValue(t *testing.T) {
	engine := NewEngine(nil, EngineConfig{})

	req := baseRequest()
	req.Factors = map[string]string{"cash_reserves": "a decade"}

	if _, err := engine.Qualify(req); err == nil {
		t.Fatal("expected an error for undeclared option value, got nil")
	}

	req.Factors = map[string]string{"lotteryWinner": "yes"}
	if _, err := engine.Qualify(req); err == nil {
		t.Fatal("expected an error for unknown factor id, got nil")
	}
}

func TestEngineQualifyEvaluationMode(t *testing.T) {
	engine := NewEngine(nil, EngineConfig{})

	req := baseRequest()
	req.ProposedPITI = piti(2000) // 40% front, 50% back against 31/43

	result, err := engine.Qualify(req)
	if err != nil {
		t.Fatalf("Qualify failed: %v", err)
	}

	if result.MaxPITI != 2000 {
		t.Errorf("MaxPITI = %.2f, expected pass-through 2000", result.MaxPITI)
	}
	if !result.HasFlag(FlagExceedsFrontEnd) || !result.HasFlag(FlagExceedsBackEnd) {
		t.Errorf("expected both exceed flags, got %v", result.Flags)
	}
	if result.HasFlag(FlagWithinLimits) {
		t.Errorf("withinLimits must not co-occur with exceed flags, got %v", result.Flags)
	}
}
