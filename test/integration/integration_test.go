package integration

import (
	"math"
	"strings"
	"testing"

	"github.com/iwvelando/mortgage-qualify/internal/config"
	"github.com/iwvelando/mortgage-qualify/pkg/pricing"
	"github.com/iwvelando/mortgage-qualify/pkg/qualify"
	"go.uber.org/zap"
)

const scenarioConfig = `
rules:
  maximumBoost: 5
scenarios:
  - name: first-time-buyer
    annualIncome: 60000
    monthlyDebts: 500
    program: fha
    ficoScore: 640
    loanToValue: 96.5
    financing:
      interestRate: 6.0
      termYears: 30
      propertyTaxRate: 1.2
      annualInsurance: 1200
      pmiRate: 0.85
  - name: strong-profile
    annualIncome: 60000
    monthlyDebts: 700
    program: fha
    ficoScore: 640
    loanToValue: 96.5
    factors:
      cash_reserves: "6+ months"
      credit_utilization: "<10%"
`

func loadEngine(t *testing.T) (*config.Configuration, *qualify.Engine) {
	t.Helper()
	conf, err := config.LoadConfigurationFromReader(strings.NewReader(scenarioConfig))
	if err != nil {
		t.Fatalf("LoadConfigurationFromReader failed: %v", err)
	}
	return conf, qualify.NewEngine(zap.NewNop(), conf.EngineConfig())
}

// End-to-end: YAML scenarios through the engine and the price inversion.
func TestConfiguredScenarioPipeline(t *testing.T) {
	conf, engine := loadEngine(t)

	if warnings := conf.ValidateConfiguration(); len(warnings) != 0 {
		t.Fatalf("unexpected configuration warnings: %v", warnings)
	}

	buyer := conf.Scenarios[0]
	result, err := engine.Qualify(buyer.Request())
	if err != nil {
		t.Fatalf("Qualify(%s) failed: %v", buyer.Name, err)
	}

	if math.Abs(result.Allowed.FrontEnd-31) > 0.001 || math.Abs(result.Allowed.BackEnd-43) > 0.001 {
		t.Errorf("allowed = %+v, expected FHA defaults {31 43}", result.Allowed)
	}
	if math.Abs(result.MaxPITI-1550) > 0.01 {
		t.Errorf("MaxPITI = %.2f, expected 1550", result.MaxPITI)
	}
	if !result.HasFlag(qualify.FlagWithinLimits) {
		t.Errorf("expected withinLimits, got %v", result.Flags)
	}

	price, err := pricing.Invert(result.MaxPITI, buyer.Terms(nil))
	if err != nil {
		t.Fatalf("Invert failed: %v", err)
	}
	if price.MaxPurchasePrice <= 0 {
		t.Errorf("MaxPurchasePrice = %.0f, expected > 0", price.MaxPurchasePrice)
	}
	if price.MaxLoanAmount > price.MaxPurchasePrice {
		t.Errorf("loan %.0f exceeds price %.0f", price.MaxLoanAmount, price.MaxPurchasePrice)
	}
}

// Compensating factors raise the back-end allowance and the solved payment
// when the back-end ceiling binds.
func TestCompensatingFactorsRaiseAffordability(t *testing.T) {
	conf, engine := loadEngine(t)

	strong := conf.Scenarios[1]
	boosted, err := engine.Qualify(strong.Request())
	if err != nil {
		t.Fatalf("Qualify(%s) failed: %v", strong.Name, err)
	}

	baseline := strong
	baseline.Factors = nil
	plain, err := engine.Qualify(baseline.Request())
	if err != nil {
		t.Fatalf("Qualify(baseline) failed: %v", err)
	}

	if boosted.StrongFactorCount != 2 {
		t.Errorf("StrongFactorCount = %d, expected 2", boosted.StrongFactorCount)
	}
	if boosted.Allowed.BackEnd <= plain.Allowed.BackEnd {
		t.Errorf("boosted back end %.2f not above baseline %.2f", boosted.Allowed.BackEnd, plain.Allowed.BackEnd)
	}
	if boosted.MaxPITI <= plain.MaxPITI {
		t.Errorf("boosted MaxPITI %.2f not above baseline %.2f", boosted.MaxPITI, plain.MaxPITI)
	}
}

// Solving then evaluating the solved payment must agree within tolerance.
func TestSolveEvaluateRoundTrip(t *testing.T) {
	conf, engine := loadEngine(t)

	for _, scenario := range conf.Scenarios {
		solved, err := engine.Qualify(scenario.Request())
		if err != nil {
			t.Fatalf("Qualify(%s) failed: %v", scenario.Name, err)
		}

		replay := scenario.Request()
		replay.ProposedPITI = &solved.MaxPITI
		evaluated, err := engine.Qualify(replay)
		if err != nil {
			t.Fatalf("evaluation Qualify(%s) failed: %v", scenario.Name, err)
		}

		if math.Abs(evaluated.Actual.BackEnd-solved.Actual.BackEnd) > 0.01 {
			t.Errorf("%s: back-end round trip %.4f != %.4f", scenario.Name, evaluated.Actual.BackEnd, solved.Actual.BackEnd)
		}
		if !evaluated.HasFlag(qualify.FlagWithinLimits) {
			t.Errorf("%s: round trip must stay within limits, got %v", scenario.Name, evaluated.Flags)
		}
	}
}
