package programs

import (
	"strings"
	"testing"
)

func TestGetKnownPrograms(t *testing.T) {
	table := DefaultTable()

	tests := []struct {
		program          string
		expectedFrontEnd float64
		expectedBackEnd  float64
	}{
		{"fha", 31, 43},
		{"conventional", 28, 36},
		{"va", 28, 41},
		{"usda", 29, 41},
	}

	for _, tt := range tests {
		t.Run(tt.program, func(t *testing.T) {
			limits, err := table.Get(tt.program)
			if err != nil {
				t.Fatalf("Get(%s) failed: %v", tt.program, err)
			}
			if limits.FrontEnd.Default != tt.expectedFrontEnd {
				t.Errorf("FrontEnd.Default = %.2f, expected %.2f", limits.FrontEnd.Default, tt.expectedFrontEnd)
			}
			if limits.BackEnd.Default != tt.expectedBackEnd {
				t.Errorf("BackEnd.Default = %.2f, expected %.2f", limits.BackEnd.Default, tt.expectedBackEnd)
			}
		})
	}
}

func TestGetUnknownProgram(t *testing.T) {
	table := DefaultTable()

	_, err := table.Get("reverse-mortgage")
	if err == nil {
		t.Fatal("expected an error for unknown program, got nil")
	}
	if !strings.Contains(err.Error(), "reverse-mortgage") {
		t.Errorf("error should name the program, got %q", err.Error())
	}
	// The message lists known ids so callers can self-correct.
	if !strings.Contains(err.Error(), "fha") {
		t.Errorf("error should list known programs, got %q", err.Error())
	}
}

func TestTierOrdering(t *testing.T) {
	table := DefaultTable()
	for id, limits := range table {
		for axis, tier := range map[string]RatioTier{"frontEnd": limits.FrontEnd, "backEnd": limits.BackEnd} {
			if tier.Default > tier.Warning {
				t.Errorf("%s %s: default %.2f above warning %.2f", id, axis, tier.Default, tier.Warning)
			}
			if tier.HardCap != nil && tier.Warning > *tier.HardCap {
				t.Errorf("%s %s: warning %.2f above hard cap %.2f", id, axis, tier.Warning, *tier.HardCap)
			}
		}
	}
}

func TestVAHasNoFrontEndHardCap(t *testing.T) {
	limits, err := DefaultTable().Get("va")
	if err != nil {
		t.Fatalf("Get(va) failed: %v", err)
	}
	if limits.FrontEnd.HardCap != nil {
		t.Errorf("expected no front-end hard cap for va, got %.2f", *limits.FrontEnd.HardCap)
	}
	if limits.BackEnd.HardCap == nil {
		t.Error("expected a back-end hard cap for va")
	}
}

func TestValidateFlagsMisorderedTiers(t *testing.T) {
	table := Table{
		"custom": {
			FrontEnd: RatioTier{Default: 35, Warning: 30, HardCap: capAt(40)},
			BackEnd:  RatioTier{Default: 40, Warning: 50, HardCap: capAt(45)},
		},
	}

	warnings := table.Validate()
	if len(warnings) != 2 {
		t.Fatalf("expected 2 warnings, got %d: %v", len(warnings), warnings)
	}
	if !strings.Contains(warnings[0], "frontEnd") {
		t.Errorf("expected front-end warning first, got %q", warnings[0])
	}
	if !strings.Contains(warnings[1], "backEnd") {
		t.Errorf("expected back-end warning second, got %q", warnings[1])
	}
}

func TestValidateCleanTable(t *testing.T) {
	if warnings := DefaultTable().Validate(); len(warnings) != 0 {
		t.Errorf("expected no warnings for built-in table, got %v", warnings)
	}
}
