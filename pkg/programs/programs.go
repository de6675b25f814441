// Package programs defines the per-program DTI limit tables used to qualify
// borrowers. Limits are plain data so programs can be added or overridden from
// configuration without touching the solver.
package programs

import (
	"fmt"
	"sort"
)

// RatioTier holds the tiered limits for one DTI axis in percentage points.
// HardCap is nil for programs that do not enforce a cap on that axis.
type RatioTier struct {
	Default float64
	Warning float64
	HardCap *float64
}

// LoanProgramLimits holds the front-end and back-end ratio tiers for one loan
// program.
type LoanProgramLimits struct {
	FrontEnd RatioTier
	BackEnd  RatioTier
}

// Table maps program ids to their limits.
type Table map[string]LoanProgramLimits

func capAt(v float64) *float64 {
	return &v
}

// DefaultTable returns the built-in program limit table.
func DefaultTable() Table {
	return Table{
		"fha": {
			FrontEnd: RatioTier{Default: 31, Warning: 37, HardCap: capAt(40)},
			BackEnd:  RatioTier{Default: 43, Warning: 50, HardCap: capAt(57)},
		},
		"conventional": {
			FrontEnd: RatioTier{Default: 28, Warning: 33, HardCap: capAt(36)},
			BackEnd:  RatioTier{Default: 36, Warning: 43, HardCap: capAt(50)},
		},
		// VA underwriting leans on residual income and does not cap the
		// front-end ratio.
		"va": {
			FrontEnd: RatioTier{Default: 28, Warning: 33},
			BackEnd:  RatioTier{Default: 41, Warning: 47, HardCap: capAt(50)},
		},
		"usda": {
			FrontEnd: RatioTier{Default: 29, Warning: 32, HardCap: capAt(34)},
			BackEnd:  RatioTier{Default: 41, Warning: 44, HardCap: capAt(46)},
		},
	}
}

// Get looks up the limits for a program id. An unknown id is a configuration
// error; there is deliberately no fallback program.
func (t Table) Get(programID string) (LoanProgramLimits, error) {
	limits, ok := t[programID]
	if !ok {
		return LoanProgramLimits{}, fmt.Errorf("unknown loan program %q (known programs: %v)", programID, t.ids())
	}
	return limits, nil
}

func (t Table) ids() []string {
	ids := make([]string, 0, len(t))
	for id := range t {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Validate returns warnings for tier orderings that are likely configuration
// mistakes (default above warning, warning above hard cap). Misordered tiers
// are not fatal; the resolver clamps to the hard cap regardless.
func (t Table) Validate() []string {
	var warnings []string
	for _, id := range t.ids() {
		limits := t[id]
		warnings = append(warnings, validateTier(id, "frontEnd", limits.FrontEnd)...)
		warnings = append(warnings, validateTier(id, "backEnd", limits.BackEnd)...)
	}
	return warnings
}

func validateTier(programID, axis string, tier RatioTier) []string {
	var warnings []string
	if tier.Default > tier.Warning {
		warnings = append(warnings, fmt.Sprintf("program '%s' %s default %.2f exceeds warning %.2f",
			programID, axis, tier.Default, tier.Warning))
	}
	if tier.HardCap != nil && tier.Warning > *tier.HardCap {
		warnings = append(warnings, fmt.Sprintf("program '%s' %s warning %.2f exceeds hard cap %.2f",
			programID, axis, tier.Warning, *tier.HardCap))
	}
	return warnings
}
