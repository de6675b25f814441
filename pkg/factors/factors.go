// Package factors evaluates a borrower's compensating factors. Factor
// definitions are data: each factor carries a fixed, ordered option set and
// the subset of options that count as a strong showing. Evaluation tallies
// strong factors into a tier that grants a bounded back-end DTI boost.
package factors

import (
	"fmt"
	"sort"

	"github.com/iwvelando/mortgage-qualify/pkg/constants"
)

// Tier classifies the compensating-factor strength of a borrower.
type Tier string

const (
	// TierBasic means no strong factors; no boost applies.
	TierBasic Tier = "basic"

	// TierEnhanced means exactly one strong factor.
	TierEnhanced Tier = "enhanced"

	// TierMaximum means two or more strong factors.
	TierMaximum Tier = "maximum"
)

// Definition describes one compensating factor: its id, the ordered option
// values a borrower may select, and which of those count as strong.
type Definition struct {
	ID      string
	Name    string
	Options []string
	Strong  []string
}

// IsStrong reports whether the given option value satisfies this factor's
// strong predicate.
func (d Definition) IsStrong(value string) bool {
	for _, s := range d.Strong {
		if s == value {
			return true
		}
	}
	return false
}

func (d Definition) hasOption(value string) bool {
	for _, o := range d.Options {
		if o == value {
			return true
		}
	}
	return false
}

// Registry holds all defined compensating factors keyed by id.
type Registry struct {
	factors map[string]Definition
	order   []string
}

// NewRegistry creates a registry from the given definitions, preserving
// their order for display purposes.
func NewRegistry(defs []Definition) *Registry {
	r := &Registry{factors: make(map[string]Definition, len(defs))}
	for _, def := range defs {
		if _, exists := r.factors[def.ID]; exists {
			continue
		}
		r.factors[def.ID] = def
		r.order = append(r.order, def.ID)
	}
	return r
}

// DefaultRegistry returns the standard compensating-factor definitions.
func DefaultRegistry() *Registry {
	return NewRegistry([]Definition{
		{
			ID:      "cash_reserves",
			Name:    "Cash Reserves",
			Options: []string{"none", "1-2 months", "3-5 months", "6+ months"},
			Strong:  []string{"6+ months"},
		},
		{
			ID:      "residual_income",
			Name:    "Residual Income",
			Options: []string{"low", "adequate", "high"},
			Strong:  []string{"high"},
		},
		{
			ID:      "payment_increase",
			Name:    "Housing Payment Increase",
			Options: []string{"decrease", "<10%", "10-25%", "25-50%", ">50%"},
			Strong:  []string{"decrease", "<10%"},
		},
		{
			ID:      "employment_history",
			Name:    "Employment History",
			Options: []string{"<1 year", "1-2 years", "2-5 years", "5+ years"},
			Strong:  []string{"5+ years"},
		},
		{
			ID:      "credit_utilization",
			Name:    "Credit Utilization",
			Options: []string{">50%", "30-50%", "10-30%", "<10%"},
			Strong:  []string{"<10%"},
		},
		{
			ID:      "down_payment",
			Name:    "Down Payment",
			Options: []string{"<5%", "5-10%", "10-20%", "20%+"},
			Strong:  []string{"20%+"},
		},
		{
			ID:      "professional_license",
			Name:    "Professional License",
			Options: []string{"no", "yes"},
			Strong:  []string{"yes"},
		},
		{
			ID:      "overtime_income",
			Name:    "Overtime Income",
			Options: []string{"none", "occasional", "documented 2+ years"},
			Strong:  []string{"documented 2+ years"},
		},
	})
}

// Get returns the definition for a factor id.
func (r *Registry) Get(id string) (Definition, bool) {
	def, ok := r.factors[id]
	return def, ok
}

// IDs returns all factor ids in definition order.
func (r *Registry) IDs() []string {
	return append([]string(nil), r.order...)
}

// Boosts holds the back-end percentage-point boosts granted per tier.
// Magnitudes are configuration, not solver logic.
type Boosts struct {
	Enhanced float64
	Maximum  float64
}

// DefaultBoosts returns the standard tier boosts.
func DefaultBoosts() Boosts {
	return Boosts{
		Enhanced: constants.DefaultEnhancedBoost,
		Maximum:  constants.DefaultMaximumBoost,
	}
}

// Evaluation is the outcome of scoring a borrower's factor selections.
type Evaluation struct {
	StrongCount  int
	Tier         Tier
	BackEndBoost float64
}

// Evaluate scores the given factor selections against the registry. Every
// selection must name a defined factor and one of its declared options;
// anything else is rejected rather than silently defaulted. An empty
// selection map is valid and evaluates to the basic tier.
func (r *Registry) Evaluate(selections map[string]string, boosts Boosts) (Evaluation, error) {
	// Iterate ids in sorted order so error messages are deterministic.
	ids := make([]string, 0, len(selections))
	for id := range selections {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	strong := 0
	for _, id := range ids {
		value := selections[id]
		def, ok := r.factors[id]
		if !ok {
			return Evaluation{}, fmt.Errorf("unknown compensating factor %q", id)
		}
		if !def.hasOption(value) {
			return Evaluation{}, fmt.Errorf("factor %q has no option %q (options: %v)", id, value, def.Options)
		}
		if def.IsStrong(value) {
			strong++
		}
	}

	eval := Evaluation{StrongCount: strong}
	switch {
	case strong == 0:
		eval.Tier = TierBasic
	case strong == 1:
		eval.Tier = TierEnhanced
		eval.BackEndBoost = boosts.Enhanced
	default:
		eval.Tier = TierMaximum
		eval.BackEndBoost = boosts.Maximum
	}
	return eval, nil
}
