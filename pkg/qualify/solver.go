// Package qualify implements the DTI qualification engine: the limit
// resolver and the bidirectional solver. All functions are pure; running
// them concurrently for independent requests is safe.
package qualify

import (
	"math"

	"github.com/iwvelando/mortgage-qualify/pkg/constants"
	"github.com/iwvelando/mortgage-qualify/pkg/factors"
	"github.com/iwvelando/mortgage-qualify/pkg/mathutil"
	"github.com/iwvelando/mortgage-qualify/pkg/validation"
)

// Request describes one qualification request. ProposedPITI switches the
// solver into evaluation mode when set.
type Request struct {
	AnnualIncome float64
	MonthlyDebts float64
	Program      string
	FicoScore    int
	LoanToValue  float64
	Factors      map[string]string
	ProposedPITI *float64
}

// Validate checks every request field constraint before any computation.
func (r Request) Validate() error {
	if err := validation.ValidateAnnualIncome(r.AnnualIncome); err != nil {
		return err
	}
	if err := validation.ValidateMonthlyDebts(r.MonthlyDebts); err != nil {
		return err
	}
	if err := validation.ValidateFicoScore(r.FicoScore); err != nil {
		return err
	}
	if err := validation.ValidateLoanToValue(r.LoanToValue); err != nil {
		return err
	}
	return validation.ValidateProposedPITI(r.ProposedPITI)
}

// Flag marks a qualification outcome relative to the allowed limits.
type Flag string

const (
	// FlagExceedsFrontEnd means the housing ratio exceeds the allowed front-end limit.
	FlagExceedsFrontEnd Flag = "exceedsFrontEnd"

	// FlagExceedsBackEnd means the total debt ratio exceeds the allowed back-end limit.
	FlagExceedsBackEnd Flag = "exceedsBackEnd"

	// FlagWithinLimits means neither limit is exceeded.
	FlagWithinLimits Flag = "withinLimits"
)

// Ratios holds an actual front-end/back-end DTI pair in percentage points.
type Ratios struct {
	FrontEnd float64
	BackEnd  float64
}

// Details reports the intermediate quantities behind a result.
// MaxHousingPayment is the binding ceiling before the zero floor;
// AvailableAfterDebts is the back-end ceiling regardless of which bound.
type Details struct {
	MonthlyIncome       float64
	MaxHousingPayment   float64
	AvailableAfterDebts float64
}

// Result is the outcome of one qualification solve.
type Result struct {
	Allowed           AllowedLimits
	Actual            Ratios
	MaxPITI           float64
	StrongFactorCount int
	Tier              factors.Tier
	Flags             []Flag
	Details           Details
}

// HasFlag reports whether the result carries the given flag.
func (r *Result) HasFlag(flag Flag) bool {
	for _, f := range r.Flags {
		if f == flag {
			return true
		}
	}
	return false
}

// Solve runs the bidirectional DTI solver. With ProposedPITI set it evaluates
// that payment against the allowed limits; otherwise it solves for the
// maximum qualifying PITI. The compensating-factor evaluation is carried
// through for reporting only; its boost is already folded into allowed.
func Solve(req Request, allowed AllowedLimits, eval factors.Evaluation) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	monthlyIncome := req.AnnualIncome / constants.MonthsPerYear

	ceilingFromBackEnd := monthlyIncome*allowed.BackEnd/constants.PercentageMultiplier - req.MonthlyDebts
	ceilingFromFrontEnd := math.Inf(1)
	if !allowed.FrontEndUnbounded {
		ceilingFromFrontEnd = monthlyIncome * allowed.FrontEnd / constants.PercentageMultiplier
	}
	binding := mathutil.Min(ceilingFromBackEnd, ceilingFromFrontEnd)

	var maxPITI float64
	if req.ProposedPITI != nil {
		maxPITI = *req.ProposedPITI
	} else {
		maxPITI = mathutil.Round(mathutil.Max(0, binding))
	}

	actual := Ratios{
		FrontEnd: maxPITI / monthlyIncome * constants.PercentageMultiplier,
		BackEnd:  (maxPITI + req.MonthlyDebts) / monthlyIncome * constants.PercentageMultiplier,
	}

	result := &Result{
		Allowed:           allowed,
		Actual:            actual,
		MaxPITI:           maxPITI,
		StrongFactorCount: eval.StrongCount,
		Tier:              eval.Tier,
		Flags:             resolveFlags(actual, allowed),
		Details: Details{
			MonthlyIncome:       mathutil.Round(monthlyIncome),
			MaxHousingPayment:   mathutil.Round(binding),
			AvailableAfterDebts: mathutil.Round(ceilingFromBackEnd),
		},
	}
	return result, nil
}

// resolveFlags compares actual ratios against allowed limits with a small
// tolerance so that a solved maximum fed back through evaluation mode never
// trips its own limit.
func resolveFlags(actual Ratios, allowed AllowedLimits) []Flag {
	var flags []Flag
	if !allowed.FrontEndUnbounded && actual.FrontEnd > allowed.FrontEnd &&
		!mathutil.WithinTolerance(actual.FrontEnd, allowed.FrontEnd, constants.RatioTolerance) {
		flags = append(flags, FlagExceedsFrontEnd)
	}
	if actual.BackEnd > allowed.BackEnd &&
		!mathutil.WithinTolerance(actual.BackEnd, allowed.BackEnd, constants.RatioTolerance) {
		flags = append(flags, FlagExceedsBackEnd)
	}
	if len(flags) == 0 {
		flags = append(flags, FlagWithinLimits)
	}
	return flags
}
