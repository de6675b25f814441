package qualify

import (
	"github.com/iwvelando/mortgage-qualify/pkg/constants"
	"github.com/iwvelando/mortgage-qualify/pkg/factors"
	"github.com/iwvelando/mortgage-qualify/pkg/mathutil"
	"github.com/iwvelando/mortgage-qualify/pkg/programs"
)

// AllowedLimits is the resolved DTI limit pair for one request, in percentage
// points. FrontEndUnbounded is set for programs that declare no front-end hard
// cap; the solver treats the front-end ceiling as absent in that case.
type AllowedLimits struct {
	FrontEnd          float64
	BackEnd           float64
	FrontEndUnbounded bool
}

// Adjustments holds the credit-score adjustment applied by the limit
// resolver. Values are configuration, not solver logic.
type Adjustments struct {
	CreditScoreThreshold int
	CreditScoreBonus     float64
}

// DefaultAdjustments returns the standard credit-score adjustment.
func DefaultAdjustments() Adjustments {
	return Adjustments{
		CreditScoreThreshold: constants.DefaultCreditScoreThreshold,
		CreditScoreBonus:     constants.DefaultCreditScoreBonus,
	}
}

// ResolveAllowed combines program limits, the borrower's credit score, and
// the compensating-factor evaluation into the limit pair actually applied.
// Additive adjustments land on the back-end axis only; hard caps are clamped
// last so the result never exceeds them and never drops below the program
// defaults.
func ResolveAllowed(limits programs.LoanProgramLimits, ficoScore int, eval factors.Evaluation, adj Adjustments) AllowedLimits {
	allowed := AllowedLimits{
		FrontEnd:          limits.FrontEnd.Default,
		BackEnd:           limits.BackEnd.Default,
		FrontEndUnbounded: limits.FrontEnd.HardCap == nil,
	}

	if ficoScore >= adj.CreditScoreThreshold {
		allowed.BackEnd += adj.CreditScoreBonus
	}
	allowed.BackEnd += eval.BackEndBoost

	if limits.BackEnd.HardCap != nil {
		allowed.BackEnd = mathutil.Min(allowed.BackEnd, *limits.BackEnd.HardCap)
	}
	if limits.FrontEnd.HardCap != nil {
		allowed.FrontEnd = mathutil.Min(allowed.FrontEnd, *limits.FrontEnd.HardCap)
	}

	return allowed
}
