// Package pricing converts a maximum monthly housing payment into a maximum
// purchase price by inverting the level-payment amortization formula. Taxes
// and mortgage insurance scale with the price, so the formula is solved
// algebraically for price rather than iterated.
package pricing

import (
	"math"

	"github.com/iwvelando/mortgage-qualify/pkg/constants"
	"github.com/iwvelando/mortgage-qualify/pkg/mathutil"
	"github.com/iwvelando/mortgage-qualify/pkg/validation"
)

// Terms holds the financing parameters for the price inversion. Rates are
// annual percentages; AnnualInsurance is a fixed dollar amount per year.
type Terms struct {
	InterestRate    float64
	TermYears       int
	LoanToValue     float64
	PropertyTaxRate float64
	AnnualInsurance float64
	PMIRate         float64
}

// Validate checks the financing terms.
func (t Terms) Validate() error {
	if err := validation.ValidateInterestRate(t.InterestRate); err != nil {
		return err
	}
	if err := validation.ValidateTermYears(t.TermYears); err != nil {
		return err
	}
	if err := validation.ValidateLoanToValue(t.LoanToValue); err != nil {
		return err
	}
	if err := validation.ValidatePropertyTaxRate(t.PropertyTaxRate); err != nil {
		return err
	}
	if err := validation.ValidatePMIRate(t.PMIRate); err != nil {
		return err
	}
	return validation.ValidateAnnualInsurance(t.AnnualInsurance)
}

// Price is the result of a price inversion, floored to whole currency units.
type Price struct {
	MaxPurchasePrice float64
	MaxLoanAmount    float64
}

// annuityFactor returns the monthly payment per dollar of principal. At a
// zero interest rate the annuity formula degenerates to straight-line
// division over the term.
func annuityFactor(annualInterestRate float64, termMonths int) float64 {
	if annualInterestRate == 0 {
		return 1.0 / float64(termMonths)
	}
	periodicInterestRate := annualInterestRate / (constants.PercentageMultiplier * constants.MonthsPerYear)
	power := math.Pow(1.00+periodicInterestRate, float64(termMonths))
	return periodicInterestRate * power / (power - 1.00)
}

// Invert solves for the maximum purchase price affordable at the given
// maximum PITI. A non-positive maxPITI is a legitimate cannot-qualify
// outcome and returns a zero Price without error.
//
// The monthly payment decomposes against the price P with L = P * ltv:
//
//	maxPITI = L*annuity + P*taxRate/1200 + L*pmiRate/1200 + annualInsurance/12
//
// which solves linearly for P.
func Invert(maxPITI float64, terms Terms) (Price, error) {
	if err := terms.Validate(); err != nil {
		return Price{}, err
	}

	if !mathutil.IsPositive(maxPITI) {
		return Price{}, nil
	}

	piBudget := maxPITI - terms.AnnualInsurance/constants.MonthsPerYear
	if !mathutil.IsPositive(piBudget) {
		return Price{}, nil
	}

	ltv := terms.LoanToValue / constants.PercentageMultiplier
	termMonths := terms.TermYears * constants.MonthsPerYear
	monthlyRateDivisor := constants.PercentageMultiplier * constants.MonthsPerYear

	perDollarOfPrice := ltv*annuityFactor(terms.InterestRate, termMonths) +
		terms.PropertyTaxRate/monthlyRateDivisor +
		ltv*terms.PMIRate/monthlyRateDivisor

	price := piBudget / perDollarOfPrice

	maxPurchasePrice := math.Floor(price)
	maxLoanAmount := math.Floor(maxPurchasePrice * ltv)
	return Price{
		MaxPurchasePrice: maxPurchasePrice,
		MaxLoanAmount:    maxLoanAmount,
	}, nil
}
