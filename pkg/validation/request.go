// Package validation provides request field validation utilities.
package validation

import (
	"fmt"

	"github.com/iwvelando/mortgage-qualify/pkg/constants"
)

// ValidateAnnualIncome checks that annual income is positive.
func ValidateAnnualIncome(annualIncome float64) error {
	if annualIncome <= 0 {
		return fmt.Errorf("annualIncome must be greater than 0, got %.2f", annualIncome)
	}
	return nil
}

// ValidateMonthlyDebts checks that monthly debts are not negative.
func ValidateMonthlyDebts(monthlyDebts float64) error {
	if monthlyDebts < 0 {
		return fmt.Errorf("monthlyDebts must not be negative, got %.2f", monthlyDebts)
	}
	return nil
}

// ValidateFicoScore checks that the FICO score is within the valid range.
func ValidateFicoScore(ficoScore int) error {
	if ficoScore < constants.MinFicoScore || ficoScore > constants.MaxFicoScore {
		return fmt.Errorf("ficoScore must be between %d and %d, got %d",
			constants.MinFicoScore, constants.MaxFicoScore, ficoScore)
	}
	return nil
}

// ValidateLoanToValue checks that the LTV percentage is within (0, 100].
func ValidateLoanToValue(ltv float64) error {
	if ltv <= 0 || ltv > 100 {
		return fmt.Errorf("loanToValue must be greater than 0 and at most 100, got %.2f", ltv)
	}
	return nil
}

// ValidateProposedPITI checks that a proposed payment, when present, is not
// negative.
func ValidateProposedPITI(proposedPITI *float64) error {
	if proposedPITI != nil && *proposedPITI < 0 {
		return fmt.Errorf("proposedPiti must not be negative, got %.2f", *proposedPITI)
	}
	return nil
}

// ValidateInterestRate checks that an annual interest rate percentage is not
// negative.
func ValidateInterestRate(rate float64) error {
	if rate < 0 {
		return fmt.Errorf("interestRate must not be negative, got %.2f", rate)
	}
	return nil
}

// ValidatePropertyTaxRate checks that an annual property tax rate percentage
// is not negative.
func ValidatePropertyTaxRate(rate float64) error {
	if rate < 0 {
		return fmt.Errorf("propertyTaxRate must not be negative, got %.2f", rate)
	}
	return nil
}

// ValidatePMIRate checks that an annual PMI rate percentage is not negative.
func ValidatePMIRate(rate float64) error {
	if rate < 0 {
		return fmt.Errorf("pmiRate must not be negative, got %.2f", rate)
	}
	return nil
}

// ValidateAnnualInsurance checks that an annual insurance amount is not
// negative.
func ValidateAnnualInsurance(amount float64) error {
	if amount < 0 {
		return fmt.Errorf("annualInsurance must not be negative, got %.2f", amount)
	}
	return nil
}

// ValidateTermYears checks that a loan term is positive.
func ValidateTermYears(termYears int) error {
	if termYears <= 0 {
		return fmt.Errorf("termYears must be greater than 0, got %d", termYears)
	}
	return nil
}

// ValidateOutputFormat checks that the requested output format is supported.
func ValidateOutputFormat(format string) error {
	switch format {
	case constants.OutputFormatPretty, constants.OutputFormatCSV:
		return nil
	}
	return fmt.Errorf("invalid output format %q; expected %q or %q",
		format, constants.OutputFormatPretty, constants.OutputFormatCSV)
}
