// Package output provides utilities for formatting and displaying
// qualification results.
package output

import (
	"fmt"
	"strings"

	"github.com/iwvelando/mortgage-qualify/pkg/pricing"
	"github.com/iwvelando/mortgage-qualify/pkg/qualify"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Qualification pairs a named borrower scenario with its solved result and,
// when financing terms were supplied, the derived purchase price.
type Qualification struct {
	Name   string
	Result *qualify.Result
	Price  *pricing.Price
}

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(results []Qualification) {
	p := message.NewPrinter(language.English)
	for i, q := range results {
		fmt.Printf("--- Results for scenario %s ---\n", q.Name)
		_, _ = p.Printf("Allowed DTI:      %.2f%% / %.2f%%\n", q.Result.Allowed.FrontEnd, q.Result.Allowed.BackEnd)
		_, _ = p.Printf("Actual DTI:       %.2f%% / %.2f%%\n", q.Result.Actual.FrontEnd, q.Result.Actual.BackEnd)
		_, _ = p.Printf("Max PITI:         $%.2f\n", q.Result.MaxPITI)
		_, _ = p.Printf("Monthly income:   $%.2f\n", q.Result.Details.MonthlyIncome)
		_, _ = p.Printf("After debts:      $%.2f\n", q.Result.Details.AvailableAfterDebts)
		fmt.Printf("Strong factors:   %d (%s)\n", q.Result.StrongFactorCount, q.Result.Tier)
		fmt.Printf("Flags:            %s\n", flagList(q.Result.Flags))
		if q.Price != nil {
			_, _ = p.Printf("Max price:        $%.0f\n", q.Price.MaxPurchasePrice)
			_, _ = p.Printf("Max loan:         $%.0f\n", q.Price.MaxLoanAmount)
		}
		if i < len(results)-1 {
			fmt.Printf("\n")
		}
	}
}

// CsvFormat outputs in comma-separated value format.
func CsvFormat(results []Qualification) {
	fmt.Print(CsvString(results))
}

// CsvString renders the results as CSV.
func CsvString(results []Qualification) string {
	var b strings.Builder
	b.WriteString(`"scenario","allowedFrontEnd","allowedBackEnd","actualFrontEnd","actualBackEnd","maxPiti","strongFactors","tier","flags","maxPurchasePrice","maxLoanAmount"`)
	b.WriteString("\n")
	for _, q := range results {
		fmt.Fprintf(&b, `"%s","%.2f","%.2f","%.2f","%.2f","%.2f","%d","%s","%s"`,
			q.Name,
			q.Result.Allowed.FrontEnd, q.Result.Allowed.BackEnd,
			q.Result.Actual.FrontEnd, q.Result.Actual.BackEnd,
			q.Result.MaxPITI,
			q.Result.StrongFactorCount, q.Result.Tier,
			flagList(q.Result.Flags))
		if q.Price != nil {
			fmt.Fprintf(&b, `,"%.0f","%.0f"`, q.Price.MaxPurchasePrice, q.Price.MaxLoanAmount)
		} else {
			b.WriteString(`,"",""`)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func flagList(flags []qualify.Flag) string {
	parts := make([]string, 0, len(flags))
	for _, f := range flags {
		parts = append(parts, string(f))
	}
	return strings.Join(parts, ",")
}
