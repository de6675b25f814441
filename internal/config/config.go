// Package config defines the data structures related to configuration and
// includes functions for loading and translating the config into engine rule
// data.
package config

import (
	"fmt"
	"io"

	"github.com/iwvelando/mortgage-qualify/internal/rates"
	"github.com/iwvelando/mortgage-qualify/pkg/constants"
	"github.com/iwvelando/mortgage-qualify/pkg/factors"
	"github.com/iwvelando/mortgage-qualify/pkg/pricing"
	"github.com/iwvelando/mortgage-qualify/pkg/programs"
	"github.com/iwvelando/mortgage-qualify/pkg/qualify"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for mortgage-qualify.
type Configuration struct {
	Programs  map[string]ProgramLimits
	Rules     Rules
	Scenarios []Scenario
	Logging   LoggingConfig `yaml:"logging,omitempty"`
	Output    OutputConfig  `yaml:"output,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// ProgramLimits overrides or adds one loan program's DTI limit tiers, in
// percentage points.
type ProgramLimits struct {
	FrontEnd LimitTier
	BackEnd  LimitTier
}

// LimitTier holds one axis of tiered limits. A nil HardCap means the program
// enforces no cap on that axis.
type LimitTier struct {
	Default float64
	Warning float64
	HardCap *float64
}

// Rules holds the adjustable qualification rule values: compensating-factor
// boosts and the credit-score adjustment.
type Rules struct {
	EnhancedBoost        *float64
	MaximumBoost         *float64
	CreditScoreThreshold *int
	CreditScoreBonus     *float64
}

// Scenario holds one borrower scenario to qualify.
type Scenario struct {
	Name         string
	AnnualIncome float64
	MonthlyDebts float64
	Program      string
	FicoScore    int
	LoanToValue  float64
	Factors      map[string]string
	ProposedPiti *float64
	Financing    *Financing
}

// Financing holds the optional terms needed to invert a maximum payment into
// a purchase price.
type Financing struct {
	InterestRate    float64
	TermYears       int
	PropertyTaxRate float64
	AnnualInsurance float64
	PmiRate         float64
	State           string
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.AutomaticEnv()

	v.SetConfigType("yml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// LoadConfigurationFromReader loads YAML-formatted configuration from an
// arbitrary reader.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := viper.New()
	v.SetConfigType("yml")

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}

	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// ProgramTable merges the built-in program table with any configured
// overrides. Configured programs replace built-ins of the same id wholesale.
func (c *Configuration) ProgramTable() programs.Table {
	table := programs.DefaultTable()
	for id, limits := range c.Programs {
		table[id] = programs.LoanProgramLimits{
			FrontEnd: programs.RatioTier{
				Default: limits.FrontEnd.Default,
				Warning: limits.FrontEnd.Warning,
				HardCap: limits.FrontEnd.HardCap,
			},
			BackEnd: programs.RatioTier{
				Default: limits.BackEnd.Default,
				Warning: limits.BackEnd.Warning,
				HardCap: limits.BackEnd.HardCap,
			},
		}
	}
	return table
}

// EngineConfig translates the configuration into engine rule data.
func (c *Configuration) EngineConfig() qualify.EngineConfig {
	boosts := factors.DefaultBoosts()
	if c.Rules.EnhancedBoost != nil {
		boosts.Enhanced = *c.Rules.EnhancedBoost
	}
	if c.Rules.MaximumBoost != nil {
		boosts.Maximum = *c.Rules.MaximumBoost
	}

	adjustments := qualify.DefaultAdjustments()
	if c.Rules.CreditScoreThreshold != nil {
		adjustments.CreditScoreThreshold = *c.Rules.CreditScoreThreshold
	}
	if c.Rules.CreditScoreBonus != nil {
		adjustments.CreditScoreBonus = *c.Rules.CreditScoreBonus
	}

	return qualify.EngineConfig{
		Table:       c.ProgramTable(),
		Boosts:      &boosts,
		Adjustments: &adjustments,
	}
}

// Request translates a configured scenario into an engine request.
func (s *Scenario) Request() qualify.Request {
	return qualify.Request{
		AnnualIncome: s.AnnualIncome,
		MonthlyDebts: s.MonthlyDebts,
		Program:      s.Program,
		FicoScore:    s.FicoScore,
		LoanToValue:  s.LoanToValue,
		Factors:      s.Factors,
		ProposedPITI: s.ProposedPiti,
	}
}

// Terms translates the scenario's financing into pricing terms. When a quote
// is supplied (the scenario names a state), zero-valued rate fields fill from
// the market quote; explicitly configured values always win.
func (s *Scenario) Terms(quote *rates.Quote) pricing.Terms {
	terms := pricing.Terms{
		InterestRate:    s.Financing.InterestRate,
		TermYears:       s.Financing.TermYears,
		LoanToValue:     s.LoanToValue,
		PropertyTaxRate: s.Financing.PropertyTaxRate,
		AnnualInsurance: s.Financing.AnnualInsurance,
		PMIRate:         s.Financing.PmiRate,
	}
	if quote != nil {
		if terms.InterestRate == 0 {
			terms.InterestRate = quote.InterestRate
		}
		if terms.PropertyTaxRate == 0 {
			terms.PropertyTaxRate = quote.PropertyTaxRate
		}
		if terms.AnnualInsurance == 0 {
			terms.AnnualInsurance = quote.AnnualInsurance
		}
	}
	return terms
}

// ValidateConfiguration performs general validation of the configuration and
// returns warnings. Warnings are not fatal; hard validation happens per
// request inside the engine.
func (c *Configuration) ValidateConfiguration() []string {
	warnings := c.ProgramTable().Validate()

	if len(c.Scenarios) == 0 {
		warnings = append(warnings, "no scenarios configured; nothing to qualify")
	}
	for _, scenario := range c.Scenarios {
		if scenario.Name == "" {
			warnings = append(warnings, "scenario with empty name")
		}
		if scenario.Financing != nil && scenario.Financing.TermYears == 0 {
			warnings = append(warnings, fmt.Sprintf("scenario '%s' has financing terms without termYears; price inversion will fail",
				scenario.Name))
		}
	}

	if c.Rules.EnhancedBoost != nil && c.Rules.MaximumBoost != nil &&
		*c.Rules.EnhancedBoost > *c.Rules.MaximumBoost {
		warnings = append(warnings, fmt.Sprintf("enhanced boost %.2f exceeds maximum boost %.2f",
			*c.Rules.EnhancedBoost, *c.Rules.MaximumBoost))
	}
	if c.Rules.CreditScoreThreshold != nil {
		if *c.Rules.CreditScoreThreshold < constants.MinFicoScore || *c.Rules.CreditScoreThreshold > constants.MaxFicoScore {
			warnings = append(warnings, fmt.Sprintf("credit score threshold %d outside FICO range %d-%d",
				*c.Rules.CreditScoreThreshold, constants.MinFicoScore, constants.MaxFicoScore))
		}
	}

	return warnings
}
