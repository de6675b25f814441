// Package constants provides shared constants for the mortgage-qualify application.
package constants

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// RatioTolerance is the tolerance for DTI ratio comparisons, in
	// percentage points
	RatioTolerance = 0.01
)

// Credit score bounds and adjustments
const (
	// MinFicoScore is the lowest valid FICO score
	MinFicoScore = 300

	// MaxFicoScore is the highest valid FICO score
	MaxFicoScore = 850

	// DefaultCreditScoreThreshold is the FICO score at or above which the
	// back-end credit adjustment applies
	DefaultCreditScoreThreshold = 720

	// DefaultCreditScoreBonus is the back-end percentage-point bonus granted
	// at or above the credit score threshold
	DefaultCreditScoreBonus = 3.0
)

// Compensating-factor boost defaults, in back-end percentage points
const (
	// DefaultEnhancedBoost applies when exactly one strong factor is present
	DefaultEnhancedBoost = 2.0

	// DefaultMaximumBoost applies when two or more strong factors are present
	DefaultMaximumBoost = 5.0
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxBodySizeBytes is the default maximum request body size (256 KB)
	DefaultMaxBodySizeBytes int64 = 256 * 1024
)
