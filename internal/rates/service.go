package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Quote holds the market figures consumed by the price inversion. Rates are
// annual percentages; AnnualInsurance is dollars per year.
type Quote struct {
	PropertyTaxRate float64 `json:"propertyTaxRate"`
	AnnualInsurance float64 `json:"annualInsurance"`
	InterestRate    float64 `json:"interestRate"`
}

// nationalAverage backstops jurisdictions with no cached quote and no
// state average.
var nationalAverage = Quote{
	PropertyTaxRate: 1.10,
	AnnualInsurance: 1800,
	InterestRate:    6.75,
}

// stateAverages approximates per-state figures used when no fresher quote is
// cached. Values are refreshed out of band by the rate-collection jobs.
var stateAverages = map[string]Quote{
	"CA": {PropertyTaxRate: 0.75, AnnualInsurance: 1500, InterestRate: 6.70},
	"TX": {PropertyTaxRate: 1.80, AnnualInsurance: 2600, InterestRate: 6.80},
	"FL": {PropertyTaxRate: 0.90, AnnualInsurance: 3200, InterestRate: 6.85},
	"NY": {PropertyTaxRate: 1.40, AnnualInsurance: 1700, InterestRate: 6.65},
	"NJ": {PropertyTaxRate: 2.25, AnnualInsurance: 1200, InterestRate: 6.70},
	"IL": {PropertyTaxRate: 2.10, AnnualInsurance: 1600, InterestRate: 6.75},
	"WA": {PropertyTaxRate: 0.95, AnnualInsurance: 1400, InterestRate: 6.70},
	"CO": {PropertyTaxRate: 0.55, AnnualInsurance: 2200, InterestRate: 6.75},
}

// Service resolves quotes with a cache-then-average policy: a cached quote
// wins, then the jurisdiction average, then the national average. Callers
// always receive validated numerics, never an error for a cold cache.
type Service struct {
	logger *zap.Logger
	cache  Cache
}

// NewService creates a rate service over the given cache. A nil cache
// resolves averages only.
func NewService(logger *zap.Logger, cache Cache) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{logger: logger, cache: cache}
}

func cacheKey(state string) string {
	return fmt.Sprintf("rates:%s", strings.ToUpper(state))
}

// Lookup returns the best available quote for a state.
func (s *Service) Lookup(ctx context.Context, state string) Quote {
	state = strings.ToUpper(strings.TrimSpace(state))

	if s.cache != nil {
		if raw, ok := s.cache.Get(ctx, cacheKey(state)); ok {
			var quote Quote
			if err := json.Unmarshal([]byte(raw), &quote); err == nil {
				return quote
			}
			s.logger.Warn("discarding malformed cached quote",
				zap.String("op", "rates.Lookup"),
				zap.String("state", state),
			)
		}
	}

	if quote, ok := stateAverages[state]; ok {
		return quote
	}

	s.logger.Debug("no rate data for state, using national average",
		zap.String("op", "rates.Lookup"),
		zap.String("state", state),
	)
	return nationalAverage
}

// Store caches a quote for a state, overwriting any prior entry.
func (s *Service) Store(ctx context.Context, state string, quote Quote) error {
	if s.cache == nil {
		return fmt.Errorf("no cache configured")
	}
	raw, err := json.Marshal(quote)
	if err != nil {
		return err
	}
	return s.cache.Set(ctx, cacheKey(state), string(raw))
}
