// Package server exposes the qualification engine over a JSON HTTP API.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/iwvelando/mortgage-qualify/internal/rates"
	"github.com/iwvelando/mortgage-qualify/pkg/constants"
	"github.com/iwvelando/mortgage-qualify/pkg/pricing"
	"github.com/iwvelando/mortgage-qualify/pkg/qualify"
	"go.uber.org/zap"
)

type handler struct {
	logger      *zap.Logger
	maxBodySize int64
	version     string
	engine      *qualify.Engine
	rates       *rates.Service
}

// NewHandler constructs the HTTP handler that serves the qualification API.
// A nil rate service disables market-rate enrichment; financing terms must
// then be fully specified by the caller.
func NewHandler(logger *zap.Logger, maxBodySize int64, version string, engine *qualify.Engine, rateService *rates.Service) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxBodySize <= 0 {
		maxBodySize = constants.DefaultMaxBodySizeBytes
	}
	if engine == nil {
		engine = qualify.NewEngine(logger, qualify.EngineConfig{})
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:      logger,
		maxBodySize: maxBodySize,
		version:     trimmedVersion,
		engine:      engine,
		rates:       rateService,
	}

	mux := http.NewServeMux()

	// Qualification API endpoint
	mux.HandleFunc("/api/qualify", h.handleQualify)

	// Standalone price inversion endpoint
	mux.HandleFunc("/api/price", h.handlePrice)

	// Version endpoint for client metadata
	mux.HandleFunc("/api/version", h.handleVersion)

	return mux
}

type financingTerms struct {
	InterestRate    *float64 `json:"interestRate,omitempty"`
	TermYears       int      `json:"termYears"`
	PropertyTaxRate *float64 `json:"propertyTaxRate,omitempty"`
	AnnualInsurance *float64 `json:"annualInsurance,omitempty"`
	PmiRate         float64  `json:"pmiRate"`
	State           string   `json:"state,omitempty"`
}

type qualifyRequest struct {
	AnnualIncome float64           `json:"annualIncome"`
	MonthlyDebts float64           `json:"monthlyDebts"`
	Program      string            `json:"program"`
	FicoScore    int               `json:"ficoScore"`
	LoanToValue  float64           `json:"loanToValue"`
	Factors      map[string]string `json:"factors,omitempty"`
	ProposedPiti *float64          `json:"proposedPiti,omitempty"`
	Financing    *financingTerms   `json:"financing,omitempty"`
}

type ratioPair struct {
	FrontEnd float64 `json:"frontEnd"`
	BackEnd  float64 `json:"backEnd"`
}

type calculationDetails struct {
	MonthlyIncome       float64 `json:"monthlyIncome"`
	MaxHousingPayment   float64 `json:"maxHousingPayment"`
	AvailableAfterDebts float64 `json:"availableAfterDebts"`
}

type priceResult struct {
	MaxPurchasePrice float64 `json:"maxPurchasePrice"`
	MaxLoanAmount    float64 `json:"maxLoanAmount"`
}

type qualifyResponse struct {
	ResultID          string             `json:"resultId"`
	Allowed           ratioPair          `json:"allowed"`
	Actual            ratioPair          `json:"actual"`
	MaxPiti           float64            `json:"maxPiti"`
	StrongFactorCount int                `json:"strongFactorCount"`
	Tier              string             `json:"tier"`
	Flags             []string           `json:"flags"`
	Details           calculationDetails `json:"details"`
	Price             *priceResult       `json:"price,omitempty"`
	Duration          string             `json:"duration"`
}

func (h *handler) handleQualify(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	var payload qualifyRequest
	if err := h.decodeJSON(w, r, &payload); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), "server.handleQualify")
		return
	}

	result, err := h.engine.Qualify(qualify.Request{
		AnnualIncome: payload.AnnualIncome,
		MonthlyDebts: payload.MonthlyDebts,
		Program:      payload.Program,
		FicoScore:    payload.FicoScore,
		LoanToValue:  payload.LoanToValue,
		Factors:      payload.Factors,
		ProposedPITI: payload.ProposedPiti,
	})
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), "server.handleQualify")
		return
	}

	var price *priceResult
	if payload.Financing != nil {
		terms, err := h.resolveTerms(r, payload.LoanToValue, payload.Financing)
		if err != nil {
			h.respondError(w, http.StatusBadRequest, err.Error(), "server.handleQualify")
			return
		}

		inverted, err := pricing.Invert(result.MaxPITI, terms)
		if err != nil {
			h.respondError(w, http.StatusBadRequest, err.Error(), "server.handleQualify")
			return
		}
		price = &priceResult{
			MaxPurchasePrice: inverted.MaxPurchasePrice,
			MaxLoanAmount:    inverted.MaxLoanAmount,
		}
	}

	elapsed := time.Since(start)
	response := qualifyResponse{
		ResultID:          uuid.NewString(),
		Allowed:           ratioPair{FrontEnd: result.Allowed.FrontEnd, BackEnd: result.Allowed.BackEnd},
		Actual:            ratioPair{FrontEnd: result.Actual.FrontEnd, BackEnd: result.Actual.BackEnd},
		MaxPiti:           result.MaxPITI,
		StrongFactorCount: result.StrongFactorCount,
		Tier:              string(result.Tier),
		Flags:             flagStrings(result.Flags),
		Details: calculationDetails{
			MonthlyIncome:       result.Details.MonthlyIncome,
			MaxHousingPayment:   result.Details.MaxHousingPayment,
			AvailableAfterDebts: result.Details.AvailableAfterDebts,
		},
		Price:    price,
		Duration: elapsed.String(),
	}

	h.logger.Info("qualification computed",
		zap.String("op", "server.handleQualify"),
		zap.String("resultId", response.ResultID),
		zap.String("program", payload.Program),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, response)
}

// resolveTerms fills unspecified rate fields from the market-rate service
// when a state is given; fully-specified terms pass through untouched.
func (h *handler) resolveTerms(r *http.Request, loanToValue float64, ft *financingTerms) (pricing.Terms, error) {
	terms := pricing.Terms{
		TermYears:   ft.TermYears,
		LoanToValue: loanToValue,
		PMIRate:     ft.PmiRate,
	}

	needsQuote := ft.InterestRate == nil || ft.PropertyTaxRate == nil || ft.AnnualInsurance == nil
	var quote rates.Quote
	if needsQuote {
		if h.rates == nil || ft.State == "" {
			return pricing.Terms{}, errors.New("financing terms incomplete and no state given for rate lookup")
		}
		quote = h.rates.Lookup(r.Context(), ft.State)
	}

	if ft.InterestRate != nil {
		terms.InterestRate = *ft.InterestRate
	} else {
		terms.InterestRate = quote.InterestRate
	}
	if ft.PropertyTaxRate != nil {
		terms.PropertyTaxRate = *ft.PropertyTaxRate
	} else {
		terms.PropertyTaxRate = quote.PropertyTaxRate
	}
	if ft.AnnualInsurance != nil {
		terms.AnnualInsurance = *ft.AnnualInsurance
	} else {
		terms.AnnualInsurance = quote.AnnualInsurance
	}

	return terms, nil
}

type priceRequest struct {
	MaxPiti         float64 `json:"maxPiti"`
	InterestRate    float64 `json:"interestRate"`
	TermYears       int     `json:"termYears"`
	LoanToValue     float64 `json:"loanToValue"`
	PropertyTaxRate float64 `json:"propertyTaxRate"`
	AnnualInsurance float64 `json:"annualInsurance"`
	PmiRate         float64 `json:"pmiRate"`
}

func (h *handler) handlePrice(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	var payload priceRequest
	if err := h.decodeJSON(w, r, &payload); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), "server.handlePrice")
		return
	}

	price, err := pricing.Invert(payload.MaxPiti, pricing.Terms{
		InterestRate:    payload.InterestRate,
		TermYears:       payload.TermYears,
		LoanToValue:     payload.LoanToValue,
		PropertyTaxRate: payload.PropertyTaxRate,
		AnnualInsurance: payload.AnnualInsurance,
		PMIRate:         payload.PmiRate,
	})
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), "server.handlePrice")
		return
	}

	h.writeJSON(w, http.StatusOK, priceResult{
		MaxPurchasePrice: price.MaxPurchasePrice,
		MaxLoanAmount:    price.MaxLoanAmount,
	})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	if h.maxBodySize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return fmt.Errorf("request exceeds limit of %d bytes", h.maxBodySize)
		}
		return fmt.Errorf("failed to decode request: %v", err)
	}
	return nil
}

func (h *handler) respondError(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("qualification request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}

func flagStrings(flags []qualify.Flag) []string {
	out := make([]string, 0, len(flags))
	for _, f := range flags {
		out = append(out, string(f))
	}
	return out
}
