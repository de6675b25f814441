package qualify

import (
	"github.com/iwvelando/mortgage-qualify/pkg/factors"
	"github.com/iwvelando/mortgage-qualify/pkg/programs"
	"go.uber.org/zap"
)

// Engine composes the program table, factor registry, and adjustment
// configuration into a single qualification pipeline. The engine holds no
// mutable state; one instance serves concurrent requests.
type Engine struct {
	logger      *zap.Logger
	table       programs.Table
	registry    *factors.Registry
	boosts      factors.Boosts
	adjustments Adjustments
}

// EngineConfig carries the injected rule data for an Engine. Zero-value
// fields fall back to the built-in defaults.
type EngineConfig struct {
	Table       programs.Table
	Registry    *factors.Registry
	Boosts      *factors.Boosts
	Adjustments *Adjustments
}

// NewEngine creates an Engine with the given configuration.
func NewEngine(logger *zap.Logger, cfg EngineConfig) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Engine{
		logger:      logger,
		table:       cfg.Table,
		registry:    cfg.Registry,
		boosts:      factors.DefaultBoosts(),
		adjustments: DefaultAdjustments(),
	}
	if e.table == nil {
		e.table = programs.DefaultTable()
	}
	if e.registry == nil {
		e.registry = factors.DefaultRegistry()
	}
	if cfg.Boosts != nil {
		e.boosts = *cfg.Boosts
	}
	if cfg.Adjustments != nil {
		e.adjustments = *cfg.Adjustments
	}
	return e
}

// Qualify runs the full pipeline for one request: validation, program
// lookup, factor evaluation, limit resolution, and the bidirectional solve.
func (e *Engine) Qualify(req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	limits, err := e.table.Get(req.Program)
	if err != nil {
		return nil, err
	}

	eval, err := e.registry.Evaluate(req.Factors, e.boosts)
	if err != nil {
		return nil, err
	}

	allowed := ResolveAllowed(limits, req.FicoScore, eval, e.adjustments)

	result, err := Solve(req, allowed, eval)
	if err != nil {
		return nil, err
	}

	e.logger.Debug("qualification solved",
		zap.String("op", "qualify.Qualify"),
		zap.String("program", req.Program),
		zap.Int("strongFactors", eval.StrongCount),
		zap.Float64("allowedBackEnd", allowed.BackEnd),
		zap.Float64("maxPiti", result.MaxPITI),
	)
	return result, nil
}
