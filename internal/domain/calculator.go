package domain

import (
	"context"
	"errors"
	"time"

	"github.com/davidbz/webcalc/internal/observability"
)

// Event types published by CalculatorService.
const (
	EventCalculationCompleted = "calculation.completed"
	EventCalculationFailed    = "calculation.failed"
)

// CalculatorService coerces requests and dispatches them to the operation registry.
type CalculatorService struct {
	registry *OperationRegistry
	cache    ResultCache
	events   EventPublisher
	cacheTTL time.Duration
}

// NewCalculatorService creates a new calculator service (DI constructor).
func NewCalculatorService(
	registry *OperationRegistry,
	cache ResultCache,
	events EventPublisher,
	cacheTTL time.Duration,
) *CalculatorService {
	if cache == nil {
		cache = NoopCache{}
	}
	return &CalculatorService{
		registry: registry,
		cache:    cache,
		events:   events,
		cacheTTL: cacheTTL,
	}
}

// Calculate coerces the operands, resolves the operator and returns the raw result.
// Every failure is a *Error.
func (s *CalculatorService) Calculate(ctx context.Context, req *CalculationRequest) (*Calculation, error) {
	if req == nil {
		req = &CalculationRequest{}
	}

	calc, err := s.calculate(ctx, req)
	if err != nil {
		s.publish(ctx, EventCalculationFailed, map[string]interface{}{
			"operator": req.operatorLabel(),
			"kind":     ErrorKind(err),
			"error":    err.Error(),
		})
		return nil, err
	}

	s.publish(ctx, EventCalculationCompleted, map[string]interface{}{
		"operator": calc.Operator,
		"a":        calc.A,
		"b":        calc.B,
		"result":   calc.Result,
		"cached":   calc.Cached,
	})
	return calc, nil
}

func (s *CalculatorService) calculate(ctx context.Context, req *CalculationRequest) (*Calculation, error) {
	a, err := ParseOperand(req.A)
	if err != nil {
		return nil, err
	}

	b, err := ParseOperand(req.B)
	if err != nil {
		return nil, err
	}

	token, err := req.Operator()
	if err != nil {
		return nil, err
	}

	op, err := s.registry.Lookup(token)
	if err != nil {
		return nil, err
	}

	calc := &Calculation{Operator: token, A: a, B: b}

	key := CacheKey{Operation: op.Name, A: a, B: b}
	if op.Arity == Unary {
		key.B = 0
	}

	logger := observability.FromContext(ctx)

	cached, cacheErr := s.cache.Get(ctx, key)
	switch {
	case cacheErr == nil:
		calc.Result = cached
		calc.Cached = true
		return calc, nil
	case !errors.Is(cacheErr, ErrCacheMiss):
		logger.Warn("result cache lookup failed", observability.Error(cacheErr))
	}

	result, err := op.Apply(a, b)
	if err != nil {
		return nil, err
	}
	calc.Result = result

	if setErr := s.cache.Set(ctx, key, result, s.cacheTTL); setErr != nil {
		logger.Warn("result cache store failed", observability.Error(setErr))
	}

	return calc, nil
}

// Operators returns the tokens accepted by Calculate.
func (s *CalculatorService) Operators() []string {
	return s.registry.Tokens()
}

func (s *CalculatorService) publish(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.events == nil {
		return
	}
	s.events.Publish(ctx, eventType, data)
}
