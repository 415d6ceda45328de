package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/davidbz/webcalc/internal/domain"
	"github.com/davidbz/webcalc/internal/http/web"
	"github.com/davidbz/webcalc/internal/observability"
)

const (
	calculatePath   = "/calculate"
	maxRequestBytes = 1 << 20
)

// CalculateResponse is the body of every /calculate response.
type CalculateResponse struct {
	OK     bool        `json:"ok"`
	Result json.Number `json:"result,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// Handler handles HTTP requests.
type Handler struct {
	calculator *domain.CalculatorService
	page       *web.Renderer
}

// NewHandler creates a new HTTP handler (DI constructor).
func NewHandler(calculator *domain.CalculatorService, page *web.Renderer) *Handler {
	return &Handler{
		calculator: calculator,
		page:       page,
	}
}

// HandleCalculate processes calculation requests. Every outcome is a JSON body;
// failures are always 400.
func (h *Handler) HandleCalculate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req domain.CalculationRequest
	if err := decodeRequest(w, r, &req); err != nil {
		observability.FromContext(ctx).Info("rejected calculation request", observability.Error(err))
		writeFailure(w, r, err)
		return
	}

	// Inject operator into context for downstream logging.
	if token, opErr := req.Operator(); opErr == nil {
		ctx = observability.WithOperator(ctx, token)
	}
	logger := observability.FromContext(ctx)

	calc, err := h.calculator.Calculate(ctx, &req)
	if err != nil {
		logger.Info("calculation failed",
			observability.String("kind", domain.ErrorKind(err)),
			observability.Error(err))
		writeFailure(w, r, err)
		return
	}

	// Rendering happens strictly after the registry has produced a raw result.
	result, err := renderResult(calc.Result)
	if err != nil {
		logger.Info("calculation result not renderable",
			observability.Float64("result", calc.Result),
			observability.Error(err))
		writeFailure(w, r, err)
		return
	}

	logger.Debug("calculation succeeded",
		observability.String("result", result.String()),
		observability.Bool("cached", calc.Cached))

	writeJSON(w, r, http.StatusOK, CalculateResponse{OK: true, Result: result})
}

// HandleOperations lists the operator tokens accepted by /calculate.
func (h *Handler) HandleOperations(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string][]string{
		"operations": h.calculator.Operators(),
	})
}

// HandleIndex serves the calculator page.
func (h *Handler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := h.page.Render(w, web.Page{
		Operators:     h.calculator.Operators(),
		CalculatePath: calculatePath,
	})
	if err != nil {
		observability.FromContext(r.Context()).Error("failed to render page", observability.Error(err))
	}
}

// HandleHealth handles health check requests.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}

// decodeRequest reads a single JSON value from the body into req. An empty body
// is an empty request; anything after the first value is rejected.
func decodeRequest(w http.ResponseWriter, r *http.Request, req *domain.CalculationRequest) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))

	err := dec.Decode(req)
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return domain.MalformedInput("invalid request body: %v", err)
	}

	if trailingErr := dec.Decode(&struct{}{}); !errors.Is(trailingErr, io.EOF) {
		return domain.MalformedInput("invalid request body: unexpected data after JSON object")
	}

	return nil
}

func writeFailure(w http.ResponseWriter, r *http.Request, err error) {
	message := err.Error()
	if errors.Is(err, domain.ErrDivisionByZero) {
		message = "division by zero"
	}
	writeJSON(w, r, http.StatusBadRequest, CalculateResponse{OK: false, Error: message})
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		// Already written status, can't change it, just log.
		observability.FromContext(r.Context()).Error("failed to encode response", observability.Error(err))
	}
}
