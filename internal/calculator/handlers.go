package calculator

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go-chi-calculator/internal/handlers"
	"go-chi-calculator/internal/observability"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// tracer is the calculator's dedicated OpenTelemetry tracer.
var tracer = otel.Tracer("calculator")

// Handler serves the calculator over HTTP.
type Handler struct {
	calc     *Calculator
	sessions *SessionStore
}

// NewHandler serves calc with at most maxSessions open chaining sessions
// (DefaultMaxSessions when maxSessions <= 0).
func NewHandler(calc *Calculator, maxSessions int) *Handler {
	return &Handler{
		calc:     calc,
		sessions: NewSessionStore(calc, maxSessions),
	}
}

// statusFor maps calculator errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrUnsupportedOperation), errors.Is(err, ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicateOperation), errors.Is(err, ErrChainState):
		return http.StatusConflict
	case errors.Is(err, ErrSessionLimit):
		return http.StatusTooManyRequests
	default:
		return http.StatusBadRequest
	}
}

func elapsedMillis(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000.0
}

// ---------------------------------------------------------------------------
// Handlers — single operations
// ---------------------------------------------------------------------------

// Operations handles GET /calculator/operations
func (h *Handler) Operations(w http.ResponseWriter, r *http.Request) {
	handlers.WriteJSON(w, http.StatusOK, OperationsResponse{Operations: h.calc.Operations()})
}

// Apply handles POST /calculator/{operation} for built-in and registered
// operations.
func (h *Handler) Apply(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)
	opName := strings.ToLower(chi.URLParam(r, "operation"))

	ctx, span := tracer.Start(ctx, fmt.Sprintf("calculator.%s", opName),
		trace.WithAttributes(
			attribute.String("calculator.operation", opName),
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	var req CalcRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, opName, "invalid request body", err, http.StatusBadRequest, w)
		return
	}

	span.SetAttributes(
		attribute.Float64("calculator.operand.a", req.A),
		attribute.Float64("calculator.operand.b", req.B),
	)

	start := time.Now()
	result, err := h.calc.Apply(opName, req.A, req.B)
	elapsed := elapsedMillis(start)

	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, opName, err.Error(), err, statusFor(err), w)
		return
	}

	recordOperation(ctx, opName, elapsed)
	recordResult(ctx, opName, result)

	span.AddEvent("computation.complete", trace.WithAttributes(
		attribute.Float64("result", result),
		attribute.Float64("duration_ms", elapsed),
	))
	span.SetAttributes(attribute.Float64("calculator.result", result))
	span.SetStatus(codes.Ok, "")

	logger.Info("calculator operation completed",
		zap.String("operation", opName),
		zap.Float64("a", req.A),
		zap.Float64("b", req.B),
		zap.Float64("result", result),
		zap.String("request_id", requestID),
		zap.Float64("duration_ms", elapsed),
	)

	handlers.WriteJSON(w, http.StatusOK, CalcResponse{
		Operation: opName,
		A:         req.A,
		B:         req.B,
		Result:    result,
	})
}

// ---------------------------------------------------------------------------
// Handler — chained operations
// ---------------------------------------------------------------------------

// Chain handles POST /calculator/chain. The steps are folded left to right
// with one child span per step.
func (h *Handler) Chain(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, "calculator.chain",
		trace.WithAttributes(
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	var req ChainRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "chain", "invalid request body", err, http.StatusBadRequest, w)
		return
	}

	if len(req.Steps) == 0 {
		observability.RecordError(ctx, span, logger, errorCounter, "chain", "no steps provided", fmt.Errorf("steps array is empty"), http.StatusBadRequest, w)
		return
	}

	span.SetAttributes(
		attribute.Float64("chain.initial", req.Initial),
		attribute.Int("chain.steps_count", len(req.Steps)),
	)

	logger.Info("starting chained calculation",
		zap.Float64("initial", req.Initial),
		zap.Int("steps", len(req.Steps)),
		zap.String("request_id", requestID),
	)

	steps := make([]Step, len(req.Steps))
	for i, step := range req.Steps {
		steps[i] = Step{Op: step.Op, Operand: step.Value}
	}
	results := make([]ChainResult, 0, len(steps))

	// traceStep wraps every fold step in a child span with metrics and a log line.
	traceStep := func(i int, step Step, input float64) func(float64, error) {
		opName := strings.ToLower(step.Op)
		stepCtx, stepSpan := tracer.Start(ctx, fmt.Sprintf("calculator.chain.step.%d.%s", i, opName),
			trace.WithAttributes(
				attribute.Int("chain.step.index", i),
				attribute.String("chain.step.operation", opName),
				attribute.Float64("chain.step.input", input),
				attribute.Float64("chain.step.value", step.Operand),
			),
		)
		stepStart := time.Now()

		return func(result float64, err error) {
			defer stepSpan.End()
			stepElapsed := elapsedMillis(stepStart)

			if err != nil {
				stepSpan.RecordError(err)
				stepSpan.SetStatus(codes.Error, err.Error())

				logger.Error("chain step failed",
					zap.Int("step", i),
					zap.String("operation", opName),
					zap.Error(err),
					zap.String("request_id", requestID),
				)
				return
			}

			recordOperation(stepCtx, opName, stepElapsed)

			stepSpan.AddEvent("step.complete", trace.WithAttributes(
				attribute.Float64("input", input),
				attribute.Float64("result", result),
			))
			stepSpan.SetAttributes(attribute.Float64("chain.step.result", result))
			stepSpan.SetStatus(codes.Ok, "")

			logger.Info("chain step completed",
				zap.Int("step", i),
				zap.String("operation", opName),
				zap.Float64("input", input),
				zap.Float64("value", step.Operand),
				zap.Float64("result", result),
				zap.Float64("duration_ms", stepElapsed),
			)

			results = append(results, ChainResult{
				Op:     opName,
				Value:  step.Operand,
				Result: result,
			})
		}
	}

	running, err := h.calc.Fold(req.Initial, steps, traceStep)
	if err != nil {
		opName := "chain"
		if i := len(results); i < len(req.Steps) {
			opName = strings.ToLower(req.Steps[i].Op)
		}
		observability.RecordError(ctx, span, logger, errorCounter, opName, err.Error(), err, statusFor(err), w)
		return
	}

	recordResult(ctx, "chain", running)

	span.AddEvent("chain.complete", trace.WithAttributes(
		attribute.Float64("final_result", running),
		attribute.Int("total_steps", len(req.Steps)),
	))
	span.SetAttributes(attribute.Float64("chain.result", running))
	span.SetStatus(codes.Ok, "")

	logger.Info("chained calculation completed",
		zap.Float64("initial", req.Initial),
		zap.Float64("result", running),
		zap.Int("steps", len(req.Steps)),
		zap.String("request_id", requestID),
	)

	handlers.WriteJSON(w, http.StatusOK, ChainResponse{
		Initial: req.Initial,
		Steps:   results,
		Result:  running,
	})
}
