package calculator

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"go-chi-calculator/internal/handlers"
	"go-chi-calculator/internal/observability"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// CreateSession handles POST /calculator/sessions
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)

	ctx, span := tracer.Start(ctx, "calculator.session.create")
	defer span.End()

	var req SessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "session", "invalid request body", err, http.StatusBadRequest, w)
		return
	}

	id, _, err := h.sessions.Create(req.Initial)
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "session", err.Error(), err, statusFor(err), w)
		return
	}
	sessionsActive.Add(ctx, 1)

	span.SetAttributes(
		attribute.String("calculator.session.id", id),
		attribute.Float64("calculator.session.initial", req.Initial),
	)
	span.SetStatus(codes.Ok, "")

	logger.Info("chaining session created",
		zap.String("session_id", id),
		zap.Float64("initial", req.Initial),
		zap.String("request_id", observability.RequestIDFromContext(ctx)),
	)

	handlers.WriteJSON(w, http.StatusCreated, SessionResponse{ID: id, Result: req.Initial})
}

// SessionStep handles POST /calculator/sessions/{id}/steps
func (h *Handler) SessionStep(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	id := chi.URLParam(r, "id")

	ctx, span := tracer.Start(ctx, "calculator.session.step",
		trace.WithAttributes(attribute.String("calculator.session.id", id)),
	)
	defer span.End()

	var step ChainStep
	if err := json.NewDecoder(r.Body).Decode(&step); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "session", "invalid request body", err, http.StatusBadRequest, w)
		return
	}
	opName := strings.ToLower(step.Op)

	session, err := h.sessions.Get(id)
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, opName, err.Error(), err, statusFor(err), w)
		return
	}

	start := time.Now()
	result, err := session.Step(step.Op, step.Value)
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, opName, err.Error(), err, statusFor(err), w)
		return
	}

	recordOperation(ctx, opName, elapsedMillis(start))
	recordResult(ctx, opName, result)

	span.SetAttributes(attribute.Float64("calculator.result", result))
	span.SetStatus(codes.Ok, "")

	logger.Info("session step completed",
		zap.String("session_id", id),
		zap.String("operation", opName),
		zap.Float64("value", step.Value),
		zap.Float64("result", result),
	)

	handlers.WriteJSON(w, http.StatusOK, SessionResponse{ID: id, Result: result})
}

// GetSession handles GET /calculator/sessions/{id}
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	id := chi.URLParam(r, "id")
	span := trace.SpanFromContext(ctx)

	session, err := h.sessions.Get(id)
	if err == nil {
		var result float64
		if result, err = session.Result(); err == nil {
			handlers.WriteJSON(w, http.StatusOK, SessionResponse{ID: id, Result: result})
			return
		}
	}
	observability.RecordError(ctx, span, logger, errorCounter, "session", err.Error(), err, statusFor(err), w)
}

// DeleteSession handles DELETE /calculator/sessions/{id}
func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	id := chi.URLParam(r, "id")

	if err := h.sessions.Delete(id); err != nil {
		observability.RecordError(ctx, trace.SpanFromContext(ctx), logger, errorCounter, "session", err.Error(), err, statusFor(err), w)
		return
	}
	sessionsActive.Add(ctx, -1)

	logger.Info("chaining session closed", zap.String("session_id", id))
	w.WriteHeader(http.StatusNoContent)
}
