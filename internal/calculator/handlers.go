package calculator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"go-chi-calculator/internal/handlers"
	"go-chi-calculator/internal/observability"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// tracer is the calculator's dedicated OpenTelemetry tracer.
var tracer = otel.Tracer("calculator")

// Handlers serves the calculator endpoints backed by a session store.
type Handlers struct {
	store *Store
}

// NewHandlers returns handlers operating on store.
func NewHandlers(store *Store) *Handlers {
	return &Handlers{store: store}
}

// ---------------------------------------------------------------------------
// Session lifecycle
// ---------------------------------------------------------------------------

// CreateSession handles POST /calculator/sessions
func (h *Handlers) CreateSession(w http.ResponseWriter, r *http.Request) {
	ctx, span, logger := startSpan(r, "create_session")
	defer span.End()

	sess, err := h.store.Create()
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "create_session", "session limit reached", err, http.StatusServiceUnavailable, w)
		return
	}

	sessionCounter.Add(ctx, 1)
	span.SetAttributes(attribute.String("calculator.session.id", sess.ID))
	span.SetStatus(codes.Ok, "")

	logger.Info("calculator session created",
		zap.String("session_id", sess.ID),
		zap.String("request_id", observability.RequestIDFromContext(ctx)),
	)

	handlers.WriteJSON(w, http.StatusCreated, newSessionResponse(sess))
}

// GetSession handles GET /calculator/sessions/{id}
func (h *Handlers) GetSession(w http.ResponseWriter, r *http.Request) {
	ctx, span, logger := startSpan(r, "get_session")
	defer span.End()

	id := chi.URLParam(r, "id")
	span.SetAttributes(attribute.String("calculator.session.id", id))

	sess, err := h.store.Get(id)
	if err != nil {
		h.sessionError(ctx, span, logger, "get_session", err, w)
		return
	}

	span.SetStatus(codes.Ok, "")
	handlers.WriteJSON(w, http.StatusOK, newSessionResponse(sess))
}

// DeleteSession handles DELETE /calculator/sessions/{id}
func (h *Handlers) DeleteSession(w http.ResponseWriter, r *http.Request) {
	ctx, span, logger := startSpan(r, "delete_session")
	defer span.End()

	id := chi.URLParam(r, "id")
	span.SetAttributes(attribute.String("calculator.session.id", id))

	if err := h.store.Delete(id); err != nil {
		h.sessionError(ctx, span, logger, "delete_session", err, w)
		return
	}

	sessionCounter.Add(ctx, -1)
	span.SetStatus(codes.Ok, "")

	logger.Info("calculator session deleted",
		zap.String("session_id", id),
		zap.String("request_id", observability.RequestIDFromContext(ctx)),
	)

	w.WriteHeader(http.StatusNoContent)
}

// ---------------------------------------------------------------------------
// Key presses
// ---------------------------------------------------------------------------

// Press handles POST /calculator/sessions/{id}/press — a single key.
func (h *Handlers) Press(w http.ResponseWriter, r *http.Request) {
	ctx, span, logger := startSpan(r, "press")
	defer span.End()

	id := chi.URLParam(r, "id")
	span.SetAttributes(attribute.String("calculator.session.id", id))

	var req PressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "press", "invalid request body", err, http.StatusBadRequest, w)
		return
	}

	tok, err := ParseToken(req.Token)
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "press", "invalid token", err, http.StatusBadRequest, w)
		return
	}

	start := time.Now()
	sess, err := h.store.PressEach(id, []Token{tok}, func(_ int, tok Token, prev, next State) {
		recordTransition(ctx, span, logger, tok, prev, next)
	})
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0 // ms

	if err != nil {
		h.sessionError(ctx, span, logger, "press", err, w)
		return
	}

	opsHistogram.Record(ctx, elapsed, metric.WithAttributes(attribute.String("operation", "press")))
	span.SetAttributes(attribute.String("calculator.display", sess.State.Display))
	span.SetStatus(codes.Ok, "")

	handlers.WriteJSON(w, http.StatusOK, newSessionResponse(sess))
}

// PressKeys handles POST /calculator/sessions/{id}/keys — feeds a sequence of
// keys atomically, creating a child span for every key.
func (h *Handlers) PressKeys(w http.ResponseWriter, r *http.Request) {
	ctx, span, logger := startSpan(r, "keys")
	defer span.End()

	id := chi.URLParam(r, "id")
	requestID := observability.RequestIDFromContext(ctx)
	span.SetAttributes(attribute.String("calculator.session.id", id))

	var req KeysRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "keys", "invalid request body", err, http.StatusBadRequest, w)
		return
	}

	if len(req.Tokens) == 0 {
		observability.RecordError(ctx, span, logger, errorCounter, "keys", "no tokens provided", errors.New("tokens array is empty"), http.StatusBadRequest, w)
		return
	}

	toks, err := ParseTokens(req.Tokens)
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "keys", "invalid token", err, http.StatusBadRequest, w)
		return
	}

	span.SetAttributes(attribute.Int("calculator.keys.count", len(toks)))

	steps := make([]KeyStep, 0, len(toks))
	start := time.Now()

	sess, err := h.store.PressEach(id, toks, func(i int, tok Token, prev, next State) {
		stepCtx, stepSpan := tracer.Start(ctx, fmt.Sprintf("calculator.keys.step.%d", i),
			trace.WithAttributes(
				attribute.Int("calculator.step.index", i),
				attribute.String("calculator.step.token", string(tok)),
				attribute.String("calculator.step.input", prev.Display),
			),
		)
		recordTransition(stepCtx, stepSpan, logger, tok, prev, next)
		stepSpan.SetAttributes(attribute.String("calculator.step.display", next.Display))
		stepSpan.End()

		steps = append(steps, KeyStep{
			Token:   string(tok),
			Display: next.Display,
			Ignored: !Accepts(prev, tok),
		})
	})
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0 // ms

	if err != nil {
		h.sessionError(ctx, span, logger, "keys", err, w)
		return
	}

	opsHistogram.Record(ctx, elapsed, metric.WithAttributes(attribute.String("operation", "keys")))
	span.AddEvent("keys.complete", trace.WithAttributes(
		attribute.String("display", sess.State.Display),
		attribute.Int("total_keys", len(toks)),
	))
	span.SetStatus(codes.Ok, "")

	logger.Info("key sequence applied",
		zap.String("session_id", id),
		zap.Int("keys", len(toks)),
		zap.String("display", sess.State.Display),
		zap.String("request_id", requestID),
		zap.Float64("duration_ms", elapsed),
	)

	handlers.WriteJSON(w, http.StatusOK, KeysResponse{
		SessionResponse: newSessionResponse(sess),
		Steps:           steps,
	})
}

// ---------------------------------------------------------------------------
// Stateless evaluation
// ---------------------------------------------------------------------------

// EvaluateOp handles POST /calculator/evaluate. An unusable operand or a
// division by zero is not an HTTP error: the result is "Error", as on the keypad.
func (h *Handlers) EvaluateOp(w http.ResponseWriter, r *http.Request) {
	ctx, span, logger := startSpan(r, "evaluate")
	defer span.End()

	var req EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "evaluate", "invalid request body", err, http.StatusBadRequest, w)
		return
	}

	span.SetAttributes(
		attribute.String("calculator.operand.a", req.A),
		attribute.String("calculator.operand.b", req.B),
		attribute.String("calculator.operator", req.Op),
	)

	start := time.Now()
	result := Evaluate(req.A, req.B, req.Op)
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0 // ms

	opsHistogram.Record(ctx, elapsed, metric.WithAttributes(attribute.String("operation", "evaluate")))
	recordEvaluation(ctx, span, logger, req.A, req.B, req.Op, result)

	handlers.WriteJSON(w, http.StatusOK, EvaluateResponse{
		A:      req.A,
		B:      req.B,
		Op:     req.Op,
		Result: result,
	})
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func startSpan(r *http.Request, opName string) (context.Context, trace.Span, *zap.Logger) {
	ctx := r.Context()
	ctx, span := tracer.Start(ctx, "calculator."+opName,
		trace.WithAttributes(
			attribute.String("calculator.operation", opName),
			attribute.String("request.id", observability.RequestIDFromContext(ctx)),
		),
	)
	return ctx, span, observability.LoggerWithTrace(ctx)
}

func (h *Handlers) sessionError(ctx context.Context, span trace.Span, logger *zap.Logger, opName string, err error, w http.ResponseWriter) {
	status := http.StatusInternalServerError
	msg := "internal error"
	if errors.Is(err, ErrSessionNotFound) {
		status = http.StatusNotFound
		msg = "session not found"
	}
	observability.RecordError(ctx, span, logger, errorCounter, opName, msg, err, status, w)
}

// recordTransition counts the press and, when it triggered an evaluation,
// the evaluation outcome.
func recordTransition(ctx context.Context, span trace.Span, logger *zap.Logger, tok Token, prev, next State) {
	pressCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", tokenKind(tok)),
		attribute.Bool("ignored", !Accepts(prev, tok)),
	))

	if tok == Equals && Accepts(prev, tok) {
		recordEvaluation(ctx, span, logger, prev.FirstOperand, prev.SecondOperand, prev.PendingOperator, next.Display)
	}
}

func recordEvaluation(ctx context.Context, span trace.Span, logger *zap.Logger, a, b, op, result string) {
	attrs := metric.WithAttributes(attribute.String("operator", op))
	evalCounter.Add(ctx, 1, attrs)

	if result == ErrorDisplay {
		errorCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", "evaluate")))
		span.AddEvent("evaluation.error", trace.WithAttributes(
			attribute.String("a", a),
			attribute.String("b", b),
			attribute.String("operator", op),
		))
		logger.Warn("evaluation produced error",
			zap.String("a", a),
			zap.String("b", b),
			zap.String("operator", op),
			zap.String("request_id", observability.RequestIDFromContext(ctx)),
		)
		span.SetStatus(codes.Ok, "")
		return
	}

	if v, err := strconv.ParseFloat(result, 64); err == nil {
		resultGauge.Record(ctx, v, attrs)
	}

	span.AddEvent("evaluation.complete", trace.WithAttributes(
		attribute.String("result", result),
	))
	span.SetStatus(codes.Ok, "")

	logger.Info("evaluation completed",
		zap.String("a", a),
		zap.String("b", b),
		zap.String("operator", op),
		zap.String("result", result),
		zap.String("request_id", observability.RequestIDFromContext(ctx)),
	)
}

func tokenKind(t Token) string {
	switch {
	case t == Clear:
		return "clear"
	case t == Equals:
		return "equals"
	case t.IsOperator():
		return "operator"
	default:
		return "digit"
	}
}
