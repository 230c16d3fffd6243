package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"abacus/abacusos/calc"
	"abacus/internal/session"
)

var tracer = otel.Tracer("abacus/httpapi")

// EvaluateRequest is the body of POST /calculator/evaluate.
type EvaluateRequest struct {
	A        string `json:"a"`
	Operator string `json:"operator"`
	B        string `json:"b"`
}

type EvaluateResponse struct {
	A         string `json:"a"`
	Operator  string `json:"operator"`
	B         string `json:"b,omitempty"`
	Result    string `json:"result"`
	RequestID string `json:"request_id"`
}

// PressRequest is the body of POST /calculator/sessions/{id}/press.
type PressRequest struct {
	Keys string `json:"keys"`
}

func (a *api) routes(r chi.Router) {
	r.Route("/calculator", func(r chi.Router) {
		r.Post("/evaluate", a.evaluate)
		r.Get("/keypad", a.keypad)
		r.Post("/sessions", a.openSession)
		r.Get("/sessions/{id}", a.getSession)
		r.Post("/sessions/{id}/press", a.press)
		r.Delete("/sessions/{id}", a.closeSession)
	})
}

func (a *api) evaluate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "calculator.evaluate")
	defer span.End()

	var req EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid request body")
		a.writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if !calc.IsOperator(req.Operator) {
		span.SetStatus(codes.Error, "unknown operator")
		a.writeError(w, r, http.StatusBadRequest, "unknown operator: "+req.Operator)
		return
	}

	result := calc.Evaluate(req.A, req.Operator, req.B)
	a.metrics.ObserveEvaluation(req.Operator)
	span.SetAttributes(
		attribute.String("calculator.operator", req.Operator),
		attribute.String("calculator.result", result),
	)

	writeJSON(w, http.StatusOK, EvaluateResponse{
		A:         req.A,
		Operator:  req.Operator,
		B:         req.B,
		Result:    result,
		RequestID: RequestIDFromContext(ctx),
	})
}

func (a *api) keypad(w http.ResponseWriter, _ *http.Request) {
	pad := calc.DefaultKeypad()
	writeJSON(w, http.StatusOK, map[string][][]string{"rows": pad.Labels()})
}

func (a *api) openSession(w http.ResponseWriter, r *http.Request) {
	id, err := a.sessions.Open()
	if err != nil {
		a.writeError(w, r, http.StatusServiceUnavailable, err.Error())
		return
	}
	snap, err := a.sessions.Get(id)
	if err != nil {
		a.writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, snap)
}

func (a *api) getSession(w http.ResponseWriter, r *http.Request) {
	snap, err := a.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		a.sessionError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (a *api) press(w http.ResponseWriter, r *http.Request) {
	_, span := tracer.Start(r.Context(), "calculator.press")
	defer span.End()

	var req PressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		span.RecordError(err)
		a.writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	snap, err := a.sessions.Press(chi.URLParam(r, "id"), req.Keys)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		a.sessionError(w, r, err)
		return
	}
	span.SetAttributes(
		attribute.String("calculator.session", snap.Session),
		attribute.Int("calculator.evaluations", len(snap.Evaluations)),
	)
	writeJSON(w, http.StatusOK, snap)
}

func (a *api) closeSession(w http.ResponseWriter, r *http.Request) {
	if err := a.sessions.Close(chi.URLParam(r, "id")); err != nil {
		a.sessionError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *api) sessionError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusBadRequest
	if errors.Is(err, session.ErrNotFound) {
		status = http.StatusNotFound
	}
	a.writeError(w, r, status, err.Error())
}

func (a *api) writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	id := RequestIDFromContext(r.Context())
	a.log.Warn(msg,
		zap.String("path", r.URL.Path),
		zap.Int("status", status),
		zap.String("request_id", id),
	)
	writeJSON(w, status, map[string]string{
		"error":      msg,
		"request_id": id,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
