// Package httpapi serves the solver over HTTP.
package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pdrpinto/search"
	"github.com/pdrpinto/search/freecell"
	"github.com/pdrpinto/search/internal/solver"
	"github.com/pdrpinto/search/observability"
)

// maxTraceSteps bounds the snapshots returned by one trace request.
const maxTraceSteps = 1000

type Server struct {
	service *solver.Service
	logger  *slog.Logger
}

// NewHandler builds the router. gatherer backs GET /metrics.
func NewHandler(service *solver.Service, gatherer prometheus.Gatherer, logger *slog.Logger) http.Handler {
	s := &Server{service: service, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	r.Get("/deals/{number}", s.Deal)
	r.Post("/solve", s.Solve)
	r.Post("/trace", s.Trace)
	return r
}

// SolveRequest names the position either by deal number or by its text layout.
type SolveRequest struct {
	Deal       *uint32 `json:"deal,omitempty"`
	Position   string  `json:"position,omitempty"`
	Strategy   string  `json:"strategy,omitempty"`
	DepthLimit *int    `json:"depth_limit,omitempty"`
	// Steps is only read by POST /trace.
	Steps int `json:"steps,omitempty"`
}

type SolveResponse struct {
	Strategy   search.Kind `json:"strategy"`
	Cached     bool        `json:"cached"`
	Moves      []string    `json:"moves"`
	Length     int         `json:"length"`
	Expanded   int         `json:"expanded"`
	Discovered int         `json:"discovered"`
	ElapsedMS  int64       `json:"elapsed_ms"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Outcome string `json:"outcome,omitempty"`
}

type DealResponse struct {
	Number   uint32          `json:"number"`
	Layout   freecell.Layout `json:"layout"`
	Position string          `json:"position"`
}

type TraceStep struct {
	Step       int    `json:"step"`
	Frontier   int    `json:"frontier"`
	Closed     int    `json:"closed"`
	Discovered int    `json:"discovered"`
	CardsLeft  int    `json:"cards_left"`
	Current    string `json:"current"`
}

type TraceResponse struct {
	Strategy search.Kind `json:"strategy"`
	Steps    []TraceStep `json:"steps"`
	Done     bool        `json:"done"`
	Found    bool        `json:"found"`
	Outcome  string      `json:"outcome,omitempty"`
	Moves    []string    `json:"moves,omitempty"`
}

// Deal handles GET /deals/{number}.
func (s *Server) Deal(w http.ResponseWriter, r *http.Request) {
	number, err := strconv.ParseUint(chi.URLParam(r, "number"), 10, 32)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid deal number: %w", err))
		return
	}
	layout := s.service.Config().Layout
	state, err := freecell.Deal(uint32(number), layout)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, DealResponse{Number: uint32(number), Layout: layout, Position: state.String()})
}

// Solve handles POST /solve.
func (s *Server) Solve(w http.ResponseWriter, r *http.Request) {
	var body SolveRequest
	state, ok := s.decode(w, r, &body)
	if !ok {
		return
	}

	solution, err := s.service.Solve(r.Context(), state, solver.Request{Strategy: body.Strategy, DepthLimit: body.DepthLimit})
	if err != nil {
		s.writeSearchError(w, err)
		return
	}
	record := solution.Record
	writeJSON(w, http.StatusOK, SolveResponse{
		Strategy:   record.Strategy,
		Cached:     solution.Cached,
		Moves:      moveNames(record.Moves),
		Length:     len(record.Moves),
		Expanded:   record.Expanded,
		Discovered: record.Discovered,
		ElapsedMS:  record.Elapsed.Milliseconds(),
	})
}

// Trace handles POST /trace. It runs at most Steps iterations and reports a
// summary of each.
func (s *Server) Trace(w http.ResponseWriter, r *http.Request) {
	var body SolveRequest
	state, ok := s.decode(w, r, &body)
	if !ok {
		return
	}
	steps := body.Steps
	if steps <= 0 || steps > maxTraceSteps {
		steps = maxTraceSteps
	}

	strategy, err := s.service.Strategy(solver.Request{Strategy: body.Strategy, DepthLimit: body.DepthLimit})
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	stepper := strategy.Stepper(r.Context(), state)
	resp := TraceResponse{Strategy: strategy.Kind(), Steps: make([]TraceStep, 0, steps)}
	for len(resp.Steps) < steps && !resp.Done {
		snapshot, err := stepper.Step()
		if err != nil {
			resp.Outcome = observability.Outcome(false, err)
		}
		resp.Steps = append(resp.Steps, TraceStep{
			Step:       snapshot.StepIndex,
			Frontier:   len(snapshot.Frontier),
			Closed:     len(snapshot.Closed),
			Discovered: snapshot.Discovered,
			CardsLeft:  snapshot.Current.CardsLeft(),
			Current:    snapshot.Current.String(),
		})
		resp.Done = snapshot.Done
		if snapshot.Found {
			resp.Found = true
			resp.Outcome = observability.OutcomeSolved
			resp.Moves = moveNames(snapshot.Actions)
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// decode reads the request body and builds the initial position.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, body *SolveRequest) (freecell.State, bool) {
	if err := json.NewDecoder(r.Body).Decode(body); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		s.logger.Warn("invalid request body", "path", r.URL.Path, "error", err)
		return freecell.State{}, false
	}
	var (
		state freecell.State
		err   error
	)
	switch {
	case body.Deal != nil && body.Position != "":
		err = errors.New("give either deal or position, not both")
	case body.Deal != nil:
		state, err = freecell.Deal(*body.Deal, s.service.Config().Layout)
	case body.Position != "":
		state, err = freecell.Parse(strings.NewReader(body.Position))
	default:
		err = errors.New("missing deal or position")
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return freecell.State{}, false
	}
	return state, true
}

func (s *Server) writeSearchError(w http.ResponseWriter, err error) {
	outcome := observability.Outcome(false, err)
	status := http.StatusInternalServerError
	switch outcome {
	case observability.OutcomeNoSolution, observability.OutcomeDepthLimit:
		status = http.StatusUnprocessableEntity
	case observability.OutcomeMemoryLimit:
		status = http.StatusInsufficientStorage
	case observability.OutcomeCancelled:
		status = http.StatusServiceUnavailable
	case observability.OutcomeError:
		status = http.StatusBadRequest
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("search failed", "outcome", outcome, "error", err)
	}
	writeJSON(w, status, ErrorResponse{Error: err.Error(), Outcome: outcome})
}

func moveNames(actions []freecell.Action) []string {
	names := make([]string, len(actions))
	for i, action := range actions {
		names[i] = action.String()
	}
	return names
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, ErrorResponse{Error: err.Error()})
}
