// Package server exposes the projection engine over HTTP using fasthttp.
package server

import (
	"context"
	"errors"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rgehrsitz/fireplan/internal/calculation"
	"github.com/rgehrsitz/fireplan/internal/config"
	"github.com/rgehrsitz/fireplan/internal/domain"
	"github.com/rgehrsitz/fireplan/internal/transform"
	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
)

const (
	maxBodySize     = 1 << 20
	requestIDHeader = "X-Request-ID"
)

// Server routes API requests to the calculation engine. Handlers keep no
// state between requests.
type Server struct {
	engine    *calculation.CalculationEngine
	templates *transform.TemplateRegistry
	log       zerolog.Logger
	now       func() time.Time
}

// New creates a server. A nil engine gets a default one.
func New(engine *calculation.CalculationEngine, log zerolog.Logger) *Server {
	if engine == nil {
		engine = calculation.NewCalculationEngine()
	}
	return &Server{
		engine:    engine,
		templates: transform.CreateBuiltInTemplates(),
		log:       log,
		now:       time.Now,
	}
}

// Handler is the fasthttp entry point, with request logging.
func (s *Server) Handler(ctx *fasthttp.RequestCtx) {
	start := s.now()
	requestID := string(ctx.Request.Header.Peek(requestIDHeader))
	if requestID == "" {
		requestID = uuid.New().String()
	}
	ctx.Response.Header.Set(requestIDHeader, requestID)

	s.route(ctx)

	s.log.Info().
		Str("request_id", requestID).
		Str("method", string(ctx.Method())).
		Str("path", string(ctx.Path())).
		Int("status", ctx.Response.StatusCode()).
		Dur("duration", s.now().Sub(start)).
		Msg("request")
}

func (s *Server) route(ctx *fasthttp.RequestCtx) {
	switch string(ctx.Path()) {
	case "/healthz":
		if !allow(ctx, fasthttp.MethodGet) {
			return
		}
		writeJSON(ctx, fasthttp.StatusOK, map[string]string{"status": "ok"})
	case "/v1/simulate":
		if !allow(ctx, fasthttp.MethodPost) {
			return
		}
		s.handleSimulate(ctx)
	case "/v1/validate":
		if !allow(ctx, fasthttp.MethodPost) {
			return
		}
		s.handleValidate(ctx)
	case "/v1/templates":
		if !allow(ctx, fasthttp.MethodGet) {
			return
		}
		s.handleTemplates(ctx)
	default:
		writeError(ctx, fasthttp.StatusNotFound, fmt.Sprintf("no route for %s", ctx.Path()), nil)
	}
}

func allow(ctx *fasthttp.RequestCtx, method string) bool {
	if string(ctx.Method()) == method {
		return true
	}
	ctx.Response.Header.Set("Allow", method)
	writeError(ctx, fasthttp.StatusMethodNotAllowed, "method not allowed", nil)
	return false
}

// decodeInputs reads a SimulateRequest, filling unset inputs with defaults.
func decodeInputs(body []byte) (SimulateRequest, error) {
	req := SimulateRequest{Inputs: domain.DefaultInputParameters()}
	if len(body) == 0 {
		return req, errors.New("request body is empty")
	}
	if err := json.Unmarshal(body, &req); err != nil {
		return req, fmt.Errorf("invalid request body: %w", err)
	}
	if req.Inputs.Frequency == 0 {
		req.Inputs.Frequency = domain.Yearly
	}
	if req.Inputs.Mode == "" {
		req.Inputs.Mode = domain.ModeRate
	}
	return req, nil
}

func fieldErrors(err error) []FieldError {
	var ranges config.RangeErrors
	if errors.As(err, &ranges) {
		out := make([]FieldError, 0, len(ranges))
		for _, r := range ranges {
			out = append(out, FieldError{Field: r.Field, Message: r.Error()})
		}
		return out
	}
	return []FieldError{{Message: err.Error()}}
}

func (s *Server) handleSimulate(ctx *fasthttp.RequestCtx) {
	req, err := decodeInputs(ctx.PostBody())
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err.Error(), nil)
		return
	}

	inputs := req.Inputs
	for _, name := range req.Templates {
		tmpl, ok := s.templates.Get(name)
		if !ok {
			writeError(ctx, fasthttp.StatusBadRequest, fmt.Sprintf("unknown template %q", name), nil)
			return
		}
		if inputs, err = transform.ApplyTemplate(inputs, tmpl); err != nil {
			writeError(ctx, fasthttp.StatusBadRequest, err.Error(), nil)
			return
		}
	}

	if err := config.ValidateInputs(inputs); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "inputs out of range", fieldErrors(err))
		return
	}

	start := s.now()
	result := s.engine.Run(inputs)
	result.Name = req.Name
	done := s.now()

	outcome := OutcomeReached
	if !result.Summary.ReachedTarget {
		outcome = OutcomeNotReached
	}
	writeJSON(ctx, fasthttp.StatusOK, SimulateResponse{
		Metadata: RunMetadata{
			RunID:       uuid.New().String(),
			StartedAt:   start.UTC().Format(time.RFC3339),
			CompletedAt: done.UTC().Format(time.RFC3339),
			DurationMs:  done.Sub(start).Milliseconds(),
			Outcome:     outcome,
		},
		Result: &result,
	})
}

func (s *Server) handleValidate(ctx *fasthttp.RequestCtx) {
	req, err := decodeInputs(ctx.PostBody())
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err.Error(), nil)
		return
	}

	resp := ValidateResponse{Valid: true, Issues: req.Inputs.Validate()}
	if err := config.ValidateInputs(req.Inputs); err != nil {
		resp.Valid = false
		resp.Errors = fieldErrors(err)
	}
	writeJSON(ctx, fasthttp.StatusOK, resp)
}

func (s *Server) handleTemplates(ctx *fasthttp.RequestCtx) {
	templates := s.templates.Templates()
	out := make([]TemplateInfo, 0, len(templates))
	for _, t := range templates {
		out = append(out, TemplateInfo{
			Name:        t.Name,
			Category:    t.Category,
			Description: t.Description,
			Transforms:  transform.Describe(t.Transforms),
		})
	}
	writeJSON(ctx, fasthttp.StatusOK, out)
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		ctx.Error(`{"status":500,"message":"encoding failed"}`, fasthttp.StatusInternalServerError)
		ctx.SetContentType("application/json")
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(data)
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string, errs []FieldError) {
	writeJSON(ctx, status, ErrorResponse{Status: status, Message: message, Errors: errs})
}

// ListenAndServe serves the API on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &fasthttp.Server{
		Handler:            s.Handler,
		Name:               "fireplan",
		ReadTimeout:        10 * time.Second,
		WriteTimeout:       10 * time.Second,
		MaxRequestBodySize: maxBodySize,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", addr).Msg("fireplan API listening")
		errCh <- srv.ListenAndServe(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.log.Info().Msg("shutting down")
		if err := srv.Shutdown(); err != nil {
			return err
		}
		return nil
	}
}
