package server

import (
	"github.com/rgehrsitz/fireplan/internal/domain"
)

const (
	OutcomeReached    = "REACHED"
	OutcomeNotReached = "NOT_REACHED"
)

// RunMetadata identifies one simulation request.
type RunMetadata struct {
	RunID       string `json:"run_id"`
	StartedAt   string `json:"started_at"`
	CompletedAt string `json:"completed_at"`
	DurationMs  int64  `json:"duration_ms"`
	Outcome     string `json:"outcome"`
}

// SimulateRequest is the body of POST /v1/simulate. Fields left out keep
// their default values; Templates are applied in order before the run.
type SimulateRequest struct {
	Name   string                 `json:"name,omitempty"`
	Inputs domain.InputParameters `json:"inputs"`
	// Templates are built-in what-if template names.
	Templates []string `json:"templates,omitempty"`
}

type SimulateResponse struct {
	Metadata RunMetadata              `json:"metadata"`
	Result   *domain.SimulationResult `json:"result"`
}

// FieldError reports one input outside its accepted range.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidateResponse struct {
	Valid  bool                     `json:"valid"`
	Errors []FieldError             `json:"errors,omitempty"`
	Issues []domain.ValidationIssue `json:"issues,omitempty"`
}

type TemplateInfo struct {
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Transforms  []string `json:"transforms"`
}

type ErrorResponse struct {
	Status  int          `json:"status"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}
