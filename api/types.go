package api

import (
	"time"

	"github.com/cloudchase/sampling-visualizer/engine"
)

// ParamsRequest carries optional shaping controls. Nil fields take the
// server defaults; out-of-domain values are clamped by the engine.
type ParamsRequest struct {
	Temperature *float64 `json:"temperature,omitempty"`
	TopK        *int     `json:"top_k,omitempty"`
	TopP        *float64 `json:"top_p,omitempty"`
}

// DistributionRequest is the JSON body for POST /api/distribution.
type DistributionRequest struct {
	Tokens []string  `json:"tokens"`
	Logits []float64 `json:"logits"`
	ParamsRequest
}

// DistributionResponse is the JSON response for distribution endpoints.
type DistributionResponse struct {
	Scenario    string               `json:"scenario,omitempty"`
	Params      engine.Params        `json:"params"`
	Results     []engine.TokenResult `json:"results"`
	ActiveCount int                  `json:"active_count"`
}

// ScenarioInfo describes a scenario in list responses.
type ScenarioInfo struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Size    int    `json:"size"`
	Builtin bool   `json:"builtin"`
}

// ListResponse is the JSON response for GET /api/scenarios.
type ListResponse struct {
	Scenarios []ScenarioInfo `json:"scenarios"`
}

// ScenarioRequest is the JSON body for POST /api/scenarios.
type ScenarioRequest struct {
	ID     string    `json:"id"`
	Label  string    `json:"label"`
	Tokens []string  `json:"tokens"`
	Logits []float64 `json:"logits"`
}

// ScenarioResponse is the JSON response for a single scenario.
type ScenarioResponse struct {
	ID      string     `json:"id"`
	Label   string     `json:"label"`
	Tokens  []string   `json:"tokens"`
	Logits  []float64  `json:"logits"`
	Builtin bool       `json:"builtin"`
	AddedAt *time.Time `json:"added_at,omitempty"`
}

// HealthResponse is the JSON response for GET /api/health.
type HealthResponse struct {
	Status    string `json:"status"`
	Scenarios int    `json:"scenarios"`
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}
