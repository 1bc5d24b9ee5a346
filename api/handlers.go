package api

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/cloudchase/sampling-visualizer/engine"
	"github.com/cloudchase/sampling-visualizer/registry"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(c *fiber.Ctx, status int, v any) error {
	return c.Status(status).JSON(v)
}

// writeError writes an error response with the given status code.
func writeError(c *fiber.Ctx, status int, msg string) error {
	return writeJSON(c, status, ErrorResponse{Error: msg})
}

// statusFor maps engine and registry errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, engine.ErrInvalidInput), errors.Is(err, registry.ErrInvalidScenario):
		return fiber.StatusBadRequest
	case errors.Is(err, registry.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, registry.ErrExists):
		return fiber.StatusConflict
	case errors.Is(err, registry.ErrBuiltin):
		return fiber.StatusForbidden
	default:
		return fiber.StatusInternalServerError
	}
}

// handleError renders errors returned from handlers and fiber itself.
func (s *Server) handleError(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return writeError(c, fe.Code, fe.Message)
	}
	status := statusFor(err)
	if status == fiber.StatusInternalServerError {
		s.logger.Error("request failed", zap.Error(err), zap.String("request_id", requestIDFrom(c)))
	}
	return writeError(c, status, err.Error())
}

// buildParams fills unset request controls from the server defaults.
func (s *Server) buildParams(req ParamsRequest) engine.Params {
	p := s.defaults
	if req.Temperature != nil {
		p.Temperature = *req.Temperature
	}
	if req.TopK != nil {
		p.TopK = *req.TopK
	}
	if req.TopP != nil {
		p.TopP = *req.TopP
	}
	return p
}

func (s *Server) compute(c *fiber.Ctx, id string, tokens []string, logits []float64, p engine.Params) error {
	results, err := s.engine.Compute(tokens, logits, p)
	if err != nil {
		return err
	}
	effective := p.Clamp(len(tokens))
	s.logger.Debug("computed distribution",
		zap.String("scenario", id),
		zap.Int("tokens", len(tokens)),
		zap.Float64("temperature", effective.Temperature),
		zap.Int("top_k", effective.TopK),
		zap.Float64("top_p", effective.TopP),
	)
	return writeJSON(c, fiber.StatusOK, DistributionResponse{
		Scenario:    id,
		Params:      effective,
		Results:     results,
		ActiveCount: engine.ActiveCount(results),
	})
}

// handleDistribution handles POST /api/distribution.
func (s *Server) handleDistribution(c *fiber.Ctx) error {
	var req DistributionRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return writeError(c, fiber.StatusBadRequest, "invalid request body: "+err.Error())
	}
	if len(req.Tokens) == 0 {
		return writeError(c, fiber.StatusBadRequest, "tokens are required")
	}
	return s.compute(c, "", req.Tokens, req.Logits, s.buildParams(req.ParamsRequest))
}

// handleScenarioDistribution handles POST /api/scenarios/:id/distribution.
// An empty body uses the server defaults.
func (s *Server) handleScenarioDistribution(c *fiber.Ctx) error {
	var req ParamsRequest
	if body := c.Body(); len(body) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "invalid request body: "+err.Error())
		}
	}
	sc, err := s.manager.Get(c.Params("id"))
	if err != nil {
		return err
	}
	return s.compute(c, sc.ID, sc.Tokens, sc.Logits, s.buildParams(req))
}

// handleListScenarios handles GET /api/scenarios.
func (s *Server) handleListScenarios(c *fiber.Ctx) error {
	scenarios, err := s.manager.List()
	if err != nil {
		return err
	}
	infos := make([]ScenarioInfo, 0, len(scenarios))
	for _, sc := range scenarios {
		infos = append(infos, ScenarioInfo{
			ID:      sc.ID,
			Label:   sc.Label,
			Size:    sc.Size(),
			Builtin: sc.Builtin,
		})
	}
	return writeJSON(c, fiber.StatusOK, ListResponse{Scenarios: infos})
}

func scenarioResponse(sc *registry.Scenario) ScenarioResponse {
	resp := ScenarioResponse{
		ID:      sc.ID,
		Label:   sc.Label,
		Tokens:  sc.Tokens,
		Logits:  sc.Logits,
		Builtin: sc.Builtin,
	}
	if !sc.AddedAt.IsZero() {
		added := sc.AddedAt
		resp.AddedAt = &added
	}
	return resp
}

// handleGetScenario handles GET /api/scenarios/:id.
func (s *Server) handleGetScenario(c *fiber.Ctx) error {
	sc, err := s.manager.Get(c.Params("id"))
	if err != nil {
		return err
	}
	return writeJSON(c, fiber.StatusOK, scenarioResponse(sc))
}

// handleAddScenario handles POST /api/scenarios.
func (s *Server) handleAddScenario(c *fiber.Ctx) error {
	var req ScenarioRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return writeError(c, fiber.StatusBadRequest, "invalid request body: "+err.Error())
	}
	sc := &registry.Scenario{
		ID:     req.ID,
		Label:  req.Label,
		Tokens: req.Tokens,
		Logits: req.Logits,
	}
	if err := s.manager.Add(sc); err != nil {
		return err
	}
	stored, err := s.manager.Get(sc.ID)
	if err != nil {
		return err
	}
	s.logger.Info("scenario added", zap.String("scenario", sc.ID), zap.Int("tokens", sc.Size()))
	return writeJSON(c, fiber.StatusCreated, scenarioResponse(stored))
}

// handleDeleteScenario handles DELETE /api/scenarios/:id.
func (s *Server) handleDeleteScenario(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := s.manager.Remove(id); err != nil {
		return err
	}
	s.logger.Info("scenario removed", zap.String("scenario", id))
	return c.SendStatus(fiber.StatusNoContent)
}

// handleHealth handles GET /api/health.
func (s *Server) handleHealth(c *fiber.Ctx) error {
	scenarios, err := s.manager.List()
	if err != nil {
		return err
	}
	return writeJSON(c, fiber.StatusOK, HealthResponse{Status: "ok", Scenarios: len(scenarios)})
}
