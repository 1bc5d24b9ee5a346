package api

import "github.com/gofiber/fiber/v2"

// RegisterRoutes wires up the middleware and API endpoints on app.
func RegisterRoutes(app *fiber.App, s *Server) {
	app.Use(requestID())
	app.Use(s.accessLog)

	app.Post("/api/distribution", s.handleDistribution)
	app.Get("/api/scenarios", s.handleListScenarios)
	app.Post("/api/scenarios", s.handleAddScenario)
	app.Get("/api/scenarios/:id", s.handleGetScenario)
	app.Delete("/api/scenarios/:id", s.handleDeleteScenario)
	app.Post("/api/scenarios/:id/distribution", s.handleScenarioDistribution)
	app.Get("/api/health", s.handleHealth)
}
