package api

// registerRoutes registers all API routes.
func (s *Server) registerRoutes() {
	s.router.HandleFunc("GET /health", s.handleHealth)

	s.router.HandleFunc("POST /api/diagnose", s.handleDiagnose)
	s.router.HandleFunc("GET /api/diagnostics/history", s.handleHistory)
	s.router.HandleFunc("GET /api/diagnostics/statistics", s.handleStatistics)
	s.router.HandleFunc("GET /api/diagnostics/{id}", s.handleGetDiagnostic)
	s.router.HandleFunc("POST /api/diagnostics/{id}/feedback", s.handleFeedback)

	s.router.HandleFunc("GET /api/catalog", s.handleCatalog)
	s.router.HandleFunc("GET /api/parts/search", s.handleSearchParts)
	s.router.HandleFunc("GET /api/mechanics/search", s.handleSearchMechanics)
}
