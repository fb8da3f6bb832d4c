package server

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the API and WebSocket endpoints.
//
// Session endpoints:
//
//	GET  /api/health   - Liveness
//	GET  /api/array    - Current session snapshot
//	POST /api/array    - Create ({size}) or load ({values}) the array
//	POST /api/mode     - Switch between direct and step mode
//	POST /api/modify   - Insert, update or delete
//	POST /api/execute  - Search or sort
//	POST /api/step     - Move the step cursor
//	POST /api/steps    - Generate a trace without touching the session
//
// Run endpoints, when a run store is configured:
//
//	GET  /api/runs      - List recorded runs
//	GET  /api/runs/:id  - Run metadata and steps
//
// Streaming:
//
//	GET  /ws/animate   - Direct-mode animation over WebSocket
func (s *Server) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")
	api.GET("/health", s.handleHealth)
	api.GET("/array", s.handleGetArray)
	api.POST("/array", s.handleSetArray)
	api.POST("/mode", s.handleMode)
	api.POST("/modify", s.handleModify)
	api.POST("/execute", s.handleExecute)
	api.POST("/step", s.handleStep)
	api.POST("/steps", s.handleSteps)

	if s.runs != nil {
		api.GET("/runs", s.handleListRuns)
		api.GET("/runs/:id", s.handleGetRun)
	}

	r.GET("/ws/animate", s.handleAnimate)
}
