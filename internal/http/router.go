// README: HTTP router registration (gin).
package http

import (
	"regexp"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"planai/internal/http/handlers"
	"planai/internal/http/middleware"
)

type RouterDeps struct {
	Planner           handlers.Planner
	GenerationTimeout time.Duration
	CORSOrigins       []string
	CORSPatterns      []*regexp.Regexp
	Logger            *zap.Logger
}

func NewRouter(deps RouterDeps) *gin.Engine {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}

	r := gin.New()
	r.Use(
		middleware.Recovery(log),
		middleware.Logging(log),
		middleware.CORS(deps.CORSOrigins, deps.CORSPatterns),
	)

	r.GET("/health", handlers.Health)

	planHandler := handlers.NewPlanHandler(deps.Planner, deps.GenerationTimeout, log)
	r.POST("/api/v1/plan", planHandler.Plan)
	r.POST("/api/plan", planHandler.Plan)

	return r
}
