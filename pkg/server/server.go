package server

import (
	"github.com/example/lang-portal/pkg/study"
	"github.com/gin-gonic/gin"
)

// New builds the HTTP router over an injected store so tests can run
// the full surface against an isolated database.
func New(store *study.Store) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), AccessLog())

	h := &Handler{store: store}

	api := router.Group("/api")
	{
		api.POST("/study-sessions", h.CreateStudySession)
		api.GET("/study-sessions", h.ListStudySessions)
		api.POST("/study-sessions/reset", h.ResetStudyHistory)
		api.GET("/study-sessions/:id", h.GetStudySession)
		api.POST("/study-sessions/:id/review", h.CreateReviewItem)
	}

	router.GET("/groups/:id/words/raw", h.GetGroupWordsRaw)

	return router
}
