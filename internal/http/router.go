// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"voyago/internal/agent"
	"voyago/internal/conversation"
	"voyago/internal/http/handlers"
	"voyago/internal/http/middleware"
)

func NewRouter(
	orchestrator *agent.Orchestrator,
	store conversation.Store,
	providers handlers.ProviderStatus,
) http.Handler {
	r := gin.New()
	r.Use(middleware.Logging(), middleware.Recovery())

	chatHandler := handlers.NewChatHandler(orchestrator, store)
	r.POST("/api/chat", chatHandler.Chat)

	conversationHandler := handlers.NewConversationHandler(store)
	r.GET("/api/conversations/:id", conversationHandler.Get)
	r.DELETE("/api/conversations/:id", conversationHandler.Delete)

	healthHandler := handlers.NewHealthHandler(providers)
	r.GET("/health", healthHandler.Live)
	r.GET("/api/health", healthHandler.Providers)

	return r
}
