// README: Chat handler running the itinerary pipeline for one turn.
package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"voyago/internal/agent"
	"voyago/internal/conversation"
)

// turnTimeout bounds a whole conversation turn; individual model and search
// calls carry their own tighter timeouts.
const turnTimeout = 60 * time.Second

type ChatHandler struct {
	orchestrator *agent.Orchestrator
	store        conversation.Store
}

func NewChatHandler(orchestrator *agent.Orchestrator, store conversation.Store) *ChatHandler {
	return &ChatHandler{orchestrator: orchestrator, store: store}
}

type chatRequest struct {
	Message        string `json:"message"`
	ConversationID string `json:"conversationId"`
}

type chatResponse struct {
	Response       string              `json:"response"`
	ConversationID string              `json:"conversationId"`
	TravelDetails  agent.TravelDetails `json:"travelDetails"`
	ToolsUsed      []string            `json:"toolsUsed"`
}

// Chat handles POST /api/chat.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		writeError(c, http.StatusBadRequest, "message is required")
		return
	}

	convID := strings.TrimSpace(req.ConversationID)
	if convID == "" {
		convID = conversation.NewID()
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), turnTimeout)
	defer cancel()

	// A store read failure must not abort the turn; the turn just loses
	// prior context.
	history, err := h.store.Get(ctx, convID)
	if err != nil {
		log.Printf("load conversation %s: %v", convID, err)
		history = nil
	}

	state := h.orchestrator.Run(ctx, req.Message)

	history = conversation.Trim(append(history, state.Messages...))
	if err := h.store.Set(ctx, convID, history); err != nil {
		log.Printf("persist conversation %s: %v", convID, err)
	}

	writeJSON(c, http.StatusOK, chatResponse{
		Response:       state.FinalResponse,
		ConversationID: convID,
		TravelDetails:  state.TravelDetails,
		ToolsUsed:      state.ToolResults.Keys(),
	})
}
