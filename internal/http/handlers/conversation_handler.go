// README: Conversation history read/delete endpoints.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"voyago/internal/agent"
	"voyago/internal/conversation"
)

type ConversationHandler struct {
	store conversation.Store
}

func NewConversationHandler(store conversation.Store) *ConversationHandler {
	return &ConversationHandler{store: store}
}

type conversationResponse struct {
	ConversationID string          `json:"conversationId"`
	Messages       []agent.Message `json:"messages"`
}

// Get handles GET /api/conversations/:id.
func (h *ConversationHandler) Get(c *gin.Context) {
	id := c.Param("id")
	msgs, err := h.store.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	if msgs == nil {
		writeError(c, http.StatusNotFound, "conversation not found")
		return
	}
	writeJSON(c, http.StatusOK, conversationResponse{ConversationID: id, Messages: msgs})
}

// Delete handles DELETE /api/conversations/:id.
func (h *ConversationHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.store.Delete(c.Request.Context(), id); err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	c.Status(http.StatusNoContent)
}
