package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/neurodoc-ai/neurodoc/internal/pkg/response"
	"github.com/neurodoc-ai/neurodoc/internal/service"
)

type ChatHandler struct {
	chat *service.ChatService
}

func NewChatHandler(chat *service.ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

func (h *ChatHandler) Chat(c *gin.Context) {
	query := strings.TrimSpace(c.PostForm("query"))
	if query == "" {
		response.Error(c, http.StatusBadRequest, "query is required")
		return
	}
	answer, err := h.chat.Chat(c.Request.Context(), query)
	if err != nil {
		handleError(c, err, "Please upload a PDF first.")
		return
	}
	response.Success(c, gin.H{"answer": answer})
}
