package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/neurodoc-ai/neurodoc/internal/pkg/response"
	"github.com/neurodoc-ai/neurodoc/internal/service"
)

type mindMapRequest struct {
	Query string `json:"query"`
}

type MindMapHandler struct {
	mindmap *service.MindMapService
}

func NewMindMapHandler(mindmap *service.MindMapService) *MindMapHandler {
	return &MindMapHandler{mindmap: mindmap}
}

func (h *MindMapHandler) Generate(c *gin.Context) {
	var req mindMapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		response.Error(c, http.StatusBadRequest, "query is required")
		return
	}
	graph, err := h.mindmap.Generate(c.Request.Context(), req.Query)
	if err != nil {
		handleError(c, err, "Please upload a PDF first.")
		return
	}
	response.Success(c, gin.H{"graph": graph})
}
