package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/neurodoc-ai/neurodoc/internal/pkg/response"
	"github.com/neurodoc-ai/neurodoc/internal/service"
)

type InterviewHandler struct {
	interview *service.InterviewService
}

func NewInterviewHandler(interview *service.InterviewService) *InterviewHandler {
	return &InterviewHandler{interview: interview}
}

func (h *InterviewHandler) Start(c *gin.Context) {
	question, err := h.interview.Start(c.Request.Context())
	if err != nil {
		handleError(c, err, "Please upload your Resume/PDF first!")
		return
	}
	response.Success(c, gin.H{"message": question})
}

func (h *InterviewHandler) Chat(c *gin.Context) {
	answer := strings.TrimSpace(c.PostForm("answer"))
	if answer == "" {
		response.Error(c, http.StatusBadRequest, "answer is required")
		return
	}
	followUp, err := h.interview.Answer(c.Request.Context(), answer)
	if err != nil {
		handleError(c, err, "Please upload your Resume/PDF first!")
		return
	}
	response.Success(c, gin.H{"message": followUp})
}
