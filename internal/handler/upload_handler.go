package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	appErr "github.com/neurodoc-ai/neurodoc/internal/pkg/errors"
	"github.com/neurodoc-ai/neurodoc/internal/pkg/response"
	"github.com/neurodoc-ai/neurodoc/internal/service"
)

type UploadHandler struct {
	ingest *service.IngestService
}

func NewUploadHandler(ingest *service.IngestService) *UploadHandler {
	return &UploadHandler{ingest: ingest}
}

func (h *UploadHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "file is required")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "cannot open uploaded file")
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "cannot read uploaded file")
		return
	}
	chunks, err := h.ingest.Ingest(c.Request.Context(), fileHeader.Filename, data)
	if err != nil {
		if errors.Is(err, appErr.ErrInvalid) {
			response.Error(c, http.StatusBadRequest, err.Error())
			return
		}
		handleError(c, err, "Please upload a PDF first.")
		return
	}
	response.Success(c, gin.H{"status": "Success", "chunks": chunks})
}
