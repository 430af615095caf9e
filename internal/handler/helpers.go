package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	appErr "github.com/neurodoc-ai/neurodoc/internal/pkg/errors"
	"github.com/neurodoc-ai/neurodoc/internal/pkg/response"
)

// handleError maps service errors onto HTTP. The missing-document
// precondition gets a route-specific hint; everything else is a server
// fault carrying the underlying message.
func handleError(c *gin.Context, err error, noDocDetail string) {
	if appErr.IsNoDocument(err) {
		response.Error(c, http.StatusBadRequest, noDocDetail)
		return
	}
	logutil.GetLogger(c.Request.Context()).Error("request failed",
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	response.Error(c, http.StatusInternalServerError, err.Error())
}
