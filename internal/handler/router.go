package handler

import (
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/neurodoc-ai/neurodoc/internal/middleware"
	"github.com/neurodoc-ai/neurodoc/internal/pkg/response"
)

type RouterOptions struct {
	CORSOrigins      []string
	RateLimitSeconds int
}

func NewRouter(opts RouterOptions, upload *UploadHandler, chat *ChatHandler, mindmap *MindMapHandler, interview *InterviewHandler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS(opts.CORSOrigins))
	router.Use(gzip.Gzip(gzip.DefaultCompression))
	if opts.RateLimitSeconds > 0 {
		router.Use(middleware.RateLimit(time.Duration(opts.RateLimitSeconds) * time.Second))
	}

	router.GET("/", func(c *gin.Context) {
		response.Success(c, gin.H{"message": "NeuroDoc System Active"})
	})
	router.POST("/upload", upload.Upload)
	router.POST("/chat", chat.Chat)
	router.POST("/mindmap", mindmap.Generate)
	router.POST("/interview/start", interview.Start)
	router.POST("/interview/chat", interview.Chat)
	return router
}
