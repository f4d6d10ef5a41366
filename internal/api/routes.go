package api

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/youruser/photoframe/internal/util"
)

func RegisterRoutes(r *gin.Engine, h *Handler) {
	api := r.Group("/api")
	{
		api.GET("/health", h.health)
		api.GET("/frames", h.listFrames)
		api.GET("/qr", h.qr)
		api.POST("/capture", h.capture)

		flows := api.Group("/flows")
		flows.POST("", h.createFlow)
		flows.GET("/:id", h.getFlow)
		flows.DELETE("/:id", h.deleteFlow)
		flows.POST("/:id/frame", h.selectFrame)
		flows.POST("/:id/photo", h.selectPhoto)
		flows.POST("/:id/name", h.setName)
		flows.POST("/:id/overlay", h.selectOverlay)
		flows.POST("/:id/back", h.back)
		flows.POST("/:id/restart", h.restart)
		flows.GET("/:id/result", h.result)
		flows.GET("/:id/save", h.save)
		flows.GET("/:id/print", h.print)
		flows.GET("/:id/print.pdf", h.printPDF)
		flows.POST("/:id/upload", h.upload)
	}
}

// NewRouter returns an engine with request logging, recovery and all routes.
func NewRouter(h *Handler, log logrus.FieldLogger) *gin.Engine {
	r := gin.New()
	r.MaxMultipartMemory = util.MaxBodyBytes
	r.Use(Logger(log), gin.Recovery())
	RegisterRoutes(r, h)
	return r
}
