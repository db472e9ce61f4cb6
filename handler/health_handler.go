package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/haiminh/pdf-insight-be/types"
)

const version = "1.0.0"

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, types.HealthResponse{
		Status:  "PDF ingestion & retrieval API",
		Version: version,
	})
}
