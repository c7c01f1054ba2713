package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Version 应用版本号
const Version = "1.2.0"

// GetStatus 系统状态
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	files, err := h.store.ListFiles()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	recordCount, err := h.store.CountRecords()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"version":     Version,
		"fileCount":   len(files),
		"recordCount": recordCount,
	})
}
