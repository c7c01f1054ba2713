package v1

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"docindexer/internal/store"
)

// SearchRecords 检索字段记录
// GET /api/records?fileId=&keyword=&page=&pageSize=
func (h *Handler) SearchRecords(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("pageSize", "50"))
	if err != nil || pageSize < 1 {
		pageSize = 50
	}
	if pageSize > 500 {
		pageSize = 500
	}

	opts := store.SearchOptions{
		FileID:  c.Query("fileId"),
		Keyword: c.Query("keyword"),
		Limit:   pageSize,
		Offset:  (page - 1) * pageSize,
	}

	records, total, err := h.store.SearchRecords(opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"records":  records,
		"total":    total,
		"page":     page,
		"pageSize": pageSize,
	})
}

// GetRecordContext 取回单条记录的上下文快照
// GET /api/records/:id/context
func (h *Handler) GetRecordContext(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的记录 ID"})
		return
	}

	record, err := h.store.GetRecord(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "记录不存在"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	file, err := h.store.GetFile(record.FileID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "记录所属文件不存在"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx := h.recon.GetContext(c.Request.Context(), file, record)
	c.JSON(http.StatusOK, gin.H{
		"record":  record,
		"context": ctx,
	})
}
