package v1

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"docindexer/internal/model"
)

// ExtractLineItemsRequest 报价抽取请求
type ExtractLineItemsRequest struct {
	RecordIDs []int64 `json:"recordIds" binding:"required"`
}

// ExtractLineItems 从选中的记录抽取报价行项
// POST /api/quotations/extract
func (h *Handler) ExtractLineItems(c *gin.Context) {
	var req ExtractLineItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求参数"})
		return
	}
	if len(req.RecordIDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "recordIds 不能为空"})
		return
	}

	records, err := h.store.GetRecordsByIDs(req.RecordIDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if len(records) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "记录不存在"})
		return
	}

	products := h.extractor.Extract(records)
	items := h.extractor.Project(products)
	if len(items) == 0 {
		// 没有记录命中任何抽取规则时, 退化为逐记录直出行项
		items = fallbackLineItems(records)
	}

	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"count": len(items),
	})
}

// fallbackLineItems 将记录按 "字段名: 字段值" 直接映射为行项
func fallbackLineItems(records []*model.FieldRecord) []*model.LineItem {
	items := make([]*model.LineItem, 0, len(records))
	for i, rec := range records {
		desc := strings.TrimSpace(rec.FieldName + ": " + rec.FieldValue)
		items = append(items, &model.LineItem{
			ID:          uuid.New().String(),
			No:          i + 1,
			Description: desc,
			Quantity:    1,
			Unit:        "个",
		})
	}
	return items
}
