package v1

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"docindexer/internal/importer"
)

// Upload 上传并拍平文档 (SSE 流式响应)
// POST /api/upload
// 支持一次上传多个文件；单个文件失败不中断批次，事件流逐文件透出进度。
func (h *Handler) Upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的表单数据"})
		return
	}

	files := form.File["file"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "未找到上传文件"})
		return
	}

	// 设置 SSE 响应头
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "不支持流式响应"})
		return
	}

	for _, uploaded := range files {
		data, err := readUpload(uploaded)
		if err != nil {
			h.writeEvent(c, flusher, importer.ProgressEvent{
				Type:    "error",
				Message: fmt.Sprintf("读取上传文件 %q 失败: %v", uploaded.Filename, err),
			})
			continue
		}

		progressChan := h.coordinator.Import(importer.ImportOptions{
			Filename: uploaded.Filename,
			Data:     data,
		})

		for event := range progressChan {
			h.writeEvent(c, flusher, event)
		}
	}
}

// writeEvent 按 SSE 格式写出单个事件: data: {json}\n\n
func (h *Handler) writeEvent(c *gin.Context, flusher http.Flusher, event importer.ProgressEvent) {
	eventData, err := json.Marshal(event)
	if err != nil {
		return
	}
	fmt.Fprintf(c.Writer, "data: %s\n\n", eventData)
	flusher.Flush()
}

func readUpload(header *multipart.FileHeader) ([]byte, error) {
	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// ListFiles 列出已导入的源文件
// GET /api/files
func (h *Handler) ListFiles(c *gin.Context) {
	files, err := h.store.ListFiles()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"files": files})
}
