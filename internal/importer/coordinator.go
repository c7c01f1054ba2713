package importer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"docindexer/internal/model"
	"docindexer/internal/parser"
	"docindexer/internal/storage"
	"docindexer/internal/store"
)

// Coordinator 导入协调器
// 负责单个上传文件的完整入库链路：存文件 → 选解析器 → 拍平 → 分片入库。
// 单个文件的失败只影响自身，不中断上传批次。
type Coordinator struct {
	store   *store.Store
	storage storage.FileStorage
}

// NewCoordinator 创建导入协调器
func NewCoordinator(st *store.Store, fs storage.FileStorage) *Coordinator {
	return &Coordinator{
		store:   st,
		storage: fs,
	}
}

// ImportOptions 导入选项
type ImportOptions struct {
	Filename string
	Data     []byte
}

// ProgressEvent 进度事件
type ProgressEvent struct {
	Type      string      `json:"type"`    // start/info/warning/done/error
	Message   string      `json:"message"` // 事件消息
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// Import 执行导入，返回进度通道
func (c *Coordinator) Import(opts ImportOptions) <-chan ProgressEvent {
	progressChan := make(chan ProgressEvent, 100)

	go func() {
		defer close(progressChan)
		c.doImport(opts, progressChan)
	}()

	return progressChan
}

// doImport 执行导入逻辑
func (c *Coordinator) doImport(opts ImportOptions, progressChan chan ProgressEvent) {
	ctx := context.Background()
	startTime := time.Now()

	c.sendProgress(progressChan, ProgressEvent{
		Type:      "start",
		Message:   fmt.Sprintf("开始导入文件: %s", opts.Filename),
		Data:      map[string]string{"filename": opts.Filename},
		Timestamp: time.Now(),
	})

	if len(opts.Data) == 0 {
		c.sendProgress(progressChan, ProgressEvent{
			Type:      "error",
			Message:   "文件内容为空",
			Timestamp: time.Now(),
		})
		return
	}

	// 选解析器；不支持的类型跳过该文件，不影响批次内其他文件
	fileType := parser.TypeFromFilename(opts.Filename)
	p, err := parser.New(fileType)
	if err != nil {
		status := "error"
		if errors.Is(err, parser.ErrUnsupportedType) {
			status = "skipped"
		}
		c.sendProgress(progressChan, ProgressEvent{
			Type:      "error",
			Message:   fmt.Sprintf("不支持的文件类型: %q", fileType),
			Data:      map[string]string{"status": status},
			Timestamp: time.Now(),
		})
		return
	}

	logID, err := c.store.CreateImportLog(opts.Filename, int64(len(opts.Data)))
	if err != nil {
		c.sendProgress(progressChan, ProgressEvent{
			Type:      "warning",
			Message:   fmt.Sprintf("创建导入日志失败: %v", err),
			Timestamp: time.Now(),
		})
	}

	fileID := uuid.New().String()

	// 先落存储：即使后续解析失败，上下文还原仍有源可查
	storagePath, err := c.storage.Save(ctx, opts.Filename, opts.Data)
	if err != nil {
		c.sendProgress(progressChan, ProgressEvent{
			Type:      "warning",
			Message:   fmt.Sprintf("保存源文件失败，上下文还原将不可用: %v", err),
			Timestamp: time.Now(),
		})
	}

	// 拍平
	out, err := p.Parse(opts.Data, fileID)
	if err != nil {
		c.finishLog(logID, fileID, 0, 0, "error", err.Error())
		c.sendProgress(progressChan, ProgressEvent{
			Type:      "error",
			Message:   fmt.Sprintf("解析失败: %v", err),
			Timestamp: time.Now(),
		})
		return
	}

	c.sendProgress(progressChan, ProgressEvent{
		Type:    "info",
		Message: fmt.Sprintf("解析完成: %d 条字段记录 / %d 个数据行", len(out.Records), out.RowCount),
		Data: map[string]interface{}{
			"record_count": len(out.Records),
			"row_count":    out.RowCount,
		},
		Timestamp: time.Now(),
	})

	if out.HasImages {
		c.sendProgress(progressChan, ProgressEvent{
			Type:      "warning",
			Message:   "工作簿中包含嵌入图片，图片内容无法拍平，已跳过",
			Timestamp: time.Now(),
		})
	}

	// 入库
	if err := c.store.CreateFile(&model.SourceFile{
		ID:          fileID,
		Filename:    opts.Filename,
		FileType:    fileType,
		StoragePath: storagePath,
		FileSize:    int64(len(opts.Data)),
		HasImages:   out.HasImages,
		RowCount:    out.RowCount,
	}); err != nil {
		c.finishLog(logID, fileID, 0, 0, "error", err.Error())
		c.sendProgress(progressChan, ProgressEvent{
			Type:      "error",
			Message:   fmt.Sprintf("写入文件元数据失败: %v", err),
			Timestamp: time.Now(),
		})
		return
	}

	if err := c.store.BatchInsertRecords(out.Records); err != nil {
		c.finishLog(logID, fileID, 0, out.RowCount, "error", err.Error())
		c.sendProgress(progressChan, ProgressEvent{
			Type:      "error",
			Message:   fmt.Sprintf("批量插入失败: %v", err),
			Timestamp: time.Now(),
		})
		return
	}

	c.finishLog(logID, fileID, len(out.Records), out.RowCount, "done", "")

	c.sendProgress(progressChan, ProgressEvent{
		Type:    "done",
		Message: fmt.Sprintf("文件 %q 导入完成", opts.Filename),
		Data: &model.FileResult{
			Filename:    opts.Filename,
			FileID:      fileID,
			FileType:    fileType,
			Status:      "imported",
			RecordCount: len(out.Records),
			RowCount:    out.RowCount,
			HasImages:   out.HasImages,
			Duration:    time.Since(startTime),
		},
		Timestamp: time.Now(),
	})
}

// finishLog 更新导入日志，失败只记日志不阻断流程
func (c *Coordinator) finishLog(logID int64, fileID string, recordCount, rowCount int, status, errMsg string) {
	if logID == 0 {
		return
	}
	_ = c.store.FinishImportLog(logID, fileID, recordCount, rowCount, status, errMsg)
}

// sendProgress 发送进度事件
func (c *Coordinator) sendProgress(ch chan ProgressEvent, event ProgressEvent) {
	select {
	case ch <- event:
	default:
		// 通道已满，丢弃事件
	}
}
