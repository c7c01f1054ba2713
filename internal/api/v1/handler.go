package v1

import (
	"github.com/gin-gonic/gin"

	"docindexer/internal/extractor"
	"docindexer/internal/importer"
	"docindexer/internal/reconstruct"
	"docindexer/internal/storage"
	"docindexer/internal/store"
)

// Handler V1 API 处理器
type Handler struct {
	store       *store.Store
	fileStorage storage.FileStorage
	coordinator *importer.Coordinator
	recon       *reconstruct.Reconstructor
	extractor   *extractor.Extractor
}

// NewHandler 创建 V1 API 处理器
func NewHandler(st *store.Store, fs storage.FileStorage, recon *reconstruct.Reconstructor) *Handler {
	return &Handler{
		store:       st,
		fileStorage: fs,
		coordinator: importer.NewCoordinator(st, fs),
		recon:       recon,
		extractor:   extractor.New(),
	}
}

// RegisterRoutes 注册 V1 API 路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// 系统状态
	router.GET("/status", h.GetStatus)

	// 文件上传与查询
	router.POST("/upload", h.Upload)
	router.GET("/files", h.ListFiles)

	// 字段记录检索与上下文还原
	router.GET("/records", h.SearchRecords)
	router.GET("/records/:id/context", h.GetRecordContext)

	// 报价单行项目抽取
	router.POST("/quotations/extract", h.ExtractLineItems)
}
