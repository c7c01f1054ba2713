package server

import (
	"context"
	"log"
	"path/filepath"

	"github.com/gin-gonic/gin"

	v1 "docindexer/internal/api/v1"
	"docindexer/internal/config"
	"docindexer/internal/reconstruct"
	"docindexer/internal/storage"
	"docindexer/internal/store"
)

// Server HTTP服务器
type Server struct {
	router *gin.Engine
	store  *store.Store
	v1     *v1.Handler
}

// NewServer 创建服务器
func NewServer(cfg *config.AppConfig) *Server {
	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	// 初始化 SQLite Store
	dataDir, err := config.EnsureDataDir(cfg)
	if err != nil {
		dataDir = cfg.Data.DataDir
	}
	dbPath := filepath.Join(dataDir, "docindexer.db")

	sqliteStore, err := store.New(dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// 文件存储: 本地磁盘兜底, 配置了 bucket 时叠加 GCS 远端
	localStorage, err := storage.NewLocalStorage(dataDir)
	if err != nil {
		log.Fatalf("Failed to initialize local storage: %v", err)
	}
	var remoteStorage storage.FileStorage
	if cfg.Storage.UseRemote && cfg.Storage.Bucket != "" {
		gcs, err := storage.NewGCSStorage(context.Background(), cfg.Storage.Bucket, cfg.Storage.Prefix)
		if err != nil {
			log.Printf("Warning: failed to initialize GCS storage, falling back to local: %v", err)
		} else {
			remoteStorage = gcs
		}
	}

	primary := storage.FileStorage(localStorage)
	if remoteStorage != nil {
		primary = remoteStorage
	}

	recon := reconstruct.New(remoteStorage, localStorage)
	v1Handler := v1.NewHandler(sqliteStore, primary, recon)

	s := &Server{
		router: gin.Default(),
		store:  sqliteStore,
		v1:     v1Handler,
	}

	s.setupRoutes()

	return s
}

// setupRoutes 设置路由
func (s *Server) setupRoutes() {
	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	// V1 API 路由
	api := s.router.Group("/api")
	{
		s.v1.RegisterRoutes(api)
	}
}

// Run 启动服务器
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Close 关闭底层存储
func (s *Server) Close() error {
	return s.store.Close()
}

// GetStore 获取存储（用于测试）
func (s *Server) GetStore() *store.Store {
	return s.store
}
