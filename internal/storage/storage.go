// Package storage 提供源文件的保存与取回。
// 默认落本地磁盘；配置开启后走远端对象存储，本地作为回退
// （上下文还原的解析策略链依赖这一点）。
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileStorage 文件存储接口
type FileStorage interface {
	// Save 保存文件内容，返回可供 Fetch 使用的存储路径
	Save(ctx context.Context, name string, data []byte) (string, error)
	// Fetch 按存储路径取回文件内容
	Fetch(ctx context.Context, path string) ([]byte, error)
}

// LocalStorage 本地磁盘存储
type LocalStorage struct {
	baseDir string
}

// NewLocalStorage 创建本地存储（文件保存在 baseDir/uploads 下）
func NewLocalStorage(baseDir string) (*LocalStorage, error) {
	dir := filepath.Join(baseDir, "uploads")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create uploads directory: %w", err)
	}
	return &LocalStorage{baseDir: baseDir}, nil
}

// Save 写入本地文件
func (l *LocalStorage) Save(_ context.Context, name string, data []byte) (string, error) {
	path := filepath.Join(l.baseDir, "uploads", filepath.Base(name))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	return path, nil
}

// Fetch 读取本地文件；相对路径按 baseDir 解析
func (l *LocalStorage) Fetch(_ context.Context, path string) ([]byte, error) {
	if !filepath.IsAbs(path) {
		path = filepath.Join(l.baseDir, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return data, nil
}
