package storage

import (
	"context"
	"fmt"
	"io"
	"path"

	"cloud.google.com/go/storage"
)

// GCSStorage Google Cloud Storage 对象存储
type GCSStorage struct {
	client *storage.Client
	bucket string
	prefix string
}

// NewGCSStorage 创建 GCS 存储客户端
// 进程启动时创建一次，随进程退出关闭（不使用包级单例）。
func NewGCSStorage(ctx context.Context, bucket, prefix string) (*GCSStorage, error) {
	if bucket == "" {
		return nil, fmt.Errorf("bucket must not be empty")
	}
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return &GCSStorage{client: client, bucket: bucket, prefix: prefix}, nil
}

// Save 上传对象，返回对象名作为存储路径
func (g *GCSStorage) Save(ctx context.Context, name string, data []byte) (string, error) {
	object := path.Join(g.prefix, path.Base(name))
	w := g.client.Bucket(g.bucket).Object(object).NewWriter(ctx)
	if _, err := w.Write(data); err != nil {
		w.Close()
		return "", fmt.Errorf("failed to write object %q: %w", object, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize object %q: %w", object, err)
	}
	return object, nil
}

// Fetch 下载对象内容
func (g *GCSStorage) Fetch(ctx context.Context, objectPath string) ([]byte, error) {
	r, err := g.client.Bucket(g.bucket).Object(objectPath).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open object %q: %w", objectPath, err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read object %q: %w", objectPath, err)
	}
	return data, nil
}

// Close 关闭底层客户端
func (g *GCSStorage) Close() error {
	return g.client.Close()
}
