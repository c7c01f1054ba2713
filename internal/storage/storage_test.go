package storage

import (
	"context"
	"path/filepath"
	"testing"
)

func TestLocalStorageRoundTrip(t *testing.T) {
	t.Parallel()

	local, err := NewLocalStorage(t.TempDir())
	if err != nil {
		t.Fatalf("create storage: %v", err)
	}

	ctx := context.Background()
	path, err := local.Save(ctx, "catalog.csv", []byte("a,b\n1,2\n"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := local.Fetch(ctx, path)
	if err != nil {
		t.Fatalf("fetch by absolute path: %v", err)
	}
	if string(got) != "a,b\n1,2\n" {
		t.Fatalf("unexpected content: %q", got)
	}

	// 相对路径按 baseDir 解析
	got, err = local.Fetch(ctx, filepath.Join("uploads", "catalog.csv"))
	if err != nil {
		t.Fatalf("fetch by relative path: %v", err)
	}
	if string(got) != "a,b\n1,2\n" {
		t.Fatalf("unexpected content: %q", got)
	}
}

func TestLocalStorageStripsDirectories(t *testing.T) {
	t.Parallel()

	local, err := NewLocalStorage(t.TempDir())
	if err != nil {
		t.Fatalf("create storage: %v", err)
	}

	// 路径部分被剥掉，只保留文件名
	path, err := local.Save(context.Background(), "../escape/evil.csv", []byte("x"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if filepath.Base(path) != "evil.csv" {
		t.Fatalf("unexpected stored name: %s", path)
	}
	if filepath.Base(filepath.Dir(path)) != "uploads" {
		t.Fatalf("file must land in uploads dir: %s", path)
	}
}

func TestLocalStorageFetchMissing(t *testing.T) {
	t.Parallel()

	local, err := NewLocalStorage(t.TempDir())
	if err != nil {
		t.Fatalf("create storage: %v", err)
	}
	if _, err := local.Fetch(context.Background(), "uploads/none.csv"); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
