package store

import (
	"database/sql"
	"fmt"

	"docindexer/internal/model"
)

// CreateFile 写入源文件元数据
func (s *Store) CreateFile(f *model.SourceFile) error {
	_, err := s.db.Exec(`
		INSERT INTO files (id, filename, file_type, storage_path, file_size, has_images, row_count)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, f.ID, f.Filename, f.FileType, f.StoragePath, f.FileSize, boolToInt(f.HasImages), f.RowCount)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	return nil
}

// GetFile 按 ID 查询源文件元数据
func (s *Store) GetFile(id string) (*model.SourceFile, error) {
	row := s.db.QueryRow(`
		SELECT id, filename, file_type, storage_path, file_size, has_images, row_count, uploaded_at
		FROM files WHERE id = ?
	`, id)

	f, err := scanFile(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get file: %w", err)
	}
	return f, nil
}

// ListFiles 按上传时间倒序列出全部源文件
func (s *Store) ListFiles() ([]*model.SourceFile, error) {
	rows, err := s.db.Query(`
		SELECT id, filename, file_type, storage_path, file_size, has_images, row_count, uploaded_at
		FROM files ORDER BY uploaded_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}
	defer rows.Close()

	files := []*model.SourceFile{}
	for rows.Next() {
		f, err := scanFile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan file: %w", err)
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

// DeleteFile 删除源文件元数据及其全部字段记录
func (s *Store) DeleteFile(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM field_records WHERE file_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete records: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM files WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return tx.Commit()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanFile(r rowScanner) (*model.SourceFile, error) {
	f := &model.SourceFile{}
	var hasImages int
	err := r.Scan(&f.ID, &f.Filename, &f.FileType, &f.StoragePath, &f.FileSize, &hasImages, &f.RowCount, &f.UploadedAt)
	if err != nil {
		return nil, err
	}
	f.HasImages = hasImages != 0
	return f, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
