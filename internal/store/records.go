package store

import (
	"database/sql"
	"fmt"
	"strings"

	"docindexer/internal/model"
)

// insertChunkSize 批量插入分片大小，限制单次事务的负载
const insertChunkSize = 1000

// BatchInsertRecords 分片批量插入字段记录
// 分片之间的顺序无语义：定位信息都在记录自身的 rowNum/fullPath 里。
func (s *Store) BatchInsertRecords(records []*model.FieldRecord) error {
	for start := 0; start < len(records); start += insertChunkSize {
		end := start + insertChunkSize
		if end > len(records) {
			end = len(records)
		}
		if err := s.insertChunk(records[start:end]); err != nil {
			return err
		}
	}
	return nil
}

// insertChunk 单事务插入一个分片
func (s *Store) insertChunk(records []*model.FieldRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO field_records (
			file_id, sheet_or_node, field_name, field_value,
			row_num, parent_context, full_path
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		_, err := stmt.Exec(
			rec.FileID, rec.SheetOrNode, rec.FieldName, rec.FieldValue,
			nullableInt(rec.RowNum), nullableString(rec.ParentContext), nullableString(rec.FullPath),
		)
		if err != nil {
			return fmt.Errorf("failed to insert record: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetRecord 按 ID 点查字段记录
func (s *Store) GetRecord(id int64) (*model.FieldRecord, error) {
	row := s.db.QueryRow(`
		SELECT id, file_id, sheet_or_node, field_name, field_value, row_num, parent_context, full_path
		FROM field_records WHERE id = ?
	`, id)

	rec, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get record: %w", err)
	}
	return rec, nil
}

// GetRecordsByIDs 按 ID 列表查询字段记录（保持入参顺序）
func (s *Store) GetRecordsByIDs(ids []int64) ([]*model.FieldRecord, error) {
	if len(ids) == 0 {
		return []*model.FieldRecord{}, nil
	}

	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := s.db.Query(fmt.Sprintf(`
		SELECT id, file_id, sheet_or_node, field_name, field_value, row_num, parent_context, full_path
		FROM field_records WHERE id IN (%s)
	`, placeholders), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	byID := make(map[int64]*model.FieldRecord, len(ids))
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		byID[rec.ID] = rec
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]*model.FieldRecord, 0, len(ids))
	for _, id := range ids {
		if rec, ok := byID[id]; ok {
			out = append(out, rec)
		}
	}
	return out, nil
}

// SearchOptions 记录检索条件
type SearchOptions struct {
	FileID  string
	Keyword string // 对字段名和字段值做 LIKE 匹配
	Limit   int
	Offset  int
}

// SearchRecords 条件检索字段记录，返回当前页和总数
func (s *Store) SearchRecords(opts SearchOptions) ([]*model.FieldRecord, int, error) {
	var conds []string
	var args []interface{}

	if opts.FileID != "" {
		conds = append(conds, "file_id = ?")
		args = append(args, opts.FileID)
	}
	if opts.Keyword != "" {
		conds = append(conds, "(field_name LIKE ? OR field_value LIKE ?)")
		pattern := "%" + opts.Keyword + "%"
		args = append(args, pattern, pattern)
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM field_records`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count records: %w", err)
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, file_id, sheet_or_node, field_name, field_value, row_num, parent_context, full_path
		FROM field_records` + where + ` ORDER BY id LIMIT ? OFFSET ?`
	rows, err := s.db.Query(query, append(args, limit, opts.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search records: %w", err)
	}
	defer rows.Close()

	records := []*model.FieldRecord{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan record: %w", err)
		}
		records = append(records, rec)
	}
	return records, total, rows.Err()
}

// CountRecords 记录总数
func (s *Store) CountRecords() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM field_records`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}
	return n, nil
}

func scanRecord(r rowScanner) (*model.FieldRecord, error) {
	rec := &model.FieldRecord{}
	var rowNum sql.NullInt64
	var parentContext, fullPath sql.NullString
	err := r.Scan(&rec.ID, &rec.FileID, &rec.SheetOrNode, &rec.FieldName, &rec.FieldValue, &rowNum, &parentContext, &fullPath)
	if err != nil {
		return nil, err
	}
	if rowNum.Valid {
		n := int(rowNum.Int64)
		rec.RowNum = &n
	}
	rec.ParentContext = parentContext.String
	rec.FullPath = fullPath.String
	return rec, nil
}

func nullableInt(v *int) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
