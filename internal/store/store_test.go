package store

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"docindexer/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestFileCRUD(t *testing.T) {
	s := newTestStore(t)

	f := &model.SourceFile{
		ID:          "f1",
		Filename:    "catalog.xlsx",
		FileType:    "xlsx",
		StoragePath: "uploads/catalog.xlsx",
		FileSize:    1024,
		HasImages:   true,
		RowCount:    10,
	}
	if err := s.CreateFile(f); err != nil {
		t.Fatalf("create file: %v", err)
	}

	got, err := s.GetFile("f1")
	if err != nil {
		t.Fatalf("get file: %v", err)
	}
	if got.Filename != "catalog.xlsx" || got.FileType != "xlsx" || !got.HasImages || got.RowCount != 10 {
		t.Fatalf("unexpected file: %+v", got)
	}

	files, err := s.ListFiles()
	if err != nil {
		t.Fatalf("list files: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("expected 1 file, got %d", len(files))
	}

	if err := s.DeleteFile("f1"); err != nil {
		t.Fatalf("delete file: %v", err)
	}
	if _, err := s.GetFile("f1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestBatchInsertChunked(t *testing.T) {
	s := newTestStore(t)

	if err := s.CreateFile(&model.SourceFile{ID: "f1", Filename: "a.csv", FileType: "csv"}); err != nil {
		t.Fatalf("create file: %v", err)
	}

	// 跨越两个分片边界
	const n = 2500
	records := make([]*model.FieldRecord, 0, n)
	for i := 0; i < n; i++ {
		rn := i + 1
		records = append(records, &model.FieldRecord{
			FileID:      "f1",
			SheetOrNode: "CSV",
			FieldName:   "Name",
			FieldValue:  fmt.Sprintf("v%d", i),
			RowNum:      &rn,
		})
	}
	if err := s.BatchInsertRecords(records); err != nil {
		t.Fatalf("batch insert: %v", err)
	}

	count, err := s.CountRecords()
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != n {
		t.Fatalf("expected %d records, got %d", n, count)
	}
}

func TestSearchRecords(t *testing.T) {
	s := newTestStore(t)

	for _, id := range []string{"f1", "f2"} {
		if err := s.CreateFile(&model.SourceFile{ID: id, Filename: id + ".csv", FileType: "csv"}); err != nil {
			t.Fatalf("create file: %v", err)
		}
	}

	rn := 1
	records := []*model.FieldRecord{
		{FileID: "f1", SheetOrNode: "CSV", FieldName: "Name", FieldValue: "Laptop Pro", RowNum: &rn},
		{FileID: "f1", SheetOrNode: "CSV", FieldName: "Price", FieldValue: "999", RowNum: &rn},
		{FileID: "f2", SheetOrNode: "CSV", FieldName: "Name", FieldValue: "Mouse", RowNum: &rn},
	}
	if err := s.BatchInsertRecords(records); err != nil {
		t.Fatalf("batch insert: %v", err)
	}

	// 按文件过滤
	got, total, err := s.SearchRecords(SearchOptions{FileID: "f1"})
	if err != nil {
		t.Fatalf("search by file: %v", err)
	}
	if total != 2 || len(got) != 2 {
		t.Fatalf("expected 2 records for f1, got total=%d len=%d", total, len(got))
	}

	// 关键词同时命中字段名和字段值
	got, total, err = s.SearchRecords(SearchOptions{Keyword: "Lap"})
	if err != nil {
		t.Fatalf("search by keyword: %v", err)
	}
	if total != 1 || got[0].FieldValue != "Laptop Pro" {
		t.Fatalf("unexpected keyword result: total=%d", total)
	}

	// 分页：total 不受 limit 影响
	got, total, err = s.SearchRecords(SearchOptions{Limit: 1, Offset: 1})
	if err != nil {
		t.Fatalf("search paged: %v", err)
	}
	if total != 3 || len(got) != 1 {
		t.Fatalf("expected total=3 page len=1, got total=%d len=%d", total, len(got))
	}
	if got[0].FieldName != "Price" {
		t.Fatalf("unexpected page content: %s", got[0].FieldName)
	}
}

func TestGetRecordRoundTrip(t *testing.T) {
	s := newTestStore(t)

	if err := s.CreateFile(&model.SourceFile{ID: "f1", Filename: "a.xml", FileType: "xml"}); err != nil {
		t.Fatalf("create file: %v", err)
	}

	// XML 记录: 无 rowNum、带 parentContext 和 fullPath
	records := []*model.FieldRecord{{
		FileID:        "f1",
		SheetOrNode:   "item",
		FieldName:     "price",
		FieldValue:    "999",
		ParentContext: "item",
		FullPath:      "item/price",
	}}
	if err := s.BatchInsertRecords(records); err != nil {
		t.Fatalf("batch insert: %v", err)
	}

	got, _, err := s.SearchRecords(SearchOptions{FileID: "f1"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 record")
	}

	rec, err := s.GetRecord(got[0].ID)
	if err != nil {
		t.Fatalf("get record: %v", err)
	}
	if rec.RowNum != nil {
		t.Fatalf("xml record must round-trip with nil rowNum")
	}
	if rec.ParentContext != "item" || rec.FullPath != "item/price" {
		t.Fatalf("unexpected round-trip: %+v", rec)
	}

	if _, err := s.GetRecord(99999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestImportLogLifecycle(t *testing.T) {
	s := newTestStore(t)

	id, err := s.CreateImportLog("catalog.xlsx", 2048)
	if err != nil {
		t.Fatalf("create import log: %v", err)
	}
	if id == 0 {
		t.Fatalf("expected non-zero log id")
	}
	if err := s.FinishImportLog(id, "f1", 100, 20, "done", ""); err != nil {
		t.Fatalf("finish import log: %v", err)
	}
}

func TestGetRecordsByIDsPreservesOrder(t *testing.T) {
	s := newTestStore(t)

	if err := s.CreateFile(&model.SourceFile{ID: "f1", Filename: "a.csv", FileType: "csv"}); err != nil {
		t.Fatalf("create file: %v", err)
	}
	rn := 1
	records := []*model.FieldRecord{
		{FileID: "f1", SheetOrNode: "CSV", FieldName: "A", FieldValue: "1", RowNum: &rn},
		{FileID: "f1", SheetOrNode: "CSV", FieldName: "B", FieldValue: "2", RowNum: &rn},
		{FileID: "f1", SheetOrNode: "CSV", FieldName: "C", FieldValue: "3", RowNum: &rn},
	}
	if err := s.BatchInsertRecords(records); err != nil {
		t.Fatalf("batch insert: %v", err)
	}

	all, _, err := s.SearchRecords(SearchOptions{FileID: "f1"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}

	// 倒序请求，含一个不存在的 ID
	ids := []int64{all[2].ID, all[0].ID, 99999}
	got, err := s.GetRecordsByIDs(ids)
	if err != nil {
		t.Fatalf("get by ids: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	if got[0].FieldName != "C" || got[1].FieldName != "A" {
		t.Fatalf("input order not preserved: %s, %s", got[0].FieldName, got[1].FieldName)
	}
}
