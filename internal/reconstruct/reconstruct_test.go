package reconstruct

import (
	"context"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"docindexer/internal/model"
	"docindexer/internal/storage"
)

func localWithFile(t *testing.T, filename string, data []byte) *storage.LocalStorage {
	t.Helper()
	local, err := storage.NewLocalStorage(t.TempDir())
	if err != nil {
		t.Fatalf("create local storage: %v", err)
	}
	if _, err := local.Save(context.Background(), filename, data); err != nil {
		t.Fatalf("save file: %v", err)
	}
	return local
}

func intPtr(v int) *int { return &v }

func TestGetContext_CSVRow(t *testing.T) {
	t.Parallel()

	local := localWithFile(t, "a.csv", []byte("Name,Price\nLaptop,999\nMouse,25\n"))
	r := New(nil, local)

	file := &model.SourceFile{ID: "f1", Filename: "a.csv", FileType: "csv"}
	rec := &model.FieldRecord{FileID: "f1", FieldName: "Name", FieldValue: "Mouse", RowNum: intPtr(2)}

	ctx := r.GetContext(context.Background(), file, rec)
	if ctx.Warning != "" {
		t.Fatalf("unexpected warning: %s", ctx.Warning)
	}
	if ctx.RowData["Name"] != "Mouse" || ctx.RowData["Price"] != "25" {
		t.Fatalf("unexpected row data: %v", ctx.RowData)
	}
}

func TestGetContext_CSVRowOutOfRange(t *testing.T) {
	t.Parallel()

	local := localWithFile(t, "a.csv", []byte("Name\nLaptop\n"))
	r := New(nil, local)

	file := &model.SourceFile{ID: "f1", Filename: "a.csv", FileType: "csv"}
	rec := &model.FieldRecord{FileID: "f1", FieldName: "Name", FieldValue: "x", RowNum: intPtr(9)}

	ctx := r.GetContext(context.Background(), file, rec)
	if ctx.Warning == "" {
		t.Fatalf("out-of-range row must set warning")
	}
	if len(ctx.RowData) != 0 {
		t.Fatalf("out-of-range row must yield empty map, got %v", ctx.RowData)
	}
}

func TestGetContext_XMLWindow(t *testing.T) {
	t.Parallel()

	xml := `<root><item><name>Laptop</name><price currency="usd">999</price></item></root>`
	local := localWithFile(t, "a.xml", []byte(xml))
	r := New(nil, local)

	file := &model.SourceFile{ID: "f1", Filename: "a.xml", FileType: "xml"}
	rec := &model.FieldRecord{FileID: "f1", FieldName: "price", FieldValue: "999", FullPath: "item/price"}

	ctx := r.GetContext(context.Background(), file, rec)
	if ctx.Warning != "" {
		t.Fatalf("unexpected warning: %s", ctx.Warning)
	}
	if !strings.Contains(ctx.XMLNode, `<price currency="usd">999</price>`) {
		t.Fatalf("window should contain the matched element: %q", ctx.XMLNode)
	}
}

func TestGetContext_XMLPreviewFallback(t *testing.T) {
	t.Parallel()

	local := localWithFile(t, "a.xml", []byte(`<root><other>1</other></root>`))
	r := New(nil, local)

	file := &model.SourceFile{ID: "f1", Filename: "a.xml", FileType: "xml"}
	rec := &model.FieldRecord{FileID: "f1", FieldName: "price", FieldValue: "999"}

	ctx := r.GetContext(context.Background(), file, rec)
	if ctx.Warning == "" {
		t.Fatalf("unlocatable element must set warning")
	}
	if !strings.HasPrefix(ctx.XMLNode, "<root>") {
		t.Fatalf("fallback should preview document head: %q", ctx.XMLNode)
	}
}

func TestGetContext_AllStrategiesFailYieldsMock(t *testing.T) {
	t.Parallel()

	// 存储里没有这个文件
	local, err := storage.NewLocalStorage(t.TempDir())
	if err != nil {
		t.Fatalf("create local storage: %v", err)
	}
	r := New(nil, local)

	file := &model.SourceFile{ID: "f1", Filename: "missing.csv", FileType: "csv"}
	rec := &model.FieldRecord{FileID: "f1", FieldName: "Name", FieldValue: "Laptop", RowNum: intPtr(1)}

	ctx := r.GetContext(context.Background(), file, rec)
	if ctx.Warning == "" {
		t.Fatalf("mock context must carry warning")
	}
	if ctx.RowData["Name"] != "Laptop" {
		t.Fatalf("mock context should echo the record: %v", ctx.RowData)
	}
}

func TestGetContext_MockXMLShape(t *testing.T) {
	t.Parallel()

	local, err := storage.NewLocalStorage(t.TempDir())
	if err != nil {
		t.Fatalf("create local storage: %v", err)
	}
	r := New(nil, local)

	file := &model.SourceFile{ID: "f1", Filename: "missing.xml", FileType: "xml"}
	rec := &model.FieldRecord{FileID: "f1", FieldName: "price", FieldValue: "999"}

	ctx := r.GetContext(context.Background(), file, rec)
	if ctx.XMLNode != "<price>999</price>" {
		t.Fatalf("unexpected mock xml node: %q", ctx.XMLNode)
	}
	if ctx.Warning == "" {
		t.Fatalf("mock context must carry warning")
	}
}

func TestGetContext_SheetRow(t *testing.T) {
	t.Parallel()

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", "Products"); err != nil {
		t.Fatalf("rename sheet: %v", err)
	}
	rows := [][]interface{}{{"Name", "Price"}, {"Laptop", 999}}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow("Products", cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}

	local := localWithFile(t, "a.xlsx", buf.Bytes())
	r := New(nil, local)

	file := &model.SourceFile{ID: "f1", Filename: "a.xlsx", FileType: "xlsx"}
	rec := &model.FieldRecord{FileID: "f1", SheetOrNode: "Products", FieldName: "Name", FieldValue: "Laptop", RowNum: intPtr(2)}

	ctx := r.GetContext(context.Background(), file, rec)
	if ctx.Warning != "" {
		t.Fatalf("unexpected warning: %s", ctx.Warning)
	}
	if ctx.RowData["Name"] != "Laptop" || ctx.RowData["Price"] != "999" {
		t.Fatalf("unexpected row data: %v", ctx.RowData)
	}

	// 工作表不存在：回退到第一个并提示
	rec2 := &model.FieldRecord{FileID: "f1", SheetOrNode: "Gone", FieldName: "Name", FieldValue: "Laptop", RowNum: intPtr(2)}
	ctx = r.GetContext(context.Background(), file, rec2)
	if ctx.Warning == "" {
		t.Fatalf("missing sheet must set warning")
	}
	if ctx.RowData["Name"] != "Laptop" {
		t.Fatalf("fallback sheet should still resolve the row: %v", ctx.RowData)
	}
}

func TestZipRow(t *testing.T) {
	t.Parallel()

	got := zipRow([]string{"A", "", "C"}, []string{"1", "2"})
	if got["A"] != "1" || got["Column2"] != "2" || got["C"] != "" {
		t.Fatalf("unexpected zip result: %v", got)
	}

	// 数据行长于表头：超出部分合成 Column<N>
	got = zipRow([]string{"A"}, []string{"1", "2", "3"})
	if got["Column2"] != "2" || got["Column3"] != "3" {
		t.Fatalf("columns beyond header missing: %v", got)
	}
}
