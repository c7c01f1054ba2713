package reconstruct

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"docindexer/internal/model"
)

// sheetContext 还原工作簿中一行的完整内容
// 工作表缺失时回退到第一个工作表；行号越界返回空映射加 warning。
func sheetContext(data []byte, rec *model.FieldRecord) *model.RecordContext {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return &model.RecordContext{
			RowData: map[string]any{},
			Warning: fmt.Sprintf("源文件已无法解析: %v", err),
		}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return &model.RecordContext{RowData: map[string]any{}, Warning: "工作簿中没有工作表"}
	}

	sheet := rec.SheetOrNode
	warning := ""
	if !containsSheet(sheets, sheet) {
		warning = fmt.Sprintf("工作表 %q 不存在，已回退到 %q", sheet, sheets[0])
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil || len(rows) == 0 {
		return &model.RecordContext{RowData: map[string]any{}, Warning: joinWarnings(warning, "工作表内容为空")}
	}

	if rec.RowNum == nil {
		return &model.RecordContext{RowData: map[string]any{}, Warning: joinWarnings(warning, "记录缺少行号")}
	}

	// 工作簿行号含表头：row2 是第一个数据行，对应 rows[1]
	idx := *rec.RowNum - 1
	if idx <= 0 || idx >= len(rows) {
		return &model.RecordContext{
			RowData: map[string]any{},
			Warning: joinWarnings(warning, fmt.Sprintf("第 %d 行已不存在（当前 %d 行）", *rec.RowNum, len(rows))),
		}
	}

	return &model.RecordContext{
		RowData: zipRow(rows[0], rows[idx]),
		Warning: warning,
	}
}

// csvContext 还原 CSV 中一行的完整内容
// CSV 行号不含表头：row1 对应 rows[1]。
func csvContext(data []byte, rec *model.FieldRecord) *model.RecordContext {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	rows, err := r.ReadAll()
	if err != nil {
		return &model.RecordContext{
			RowData: map[string]any{},
			Warning: fmt.Sprintf("源文件已无法解析: %v", err),
		}
	}
	if len(rows) == 0 {
		return &model.RecordContext{RowData: map[string]any{}, Warning: "文件内容为空"}
	}

	if rec.RowNum == nil {
		return &model.RecordContext{RowData: map[string]any{}, Warning: "记录缺少行号"}
	}

	idx := *rec.RowNum
	if idx <= 0 || idx >= len(rows) {
		return &model.RecordContext{
			RowData: map[string]any{},
			Warning: fmt.Sprintf("第 %d 行已不存在（当前 %d 个数据行）", *rec.RowNum, len(rows)-1),
		}
	}

	return &model.RecordContext{RowData: zipRow(rows[0], rows[idx])}
}

// zipRow 把表头和数据行拼成 列头→值 映射
// 跨度取表头和数据行中较长者，超出表头的列合成 Column<N> 列名，
// 与拍平时的列名规则保持一致。
func zipRow(header, row []string) map[string]any {
	span := len(header)
	if len(row) > span {
		span = len(row)
	}
	out := make(map[string]any, span)
	for col := 0; col < span; col++ {
		name := ""
		if col < len(header) {
			name = strings.TrimSpace(header[col])
		}
		if name == "" {
			name = fmt.Sprintf("Column%d", col+1)
		}
		value := ""
		if col < len(row) {
			value = strings.TrimSpace(row[col])
		}
		out[name] = value
	}
	return out
}

func containsSheet(sheets []string, name string) bool {
	for _, s := range sheets {
		if s == name {
			return true
		}
	}
	return false
}
