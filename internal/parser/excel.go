package parser

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"docindexer/internal/model"
)

// SheetNameField 工作表名称元数据记录的字段名
const SheetNameField = "_sheetName"

// ExcelParser 工作簿解析器
// 逐 Sheet、逐单元格拍平：每个非空数据单元格产出一条字段记录。
type ExcelParser struct{}

// NewExcelParser 创建工作簿解析器
func NewExcelParser() *ExcelParser {
	return &ExcelParser{}
}

// Parse 拍平多 Sheet 工作簿
// 规则：
//   - 空 Sheet 整体跳过；只有表头的 Sheet 也跳过，除非它是唯一的 Sheet
//   - 每个保留的 Sheet 先产出一条 _sheetName 元数据记录（rowNum=0）
//   - 第 0 行为表头；数据行行号从 2 起（表头占第 1 行）
//   - 表头为空的列合成 Column<N+1> 作为字段名
//
// 打开或读取失败时向调用方传播错误，由调用方记录零条记录后继续批次。
func (p *ExcelParser) Parse(data []byte, fileID string) (*ParseOutput, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	out := &ParseOutput{Records: []*model.FieldRecord{}}

	for _, sheet := range sheets {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
		}
		if len(rows) == 0 {
			continue
		}
		if len(rows) == 1 && len(sheets) > 1 {
			// 只有表头且不是唯一 Sheet：连名称记录都不产出
			continue
		}

		zero := 0
		out.Records = append(out.Records, &model.FieldRecord{
			FileID:      fileID,
			SheetOrNode: sheet,
			FieldName:   SheetNameField,
			FieldValue:  sheet,
			RowNum:      &zero,
			FullPath:    "/" + sheet,
		})

		header := rows[0]
		for i, row := range rows[1:] {
			rowNum := i + 2
			// GetRows 会裁掉行尾的空单元格，表头也不例外；
			// 按表头和数据行中较长者确定列跨度，保证尾列空表头下的数据不丢
			span := len(header)
			if len(row) > span {
				span = len(row)
			}
			for col := 0; col < span; col++ {
				if col >= len(row) {
					continue
				}
				value := strings.TrimSpace(row[col])
				if value == "" {
					continue
				}
				name := ""
				if col < len(header) {
					name = strings.TrimSpace(header[col])
				}
				if name == "" {
					name = fmt.Sprintf("Column%d", col+1)
				}
				rn := rowNum
				out.Records = append(out.Records, &model.FieldRecord{
					FileID:      fileID,
					SheetOrNode: sheet,
					FieldName:   name,
					FieldValue:  value,
					RowNum:      &rn,
					FullPath:    fmt.Sprintf("/%s/row%d/%s", sheet, rowNum, name),
				})
			}
		}
		out.RowCount += len(rows) - 1

		// 嵌入图片无法拍平，标记后由上层以非致命警告透出
		if cells, err := f.GetPictureCells(sheet); err == nil && len(cells) > 0 {
			out.HasImages = true
		}
	}

	return out, nil
}
