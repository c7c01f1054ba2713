package parser

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"docindexer/internal/model"
)

// CSVDefaultSheet CSV 记录使用的固定分组标签
const CSVDefaultSheet = "CSV"

// CSVParser CSV 解析器
// 首行为列头，空行跳过；行号在数据行内 1 基编号，fullPath 恒为空。
type CSVParser struct{}

// NewCSVParser 创建 CSV 解析器
func NewCSVParser() *CSVParser {
	return &CSVParser{}
}

// Parse 拍平 CSV 内容
// 解析失败向调用方传播，由调用方记录零条记录后继续批次。
func (p *CSVParser) Parse(data []byte, fileID string) (*ParseOutput, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1 // 允许各行列数不一致
	r.TrimLeadingSpace = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}

	out := &ParseOutput{Records: []*model.FieldRecord{}}
	if len(rows) == 0 {
		return out, nil
	}

	header := rows[0]
	for i, row := range rows[1:] {
		rowNum := i + 1
		for col := 0; col < len(header); col++ {
			if col >= len(row) {
				continue
			}
			value := strings.TrimSpace(row[col])
			if value == "" {
				continue
			}
			name := strings.TrimSpace(header[col])
			if name == "" {
				name = fmt.Sprintf("Column%d", col+1)
			}
			rn := rowNum
			out.Records = append(out.Records, &model.FieldRecord{
				FileID:      fileID,
				SheetOrNode: CSVDefaultSheet,
				FieldName:   name,
				FieldValue:  value,
				RowNum:      &rn,
			})
		}
	}
	out.RowCount = len(rows) - 1

	return out, nil
}
