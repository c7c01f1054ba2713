package parser

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"docindexer/internal/model"
)

// FileType 支持的源文件类型
type FileType string

const (
	FileTypeXLSX FileType = "xlsx"
	FileTypeXLS  FileType = "xls"
	FileTypeCSV  FileType = "csv"
	FileTypeXML  FileType = "xml"
)

// ErrUnsupportedType 不支持的文件类型
var ErrUnsupportedType = errors.New("unsupported file type")

// ParseOutput 解析输出
// HasImages 仅对工作簿有意义：嵌入图片无法拍平，由调用方以警告形式透出。
type ParseOutput struct {
	Records   []*model.FieldRecord
	RowCount  int
	HasImages bool
}

// Parser 格式解析器统一契约：原始字节 → 拍平的字段记录流
type Parser interface {
	Parse(data []byte, fileID string) (*ParseOutput, error)
}

// New 按文件类型标签创建解析器
func New(fileType string) (Parser, error) {
	switch FileType(strings.ToLower(strings.TrimSpace(fileType))) {
	case FileTypeXLSX, FileTypeXLS:
		return NewExcelParser(), nil
	case FileTypeCSV:
		return NewCSVParser(), nil
	case FileTypeXML:
		return NewXMLParser(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, fileType)
	}
}

// TypeFromFilename 从文件名推断类型标签（小写、不含点）
func TypeFromFilename(filename string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
}

// IsSupported 判断文件类型是否受支持
func IsSupported(fileType string) bool {
	_, err := New(fileType)
	return err == nil
}
