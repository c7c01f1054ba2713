// Package reconstruct 从源文件还原字段记录的原始上下文。
// 拍平丢弃了整行/整节点信息，这里重新读取源文件补回来；
// 任何失败都降级为带 warning 的尽力结果，永不报错。
package reconstruct

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"docindexer/internal/model"
	"docindexer/internal/parser"
	"docindexer/internal/storage"
)

// Strategy 源文件解析策略：按声明顺序尝试，取第一个成功者
type Strategy struct {
	Name  string
	Fetch func(ctx context.Context, file *model.SourceFile) ([]byte, error)
}

// Reconstructor 上下文还原器
type Reconstructor struct {
	strategies []Strategy
}

// New 创建还原器
// 解析顺序：远端对象存储（可为 nil）→ 本地磁盘。两者都取不到时
// GetContext 内部落到合成数据兜底。
func New(remote, local storage.FileStorage) *Reconstructor {
	var strategies []Strategy
	if remote != nil {
		strategies = append(strategies, Strategy{
			Name: "remote",
			Fetch: func(ctx context.Context, file *model.SourceFile) ([]byte, error) {
				return remote.Fetch(ctx, file.StoragePath)
			},
		})
	}
	if local != nil {
		strategies = append(strategies, Strategy{
			Name: "local",
			Fetch: func(ctx context.Context, file *model.SourceFile) ([]byte, error) {
				return local.Fetch(ctx, filepath.Join("uploads", file.Filename))
			},
		})
	}
	return &Reconstructor{strategies: strategies}
}

// GetContext 还原一条记录的原始上下文
// 表格类返回整行的 列头→值 映射，XML 返回字段附近的原文窗口。
// 失败时返回结构完整的替代响应并在 Warning 中说明原因。
func (r *Reconstructor) GetContext(ctx context.Context, file *model.SourceFile, rec *model.FieldRecord) *model.RecordContext {
	data, provenance, failures := r.resolve(ctx, file)
	if data == nil {
		return mockContext(file, rec, failures)
	}

	var result *model.RecordContext
	switch parser.FileType(file.FileType) {
	case parser.FileTypeXLSX, parser.FileTypeXLS:
		result = sheetContext(data, rec)
	case parser.FileTypeCSV:
		result = csvContext(data, rec)
	case parser.FileTypeXML:
		result = xmlContext(data, rec)
	default:
		result = &model.RecordContext{
			Warning: fmt.Sprintf("无法还原 %q 类型文件的上下文", file.FileType),
		}
	}

	// 非首选策略命中时把来源写进 warning
	if len(r.strategies) > 0 && provenance != r.strategies[0].Name {
		note := fmt.Sprintf("数据来自 %s 存储（首选存储不可用）", provenance)
		result.Warning = joinWarnings(result.Warning, note)
	}
	return result
}

// resolve 按策略顺序取回源文件内容
func (r *Reconstructor) resolve(ctx context.Context, file *model.SourceFile) (data []byte, provenance string, failures []string) {
	for _, st := range r.strategies {
		b, err := st.Fetch(ctx, file)
		if err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", st.Name, err))
			continue
		}
		return b, st.Name, failures
	}
	return nil, "", failures
}

// mockContext 源文件完全取不到时的合成兜底，保证响应结构完整
func mockContext(file *model.SourceFile, rec *model.FieldRecord, failures []string) *model.RecordContext {
	warning := "源文件无法获取，返回合成数据"
	if len(failures) > 0 {
		warning += "（" + strings.Join(failures, "; ") + "）"
	}

	if parser.FileType(file.FileType) == parser.FileTypeXML {
		return &model.RecordContext{
			XMLNode: fmt.Sprintf("<%s>%s</%s>", rec.FieldName, rec.FieldValue, rec.FieldName),
			Warning: warning,
		}
	}
	return &model.RecordContext{
		RowData: map[string]any{rec.FieldName: rec.FieldValue},
		Warning: warning,
	}
}

func joinWarnings(a, b string) string {
	if a == "" {
		return b
	}
	if b == "" {
		return a
	}
	return a + "；" + b
}
