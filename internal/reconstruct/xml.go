package reconstruct

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"docindexer/internal/model"
)

const (
	xmlWindow       = 200  // 命中位置前后各保留的字符数
	xmlPreviewLimit = 1000 // 定位失败时返回的文档开头长度
)

// xmlContext 在原始 XML 文本中定位字段并返回周边片段
// 这是文本级启发式匹配：按元素名和值拼正则，而非复用拍平时的路径。
// 找不到时退回文档开头预览。
func xmlContext(data []byte, rec *model.FieldRecord) *model.RecordContext {
	text := string(data)

	pattern := fmt.Sprintf(`<%s[^>]*>[^<]*%s[^<]*</%s>`,
		regexp.QuoteMeta(rec.FieldName),
		regexp.QuoteMeta(rec.FieldValue),
		regexp.QuoteMeta(rec.FieldName))

	re, err := regexp.Compile(pattern)
	if err != nil {
		return xmlPreview(text, fmt.Sprintf("无法构造定位表达式: %v", err))
	}

	loc := re.FindStringIndex(text)
	if loc == nil {
		return xmlPreview(text, fmt.Sprintf("未能在源文档中定位 <%s> 节点，返回文档开头预览", rec.FieldName))
	}

	start := runeSafeBack(text, loc[0], xmlWindow)
	end := runeSafeForward(text, loc[1], xmlWindow)

	node := text[start:end]
	if start > 0 {
		node = "..." + node
	}
	if end < len(text) {
		node = node + "..."
	}
	return &model.RecordContext{XMLNode: node}
}

// xmlPreview 返回文档开头预览
func xmlPreview(text, warning string) *model.RecordContext {
	preview := text
	if utf8.RuneCountInString(preview) > xmlPreviewLimit {
		runes := []rune(preview)
		preview = string(runes[:xmlPreviewLimit])
	}
	return &model.RecordContext{XMLNode: preview, Warning: warning}
}

// runeSafeBack 从 pos 向前回退约 n 个字节并对齐到字符边界
func runeSafeBack(s string, pos, n int) int {
	start := pos - n
	if start < 0 {
		return 0
	}
	for start > 0 && !utf8.RuneStart(s[start]) {
		start--
	}
	return start
}

// runeSafeForward 从 pos 向后推进约 n 个字节并对齐到字符边界
func runeSafeForward(s string, pos, n int) int {
	end := pos + n
	if end >= len(s) {
		return len(s)
	}
	for end < len(s) && !utf8.RuneStart(s[end]) {
		end++
	}
	return end
}
