package model

import "time"

// FieldRecord 拍平后的原子字段记录
// 一条记录对应源文档中的一个标量字段值，创建后不可变更。
type FieldRecord struct {
	ID            int64  `json:"id"`
	FileID        string `json:"fileId"`
	SheetOrNode   string `json:"sheetOrNode"`             // 分组键：工作表名 / CSV 默认标签 / XML 首段路径
	FieldName     string `json:"fieldName"`               // 列头或 XML 元素/属性名
	FieldValue    string `json:"fieldValue"`              // 字符串化的标量值，非空且已去除首尾空白
	RowNum        *int   `json:"rowNum"`                  // 表格类 1 基行号；XML 为 null
	ParentContext string `json:"parentContext,omitempty"` // XML 直接父元素名，其余类型为空
	FullPath      string `json:"fullPath,omitempty"`      // 字段在源文档内的唯一定位路径；CSV 为空
}

// SourceFile 上传的源文件元数据
type SourceFile struct {
	ID          string    `json:"id"`
	Filename    string    `json:"filename"`
	FileType    string    `json:"fileType"` // xlsx/xls/csv/xml
	StoragePath string    `json:"storagePath"`
	FileSize    int64     `json:"fileSize"`
	HasImages   bool      `json:"hasImages"` // 工作簿中包含无法拍平的嵌入图片
	RowCount    int       `json:"rowCount"`
	UploadedAt  time.Time `json:"uploadedAt"`
}

// RecordContext 记录的上下文还原结果
// 永远返回一个结构完整的响应；失败信息通过 Warning 传递。
type RecordContext struct {
	RowData map[string]any `json:"rowData,omitempty"` // 表格类：整行的 列头→值 映射
	XMLNode string         `json:"xmlNode,omitempty"` // XML：字段附近的原文片段
	Warning string         `json:"warning,omitempty"`
}
