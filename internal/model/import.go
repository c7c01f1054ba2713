package model

import "time"

// FileResult 单个文件的导入结果
type FileResult struct {
	Filename    string        `json:"filename"`
	FileID      string        `json:"fileId,omitempty"`
	FileType    string        `json:"fileType"`
	Status      string        `json:"status"` // imported/skipped/error
	RecordCount int           `json:"recordCount"`
	RowCount    int           `json:"rowCount"`
	HasImages   bool          `json:"hasImages"`
	Errors      []string      `json:"errors,omitempty"`
	Duration    time.Duration `json:"duration"`
}

// ImportReport 一次上传批次的汇总报告
type ImportReport struct {
	TotalFiles    int           `json:"totalFiles"`
	ImportedFiles int           `json:"importedFiles"`
	SkippedFiles  int           `json:"skippedFiles"`
	TotalRecords  int           `json:"totalRecords"`
	TotalRows     int           `json:"totalRows"`
	Duration      time.Duration `json:"duration"`
	Files         []FileResult  `json:"files"`
}
