package model

// ExtractedProduct 从一组字段记录中启发式还原出的产品实体
// 仅在抽取请求内短暂存在，不落库；随即投影为 LineItem。
type ExtractedProduct struct {
	Name        string            `json:"name,omitempty"`
	Model       string            `json:"model,omitempty"`
	Brand       string            `json:"brand,omitempty"`
	Category    string            `json:"category,omitempty"`
	Price       *float64          `json:"price,omitempty"`
	Currency    string            `json:"currency,omitempty"`
	Specs       map[string]string `json:"specs"` // 规格分类→值；同类多次命中用 " | " 串接
	Description string            `json:"description,omitempty"`
}

// LineItem 报价单行项目
type LineItem struct {
	ID          string            `json:"id"`
	No          int               `json:"no"`
	Description string            `json:"description"`
	Quantity    int               `json:"quantity"`
	Unit        string            `json:"unit"`
	Price       float64           `json:"price"`
	Total       float64           `json:"total"`
	Category    string            `json:"category,omitempty"`
	Brand       string            `json:"brand,omitempty"`
	Model       string            `json:"model,omitempty"`
	Specs       map[string]string `json:"specs,omitempty"`
}
