package extractor

import (
	"strconv"
	"strings"

	"docindexer/internal/model"
)

// DefaultGroup 分组兜底键：记录既无 sheetOrNode 也无 parentContext 时使用
const DefaultGroup = "default"

// Extractor 技术规格抽取引擎
// 把拍平的字段记录按邻近性重新聚合成候选产品，再用关键词和数值模式
// 把每个字段归入身份属性、规格分类或价格。整个过程无隐藏状态，
// 同一输入两次抽取结果一致。
type Extractor struct{}

// New 创建抽取引擎
func New() *Extractor {
	return &Extractor{}
}

// Extract 把字段记录分组并抽取为产品实体
// 分组键依次取 sheetOrNode、parentContext、默认键。一组一个候选产品；
// 一个可归类字段都没有的组不产出产品（交由调用方降级处理）。
func (e *Extractor) Extract(records []*model.FieldRecord) []*model.ExtractedProduct {
	groups := make(map[string][]*model.FieldRecord)
	var order []string
	for _, rec := range records {
		key := rec.SheetOrNode
		if key == "" {
			key = rec.ParentContext
		}
		if key == "" {
			key = DefaultGroup
		}
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], rec)
	}

	products := make([]*model.ExtractedProduct, 0, len(order))
	for _, key := range order {
		if p := e.extractGroup(groups[key]); p != nil {
			products = append(products, p)
		}
	}
	return products
}

// extractGroup 抽取单组记录；无任何命中时返回 nil
func (e *Extractor) extractGroup(records []*model.FieldRecord) *model.ExtractedProduct {
	product := &model.ExtractedProduct{Specs: make(map[string]string)}

	matched := false
	for _, rec := range records {
		if e.classify(product, rec) {
			matched = true
		}
	}
	if !matched {
		return nil
	}

	// 清理空白规格值
	for k, v := range product.Specs {
		if strings.TrimSpace(v) == "" {
			delete(product.Specs, k)
		}
	}

	if product.Description == "" && len(product.Specs) > 0 {
		product.Description = synthesizeDescription(product.Specs)
	}

	return product
}

// classify 把单条记录归入产品属性，按固定优先级：
// 身份字段 → 规格分类关键词 → 数值模式兜底 → 价格。
// 返回该记录是否产生了任何归类结果。
func (e *Extractor) classify(p *model.ExtractedProduct, rec *model.FieldRecord) bool {
	name := strings.ToLower(rec.FieldName)
	value := rec.FieldValue
	matched := false

	// 1. 身份字段：各关键词组独立判断，后出现的字段覆盖先出现的
	identity := false
	if containsAny(name, nameKeywords) {
		p.Name = value
		identity = true
	}
	if containsAny(name, modelKeywords) {
		p.Model = value
		identity = true
	}
	if containsAny(name, brandKeywords) {
		p.Brand = value
		identity = true
	}
	if containsAny(name, categoryKeywords) {
		p.Category = value
		identity = true
	}
	if containsAny(name, descriptionKeywords) {
		p.Description = value
		identity = true
	}
	matched = identity

	lowerValue := strings.ToLower(value)

	// 2. 规格分类：字段名或字段值命中关键词即归类，首个命中分类生效
	if !identity {
		for _, cat := range specCategories {
			if containsAny(name, cat.keywords) || containsAny(lowerValue, cat.keywords) {
				appendSpec(p.Specs, cat.key, value)
				matched = true
				break
			}
		}
	}

	// 3. 数值模式兜底：只填充仍为空的分类槽位
	for _, sp := range specPatterns {
		if p.Specs[sp.key] != "" {
			continue
		}
		if sp.pattern.MatchString(value) {
			p.Specs[sp.key] = value
			matched = true
		}
	}

	// 4. 价格：字段名含价格关键词时，取值中第一个数字串
	if containsAny(name, priceKeywords) {
		if price, ok := extractPrice(value); ok {
			p.Price = &price
			p.Currency = detectCurrency(value, name)
			matched = true
		}
	}

	return matched
}

// appendSpec 同一分类多次命中时用分隔符累加，而不是覆盖
func appendSpec(specs map[string]string, key, value string) {
	if existing := specs[key]; existing != "" {
		specs[key] = existing + " | " + value
		return
	}
	specs[key] = value
}

// extractPrice 从字段值中提取第一个数字串（去千分位逗号）
func extractPrice(value string) (float64, bool) {
	m := priceNumberPattern.FindString(value)
	if m == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(m, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// detectCurrency 从字段值（其次字段名）识别币种，缺省 USD
func detectCurrency(value, lowerName string) string {
	lowerValue := strings.ToLower(value)
	for _, m := range currencyMatchers {
		if strings.Contains(lowerValue, m.token) || strings.Contains(lowerName, m.token) {
			return m.currency
		}
	}
	return "USD"
}

// synthesizeDescription 没有独立描述字段时，从规格合成一段描述
// 最多取 5 条、每条值不超过 100 字符，按分类表顺序保证稳定输出。
func synthesizeDescription(specs map[string]string) string {
	var lines []string
	for _, cat := range specCategories {
		v := specs[cat.key]
		if v == "" || len([]rune(v)) >= 100 {
			continue
		}
		lines = append(lines, capitalize(cat.key)+": "+v)
		if len(lines) == 5 {
			break
		}
	}
	return strings.Join(lines, "\n")
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
