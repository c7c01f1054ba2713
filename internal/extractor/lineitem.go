package extractor

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"docindexer/internal/model"
)

const (
	descValueLimit  = 50  // 描述中单条规格值的截断长度
	fillSpecLimit   = 80  // 补位规格值的长度上限
	maxKeySpecs     = 5   // 描述中最多展示的规格条数
	freeTextLimit   = 200 // 追加自由描述的长度上限
	defaultUnit     = "个"
	defaultQuantity = 1
)

type specEntry struct {
	key   string
	value string
}

// Project 把抽取出的产品投影为报价单行项目
func (e *Extractor) Project(products []*model.ExtractedProduct) []*model.LineItem {
	items := make([]*model.LineItem, 0, len(products))
	for i, p := range products {
		price := 0.0
		if p.Price != nil {
			price = *p.Price
		}
		items = append(items, &model.LineItem{
			ID:          uuid.New().String(),
			No:          i + 1,
			Description: buildDescription(p),
			Quantity:    defaultQuantity,
			Unit:        defaultUnit,
			Price:       price,
			Total:       price * defaultQuantity,
			Category:    p.Category,
			Brand:       p.Brand,
			Model:       p.Model,
			Specs:       p.Specs,
		})
	}
	return items
}

// buildDescription 生成多行结构化描述：
// 标题行（品牌+名称或品牌+型号）、Key Features 列表、可选的短自由描述。
// 标题和规格都拿不到时退化为一段单行描述。
func buildDescription(p *model.ExtractedProduct) string {
	title := strings.TrimSpace(p.Brand + " " + p.Name)
	if p.Name == "" {
		title = strings.TrimSpace(p.Brand + " " + p.Model)
	}

	keySpecs := selectKeySpecs(p.Specs)
	if title == "" && len(keySpecs) == 0 {
		return fallbackDescription(p)
	}

	var b strings.Builder
	if title != "" {
		b.WriteString(title)
	}
	if len(keySpecs) > 0 {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString("Key Features:")
		for _, s := range keySpecs {
			b.WriteString("\n• ")
			b.WriteString(capitalize(s.key))
			b.WriteString(": ")
			b.WriteString(truncateValue(s.value, descValueLimit))
		}
	}

	// 自由描述只在足够短且未被上文包含时追加，避免重复
	desc := strings.TrimSpace(p.Description)
	if desc != "" && utf8.RuneCountInString(desc) < freeTextLimit && !strings.Contains(b.String(), desc) {
		b.WriteString("\n")
		b.WriteString(desc)
	}

	return b.String()
}

// fallbackDescription 完全无法生成结构化描述时的兜底文案
func fallbackDescription(p *model.ExtractedProduct) string {
	name := p.Name
	if name == "" {
		name = p.Model
	}
	if name == "" {
		name = "Product"
	}
	s := strings.TrimSpace(p.Brand + " " + name)
	if p.Category != "" {
		s += " - " + p.Category
	}
	return s
}

// selectKeySpecs 挑选最多 5 条关键规格
// 先按固定优先级取，再用其余较短的规格补齐剩余槽位。
func selectKeySpecs(specs map[string]string) []specEntry {
	var out []specEntry
	for _, key := range keySpecPriority {
		if len(out) == maxKeySpecs {
			return out
		}
		if v := specs[key]; v != "" {
			out = append(out, specEntry{key, v})
		}
	}
	for _, cat := range specCategories {
		if len(out) == maxKeySpecs {
			break
		}
		if inPriority(cat.key) {
			continue
		}
		v := specs[cat.key]
		if v == "" || utf8.RuneCountInString(v) >= fillSpecLimit {
			continue
		}
		out = append(out, specEntry{cat.key, v})
	}
	return out
}

func inPriority(key string) bool {
	for _, k := range keySpecPriority {
		if k == key {
			return true
		}
	}
	return false
}

// truncateValue 按词边界截断到 limit 个字符
// 截断窗口最后 30% 内找不到合适的空格时，硬截断并补省略号。
// 边界判断统一按字符数算，多字节值不会把阈值比偏。
func truncateValue(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	cut := runes[:limit]
	if idx := lastSpace(cut); idx >= limit*7/10 {
		return string(cut[:idx])
	}
	return strings.TrimSpace(string(cut)) + "..."
}

func lastSpace(runes []rune) int {
	for i := len(runes) - 1; i >= 0; i-- {
		if runes[i] == ' ' {
			return i
		}
	}
	return -1
}
