package extractor

import (
	"reflect"
	"strings"
	"testing"

	"docindexer/internal/model"
)

func rec(sheet, name, value string) *model.FieldRecord {
	return &model.FieldRecord{SheetOrNode: sheet, FieldName: name, FieldValue: value}
}

func TestExtract_ProductFromSheet(t *testing.T) {
	t.Parallel()

	records := []*model.FieldRecord{
		rec("Products", "Brand", "Acme"),
		rec("Products", "Model", "X1"),
		rec("Products", "Memory", "16GB DDR4"),
		rec("Products", "Price", "$499"),
	}

	products := New().Extract(records)
	if len(products) != 1 {
		t.Fatalf("expected 1 product, got %d", len(products))
	}

	p := products[0]
	if p.Brand != "Acme" {
		t.Fatalf("unexpected brand: %q", p.Brand)
	}
	if p.Model != "X1" {
		t.Fatalf("unexpected model: %q", p.Model)
	}
	if p.Specs["memory"] != "16GB DDR4" {
		t.Fatalf("unexpected memory spec: %q", p.Specs["memory"])
	}
	if p.Price == nil || *p.Price != 499 {
		t.Fatalf("unexpected price: %v", p.Price)
	}
	if p.Currency != "USD" {
		t.Fatalf("unexpected currency: %q", p.Currency)
	}
}

func TestExtract_GroupsBySheetThenParent(t *testing.T) {
	t.Parallel()

	records := []*model.FieldRecord{
		rec("A", "Name", "First"),
		rec("B", "Name", "Second"),
		{ParentContext: "item", FieldName: "Name", FieldValue: "Third"},
	}

	products := New().Extract(records)
	if len(products) != 3 {
		t.Fatalf("expected 3 products, got %d", len(products))
	}
	// 分组按首次出现顺序
	names := []string{products[0].Name, products[1].Name, products[2].Name}
	if !reflect.DeepEqual(names, []string{"First", "Second", "Third"}) {
		t.Fatalf("unexpected order: %v", names)
	}
}

func TestExtract_NoMatchYieldsNoProduct(t *testing.T) {
	t.Parallel()

	records := []*model.FieldRecord{
		rec("S", "Remark", "hello"),
		rec("S", "Note", "world"),
	}

	products := New().Extract(records)
	if len(products) != 0 {
		t.Fatalf("unclassifiable group must yield no product, got %d", len(products))
	}
}

func TestExtract_SpecAccumulation(t *testing.T) {
	t.Parallel()

	records := []*model.FieldRecord{
		rec("S", "Port 1", "USB-C"),
		rec("S", "Port 2", "HDMI 2.1"),
	}

	products := New().Extract(records)
	if len(products) != 1 {
		t.Fatalf("expected 1 product, got %d", len(products))
	}
	if got := products[0].Specs["ports"]; got != "USB-C | HDMI 2.1" {
		t.Fatalf("expected accumulated ports spec, got %q", got)
	}
}

func TestExtract_ValueMatchesCategory(t *testing.T) {
	t.Parallel()

	// 字段名不含关键词，字段值含 "ssd" 命中 storage 分类
	records := []*model.FieldRecord{rec("S", "Spec A", "512GB SSD")}

	products := New().Extract(records)
	if len(products) != 1 {
		t.Fatalf("expected 1 product, got %d", len(products))
	}
	if got := products[0].Specs["storage"]; got != "512GB SSD" {
		t.Fatalf("expected storage spec, got %q", got)
	}
}

func TestExtract_PatternFillsEmptySlotOnly(t *testing.T) {
	t.Parallel()

	records := []*model.FieldRecord{
		rec("S", "Memory", "16GB DDR4"),
		// 值也匹配 memory 正则，但槽位已被关键词命中占用，不覆盖
		rec("S", "Extra", "8GB RAM"),
	}

	products := New().Extract(records)
	if len(products) != 1 {
		t.Fatalf("expected 1 product, got %d", len(products))
	}
	got := products[0].Specs["memory"]
	if !strings.HasPrefix(got, "16GB DDR4") {
		t.Fatalf("keyword hit must not be overwritten by pattern, got %q", got)
	}
}

func TestExtract_IdentityOverwrite(t *testing.T) {
	t.Parallel()

	records := []*model.FieldRecord{
		rec("S", "Name", "Old"),
		rec("S", "Product Name", "New"),
	}

	products := New().Extract(records)
	if len(products) != 1 {
		t.Fatalf("expected 1 product, got %d", len(products))
	}
	if products[0].Name != "New" {
		t.Fatalf("later identity field must overwrite, got %q", products[0].Name)
	}
}

func TestExtract_PriceFormats(t *testing.T) {
	t.Parallel()

	cases := []struct {
		value    string
		price    float64
		currency string
	}{
		{"$1,234.56", 1234.56, "USD"},
		{"¥899", 899, "CNY"},
		{"1299.99 EUR", 1299.99, "EUR"},
		{"499", 499, "USD"},
	}

	for _, tc := range cases {
		products := New().Extract([]*model.FieldRecord{rec("S", "Price", tc.value)})
		if len(products) != 1 {
			t.Fatalf("%q: expected 1 product", tc.value)
		}
		p := products[0]
		if p.Price == nil || *p.Price != tc.price {
			t.Fatalf("%q: unexpected price %v, want %v", tc.value, p.Price, tc.price)
		}
		if p.Currency != tc.currency {
			t.Fatalf("%q: unexpected currency %q, want %q", tc.value, p.Currency, tc.currency)
		}
	}
}

func TestExtract_Deterministic(t *testing.T) {
	t.Parallel()

	records := []*model.FieldRecord{
		rec("S", "Brand", "Acme"),
		rec("S", "Display", "15.6 inch FHD"),
		rec("S", "Battery", "5000mAh"),
		rec("S", "Price", "$999"),
	}

	e := New()
	first := e.Extract(records)
	second := e.Extract(records)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("extraction must be deterministic")
	}
}

func TestExtract_SynthesizedDescription(t *testing.T) {
	t.Parallel()

	records := []*model.FieldRecord{
		rec("S", "Display", "15.6 inch"),
		rec("S", "Battery", "5000mAh"),
	}

	products := New().Extract(records)
	if len(products) != 1 {
		t.Fatalf("expected 1 product, got %d", len(products))
	}
	desc := products[0].Description
	if !strings.Contains(desc, "Display: 15.6 inch") {
		t.Fatalf("synthesized description missing display line: %q", desc)
	}
	if !strings.Contains(desc, "Battery: 5000mAh") {
		t.Fatalf("synthesized description missing battery line: %q", desc)
	}
}
