package extractor

import "regexp"

// 身份属性关键词组：各组独立判断，一个字段可同时命中多组
var (
	nameKeywords        = []string{"name", "title", "产品名", "名称", "品名"}
	modelKeywords       = []string{"model", "型号", "规格型号"}
	brandKeywords       = []string{"brand", "manufacturer", "品牌", "厂商", "厂家"}
	categoryKeywords    = []string{"category", "type", "分类", "类别", "类型"}
	descriptionKeywords = []string{"description", "desc", "描述", "说明", "简介"}
)

// specCategory 规格分类定义
type specCategory struct {
	key      string
	keywords []string
}

// specCategories 规格分类表
// 切片顺序即匹配优先级：逐条扫描，首个命中即生效，不做多重归类。
var specCategories = []specCategory{
	{"display", []string{"display", "screen", "lcd", "oled", "resolution", "分辨率", "屏幕", "显示"}},
	{"processor", []string{"processor", "cpu", "chipset", "soc", "处理器", "芯片"}},
	{"storage", []string{"storage", "disk", "ssd", "hdd", "rom", "emmc", "硬盘", "存储"}},
	{"graphics", []string{"graphics", "gpu", "geforce", "radeon", "显卡"}},
	{"connectivity", []string{"connectivity", "network", "ethernet", "lan", "联网", "网络"}},
	{"security", []string{"security", "fingerprint", "tpm", "指纹", "安全"}},
	{"battery", []string{"battery", "电池", "续航"}},
	{"memory", []string{"memory", "ram", "ddr", "内存"}},
	{"camera", []string{"camera", "webcam", "摄像头", "相机"}},
	{"audio", []string{"audio", "speaker", "microphone", "音频", "扬声器"}},
	{"dimensions", []string{"dimension", "尺寸", "外形"}},
	{"weight", []string{"weight", "重量"}},
	{"operatingSystem", []string{"operating system", "windows", "macos", "ubuntu", "android", "操作系统"}},
	{"ports", []string{"port", "usb", "hdmi", "接口"}},
	{"wireless", []string{"wireless", "wifi", "wi-fi", "bluetooth", "蓝牙", "无线"}},
}

// specPatterns 数值模式兜底
// 针对字段值（而非字段名）的正则，仅在对应分类槽位仍为空时生效，
// 保证不覆盖关键词命中的结果。
var specPatterns = []struct {
	key     string
	pattern *regexp.Regexp
}{
	{"display", regexp.MustCompile(`(?i)\d+(\.\d+)?\s*(inch|"|in|cm)`)},
	{"storage", regexp.MustCompile(`(?i)\d+\s*(gb|tb)\s*(ssd|hdd|storage)`)},
	{"memory", regexp.MustCompile(`(?i)\d+\s*gb\s*(ram|memory|ddr)`)},
	{"processor", regexp.MustCompile(`(?i)\d+(\.\d+)?\s*(ghz|mhz)`)},
	{"battery", regexp.MustCompile(`(?i)\d+\s*(mah|wh|hours?)`)},
}

// 价格相关
var (
	priceKeywords = []string{"price", "cost", "amount", "total", "msrp", "价格", "单价", "金额", "总价", "$", "¥", "￥", "€", "£"}

	// 第一个数字串（允许千分位逗号）作为价格
	priceNumberPattern = regexp.MustCompile(`-?\d[\d,]*(\.\d+)?`)

	// 币种按序匹配：先三字码，再符号
	currencyMatchers = []struct {
		token    string
		currency string
	}{
		{"usd", "USD"},
		{"cny", "CNY"},
		{"rmb", "CNY"},
		{"eur", "EUR"},
		{"gbp", "GBP"},
		{"jpy", "JPY"},
		{"¥", "CNY"},
		{"￥", "CNY"},
		{"€", "EUR"},
		{"£", "GBP"},
		{"$", "USD"},
	}
)

// keySpecPriority 行项目描述优先展示的规格分类
var keySpecPriority = []string{"display", "processor", "memory", "storage", "graphics", "battery", "operatingSystem"}
