package parser

import (
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/clbanning/mxj/v2"

	"docindexer/internal/model"
)

// XMLDefaultNode 兜底分组标签：整个文档没有产出任何分组键时使用
const XMLDefaultNode = "root"

// XMLAttrPrefix 属性内联为普通键时使用的前缀
const XMLAttrPrefix = "@"

// SetAttrPrefix 改的是 mxj 的包级状态，只允许在 init 里写一次；
// Parse 内不得再碰，否则并发解析会互相踩
func init() {
	mxj.SetAttrPrefix(XMLAttrPrefix)
}

// XMLParser XML 解析器
// 先解析成嵌套 map，再深度优先遍历，每个标量叶子值产出一条字段记录。
// 属性按前缀规则内联为普通键。
type XMLParser struct{}

// NewXMLParser 创建 XML 解析器
func NewXMLParser() *XMLParser {
	return &XMLParser{}
}

// Parse 拍平 XML 文档
// XML 是三种格式中最不可靠的输入：任何解析失败只记录日志并返回空结果，
// 绝不向上传播，避免一份坏文件中断整个上传批次。
func (p *XMLParser) Parse(data []byte, fileID string) (*ParseOutput, error) {
	m, err := mxj.NewMapXml(data)
	if err != nil {
		log.Printf("xml parse failed (fileID=%s): %v", fileID, err)
		return &ParseOutput{Records: []*model.FieldRecord{}}, nil
	}

	// 根元素本身不进入路径：从它的子节点开始拍平
	root := map[string]interface{}(m)
	var start interface{} = root
	if len(root) == 1 {
		for _, v := range root {
			switch v.(type) {
			case map[string]interface{}, []interface{}:
				start = v
			}
		}
	}

	records := make([]*model.FieldRecord, 0)
	p.walk(start, "", "", fileID, &records)

	// 后置不变式：一个分组键都没有时，整体回写为固定默认值，保证可分组
	grouped := false
	for _, rec := range records {
		if rec.SheetOrNode != "" {
			grouped = true
			break
		}
	}
	if !grouped {
		for _, rec := range records {
			rec.SheetOrNode = XMLDefaultNode
		}
	}

	return &ParseOutput{Records: records, RowCount: len(records)}, nil
}

// walk 深度优先遍历
// path 为累积路径，parent 为直接父元素名。键排序后遍历，保证同一文档
// 两次解析产出完全一致的路径集合。
func (p *XMLParser) walk(node interface{}, path, parent, fileID string, out *[]*model.FieldRecord) {
	switch v := node.(type) {
	case map[string]interface{}:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			childPath := k
			if path != "" {
				childPath = path + "/" + k
			}
			switch child := v[k].(type) {
			case map[string]interface{}:
				p.walk(child, childPath, k, fileID, out)
			case []interface{}:
				for i, item := range child {
					p.walk(item, fmt.Sprintf("%s[%d]", childPath, i), k, fileID, out)
				}
			default:
				p.emitLeaf(child, childPath, k, parent, fileID, out)
			}
		}
	case []interface{}:
		for i, item := range v {
			p.walk(item, fmt.Sprintf("%s[%d]", path, i), parent, fileID, out)
		}
	default:
		p.emitLeaf(v, path, lastSegmentName(path), parent, fileID, out)
	}
}

// emitLeaf 产出一条标量叶子记录；空值直接丢弃
func (p *XMLParser) emitLeaf(value interface{}, path, key, parent, fileID string, out *[]*model.FieldRecord) {
	if value == nil || path == "" {
		return
	}
	text := strings.TrimSpace(fmt.Sprintf("%v", value))
	if text == "" {
		return
	}
	*out = append(*out, &model.FieldRecord{
		FileID:        fileID,
		SheetOrNode:   firstSegment(path),
		FieldName:     key,
		FieldValue:    text,
		ParentContext: parent,
		FullPath:      path,
	})
}

// firstSegment 取路径首段作为分组键（保留数组下标，使同级数组元素各成一组）
func firstSegment(path string) string {
	if idx := strings.Index(path, "/"); idx >= 0 {
		return path[:idx]
	}
	return path
}

// lastSegmentName 取路径末段的元素名（去掉数组下标）
func lastSegmentName(path string) string {
	seg := path
	if idx := strings.LastIndex(path, "/"); idx >= 0 {
		seg = path[idx+1:]
	}
	if idx := strings.Index(seg, "["); idx >= 0 {
		seg = seg[:idx]
	}
	return seg
}
