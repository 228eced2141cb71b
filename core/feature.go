package core

import (
	"strconv"
	"strings"
)

// FeatureRecord 是一个物品的描述性属性，由外部目录协作方提供。
// 同一 item_id 的后续 Upsert 整体覆盖旧记录（write-once-per-id upsert）。
type FeatureRecord struct {
	ItemID      string   `json:"item_id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Price       float64  `json:"price"`
	Brand       string   `json:"brand"`
	Tags        []string `json:"tags,omitempty"`
}

// Text 返回用于内容模型向量化的文本拼接：
// name + description + category + brand + price-as-text。
// Tags 不参与向量化，只作为目录元信息保留。
func (r FeatureRecord) Text() string {
	parts := []string{
		r.Name,
		r.Description,
		r.Category,
		r.Brand,
		strconv.FormatFloat(r.Price, 'f', -1, 64),
	}
	return strings.Join(parts, " ")
}
