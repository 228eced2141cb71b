package core

import (
	"encoding/json"
	"math"
)

// PriceRange 是用户观察到的价格区间。
//
// 不变量：只会变宽或保持不变，从不收窄；初始为退化区间 [+Inf, 0]，
// 在第一个带价格的事件到来前视为"空"。
type PriceRange struct {
	Min float64
	Max float64
}

// NewPriceRange 返回空的价格区间。
func NewPriceRange() PriceRange {
	return PriceRange{Min: math.Inf(1), Max: 0}
}

// Empty 报告区间是否仍未观察到任何价格。
func (r PriceRange) Empty() bool {
	return math.IsInf(r.Min, 1)
}

// Extend 用新的价格扩展区间。
func (r *PriceRange) Extend(price float64) {
	if price < r.Min {
		r.Min = price
	}
	if price > r.Max {
		r.Max = price
	}
}

// Contains 报告价格是否落在已观察到的区间内。空区间不包含任何价格。
func (r PriceRange) Contains(price float64) bool {
	return !r.Empty() && r.Min <= price && price <= r.Max
}

// priceRangeJSON 是 PriceRange 的序列化形态。
// JSON 不支持 +Inf，空区间的 min 序列化为 null。
type priceRangeJSON struct {
	Min *float64 `json:"min"`
	Max float64  `json:"max"`
}

func (r PriceRange) MarshalJSON() ([]byte, error) {
	out := priceRangeJSON{Max: r.Max}
	if !r.Empty() {
		min := r.Min
		out.Min = &min
	}
	return json.Marshal(out)
}

func (r *PriceRange) UnmarshalJSON(data []byte) error {
	var in priceRangeJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*r = NewPriceRange()
	r.Max = in.Max
	if in.Min != nil {
		r.Min = *in.Min
	}
	return nil
}

// PreferenceProfile 是由行为事件增量派生的用户偏好画像。
//
// 不变量：
//   - CategoryWeight / BrandWeight 的已有条目单调不减（事件只累加权重）
//   - PriceRange 只扩不缩
//
// 每个事件在 Record 时同步折叠进画像；画像从不删除。
type PreferenceProfile struct {
	UserID         string             `json:"user_id"`
	CategoryWeight map[string]float64 `json:"category_weight"`
	BrandWeight    map[string]float64 `json:"brand_weight"`
	PriceRange     PriceRange         `json:"price_range"`
}

// NewPreferenceProfile 创建一个空画像。
func NewPreferenceProfile(userID string) *PreferenceProfile {
	return &PreferenceProfile{
		UserID:         userID,
		CategoryWeight: make(map[string]float64),
		BrandWeight:    make(map[string]float64),
		PriceRange:     NewPriceRange(),
	}
}

// Apply 将一个行为事件折叠进画像。
// 缺失的 metadata 字段只是跳过对应的更新，事件本身总是被接受。
func (p *PreferenceProfile) Apply(ev BehaviorEvent) {
	w := ActionWeight(ev.Action)
	if ev.Metadata.Category != "" {
		p.CategoryWeight[ev.Metadata.Category] += w
	}
	if ev.Metadata.Brand != "" {
		p.BrandWeight[ev.Metadata.Brand] += w
	}
	if ev.Metadata.Price != nil {
		p.PriceRange.Extend(*ev.Metadata.Price)
	}
}

// Clone 返回画像的深拷贝，供读取访问器安全返回。
func (p *PreferenceProfile) Clone() *PreferenceProfile {
	out := NewPreferenceProfile(p.UserID)
	out.PriceRange = p.PriceRange
	for k, v := range p.CategoryWeight {
		out.CategoryWeight[k] = v
	}
	for k, v := range p.BrandWeight {
		out.BrandWeight[k] = v
	}
	return out
}
