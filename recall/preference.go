package recall

import (
	"context"
	"sort"

	"github.com/rushteam/hybrec/behavior"
	"github.com/rushteam/hybrec/core"
	"github.com/rushteam/hybrec/feature"
	"github.com/rushteam/hybrec/pkg/utils"
)

// 偏好打分系数：类目权重 0.4，品牌权重 0.3，价格落在观察区间内加固定 2 分。
const (
	categoryFactor = 0.4
	brandFactor    = 0.3
	priceBonus     = 2.0
)

// PreferenceRecall 是基于偏好画像的召回源。
//
// 对每条用户尚未交互过的特征记录打分：
//
//	score = 0.4·category_weight + 0.3·brand_weight + 2（价格在观察区间内时）
//
// 只有 score > 0 且未交互过的物品才入选，按分数降序、同分按目录序排列。
// 用户没有画像时产出为空。
type PreferenceRecall struct {
	Behaviors *behavior.Store
	Features  *feature.Store

	// Weight 来源权重（混合合并时累加），默认 2
	Weight float64

	// TopK 返回前 K 个，<= 0 时用请求的 N
	TopK int
}

func (r *PreferenceRecall) Name() string {
	return "recall.preference"
}

func (r *PreferenceRecall) Recall(
	ctx context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	if r.Behaviors == nil || r.Features == nil || rctx == nil || rctx.UserID == "" {
		return nil, nil
	}

	profile := r.Behaviors.Profile(rctx.UserID)
	if profile == nil {
		return nil, nil
	}
	interacted := r.Behaviors.InteractedItems(rctx.UserID)

	type scoredItem struct {
		itemID string
		score  float64
	}
	// Features.All 返回目录序，切片序即同分平手规则
	cands := make([]scoredItem, 0)
	for _, rec := range r.Features.All() {
		if _, ok := interacted[rec.ItemID]; ok {
			continue
		}
		score := categoryFactor*profile.CategoryWeight[rec.Category] +
			brandFactor*profile.BrandWeight[rec.Brand]
		if profile.PriceRange.Contains(rec.Price) {
			score += priceBonus
		}
		if score > 0 {
			cands = append(cands, scoredItem{itemID: rec.ItemID, score: score})
		}
	}

	sort.SliceStable(cands, func(i, j int) bool {
		return cands[i].score > cands[j].score
	})

	topK := r.TopK
	if topK <= 0 {
		topK = rctx.N
	}
	if topK > 0 && len(cands) > topK {
		cands = cands[:topK]
	}

	weight := r.Weight
	if weight <= 0 {
		weight = 2
	}

	out := make([]*core.Item, 0, len(cands))
	for _, s := range cands {
		it := core.NewItem(s.itemID)
		it.Score = weight
		it.PutLabel("recall_source", utils.Label{Value: "preference", Source: "recall"})
		out = append(out, it)
	}
	return out, nil
}
