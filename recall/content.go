package recall

import (
	"context"

	"github.com/rushteam/hybrec/core"
	"github.com/rushteam/hybrec/model"
	"github.com/rushteam/hybrec/pkg/utils"
)

// ContentRecall 是基于内容相似度的召回源（"看了这个，还可能看什么"）。
//
// 以请求携带的最近交互为种子：取最后 MaxRecent 个，对每个种子查
// Content.Similar(item, N/2)。同一物品被多个种子召回时会产出多条候选，
// 合并阶段按物品累加来源权重，这正是混合信号的一部分。
// 模型未训练或没有最近交互时产出为空。
type ContentRecall struct {
	Model *model.Content

	// Weight 来源权重（每条候选、混合合并时累加），默认 1
	Weight float64

	// MaxRecent 取最近交互的最后几个作为种子，默认 3
	MaxRecent int
}

func (r *ContentRecall) Name() string {
	return "recall.content"
}

func (r *ContentRecall) Recall(
	ctx context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	if rctx == nil || !r.Model.Trained() || len(rctx.RecentItems) == 0 {
		return nil, nil
	}

	maxRecent := r.MaxRecent
	if maxRecent <= 0 {
		maxRecent = 3
	}
	seeds := rctx.RecentItems
	if len(seeds) > maxRecent {
		seeds = seeds[len(seeds)-maxRecent:]
	}

	weight := r.Weight
	if weight <= 0 {
		weight = 1
	}
	perSeed := rctx.N / 2

	var out []*core.Item
	for _, seed := range seeds {
		for _, it := range r.Model.Similar(seed, perSeed) {
			it.Score = weight
			it.PutLabel("recall_source", utils.Label{Value: "content", Source: "recall"})
			out = append(out, it)
		}
	}
	return out, nil
}
