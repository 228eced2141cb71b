package rerank

import (
	"context"
	"sort"

	"github.com/rushteam/hybrec/core"
	"github.com/rushteam/hybrec/pipeline"
)

// WeightedMerge 是混合合并节点：把多来源候选按物品 ID 归并，来源权重相加。
//
// 一个物品出现在多个来源（或被内容召回的多个种子命中）时累加全部权重，
// 这就是混合信号。排序按累计权重降序，同分保持合并时的首次出现顺序
// （上游 Fanout 已保证该顺序可复现）。Labels 按默认规则合并，保留全部来源。
type WeightedMerge struct{}

func (n *WeightedMerge) Name() string        { return "rerank.weighted_merge" }
func (n *WeightedMerge) Kind() pipeline.Kind { return pipeline.KindReRank }

func (n *WeightedMerge) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	merged := make(map[string]*core.Item, len(items))
	order := make([]*core.Item, 0, len(items))

	for _, it := range items {
		if it == nil {
			continue
		}
		if old, ok := merged[it.ID]; ok {
			old.Score += it.Score
			for k, v := range it.Labels {
				old.PutLabel(k, v)
			}
			continue
		}
		merged[it.ID] = it
		order = append(order, it)
	}

	sort.SliceStable(order, func(i, j int) bool {
		return order[i].Score > order[j].Score
	})
	return order, nil
}
