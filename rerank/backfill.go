package rerank

import (
	"context"

	"github.com/rushteam/hybrec/behavior"
	"github.com/rushteam/hybrec/core"
	"github.com/rushteam/hybrec/feature"
	"github.com/rushteam/hybrec/model"
	"github.com/rushteam/hybrec/pipeline"
	"github.com/rushteam/hybrec/pkg/utils"
)

// Backfill 是补齐节点，保证 recommend 永不失败：结构化来源凑不满 N 个时，
// 先用最近交互（从新到旧）做内容相似扩展，再按目录序补任意未用过的物品。
//
// 目录序补齐是确定性的（item_id 字典序）：随机取样式的兜底不可复现，
// 也破坏相同状态下两次请求结果一致的性质，这里不提供。
// 补齐永远跳过用户已交互过的物品与请求里的最近交互。
// 目录本身比 N 小或为空时返回更少的结果，这是文档化的合法结束。
type Backfill struct {
	Content   *model.Content
	Features  *feature.Store
	Behaviors *behavior.Store
}

func (n *Backfill) Name() string        { return "rerank.backfill" }
func (n *Backfill) Kind() pipeline.Kind { return pipeline.KindPostProcess }

func (n *Backfill) Process(
	_ context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if rctx == nil || rctx.N <= 0 || len(items) >= rctx.N {
		return items, nil
	}

	used := make(map[string]struct{}, len(items)+len(rctx.RecentItems))
	for _, it := range items {
		used[it.ID] = struct{}{}
	}
	for _, id := range rctx.RecentItems {
		used[id] = struct{}{}
	}

	var interacted map[string]struct{}
	if n.Behaviors != nil && rctx.UserID != "" {
		interacted = n.Behaviors.InteractedItems(rctx.UserID)
	}
	skip := func(id string) bool {
		if _, ok := used[id]; ok {
			return true
		}
		_, ok := interacted[id]
		return ok
	}

	// 先沿最近交互从新到旧扩展内容相似候选
	if n.Content.Trained() {
		for i := len(rctx.RecentItems) - 1; i >= 0 && len(items) < rctx.N; i-- {
			for _, sim := range n.Content.Similar(rctx.RecentItems[i], rctx.N) {
				if len(items) >= rctx.N {
					break
				}
				if skip(sim.ID) {
					continue
				}
				it := core.NewItem(sim.ID)
				it.PutLabel("recall_source", utils.Label{Value: "backfill_content", Source: "rerank"})
				items = append(items, it)
				used[it.ID] = struct{}{}
			}
		}
	}

	// 再按目录序补任意未用过的物品
	if n.Features != nil {
		for _, rec := range n.Features.All() {
			if len(items) >= rctx.N {
				break
			}
			if skip(rec.ItemID) {
				continue
			}
			it := core.NewItem(rec.ItemID)
			it.PutLabel("recall_source", utils.Label{Value: "backfill_catalog", Source: "rerank"})
			items = append(items, it)
			used[it.ID] = struct{}{}
		}
	}

	return items, nil
}
