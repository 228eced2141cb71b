package filter

import (
	"context"

	"github.com/rushteam/hybrec/core"
	"github.com/rushteam/hybrec/pipeline"
)

// Exposed 是曝光过滤节点：剔除请求里声明的最近交互物品。
// 刚看过/买过的东西不应该立刻再被推荐，这条排除在截断之前执行。
type Exposed struct{}

func (n *Exposed) Name() string        { return "filter.exposed" }
func (n *Exposed) Kind() pipeline.Kind { return pipeline.KindFilter }

func (n *Exposed) Process(
	_ context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if rctx == nil || len(rctx.RecentItems) == 0 {
		return items, nil
	}

	exclude := make(map[string]struct{}, len(rctx.RecentItems))
	for _, id := range rctx.RecentItems {
		exclude[id] = struct{}{}
	}

	out := items[:0]
	for _, it := range items {
		if _, ok := exclude[it.ID]; ok {
			continue
		}
		out = append(out, it)
	}
	return out, nil
}
