package rerank

import (
	"context"

	"github.com/rushteam/hybrec/core"
	"github.com/rushteam/hybrec/pipeline"
)

// TopN 是截断节点，在合并/过滤之后截取前 N 个候选。
// N <= 0 时退回请求的 rctx.N；两者都无效则不截断。
type TopN struct {
	N int
}

func (n *TopN) Name() string        { return "rerank.topn" }
func (n *TopN) Kind() pipeline.Kind { return pipeline.KindReRank }

func (n *TopN) Process(
	_ context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	limit := n.N
	if limit <= 0 && rctx != nil {
		limit = rctx.N
	}
	if limit <= 0 || len(items) <= limit {
		return items, nil
	}
	return items[:limit], nil
}
