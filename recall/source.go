package recall

import (
	"context"

	"github.com/rushteam/hybrec/core"
)

// Source 表示一个可复用的召回源（协同/偏好/内容）。
// 每个 Source 产出带来源权重的候选，混合信号由下游 WeightedMerge 累加得到。
// 未训练、用户未知等情况一律返回空候选，从不报业务错误。
type Source interface {
	Name() string
	Recall(ctx context.Context, rctx *core.RecommendContext) ([]*core.Item, error)
}
