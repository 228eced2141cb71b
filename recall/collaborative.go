package recall

import (
	"context"

	"github.com/rushteam/hybrec/core"
	"github.com/rushteam/hybrec/model"
	"github.com/rushteam/hybrec/pkg/utils"
)

// CollaborativeRecall 是基于矩阵分解的召回源。
//
// 把协同模型的预测排名转成定权重候选：排名内的每个物品携带来源权重 Weight
// （混合信号在合并阶段按物品累加）。模型未训练或用户不在上次训练的索引里时
// 产出为空：新用户没有协同候选，这不是错误。
type CollaborativeRecall struct {
	Model *model.Collaborative

	// Weight 来源权重（混合合并时累加），默认 3
	Weight float64

	// TopK 取协同排名的前 K 个，<= 0 时用请求的 N
	TopK int
}

func (r *CollaborativeRecall) Name() string {
	return "recall.collaborative"
}

func (r *CollaborativeRecall) Recall(
	ctx context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	if rctx == nil || rctx.UserID == "" || !r.Model.Trained() {
		return nil, nil
	}

	topK := r.TopK
	if topK <= 0 {
		topK = rctx.N
	}
	weight := r.Weight
	if weight <= 0 {
		weight = 3
	}

	items := r.Model.Score(rctx.UserID, topK)
	for _, it := range items {
		it.Score = weight
		it.PutLabel("recall_source", utils.Label{Value: "collaborative", Source: "recall"})
	}
	return items, nil
}
