package engine

import (
	"context"

	"github.com/rushteam/hybrec/core"
	"github.com/rushteam/hybrec/filter"
	"github.com/rushteam/hybrec/pipeline"
	"github.com/rushteam/hybrec/recall"
	"github.com/rushteam/hybrec/rerank"
)

// 混合召回的来源权重：协同 > 偏好 > 内容。
const (
	collaborativeWeight = 3
	preferenceWeight    = 2
	contentWeight       = 1
)

// Recommend 为用户生成一份推荐列表，返回按混合得分降序的物品 ID。
//
// recentItems 是调用方视角的最近交互（新在后），既作为内容召回的种子，
// 也会被曝光过滤从结果里剔除。n <= 0 时取配置的默认条数。
//
// Recommend 永不失败：模型未训练、用户未知、目录为空等都只是让某些
// 召回源产出为空，最终由兜底补齐到 n 条（目录也为空时返回更少甚至零条）。
func (e *Engine) Recommend(ctx context.Context, userID string, recentItems []string, n int) []string {
	items := e.RecommendItems(ctx, userID, recentItems, n)
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	return ids
}

// RecommendItems 与 Recommend 相同，但保留得分与来源标签，便于调试归因。
func (e *Engine) RecommendItems(ctx context.Context, userID string, recentItems []string, n int) []*core.Item {
	if n <= 0 {
		n = e.cfg.Recommend.DefaultN
	}

	// 整条流水线使用同一份模型快照，重训切换不影响进行中的请求
	snap := e.models.Load()

	rctx := &core.RecommendContext{
		UserID:      userID,
		RecentItems: recentItems,
		N:           n,
	}

	nodes := []pipeline.Node{
		&recall.Fanout{
			Sources: []recall.Source{
				&recall.CollaborativeRecall{Model: snap.collaborative, Weight: collaborativeWeight, TopK: n},
				&recall.PreferenceRecall{Behaviors: e.behaviors, Features: e.features, Weight: preferenceWeight, TopK: n},
				&recall.ContentRecall{Model: snap.content, Weight: contentWeight, MaxRecent: e.cfg.Recommend.MaxRecent},
			},
			Log: e.log,
		},
		&rerank.WeightedMerge{},
		&filter.Exposed{},
	}
	if e.rules != nil {
		nodes = append(nodes, e.rules)
	}
	nodes = append(nodes,
		&rerank.TopN{N: n},
		&rerank.Backfill{Content: snap.content, Features: e.features, Behaviors: e.behaviors},
	)

	p := &pipeline.Pipeline{Nodes: nodes}
	items, err := p.Run(ctx, rctx, nil)
	if err != nil {
		e.log.Warn().Err(err).Str("user", userID).Msg("recommend pipeline degraded")
		return nil
	}
	return items
}
