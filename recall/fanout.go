package recall

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/rushteam/hybrec/core"
	"github.com/rushteam/hybrec/pipeline"
)

// Fanout 是一个 Recall Node：并发执行多个召回源，并按源的声明顺序拼接结果。
//
// 每个源的结果写进自己的槽位，等待全部完成后按槽位顺序串联，
// 并发执行但输出顺序与串行执行完全一致，下游合并的"首次出现序"因此可复现。
// 单个源失败只记日志并按空候选降级，不中断其他源。
type Fanout struct {
	Sources []Source
	Timeout time.Duration // 每个召回源的超时时间，0 表示不限制
	Log     zerolog.Logger
}

func (n *Fanout) Name() string        { return "recall.fanout" }
func (n *Fanout) Kind() pipeline.Kind { return pipeline.KindRecall }

func (n *Fanout) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	if len(n.Sources) == 0 {
		return nil, nil
	}

	slots := make([][]*core.Item, len(n.Sources))
	eg, egCtx := errgroup.WithContext(ctx)

	for i, src := range n.Sources {
		slot, s := i, src
		eg.Go(func() error {
			recallCtx := egCtx
			if n.Timeout > 0 {
				var cancel context.CancelFunc
				recallCtx, cancel = context.WithTimeout(egCtx, n.Timeout)
				defer cancel()
			}

			items, err := s.Recall(recallCtx, rctx)
			if err != nil {
				n.Log.Warn().Err(err).Str("source", s.Name()).Msg("recall source failed, degraded to empty")
				return nil
			}
			slots[slot] = items
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	var all []*core.Item
	for _, items := range slots {
		all = append(all, items...)
	}
	return all, nil
}
