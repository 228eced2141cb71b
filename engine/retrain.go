package engine

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/rushteam/hybrec/model"
)

// ShouldRetrain 判断是否需要重训：从未训练过，或上次训练之后新增的
// 事件数达到了配置阈值。轻量操作，可以放在写路径上每次调用。
func (e *Engine) ShouldRetrain() bool {
	e.metaMu.Lock()
	last := e.meta.LastTraining
	e.metaMu.Unlock()

	if last.IsZero() {
		return true
	}
	return e.behaviors.CountAfter(last) >= e.cfg.Model.MinRetrainEvents
}

// Retrain 用当前的行为日志与特征目录重训两个子模型，然后原子切换快照
// 并持久化全部状态。
//
// 训练在旁路进行，期间 Recommend 继续使用旧快照。两个子模型并行训练；
// 某个子模型因数据不足无法产出时保留其旧版本，另一个照常更新。
// 训练时间戳无条件推进，数据不足时不会在每次写入后反复触发重训。
// 并发调用被 trainMu 串行化。
func (e *Engine) Retrain(ctx context.Context) {
	e.trainMu.Lock()
	defer e.trainMu.Unlock()

	matrix := e.behaviors.BuildMatrix()
	records := e.features.All()

	old := e.models.Load()
	next := &snapshot{
		collaborative: old.collaborative,
		content:       old.content,
	}

	var eg errgroup.Group
	eg.Go(func() error {
		if c := model.TrainCollaborative(matrix, e.cfg.Model.Components, e.log); c != nil {
			next.collaborative = c
		}
		return nil
	})
	eg.Go(func() error {
		if c := model.TrainContent(records, e.cfg.Model.MaxFeatures, e.log); c != nil {
			next.content = c
		}
		return nil
	})
	_ = eg.Wait()

	userIdx, itemIdx := matrix.IndexMaps()
	e.metaMu.Lock()
	e.meta.ModelVersion = Version
	e.meta.LastTraining = e.clock.Now()
	e.meta.UserIndex = userIdx
	e.meta.ItemIndex = itemIdx
	e.metaMu.Unlock()

	e.models.Store(next)

	e.log.Info().
		Int("users", matrix.Rows()).
		Int("items", matrix.Cols()).
		Int("catalog", len(records)).
		Bool("collaborative", next.collaborative.Trained()).
		Bool("content", next.content.Trained()).
		Msg("retrain complete")

	if err := e.Save(ctx); err != nil {
		// 内存状态已经切换完成，落盘失败只影响重启恢复
		e.log.Error().Err(err).Msg("persist after retrain failed")
	}
}
