// Package catalog 负责把外部物品目录同步进引擎的特征存储。
//
// 引擎自身不关心目录从哪来：Loader 抽象目录来源（静态清单、特征平台、
// 数据库导出），Refresh 把一次加载的结果逐条写入特征存储。
package catalog

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/rushteam/hybrec/core"
)

// Loader 是目录来源的抽象：一次 Load 返回当前的全量物品特征。
type Loader interface {
	Load(ctx context.Context) ([]core.FeatureRecord, error)
}

// Upserter 是目录的写入端，engine.Engine 实现了它。
type Upserter interface {
	Upsert(rec core.FeatureRecord)
}

// StaticLoader 直接返回内置清单，用于测试与演示。
type StaticLoader struct {
	Records []core.FeatureRecord
}

func (l *StaticLoader) Load(ctx context.Context) ([]core.FeatureRecord, error) {
	return l.Records, nil
}

// Refresh 执行一次目录同步：从 loader 拉取全量记录写入 dst，
// 返回写入条数。物品 ID 为空的记录跳过。
func Refresh(ctx context.Context, loader Loader, dst Upserter, log zerolog.Logger) (int, error) {
	records, err := loader.Load(ctx)
	if err != nil {
		return 0, err
	}

	n := 0
	for _, rec := range records {
		if rec.ItemID == "" {
			continue
		}
		dst.Upsert(rec)
		n++
	}
	log.Info().Int("records", n).Msg("catalog refreshed")
	return n, nil
}

var _ Loader = (*StaticLoader)(nil)
