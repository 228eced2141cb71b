package engine

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/rushteam/hybrec/behavior"
	"github.com/rushteam/hybrec/config"
	"github.com/rushteam/hybrec/core"
	"github.com/rushteam/hybrec/feature"
	"github.com/rushteam/hybrec/filter"
	"github.com/rushteam/hybrec/model"
	"github.com/rushteam/hybrec/store"
)

// Version 是持久化工件的模型版本号。
const Version = "1.0.0"

// snapshot 是一次训练产出的不可变模型对，整体原子切换。
// 并发的 Recommend 要么看到换入前的快照，要么看到换入后的，
// 绝不会看到"新向量器配旧相似矩阵"这种半更新状态。
type snapshot struct {
	collaborative *model.Collaborative
	content       *model.Content
}

// Engine 是推荐引擎：单个共享实例被多个请求协程并发访问。
//
// 状态划分与并发约束：
//   - 行为/画像与特征目录各自持锁，Record/Upsert 可并发调用
//   - 训练好的模型放在原子快照里，请求路径读取无锁
//   - Retrain 在旁路计算新模型，只在最后切换指针，
//     训练期间不持有任何请求路径的锁
//   - 引擎自身不做后台调度，Retrain/Save/Load 全部由外层显式触发
//
// 时钟与持久化后端均可注入（测试与部署形态解耦）。
type Engine struct {
	cfg   *config.Config
	log   zerolog.Logger
	clock core.Clock
	store core.Store

	behaviors *behavior.Store
	features  *feature.Store

	models atomic.Pointer[snapshot]

	metaMu sync.Mutex
	meta   core.ModelMetadata

	// trainMu 串行化重训；不保护请求路径
	trainMu sync.Mutex

	rules *filter.Rule
}

// Option 定制引擎的环境依赖。
type Option func(*Engine)

// WithLogger 注入日志器（默认静默）。
func WithLogger(log zerolog.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// WithClock 注入时钟（默认系统时间）。
func WithClock(clock core.Clock) Option {
	return func(e *Engine) { e.clock = clock }
}

// WithStore 注入持久化后端，优先于配置里的 backend 选择。
func WithStore(s core.Store) Option {
	return func(e *Engine) { e.store = s }
}

// New 按配置组装引擎。cfg 为 nil 时使用默认配置。
// 规则表达式编译失败、持久化后端初始化失败会在这里直接暴露。
func New(cfg *config.Config, opts ...Option) (*Engine, error) {
	if cfg == nil {
		cfg = config.Default()
	} else {
		cfg.Normalize()
	}

	e := &Engine{
		cfg:   cfg,
		log:   zerolog.Nop(),
		clock: core.SystemClock{},
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.store == nil {
		s, err := buildStore(cfg.Store)
		if err != nil {
			return nil, err
		}
		e.store = s
	}

	if len(cfg.Rules) > 0 {
		r, err := filter.NewRule(cfg.Rules)
		if err != nil {
			return nil, err
		}
		e.rules = r
	}

	e.behaviors = behavior.NewStore(e.clock)
	e.features = feature.NewStore()
	e.models.Store(&snapshot{})
	e.meta.ModelVersion = Version
	return e, nil
}

func buildStore(cfg config.StoreConfig) (core.Store, error) {
	switch cfg.Backend {
	case "memory":
		return store.NewMemoryStore(), nil
	case "file":
		return store.NewFileStore(cfg.Path)
	case "redis":
		return store.NewRedisStore(cfg.Redis.Addr, cfg.Redis.DB)
	default:
		return nil, fmt.Errorf("engine: unknown store backend %q", cfg.Backend)
	}
}

// Record 记录一次用户行为并同步更新偏好画像。
// 任意动作字符串都会被接受（未识别动作按权重 1），这里不存在业务性拒绝；
// 非法动作由请求层在进入核心之前挡掉。
func (e *Engine) Record(userID, action, itemID string, md core.EventMetadata) {
	ev := e.behaviors.Record(userID, action, itemID, md)
	e.log.Debug().
		Str("user", ev.UserID).
		Str("action", ev.Action).
		Str("item", ev.ItemID).
		Msg("behavior recorded")
}

// Upsert 是目录协作方的写入口：写入/覆盖一条物品特征记录。
func (e *Engine) Upsert(rec core.FeatureRecord) {
	e.features.Upsert(rec)
}

// Profile 返回用户偏好画像的拷贝；用户未知时返回 nil。
func (e *Engine) Profile(userID string) *core.PreferenceProfile {
	return e.behaviors.Profile(userID)
}

// Close 释放持久化后端资源。
func (e *Engine) Close() error {
	return e.store.Close()
}
