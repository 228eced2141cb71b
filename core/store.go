package core

import "context"

// Store 是持久化的领域接口。
//
// 设计原则：
//   - 定义在领域层（core），由基础设施层（store）实现
//   - 一个 key 对应一个独立工件（模型、行为日志、画像、目录、元数据），
//     使每个工件可以独立加载/校验，缺失的工件按"尚未训练"处理
//
// 实现：
//   - store.MemoryStore（测试/原型）
//   - store.FileStore（单机文件落盘，重启恢复）
//   - store.RedisStore（生产环境共享存储）
type Store interface {
	// Name 返回存储后端名称（用于日志/监控）
	Name() string

	// Get 读取单个 key 的值；key 不存在时返回 ErrStoreNotFound
	Get(ctx context.Context, key string) ([]byte, error)

	// Set 写入单个 key-value
	Set(ctx context.Context, key string, value []byte, ttl ...int) error

	// Delete 删除单个 key
	Delete(ctx context.Context, key string) error

	// BatchGet 批量读取；缺失的 key 直接不出现在结果里
	BatchGet(ctx context.Context, keys []string) (map[string][]byte, error)

	// BatchSet 批量写入（一次训练产出的全部工件一起落盘）
	BatchSet(ctx context.Context, kvs map[string][]byte, ttl ...int) error

	// Close 关闭连接/释放资源
	Close() error
}
