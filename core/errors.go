package core

// DomainError 是领域层的统一错误类型。
//
// 设计原则：
//   - 领域层错误携带错误代码（Code）与所属模块（Module）
//   - 调用方通过 IsXXX 检查函数判断错误类别，不比较错误字符串
//   - 核心的失败路径都以降级收尾，DomainError 只用于边界上的精确判定
type DomainError struct {
	Code    string // 错误代码（如 "NOT_FOUND"）
	Message string // 错误消息
	Module  string // 模块名称（如 "store"）
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError 创建新的领域错误。
func NewDomainError(module, code, message string) *DomainError {
	return &DomainError{Module: module, Code: code, Message: message}
}

// GetDomainError 获取 DomainError，如果不是则返回 nil。
func GetDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	if domainErr, ok := err.(*DomainError); ok {
		return domainErr
	}
	return nil
}

// 错误代码常量
const (
	ErrorCodeNotFound     = "NOT_FOUND"     // 资源不存在
	ErrorCodeUnavailable  = "UNAVAILABLE"   // 服务不可用
	ErrorCodeInvalidInput = "INVALID_INPUT" // 输入无效
)

// 模块名称常量
const (
	ModuleStore   = "store"   // 持久化模块
	ModuleCatalog = "catalog" // 目录协作方
	ModuleEngine  = "engine"  // 引擎
)

// Store 错误定义
var (
	// ErrStoreNotFound 表示 key 不存在。加载时视为"尚未训练"，不是错误。
	ErrStoreNotFound = NewDomainError(ModuleStore, ErrorCodeNotFound, "store: key not found")
)

// IsStoreNotFound 检查错误是否为持久化 key 不存在。
func IsStoreNotFound(err error) bool {
	domainErr := GetDomainError(err)
	return domainErr != nil && domainErr.Module == ModuleStore && domainErr.Code == ErrorCodeNotFound
}
