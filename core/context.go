package core

// RecommendContext 承载一次推荐请求的用户与场景信息，贯穿整个 Pipeline 透传。
type RecommendContext struct {
	UserID string

	// RecentItems 是调用方给出的最近交互物品，最早在前。
	// 用于内容召回的种子，也是最终结果的排除名单。
	RecentItems []string

	// N 是期望返回的条数（调用方已 clamp 到合理范围）。
	// 结果可能少于 N：候选耗尽是合法结束，不是错误。
	N int
}
