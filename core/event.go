package core

import "time"

// 行为动作常量。未知动作不会被拒绝，仅按默认权重 1 计入。
const (
	ActionView     = "view"
	ActionCart     = "cart"
	ActionPurchase = "purchase"
	ActionLike     = "like"
	ActionShare    = "share"
)

// ActionWeight 返回动作的固定权重：view=1, cart=3, purchase=5, like=2, share=2。
// 未识别的动作按 1 处理（上游负责拒绝非法动作，核心只做降级）。
func ActionWeight(action string) float64 {
	switch action {
	case ActionView:
		return 1
	case ActionCart:
		return 3
	case ActionPurchase:
		return 5
	case ActionLike:
		return 2
	case ActionShare:
		return 2
	default:
		return 1
	}
}

// EventMetadata 是行为事件携带的可选上下文。
// 缺失的字段按"该字段不参与对应更新"处理，不会使事件被拒绝。
type EventMetadata struct {
	Category  string   `json:"category,omitempty"`
	Price     *float64 `json:"price,omitempty"`
	Brand     string   `json:"brand,omitempty"`
	TimeSpent *float64 `json:"time_spent,omitempty"`
}

// BehaviorEvent 是一次用户-物品交互。
//
// 生命周期：由 Record 创建后不可变、不可删除；同一用户的事件保持插入顺序
// （用于界定"最近交互"）。
type BehaviorEvent struct {
	UserID    string        `json:"user_id"`
	Action    string        `json:"action"`
	ItemID    string        `json:"item_id"`
	Metadata  EventMetadata `json:"metadata"`
	Timestamp time.Time     `json:"timestamp"`
}
