package behavior

import (
	"sort"
	"sync"
	"time"

	"github.com/rushteam/hybrec/core"
)

// Store 是行为与偏好存储：追加式的行为日志，加上每个事件同步派生的偏好画像。
//
// 并发约束：
//   - Record 可被多个请求协程并发调用，内部用单把锁串行化日志与画像写入，
//     丢失更新按正确性缺陷处理
//   - 读取访问器只持读锁，返回拷贝，调用方无需再同步
//
// 事件一旦记录即不可变、不可删除；同一用户的事件保持插入顺序。
type Store struct {
	mu       sync.RWMutex
	clock    core.Clock
	events   []core.BehaviorEvent
	byUser   map[string][]int // 用户 -> events 下标，保持插入顺序
	profiles map[string]*core.PreferenceProfile
}

// NewStore 创建行为存储。clock 为 nil 时使用系统时钟。
func NewStore(clock core.Clock) *Store {
	if clock == nil {
		clock = core.SystemClock{}
	}
	return &Store{
		clock:    clock,
		byUser:   make(map[string][]int),
		profiles: make(map[string]*core.PreferenceProfile),
	}
}

// Record 追加一个行为事件并同步折叠进该用户的偏好画像。
// 任何动作字符串都会被接受（未识别的动作权重按 1 计），
// metadata 缺失的字段只是跳过对应更新；这里不存在业务性拒绝。
func (s *Store) Record(userID, action, itemID string, md core.EventMetadata) core.BehaviorEvent {
	ev := core.BehaviorEvent{
		UserID:    userID,
		Action:    action,
		ItemID:    itemID,
		Metadata:  md,
		Timestamp: s.clock.Now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.append(ev)
	return ev
}

// append 在持锁状态下追加事件并更新画像。
func (s *Store) append(ev core.BehaviorEvent) {
	s.events = append(s.events, ev)
	s.byUser[ev.UserID] = append(s.byUser[ev.UserID], len(s.events)-1)

	p, ok := s.profiles[ev.UserID]
	if !ok {
		p = core.NewPreferenceProfile(ev.UserID)
		s.profiles[ev.UserID] = p
	}
	p.Apply(ev)
}

// EventCount 返回全部事件数。
func (s *Store) EventCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}

// UserCount 返回出现过行为的用户数。
func (s *Store) UserCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byUser)
}

// CountAfter 统计时间戳严格晚于 t 的事件数（重训调度依据）。
func (s *Store) CountAfter(t time.Time) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, ev := range s.events {
		if ev.Timestamp.After(t) {
			n++
		}
	}
	return n
}

// Events 返回事件日志的拷贝（持久化用）。
func (s *Store) Events() []core.BehaviorEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]core.BehaviorEvent, len(s.events))
	copy(out, s.events)
	return out
}

// Profile 返回用户画像的深拷贝；用户不存在时返回 nil（不是错误）。
func (s *Store) Profile(userID string) *core.PreferenceProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[userID]
	if !ok {
		return nil
	}
	return p.Clone()
}

// Profiles 返回全部画像的深拷贝（持久化用）。
func (s *Store) Profiles() map[string]*core.PreferenceProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]*core.PreferenceProfile, len(s.profiles))
	for id, p := range s.profiles {
		out[id] = p.Clone()
	}
	return out
}

// InteractedItems 返回用户交互过的物品集合。
func (s *Store) InteractedItems(userID string) map[string]struct{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idxs := s.byUser[userID]
	out := make(map[string]struct{}, len(idxs))
	for _, i := range idxs {
		out[s.events[i].ItemID] = struct{}{}
	}
	return out
}

// BuildMatrix 从完整行为日志重建 用户×物品 交互矩阵。
//
// 确定性：收集去重后的用户集与物品集，各自按字典序排序后分配零基索引，
// 单元格值为该 (user,item) 对上所有事件动作权重之和。
// 相同日志两次构建产出完全一致的索引与矩阵。
// 空日志返回 0×0 矩阵（合法状态，交由模型层降级处理）。
//
// 复杂度 O(事件数) + O(用户数×物品数) 内存；只在重训时重建，不在请求路径上。
func (s *Store) BuildMatrix() *core.InteractionMatrix {
	s.mu.RLock()
	defer s.mu.RUnlock()

	userSet := make(map[string]struct{})
	itemSet := make(map[string]struct{})
	for _, ev := range s.events {
		userSet[ev.UserID] = struct{}{}
		itemSet[ev.ItemID] = struct{}{}
	}

	users := make([]string, 0, len(userSet))
	for u := range userSet {
		users = append(users, u)
	}
	sort.Strings(users)

	items := make([]string, 0, len(itemSet))
	for it := range itemSet {
		items = append(items, it)
	}
	sort.Strings(items)

	m := core.NewInteractionMatrix(users, items)
	for _, ev := range s.events {
		u, _ := m.UserIndex(ev.UserID)
		i, _ := m.ItemIndex(ev.ItemID)
		m.Add(u, i, core.ActionWeight(ev.Action))
	}
	return m
}

// RestoreEvents 用持久化的事件日志整体替换当前日志，并从头重放出画像。
// 画像工件缺失时，重放结果就是正确画像；随后 RestoreProfiles 可再覆盖。
func (s *Store) RestoreEvents(events []core.BehaviorEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events = s.events[:0]
	s.byUser = make(map[string][]int)
	s.profiles = make(map[string]*core.PreferenceProfile)
	for _, ev := range events {
		s.append(ev)
	}
}

// RestoreProfiles 用持久化的画像覆盖派生画像。
func (s *Store) RestoreProfiles(profiles map[string]*core.PreferenceProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.profiles = make(map[string]*core.PreferenceProfile, len(profiles))
	for id, p := range profiles {
		s.profiles[id] = p.Clone()
	}
}
