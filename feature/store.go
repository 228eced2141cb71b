package feature

import (
	"sort"
	"sync"

	"github.com/rushteam/hybrec/core"
)

// Store 是特征存储：item_id 到描述性属性的映射，由外部目录协作方喂入。
//
// 写语义是 write-once-per-id 的 upsert：同一 item_id 的后续写入整体覆盖。
// 目录序（All 的返回顺序）定义为 item_id 字典序，补齐路径依赖它的确定性。
type Store struct {
	mu      sync.RWMutex
	records map[string]core.FeatureRecord
}

func NewStore() *Store {
	return &Store{records: make(map[string]core.FeatureRecord)}
}

// Upsert 写入/覆盖一条特征记录。
func (s *Store) Upsert(rec core.FeatureRecord) {
	if rec.ItemID == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.ItemID] = rec
}

// Get 按 item_id 读取。
func (s *Store) Get(itemID string) (core.FeatureRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[itemID]
	return rec, ok
}

// Len 返回目录大小。
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// All 按目录序（item_id 字典序）返回全部记录的拷贝。
func (s *Store) All() []core.FeatureRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]core.FeatureRecord, 0, len(s.records))
	for _, rec := range s.records {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ItemID < out[j].ItemID })
	return out
}

// Restore 用持久化的记录整体替换当前目录。
func (s *Store) Restore(records []core.FeatureRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = make(map[string]core.FeatureRecord, len(records))
	for _, rec := range records {
		if rec.ItemID == "" {
			continue
		}
		s.records[rec.ItemID] = rec
	}
}
