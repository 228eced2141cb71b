package core

// InteractionMatrix 是稠密的 用户×物品 交互权重矩阵，协同模型的训练输入。
//
// 行/列索引分配：用户与物品各自按字典序排序后取零基索引，
// 保证相同输入重建时索引映射与矩阵内容完全一致（可复现性）。
//
// 空行为日志对应 0×0 矩阵，这是文档化的合法状态而非错误。
type InteractionMatrix struct {
	Users []string  `json:"users"`
	Items []string  `json:"items"`
	Data  []float64 `json:"data"` // 行优先，len = |Users|*|Items|

	userIdx map[string]int
	itemIdx map[string]int
}

// NewInteractionMatrix 按已排序的用户/物品列表分配一个零矩阵。
func NewInteractionMatrix(users, items []string) *InteractionMatrix {
	return &InteractionMatrix{
		Users: users,
		Items: items,
		Data:  make([]float64, len(users)*len(items)),
	}
}

func (m *InteractionMatrix) Rows() int { return len(m.Users) }
func (m *InteractionMatrix) Cols() int { return len(m.Items) }

// IsEmpty 报告矩阵是否有任意一维为零。
func (m *InteractionMatrix) IsEmpty() bool {
	return m.Rows() == 0 || m.Cols() == 0
}

// At 读取 (userIndex, itemIndex) 处的累计权重。
func (m *InteractionMatrix) At(u, i int) float64 {
	return m.Data[u*m.Cols()+i]
}

// Add 向 (userIndex, itemIndex) 累加权重。
func (m *InteractionMatrix) Add(u, i int, w float64) {
	m.Data[u*m.Cols()+i] += w
}

// Row 返回某用户的整行（共享底层存储，调用方只读）。
func (m *InteractionMatrix) Row(u int) []float64 {
	c := m.Cols()
	return m.Data[u*c : (u+1)*c]
}

// UserIndex 返回用户的行索引。
func (m *InteractionMatrix) UserIndex(userID string) (int, bool) {
	if m.userIdx == nil {
		m.userIdx = make(map[string]int, len(m.Users))
		for i, u := range m.Users {
			m.userIdx[u] = i
		}
	}
	i, ok := m.userIdx[userID]
	return i, ok
}

// ItemIndex 返回物品的列索引。
func (m *InteractionMatrix) ItemIndex(itemID string) (int, bool) {
	if m.itemIdx == nil {
		m.itemIdx = make(map[string]int, len(m.Items))
		for i, it := range m.Items {
			m.itemIdx[it] = i
		}
	}
	i, ok := m.itemIdx[itemID]
	return i, ok
}

// IndexMaps 返回 用户→行 与 物品→列 的完整映射（写入 ModelMetadata 用）。
func (m *InteractionMatrix) IndexMaps() (map[string]int, map[string]int) {
	users := make(map[string]int, len(m.Users))
	for i, u := range m.Users {
		users[u] = i
	}
	items := make(map[string]int, len(m.Items))
	for i, it := range m.Items {
		items[it] = i
	}
	return users, items
}
