package model

import (
	"sort"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/mat"

	"github.com/rushteam/hybrec/core"
)

// DefaultComponents 是协同模型潜在因子数的默认上限。
const DefaultComponents = 50

// Collaborative 是交互矩阵的低秩分解模型（截断 SVD）。
//
// 核心思想：把 用户×物品 交互矩阵分解到 k 维潜在空间，
// 用重构的亲和度给该用户从未交互过的物品打分。
//
// 工程特征：
//   - 离线训练、在线查表投影，请求路径只有向量点积
//   - 训练成功后整体替换，结构不可变，读取无需加锁
//   - 未训练状态用 nil 表示，所有消费方先判 Trained
type Collaborative struct {
	// K 实际使用的潜在因子数，min(配置上限, min(矩阵维度)-1)
	K int `json:"k"`

	// Users / Items 训练时的索引映射（字典序，重建可复现）
	Users []string `json:"users"`
	Items []string `json:"items"`

	// Components 是右奇异向量的转置（K × |Items|），第 j 行为第 j 个潜在因子
	Components [][]float64 `json:"components"`

	// Matrix 是训练时的交互矩阵（|Users| × |Items|），
	// 用于把用户行投影进潜在空间，同时屏蔽已交互的物品
	Matrix [][]float64 `json:"matrix"`
}

// TrainCollaborative 在交互矩阵上拟合一个秩 k 的分解。
//
// 任一维度为零、或 k 无法达到 1（如只有一个用户或一个物品）时跳过训练并
// 记一条告警，返回 nil：未训练是可表示状态，不是错误。
func TrainCollaborative(m *core.InteractionMatrix, maxComponents int, log zerolog.Logger) *Collaborative {
	if m == nil || m.IsEmpty() {
		log.Warn().Msg("collaborative: empty interaction matrix, training skipped")
		return nil
	}

	if maxComponents <= 0 {
		maxComponents = DefaultComponents
	}
	minDim := m.Rows()
	if m.Cols() < minDim {
		minDim = m.Cols()
	}
	k := maxComponents
	if k > minDim-1 {
		k = minDim - 1
	}
	if k < 1 {
		log.Warn().
			Int("users", m.Rows()).
			Int("items", m.Cols()).
			Msg("collaborative: matrix too small for factorization, training skipped")
		return nil
	}

	data := make([]float64, len(m.Data))
	copy(data, m.Data)
	dense := mat.NewDense(m.Rows(), m.Cols(), data)

	var svd mat.SVD
	if !svd.Factorize(dense, mat.SVDThin) {
		log.Warn().Msg("collaborative: svd factorization did not converge, training skipped")
		return nil
	}

	// 奇异值降序排列，取前 k 个右奇异向量即截断分解
	var v mat.Dense
	svd.VTo(&v)

	components := make([][]float64, k)
	for j := 0; j < k; j++ {
		row := make([]float64, m.Cols())
		for i := 0; i < m.Cols(); i++ {
			row[i] = v.At(i, j)
		}
		components[j] = row
	}

	rows := make([][]float64, m.Rows())
	for u := 0; u < m.Rows(); u++ {
		rows[u] = append([]float64(nil), m.Row(u)...)
	}

	log.Info().
		Int("users", m.Rows()).
		Int("items", m.Cols()).
		Int("components", k).
		Msg("collaborative: model trained")

	return &Collaborative{
		K:          k,
		Users:      append([]string(nil), m.Users...),
		Items:      append([]string(nil), m.Items...),
		Components: components,
		Matrix:     rows,
	}
}

// Trained 报告模型是否可用。
func (c *Collaborative) Trained() bool {
	return c != nil && len(c.Components) > 0
}

// Score 为用户生成协同候选：把用户的训练行投影进潜在空间，
// 重构对每个物品的预测亲和度，只保留观测交互为零的物品（候选必须未见过），
// 按预测分降序排列，同分按物品索引升序（稳定、可复现的平手规则）。
//
// 模型未训练或用户不在上次训练的索引里时返回空（新用户没有协同候选，不是错误）。
// topK <= 0 表示不截断。
func (c *Collaborative) Score(userID string, topK int) []*core.Item {
	if !c.Trained() {
		return nil
	}
	row := sort.SearchStrings(c.Users, userID)
	if row >= len(c.Users) || c.Users[row] != userID {
		return nil
	}

	u := c.Matrix[row]

	// 投影：latent = u · V_k
	latent := make([]float64, c.K)
	for j, comp := range c.Components {
		var s float64
		for i, w := range u {
			if w != 0 {
				s += w * comp[i]
			}
		}
		latent[j] = s
	}

	// 重构：score_i = latent · V_k[:, i]，只评估未见过的物品
	type scoredItem struct {
		idx   int
		score float64
	}
	cands := make([]scoredItem, 0, len(c.Items))
	for i := range c.Items {
		if u[i] != 0 {
			continue
		}
		var s float64
		for j := 0; j < c.K; j++ {
			s += latent[j] * c.Components[j][i]
		}
		cands = append(cands, scoredItem{idx: i, score: s})
	}

	sort.SliceStable(cands, func(a, b int) bool {
		return cands[a].score > cands[b].score
	})
	if topK > 0 && len(cands) > topK {
		cands = cands[:topK]
	}

	out := make([]*core.Item, 0, len(cands))
	for _, s := range cands {
		it := core.NewItem(c.Items[s.idx])
		it.Score = s.score
		out = append(out, it)
	}
	return out
}
