package model

import (
	"sort"

	"github.com/rs/zerolog"

	"github.com/rushteam/hybrec/core"
)

// Content 是内容相似度模型：每个物品一条 TF-IDF 词项向量，
// 训练时算好全量两两余弦相似度矩阵，在线只做查表排序。
//
// Items 为存储序（item_id 字典序），Similarity 与之对齐、对称、对角为自相似。
// 未训练状态用 nil 表示。
type Content struct {
	Vectorizer *Vectorizer `json:"vectorizer"`
	Items      []string    `json:"items"`
	Similarity [][]float64 `json:"similarity"`
}

// TrainContent 在特征记录上训练内容模型。
// 没有任何特征记录时跳过训练并记一条告警，返回 nil。
func TrainContent(records []core.FeatureRecord, maxFeatures int, log zerolog.Logger) *Content {
	if len(records) == 0 {
		log.Warn().Msg("content: no feature records, training skipped")
		return nil
	}

	// 存储序固定为 item_id 字典序，与调用方传入顺序无关
	recs := append([]core.FeatureRecord(nil), records...)
	sort.Slice(recs, func(i, j int) bool { return recs[i].ItemID < recs[j].ItemID })

	items := make([]string, len(recs))
	docs := make([]string, len(recs))
	for i, rec := range recs {
		items[i] = rec.ItemID
		docs[i] = rec.Text()
	}

	v := NewVectorizer(maxFeatures)
	v.Fit(docs)

	vectors := make([][]float64, len(docs))
	for i, doc := range docs {
		vectors[i] = v.Transform(doc)
	}

	// 向量已 L2 归一化，余弦相似度即点积
	sim := make([][]float64, len(vectors))
	for i := range sim {
		sim[i] = make([]float64, len(vectors))
	}
	for i := range vectors {
		sim[i][i] = dot(vectors[i], vectors[i])
		for j := i + 1; j < len(vectors); j++ {
			s := dot(vectors[i], vectors[j])
			sim[i][j] = s
			sim[j][i] = s
		}
	}

	log.Info().
		Int("items", len(items)).
		Int("vocabulary", len(v.Vocabulary)).
		Msg("content: model trained")

	return &Content{Vectorizer: v, Items: items, Similarity: sim}
}

// Trained 报告模型是否可用。
func (c *Content) Trained() bool {
	return c != nil && len(c.Similarity) > 0
}

// Similar 返回与 itemID 最相似的 n 个物品（排除自身），
// 按相似度降序，同分按存储序升序。未训练、itemID 未知或 n <= 0 时返回空。
func (c *Content) Similar(itemID string, n int) []*core.Item {
	if !c.Trained() || n <= 0 {
		return nil
	}
	idx := sort.SearchStrings(c.Items, itemID)
	if idx >= len(c.Items) || c.Items[idx] != itemID {
		return nil
	}

	row := c.Similarity[idx]
	type scoredItem struct {
		idx   int
		score float64
	}
	cands := make([]scoredItem, 0, len(row)-1)
	for j, s := range row {
		if j == idx {
			continue
		}
		cands = append(cands, scoredItem{idx: j, score: s})
	}

	sort.SliceStable(cands, func(a, b int) bool {
		return cands[a].score > cands[b].score
	})
	if len(cands) > n {
		cands = cands[:n]
	}

	out := make([]*core.Item, 0, len(cands))
	for _, s := range cands {
		it := core.NewItem(c.Items[s.idx])
		it.Score = s.score
		out = append(out, it)
	}
	return out
}

// dot 计算两个等长向量的点积。
func dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
