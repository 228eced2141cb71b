package model

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

// DefaultMaxFeatures 是内容向量化的默认词表上限。
const DefaultMaxFeatures = 1000

// stopWords 是向量化时剔除的高频英文虚词。
var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {},
	"by": {}, "for": {}, "from": {}, "has": {}, "have": {}, "in": {}, "is": {},
	"it": {}, "its": {}, "of": {}, "on": {}, "or": {}, "that": {}, "the": {},
	"this": {}, "to": {}, "was": {}, "were": {}, "will": {}, "with": {},
}

// Vectorizer 把物品文本转成加权词项向量（TF-IDF）。
//
// 词项为小写字母/数字串的 1-gram 与 2-gram（停用词剔除后拼接），
// 词表超过 MaxFeatures 时按语料总词频取前 N，平手按字典序；
// 索引按词项字典序分配，保证训练可复现。
type Vectorizer struct {
	MaxFeatures int            `json:"max_features"`
	Vocabulary  map[string]int `json:"vocabulary"`
	IDF         []float64      `json:"idf"`
}

func NewVectorizer(maxFeatures int) *Vectorizer {
	if maxFeatures <= 0 {
		maxFeatures = DefaultMaxFeatures
	}
	return &Vectorizer{MaxFeatures: maxFeatures}
}

// Fitted 报告词表是否已建立。
func (v *Vectorizer) Fitted() bool {
	return v != nil && len(v.Vocabulary) > 0
}

// Fit 在语料上建立词表与 IDF 权重。
func (v *Vectorizer) Fit(docs []string) {
	total := make(map[string]int) // 语料总词频，用于 MaxFeatures 筛选
	df := make(map[string]int)    // 文档频率，用于 IDF

	for _, doc := range docs {
		terms := extractTerms(doc)
		seen := make(map[string]struct{}, len(terms))
		for _, t := range terms {
			total[t]++
			if _, ok := seen[t]; !ok {
				seen[t] = struct{}{}
				df[t]++
			}
		}
	}

	terms := make([]string, 0, len(total))
	for t := range total {
		terms = append(terms, t)
	}
	if len(terms) > v.MaxFeatures {
		sort.Slice(terms, func(i, j int) bool {
			if total[terms[i]] != total[terms[j]] {
				return total[terms[i]] > total[terms[j]]
			}
			return terms[i] < terms[j]
		})
		terms = terms[:v.MaxFeatures]
	}
	sort.Strings(terms)

	v.Vocabulary = make(map[string]int, len(terms))
	v.IDF = make([]float64, len(terms))
	n := float64(len(docs))
	for i, t := range terms {
		v.Vocabulary[t] = i
		// 平滑 IDF：ln((1+n)/(1+df)) + 1，词表内每个词权重恒为正
		v.IDF[i] = math.Log((1+n)/(1+float64(df[t]))) + 1
	}
}

// Transform 把单个文档转成 L2 归一化的 TF-IDF 向量。
// 归一化后两个向量的余弦相似度退化为点积。
func (v *Vectorizer) Transform(doc string) []float64 {
	vec := make([]float64, len(v.IDF))
	if !v.Fitted() {
		return vec
	}

	for _, t := range extractTerms(doc) {
		if i, ok := v.Vocabulary[t]; ok {
			vec[i] += v.IDF[i]
		}
	}

	var norm float64
	for _, x := range vec {
		norm += x * x
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec
}

// extractTerms 分词并产出 1-gram + 2-gram 词项。
func extractTerms(doc string) []string {
	tokens := tokenize(doc)
	terms := make([]string, 0, len(tokens)*2)
	terms = append(terms, tokens...)
	for i := 0; i+1 < len(tokens); i++ {
		terms = append(terms, tokens[i]+" "+tokens[i+1])
	}
	return terms
}

// tokenize 切出小写的字母/数字串并剔除停用词。
func tokenize(doc string) []string {
	doc = strings.ToLower(doc)
	tokens := strings.FieldsFunc(doc, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	out := tokens[:0]
	for _, t := range tokens {
		if _, ok := stopWords[t]; ok {
			continue
		}
		out = append(out, t)
	}
	return out
}
