// Package hybrec 是一个混合推荐引擎（Hybrid Recommender）。
//
// 设计要点：
// - 三路混合：协同过滤（矩阵分解）、内容相似（TF-IDF）、偏好画像打分，按来源权重合并
// - Pipeline-first: 推荐请求通过 Node 串联（Recall → Filter → ReRank → PostProcess）
// - 永不失败：结构化来源凑不满时由确定性兜底补齐，相同状态下结果可复现
// - 显式训练：Retrain 由外层触发，模型以不可变快照原子切换，请求路径无锁
package hybrec

import (
	"github.com/rushteam/hybrec/engine"
	"github.com/rushteam/hybrec/pipeline"
)

// 轻量 facade：便于用户直接 import "hybrec" 使用核心抽象。
type Engine = engine.Engine
type Option = engine.Option
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

const (
	KindRecall      = pipeline.KindRecall
	KindFilter      = pipeline.KindFilter
	KindReRank      = pipeline.KindReRank
	KindPostProcess = pipeline.KindPostProcess
)

var (
	New        = engine.New
	WithLogger = engine.WithLogger
	WithClock  = engine.WithClock
	WithStore  = engine.WithStore
)
