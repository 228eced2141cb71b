package filter

import (
	"context"

	"github.com/google/cel-go/cel"

	"github.com/rushteam/hybrec/core"
	"github.com/rushteam/hybrec/pipeline"
	"github.com/rushteam/hybrec/pkg/dsl"
)

// Rule 是规则过滤节点：用 CEL 表达式描述的排除规则逐条检查候选，
// 任意一条规则命中即剔除该候选。
//
// 规则在构造时编译一次，求值失败按未命中处理（只会多放行，不会让请求失败）。
// 典型用法：运营侧在配置里排除某个召回来源或压低权重异常的候选，
// 例如 `label.recall_source == "content" && item.score < 1.0`。
type Rule struct {
	exprs    []string
	programs []cel.Program
}

// NewRule 编译一组排除规则。任何一条编译失败都返回错误：
// 规则写错应该在启动时暴露，而不是在线上悄悄放行。
func NewRule(exprs []string) (*Rule, error) {
	r := &Rule{exprs: exprs}
	for _, expr := range exprs {
		prg, err := dsl.Compile(expr)
		if err != nil {
			return nil, err
		}
		r.programs = append(r.programs, prg)
	}
	return r, nil
}

func (n *Rule) Name() string        { return "filter.rule" }
func (n *Rule) Kind() pipeline.Kind { return pipeline.KindFilter }

func (n *Rule) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(n.programs) == 0 {
		return items, nil
	}

	out := items[:0]
	for _, it := range items {
		excluded := false
		for _, prg := range n.programs {
			if dsl.EvalBool(prg, it) {
				excluded = true
				break
			}
		}
		if !excluded {
			out = append(out, it)
		}
	}
	return out, nil
}
