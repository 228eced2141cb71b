package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/rushteam/hybrec/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvOnce sync.Once
	celEnvErr  error
)

// getCELEnv 初始化并复用 CEL 环境，声明规则可见的变量。
func getCELEnv() (*cel.Env, error) {
	celEnvOnce.Do(func() {
		celEnv, celEnvErr = cel.NewEnv(
			cel.Variable("item", cel.DynType),
			cel.Variable("label", cel.DynType),
		)
	})
	return celEnv, celEnvErr
}

// Compile 把一条候选规则表达式编译为可重复执行的 CEL 程序。
//
// 表达式语法（CEL 标准语法），可见变量：
//   - item.id / item.score：候选 ID 与当前累计权重
//   - label.<key>：候选上的 Label 值（字符串）
//
// 示例：
//   - `label.recall_source.contains("content")` → 候选带有内容召回来源
//   - `item.score < 2.0` → 累计权重过低的候选
func Compile(expr string) (cel.Program, error) {
	env, err := getCELEnv()
	if err != nil {
		return nil, fmt.Errorf("dsl: init cel env: %w", err)
	}
	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("dsl: compile %q: %w", expr, issues.Err())
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("dsl: program %q: %w", expr, err)
	}
	return prg, nil
}

// EvalBool 对单个候选求值。求值失败或结果不是 bool 时返回 false，
// 规则引擎因此只会"多放行"，不会让一次请求失败。
func EvalBool(prg cel.Program, it *core.Item) bool {
	if prg == nil || it == nil {
		return false
	}

	labels := make(map[string]string, len(it.Labels))
	for k, v := range it.Labels {
		labels[k] = v.Value
	}

	out, _, err := prg.Eval(map[string]any{
		"item": map[string]any{
			"id":    it.ID,
			"score": it.Score,
		},
		"label": labels,
	})
	if err != nil {
		return false
	}
	b, ok := out.Value().(bool)
	return ok && b
}
