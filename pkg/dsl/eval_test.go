package dsl

import (
	"testing"

	"github.com/rushteam/hybrec/core"
	"github.com/rushteam/hybrec/pkg/utils"
)

func TestCompileAndEval(t *testing.T) {
	it := core.NewItem("p1")
	it.Score = 4.5
	it.PutLabel("recall_source", utils.Label{Value: "collaborative|content", Source: "recall"})

	tests := []struct {
		name string
		expr string
		want bool
	}{
		{name: "match on id", expr: `item.id == "p1"`, want: true},
		{name: "match on score", expr: `item.score > 4.0`, want: true},
		{name: "no match on score", expr: `item.score > 5.0`, want: false},
		{name: "label contains", expr: `label["recall_source"].contains("content")`, want: true},
		{name: "missing label evaluates false", expr: `label["nope"] == "x"`, want: false},
		{name: "non-bool result evaluates false", expr: `item.score`, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prg, err := Compile(tt.expr)
			if err != nil {
				t.Fatalf("compile: %v", err)
			}
			if got := EvalBool(prg, it); got != tt.want {
				t.Errorf("EvalBool(%q) = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}
}

func TestCompileError(t *testing.T) {
	if _, err := Compile(`item.score >`); err == nil {
		t.Error("expected compile error")
	}
}

func TestEvalBoolNilSafe(t *testing.T) {
	prg, err := Compile(`item.id == "x"`)
	if err != nil {
		t.Fatal(err)
	}
	if EvalBool(nil, core.NewItem("x")) {
		t.Error("nil program must evaluate false")
	}
	if EvalBool(prg, nil) {
		t.Error("nil item must evaluate false")
	}
}
