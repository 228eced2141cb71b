package filter

import (
	"context"
	"reflect"
	"testing"

	"github.com/rushteam/hybrec/core"
	"github.com/rushteam/hybrec/pkg/utils"
)

func item(id string, score float64, source string) *core.Item {
	it := core.NewItem(id)
	it.Score = score
	if source != "" {
		it.PutLabel("recall_source", utils.Label{Value: source, Source: source})
	}
	return it
}

func ids(items []*core.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestExposedRemovesRecentItems(t *testing.T) {
	n := &Exposed{}
	rctx := &core.RecommendContext{RecentItems: []string{"p1", "p3"}}

	got, err := n.Process(context.Background(), rctx, []*core.Item{
		item("p1", 3, ""), item("p2", 2, ""), item("p3", 1, ""),
	})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(ids(got), []string{"p2"}) {
		t.Errorf("ids = %v, want [p2]", ids(got))
	}
}

func TestExposedNoRecent(t *testing.T) {
	n := &Exposed{}
	in := []*core.Item{item("p1", 1, "")}
	got, err := n.Process(context.Background(), &core.RecommendContext{}, in)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Errorf("items must pass through, got %v", ids(got))
	}
}

func TestRuleExcludesMatches(t *testing.T) {
	r, err := NewRule([]string{`item.score < 2.0`})
	if err != nil {
		t.Fatal(err)
	}

	got, err := r.Process(context.Background(), nil, []*core.Item{
		item("p1", 3, ""), item("p2", 1, ""),
	})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(ids(got), []string{"p1"}) {
		t.Errorf("ids = %v, want [p1]", ids(got))
	}
}

func TestRuleOnLabels(t *testing.T) {
	r, err := NewRule([]string{`label["recall_source"] == "content"`})
	if err != nil {
		t.Fatal(err)
	}

	got, err := r.Process(context.Background(), nil, []*core.Item{
		item("p1", 3, "collaborative"),
		item("p2", 1, "content"),
	})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(ids(got), []string{"p1"}) {
		t.Errorf("ids = %v, want [p1]", ids(got))
	}
}

func TestRuleMissingLabelDoesNotExclude(t *testing.T) {
	r, err := NewRule([]string{`label["missing_key"] == "x"`})
	if err != nil {
		t.Fatal(err)
	}

	// 求值失败按未命中处理，候选放行
	got, err := r.Process(context.Background(), nil, []*core.Item{item("p1", 1, "")})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Errorf("item excluded by failing rule: %v", ids(got))
	}
}

func TestNewRuleCompileError(t *testing.T) {
	if _, err := NewRule([]string{`item.score <`}); err == nil {
		t.Error("expected compile error for malformed expression")
	}
}
