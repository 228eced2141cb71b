package behavior

import (
	"reflect"
	"testing"
	"time"

	"github.com/rushteam/hybrec/core"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func price(p float64) *float64 { return &p }

func TestRecordBuildsProfile(t *testing.T) {
	s := NewStore(nil)

	s.Record("u1", core.ActionPurchase, "p1", core.EventMetadata{Category: "electronics", Price: price(100), Brand: "acme"})
	s.Record("u1", core.ActionView, "p2", core.EventMetadata{Category: "electronics", Price: price(120), Brand: "acme"})

	p := s.Profile("u1")
	if p == nil {
		t.Fatal("expected profile for u1")
	}
	// purchase=5 + view=1
	if got := p.CategoryWeight["electronics"]; got != 6 {
		t.Errorf("category weight = %v, want 6", got)
	}
	if got := p.BrandWeight["acme"]; got != 6 {
		t.Errorf("brand weight = %v, want 6", got)
	}
	if p.PriceRange.Min != 100 || p.PriceRange.Max != 120 {
		t.Errorf("price range = [%v, %v], want [100, 120]", p.PriceRange.Min, p.PriceRange.Max)
	}
}

func TestProfileIgnoresMissingMetadata(t *testing.T) {
	s := NewStore(nil)
	s.Record("u1", core.ActionView, "p1", core.EventMetadata{})

	p := s.Profile("u1")
	if p == nil {
		t.Fatal("expected profile for u1")
	}
	if len(p.CategoryWeight) != 0 || len(p.BrandWeight) != 0 {
		t.Errorf("empty metadata must not add weights: %+v", p)
	}
	if !p.PriceRange.Empty() {
		t.Errorf("price range must stay empty, got [%v, %v]", p.PriceRange.Min, p.PriceRange.Max)
	}
}

func TestProfileReturnsCopy(t *testing.T) {
	s := NewStore(nil)
	s.Record("u1", core.ActionView, "p1", core.EventMetadata{Category: "books"})

	p := s.Profile("u1")
	p.CategoryWeight["books"] = 999

	if got := s.Profile("u1").CategoryWeight["books"]; got != 1 {
		t.Errorf("mutating the returned profile leaked into the store: %v", got)
	}
}

func TestProfileUnknownUser(t *testing.T) {
	s := NewStore(nil)
	if p := s.Profile("nobody"); p != nil {
		t.Errorf("expected nil profile, got %+v", p)
	}
}

func TestBuildMatrixDeterministic(t *testing.T) {
	s := NewStore(nil)
	// 乱序写入，矩阵的行列必须按 ID 字典序
	s.Record("u2", core.ActionView, "p3", core.EventMetadata{})
	s.Record("u1", core.ActionPurchase, "p2", core.EventMetadata{})
	s.Record("u1", core.ActionView, "p2", core.EventMetadata{})
	s.Record("u2", core.ActionCart, "p1", core.EventMetadata{})

	m := s.BuildMatrix()
	if !reflect.DeepEqual(m.Users, []string{"u1", "u2"}) {
		t.Errorf("users = %v", m.Users)
	}
	if !reflect.DeepEqual(m.Items, []string{"p1", "p2", "p3"}) {
		t.Errorf("items = %v", m.Items)
	}

	// u1×p2 = purchase(5)+view(1)，u2×p1 = cart(3)，u2×p3 = view(1)
	want := []float64{0, 6, 0, 3, 0, 1}
	if !reflect.DeepEqual(m.Data, want) {
		t.Errorf("data = %v, want %v", m.Data, want)
	}

	again := s.BuildMatrix()
	if !reflect.DeepEqual(m, again) {
		t.Error("BuildMatrix is not deterministic")
	}
}

func TestBuildMatrixEmpty(t *testing.T) {
	s := NewStore(nil)
	m := s.BuildMatrix()
	if !m.IsEmpty() {
		t.Errorf("expected empty matrix, got %dx%d", m.Rows(), m.Cols())
	}
}

func TestCountAfter(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	s := NewStore(clock)

	s.Record("u1", core.ActionView, "p1", core.EventMetadata{})
	cutoff := clock.now

	clock.now = clock.now.Add(time.Minute)
	s.Record("u1", core.ActionView, "p2", core.EventMetadata{})
	s.Record("u2", core.ActionView, "p1", core.EventMetadata{})

	// cutoff 时刻的事件不算新增，严格在其之后的才算
	if got := s.CountAfter(cutoff); got != 2 {
		t.Errorf("CountAfter = %d, want 2", got)
	}
	if got := s.CountAfter(clock.now); got != 0 {
		t.Errorf("CountAfter(now) = %d, want 0", got)
	}
}

func TestRestoreEventsRebuildsProfiles(t *testing.T) {
	src := NewStore(nil)
	src.Record("u1", core.ActionPurchase, "p1", core.EventMetadata{Category: "electronics", Price: price(50), Brand: "acme"})
	src.Record("u1", core.ActionView, "p2", core.EventMetadata{Category: "sports"})

	dst := NewStore(nil)
	dst.RestoreEvents(src.Events())

	if dst.EventCount() != 2 {
		t.Fatalf("event count = %d, want 2", dst.EventCount())
	}
	want := src.Profile("u1")
	got := dst.Profile("u1")
	if !reflect.DeepEqual(want, got) {
		t.Errorf("restored profile = %+v, want %+v", got, want)
	}
}

func TestInteractedItems(t *testing.T) {
	s := NewStore(nil)
	s.Record("u1", core.ActionView, "p1", core.EventMetadata{})
	s.Record("u1", core.ActionPurchase, "p1", core.EventMetadata{})
	s.Record("u1", core.ActionView, "p2", core.EventMetadata{})

	got := s.InteractedItems("u1")
	if len(got) != 2 {
		t.Errorf("interacted = %v, want p1 and p2", got)
	}
	if _, ok := got["p1"]; !ok {
		t.Error("missing p1")
	}
}
