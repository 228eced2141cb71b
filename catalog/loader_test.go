package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/rushteam/hybrec/core"
	"github.com/rushteam/hybrec/feature"
)

type failingLoader struct{}

func (l *failingLoader) Load(ctx context.Context) ([]core.FeatureRecord, error) {
	return nil, errors.New("upstream unavailable")
}

func TestRefresh(t *testing.T) {
	loader := &StaticLoader{Records: []core.FeatureRecord{
		{ItemID: "p1", Name: "Earbuds", Category: "electronics"},
		{ItemID: "", Name: "no id, skipped"},
		{ItemID: "p2", Name: "Shoes", Category: "sports"},
	}}

	fs := feature.NewStore()
	n, err := Refresh(context.Background(), loader, fs, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("refreshed = %d, want 2", n)
	}
	if fs.Len() != 2 {
		t.Errorf("store size = %d, want 2", fs.Len())
	}
	if rec, ok := fs.Get("p1"); !ok || rec.Category != "electronics" {
		t.Errorf("p1 = %+v", rec)
	}
}

func TestRefreshLoaderError(t *testing.T) {
	fs := feature.NewStore()
	if _, err := Refresh(context.Background(), &failingLoader{}, fs, zerolog.Nop()); err == nil {
		t.Error("expected loader error to propagate")
	}
	if fs.Len() != 0 {
		t.Errorf("store size = %d, want 0", fs.Len())
	}
}

func TestRefreshUpsertOverwrites(t *testing.T) {
	fs := feature.NewStore()
	fs.Upsert(core.FeatureRecord{ItemID: "p1", Name: "old name"})

	loader := &StaticLoader{Records: []core.FeatureRecord{
		{ItemID: "p1", Name: "new name"},
	}}
	if _, err := Refresh(context.Background(), loader, fs, zerolog.Nop()); err != nil {
		t.Fatal(err)
	}
	if rec, _ := fs.Get("p1"); rec.Name != "new name" {
		t.Errorf("name = %q, want overwrite", rec.Name)
	}
}
