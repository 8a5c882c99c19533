package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/commalg/dgares/internal/equations"
	"github.com/commalg/dgares/internal/resolution"
)

func testSystem(t *testing.T, n int) *equations.System {
	t.Helper()
	c, err := resolution.New(n)
	if err != nil {
		t.Fatalf("New(%d): %v", n, err)
	}
	return equations.BuildLeibniz(c, equations.Options{Workers: 1})
}

func TestCreateRunRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := Open(t.TempDir())
	sys := testSystem(t, 3)

	m, err := s.CreateRun(ctx, sys, 4, "first sweep")
	if err != nil {
		t.Fatalf("CreateRun: %v", err)
	}
	if m.Kind != equations.KindLeibniz || m.Vertices != 3 || m.Status != StatusBuilt {
		t.Errorf("meta = %+v", m)
	}
	if m.Equations != sys.Len() || m.Variables != len(sys.Vars()) {
		t.Errorf("counts = %d/%d, want %d/%d", m.Equations, m.Variables, sys.Len(), len(sys.Vars()))
	}
	if len(m.ID) != 36 {
		t.Errorf("ID = %q, want a UUID", m.ID)
	}

	for _, name := range []string{MetaFile, SystemFile} {
		if _, err := os.Stat(filepath.Join(s.RunDir(m.ID), name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}

	got, err := s.System(m.ID)
	if err != nil {
		t.Fatalf("System: %v", err)
	}
	if got.Len() != sys.Len() || got.Kind != sys.Kind {
		t.Errorf("loaded system %d/%q, want %d/%q", got.Len(), got.Kind, sys.Len(), sys.Kind)
	}

	meta, err := s.Meta(m.ID)
	if err != nil {
		t.Fatalf("Meta: %v", err)
	}
	if meta.ID != m.ID || meta.Notes != "first sweep" {
		t.Errorf("meta = %+v", meta)
	}
}

func TestSaveReduction(t *testing.T) {
	ctx := context.Background()
	s := Open(t.TempDir())
	sys := testSystem(t, 3)

	m, err := s.CreateRun(ctx, sys, 0, "")
	if err != nil {
		t.Fatalf("CreateRun: %v", err)
	}

	if _, err := s.Reduction(m.ID); !errors.Is(err, ErrNoReduction) {
		t.Errorf("Reduction before save err = %v, want ErrNoReduction", err)
	}

	red := equations.Reduce(sys)
	updated, err := s.SaveReduction(ctx, m.ID, red)
	if err != nil {
		t.Fatalf("SaveReduction: %v", err)
	}
	wantStatus := StatusReduced
	if red.Contradiction {
		wantStatus = StatusContradiction
	}
	if updated.Status != wantStatus || updated.Rank != red.Rank {
		t.Errorf("meta after reduce = %+v", updated)
	}

	got, err := s.Reduction(m.ID)
	if err != nil {
		t.Fatalf("Reduction: %v", err)
	}
	if got.Rank != red.Rank || got.Contradiction != red.Contradiction {
		t.Errorf("loaded reduction rank=%d contradiction=%v", got.Rank, got.Contradiction)
	}

	list, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 || list[0].Status != wantStatus || list[0].Rank != red.Rank {
		t.Errorf("list = %+v", list)
	}
}

func TestResolvePrefix(t *testing.T) {
	ctx := context.Background()
	s := Open(t.TempDir())
	sys := testSystem(t, 3)

	m, err := s.CreateRun(ctx, sys, 0, "")
	if err != nil {
		t.Fatalf("CreateRun: %v", err)
	}

	got, err := s.Resolve(ctx, m.ID[:8])
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != m.ID {
		t.Errorf("Resolve = %q, want %q", got, m.ID)
	}

	if _, err := s.Resolve(ctx, "zzzz"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("Resolve(zzzz) err = %v, want ErrRunNotFound", err)
	}

	// An empty prefix matches everything: unique while there is one run,
	// ambiguous once there are two.
	if got, err := s.Resolve(ctx, ""); err != nil || got != m.ID {
		t.Errorf("Resolve(\"\") = %q, %v; want the only run", got, err)
	}
	if _, err := s.CreateRun(ctx, sys, 0, ""); err != nil {
		t.Fatalf("CreateRun: %v", err)
	}
	if _, err := s.Resolve(ctx, ""); !errors.Is(err, ErrAmbiguousRun) {
		t.Errorf("Resolve(\"\") err = %v, want ErrAmbiguousRun", err)
	}
}

func TestListOrder(t *testing.T) {
	ctx := context.Background()
	s := Open(t.TempDir())
	sys := testSystem(t, 3)

	first, err := s.CreateRun(ctx, sys, 0, "")
	if err != nil {
		t.Fatalf("CreateRun: %v", err)
	}
	second, err := s.CreateRun(ctx, sys, 0, "")
	if err != nil {
		t.Fatalf("CreateRun: %v", err)
	}

	list, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("List returned %d runs", len(list))
	}
	if list[0].CreatedAt.Before(list[1].CreatedAt) {
		t.Errorf("list not newest-first: %v then %v", list[0].CreatedAt, list[1].CreatedAt)
	}
	ids := map[string]bool{list[0].ID: true, list[1].ID: true}
	if !ids[first.ID] || !ids[second.ID] {
		t.Errorf("list ids = %v", ids)
	}
}

func TestMetaNotFound(t *testing.T) {
	s := Open(t.TempDir())
	if _, err := s.Meta("00000000-0000-0000-0000-000000000000"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("Meta err = %v, want ErrRunNotFound", err)
	}
	if _, err := s.System("00000000-0000-0000-0000-000000000000"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("System err = %v, want ErrRunNotFound", err)
	}
}

func TestShortID(t *testing.T) {
	if got := ShortID("0a1b2c3d-1111-2222-3333-444455556666"); got != "0a1b2c3d" {
		t.Errorf("ShortID = %q", got)
	}
	if got := ShortID("abc"); got != "abc" {
		t.Errorf("ShortID short input = %q", got)
	}
}
