package docstore

import (
	"sync"
	"testing"
)

func TestStoreStartsEmpty(t *testing.T) {
	s := New()
	if s.Ready() {
		t.Error("expected new store to not be ready")
	}
	if s.Len() != 0 {
		t.Errorf("expected 0 chunks, got %d", s.Len())
	}
	if got := s.Snapshot(); len(got) != 0 {
		t.Errorf("expected empty snapshot, got %d chunks", len(got))
	}
}

func TestReplaceSupersedesPriorChunks(t *testing.T) {
	s := New()
	s.Replace([]Chunk{{Source: "a.pdf", Index: 0, Text: "first upload"}})
	s.Replace([]Chunk{
		{Source: "b.pdf", Index: 0, Text: "second upload"},
		{Source: "b.pdf", Index: 1, Text: "second upload continued"},
	})

	snap := s.Snapshot()
	if len(snap) != 2 {
		t.Fatalf("expected 2 chunks after replace, got %d", len(snap))
	}
	for _, c := range snap {
		if c.Source != "b.pdf" {
			t.Errorf("chunk from superseded upload survived: %+v", c)
		}
	}
}

func TestClearEmptiesStore(t *testing.T) {
	s := New()
	s.Replace([]Chunk{{Index: 0, Text: "content"}})
	s.Clear()
	if s.Ready() {
		t.Error("expected store to not be ready after clear")
	}
	if s.Len() != 0 {
		t.Errorf("expected 0 chunks after clear, got %d", s.Len())
	}
}

func TestGenerationBumpsOnWrite(t *testing.T) {
	s := New()
	g0 := s.Generation()
	s.Replace([]Chunk{{Index: 0, Text: "content"}})
	g1 := s.Generation()
	if g1 <= g0 {
		t.Errorf("expected generation bump on replace: %d -> %d", g0, g1)
	}
	s.Clear()
	if g2 := s.Generation(); g2 <= g1 {
		t.Errorf("expected generation bump on clear: %d -> %d", g1, g2)
	}
}

func TestSnapshotIsIsolated(t *testing.T) {
	s := New()
	s.Replace([]Chunk{{Index: 0, Text: "original"}})

	snap := s.Snapshot()
	snap[0].Text = "mutated"

	if got := s.Snapshot()[0].Text; got != "original" {
		t.Errorf("snapshot mutation leaked into store: %q", got)
	}
}

func TestConcurrentReadersAndWriters(t *testing.T) {
	s := New()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				s.Replace([]Chunk{{Index: 0, Text: "content"}})
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = s.Snapshot()
				_ = s.Ready()
				_ = s.Generation()
			}
		}()
	}
	wg.Wait()
}
