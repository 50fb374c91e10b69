package reconcile

import (
	"context"
	"slices"
	"testing"

	"fikus/internal/manager"
)

type stubResolver struct {
	installed map[string]bool
	asked     []string
	sel       manager.Selection
}

func (s *stubResolver) States(_ context.Context, names []string, sel manager.Selection) map[string]bool {
	s.asked = append(s.asked, names...)
	s.sel = sel
	out := make(map[string]bool, len(names))
	for _, n := range names {
		out[n] = s.installed[n]
	}
	// Answers for names that were never shown are ignored by the board.
	out["stray"] = true
	return out
}

func TestBoardRefresh(t *testing.T) {
	res := &stubResolver{installed: map[string]bool{"htop": true}}
	b := NewBoard(res, func() manager.Selection { return manager.Alternate })

	b.Show("htop", "btop", "htop")
	if installed, shown := b.Installed("htop"); installed || !shown {
		t.Fatalf("before refresh: installed=%v shown=%v", installed, shown)
	}

	b.Refresh(context.Background())

	if !slices.Equal(res.asked, []string{"btop", "htop"}) {
		t.Errorf("asked = %v", res.asked)
	}
	if res.sel != manager.Alternate {
		t.Errorf("selection = %s, want alternate", res.sel)
	}
	if installed, _ := b.Installed("htop"); !installed {
		t.Error("htop should be installed after refresh")
	}
	if installed, _ := b.Installed("btop"); installed {
		t.Error("btop should not be installed")
	}
	if _, shown := b.Installed("stray"); shown {
		t.Error("refresh must not add entries")
	}
}

func TestBoardHide(t *testing.T) {
	res := &stubResolver{}
	b := NewBoard(res, func() manager.Selection { return manager.Primary })

	b.Show("vim", "git")
	b.Hide("vim")
	if !slices.Equal(b.Names(), []string{"git"}) {
		t.Errorf("names = %v", b.Names())
	}

	b.Hide("git")
	b.Refresh(context.Background())
	if len(res.asked) != 0 {
		t.Errorf("empty board should not query, asked %v", res.asked)
	}
}
