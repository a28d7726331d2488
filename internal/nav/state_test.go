package nav

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/yash-srivastava19/thicket/internal/pages"
	"pgregory.net/rapid"
)

func newState(t *testing.T, files map[string]string) (*State, *pages.Store) {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	store := pages.NewStore(dir)
	store.Discover()
	return New(store), store
}

func mustFind(t *testing.T, store *pages.Store, name string) *pages.Page {
	t.Helper()
	p, ok := store.FindByName(name)
	if !ok {
		t.Fatalf("page %q not indexed", name)
	}
	return p
}

func TestState_initial(t *testing.T) {
	s, _ := newState(t, nil)
	if s.Mode() != ModeList || s.Cursor() != 0 || s.HistoryDepth() != 0 || s.Current() != nil {
		t.Errorf("unexpected initial state: mode=%v cursor=%d history=%d", s.Mode(), s.Cursor(), s.HistoryDepth())
	}
}

func TestState_openOpenBackBack(t *testing.T) {
	s, store := newState(t, map[string]string{
		"a.md": "# A\nline\nline\nline\n",
		"b.md": "# B\n",
	})
	a := mustFind(t, store, "a")
	b := mustFind(t, store, "b")

	if err := s.Open(a); err != nil {
		t.Fatal(err)
	}
	s.MoveCursor(2)
	if err := s.Open(b); err != nil {
		t.Fatal(err)
	}
	if err := s.Back(); err != nil {
		t.Fatal(err)
	}
	if s.Current() != a {
		t.Fatalf("after back: current = %v, want a", s.Current())
	}
	if s.Mode() != ModeContent || s.Cursor() != 0 || s.Scroll() != 0 {
		t.Errorf("after back: mode=%v cursor=%d scroll=%d", s.Mode(), s.Cursor(), s.Scroll())
	}
	if len(s.Lines()) != 4 {
		t.Errorf("content not reloaded: %q", s.Lines())
	}

	if err := s.Back(); err != nil {
		t.Fatal(err)
	}
	if s.Mode() != ModeList || s.Current() != nil {
		t.Errorf("second back should return to list, got mode=%v", s.Mode())
	}

	// empty history: no-op
	if err := s.Back(); err != nil {
		t.Fatal(err)
	}
	if s.Mode() != ModeList {
		t.Error("back on empty history changed the mode")
	}
}

func TestState_followLinkCreatesPage(t *testing.T) {
	s, store := newState(t, map[string]string{
		"start.md": "See [[Target Page]] now\nplain\n",
	})
	if err := s.Open(mustFind(t, store, "start")); err != nil {
		t.Fatal(err)
	}
	followed, err := s.FollowLink()
	if err != nil {
		t.Fatalf("FollowLink: %v", err)
	}
	if !followed {
		t.Fatal("expected a link to be followed")
	}
	if s.Current() == nil || s.Current().Name != "Target Page" {
		t.Fatalf("current: %+v", s.Current())
	}
	if len(s.Lines()) == 0 || s.Lines()[0] != "# Target Page" {
		t.Errorf("created content: %q", s.Lines())
	}
	if _, err := os.Stat(filepath.Join(store.Root(), "target_page.md")); err != nil {
		t.Errorf("page file not created: %v", err)
	}
	if s.HistoryDepth() != 2 {
		t.Errorf("history depth: got %d, want 2", s.HistoryDepth())
	}
}

func TestState_followLinkExisting(t *testing.T) {
	s, store := newState(t, map[string]string{
		"start.md":         "[[my-other page]]\n",
		"My_Other_Page.md": "# other\n",
	})
	_ = s.Open(mustFind(t, store, "start"))
	if _, err := s.FollowLink(); err != nil {
		t.Fatal(err)
	}
	if s.Current().RelPath != "My_Other_Page.md" {
		t.Errorf("resolved to %q", s.Current().RelPath)
	}
	if len(store.Pages()) != 2 {
		t.Errorf("a page was created for an existing target")
	}
}

func TestState_followMarkdownLinkByPath(t *testing.T) {
	s, store := newState(t, map[string]string{
		"docs/start.md": "[see this](other.md)\n",
		"docs/other.md": "# Other\n",
	})
	_ = s.Open(mustFind(t, store, "start"))
	if _, err := s.FollowLink(); err != nil {
		t.Fatal(err)
	}
	if s.Current().RelPath != "docs/other.md" {
		t.Errorf("resolved to %q", s.Current().RelPath)
	}
}

func TestState_followLinkNoLink(t *testing.T) {
	s, store := newState(t, map[string]string{"a.md": "nothing here\n[[x]]\n"})
	_ = s.Open(mustFind(t, store, "a"))
	followed, err := s.FollowLink()
	if err != nil || followed {
		t.Errorf("expected no-op, got followed=%v err=%v", followed, err)
	}
	if s.HistoryDepth() != 1 {
		t.Errorf("history changed: %d", s.HistoryDepth())
	}
}

func TestState_quitToListKeepsHistory(t *testing.T) {
	s, store := newState(t, map[string]string{"a.md": "", "b.md": ""})
	_ = s.Open(mustFind(t, store, "a"))
	_ = s.Open(mustFind(t, store, "b"))
	depth := s.HistoryDepth()

	if exit := s.QuitToList(); exit {
		t.Fatal("quit from content mode should not exit")
	}
	if s.Mode() != ModeList || s.Current() != nil || s.Cursor() != 0 {
		t.Errorf("expected list mode, got %v", s.Mode())
	}
	if s.HistoryDepth() != depth {
		t.Errorf("history changed: %d -> %d", depth, s.HistoryDepth())
	}
	if exit := s.QuitToList(); !exit {
		t.Error("quit from list mode should exit")
	}
	if s.HistoryDepth() != depth {
		t.Errorf("history changed on exit: %d -> %d", depth, s.HistoryDepth())
	}
}

func TestState_openMissingFileDegrades(t *testing.T) {
	s, store := newState(t, map[string]string{"a.md": "x\n"})
	a := mustFind(t, store, "a")
	if err := os.Remove(a.Path); err != nil {
		t.Fatal(err)
	}
	err := s.Open(a)
	if err == nil {
		t.Error("expected the read error to be reported")
	}
	if s.Mode() != ModeContent || len(s.Lines()) != 0 || s.Lines() == nil {
		t.Errorf("expected blank content page, got mode=%v lines=%#v", s.Mode(), s.Lines())
	}
	s.MoveCursor(3)
	if s.Cursor() != 0 {
		t.Errorf("cursor on empty page: %d", s.Cursor())
	}
}

func TestState_insertAtCursor(t *testing.T) {
	s, store := newState(t, map[string]string{"a.md": "one\ntwo\nthree\n"})
	a := mustFind(t, store, "a")
	_ = s.Open(a)
	s.MoveCursor(1)
	if err := s.InsertAtCursor([]string{"new [[Link]]"}); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(a.Path)
	if string(data) != "one\nnew [[Link]]\ntwo\nthree\n" {
		t.Errorf("file content: %q", string(data))
	}
	if _, ok := s.LinkAtCursor(); !ok {
		t.Error("links were not recomputed after insert")
	}
}

func TestState_insertInListMode(t *testing.T) {
	s, _ := newState(t, map[string]string{"a.md": ""})
	if err := s.InsertAtCursor([]string{"x"}); !errors.Is(err, ErrNoPage) {
		t.Errorf("expected ErrNoPage, got %v", err)
	}
}

func TestState_reloadClampsCursor(t *testing.T) {
	s, store := newState(t, map[string]string{"a.md": "1\n2\n3\n4\n"})
	a := mustFind(t, store, "a")
	_ = s.Open(a)
	s.MoveCursor(3)
	if err := os.WriteFile(a.Path, []byte("1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := s.Reload(); err != nil {
		t.Fatal(err)
	}
	if s.Cursor() != 0 {
		t.Errorf("cursor: got %d, want 0", s.Cursor())
	}
}

func TestState_rescanKeepsCurrent(t *testing.T) {
	s, store := newState(t, map[string]string{"a.md": "", "c.md": ""})
	_ = s.Open(mustFind(t, store, "c"))
	if err := os.WriteFile(filepath.Join(store.Root(), "b.md"), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	s.Rescan()
	if len(s.Pages()) != 3 {
		t.Errorf("pages after rescan: %d", len(s.Pages()))
	}
	if s.Current() != mustFind(t, store, "c") {
		t.Error("current page not re-pointed at the fresh index entry")
	}
}

func TestState_visibleKeepsCursorInWindow(t *testing.T) {
	files := map[string]string{}
	for _, n := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		files[n+".md"] = ""
	}
	s, _ := newState(t, files)
	s.JumpTo(7)
	start, end := s.Visible(3)
	if start != 5 || end != 8 || s.Scroll() != 5 {
		t.Errorf("visible: [%d,%d) scroll %d", start, end, s.Scroll())
	}
	s.JumpTo(0)
	start, end = s.Visible(3)
	if start != 0 || end != 3 {
		t.Errorf("visible: [%d,%d)", start, end)
	}
}

func TestState_moveCursorClamps(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		dir, err := os.MkdirTemp("", "thicket-nav-*")
		if err != nil {
			rt.Fatal(err)
		}
		defer os.RemoveAll(dir)

		n := rapid.IntRange(0, 12).Draw(rt, "pages")
		for i := 0; i < n; i++ {
			name := filepath.Join(dir, string(rune('a'+i))+".md")
			if err := os.WriteFile(name, nil, 0o644); err != nil {
				rt.Fatal(err)
			}
		}
		store := pages.NewStore(dir)
		store.Discover()
		s := New(store)

		deltas := rapid.SliceOf(rapid.IntRange(-20, 20)).Draw(rt, "deltas")
		for _, d := range deltas {
			s.MoveCursor(d)
			if n == 0 && s.Cursor() != 0 {
				rt.Fatalf("empty list: cursor %d", s.Cursor())
			}
			if n > 0 && (s.Cursor() < 0 || s.Cursor() > n-1) {
				rt.Fatalf("cursor %d outside [0,%d]", s.Cursor(), n-1)
			}
		}
	})
}
