// Package nav holds the navigation state machine: which view is active,
// where the cursor is, and how to get back.
package nav

import (
	"errors"
	"fmt"

	"github.com/yash-srivastava19/thicket/internal/links"
	"github.com/yash-srivastava19/thicket/internal/pages"
	"github.com/yash-srivastava19/thicket/internal/viewport"
)

var ErrNoPage = errors.New("no page open")

type Mode int

const (
	ModeList Mode = iota
	ModeContent
)

func (m Mode) String() string {
	if m == ModeContent {
		return "content"
	}
	return "list"
}

// PageSource is the page store as seen by the state machine.
type PageSource interface {
	Pages() []*pages.Page
	Discover() []*pages.Page
	FindByName(name string) (*pages.Page, bool)
	ResolvePath(from *pages.Page, target string) (*pages.Page, bool)
	CreatePage(name string) (*pages.Page, error)
	LoadContent(p *pages.Page) ([]string, error)
	WriteLines(p *pages.Page, lines []string) error
}

// State is owned by a single event loop. All mutation goes through its
// methods; the cursor always stays inside the active sequence.
type State struct {
	src PageSource

	mode    Mode
	current *pages.Page
	lines   []string
	links   []links.Link

	cursor int
	scroll int

	// nil entries stand for "was in the list view"
	history []*pages.Page
}

func New(src PageSource) *State {
	return &State{src: src, mode: ModeList}
}

func (s *State) Mode() Mode { return s.mode }
func (s *State) Pages() []*pages.Page { return s.src.Pages() }
func (s *State) Current() *pages.Page { return s.current }
func (s *State) Lines() []string { return s.lines }
func (s *State) Links() []links.Link { return s.links }
func (s *State) Cursor() int { return s.cursor }
func (s *State) Scroll() int { return s.scroll }
func (s *State) HistoryDepth() int { return len(s.history) }

// LinkAtCursor returns the first link on the cursor line.
func (s *State) LinkAtCursor() (links.Link, bool) {
	if s.mode != ModeContent {
		return links.Link{}, false
	}
	return links.At(s.links, s.cursor)
}

// Len is the length of the active sequence: pages in list mode, lines in
// content mode.
func (s *State) Len() int {
	if s.mode == ModeContent {
		return len(s.lines)
	}
	return len(s.src.Pages())
}

// Selected returns the page under the cursor in list mode.
func (s *State) Selected() (*pages.Page, bool) {
	all := s.src.Pages()
	if s.mode != ModeList || len(all) == 0 {
		return nil, false
	}
	return all[s.cursor], true
}

// Open shows p in content mode and records where we came from. A read
// failure still opens the page, with empty content, and is returned.
func (s *State) Open(p *pages.Page) error {
	s.history = append(s.history, s.current)
	return s.show(p)
}

// FollowLink opens the target of the first link on the cursor line, creating
// the page when nothing matches. It reports whether a link was followed.
func (s *State) FollowLink() (bool, error) {
	l, ok := s.LinkAtCursor()
	if !ok {
		return false, nil
	}
	target, err := s.resolve(l)
	if err != nil {
		return false, err
	}
	return true, s.Open(target)
}

func (s *State) resolve(l links.Link) (*pages.Page, error) {
	if l.Kind == links.Markdown {
		if p, ok := s.src.ResolvePath(s.current, l.Hint); ok {
			return p, nil
		}
	}
	name := l.Target
	if name == "" {
		name = l.Text
	}
	if p, ok := s.src.FindByName(name); ok {
		return p, nil
	}
	p, err := s.src.CreatePage(name)
	if err != nil {
		return nil, fmt.Errorf("nav: create %q: %w", name, err)
	}
	return p, nil
}

// Back rewinds one history step. It is a no-op on an empty history.
func (s *State) Back() error {
	if len(s.history) == 0 {
		return nil
	}
	prev := s.history[len(s.history)-1]
	s.history = s.history[:len(s.history)-1]
	if prev == nil {
		s.toList()
		return nil
	}
	return s.show(prev)
}

// QuitToList leaves content mode without touching history. From the list
// view it reports that the program should exit.
func (s *State) QuitToList() (exit bool) {
	if s.mode == ModeList {
		return true
	}
	s.toList()
	return false
}

func (s *State) MoveCursor(delta int) {
	s.cursor += delta
	s.clamp()
}

// JumpTo places the cursor at i, clamped to the active sequence.
func (s *State) JumpTo(i int) {
	s.cursor = i
	s.clamp()
}

// Visible adjusts the scroll offset for a window of height rows and returns
// the visible range [start, end) of the active sequence.
func (s *State) Visible(height int) (start, end int) {
	n := s.Len()
	s.scroll = viewport.Adjust(n, s.cursor, s.scroll, height)
	return viewport.Bounds(n, s.scroll, height)
}

// Reload re-reads the current page after an outside edit, keeping the
// cursor where it was when possible.
func (s *State) Reload() error {
	if s.current == nil {
		return nil
	}
	err := s.load(s.current)
	s.clamp()
	return err
}

// InsertAtCursor splices text into the open page at the cursor line and
// rewrites the file. On a write failure nothing changes.
func (s *State) InsertAtCursor(text []string) error {
	if s.mode != ModeContent || s.current == nil {
		return ErrNoPage
	}
	at := s.cursor
	if at > len(s.lines) {
		at = len(s.lines)
	}
	next := make([]string, 0, len(s.lines)+len(text))
	next = append(next, s.lines[:at]...)
	next = append(next, text...)
	next = append(next, s.lines[at:]...)
	if err := s.src.WriteLines(s.current, next); err != nil {
		return err
	}
	return s.Reload()
}

// Rescan rediscovers pages and re-points the current page and history at
// the fresh index entries.
func (s *State) Rescan() {
	s.src.Discover()
	s.current = s.refind(s.current)
	for i, p := range s.history {
		s.history[i] = s.refind(p)
	}
	s.clamp()
}

func (s *State) refind(p *pages.Page) *pages.Page {
	if p == nil {
		return nil
	}
	for _, q := range s.src.Pages() {
		if q.RelPath == p.RelPath {
			return q
		}
	}
	return p
}

func (s *State) show(p *pages.Page) error {
	s.current = p
	s.mode = ModeContent
	s.cursor, s.scroll = 0, 0
	return s.load(p)
}

func (s *State) load(p *pages.Page) error {
	lines, err := s.src.LoadContent(p)
	if lines == nil {
		lines = []string{}
	}
	s.lines = lines
	s.links = links.Parse(lines)
	return err
}

func (s *State) toList() {
	s.mode = ModeList
	s.current = nil
	s.lines = nil
	s.links = nil
	s.cursor, s.scroll = 0, 0
}

func (s *State) clamp() {
	n := s.Len()
	if n == 0 || s.cursor < 0 {
		s.cursor = 0
		return
	}
	if s.cursor > n-1 {
		s.cursor = n - 1
	}
}
