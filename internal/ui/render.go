package ui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/yash-srivastava19/thicket/internal/links"
	"github.com/yash-srivastava19/thicket/internal/nav"
	"github.com/yash-srivastava19/thicket/internal/pages"
	"github.com/yash-srivastava19/thicket/internal/theme"
	"github.com/yash-srivastava19/thicket/internal/viewport"
)

// ChatEntry is one question and its answer in the chat transcript.
type ChatEntry struct {
	Question string
	Answer   string
	Err      string
	Insert   bool
}

// screen is everything one frame shows, captured from the App.
type screen struct {
	mode         nav.Mode
	root         string
	pages        []*pages.Page
	current      *pages.Page
	lines        []string
	links        []links.Link
	cursor       int
	start, end   int
	historyDepth int

	portrait string
	chat     []ChatEntry
	busy     bool
	spinner  string

	status    string
	statusErr bool
	prompt    string
	legend    []key.Binding

	menuOpen   bool
	menu       []string
	menuCursor int
}

// Renderer draws full frames. It holds the active theme; nothing else
// changes how a frame looks.
type Renderer struct {
	theme theme.Theme
	now   func() time.Time
	help  help.Model

	md      *glamour.TermRenderer
	mdWidth int
}

func NewRenderer(t theme.Theme, now func() time.Time) *Renderer {
	if now == nil {
		now = time.Now
	}
	r := &Renderer{now: now, help: help.New()}
	r.SetTheme(t)
	return r
}

func (r *Renderer) Theme() theme.Theme {
	return r.theme
}

func (r *Renderer) SetTheme(t theme.Theme) {
	r.theme = t
	r.help.Styles.ShortKey = t.Label
	r.help.Styles.ShortDesc = t.Hint
	r.help.Styles.ShortSeparator = t.Divider
	r.help.Styles.Ellipsis = t.Hint
	r.md = nil
}

func (r *Renderer) render(l layout, s screen) string {
	c := newCanvas(l.width, l.height)
	c.draw(0, 0, r.hud(l.width, s))
	if s.mode == nav.ModeContent {
		c.draw(l.headerTop, 0, r.contentPane(l, s))
	} else {
		c.draw(l.headerTop, 0, r.listPane(l, s))
	}
	if l.overlay {
		c.draw(l.panelRow, l.panelCol, r.panel(l, s))
	}
	if s.menuOpen {
		box := r.menuBox(l.height, s)
		row := max((l.height-lipgloss.Height(box))/2, 0)
		col := max((l.width-lipgloss.Width(box))/2, 0)
		c.draw(row, col, box)
	}
	c.draw(l.statusRow, 0, r.statusLine(l.width, s))
	return c.String()
}

// ── HUD ───────────────────────────────────────────────────────────────────────

func (r *Renderer) hud(width int, s screen) string {
	parts := []string{r.now().Format("15:04"), "theme " + r.theme.Name}
	if s.mode == nav.ModeContent && s.current != nil {
		parts = append(parts,
			s.current.Name,
			fmt.Sprintf("line %d/%d", min(s.cursor+1, len(s.lines)), len(s.lines)),
		)
	} else {
		parts = append(parts, fmt.Sprintf("%d pages", len(s.pages)))
	}
	if s.historyDepth > 0 {
		parts = append(parts, fmt.Sprintf("depth %d", s.historyDepth))
	}
	text := ansi.Truncate(strings.Join(parts, "  ·  "), width, "…")
	return r.theme.HUD.Width(width).Align(lipgloss.Center).Render(text)
}

// ── Primary pane ──────────────────────────────────────────────────────────────

func (r *Renderer) listPane(l layout, s screen) string {
	t := r.theme
	w := l.mainWidth
	var b strings.Builder

	b.WriteString(fit(t.Title.Render("thicket")+t.Divider.Render("  —  ")+t.Subtitle.Render(s.root), w) + "\n")
	b.WriteString(fit(t.Subtitle.Render(fmt.Sprintf("%d pages", len(s.pages))), w) + "\n")
	b.WriteString(t.Divider.Render(strings.Repeat("─", w)))

	if len(s.pages) == 0 {
		b.WriteString("\n" + t.Subtitle.Render(fit("  no pages yet. type :new <name> to create one", w)))
		return b.String()
	}
	for i := s.start; i < s.end; i++ {
		p := s.pages[i]
		b.WriteString("\n")
		title := truncate(p.Name, w-4)
		if i == s.cursor {
			b.WriteString(fit("  "+t.ItemActive.Render("▸ "+title)+dimPath(t, p, title, w), w))
		} else {
			b.WriteString(fit("    "+t.Item.Render(title)+dimPath(t, p, title, w), w))
		}
	}
	return b.String()
}

// dimPath shows where a nested page lives.
func dimPath(t theme.Theme, p *pages.Page, title string, w int) string {
	if !strings.Contains(p.RelPath, "/") {
		return ""
	}
	if ansi.StringWidth(title)+len(p.RelPath)+8 > w {
		return ""
	}
	return "  " + t.DimItem.Render(p.RelPath)
}

func (r *Renderer) contentPane(l layout, s screen) string {
	t := r.theme
	w := l.mainWidth
	var b strings.Builder

	name := ""
	if s.current != nil {
		name = s.current.Name
	}
	b.WriteString(fit("  "+t.Title.Render(truncate(name, w-4))+"  "+t.DimItem.Render(relPath(s.current)), w) + "\n")
	b.WriteString(t.Divider.Render(strings.Repeat("─", w)))

	if len(s.lines) == 0 {
		b.WriteString("\n" + t.Subtitle.Render(fit("  (empty page)", w)))
		return b.String()
	}

	byLine := map[int][]links.Link{}
	for _, lk := range s.links {
		if lk.Line >= s.start && lk.Line < s.end {
			byLine[lk.Line] = append(byLine[lk.Line], lk)
		}
	}
	for i := s.start; i < s.end; i++ {
		b.WriteString("\n")
		line := s.lines[i]
		if i == s.cursor {
			plain := ansi.Truncate(expandTabs(line), w, "…")
			if pad := w - ansi.StringWidth(plain); pad > 0 {
				plain += strings.Repeat(" ", pad)
			}
			b.WriteString(t.CursorLine.Render(plain))
			continue
		}
		b.WriteString(fit(highlightLinks(t, line, byLine[i]), w))
	}
	return b.String()
}

func relPath(p *pages.Page) string {
	if p == nil {
		return ""
	}
	return p.RelPath
}

// highlightLinks styles the link spans of one raw line.
func highlightLinks(t theme.Theme, line string, ls []links.Link) string {
	if len(ls) == 0 {
		return t.Item.Render(expandTabs(line))
	}
	spans := append([]links.Link(nil), ls...)
	sort.Slice(spans, func(i, j int) bool { return spans[i].Start < spans[j].Start })

	var b strings.Builder
	pos := 0
	for _, lk := range spans {
		if lk.Start < pos || lk.End > len(line) {
			continue
		}
		if lk.Start > pos {
			b.WriteString(t.Item.Render(expandTabs(line[pos:lk.Start])))
		}
		b.WriteString(t.Link.Render(line[lk.Start:lk.End]))
		pos = lk.End
	}
	if pos < len(line) {
		b.WriteString(t.Item.Render(expandTabs(line[pos:])))
	}
	return b.String()
}

// ── Overlay panel ─────────────────────────────────────────────────────────────

func (r *Renderer) panel(l layout, s screen) string {
	innerW, innerH := l.panelW-2, l.panelH-2
	if innerW < 1 || innerH < 1 {
		return ""
	}

	var lines []string
	if l.side {
		lines = append(lines, strings.Split(s.portrait, "\n")...)
		lines = append(lines, "", r.theme.Label.Render("chat"))
		room := innerH - len(lines)
		lines = append(lines, tail(r.transcript(s, innerW), room)...)
	} else {
		face := lipgloss.NewStyle().PaddingRight(2).Render(s.portrait)
		chatW := max(innerW-lipgloss.Width(face), 1)
		chat := strings.Join(tail(r.transcript(s, chatW), innerH), "\n")
		lines = strings.Split(lipgloss.JoinHorizontal(lipgloss.Top, face, chat), "\n")
	}

	if len(lines) > innerH {
		lines = lines[:innerH]
	}
	for i, ln := range lines {
		lines[i] = ansi.Truncate(ln, innerW, "")
	}
	return r.theme.Panel.Width(innerW).Height(innerH).Render(strings.Join(lines, "\n"))
}

func (r *Renderer) transcript(s screen, width int) []string {
	t := r.theme
	var lines []string
	if len(s.chat) == 0 && !s.busy {
		return []string{t.Hint.Render("press a to ask")}
	}
	for _, e := range s.chat {
		q := t.Label.Render("you: ") + t.Item.Render(e.Question)
		if e.Insert {
			q += t.DimItem.Render(" [insert]")
		}
		lines = append(lines, q)
		if e.Answer != "" {
			lines = append(lines, strings.Split(r.markdown(e.Answer, width), "\n")...)
		}
		if e.Err != "" {
			lines = append(lines, t.Error.Render("error: "+e.Err))
		}
		lines = append(lines, "")
	}
	if s.busy {
		lines = append(lines, s.spinner+t.Hint.Render(" thinking..."))
	}
	return lines
}

func (r *Renderer) markdown(text string, width int) string {
	if r.md == nil || r.mdWidth != width {
		md, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(glamourStyle(r.theme.Name)),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return text
		}
		r.md, r.mdWidth = md, width
	}
	out, err := r.md.Render(text)
	if err != nil {
		return text
	}
	return strings.Trim(out, "\n")
}

func glamourStyle(themeName string) string {
	switch themeName {
	case "dracula":
		return "dracula"
	case "mono":
		return "notty"
	default:
		return "dark"
	}
}

// ── Theme menu ────────────────────────────────────────────────────────────────

// menuBox renders the theme picker, scrolled so the cursor stays on screen
// when the terminal is shorter than the menu.
func (r *Renderer) menuBox(height int, s screen) string {
	t := r.theme
	lines := []string{t.Title.Render("theme"), ""}
	// border and title take four rows
	names, off := viewport.VisibleSlice(s.menu, s.menuCursor, 0, max(height-4, 1))
	for i, name := range names {
		if off+i == s.menuCursor {
			lines = append(lines, t.ItemActive.Render("▸ "+name))
		} else {
			lines = append(lines, "  "+t.Item.Render(name))
		}
	}
	return t.Panel.Padding(0, 2).Render(strings.Join(lines, "\n"))
}

// ── Status line ───────────────────────────────────────────────────────────────

func (r *Renderer) statusLine(width int, s screen) string {
	switch {
	case s.prompt != "":
		return ansi.Truncate(s.prompt, width, "")
	case s.status != "":
		sty := r.theme.Success
		if s.statusErr {
			sty = r.theme.Error
		}
		return sty.Render(ansi.Truncate("  "+s.status, width, "…"))
	}
	r.help.Width = width - 2
	return ansi.Truncate("  "+r.help.ShortHelpView(s.legend), width, "")
}

// ── helpers ───────────────────────────────────────────────────────────────────

// fit clips a styled line to w cells.
func fit(s string, w int) string {
	return ansi.Truncate(s, w, "")
}

func tail(lines []string, n int) []string {
	if n <= 0 {
		return nil
	}
	if len(lines) > n {
		return lines[len(lines)-n:]
	}
	return lines
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}
