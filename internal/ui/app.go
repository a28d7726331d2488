// Package ui is the interactive front end: key dispatch, the line-editing
// sub-states and the frame renderer.
package ui

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"github.com/yash-srivastava19/thicket/internal/ai"
	"github.com/yash-srivastava19/thicket/internal/nav"
	"github.com/yash-srivastava19/thicket/internal/pages"
	"github.com/yash-srivastava19/thicket/internal/portrait"
	"github.com/yash-srivastava19/thicket/internal/theme"
)

// subState is the input mode layered over the list/content views. Each one
// has its own dispatch method and its own exits.
type subState int

const (
	subNormal subState = iota
	subCommand
	subThemeMenu
	subChat
)

func (s subState) String() string {
	switch s {
	case subCommand:
		return "command"
	case subThemeMenu:
		return "theme-menu"
	case subChat:
		return "chat"
	default:
		return "normal"
	}
}

// insertDirective at the start of a chat line puts the answer into the page.
const insertDirective = "/insert "

// ── Messages ──────────────────────────────────────────────────────────────────

type editorClosedMsg struct {
	err error
}

type completionMsg struct {
	answer string
	insert bool
	err    error
}

// ── App struct ────────────────────────────────────────────────────────────────

// Store is the page store the App browses.
type Store interface {
	nav.PageSource
	Root() string
}

type Options struct {
	Theme         theme.Theme
	Editor        string
	NoOverlay     bool
	SideThreshold int
	Portrait      *portrait.Animator
	Completer     ai.Completer
	Logger        *slog.Logger

	// Context bounds completion requests; it is cancelled on shutdown.
	Context context.Context
	Clock   func() time.Time
	Copy    func(string) error
}

// App is the main Bubble Tea model.
type App struct {
	store  Store
	nav    *nav.State
	render *Renderer
	keys   keyMap
	log    *slog.Logger
	ctx    context.Context

	sub    subState
	width  int
	height int

	editor        string
	overlay       bool
	sideThreshold int

	// Inputs
	cmdInput  textinput.Model
	chatInput textinput.Model

	// Theme menu
	menuCursor int

	// Chat
	completer ai.Completer
	chat      []ChatEntry
	busy      bool
	spinner   spinner.Model
	portrait  *portrait.Animator

	copy func(string) error

	// Status
	statusMsg     string
	statusIsError bool

	quitting bool
}

func New(store Store, opts Options) *App {
	ci := textinput.New()
	ci.Prompt = ":"
	ci.CharLimit = 200

	qi := textinput.New()
	qi.Prompt = "ask> "
	qi.Placeholder = "question, or /insert <question>"
	qi.CharLimit = 500

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	if opts.Theme.Name == "" {
		opts.Theme = theme.MustLookup(theme.Default)
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Portrait == nil {
		opts.Portrait = portrait.New(nil)
	}
	if opts.Copy == nil {
		opts.Copy = clipboard.WriteAll
	}
	if opts.SideThreshold <= 0 {
		opts.SideThreshold = 100
	}

	a := &App{
		store:         store,
		nav:           nav.New(store),
		render:        NewRenderer(opts.Theme, opts.Clock),
		keys:          newKeyMap(),
		log:           opts.Logger,
		ctx:           opts.Context,
		editor:        opts.Editor,
		overlay:       !opts.NoOverlay,
		sideThreshold: opts.SideThreshold,
		cmdInput:      ci,
		chatInput:     qi,
		completer:     opts.Completer,
		spinner:       sp,
		portrait:      opts.Portrait,
		copy:          opts.Copy,
	}
	a.SetTheme(opts.Theme)
	return a
}

func (a *App) Init() tea.Cmd {
	return nil
}

// SetTheme is the only way the look of the frame changes.
func (a *App) SetTheme(t theme.Theme) {
	a.render.SetTheme(t)
	a.cmdInput.PromptStyle = t.Input
	a.chatInput.PromptStyle = t.Input
	a.spinner.Style = t.Input
}

func (a *App) Theme() theme.Theme {
	return a.render.Theme()
}

// Quitting reports whether the user asked to leave.
func (a *App) Quitting() bool {
	return a.quitting
}

// ── Commands ──────────────────────────────────────────────────────────────────

func (a *App) cmdOpenEditor(p *pages.Page) tea.Cmd {
	return tea.ExecProcess(editorCmd(a.editor, p.Path), func(err error) tea.Msg {
		return editorClosedMsg{err: err}
	})
}

func (a *App) cmdAsk(question string, insert bool) tea.Cmd {
	var title string
	var lines []string
	if cur := a.nav.Current(); cur != nil {
		title = cur.Name
		lines = append([]string(nil), a.nav.Lines()...)
	}
	ctx, c := a.ctx, a.completer
	return func() tea.Msg {
		answer, err := ai.Ask(ctx, c, title, lines, question)
		return completionMsg{answer: answer, insert: insert, err: err}
	}
}

// ── Update ────────────────────────────────────────────────────────────────────

func (a *App) Update(msg tea.Msg) (model tea.Model, cmd tea.Cmd) {
	defer func() {
		if r := recover(); r != nil {
			a.log.Error("ui: recovered from panic",
				slog.Any("panic", r),
				slog.String("stack", string(debug.Stack())))
			a.setStatus(fmt.Sprintf("internal error: %v", r), true)
			model, cmd = a, nil
		}
	}()

	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

	case editorClosedMsg:
		if msg.err != nil {
			a.fail("editor", msg.err)
		}
		a.nav.Rescan()
		if err := a.nav.Reload(); err != nil {
			a.fail("reload", err)
		}

	case completionMsg:
		a.finishCompletion(msg)

	case spinner.TickMsg:
		if !a.busy {
			return a, nil
		}
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		if key.Matches(msg, a.keys.forceQuit) {
			a.quitting = true
			return a, tea.Quit
		}
		if a.busy {
			return a, nil
		}
		a.portrait.Advance()
		a.statusMsg = ""

		switch a.sub {
		case subNormal:
			return a.updateNormal(msg)
		case subCommand:
			return a.updateCommand(msg)
		case subThemeMenu:
			return a.updateThemeMenu(msg)
		case subChat:
			return a.updateChat(msg)
		}
	}

	return a, nil
}

// ── Normal ────────────────────────────────────────────────────────────────────

func (a *App) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.up):
		a.nav.MoveCursor(-1)

	case key.Matches(msg, a.keys.down):
		a.nav.MoveCursor(1)

	case key.Matches(msg, a.keys.top):
		a.nav.JumpTo(0)

	case key.Matches(msg, a.keys.bottom):
		a.nav.JumpTo(a.nav.Len() - 1)

	case key.Matches(msg, a.keys.open):
		a.openOrFollow()

	case key.Matches(msg, a.keys.back):
		if err := a.nav.Back(); err != nil {
			a.fail("back", err)
		}

	case key.Matches(msg, a.keys.edit):
		if p := a.target(); p != nil {
			return a, a.cmdOpenEditor(p)
		}

	case key.Matches(msg, a.keys.themeMenu):
		a.sub = subThemeMenu
		a.menuCursor = 0
		for i, name := range theme.Names() {
			if name == a.Theme().Name {
				a.menuCursor = i
			}
		}

	case key.Matches(msg, a.keys.command):
		a.sub = subCommand
		a.cmdInput.Reset()
		return a, a.cmdInput.Focus()

	case key.Matches(msg, a.keys.chat):
		a.sub = subChat
		a.chatInput.Reset()
		return a, a.chatInput.Focus()

	case key.Matches(msg, a.keys.copyPath):
		p := a.target()
		if p == nil {
			return a, nil
		}
		if err := a.copy(p.Path); err != nil {
			a.fail("copy", err)
			return a, nil
		}
		a.setStatus("copied "+p.Path, false)

	case key.Matches(msg, a.keys.quit):
		if a.nav.QuitToList() {
			a.quitting = true
			return a, tea.Quit
		}
	}

	return a, nil
}

func (a *App) openOrFollow() {
	if a.nav.Mode() == nav.ModeList {
		p, ok := a.nav.Selected()
		if !ok {
			return
		}
		if err := a.nav.Open(p); err != nil {
			a.fail("open", err)
		}
		return
	}
	followed, err := a.nav.FollowLink()
	if err != nil {
		a.fail("follow", err)
		return
	}
	if !followed {
		a.setStatus("no link on this line", false)
	}
}

// target is the page an action applies to: the open page, or the one under
// the cursor in the list.
func (a *App) target() *pages.Page {
	if p := a.nav.Current(); p != nil {
		return p
	}
	p, _ := a.nav.Selected()
	return p
}

// ── Command entry ─────────────────────────────────────────────────────────────

func (a *App) updateCommand(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		a.leaveInput()
		return a, nil

	case tea.KeyEnter:
		line := a.cmdInput.Value()
		a.leaveInput()
		return a.runCommand(line)

	case tea.KeyBackspace:
		if a.cmdInput.Value() == "" {
			a.leaveInput()
			return a, nil
		}
	}

	var cmd tea.Cmd
	a.cmdInput, cmd = a.cmdInput.Update(msg)
	return a, cmd
}

func (a *App) runCommand(line string) (tea.Model, tea.Cmd) {
	c, err := ParseCommand(line)
	if err != nil {
		a.fail("command", err)
		return a, nil
	}

	switch c.Kind {
	case CmdQuit:
		if a.nav.QuitToList() {
			a.quitting = true
			return a, tea.Quit
		}

	case CmdTheme:
		t, err := theme.Lookup(c.Arg)
		if err != nil {
			a.fail("theme", fmt.Errorf("%w (valid: %s)", err, strings.Join(theme.Names(), ", ")))
			return a, nil
		}
		a.SetTheme(t)
		a.setStatus("theme "+t.Name, false)

	case CmdOpen:
		a.openNamed(c.Arg, true)

	case CmdNew:
		a.openNamed(c.Arg, false)

	case CmdFind:
		a.find(c.Arg)

	case CmdBack:
		if err := a.nav.Back(); err != nil {
			a.fail("back", err)
		}
	}
	return a, nil
}

// openNamed opens the page called name, falling back to the closest fuzzy
// match when allowed, and creating the page when nothing matches.
func (a *App) openNamed(name string, fuzzyFallback bool) {
	p, ok := a.store.FindByName(name)
	if !ok && fuzzyFallback {
		all := a.nav.Pages()
		if matches := fuzzy.Find(name, pageNames(all)); len(matches) > 0 {
			p, ok = all[matches[0].Index], true
		}
	}
	if !ok {
		created, err := a.store.CreatePage(name)
		if err != nil {
			a.fail("new", err)
			return
		}
		a.log.Info("ui: page created", slog.String("name", name), slog.String("path", created.RelPath))
		p = created
	}
	if err := a.nav.Open(p); err != nil {
		a.fail("open", err)
	}
}

// find moves the cursor to the best fuzzy match in the active sequence:
// page names in the list, lines on a page.
func (a *App) find(query string) {
	var data []string
	if a.nav.Mode() == nav.ModeContent {
		data = a.nav.Lines()
	} else {
		data = pageNames(a.nav.Pages())
	}
	matches := fuzzy.Find(query, data)
	if len(matches) == 0 {
		a.setStatus(fmt.Sprintf("no match for %q", query), true)
		return
	}
	a.nav.JumpTo(matches[0].Index)
}

func pageNames(all []*pages.Page) []string {
	names := make([]string, len(all))
	for i, p := range all {
		names[i] = p.Name
	}
	return names
}

// ── Theme menu ────────────────────────────────────────────────────────────────

func (a *App) updateThemeMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	names := theme.Names()
	switch {
	case key.Matches(msg, a.keys.up):
		if a.menuCursor > 0 {
			a.menuCursor--
		}

	case key.Matches(msg, a.keys.down):
		if a.menuCursor < len(names)-1 {
			a.menuCursor++
		}

	case key.Matches(msg, a.keys.confirm):
		t := theme.MustLookup(names[a.menuCursor])
		a.SetTheme(t)
		a.sub = subNormal
		a.setStatus("theme "+t.Name, false)

	case key.Matches(msg, a.keys.cancel):
		a.sub = subNormal
	}
	return a, nil
}

// ── Chat ──────────────────────────────────────────────────────────────────────

func (a *App) updateChat(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		a.leaveInput()
		return a, nil

	case tea.KeyEnter:
		text := strings.TrimSpace(a.chatInput.Value())
		a.leaveInput()
		if text == "" {
			return a, nil
		}
		return a.ask(text)
	}

	var cmd tea.Cmd
	a.chatInput, cmd = a.chatInput.Update(msg)
	return a, cmd
}

func (a *App) ask(text string) (tea.Model, tea.Cmd) {
	insert := false
	if rest, ok := strings.CutPrefix(text, insertDirective); ok {
		insert = true
		text = strings.TrimSpace(rest)
	}
	a.chat = append(a.chat, ChatEntry{Question: text, Insert: insert})

	if a.completer == nil || !a.completer.Available() {
		a.chat[len(a.chat)-1].Err = ai.ErrNoProvider.Error()
		a.setStatus("chat: "+ai.ErrNoProvider.Error(), true)
		return a, nil
	}
	a.busy = true
	return a, tea.Batch(a.cmdAsk(text, insert), a.spinner.Tick)
}

func (a *App) finishCompletion(msg completionMsg) {
	a.busy = false
	if len(a.chat) == 0 {
		return
	}
	entry := &a.chat[len(a.chat)-1]
	if msg.err != nil {
		entry.Err = msg.err.Error()
		a.fail("chat", msg.err)
		return
	}
	entry.Answer = msg.answer
	if !msg.insert {
		return
	}
	lines := pages.SplitLines(msg.answer)
	if err := a.nav.InsertAtCursor(lines); err != nil {
		a.fail("insert", err)
		return
	}
	a.setStatus(fmt.Sprintf("inserted %d lines", len(lines)), false)
}

// ── View ──────────────────────────────────────────────────────────────────────

func (a *App) View() string {
	if a.quitting {
		return ""
	}
	if a.width == 0 {
		return "loading..."
	}
	l := computeLayout(a.width, a.height, a.nav.Mode(), a.overlay, a.sideThreshold)
	start, end := a.nav.Visible(l.viewH)
	return a.render.render(l, a.screen(start, end))
}

func (a *App) screen(start, end int) screen {
	s := screen{
		mode:         a.nav.Mode(),
		root:         a.store.Root(),
		pages:        a.nav.Pages(),
		current:      a.nav.Current(),
		lines:        a.nav.Lines(),
		links:        a.nav.Links(),
		cursor:       a.nav.Cursor(),
		start:        start,
		end:          end,
		historyDepth: a.nav.HistoryDepth(),
		portrait:     a.portrait.Frame(),
		chat:         a.chat,
		busy:         a.busy,
		spinner:      a.spinner.View(),
		status:       a.statusMsg,
		statusErr:    a.statusIsError,
	}

	switch a.sub {
	case subCommand:
		s.prompt = a.cmdInput.View()
	case subChat:
		s.prompt = a.chatInput.View()
	case subThemeMenu:
		s.menuOpen = true
		s.menu = theme.Names()
		s.menuCursor = a.menuCursor
		s.legend = a.keys.menuHelp()
	}
	if s.legend == nil {
		if s.mode == nav.ModeContent {
			s.legend = a.keys.contentHelp()
		} else {
			s.legend = a.keys.listHelp()
		}
	}
	return s
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func (a *App) leaveInput() {
	a.cmdInput.Blur()
	a.chatInput.Blur()
	a.sub = subNormal
}

// fail logs a recoverable error and shows it in the status line.
func (a *App) fail(op string, err error) {
	a.log.Warn("ui: "+op+" failed", slog.String("error", err.Error()))
	a.setStatus(op+": "+err.Error(), true)
}

func (a *App) setStatus(msg string, isErr bool) {
	a.statusMsg = msg
	a.statusIsError = isErr
}
