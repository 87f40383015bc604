package ui

import (
	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/oakwood-commons/tmenu/internal/candidate"
	"github.com/oakwood-commons/tmenu/internal/match"
	"github.com/oakwood-commons/tmenu/internal/menu"
)

// Default terminal size used until the first WindowSizeMsg arrives.
const (
	DefaultWidth  = 80
	DefaultHeight = 24
)

// Source is a candidate list the model can lay out. candidate.Store
// satisfies it.
type Source interface {
	match.Source
	Longest() string
}

// Loader produces the candidates after the UI is already up.
type Loader func() (Source, error)

// Options configure a Model.
type Options struct {
	Menu menu.Options

	// Lines selects the vertical layout with that many item rows. Height,
	// when set, wins and counts the input row too.
	Lines  int
	Height int
	// Width caps the menu width in cells; 0 uses the whole terminal.
	Width  int
	Prompt string

	Mask     bool // draw '*' for every input rune
	Quiet    bool // hide the list until something is typed
	Bottom   bool // place the menu on the last terminal rows
	VertFull bool // draw a rule between input and items

	Keys  *KeyMap
	Theme Theme

	// Emit receives the input text after every key in incremental mode.
	Emit func(string)
	// Load, when set, is run after startup and its result replaces the
	// candidates.
	Load Loader
}

// Result is the outcome of a finished model.
type Result struct {
	Status menu.Status
	Output []string
}

// Accepted reports whether the menu ended with a commit.
func (r Result) Accepted() bool { return r.Status == menu.StatusSuccess }

// candidatesMsg delivers candidates produced by a Loader.
type candidatesMsg struct {
	src Source
	err error
}

// Model is the bubbletea front end of a menu session.
type Model struct {
	opts    Options
	session *menu.Session
	src     Source
	keys    KeyMap
	styles  styles
	help    help.Model
	spinner spinner.Model

	loading  bool
	showHelp bool
	width    int
	height   int

	result Result
	err    error
}

// NewModel builds a model over src and runs the initial match. src may be
// nil when opts.Load supplies the candidates.
func NewModel(src Source, opts Options) *Model {
	if src == nil {
		src = candidate.New(nil)
	}
	keys := DefaultKeyMap()
	if opts.Keys != nil {
		keys = *opts.Keys
	}

	m := &Model{
		opts:    opts,
		src:     src,
		keys:    keys,
		styles:  stylesFor(opts.Theme),
		help:    help.New(),
		spinner: spinner.New(),
		loading: opts.Load != nil,
		width:   DefaultWidth,
		height:  DefaultHeight,
	}
	m.spinner.Spinner = spinner.Dot
	m.spinner.Style = m.styles.arrow
	m.help.ShowAll = true
	m.help.Styles.FullKey = colored(opts.Theme.HelpKey, nil)
	m.help.Styles.FullDesc = colored(opts.Theme.HelpValue, nil)
	m.help.Styles.FullSeparator = colored(opts.Theme.RuleFG, nil)

	mo := opts.Menu
	mo.Budget = m.budget()
	mo.Measure = menu.MeasureFunc(cellWidth)
	m.session = menu.New(src, mo)
	m.finish(m.session.Start())
	return m
}

// cellWidth is the horizontal footprint of an item: its text plus one cell
// of padding on each side.
func cellWidth(text string) int {
	return lipgloss.Width(text) + 2
}

// Session exposes the underlying menu session.
func (m *Model) Session() *menu.Session { return m.session }

// Result returns the outcome once the model is done.
func (m *Model) Result() Result { return m.result }

// Err returns the loading error, if any.
func (m *Model) Err() error { return m.err }

// Done reports whether the session ended.
func (m *Model) Done() bool { return m.session.Done() || m.err != nil }

// HelpVisible reports whether the key help overlay is shown.
func (m *Model) HelpVisible() bool { return m.showHelp }

// SetSize applies a terminal size.
func (m *Model) SetSize(width, height int) {
	if width > 0 {
		m.width = width
	}
	if height > 0 {
		m.height = height
	}
	m.help.SetWidth(m.menuWidth())
	m.session.Resize(m.budget())
}

func (m *Model) Init() tea.Cmd {
	if m.Done() {
		return tea.Quit
	}
	if m.loading {
		return tea.Batch(m.load, m.spinner.Tick)
	}
	return nil
}

func (m *Model) load() tea.Msg {
	src, err := m.opts.Load()
	return candidatesMsg{src: src, err: err}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.Done() {
		return m, tea.Quit
	}
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil
	case candidatesMsg:
		return m, m.candidatesLoaded(msg)
	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyPressMsg:
		return m, m.handleKey(msg)
	case tea.PasteMsg:
		return m, m.paste(msg.Content)
	case clipboardMsg:
		if msg.err != nil {
			return m, nil
		}
		return m, m.paste(msg.text)
	case tea.MouseClickMsg:
		return m, m.handleClick(msg.Mouse())
	case tea.MouseWheelMsg:
		return m, m.handleWheel(msg.Mouse())
	case tea.MouseMotionMsg:
		return m, m.handleMotion(msg.Mouse())
	}
	return m, nil
}

func (m *Model) candidatesLoaded(msg candidatesMsg) tea.Cmd {
	m.loading = false
	if msg.err != nil {
		m.err = msg.err
		m.result = Result{Status: menu.StatusFailure}
		return tea.Quit
	}
	if msg.src == nil {
		return nil
	}
	m.src = msg.src
	m.session.Resize(m.budget())
	return m.finish(m.session.SetCandidates(msg.src))
}

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	act := m.keys.Resolve(msg)
	switch {
	case act.Help:
		m.showHelp = !m.showHelp
		return nil
	case act.Paste:
		return readClipboard
	case act.Cmd == menu.CmdInsert:
		return m.apply(menu.Event{Cmd: menu.CmdInsert, Text: msg.Key().Text})
	case act.Cmd != menu.CmdNone:
		return m.apply(menu.Event{Cmd: act.Cmd})
	}
	return nil
}

func (m *Model) paste(text string) tea.Cmd {
	line := pasteLine(text)
	if line == "" {
		return nil
	}
	return m.apply(menu.Event{Cmd: menu.CmdInsert, Text: line})
}

// apply runs one event through the session and turns its transition into
// side effects.
func (m *Model) apply(ev menu.Event) tea.Cmd {
	return m.finish(m.session.Apply(ev))
}

func (m *Model) finish(t menu.Transition) tea.Cmd {
	if t.Done {
		m.result = Result{Status: t.Status, Output: t.Output}
		return tea.Quit
	}
	if m.opts.Emit != nil {
		for _, line := range t.Output {
			m.opts.Emit(line)
		}
	}
	return nil
}

func (m *Model) handleClick(mouse tea.Mouse) tea.Cmd {
	switch mouse.Button {
	case tea.MouseRight:
		return m.apply(menu.Event{Cmd: menu.CmdCancel})
	case tea.MouseMiddle:
		return readClipboard
	case tea.MouseLeft:
		h := m.layout().hit(mouse.X, mouse.Y)
		switch h.area {
		case areaInput:
			return m.apply(menu.Event{Cmd: menu.CmdClearInput})
		case areaPrev:
			return m.apply(menu.Event{Cmd: menu.CmdPageUp})
		case areaNext:
			return m.apply(menu.Event{Cmd: menu.CmdPageDown})
		case areaItem:
			return m.apply(menu.Event{Cmd: menu.CmdPick, Item: h.item})
		}
	}
	return nil
}

func (m *Model) handleWheel(mouse tea.Mouse) tea.Cmd {
	switch mouse.Button {
	case tea.MouseWheelUp:
		return m.apply(menu.Event{Cmd: menu.CmdScrollUp})
	case tea.MouseWheelDown:
		return m.apply(menu.Event{Cmd: menu.CmdScrollDown})
	}
	return nil
}

func (m *Model) handleMotion(mouse tea.Mouse) tea.Cmd {
	h := m.layout().hit(mouse.X, mouse.Y)
	if h.area != areaItem {
		return nil
	}
	return m.apply(menu.Event{Cmd: menu.CmdHover, Item: h.item})
}

func (m *Model) View() tea.View {
	l := m.layout()
	v := tea.NewView(m.render(l))
	v.AltScreen = true
	v.MouseMode = tea.MouseModeAllMotion
	v.KeyboardEnhancements.ReportEventTypes = true
	x, y := m.cursor(l)
	v.Cursor = tea.NewCursor(x, y)
	return v
}
