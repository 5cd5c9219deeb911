// ============================================================================
// Khamseena - Front end toolchain
// ============================================================================
//
// Package:     inspector
// Description: Read-only Bubbletea model that shows the stages of a compile
// Author:      Mike Stoffels
// Created:     2025-10-19
// License:     MIT
// ============================================================================

package inspector

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/msto63/khamseena/foundation/khamseena"
	"github.com/msto63/khamseena/foundation/khamseena/ast"
	"github.com/msto63/khamseena/foundation/khamseena/parser"
	"github.com/msto63/khamseena/foundation/utils/stringx"
	"github.com/msto63/khamseena/pkg/core/cache"
)

// Tab identifies one view of the compile result
type Tab int

const (
	TabSource Tab = iota
	TabTokens
	TabAST
	TabDiagnostics
	TabScopes
)

var tabNames = []string{"Source", "Tokens", "AST", "Diagnostics", "Scopes"}

func (t Tab) String() string {
	if t < 0 || int(t) >= len(tabNames) {
		return "Unknown"
	}
	return tabNames[t]
}

// Config holds inspector configuration
type Config struct {
	Path   string                 // Shown in the header
	Load   func() (string, error) // Reads the current source
	Engine *khamseena.Engine
}

// Model is the Bubbletea model for the inspector
type Model struct {
	width  int
	height int
	ready  bool

	viewport viewport.Model
	tab      Tab

	path     string
	load     func() (string, error)
	compiler *cache.ResultCache
	source   string
	result   *khamseena.Result
	cached   bool
	fatal    error
	loadErr  error
}

// New creates a new inspector model
func New(cfg Config) Model {
	engine := cfg.Engine
	if engine == nil {
		engine = khamseena.NewEngine(khamseena.Options{})
	}
	return Model{
		path:     cfg.Path,
		load:     cfg.Load,
		compiler: cache.NewResultCache(engine, cache.DefaultConfig()),
	}
}

// Init loads and compiles the source
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.compile, tea.EnterAltScreen)
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 6 // Title panel + tab bar
		footerHeight := 2 // Status bar + help
		viewportHeight := msg.Height - headerHeight - footerHeight - 2
		if viewportHeight < 1 {
			viewportHeight = 1
		}

		if !m.ready {
			m.viewport = viewport.New(msg.Width-4, viewportHeight)
			m.viewport.YPosition = headerHeight
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 4
			m.viewport.Height = viewportHeight
		}
		m.viewport.SetContent(m.content())

	case compiledMsg:
		m.source = msg.source
		m.result = msg.result
		m.cached = msg.cached
		m.fatal = msg.err
		m.loadErr = nil
		m.viewport.SetContent(m.content())
		m.viewport.GotoTop()

	case loadFailedMsg:
		m.loadErr = msg.err
		m.viewport.SetContent(m.content())

	case reloadMsg:
		return m, m.compile
	}

	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// handleKeyPress handles keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit

	case tea.KeyTab:
		return m.selectTab((m.tab + 1) % Tab(len(tabNames))), nil

	case tea.KeyShiftTab:
		return m.selectTab((m.tab + Tab(len(tabNames)) - 1) % Tab(len(tabNames))), nil

	case tea.KeyRunes:
		switch key := string(msg.Runes); key {
		case "q":
			return m, tea.Quit
		case "1", "2", "3", "4", "5":
			return m.selectTab(Tab(key[0] - '1')), nil
		case "r":
			return m, func() tea.Msg { return reloadMsg{} }
		case "g":
			m.viewport.GotoTop()
			return m, nil
		case "G":
			m.viewport.GotoBottom()
			return m, nil
		}

	case tea.KeyPgUp:
		m.viewport.ViewUp()
		return m, nil

	case tea.KeyPgDown:
		m.viewport.ViewDown()
		return m, nil

	case tea.KeyUp:
		m.viewport.LineUp(1)
		return m, nil

	case tea.KeyDown:
		m.viewport.LineDown(1)
		return m, nil
	}

	return m, nil
}

func (m Model) selectTab(tab Tab) Model {
	m.tab = tab
	m.viewport.SetContent(m.content())
	m.viewport.GotoTop()
	return m
}

// compile reads the source and runs the engine on it
func (m Model) compile() tea.Msg {
	if m.load == nil {
		return loadFailedMsg{err: fmt.Errorf("no source loader configured")}
	}
	source, err := m.load()
	if err != nil {
		return loadFailedMsg{err: err}
	}
	result, cached, err := m.compiler.Compile(source)
	return compiledMsg{source: source, result: result, cached: cached, err: err}
}

// View renders the UI
func (m Model) View() string {
	if !m.ready {
		return "Loading inspector..."
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n")
	b.WriteString(ContentPanelStyle.Width(m.width - 2).Render(m.viewport.View()))
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	b.WriteString("\n")
	b.WriteString(m.renderHelpBar())
	return b.String()
}

func (m Model) renderHeader() string {
	header := lipgloss.JoinHorizontal(lipgloss.Center,
		LogoStyle.Render(Logo),
		"   ",
		HelpDescStyle.Render(m.path),
	)
	return TitlePanelStyle.Width(m.width - 4).Render(header)
}

func (m Model) renderTabs() string {
	tabs := make([]string, len(tabNames))
	for i, name := range tabNames {
		label := fmt.Sprintf("%d %s", i+1, name)
		if Tab(i) == m.tab {
			tabs[i] = TabActiveStyle.Render(label)
		} else {
			tabs[i] = TabInactiveStyle.Render(label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderStatusBar() string {
	var status string
	switch {
	case m.loadErr != nil:
		status = ErrorStyle.Render("load failed")
	case m.result == nil:
		status = HelpDescStyle.Render("compiling...")
	case m.fatal == nil && m.result.Success():
		status = SuccessStyle.Render("OK")
	default:
		status = ErrorStyle.Render("FAILED")
	}

	var counts string
	if m.result != nil {
		counts = fmt.Sprintf("  stage %s  %d errors  %d warnings  %s",
			m.result.Stage, m.result.ErrorCount(), m.result.WarningCount(), m.result.Duration)
		if m.cached {
			counts += "  (unchanged)"
		}
	}
	return StatusBarStyle.Width(m.width - 2).Render(status + HelpDescStyle.Render(counts))
}

func (m Model) renderHelpBar() string {
	items := []string{
		RenderKeyHint("1-5/Tab", "View"),
		RenderKeyHint("r", "Reload"),
		RenderKeyHint("g/G", "Top/Bottom"),
		RenderKeyHint("q", "Quit"),
	}
	return strings.Join(items, "  ")
}

// content renders the body of the active tab
func (m Model) content() string {
	if m.loadErr != nil {
		return ErrorStyle.Render("cannot read source: ") + m.loadErr.Error()
	}
	if m.result == nil {
		return ""
	}

	switch m.tab {
	case TabSource:
		return m.renderSource()
	case TabTokens:
		return renderTokens(m.result.Tokens)
	case TabAST:
		if m.result.Program == nil {
			return HelpDescStyle.Render("no syntax tree (stopped at " + string(m.result.Stage) + " stage)")
		}
		return ast.Tree(m.result.Program)
	case TabDiagnostics:
		return m.renderDiagnostics()
	case TabScopes:
		if m.result.Analysis == nil || m.result.Analysis.Scopes == nil {
			return HelpDescStyle.Render("no symbol table")
		}
		return m.result.Analysis.Scopes.String()
	}
	return ""
}

func (m Model) renderSource() string {
	marked := make(map[int]bool)
	for _, perr := range m.result.ParseErrors {
		marked[perr.Line] = true
	}
	if m.result.Analysis != nil {
		for _, d := range m.result.Analysis.Errors {
			marked[d.Pos.Line] = true
		}
	}

	var b strings.Builder
	for i, line := range stringx.SplitLines(m.source) {
		marker := "  "
		if marked[i+1] {
			marker = ErrorStyle.Render("> ")
		}
		number := stringx.PadLeft(strconv.Itoa(i+1), 4, ' ')
		fmt.Fprintf(&b, "%s%s %s\n", marker, LineNumberStyle.Render(number), line)
	}
	return b.String()
}

func renderTokens(tokens []parser.Token) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-20s %-20s %s\n", "TOKEN TYPE", "VALUE", "POSITION")
	for _, tok := range tokens {
		fmt.Fprintf(&b, "%s %-20s %d:%d\n",
			TokenTypeStyle.Render(fmt.Sprintf("%-20s", tok.Type)),
			stringx.Truncate(tok.Value, 40, "..."), tok.Line, tok.Column)
	}
	return b.String()
}

func (m Model) renderDiagnostics() string {
	var b strings.Builder
	if m.fatal != nil {
		fmt.Fprintf(&b, "%s %s\n", ErrorStyle.Render("fatal:"), m.fatal)
	}
	for _, perr := range m.result.ParseErrors {
		fmt.Fprintf(&b, "%s %s\n", ErrorStyle.Render("syntax:"), perr)
	}
	if m.result.Analysis != nil {
		for _, d := range m.result.Analysis.Errors {
			fmt.Fprintf(&b, "%s %d:%d: %s\n", ErrorStyle.Render("error:"), d.Pos.Line, d.Pos.Column, d.Message)
		}
		for _, d := range m.result.Analysis.Warnings {
			fmt.Fprintf(&b, "%s %d:%d: %s\n", WarningStyle.Render("warning:"), d.Pos.Line, d.Pos.Column, d.Message)
		}
	}
	if b.Len() == 0 {
		return SuccessStyle.Render("no diagnostics")
	}
	return b.String()
}
