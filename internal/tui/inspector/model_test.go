package inspector

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	mdwlog "github.com/msto63/khamseena/foundation/core/log"
	"github.com/msto63/khamseena/foundation/khamseena"
)

func newModel(source string) Model {
	return New(Config{
		Path:   "test.kh",
		Load:   func() (string, error) { return source, nil },
		Engine: khamseena.NewEngine(khamseena.Options{Logger: mdwlog.Discard()}),
	})
}

// ready compiles the source and sizes the window
func ready(t *testing.T, m Model) Model {
	t.Helper()
	updated, _ := m.Update(m.compile())
	updated, _ = updated.Update(tea.WindowSizeMsg{Width: 100, Height: 60})
	return updated.(Model)
}

func press(m Model, key tea.KeyMsg) Model {
	updated, _ := m.Update(key)
	return updated.(Model)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_Tabs(t *testing.T) {
	m := ready(t, newModel("count x = 1;\nserve y;\ntaste (x) { }\n"))

	tests := []struct {
		key  string
		tab  Tab
		want []string
	}{
		{"1", TabSource, []string{"   1 count x = 1;", "2 serve y;", ">"}},
		{"2", TabTokens, []string{"TOKEN TYPE", "IDENTIFIER", "2:7"}},
		{"3", TabAST, []string{"Program"}},
		{"4", TabDiagnostics, []string{"error: 2:7: undefined variable 'y'", "warning: 3:8:"}},
		{"5", TabScopes, []string{"Scope: global", "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.tab.String(), func(t *testing.T) {
			m = press(m, runes(tt.key))
			if m.tab != tt.tab {
				t.Fatalf("tab = %v, want %v", m.tab, tt.tab)
			}
			content := m.content()
			for _, want := range tt.want {
				if !strings.Contains(content, want) {
					t.Errorf("content missing %q:\n%s", want, content)
				}
			}
		})
	}
}

func TestModel_TabCycling(t *testing.T) {
	m := ready(t, newModel("serve 1;"))

	m = press(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.tab != TabScopes {
		t.Errorf("shift+tab from first tab = %v, want Scopes", m.tab)
	}
	m = press(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.tab != TabSource {
		t.Errorf("tab from last tab = %v, want Source", m.tab)
	}
}

func TestModel_View(t *testing.T) {
	m := newModel("serve 1;")
	if got := m.View(); got != "Loading inspector..." {
		t.Errorf("View() before sizing = %q", got)
	}

	m = ready(t, m)
	view := m.View()
	for _, want := range []string{Logo, "test.kh", "1 Source", "5 Scopes", "OK", "Reload"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestModel_Failures(t *testing.T) {
	m := ready(t, newModel("count x = @;"))
	m = press(m, runes("3"))
	if !strings.Contains(m.content(), "stopped at lexical stage") {
		t.Errorf("AST tab = %q", m.content())
	}
	m = press(m, runes("4"))
	if !strings.Contains(m.content(), "fatal:") {
		t.Errorf("diagnostics tab = %q", m.content())
	}
	if !strings.Contains(m.View(), "FAILED") {
		t.Error("status bar should show FAILED")
	}

	broken := New(Config{Load: func() (string, error) { return "", errors.New("no such file") }})
	broken = ready(t, broken)
	if !strings.Contains(broken.content(), "no such file") {
		t.Errorf("content = %q", broken.content())
	}
}

func TestModel_Reload(t *testing.T) {
	source := "serve 1;"
	m := New(Config{
		Load:   func() (string, error) { return source, nil },
		Engine: khamseena.NewEngine(khamseena.Options{Logger: mdwlog.Discard()}),
	})
	m = ready(t, m)

	source = "serve 1;\nserve 2;"
	updated, cmd := m.Update(runes("r"))
	if cmd == nil {
		t.Fatal("r should return a command")
	}
	updated, cmd = updated.Update(cmd())
	if cmd == nil {
		t.Fatal("reload should schedule a compile")
	}
	updated, _ = updated.Update(cmd())

	reloaded := updated.(Model)
	if reloaded.source != source || reloaded.cached {
		t.Errorf("source after reload = %q, cached %v", reloaded.source, reloaded.cached)
	}

	// Reloading an unchanged file reuses the result
	updated, _ = reloaded.Update(reloaded.compile())
	again := updated.(Model)
	if !again.cached || again.result != reloaded.result {
		t.Error("unchanged source should be served from the cache")
	}
	if !strings.Contains(again.View(), "(unchanged)") {
		t.Error("status bar should mark a cached result")
	}
}

func TestModel_Quit(t *testing.T) {
	m := ready(t, newModel("serve 1;"))
	for _, key := range []tea.KeyMsg{runes("q"), {Type: tea.KeyCtrlC}} {
		_, cmd := m.Update(key)
		if cmd == nil {
			t.Fatalf("%v should quit", key)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%v did not return tea.Quit", key)
		}
	}
}

func TestModel_SourceLineEndings(t *testing.T) {
	m := ready(t, newModel("count x = 1;\r\nserve y;\r\n"))
	m = press(m, runes("1"))

	content := m.content()
	if strings.Contains(content, "\r") {
		t.Errorf("source view kept carriage returns: %q", content)
	}
	for _, want := range []string{"   1 count x = 1;", "2 serve y;", "   3 "} {
		if !strings.Contains(content, want) {
			t.Errorf("source view missing %q:\n%s", want, content)
		}
	}
}
