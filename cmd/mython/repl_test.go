package main

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func pressEnter(t *testing.T, m replModel, line string) replModel {
	t.Helper()
	m.input.SetValue(line)
	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	rm, ok := model.(replModel)
	if !ok {
		t.Fatalf("unexpected model type %T", model)
	}
	return rm
}

func lastLine(t *testing.T, m replModel) transcriptLine {
	t.Helper()
	if len(m.transcript) == 0 {
		t.Fatalf("transcript is empty")
	}
	return m.transcript[len(m.transcript)-1]
}

func TestQuitCommandReturnsQuit(t *testing.T) {
	m := newREPLModel()
	m.input.SetValue(":quit")

	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	rm, ok := model.(replModel)
	if !ok {
		t.Fatalf("unexpected model type %T", model)
	}
	if !rm.quitting {
		t.Fatalf("quitting flag not set")
	}
	if cmd == nil {
		t.Fatalf("expected tea.Quit command")
	}
	if msg := cmd(); msg != nil {
		if _, ok := msg.(tea.QuitMsg); !ok {
			t.Fatalf("expected QuitMsg, got %T", msg)
		}
	}
}

func TestQuitKeyReturnsQuit(t *testing.T) {
	m := newREPLModel()
	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	rm := model.(replModel)
	if !rm.quitting || cmd == nil {
		t.Fatalf("ctrl+c did not quit (quitting=%v cmd=%v)", rm.quitting, cmd)
	}
}

func TestEvaluateKeepsScopeAcrossLines(t *testing.T) {
	m := newREPLModel()
	m = pressEnter(t, m, "x = 20")
	m = pressEnter(t, m, "print x + 2")

	line := lastLine(t, m)
	if line.role != roleOutput {
		t.Fatalf("unexpected line: %+v", line)
	}
	if line.text != "22" {
		t.Fatalf("output = %q", line.text)
	}
}

func TestEvaluateReportsErrors(t *testing.T) {
	m := newREPLModel()
	m = pressEnter(t, m, "print ghost")

	line := lastLine(t, m)
	if line.role != roleError {
		t.Fatalf("expected an error line, got %+v", line)
	}
	if !strings.Contains(line.text, "unknown variable") {
		t.Fatalf("error text = %q", line.text)
	}
}

func TestTopLevelReturnRejectedAndScopeStaysClean(t *testing.T) {
	m := newREPLModel()
	m = pressEnter(t, m, "return 1")

	line := lastLine(t, m)
	if line.role != roleError || !strings.Contains(line.text, "return outside of method body") {
		t.Fatalf("unexpected line: %+v", line)
	}
	if len(m.scope) != 0 {
		t.Fatalf("scope polluted: %v", m.scope)
	}

	// The session keeps working afterwards.
	m = pressEnter(t, m, "print 1")
	if line := lastLine(t, m); line.role != roleOutput || line.text != "1" {
		t.Fatalf("session broken after rejected return: %+v", line)
	}
}

func TestBlockInputBuffersUntilBlankLine(t *testing.T) {
	m := newREPLModel()
	m = pressEnter(t, m, "class A:")
	if len(m.pending) != 1 {
		t.Fatalf("pending = %v", m.pending)
	}
	if len(m.transcript) != 0 {
		t.Fatalf("block opener executed early")
	}
	if m.input.Prompt != promptMore {
		t.Fatalf("continuation prompt not shown: %q", m.input.Prompt)
	}

	m = pressEnter(t, m, "  def __str__(self):")
	m = pressEnter(t, m, "    return 'a'")
	m = pressEnter(t, m, "")

	if len(m.pending) != 0 {
		t.Fatalf("pending not flushed: %v", m.pending)
	}
	if m.input.Prompt != promptMain {
		t.Fatalf("prompt not restored: %q", m.input.Prompt)
	}
	if line := lastLine(t, m); line.role == roleError {
		t.Fatalf("block failed: %s", line.text)
	}

	m = pressEnter(t, m, "print A()")
	line := lastLine(t, m)
	if line.role != roleOutput || line.text != "a" {
		t.Fatalf("output = %+v", line)
	}
}

func TestResetClearsScope(t *testing.T) {
	m := newREPLModel()
	m = pressEnter(t, m, "x = 1")
	if len(m.scope) == 0 {
		t.Fatalf("scope empty after assignment")
	}

	m = pressEnter(t, m, ":reset")
	if len(m.scope) != 0 {
		t.Fatalf("scope not cleared: %v", m.scope)
	}

	m = pressEnter(t, m, "print x")
	if line := lastLine(t, m); line.role != roleError {
		t.Fatalf("expected unknown variable after reset, got %+v", line)
	}
}

func TestCompleteWordFromScope(t *testing.T) {
	m := newREPLModel()
	m = pressEnter(t, m, "counter = 3")
	m.input.SetValue("print coun")

	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	rm := model.(replModel)
	if got := rm.input.Value(); got != "print counter" {
		t.Fatalf("completion = %q", got)
	}
}
