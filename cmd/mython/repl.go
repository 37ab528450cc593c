package main

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sulejman1994/mython/mython"
)

const (
	promptMain = "mython» "
	promptMore = "   ···» "
)

// lineRole classifies a transcript line so the view can style it.
type lineRole int

const (
	roleInput lineRole = iota
	roleOutput
	roleError
	roleInfo
)

// transcriptLine is one display line of the session log. Multi-line
// echoes and outputs are split before they are appended, so the view
// only ever clamps and styles single lines.
type transcriptLine struct {
	role lineRole
	text string
}

type replStyles struct {
	banner  lipgloss.Style
	prompt  lipgloss.Style
	echo    lipgloss.Style
	output  lipgloss.Style
	errline lipgloss.Style
	info    lipgloss.Style
	panel   lipgloss.Style
	varName lipgloss.Style
}

func defaultStyles() replStyles {
	accent := lipgloss.AdaptiveColor{Light: "#1E40AF", Dark: "#7AA2F7"}
	good := lipgloss.AdaptiveColor{Light: "#047857", Dark: "#9ECE6A"}
	bad := lipgloss.AdaptiveColor{Light: "#B91C1C", Dark: "#F7768E"}
	dim := lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#565F89"}

	return replStyles{
		banner:  lipgloss.NewStyle().Bold(true).Foreground(accent),
		prompt:  lipgloss.NewStyle().Bold(true).Foreground(accent),
		echo:    lipgloss.NewStyle().Faint(true),
		output:  lipgloss.NewStyle().Foreground(good),
		errline: lipgloss.NewStyle().Foreground(bad),
		info:    lipgloss.NewStyle().Foreground(dim).Italic(true),
		panel:   lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(dim).Padding(0, 1),
		varName: lipgloss.NewStyle().Foreground(accent),
	}
}

// replKeyMap implements help.KeyMap so the bubbles help view renders the
// bindings itself.
type replKeyMap struct {
	Run      key.Binding
	PrevLine key.Binding
	NextLine key.Binding
	Complete key.Binding
	ClearLog key.Binding
	Vars     key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func (k replKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Run, k.Complete, k.Help, k.Quit}
}

func (k replKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Run, k.PrevLine, k.NextLine, k.Complete},
		{k.ClearLog, k.Vars, k.Help, k.Quit},
	}
}

func defaultKeyMap() replKeyMap {
	return replKeyMap{
		Run:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "run")),
		PrevLine: key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "recall previous")),
		NextLine: key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "recall next")),
		Complete: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "complete")),
		ClearLog: key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "clear log")),
		Vars:     key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("ctrl+g", "scope panel")),
		Help:     key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "more help")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c", "ctrl+d"), key.WithHelp("ctrl+c", "quit")),
	}
}

type replModel struct {
	input    textinput.Model
	helpView help.Model
	keys     replKeyMap
	styles   replStyles

	engine  *mython.Engine
	scope   mython.Scope
	pending []string

	transcript []transcriptLine
	entered    []string
	recall     int

	width    int
	height   int
	ready    bool
	showVars bool
	quitting bool
}

func newREPLModel() replModel {
	styles := defaultStyles()

	ti := textinput.New()
	ti.Prompt = promptMain
	ti.PromptStyle = styles.prompt
	ti.Placeholder = "print 'hello'"
	ti.CharLimit = 500
	ti.Focus()

	return replModel{
		input:    ti,
		helpView: help.New(),
		keys:     defaultKeyMap(),
		styles:   styles,
		engine:   mython.NewEngine(mython.Config{}),
		scope:    mython.NewScope(),
		recall:   -1,
	}
}

func (m replModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(20, msg.Width-len(promptMain)-2)
		m.helpView.Width = msg.Width
		m.ready = true
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.ClearLog):
			m.transcript = nil
			return m, nil
		case key.Matches(msg, m.keys.Vars):
			m.showVars = !m.showVars
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.helpView.ShowAll = !m.helpView.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.PrevLine):
			m.recallPrev()
			return m, nil
		case key.Matches(msg, m.keys.NextLine):
			m.recallNext()
			return m, nil
		case key.Matches(msg, m.keys.Complete):
			m.completeWord()
			return m, nil
		case key.Matches(msg, m.keys.Run):
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit consumes the current input line. A line ending in ':' opens a
// multi-line block that an empty line runs; ':'-prefixed words are REPL
// commands; everything else executes immediately.
func (m replModel) submit() (tea.Model, tea.Cmd) {
	line := strings.TrimRight(m.input.Value(), " ")
	trimmed := strings.TrimSpace(line)
	m.input.SetValue("")
	m.recall = -1

	switch {
	case len(m.pending) == 0 && strings.HasPrefix(trimmed, ":"):
		return m.runCommand(trimmed)

	case len(m.pending) > 0:
		if trimmed == "" {
			source := strings.Join(m.pending, "\n") + "\n"
			m.pending = nil
			m.input.Prompt = promptMain
			m.run(source)
		} else {
			m.pending = append(m.pending, line)
			m.entered = append(m.entered, line)
		}

	case trimmed == "":
		// Nothing to do.

	default:
		m.entered = append(m.entered, line)
		if strings.HasSuffix(trimmed, ":") {
			m.pending = append(m.pending, line)
			m.input.Prompt = promptMore
		} else {
			m.run(line + "\n")
		}
	}
	return m, nil
}

// run compiles and executes source against the session scope, logging
// the echo, the output, and any failure.
func (m *replModel) run(source string) {
	for _, line := range strings.Split(strings.TrimRight(source, "\n"), "\n") {
		m.say(roleInput, line)
	}

	program, err := m.engine.Compile(source)
	if err != nil {
		m.say(roleError, err.Error())
		return
	}

	var buf bytes.Buffer
	if err := program.Execute(m.scope, mython.NewContext(&buf)); err != nil {
		m.say(roleError, err.Error())
		return
	}

	output := strings.TrimRight(buf.String(), "\n")
	if output == "" {
		m.say(roleInfo, "(no output)")
		return
	}
	for _, line := range strings.Split(output, "\n") {
		m.say(roleOutput, line)
	}
}

func (m *replModel) say(role lineRole, text string) {
	m.transcript = append(m.transcript, transcriptLine{role: role, text: text})
}

func (m replModel) runCommand(input string) (tea.Model, tea.Cmd) {
	switch strings.Fields(input)[0] {
	case ":help", ":h":
		m.helpView.ShowAll = !m.helpView.ShowAll
	case ":clear", ":c":
		m.transcript = nil
	case ":vars", ":v":
		m.showVars = !m.showVars
	case ":reset", ":r":
		m.engine = mython.NewEngine(mython.Config{})
		m.scope = mython.NewScope()
		m.pending = nil
		m.input.Prompt = promptMain
		m.say(roleInfo, "scope reset")
	case ":quit", ":q":
		m.quitting = true
		return m, tea.Quit
	default:
		m.say(roleError, fmt.Sprintf("unknown command %s", input))
	}
	return m, nil
}

var replKeywords = []string{
	"class", "return", "if", "else", "def", "print",
	"and", "or", "not", "None", "True", "False", "self", "str",
}

// completeWord extends the word under the cursor from the keyword list
// and the names bound in the session scope.
func (m *replModel) completeWord() {
	input := m.input.Value()
	words := strings.Fields(input)
	if len(words) == 0 {
		return
	}
	lastWord := words[len(words)-1]

	var matches []string
	for _, kw := range replKeywords {
		if strings.HasPrefix(kw, lastWord) {
			matches = append(matches, kw)
		}
	}
	for name := range m.scope {
		if strings.HasPrefix(name, lastWord) {
			matches = append(matches, name)
		}
	}

	switch {
	case len(matches) == 1:
		m.input.SetValue(strings.TrimSuffix(input, lastWord) + matches[0])
		m.input.CursorEnd()
	case len(matches) > 1:
		sort.Strings(matches)
		m.say(roleInfo, "matches: "+strings.Join(matches, " "))
	}
}

func (m *replModel) recallPrev() {
	if len(m.entered) == 0 {
		return
	}
	if m.recall == -1 {
		m.recall = len(m.entered) - 1
	} else if m.recall > 0 {
		m.recall--
	}
	m.input.SetValue(m.entered[m.recall])
	m.input.CursorEnd()
}

func (m *replModel) recallNext() {
	if m.recall == -1 {
		return
	}
	if m.recall < len(m.entered)-1 {
		m.recall++
		m.input.SetValue(m.entered[m.recall])
	} else {
		m.recall = -1
		m.input.SetValue("")
	}
	m.input.CursorEnd()
}

func (m replModel) View() string {
	if !m.ready {
		return "starting..."
	}
	if m.quitting {
		return ""
	}

	banner := m.styles.banner.Render("mython") +
		m.styles.info.Render("  interactive session · :help for commands")
	inputLine := m.input.View()
	helpLine := m.helpView.View(m.keys)

	varsPanel := ""
	if m.showVars {
		varsPanel = m.renderScopePanel()
	}

	// Everything except the transcript is chrome; the transcript tail
	// fills whatever height remains.
	chrome := lipgloss.Height(banner) + lipgloss.Height(inputLine) + lipgloss.Height(helpLine) + 1
	if varsPanel != "" {
		chrome += lipgloss.Height(varsPanel)
	}
	visible := max(0, m.height-chrome)

	tail := m.transcript
	if len(tail) > visible {
		tail = tail[len(tail)-visible:]
	}
	var log strings.Builder
	for _, line := range tail {
		log.WriteString(m.renderLine(line))
		log.WriteByte('\n')
	}

	sections := []string{banner, log.String()}
	if varsPanel != "" {
		sections = append(sections, varsPanel)
	}
	sections = append(sections, inputLine, helpLine)
	return strings.Join(sections, "\n")
}

func (m replModel) renderLine(line transcriptLine) string {
	switch line.role {
	case roleInput:
		return m.styles.echo.Render("» " + line.text)
	case roleError:
		return m.styles.errline.Render("error: " + line.text)
	case roleInfo:
		return m.styles.info.Render(line.text)
	default:
		return m.styles.output.Render(line.text)
	}
}

func (m replModel) renderScopePanel() string {
	if len(m.scope) == 0 {
		return m.styles.panel.Render(m.styles.info.Render("scope is empty"))
	}

	names := make([]string, 0, len(m.scope))
	for name := range m.scope {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := make([]string, 0, len(names))
	for _, name := range names {
		rows = append(rows, m.styles.varName.Render(name)+" = "+m.scope[name].String())
	}
	return m.styles.panel.Render(strings.Join(rows, "\n"))
}

func runREPL() error {
	_, err := tea.NewProgram(newREPLModel()).Run()
	return err
}
