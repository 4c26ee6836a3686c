// Package tui is an interactive findings browser: a table of findings with a
// detail pane showing syntax-highlighted file context for the selection.
package tui

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/stackaudit/stackaudit/internal/types"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true).
			Padding(0, 1)

	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("7")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("7"))

	hintStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	detailBorderStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(lipgloss.Color("240"))

	focusLineStyle = lipgloss.NewStyle().Background(lipgloss.Color("236"))
)

// severityText returns plain text for severity (ANSI codes break table truncation).
func severityText(s types.Severity) string {
	switch s {
	case types.SevCritical:
		return "CRIT"
	case types.SevHigh:
		return "HIGH"
	case types.SevMedium:
		return "MED"
	case types.SevLow:
		return "LOW"
	case types.SevInfo:
		return "INFO"
	}
	return string(s)
}

// filter cycle order for the 'f' key. Empty means no filter.
var filterCycle = []types.Severity{"", types.SevCritical, types.SevHigh, types.SevMedium, types.SevLow, types.SevInfo}

// Model is the bubbletea state for the findings browser.
type Model struct {
	table    table.Model
	viewport viewport.Model
	findings []types.Finding
	visible  []types.Finding

	severityFilter types.Severity
	statusMessage  string
	showHelp       bool
	ready          bool
	width          int
	height         int
}

// NewModel builds the browser over an already-summarized findings list.
func NewModel(findings []types.Finding) Model {
	m := Model{findings: findings}
	m.table = table.New(
		table.WithColumns(columns(80)),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	s := table.DefaultStyles()
	s.Header = lipgloss.NewStyle().
		Background(lipgloss.Color("235")).
		Foreground(lipgloss.Color("15")).
		Bold(true).
		Padding(0, 1)
	s.Selected = lipgloss.NewStyle().
		Background(lipgloss.Color("238")).
		Foreground(lipgloss.Color("15"))
	m.table.SetStyles(s)
	m.applyFilter()
	return m
}

func columns(width int) []table.Column {
	pathW := width - 8 - 24 - 6
	if pathW < 20 {
		pathW = 20
	}
	return []table.Column{
		{Title: "Sev", Width: 6},
		{Title: "Rule", Width: 24},
		{Title: "Location", Width: pathW / 2},
		{Title: "Snippet", Width: pathW / 2},
	}
}

func (m *Model) applyFilter() {
	m.visible = m.visible[:0]
	for _, f := range m.findings {
		if m.severityFilter != "" && f.Severity != m.severityFilter {
			continue
		}
		m.visible = append(m.visible, f)
	}
	rows := make([]table.Row, len(m.visible))
	for i, f := range m.visible {
		rows[i] = table.Row{severityText(f.Severity), f.Rule, location(f), f.Snippet}
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(0)
	}
	m.updateDetail()
}

func (m *Model) cycleFilter() {
	for i, s := range filterCycle {
		if s == m.severityFilter {
			m.severityFilter = filterCycle[(i+1)%len(filterCycle)]
			break
		}
	}
	m.applyFilter()
	if m.severityFilter == "" {
		m.statusMessage = "filter cleared"
	} else {
		m.statusMessage = "filter: " + string(m.severityFilter)
	}
}

func (m *Model) selected() *types.Finding {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.visible) {
		return nil
	}
	return &m.visible[idx]
}

func location(f types.Finding) string {
	if f.Line > 0 {
		return fmt.Sprintf("%s:%d", f.Path, f.Line)
	}
	return f.Path
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "?":
			m.showHelp = true
			return m, nil
		case "f":
			m.cycleFilter()
			return m, nil
		case "y":
			if f := m.selected(); f != nil {
				if err := clipboard.WriteAll(f.Path); err != nil {
					m.statusMessage = "clipboard unavailable"
				} else {
					m.statusMessage = "path copied"
				}
			}
			return m, nil
		case "Y":
			if f := m.selected(); f != nil {
				detail := fmt.Sprintf("%s %s %s %s", location(*f), f.Rule, f.Severity, f.Snippet)
				if err := clipboard.WriteAll(detail); err != nil {
					m.statusMessage = "clipboard unavailable"
				} else {
					m.statusMessage = "finding copied"
				}
			}
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.ready = true
		tableHeight := m.height / 2
		if tableHeight < 5 {
			tableHeight = 5
		}
		m.table.SetColumns(columns(m.width))
		m.table.SetHeight(tableHeight)
		m.viewport = viewport.New(m.width-2, m.height-tableHeight-4)
	}

	m.table, cmd = m.table.Update(msg)
	m.updateDetail()
	return m, cmd
}

func (m *Model) updateDetail() {
	if !m.ready {
		return
	}
	f := m.selected()
	if f == nil {
		m.viewport.SetContent(hintStyle.Render("no findings"))
		return
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("Finding") + "\n\n")
	b.WriteString(fmt.Sprintf("%s %s\n", keyStyle.Render("Location:"), location(*f)))
	b.WriteString(fmt.Sprintf("%s %s\n", keyStyle.Render("Rule:"), f.Rule))
	b.WriteString(fmt.Sprintf("%s %s\n", keyStyle.Render("Severity:"), f.Severity))
	b.WriteString(fmt.Sprintf("%s %s\n", keyStyle.Render("Category:"), f.Category))
	b.WriteString(fmt.Sprintf("%s %s\n", keyStyle.Render("Snippet:"), f.Snippet))

	if lines, start, err := readFileContext(f.Path, f.Line, 3); err == nil && len(lines) > 0 {
		b.WriteString("\n" + keyStyle.Render("Context:") + "\n")
		lineNum := hintStyle
		for i, line := range lines {
			n := start + i
			prefix := lineNum.Render(fmt.Sprintf("%4d ", n))
			rendered := highlightLine(line, f.Path)
			if n == f.Line {
				rendered = focusLineStyle.Render(rendered)
			}
			b.WriteString(prefix + rendered + "\n")
		}
	}
	m.viewport.SetContent(b.String())
}

func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}
	if m.showHelp {
		return titleStyle.Render("stackaudit") + "\n\n" +
			"  up/down  move selection\n" +
			"  f        cycle severity filter\n" +
			"  y        copy file path\n" +
			"  Y        copy finding details\n" +
			"  ?        toggle this help\n" +
			"  q        quit\n"
	}
	status := fmt.Sprintf(" %d/%d findings ", len(m.visible), len(m.findings))
	if m.severityFilter != "" {
		status += "[" + string(m.severityFilter) + "] "
	}
	if m.statusMessage != "" {
		status += "| " + m.statusMessage + " "
	}
	return m.table.View() + "\n" +
		detailBorderStyle.Render(m.viewport.View()) + "\n" +
		statusStyle.Render(status)
}

// readFileContext returns n lines around line (1-based) from path. Virtual
// paths (image::env) and whole-file findings yield no context.
func readFileContext(path string, line, n int) ([]string, int, error) {
	if line <= 0 || strings.Contains(path, "::") {
		return nil, 0, fmt.Errorf("no file context")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	start := line - n
	if start < 1 {
		start = 1
	}
	end := line + n

	var out []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	cur := 0
	for sc.Scan() {
		cur++
		if cur < start {
			continue
		}
		if cur > end {
			break
		}
		out = append(out, sc.Text())
	}
	return out, start, sc.Err()
}

func highlightLine(line, filename string) string {
	lexer := lexers.Match(filename)
	if lexer == nil {
		return line
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get("monokai")
	if style == nil {
		style = styles.Fallback
	}
	formatter := formatters.Get("terminal256")
	if formatter == nil {
		return line
	}
	iterator, err := lexer.Tokenise(nil, line)
	if err != nil {
		return line
	}
	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return line
	}
	return strings.TrimSuffix(buf.String(), "\n")
}
