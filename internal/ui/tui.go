// Package ui provides an optional terminal viewer for task lists.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ticklist/ticklist-go/internal/docstore"
	"github.com/ticklist/ticklist-go/internal/tasklist"
)

// RunTUI starts a terminal viewer on the task file at path.
func RunTUI(ctx context.Context, path string) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}
	model := newTUIModel(path)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	finalModel, err := program.Run()
	if err != nil {
		return err
	}
	if m, ok := finalModel.(*tuiModel); ok && m.markErr != nil {
		return m.markErr
	}
	return nil
}

type tuiModel struct {
	path         string
	loadErr      error
	markErr      error
	data         *tuiData
	filteredData *tuiData
	tickInterval time.Duration
	filter       tasklist.Status
	showHelp     bool
	notice       string
}

type tuiData struct {
	pending   int
	completed int
	nextLabel string
	next      *tasklist.Record
	allDone   bool
	recent    []tasklist.Record
}

type tickMsg time.Time

func newTUIModel(path string) *tuiModel {
	return &tuiModel{
		path:         path,
		tickInterval: time.Second,
	}
}

func (m *tuiModel) Init() tea.Cmd {
	m.refresh()
	return tickCmd(m.tickInterval)
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r", "f5":
			m.refresh()
			return m, nil
		case "d":
			m.markNextDone()
			m.refresh()
			return m, nil
		case "h", "?":
			m.showHelp = !m.showHelp
			return m, nil
		case "1":
			m.filter = tasklist.StatusPending
			m.applyFilter()
			return m, nil
		case "2":
			m.filter = tasklist.StatusCompleted
			m.applyFilter()
			return m, nil
		case "0":
			m.filter = ""
			m.filteredData = nil
			return m, nil
		}
	case tickMsg:
		m.refresh()
		return m, tickCmd(m.tickInterval)
	}
	return m, nil
}

func (m *tuiModel) View() string {
	var b strings.Builder
	writeTitle(&b)

	if m.showHelp {
		writeHelp(&b)
		writeFooter(&b, m.tickInterval)
		return b.String()
	}

	if m.filter != "" {
		b.WriteString(fmt.Sprintf("Filter: %s (0 to clear)\n\n", m.filter))
	}
	if m.notice != "" {
		b.WriteString(m.notice + "\n\n")
	}

	if m.loadErr != nil {
		b.WriteString("Error loading task file:\n")
		b.WriteString("  " + m.loadErr.Error() + "\n\n")
		writeFooter(&b, m.tickInterval)
		return b.String()
	}
	if m.data == nil {
		b.WriteString("Loading...\n\n")
		writeFooter(&b, m.tickInterval)
		return b.String()
	}

	displayData := m.data
	if m.filteredData != nil {
		displayData = m.filteredData
	}

	writeOverview(&b, displayData)
	writeNextTask(&b, displayData)
	writeRecent(&b, displayData)
	b.WriteString("Task File\n\n")
	b.WriteString("  " + m.path + "\n\n")
	writeFooter(&b, m.tickInterval)
	return b.String()
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *tuiModel) refresh() {
	text, err := docstore.Load(m.path)
	if err != nil {
		m.loadErr = err
		m.data = nil
		return
	}
	m.loadErr = nil
	m.data = buildTUIData(tasklist.Parse(text))
	m.applyFilter()
}

// markNextDone completes the first pending task and saves the file.
func (m *tuiModel) markNextDone() {
	text, err := docstore.Load(m.path)
	if err != nil {
		m.notice = "Cannot load: " + err.Error()
		return
	}
	records := tasklist.Parse(text)
	next := tasklist.SelectNext(records, "")
	if len(next) == 0 {
		m.notice = "No pending tasks to complete."
		return
	}
	updated, err := tasklist.MarkCompleted(records, next[0].Seq)
	if err != nil {
		m.notice = "Cannot complete: " + err.Error()
		return
	}
	if err := docstore.Save(m.path, tasklist.Serialize(updated)); err != nil {
		m.markErr = err
		m.notice = "Cannot save: " + err.Error()
		return
	}
	m.notice = fmt.Sprintf("Completed task %d.", next[0].Seq)
}

func (m *tuiModel) applyFilter() {
	if m.data == nil || m.filter == "" {
		m.filteredData = nil
		return
	}

	filtered := &tuiData{
		nextLabel: m.data.nextLabel,
		allDone:   m.data.allDone,
	}
	switch m.filter {
	case tasklist.StatusPending:
		filtered.pending = m.data.pending
		filtered.next = m.data.next
	case tasklist.StatusCompleted:
		filtered.completed = m.data.completed
		filtered.recent = m.data.recent
	}
	m.filteredData = filtered
}

func buildTUIData(records []tasklist.Record) *tuiData {
	data := &tuiData{
		pending:   tasklist.CountByStatus(records, tasklist.StatusPending),
		completed: tasklist.CountByStatus(records, tasklist.StatusCompleted),
	}

	if next := tasklist.SelectNext(records, ""); len(next) > 0 {
		data.nextLabel = "Next Task"
		data.next = &next[0]
	} else {
		data.nextLabel = "All Tasks Done"
		data.allDone = true
	}

	sorted := tasklist.CloneAll(records)
	sort.Slice(sorted, func(i, j int) bool {
		left := sorted[i].CompletedAt
		right := sorted[j].CompletedAt
		if left == nil && right == nil {
			return false
		}
		if left == nil {
			return false
		}
		if right == nil {
			return true
		}
		return left.After(*right)
	})

	for _, rec := range sorted {
		if rec.Status != tasklist.StatusCompleted {
			continue
		}
		data.recent = append(data.recent, rec)
		if len(data.recent) >= 5 {
			break
		}
	}

	return data
}

func writeTitle(b *strings.Builder) {
	title := "Ticklist TUI"
	b.WriteString(title + "\n")
	b.WriteString(strings.Repeat("=", len(title)) + "\n\n")
}

func writeOverview(b *strings.Builder, data *tuiData) {
	b.WriteString("Task Overview\n\n")
	b.WriteString(fmt.Sprintf("  Pending: %d  Completed: %d\n\n", data.pending, data.completed))
}

func writeNextTask(b *strings.Builder, data *tuiData) {
	b.WriteString(data.nextLabel + "\n\n")
	if data.allDone {
		b.WriteString("  No pending tasks remaining.\n\n")
		return
	}
	if data.next != nil {
		b.WriteString(formatRecord(*data.next))
		b.WriteString("\n\n")
		return
	}
	b.WriteString("  No task selected.\n\n")
}

func writeRecent(b *strings.Builder, data *tuiData) {
	b.WriteString("Recently Completed\n\n")
	if len(data.recent) == 0 {
		b.WriteString("  No completed tasks yet.\n\n")
		return
	}
	for _, rec := range data.recent {
		b.WriteString(formatRecord(rec))
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

func writeHelp(b *strings.Builder) {
	b.WriteString("Keyboard Shortcuts\n\n")
	b.WriteString("  q, ctrl+c    Quit\n")
	b.WriteString("  r, F5        Refresh data\n")
	b.WriteString("  d            Complete the next task\n")
	b.WriteString("  h, ?         Toggle this help screen\n")
	b.WriteString("  1            Filter by pending\n")
	b.WriteString("  2            Filter by completed\n")
	b.WriteString("  0            Clear filter\n\n")
}

func writeFooter(b *strings.Builder, interval time.Duration) {
	b.WriteString(fmt.Sprintf("Press h for help | q to quit | Refreshing every %s\n", interval))
}

func formatRecord(rec tasklist.Record) string {
	marker := " "
	if rec.Status == tasklist.StatusCompleted {
		marker = "x"
	}
	line := fmt.Sprintf("  [%s] %d. %s", marker, rec.Seq, rec.Description)
	if len(rec.Meta) > 0 {
		line += fmt.Sprintf("\n      %s: %s", rec.Meta[0].Key, rec.Meta[0].Value)
	}
	return line
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
