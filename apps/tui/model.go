package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kat-co/vala"

	"github.com/trezcool/ratiba/apps/shared/gridview"
	"github.com/trezcool/ratiba/core"
	"github.com/trezcool/ratiba/core/subject"
	"github.com/trezcool/ratiba/core/timetable"
)

type mode int

const (
	modeGrid mode = iota
	modeEdit
)

// form fields, in focus order
const (
	fieldSubject = iota
	fieldTeacher
	fieldRoom
	fieldCount
)

var (
	fieldLabels = [fieldCount]string{"Subject", "Teacher", "Room"}

	titleStyle  = lipgloss.NewStyle().Bold(true)
	helpStyle   = lipgloss.NewStyle().Faint(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	labelStyle  = lipgloss.NewStyle().Width(9)
)

// Model is the grid editor: a cursor over the Grid and a form to edit the selected slot.
type Model struct {
	store   *timetable.Store
	catalog *subject.Catalog
	logger  core.Logger

	cursor gridview.Slot
	width  int
	mode   mode

	inputs     [fieldCount]textinput.Model
	focus      int
	subjects   []string
	subjectIdx int

	status string
	errMsg string
}

func NewModel(store *timetable.Store, catalog *subject.Catalog, logger core.Logger) Model {
	vala.BeginValidation().Validate(
		vala.IsNotNil(store, "store"),
		vala.IsNotNil(catalog, "catalog"),
		vala.IsNotNil(logger, "logger"),
	).CheckAndPanic()

	m := Model{
		store:      store,
		catalog:    catalog,
		logger:     logger,
		subjectIdx: -1,
	}
	for i := range m.inputs {
		input := textinput.New()
		input.Prompt = ""
		input.Width = 32
		m.inputs[i] = input
	}
	m.inputs[fieldSubject].Placeholder = "up/down to pick from the subject list"
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}
	return m, nil
}

func (m Model) slot() (day, period int) {
	return m.cursor.Day, m.cursor.Period
}

// fieldValue maps an empty input to the blank placeholder.
func fieldValue(input textinput.Model) string {
	if v := core.CleanString(input.Value()); v != "" {
		return v
	}
	return timetable.Blank
}

// inputValue maps the blank placeholder to an empty input.
func inputValue(s string) string {
	if s == timetable.Blank {
		return ""
	}
	return s
}

// openEditor fills the form with the selected slot and (re)loads the subject list.
func (m Model) openEditor() (Model, tea.Cmd) {
	lsn, err := m.store.Slot(m.slot())
	if err != nil {
		m.errMsg = err.Error()
		return m, nil
	}

	m.status, m.errMsg = "", ""
	m.subjects, err = m.catalog.Load()
	if err != nil {
		if err != subject.ErrNotFound {
			m.logger.Warn("loading subjects", err)
		}
		m.status = "subject list not available: type the subject"
	}

	m.subjectIdx = -1
	for i, s := range m.subjects {
		if s == lsn.Subject {
			m.subjectIdx = i
			break
		}
	}

	m.inputs[fieldSubject].SetValue(inputValue(lsn.Subject))
	m.inputs[fieldTeacher].SetValue(inputValue(lsn.Teacher))
	m.inputs[fieldRoom].SetValue(inputValue(lsn.Room))
	m.mode = modeEdit
	cmd := m.focusField(fieldSubject)
	return m, cmd
}

func (m *Model) focusField(field int) tea.Cmd {
	m.focus = (field + fieldCount) % fieldCount
	var cmd tea.Cmd
	for i := range m.inputs {
		if i == m.focus {
			cmd = m.inputs[i].Focus()
			m.inputs[i].CursorEnd()
		} else {
			m.inputs[i].Blur()
		}
	}
	return cmd
}

// cycleSubject replaces the subject with the previous (-1) or next (+1) catalog entry.
func (m *Model) cycleSubject(step int) {
	n := len(m.subjects)
	if n == 0 {
		return
	}
	switch {
	case m.subjectIdx < 0 && step > 0:
		m.subjectIdx = 0
	case m.subjectIdx < 0:
		m.subjectIdx = n - 1
	default:
		m.subjectIdx = (m.subjectIdx + step + n) % n
	}
	m.inputs[fieldSubject].SetValue(m.subjects[m.subjectIdx])
	m.inputs[fieldSubject].CursorEnd()
}

func (m Model) save() (Model, tea.Cmd) {
	day, period := m.slot()
	nl := timetable.NewLesson{
		Subject: fieldValue(m.inputs[fieldSubject]),
		Teacher: fieldValue(m.inputs[fieldTeacher]),
		Room:    fieldValue(m.inputs[fieldRoom]),
	}
	if _, err := m.store.SetSlot(context.Background(), day, period, nl); err != nil {
		m.errMsg = errorMessage(err)
		if fld := errorField(err); fld >= 0 {
			cmd := m.focusField(fld)
			return m, cmd
		}
		return m, nil
	}

	m.mode = modeGrid
	m.errMsg = ""
	m.status = fmt.Sprintf("%s, period %d saved", timetable.DayNames[day], period)
	return m, nil
}

func (m Model) clear() Model {
	day, period := m.slot()
	if err := m.store.ClearSlot(context.Background(), day, period); err != nil {
		m.errMsg = errorMessage(err)
		return m
	}
	m.errMsg = ""
	m.status = fmt.Sprintf("%s, period %d cleared", timetable.DayNames[day], period)
	return m
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Timetable"))
	b.WriteString("\n\n")
	b.WriteString(gridview.Render(m.store.Grid(), gridview.Options{Width: m.width, Cursor: &m.cursor}))
	b.WriteString("\n\n")

	day, period := m.slot()
	if m.mode == modeEdit {
		b.WriteString(titleStyle.Render(fmt.Sprintf("%s, period %d", timetable.DayNames[day], period)))
		b.WriteString("\n")
		for i, input := range m.inputs {
			b.WriteString(labelStyle.Render(fieldLabels[i]))
			b.WriteString(input.View())
			b.WriteString("\n")
		}
		b.WriteString(helpStyle.Render("tab: next field • up/down: pick subject • enter: save • esc: cancel"))
	} else {
		b.WriteString(helpStyle.Render("arrows/hjkl: move • e/enter: edit • c: clear • q: quit"))
	}
	b.WriteString("\n")

	if m.errMsg != "" {
		b.WriteString(errorStyle.Render(m.errMsg))
		b.WriteString("\n")
	} else if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}
	return b.String()
}
