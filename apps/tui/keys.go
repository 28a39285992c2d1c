package main

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/trezcool/ratiba/core"
	"github.com/trezcool/ratiba/core/timetable"
)

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys (work in all modes)
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.mode == modeEdit {
		return m.handleEditKeys(msg)
	}
	return m.handleGridKeys(msg)
}

// handleGridKeys handles keys while moving over the grid.
func (m Model) handleGridKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	// Navigation
	case "h", "left":
		if m.cursor.Day > 0 {
			m.cursor.Day--
		}
	case "l", "right":
		if m.cursor.Day < timetable.DaysInWeek-1 {
			m.cursor.Day++
		}
	case "k", "up":
		if m.cursor.Period > 0 {
			m.cursor.Period--
		}
	case "j", "down":
		if m.cursor.Period < timetable.PeriodsPerDay-1 {
			m.cursor.Period++
		}

	// Editing
	case "e", "enter":
		return m.openEditor()
	case "c", "delete", "backspace":
		return m.clear(), nil
	}
	return m, nil
}

// handleEditKeys handles keys while the slot form is open.
func (m Model) handleEditKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeGrid
		m.errMsg = ""
		m.status = "edit canceled"
		return m, nil
	case "enter":
		return m.save()
	case "tab":
		cmd := m.focusField(m.focus + 1)
		return m, cmd
	case "shift+tab":
		cmd := m.focusField(m.focus - 1)
		return m, cmd
	case "up":
		if m.focus == fieldSubject {
			m.cycleSubject(-1)
			return m, nil
		}
		cmd := m.focusField(m.focus - 1)
		return m, cmd
	case "down":
		if m.focus == fieldSubject {
			m.cycleSubject(1)
			return m, nil
		}
		cmd := m.focusField(m.focus + 1)
		return m, cmd
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	if m.focus == fieldSubject {
		m.subjectIdx = -1
	}
	return m, cmd
}

// errorMessage returns what the form shows for `err`.
func errorMessage(err error) string {
	var vErr *core.ValidationError
	if errors.As(err, &vErr) && len(vErr.Fields) > 0 {
		return vErr.Fields[0].Error
	}
	if timetable.IsWriteFailed(err) {
		return "could not save the timetable: " + err.Error()
	}
	return err.Error()
}

// errorField returns the form field `err` is about, or -1.
func errorField(err error) int {
	var lErr *timetable.FieldLengthError
	if !errors.As(err, &lErr) {
		return -1
	}
	switch lErr.Field {
	case "teacher":
		return fieldTeacher
	case "room":
		return fieldRoom
	}
	return -1
}
