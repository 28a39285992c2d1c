package main

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/trezcool/ratiba/core/subject"
	"github.com/trezcool/ratiba/core/timetable"
	inmemdb "github.com/trezcool/ratiba/storage/database/inmem"
	testutil "github.com/trezcool/ratiba/tests"
)

func newTestModel(t *testing.T, files fstest.MapFS) (Model, *timetable.Store) {
	db, _ := inmemdb.Open()
	store := testutil.NewStore(t, inmemdb.NewTimetableRepository(db), testutil.NewLogger())
	return NewModel(store, subject.NewCatalog(files, "subject_list.txt"), testutil.NewLogger()), store
}

func subjectFiles() fstest.MapFS {
	return fstest.MapFS{"subject_list.txt": {Data: []byte("Mathematics\nEnglish\nGeography\n")}}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press sends the keys in order; a key of more than one rune that is not a named key is typed as text.
func press(t *testing.T, m Model, keys ...string) (Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(key(k))
		var ok bool
		if m, ok = next.(Model); !ok {
			t.Fatalf("Update() returned a %T", next)
		}
	}
	return m, cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestModel_navigation(t *testing.T) {
	tests := []struct {
		name string
		keys []string
		want [2]int
	}{
		{name: "start", want: [2]int{0, 0}},
		{name: "arrows", keys: []string{"right", "right", "down", "down", "down"}, want: [2]int{2, 3}},
		{name: "hjkl", keys: []string{"l", "l", "l", "j", "h", "k", "j"}, want: [2]int{2, 1}},
		{name: "left edge", keys: []string{"left", "h", "up", "k"}, want: [2]int{0, 0}},
		{name: "right edge", keys: []string{"l", "l", "l", "l", "l", "l", "l", "l", "j", "j", "j", "j", "j", "j", "j"}, want: [2]int{6, 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newTestModel(t, subjectFiles())
			m, _ = press(t, m, tt.keys...)
			if day, period := m.slot(); day != tt.want[0] || period != tt.want[1] {
				t.Errorf("cursor = (%d, %d); want (%d, %d)", day, period, tt.want[0], tt.want[1])
			}
		})
	}
}

func TestModel_quit(t *testing.T) {
	m, _ := newTestModel(t, subjectFiles())
	if _, cmd := press(t, m, "q"); !isQuit(cmd) {
		t.Error("q did not quit")
	}

	m, _ = press(t, m, "e")
	if _, cmd := press(t, m, "q"); isQuit(cmd) {
		t.Error("q quit while editing")
	}
	if _, cmd := press(t, m, "ctrl+c"); !isQuit(cmd) {
		t.Error("ctrl+c did not quit while editing")
	}
}

func TestModel_edit(t *testing.T) {
	m, store := newTestModel(t, subjectFiles())

	m, _ = press(t, m, "right", "right", "down", "down", "down", "e")
	if m.mode != modeEdit {
		t.Fatal("e did not open the editor")
	}
	if got := m.subjects; len(got) != 3 {
		t.Errorf("subjects = %q; want the subject list", got)
	}

	// down picks the first subject, then the next one; up goes back
	m, _ = press(t, m, "down", "down", "up")
	if got := m.inputs[fieldSubject].Value(); got != "Mathematics" {
		t.Errorf("subject = %q; want %q", got, "Mathematics")
	}

	m, _ = press(t, m, "tab", "Mr Smith", "tab", "B12", "enter")
	if m.mode != modeGrid {
		t.Fatalf("enter did not close the editor: %q", m.errMsg)
	}

	want := timetable.Lesson{Subject: "Mathematics", Teacher: "Mr Smith", Room: "B12"}
	if got, _ := store.Slot(2, 3); got != want {
		t.Errorf("slot (2, 3) = %v; want %v", got, want)
	}
	if grid, _ := store.Load(context.Background()); grid[15] != want {
		t.Errorf("persisted lesson #15 = %v; want %v", grid[15], want)
	}
	if !strings.Contains(m.View(), "Wednesday, period 3 saved") {
		t.Errorf("View() does not report the save:\n%s", m.View())
	}
}

func TestModel_edit_prefillAndBlankFields(t *testing.T) {
	m, store := newTestModel(t, subjectFiles())
	testutil.SetSlot(t, store, 0, 0, "English", "Mrs Doe", "A1")

	m, _ = press(t, m, "enter")
	if got := m.inputs[fieldTeacher].Value(); got != "Mrs Doe" {
		t.Errorf("teacher input = %q; want the current teacher", got)
	}
	if m.subjectIdx != 1 {
		t.Errorf("subjectIdx = %d; want the current subject's index", m.subjectIdx)
	}

	// emptied fields are saved as blanks
	m.inputs[fieldTeacher].SetValue("")
	m.inputs[fieldRoom].SetValue("  ")
	m, _ = press(t, m, "enter")

	want := timetable.Lesson{Subject: "English", Teacher: timetable.Blank, Room: timetable.Blank}
	if got, _ := store.Slot(0, 0); got != want {
		t.Errorf("slot (0, 0) = %v; want %v", got, want)
	}
}

func TestModel_edit_validation(t *testing.T) {
	m, store := newTestModel(t, subjectFiles())

	m, _ = press(t, m, "e", "Art", "tab", strings.Repeat("t", 31), "tab", strings.Repeat("r", 21), "enter")
	if m.mode != modeEdit {
		t.Fatal("an invalid lesson closed the editor")
	}
	if m.errMsg != "teacher must be at most 30 characters" {
		t.Errorf("errMsg = %q", m.errMsg)
	}
	if m.focus != fieldTeacher {
		t.Errorf("focus = %d; want the teacher field", m.focus)
	}
	if !strings.Contains(m.View(), "teacher must be at most 30 characters") {
		t.Errorf("View() does not show the validation message:\n%s", m.View())
	}
	if got, _ := store.Slot(0, 0); !got.IsBlank() {
		t.Errorf("slot (0, 0) = %v; want blank", got)
	}

	m.inputs[fieldTeacher].SetValue("Mr Smith")
	m, _ = press(t, m, "enter")
	if m.errMsg != "room must be at most 20 characters" || m.focus != fieldRoom {
		t.Errorf("errMsg = %q, focus = %d; want the room error", m.errMsg, m.focus)
	}
}

func TestModel_edit_cancel(t *testing.T) {
	m, store := newTestModel(t, subjectFiles())

	m, _ = press(t, m, "e", "Art", "esc")
	if m.mode != modeGrid || m.status != "edit canceled" {
		t.Errorf("mode = %d, status = %q; want the grid back", m.mode, m.status)
	}
	if got, _ := store.Slot(0, 0); !got.IsBlank() {
		t.Errorf("slot (0, 0) = %v; want blank", got)
	}
}

func TestModel_edit_noSubjectList(t *testing.T) {
	m, store := newTestModel(t, fstest.MapFS{})

	m, _ = press(t, m, "e")
	if m.mode != modeEdit || len(m.subjects) != 0 {
		t.Fatalf("mode = %d, subjects = %q; want an empty editor", m.mode, m.subjects)
	}
	if !strings.Contains(m.status, "subject list not available") {
		t.Errorf("status = %q", m.status)
	}

	m, _ = press(t, m, "down", "Biology", "enter")
	if got, _ := store.Slot(0, 0); got.Subject != "Biology" {
		t.Errorf("slot (0, 0) = %v; want the typed subject", got)
	}
}

func TestModel_clear(t *testing.T) {
	m, store := newTestModel(t, subjectFiles())
	testutil.SetSlot(t, store, 1, 0, "English", "Mrs Doe", "A1")

	m, _ = press(t, m, "l", "c")
	if got, _ := store.Slot(1, 0); !got.IsBlank() {
		t.Errorf("slot (1, 0) = %v; want blank", got)
	}
	if m.status != "Tuesday, period 0 cleared" {
		t.Errorf("status = %q", m.status)
	}
}

func TestModel_windowSize(t *testing.T) {
	m, _ := newTestModel(t, subjectFiles())
	next, _ := m.Update(tea.WindowSizeMsg{Width: 144, Height: 50})
	if m = next.(Model); m.width != 144 {
		t.Errorf("width = %d; want 144", m.width)
	}
	if !strings.Contains(m.View(), "Wednesday") {
		t.Errorf("View() does not show the grid:\n%s", m.View())
	}
}
