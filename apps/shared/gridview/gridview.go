package gridview

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/trezcool/ratiba/core/timetable"
)

const (
	DefaultCellWidth = 14
	MinCellWidth     = 6
	labelWidth       = 4
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Align(lipgloss.Center)
	labelStyle  = lipgloss.NewStyle().Faint(true).Width(labelWidth)
	cellStyle   = lipgloss.NewStyle()
	cursorStyle = lipgloss.NewStyle().Reverse(true)
	gapStyle    = lipgloss.NewStyle().PaddingRight(1)
)

// Slot is a (day, period) coordinate of the grid.
type Slot struct {
	Day    int
	Period int
}

// Options tune the rendering of a Grid.
type Options struct {
	// Width is the total width available; 0 renders DefaultCellWidth wide cells.
	Width int
	// Days restricts the rendered columns; nil renders the whole week.
	Days []int
	// Cursor highlights a slot.
	Cursor *Slot
}

func (o Options) days() []int {
	if len(o.Days) > 0 {
		return o.Days
	}
	days := make([]int, timetable.DaysInWeek)
	for d := range days {
		days[d] = d
	}
	return days
}

// CellWidth is the width of each day column, gap excluded.
func (o Options) CellWidth() int {
	if o.Width <= 0 {
		return DefaultCellWidth
	}
	days := len(o.days())
	w := (o.Width-labelWidth)/days - 1
	if w < MinCellWidth {
		return MinCellWidth
	}
	return w
}

// truncate cuts `s` to `width` terminal cells, marking cut text with an ellipsis.
func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	tail := "…"
	limit := width - lipgloss.Width(tail)
	if limit < 1 {
		tail, limit = "", width
	}

	var b strings.Builder
	w := 0
	for _, r := range s {
		rw := lipgloss.Width(string(r))
		if w+rw > limit {
			break
		}
		b.WriteRune(r)
		w += rw
	}
	return b.String() + tail
}

// field renders a Lesson field; blank placeholders render as nothing.
func field(s string) string {
	if s == timetable.Blank {
		return ""
	}
	return s
}

// Cell renders a Lesson as 3 lines: subject, teacher, room.
func Cell(lsn timetable.Lesson, width int) string {
	lines := []string{
		truncate(field(lsn.Subject), width),
		truncate(field(lsn.Teacher), width),
		truncate(field(lsn.Room), width),
	}
	return strings.Join(lines, "\n")
}

// Render draws the Grid with one column per day and one row per period.
func Render(grid timetable.Grid, opts Options) string {
	width := opts.CellWidth()
	days := opts.days()

	header := []string{labelStyle.Render("")}
	for _, d := range days {
		name := timetable.DayNames[d]
		if width < len(name) {
			name = name[:3]
		}
		header = append(header, gapStyle.Render(headerStyle.Width(width).Render(name)))
	}
	rows := []string{lipgloss.JoinHorizontal(lipgloss.Top, header...)}

	for period := 0; period < timetable.PeriodsPerDay; period++ {
		row := []string{labelStyle.Render(strconv.Itoa(period))}
		for _, day := range days {
			var lsn timetable.Lesson
			if idx := timetable.Index(day, period); idx < len(grid) {
				lsn = grid[idx]
			} else {
				lsn = timetable.BlankLesson()
			}

			style := cellStyle
			if opts.Cursor != nil && opts.Cursor.Day == day && opts.Cursor.Period == period {
				style = cursorStyle
			}
			row = append(row, gapStyle.Render(style.Width(width).Height(3).Render(Cell(lsn, width))))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
