package timetable

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/trezcool/ratiba/core"
)

const (
	DaysInWeek    = 7
	PeriodsPerDay = 6
	GridSize      = DaysInWeek * PeriodsPerDay

	MaxTeacherLen = 30
	MaxRoomLen    = 20

	// Blank is the placeholder of every unset Lesson field.
	Blank = " "
)

var DayNames = [DaysInWeek]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// Lesson is what is taught in a slot of the Grid.
type Lesson struct {
	Subject string `json:"subject"`
	Teacher string `json:"teacher"`
	Room    string `json:"room"`
}

func BlankLesson() Lesson {
	return Lesson{Subject: Blank, Teacher: Blank, Room: Blank}
}

func (l Lesson) IsBlank() bool {
	return l == BlankLesson()
}

// Grid holds the lessons of a week, day by day: see Index.
type Grid []Lesson

func (g Grid) copy() Grid {
	c := make(Grid, len(g))
	copy(c, g)
	return c
}

// NewLesson contains information needed to assign a Lesson to a slot.
type NewLesson struct {
	Subject string `json:"subject"`
	Teacher string `json:"teacher" validate:"max=30"`
	Room    string `json:"room" validate:"max=20"`
}

// lesson maps unset (empty) fields to Blank.
func (nl NewLesson) lesson() Lesson {
	return Lesson{Subject: orBlank(nl.Subject), Teacher: orBlank(nl.Teacher), Room: orBlank(nl.Room)}
}

func orBlank(s string) string {
	if s == "" {
		return Blank
	}
	return s
}

// Index maps a slot to its position in the Grid.
func Index(day, period int) int {
	return day*PeriodsPerDay + period
}

// Position is the inverse of Index.
func Position(index int) (day, period int) {
	return index / PeriodsPerDay, index % PeriodsPerDay
}

// CheckSlot returns a *core.ArgumentError if (day, period) is not a slot of the Grid.
func CheckSlot(day, period int) error {
	if day < 0 || day >= DaysInWeek {
		return core.NewArgumentError(fmt.Sprintf("day must be between 0 and %d, got %d", DaysInWeek-1, day))
	}
	if period < 0 || period >= PeriodsPerDay {
		return core.NewArgumentError(fmt.Sprintf("period must be between 0 and %d, got %d", PeriodsPerDay-1, period))
	}
	return nil
}

// ParseDay accepts a day index ("0".."6"), a day name or its first 3 letters (case-insensitive).
func ParseDay(s string) (int, error) {
	s = core.CleanString(s, true /* lower */)
	if day, err := strconv.Atoi(s); err == nil {
		if err := CheckSlot(day, 0); err != nil {
			return 0, err
		}
		return day, nil
	}
	if len(s) >= 3 {
		for day, name := range DayNames {
			if strings.HasPrefix(strings.ToLower(name), s) {
				return day, nil
			}
		}
	}
	return 0, core.NewArgumentError(fmt.Sprintf("unknown day %q", s))
}

// ParsePeriod accepts a period index ("0".."5").
func ParsePeriod(s string) (int, error) {
	period, err := strconv.Atoi(core.CleanString(s))
	if err != nil {
		return 0, core.NewArgumentError(fmt.Sprintf("unknown period %q", s))
	}
	if err := CheckSlot(0, period); err != nil {
		return 0, err
	}
	return period, nil
}
