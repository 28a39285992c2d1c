package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/jmoiron/sqlx"
	"golang.org/x/term"

	"github.com/trezcool/ratiba/core"
	"github.com/trezcool/ratiba/core/subject"
	"github.com/trezcool/ratiba/core/timetable"
)

var (
	termWidthFunc = terminalWidth // mockable

	errHelp = errors.New("help provided")
)

// terminalWidth returns the width of stdout, or 0 when it is not a terminal.
func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}
	width, _, err := term.GetSize(fd)
	if err != nil {
		return 0
	}
	return width
}

type commandLine struct {
	out     io.Writer
	logger  core.Logger
	storage string
	store   *timetable.Store
	catalog *subject.Catalog
	openDB  func() (*sqlx.DB, error)
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  show [-day DAY]                                              - print the timetable (of a single day)")
	fmt.Fprintln(cli.out, "  set -day DAY -period PERIOD -subject S [-teacher T] [-room R] - assign a lesson to a slot")
	fmt.Fprintln(cli.out, "  clear -day DAY -period PERIOD                                - blank a slot")
	fmt.Fprintln(cli.out, "  subjects                                                     - list the selectable subjects")
	fmt.Fprintln(cli.out, "  migrate COMMAND [ARGS...]                                    - run database migrations (database storage)")
	fmt.Fprintln(cli.out, "DAY is monday..sunday, mon..sun or 0..6; PERIOD is 0..5")
}

func (cli *commandLine) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(cli.out)
	return fs
}

func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return errHelp
		}
		return err
	}
	return nil
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	showCmd := cli.newFlagSet("show")
	showDay := showCmd.String("day", "", "Only show this day.")

	setCmd := cli.newFlagSet("set")
	setDay := setCmd.String("day", "", "The day of the slot.")
	setPeriod := setCmd.String("period", "", "The period of the slot.")
	setSubject := setCmd.String("subject", "", "The subject taught.")
	setTeacher := setCmd.String("teacher", timetable.Blank, fmt.Sprintf("The teacher (at most %d characters).", timetable.MaxTeacherLen))
	setRoom := setCmd.String("room", timetable.Blank, fmt.Sprintf("The room (at most %d characters).", timetable.MaxRoomLen))

	clearCmd := cli.newFlagSet("clear")
	clearDay := clearCmd.String("day", "", "The day of the slot.")
	clearPeriod := clearCmd.String("period", "", "The period of the slot.")

	switch args[1] {
	case "show":
		if err := parseFlags(showCmd, args[2:]); err != nil {
			return err
		}
		return cli.show(*showDay)

	case "set":
		if err := parseFlags(setCmd, args[2:]); err != nil {
			return err
		}
		if *setDay == "" || *setPeriod == "" || core.CleanString(*setSubject) == "" {
			setCmd.Usage()
			return errHelp
		}
		return cli.setSlot(*setDay, *setPeriod, *setSubject, *setTeacher, *setRoom)

	case "clear":
		if err := parseFlags(clearCmd, args[2:]); err != nil {
			return err
		}
		if *clearDay == "" || *clearPeriod == "" {
			clearCmd.Usage()
			return errHelp
		}
		return cli.clearSlot(*clearDay, *clearPeriod)

	case "subjects":
		return cli.subjects()

	case "migrate":
		if len(args) < 3 {
			fmt.Fprintln(cli.out, "Usage: migrate up|up-by-one|up-to VERSION|down|down-to VERSION|redo|reset|status|version")
			return errHelp
		}
		return cli.migrate(args[2:])

	default:
		cli.printUsage()
		return errHelp
	}
}
