package main

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/trezcool/ratiba/apps/shared/gridview"
	"github.com/trezcool/ratiba/core"
	"github.com/trezcool/ratiba/core/subject"
	"github.com/trezcool/ratiba/core/timetable"
)

func (cli *commandLine) load(ctx context.Context) error {
	if _, err := cli.store.Load(ctx); err != nil {
		return errors.Wrap(err, "loading timetable")
	}
	return nil
}

func parseSlot(day, period string) (int, int, error) {
	d, err := timetable.ParseDay(day)
	if err != nil {
		return 0, 0, err
	}
	p, err := timetable.ParsePeriod(period)
	if err != nil {
		return 0, 0, err
	}
	return d, p, nil
}

func describe(day, period int, lsn timetable.Lesson) string {
	if lsn.IsBlank() {
		return fmt.Sprintf("%s, period %d: (free)", timetable.DayNames[day], period)
	}
	return fmt.Sprintf("%s, period %d: %s / %s / %s", timetable.DayNames[day], period, lsn.Subject, lsn.Teacher, lsn.Room)
}

// show prints the Grid, or a single day of it.
func (cli *commandLine) show(day string) error {
	opts := gridview.Options{Width: termWidthFunc()}
	if day != "" {
		d, err := timetable.ParseDay(day)
		if err != nil {
			return err
		}
		opts.Days = []int{d}
	}

	if err := cli.load(context.Background()); err != nil {
		return err
	}
	fmt.Fprintln(cli.out, gridview.Render(cli.store.Grid(), opts))
	return nil
}

// checkSubject warns about subjects missing from the catalog. It never fails the edit.
func (cli *commandLine) checkSubject(name string) {
	if _, err := cli.catalog.Load(); err != nil {
		if err == subject.ErrNotFound {
			fmt.Fprintln(cli.out, "warning: subject list not found")
		} else {
			cli.logger.Warn("loading subjects", err)
		}
		return
	}
	if cli.catalog.Contains(name) {
		return
	}
	if suggestion, ok := cli.catalog.Suggest(name); ok {
		fmt.Fprintf(cli.out, "warning: %q is not in the subject list, did you mean %q?\n", name, suggestion)
		return
	}
	fmt.Fprintf(cli.out, "warning: %q is not in the subject list\n", name)
}

func (cli *commandLine) setSlot(day, period, subj, teacher, room string) error {
	d, p, err := parseSlot(day, period)
	if err != nil {
		return err
	}
	subj = core.CleanString(subj)
	cli.checkSubject(subj)

	ctx := context.Background()
	if err := cli.load(ctx); err != nil {
		return err
	}
	lsn, err := cli.store.SetSlot(ctx, d, p, timetable.NewLesson{Subject: subj, Teacher: teacher, Room: room})
	if err != nil {
		return err
	}
	fmt.Fprintln(cli.out, describe(d, p, lsn))
	return nil
}

func (cli *commandLine) clearSlot(day, period string) error {
	d, p, err := parseSlot(day, period)
	if err != nil {
		return err
	}

	ctx := context.Background()
	if err := cli.load(ctx); err != nil {
		return err
	}
	if err := cli.store.ClearSlot(ctx, d, p); err != nil {
		return err
	}
	fmt.Fprintln(cli.out, describe(d, p, timetable.BlankLesson()))
	return nil
}

func (cli *commandLine) subjects() error {
	subjects, err := cli.catalog.Load()
	if err != nil {
		return err
	}
	for _, s := range subjects {
		fmt.Fprintln(cli.out, s)
	}
	return nil
}
