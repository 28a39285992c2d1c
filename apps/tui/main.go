package main

import (
	"context"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/trezcool/ratiba/apps/di"
	"github.com/trezcool/ratiba/core"
	"github.com/trezcool/ratiba/core/subject"
	"github.com/trezcool/ratiba/core/timetable"
)

const logFile = "ratiba-tui.log"

func main() {
	// the terminal belongs to the UI: logs go to a file
	f, err := tea.LogToFile(logFile, "TUI")
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = f.Close() }()

	c := di.New("TUI", f)
	err = c.Invoke(func(
		logger core.Logger,
		store *timetable.Store,
		catalog *subject.Catalog,
		connector *di.DBConnector,
	) error {
		defer func() { _ = connector.Close() }()

		if _, err := store.Load(context.Background()); err != nil {
			return err
		}
		_, err := tea.NewProgram(NewModel(store, catalog, logger), tea.WithAltScreen()).Run()
		return err
	})
	if err != nil {
		log.Printf("error: %v", err)
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
