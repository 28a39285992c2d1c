package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/trezcool/ratiba/apps/di"
	"github.com/trezcool/ratiba/core"
	"github.com/trezcool/ratiba/core/subject"
	"github.com/trezcool/ratiba/core/timetable"
)

func main() {
	code := 0
	defer func() { os.Exit(code) }()

	c := di.New("CLI", os.Stderr)
	err := c.Invoke(func(
		conf *core.Config,
		logger core.Logger,
		catalog *subject.Catalog,
		connector *di.DBConnector,
	) {
		defer func() { _ = connector.Close() }()

		cli := commandLine{
			out:     os.Stdout,
			logger:  logger,
			storage: conf.Storage,
			catalog: catalog,
			openDB:  connector.Open,
		}

		// the store migrates the database up: only build it for commands that use it
		if len(os.Args) < 2 || os.Args[1] != "migrate" {
			if err := c.Invoke(func(store *timetable.Store) { cli.store = store }); err != nil {
				printError(err)
				code = 1
				return
			}
		}

		if err := cli.run(os.Args); err != nil {
			if err != errHelp {
				printError(err)
			}
			code = 1
		}
	})
	if err != nil {
		log.Printf("error: %v", err)
		code = 1
	}
}

func printError(err error) {
	var vErr *core.ValidationError
	if errors.As(err, &vErr) && len(vErr.Fields) > 0 {
		for _, fld := range vErr.Fields {
			fmt.Fprintf(os.Stderr, "error: %s\n", fld.Error)
		}
		return
	}
	fmt.Fprintf(os.Stderr, "error: %s\n", err)
}
