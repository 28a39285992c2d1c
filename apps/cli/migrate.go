package main

import (
	"context"
	"errors"

	"github.com/trezcool/ratiba/core"
	"github.com/trezcool/ratiba/storage/database"
)

var (
	gooseRunFunc = database.RunMigrations // mockable

	errNoDatabase = errors.New("migrations require the database storage")
)

func (cli *commandLine) migrate(args []string) error {
	if cli.storage != core.StorageDatabase {
		return errNoDatabase
	}
	db, err := cli.openDB()
	if err != nil {
		return err
	}

	arguments := make([]string, 0)
	if len(args) > 1 {
		arguments = append(arguments, args[1:]...)
	}
	return gooseRunFunc(context.Background(), args[0], db, arguments...)
}
