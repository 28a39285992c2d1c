package main

import (
	"context"
	"fmt"
	"log"
	"os"

	echoapi "github.com/trezcool/ratiba/apps/api/echo"
	"github.com/trezcool/ratiba/apps/di"
	"github.com/trezcool/ratiba/core"
	"github.com/trezcool/ratiba/core/subject"
	"github.com/trezcool/ratiba/core/timetable"
)

func newServer(conf *core.Config, logger core.Logger, store *timetable.Store, catalog *subject.Catalog) *echoapi.Server {
	return echoapi.NewServer(
		&echoapi.Options{
			Address: conf.Server.Address,
			AppName: conf.AppName,
			Debug:   conf.Debug,
		},
		&echoapi.Deps{
			Logger:  logger,
			Store:   store,
			Catalog: catalog,
		},
	)
}

func main() {
	c := di.New("API", os.Stdout)
	must(c.Provide(newServer))

	must(c.Invoke(func(
		conf *core.Config,
		apiLogger core.Logger,
		store *timetable.Store,
		connector *di.DBConnector,
		server *echoapi.Server,
	) {
		// =========================================================================
		// Initialize App

		apiLogger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))

		if _, err := store.Load(context.Background()); err != nil {
			apiLogger.Fatal(fmt.Sprintf("loading timetable: %v", err), err)
		}

		defer func() {
			if err := connector.Close(); err != nil {
				apiLogger.Error("Failed to close database", err)
			}
		}()
		defer apiLogger.Info("Application stopped")

		// =========================================================================
		// Start API Service

		go func() {
			server.Start()
		}()

		// =========================================================================
		// Shutdown

		select {
		case err := <-server.Errors():
			apiLogger.Fatal(fmt.Sprintf("server error: %v", err), err)

		case sig := <-server.ShutdownSignal():
			apiLogger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

			// give outstanding requests a deadline for completion
			ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
			defer cancel()

			// asking listener to shut down and shed load
			if err := server.Shutdown(ctx); err != nil {
				apiLogger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

				if err = server.Close(); err != nil {
					apiLogger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
				}
			}
		}
	}))
}

func must(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
