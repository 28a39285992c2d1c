package di

import (
	"context"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/dig"

	"github.com/trezcool/ratiba/core"
	"github.com/trezcool/ratiba/core/subject"
	"github.com/trezcool/ratiba/core/timetable"
	logsvc "github.com/trezcool/ratiba/services/logger"
	"github.com/trezcool/ratiba/storage/database"
	inmemdb "github.com/trezcool/ratiba/storage/database/inmem"
	sqlxrepos "github.com/trezcool/ratiba/storage/database/sqlx"
	filestore "github.com/trezcool/ratiba/storage/file"
)

type DBLoggerParam struct {
	dig.In
	Logger core.Logger `name:"dbLogger"`
}

// DBConnector sets up the database on first use: file and memory storages never connect.
type DBConnector struct {
	conf   *core.Config
	logger core.Logger

	once        sync.Once
	db          *sqlx.DB
	err         error
	migrateOnce sync.Once
	migrateErr  error
}

func newDBConnector(conf *core.Config, loggerParam DBLoggerParam) *DBConnector {
	return &DBConnector{conf: conf, logger: loggerParam.Logger}
}

// DB opens the database and applies pending migrations.
func (c *DBConnector) DB() (*sqlx.DB, error) {
	db, err := c.Open()
	if err != nil {
		return nil, err
	}
	c.migrateOnce.Do(func() {
		c.migrateErr = database.Migrate(context.Background(), db)
	})
	if c.migrateErr != nil {
		return nil, c.migrateErr
	}
	return db, nil
}

// Open creates the database if needed and opens it, without migrating it.
func (c *DBConnector) Open() (*sqlx.DB, error) {
	c.once.Do(func() {
		if err := database.CreateIfNotExist(c.conf); err != nil {
			c.err = err
			return
		}
		db, err := database.Open(c.conf)
		if err != nil {
			c.err = err
			return
		}
		c.logger.Debug("database opened")
		c.db = db
	})
	return c.db, c.err
}

func (c *DBConnector) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

func newConfig() (*core.Config, error) {
	conf := core.NewConfig()
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

func newLogger(prefix string, out io.Writer) func(conf *core.Config) core.Logger {
	return func(conf *core.Config) core.Logger {
		stdLogger := log.New(out, prefix+" : ", log.LstdFlags)
		return logsvc.NewRollbarLogger(stdLogger, conf)
	}
}

func newDBLogger(out io.Writer) func(conf *core.Config) core.Logger {
	return func(conf *core.Config) core.Logger {
		stdLogger := log.New(out, "DB : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
		return logsvc.NewRollbarLogger(stdLogger, conf)
	}
}

func newRepository(conf *core.Config, connector *DBConnector, logger core.Logger) (timetable.Repository, error) {
	switch conf.Storage {
	case core.StorageMemory:
		db, err := inmemdb.Open()
		if err != nil {
			return nil, errors.Wrap(err, "opening in-memory database")
		}
		return inmemdb.NewTimetableRepository(db), nil

	case core.StorageDatabase:
		db, err := connector.DB()
		if err != nil {
			return nil, errors.Wrap(err, "setting up database")
		}
		return sqlxrepos.NewTimetableRepository(db), nil

	default:
		path := conf.Path(conf.TimetableFile)
		logger.Debug("timetable file: " + path)
		return filestore.NewTimetableRepository(path), nil
	}
}

func newCatalog(conf *core.Config) *subject.Catalog {
	path := conf.Path(conf.SubjectsFile)
	return subject.NewCatalog(os.DirFS(filepath.Dir(path)), filepath.Base(path))
}

// New returns a new dependency injection dig.Container.
// `prefix` tags the lines the app's loggers write to `logOutput`.
func New(prefix string, logOutput io.Writer) *dig.Container {
	c := dig.New()

	must(c.Provide(newConfig))
	must(c.Provide(newLogger(prefix, logOutput)))
	must(c.Provide(newDBLogger(logOutput), dig.Name("dbLogger")))
	must(c.Provide(newDBConnector))
	must(c.Provide(core.NewValidator))
	must(c.Provide(newRepository))
	must(c.Provide(timetable.NewStore))
	must(c.Provide(newCatalog))

	return c
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}
