package testutil

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/trezcool/ratiba/core"
	"github.com/trezcool/ratiba/core/timetable"
	"github.com/trezcool/ratiba/storage/database"
)

// Logger records every logged message, prefixed with its level.
type Logger struct {
	mu      sync.Mutex
	entries []string
}

var _ core.Logger = (*Logger)(nil)

func NewLogger() *Logger {
	return &Logger{}
}

func (l *Logger) log(level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, fmt.Sprintf("%s: %s", level, msg))
}

func (l *Logger) Entries() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	entries := make([]string, len(l.entries))
	copy(entries, l.entries)
	return entries
}

func (l *Logger) Debug(msg string, _ ...interface{}) { l.log("DEBUG", msg) }
func (l *Logger) Info(msg string, _ ...interface{})  { l.log("INFO", msg) }
func (l *Logger) Warn(msg string, _ ...interface{})  { l.log("WARN", msg) }
func (l *Logger) Error(msg string, _ ...interface{}) { l.log("ERROR", msg) }
func (l *Logger) Fatal(msg string, _ ...interface{}) { l.log("FATAL", msg) }

// NewStore returns a loaded Store over `repo`.
func NewStore(t *testing.T, repo timetable.Repository, logger core.Logger) *timetable.Store {
	validate, translator := core.NewValidator()
	store := timetable.NewStore(repo, validate, translator, logger)
	if _, err := store.Load(context.Background()); err != nil {
		t.Fatalf("store.Load() failed: %v", err)
	}
	return store
}

// SetSlot fills a slot of a loaded Store.
func SetSlot(t *testing.T, store *timetable.Store, day, period int, subject, teacher, room string) timetable.Lesson {
	lsn, err := store.SetSlot(context.Background(), day, period, timetable.NewLesson{Subject: subject, Teacher: teacher, Room: room})
	if err != nil {
		t.Fatalf("store.SetSlot() failed: %v", err)
	}
	return lsn
}

// NewSqliteDB opens a private in-memory sqlite database, optionally migrated.
func NewSqliteDB(t *testing.T, migrate bool) *sqlx.DB {
	conf := &core.Config{Database: core.DatabaseConfig{Engine: database.EngineSqlite, Name: ":memory:"}}
	db, err := database.Open(conf)
	if err != nil {
		t.Fatalf("database.Open() failed: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if migrate {
		if err := database.Migrate(context.Background(), db); err != nil {
			t.Fatalf("database.Migrate() failed: %v", err)
		}
	}
	return db
}
