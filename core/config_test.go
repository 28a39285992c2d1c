package core

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewConfig(t *testing.T) {
	t.Setenv("ENV", "test")
	t.Setenv("TEST_STORAGE", "Database")
	t.Setenv("TEST_DATABASE_ENGINE", "sqlite3")
	t.Setenv("TEST_DATABASE_PORT", "5433")
	t.Setenv("TEST_SERVER_SHUTDOWNTIMEOUT", "10s")

	conf := NewConfig()
	wd, _ := os.Getwd()

	if conf.Env != "TEST" || !conf.TestMode {
		t.Errorf("Env = %q, TestMode = %v; want TEST, true", conf.Env, conf.TestMode)
	}
	if conf.Storage != StorageDatabase {
		t.Errorf("Storage = %q; want %q", conf.Storage, StorageDatabase)
	}
	if conf.Database.Engine != "sqlite3" || conf.Database.Port != 5433 {
		t.Errorf("Database = %+v", conf.Database)
	}
	if conf.Server.ShutdownTimeout != 10*time.Second {
		t.Errorf("Server.ShutdownTimeout = %v; want 10s", conf.Server.ShutdownTimeout)
	}
	if conf.WorkDir != wd {
		t.Errorf("WorkDir = %q; want %q", conf.WorkDir, wd)
	}
	if want := filepath.Join("resources", "timetable.json"); conf.TimetableFile != want {
		t.Errorf("TimetableFile = %q; want %q", conf.TimetableFile, want)
	}
	if err := conf.Validate(); err != nil {
		t.Errorf("Validate() unexpected error = %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		conf    Config
		wantErr bool
	}{
		{name: "file", conf: Config{Storage: StorageFile}},
		{name: "memory", conf: Config{Storage: StorageMemory}},
		{name: "postgres", conf: Config{Storage: StorageDatabase, Database: DatabaseConfig{Engine: "postgres"}}},
		{name: "unknown storage", conf: Config{Storage: "cloud"}, wantErr: true},
		{name: "unknown engine", conf: Config{Storage: StorageDatabase, Database: DatabaseConfig{Engine: "mysql"}}, wantErr: true},
		{name: "engine ignored without database", conf: Config{Storage: StorageFile, Database: DatabaseConfig{Engine: "mysql"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.conf.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_Path(t *testing.T) {
	conf := Config{WorkDir: "/srv/ratiba"}
	if got, want := conf.Path("resources/subject_list.txt"), filepath.Join("/srv/ratiba", "resources", "subject_list.txt"); got != want {
		t.Errorf("Path() = %q; want %q", got, want)
	}
	if got := conf.Path("/etc/ratiba/timetable.json"); got != "/etc/ratiba/timetable.json" {
		t.Errorf("Path() = %q; want the absolute path unchanged", got)
	}
}
