package core

import (
	"fmt"
	"log"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage backends
const (
	StorageFile     = "file"
	StorageMemory   = "memory"
	StorageDatabase = "database"
)

type (
	DatabaseConfig struct {
		Engine        string
		Host          string
		Port          int
		Name          string
		User          string
		Password      string
		AdminUser     string
		AdminPassword string
		DisableTLS    bool
	}

	ServerConfig struct {
		Host            string
		Address         string
		ShutdownTimeout time.Duration
	}

	Config struct {
		Env           string
		Debug         bool
		TestMode      bool
		AppName       string
		Build         string
		WorkDir       string
		Storage       string
		TimetableFile string
		SubjectsFile  string
		RollbarToken  string
		Database      DatabaseConfig
		Server        ServerConfig
	}
)

func (c DatabaseConfig) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Path resolves p against the working directory unless it is already absolute.
func (c *Config) Path(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.WorkDir, p)
}

func (c *Config) Validate() error {
	switch c.Storage {
	case StorageFile, StorageMemory, StorageDatabase:
	default:
		return fmt.Errorf("config: unknown storage %q", c.Storage)
	}
	if c.Storage == StorageDatabase {
		switch c.Database.Engine {
		case "postgres", "sqlite3":
		default:
			return fmt.Errorf("config: unknown database engine %q", c.Database.Engine)
		}
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("testMode", false)
	v.SetDefault("appName", "Ratiba")
	v.SetDefault("build", "develop")
	v.SetDefault("storage", StorageFile)
	v.SetDefault("timetableFile", filepath.Join("resources", "timetable.json"))
	v.SetDefault("subjectsFile", filepath.Join("resources", "subject_list.txt"))
	v.SetDefault("rollbarToken", "")

	v.SetDefault("database.engine", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "ratiba")
	v.SetDefault("database.user", "ratiba")
	v.SetDefault("database.password", "")
	v.SetDefault("database.adminUser", "")
	v.SetDefault("database.adminPassword", "")
	v.SetDefault("database.disableTLS", false)

	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.shutdownTimeout", 5*time.Second)
}

// NewConfig reads the configuration of the current ENV (DEV by default) from the environment
// and the optional dotenv file `config/.env.<env>`.
func NewConfig() *Config {
	v := viper.New()
	setDefaults(v)

	env := strings.ToUpper(os.Getenv("ENV")) // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
	}
	v.SetEnvPrefix(env)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	wd, err := os.Getwd()
	if err != nil {
		log.Fatalf("config.os.Getwd(): %v", err)
	}

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(wd, "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	return &Config{
		Env:           env,
		Debug:         v.GetBool("debug"),
		TestMode:      v.GetBool("testMode"),
		AppName:       v.GetString("appName"),
		Build:         v.GetString("build"),
		WorkDir:       wd,
		Storage:       strings.ToLower(v.GetString("storage")),
		TimetableFile: v.GetString("timetableFile"),
		SubjectsFile:  v.GetString("subjectsFile"),
		RollbarToken:  v.GetString("rollbarToken"),
		Database: DatabaseConfig{
			Engine:        v.GetString("database.engine"),
			Host:          v.GetString("database.host"),
			Port:          v.GetInt("database.port"),
			Name:          v.GetString("database.name"),
			User:          v.GetString("database.user"),
			Password:      v.GetString("database.password"),
			AdminUser:     v.GetString("database.adminUser"),
			AdminPassword: v.GetString("database.adminPassword"),
			DisableTLS:    v.GetBool("database.disableTLS"),
		},
		Server: ServerConfig{
			Host:            v.GetString("server.host"),
			Address:         v.GetString("server.address"),
			ShutdownTimeout: v.GetDuration("server.shutdownTimeout"),
		},
	}
}
