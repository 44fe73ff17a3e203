package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"tasktracker/internal/storage"
	"tasktracker/internal/todo"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "todos.db"
	DefaultJSONName       = "todos.json"
	DefaultLogName        = "tasktracker.log"
	appDirName            = "tasktracker"
	envConfigPath         = "TASKTRACKER_CONFIG"
)

var ErrInvalidTab = errors.New("invalid default tab")

type Keymap struct {
	Quit      string `toml:"quit"`
	Add       string `toml:"add"`
	Up        string `toml:"up"`
	Down      string `toml:"down"`
	NextTab   string `toml:"next_tab"`
	PrevTab   string `toml:"prev_tab"`
	Toggle    string `toml:"toggle"`
	Trash     string `toml:"trash"`
	Restore   string `toml:"restore"`
	Delete    string `toml:"delete"`
	Edit      string `toml:"edit"`
	Confirm   string `toml:"confirm"`
	Cancel    string `toml:"cancel"`
	Save      string `toml:"save"`
	NextField string `toml:"next_field"`
	PrevField string `toml:"prev_field"`
}

type Storage struct {
	Backend  string `toml:"backend"`
	DBPath   string `toml:"db_path"`
	JSONPath string `toml:"json_path"`
}

type Log struct {
	Path  string `toml:"path"`
	Level string `toml:"level"`
}

type Config struct {
	DefaultTab string  `toml:"default_tab"`
	TimeZone   string  `toml:"time_zone"`
	Storage    Storage `toml:"storage"`
	Log        Log     `toml:"log"`
	Keys       Keymap  `toml:"keys"`
}

// ResolveConfigPath honours TASKTRACKER_CONFIG, then the user config dir,
// then the working directory.
func ResolveConfigPath() string {
	if p := os.Getenv(envConfigPath); p != "" {
		return p
	}
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, appDirName, DefaultConfigFileName)
	}
	return DefaultConfigFileName
}

// LoadOrCreate reads the config at path, writing defaults when it is
// missing. Relative storage and log paths resolve against the config dir.
func LoadOrCreate(path string) (Config, error) {
	cfg := defaultConfig()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg.resolve(filepath.Dir(path)), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.Storage.DBPath == "" {
		cfg.Storage.DBPath = DefaultDBName
	}
	if cfg.Storage.JSONPath == "" {
		cfg.Storage.JSONPath = DefaultJSONName
	}
	if cfg.Log.Path == "" {
		cfg.Log.Path = DefaultLogName
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg.resolve(filepath.Dir(path)), nil
}

func (c Config) Validate() error {
	if _, err := todo.ParseTab(c.DefaultTab); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTab, err)
	}
	switch c.Storage.Backend {
	case storage.BackendSQLite, storage.BackendJSON:
	default:
		return fmt.Errorf("%w: %q", storage.ErrUnknownBackend, c.Storage.Backend)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Tab returns the configured start tab, pending when invalid.
func (c Config) Tab() todo.Tab {
	t, err := todo.ParseTab(c.DefaultTab)
	if err != nil {
		return todo.TabPending
	}
	return t
}

// Location resolves TimeZone; empty means the local zone.
func (c Config) Location() (*time.Location, error) {
	if c.TimeZone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("time zone %q: %w", c.TimeZone, err)
	}
	return loc, nil
}

// StoragePath returns the path for the configured backend.
func (c Config) StoragePath() string {
	if c.Storage.Backend == storage.BackendJSON {
		return c.Storage.JSONPath
	}
	return c.Storage.DBPath
}

func (c Config) resolve(dir string) Config {
	c.Storage.DBPath = resolvePath(dir, c.Storage.DBPath)
	c.Storage.JSONPath = resolvePath(dir, c.Storage.JSONPath)
	c.Log.Path = resolvePath(dir, c.Log.Path)
	return c
}

func resolvePath(dir, p string) string {
	if p == "" || filepath.IsAbs(p) || dir == "" {
		return p
	}
	return filepath.Join(dir, p)
}

func write(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultConfig() Config {
	return Config{
		DefaultTab: todo.TabPending.String(),
		Storage: Storage{
			Backend:  storage.BackendSQLite,
			DBPath:   DefaultDBName,
			JSONPath: DefaultJSONName,
		},
		Log: Log{
			Path:  DefaultLogName,
			Level: "info",
		},
		Keys: Keymap{
			Quit:      "q",
			Add:       "a",
			Up:        "k",
			Down:      "j",
			NextTab:   "l",
			PrevTab:   "h",
			Toggle:    " ",
			Trash:     "d",
			Restore:   "r",
			Delete:    "D",
			Edit:      "e",
			Confirm:   "y",
			Cancel:    "esc",
			Save:      "ctrl+s",
			NextField: "tab",
			PrevField: "shift+tab",
		},
	}
}
