package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/afero"
)

// Settings represents the application configuration persisted to disk.
type Settings struct {
	API     APISettings     `json:"api"`
	Storage StorageSettings `json:"storage"`
	Bridge  BridgeSettings  `json:"bridge"`
	Update  UpdateSettings  `json:"update"`
	Log     LogConfig       `json:"log"`
}

// APISettings describes the streaming backend the gateway talks to.
type APISettings struct {
	BaseURL        string `json:"baseUrl"`
	SecretKey      string `json:"secretKey"` // shared HMAC key; empty disables request signing
	UserAgent      string `json:"userAgent"`
	TimeoutSeconds int    `json:"timeoutSeconds"`
}

type StorageBackend string

const (
	StorageBackendFile   StorageBackend = "file"
	StorageBackendSQLite StorageBackend = "sqlite"
)

// StorageSettings selects where My List and watch history are kept.
type StorageSettings struct {
	Backend    StorageBackend `json:"backend"`
	Directory  string         `json:"directory"`  // file backend: one JSON file per namespace
	SQLitePath string         `json:"sqlitePath"` // sqlite backend
}

// BridgeSettings configures the localhost API used by the hybrid web shell.
type BridgeSettings struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

// UpdateSettings points the update checker at a GitHub repository.
type UpdateSettings struct {
	Enabled        bool   `json:"enabled"`
	Repository     string `json:"repository"` // owner/name
	APIBaseURL     string `json:"apiBaseUrl"`
	CurrentVersion string `json:"currentVersion"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	File       string `json:"file"`
	Level      string `json:"level"`
	MaxSize    int    `json:"maxSize"`
	MaxAge     int    `json:"maxAge"`
	MaxBackups int    `json:"maxBackups"`
	Compress   bool   `json:"compress"`
}

const (
	EnvConfigPath = "STREAMFLIX_CONFIG"
	EnvBaseURL    = "STREAMFLIX_API_BASE_URL"
	EnvSecretKey  = "STREAMFLIX_SECRET_KEY"
)

// DefaultSettings returns sane defaults for a fresh install.
func DefaultSettings() Settings {
	return Settings{
		API: APISettings{
			BaseURL:        "http://localhost:8000",
			SecretKey:      "",
			UserAgent:      "StreamFlixTV/1.0 Android",
			TimeoutSeconds: 30,
		},
		Storage: StorageSettings{
			Backend:    StorageBackendFile,
			Directory:  "cache/prefs",
			SQLitePath: "cache/prefs.db",
		},
		Bridge: BridgeSettings{Host: "127.0.0.1", Port: 7780},
		Update: UpdateSettings{
			Enabled:        true,
			Repository:     "vndangkhoa/Streamflow",
			APIBaseURL:     "https://api.github.com",
			CurrentVersion: "1.0.0",
		},
		Log: LogConfig{
			File:       "cache/logs/streamflix.log",
			Level:      "info",
			MaxSize:    10,   // 10 MB per file
			MaxBackups: 3,    // keep 3 old files
			MaxAge:     7,    // 7 days
			Compress:   true, // compress old files
		},
	}
}

// ResolvePath returns the settings path from the flag value, the environment,
// or the default location, in that order.
func ResolvePath(flagValue string) string {
	if p := strings.TrimSpace(flagValue); p != "" {
		return p
	}
	if p := strings.TrimSpace(os.Getenv(EnvConfigPath)); p != "" {
		return p
	}
	return filepath.Join("cache", "settings.json")
}

// Manager loads and persists settings to a JSON file.
type Manager struct {
	fs   afero.Fs
	path string
}

func NewManager(configPath string) *Manager {
	return NewManagerFs(afero.NewOsFs(), configPath)
}

// NewManagerFs is NewManager over an arbitrary filesystem.
func NewManagerFs(fsys afero.Fs, configPath string) *Manager {
	return &Manager{fs: fsys, path: configPath}
}

// Path returns the settings file location.
func (m *Manager) Path() string {
	return m.path
}

// EnsureDir ensures parent directory exists.
func (m *Manager) EnsureDir() error {
	dir := filepath.Dir(m.path)
	if dir == "." || dir == "" {
		return nil
	}
	return m.fs.MkdirAll(dir, 0o755)
}

// Load reads settings.json from disk or creates defaults if missing.
// Environment overrides are applied to the returned value only.
func (m *Manager) Load() (Settings, error) {
	if m.path == "" {
		return Settings{}, errors.New("config path not set")
	}
	if _, err := m.fs.Stat(m.path); errors.Is(err, fs.ErrNotExist) {
		// create with defaults
		defaults := DefaultSettings()
		if err := m.Save(defaults); err != nil {
			return Settings{}, err
		}
		return applyEnv(defaults), nil
	}

	data, err := afero.ReadFile(m.fs, m.path)
	if err != nil {
		return Settings{}, err
	}

	// Start from defaults so keys missing from older files keep sane values.
	s := DefaultSettings()
	if err := json.Unmarshal(data, &s); err != nil {
		return Settings{}, err
	}

	s.API.BaseURL = strings.TrimRight(strings.TrimSpace(s.API.BaseURL), "/")
	if s.API.TimeoutSeconds <= 0 {
		s.API.TimeoutSeconds = 30
	}
	if strings.TrimSpace(s.API.UserAgent) == "" {
		s.API.UserAgent = DefaultSettings().API.UserAgent
	}
	switch s.Storage.Backend {
	case StorageBackendFile, StorageBackendSQLite:
	default:
		s.Storage.Backend = StorageBackendFile
	}
	if s.Bridge.Port <= 0 {
		s.Bridge.Port = DefaultSettings().Bridge.Port
	}

	return applyEnv(s), nil
}

func applyEnv(s Settings) Settings {
	if v := strings.TrimSpace(os.Getenv(EnvBaseURL)); v != "" {
		s.API.BaseURL = strings.TrimRight(v, "/")
	}
	if v := strings.TrimSpace(os.Getenv(EnvSecretKey)); v != "" {
		s.API.SecretKey = v
	}
	return s
}

// Save writes the provided settings to disk atomically.
func (m *Manager) Save(s Settings) error {
	if m.path == "" {
		return errors.New("config path not set")
	}
	if err := m.EnsureDir(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	tmp := m.path + ".tmp"
	f, err := m.fs.Create(tmp)
	if err != nil {
		return err
	}
	if _, err := f.Write(append(data, '\n')); err != nil {
		f.Close()
		_ = m.fs.Remove(tmp)
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		_ = m.fs.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = m.fs.Remove(tmp)
		return err
	}
	return m.fs.Rename(tmp, m.path)
}
