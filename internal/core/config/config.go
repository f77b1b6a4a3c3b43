// Package config provides the hotkeys configuration loader.
// Config is loaded by merging defaults → ~/.hotkeys/config.yaml → hotkeys.yaml → HOTKEYS_* env vars.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"sort"
	"strings"

	"github.com/spf13/viper"

	"github.com/f9-o/hotkeys/internal/core/state"
	"github.com/f9-o/hotkeys/pkg/errs"
	"github.com/f9-o/hotkeys/pkg/netutil"
)

// ProjectFile is the per-project config discovered upward from the CWD.
const ProjectFile = "hotkeys.yaml"

// sensitiveKeyRegex matches config keys that should be redacted in log output.
var sensitiveKeyRegex = regexp.MustCompile(`(?i)(password|token|secret|passphrase)`)

// Defaults contains factory-default values applied before any config file is loaded.
// Paths left empty are filled in relative to Home() after loading.
var Defaults = map[string]any{
	"platform":               PlatformAuto,
	"registry.path":          "",
	"registry.watch":         true,
	"storage.backend":        state.BackendBolt,
	"storage.key":            "app.hotkeys",
	"storage.bolt.path":      "",
	"storage.sqlite.path":    "",
	"storage.redis.host":     "127.0.0.1",
	"storage.redis.port":     6379,
	"storage.redis.db":       0,
	"storage.redis.password": "",
	"storage.redis.prefix":   "hotkeys:",
	"log.level":              "info",
	"log.format":             "text",
	"log.file":               "",
}

// Platform values.
const (
	PlatformAuto  = "auto"
	PlatformMac   = "mac"
	PlatformOther = "other"
)

// ─────────────────────────────────────────────────────────────────────────────
// Config types
// ─────────────────────────────────────────────────────────────────────────────

// Config is the fully-decoded configuration.
type Config struct {
	Platform string         `mapstructure:"platform"` // auto | mac | other
	Registry RegistryConfig `mapstructure:"registry"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Log      LogConfig      `mapstructure:"log"`

	// File is the project config that was merged, if any.
	File string `mapstructure:"-"`

	v *viper.Viper
}

// RegistryConfig locates the command manifest.
type RegistryConfig struct {
	Path  string `mapstructure:"path"`
	Watch bool   `mapstructure:"watch"`
}

// StorageConfig selects and configures the override backend.
type StorageConfig struct {
	Backend string      `mapstructure:"backend"` // bolt | sqlite | redis | memory
	Key     string      `mapstructure:"key"`
	Bolt    PathConfig  `mapstructure:"bolt"`
	SQLite  PathConfig  `mapstructure:"sqlite"`
	Redis   RedisConfig `mapstructure:"redis"`
}

// PathConfig holds a file location for file-backed stores.
type PathConfig struct {
	Path string `mapstructure:"path"`
}

// RedisConfig holds connection settings for the redis backend.
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	DB       int    `mapstructure:"db"`
	Password string `mapstructure:"password"`
	Prefix   string `mapstructure:"prefix"`
}

// LogConfig controls logging behaviour.
type LogConfig struct {
	Level  string `mapstructure:"level"` // debug | info | warn | error
	File   string `mapstructure:"file"`
	Format string `mapstructure:"format"` // json | text
}

// ─────────────────────────────────────────────────────────────────────────────
// Loader
// ─────────────────────────────────────────────────────────────────────────────

// Load discovers and loads the configuration, walking up directories to find
// hotkeys.yaml, then merging it with the global config and environment variables.
func Load(explicitPath string) (*Config, error) {
	v := viper.New()

	for k, val := range Defaults {
		v.SetDefault(k, val)
	}

	// Environment variable binding: HOTKEYS_STORAGE_BACKEND → storage.backend
	v.SetEnvPrefix("HOTKEYS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	globalCfg := filepath.Join(Home(), "config.yaml")
	if _, err := os.Stat(globalCfg); err == nil {
		v.SetConfigFile(globalCfg)
		if err := v.ReadInConfig(); err != nil {
			return nil, errs.Wrap(err, errs.ErrConfig, "config.load").WithResource(globalCfg)
		}
	}

	projectFile := explicitPath
	if projectFile == "" {
		if path, err := discoverProjectConfig(); err == nil {
			projectFile = path
		}
	}
	if projectFile != "" {
		v.SetConfigFile(projectFile)
		if err := v.MergeInConfig(); err != nil {
			if explicitPath != "" {
				return nil, errs.Wrap(err, errs.ErrConfig, "config.load").
					WithResource(explicitPath).
					WithAdvice("check the file exists and is valid YAML")
			}
			projectFile = ""
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errs.Wrap(err, errs.ErrConfig, "config.unmarshal")
	}
	cfg.File = projectFile
	cfg.v = v

	cfg.fillPaths()
	cfg.Storage.Redis.Password = os.ExpandEnv(cfg.Storage.Redis.Password)

	if err := validate(&cfg); err != nil {
		return nil, errs.Wrap(err, errs.ErrConfig, "config.validate").
			WithAdvice("see 'hotkeys init' for a commented example")
	}

	return &cfg, nil
}

// IsMac resolves the platform setting to the mac-like flag.
func (c *Config) IsMac() bool {
	switch c.Platform {
	case PlatformMac:
		return true
	case PlatformOther:
		return false
	default:
		return runtime.GOOS == "darwin"
	}
}

// StateOptions converts the storage section for state.Open.
func (c *Config) StateOptions() state.Options {
	return state.Options{
		Backend:    c.Storage.Backend,
		BoltPath:   c.Storage.Bolt.Path,
		SQLitePath: c.Storage.SQLite.Path,
		Redis: state.RedisOptions{
			Host:     c.Storage.Redis.Host,
			Port:     c.Storage.Redis.Port,
			DB:       c.Storage.Redis.DB,
			Password: c.Storage.Redis.Password,
			Prefix:   c.Storage.Redis.Prefix,
		},
	}
}

// Redacted returns every effective setting with sensitive values masked,
// sorted by key. Used for debug logging.
func (c *Config) Redacted() []any {
	if c.v == nil {
		return nil
	}
	keys := c.v.AllKeys()
	sort.Strings(keys)
	out := make([]any, 0, 2*len(keys))
	for _, k := range keys {
		val := c.v.Get(k)
		if IsSensitiveKey(k) {
			if s, ok := val.(string); ok && s != "" {
				val = "****"
			}
		}
		out = append(out, k, val)
	}
	return out
}

// IsSensitiveKey returns true if key matches a known sensitive pattern.
func IsSensitiveKey(key string) bool {
	return sensitiveKeyRegex.MatchString(key)
}

// ─────────────────────────────────────────────────────────────────────────────
// Internal helpers
// ─────────────────────────────────────────────────────────────────────────────

// discoverProjectConfig walks up from the CWD looking for hotkeys.yaml.
func discoverProjectConfig() (string, error) {
	start, err := os.Getwd()
	if err != nil {
		return "", err
	}

	dir := start
	for {
		candidate := filepath.Join(dir, ProjectFile)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", fmt.Errorf("%s not found (searched up from %s)", ProjectFile, start)
}

// fillPaths applies home-relative defaults and resolves relative paths
// against the directory of the project file.
func (c *Config) fillPaths() {
	base := Home()
	if c.File != "" {
		base = filepath.Dir(c.File)
	}
	resolve := func(p, fallback string) string {
		if p == "" {
			return fallback
		}
		p = expandHome(p)
		if !filepath.IsAbs(p) {
			p = filepath.Join(base, p)
		}
		return p
	}
	c.Registry.Path = resolve(c.Registry.Path, filepath.Join(base, "commands.yaml"))
	c.Storage.Bolt.Path = resolve(c.Storage.Bolt.Path, filepath.Join(Home(), "state.db"))
	c.Storage.SQLite.Path = resolve(c.Storage.SQLite.Path, filepath.Join(Home(), "state.sqlite"))
	if c.Log.File != "" {
		c.Log.File = resolve(c.Log.File, "")
	}
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return os.ExpandEnv(p)
}

// validate performs semantic validation on the loaded config.
func validate(cfg *Config) error {
	switch cfg.Platform {
	case PlatformAuto, PlatformMac, PlatformOther:
	default:
		return fmt.Errorf("platform %q: must be auto, mac or other", cfg.Platform)
	}
	switch cfg.Storage.Backend {
	case state.BackendBolt, state.BackendSQLite, state.BackendRedis, state.BackendMemory:
	default:
		return fmt.Errorf("storage.backend %q: must be bolt, sqlite, redis or memory", cfg.Storage.Backend)
	}
	if strings.TrimSpace(cfg.Storage.Key) == "" {
		return fmt.Errorf("storage.key must not be empty")
	}
	if cfg.Storage.Backend == state.BackendRedis && !netutil.IsValidPort(cfg.Storage.Redis.Port) {
		return fmt.Errorf("storage.redis.port %d out of range", cfg.Storage.Redis.Port)
	}
	switch cfg.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format %q: must be text or json", cfg.Log.Format)
	}
	return nil
}

// Home returns the hotkeys home directory: $HOTKEYS_HOME, else ~/.hotkeys.
func Home() string {
	if h := os.Getenv("HOTKEYS_HOME"); h != "" {
		return h
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".hotkeys"
	}
	return filepath.Join(home, ".hotkeys")
}

// DefaultConfigTemplate is the content written by `hotkeys init`.
const DefaultConfigTemplate = `# hotkeys.yaml: project settings for the hotkeys tool.
# Every key can also be set with a HOTKEYS_* environment variable,
# e.g. HOTKEYS_STORAGE_BACKEND=sqlite.

# auto follows the host OS; mac uses Option/Command, other uses Ctrl/Alt.
platform: auto

registry:
  path: commands.yaml
  watch: true

storage:
  backend: bolt        # bolt | sqlite | redis | memory
  key: app.hotkeys
  # bolt:
  #   path: ~/.hotkeys/state.db
  # sqlite:
  #   path: ~/.hotkeys/state.sqlite
  # redis:
  #   host: 127.0.0.1
  #   port: 6379
  #   db: 0
  #   password: ${REDIS_PASSWORD}

log:
  level: info
  format: text
`
