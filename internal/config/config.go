// Package config loads the tinytodo configuration.
//
// Precedence (highest wins):
//  1. Defaults
//  2. Global user config ($XDG_CONFIG_HOME/tinytodo/config.json or ~/.config/tinytodo/config.json)
//  3. Project config (.tinytodo.json in the working directory) or an explicit --config file
//  4. Environment: TINYTODO_* variables, with .env in the working directory as fallback
//  5. CLI flags (applied by the caller)
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/tailscale/hujson"

	"github.com/balkashynov/tinytodo/internal/logging"
)

// FileName is the project config file name.
const FileName = ".tinytodo.json"

var (
	errConfigFileNotFound = errors.New("config file not found")
	errConfigFileRead     = errors.New("cannot read config file")
	errConfigInvalid      = errors.New("invalid config")
)

// Config holds all configuration options.
type Config struct {
	Listen       string `json:"listen,omitempty"`
	Database     string `json:"database,omitempty"`
	SettingsDir  string `json:"settings_dir,omitempty"`
	Token        string `json:"token,omitempty"`
	TablePrefix  string `json:"table_prefix,omitempty"`
	AllTasksName string `json:"all_tasks_name,omitempty"`
	LogLevel     string `json:"log_level,omitempty"`
}

// Sources tracks which config files were loaded.
type Sources struct {
	Global  string // Path to global config if loaded, empty otherwise
	Project string // Path to project config if loaded, empty otherwise
	DotEnv  string // Path to .env if loaded, empty otherwise
}

// Default returns the default configuration. Paths live under home.
func Default(home string) Config {
	dataDir := filepath.Join(home, ".tinytodo")
	return Config{
		Listen:       "127.0.0.1:8080",
		Database:     filepath.Join(dataDir, "tinytodo.db"),
		SettingsDir:  filepath.Join(dataDir, "settings"),
		AllTasksName: "All tasks",
		LogLevel:     "info",
	}
}

// Load builds the configuration for workDir. explicitPath, when set, replaces
// the project config and must exist. environ is in os.Environ form.
func Load(workDir, explicitPath string, environ []string) (Config, Sources, error) {
	env := envMap(environ)

	var sources Sources
	cfg := Default(homeDir(env))

	if path := globalPath(env); path != "" {
		fileCfg, loaded, err := loadFile(path, false)
		if err != nil {
			return Config{}, Sources{}, err
		}
		if loaded {
			sources.Global = path
			cfg = merge(cfg, fileCfg)
		}
	}

	projectPath, mustExist := filepath.Join(workDir, FileName), false
	if explicitPath != "" {
		projectPath, mustExist = explicitPath, true
		if !filepath.IsAbs(projectPath) {
			projectPath = filepath.Join(workDir, projectPath)
		}
	}
	fileCfg, loaded, err := loadFile(projectPath, mustExist)
	if err != nil {
		return Config{}, Sources{}, err
	}
	if loaded {
		sources.Project = projectPath
		cfg = merge(cfg, fileCfg)
	}

	dotEnvPath := filepath.Join(workDir, ".env")
	if dotEnv, err := godotenv.Read(dotEnvPath); err == nil {
		sources.DotEnv = dotEnvPath
		for k, v := range dotEnv {
			if _, set := env[k]; !set {
				env[k] = v
			}
		}
	}
	cfg = ApplyEnv(cfg, env)

	if err := Validate(cfg); err != nil {
		return Config{}, Sources{}, err
	}

	return cfg, sources, nil
}

// ApplyEnv overrides cfg with TINYTODO_* variables.
func ApplyEnv(cfg Config, env map[string]string) Config {
	set := func(key string, dst *string) {
		if v, ok := env[key]; ok && v != "" {
			*dst = v
		}
	}
	set("TINYTODO_LISTEN", &cfg.Listen)
	set("TINYTODO_DATABASE", &cfg.Database)
	set("TINYTODO_SETTINGS_DIR", &cfg.SettingsDir)
	set("TINYTODO_TOKEN", &cfg.Token)
	set("TINYTODO_TABLE_PREFIX", &cfg.TablePrefix)
	set("TINYTODO_ALL_TASKS_NAME", &cfg.AllTasksName)
	set("TINYTODO_LOG_LEVEL", &cfg.LogLevel)
	return cfg
}

// Validate checks the fields every command relies on.
func Validate(cfg Config) error {
	switch {
	case strings.TrimSpace(cfg.Listen) == "":
		return fmt.Errorf("%w: listen cannot be empty", errConfigInvalid)
	case strings.TrimSpace(cfg.Database) == "":
		return fmt.Errorf("%w: database cannot be empty", errConfigInvalid)
	case strings.TrimSpace(cfg.SettingsDir) == "":
		return fmt.Errorf("%w: settings_dir cannot be empty", errConfigInvalid)
	case !logging.ValidLevel(cfg.LogLevel):
		return fmt.Errorf("%w: unknown log_level %q", errConfigInvalid, cfg.LogLevel)
	case strings.ContainsAny(cfg.TablePrefix, " ;\"'`"):
		return fmt.Errorf("%w: table_prefix %q", errConfigInvalid, cfg.TablePrefix)
	}
	return nil
}

// merge overlays the non-empty fields of override onto base.
func merge(base, override Config) Config {
	pick := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	pick(&base.Listen, override.Listen)
	pick(&base.Database, override.Database)
	pick(&base.SettingsDir, override.SettingsDir)
	pick(&base.Token, override.Token)
	pick(&base.TablePrefix, override.TablePrefix)
	pick(&base.AllTasksName, override.AllTasksName)
	pick(&base.LogLevel, override.LogLevel)
	return base
}

// loadFile loads a config file. If mustExist is false, a missing file returns zero config.
func loadFile(path string, mustExist bool) (Config, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if mustExist {
				return Config{}, false, fmt.Errorf("%w: %s", errConfigFileNotFound, path)
			}
			return Config{}, false, nil
		}
		return Config{}, false, fmt.Errorf("%w: %s", errConfigFileRead, path)
	}

	cfg, err := parse(data)
	if err != nil {
		return Config{}, false, fmt.Errorf("%w %s: %w", errConfigInvalid, path, err)
	}

	return cfg, true, nil
}

func parse(data []byte) (Config, error) {
	// Standardize JSONC to JSON
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, fmt.Errorf("invalid JSONC: %w", err)
	}

	var cfg Config
	dec := json.NewDecoder(strings.NewReader(string(standardized)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func globalPath(env map[string]string) string {
	if xdg := env["XDG_CONFIG_HOME"]; xdg != "" {
		return filepath.Join(xdg, "tinytodo", "config.json")
	}
	if home := homeDir(env); home != "" {
		return filepath.Join(home, ".config", "tinytodo", "config.json")
	}
	return ""
}

func homeDir(env map[string]string) string {
	if home := env["HOME"]; home != "" {
		return home
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}

func envMap(environ []string) map[string]string {
	env := make(map[string]string, len(environ))
	for _, kv := range environ {
		if k, v, ok := strings.Cut(kv, "="); ok {
			env[k] = v
		}
	}
	return env
}
