package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// envPrefix is the environment variable prefix used by all settings.
const envPrefix = "RECREATION"

var (
	ErrConfigFileNotFound = errors.New("config: file not found")
	ErrConfigParseError   = errors.New("config: parse error")
	ErrConfigValidation   = errors.New("config: validation failed")
)

var global atomic.Pointer[Config]

// Get returns the configuration of the last successful Load, or nil.
func Get() *Config { return global.Load() }

type loadOptions struct {
	configPath  string
	searchPaths []string
	envFiles    []string
	overrides   map[string]interface{}
}

// LoadOption customises Load.
type LoadOption func(*loadOptions)

// WithConfigPath reads the YAML file at path.
func WithConfigPath(path string) LoadOption {
	return func(o *loadOptions) { o.configPath = path }
}

// WithSearchPaths looks for config.yaml in each directory in turn when no
// explicit path is given.
func WithSearchPaths(paths ...string) LoadOption {
	return func(o *loadOptions) { o.searchPaths = append(o.searchPaths, paths...) }
}

// WithEnvFiles loads additional dotenv files before reading the environment.
func WithEnvFiles(files ...string) LoadOption {
	return func(o *loadOptions) { o.envFiles = append(o.envFiles, files...) }
}

// WithOverrides sets keys that take precedence over every other source.
func WithOverrides(overrides map[string]interface{}) LoadOption {
	return func(o *loadOptions) { o.overrides = overrides }
}

// newViper builds a Viper instance with YAML file type, the RECREATION_ env
// prefix and a "." → "_" key replacer, so "cache.redis.addr" resolves to
// RECREATION_CACHE_REDIS_ADDR.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setViperDefaults(v)
	return v
}

// loadDotEnv reads .env next to the config file and in the working
// directory.  Existing environment variables are never overwritten.
func loadDotEnv(configPath string, extra []string) error {
	candidates := append([]string{}, extra...)
	if configPath != "" {
		candidates = append(candidates, filepath.Join(filepath.Dir(configPath), ".env"))
	}
	candidates = append(candidates, ".env")

	seen := make(map[string]bool, len(candidates))
	for _, path := range candidates {
		if seen[path] {
			continue
		}
		seen[path] = true
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("%w: dotenv %q: %v", ErrConfigParseError, path, err)
		}
	}
	return nil
}

// Load merges, in increasing precedence, built-in defaults, the YAML config
// file, .env files, RECREATION_* environment variables and explicit
// overrides.  The result is validated and stored for Get.
func Load(opts ...LoadOption) (*Config, error) {
	o := &loadOptions{}
	for _, opt := range opts {
		opt(o)
	}

	if err := loadDotEnv(o.configPath, o.envFiles); err != nil {
		return nil, err
	}

	v := newViper()
	switch {
	case o.configPath != "":
		if _, err := os.Stat(o.configPath); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrConfigFileNotFound, o.configPath)
		}
		v.SetConfigFile(o.configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConfigParseError, err)
		}
	case len(o.searchPaths) > 0:
		v.SetConfigName("config")
		for _, p := range o.searchPaths {
			v.AddConfigPath(p)
		}
		if err := v.ReadInConfig(); err != nil {
			var nf viper.ConfigFileNotFoundError
			if !errors.As(err, &nf) {
				return nil, fmt.Errorf("%w: %v", ErrConfigParseError, err)
			}
		}
	}
	for k, val := range o.overrides {
		v.Set(k, val)
	}

	cfg, err := unmarshalAndFinalize(v)
	if err != nil {
		return nil, err
	}
	global.Store(cfg)
	return cfg, nil
}

// LoadFromEnv builds a Config from RECREATION_* environment variables and
// defaults only.
func LoadFromEnv() (*Config, error) {
	return Load()
}

func unmarshalAndFinalize(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParseError, err)
	}

	ApplyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigValidation, err)
	}
	return cfg, nil
}

// Watch monitors configPath and invokes onChange with the newly parsed
// Config whenever the file changes.  A change that fails to parse or
// validate is passed to onError, when given, and onChange is skipped.
//
// Watch is non-blocking; viper runs the watch loop in its own goroutine.
// Callers apply only the settings that are safe to change at runtime.
func Watch(configPath string, onChange func(*Config), onError func(error)) error {
	v := newViper()
	v.SetConfigFile(configPath)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("%w: %v", ErrConfigParseError, err)
	}

	v.OnConfigChange(func(_ fsnotify.Event) {
		cfg, err := unmarshalAndFinalize(v)
		if err != nil {
			if onError != nil {
				onError(err)
			}
			return
		}
		global.Store(cfg)
		onChange(cfg)
	})
	v.WatchConfig()
	return nil
}

// MustLoad is Load that panics on error, for use in main().
func MustLoad(opts ...LoadOption) *Config {
	cfg, err := Load(opts...)
	if err != nil {
		panic(fmt.Sprintf("config: MustLoad failed: %v", err))
	}
	return cfg
}

//Personal.AI order the ending
