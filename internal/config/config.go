// Package config handles loading tasklist.toml configuration files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/amonks/tasklist/internal/paths"
)

// ProjectFileName is the name of the per-directory config file.
const ProjectFileName = "tasklist.toml"

// Defaults applied after merging.
const (
	DefaultVersion  = 3
	DefaultBackend  = "file"
	DefaultKey      = "todos-v3"
	DefaultWebAddr  = "127.0.0.1:8080"
	DefaultLogLevel = "warn"
)

// Config represents the tasklist.toml configuration file.
type Config struct {
	// Version selects the capability level (1, 2 or 3).
	Version int   `toml:"version"`
	Store   Store `toml:"store"`
	Web     Web   `toml:"web"`
	Log     Log   `toml:"log"`
}

// Store contains persistence configuration.
type Store struct {
	// Backend is one of memory, file, redis or mysql.
	Backend string `toml:"backend"`

	// Key is the key the collection is stored under.
	Key string `toml:"key"`

	// Dir is the file backend directory. Defaults to the state directory.
	Dir string `toml:"dir"`

	RedisURL    string `toml:"redis-url"`
	RedisPrefix string `toml:"redis-prefix"`
	MySQLDSN    string `toml:"mysql-dsn"`
}

// Web contains browser UI configuration.
type Web struct {
	Addr string `toml:"addr"`
}

// Log contains logging configuration.
type Log struct {
	// Level is a logrus level name.
	Level string `toml:"level"`
}

// Load loads configuration from dir and the global config file, then fills
// in defaults. Missing files are not an error. A relative store.dir in the
// project file is resolved against dir.
func Load(dir string) (*Config, error) {
	globalPath, err := paths.GlobalConfigPath()
	if err != nil {
		return nil, err
	}

	globalCfg, _, err := loadConfigFile(globalPath)
	if err != nil {
		return nil, err
	}

	projectCfg, projectMeta, err := loadConfigFile(filepath.Join(dir, ProjectFileName))
	if err != nil {
		return nil, err
	}

	merged := mergeConfigs(globalCfg, projectCfg, projectMeta)
	if projectMeta.IsDefined("store", "dir") && merged.Store.Dir != "" && !filepath.IsAbs(merged.Store.Dir) {
		merged.Store.Dir = filepath.Join(dir, merged.Store.Dir)
	}
	merged.applyDefaults()
	return merged, nil
}

func loadConfigFile(path string) (*Config, toml.MetaData, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, toml.MetaData{}, nil
	}
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("read config file %s: %w", path, err)
	}

	var cfg Config
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("parse config file %s: %w", path, err)
	}

	return &cfg, meta, nil
}

func mergeConfigs(globalCfg, projectCfg *Config, projectMeta toml.MetaData) *Config {
	if globalCfg == nil {
		globalCfg = &Config{}
	}
	if projectCfg == nil {
		projectCfg = &Config{}
	}

	merged := Config{}
	merged.Version = globalCfg.Version
	if projectMeta.IsDefined("version") {
		merged.Version = projectCfg.Version
	}
	merged.Store.Backend = mergeString(projectMeta.IsDefined("store", "backend"), projectCfg.Store.Backend, globalCfg.Store.Backend)
	merged.Store.Key = mergeString(projectMeta.IsDefined("store", "key"), projectCfg.Store.Key, globalCfg.Store.Key)
	merged.Store.Dir = mergeString(projectMeta.IsDefined("store", "dir"), projectCfg.Store.Dir, globalCfg.Store.Dir)
	merged.Store.RedisURL = mergeString(projectMeta.IsDefined("store", "redis-url"), projectCfg.Store.RedisURL, globalCfg.Store.RedisURL)
	merged.Store.RedisPrefix = mergeString(projectMeta.IsDefined("store", "redis-prefix"), projectCfg.Store.RedisPrefix, globalCfg.Store.RedisPrefix)
	merged.Store.MySQLDSN = mergeString(projectMeta.IsDefined("store", "mysql-dsn"), projectCfg.Store.MySQLDSN, globalCfg.Store.MySQLDSN)
	merged.Web.Addr = mergeString(projectMeta.IsDefined("web", "addr"), projectCfg.Web.Addr, globalCfg.Web.Addr)
	merged.Log.Level = mergeString(projectMeta.IsDefined("log", "level"), projectCfg.Log.Level, globalCfg.Log.Level)
	return &merged
}

func mergeString(projectDefined bool, projectValue, globalValue string) string {
	value := globalValue
	if projectDefined {
		value = projectValue
	}
	return strings.TrimSpace(value)
}

func (c *Config) applyDefaults() {
	if c.Version == 0 {
		c.Version = DefaultVersion
	}
	if c.Store.Backend == "" {
		c.Store.Backend = DefaultBackend
	}
	if c.Store.Key == "" {
		c.Store.Key = DefaultKey
	}
	if c.Web.Addr == "" {
		c.Web.Addr = DefaultWebAddr
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
}
