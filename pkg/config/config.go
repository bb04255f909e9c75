// Package config loads outline settings from the .outline config file, the
// environment and built-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"tableflip.dev/outline/pkg/document"
	"tableflip.dev/outline/pkg/keys"
	"tableflip.dev/outline/pkg/prefix"
)

const (
	// DefaultFile is the document opened when no name is given.
	DefaultFile = "defaultfile"
	// PathEnv names a directory searched first for the config file.
	PathEnv = "OUTLINE_CONFIG_PATH"
)

// Config is the resolved configuration.
type Config struct {
	// Source is the config file that was read, empty when none was found.
	Source   string
	Path     string
	File     string
	Editor   EditorConfig
	Autosave AutosaveConfig
	Log      LogConfig
	// Keys overrides default bindings, by intent.
	Keys map[keys.Intent][]string
}

// EditorConfig shapes documents and their rendering.
type EditorConfig struct {
	MaxIndentLevel int
	IndentWidth    int
	PrefixWidth    int
	Prefixes       []prefix.Kind
}

// AutosaveConfig controls the debounced save.
type AutosaveConfig struct {
	Delay  time.Duration
	Notice time.Duration
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level string
	File  string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("path", "~/.outline")
	v.SetDefault("file", DefaultFile)
	v.SetDefault("editor.max_indent_level", document.DefaultMaxIndentLevel)
	v.SetDefault("editor.indent_width", 2)
	v.SetDefault("editor.prefix_width", 4)
	v.SetDefault("editor.prefixes", []string{"bullet", "checkbox", "tag"})
	v.SetDefault("autosave.delay", "1500ms")
	v.SetDefault("autosave.notice", "2s")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
}

// Load reads the .outline config file (yaml) from $OUTLINE_CONFIG_PATH, the
// working directory or $HOME. A missing file is fine; every key can also be
// set through OUTLINE_* environment variables.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName(".outline") // .yaml is implicit
	v.SetConfigType("yaml")
	if override := os.Getenv(PathEnv); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
	}
	return load(v)
}

// LoadFile reads configuration from an explicit file.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	v.SetEnvPrefix("OUTLINE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read config file: %w", err)
		}
	}
	cfg, err := fromViper(v)
	if err != nil {
		return nil, err
	}
	cfg.Source = v.ConfigFileUsed()
	return cfg, nil
}

func fromViper(v *viper.Viper) (*Config, error) {
	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("config: expand path: %w", err)
	}
	cfg := &Config{
		Path: path,
		File: v.GetString("file"),
		Editor: EditorConfig{
			MaxIndentLevel: v.GetInt("editor.max_indent_level"),
			IndentWidth:    v.GetInt("editor.indent_width"),
			PrefixWidth:    v.GetInt("editor.prefix_width"),
		},
		Autosave: AutosaveConfig{
			Delay:  v.GetDuration("autosave.delay"),
			Notice: v.GetDuration("autosave.notice"),
		},
		Log: LogConfig{
			Level: v.GetString("log.level"),
			File:  v.GetString("log.file"),
		},
		Keys: make(map[keys.Intent][]string),
	}
	if cfg.Log.File == "" {
		cfg.Log.File = filepath.Join(cfg.Path, "outline.log")
	}
	if cfg.Log.File, err = homedir.Expand(cfg.Log.File); err != nil {
		return nil, fmt.Errorf("config: expand log file: %w", err)
	}

	for _, name := range v.GetStringSlice("editor.prefixes") {
		k, err := prefix.ParseKind(strings.TrimSpace(name))
		if err != nil {
			return nil, fmt.Errorf("config: editor.prefixes: %w", err)
		}
		cfg.Editor.Prefixes = append(cfg.Editor.Prefixes, k)
	}

	for _, i := range keys.Intents() {
		key := "keys." + i.String()
		if !v.IsSet(key) {
			continue
		}
		cfg.Keys[i] = v.GetStringSlice(key)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the editor cannot work with.
func (c *Config) Validate() error {
	switch {
	case c.Path == "":
		return errors.New("config: path required")
	case c.Editor.MaxIndentLevel < 1:
		return fmt.Errorf("config: editor.max_indent_level must be at least 1, got %d", c.Editor.MaxIndentLevel)
	case c.Editor.IndentWidth < 1:
		return fmt.Errorf("config: editor.indent_width must be at least 1, got %d", c.Editor.IndentWidth)
	case c.Autosave.Delay <= 0:
		return fmt.Errorf("config: autosave.delay must be positive, got %s", c.Autosave.Delay)
	case c.Autosave.Notice <= 0:
		return fmt.Errorf("config: autosave.notice must be positive, got %s", c.Autosave.Notice)
	}
	// The prefix column must hold a checkbox and its margin: "[x] ".
	if c.Editor.PrefixWidth < 4 {
		return fmt.Errorf("config: editor.prefix_width must be at least 4, got %d", c.Editor.PrefixWidth)
	}
	if _, err := c.Keymap(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// BasePath is where documents are stored.
func (c *Config) BasePath() string { return c.Path }

// DocumentOptions returns the options documents are created with.
func (c *Config) DocumentOptions() document.Options {
	f := document.Features{Indent: true}
	for _, k := range c.Editor.Prefixes {
		switch k {
		case prefix.Bullet:
			f.Bullet = true
		case prefix.Checkbox:
			f.Checkbox = true
		case prefix.Tag:
			f.Tag = true
		}
	}
	return document.Options{Features: f, MaxIndentLevel: c.Editor.MaxIndentLevel}
}

// Keymap returns the default keymap with configured overrides applied.
func (c *Config) Keymap() (*keys.Keymap, error) {
	km := keys.DefaultKeymap()
	for i, specs := range c.Keys {
		if err := km.Bind(i, specs...); err != nil {
			return nil, err
		}
	}
	return km, nil
}
