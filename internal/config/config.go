// Package config loads the formbuilder settings from defaults, an optional
// formbuilder.yaml file, FORMBUILDER_* environment variables and flags.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	EnvPrefix  = "formbuilder"
	ConfigName = "formbuilder"
)

// Flag names registered by RegisterFlags.
const (
	FlagConfig       = "config"
	FlagAddr         = "addr"
	FlagLogLevel     = "log-level"
	FlagLogFormat    = "log-format"
	FlagRenderer     = "renderer"
	FlagTheme        = "theme"
	FlagThemeVariant = "theme-variant"
)

var flagKeys = map[string]string{
	FlagAddr:         "http.addr",
	FlagLogLevel:     "log.level",
	FlagLogFormat:    "log.format",
	FlagRenderer:     "renderer.default",
	FlagTheme:        "theme.name",
	FlagThemeVariant: "theme.variant",
}

type AppConfig struct {
	HTTP     HTTPConfig
	Log      LogConfig
	Renderer RendererConfig
	History  HistoryConfig
	Theme    ThemeConfig
	// File is the config file that was read, empty when none was found.
	File string
}

type HTTPConfig struct {
	Addr        string
	CORSOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

type RendererConfig struct {
	Default string
}

type HistoryConfig struct {
	UndoDepth int
}

type ThemeConfig struct {
	Name    string
	Variant string
}

// RegisterFlags defines the flags Load understands on fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String(FlagConfig, "", "path to a formbuilder.yaml config file")
	fs.String(FlagAddr, ":8080", "HTTP listen address")
	fs.String(FlagLogLevel, "info", "log level (debug, info, warn, error)")
	fs.String(FlagLogFormat, "text", "log format (text, json)")
	fs.String(FlagRenderer, "html", "default preview renderer")
	fs.String(FlagTheme, "", "theme name")
	fs.String(FlagThemeVariant, "", "theme variant")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.cors_origins", []string{"*"})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("renderer.default", "html")
	v.SetDefault("history.undo_depth", 50)
	v.SetDefault("theme.name", "")
	v.SetDefault("theme.variant", "")
}

// Load resolves the settings. fs may be nil; flags are only bound when they
// were registered with RegisterFlags, and only override other sources when
// set on the command line.
func Load(fs *pflag.FlagSet) (AppConfig, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	explicit := ""
	if fs != nil {
		for flag, key := range flagKeys {
			if f := fs.Lookup(flag); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return AppConfig{}, fmt.Errorf("config: bind %s: %w", flag, err)
				}
			}
		}
		if f := fs.Lookup(FlagConfig); f != nil {
			explicit = f.Value.String()
		}
	}

	if explicit != "" {
		v.SetConfigFile(explicit)
	} else {
		v.SetConfigName(ConfigName)
		v.AddConfigPath(".")
		v.AddConfigPath("config")
		v.AddConfigPath("/config")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit != "" || !errors.As(err, &notFound) {
			return AppConfig{}, fmt.Errorf("config: read config file: %w", err)
		}
	}

	cfg := AppConfig{
		HTTP: HTTPConfig{
			Addr:        v.GetString("http.addr"),
			CORSOrigins: v.GetStringSlice("http.cors_origins"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		Renderer: RendererConfig{
			Default: v.GetString("renderer.default"),
		},
		History: HistoryConfig{
			UndoDepth: v.GetInt("history.undo_depth"),
		},
		Theme: ThemeConfig{
			Name:    v.GetString("theme.name"),
			Variant: v.GetString("theme.variant"),
		},
		File: v.ConfigFileUsed(),
	}
	if cfg.History.UndoDepth < 0 {
		return AppConfig{}, fmt.Errorf("config: history.undo_depth must not be negative, got %d", cfg.History.UndoDepth)
	}
	return cfg, nil
}
