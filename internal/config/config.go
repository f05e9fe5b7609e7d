package config

import (
	"errors"
	"fmt"
	"iconpad/internal/core/domain"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

const FileName = "iconpad"

type Config struct {
	LogLevel       string
	PaddingPercent int
	Input          string
	Backup         string
	Output         string
	PropagateDir   string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("icon.padding_percent", domain.DefaultPaddingPercent)
	v.SetDefault("icon.input", "icon.png")
	v.SetDefault("icon.backup", "icon_original_backup.png")
	v.SetDefault("icon.output", "icon_fixed_transparent.png")
	v.SetDefault("icon.propagate_dir", "icons")
}

// Load reads an optional iconpad.toml from dir. A missing file leaves every
// value at its default.
func Load(v *viper.Viper, dir string) (Config, error) {
	setDefaults(v)

	v.SetConfigName(FileName)
	v.SetConfigType("toml")
	v.AddConfigPath(dir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("could not read config file: %w", err)
		}
	}

	cfg := Config{
		LogLevel:       v.GetString("log.level"),
		PaddingPercent: v.GetInt("icon.padding_percent"),
		Input:          v.GetString("icon.input"),
		Backup:         v.GetString("icon.backup"),
		Output:         v.GetString("icon.output"),
		PropagateDir:   v.GetString("icon.propagate_dir"),
	}

	if err := (domain.PaddingConfig{PaddingPercent: cfg.PaddingPercent}).Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Level() zerolog.Level {
	switch c.LogLevel {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
