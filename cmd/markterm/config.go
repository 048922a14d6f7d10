package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/avi1989/markterm"
)

const (
	configDirName  = "markterm"
	configFileName = "config"
	configFileType = "toml"
	envPrefix      = "MARKTERM"
)

const (
	keyColor           = "color"
	keyTheme           = "theme"
	keyThemeFile       = "theme-file"
	keyWidth           = "width"
	keyKeepFrontMatter = "keep-front-matter"
)

type config struct {
	Color           markterm.ColorChoice
	Theme           string
	ThemeFile       string
	Width           int
	KeepFrontMatter bool
	// File is the config file that was read, empty when none was found.
	File string
}

func defaultConfigDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, configDirName)
}

// loadConfig merges defaults, the config file, MARKTERM_* variables and the
// flags that were set, in increasing priority. An explicit path must exist;
// the default location may be missing.
func loadConfig(path string, flags *pflag.FlagSet) (config, error) {
	v := viper.New()
	v.SetDefault(keyColor, markterm.ColorAuto.String())
	v.SetDefault(keyTheme, "auto")
	v.SetDefault(keyWidth, 0)
	v.SetDefault(keyKeepFrontMatter, false)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	for _, key := range []string{keyColor, keyTheme, keyThemeFile, keyWidth, keyKeepFrontMatter} {
		if f := flags.Lookup(key); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return config{}, fmt.Errorf("bind flag %s: %w", key, err)
			}
		}
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configFileName)
		v.SetConfigType(configFileType)
		v.AddConfigPath(defaultConfigDir())
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return config{}, fmt.Errorf("read config: %w", err)
		}
	}

	choice, err := markterm.ParseColorChoice(v.GetString(keyColor))
	if err != nil {
		return config{}, fmt.Errorf("config: %w", err)
	}
	cfg := config{
		Color:           choice,
		Theme:           strings.ToLower(strings.TrimSpace(v.GetString(keyTheme))),
		ThemeFile:       v.GetString(keyThemeFile),
		Width:           v.GetInt(keyWidth),
		KeepFrontMatter: v.GetBool(keyKeepFrontMatter),
		File:            v.ConfigFileUsed(),
	}
	if cfg.Width < 0 {
		return config{}, fmt.Errorf("config: width must not be negative, got %d", cfg.Width)
	}
	return cfg, nil
}
