package store

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	// DefaultPath is where journals live unless configured otherwise.
	DefaultPath = "~/.jot.yaml"

	KeyPath     = "path"
	KeyLogLevel = "log-level"
	KeyLogFile  = "log-file"
)

// Config locates the journal file.
type Config interface {
	Path() string
}

// FileConfig is the resolved configuration for one run.
type FileConfig struct {
	StorePath string `json:"path"`
	LogLevel  string `json:"logLevel"`
	LogFile   string `json:"logFile,omitempty"`
	// ConfigFile is the config file viper read, if any.
	ConfigFile string `json:"configFile,omitempty"`
}

// Path implements Config.
func (f *FileConfig) Path() string {
	return f.StorePath
}

// StaticConfig is a Config with a fixed path, handy for tests and for callers
// that already know where the file is.
type StaticConfig string

// Path implements Config.
func (s StaticConfig) Path() string {
	return string(s)
}

// LoadConfig resolves configuration from flags bound to viper, JOT_* env vars
// and an optional .jotrc.yaml file.
func LoadConfig() (*FileConfig, error) {
	viper.SetDefault(KeyPath, DefaultPath)
	viper.SetDefault(KeyLogLevel, "warn")
	viper.SetDefault(KeyLogFile, "")
	viper.SetConfigName(".jotrc") // .yaml is implicit
	viper.SetConfigType("yaml")
	viper.SetEnvPrefix("JOT")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if override := os.Getenv("JOT_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}
	viper.AddConfigPath("$HOME")
	viper.AddConfigPath("./")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	path, err := ExpandPath(viper.GetString(KeyPath))
	if err != nil {
		return nil, err
	}
	logFile := viper.GetString(KeyLogFile)
	if logFile != "" {
		if logFile, err = ExpandPath(logFile); err != nil {
			return nil, err
		}
	}

	return &FileConfig{
		StorePath:  path,
		LogLevel:   viper.GetString(KeyLogLevel),
		LogFile:    logFile,
		ConfigFile: viper.ConfigFileUsed(),
	}, nil
}

// ExpandPath resolves a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", errors.New("store: path required")
	}
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf("store: expand %q: %w", path, err)
	}
	return expanded, nil
}
