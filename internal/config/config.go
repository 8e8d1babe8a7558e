// Package config resolves process configuration from the environment, an
// optional .env file and an optional config.yaml in the vocuz home directory.
// Precedence, highest first: environment, .env, config.yaml, defaults.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	BackendLocal  = "local"
	BackendRemote = "remote"

	envPrefix = "VOCUZ"
)

type Config struct {
	HomeDir    string
	DBPath     string
	Backend    string
	APIURL     string
	ListenAddr string
	LogLevel   string
	LogFile    string
	// ConfigFile is the config.yaml that was read, empty when none existed.
	ConfigFile string
}

// CredentialsPath is where the CLI keeps the signed-in token.
func (c *Config) CredentialsPath() string {
	return filepath.Join(c.HomeDir, "credentials.yaml")
}

// PreferencesPath is the timer settings and theme file.
func (c *Config) PreferencesPath() string {
	return filepath.Join(c.HomeDir, "preferences.yaml")
}

// SlogLevel parses LogLevel. Validate has already rejected bad values.
func (c *Config) SlogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// Load reads configuration with ".env" in the working directory.
func Load() (*Config, error) {
	return LoadWithEnvFile(".env")
}

// LoadWithEnvFile is Load with an explicit dotenv path. A missing file is
// not an error.
func LoadWithEnvFile(envFile string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := applyDotenv(v, envFile); err != nil {
		return nil, err
	}

	home := v.GetString("home_dir")
	if home == "" {
		userHome, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolving home directory: %w", err)
		}
		home = filepath.Join(userHome, ".vocuz")
	}

	v.SetDefault("db", filepath.Join(home, "vocuz.db"))
	v.SetDefault("backend", BackendLocal)
	v.SetDefault("api_url", "http://127.0.0.1:8787")
	v.SetDefault("listen_addr", "127.0.0.1:8787")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", filepath.Join(home, "vocuz.log"))

	cfgFile := filepath.Join(home, "config.yaml")
	v.SetConfigFile(cfgFile)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading %s: %w", cfgFile, err)
			}
		}
		cfgFile = ""
	}

	cfg := &Config{
		HomeDir:    home,
		DBPath:     v.GetString("db"),
		Backend:    strings.ToLower(v.GetString("backend")),
		APIURL:     strings.TrimRight(v.GetString("api_url"), "/"),
		ListenAddr: v.GetString("listen_addr"),
		LogLevel:   strings.ToLower(v.GetString("log_level")),
		LogFile:    v.GetString("log_file"),
		ConfigFile: cfgFile,
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

// applyDotenv feeds VOCUZ_* entries of envFile into v without touching the
// process environment. Variables already set in the environment win.
func applyDotenv(v *viper.Viper, envFile string) error {
	if envFile == "" {
		return nil
	}
	vars, err := godotenv.Read(envFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading %s: %w", envFile, err)
	}
	for k, val := range vars {
		key, ok := strings.CutPrefix(k, envPrefix+"_")
		if !ok {
			continue
		}
		if _, set := os.LookupEnv(k); set {
			continue
		}
		v.Set(strings.ToLower(key), val)
	}
	return nil
}

func (c *Config) Validate() error {
	switch c.Backend {
	case BackendLocal:
		if c.DBPath == "" {
			return fmt.Errorf("VOCUZ_DB must not be empty")
		}
	case BackendRemote:
		u, err := url.Parse(c.APIURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("VOCUZ_API_URL must be an http(s) URL, got %q", c.APIURL)
		}
	default:
		return fmt.Errorf("VOCUZ_BACKEND must be %q or %q, got %q", BackendLocal, BackendRemote, c.Backend)
	}

	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return fmt.Errorf("VOCUZ_LOG_LEVEL must be debug, info, warn or error, got %q", c.LogLevel)
	}
	return nil
}
