package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"
)

// Token sources reported by ResolveToken.
const (
	SourceEnv       = "environment"
	SourceFile      = "config file"
	SourceGitConfig = "gitconfig"
	SourceNone      = "none"
)

// Environment variables read by ApplyEnv and ResolveToken.
const (
	EnvToken   = "GITHUB_TOKEN"
	EnvBaseURL = "GITHUB_API_URL"
)

// MaxPerPage is the largest page size GitHub serves.
const MaxPerPage = 100

// Config represents the github3 configuration
type Config struct {
	GitHub GitHubConfig `yaml:"github"`
	Log    LogConfig    `yaml:"log"`
}

// GitHubConfig holds API access settings
type GitHubConfig struct {
	Token   string `yaml:"token,omitempty"`
	User    string `yaml:"user,omitempty"`
	BaseURL string `yaml:"base_url,omitempty"`
	PerPage int    `yaml:"per_page,omitempty"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string `yaml:"level,omitempty"`
	Format string `yaml:"format,omitempty"`
}

// LoadConfig loads configuration from the default location
func LoadConfig() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	return LoadConfigFromPath(configPath)
}

// LoadConfigFromPath loads configuration from a specific path
func LoadConfigFromPath(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &Config{}, nil // Return empty config if file doesn't exist
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

// SaveConfig saves configuration to the default location
func (c *Config) SaveConfig() error {
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}

	return c.SaveConfigToPath(configPath)
}

// SaveConfigToPath saves configuration to a specific path. The file may hold
// a token, so it is only readable by its owner.
func (c *Config) SaveConfigToPath(path string) error {
	configDir := filepath.Dir(path)
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetConfigPath returns the default configuration file path
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(homeDir, ".github3", "config.yaml"), nil
}

// GetGitConfigPath returns the path of the global git configuration
func GetGitConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(homeDir, ".gitconfig"), nil
}

// ApplyEnv overrides the base URL from GITHUB_API_URL when it is set.
func (c *Config) ApplyEnv() {
	if v := strings.TrimSpace(os.Getenv(EnvBaseURL)); v != "" {
		c.GitHub.BaseURL = v
	}
}

// ResolveToken returns the token to authenticate with and where it came from:
// GITHUB_TOKEN first, then the config file, then the [github] section of
// gitconfigPath. An empty gitconfigPath skips the last step.
func (c *Config) ResolveToken(gitconfigPath string) (string, string, error) {
	if token := strings.TrimSpace(os.Getenv(EnvToken)); token != "" {
		return token, SourceEnv, nil
	}

	if token := strings.TrimSpace(c.GitHub.Token); token != "" {
		return token, SourceFile, nil
	}

	if gitconfigPath != "" {
		gc, err := LoadGitConfig(gitconfigPath)
		if err != nil {
			return "", SourceNone, err
		}
		if gc.Token != "" {
			return gc.Token, SourceGitConfig, nil
		}
	}

	return "", SourceNone, nil
}

// ResolveUser returns the configured login, falling back to github.user in
// gitconfigPath.
func (c *Config) ResolveUser(gitconfigPath string) (string, error) {
	if c.GitHub.User != "" {
		return c.GitHub.User, nil
	}
	if gitconfigPath == "" {
		return "", nil
	}
	gc, err := LoadGitConfig(gitconfigPath)
	if err != nil {
		return "", err
	}
	return gc.User, nil
}

// GitConfig is the [github] section of a git configuration file
type GitConfig struct {
	User  string
	Token string
}

// LoadGitConfig reads github.user and github.token from a git configuration
// file. A missing file yields an empty result.
func LoadGitConfig(path string) (*GitConfig, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &GitConfig{}, nil
	}

	cfg, err := ini.LoadSources(ini.LoadOptions{
		AllowBooleanKeys:        true,
		SkipUnrecognizableLines: true,
		IgnoreInlineComment:     true,
	}, path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse git config %s: %w", path, err)
	}

	section := cfg.Section("github")
	return &GitConfig{
		User:  strings.TrimSpace(section.Key("user").String()),
		Token: strings.TrimSpace(section.Key("token").String()),
	}, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	var errs []error

	if c.GitHub.PerPage < 0 || c.GitHub.PerPage > MaxPerPage {
		errs = append(errs, fmt.Errorf("github.per_page must be between 1 and %d (0 for the default), got %d", MaxPerPage, c.GitHub.PerPage))
	}

	if c.GitHub.BaseURL != "" {
		u, err := url.Parse(c.GitHub.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Errorf("github.base_url must be an absolute URL, got %q", c.GitHub.BaseURL))
		} else if u.Scheme != "http" && u.Scheme != "https" {
			errs = append(errs, fmt.Errorf("github.base_url must use http or https, got %q", u.Scheme))
		}
	}

	switch strings.ToLower(c.Log.Level) {
	case "", "trace", "debug", "info", "warn", "warning", "error", "fatal", "panic", "disabled":
	default:
		errs = append(errs, fmt.Errorf("log.level %q is not a known level", c.Log.Level))
	}

	switch strings.ToLower(c.Log.Format) {
	case "", "console", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format must be console or json, got %q", c.Log.Format))
	}

	return errors.Join(errs...)
}
