package app

import (
	stderrors "errors"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/roster/internal/cmd/cmdutil"
	"github.com/agentstation/roster/pkg/constants"
	"github.com/agentstation/roster/pkg/errors"
)

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Roster configuration
	Pipeline    string
	NamePolicy  string
	EmailPolicy string
	Sheet       string
	// Columns maps a required column name to the file column holding it.
	Columns map[string]string

	// Logging configuration. LogLevel is the --log-level flag, EnvLogLevel
	// the LOG_LEVEL environment variable.
	LogLevel    string
	EnvLogLevel string
	LogFormat   string
	LogOutput   string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (applied later by UpdateFromFlags)
// 2. Environment variables (ROSTER_PIPELINE, ROSTER_SHEET, ...)
// 3. .env files
// 4. Config file (configFile, else ~/.roster.yaml or ./.roster.yaml)
// 5. Defaults
func LoadConfig(configFile string) (*Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	v := viper.New()
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.NewConfigError("config", "failed to read "+configFile, err)
		}
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(constants.DefaultConfigName)

		// A missing config file is fine, a broken one is not.
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !stderrors.As(err, &notFound) {
				return nil, errors.NewConfigError("config", "failed to parse config file", err)
			}
		}
	}

	columns, err := columnMapping(v.GetStringMapString("columns"))
	if err != nil {
		return nil, err
	}

	return &Config{
		ConfigFile: v.ConfigFileUsed(),

		Pipeline:    v.GetString("pipeline"),
		NamePolicy:  v.GetString("name_policy"),
		EmailPolicy: v.GetString("email_policy"),
		Sheet:       v.GetString("sheet"),
		Columns:     columns,
		Format:      v.GetString("format"),

		EnvLogLevel: os.Getenv("LOG_LEVEL"),
		LogFormat:   getEnvOrDefault("LOG_FORMAT", "auto"),
		LogOutput:   getEnvOrDefault("LOG_OUTPUT", "stderr"),
	}, nil
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags to ensure flag
// values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if format != "" {
		c.Format = format
	}
	c.LogLevel = logLevel
}

// columnMapping canonicalizes the configured column names. Viper lowercases
// map keys, so "member card id" is matched back to "Member Card ID".
func columnMapping(raw map[string]string) (map[string]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	columns := make(map[string]string, len(raw))
	for key, column := range raw {
		canonical, ok := cmdutil.CanonicalColumn(key)
		if !ok {
			return nil, errors.NewConfigError("columns", "unknown required column "+key, nil)
		}
		columns[canonical] = column
	}
	return columns, nil
}

// loadEnvFiles loads environment variables from .env files.
func loadEnvFiles() {
	// .env.local overrides .env
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
