package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of every environment variable read by Load.
const EnvPrefix = "COURSEREG"

// Default values.
const (
	DefaultLogLevel  = "info"
	DefaultDataDir   = "."
	DefaultGPAPolicy = "exclude_ungraded"
)

// Flag names registered by RegisterFlags.
const (
	FlagConfig    = "config"
	FlagDataDir   = "data-dir"
	FlagLogLevel  = "log-level"
	FlagGPAPolicy = "gpa-policy"
)

// flagKeys maps flag names to configuration keys.
var flagKeys = map[string]string{
	FlagDataDir:   "data.dir",
	FlagLogLevel:  "log.level",
	FlagGPAPolicy: "grading.gpa_policy",
}

// RegisterFlags adds the configuration flags to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String(FlagConfig, "", "path to a YAML configuration file")
	fs.String(FlagDataDir, DefaultDataDir, "directory holding courses.json, Courses/, Students/ and Selected_Courses/")
	fs.String(FlagLogLevel, DefaultLogLevel, "log level (debug, info, warn, error)")
	fs.String(FlagGPAPolicy, DefaultGPAPolicy, "how ungraded courses enter the GPA (include_ungraded, exclude_ungraded)")
}

// Load configuration from defaults, an optional config file, environment
// variables and flags, in increasing order of precedence.
// flags may be nil. Without a --config flag, "coursereg.yaml" is looked up in
// the working directory and silently skipped when absent.
// Returns a populated Config struct or an error if loading/validation fails.
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	// Set default values
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("data.dir", DefaultDataDir)
	v.SetDefault("grading.gpa_policy", DefaultGPAPolicy)

	// Configure config file
	configPath := ""
	if flags != nil {
		if f := flags.Lookup(FlagConfig); f != nil {
			configPath = f.Value.String()
		}
	}
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("coursereg")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// Configure environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Explicitly bind environment variables so Unmarshal sees them
	bindEnvs := []struct {
		key    string
		envVar string
	}{
		{"log.level", EnvPrefix + "_LOG_LEVEL"},
		{"data.dir", EnvPrefix + "_DATA_DIR"},
		{"grading.gpa_policy", EnvPrefix + "_GRADING_GPA_POLICY"},
	}

	for _, env := range bindEnvs {
		if err := v.BindEnv(env.key, env.envVar); err != nil {
			return nil, fmt.Errorf("error binding environment variable %s: %w", env.envVar, err)
		}
	}

	// Flags override everything else when set
	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("error binding flag %s: %w", name, err)
			}
		}
	}

	// Unmarshal and validate
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	cfg.Grading.GPAPolicy = strings.ToLower(strings.TrimSpace(cfg.Grading.GPAPolicy))

	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}
