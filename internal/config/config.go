package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Log     LogConfig     `mapstructure:"log" validate:"required"`
	Data    DataConfig    `mapstructure:"data" validate:"required"`
	Grading GradingConfig `mapstructure:"grading" validate:"required"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
}

// DataConfig locates the JSON files the registrar reads at startup and
// writes at exit.
type DataConfig struct {
	Dir string `mapstructure:"dir" validate:"required"`
}

// GradingConfig controls aggregate computations.
type GradingConfig struct {
	// GPAPolicy decides whether ungraded (-1) courses count toward the GPA.
	GPAPolicy string `mapstructure:"gpa_policy" validate:"required,oneof=include_ungraded exclude_ungraded"`
}
