package config

import (
	"time"
)

// AppConfig represents the top-level configuration.
type AppConfig struct {
	API     APIConfig     `yaml:"api"`
	Report  ReportConfig  `yaml:"report"`
	Special SpecialConfig `yaml:"special"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
	Upload  UploadConfig  `yaml:"upload"`
}

// APIConfig holds settings for the backup-status API.
type APIConfig struct {
	URL             string        `yaml:"url"              validate:"required,url"`
	Key             string        `yaml:"key"              validate:"required"`
	PageSize        int           `yaml:"page_size"        validate:"gt=0"`
	Statuses        []string      `yaml:"statuses"         validate:"min=1,dive,required"`
	FilterScheduled bool          `yaml:"filter_scheduled"`
	Timeout         time.Duration `yaml:"timeout"          validate:"gt=0"`
}

// ReportConfig controls the date window and the output file.
type ReportConfig struct {
	Timezone   string `yaml:"timezone"    validate:"required"`
	DayOffset  int    `yaml:"day_offset"  validate:"min=0"`
	OutputDir  string `yaml:"output_dir"  validate:"required"`
	SheetTitle string `yaml:"sheet_title" validate:"required"`
}

// SpecialConfig describes the cloud-identity backup section.
type SpecialConfig struct {
	Methods      []string `yaml:"methods"       validate:"min=1"`
	Keywords     []string `yaml:"keywords"      validate:"min=1"`
	SectionTitle string   `yaml:"section_title" validate:"required"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// MetricsConfig holds the optional Pushgateway target.
type MetricsConfig struct {
	PushgatewayURL string `yaml:"pushgateway_url" validate:"omitempty,url"`
	Job            string `yaml:"job"`
}

// UploadConfig holds settings for archiving the report to S3-compatible storage.
type UploadConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Endpoint  string `yaml:"endpoint"   validate:"required_if=Enabled true"`
	Region    string `yaml:"region"`
	Bucket    string `yaml:"bucket"     validate:"required_if=Enabled true"`
	Prefix    string `yaml:"prefix"`
	AccessKey string `yaml:"access_key" validate:"required_if=Enabled true"`
	SecretKey string `yaml:"secret_key" validate:"required_if=Enabled true"`
}

// Default returns the built-in configuration used when no file is given.
func Default() *AppConfig {
	return &AppConfig{
		API: APIConfig{
			URL:             "https://api.backupradar.com/backups",
			PageSize:        1000,
			Statuses:        []string{"Failure", "Warning", "No Result", "Pending"},
			FilterScheduled: true,
			Timeout:         2 * time.Minute,
		},
		Report: ReportConfig{
			Timezone:   "Australia/Sydney",
			DayOffset:  1,
			OutputDir:  ".",
			SheetTitle: "Backup Report",
		},
		Special: SpecialConfig{
			Methods: []string{"Acronis API", "Acronis"},
			Keywords: []string{
				"OneDrive to Cloud storage",
				"Office 365 mailboxes to Cloud storage",
				"SharePoint sites to Cloud storage",
				"Microsoft 365 mailboxes to Cloud storage",
				"Microsoft Teams to Cloud storage",
			},
			SectionTitle: "M365 Acronis Backups",
		},
		Logging: LoggingConfig{Level: "info"},
		Metrics: MetricsConfig{Job: "backup_report"},
		Upload:  UploadConfig{Region: "us-east-1"},
	}
}
