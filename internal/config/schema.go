package config

import "time"

// Config holds lpnmatch configuration.
// Stored at: {home}/config.yaml
type Config struct {
	Server  ServerCfg  `mapstructure:"server" yaml:"server" json:"server"`
	Extract ExtractCfg `mapstructure:"extract" yaml:"extract" json:"extract"`
	Output  OutputCfg  `mapstructure:"output" yaml:"output" json:"output"`
	Log     LogCfg     `mapstructure:"log" yaml:"log" json:"log"`
}

// ServerCfg configures the HTTP server.
type ServerCfg struct {
	Host        string `mapstructure:"host" yaml:"host" json:"host"`
	Port        string `mapstructure:"port" yaml:"port" json:"port"`
	MaxUploadMB int    `mapstructure:"max_upload_mb" yaml:"max_upload_mb" json:"max_upload_mb"` // Multipart body limit
	ResultTTL   string `mapstructure:"result_ttl" yaml:"result_ttl" json:"result_ttl"`          // How long match results stay downloadable
}

// ExtractCfg configures PDF text extraction.
type ExtractCfg struct {
	Workers int `mapstructure:"workers" yaml:"workers" json:"workers"` // 0 or 1 reads PDFs sequentially
}

// OutputCfg configures where the CLI writes annotated reports.
type OutputCfg struct {
	// Dir overrides the output directory. Empty means next to the input
	// report. Supports ${ENV_VAR} syntax.
	Dir string `mapstructure:"dir" yaml:"dir" json:"dir"`
}

// LogCfg configures the process logger.
type LogCfg struct {
	Level  string `mapstructure:"level" yaml:"level" json:"level"`    // debug, info, warn, error
	Format string `mapstructure:"format" yaml:"format" json:"format"` // text or json
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerCfg{
			Host:        "127.0.0.1",
			Port:        "8080",
			MaxUploadMB: 64,
			ResultTTL:   "24h",
		},
		Extract: ExtractCfg{
			Workers: 4,
		},
		Log: LogCfg{
			Level:  "info",
			Format: "text",
		},
	}
}

// ResultTTLDuration parses Server.ResultTTL, falling back to 24h when
// it is empty or malformed.
func (c *Config) ResultTTLDuration() time.Duration {
	d, err := time.ParseDuration(c.Server.ResultTTL)
	if err != nil || d <= 0 {
		return 24 * time.Hour
	}
	return d
}

// MaxUploadBytes returns the multipart body limit in bytes.
func (c *Config) MaxUploadBytes() int64 {
	mb := c.Server.MaxUploadMB
	if mb <= 0 {
		mb = 64
	}
	return int64(mb) << 20
}

// OutputDir returns Output.Dir with environment references expanded.
func (c *Config) OutputDir() string {
	return ResolveEnvVars(c.Output.Dir)
}
