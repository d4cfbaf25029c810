package config

// Config is the root configuration for a donors run.
type Config struct {
	Instance   InstanceConfig   `yaml:"instance"`
	Log        LogConfig        `yaml:"log"`
	Input      InputConfig      `yaml:"input"`
	Output     OutputConfig     `yaml:"output"`
	Validation ValidationConfig `yaml:"validation"`
	Batch      BatchConfig      `yaml:"batch"`
	Pipeline   PipelineConfig   `yaml:"pipeline"`
	Database   DatabaseConfig   `yaml:"database"`
	Server     ServerConfig     `yaml:"server"`
}

// InstanceConfig labels this deployment in logs and health output.
type InstanceConfig struct {
	ID string `yaml:"id"`
}

// LogConfig holds slog settings.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// InputConfig describes the pipe-delimited contributions file.
type InputConfig struct {
	Path         string `yaml:"path"`
	MinFields    int    `yaml:"min_fields"`     // Records with fewer fields are dropped
	MaxLineBytes int    `yaml:"max_line_bytes"` // Scanner buffer limit
}

// OutputConfig holds the report file locations.
type OutputConfig struct {
	ZipPath         string `yaml:"zip_path"`
	DatePath        string `yaml:"date_path"`
	TrailingNewline bool   `yaml:"trailing_newline"`
}

// ValidationConfig bounds accepted records. The year bounds apply to the
// date report and are exclusive; MaxAmount is inclusive and applies to both.
type ValidationConfig struct {
	MinYear   int   `yaml:"min_year"`
	MaxYear   int   `yaml:"max_year"`
	MaxAmount int64 `yaml:"max_amount"`
}

// BatchConfig holds date report settings.
type BatchConfig struct {
	Rounding string `yaml:"rounding"` // half_even or half_up
}

// PipelineConfig sizes the queues between the reader and the two reports.
type PipelineConfig struct {
	QueueSize int `yaml:"queue_size"`
	DrainSize int `yaml:"drain_size"`
}

// DatabaseConfig holds the optional PostgreSQL report store.
type DatabaseConfig struct {
	Enabled   bool     `yaml:"enabled"`
	Reports   DBConfig `yaml:"reports"`
	BatchSize int      `yaml:"batch_size"`
}

// DBConfig holds a single database connection.
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"ssl_mode"`
	MaxConns int    `yaml:"max_conns"`
	MinConns int    `yaml:"min_conns"`
}

// ServerConfig holds the health, metrics and live feed HTTP server.
type ServerConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Port        int    `yaml:"port"`
	MetricsPath string `yaml:"metrics_path"`
	FeedPath    string `yaml:"feed_path"`
}
