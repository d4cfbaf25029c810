package config

// Default values for optional configuration fields.
const (
	DefaultInstanceID   = "donors"
	DefaultLogLevel     = "info"
	DefaultInputPath    = "input/itcont.txt"
	DefaultMinFields    = 21
	DefaultMaxLineBytes = 1 << 20
	DefaultZipPath      = "output/medianvals_by_zip.txt"
	DefaultDatePath     = "output/medianvals_by_date.txt"
	DefaultMinYear      = 1000
	DefaultMaxYear      = 2018
	DefaultMaxAmount    = 10_000_000
	DefaultRounding     = RoundingHalfEven
	DefaultQueueSize    = 1024
	DefaultDrainSize    = 512
	DefaultDBPort       = 5432
	DefaultDBSSLMode    = "prefer"
	DefaultMaxConns     = 4
	DefaultMinConns     = 1
	DefaultDBBatchSize  = 1000
	DefaultServerPort   = 8080
	DefaultMetricsPath  = "/metrics"
	DefaultFeedPath     = "/feed"
)

// Batch rounding modes.
const (
	RoundingHalfEven = "half_even"
	RoundingHalfUp   = "half_up"
)

func (c *Config) applyDefaults() {
	if c.Instance.ID == "" {
		c.Instance.ID = DefaultInstanceID
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}

	// Input/output defaults
	if c.Input.Path == "" {
		c.Input.Path = DefaultInputPath
	}
	if c.Input.MinFields == 0 {
		c.Input.MinFields = DefaultMinFields
	}
	if c.Input.MaxLineBytes == 0 {
		c.Input.MaxLineBytes = DefaultMaxLineBytes
	}
	if c.Output.ZipPath == "" {
		c.Output.ZipPath = DefaultZipPath
	}
	if c.Output.DatePath == "" {
		c.Output.DatePath = DefaultDatePath
	}

	// Validation defaults
	if c.Validation.MinYear == 0 {
		c.Validation.MinYear = DefaultMinYear
	}
	if c.Validation.MaxYear == 0 {
		c.Validation.MaxYear = DefaultMaxYear
	}
	if c.Validation.MaxAmount == 0 {
		c.Validation.MaxAmount = DefaultMaxAmount
	}

	if c.Batch.Rounding == "" {
		c.Batch.Rounding = DefaultRounding
	}

	// Pipeline defaults
	if c.Pipeline.QueueSize == 0 {
		c.Pipeline.QueueSize = DefaultQueueSize
	}
	if c.Pipeline.DrainSize == 0 {
		c.Pipeline.DrainSize = DefaultDrainSize
	}

	// Database defaults
	applyDBDefaults(&c.Database.Reports)
	if c.Database.BatchSize == 0 {
		c.Database.BatchSize = DefaultDBBatchSize
	}

	// Server defaults
	if c.Server.Port == 0 {
		c.Server.Port = DefaultServerPort
	}
	if c.Server.MetricsPath == "" {
		c.Server.MetricsPath = DefaultMetricsPath
	}
	if c.Server.FeedPath == "" {
		c.Server.FeedPath = DefaultFeedPath
	}
}

func applyDBDefaults(db *DBConfig) {
	if db.Port == 0 {
		db.Port = DefaultDBPort
	}
	if db.SSLMode == "" {
		db.SSLMode = DefaultDBSSLMode
	}
	if db.MaxConns == 0 {
		db.MaxConns = DefaultMaxConns
	}
	if db.MinConns == 0 {
		db.MinConns = DefaultMinConns
	}
}
