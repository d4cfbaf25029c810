package config

import (
	"errors"
	"fmt"

	"github.com/rickgao/donor-medians/internal/median"
)

// Validate checks that all required fields are set and values are valid.
func (c *Config) Validate() error {
	if c.Instance.ID == "" {
		return errors.New("instance.id is required")
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error, got %q", c.Log.Level)
	}

	if c.Input.Path == "" {
		return errors.New("input.path is required")
	}
	if c.Input.MinFields < DefaultMinFields {
		return fmt.Errorf("input.min_fields must be >= %d, got %d", DefaultMinFields, c.Input.MinFields)
	}
	if c.Input.MaxLineBytes < 1 {
		return errors.New("input.max_line_bytes must be >= 1")
	}
	if c.Output.ZipPath == "" {
		return errors.New("output.zip_path is required")
	}
	if c.Output.DatePath == "" {
		return errors.New("output.date_path is required")
	}

	if c.Validation.MinYear >= c.Validation.MaxYear {
		return fmt.Errorf("validation.min_year (%d) must be below max_year (%d)", c.Validation.MinYear, c.Validation.MaxYear)
	}
	if c.Validation.MaxAmount < 1 || c.Validation.MaxAmount > median.MaxAmount {
		return fmt.Errorf("validation.max_amount must be between 1 and %d, got %d", median.MaxAmount, c.Validation.MaxAmount)
	}

	if c.Batch.Rounding != RoundingHalfEven && c.Batch.Rounding != RoundingHalfUp {
		return fmt.Errorf("batch.rounding must be %s or %s, got %q", RoundingHalfEven, RoundingHalfUp, c.Batch.Rounding)
	}

	if c.Pipeline.QueueSize < 1 {
		return errors.New("pipeline.queue_size must be >= 1")
	}
	if c.Pipeline.DrainSize < 1 {
		return errors.New("pipeline.drain_size must be >= 1")
	}

	if c.Database.Enabled {
		if err := c.Database.Reports.validate("database.reports"); err != nil {
			return err
		}
		if c.Database.BatchSize < 1 {
			return errors.New("database.batch_size must be >= 1")
		}
	}

	if c.Server.Enabled {
		if c.Server.Port < 1 || c.Server.Port > 65535 {
			return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
		}
		if c.Server.MetricsPath == c.Server.FeedPath {
			return fmt.Errorf("server.metrics_path and server.feed_path must differ, both are %q", c.Server.FeedPath)
		}
	}

	return nil
}

func (db *DBConfig) validate(prefix string) error {
	if db.Host == "" {
		return fmt.Errorf("%s.host is required", prefix)
	}
	if db.Name == "" {
		return fmt.Errorf("%s.name is required", prefix)
	}
	if db.User == "" {
		return fmt.Errorf("%s.user is required", prefix)
	}
	if db.Password == "" {
		return fmt.Errorf("%s.password is required", prefix)
	}
	if db.MaxConns < 1 {
		return fmt.Errorf("%s.max_conns must be >= 1", prefix)
	}
	if db.MinConns < 0 {
		return fmt.Errorf("%s.min_conns must be >= 0", prefix)
	}
	if db.MinConns > db.MaxConns {
		return fmt.Errorf("%s.min_conns (%d) cannot exceed max_conns (%d)", prefix, db.MinConns, db.MaxConns)
	}
	return nil
}
