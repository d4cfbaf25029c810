// Package config handles YAML configuration loading with environment variable substitution.
//
// Configuration files support ${VAR} syntax for environment variable interpolation.
// A run without a config file uses Default(), which matches the original
// itcont.txt -> medianvals_by_zip.txt / medianvals_by_date.txt layout.
package config
