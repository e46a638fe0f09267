package main

import (
	"fmt"
	"log/slog"
	"runtime"

	"github.com/kelseyhightower/envconfig"
)

// config holds the knobs that are not part of the positional arguments.
// They are read from MANDEL_* environment variables.
type config struct {
	Workers  int    `envconfig:"WORKERS" default:"0"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

func loadConfig() (config, error) {
	var cfg config
	if err := envconfig.Process("mandel", &cfg); err != nil {
		return config{}, fmt.Errorf("envconfig: %w", err)
	}
	return cfg, nil
}

// workers returns the configured worker count bounded by the hardware.
// Zero or negative selects GOMAXPROCS.
func (c config) workers() int {
	n := c.Workers
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}
	return min(n, runtime.NumCPU())
}

func (c config) level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("MANDEL_LOG_LEVEL: %w", err)
	}
	return l, nil
}
