package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/docker/go-units"
	"github.com/spf13/viper"
	"github.com/trim21/errgo"
)

const (
	OutputStdout = "stdout"
	OutputStderr = "stderr"
)

var ErrInvalid = errors.New("invalid config")

type Report struct {
	// report sink, "stdout" or "stderr"
	Output   string        `toml:"output"`
	Interval time.Duration `toml:"interval"`
}

type Copy struct {
	BufferSize string `toml:"buffer_size"`
}

type Config struct {
	Report Report `toml:"report"`
	Copy   Copy   `toml:"copy"`
}

func Default() Config {
	return Config{
		Report: Report{Output: OutputStdout, Interval: time.Second},
		Copy:   Copy{BufferSize: "32KiB"},
	}
}

// LoadFromFile reads the toml file at path on top of Default, then applies
// THROUGHPUT_* environment variables. An empty path or a missing file is not an error.
func LoadFromFile(path string) (Config, error) {
	var cfg = Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil && !os.IsNotExist(err) {
			return cfg, errgo.Wrap(err, "failed to parse config file")
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}

	return cfg, cfg.Validate()
}

func applyEnv(cfg *Config) error {
	v := viper.New()
	v.SetEnvPrefix("THROUGHPUT")
	v.AutomaticEnv()

	if v.IsSet("interval") {
		d, err := time.ParseDuration(v.GetString("interval"))
		if err != nil {
			return errgo.Wrap(err, "failed to parse THROUGHPUT_INTERVAL")
		}
		cfg.Report.Interval = d
	}

	if v.IsSet("output") {
		cfg.Report.Output = v.GetString("output")
	}

	if v.IsSet("buffer_size") {
		cfg.Copy.BufferSize = v.GetString("buffer_size")
	}

	return nil
}

func (c Config) Validate() error {
	if c.Report.Interval <= 0 {
		return errgo.Wrap(ErrInvalid, fmt.Sprintf("report interval must be positive, got %s", c.Report.Interval))
	}

	switch c.Report.Output {
	case OutputStdout, OutputStderr:
	default:
		return errgo.Wrap(ErrInvalid, fmt.Sprintf("unknown report output %q", c.Report.Output))
	}

	if _, err := c.BufferBytes(); err != nil {
		return err
	}

	return nil
}

// BufferBytes parses the copy buffer size, e.g. "32KiB" or "1MB".
func (c Config) BufferBytes() (int, error) {
	size, err := units.RAMInBytes(c.Copy.BufferSize)
	if err != nil {
		return 0, errgo.Wrap(err, "failed to parse buffer size")
	}

	if size <= 0 {
		return 0, errgo.Wrap(ErrInvalid, fmt.Sprintf("buffer size must be positive, got %q", c.Copy.BufferSize))
	}

	return int(size), nil
}
