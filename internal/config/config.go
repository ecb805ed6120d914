package config

import (
	"cmp"
	"fmt"
	"strconv"

	"github.com/spf13/pflag"

	"library-catalog/internal/logger"
)

const (
	EnvDebug     = "LIBRARY_DEBUG"
	EnvLogFormat = "LIBRARY_LOG_FORMAT"
	EnvSeedFile  = "LIBRARY_SEED_FILE"

	flagDebug     = "debug"
	flagLogFormat = "log-format"
	flagSeed      = "seed"
)

type Config struct {
	Debug     bool
	LogFormat string
	SeedFile  string
}

// Bind registers the configuration flags on fs and returns the Config they
// populate.
func Bind(fs *pflag.FlagSet) *Config {
	cfg := &Config{}
	fs.BoolVar(&cfg.Debug, flagDebug, false, "enable debug logging")
	fs.StringVar(&cfg.LogFormat, flagLogFormat, logger.FormatConsole, "log output format (console|json)")
	fs.StringVar(&cfg.SeedFile, flagSeed, "", "CSV file of books (isbn,title,author,genre,copies) to load at startup")
	return cfg
}

// Load overlays environment values onto flags the user did not set
// explicitly, then validates the result. getenv is usually os.Getenv.
func (c *Config) Load(fs *pflag.FlagSet, getenv func(string) string) error {
	if !fs.Changed(flagDebug) {
		if v := getenv(EnvDebug); v != "" {
			debug, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("%s: %w", EnvDebug, err)
			}
			c.Debug = debug
		}
	}
	if !fs.Changed(flagLogFormat) {
		c.LogFormat = cmp.Or(getenv(EnvLogFormat), c.LogFormat)
	}
	if !fs.Changed(flagSeed) {
		c.SeedFile = cmp.Or(getenv(EnvSeedFile), c.SeedFile)
	}
	return c.Validate()
}

func (c *Config) Validate() error {
	switch c.LogFormat {
	case logger.FormatConsole, logger.FormatJSON:
		return nil
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
}
