// Package config loads server settings from FUNDBUERO_* environment
// variables, overridden by command-line flags.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v6"
)

// Log formats.
const (
	LogText = "text"
	LogJSON = "json"
)

// Media backends.
const (
	MediaFS = "fs"
	MediaS3 = "s3"
)

type (
	// Config holds the server settings.
	Config struct {
		DBPath     string        `env:"DB" envDefault:"fundbuero.sqlite3"`
		Addr       string        `env:"ADDR" envDefault:":8080"`
		LogPath    string        `env:"LOG"`
		LogLevel   string        `env:"LOG_LEVEL" envDefault:"info"`
		LogFormat  string        `env:"LOG_FORMAT" envDefault:"text"`
		JWTSecret  string        `env:"JWT_SECRET"`
		SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"24h"`

		Media MediaConfig `envPrefix:"MEDIA_"`
		S3    S3Config    `envPrefix:"S3_"`
	}

	// MediaConfig selects where uploads are stored.
	MediaConfig struct {
		Backend string `env:"BACKEND" envDefault:"fs"`
		Root    string `env:"ROOT" envDefault:"public/uploads"`
	}

	// S3Config configures the S3-compatible media backend.
	S3Config struct {
		Endpoint  string `env:"ENDPOINT" envDefault:"localhost:9000"`
		AccessKey string `env:"ACCESS_KEY"`
		SecretKey string `env:"SECRET_KEY"`
		Bucket    string `env:"BUCKET" envDefault:"fundbuero"`
		UseSSL    bool   `env:"USE_SSL" envDefault:"false"`
	}
)

// Usage documents the flags accepted by Load.
const Usage = `Usage: fundbuero [flags]

Flags:
  -d, -db <path>          SQLite database path (default: fundbuero.sqlite3)
  -a, -addr <host:port>   listen address (default: :8080)
  -l, -log <path>         log file path (default: no file, stdout/stderr only)
      -log-level <level>  debug, info, warn or error (default: info)
      -log-format <fmt>   text or json (default: text)
  -m, -media <fs|s3>      media backend (default: fs)
  -r, -media-root <dir>   upload directory for the fs backend (default: public/uploads)
      -session-ttl <dur>  session lifetime (default: 24h)
  -h, -help               show this help and exit

Every flag can also be set with an environment variable: FUNDBUERO_DB,
FUNDBUERO_ADDR, FUNDBUERO_LOG, FUNDBUERO_LOG_LEVEL, FUNDBUERO_LOG_FORMAT,
FUNDBUERO_MEDIA_BACKEND, FUNDBUERO_MEDIA_ROOT, FUNDBUERO_SESSION_TTL. The S3 backend reads FUNDBUERO_S3_ENDPOINT,
FUNDBUERO_S3_ACCESS_KEY, FUNDBUERO_S3_SECRET_KEY, FUNDBUERO_S3_BUCKET and
FUNDBUERO_S3_USE_SSL. FUNDBUERO_JWT_SECRET fixes the session signing key.
`

// Load reads the environment (through lookup, os.LookupEnv when nil) and then
// parses args. flag.ErrHelp is returned when help was requested.
func Load(args []string, lookup func(string) (string, bool), usage io.Writer) (*Config, error) {
	cfg := &Config{}
	opts := env.Options{Prefix: "FUNDBUERO_"}
	if lookup != nil {
		opts.Environment = environment(lookup)
	}
	if err := env.Parse(cfg, opts); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}

	fs := flag.NewFlagSet("fundbuero", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() { fmt.Fprint(usage, Usage) }

	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "")
	fs.StringVar(&cfg.DBPath, "d", cfg.DBPath, "")
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "")
	fs.StringVar(&cfg.Addr, "a", cfg.Addr, "")
	fs.StringVar(&cfg.LogPath, "log", cfg.LogPath, "")
	fs.StringVar(&cfg.LogPath, "l", cfg.LogPath, "")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "")
	fs.StringVar(&cfg.Media.Backend, "media", cfg.Media.Backend, "")
	fs.StringVar(&cfg.Media.Backend, "m", cfg.Media.Backend, "")
	fs.StringVar(&cfg.Media.Root, "media-root", cfg.Media.Root, "")
	fs.StringVar(&cfg.Media.Root, "r", cfg.Media.Root, "")
	fs.DurationVar(&cfg.SessionTTL, "session-ttl", cfg.SessionTTL, "")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, err
		}
		fs.Usage()
		return nil, err
	}
	if fs.NArg() > 0 {
		fs.Usage()
		return nil, fmt.Errorf("unexpected argument: %s", fs.Arg(0))
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Media.Backend {
	case MediaFS:
		if c.Media.Root == "" {
			return errors.New("media root must not be empty")
		}
	case MediaS3:
		if c.S3.Endpoint == "" || c.S3.Bucket == "" {
			return errors.New("s3 media backend needs an endpoint and a bucket")
		}
	default:
		return fmt.Errorf("unknown media backend %q (want %s or %s)", c.Media.Backend, MediaFS, MediaS3)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if c.LogFormat != LogText && c.LogFormat != LogJSON {
		return fmt.Errorf("unknown log format %q (want %s or %s)", c.LogFormat, LogText, LogJSON)
	}
	if c.SessionTTL <= 0 {
		return errors.New("session ttl must be positive")
	}
	return nil
}

// Level returns the configured minimum log level.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// environment snapshots the FUNDBUERO_* variables visible through lookup.
func environment(lookup func(string) (string, bool)) map[string]string {
	keys := []string{
		"DB", "ADDR", "LOG", "LOG_LEVEL", "LOG_FORMAT", "JWT_SECRET", "SESSION_TTL",
		"MEDIA_BACKEND", "MEDIA_ROOT",
		"S3_ENDPOINT", "S3_ACCESS_KEY", "S3_SECRET_KEY", "S3_BUCKET", "S3_USE_SSL",
	}
	out := make(map[string]string, len(keys))
	for _, k := range keys {
		if v, ok := lookup("FUNDBUERO_" + k); ok {
			out["FUNDBUERO_"+k] = v
		}
	}
	return out
}
