// Package config loads the small set of optional overrides the REPL
// accepts beyond its one required argument (the database filename).
// None of these affect on-disk format or the REPL's scripted protocol;
// they only change operator-facing presentation, and default to the
// original tutorial's own behavior.
package config

import (
	"flag"
	"os"

	"github.com/joho/godotenv"
	pkgerrors "github.com/pkg/errors"
)

// DefaultPrompt is the literal REPL prompt string.
const DefaultPrompt = "db > "

// Config holds the REPL's optional, environment-driven overrides.
type Config struct {
	// Prompt is the string printed before each input line.
	Prompt string
	// LogLevel names the logrus level for diagnostic output
	// ("info", "warn", "debug", ...).
	LogLevel string
}

// Load reads an optional .env file (ignored if absent) and then layers
// flag and environment overrides on top of the defaults. It always
// returns a usable Config, even on error: a malformed .env file or an
// unrecognized flag just means the defaults stand, since the CLI's only
// mandatory argument is the positional filename, parsed by the caller
// before Load runs. The returned error is non-nil only to let the
// caller log what went wrong; it is never reason enough to exit.
func Load(args []string) (Config, error) {
	var loadErr error
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		loadErr = pkgerrors.Wrap(err, "failed to load .env file")
	}

	fs := flag.NewFlagSet("db", flag.ContinueOnError)
	prompt := fs.String("prompt", envOr("DB_PROMPT", DefaultPrompt), "REPL prompt string")
	logLevel := fs.String("log-level", envOr("DB_LOG_LEVEL", "warn"), "diagnostic log level")

	if err := fs.Parse(args); err != nil && loadErr == nil {
		loadErr = pkgerrors.Wrap(err, "failed to parse config flags")
	}

	return Config{Prompt: *prompt, LogLevel: *logLevel}, loadErr
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
