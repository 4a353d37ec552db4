// Package config holds the server and bot settings.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/benbeisheim/botchess-backend/internal/bot"
	"github.com/gofiber/fiber/v2/log"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Environment variables read by FromEnv.
const (
	EnvAddr         = "BOTCHESS_ADDR"
	EnvAllowOrigins = "BOTCHESS_ALLOW_ORIGINS"
	EnvBotPolicy    = "BOTCHESS_BOT_POLICY"
	EnvBotStrength  = "BOTCHESS_BOT_STRENGTH"
	EnvLogLevel     = "BOTCHESS_LOG_LEVEL"
)

type Config struct {
	Addr         string
	AllowOrigins string
	LogLevel     string

	// Defaults for games created without explicit bot settings.
	BotPolicy   string
	BotStrength int
	// BotSeed seeds the selectors' random source; 0 means seed from the clock.
	BotSeed int64
}

func Default() Config {
	return Config{
		Addr:         ":3000",
		AllowOrigins: "http://localhost:5173",
		LogLevel:     "info",
		BotPolicy:    string(bot.PolicyWeighted),
		BotStrength:  bot.DefaultStrength,
	}
}

// FromEnv applies environment overrides on top of c.
func (c Config) FromEnv(getenv func(string) string) (Config, error) {
	if v := getenv(EnvAddr); v != "" {
		c.Addr = v
	}
	if v := getenv(EnvAllowOrigins); v != "" {
		c.AllowOrigins = v
	}
	if v := getenv(EnvBotPolicy); v != "" {
		c.BotPolicy = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := getenv(EnvBotStrength); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return c, fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfig, EnvBotStrength, v, err)
		}
		c.BotStrength = n
	}
	return c, nil
}

// RegisterFlags binds c's fields to flags on fs, using the current values as defaults.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.Addr, "addr", c.Addr, "listen address")
	fs.StringVar(&c.AllowOrigins, "allow-origins", c.AllowOrigins, "comma separated CORS origins")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "trace, debug, info, warn or error")
	fs.StringVar(&c.BotPolicy, "bot-policy", c.BotPolicy, "default bot policy: weighted or scoring")
	fs.IntVar(&c.BotStrength, "bot-strength", c.BotStrength, fmt.Sprintf("default bot strength, clamped to %d-%d", bot.MinStrength, bot.MaxStrength))
	fs.Int64Var(&c.BotSeed, "bot-seed", c.BotSeed, "random seed for the bot, 0 for time based")
}

// Load builds a Config from defaults, the environment and args, in that order of precedence.
func Load(args []string) (Config, error) {
	c, err := Default().FromEnv(os.Getenv)
	if err != nil {
		return c, err
	}
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	c.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return c, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return c, c.Validate()
}

// Validate rejects settings the server cannot run with. An out of range
// strength is not an error; the selector clamps it.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("%w: empty listen address", ErrInvalidConfig)
	}
	if _, err := bot.ParsePolicy(c.BotPolicy); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level maps LogLevel to fiber's log level.
func (c Config) Level() (log.Level, error) {
	switch strings.ToLower(c.LogLevel) {
	case "trace":
		return log.LevelTrace, nil
	case "debug":
		return log.LevelDebug, nil
	case "", "info":
		return log.LevelInfo, nil
	case "warn":
		return log.LevelWarn, nil
	case "error":
		return log.LevelError, nil
	}
	return log.LevelInfo, fmt.Errorf("%w: log level %q", ErrInvalidConfig, c.LogLevel)
}
