package usbrelay

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Fixed link parameters for CH340 relay modules. The module only speaks
// 9600 8N1; other rates are silently ignored by its firmware, so none of
// this is configurable.
const (
	BaudRate = 9600
	DataBits = 8
)

const (
	// DefaultReadTimeout bounds blocking reads on the open connection.
	DefaultReadTimeout = 500 * time.Millisecond
	// DefaultWriteTimeout bounds one frame write including the flush.
	DefaultWriteTimeout = 500 * time.Millisecond
	// DefaultSettleDelay is how long the relay transient is given to
	// resolve before the reply bytes are trusted.
	DefaultSettleDelay = 100 * time.Millisecond
)

// maxSettleDelay caps the settle interval so a typo in a flag cannot make
// every transaction take minutes.
const maxSettleDelay = 5 * time.Second

// Config holds the controller settings
type Config struct {
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	SettleDelay  time.Duration
	Verbose      bool
	Logger       *zap.Logger // nil means no logging (console logging when Verbose)
}

// Option is a functional option for configuring a controller
type Option func(*Config) error

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() Config {
	return Config{
		ReadTimeout:  DefaultReadTimeout,
		WriteTimeout: DefaultWriteTimeout,
		SettleDelay:  DefaultSettleDelay,
	}
}

// WithReadTimeout sets the blocking-read bound. Zero disables blocking
// entirely; reads then return whatever is buffered.
func WithReadTimeout(timeout time.Duration) Option {
	return func(c *Config) error {
		if timeout < 0 {
			return fmt.Errorf("%w: read timeout must not be negative", ErrInvalidConfig)
		}
		c.ReadTimeout = timeout
		return nil
	}
}

// WithWriteTimeout sets the bound on one frame write.
func WithWriteTimeout(timeout time.Duration) Option {
	return func(c *Config) error {
		if timeout <= 0 {
			return fmt.Errorf("%w: write timeout must be positive", ErrInvalidConfig)
		}
		c.WriteTimeout = timeout
		return nil
	}
}

// WithSettleDelay sets the wait between sending a command and reading the
// reply. Relay boards with slow feedback circuitry may need more than the
// default 100ms.
func WithSettleDelay(delay time.Duration) Option {
	return func(c *Config) error {
		if delay <= 0 || delay > maxSettleDelay {
			return fmt.Errorf("%w: settle delay must be in (0, %v]", ErrInvalidConfig, maxSettleDelay)
		}
		c.SettleDelay = delay
		return nil
	}
}

// WithVerbose enables debug logging of frame traffic. Without an explicit
// logger this installs a console logger.
func WithVerbose() Option {
	return func(c *Config) error {
		c.Verbose = true
		return nil
	}
}

// WithLogger routes controller logging through the given logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Config) error {
		if logger == nil {
			return fmt.Errorf("%w: logger must not be nil", ErrInvalidConfig)
		}
		c.Logger = logger
		return nil
	}
}

// logger resolves the configured logger, building a console logger for
// verbose mode and discarding output otherwise.
func (c Config) logger() *zap.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	if c.Verbose {
		if logger, err := zap.NewDevelopment(); err == nil {
			return logger
		}
	}
	return zap.NewNop()
}
