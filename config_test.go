package usbrelay

import (
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.ReadTimeout != 500*time.Millisecond {
		t.Errorf("ReadTimeout = %v, expected 500ms", config.ReadTimeout)
	}
	if config.WriteTimeout != 500*time.Millisecond {
		t.Errorf("WriteTimeout = %v, expected 500ms", config.WriteTimeout)
	}
	if config.SettleDelay != 100*time.Millisecond {
		t.Errorf("SettleDelay = %v, expected 100ms", config.SettleDelay)
	}
	if config.Verbose {
		t.Error("Verbose should default to false")
	}
}

func TestWithSettleDelay(t *testing.T) {
	tests := []struct {
		name    string
		delay   time.Duration
		wantErr bool
	}{
		{"100ms (default)", 100 * time.Millisecond, false},
		{"1ms (minimum useful)", time.Millisecond, false},
		{"5s (max)", 5 * time.Second, false},
		{"zero", 0, true},
		{"negative", -100 * time.Millisecond, true},
		{"above max", 5*time.Second + time.Millisecond, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			err := WithSettleDelay(tt.delay)(&config)
			if (err != nil) != tt.wantErr {
				t.Errorf("WithSettleDelay(%v) error = %v, wantErr %v", tt.delay, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("error = %v, expected to wrap ErrInvalidConfig", err)
			}
			if err == nil && config.SettleDelay != tt.delay {
				t.Errorf("SettleDelay = %v, expected %v", config.SettleDelay, tt.delay)
			}
		})
	}
}

func TestWithReadTimeout(t *testing.T) {
	tests := []struct {
		name    string
		timeout time.Duration
		wantErr bool
	}{
		{"0 (non-blocking)", 0, false},
		{"500ms", 500 * time.Millisecond, false},
		{"negative", -time.Millisecond, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			err := WithReadTimeout(tt.timeout)(&config)
			if (err != nil) != tt.wantErr {
				t.Errorf("WithReadTimeout(%v) error = %v, wantErr %v", tt.timeout, err, tt.wantErr)
			}
			if err == nil && config.ReadTimeout != tt.timeout {
				t.Errorf("ReadTimeout = %v, expected %v", config.ReadTimeout, tt.timeout)
			}
		})
	}
}

func TestWithWriteTimeout(t *testing.T) {
	tests := []struct {
		name    string
		timeout time.Duration
		wantErr bool
	}{
		{"1s", time.Second, false},
		{"zero", 0, true},
		{"negative", -time.Second, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			err := WithWriteTimeout(tt.timeout)(&config)
			if (err != nil) != tt.wantErr {
				t.Errorf("WithWriteTimeout(%v) error = %v, wantErr %v", tt.timeout, err, tt.wantErr)
			}
		})
	}
}

func TestWithLogger(t *testing.T) {
	logger := zap.NewNop()
	config := DefaultConfig()

	if err := WithLogger(logger)(&config); err != nil {
		t.Fatalf("WithLogger() error = %v", err)
	}
	if config.Logger != logger {
		t.Error("Logger was not set")
	}

	if err := WithLogger(nil)(&config); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("WithLogger(nil) error = %v, expected ErrInvalidConfig", err)
	}
}

func TestConfigLoggerResolution(t *testing.T) {
	explicit := zap.NewNop()

	tests := []struct {
		name   string
		config Config
		check  func(*zap.Logger) bool
	}{
		{"explicit logger wins", Config{Logger: explicit, Verbose: true}, func(l *zap.Logger) bool { return l == explicit }},
		{"quiet by default", Config{}, func(l *zap.Logger) bool { return l != nil }},
		{"verbose builds a logger", Config{Verbose: true}, func(l *zap.Logger) bool { return l != nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if l := tt.config.logger(); !tt.check(l) {
				t.Errorf("logger() = %v, unexpected resolution", l)
			}
		})
	}
}
