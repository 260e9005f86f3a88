// File: internal/config/config.go
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds the entire application configuration.
type Config struct {
	Logger  LoggerConfig  `mapstructure:"logger" yaml:"logger"`
	Browser BrowserConfig `mapstructure:"browser" yaml:"browser"`
	Driver  DriverConfig  `mapstructure:"driver" yaml:"driver"`
}

// LoggerConfig holds all the configuration for the logger.
type LoggerConfig struct {
	Level       string      `mapstructure:"level" yaml:"level"`
	Format      string      `mapstructure:"format" yaml:"format"`
	AddSource   bool        `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string      `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string      `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int         `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int         `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int         `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool        `mapstructure:"compress" yaml:"compress"`
	Colors      ColorConfig `mapstructure:"colors" yaml:"colors"`
}

// ColorConfig maps log levels to terminal color names for console output.
type ColorConfig struct {
	Debug  string `mapstructure:"debug" yaml:"debug"`
	Info   string `mapstructure:"info" yaml:"info"`
	Warn   string `mapstructure:"warn" yaml:"warn"`
	Error  string `mapstructure:"error" yaml:"error"`
	DPanic string `mapstructure:"dpanic" yaml:"dpanic"`
	Panic  string `mapstructure:"panic" yaml:"panic"`
	Fatal  string `mapstructure:"fatal" yaml:"fatal"`
}

// BrowserConfig describes how to reach the browser under control. The
// adapter never launches a browser itself; it attaches to a running one
// over its DevTools websocket endpoint.
type BrowserConfig struct {
	// RemoteURL is the DevTools websocket endpoint, e.g. ws://127.0.0.1:9222.
	RemoteURL string `mapstructure:"remote_url" yaml:"remote_url"`
	// ConnectTimeout bounds the initial attach to the browser process.
	ConnectTimeout time.Duration `mapstructure:"connect_timeout" yaml:"connect_timeout"`
}

// DriverConfig holds tunables for the command layer.
type DriverConfig struct {
	// ScreenshotFormat is passed to Page.captureScreenshot (png or jpeg).
	ScreenshotFormat string `mapstructure:"screenshot_format" yaml:"screenshot_format"`
}

// SetDefaults initializes default values for all configuration parameters.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "cdpdriver")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 100)
	v.SetDefault("logger.max_backups", 5)
	v.SetDefault("logger.max_age", 30)
	v.SetDefault("logger.compress", true)

	// -- Browser --
	v.SetDefault("browser.remote_url", "ws://127.0.0.1:9222")
	v.SetDefault("browser.connect_timeout", "15s")

	// -- Driver --
	v.SetDefault("driver.screenshot_format", "png")
}

// Validate checks the configuration for required fields and sane values.
func (c *Config) Validate() error {
	if c.Browser.RemoteURL == "" {
		return fmt.Errorf("browser.remote_url must be set")
	}
	if c.Browser.ConnectTimeout <= 0 {
		return fmt.Errorf("browser.connect_timeout must be positive, got %s", c.Browser.ConnectTimeout)
	}
	switch c.Driver.ScreenshotFormat {
	case "png", "jpeg":
	default:
		return fmt.Errorf("driver.screenshot_format must be png or jpeg, got %q", c.Driver.ScreenshotFormat)
	}
	return nil
}
