package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// Mode constants
	ModeStdio  = "stdio"
	ModeServer = "server"

	// Default values
	DefaultPort          = 8080
	DefaultHost          = "127.0.0.1"
	DefaultLogLevel      = "info"
	DefaultMaxFileSize   = 10 * 1024 * 1024 // 10MB
	DefaultMinTextLength = 10
	DefaultTimeout       = 30 * time.Second
	DefaultOCRLanguage   = "eng"
	DefaultDocType       = "aadhaar"
	DefaultCacheTTL      = 5 * time.Minute

	// Directory permissions
	DefaultDirPerm = 0o750
)

// Config holds all configuration for the ID extraction server
type Config struct {
	// Server configuration
	Mode string // "server" or "stdio"
	Host string
	Port int

	// Document configuration
	DocumentDirectory string
	DefaultDocType    string

	// Extraction configuration
	Engines       []string // engine attempt order
	OCRLanguage   string
	Timeout       time.Duration
	MinTextLength int
	FallbackSeed  int64 // 0 = time-seeded

	// Cache configuration
	CacheEnabled bool
	CacheTTL     time.Duration

	// Application configuration
	Version     string
	ServerName  string
	LogLevel    string
	MaxFileSize int64 // Maximum input file size in bytes
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	currentDir, err := os.Getwd()
	if err != nil {
		// Fallback to current directory if working directory cannot be determined
		currentDir = "."
	}

	return &Config{
		Mode:              ModeStdio, // Default to stdio mode for MCP compatibility
		Host:              DefaultHost,
		Port:              DefaultPort,
		DocumentDirectory: currentDir,
		DefaultDocType:    DefaultDocType,
		Engines:           []string{"pdftext", "tesseract"},
		OCRLanguage:       DefaultOCRLanguage,
		Timeout:           DefaultTimeout,
		MinTextLength:     DefaultMinTextLength,
		FallbackSeed:      0,
		CacheEnabled:      true,
		CacheTTL:          DefaultCacheTTL,
		Version:           "1.0.0",
		ServerName:        "idcard-extract",
		LogLevel:          DefaultLogLevel,
		MaxFileSize:       DefaultMaxFileSize,
	}
}

// LoadFromFlags parses command line flags and returns a configuration
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()
	setupUsageMessage()

	pflag.Parse()

	populateConfigFromViper(cfg)

	// Expand paths if needed
	if cfg.DocumentDirectory != "" {
		if expandedPath, err := filepath.Abs(cfg.DocumentDirectory); err == nil {
			cfg.DocumentDirectory = expandedPath
		}
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and defaults
func setupViperEnvironment(cfg *Config) {
	// Set environment variable prefix
	viper.SetEnvPrefix("IDX")
	viper.AutomaticEnv()

	viper.SetDefault("mode", cfg.Mode)
	viper.SetDefault("host", cfg.Host)
	viper.SetDefault("port", cfg.Port)
	viper.SetDefault("dir", cfg.DocumentDirectory)
	viper.SetDefault("doctype", cfg.DefaultDocType)
	viper.SetDefault("engines", cfg.Engines)
	viper.SetDefault("ocrlang", cfg.OCRLanguage)
	viper.SetDefault("timeout", cfg.Timeout)
	viper.SetDefault("mintextlen", cfg.MinTextLength)
	viper.SetDefault("fallbackseed", cfg.FallbackSeed)
	viper.SetDefault("cache", cfg.CacheEnabled)
	viper.SetDefault("cachettl", cfg.CacheTTL)
	viper.SetDefault("loglevel", cfg.LogLevel)
	viper.SetDefault("maxfilesize", cfg.MaxFileSize)
}

// defineCommandLineFlags sets up all command line flags
func defineCommandLineFlags(cfg *Config) {
	pflag.String("mode", cfg.Mode, "Server mode: 'stdio' for MCP standard I/O, 'server' for HTTP server")
	pflag.String("host", cfg.Host, "Server host address (server mode only)")
	pflag.Int("port", cfg.Port, "Server port (server mode only)")
	pflag.String("dir", cfg.DocumentDirectory, "Directory containing document scans")
	pflag.String("doctype", cfg.DefaultDocType, "Default document type (aadhaar, emirates_id)")
	pflag.StringSlice("engines", cfg.Engines, "OCR engine attempt order")
	pflag.String("ocrlang", cfg.OCRLanguage, "OCR language passed to Tesseract")
	pflag.Duration("timeout", cfg.Timeout, "Overall timeout for the engine attempt sequence")
	pflag.Int("mintextlen", cfg.MinTextLength, "Minimum cleaned text length before fallback kicks in")
	pflag.Int64("fallbackseed", cfg.FallbackSeed, "Seed for fallback record selection (0 = time-seeded)")
	pflag.Bool("cache", cfg.CacheEnabled, "Enable the extraction result cache")
	pflag.Duration("cachettl", cfg.CacheTTL, "Extraction result cache TTL")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
	pflag.Int64("maxfilesize", cfg.MaxFileSize, "Maximum input file size in bytes")
}

// bindFlagsToViper binds command line flags to viper configuration
func bindFlagsToViper() {
	for _, name := range []string{
		"mode", "host", "port", "dir", "doctype", "engines", "ocrlang",
		"timeout", "mintextlen", "fallbackseed", "cache", "cachettl",
		"loglevel", "maxfilesize",
	} {
		_ = viper.BindPFlag(name, pflag.Lookup(name))
	}
}

// setupUsageMessage configures the custom usage message
func setupUsageMessage() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nID Card Extract - field extraction from identity-document scans\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                                      # stdio mode, current directory\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --dir=/path/to/scans                 # stdio mode with custom directory\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --mode=server --port=8081            # HTTP server mode\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --doctype=emirates_id                # Emirates ID extraction\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  IDX_MODE          Server mode\n")
		fmt.Fprintf(os.Stderr, "  IDX_HOST          Server host\n")
		fmt.Fprintf(os.Stderr, "  IDX_PORT          Server port\n")
		fmt.Fprintf(os.Stderr, "  IDX_DIR           Document directory\n")
		fmt.Fprintf(os.Stderr, "  IDX_DOCTYPE       Default document type\n")
		fmt.Fprintf(os.Stderr, "  IDX_ENGINES       OCR engine attempt order\n")
		fmt.Fprintf(os.Stderr, "  IDX_OCRLANG       OCR language\n")
		fmt.Fprintf(os.Stderr, "  IDX_TIMEOUT       Engine attempt timeout\n")
		fmt.Fprintf(os.Stderr, "  IDX_MINTEXTLEN    Minimum cleaned text length\n")
		fmt.Fprintf(os.Stderr, "  IDX_FALLBACKSEED  Fallback selection seed\n")
		fmt.Fprintf(os.Stderr, "  IDX_LOGLEVEL      Log level\n")
		fmt.Fprintf(os.Stderr, "  IDX_MAXFILESIZE   Maximum file size\n")
	}
}

// populateConfigFromViper fills the config struct with values from viper
func populateConfigFromViper(cfg *Config) {
	cfg.Mode = viper.GetString("mode")
	cfg.Host = viper.GetString("host")
	cfg.Port = viper.GetInt("port")
	cfg.DocumentDirectory = viper.GetString("dir")
	cfg.DefaultDocType = viper.GetString("doctype")
	cfg.Engines = viper.GetStringSlice("engines")
	cfg.OCRLanguage = viper.GetString("ocrlang")
	cfg.Timeout = viper.GetDuration("timeout")
	cfg.MinTextLength = viper.GetInt("mintextlen")
	cfg.FallbackSeed = viper.GetInt64("fallbackseed")
	cfg.CacheEnabled = viper.GetBool("cache")
	cfg.CacheTTL = viper.GetDuration("cachettl")
	cfg.LogLevel = viper.GetString("loglevel")
	cfg.MaxFileSize = viper.GetInt64("maxfilesize")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	// Validate mode
	if c.Mode != ModeStdio && c.Mode != ModeServer {
		return errors.New("mode must be either 'stdio' or 'server'")
	}

	// Validate port range (only for server mode)
	if c.Mode == ModeServer && (c.Port < 1 || c.Port > 65535) {
		return errors.New("port must be between 1 and 65535")
	}

	// Validate document directory
	if c.DocumentDirectory == "" {
		return errors.New("document directory cannot be empty")
	}

	// Check if document directory exists, create if it doesn't
	if _, err := os.Stat(c.DocumentDirectory); os.IsNotExist(err) {
		if err := os.MkdirAll(c.DocumentDirectory, DefaultDirPerm); err != nil {
			return fmt.Errorf("cannot create document directory %s: %w", c.DocumentDirectory, err)
		}
	} else if err != nil {
		return fmt.Errorf("cannot access document directory %s: %w", c.DocumentDirectory, err)
	}

	// Validate document type
	switch c.DefaultDocType {
	case "aadhaar", "emirates_id":
	default:
		return fmt.Errorf("invalid document type: %s (must be one of: aadhaar, emirates_id)", c.DefaultDocType)
	}

	// Validate engines
	if len(c.Engines) == 0 {
		return errors.New("at least one OCR engine must be configured")
	}
	for _, e := range c.Engines {
		switch e {
		case "pdftext", "tesseract":
		default:
			return fmt.Errorf("unknown engine: %s (must be one of: pdftext, tesseract)", e)
		}
	}

	// Validate thresholds
	if c.MinTextLength < 1 {
		return errors.New("minimum text length must be positive")
	}
	if c.Timeout <= 0 {
		return errors.New("timeout must be positive")
	}
	if c.CacheEnabled && c.CacheTTL <= 0 {
		return errors.New("cache TTL must be positive when the cache is enabled")
	}

	// Validate max file size
	if c.MaxFileSize <= 0 {
		return errors.New("maximum file size must be positive")
	}

	// Validate log level
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	return nil
}

// Address returns the server address as host:port
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// IsDebug returns true if debug logging is enabled
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// String returns a string representation of the configuration
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Mode: %s, Host: %s, Port: %d, DocumentDirectory: %s, DocType: %s, Engines: %v, LogLevel: %s, MaxFileSize: %d}",
		c.Mode, c.Host, c.Port, c.DocumentDirectory, c.DefaultDocType, c.Engines, c.LogLevel, c.MaxFileSize)
}

// IsServerMode returns true if the server is running in HTTP server mode
func (c *Config) IsServerMode() bool {
	return c.Mode == ModeServer
}

// IsStdioMode returns true if the server is running in stdio mode
func (c *Config) IsStdioMode() bool {
	return c.Mode == ModeStdio
}
