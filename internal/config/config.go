package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

var (
	ErrInvalidChunkSize = errors.New("chunk size must be between 1 byte and 64 MiB")
	ErrInvalidInterval  = errors.New("progress interval must be between 10ms and 5s")
	ErrInvalidStyle     = errors.New("progress style must be one of line, bar or none")
)

// Progress display styles
const (
	StyleLine = "line" // Single self-overwriting status line
	StyleBar  = "bar"  // Progress bar on stderr
	StyleNone = "none" // Digest lines only
)

const (
	maxChunkSize = 64 * 1024 * 1024
	minInterval  = 10 * time.Millisecond
	maxInterval  = 5 * time.Second
)

// Viper keys
const (
	KeySeed      = "hash.seed"
	KeyChunkSize = "hash.chunk_size"
	KeyInterval  = "progress.interval"
	KeyStyle     = "progress.style"
	KeyQuiet     = "progress.quiet"
	KeyVerbose   = "verbose"
)

// Config holds all application configuration
type Config struct {
	Hash     HashConfig     `json:"hash"`
	Progress ProgressConfig `json:"progress"`
	Verbose  bool           `json:"verbose"`
}

// HashConfig holds hashing parameters
type HashConfig struct {
	Seed      uint64 `json:"seed"`       // xxHash64 seed
	ChunkSize int    `json:"chunk_size"` // Read buffer size in bytes
}

// ProgressConfig holds progress display parameters
type ProgressConfig struct {
	Interval time.Duration `json:"interval"` // Delay between progress polls
	Style    string        `json:"style"`
	Quiet    bool          `json:"quiet"` // Suppress progress, print digests only
}

// NewDefaultConfig returns a configuration with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Hash: HashConfig{
			Seed:      0,
			ChunkSize: 64 * 1024, // 64 KiB
		},
		Progress: ProgressConfig{
			Interval: 100 * time.Millisecond,
			Style:    StyleLine,
			Quiet:    false,
		},
	}
}

// Validate ensures the configuration is valid
func (c *Config) Validate() error {
	if c.Hash.ChunkSize <= 0 || c.Hash.ChunkSize > maxChunkSize {
		return ErrInvalidChunkSize
	}
	if c.Progress.Interval < minInterval || c.Progress.Interval > maxInterval {
		return ErrInvalidInterval
	}
	switch c.Progress.Style {
	case StyleLine, StyleBar, StyleNone:
	default:
		return ErrInvalidStyle
	}
	return nil
}

// SetDefaults registers the default configuration with v
func SetDefaults(v *viper.Viper) {
	def := NewDefaultConfig()
	v.SetDefault(KeySeed, def.Hash.Seed)
	v.SetDefault(KeyChunkSize, def.Hash.ChunkSize)
	v.SetDefault(KeyInterval, def.Progress.Interval)
	v.SetDefault(KeyStyle, def.Progress.Style)
	v.SetDefault(KeyQuiet, def.Progress.Quiet)
	v.SetDefault(KeyVerbose, def.Verbose)
}

// Load builds a validated Config from v.
// Chunk sizes accept viper size suffixes such as "64kb" or "1mb".
func Load(v *viper.Viper) (*Config, error) {
	cfg := NewDefaultConfig()
	if v.IsSet(KeySeed) {
		cfg.Hash.Seed = v.GetUint64(KeySeed)
	}
	if v.IsSet(KeyChunkSize) {
		cfg.Hash.ChunkSize = int(v.GetSizeInBytes(KeyChunkSize))
	}
	if v.IsSet(KeyInterval) {
		cfg.Progress.Interval = v.GetDuration(KeyInterval)
	}
	if v.IsSet(KeyStyle) {
		cfg.Progress.Style = v.GetString(KeyStyle)
	}
	cfg.Progress.Quiet = v.GetBool(KeyQuiet)
	cfg.Verbose = v.GetBool(KeyVerbose)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
