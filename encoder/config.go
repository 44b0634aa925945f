// Package encoder drives the chunk walker and packs its output into a
// complete, framed stream per the file layout in the section package.
package encoder

import (
	"fmt"
	"math"

	"github.com/omfile/om-encoder/errs"
	"github.com/omfile/om-encoder/format"
	"github.com/omfile/om-encoder/internal/options"
)

// chunkShapeWarnBytes is the advisory ceiling on a chunk's uncompressed byte
// size (16 MiB), beyond which NewEncoder logs a warning rather than refusing
// construction.
const chunkShapeWarnBytes = 16 * 1024 * 1024

// Element-count sweet spot for a chunk shape: large enough to amortize the
// bitpack header, small enough to keep the transform buffer cache-resident.
const (
	chunkElemsSweetSpotMin = 2000
	chunkElemsSweetSpotMax = 16000
)

// Logger receives the encoder's diagnostic warnings. The zero Config uses a
// no-op logger, so wiring one in is entirely opt-in.
type Logger interface {
	Warnf(format string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Warnf(string, ...any) {}

// Config holds the validated construction parameters for an Encoder. Build
// one with NewConfig and a sequence of Option values.
type Config struct {
	dimensions      []int64
	chunkDimensions []int64
	scaleFactor     float32
	mode            format.CompressionMode
	recoveryCodec   format.CompressionType
	recoveryDepth   int
	logger          Logger
}

// Option configures a Config.
type Option = options.Option[*Config]

// NewConfig applies opts over the defaults (scale factor 1.0, Linear mode, no
// recovery retention, no-op logger) and validates the result.
func NewConfig(opts ...Option) (*Config, error) {
	cfg := &Config{
		scaleFactor:   1.0,
		mode:          format.Linear,
		recoveryCodec: format.CompressionNone,
		logger:        noopLogger{},
	}

	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	if len(cfg.dimensions) == 0 {
		return nil, fmt.Errorf("%w: WithDimensions is required", errs.ErrInvalidDimensions)
	}
	for _, d := range cfg.dimensions {
		if d < 1 {
			return nil, fmt.Errorf("%w: extent %d is not positive", errs.ErrInvalidDimensions, d)
		}
	}

	if len(cfg.chunkDimensions) == 0 {
		return nil, fmt.Errorf("%w: WithChunkDimensions is required", errs.ErrInvalidChunkShape)
	}
	if len(cfg.chunkDimensions) != len(cfg.dimensions) {
		return nil, fmt.Errorf("%w: chunk shape rank %d does not match dimension rank %d",
			errs.ErrInvalidChunkShape, len(cfg.chunkDimensions), len(cfg.dimensions))
	}
	for _, c := range cfg.chunkDimensions {
		if c < 1 {
			return nil, fmt.Errorf("%w: extent %d is not positive", errs.ErrInvalidChunkShape, c)
		}
	}

	return cfg, nil
}

// WithDimensions sets the array's extent on each axis (R >= 1, each >= 1).
func WithDimensions(dims ...int64) Option {
	return options.NoError(func(c *Config) {
		c.dimensions = append([]int64{}, dims...)
	})
}

// WithChunkDimensions sets the chunk (tile) shape, one extent per axis of
// WithDimensions.
func WithChunkDimensions(chunks ...int64) Option {
	return options.NoError(func(c *Config) {
		c.chunkDimensions = append([]int64{}, chunks...)
	})
}

// WithCompression selects the quantizer's compression mode.
func WithCompression(mode format.CompressionMode) Option {
	return options.New(func(c *Config) error {
		if mode != format.Linear && mode != format.LogarithmicLinear {
			return fmt.Errorf("invalid compression mode: %v", mode)
		}
		c.mode = mode

		return nil
	})
}

// WithScaleFactor sets the quantizer's scale factor. Must be finite and
// non-zero.
func WithScaleFactor(scale float32) Option {
	return options.New(func(c *Config) error {
		f := float64(scale)
		if scale == 0 || math.IsNaN(f) || math.IsInf(f, 0) {
			return errs.ErrInvalidScaleFactor
		}
		c.scaleFactor = scale

		return nil
	})
}

// WithRecoveryCodec opts into retaining the most recent depth input slabs,
// compressed with codec, for replay after a sink failure. depth <= 0 disables
// retention regardless of codec.
func WithRecoveryCodec(codec format.CompressionType, depth int) Option {
	return options.New(func(c *Config) error {
		switch codec {
		case format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4:
		default:
			return fmt.Errorf("invalid recovery codec: %v", codec)
		}
		c.recoveryCodec = codec
		c.recoveryDepth = depth

		return nil
	})
}

// WithLogger installs a Logger for construction-time and runtime advisories.
func WithLogger(logger Logger) Option {
	return options.NoError(func(c *Config) {
		if logger != nil {
			c.logger = logger
		}
	})
}
