// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert runs a batch of schematic files through a source and a
// target codec, producing exactly one outcome per input file.
//
// A failure converting one file never stops the batch: it is reported as a
// failure outcome for that file and processing moves on.
package convert

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdiddy/schemconvert/internal/codec"
	"github.com/pdiddy/schemconvert/internal/telemetry"
	"github.com/pdiddy/schemconvert/pkg/types"
)

// Per-file stages, reported in FileError.Op.
const (
	OpCodec  = "codec"
	OpDecode = "decode"
	OpEncode = "encode"
)

// FileError describes why one file failed to convert.
type FileError struct {
	File string
	Op   string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

// Converter converts files between formats. The zero value is not usable;
// create one with New.
type Converter struct {
	workers  int
	logger   *slog.Logger
	metrics  *telemetry.Metrics
	codecFor func(types.FormatDescriptor) (codec.Codec, error)
}

// Option configures a Converter.
type Option func(*Converter)

// WithWorkers sets how many files convert at once. Values below 1 mean 1.
func WithWorkers(n int) Option {
	return func(c *Converter) {
		if n < 1 {
			n = 1
		}
		c.workers = n
	}
}

// WithLogger sets the logger for per-file debug output.
func WithLogger(l *slog.Logger) Option {
	return func(c *Converter) { c.logger = l }
}

// WithMetrics records per-file outcomes on m. A nil m disables metrics.
func WithMetrics(m *telemetry.Metrics) Option {
	return func(c *Converter) { c.metrics = m }
}

// New creates a Converter. By default it converts one file at a time.
func New(opts ...Option) *Converter {
	c := &Converter{
		workers:  types.DefaultWorkers,
		logger:   slog.Default(),
		codecFor: codec.For,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Workers returns the configured concurrency.
func (c *Converter) Workers() int {
	return c.workers
}

// OutputPath returns where the converted form of input is written: the
// input's base name with its extension replaced by the target's.
func OutputPath(job types.ConversionJob, input string) string {
	base := filepath.Base(input)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(job.OutputDir, base+"."+job.Target.Extension)
}

// ConvertFile converts a single file and returns its outcome. It never
// panics: a panic inside a codec becomes a failure outcome. An existing
// output file is replaced.
func (c *Converter) ConvertFile(ctx context.Context, job types.ConversionJob, input string) (out types.ConversionOutcome) {
	name := filepath.Base(input)
	start := time.Now()
	op := OpCodec

	defer func() {
		if r := recover(); r != nil {
			out = types.Failed(name, &FileError{File: name, Op: op, Err: fmt.Errorf("panic: %v", r)})
		}
		c.metrics.RecordFile(ctx, job.Source.Name, job.Target.Name, string(out.Status), time.Since(start))
		if out.OK() {
			c.logger.Debug("converted file", "job_id", job.ID, "file", name, "output", out.Output, "duration", time.Since(start))
		} else {
			c.logger.Warn("file conversion failed", "job_id", job.ID, "file", name, "error", out.Err)
		}
	}()

	src, err := c.codecFor(job.Source)
	if err != nil {
		return types.Failed(name, &FileError{File: name, Op: op, Err: err})
	}
	dst, err := c.codecFor(job.Target)
	if err != nil {
		return types.Failed(name, &FileError{File: name, Op: op, Err: err})
	}

	op = OpDecode
	cb, err := codec.Load(src, input)
	if err != nil {
		return types.Failed(name, &FileError{File: name, Op: op, Err: err})
	}

	op = OpEncode
	output := OutputPath(job, input)
	if err := codec.Save(dst, output, cb); err != nil {
		return types.Failed(name, &FileError{File: name, Op: op, Err: err})
	}
	return types.Succeeded(name, output)
}

// ConvertAll converts every file of job and returns a channel yielding one
// outcome per input file, in input order. The channel is closed after the
// last outcome. The caller must drain it.
func (c *Converter) ConvertAll(ctx context.Context, job types.ConversionJob) <-chan types.ConversionOutcome {
	out := make(chan types.ConversionOutcome)
	if c.workers <= 1 || len(job.InputFiles) <= 1 {
		go func() {
			defer close(out)
			for _, f := range job.InputFiles {
				out <- c.ConvertFile(ctx, job, f)
			}
		}()
		return out
	}
	go c.convertParallel(ctx, job, out)
	return out
}
