// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package session turns a bulk conversion request into a background job.
//
// Handle validates the request, resolves formats and folders, discovers the
// input files and hands them to the converter on a goroutine, returning
// control to the caller at once. Progress and the final summary reach the
// user through a report.Notifier, never through a return value.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pdiddy/schemconvert/internal/convert"
	"github.com/pdiddy/schemconvert/internal/format"
	"github.com/pdiddy/schemconvert/internal/report"
	"github.com/pdiddy/schemconvert/internal/telemetry"
	"github.com/pdiddy/schemconvert/internal/workspace"
	"github.com/pdiddy/schemconvert/pkg/types"
)

// Controller accepts conversion requests against one workspace.
type Controller struct {
	ws      *workspace.Workspace
	conv    *convert.Converter
	logger  *slog.Logger
	metrics *telemetry.Metrics

	jobs sync.WaitGroup
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the controller's logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithMetrics records batch durations on m.
func WithMetrics(m *telemetry.Metrics) Option {
	return func(c *Controller) { c.metrics = m }
}

// New creates a controller that converts files under ws with conv.
func New(ws *workspace.Workspace, conv *convert.Converter, opts ...Option) *Controller {
	c := &Controller{ws: ws, conv: conv, logger: slog.Default()}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Handle processes one request:
//
//	<folderName> <sourceFormat> [targetFormat] [destinationSubfolder]
//
// It returns as soon as the request is rejected or dispatched. Rejections
// are reported to n and recorded on the returned Job; they are not errors
// of Handle itself.
func (c *Controller) Handle(ctx context.Context, n report.Notifier, args []string) *Job {
	job := newJob(uuid.NewString())
	logger := c.logger.With("job_id", job.ID())
	job.set(StateValidating)

	reject := func(s State, err error, msgs ...report.Message) *Job {
		for _, m := range msgs {
			n.Notify(m)
		}
		logger.Info("request rejected", "reason", err)
		return job.reject(s, err)
	}

	if len(args) < 2 {
		return reject(StateRejected, ErrUsage, report.Usage())
	}
	folderName, sourceName := args[0], args[1]

	source, ok := format.Resolve(sourceName)
	if !ok {
		err := &FormatError{Role: RoleSource, Name: sourceName}
		return reject(StateRejected, err, report.Rejected(err.Error()))
	}

	target := format.Default()
	if len(args) > 2 {
		if target, ok = format.Resolve(args[2]); !ok {
			err := &FormatError{Role: RoleTarget, Name: args[2]}
			return reject(StateRejected, err, report.Rejected(err.Error()))
		}
	}

	dest := types.DefaultDestination
	if len(args) > 3 {
		dest = args[3]
	}

	folder, err := c.ws.Resolve(folderName)
	if err != nil {
		return reject(StateRejected, fmt.Errorf("%w: %w", ErrFolderNotFound, err),
			report.Rejected(fmt.Sprintf("Folder %s does not exist", folderName)),
			report.Rejected(fmt.Sprintf("Make sure it's located in %s", c.ws.Root())))
	}

	outputDir, err := c.ws.OutputDir(folder, dest)
	if err != nil {
		return reject(StateRejected, fmt.Errorf("%w: %w", ErrFolderNotFound, err),
			report.Rejected(fmt.Sprintf("Cannot use output folder %s: %s", dest, outputReason(err))))
	}

	job.set(StateDiscovering)
	files, err := c.ws.Discover(folder)
	if err != nil {
		return reject(StateRejected, fmt.Errorf("%w: %w", ErrFolderNotFound, err),
			report.Rejected(fmt.Sprintf("Folder %s could not be read", folderName)))
	}
	if len(files) == 0 {
		return reject(StateRejectedEmpty, ErrEmptyBatch,
			report.Rejected(fmt.Sprintf("No files found to convert in %s", folderName)))
	}

	cj := types.ConversionJob{
		ID:         job.ID(),
		InputFiles: files,
		Source:     source,
		Target:     target,
		OutputDir:  outputDir,
	}
	job.mu.Lock()
	job.files = len(files)
	job.state = StateDispatched
	job.mu.Unlock()

	n.Notify(report.Progress(len(files)))
	logger.Info("dispatching batch",
		"folder", folderName, "files", len(files),
		"source", source.Name, "target", target.Name, "output", outputDir)

	start := time.Now()
	c.jobs.Add(1)
	go func() {
		defer c.jobs.Done()
		c.run(context.WithoutCancel(ctx), logger, job, cj, n, start)
	}()
	return job
}

// run converts the batch and reports each outcome followed by the summary.
// Elapsed time counts from start, the moment of dispatch.
func (c *Controller) run(ctx context.Context, logger *slog.Logger, job *Job, cj types.ConversionJob, n report.Notifier, start time.Time) {
	job.set(StateRunning)

	summary := types.BatchSummary{
		SourceFormatName: cj.Source.Name,
		TargetFormatName: cj.Target.Name,
	}
	for o := range c.conv.ConvertAll(ctx, cj) {
		summary.Add(o)
		n.Notify(report.FileOutcome(o))
	}
	elapsed := time.Since(start)
	summary.ElapsedMillis = elapsed.Milliseconds()

	c.metrics.RecordBatch(ctx, cj.Source.Name, cj.Target.Name, summary.TotalFiles, elapsed)
	logger.Info("batch complete",
		"total", summary.TotalFiles, "succeeded", summary.Succeeded,
		"failed", summary.Failed, "elapsed_ms", summary.ElapsedMillis)

	n.Notify(report.Summary(summary))
	job.complete(summary)
}

// Wait blocks until every dispatched job has delivered its summary.
func (c *Controller) Wait() {
	c.jobs.Wait()
}

// Complete returns candidates for the argument being typed, given the
// arguments already complete: folder names for the first, format names for
// the second and third, nothing afterwards.
func (c *Controller) Complete(args []string, toComplete string) []string {
	switch len(args) {
	case 0:
		return c.ws.Folders(toComplete)
	case 1, 2:
		var out []string
		for _, name := range format.Names() {
			if len(name) >= len(toComplete) && strings.EqualFold(name[:len(toComplete)], toComplete) {
				out = append(out, name)
			}
		}
		return out
	default:
		return nil
	}
}

func outputReason(err error) string {
	if errors.Is(err, workspace.ErrOutsideRoot) {
		return "it must stay inside the input folder"
	}
	return err.Error()
}
