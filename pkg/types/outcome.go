// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// OutcomeStatus indicates how the conversion of one file ended.
type OutcomeStatus string

const (
	OutcomeSuccess OutcomeStatus = "converted"
	OutcomeFailure OutcomeStatus = "failed"
)

// ConversionJob describes one batch invocation. It is built once by the
// session controller and never modified afterwards.
type ConversionJob struct {
	// ID correlates log lines and metrics for the job.
	ID string `json:"id" yaml:"id"`

	// InputFiles lists the files to convert, in processing order.
	InputFiles []string `json:"input_files" yaml:"input_files"`

	// Source is the format the input files are read with.
	Source FormatDescriptor `json:"source" yaml:"source"`

	// Target is the format the output files are written in.
	Target FormatDescriptor `json:"target" yaml:"target"`

	// OutputDir receives one output file per input file.
	OutputDir string `json:"output_dir" yaml:"output_dir"`
}

// ConversionOutcome is the result of converting a single input file.
type ConversionOutcome struct {
	// File is the base name of the input file.
	File string `json:"file" yaml:"file"`

	// Output is the path written on success.
	Output string `json:"output,omitempty" yaml:"output,omitempty"`

	Status OutcomeStatus `json:"status" yaml:"status"`

	// Err is set for failures.
	Err error `json:"-" yaml:"-"`
}

// Succeeded builds a success outcome.
func Succeeded(file, output string) ConversionOutcome {
	return ConversionOutcome{File: file, Output: output, Status: OutcomeSuccess}
}

// Failed builds a failure outcome.
func Failed(file string, err error) ConversionOutcome {
	return ConversionOutcome{File: file, Status: OutcomeFailure, Err: err}
}

// OK reports whether the file converted successfully.
func (o ConversionOutcome) OK() bool {
	return o.Status == OutcomeSuccess
}

// Message returns the error text of a failure, or "" on success.
func (o ConversionOutcome) Message() string {
	if o.Err == nil {
		return ""
	}
	return o.Err.Error()
}

// BatchSummary aggregates the outcomes of one job.
type BatchSummary struct {
	TotalFiles       int    `json:"total_files" yaml:"total_files"`
	Succeeded        int    `json:"succeeded" yaml:"succeeded"`
	Failed           int    `json:"failed" yaml:"failed"`
	SourceFormatName string `json:"source_format" yaml:"source_format"`
	TargetFormatName string `json:"target_format" yaml:"target_format"`
	ElapsedMillis    int64  `json:"elapsed_ms" yaml:"elapsed_ms"`
}

// Add counts one outcome.
func (s *BatchSummary) Add(o ConversionOutcome) {
	s.TotalFiles++
	if o.OK() {
		s.Succeeded++
	} else {
		s.Failed++
	}
}

// HasFailures reports whether any file failed conversion.
func (s BatchSummary) HasFailures() bool {
	return s.Failed > 0
}
