// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report defines the user-facing notifications a conversion job
// emits and the notifiers that deliver them.
package report

import (
	"fmt"
	"strings"
	"sync"

	"github.com/pdiddy/schemconvert/pkg/types"
)

// Kind classifies a notification.
type Kind int

const (
	// KindUsage carries the command usage line.
	KindUsage Kind = iota
	// KindRejected reports a job refused before dispatch.
	KindRejected
	// KindProgress announces work about to start.
	KindProgress
	// KindFileConverted reports one successful file.
	KindFileConverted
	// KindFileFailed reports one failed file.
	KindFileFailed
	// KindSummary carries the final batch report.
	KindSummary
)

var kindNames = [...]string{"usage", "rejected", "progress", "converted", "failed", "summary"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// UsageLine is the command synopsis shown for malformed arguments.
const UsageLine = "Usage: bulkconvert <folderName> <sourceFormat> [targetFormat] [destinationSubfolder]"

// Message is one notification. Text is always set; File and Summary are set
// for per-file and summary messages respectively.
type Message struct {
	Kind    Kind
	Text    string
	File    string
	Summary *types.BatchSummary
}

// Notifier receives messages from a job. Implementations must be safe for
// concurrent use: a job notifies from its own goroutine.
type Notifier interface {
	Notify(Message)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Message)

// Notify calls f(m).
func (f NotifierFunc) Notify(m Message) { f(m) }

// Usage returns the usage message.
func Usage() Message {
	return Message{Kind: KindUsage, Text: UsageLine}
}

// Rejected returns a rejection message with the given text.
func Rejected(text string) Message {
	return Message{Kind: KindRejected, Text: text}
}

// Progress returns the announcement sent before a batch starts.
func Progress(files int) Message {
	return Message{Kind: KindProgress, Text: fmt.Sprintf("Converting %d files...", files)}
}

// FileOutcome converts a per-file outcome into a message.
func FileOutcome(o types.ConversionOutcome) Message {
	if o.OK() {
		return Message{Kind: KindFileConverted, File: o.File, Text: "Converted " + o.File}
	}
	return Message{Kind: KindFileFailed, File: o.File, Text: fmt.Sprintf("Failed to convert %s: %s", o.File, o.Message())}
}

// Summary returns the final report for a batch.
func Summary(s types.BatchSummary) Message {
	return Message{Kind: KindSummary, Text: SummaryText(s), Summary: &s}
}

// SummaryText renders s as the multi-line report shown at the end of a
// batch. The failed line appears only when something failed.
func SummaryText(s types.BatchSummary) string {
	var b strings.Builder
	b.WriteString("Done! Conversion complete:\n")
	fmt.Fprintf(&b, "• Converted: %d files\n", s.Succeeded)
	if s.Failed > 0 {
		fmt.Fprintf(&b, "• Failed: %d files\n", s.Failed)
	}
	fmt.Fprintf(&b, "• From: %s\n", s.SourceFormatName)
	fmt.Fprintf(&b, "• To: %s\n", s.TargetFormatName)
	fmt.Fprintf(&b, "• Time: %dms", s.ElapsedMillis)
	return b.String()
}

// Recorder collects messages in arrival order.
type Recorder struct {
	mu       sync.Mutex
	messages []Message
}

// Notify appends m.
func (r *Recorder) Notify(m Message) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, m)
}

// Messages returns a copy of everything recorded so far.
func (r *Recorder) Messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Message(nil), r.messages...)
}

// Texts returns the Text of every recorded message.
func (r *Recorder) Texts() []string {
	msgs := r.Messages()
	out := make([]string, len(msgs))
	for i, m := range msgs {
		out[i] = m.Text
	}
	return out
}

// OfKind returns the recorded messages of kind k.
func (r *Recorder) OfKind(k Kind) []Message {
	var out []Message
	for _, m := range r.Messages() {
		if m.Kind == k {
			out = append(out, m)
		}
	}
	return out
}

// Multi fans a message out to several notifiers in order.
type Multi []Notifier

// Notify forwards m to every notifier.
func (n Multi) Notify(m Message) {
	for _, x := range n {
		x.Notify(m)
	}
}
