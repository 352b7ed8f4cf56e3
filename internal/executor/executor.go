// Package executor turns resolved command text into subprocess invocations.
//
// Chains are split on the sequential-AND operator and run strictly in order;
// the first non-zero exit stops the chain and later segments never run. A dry
// run never spawns a process. Executions have no timeout and cannot be
// cancelled once spawned: the child inherits the terminal and the terminal's
// own interrupt handling passes through untouched. That limitation is kept
// from the original design on purpose.
package executor

import (
	"fmt"
	"strings"

	"github.com/qlsh/quick-launcher/internal/logging"
	"github.com/qlsh/quick-launcher/internal/logging/events"
)

// ChainOperator joins the segments of a chain entry.
const ChainOperator = "&&"

// Launcher starts a single command segment and reports its exit status.
// A non-nil error means the process could not be started at all.
type Launcher interface {
	Run(segment string) (exitCode int, err error)
}

// SpawnError wraps a launcher failure for a specific segment.
type SpawnError struct {
	Segment string
	Err     error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("failed to start %q: %v", e.Segment, e.Err)
}

func (e *SpawnError) Unwrap() error { return e.Err }

// SegmentResult records one executed segment.
type SegmentResult struct {
	Index    int
	Command  string
	ExitCode int
}

// Result reports the outcome of an Execute call. Failures are carried as
// data so the interactive loop can render them and continue.
type Result struct {
	Command     string
	Segments    []string
	DryRun      bool
	SegmentsRun []SegmentResult
	ExitCode    int
	FirstFailed int // index into Segments, -1 when every segment succeeded
	Warnings    []string
	Err         error // *SpawnError when a segment could not be started
}

// Failed reports whether the execution stopped early or exited non-zero.
func (r Result) Failed() bool {
	return r.Err != nil || r.ExitCode != 0
}

// Executor runs resolved command text through a Launcher.
type Executor struct {
	launcher Launcher
	patterns []dangerPattern
}

// New builds an Executor around the given launcher. Extra destructive-pattern
// expressions from configuration are compiled on top of the built-in set;
// invalid expressions are logged and skipped.
func New(launcher Launcher, extraPatterns []string) *Executor {
	return &Executor{
		launcher: launcher,
		patterns: compilePatterns(extraPatterns),
	}
}

// SplitChain splits command text at the sequential-AND operator, trimming
// whitespace and dropping empty segments.
func SplitChain(command string) []string {
	parts := strings.Split(command, ChainOperator)
	segments := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			segments = append(segments, trimmed)
		}
	}
	return segments
}

// Warnings matches the resolved text against the destructive-pattern set.
// The result is advisory only: execution is never blocked here, the caller
// decides whether to ask for confirmation.
func (x *Executor) Warnings(command string) []string {
	var warnings []string
	for _, p := range x.patterns {
		if p.re.MatchString(command) {
			warnings = append(warnings, p.label)
		}
	}
	return warnings
}

// Execute runs the resolved command. For a chain the text is split into
// segments executed in order with short-circuit on the first non-zero exit;
// links and resolved templates run as a single segment. With dryRun set no
// process is spawned and the result only carries the resolved text and
// segment boundaries.
func (x *Executor) Execute(command string, chained bool, dryRun bool) Result {
	result := Result{
		Command:     command,
		DryRun:      dryRun,
		FirstFailed: -1,
		Warnings:    x.Warnings(command),
	}
	if chained {
		result.Segments = SplitChain(command)
	} else {
		result.Segments = []string{strings.TrimSpace(command)}
	}
	if dryRun {
		events.Exec.DryRun(command, len(result.Segments))
		return result
	}
	events.Exec.Start(command, len(result.Segments), result.Warnings)
	for i, segment := range result.Segments {
		code, err := x.launcher.Run(segment)
		if err != nil {
			result.Err = &SpawnError{Segment: segment, Err: err}
			result.ExitCode = -1
			result.FirstFailed = i
			logging.Error(result.Err)
			events.Exec.SpawnFailure(segment, err)
			return result
		}
		result.SegmentsRun = append(result.SegmentsRun, SegmentResult{Index: i, Command: segment, ExitCode: code})
		events.Exec.Segment(i, segment, code)
		if code != 0 {
			result.ExitCode = code
			result.FirstFailed = i
			events.Exec.Halted(i, code)
			return result
		}
	}
	events.Exec.Done(command)
	return result
}
