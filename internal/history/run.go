// Package history records compile runs of the khc tool in a local SQLite
// database so earlier results can be listed and compared.
package history

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/msto63/khamseena/foundation/khamseena"
)

// ErrNotFound is returned by Get for an unknown run id
var ErrNotFound = errors.New("run not found")

// DiagnosticKind tells where a stored diagnostic came from
type DiagnosticKind string

const (
	KindParse   DiagnosticKind = "parse"
	KindError   DiagnosticKind = "error"
	KindWarning DiagnosticKind = "warning"
	KindFatal   DiagnosticKind = "fatal"
)

// Run is one recorded compilation
type Run struct {
	ID          string        `json:"id"`
	Timestamp   time.Time     `json:"timestamp"`
	Path        string        `json:"path"`
	SourceHash  string        `json:"source_hash"`
	Stage       string        `json:"stage"`
	Success     bool          `json:"success"`
	Tokens      int           `json:"tokens"`
	ParseErrors int           `json:"parse_errors"`
	Errors      int           `json:"errors"`
	Warnings    int           `json:"warnings"`
	Duration    time.Duration `json:"duration"`
	Diagnostics []Diagnostic  `json:"diagnostics,omitempty"`
}

// Diagnostic is a stored message of a run
type Diagnostic struct {
	Kind    DiagnosticKind `json:"kind"`
	Line    int            `json:"line"`
	Column  int            `json:"column"`
	Message string         `json:"message"`
}

// Filter defines criteria for listing runs
type Filter struct {
	Path       string
	FailedOnly bool
	Since      time.Time
	Limit      int
	Offset     int
}

// Stats summarizes the stored runs
type Stats struct {
	TotalRuns  int64            `json:"total_runs"`
	FailedRuns int64            `json:"failed_runs"`
	ByStage    map[string]int64 `json:"by_stage"`
	LastRun    time.Time        `json:"last_run,omitempty"`
}

// Store persists runs
type Store interface {
	Record(ctx context.Context, run *Run) error
	Get(ctx context.Context, id string) (*Run, error)
	List(ctx context.Context, filter Filter) ([]*Run, error)
	Stats(ctx context.Context) (*Stats, error)

	// Maintenance
	Prune(ctx context.Context, olderThan time.Duration) (int64, error)
	Vacuum(ctx context.Context) error
	Close() error
}

// FromResult builds a Run from an engine result. compileErr is the error
// Compile returned, if any; it is stored as a fatal diagnostic.
func FromResult(path, source string, result *khamseena.Result, compileErr error) *Run {
	sum := sha256.Sum256([]byte(source))
	run := &Run{
		ID:          uuid.NewString(),
		Timestamp:   time.Now().UTC(),
		Path:        path,
		SourceHash:  hex.EncodeToString(sum[:]),
		Stage:       string(result.Stage),
		Success:     compileErr == nil && result.Success(),
		Tokens:      len(result.Tokens),
		ParseErrors: len(result.ParseErrors),
		Duration:    result.Duration,
	}

	for _, perr := range result.ParseErrors {
		run.Diagnostics = append(run.Diagnostics, Diagnostic{KindParse, perr.Line, perr.Column, perr.Message})
	}
	if result.Analysis != nil {
		run.Errors = len(result.Analysis.Errors)
		run.Warnings = len(result.Analysis.Warnings)
		for _, d := range result.Analysis.Errors {
			run.Diagnostics = append(run.Diagnostics, Diagnostic{KindError, d.Pos.Line, d.Pos.Column, d.Message})
		}
		for _, d := range result.Analysis.Warnings {
			run.Diagnostics = append(run.Diagnostics, Diagnostic{KindWarning, d.Pos.Line, d.Pos.Column, d.Message})
		}
	}
	if compileErr != nil {
		run.Diagnostics = append(run.Diagnostics, Diagnostic{Kind: KindFatal, Message: compileErr.Error()})
	}

	return run
}

func prepare(run *Run) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.Timestamp.IsZero() {
		run.Timestamp = time.Now()
	}
	run.Timestamp = run.Timestamp.UTC()
}
