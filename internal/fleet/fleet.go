// Package fleet runs one operation (test, pull, push) across the fixed
// target list and aggregates per-target outcomes into a report.
//
// Execution is strictly sequential in input order. Failures never cross
// target boundaries: a missing checkout, an unmet precondition, or a
// failing command affects only that target's outcome, and the loop
// always continues. The aggregate succeeds exactly when no target
// failed; skipped and no-change targets never fail a run.
package fleet

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/ravenrobotics/raven/internal/execx"
	"github.com/ravenrobotics/raven/internal/workspace"
)

// Status classifies one target's outcome.
type Status string

const (
	// StatusPassed means the operation's unit of work exited cleanly.
	StatusPassed Status = "passed"

	// StatusFailed means the unit of work exited nonzero or could not
	// be started.
	StatusFailed Status = "failed"

	// StatusSkipped means the target was not eligible: not checked out
	// locally, or the operation's precondition was unmet.
	StatusSkipped Status = "skipped"

	// StatusNoChanges is push-specific: the worktree was clean so
	// nothing was staged, committed, or pushed.
	StatusNoChanges Status = "no-changes"
)

// failureTailLines bounds how much captured stdout a failed target
// keeps as diagnostic detail.
const failureTailLines = 5

// Outcome is the result of running one operation against one target.
// Never mutated after creation.
type Outcome struct {
	Target   string        `json:"target"`
	Status   Status        `json:"status"`
	Detail   string        `json:"detail,omitempty"`
	Reason   string        `json:"reason,omitempty"`
	Duration time.Duration `json:"duration"`
}

// Report is the ordered outcome sequence for one fleet run plus
// derived counts.
type Report struct {
	ID        string        `json:"id"`
	Operation string        `json:"operation"`
	Outcomes  []Outcome     `json:"outcomes"`
	Duration  time.Duration `json:"duration"`
}

// Count returns how many outcomes have the given status.
func (r Report) Count(s Status) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == s {
			n++
		}
	}
	return n
}

// OK reports aggregate success: true exactly when no target failed.
func (r Report) OK() bool {
	return r.Count(StatusFailed) == 0
}

// Summary renders the aggregate counts as a single line.
func (r Report) Summary() string {
	parts := []string{
		fmt.Sprintf("%d passed", r.Count(StatusPassed)),
		fmt.Sprintf("%d failed", r.Count(StatusFailed)),
		fmt.Sprintf("%d skipped", r.Count(StatusSkipped)),
	}
	if n := r.Count(StatusNoChanges); n > 0 {
		parts = append(parts, fmt.Sprintf("%d unchanged", n))
	}
	return strings.Join(parts, ", ")
}

// Operation is one fleet action applied uniformly across targets.
type Operation interface {
	// Name is the operation verb shown in reports and logs.
	Name() string

	// Precondition reports whether target is eligible. An ineligible
	// target is skipped with the returned reason.
	Precondition(target workspace.Target) (bool, string)

	// Execute runs the unit of work with captured output and
	// classifies the result. Target and Duration on the returned
	// Outcome are filled in by the executor.
	Execute(ctx context.Context, target workspace.Target) Outcome
}

// Executor applies an operation to each target in order.
type Executor struct {
	locator *workspace.Locator
}

// NewExecutor returns an executor resolving targets via locator.
func NewExecutor(locator *workspace.Locator) *Executor {
	return &Executor{locator: locator}
}

// Run applies op to every named target, in order.
//
// Always returns exactly one Outcome per input name, in input order,
// no matter what happens to individual targets.
//
// Parameters:
//   - ctx: Context for the external commands run per target.
//   - op: The operation to apply.
//   - names: Target names, in the order outcomes should appear.
//
// Returns:
//   - Report: Ordered outcomes with a fresh run ID and total duration.
func (e *Executor) Run(ctx context.Context, op Operation, names []string) Report {
	report := Report{ID: uuid.NewString(), Operation: op.Name()}
	start := time.Now()

	for _, name := range names {
		outcome := e.runOne(ctx, op, name)
		log.Debug("Target finished", "operation", op.Name(), "target", name, "status", outcome.Status)
		report.Outcomes = append(report.Outcomes, outcome)
	}

	report.Duration = time.Since(start)
	return report
}

func (e *Executor) runOne(ctx context.Context, op Operation, name string) Outcome {
	start := time.Now()

	target, found := e.locator.Resolve(name)
	if !found {
		return Outcome{
			Target:   name,
			Status:   StatusSkipped,
			Reason:   "not checked out locally",
			Duration: time.Since(start),
		}
	}

	if ok, reason := op.Precondition(target); !ok {
		return Outcome{
			Target:   name,
			Status:   StatusSkipped,
			Reason:   reason,
			Duration: time.Since(start),
		}
	}

	outcome := op.Execute(ctx, target)
	outcome.Target = name
	outcome.Duration = time.Since(start)
	return outcome
}

// classify converts a captured command result into an outcome.
//
// Exit 0 passes. Anything else fails with the last few stdout lines
// plus the full error stream retained, so a failing target can be
// diagnosed from the report alone. Spawn errors (the command never ran)
// fail with the error text.
func classify(res execx.Result) Outcome {
	if res.OK() {
		return Outcome{Status: StatusPassed}
	}
	return Outcome{Status: StatusFailed, Detail: failureDetail(res)}
}

func failureDetail(res execx.Result) string {
	var parts []string
	if tail := execx.Tail(res.Stdout, failureTailLines); tail != "" {
		parts = append(parts, tail)
	}
	if stderr := strings.TrimSpace(res.Stderr); stderr != "" {
		parts = append(parts, stderr)
	}
	if len(parts) == 0 && res.Err != nil {
		parts = append(parts, res.Err.Error())
	}
	return strings.Join(parts, "\n")
}
