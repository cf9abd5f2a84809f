package fleet

import (
	"context"

	"github.com/ravenrobotics/raven/internal/execx"
	"github.com/ravenrobotics/raven/internal/vcs"
	"github.com/ravenrobotics/raven/internal/workspace"
)

// PullOp fast-forwards each checkout from its remote.
type PullOp struct{}

// Name implements Operation.
func (PullOp) Name() string { return "pull" }

// Precondition requires a git checkout.
func (PullOp) Precondition(target workspace.Target) (bool, string) {
	if !vcs.IsRepo(target.Path) {
		return false, "not a git checkout"
	}
	return true, ""
}

// Execute runs a fast-forward pull with captured output.
func (PullOp) Execute(ctx context.Context, target workspace.Target) Outcome {
	return classify(vcs.Pull(ctx, target.Path))
}

// PushOp stages, commits, and pushes each checkout's pending changes.
type PushOp struct {
	// Message is the commit message applied to every target.
	Message string
}

// Name implements Operation.
func (PushOp) Name() string { return "push" }

// Precondition requires a git checkout.
func (PushOp) Precondition(target workspace.Target) (bool, string) {
	if !vcs.IsRepo(target.Path) {
		return false, "not a git checkout"
	}
	return true, ""
}

// Execute pushes pending changes through stage, commit, push.
//
// A clean worktree classifies as StatusNoChanges without touching the
// index. The first failing step fails the target with that step's
// output retained; later steps are not attempted.
func (op PushOp) Execute(ctx context.Context, target workspace.Target) Outcome {
	dirty, err := vcs.HasChanges(ctx, target.Path)
	if err != nil {
		return Outcome{Status: StatusFailed, Detail: err.Error()}
	}
	if !dirty {
		return Outcome{Status: StatusNoChanges}
	}

	steps := []struct {
		name string
		run  func() execx.Result
	}{
		{"stage", func() execx.Result { return vcs.Add(ctx, target.Path) }},
		{"commit", func() execx.Result { return vcs.Commit(ctx, target.Path, op.Message) }},
		{"push", func() execx.Result { return vcs.Push(ctx, target.Path) }},
	}
	for _, step := range steps {
		if res := step.run(); !res.OK() {
			out := classify(res)
			out.Detail = step.name + ": " + out.Detail
			return out
		}
	}
	return Outcome{Status: StatusPassed}
}
