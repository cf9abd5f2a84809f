// Package device detects the embedded board attached to the host.
package device

import (
	"context"
	"errors"
	"os/exec"
	"time"

	"github.com/charmbracelet/log"
	"github.com/codeGROOVE-dev/retry"
	"go.bug.st/serial/enumerator"

	"github.com/ravenrobotics/raven/internal/execx"
)

// Resolver detects attached boards. The zero value is not usable;
// construct with NewResolver.
//
// Detection is recomputed on every call. The board set changes as
// cables are plugged and unplugged, so no result is ever cached.
type Resolver struct {
	// listPorts enumerates USB serial ports.
	listPorts func() ([]*enumerator.PortDetails, error)

	// lookPath searches PATH for a binary.
	lookPath func(file string) (string, error)

	// runBoardList executes the board tool's list command.
	runBoardList func(ctx context.Context, tool string) execx.Result
}

// NewResolver creates a resolver wired to the host's serial stack and
// board tool.
//
// Returns:
//   - *Resolver: A new resolver instance.
func NewResolver() *Resolver {
	return &Resolver{
		listPorts: enumerator.GetDetailedPortsList,
		lookPath:  exec.LookPath,
		runBoardList: func(ctx context.Context, tool string) execx.Result {
			return execx.Run(ctx, tool, "board", "list")
		},
	}
}

// Resolve detects the attached board.
//
// Native serial enumeration wins when it finds anything; the board
// tool only runs when enumeration comes up empty. A source that errors
// is logged and treated as empty so a broken serial stack cannot mask
// a board the fallback would find.
//
// Parameters:
//   - ctx: Context for cancellation of the board tool subprocess.
//
// Returns:
//   - Candidate: The detected board.
//   - error: ErrNoDevice when both sources come up empty.
func (r *Resolver) Resolve(ctx context.Context) (Candidate, error) {
	if c, ok := r.fromSerial(); ok {
		return c, nil
	}
	if c, ok := r.fromBoardTool(ctx); ok {
		return c, nil
	}
	return Candidate{}, ErrNoDevice
}

// ResolveWithRetry detects the attached board, retrying with backoff.
//
// Boards drop off the bus for a few seconds after a reset, so flash
// waits for them to settle instead of failing on the first empty scan.
//
// Parameters:
//   - ctx: Context for cancellation.
//   - attempts: Total detection attempts.
//   - delay: Initial backoff delay between attempts.
//
// Returns:
//   - Candidate: The detected board.
//   - error: ErrNoDevice when every attempt came up empty.
func (r *Resolver) ResolveWithRetry(ctx context.Context, attempts uint, delay time.Duration) (Candidate, error) {
	var c Candidate
	err := retry.Do(func() error {
		var rerr error
		c, rerr = r.Resolve(ctx)
		return rerr
	}, retry.Attempts(attempts), retry.Delay(delay), retry.MaxDelay(30*time.Second))
	if err != nil {
		if errors.Is(err, ErrNoDevice) {
			return Candidate{}, ErrNoDevice
		}
		return Candidate{}, err
	}
	return c, nil
}

// fromSerial runs native USB serial enumeration.
func (r *Resolver) fromSerial() (Candidate, bool) {
	ports, err := r.listPorts()
	if err != nil {
		log.Warn("Serial enumeration failed, falling back to board tool", "error", err)
		return Candidate{}, false
	}

	for _, port := range ports {
		if matchPort(port.Name, port.Product) {
			log.Debug("Board found via serial enumeration", "path", port.Name, "product", port.Product)
			return Candidate{
				Path:        port.Name,
				Description: port.Product,
				Source:      SourceSerial,
			}, true
		}
	}
	return Candidate{}, false
}
