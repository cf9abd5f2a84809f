//go:build !windows

package supervise

import (
	"os/exec"
	"strconv"
	"strings"
	"syscall"
)

// detach places the child in a fresh session so it keeps running after
// the CLI exits and never receives terminal signals meant for us. The
// session leader is also its process group leader, which is what
// signalStop targets.
func detach(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
}

// signalStop sends SIGTERM to the process group led by pid, falling
// back to the single process when the group is already gone.
func signalStop(pid int) error {
	if err := syscall.Kill(-pid, syscall.SIGTERM); err == nil {
		return nil
	}
	return syscall.Kill(pid, syscall.SIGTERM)
}

// alive reports whether pid refers to a running process.
func alive(pid int) bool {
	return syscall.Kill(pid, syscall.Signal(0)) == nil
}

// processUptime returns the elapsed time of pid as reported by ps, or
// "" when the process cannot be inspected.
func processUptime(pid int) string {
	out, err := exec.Command("ps", "-o", "etime=", "-p", strconv.Itoa(pid)).Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}
