//go:build windows

package supervise

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"syscall"
)

// detachedProcess is the Windows DETACHED_PROCESS creation flag, not
// exposed by the syscall package.
const detachedProcess = 0x00000008

// detach starts the child in its own process group without a console,
// so it survives the CLI exiting.
func detach(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		CreationFlags: syscall.CREATE_NEW_PROCESS_GROUP | detachedProcess,
	}
}

// signalStop terminates the process tree rooted at pid. Windows has no
// SIGTERM; taskkill /T approximates group termination.
func signalStop(pid int) error {
	cmd := exec.Command("taskkill", "/T", "/F", "/PID", strconv.Itoa(pid))
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("taskkill failed for pid %d: %w", pid, err)
	}
	return nil
}

// alive reports whether pid refers to a running process.
// On Windows FindProcess opens a real process handle, so it fails for
// pids that no longer exist.
func alive(pid int) bool {
	p, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	_ = p.Release()
	return true
}

// processUptime is not available on Windows.
func processUptime(pid int) string {
	return ""
}
