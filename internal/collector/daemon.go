package collector

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"
)

// ErrAlreadyRunning is returned by Start when a live pidfile exists.
var ErrAlreadyRunning = errors.New("logger already running")

func pidIsRunning(pid int) bool {
	err := syscall.Kill(pid, 0)
	if err == nil {
		return true
	}
	return errors.Is(err, syscall.EPERM)
}

// ReadPid returns the pid recorded in pidfile, or 0 if absent/unreadable.
func ReadPid(pidfile string) int {
	data, err := os.ReadFile(pidfile)
	if err != nil {
		return 0
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0
	}
	return pid
}

// Status reports whether the recorded collector process is alive, and its
// pid (0 when no pidfile exists).
func Status(pidfile string) (running bool, pid int) {
	pid = ReadPid(pidfile)
	if pid == 0 {
		return false, 0
	}
	return pidIsRunning(pid), pid
}

// Start launches a detached copy of this binary running the sampling loop
// and records its pid.
func Start(pidfile, dbPath string, interval time.Duration) (int, error) {
	if running, pid := Status(pidfile); running {
		return 0, fmt.Errorf("%w (pid %d)", ErrAlreadyRunning, pid)
	}
	if err := os.MkdirAll(filepath.Dir(pidfile), 0o755); err != nil {
		return 0, err
	}

	self, err := os.Executable()
	if err != nil {
		return 0, err
	}
	cmd := exec.Command(self, "log", "run", "--db", dbPath, "--interval", interval.String())
	cmd.Stdout = nil
	cmd.Stderr = nil
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	if err := cmd.Start(); err != nil {
		return 0, err
	}
	pid := cmd.Process.Pid
	if err := os.WriteFile(pidfile, []byte(strconv.Itoa(pid)), 0o644); err != nil {
		return 0, err
	}
	// The child outlives us; release our handle on it.
	_ = cmd.Process.Release()
	return pid, nil
}

// Stop terminates the recorded collector process. Returns false when
// nothing was running (a stale pidfile is removed).
func Stop(pidfile string, timeout time.Duration) (bool, error) {
	pid := ReadPid(pidfile)
	if pid == 0 {
		return false, nil
	}
	if !pidIsRunning(pid) {
		_ = os.Remove(pidfile)
		return false, nil
	}

	if err := syscall.Kill(pid, syscall.SIGTERM); err != nil {
		return false, err
	}
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if !pidIsRunning(pid) {
			break
		}
		time.Sleep(100 * time.Millisecond)
	}
	if pidIsRunning(pid) {
		_ = syscall.Kill(pid, syscall.SIGKILL)
	}
	_ = os.Remove(pidfile)
	return true, nil
}
