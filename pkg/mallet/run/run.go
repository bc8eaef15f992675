// Package run executes compiled MALLET command lines. It owns the
// platform shell decision and the capture of MALLET's stderr into a
// log file; it never inspects or builds the argument vector itself.
package run

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"runtime"

	"github.com/cognicore/mallet/pkg/mallet/internalerr"
)

// DefaultLogPath is where MALLET's stderr lands when no other path
// is configured, relative to the working directory.
const DefaultLogPath = "mallet.log"

// Runner invokes an external process and captures its stderr.
// The zero value logs to DefaultLogPath.
//
// On Windows the command line is routed through the shell, since
// MALLET ships as a batch file there. Everywhere else the argument
// vector is handed to the process unchanged, so values may contain
// whitespace or shell metacharacters without being reinterpreted.
type Runner struct {
	// LogPath overrides where stderr is written.
	LogPath string
}

// Run executes args (args[0] is the executable) and blocks until the
// process exits with both output streams drained. Stderr is written
// to the log file regardless of outcome. A missing or non-invocable
// executable maps to ErrLaunch, a nonzero exit to ErrExternalTool
// carrying the stderr tail.
func (r Runner) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: empty command line", internalerr.ErrConfiguration)
	}

	if runtime.GOOS == "windows" {
		args = append([]string{"cmd", "/C"}, args...)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()

	logPath := r.LogPath
	if logPath == "" {
		logPath = DefaultLogPath
	}
	if werr := os.WriteFile(logPath, stderr.Bytes(), 0644); werr != nil && runErr == nil {
		runErr = werr
	}

	if runErr == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) {
		return fmt.Errorf("%w: %s exited with status %d: %s",
			internalerr.ErrExternalTool, args[0], exitErr.ExitCode(), tail(stderr.Bytes()))
	}
	if errors.Is(runErr, exec.ErrNotFound) || errors.Is(runErr, fs.ErrNotExist) ||
		errors.Is(runErr, fs.ErrPermission) {
		return fmt.Errorf("%w: %s: %v", internalerr.ErrLaunch, args[0], runErr)
	}
	return runErr
}

// tail returns the last stderr line, for error messages.
func tail(b []byte) string {
	b = bytes.TrimSpace(b)
	if i := bytes.LastIndexByte(b, '\n'); i >= 0 {
		b = b[i+1:]
	}
	return string(b)
}
