// Package shell provides a shell-based executor for running workflow steps.
package shell

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/creack/pty"
	"github.com/morsellabs/dashci/internal/core/domain"
	"github.com/morsellabs/dashci/internal/core/ports"
	"go.trai.ch/zerr"
)

// process represents a running command.
type process interface {
	Wait() error
}

type ptyProcess struct {
	cmd    *exec.Cmd
	ptmx   *os.File
	ioDone <-chan struct{}
}

func (p *ptyProcess) Wait() error {
	err := p.cmd.Wait()

	// Wait for the IO copy loop to drain what's left in the PTY.
	<-p.ioDone

	return err
}

type pipeProcess struct {
	cmd *exec.Cmd
}

func (p *pipeProcess) Wait() error {
	return p.cmd.Wait()
}

// Executor implements ports.Executor using os/exec and pty.
type Executor struct {
	logger ports.Logger
}

var _ ports.Executor = (*Executor)(nil)

// NewExecutor creates a new shell Executor.
func NewExecutor(logger ports.Logger) *Executor {
	return &Executor{
		logger: logger,
	}
}

// Execute runs the step's command and waits for it to complete. When the
// process exits non-zero, the returned error carries the literal exit status.
func (e *Executor) Execute(ctx context.Context, step *domain.Step, env []string, stdout, stderr io.Writer) error {
	stdoutLog := &logWriter{logger: e.logger, level: "info"}
	stderrLog := &logWriter{logger: e.logger, level: "error"}

	finalStdout := io.MultiWriter(stdoutLog, stdout)
	finalStderr := io.MultiWriter(stderrLog, stderr)

	proc, err := start(ctx, step, env, finalStdout, finalStderr, stdoutLog, stderrLog)
	if err != nil {
		return err
	}
	if proc == nil {
		return nil // Empty command
	}

	if err := proc.Wait(); err != nil {
		exitCode := -1
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
		wrapped := zerr.With(zerr.Wrap(err, "command failed"), "exit_code", exitCode)
		return domain.WithExitCode(wrapped, exitCode)
	}

	return nil
}

func start(
	ctx context.Context,
	step *domain.Step,
	env []string,
	stdout, stderr io.Writer,
	stdoutLog, stderrLog *logWriter,
) (process, error) {
	if len(step.Command) == 0 {
		return nil, nil
	}

	name := step.Command[0]
	args := step.Command[1:]

	cmdEnv := resolveEnvironment(os.Environ(), env, step.Environment)

	// Resolve the executable against the step's PATH, not the caller's.
	executable := name
	if !filepath.IsAbs(name) {
		if lp, err := lookPath(name, cmdEnv); err == nil {
			executable = lp
		}
	}

	cmd := exec.CommandContext(ctx, executable, args...) //nolint:gosec // workspace provided command

	if len(cmd.Args) > 0 {
		cmd.Args[0] = name
	}

	if step.WorkingDir != "" {
		cmd.Dir = step.WorkingDir
	}

	cmd.Env = cmdEnv

	// Prefer a PTY so tools keep their progress output and colors; fall back
	// to plain pipes where no PTY can be allocated.
	ptmx, err := pty.Start(cmd)
	if err != nil {
		return startWithPipes(cmd, stdout, stderr)
	}

	ioDone := make(chan struct{})
	go func() {
		defer close(ioDone)
		defer func() { _ = ptmx.Close() }()
		defer func() {
			_ = stdoutLog.Close()
			_ = stderrLog.Close()
		}()

		// A PTY merges stdout and stderr into one stream.
		_, _ = io.Copy(stdout, ptmx)
	}()

	return &ptyProcess{
		cmd:    cmd,
		ptmx:   ptmx,
		ioDone: ioDone,
	}, nil
}

func startWithPipes(cmd *exec.Cmd, stdout, stderr io.Writer) (process, error) {
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Start(); err != nil {
		return nil, zerr.Wrap(err, "failed to start command")
	}

	return &pipeProcess{cmd: cmd}, nil
}

type logWriter struct {
	logger ports.Logger
	level  string
	buf    []byte
}

func (w *logWriter) Write(p []byte) (n int, err error) {
	w.buf = append(w.buf, p...)

	// Scan for newlines
	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}

		line := w.buf[:i]
		w.logLine(line)

		// Advance buffer
		w.buf = w.buf[i+1:]
	}

	return len(p), nil
}

func (w *logWriter) Close() error {
	if len(w.buf) > 0 {
		w.logLine(w.buf)
		w.buf = nil
	}
	return nil
}

func (w *logWriter) logLine(line []byte) {
	msg := string(line)
	// PTYs may introduce \r. Remove it.
	msg = strings.TrimSuffix(msg, "\r")

	if w.level == "info" {
		w.logger.Info(msg)
	} else {
		w.logger.Error(zerr.New(msg))
	}
}

// allowListedEnvVars are the system environment variables that are allowed to
// be inherited by a step. This keeps step execution reproducible while still
// allowing basic system tools to function.
var allowListedEnvVars = map[string]struct{}{
	"HOME": {},
	"TERM": {},
	"USER": {},
	"PATH": {},
	"LANG": {},
}

// resolveEnvironment merges environment variables with the defined priority:
// allow-listed system variables, then the provisioned environment (PATH is
// prepended rather than replaced), then step-level overrides.
func resolveEnvironment(sysEnv, activationEnv []string, stepEnv map[string]string) []string {
	envMap := filterSystemEnv(sysEnv)

	applyActivationEnv(envMap, activationEnv)

	for k, v := range stepEnv {
		envMap[k] = v
	}

	result := make([]string, 0, len(envMap))
	for k, v := range envMap {
		result = append(result, k+"="+v)
	}
	return result
}

func filterSystemEnv(sysEnv []string) map[string]string {
	envMap := make(map[string]string)
	for _, entry := range sysEnv {
		k, v, ok := strings.Cut(entry, "=")
		if ok {
			if _, allowed := allowListedEnvVars[k]; allowed {
				envMap[k] = v
			}
		}
	}
	return envMap
}

func applyActivationEnv(envMap map[string]string, activationEnv []string) {
	for _, entry := range activationEnv {
		k, v, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		if k == "PATH" {
			if sysPath, exists := envMap["PATH"]; exists && sysPath != "" {
				envMap[k] = v + string(os.PathListSeparator) + sysPath
			} else {
				envMap[k] = v
			}
		} else {
			envMap[k] = v
		}
	}
}

// lookPath searches for an executable in the directories named by the PATH
// entry of env.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if strings.HasPrefix(e, "PATH=") {
			path = strings.TrimPrefix(e, "PATH=")
			break
		}
	}

	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if err := findExecutable(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
