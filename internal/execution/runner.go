package execution

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"syscall"
	"time"

	"go.uber.org/zap"

	"kitty/internal/domain"
)

// waitDelay bounds how long Wait keeps draining pipes held open by
// grandchildren after the context is done.
const waitDelay = time.Second

// ProcessOutput is everything a finished program produced
type ProcessOutput struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
	TimedOut bool
}

// Success reports a zero exit status within the time limit
func (o ProcessOutput) Success() bool {
	return o.ExitCode == 0 && !o.TimedOut
}

// Runner executes a single program at a time
type Runner struct {
	logger  *zap.Logger
	timeout time.Duration
}

// NewRunner creates a new Runner. A zero timeout waits forever.
func NewRunner(logger *zap.Logger, timeout time.Duration) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{logger: logger, timeout: timeout}
}

// Compile runs a compiler with stdin disabled. A non-zero exit is
// returned as *CompileError carrying the captured output.
func (r *Runner) Compile(ctx context.Context, cmd domain.Command) error {
	if len(cmd) == 0 {
		return fmt.Errorf("compile %w", ErrEmptyCommand)
	}
	r.logger.Debug("compiler command", zap.Strings("argv", cmd))

	c := exec.CommandContext(ctx, cmd.Program(), cmd.Args()...)
	c.WaitDelay = waitDelay
	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	if err := c.Start(); err != nil {
		return startError(cmd.Program(), err)
	}
	exitCode, _, err := wait(c, cmd.Program())
	if err != nil {
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if exitCode != 0 {
		return &CompileError{
			ExitCode: exitCode,
			Stdout:   lossy(stdout.Bytes()),
			Stderr:   lossy(stderr.Bytes()),
		}
	}
	return nil
}

// RunWithInput runs cmd with input on stdin and captures stdout and
// stderr. The exit status is reported, never interpreted.
func (r *Runner) RunWithInput(ctx context.Context, cmd domain.Command, input []byte) (ProcessOutput, error) {
	if len(cmd) == 0 {
		return ProcessOutput{}, fmt.Errorf("run %w", ErrEmptyCommand)
	}
	r.logger.Debug("run command", zap.Strings("argv", cmd))

	runCtx := ctx
	if r.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	c := exec.CommandContext(runCtx, cmd.Program(), cmd.Args()...)
	c.WaitDelay = waitDelay
	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	stdin, err := c.StdinPipe()
	if err != nil {
		return ProcessOutput{}, &ProcessError{Kind: SpawnFailed, Program: cmd.Program(), Err: err}
	}
	if err := c.Start(); err != nil {
		return ProcessOutput{}, startError(cmd.Program(), err)
	}

	_, writeErr := stdin.Write(input)
	// stdin must be closed before waiting, or a child reading until EOF never exits
	closeErr := stdin.Close()

	exitCode, killed, err := wait(c, cmd.Program())
	if err != nil {
		return ProcessOutput{}, err
	}

	// A child may exit without consuming all of its input; the broken
	// pipe that causes is not a failure to run it.
	if writeErr == nil {
		writeErr = closeErr
	}
	if writeErr != nil && !errors.Is(writeErr, syscall.EPIPE) && !errors.Is(writeErr, fs.ErrClosed) {
		return ProcessOutput{}, &ProcessError{Kind: StdinWriteFailed, Program: cmd.Program(), Err: writeErr}
	}

	if ctx.Err() != nil {
		return ProcessOutput{}, ctx.Err()
	}

	out := ProcessOutput{
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
		ExitCode: exitCode,
	}
	// A child that exited on its own just before the deadline still ran in time
	if killed && errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		out.TimedOut = true
		out.Stderr = append(out.Stderr, fmt.Sprintf("\nkilled after %s timeout\n", r.timeout)...)
	}
	return out, nil
}

func startError(program string, err error) error {
	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
		return &ProcessError{Kind: ProgramNotFound, Program: program, Err: err}
	}
	return &ProcessError{Kind: SpawnFailed, Program: program, Err: err}
}

// wait reports the exit code and whether the process was terminated
// rather than exiting on its own.
func wait(c *exec.Cmd, program string) (int, bool, error) {
	err := c.Wait()
	if err == nil || errors.Is(err, exec.ErrWaitDelay) {
		return 0, false, nil
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		if c.ProcessState != nil {
			return c.ProcessState.ExitCode(), !c.ProcessState.Exited(), nil
		}
		return -1, true, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		// -1 when the process was killed by a signal
		return exitErr.ExitCode(), !exitErr.Exited(), nil
	}
	return -1, false, &ProcessError{Kind: WaitFailed, Program: program, Err: err}
}

// LookupProgram checks that the program of cmd can be started
func LookupProgram(cmd domain.Command) error {
	if len(cmd) == 0 {
		return fmt.Errorf("run %w", ErrEmptyCommand)
	}
	if _, err := exec.LookPath(cmd.Program()); err != nil {
		return &ProcessError{Kind: ProgramNotFound, Program: cmd.Program(), Err: err}
	}
	return nil
}
