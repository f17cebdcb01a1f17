// Package installer drives the local installer executable and resolves
// exactly one outcome per invocation.
package installer

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
	"time"
)

const (
	// DefaultCommand is the installer executable looked up on PATH when the
	// Invoker is not configured with an explicit one.
	DefaultCommand = "pantry"

	// DefaultTimeout bounds an install invocation whose caller supplied no
	// deadline. The installer protocol has no liveness signal, so without a
	// bound a hung process would suspend the caller forever.
	DefaultTimeout = 15 * time.Minute
)

// ErrInstallFailed is returned when the installer reports failure (exit code 1).
var ErrInstallFailed = errors.New("install failed")

// Invoker launches the installer for a named package and watches its output
// streams and exit signal for a qualifying event.
//
// Zero value is usable; fields override the defaults.
type Invoker struct {
	// Command is the installer executable. Empty means DefaultCommand.
	Command string

	// Timeout applies when the caller's context has no deadline. Zero means
	// DefaultTimeout; negative disables the bound entirely.
	Timeout time.Duration

	// Log receives diagnostic lines when non-nil (the CLI passes stderr in
	// verbose mode).
	Log io.Writer
}

// Result is the successful outcome of an install invocation.
type Result struct {
	// PID is the identifier of the (terminated) installer process.
	PID int
}

// installArgs builds the installer argv for a fully-qualified package name.
func installArgs(fullName string) []string {
	return []string{"+" + fullName, "true"}
}

type eventKind int

const (
	eventLine eventKind = iota
	eventExit
)

// event is one observation from the installer: an output line from either
// stream, or the completion signal.
type event struct {
	kind eventKind
	line string
	code int
	// coded is false when the completion signal carried no usable exit code
	// (e.g. the process was killed by a signal).
	coded bool
}

type transition int

const (
	transitionNone transition = iota
	transitionSucceeded
	transitionFailed
)

// classify maps one event to a state transition. It is the entire
// success/failure predicate of the install flow:
//
//   - a line containing "installed:" resolves success
//   - exit code 0 resolves success
//   - exit code 1 resolves failure
//   - a completion signal without a code re-enters as an empty line
//   - anything else keeps waiting
func classify(ev event) transition {
	if ev.kind == eventExit {
		if !ev.coded {
			return classify(event{kind: eventLine, line: ""})
		}
		switch ev.code {
		case 0:
			return transitionSucceeded
		case 1:
			return transitionFailed
		}
		return transitionNone
	}
	if strings.Contains(ev.line, "installed:") {
		return transitionSucceeded
	}
	return transitionNone
}

// Install runs the installer for fullName and blocks until the first
// qualifying event resolves the outcome. The child process is terminated
// before Install returns; later events are ignored.
//
// Failure always comes back as an error (ErrInstallFailed for an installer
// exit code of 1, a wrapped spawn error if the process could not launch,
// context errors for cancellation/timeout); the caller never sees a panic.
func (inv *Invoker) Install(ctx context.Context, fullName string) (*Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if strings.TrimSpace(fullName) == "" {
		return nil, errors.New("install: package name is required")
	}

	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		timeout := inv.Timeout
		if timeout == 0 {
			timeout = DefaultTimeout
		}
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
	}

	command := inv.Command
	if command == "" {
		command = DefaultCommand
	}

	cmd := exec.CommandContext(ctx, command, installArgs(fullName)...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("install %s: %w", fullName, err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("install %s: %w", fullName, err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("install %s: spawn %s: %w", fullName, command, err)
	}
	pid := cmd.Process.Pid
	inv.logf("started %s %s (pid %d)", command, strings.Join(installArgs(fullName), " "), pid)

	events := make(chan event, 16)

	var readers sync.WaitGroup
	readers.Add(2)
	go scanLines(stdout, events, &readers)
	go scanLines(stderr, events, &readers)

	// Waiter: reap the process once both streams hit EOF, then publish the
	// completion signal and close the stream.
	go func() {
		readers.Wait()
		waitErr := cmd.Wait()
		ev := event{kind: eventExit}
		if waitErr == nil {
			ev.coded = true
		} else {
			var exitErr *exec.ExitError
			if errors.As(waitErr, &exitErr) && exitErr.ExitCode() >= 0 {
				ev.code = exitErr.ExitCode()
				ev.coded = true
			}
		}
		events <- ev
		close(events)
	}()

	kill := func() {
		// The process is terminated before any resolution. Killing an
		// already-exited process is a no-op error we don't care about.
		if cmd.Process != nil {
			_ = cmd.Process.Kill()
		}
	}

	for {
		select {
		case <-ctx.Done():
			kill()
			go drainEvents(events)
			return nil, fmt.Errorf("install %s: %w", fullName, ctx.Err())
		case ev, ok := <-events:
			if !ok {
				// The process exited without ever producing a qualifying
				// event. There is nothing left to observe; wait out the
				// deadline so the contract stays "resolve on qualifying
				// event only".
				<-ctx.Done()
				return nil, fmt.Errorf("install %s: %w", fullName, ctx.Err())
			}
			if ev.kind == eventLine {
				inv.logf("output: %s", ev.line)
			}
			switch classify(ev) {
			case transitionSucceeded:
				kill()
				go drainEvents(events)
				inv.logf("install %s succeeded (pid %d)", fullName, pid)
				return &Result{PID: pid}, nil
			case transitionFailed:
				kill()
				go drainEvents(events)
				inv.logf("install %s failed", fullName)
				return nil, fmt.Errorf("install %s: %w", fullName, ErrInstallFailed)
			}
		}
	}
}

func scanLines(r io.Reader, events chan<- event, wg *sync.WaitGroup) {
	defer wg.Done()
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		events <- event{kind: eventLine, line: sc.Text()}
	}
}

// drainEvents keeps the waiter and scanners from blocking after resolution.
func drainEvents(events <-chan event) {
	for range events {
	}
}

func (inv *Invoker) logf(format string, args ...any) {
	if inv.Log == nil {
		return
	}
	_, _ = fmt.Fprintf(inv.Log, "[verbose] installer: "+format+"\n", args...)
}
