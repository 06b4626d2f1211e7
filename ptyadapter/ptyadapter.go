// Package ptyadapter spawns a shell behind a pseudo-terminal, reads its
// output, writes keystrokes to it, and forwards resize notifications. It
// is the one place in this module that talks to the operating system.
package ptyadapter

import (
	"errors"
	"io"
	"os"
	"os/exec"
	"syscall"

	"github.com/creack/pty"
)

// EOT is the sentinel byte PollOutput returns once, in place of an error,
// when the shell has exited, so a host can fold "PTY closed" into the
// same byte stream it otherwise feeds Terminal.Feed instead of needing a
// second error channel.
const EOT = 0x04

// Adapter owns one pseudo-terminal and the child process attached to it.
type Adapter struct {
	cmd *exec.Cmd
	f   *os.File
	// done latches true once the child has exited and EOT has been
	// surfaced once, so PollOutput doesn't report termination repeatedly.
	done bool
}

// Spawn starts shellPath (with args) attached to a new pty sized rows x
// cols. A spawn failure (bad shell path, fork/exec failure) is fatal and
// returned directly - there's no partial or degraded state to recover
// into before a shell even exists.
func Spawn(shellPath string, args []string, rows, cols int) (*Adapter, error) {
	cmd := exec.Command(shellPath, args...)
	cmd.Env = append(os.Environ(), "TERM=xterm-256color")
	f, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: uint16(rows), Cols: uint16(cols)})
	if err != nil {
		return nil, err
	}
	return &Adapter{cmd: cmd, f: f}, nil
}

// PollOutput does one read from the pty: it returns whatever bytes are
// currently available, or EOT once the child has exited. This is a
// single blocking Read call, not a true non-blocking poll; callers that
// need a hard upper bound on latency should run it in its own goroutine,
// as the reference host in cmd/vtterm does.
func (a *Adapter) PollOutput(buf []byte) ([]byte, error) {
	if a.done {
		return nil, nil
	}
	n, err := a.f.Read(buf)
	if err != nil {
		a.done = true
		if errors.Is(err, io.EOF) || errors.Is(err, syscall.EIO) {
			return []byte{EOT}, nil
		}
		return []byte{EOT}, nil
	}
	return buf[:n], nil
}

// Write sends bytes to the shell (keystrokes, pasted text, DSR replies).
func (a *Adapter) Write(p []byte) error {
	_, err := a.f.Write(p)
	return err
}

// Resize notifies the pty of a new size, equivalent to a TIOCSWINSZ ioctl
// followed by SIGWINCH to the foreground process group.
func (a *Adapter) Resize(rows, cols int) error {
	return pty.Setsize(a.f, &pty.Winsize{Rows: uint16(rows), Cols: uint16(cols)})
}

// Close releases the pty and signals the child to terminate if it hasn't
// already.
func (a *Adapter) Close() error {
	if a.cmd.Process != nil {
		_ = a.cmd.Process.Kill()
	}
	return a.f.Close()
}

// Wait blocks until the child process exits.
func (a *Adapter) Wait() error {
	return a.cmd.Wait()
}
