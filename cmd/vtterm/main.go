// Command vtterm is a minimal reference host: it wires a real shell to a
// vtcore.Terminal through ptyadapter, reads host keystrokes, and drives
// the reference renderer. It exists to exercise the core end-to-end, not
// as a polished terminal emulator. The pty read, stdin read, resize
// signal, and render pass each block independently, so each gets its own
// goroutine; a single mutex guards every call into the shared Terminal
// since Terminal itself assumes single-threaded access.
package main

import (
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/nrpeterson/vtcore"
	"github.com/nrpeterson/vtcore/ptyadapter"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	shell := os.Getenv("SHELL")
	if shell == "" {
		shell = "/bin/sh"
	}

	cols, rows, err := term.GetSize(int(os.Stdin.Fd()))
	if err != nil {
		cols, rows = 80, 24
	}

	adapter, err := ptyadapter.Spawn(shell, nil, rows, cols)
	if err != nil {
		return err
	}
	defer adapter.Close()

	var mu sync.Mutex
	vt := vtcore.NewTerminal(rows, cols, writerFunc(func(p []byte) (int, error) {
		if err := adapter.Write(p); err != nil {
			return 0, err
		}
		return len(p), nil
	}))

	oldState, err := term.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		return err
	}
	defer term.Restore(int(os.Stdin.Fd()), oldState)

	done := make(chan struct{})

	go ptyLoop(adapter, vt, &mu, done)
	go inputLoop(adapter, done)
	go resizeLoop(adapter, done)
	renderLoop(vt, &mu, done)

	return nil
}

// ptyLoop is the only suspension point besides stdin: PollOutput may
// block briefly on the underlying read, which is why it runs on its own
// goroutine rather than inline in the render loop.
func ptyLoop(adapter *ptyadapter.Adapter, vt *vtcore.Terminal, mu *sync.Mutex, done chan struct{}) {
	buf := make([]byte, 4096)
	for {
		chunk, err := adapter.PollOutput(buf)
		if err != nil {
			close(done)
			return
		}
		if len(chunk) == 1 && chunk[0] == ptyadapter.EOT {
			close(done)
			return
		}
		if len(chunk) == 0 {
			continue
		}
		mu.Lock()
		vt.Feed(chunk)
		mu.Unlock()
	}
}

// inputLoop forwards raw host keystrokes straight to the pty: stdin is
// already in raw mode, so the host's own terminal has already encoded
// arrow keys, function keys, etc. into the same byte sequences keys.go
// documents - there is nothing left to translate for a passthrough host
// like this one. A GUI host with discrete key events uses keys.go's
// EncodeKey/EncodeCtrlLetter directly instead of this loop.
func inputLoop(adapter *ptyadapter.Adapter, done chan struct{}) {
	buf := make([]byte, 256)
	for {
		select {
		case <-done:
			return
		default:
		}
		n, err := os.Stdin.Read(buf)
		if err != nil {
			return
		}
		if n == 0 {
			continue
		}
		_ = adapter.Write(buf[:n])
	}
}

func resizeLoop(adapter *ptyadapter.Adapter, done chan struct{}) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGWINCH)
	defer signal.Stop(ch)
	for {
		select {
		case <-done:
			return
		case <-ch:
			cols, rows, err := term.GetSize(int(os.Stdin.Fd()))
			if err != nil {
				continue
			}
			_ = adapter.Resize(rows, cols)
		}
	}
}

func renderLoop(vt *vtcore.Terminal, mu *sync.Mutex, done chan struct{}) {
	r := newRender(os.Stdout)
	src := snapshotSource{t: vt}
	ticker := time.NewTicker(16 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			mu.Lock()
			r.Frame(src)
			mu.Unlock()
		}
	}
}

type writerFunc func(p []byte) (int, error)

func (f writerFunc) Write(p []byte) (int, error) { return f(p) }
