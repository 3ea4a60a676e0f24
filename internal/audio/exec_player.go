package audio

import (
	"errors"
	"os/exec"
	"sync"
)

// ExecPlayer plays a URL with an external program (ffplay, mpv, ...). The
// stream URL is appended as the last argument. Halting kills the process,
// so every Start plays from the beginning.
type ExecPlayer struct {
	command []string
	url     string

	mu  sync.Mutex
	cmd *exec.Cmd
}

// NewExecPlayer creates a player for url using command.
func NewExecPlayer(command []string, url string) *ExecPlayer {
	return &ExecPlayer{command: command, url: url}
}

// NewExecPlayerFactory returns a factory bound to command.
func NewExecPlayerFactory(command []string) func(url string) Player {
	return func(url string) Player {
		return NewExecPlayer(command, url)
	}
}

// Start launches the player. A non-zero exit is delivered on done.
func (p *ExecPlayer) Start() (<-chan error, error) {
	if len(p.command) == 0 {
		return nil, errors.New("no player command configured")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	args := append(append([]string{}, p.command[1:]...), p.url)
	cmd := exec.Command(p.command[0], args...)
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	p.cmd = cmd

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
		close(done)
	}()
	return done, nil
}

func (p *ExecPlayer) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cmd != nil && p.cmd.Process != nil {
		p.cmd.Process.Kill()
	}
	p.cmd = nil
}

// Rewind is a no-op: the process always starts at position 0.
func (p *ExecPlayer) Rewind() {}

func (p *ExecPlayer) Close() error {
	p.Pause()
	return nil
}
