package audio

import (
	"errors"
	"os/exec"
	"sync"
	"testing"
	"time"

	"github.com/meur/dexview/internal/logging"
)

// fakePlayer records calls and lets tests end playback on demand.
type fakePlayer struct {
	mu       sync.Mutex
	startErr error
	position int // 0 after Rewind, advanced by Start
	playing  bool
	starts   int
	closed   bool
	done     chan error
}

func (p *fakePlayer) Start() (<-chan error, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.startErr != nil {
		return nil, p.startErr
	}
	p.starts++
	p.playing = true
	p.position = 42
	p.done = make(chan error, 1)
	return p.done, nil
}

func (p *fakePlayer) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.playing {
		p.playing = false
		close(p.done)
	}
}

func (p *fakePlayer) Rewind() {
	p.mu.Lock()
	p.position = 0
	p.mu.Unlock()
}

func (p *fakePlayer) Close() error {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	return nil
}

// finish simulates the clip reaching its end.
func (p *fakePlayer) finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.playing {
		p.playing = false
		close(p.done)
	}
}

// fail simulates the player breaking off with err.
func (p *fakePlayer) fail(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.playing {
		p.playing = false
		p.done <- err
		close(p.done)
	}
}

func (p *fakePlayer) pos() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.position
}

func waitForState(t *testing.T, m *Machine, want State) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if m.State() == want {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("state = %s, want %s", m.State(), want)
}

func TestMachine_PlayThenStop(t *testing.T) {
	p := &fakePlayer{}
	m := NewMachine(p, logging.Discard())

	if m.State() != Idle {
		t.Fatalf("initial state = %s", m.State())
	}
	if err := m.Play(); err != nil {
		t.Fatalf("Play: %v", err)
	}
	if m.State() != Playing {
		t.Fatalf("state after Play = %s", m.State())
	}

	m.Stop()
	if m.State() != Idle {
		t.Errorf("state after Stop = %s", m.State())
	}
	if p.pos() != 0 {
		t.Errorf("position after Stop = %d, want 0", p.pos())
	}
}

func TestMachine_NaturalEnd(t *testing.T) {
	p := &fakePlayer{}
	m := NewMachine(p, logging.Discard())

	var mu sync.Mutex
	var changes []State
	m.OnChange(func(s State) {
		mu.Lock()
		changes = append(changes, s)
		mu.Unlock()
	})

	if err := m.Play(); err != nil {
		t.Fatalf("Play: %v", err)
	}
	p.finish()
	waitForState(t, m, Idle)

	if p.pos() != 0 {
		t.Errorf("position after end = %d, want 0", p.pos())
	}
	mu.Lock()
	defer mu.Unlock()
	if len(changes) != 2 || changes[0] != Playing || changes[1] != Idle {
		t.Errorf("changes = %v, want [playing idle]", changes)
	}
}

func TestMachine_SecondPlayStops(t *testing.T) {
	p := &fakePlayer{}
	m := NewMachine(p, logging.Discard())

	m.Play()
	if err := m.Play(); err != nil {
		t.Fatalf("second Play: %v", err)
	}
	if m.State() != Idle {
		t.Errorf("state = %s, want idle (toggle)", m.State())
	}
	if p.starts != 1 {
		t.Errorf("starts = %d, want 1", p.starts)
	}

	// And playing again restarts from the beginning.
	if err := m.Play(); err != nil {
		t.Fatalf("third Play: %v", err)
	}
	if m.State() != Playing || p.starts != 2 {
		t.Errorf("state = %s, starts = %d", m.State(), p.starts)
	}
	m.Stop()
}

func TestMachine_StartFailureStaysIdle(t *testing.T) {
	p := &fakePlayer{startErr: errors.New("no audio device")}
	m := NewMachine(p, logging.Discard())

	err := m.Play()
	if !errors.Is(err, ErrPlaybackStartFailed) {
		t.Fatalf("err = %v, want ErrPlaybackStartFailed", err)
	}
	if m.State() != Idle {
		t.Errorf("state = %s, want idle", m.State())
	}

	// The machine is still usable once the device comes back.
	p.startErr = nil
	if err := m.Play(); err != nil {
		t.Fatalf("retry Play: %v", err)
	}
	m.Stop()
}

func TestMachine_StaleEndIgnored(t *testing.T) {
	p := &fakePlayer{}
	m := NewMachine(p, logging.Discard())

	m.Play()
	first := p.done
	m.Stop()
	m.Play()

	// The first playback's done channel is already closed; its watcher must
	// not knock the second playback back to Idle.
	<-first
	time.Sleep(10 * time.Millisecond)
	if m.State() != Playing {
		t.Errorf("state = %s, want playing", m.State())
	}
	m.Stop()
}

func TestMachine_Release(t *testing.T) {
	p := &fakePlayer{}
	m := NewMachine(p, logging.Discard())
	m.Play()

	if err := m.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if m.State() != Idle || !p.closed {
		t.Errorf("state = %s, closed = %v", m.State(), p.closed)
	}
	if err := m.Play(); !errors.Is(err, ErrReleased) {
		t.Errorf("Play after Release = %v, want ErrReleased", err)
	}
	if err := m.Release(); err != nil {
		t.Errorf("second Release: %v", err)
	}
}

func TestMachine_NoCry(t *testing.T) {
	m := NewMachine(nil, logging.Discard())
	if err := m.Play(); !errors.Is(err, ErrNoCry) {
		t.Errorf("err = %v, want ErrNoCry", err)
	}
	m.Stop()
	if err := m.Release(); err != nil {
		t.Errorf("Release: %v", err)
	}
}

func TestExecPlayer_MissingBinary(t *testing.T) {
	m := NewMachine(NewExecPlayer([]string{"dexview-no-such-player"}, "https://cries.test/1.ogg"), logging.Discard())
	if err := m.Play(); !errors.Is(err, ErrPlaybackStartFailed) {
		t.Fatalf("err = %v, want ErrPlaybackStartFailed", err)
	}
	if m.State() != Idle {
		t.Errorf("state = %s", m.State())
	}
}

func TestExecPlayer_NaturalEnd(t *testing.T) {
	if _, err := exec.LookPath("true"); err != nil {
		t.Skip("true not available")
	}
	m := NewMachine(NewExecPlayer([]string{"true"}, "https://cries.test/1.ogg"), logging.Discard())
	if err := m.Play(); err != nil {
		t.Fatalf("Play: %v", err)
	}
	waitForState(t, m, Idle)
}

func TestExecPlayer_StopKills(t *testing.T) {
	if _, err := exec.LookPath("sleep"); err != nil {
		t.Skip("sleep not available")
	}
	// sleep treats the appended URL as an invalid operand on some systems,
	// so wrap it in sh.
	p := NewExecPlayer([]string{"sh", "-c", "sleep 10"}, "https://cries.test/1.ogg")
	m := NewMachine(p, logging.Discard())
	if err := m.Play(); err != nil {
		t.Fatalf("Play: %v", err)
	}
	m.Stop()
	if m.State() != Idle {
		t.Errorf("state = %s", m.State())
	}
	if err := m.Release(); err != nil {
		t.Errorf("Release: %v", err)
	}
}

func TestMachine_PlayerErrorReported(t *testing.T) {
	p := &fakePlayer{}
	m := NewMachine(p, logging.Discard())

	errs := make(chan error, 1)
	m.OnError(func(err error) { errs <- err })

	if err := m.Play(); err != nil {
		t.Fatalf("Play: %v", err)
	}
	p.fail(errors.New("decode error"))

	select {
	case err := <-errs:
		if !errors.Is(err, ErrPlaybackStartFailed) {
			t.Errorf("err = %v, want ErrPlaybackStartFailed", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no error reported")
	}
	waitForState(t, m, Idle)
	if p.pos() != 0 {
		t.Errorf("position = %d, want 0", p.pos())
	}
}

func TestExecPlayer_NonZeroExitReported(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	m := NewMachine(NewExecPlayer([]string{"sh", "-c", "exit 1"}, "https://cries.test/1.ogg"), logging.Discard())

	errs := make(chan error, 1)
	m.OnError(func(err error) { errs <- err })

	if err := m.Play(); err != nil {
		t.Fatalf("Play: %v", err)
	}
	select {
	case err := <-errs:
		if !errors.Is(err, ErrPlaybackStartFailed) {
			t.Errorf("err = %v, want ErrPlaybackStartFailed", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("non-zero exit was not reported")
	}
	waitForState(t, m, Idle)
}

func TestExecPlayer_CleanExitNotAnError(t *testing.T) {
	if _, err := exec.LookPath("true"); err != nil {
		t.Skip("true not available")
	}
	m := NewMachine(NewExecPlayer([]string{"true"}, "https://cries.test/1.ogg"), logging.Discard())

	var mu sync.Mutex
	var reported error
	m.OnError(func(err error) {
		mu.Lock()
		reported = err
		mu.Unlock()
	})

	if err := m.Play(); err != nil {
		t.Fatalf("Play: %v", err)
	}
	waitForState(t, m, Idle)

	mu.Lock()
	defer mu.Unlock()
	if reported != nil {
		t.Errorf("clean exit reported %v", reported)
	}
}

func TestExecPlayer_NoCommand(t *testing.T) {
	if _, err := NewExecPlayer(nil, "x").Start(); err == nil {
		t.Error("expected error without a command")
	}
}
