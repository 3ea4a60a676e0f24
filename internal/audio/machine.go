// Package audio drives playback of a creature's cry through a small
// Idle/Playing state machine.
package audio

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

var (
	// ErrPlaybackStartFailed wraps device or decoding errors raised when
	// playback cannot begin. It is not fatal; the machine stays Idle.
	ErrPlaybackStartFailed = errors.New("playback start failed")

	// ErrNoCry is returned for records without an audio cry.
	ErrNoCry = errors.New("record has no cry")

	// ErrReleased is returned once the machine's player has been released.
	ErrReleased = errors.New("audio released")
)

// State is the playback state.
type State int

const (
	Idle State = iota
	Playing
)

func (s State) String() string {
	if s == Playing {
		return "playing"
	}
	return "idle"
}

// Player is the playback resource behind a Machine.
type Player interface {
	// Start begins playback from the current position. done yields the
	// outcome once playback finishes on its own or is halted: nil for a
	// clean end, otherwise the reason playback broke off. A closed channel
	// counts as a clean end.
	Start() (done <-chan error, err error)
	// Pause halts playback.
	Pause()
	// Rewind moves the position back to 0.
	Rewind()
	// Close releases the resource.
	Close() error
}

// Machine is the Idle/Playing state machine for one record's cry. It owns
// its Player exclusively until Release.
type Machine struct {
	mu       sync.Mutex
	player   Player
	state    State
	gen      uint64 // bumped on every transition out of Playing
	released bool
	onChange func(State)
	onError  func(error)
	logger   *slog.Logger
}

// NewMachine creates an Idle machine. player may be nil for records without
// a cry; Play then returns ErrNoCry.
func NewMachine(player Player, logger *slog.Logger) *Machine {
	return &Machine{
		player: player,
		logger: logger.With("component", "audio"),
	}
}

// OnChange registers fn to be called after every state transition,
// including the one caused by playback ending naturally.
func (m *Machine) OnChange(fn func(State)) {
	m.mu.Lock()
	m.onChange = fn
	m.mu.Unlock()
}

// OnError registers fn to be called when playback that had started breaks
// off with an error. The error matches ErrPlaybackStartFailed.
func (m *Machine) OnError(fn func(error)) {
	m.mu.Lock()
	m.onError = fn
	m.mu.Unlock()
}

// State returns the current state.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Play handles the user's play action. From Idle it starts playback at
// position 0; while Playing it acts as Stop.
func (m *Machine) Play() error {
	m.mu.Lock()

	if m.released {
		m.mu.Unlock()
		return ErrReleased
	}
	if m.player == nil {
		m.mu.Unlock()
		return ErrNoCry
	}
	if m.state == Playing {
		notify := m.stopLocked()
		m.mu.Unlock()
		notify()
		return nil
	}

	m.player.Rewind()
	done, err := m.player.Start()
	if err != nil {
		m.state = Idle
		m.mu.Unlock()
		m.logger.Warn("cry playback failed", "error", err)
		return fmt.Errorf("%w: %v", ErrPlaybackStartFailed, err)
	}

	m.state = Playing
	gen := m.gen
	fn := m.onChange
	m.mu.Unlock()

	go m.watch(gen, done)
	if fn != nil {
		fn(Playing)
	}
	return nil
}

// Stop halts playback and rewinds. It is a no-op while Idle.
func (m *Machine) Stop() {
	m.mu.Lock()
	notify := m.stopLocked()
	m.mu.Unlock()
	notify()
}

// Release stops playback and frees the player. The machine is unusable
// afterwards. Calling Release twice is safe.
func (m *Machine) Release() error {
	m.mu.Lock()
	if m.released {
		m.mu.Unlock()
		return nil
	}
	notify := m.stopLocked()
	m.released = true
	player := m.player
	m.mu.Unlock()

	notify()
	if player == nil {
		return nil
	}
	return player.Close()
}

// stopLocked performs Playing -> Idle. It returns the change notification,
// to be invoked after the lock is dropped.
func (m *Machine) stopLocked() func() {
	if m.state != Playing {
		return func() {}
	}
	m.player.Pause()
	m.player.Rewind()
	return m.toIdleLocked()
}

func (m *Machine) toIdleLocked() func() {
	m.state = Idle
	m.gen++
	fn := m.onChange
	return func() {
		if fn != nil {
			fn(Idle)
		}
	}
}

// watch waits for the playback started at generation gen to end. A stale
// generation means the user already stopped it. A player that ends with an
// error goes back to Idle and reports ErrPlaybackStartFailed.
func (m *Machine) watch(gen uint64, done <-chan error) {
	exitErr := <-done

	m.mu.Lock()
	if m.released || m.gen != gen || m.state != Playing {
		m.mu.Unlock()
		return
	}
	m.player.Rewind()
	notify := m.toIdleLocked()
	onError := m.onError
	m.mu.Unlock()

	if exitErr != nil {
		err := fmt.Errorf("%w: %v", ErrPlaybackStartFailed, exitErr)
		m.logger.Warn("cry playback failed", "error", err)
		if onError != nil {
			onError(err)
		}
	} else {
		m.logger.Debug("cry finished")
	}
	notify()
}
