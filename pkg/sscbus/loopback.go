package sscbus

import (
	"context"
	"sync"

	"github.com/mattrb/ssc32u/pkg/joint"
)

// Loopback is an in-process bus that remembers the last commanded pulse
// width per channel and answers queries from that memory. It stands in for
// a real transport in tests and in the monitor TUI; channels that were
// never commanded read as zero, i.e. "no reading".
type Loopback struct {
	mu        sync.RWMutex
	pulse     map[int]int
	discrete  map[int]bool
	lastState State
	hasState  bool
}

// NewLoopback creates an empty loopback bus.
func NewLoopback() *Loopback {
	return &Loopback{
		pulse:    make(map[int]int),
		discrete: make(map[int]bool),
	}
}

// PublishCommands records the pulse width of every command in the batch.
func (l *Loopback) PublishCommands(_ context.Context, batch joint.CommandBatch) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, cmd := range batch {
		l.pulse[cmd.Channel] = cmd.PulseWidth
	}
	return nil
}

// PublishDiscrete records the level of a discrete output channel.
func (l *Loopback) PublishDiscrete(_ context.Context, out joint.DiscreteOutput) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.discrete[out.Channel] = out.On
	return nil
}

// PublishState records the most recent joint state.
func (l *Loopback) PublishState(_ context.Context, state State) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lastState = state
	l.hasState = true
	return nil
}

// QueryPulseWidths returns the last commanded pulse width for each channel,
// zero for channels never commanded.
func (l *Loopback) QueryPulseWidths(_ context.Context, channels []int) ([]int, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	widths := make([]int, len(channels))
	for i, ch := range channels {
		widths[i] = l.pulse[ch]
	}
	return widths, nil
}

// PulseWidth returns the last commanded pulse width for a channel.
func (l *Loopback) PulseWidth(channel int) (int, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	pw, ok := l.pulse[channel]
	return pw, ok
}

// DiscreteLevel returns the last commanded level of a discrete output.
func (l *Loopback) DiscreteLevel(channel int) (on, ok bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	on, ok = l.discrete[channel]
	return on, ok
}

// LastState returns the most recently published joint state.
func (l *Loopback) LastState() (State, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.lastState, l.hasState
}
