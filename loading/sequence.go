// Package loading runs the timed message reveal shown before the universe.
package loading

import (
	"context"
	"time"

	"github.com/milk9111/orbitcore/data"
)

const (
	DefaultTick          = time.Second
	DefaultContinueDelay = time.Second
)

// State is the phase of a Sequence.
type State int

const (
	StateDisplaying State = iota
	StateAwaitingContinue
	StateCompleted
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateDisplaying:
		return "displaying"
	case StateAwaitingContinue:
		return "awaiting_continue"
	case StateCompleted:
		return "completed"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Options configures a Sequence. A zero Tick holds each message for its own
// Duration instead of a fixed tick.
type Options struct {
	Tick          time.Duration
	ContinueDelay time.Duration

	// OnMessage runs when message i becomes visible.
	OnMessage func(i int, msg data.LoadingMessage)
	// OnAwait runs when the continue affordance appears.
	OnAwait func()
	// OnComplete runs once, when the user continues.
	OnComplete func()
}

// Sequence steps through messages as time is fed to Advance. It is driven
// by the frame loop and owns no goroutines or timers, so Close stops it
// synchronously.
type Sequence struct {
	ctx      context.Context
	messages []data.LoadingMessage
	opts     Options

	state   State
	index   int
	pending time.Duration
}

// New starts a sequence at message 0. The sequence is cancelled when ctx is
// done or Close is called.
func New(ctx context.Context, messages []data.LoadingMessage, opts Options) *Sequence {
	if opts.ContinueDelay < 0 {
		opts.ContinueDelay = 0
	}
	s := &Sequence{
		ctx:      ctx,
		messages: append([]data.LoadingMessage(nil), messages...),
		opts:     opts,
	}
	if s.live() && len(s.messages) > 0 && opts.OnMessage != nil {
		opts.OnMessage(0, s.messages[0])
	}
	return s
}

// State returns the current phase.
func (s *Sequence) State() State {
	s.live()
	return s.state
}

// Index returns the index of the visible message.
func (s *Sequence) Index() int {
	return s.index
}

// Message returns the visible message, if any.
func (s *Sequence) Message() (data.LoadingMessage, bool) {
	if len(s.messages) == 0 {
		return data.LoadingMessage{}, false
	}
	return s.messages[s.index], true
}

// CanContinue reports whether the continue affordance is shown.
func (s *Sequence) CanContinue() bool {
	return s.State() == StateAwaitingContinue
}

// live reports whether the sequence may still mutate, moving it to
// StateCancelled when its context has ended.
func (s *Sequence) live() bool {
	if s.state == StateCancelled || s.state == StateCompleted {
		return false
	}
	if s.ctx != nil && s.ctx.Err() != nil {
		s.state = StateCancelled
		return false
	}
	return true
}

func (s *Sequence) last() int {
	if len(s.messages) == 0 {
		return 0
	}
	return len(s.messages) - 1
}

func (s *Sequence) hold() time.Duration {
	if s.index < s.last() {
		if s.opts.Tick > 0 {
			return s.opts.Tick
		}
		if d := s.messages[s.index].Duration; d > 0 {
			return d
		}
		return DefaultTick
	}
	return s.opts.ContinueDelay
}

// Advance feeds dt of elapsed time. Each elapsed hold moves exactly one
// step, in order, so a long frame never skips a message.
func (s *Sequence) Advance(dt time.Duration) {
	if dt < 0 || !s.live() || s.state != StateDisplaying {
		return
	}
	s.pending += dt
	for s.state == StateDisplaying {
		need := s.hold()
		if s.pending < need {
			return
		}
		s.pending -= need
		if s.index < s.last() {
			s.index++
			if s.opts.OnMessage != nil {
				s.opts.OnMessage(s.index, s.messages[s.index])
			}
			if !s.live() {
				return
			}
			continue
		}
		s.state = StateAwaitingContinue
		s.pending = 0
		if s.opts.OnAwait != nil {
			s.opts.OnAwait()
		}
	}
}

// Continue confirms the final prompt. It returns true when the sequence
// completed on this call.
func (s *Sequence) Continue() bool {
	if !s.live() || s.state != StateAwaitingContinue {
		return false
	}
	s.state = StateCompleted
	if s.opts.OnComplete != nil {
		s.opts.OnComplete()
	}
	return true
}

// Close cancels the sequence. No callback runs afterwards.
func (s *Sequence) Close() {
	if s.state == StateCompleted {
		return
	}
	s.state = StateCancelled
}
