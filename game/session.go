package game

import (
	"errors"
	"io"

	"github.com/plus3/flickball/ecs"
	"github.com/plus3/flickball/physics"
)

// Option configures a Session.
type Option func(*Session)

// WithClock replaces the monotonic system clock used for hit debouncing.
func WithClock(clock Clock) Option {
	return func(s *Session) {
		s.clock = clock
	}
}

// WithPointerQueue sets the capacity of the queue used by Enqueue.
func WithPointerQueue(size int) Option {
	return func(s *Session) {
		s.queueSize = size
	}
}

// Session owns one game: storage, physics world, systems and listeners.
type Session struct {
	Storage   *ecs.Storage
	Scheduler *ecs.Scheduler
	Input     *InputTracker

	clock     Clock
	queueSize int
	pointer   chan PointerEvent
	arena     *Arena
	counter   ecs.Singleton[HitCounter]
	params    ecs.Singleton[Params]

	listeners *listeners
	closers   []io.Closer
}

// NewSession builds the arena and registers the frame systems in order:
// pointer queue, drift, physics step, sync, reset, score, dispatch.
func NewSession(params Params, opts ...Option) *Session {
	s := &Session{
		Storage:   ecs.NewStorage(NewComponentRegistry()),
		clock:     NewSystemClock(),
		queueSize: 64,
		listeners: &listeners{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.pointer = make(chan PointerEvent, s.queueSize)

	storage := s.Storage
	ecs.NewSingleton[Params](storage, params)
	ecs.NewSingleton[DragState](storage)
	ecs.NewSingleton[Drift](storage)
	ecs.NewSingleton[HitCounter](storage)
	ecs.NewSingleton[FrameEvents](storage)
	s.counter.Init(storage)
	s.params.Init(storage)

	s.arena = BuildArena(storage, params)
	s.Input = NewInputTracker(storage)

	s.Scheduler = ecs.NewScheduler(storage)
	s.Scheduler.Register(&PointerQueueSystem{Input: s.Input, Events: s.pointer})
	s.Scheduler.Register(&DriftSystem{})
	s.Scheduler.Register(&StepSystem{})
	s.Scheduler.Register(&SyncSystem{})
	s.Scheduler.Register(&ResetSystem{})
	s.Scheduler.Register(&ScoreSystem{Clock: s.clock})
	s.Scheduler.Register(&DispatchSystem{listeners: s.listeners})
	return s
}

// Frame runs one frame of every system.
func (s *Session) Frame() {
	s.Scheduler.Once(s.arena.World.Params.Dt)
}

// Enqueue hands a pointer event to the next frame. It is safe to call
// from any goroutine and drops the event when the queue is full.
func (s *Session) Enqueue(event PointerEvent) bool {
	select {
	case s.pointer <- event:
		return true
	default:
		return false
	}
}

func (s *Session) HitCount() int {
	return s.counter.Get().Count
}

func (s *Session) Resets() int {
	return s.counter.Get().Resets
}

func (s *Session) Arena() *Arena {
	return s.arena
}

func (s *Session) World() *physics.World {
	return s.arena.World
}

func (s *Session) Params() Params {
	return *s.params.Get()
}

func (s *Session) Clock() Clock {
	return s.clock
}

// OnHit registers fn to run after every counted hit, on the frame
// goroutine.
func (s *Session) OnHit(fn func(HitEvent)) {
	s.listeners.hit = append(s.listeners.hit, fn)
}

// OnReset registers fn to run after every reset, on the frame goroutine.
func (s *Session) OnReset(fn func()) {
	s.listeners.reset = append(s.listeners.reset, fn)
}

// AddCloser ties c's lifetime to the session.
func (s *Session) AddCloser(c io.Closer) {
	s.closers = append(s.closers, c)
}

// Close releases everything added with AddCloser, newest first.
func (s *Session) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	return errors.Join(errs...)
}

type listeners struct {
	hit   []func(HitEvent)
	reset []func()
}

// DispatchSystem hands the frame's events to the session listeners and
// clears them.
type DispatchSystem struct {
	Events ecs.Singleton[FrameEvents]

	listeners *listeners
}

func (s *DispatchSystem) Execute(frame *ecs.UpdateFrame) {
	events := s.Events.Get()
	for _, hit := range events.Hits {
		for _, fn := range s.listeners.hit {
			fn(hit)
		}
	}
	if events.Reset {
		for _, fn := range s.listeners.reset {
			fn()
		}
	}
	events.Hits = events.Hits[:0]
	events.Reset = false
}
