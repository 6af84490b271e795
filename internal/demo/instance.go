package demo

import (
	"sync"
	"time"
)

// Timer is a scheduled callback that can be stopped.
type Timer interface {
	Stop() bool
}

// Scheduler creates one-shot timers. The system scheduler uses time.AfterFunc;
// tests substitute a manual clock.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type systemScheduler struct{}

func (systemScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// SystemScheduler returns a Scheduler backed by the runtime timers.
func SystemScheduler() Scheduler { return systemScheduler{} }

// handle identifies one scheduled timer. A callback only applies if its
// handle is still the one registered under its key.
type handle struct {
	timer Timer
}

// Instance is the live demo of one mounted content unit. Events, whether
// user actions or timer callbacks, are applied one at a time. After Unmount
// no callback can change the state.
type Instance struct {
	mu      sync.Mutex
	spec    *Spec
	sched   Scheduler
	state   State
	timers  map[string]*handle
	notify  func(State)
	mounted bool
}

// Mount creates a fresh instance at the spec's initial state and starts any
// timers that state needs. notify, if non-nil, receives the new state after
// every timer-driven transition; it is called with the instance locked and
// must not call back into the instance.
func Mount(spec *Spec, sched Scheduler, notify func(State)) *Instance {
	if sched == nil {
		sched = SystemScheduler()
	}
	in := &Instance{
		spec:    spec,
		sched:   sched,
		timers:  make(map[string]*handle),
		notify:  notify,
		mounted: true,
	}

	in.mu.Lock()
	defer in.mu.Unlock()
	st, effects := spec.Init()
	in.state = st
	in.run(effects)
	return in
}

// Dispatch applies a user action and returns the resulting state. Tick
// actions are reserved for timers and ignored here, as is anything sent
// after Unmount.
func (in *Instance) Dispatch(a Action) State {
	in.mu.Lock()
	defer in.mu.Unlock()

	if !in.mounted || a.Kind == Tick {
		return in.state.Clone()
	}
	st, effects := in.spec.Apply(in.state, a)
	in.state = st
	in.run(effects)
	return in.state.Clone()
}

// State returns a copy of the current state.
func (in *Instance) State() State {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.state.Clone()
}

// Spec returns the spec the instance was mounted with.
func (in *Instance) Spec() *Spec { return in.spec }

// Mounted reports whether Unmount has not yet been called.
func (in *Instance) Mounted() bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.mounted
}

// PendingTimers returns the number of timers currently scheduled.
func (in *Instance) PendingTimers() int {
	in.mu.Lock()
	defer in.mu.Unlock()
	return len(in.timers)
}

// Unmount cancels every pending timer. It is synchronous and idempotent.
func (in *Instance) Unmount() {
	in.mu.Lock()
	defer in.mu.Unlock()

	if !in.mounted {
		return
	}
	in.mounted = false
	for key, h := range in.timers {
		h.timer.Stop()
		delete(in.timers, key)
	}
}

// run executes effects. Callers hold in.mu.
func (in *Instance) run(effects []Effect) {
	for _, e := range effects {
		if old, ok := in.timers[e.Timer]; ok {
			old.timer.Stop()
			delete(in.timers, e.Timer)
		}
		if e.Cancel {
			continue
		}
		key := e.Timer
		h := &handle{}
		in.timers[key] = h
		h.timer = in.sched.AfterFunc(e.Delay, func() { in.fire(key, h) })
	}
}

func (in *Instance) fire(key string, h *handle) {
	in.mu.Lock()
	defer in.mu.Unlock()

	if !in.mounted || in.timers[key] != h {
		return
	}
	delete(in.timers, key)

	st, effects := in.spec.Apply(in.state, Action{Kind: Tick, Field: key})
	in.state = st
	in.run(effects)
	if in.notify != nil {
		in.notify(in.state.Clone())
	}
}
