package demo

import (
	"reflect"
	"sync"
	"testing"
	"time"
)

type recorder struct {
	mu     sync.Mutex
	states []State
}

func (r *recorder) notify(st State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = append(r.states, st)
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.states)
}

func runSpec() *Spec {
	return &Spec{Runs: []RunSpec{{Name: "code", Output: "Woof Woof!", Delay: time.Second}}}
}

func TestInstanceSimulatedRun(t *testing.T) {
	clock := &manualClock{}
	rec := &recorder{}
	in := Mount(runSpec(), clock, rec.notify)

	st := in.Dispatch(Action{Kind: Start, Field: "code"})
	if !st.Runs["code"].Running {
		t.Fatal("expected running after start")
	}
	in.Dispatch(Action{Kind: Start, Field: "code"})
	if got := len(clock.All()); got != 1 {
		t.Fatalf("scheduled %d timers, want 1", got)
	}

	clock.Advance(999 * time.Millisecond)
	if !in.State().Runs["code"].Running {
		t.Fatal("completed before the delay elapsed")
	}
	clock.Advance(time.Millisecond)

	got := in.State().Runs["code"]
	if got.Running || got.Output != "Woof Woof!" {
		t.Errorf("after delay: %+v", got)
	}
	if rec.count() != 1 {
		t.Errorf("notify called %d times, want 1", rec.count())
	}
	if in.PendingTimers() != 0 {
		t.Errorf("pending timers = %d, want 0", in.PendingTimers())
	}
}

func TestInstanceIgnoresTickFromCaller(t *testing.T) {
	in := Mount(runSpec(), &manualClock{}, nil)
	in.Dispatch(Action{Kind: Start, Field: "code"})
	st := in.Dispatch(Action{Kind: Tick, Field: TimerKey("run", "code")})
	if !st.Runs["code"].Running {
		t.Error("a dispatched tick completed the run")
	}
}

func TestUnmountCancelsTimers(t *testing.T) {
	clock := &manualClock{}
	rec := &recorder{}
	in := Mount(runSpec(), clock, rec.notify)
	in.Dispatch(Action{Kind: Start, Field: "code"})

	in.Unmount()
	if in.Mounted() {
		t.Fatal("still mounted")
	}
	if clock.Active() != 0 || in.PendingTimers() != 0 {
		t.Fatalf("timers left after unmount: clock=%d instance=%d", clock.Active(), in.PendingTimers())
	}

	clock.Advance(5 * time.Second)
	if rec.count() != 0 {
		t.Error("notify called after unmount")
	}
	if st := in.Dispatch(Action{Kind: Start, Field: "code"}); !st.Runs["code"].Running {
		t.Error("dispatch after unmount should return the frozen state")
	}
	if clock.Active() != 0 {
		t.Error("dispatch after unmount scheduled a timer")
	}
	in.Unmount()
}

func TestRemountIsFreshAndStaleCallbackIsDropped(t *testing.T) {
	clock := &manualClock{}
	spec := runSpec()

	oldRec := &recorder{}
	old := Mount(spec, clock, oldRec.notify)
	old.Dispatch(Action{Kind: Start, Field: "code"})
	frozen := old.State()
	old.Unmount()

	newRec := &recorder{}
	fresh := Mount(spec, clock, newRec.notify)
	if !reflect.DeepEqual(fresh.State(), spec.Initial()) {
		t.Fatalf("remount state = %+v, want initial", fresh.State())
	}

	// Deliver the old timer's callback as if it raced with Stop.
	for _, tm := range clock.All() {
		tm.f()
	}

	if !reflect.DeepEqual(old.State(), frozen) {
		t.Errorf("stale callback mutated the unmounted instance: %+v", old.State())
	}
	if !reflect.DeepEqual(fresh.State(), spec.Initial()) {
		t.Errorf("stale callback reached the new instance: %+v", fresh.State())
	}
	if oldRec.count() != 0 || newRec.count() != 0 {
		t.Error("stale callback produced a notification")
	}
}

func TestInstanceRevealCancelledOnLeavingStep(t *testing.T) {
	clock := &manualClock{}
	spec := &Spec{
		Steppers: []StepperSpec{{Name: "scene", Steps: steps("intro", "code", "robots", "summary")}},
		Reveals: []RevealSpec{{
			Name:     "robots",
			Items:    []string{"Robot-1", "Robot-2", "Robot-3", "Robot-4"},
			Interval: 2 * time.Second,
			While:    &StepRef{Stepper: "scene", Step: 2},
		}},
	}
	in := Mount(spec, clock, nil)
	in.Dispatch(Action{Kind: Goto, Field: "scene", Number: 2})

	clock.Advance(4 * time.Second)
	if got := len(in.State().Reveals["robots"].Revealed); got != 2 {
		t.Fatalf("revealed %d, want 2 after 4s", got)
	}

	in.Dispatch(Action{Kind: Next, Field: "scene"})
	if clock.Active() != 0 {
		t.Fatalf("reveal timer still active after leaving the step")
	}
	clock.Advance(10 * time.Second)
	if got := len(in.State().Reveals["robots"].Revealed); got != 2 {
		t.Errorf("revealed %d after leaving, want 2", got)
	}

	in.Dispatch(Action{Kind: Previous, Field: "scene"})
	clock.Advance(10 * time.Second)
	st := in.State().Reveals["robots"]
	if len(st.Revealed) != 4 || st.Pending {
		t.Errorf("after returning: %+v", st)
	}
	if in.PendingTimers() != 0 {
		t.Error("exhausted reveal left a timer")
	}
}

func TestInstanceRevealWithoutGuardStartsOnMount(t *testing.T) {
	clock := &manualClock{}
	spec := &Spec{Reveals: []RevealSpec{{Name: "lines", Items: []string{"a", "b"}, Interval: time.Second}}}
	in := Mount(spec, clock, nil)
	if in.PendingTimers() != 1 {
		t.Fatalf("pending = %d, want 1", in.PendingTimers())
	}
	clock.Advance(2 * time.Second)
	if got := in.State().Reveals["lines"].Revealed; !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("revealed = %v", got)
	}
}

func TestInstanceCarDrains(t *testing.T) {
	clock := &manualClock{}
	in := Mount(&Spec{Car: &CarSpec{}}, clock, nil)

	in.Dispatch(Action{Kind: StartEngine})
	if clock.Active() != 0 {
		t.Fatal("a parked car should not drain")
	}
	in.Dispatch(Action{Kind: Accelerate})
	in.Dispatch(Action{Kind: Accelerate})

	clock.Advance(3 * time.Second)
	car := in.State().Car
	if car.Speed != 40 {
		t.Fatalf("speed = %d, want 40", car.Speed)
	}
	// 3 ticks at speed 40: battery -0.4 each, efficiency -0.8 each.
	if diff := 100 - car.Battery; diff < 1.19 || diff > 1.21 {
		t.Errorf("battery = %v, want about 98.8", car.Battery)
	}
	if diff := 100 - car.Efficiency; diff < 2.39 || diff > 2.41 {
		t.Errorf("efficiency = %v, want about 97.6", car.Efficiency)
	}

	in.Dispatch(Action{Kind: StartEngine})
	if clock.Active() != 0 || in.State().Car.Draining {
		t.Error("stopping the car should cancel the drain timer")
	}
}
