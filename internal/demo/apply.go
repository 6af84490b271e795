package demo

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Kind names a user action or an internal timer tick.
type Kind string

const (
	Next         Kind = "next"
	Previous     Kind = "previous"
	Reset        Kind = "reset"
	Goto         Kind = "goto"
	Toggle       Kind = "toggle"
	SetFlag      Kind = "set"
	Select       Kind = "select"
	Clear        Kind = "clear"
	Start        Kind = "start"
	Play         Kind = "play"
	Pause        Kind = "pause"
	ToggleMember Kind = "toggle_member"
	StartEngine  Kind = "start_engine"
	Accelerate   Kind = "accelerate"
	Brake        Kind = "brake"
	Recharge     Kind = "recharge"
	SetA         Kind = "set_a"
	SetB         Kind = "set_b"
	SetOp        Kind = "set_op"
	Calculate    Kind = "calculate"

	// Tick is delivered by a fired timer. Field holds the timer key.
	Tick Kind = "tick"
)

// Action is one event applied to a State.
type Action struct {
	Kind   Kind    `json:"kind"`
	Field  string  `json:"field,omitempty"`
	Value  string  `json:"value,omitempty"`
	Number float64 `json:"number,omitempty"`
}

// Effect asks the owner of a State to schedule or cancel the timer named by
// Timer.
type Effect struct {
	Timer  string
	Delay  time.Duration
	Cancel bool
}

// Timer keys are "<kind>:<field>".
const (
	runTimer      = "run:"
	revealTimer   = "reveal:"
	autoplayTimer = "autoplay:"
	carTimer      = "car:" + carField
)

// TimerKey returns the key of the timer driving the named field of the given
// kind ("run", "reveal", "autoplay" or "car").
func TimerKey(kind, field string) string { return kind + ":" + field }

// Init returns the initial state and the timers it needs started.
func (s *Spec) Init() (State, []Effect) {
	st := s.Initial()
	return st, s.settle(&st)
}

// Apply is the transition function. It never mutates st. Unknown kinds,
// fields and option ids leave the state unchanged.
func (s *Spec) Apply(st State, a Action) (State, []Effect) {
	next := st.Clone()
	if next.armed == nil {
		next.armed = map[string]bool{}
	}
	if s == nil {
		return next, nil
	}
	if a.Kind == Tick {
		s.tick(&next, a.Field)
	} else {
		s.transition(&next, a)
	}
	return next, s.settle(&next)
}

func (s *Spec) transition(st *State, a Action) {
	switch a.Kind {
	case Next, Previous, Reset, Goto:
		s.step(st, a)
	case Toggle, SetFlag:
		tg := s.toggle(a.Field)
		if tg == nil || tg.Follows != nil {
			return
		}
		v := !st.Toggles[tg.Name]
		if a.Kind == SetFlag {
			b, err := strconv.ParseBool(a.Value)
			if err != nil {
				return
			}
			v = b
		}
		if tg.Latch && st.Toggles[tg.Name] {
			return
		}
		st.Toggles[tg.Name] = v
	case Select:
		sel := s.selector(a.Field)
		if sel == nil || !hasOption(sel.Options, a.Value) {
			return
		}
		if st.Selected[sel.Name] != a.Value {
			st.Selected[sel.Name] = a.Value
			s.clearOutputsFrom(st, sel.Name)
		}
	case Clear:
		sel := s.selector(a.Field)
		if sel == nil || !sel.Clearable {
			return
		}
		if st.Selected[sel.Name] != "" {
			st.Selected[sel.Name] = ""
			s.clearOutputsFrom(st, sel.Name)
		}
	case Start:
		run := s.run(a.Field)
		if run == nil || st.Runs[run.Name].Running {
			return
		}
		st.Runs[run.Name] = RunState{Running: true}
	case Play:
		ap := s.autoplay(a.Field)
		if ap == nil || st.Playing[ap.Name] {
			return
		}
		st.Playing[ap.Name] = true
		st.Steps[ap.Stepper] = 0
	case Pause:
		if ap := s.autoplay(a.Field); ap != nil {
			st.Playing[ap.Name] = false
		}
	case ToggleMember:
		set := s.set(a.Field)
		if set == nil || !hasOption(set.Members, a.Value) {
			return
		}
		current := st.Sets[set.Name]
		ids := make([]string, 0, len(current)+1)
		found := false
		for _, id := range current {
			if id == a.Value {
				found = true
				continue
			}
			ids = append(ids, id)
		}
		if !found {
			ids = append(ids, a.Value)
		}
		st.Sets[set.Name] = orderMembers(set.Members, ids)
	case StartEngine, Accelerate, Brake, Recharge:
		if s.Car != nil && st.Car != nil {
			s.Car.apply(st.Car, a.Kind)
		}
	case SetA, SetB, SetOp, Calculate:
		if s.Calculator != nil && st.Calc != nil {
			st.Calc.apply(a)
		}
	}
}

func (s *Spec) step(st *State, a Action) {
	sp := s.stepper(a.Field)
	if sp == nil {
		return
	}
	n := len(sp.Steps)
	cur := st.Steps[sp.Name]
	switch a.Kind {
	case Next:
		if sp.Wrap {
			cur = (cur + 1) % n
		} else {
			cur = min(cur+1, n-1)
		}
	case Previous:
		if sp.Wrap {
			cur = (cur - 1 + n) % n
		} else {
			cur = max(cur-1, 0)
		}
	case Goto:
		if math.IsNaN(a.Number) {
			return
		}
		// Clamp before converting; an out-of-range float to int conversion is
		// implementation-defined.
		cur = int(math.Max(0, math.Min(a.Number, float64(n-1))))
	case Reset:
		cur = sp.Initial
		for _, rv := range s.Reveals {
			if rv.While != nil && rv.While.Stepper == sp.Name {
				st.Reveals[rv.Name] = RevealState{Revealed: []string{}}
			}
		}
		for _, ap := range s.Autoplays {
			if ap.Stepper == sp.Name {
				st.Playing[ap.Name] = false
			}
		}
	}
	st.Steps[sp.Name] = cur
}

// tick handles a fired timer. A tick for a timer that is not armed is stale
// and ignored.
func (s *Spec) tick(st *State, key string) {
	if !st.armed[key] {
		return
	}
	delete(st.armed, key)

	switch {
	case strings.HasPrefix(key, runTimer):
		run := s.run(strings.TrimPrefix(key, runTimer))
		if run == nil {
			return
		}
		st.Runs[run.Name] = RunState{Output: s.runOutput(st, run)}
	case strings.HasPrefix(key, revealTimer):
		rv := s.reveal(strings.TrimPrefix(key, revealTimer))
		if rv == nil {
			return
		}
		cur := st.Reveals[rv.Name]
		if len(cur.Revealed) < len(rv.Items) {
			cur.Revealed = append(cur.Revealed, rv.Items[len(cur.Revealed)])
		}
		st.Reveals[rv.Name] = cur
	case strings.HasPrefix(key, autoplayTimer):
		ap := s.autoplay(strings.TrimPrefix(key, autoplayTimer))
		if ap == nil || !st.Playing[ap.Name] {
			return
		}
		last := len(s.stepper(ap.Stepper).Steps) - 1
		cur := min(st.Steps[ap.Stepper]+1, last)
		st.Steps[ap.Stepper] = cur
		if cur >= last {
			st.Playing[ap.Name] = false
		}
	case key == carTimer:
		if s.Car != nil && st.Car != nil {
			s.Car.drain(st.Car)
		}
	}
}

func (s *Spec) runOutput(st *State, run *RunSpec) string {
	if run.OutputFrom == "" {
		return run.Output
	}
	sel := s.selector(run.OutputFrom)
	if o := optionByID(sel.Options, st.Selected[sel.Name]); o != nil {
		return o.Output
	}
	return run.Output
}

// clearOutputsFrom drops finished outputs that were derived from a selector
// whose selection just changed.
func (s *Spec) clearOutputsFrom(st *State, selector string) {
	for _, run := range s.Runs {
		if run.OutputFrom != selector {
			continue
		}
		cur := st.Runs[run.Name]
		cur.Output = ""
		st.Runs[run.Name] = cur
	}
}

func (s *Spec) deriveToggles(st *State) {
	for _, tg := range s.Toggles {
		if tg.Follows != nil {
			st.Toggles[tg.Name] = st.Steps[tg.Follows.Stepper] == tg.Follows.Step
		}
	}
}

// settle recomputes derived fields and reconciles the armed timers with the
// timers the state requires.
func (s *Spec) settle(st *State) []Effect {
	if s == nil {
		return nil
	}
	s.deriveToggles(st)

	var effects []Effect
	want := func(key string, on bool, delay time.Duration) {
		switch {
		case on && !st.armed[key]:
			st.armed[key] = true
			effects = append(effects, Effect{Timer: key, Delay: delay})
		case !on && st.armed[key]:
			delete(st.armed, key)
			effects = append(effects, Effect{Timer: key, Cancel: true})
		}
	}

	for _, run := range s.Runs {
		want(runTimer+run.Name, st.Runs[run.Name].Running, run.delay())
	}
	for _, rv := range s.Reveals {
		cur := st.Reveals[rv.Name]
		active := rv.While == nil || st.Steps[rv.While.Stepper] == rv.While.Step
		on := active && len(cur.Revealed) < len(rv.Items)
		want(revealTimer+rv.Name, on, rv.Interval)
		cur.Pending = on
		st.Reveals[rv.Name] = cur
	}
	for _, ap := range s.Autoplays {
		want(autoplayTimer+ap.Name, st.Playing[ap.Name], ap.Interval)
	}
	if s.Car != nil && st.Car != nil {
		on := st.Car.Started && st.Car.Speed > 0
		want(carTimer, on, s.Car.tickInterval())
		st.Car.Draining = on
	}
	return effects
}
