package demo

import "maps"

// State is the live value of every field of a Spec.
type State struct {
	Steps    map[string]int         `json:"steps,omitempty"`
	Toggles  map[string]bool        `json:"toggles,omitempty"`
	Selected map[string]string      `json:"selected,omitempty"`
	Runs     map[string]RunState    `json:"runs,omitempty"`
	Reveals  map[string]RevealState `json:"reveals,omitempty"`
	Playing  map[string]bool        `json:"playing,omitempty"`
	Sets     map[string][]string    `json:"sets,omitempty"`
	Car      *CarState              `json:"car,omitempty"`
	Calc     *CalcState             `json:"calculator,omitempty"`

	// armed holds the keys of timers that are scheduled and not yet fired.
	armed map[string]bool
}

// RunState is the state of a simulated run.
type RunState struct {
	Running bool   `json:"running"`
	Output  string `json:"output"`
}

// RevealState is the state of a timed reveal. Pending is true while the
// next item is scheduled.
type RevealState struct {
	Revealed []string `json:"revealed"`
	Pending  bool     `json:"pending"`
}

// Armed reports whether the timer with the given key is scheduled.
func (st State) Armed(key string) bool { return st.armed[key] }

// ArmedCount returns the number of scheduled timers.
func (st State) ArmedCount() int { return len(st.armed) }

// Clone returns a deep copy.
func (st State) Clone() State {
	out := State{
		Steps:    maps.Clone(st.Steps),
		Toggles:  maps.Clone(st.Toggles),
		Selected: maps.Clone(st.Selected),
		Runs:     maps.Clone(st.Runs),
		Playing:  maps.Clone(st.Playing),
		armed:    maps.Clone(st.armed),
	}
	if st.Reveals != nil {
		out.Reveals = make(map[string]RevealState, len(st.Reveals))
		for k, v := range st.Reveals {
			v.Revealed = append([]string(nil), v.Revealed...)
			out.Reveals[k] = v
		}
	}
	if st.Sets != nil {
		out.Sets = make(map[string][]string, len(st.Sets))
		for k, v := range st.Sets {
			out.Sets[k] = append([]string{}, v...)
		}
	}
	if st.Car != nil {
		c := *st.Car
		out.Car = &c
	}
	if st.Calc != nil {
		c := *st.Calc
		if st.Calc.Result != nil {
			r := *st.Calc.Result
			c.Result = &r
		}
		out.Calc = &c
	}
	return out
}

// Initial returns the declared initial state with no timers armed. Use Init
// to obtain the state together with the timers it starts.
func (s *Spec) Initial() State {
	st := State{armed: map[string]bool{}}
	if s == nil {
		return st
	}
	if len(s.Steppers) > 0 {
		st.Steps = make(map[string]int, len(s.Steppers))
		for _, sp := range s.Steppers {
			st.Steps[sp.Name] = sp.Initial
		}
	}
	if len(s.Toggles) > 0 {
		st.Toggles = make(map[string]bool, len(s.Toggles))
		for _, tg := range s.Toggles {
			st.Toggles[tg.Name] = tg.Initial
		}
	}
	if len(s.Selectors) > 0 {
		st.Selected = make(map[string]string, len(s.Selectors))
		for _, sel := range s.Selectors {
			st.Selected[sel.Name] = sel.Initial
		}
	}
	if len(s.Runs) > 0 {
		st.Runs = make(map[string]RunState, len(s.Runs))
		for _, run := range s.Runs {
			st.Runs[run.Name] = RunState{}
		}
	}
	if len(s.Reveals) > 0 {
		st.Reveals = make(map[string]RevealState, len(s.Reveals))
		for _, rv := range s.Reveals {
			st.Reveals[rv.Name] = RevealState{Revealed: []string{}}
		}
	}
	if len(s.Autoplays) > 0 {
		st.Playing = make(map[string]bool, len(s.Autoplays))
		for _, ap := range s.Autoplays {
			st.Playing[ap.Name] = false
		}
	}
	if len(s.Sets) > 0 {
		st.Sets = make(map[string][]string, len(s.Sets))
		for _, set := range s.Sets {
			st.Sets[set.Name] = orderMembers(set.Members, set.Initial)
		}
	}
	if s.Car != nil {
		st.Car = s.Car.initial()
	}
	if s.Calculator != nil {
		st.Calc = s.Calculator.initial()
	}
	// Derived toggles take their value from the initial steps.
	s.deriveToggles(&st)
	return st
}

// orderMembers returns ids in roster order, dropping unknown ids.
func orderMembers(roster []Option, ids []string) []string {
	in := make(map[string]bool, len(ids))
	for _, id := range ids {
		in[id] = true
	}
	out := []string{}
	for _, m := range roster {
		if in[m.ID] {
			out = append(out, m.ID)
		}
	}
	return out
}
