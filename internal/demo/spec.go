// Package demo implements the small interactive state machines embedded in
// content units: steppers, toggles, selectors, simulated runs, timed reveals
// and a few richer widgets. Transitions are pure; timers are owned by a
// mounted Instance.
package demo

import (
	"fmt"
	"time"
)

// DefaultRunDelay is used for simulated runs that declare no delay.
const DefaultRunDelay = time.Second

// Spec declares the interactive fields of one content unit. Field names share
// a single namespace across all kinds.
type Spec struct {
	Steppers   []StepperSpec   `yaml:"steppers,omitempty" json:"steppers,omitempty"`
	Toggles    []ToggleSpec    `yaml:"toggles,omitempty" json:"toggles,omitempty"`
	Selectors  []SelectorSpec  `yaml:"selectors,omitempty" json:"selectors,omitempty"`
	Runs       []RunSpec       `yaml:"runs,omitempty" json:"runs,omitempty"`
	Reveals    []RevealSpec    `yaml:"reveals,omitempty" json:"reveals,omitempty"`
	Autoplays  []AutoplaySpec  `yaml:"autoplays,omitempty" json:"autoplays,omitempty"`
	Sets       []SetSpec       `yaml:"sets,omitempty" json:"sets,omitempty"`
	Car        *CarSpec        `yaml:"car,omitempty" json:"car,omitempty"`
	Calculator *CalculatorSpec `yaml:"calculator,omitempty" json:"calculator,omitempty"`
}

// StepperSpec is a step index bounded to [0, len(Steps)-1].
type StepperSpec struct {
	Name    string `yaml:"name" json:"name"`
	Label   string `yaml:"label,omitempty" json:"label,omitempty"`
	Steps   []Step `yaml:"steps" json:"steps"`
	Initial int    `yaml:"initial,omitempty" json:"initial,omitempty"`
	Wrap    bool   `yaml:"wrap,omitempty" json:"wrap,omitempty"`
}

// Step is one stage of a stepper.
type Step struct {
	Title  string `yaml:"title" json:"title"`
	Detail string `yaml:"detail,omitempty" json:"detail,omitempty"`
}

// StepRef points at one step of a stepper.
type StepRef struct {
	Stepper string `yaml:"stepper" json:"stepper"`
	Step    int    `yaml:"step" json:"step"`
}

// ToggleSpec is a boolean flag. A latched toggle can only be switched on. A
// toggle that follows a step is derived and ignores user actions.
type ToggleSpec struct {
	Name    string   `yaml:"name" json:"name"`
	Label   string   `yaml:"label,omitempty" json:"label,omitempty"`
	Content string   `yaml:"content,omitempty" json:"content,omitempty"`
	Initial bool     `yaml:"initial,omitempty" json:"initial,omitempty"`
	Latch   bool     `yaml:"latch,omitempty" json:"latch,omitempty"`
	Follows *StepRef `yaml:"follows,omitempty" json:"follows,omitempty"`
}

// Option is a selectable variant.
type Option struct {
	ID     string `yaml:"id" json:"id"`
	Label  string `yaml:"label" json:"label"`
	Detail string `yaml:"detail,omitempty" json:"detail,omitempty"`
	Code   string `yaml:"code,omitempty" json:"code,omitempty"`
	Output string `yaml:"output,omitempty" json:"output,omitempty"`
}

// SelectorSpec is a tabbed example: one of a fixed set of options, or none.
type SelectorSpec struct {
	Name      string   `yaml:"name" json:"name"`
	Label     string   `yaml:"label,omitempty" json:"label,omitempty"`
	Options   []Option `yaml:"options" json:"options"`
	Initial   string   `yaml:"initial,omitempty" json:"initial,omitempty"`
	Clearable bool     `yaml:"clearable,omitempty" json:"clearable,omitempty"`
}

// RunSpec is a simulated "Run Code" action. The output is revealed after
// Delay; with OutputFrom set it is taken from the selected option of that
// selector.
type RunSpec struct {
	Name       string        `yaml:"name" json:"name"`
	Label      string        `yaml:"label,omitempty" json:"label,omitempty"`
	Delay      time.Duration `yaml:"delay,omitempty" json:"delay,omitempty"`
	Output     string        `yaml:"output,omitempty" json:"output,omitempty"`
	OutputFrom string        `yaml:"output_from,omitempty" json:"output_from,omitempty"`
}

// RevealSpec appends Items one at a time every Interval while active. It is
// active while its While step is current, or always when While is nil.
type RevealSpec struct {
	Name     string        `yaml:"name" json:"name"`
	Label    string        `yaml:"label,omitempty" json:"label,omitempty"`
	Items    []string      `yaml:"items" json:"items"`
	Interval time.Duration `yaml:"interval" json:"interval"`
	While    *StepRef      `yaml:"while,omitempty" json:"while,omitempty"`
}

// AutoplaySpec advances a stepper from its first to its last step on a fixed
// interval.
type AutoplaySpec struct {
	Name     string        `yaml:"name" json:"name"`
	Stepper  string        `yaml:"stepper" json:"stepper"`
	Interval time.Duration `yaml:"interval" json:"interval"`
}

// SetSpec is a membership list over a fixed roster.
type SetSpec struct {
	Name    string   `yaml:"name" json:"name"`
	Label   string   `yaml:"label,omitempty" json:"label,omitempty"`
	Members []Option `yaml:"members" json:"members"`
	Initial []string `yaml:"initial,omitempty" json:"initial,omitempty"`
}

// Validate checks that names are unique and that every cross reference
// resolves.
func (s *Spec) Validate() error {
	if s == nil {
		return nil
	}

	names := make(map[string]bool)
	claim := func(kind, name string) error {
		if name == "" {
			return fmt.Errorf("%s: name is required", kind)
		}
		if names[name] {
			return fmt.Errorf("%s %q: duplicate field name", kind, name)
		}
		names[name] = true
		return nil
	}

	for _, st := range s.Steppers {
		if err := claim("stepper", st.Name); err != nil {
			return err
		}
		if len(st.Steps) == 0 {
			return fmt.Errorf("stepper %q: at least one step is required", st.Name)
		}
		if st.Initial < 0 || st.Initial >= len(st.Steps) {
			return fmt.Errorf("stepper %q: initial step %d out of range", st.Name, st.Initial)
		}
	}
	for _, tg := range s.Toggles {
		if err := claim("toggle", tg.Name); err != nil {
			return err
		}
		if tg.Follows != nil {
			if err := s.checkStepRef(*tg.Follows); err != nil {
				return fmt.Errorf("toggle %q: %w", tg.Name, err)
			}
		}
	}
	for _, sel := range s.Selectors {
		if err := claim("selector", sel.Name); err != nil {
			return err
		}
		if err := checkOptions(sel.Options); err != nil {
			return fmt.Errorf("selector %q: %w", sel.Name, err)
		}
		if sel.Initial != "" && !hasOption(sel.Options, sel.Initial) {
			return fmt.Errorf("selector %q: unknown initial option %q", sel.Name, sel.Initial)
		}
	}
	for _, run := range s.Runs {
		if err := claim("run", run.Name); err != nil {
			return err
		}
		if run.Delay < 0 {
			return fmt.Errorf("run %q: negative delay", run.Name)
		}
		if run.OutputFrom != "" && s.selector(run.OutputFrom) == nil {
			return fmt.Errorf("run %q: unknown selector %q", run.Name, run.OutputFrom)
		}
	}
	for _, rv := range s.Reveals {
		if err := claim("reveal", rv.Name); err != nil {
			return err
		}
		if rv.Interval <= 0 {
			return fmt.Errorf("reveal %q: interval must be positive", rv.Name)
		}
		if rv.While != nil {
			if err := s.checkStepRef(*rv.While); err != nil {
				return fmt.Errorf("reveal %q: %w", rv.Name, err)
			}
		}
	}
	for _, ap := range s.Autoplays {
		if err := claim("autoplay", ap.Name); err != nil {
			return err
		}
		if ap.Interval <= 0 {
			return fmt.Errorf("autoplay %q: interval must be positive", ap.Name)
		}
		if s.stepper(ap.Stepper) == nil {
			return fmt.Errorf("autoplay %q: unknown stepper %q", ap.Name, ap.Stepper)
		}
	}
	for _, set := range s.Sets {
		if err := claim("set", set.Name); err != nil {
			return err
		}
		if err := checkOptions(set.Members); err != nil {
			return fmt.Errorf("set %q: %w", set.Name, err)
		}
		for _, id := range set.Initial {
			if !hasOption(set.Members, id) {
				return fmt.Errorf("set %q: unknown initial member %q", set.Name, id)
			}
		}
	}
	if s.Car != nil {
		if err := claim("car", carField); err != nil {
			return err
		}
	}
	if s.Calculator != nil {
		if err := claim("calculator", calculatorField); err != nil {
			return err
		}
		if !validOps[s.Calculator.Op] {
			return fmt.Errorf("calculator: unknown operation %q", s.Calculator.Op)
		}
	}
	return nil
}

// Empty reports whether the spec declares no fields at all.
func (s *Spec) Empty() bool {
	return s == nil || (len(s.Steppers) == 0 && len(s.Toggles) == 0 &&
		len(s.Selectors) == 0 && len(s.Runs) == 0 && len(s.Reveals) == 0 &&
		len(s.Autoplays) == 0 && len(s.Sets) == 0 && s.Car == nil && s.Calculator == nil)
}

func (s *Spec) checkStepRef(ref StepRef) error {
	st := s.stepper(ref.Stepper)
	if st == nil {
		return fmt.Errorf("unknown stepper %q", ref.Stepper)
	}
	if ref.Step < 0 || ref.Step >= len(st.Steps) {
		return fmt.Errorf("step %d out of range for stepper %q", ref.Step, ref.Stepper)
	}
	return nil
}

func checkOptions(opts []Option) error {
	if len(opts) == 0 {
		return fmt.Errorf("at least one option is required")
	}
	seen := make(map[string]bool, len(opts))
	for _, o := range opts {
		if o.ID == "" {
			return fmt.Errorf("option id is required")
		}
		if seen[o.ID] {
			return fmt.Errorf("duplicate option %q", o.ID)
		}
		seen[o.ID] = true
	}
	return nil
}

func hasOption(opts []Option, id string) bool {
	for _, o := range opts {
		if o.ID == id {
			return true
		}
	}
	return false
}

func optionByID(opts []Option, id string) *Option {
	for i := range opts {
		if opts[i].ID == id {
			return &opts[i]
		}
	}
	return nil
}

func (s *Spec) stepper(name string) *StepperSpec {
	for i := range s.Steppers {
		if s.Steppers[i].Name == name {
			return &s.Steppers[i]
		}
	}
	return nil
}

func (s *Spec) toggle(name string) *ToggleSpec {
	for i := range s.Toggles {
		if s.Toggles[i].Name == name {
			return &s.Toggles[i]
		}
	}
	return nil
}

func (s *Spec) selector(name string) *SelectorSpec {
	for i := range s.Selectors {
		if s.Selectors[i].Name == name {
			return &s.Selectors[i]
		}
	}
	return nil
}

func (s *Spec) run(name string) *RunSpec {
	for i := range s.Runs {
		if s.Runs[i].Name == name {
			return &s.Runs[i]
		}
	}
	return nil
}

func (s *Spec) reveal(name string) *RevealSpec {
	for i := range s.Reveals {
		if s.Reveals[i].Name == name {
			return &s.Reveals[i]
		}
	}
	return nil
}

func (s *Spec) autoplay(name string) *AutoplaySpec {
	for i := range s.Autoplays {
		if s.Autoplays[i].Name == name {
			return &s.Autoplays[i]
		}
	}
	return nil
}

func (s *Spec) set(name string) *SetSpec {
	for i := range s.Sets {
		if s.Sets[i].Name == name {
			return &s.Sets[i]
		}
	}
	return nil
}

func (r *RunSpec) delay() time.Duration {
	if r.Delay <= 0 {
		return DefaultRunDelay
	}
	return r.Delay
}
