package site

import (
	"html/template"
	"math"
	"strconv"

	"github.com/ziadkadry99/oopconcepts/internal/demo"
)

type demoView struct {
	Live      bool
	Disabled  bool
	Steppers  []stepperView
	Toggles   []toggleView
	Selectors []selectorView
	Runs      []runView
	Reveals   []revealView
	Sets      []setView
	Car       *carView
	Calc      *calcView
}

type stepperView struct {
	Name         string
	Label        string
	Steps        []stepView
	CurrentTitle string
	Detail       template.HTML
	Position     int
	Count        int
	AtFirst      bool
	AtLast       bool
	Autoplays    []autoplayView
}

type stepView struct {
	Title   string
	Current bool
	Done    bool
}

type autoplayView struct {
	Name    string
	Playing bool
}

type toggleView struct {
	Name    string
	Label   string
	On      bool
	Latch   bool
	Locked  bool
	Derived bool
	Content template.HTML
}

type selectorView struct {
	Name      string
	Label     string
	Clearable bool
	Options   []optionView
	Selected  *optionView
}

type optionView struct {
	ID     string
	Label  string
	Active bool
	Detail template.HTML
	Code   template.HTML
}

type runView struct {
	Name    string
	Label   string
	Running bool
	Output  string
}

type revealView struct {
	Name    string
	Label   string
	Items   []string
	Pending bool
}

type setView struct {
	Name    string
	Label   string
	Count   int
	Members []optionView
}

type carView struct {
	demo.CarState
	BatteryPct int
}

type calcView struct {
	A, B      float64
	Ops       []calcOp
	Call      string
	Result    string
	HasResult bool
}

type calcOp struct {
	Value  string
	Label  string
	Active bool
}

// RenderDemo renders the widgets of spec at state st. Static renderers
// disable every control.
func (r *Renderer) RenderDemo(spec *demo.Spec, st demo.State) (string, error) {
	if spec.Empty() {
		return "", nil
	}
	out, err := r.execute("demo", r.demoView(spec, st))
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func (r *Renderer) demoView(spec *demo.Spec, st demo.State) demoView {
	v := demoView{Live: !r.opts.Static, Disabled: r.opts.Static}

	for _, sp := range spec.Steppers {
		cur := st.Steps[sp.Name]
		if cur < 0 || cur >= len(sp.Steps) {
			cur = 0
		}
		sv := stepperView{
			Name:         sp.Name,
			Label:        sp.Label,
			CurrentTitle: sp.Steps[cur].Title,
			Detail:       r.Markdown(sp.Steps[cur].Detail),
			Position:     cur + 1,
			Count:        len(sp.Steps),
			AtFirst:      cur == 0 && !sp.Wrap,
			AtLast:       cur == len(sp.Steps)-1 && !sp.Wrap,
		}
		for i, step := range sp.Steps {
			sv.Steps = append(sv.Steps, stepView{Title: step.Title, Current: i == cur, Done: i < cur})
		}
		for _, ap := range spec.Autoplays {
			if ap.Stepper == sp.Name {
				sv.Autoplays = append(sv.Autoplays, autoplayView{Name: ap.Name, Playing: st.Playing[ap.Name]})
			}
		}
		v.Steppers = append(v.Steppers, sv)
	}

	for _, tg := range spec.Toggles {
		on := st.Toggles[tg.Name]
		label := tg.Label
		if label == "" {
			label = tg.Name
		}
		v.Toggles = append(v.Toggles, toggleView{
			Name:    tg.Name,
			Label:   label,
			On:      on,
			Latch:   tg.Latch,
			Locked:  tg.Latch && on,
			Derived: tg.Follows != nil,
			Content: r.Markdown(tg.Content),
		})
	}

	for _, sel := range spec.Selectors {
		sv := selectorView{Name: sel.Name, Label: sel.Label, Clearable: sel.Clearable}
		chosen := st.Selected[sel.Name]
		for _, o := range sel.Options {
			ov := optionView{ID: o.ID, Label: o.Label, Active: o.ID == chosen}
			if ov.Active {
				ov.Detail = r.Markdown(o.Detail)
				ov.Code = r.Code(r.opts.CodeLanguage, o.Code)
				chosenView := ov
				sv.Selected = &chosenView
			}
			sv.Options = append(sv.Options, ov)
		}
		v.Selectors = append(v.Selectors, sv)
	}

	for _, run := range spec.Runs {
		rs := st.Runs[run.Name]
		label := run.Label
		if label == "" {
			label = "Run Code"
		}
		v.Runs = append(v.Runs, runView{Name: run.Name, Label: label, Running: rs.Running, Output: rs.Output})
	}

	for _, rv := range spec.Reveals {
		rs := st.Reveals[rv.Name]
		v.Reveals = append(v.Reveals, revealView{Name: rv.Name, Label: rv.Label, Items: rs.Revealed, Pending: rs.Pending})
	}

	for _, set := range spec.Sets {
		in := make(map[string]bool)
		for _, id := range st.Sets[set.Name] {
			in[id] = true
		}
		sv := setView{Name: set.Name, Label: set.Label, Count: len(st.Sets[set.Name])}
		for _, m := range set.Members {
			sv.Members = append(sv.Members, optionView{ID: m.ID, Label: m.Label, Active: in[m.ID]})
		}
		v.Sets = append(v.Sets, sv)
	}

	if spec.Car != nil && st.Car != nil {
		v.Car = &carView{CarState: *st.Car, BatteryPct: int(math.Round(st.Car.Battery))}
	}

	if spec.Calculator != nil && st.Calc != nil {
		c := st.Calc
		cv := &calcView{A: c.A, B: c.B, Call: c.Call}
		for _, op := range []calcOp{
			{Value: demo.OpNone, Label: "calculate(a, b)"},
			{Value: demo.OpAdd, Label: `calculate(a, b, "add")`},
			{Value: demo.OpPercentage, Label: `calculate(a, b, "percentage")`},
		} {
			op.Active = op.Value == c.Op
			cv.Ops = append(cv.Ops, op)
		}
		if c.Result != nil {
			cv.HasResult = true
			cv.Result = strconv.FormatFloat(*c.Result, 'g', -1, 64)
		}
		v.Calc = cv
	}

	return v
}
