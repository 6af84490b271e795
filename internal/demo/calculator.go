package demo

import "fmt"

const calculatorField = "calculator"

// Calculator operations. The empty operation selects the two-argument
// overload.
const (
	OpNone       = ""
	OpAdd        = "add"
	OpPercentage = "percentage"
)

var validOps = map[string]bool{OpNone: true, OpAdd: true, OpPercentage: true}

// CalculatorSpec seeds the overloaded calculate() demo.
type CalculatorSpec struct {
	A  float64 `yaml:"a,omitempty" json:"a,omitempty"`
	B  float64 `yaml:"b,omitempty" json:"b,omitempty"`
	Op string  `yaml:"op,omitempty" json:"op,omitempty"`
}

// CalcState holds the operands, the chosen overload and the last result.
type CalcState struct {
	A      float64  `json:"a"`
	B      float64  `json:"b"`
	Op     string   `json:"op"`
	Call   string   `json:"call,omitempty"`
	Result *float64 `json:"result,omitempty"`
}

func (c *CalculatorSpec) initial() *CalcState {
	return &CalcState{A: c.A, B: c.B, Op: c.Op}
}

func (c *CalcState) apply(a Action) {
	switch a.Kind {
	case SetA:
		c.A = a.Number
		c.Result, c.Call = nil, ""
	case SetB:
		c.B = a.Number
		c.Result, c.Call = nil, ""
	case SetOp:
		if !validOps[a.Value] {
			return
		}
		c.Op = a.Value
		c.Result, c.Call = nil, ""
	case Calculate:
		r, call := Overload(c.A, c.B, c.Op)
		c.Result, c.Call = &r, call
	}
}

// Overload mirrors the three calculate overloads of the compile-time
// polymorphism sample and returns the signature that was chosen.
func Overload(a, b float64, op string) (float64, string) {
	switch op {
	case OpAdd:
		return a + b, fmt.Sprintf("calculate(%g, %g, %q)", a, b, op)
	case OpPercentage:
		return a * b / 100, fmt.Sprintf("calculate(%g, %g, %q)", a, b, op)
	default:
		return a + b, fmt.Sprintf("calculate(%g, %g)", a, b)
	}
}
