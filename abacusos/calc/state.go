package calc

import "unicode/utf8"

// ClearLabel is the caption of the clear button.
type ClearLabel string

const (
	// ClearAll is shown while nothing has been typed since the last reset.
	ClearAll ClearLabel = "AC"
	// ClearEntry is shown once a digit has been typed.
	ClearEntry ClearLabel = "C"
)

// State is the calculator input state.
//
// Operator is one of "^", "/", "*", "+", "%" or empty.
type State struct {
	First      string
	Operator   string
	Second     string
	ClearLabel ClearLabel
}

// Evaluation records one evaluation triggered by a key press.
type Evaluation struct {
	A        string `yaml:"a"        json:"a"`
	Operator string `yaml:"operator" json:"operator"`
	B        string `yaml:"b"        json:"b"`
	Result   string `yaml:"result"   json:"result"`
}

// NewState returns the power-on state.
func NewState() State {
	return State{ClearLabel: ClearAll}
}

// Display returns the text shown on the calculator screen.
func (s State) Display() string {
	if s.Second != "" {
		return s.Second
	}
	if s.First != "" {
		return s.First
	}
	return "0"
}

// Apply returns the state after key is pressed.
//
// The returned Evaluation is non-nil when the key triggered an evaluation.
// Operator keys pressed with a pending second operand evaluate the stored
// operator, not the pressed one, and "-" never becomes the pending operator.
func Apply(s State, k Key) (State, *Evaluation) {
	switch k.Kind {
	case KeyClear:
		return State{ClearLabel: ClearAll}, nil

	case KeyBackspace:
		switch {
		case s.Second != "":
			s.Second = dropLastRune(s.Second)
		case s.Operator != "":
			s.Operator = ""
		default:
			s.First = dropLastRune(s.First)
		}
		s.ClearLabel = ClearAll
		return s, nil

	case KeyPercent:
		return evaluate(s, "%")

	case KeyBinaryOp:
		if s.Second != "" {
			return evaluate(s, s.Operator)
		}
		s.Operator = string(k.Char)
		return s, nil

	case KeyMinus, KeyEquals:
		return evaluate(s, s.Operator)

	case KeyDigit:
		s.ClearLabel = ClearEntry
		if s.Operator == "" {
			s.First += string(k.Char)
		} else {
			s.Second += string(k.Char)
		}
		return s, nil
	}
	return s, nil
}

// Press applies keys in order and returns the final state.
func Press(s State, keys ...Key) State {
	for _, k := range keys {
		s, _ = Apply(s, k)
	}
	return s
}

func evaluate(s State, op string) (State, *Evaluation) {
	ev := &Evaluation{A: s.First, Operator: op, B: s.Second}
	ev.Result = Evaluate(s.First, op, s.Second)
	return State{First: ev.Result, ClearLabel: s.ClearLabel}, ev
}

func dropLastRune(s string) string {
	if s == "" {
		return s
	}
	_, size := utf8.DecodeLastRuneInString(s)
	return s[:len(s)-size]
}
