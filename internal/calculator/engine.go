package calculator

import (
	"errors"
	"strconv"
)

// ErrorDisplay is the in-band value produced by a failed evaluation.
const ErrorDisplay = "Error"

// State is everything the keypad needs to redraw itself.
type State struct {
	Display         string `json:"display"`
	FirstOperand    string `json:"first_operand"`
	SecondOperand   string `json:"second_operand"`
	PendingOperator string `json:"pending_operator"`
}

// NewState returns the power-on state.
func NewState() State {
	return State{Display: "0"}
}

// EnteringSecondOperand reports whether digits go to the second operand.
func (s State) EnteringSecondOperand() bool {
	return s.PendingOperator != ""
}

// Handle applies a single key press to s and returns the resulting state.
//
// Operators pressed before any digit and "=" pressed before the second
// operand are ignored. After "=" the result becomes the first operand so
// the next operator continues from it.
func Handle(s State, tok Token) State {
	switch {
	case tok == Clear:
		return NewState()

	case tok.IsOperator():
		if s.FirstOperand == "" {
			return s
		}
		s.PendingOperator = string(tok)
		s.Display = s.FirstOperand + " " + s.PendingOperator
		return s

	case tok == Equals:
		if s.FirstOperand == "" || s.SecondOperand == "" {
			return s
		}
		result := Evaluate(s.FirstOperand, s.SecondOperand, s.PendingOperator)
		return State{Display: result, FirstOperand: result}

	default:
		if !s.EnteringSecondOperand() {
			s.FirstOperand += string(tok)
			s.Display = s.FirstOperand
			return s
		}
		s.SecondOperand += string(tok)
		s.Display = s.FirstOperand + " " + s.PendingOperator + " " + s.SecondOperand
		return s
	}
}

// HandleAll folds tokens through Handle starting from s.
func HandleAll(s State, toks ...Token) State {
	for _, tok := range toks {
		s = Handle(s, tok)
	}
	return s
}

// Accepts reports whether tok passes the guards of Handle in state s.
// Operators need a first operand and "=" needs both; every other key is
// always taken, even when it leaves s unchanged.
func Accepts(s State, tok Token) bool {
	switch {
	case tok.IsOperator():
		return s.FirstOperand != ""
	case tok == Equals:
		return s.FirstOperand != "" && s.SecondOperand != ""
	}
	return true
}

// Evaluate applies op to the decimal strings a and b. An operand that is not
// a number, division by zero and an unknown operator yield ErrorDisplay.
// Overflow is not an error: it shows as "Infinity".
func Evaluate(a, b, op string) string {
	x, ok := parseOperand(a)
	if !ok {
		return ErrorDisplay
	}
	y, ok := parseOperand(b)
	if !ok {
		return ErrorDisplay
	}

	var v float64
	switch Token(op) {
	case Add:
		v = x + y
	case Subtract:
		v = x - y
	case Multiply:
		v = x * y
	case Divide:
		if y == 0 {
			return ErrorDisplay
		}
		v = x / y
	default:
		return ErrorDisplay
	}

	return FormatNumber(v)
}

// parseOperand parses a decimal operand. Digit strings too long for a
// float64 saturate to ±Inf (or 0) instead of failing.
func parseOperand(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return v, true
}
