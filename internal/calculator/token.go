package calculator

import "fmt"

// Token is one key of the keypad.
type Token string

const (
	Clear    Token = "C"
	Equals   Token = "="
	Add      Token = "+"
	Subtract Token = "-"
	Multiply Token = "*"
	Divide   Token = "/"
)

// Keypad is the button grid, top row first.
var Keypad = [][]Token{
	{Clear, Divide, Multiply, Subtract},
	{"7", "8", "9", Add},
	{"4", "5", "6", Equals},
	{"1", "2", "3", "0"},
}

// IsOperator reports whether t is one of + - * /.
func (t Token) IsOperator() bool {
	switch t {
	case Add, Subtract, Multiply, Divide:
		return true
	}
	return false
}

// IsDigit reports whether t is a single decimal digit.
func (t Token) IsDigit() bool {
	return len(t) == 1 && t[0] >= '0' && t[0] <= '9'
}

// IsValidToken reports whether t is a key on the keypad.
func IsValidToken(t Token) bool {
	return t.IsDigit() || t.IsOperator() || t == Equals || t == Clear
}

// ParseToken validates raw input coming from outside the keypad.
// A lowercase "c" is accepted as Clear.
func ParseToken(raw string) (Token, error) {
	if raw == "c" {
		return Clear, nil
	}
	t := Token(raw)
	if !IsValidToken(t) {
		return "", fmt.Errorf("%w: %q", ErrInvalidToken, raw)
	}
	return t, nil
}

// ParseTokens validates every element of raw, stopping at the first bad one.
func ParseTokens(raw []string) ([]Token, error) {
	toks := make([]Token, 0, len(raw))
	for i, r := range raw {
		t, err := ParseToken(r)
		if err != nil {
			return nil, fmt.Errorf("token %d: %w", i, err)
		}
		toks = append(toks, t)
	}
	return toks, nil
}
