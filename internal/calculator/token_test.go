package calculator

import (
	"errors"
	"testing"
)

func TestParseToken(t *testing.T) {
	tests := []struct {
		raw     string
		want    Token
		wantErr bool
	}{
		{raw: "0", want: "0"},
		{raw: "9", want: "9"},
		{raw: "+", want: Add},
		{raw: "-", want: Subtract},
		{raw: "*", want: Multiply},
		{raw: "/", want: Divide},
		{raw: "=", want: Equals},
		{raw: "C", want: Clear},
		{raw: "c", want: Clear},
		{raw: "", wantErr: true},
		{raw: "12", wantErr: true},
		{raw: ".", wantErr: true},
		{raw: "x", wantErr: true},
		{raw: "%", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.raw, func(t *testing.T) {
			got, err := ParseToken(tc.raw)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidToken) {
					t.Fatalf("expected ErrInvalidToken, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestParseTokensStopsAtFirstInvalid(t *testing.T) {
	_, err := ParseTokens([]string{"1", "+", "x", "2"})
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}

	toks, err := ParseTokens([]string{"1", "+", "2", "="})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(toks) != 4 || toks[3] != Equals {
		t.Fatalf("unexpected tokens %v", toks)
	}
}

func TestKeypadHoldsEveryKeyOnce(t *testing.T) {
	seen := map[Token]int{}
	for _, row := range Keypad {
		if len(row) != 4 {
			t.Fatalf("expected 4 keys per row, got %d", len(row))
		}
		for _, k := range row {
			if !IsValidToken(k) {
				t.Fatalf("keypad holds invalid token %q", k)
			}
			seen[k]++
		}
	}

	if len(seen) != 16 {
		t.Fatalf("expected 16 distinct keys, got %d", len(seen))
	}
	for k, n := range seen {
		if n != 1 {
			t.Fatalf("key %q appears %d times", k, n)
		}
	}
}
