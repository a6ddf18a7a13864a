package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go-chi-calculator/internal/calculator"

	"github.com/google/go-cmp/cmp"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestPressPrintsDisplay(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "separate keys", args: []string{"press", "7", "+", "3", "="}, want: "10.0"},
		{name: "packed keys", args: []string{"press", "7+3="}, want: "10.0"},
		{name: "chained", args: []string{"press", "9-4=", "+2="}, want: "7.0"},
		{name: "division by zero", args: []string{"press", "5/0="}, want: "Error"},
		{name: "leading operator ignored", args: []string{"press", "*5"}, want: "5"},
		{name: "clear", args: []string{"press", "12+3C"}, want: "0"},
		{name: "key starting with minus", args: []string{"press", "9", "-4", "="}, want: "5.0"},
		{name: "lone minus", args: []string{"press", "8", "-", "3="}, want: "5.0"},
		{name: "leading minus after separator", args: []string{"press", "--", "-3", "7"}, want: "37"},
		{name: "flag before keys", args: []string{"press", "--state=false", "6", "-1="}, want: "5.0"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out, err := runCmd(t, tc.args...)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := strings.TrimSpace(out); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestPressStateFlag(t *testing.T) {
	out, err := runCmd(t, "press", "--state", "9-4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got calculator.State
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decoding state: %v\n%s", err, out)
	}

	want := calculator.State{
		Display:         "9 - 4",
		FirstOperand:    "9",
		SecondOperand:   "4",
		PendingOperator: "-",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("state mismatch (-want +got):\n%s", diff)
	}
}

func TestPressRejectsInvalidKeys(t *testing.T) {
	_, err := runCmd(t, "press", "1.5")
	if !errors.Is(err, calculator.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestPressRequiresKeys(t *testing.T) {
	if _, err := runCmd(t, "press"); err == nil {
		t.Fatal("expected error without keys")
	}
}

func TestPressWritesDebugLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calc.log")

	if _, err := runCmd(t, "press", "--log-file", path, "--debug", "1+"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	if n := strings.Count(string(data), `"keys pressed"`); n != 1 {
		t.Fatalf("expected 1 keys pressed entry, got %d:\n%s", n, data)
	}
	if !strings.Contains(string(data), `"keys":2`) {
		t.Fatalf("expected key count in log entry:\n%s", data)
	}
}
