package invoke_test

import (
	"errors"
	"strings"
	"testing"

	"go.trai.ch/derp/internal/adapters/invoke"
	"go.trai.ch/derp/internal/core/domain"
)

func TestInvoker_SingleResult(t *testing.T) {
	inv := invoke.NewInvoker()

	add := func(a, b int) int { return a + b }

	got, err := inv.Invoke(add, []any{2, 3}, nil)
	if err != nil {
		t.Fatalf("Invoke failed: %v", err)
	}
	if got != 5 {
		t.Errorf("expected 5, got %v", got)
	}
}

func TestInvoker_ValueAndError(t *testing.T) {
	inv := invoke.NewInvoker()

	parse := func(s string) (int, error) {
		if s == "" {
			return 0, errors.New("empty input")
		}
		return len(s), nil
	}

	got, err := inv.Invoke(parse, []any{"hello"}, nil)
	if err != nil {
		t.Fatalf("Invoke failed: %v", err)
	}
	if got != 5 {
		t.Errorf("expected 5, got %v", got)
	}
}

func TestInvoker_CallableErrorUnchanged(t *testing.T) {
	inv := invoke.NewInvoker()

	boom := errors.New("boom")
	fail := func() (int, error) { return 0, boom }

	_, err := inv.Invoke(fail, nil, nil)
	if !errors.Is(err, boom) {
		t.Errorf("expected callable error unchanged, got %v", err)
	}
}

func TestInvoker_NamedArguments(t *testing.T) {
	inv := invoke.NewInvoker()

	greet := func(name string, opts map[string]any) string {
		greeting, _ := opts["greeting"].(string)
		if greeting == "" {
			greeting = "hello"
		}
		return greeting + " " + name
	}

	got, err := inv.Invoke(greet, []any{"world"}, map[string]any{"greeting": "hi"})
	if err != nil {
		t.Fatalf("Invoke failed: %v", err)
	}
	if got != "hi world" {
		t.Errorf("expected %q, got %v", "hi world", got)
	}
}

func TestInvoker_NamedArgumentsOmittedWhenNil(t *testing.T) {
	inv := invoke.NewInvoker()

	double := func(n int) int { return n * 2 }

	got, err := inv.Invoke(double, []any{21}, nil)
	if err != nil {
		t.Fatalf("Invoke failed: %v", err)
	}
	if got != 42 {
		t.Errorf("expected 42, got %v", got)
	}
}

func TestInvoker_Variadic(t *testing.T) {
	inv := invoke.NewInvoker()

	join := func(sep string, parts ...string) string {
		return strings.Join(parts, sep)
	}

	got, err := inv.Invoke(join, []any{"-", "a", "b", "c"}, nil)
	if err != nil {
		t.Fatalf("Invoke failed: %v", err)
	}
	if got != "a-b-c" {
		t.Errorf("expected %q, got %v", "a-b-c", got)
	}

	// The variadic tail may be empty.
	got, err = inv.Invoke(join, []any{"-"}, nil)
	if err != nil {
		t.Fatalf("Invoke without tail failed: %v", err)
	}
	if got != "" {
		t.Errorf("expected empty string, got %v", got)
	}
}

func TestInvoker_NilArgument(t *testing.T) {
	inv := invoke.NewInvoker()

	count := func(items []string) int { return len(items) }

	got, err := inv.Invoke(count, []any{nil}, nil)
	if err != nil {
		t.Fatalf("Invoke failed: %v", err)
	}
	if got != 0 {
		t.Errorf("expected 0, got %v", got)
	}

	// nil is not a value of any non-nilable parameter type.
	double := func(n int) int { return n * 2 }
	if _, err := inv.Invoke(double, []any{nil}, nil); !errors.Is(err, domain.ErrArgumentMismatch) {
		t.Errorf("expected ErrArgumentMismatch, got %v", err)
	}
}

func TestInvoker_NotCallable(t *testing.T) {
	inv := invoke.NewInvoker()

	cases := []struct {
		name string
		fn   any
	}{
		{name: "nil", fn: nil},
		{name: "int", fn: 42},
		{name: "string", fn: "add"},
		{name: "nil func", fn: (func() int)(nil)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := inv.Invoke(tc.fn, nil, nil)
			if !errors.Is(err, domain.ErrNotCallable) {
				t.Errorf("expected ErrNotCallable, got %v", err)
			}
		})
	}
}

func TestInvoker_BadSignature(t *testing.T) {
	inv := invoke.NewInvoker()

	cases := []struct {
		name string
		fn   any
	}{
		{name: "no results", fn: func() {}},
		{name: "second result not error", fn: func() (int, string) { return 0, "" }},
		{name: "three results", fn: func() (int, int, error) { return 0, 0, nil }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := inv.Invoke(tc.fn, nil, nil)
			if !errors.Is(err, domain.ErrBadSignature) {
				t.Errorf("expected ErrBadSignature, got %v", err)
			}
		})
	}
}

func TestInvoker_ArgumentMismatch(t *testing.T) {
	inv := invoke.NewInvoker()

	add := func(a, b int) int { return a + b }

	cases := []struct {
		name  string
		args  []any
		named map[string]any
	}{
		{name: "too few", args: []any{2}},
		{name: "too many", args: []any{2, 3, 4}},
		{name: "wrong type", args: []any{2, "three"}},
		{name: "unexpected named", args: []any{2, 3}, named: map[string]any{"x": 1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := inv.Invoke(add, tc.args, tc.named)
			if !errors.Is(err, domain.ErrArgumentMismatch) {
				t.Errorf("expected ErrArgumentMismatch, got %v", err)
			}
		})
	}
}

func TestInvoker_InterfaceParameter(t *testing.T) {
	inv := invoke.NewInvoker()

	describe := func(v any) string {
		if v == nil {
			return "<nil>"
		}
		return "value"
	}

	got, err := inv.Invoke(describe, []any{nil}, nil)
	if err != nil {
		t.Fatalf("Invoke failed: %v", err)
	}
	if got != "<nil>" {
		t.Errorf("expected %q, got %v", "<nil>", got)
	}
}
