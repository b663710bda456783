// Package invoke executes memoized callables through reflection.
package invoke

import (
	"reflect"

	"go.trai.ch/derp/internal/core/domain"
	"go.trai.ch/zerr"
)

var errType = reflect.TypeOf((*error)(nil)).Elem()

// Invoker implements ports.Invoker for plain Go functions. A callable must
// return a single value, or a value and an error.
type Invoker struct{}

// NewInvoker creates an Invoker.
func NewInvoker() *Invoker {
	return &Invoker{}
}

// Invoke calls fn with the positional arguments, appending the named map as
// the final argument when present. The callable's own error comes back
// unchanged.
func (i *Invoker) Invoke(fn any, args []any, named map[string]any) (any, error) {
	v := reflect.ValueOf(fn)
	if !v.IsValid() || v.Kind() != reflect.Func || v.IsNil() {
		return nil, zerr.With(domain.ErrNotCallable, "type", typeName(fn))
	}

	t := v.Type()
	if err := checkResults(t); err != nil {
		return nil, err
	}

	if named != nil {
		args = append(args[:len(args):len(args)], named)
	}

	in, err := buildArgs(t, args)
	if err != nil {
		return nil, err
	}

	results := v.Call(in)
	if len(results) == 2 && !results[1].IsNil() {
		//nolint:forcetypeassert // checkResults pinned the second result to error
		return nil, results[1].Interface().(error)
	}

	return results[0].Interface(), nil
}

// checkResults enforces the two allowed shapes: func(...) T and
// func(...) (T, error).
func checkResults(t reflect.Type) error {
	switch t.NumOut() {
	case 1:
		return nil
	case 2:
		if t.Out(1).Implements(errType) {
			return nil
		}
	}

	return zerr.With(domain.ErrBadSignature, "callable_type", t.String())
}

// buildArgs validates arity and assignability and converts the arguments
// into reflect values for the call.
func buildArgs(t reflect.Type, args []any) ([]reflect.Value, error) {
	if t.IsVariadic() {
		if len(args) < t.NumIn()-1 {
			return nil, arityError(t, len(args))
		}
	} else if len(args) != t.NumIn() {
		return nil, arityError(t, len(args))
	}

	in := make([]reflect.Value, 0, len(args))
	for pos, arg := range args {
		param := paramType(t, pos)

		if arg == nil {
			if !nilable(param) {
				err := zerr.With(domain.ErrArgumentMismatch, "position", pos)
				return nil, zerr.With(err, "parameter_type", param.String())
			}
			in = append(in, reflect.Zero(param))
			continue
		}

		av := reflect.ValueOf(arg)
		if !av.Type().AssignableTo(param) {
			err := zerr.With(domain.ErrArgumentMismatch, "position", pos)
			err = zerr.With(err, "argument_type", av.Type().String())
			return nil, zerr.With(err, "parameter_type", param.String())
		}
		in = append(in, av)
	}

	return in, nil
}

// paramType returns the parameter type at pos, unrolling the variadic tail.
func paramType(t reflect.Type, pos int) reflect.Type {
	if t.IsVariadic() && pos >= t.NumIn()-1 {
		return t.In(t.NumIn() - 1).Elem()
	}

	return t.In(pos)
}

func arityError(t reflect.Type, got int) error {
	err := zerr.With(domain.ErrArgumentMismatch, "callable_type", t.String())
	return zerr.With(err, "arguments", got)
}

func nilable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
		return true
	default:
		return false
	}
}

func typeName(v any) string {
	if v == nil {
		return "<nil>"
	}

	return reflect.TypeOf(v).String()
}
