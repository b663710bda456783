package fingerprint

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Canonical renders a value as a deterministic string. Two values render
// identically exactly when the cache treats them as the same argument.
//
// Strings are quoted so that "1" and 1 stay distinct. Map and struct entries
// render sorted by key, so insertion order never leaks into the result. Byte
// slices fold to a short content hash instead of their raw contents.
func Canonical(v any) string {
	return render(reflect.ValueOf(v))
}

func render(v reflect.Value) string {
	if !v.IsValid() {
		return "<nil>"
	}

	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			return "<nil>"
		}

		return render(v.Elem())
	case reflect.String:
		return strconv.Quote(v.String())
	case reflect.Bool:
		return strconv.FormatBool(v.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(v.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'g', -1, 64)
	case reflect.Complex64, reflect.Complex128:
		return strconv.FormatComplex(v.Complex(), 'g', -1, 128)
	case reflect.Slice, reflect.Array:
		return renderList(v)
	case reflect.Map:
		return renderMap(v)
	case reflect.Struct:
		return renderStruct(v)
	default:
		// Channels, funcs and unsafe pointers have no stable value
		// representation. Their type at least keeps distinct shapes
		// from colliding.
		return v.Type().String()
	}
}

func renderList(v reflect.Value) string {
	if v.Kind() == reflect.Slice && v.Type().Elem().Kind() == reflect.Uint8 {
		return "bytes:" + fmt.Sprintf("%016x", xxhash.Sum64(v.Bytes()))
	}

	parts := make([]string, 0, v.Len())
	for i := 0; i < v.Len(); i++ {
		parts = append(parts, render(v.Index(i)))
	}

	return "[" + strings.Join(parts, ", ") + "]"
}

func renderMap(v reflect.Value) string {
	entries := make([]string, 0, v.Len())

	iter := v.MapRange()
	for iter.Next() {
		entries = append(entries, render(iter.Key())+": "+render(iter.Value()))
	}

	sort.Strings(entries)

	return "{" + strings.Join(entries, ", ") + "}"
}

func renderStruct(v reflect.Value) string {
	if v.CanInterface() {
		if s, ok := v.Interface().(fmt.Stringer); ok {
			return strconv.Quote(s.String())
		}
	}

	t := v.Type()
	entries := make([]string, 0, t.NumField())

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		entries = append(entries, strconv.Quote(field.Name)+": "+render(v.Field(i)))
	}

	sort.Strings(entries)

	return "{" + strings.Join(entries, ", ") + "}"
}
