package props

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
)

// Coerce converts a raw attribute value into a property value of type t.
// A nil raw value means the attribute was removed.
func Coerce(t Type, raw *string) (any, error) {
	if t == TypeBoolean {
		return raw != nil, nil
	}
	if raw == nil {
		return nil, nil
	}
	switch t {
	case TypeNumber:
		n, err := strconv.ParseFloat(*raw, 64)
		if err != nil {
			return nil, err
		}
		return n, nil
	case TypeObject:
		var m map[string]any
		if err := json.Unmarshal([]byte(*raw), &m); err != nil {
			return nil, err
		}
		return m, nil
	case TypeArray:
		var a []any
		if err := json.Unmarshal([]byte(*raw), &a); err != nil {
			return nil, err
		}
		return a, nil
	default:
		return *raw, nil
	}
}

// Format converts a property value into the attribute value reflected for
// it. A nil result means the attribute should be removed.
func Format(t Type, value any) (*string, error) {
	if value == nil {
		return nil, nil
	}
	switch t {
	case TypeBoolean:
		if b, _ := value.(bool); b {
			return Attr(""), nil
		}
		return nil, nil
	case TypeNumber:
		n, err := Normalize(t, value)
		if err != nil {
			return nil, err
		}
		return Attr(strconv.FormatFloat(n.(float64), 'f', -1, 64)), nil
	case TypeObject, TypeArray:
		data, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		return Attr(string(data)), nil
	default:
		return Attr(fmt.Sprint(value)), nil
	}
}

// Normalize checks value against t and converts it to the canonical Go
// representation: numbers become float64, slices become []any and maps
// with string keys become map[string]any.
func Normalize(t Type, value any) (any, error) {
	if value == nil || t == TypeAny {
		return value, nil
	}
	rv := reflect.ValueOf(value)
	switch t {
	case TypeString:
		if s, ok := value.(string); ok {
			return s, nil
		}
	case TypeBoolean:
		if b, ok := value.(bool); ok {
			return b, nil
		}
	case TypeNumber:
		switch rv.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return float64(rv.Int()), nil
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			return float64(rv.Uint()), nil
		case reflect.Float32, reflect.Float64:
			return rv.Float(), nil
		}
	case TypeObject:
		if m, ok := value.(map[string]any); ok {
			return m, nil
		}
		if rv.Kind() == reflect.Map && rv.Type().Key().Kind() == reflect.String {
			m := make(map[string]any, rv.Len())
			iter := rv.MapRange()
			for iter.Next() {
				m[iter.Key().String()] = iter.Value().Interface()
			}
			return m, nil
		}
	case TypeArray:
		if a, ok := value.([]any); ok {
			return a, nil
		}
		if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
			a := make([]any, rv.Len())
			for i := range a {
				a[i] = rv.Index(i).Interface()
			}
			return a, nil
		}
	}
	return nil, fmt.Errorf("%T is not a valid %s value", value, t)
}

// Attr returns a pointer to s, for building attribute values.
func Attr(s string) *string {
	return &s
}

// EqualAttr reports whether two raw attribute values are equal by value.
func EqualAttr(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
