package movement

import "fmt"

// Value is a sealed interface for literal column values.
// Only Text and Int implement it; measures are computed, never compared.
type Value interface {
	value() // Sealed - only these types implement it
}

// Text is a string column value.
type Text string

func (Text) value() {}

// Int is an integer column value.
type Int int64

func (Int) value() {}

// Param converts a Value into a native SQL parameter.
func Param(v Value) (any, error) {
	switch val := v.(type) {
	case Text:
		return string(val), nil
	case Int:
		return int64(val), nil
	case nil:
		return nil, fmt.Errorf("nil value cannot be used as SQL parameter")
	default:
		return nil, fmt.Errorf("unsupported value type for SQL parameter: %T", v)
	}
}

// ValueOf converts a scanned SQL column into a Value.
func ValueOf(src any) Value {
	switch v := src.(type) {
	case int64:
		return Int(v)
	case int:
		return Int(v)
	case float64:
		return Int(int64(v))
	case []byte:
		return Text(string(v))
	case string:
		return Text(v)
	case nil:
		return Text("")
	default:
		return Text(fmt.Sprint(v))
	}
}

// String renders a value for logs and echoed filters.
func String(v Value) string {
	switch val := v.(type) {
	case Text:
		return string(val)
	case Int:
		return fmt.Sprintf("%d", int64(val))
	default:
		return ""
	}
}
