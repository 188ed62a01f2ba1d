package fieldmap

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// ErrInvalidValue is returned when a payload value cannot be converted to the
// type of the column it targets.
var ErrInvalidValue = errors.New("invalid field value")

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// coerce converts v to the canonical Go representation of t. Store values and
// payload values both pass through here; lenient relaxes numeric parsing so
// that unreadable numbers decode as zero instead of failing.
func coerce(t Type, v any, lenient bool) (any, error) {
	if v == nil {
		return nil, nil
	}
	if valuer, ok := v.(driver.Valuer); ok {
		if _, isTime := v.(time.Time); !isTime {
			dv, err := valuer.Value()
			if err != nil {
				return nil, err
			}
			if dv == nil {
				return nil, nil
			}
			v = dv
		}
	}

	switch t {
	case TypeString:
		switch x := v.(type) {
		case string:
			return x, nil
		case []byte:
			return string(x), nil
		}
	case TypeInt:
		return toInt(v, lenient)
	case TypeFloat:
		return toFloat(v, lenient)
	case TypeBool:
		switch x := v.(type) {
		case bool:
			return x, nil
		case string:
			if b, err := strconv.ParseBool(x); err == nil {
				return b, nil
			}
		case []byte:
			if b, err := strconv.ParseBool(string(x)); err == nil {
				return b, nil
			}
		}
	case TypeTime:
		switch x := v.(type) {
		case time.Time:
			return x, nil
		case string:
			return parseTime(x)
		case []byte:
			return parseTime(string(x))
		}
	case TypeUUID:
		switch x := v.(type) {
		case uuid.UUID:
			return x, nil
		case [16]byte:
			return uuid.UUID(x), nil
		case string:
			id, err := uuid.Parse(x)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidValue, err)
			}
			return id, nil
		case []byte:
			if len(x) == 16 {
				return uuid.FromBytes(x)
			}
			id, err := uuid.ParseBytes(x)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidValue, err)
			}
			return id, nil
		}
	case TypeJSON:
		return toObject(v)
	case TypeStrings:
		return toStrings(v, lenient)
	case TypeInts:
		return toInts(v, lenient)
	}

	if lenient && (t == TypeString) {
		return fmt.Sprint(v), nil
	}
	return nil, fmt.Errorf("%w: expected %s, got %T", ErrInvalidValue, t, v)
}

func toInt(v any, lenient bool) (any, error) {
	switch x := v.(type) {
	case int:
		return x, nil
	case int8:
		return int(x), nil
	case int16:
		return int(x), nil
	case int32:
		return int(x), nil
	case int64:
		return int(x), nil
	case uint8:
		return int(x), nil
	case uint16:
		return int(x), nil
	case uint32:
		return int(x), nil
	case float32:
		return floatToInt(float64(x), lenient)
	case float64:
		return floatToInt(x, lenient)
	case json.Number:
		return parseInt(string(x), lenient)
	case string:
		return parseInt(x, lenient)
	case []byte:
		return parseInt(string(x), lenient)
	}
	if lenient {
		return 0, nil
	}
	return nil, fmt.Errorf("%w: expected int, got %T", ErrInvalidValue, v)
}

func floatToInt(f float64, lenient bool) (any, error) {
	if f != math.Trunc(f) && !lenient {
		return nil, fmt.Errorf("%w: %v is not an integer", ErrInvalidValue, f)
	}
	return int(f), nil
}

func parseInt(s string, lenient bool) (any, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return floatToInt(f, lenient)
	}
	if lenient {
		return 0, nil
	}
	return nil, fmt.Errorf("%w: %q is not an integer", ErrInvalidValue, s)
}

func toFloat(v any, lenient bool) (any, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int32:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case json.Number:
		return parseFloat(string(x), lenient)
	case string:
		return parseFloat(x, lenient)
	case []byte:
		return parseFloat(string(x), lenient)
	}
	if lenient {
		return float64(0), nil
	}
	return nil, fmt.Errorf("%w: expected number, got %T", ErrInvalidValue, v)
}

// parseFloat reads NUMERIC columns, which the driver hands over as text.
func parseFloat(s string, lenient bool) (any, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		if lenient {
			return float64(0), nil
		}
		return nil, fmt.Errorf("%w: %q is not a number", ErrInvalidValue, s)
	}
	return f, nil
}

func parseTime(s string) (any, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return nil, fmt.Errorf("%w: %q is not a timestamp", ErrInvalidValue, s)
}

func toObject(v any) (any, error) {
	var raw []byte
	switch x := v.(type) {
	case map[string]any:
		return x, nil
	case []byte:
		raw = x
	case string:
		raw = []byte(x)
	default:
		b, err := json.Marshal(x)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidValue, err)
		}
		raw = b
	}
	if len(raw) == 0 {
		return map[string]any{}, nil
	}
	out := map[string]any{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}
	return out, nil
}

func toStrings(v any, lenient bool) (any, error) {
	switch x := v.(type) {
	case []string:
		return x, nil
	case []any:
		out := make([]string, 0, len(x))
		for _, item := range x {
			s, ok := item.(string)
			if !ok {
				if !lenient {
					return nil, fmt.Errorf("%w: list element %T is not a string", ErrInvalidValue, item)
				}
				s = fmt.Sprint(item)
			}
			out = append(out, s)
		}
		return out, nil
	case string, []byte:
		var arr pq.StringArray
		if err := arr.Scan(x); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidValue, err)
		}
		return []string(arr), nil
	}
	return nil, fmt.Errorf("%w: expected list of strings, got %T", ErrInvalidValue, v)
}

func toInts(v any, lenient bool) (any, error) {
	switch x := v.(type) {
	case []int:
		return x, nil
	case []int64:
		out := make([]int, len(x))
		for i, n := range x {
			out[i] = int(n)
		}
		return out, nil
	case []any:
		out := make([]int, 0, len(x))
		for _, item := range x {
			n, err := toInt(item, lenient)
			if err != nil {
				return nil, err
			}
			out = append(out, n.(int))
		}
		return out, nil
	case string, []byte:
		var arr pq.Int64Array
		if err := arr.Scan(x); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidValue, err)
		}
		return toInts([]int64(arr), lenient)
	}
	return nil, fmt.Errorf("%w: expected list of integers, got %T", ErrInvalidValue, v)
}

// param converts a canonical value into something every database/sql driver
// accepts as a bind argument.
func param(t Type, v any) any {
	if v == nil {
		return nil
	}
	switch t {
	case TypeStrings:
		xs, _ := v.([]string)
		if xs == nil {
			xs = []string{}
		}
		return pq.StringArray(xs)
	case TypeInts:
		xs, _ := v.([]int)
		out := make(pq.Int64Array, len(xs))
		for i, n := range xs {
			out[i] = int64(n)
		}
		return out
	case TypeJSON:
		b, err := json.Marshal(v)
		if err != nil {
			return datatypes.JSON("{}")
		}
		return datatypes.JSON(b)
	case TypeInt:
		if n, ok := v.(int); ok {
			return int64(n)
		}
	}
	return v
}
