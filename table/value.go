package table

import (
	"encoding/json"
	"math"
	"time"
)

const (
	UnknownType ValueType = iota
	NullType
	BoolType
	IntType
	FloatType
	StringType
	DateType
	DateTimeType
	ObjectType
)

// ValueType is the machine type of a single cell value.
type ValueType uint8

func (v ValueType) String() string {
	switch v {
	case NullType:
		return "null"
	case BoolType:
		return "boolean"
	case IntType:
		return "integer"
	case FloatType:
		return "float"
	case StringType:
		return "string"
	case DateType:
		return "date"
	case DateTimeType:
		return "datetime"
	case ObjectType:
		return "object"
	}

	return ""
}

func (v ValueType) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.String())
}

// TypeOf returns the machine type of a cell value. Values outside the
// supported set (slices, maps, arbitrary structs) are ObjectType.
func TypeOf(v interface{}) ValueType {
	switch x := v.(type) {
	case nil:
		return NullType
	case bool:
		return BoolType
	case int, int32, int64:
		return IntType
	case float32:
		return FloatType
	case float64:
		return FloatType
	case string:
		return StringType
	case time.Time:
		if x.Hour() == 0 && x.Minute() == 0 && x.Second() == 0 && x.Nanosecond() == 0 {
			return DateType
		}
		return DateTimeType
	}

	return ObjectType
}

var typeGeneralizationMap = map[[2]ValueType]ValueType{
	{BoolType, IntType}:      IntType,
	{IntType, FloatType}:     FloatType,
	{BoolType, FloatType}:    FloatType,
	{DateTimeType, DateType}: DateTimeType,
}

// GeneralizeType takes two types and returns the more general type of
// the two, with string being the most general if both are not null.
func GeneralizeType(t1, t2 ValueType) ValueType {
	// Same type.
	if t1 == t2 {
		return t1
	}

	if t1 == NullType {
		return t2
	}

	if t2 == NullType {
		return t1
	}

	if t1 == ObjectType || t2 == ObjectType {
		return ObjectType
	}

	key := [2]ValueType{t1, t2}

	t, ok := typeGeneralizationMap[key]
	if ok {
		return t
	}

	// Swap order.
	key[0], key[1] = key[1], key[0]

	t, ok = typeGeneralizationMap[key]
	if ok {
		return t
	}

	// Everything else can be generalized to a string.
	return StringType
}

// Coerce converts a value to the representation of the target type so
// that mixed-but-compatible columns (bool+int, int+float) compare and
// count as one type. Returns the value unchanged if no conversion
// applies.
func Coerce(v interface{}, t ValueType) interface{} {
	switch t {
	case IntType:
		switch x := v.(type) {
		case bool:
			if x {
				return int64(1)
			}
			return int64(0)
		case int:
			return int64(x)
		case int32:
			return int64(x)
		}

	case FloatType:
		switch x := v.(type) {
		case bool:
			if x {
				return float64(1)
			}
			return float64(0)
		case int:
			return float64(x)
		case int32:
			return float64(x)
		case int64:
			return float64(x)
		case float32:
			return float64(x)
		}

	case DateTimeType, DateType:
		return v

	case StringType:
		if x, ok := v.(string); ok {
			return x
		}
	}

	return v
}

// IsMissing reports whether a cell value counts as a missing
// observation: nil, NaN, or an infinity. Infinities are normalized to
// missing before classification but tracked separately by the
// describers.
func IsMissing(v interface{}) bool {
	if v == nil {
		return true
	}

	if f, ok := v.(float64); ok {
		return math.IsNaN(f) || math.IsInf(f, 0)
	}

	return false
}

// IsInfinite reports whether a cell value is an infinite float.
func IsInfinite(v interface{}) bool {
	f, ok := v.(float64)
	return ok && math.IsInf(f, 0)
}
