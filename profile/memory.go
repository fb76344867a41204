package profile

import "time"

// memorySize is a deterministic estimate of the byte footprint of a
// column's values. Values the estimator cannot size contribute zero.
func memorySize(values []interface{}) int64 {
	var size int64

	for _, v := range values {
		switch x := v.(type) {
		case nil:
			size += 8
		case bool:
			size += 8
		case int, int32, int64:
			size += 8
		case float32, float64:
			size += 8
		case time.Time:
			size += 24
		case string:
			size += 16 + int64(len(x))
		}
	}

	return size
}
