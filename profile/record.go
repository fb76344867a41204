package profile

import (
	"bytes"
	"encoding/json"
	"math"

	"gopkg.in/yaml.v3"
)

// Record is an insertion-ordered mapping from statistic name to value.
// Field order is load-bearing: the aggregation step derives the output
// column order from the order names were set, shortest record first.
type Record struct {
	names  []string
	values map[string]interface{}
}

func NewRecord() *Record {
	return &Record{
		values: make(map[string]interface{}),
	}
}

// Set adds or replaces a field. A replaced field keeps its original
// position.
func (r *Record) Set(name string, v interface{}) {
	if _, ok := r.values[name]; !ok {
		r.names = append(r.names, name)
	}

	r.values[name] = v
}

// Get returns a field value and whether it is present.
func (r *Record) Get(name string) (interface{}, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Has reports whether a field is present.
func (r *Record) Has(name string) bool {
	_, ok := r.values[name]
	return ok
}

// Names returns field names in insertion order. The slice is shared;
// callers must not mutate it.
func (r *Record) Names() []string {
	return r.names
}

// Len returns the number of fields.
func (r *Record) Len() int {
	return len(r.names)
}

// Kind returns the record's variable kind from its type field, or
// Unsupported when absent.
func (r *Record) Kind() Kind {
	v, ok := r.values["type"]
	if !ok {
		return Unsupported
	}

	k, ok := v.(Kind)
	if !ok {
		return Unsupported
	}

	return k
}

// MarshalJSON writes the record as a JSON object with fields in
// insertion order.
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, name := range r.names {
		if i > 0 {
			buf.WriteByte(',')
		}

		k, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}

		v, err := json.Marshal(jsonSafe(r.values[name]))
		if err != nil {
			return nil, err
		}

		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// jsonSafe substitutes nulls for float values JSON cannot encode.
func jsonSafe(v interface{}) interface{} {
	if f, ok := v.(float64); ok {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil
		}
	}

	return v
}

// MarshalYAML writes the record as a YAML mapping with fields in
// insertion order.
func (r *Record) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{
		Kind: yaml.MappingNode,
	}

	for _, name := range r.names {
		var k, v yaml.Node

		if err := k.Encode(name); err != nil {
			return nil, err
		}

		if err := v.Encode(r.values[name]); err != nil {
			return nil, err
		}

		node.Content = append(node.Content, &k, &v)
	}

	return node, nil
}
