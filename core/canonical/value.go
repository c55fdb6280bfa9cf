// Package canonical defines the tree-shaped value every supported text format
// is converted to and from.
//
// A Value is one of nil, bool, json.Number, string, []Value or *Object.
// Objects keep insertion order so that converting between formats does not
// reshuffle a document's keys.
package canonical

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"
)

// Value is a node of a canonical tree.
type Value = interface{}

// Object is an insertion-ordered string-keyed map.
type Object struct {
	keys   []string
	values map[string]Value
}

// NewObject returns an empty object.
func NewObject() *Object {
	return &Object{values: make(map[string]Value)}
}

// Set stores v under key. A new key is appended; an existing key keeps its position.
func (o *Object) Set(key string, v Value) {
	if o.values == nil {
		o.values = make(map[string]Value)
	}
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = v
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (Value, bool) {
	if o == nil {
		return nil, false
	}
	v, ok := o.values[key]
	return v, ok
}

// Delete removes key, preserving the order of the remaining keys.
func (o *Object) Delete(key string) {
	if o == nil {
		return
	}
	if _, ok := o.values[key]; !ok {
		return
	}
	delete(o.values, key)
	for i, k := range o.keys {
		if k == key {
			o.keys = append(o.keys[:i:i], o.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the keys in insertion order.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	keys := make([]string, len(o.keys))
	copy(keys, o.keys)
	return keys
}

// Len returns the number of keys.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// MarshalJSON renders the object compactly in key order.
func (o *Object) MarshalJSON() ([]byte, error) {
	return Marshal(o)
}

// Clone returns a deep copy of v.
func Clone(v Value) Value {
	switch t := v.(type) {
	case *Object:
		out := NewObject()
		for _, k := range t.Keys() {
			out.Set(k, Clone(t.values[k]))
		}
		return out
	case []Value:
		out := make([]Value, len(t))
		for i, item := range t {
			out[i] = Clone(item)
		}
		return out
	default:
		return t
	}
}

// FromGo converts values produced by generic decoders (maps, slices, numbers,
// times) into a canonical tree. Map keys are sorted because their order is
// already lost.
func FromGo(x interface{}) (Value, error) {
	switch t := x.(type) {
	case nil, bool, string, json.Number:
		return t, nil
	case *Object:
		return t, nil
	case float64:
		return json.Number(strconv.FormatFloat(t, 'f', -1, 64)), nil
	case float32:
		return json.Number(strconv.FormatFloat(float64(t), 'f', -1, 32)), nil
	case int:
		return json.Number(strconv.Itoa(t)), nil
	case int64:
		return json.Number(strconv.FormatInt(t, 10)), nil
	case int32:
		return json.Number(strconv.FormatInt(int64(t), 10)), nil
	case uint64:
		return json.Number(strconv.FormatUint(t, 10)), nil
	case time.Time:
		return t.Format(time.RFC3339Nano), nil
	case []interface{}:
		out := make([]Value, len(t))
		for i, item := range t {
			v, err := FromGo(item)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	case []map[string]interface{}:
		out := make([]Value, len(t))
		for i, item := range t {
			v, err := FromGo(item)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	case map[string]interface{}:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		obj := NewObject()
		for _, k := range keys {
			v, err := FromGo(t[k])
			if err != nil {
				return nil, err
			}
			obj.Set(k, v)
		}
		return obj, nil
	default:
		return nil, fmt.Errorf("canonical: unsupported value of type %T", x)
	}
}

// TypeName describes v for error messages.
func TypeName(v Value) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case json.Number:
		return "number"
	case string:
		return "string"
	case []Value:
		return "array"
	case *Object:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
