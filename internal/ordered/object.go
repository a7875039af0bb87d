// Package ordered provides a JSON object type that keeps its key order.
package ordered

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Entry is one key/value pair of an Object.
type Entry[T any] struct {
	Key   string
	Value T
}

// Object is a JSON object decoded into a slice so the order of keys in the
// payload survives. Duplicate keys keep the last value at the position of
// the first occurrence.
type Object[T any] []Entry[T]

// Get returns the value stored under key.
func (o Object[T]) Get(key string) (T, bool) {
	for _, e := range o {
		if e.Key == key {
			return e.Value, true
		}
	}
	var zero T
	return zero, false
}

// Set replaces the value under key or appends a new entry.
func (o *Object[T]) Set(key string, value T) {
	for i := range *o {
		if (*o)[i].Key == key {
			(*o)[i].Value = value
			return
		}
	}
	*o = append(*o, Entry[T]{Key: key, Value: value})
}

// Keys returns the keys in order.
func (o Object[T]) Keys() []string {
	keys := make([]string, len(o))
	for i, e := range o {
		keys[i] = e.Key
	}
	return keys
}

func (o *Object[T]) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*o = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("ordered: expected JSON object, got %v", tok)
	}

	out := Object[T]{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("ordered: expected object key, got %v", keyTok)
		}
		var value T
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("ordered: decode %q: %w", key, err)
		}
		out.Set(key, value)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*o = out
	return nil
}

func (o Object[T]) MarshalJSON() ([]byte, error) {
	if o == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(e.Value)
		if err != nil {
			return nil, fmt.Errorf("ordered: encode %q: %w", e.Key, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
