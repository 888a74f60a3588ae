package dependencies

import (
	"bytes"
	"encoding/json"
	"iter"
	"maps"
)

// Context is the insertion-ordered result of a resolution pass, mapping
// dependency names to resolved values. The zero value is ready to use.
type Context struct {
	keys   []string
	values map[string]any
}

// NewContext returns a context pre-populated with the given pairs, in
// argument order.
func NewContext(pairs ...Pair) *Context {
	c := &Context{}
	for _, p := range pairs {
		c.Set(p.Key, p.Value)
	}
	return c
}

// Pair is a key and value used to seed a Context.
type Pair struct {
	Key   string
	Value any
}

// Set writes value under key. Overwriting keeps the original position.
func (c *Context) Set(key string, value any) {
	if c.values == nil {
		c.values = make(map[string]any)
	}
	if _, ok := c.values[key]; !ok {
		c.keys = append(c.keys, key)
	}
	c.values[key] = value
}

// Get returns the value stored under key.
func (c *Context) Get(key string) (any, bool) {
	v, ok := c.values[key]
	return v, ok
}

// Has reports whether key is present.
func (c *Context) Has(key string) bool {
	_, ok := c.values[key]
	return ok
}

// Keys returns the keys in insertion order.
func (c *Context) Keys() []string {
	return append([]string(nil), c.keys...)
}

// Len returns the number of entries.
func (c *Context) Len() int { return len(c.keys) }

// All iterates entries in insertion order.
func (c *Context) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for _, k := range c.keys {
			if !yield(k, c.values[k]) {
				return
			}
		}
	}
}

// Map returns a copy of the entries, suitable as template data.
func (c *Context) Map() map[string]any {
	out := make(map[string]any, len(c.values))
	maps.Copy(out, c.values)
	return out
}

// Clone returns an independent copy. Values are shared.
func (c *Context) Clone() *Context {
	out := &Context{keys: c.Keys(), values: c.Map()}
	return out
}

// MarshalJSON encodes the context as an object with keys in insertion order.
func (c *Context) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range c.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(c.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
