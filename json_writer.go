package equity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
)

// jsonObjectWriter builds a JSON object whose members keep the order they
// were written in. Its zero value is an empty object. The first error sticks
// and is returned by MarshalJSON.
type jsonObjectWriter struct {
	members [][]byte
	err     error
}

// Embed appends the members of a JSON object.
func (w *jsonObjectWriter) Embed(object []byte) *jsonObjectWriter {
	if w.err != nil {
		return w
	}
	inner := bytes.TrimSpace(object)
	inner = bytes.TrimPrefix(inner, []byte("{"))
	inner = bytes.TrimSuffix(inner, []byte("}"))
	if inner = bytes.TrimSpace(inner); len(inner) > 0 {
		w.members = append(w.members, inner)
	}
	return w
}

// EmbedFrom appends the members of v marshalled as a JSON object.
func (w *jsonObjectWriter) EmbedFrom(v any) *jsonObjectWriter {
	if w.err != nil {
		return w
	}
	object, err := json.Marshal(v)
	if err != nil {
		w.err = fmt.Errorf("cannot embed %T: %w", v, err)
		return w
	}
	return w.Embed(object)
}

// Append appends the member key with value.
func (w *jsonObjectWriter) Append(key string, value any) *jsonObjectWriter {
	if w.err != nil {
		return w
	}
	k, err := json.Marshal(key)
	if err != nil {
		w.err = err
		return w
	}
	v, err := json.Marshal(value)
	if err != nil {
		w.err = fmt.Errorf("cannot marshal %q: %w", key, err)
		return w
	}
	w.members = append(w.members, append(append(k, ':'), v...))
	return w
}

// Optional is like Append but skips zero values.
func (w *jsonObjectWriter) Optional(key string, value any) *jsonObjectWriter {
	if v := reflect.ValueOf(value); !v.IsValid() || v.IsZero() {
		return w
	}
	return w.Append(key, value)
}

// MarshalJSON returns the object.
func (w *jsonObjectWriter) MarshalJSON() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	var b bytes.Buffer
	b.WriteByte('{')
	b.Write(bytes.Join(w.members, []byte(",")))
	b.WriteByte('}')
	return b.Bytes(), nil
}
