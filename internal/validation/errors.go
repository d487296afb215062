package validation

import (
	"encoding/json"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Errors maps field names to messages in the order they were first reported.
// The first entry is the banner message. A nil *Errors is empty.
type Errors struct {
	m *orderedmap.OrderedMap[string, string]
}

// NewErrors returns an empty error map.
func NewErrors() *Errors {
	return &Errors{m: orderedmap.New[string, string]()}
}

// ErrorsFrom builds an error map from field/message pairs, keeping the first
// message for a repeated field.
func ErrorsFrom(pairs ...string) *Errors {
	e := NewErrors()
	for i := 0; i+1 < len(pairs); i += 2 {
		e.Add(pairs[i], pairs[i+1])
	}
	return e
}

// Add records msg for field unless the field already has a message.
// It reports whether msg was recorded.
func (e *Errors) Add(field, msg string) bool {
	if e.m == nil {
		e.m = orderedmap.New[string, string]()
	}
	if _, exists := e.m.Get(field); exists {
		return false
	}
	e.m.Set(field, msg)
	return true
}

// Get returns the message for field.
func (e *Errors) Get(field string) (string, bool) {
	if e == nil || e.m == nil {
		return "", false
	}
	return e.m.Get(field)
}

// Has reports whether field has a message.
func (e *Errors) Has(field string) bool {
	_, ok := e.Get(field)
	return ok
}

// Len returns the number of fields with messages.
func (e *Errors) Len() int {
	if e == nil || e.m == nil {
		return 0
	}
	return e.m.Len()
}

// Empty reports whether there are no messages.
func (e *Errors) Empty() bool {
	return e.Len() == 0
}

// First returns the earliest reported field and message.
func (e *Errors) First() (field, msg string, ok bool) {
	if e.Len() == 0 {
		return "", "", false
	}
	p := e.m.Oldest()
	return p.Key, p.Value, true
}

// Fields lists fields in report order.
func (e *Errors) Fields() []string {
	if e.Len() == 0 {
		return nil
	}
	out := make([]string, 0, e.m.Len())
	for p := e.m.Oldest(); p != nil; p = p.Next() {
		out = append(out, p.Key)
	}
	return out
}

// Each calls fn for every entry in report order.
func (e *Errors) Each(fn func(field, msg string)) {
	if e.Len() == 0 {
		return
	}
	for p := e.m.Oldest(); p != nil; p = p.Next() {
		fn(p.Key, p.Value)
	}
}

// Clone returns an independent copy. Cloning nil yields an empty map.
func (e *Errors) Clone() *Errors {
	out := NewErrors()
	e.Each(func(field, msg string) { out.m.Set(field, msg) })
	return out
}

// Map returns the entries as a plain map, losing order.
func (e *Errors) Map() map[string]string {
	out := make(map[string]string, e.Len())
	e.Each(func(field, msg string) { out[field] = msg })
	return out
}

// MarshalJSON encodes the entries as a JSON object in report order.
func (e *Errors) MarshalJSON() ([]byte, error) {
	if e.Len() == 0 {
		return []byte("{}"), nil
	}
	return json.Marshal(e.m)
}

// UnmarshalJSON decodes a JSON object, keeping key order.
func (e *Errors) UnmarshalJSON(data []byte) error {
	m := orderedmap.New[string, string]()
	if err := json.Unmarshal(data, m); err != nil {
		return err
	}
	e.m = m
	return nil
}
