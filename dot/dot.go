// Package dot wraps decoded JSON so that object keys can be read like
// attributes, recursively through nested objects and arrays.
//
//	v, _ := dot.Parse([]byte(`{"people":[{"email":"a@example.com"}]}`))
//	v.Attr("people").Index(0).Attr("email").String() // "a@example.com"
//	v.Get("people.0.email").String()                  // same, as a gjson path
//
// Lookups never panic: a missing key or index yields a Value whose Exists
// method reports false.
package dot

import (
	"errors"

	"github.com/tidwall/gjson"
)

// ErrInvalidJSON is returned by Parse when the input is not valid JSON.
var ErrInvalidJSON = errors.New("dot: invalid JSON")

// Value is a read-only view over a JSON value.
type Value struct {
	result gjson.Result
}

// Parse validates data and wraps it.
func Parse(data []byte) (*Value, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidJSON
	}
	return &Value{result: gjson.ParseBytes(data)}, nil
}

// MustParse is like Parse but panics on invalid input. Intended for tests
// and literals.
func MustParse(data string) *Value {
	v, err := Parse([]byte(data))
	if err != nil {
		panic(err)
	}
	return v
}

func wrap(r gjson.Result) *Value {
	return &Value{result: r}
}

// Attr returns the member called name. It is the attribute-style spelling
// of Key and behaves identically.
func (v *Value) Attr(name string) *Value {
	return v.Key(name)
}

// Key returns the object member called key. Keys are matched literally;
// gjson path syntax in key has no special meaning.
func (v *Value) Key(key string) *Value {
	if v == nil || !v.result.IsObject() {
		return wrap(gjson.Result{})
	}
	var member gjson.Result
	v.result.ForEach(func(k, value gjson.Result) bool {
		if k.String() == key {
			member = value
			return false
		}
		return true
	})
	return wrap(member)
}

// Index returns element i of an array.
func (v *Value) Index(i int) *Value {
	if v == nil || !v.result.IsArray() || i < 0 {
		return wrap(gjson.Result{})
	}
	items := v.result.Array()
	if i >= len(items) {
		return wrap(gjson.Result{})
	}
	return wrap(items[i])
}

// Get evaluates a gjson path such as "people.0.email" or "items.#.id".
func (v *Value) Get(path string) *Value {
	if v == nil {
		return wrap(gjson.Result{})
	}
	return wrap(v.result.Get(path))
}

// Exists reports whether the value is present.
func (v *Value) Exists() bool { return v != nil && v.result.Exists() }

// IsObject reports whether the value is a JSON object.
func (v *Value) IsObject() bool { return v != nil && v.result.IsObject() }

// IsArray reports whether the value is a JSON array.
func (v *Value) IsArray() bool { return v != nil && v.result.IsArray() }

// IsNull reports whether the value is JSON null.
func (v *Value) IsNull() bool { return v != nil && v.result.Exists() && v.result.Type == gjson.Null }

// String returns the value as a string. Objects and arrays are returned as
// their raw JSON text.
func (v *Value) String() string {
	if v == nil {
		return ""
	}
	return v.result.String()
}

// Int returns the value as an integer.
func (v *Value) Int() int64 {
	if v == nil {
		return 0
	}
	return v.result.Int()
}

// Float returns the value as a float.
func (v *Value) Float() float64 {
	if v == nil {
		return 0
	}
	return v.result.Float()
}

// Bool returns the value as a boolean.
func (v *Value) Bool() bool {
	if v == nil {
		return false
	}
	return v.result.Bool()
}

// Len returns the number of elements of an array or members of an object.
func (v *Value) Len() int {
	switch {
	case v.IsArray():
		return len(v.result.Array())
	case v.IsObject():
		return len(v.result.Map())
	}
	return 0
}

// Keys returns object member names in document order.
func (v *Value) Keys() []string {
	if !v.IsObject() {
		return nil
	}
	var keys []string
	v.result.ForEach(func(key, _ gjson.Result) bool {
		keys = append(keys, key.String())
		return true
	})
	return keys
}

// Array returns the elements of an array, each wrapped.
func (v *Value) Array() []*Value {
	if !v.IsArray() {
		return nil
	}
	items := v.result.Array()
	out := make([]*Value, len(items))
	for i, item := range items {
		out[i] = wrap(item)
	}
	return out
}

// Map returns the members of an object, each wrapped.
func (v *Value) Map() map[string]*Value {
	if !v.IsObject() {
		return nil
	}
	members := v.result.Map()
	out := make(map[string]*Value, len(members))
	for key, member := range members {
		out[key] = wrap(member)
	}
	return out
}

// Interface returns the value as plain Go data: map[string]interface{},
// []interface{}, float64, string, bool or nil.
func (v *Value) Interface() interface{} {
	if v == nil {
		return nil
	}
	return v.result.Value()
}

// Raw returns the JSON text of the value.
func (v *Value) Raw() string {
	if v == nil {
		return ""
	}
	return v.result.Raw
}

// MarshalJSON implements json.Marshaler.
func (v *Value) MarshalJSON() ([]byte, error) {
	if !v.Exists() {
		return []byte("null"), nil
	}
	return []byte(v.result.Raw), nil
}
