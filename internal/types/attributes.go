package types

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

// Attributes is an immutable set of variant attributes. The zero value is the
// empty set.
type Attributes struct {
	values map[string]string
}

func NewAttributes(values map[string]string) Attributes {
	if len(values) == 0 {
		return Attributes{}
	}
	copied := make(map[string]string, len(values))
	for key, value := range values {
		copied[key] = value
	}
	return Attributes{values: copied}
}

// ParseAttributes reads "key=value" pairs separated by commas.
func ParseAttributes(value string) (Attributes, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return Attributes{}, nil
	}
	values := map[string]string{}
	for _, pair := range strings.Split(trimmed, ",") {
		key, val, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return Attributes{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("invalid attribute %q, expected key=value", strings.TrimSpace(pair)))
		}
		values[key] = strings.TrimSpace(val)
	}
	return Attributes{values: values}, nil
}

func (a Attributes) Get(key string) (string, bool) {
	value, ok := a.values[key]
	return value, ok
}

func (a Attributes) Len() int {
	return len(a.values)
}

func (a Attributes) IsEmpty() bool {
	return len(a.values) == 0
}

func (a Attributes) Keys() []string {
	keys := make([]string, 0, len(a.values))
	for key := range a.values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// AsMap returns a copy of the attribute values.
func (a Attributes) AsMap() map[string]string {
	out := make(map[string]string, len(a.values))
	for key, value := range a.values {
		out[key] = value
	}
	return out
}

// Matches reports whether every requested attribute is present with the same
// value. An empty request matches everything.
func (a Attributes) Matches(requested Attributes) bool {
	for key, want := range requested.values {
		got, ok := a.values[key]
		if !ok || got != want {
			return false
		}
	}
	return true
}

func (a Attributes) String() string {
	keys := a.Keys()
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, key+"="+a.values[key])
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
