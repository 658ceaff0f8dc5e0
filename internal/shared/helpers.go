// Package shared provides small helpers used across the transform-deps
// packages.
package shared

import (
	"fmt"
	"sort"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

// SortedStrings renders a set of identifiers in lexical order, so reports and
// command output are stable across runs.
func SortedStrings[T interface {
	comparable
	fmt.Stringer
}](set mapset.Set[T]) []string {
	if set == nil {
		return []string{}
	}
	out := make([]string, 0, set.Cardinality())
	set.Each(func(item T) bool {
		out = append(out, item.String())
		return false
	})
	sort.Strings(out)
	return out
}

// NonEmpty trims every value and drops the blank ones.
func NonEmpty(values []string) []string {
	var out []string
	for _, value := range values {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}
	return out
}
