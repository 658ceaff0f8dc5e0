package policies

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/ZanzyTHEbar/errbuilder-go"

	"transform-deps/internal/shared"
	"transform-deps/internal/types"
)

// ComponentFilterPolicy decides which upstream components a transform may
// see. Patterns take the forms
//
//	*                          every component
//	project:*                  every project
//	project::lib               one project
//	module:org.acme:*          modules whose name starts with "org.acme:"
//	module:org.acme:core@>=1.2 one module, restricted to matching versions
//
// A pattern without a kind prefix applies to every kind. An empty policy
// matches everything.
type ComponentFilterPolicy struct {
	Patterns []string
	compiled []componentPattern
}

type componentPattern struct {
	kind       *types.ComponentKind
	match      patternKind
	name       string
	constraint *semver.Constraints
}

type patternKind int

const (
	patternExact patternKind = iota
	patternPrefix
	patternWildcard
)

func NewComponentFilterPolicy(patterns []string) (ComponentFilterPolicy, error) {
	policy := ComponentFilterPolicy{}
	for _, pattern := range shared.NonEmpty(patterns) {
		compiled, err := parseComponentPattern(pattern)
		if err != nil {
			return ComponentFilterPolicy{}, err
		}
		policy.Patterns = append(policy.Patterns, pattern)
		policy.compiled = append(policy.compiled, compiled)
	}
	return policy, nil
}

func (p ComponentFilterPolicy) Matches(id types.ComponentID) bool {
	if len(p.compiled) == 0 {
		return true
	}
	for _, pattern := range p.compiled {
		if pattern.matches(id) {
			return true
		}
	}
	return false
}

func (c componentPattern) matches(id types.ComponentID) bool {
	if c.kind != nil && *c.kind != id.Kind {
		return false
	}
	switch c.match {
	case patternExact:
		if id.Name != c.name {
			return false
		}
	case patternPrefix:
		if !strings.HasPrefix(id.Name, c.name) {
			return false
		}
	}
	if c.constraint == nil {
		return true
	}
	version, err := semver.NewVersion(id.Version)
	if err != nil {
		return false
	}
	return c.constraint.Check(version)
}

func parseComponentPattern(pattern string) (componentPattern, error) {
	trimmed := strings.TrimSpace(pattern)
	if trimmed == "*" {
		return componentPattern{match: patternWildcard}, nil
	}
	body, constraintText, hasConstraint := strings.Cut(trimmed, "@")
	parsed := componentPattern{}
	if kindToken, rest, ok := strings.Cut(body, ":"); ok {
		if kind, known := parseComponentKind(kindToken); known {
			parsed.kind = &kind
			body = rest
		}
	}
	name, match, ok := parseNamePattern(body)
	if !ok {
		return componentPattern{}, invalidPattern(pattern, nil)
	}
	parsed.name = name
	parsed.match = match
	if hasConstraint {
		if parsed.kind == nil || *parsed.kind != types.ComponentKindModule {
			return componentPattern{}, invalidPattern(pattern, fmt.Errorf("version constraints only apply to modules"))
		}
		constraint, err := semver.NewConstraint(strings.TrimSpace(constraintText))
		if err != nil {
			return componentPattern{}, invalidPattern(pattern, err)
		}
		parsed.constraint = constraint
	}
	return parsed, nil
}

func parseComponentKind(token string) (types.ComponentKind, bool) {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "project":
		return types.ComponentKindProject, true
	case "module":
		return types.ComponentKindModule, true
	default:
		return "", false
	}
}

func parseNamePattern(value string) (string, patternKind, bool) {
	pattern := strings.TrimSpace(value)
	if pattern == "" {
		return "", patternExact, false
	}
	if pattern == "*" {
		return "", patternWildcard, true
	}
	if strings.HasSuffix(pattern, "*") {
		return strings.TrimSuffix(pattern, "*"), patternPrefix, true
	}
	return pattern, patternExact, true
}

func invalidPattern(pattern string, cause error) error {
	builder := errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("invalid component filter pattern: %q", pattern))
	if cause != nil {
		return builder.WithCause(cause)
	}
	return builder
}
