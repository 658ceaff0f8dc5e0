package types

type ComponentKind string

const (
	ComponentKindProject ComponentKind = "project"
	ComponentKindModule  ComponentKind = "module"
)

type PassKind string

const (
	PassKindGraph     PassKind = "graph"
	PassKindArtifacts PassKind = "artifacts"
)

// TraversalPolicy decides what happens when the target component is absent
// from the pass being traversed.
type TraversalPolicy int

const (
	// TraversalStrict treats a missing target as an internal consistency
	// violation. Used for the graph pass that feeds task dependencies.
	TraversalStrict TraversalPolicy = iota
	// TraversalLenient yields an empty set for a missing target. Used for the
	// artifact pass, which may legitimately omit a component.
	TraversalLenient
)

func (p TraversalPolicy) String() string {
	switch p {
	case TraversalStrict:
		return "strict"
	case TraversalLenient:
		return "lenient"
	default:
		return "unknown"
	}
}
