package types

// ComponentResult is a resolved node together with its outgoing edges.
// A pass is immutable once built and may be shared between goroutines.
type ComponentResult struct {
	ID           ComponentID
	Dependencies []DependencyResult
}

// DependencyResult is an outgoing edge. A resolved edge carries the selected
// node; an unresolved edge only carries what was requested and why it failed.
type DependencyResult struct {
	Requested string
	Selected  *ComponentResult
	Failure   string
}

func (d DependencyResult) IsResolved() bool {
	return d.Selected != nil
}

type ResolutionPass struct {
	Kind       PassKind
	Components []*ComponentResult
}

// Find returns the first component with the given identifier.
func (p *ResolutionPass) Find(id ComponentID) (*ComponentResult, bool) {
	if p == nil {
		return nil, false
	}
	for _, component := range p.Components {
		if component != nil && component.ID == id {
			return component, true
		}
	}
	return nil, false
}
