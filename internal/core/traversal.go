package core

import (
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
	mapset "github.com/deckarep/golang-set/v2"

	"transform-deps/internal/types"
)

// ComponentFilter selects which reachable components are reported. Components
// rejected by the filter are still walked through.
type ComponentFilter func(id types.ComponentID) bool

// UpstreamComponents returns the identifiers of the components reachable from
// target through resolved edges of pass. The target itself is only reported
// when a cycle leads back to it.
//
// When target is not part of pass, TraversalStrict returns an internal error
// and TraversalLenient returns an empty set.
func UpstreamComponents(pass *types.ResolutionPass, target types.ComponentID, filter ComponentFilter, policy types.TraversalPolicy) (mapset.Set[types.ComponentID], error) {
	component, ok := pass.Find(target)
	if !ok {
		if policy == types.TraversalStrict {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg(fmt.Sprintf("could not find component %s in provided results", target))
		}
		return mapset.NewSet[types.ComponentID](), nil
	}
	if filter == nil {
		filter = func(types.ComponentID) bool { return true }
	}

	found := mapset.NewSet[types.ComponentID]()
	visited := mapset.NewThreadUnsafeSet[types.ComponentID]()
	pending := []*types.ComponentResult{component}
	for len(pending) > 0 {
		current := pending[len(pending)-1]
		pending = pending[:len(pending)-1]
		for _, dependency := range current.Dependencies {
			if !dependency.IsResolved() {
				continue
			}
			selected := dependency.Selected
			if filter(selected.ID) {
				found.Add(selected.ID)
			}
			if visited.Add(selected.ID) {
				pending = append(pending, selected)
			}
		}
	}
	return found, nil
}
