package ports

import "transform-deps/internal/types"

// ProjectStateUser is implemented by containers whose work reads the mutable
// state of a project. A scheduler holds that project's lock while running it.
type ProjectStateUser interface {
	OwningProject() (types.ComponentID, bool)
}
