package ports

import "transform-deps/internal/types"

// GraphSourcePort exposes a persisted graph: both resolution passes and the
// artifact catalog that file collections are rendered from.
type GraphSourcePort interface {
	PassProvider(kind types.PassKind) ResolutionPassProvider
	Artifacts() ([]types.Artifact, error)
}
