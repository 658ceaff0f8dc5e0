package ports

import (
	"context"

	"transform-deps/internal/types"
)

// ResolutionPassProvider produces the snapshot of one completed resolution
// pass. Producing a pass may be expensive; callers cache the result.
type ResolutionPassProvider interface {
	ResolutionPass(ctx context.Context) (*types.ResolutionPass, error)
}

// ResolutionPassFunc adapts a function to ResolutionPassProvider.
type ResolutionPassFunc func(ctx context.Context) (*types.ResolutionPass, error)

func (f ResolutionPassFunc) ResolutionPass(ctx context.Context) (*types.ResolutionPass, error) {
	return f(ctx)
}
