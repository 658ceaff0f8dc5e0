package core

import (
	"context"
	"sync"

	"transform-deps/internal/ports"
	"transform-deps/internal/types"
)

// UpstreamResolverFactory hands out one UpstreamResolver per component. Each
// pass provider is wrapped so the pass is produced once for all resolvers.
// Owner, when set before the first resolver is handed out, is passed on to
// every resolver.
type UpstreamResolverFactory struct {
	Owner *types.ComponentID

	graphPass    ports.ResolutionPassProvider
	artifactPass ports.ResolutionPassProvider
	filter       ComponentFilter
	results      ports.FilteredResultFactory

	mu        sync.Mutex
	resolvers map[types.ComponentID]*UpstreamResolver
}

func NewUpstreamResolverFactory(graphPass ports.ResolutionPassProvider, artifactPass ports.ResolutionPassProvider, filter ComponentFilter, results ports.FilteredResultFactory) *UpstreamResolverFactory {
	return &UpstreamResolverFactory{
		graphPass:    memoizePass("graph pass", graphPass),
		artifactPass: memoizePass("artifact pass", artifactPass),
		filter:       filter,
		results:      results,
		resolvers:    map[types.ComponentID]*UpstreamResolver{},
	}
}

func (f *UpstreamResolverFactory) ResolverFor(ctx context.Context, component types.ComponentID) *UpstreamResolver {
	f.mu.Lock()
	defer f.mu.Unlock()
	if resolver, ok := f.resolvers[component]; ok {
		return resolver
	}
	resolver := NewUpstreamResolver(ctx, component, f.graphPass, f.artifactPass, f.filter, f.results)
	resolver.Owner = f.Owner
	f.resolvers[component] = resolver
	return resolver
}

func (f *UpstreamResolverFactory) DependenciesFor(ctx context.Context, component types.ComponentID, step types.TransformStep) TransformUpstreamDependencies {
	if !step.RequiresDependencies {
		return NoDependencies
	}
	return f.ResolverFor(ctx, component).DependenciesFor(step)
}

func memoizePass(name string, provider ports.ResolutionPassProvider) ports.ResolutionPassProvider {
	value := NewCalculatedValue[*types.ResolutionPass](name, calculatorFunc[*types.ResolutionPass](provider.ResolutionPass))
	return ports.ResolutionPassFunc(func(ctx context.Context) (*types.ResolutionPass, error) {
		return value.Value(ctx).Get()
	})
}
