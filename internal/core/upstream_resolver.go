package core

import (
	"context"

	assert "github.com/ZanzyTHEbar/assert-lib"
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/rs/zerolog/log"

	"transform-deps/internal/ports"
	"transform-deps/internal/types"
)

// UpstreamResolver computes the upstream dependencies of one component. It is
// shared by every transform step applied to that component, so the two
// identifier sets are computed once and reused whatever attributes are
// requested later.
//
// Owner is the project whose resolution produced the passes, if any. Computing
// the final artifacts reads that project's state.
type UpstreamResolver struct {
	Component types.ComponentID
	Owner     *types.ComponentID
	Results   ports.FilteredResultFactory

	buildDependencies    *CalculatedValue[mapset.Set[types.ComponentID]]
	artifactDependencies *CalculatedValue[mapset.Set[types.ComponentID]]
}

func NewUpstreamResolver(
	ctx context.Context,
	component types.ComponentID,
	graphPass ports.ResolutionPassProvider,
	artifactPass ports.ResolutionPassProvider,
	filter ComponentFilter,
	results ports.FilteredResultFactory,
) *UpstreamResolver {
	assert.NotEmpty(ctx, component.Name, "component name must be set")
	return &UpstreamResolver{
		Component: component,
		Results:   results,
		buildDependencies: NewCalculatedValue[mapset.Set[types.ComponentID]](
			"build dependencies of "+component.String(),
			upstreamIDs(component, graphPass, filter, types.TraversalStrict),
		),
		artifactDependencies: NewCalculatedValue[mapset.Set[types.ComponentID]](
			"artifact dependencies of "+component.String(),
			upstreamIDs(component, artifactPass, filter, types.TraversalLenient),
		),
	}
}

func upstreamIDs(component types.ComponentID, provider ports.ResolutionPassProvider, filter ComponentFilter, policy types.TraversalPolicy) calculatorFunc[mapset.Set[types.ComponentID]] {
	return func(ctx context.Context) (mapset.Set[types.ComponentID], error) {
		pass, err := provider.ResolutionPass(ctx)
		if err != nil {
			return nil, err
		}
		ids, err := UpstreamComponents(pass, component, filter, policy)
		if err != nil {
			return nil, err
		}
		log.Ctx(ctx).Debug().
			Str("component", component.String()).
			Str("policy", policy.String()).
			Int("upstream", ids.Cardinality()).
			Msg("upstream components computed")
		return ids, nil
	}
}

// BuildDependencyIDs traverses the graph pass strictly. The pass is requested
// on first use only.
func (r *UpstreamResolver) BuildDependencyIDs(ctx context.Context) (mapset.Set[types.ComponentID], error) {
	return r.buildDependencies.Value(ctx).Get()
}

// ArtifactDependencyIDs traverses the artifact pass leniently. The pass is
// requested on first use only.
func (r *UpstreamResolver) ArtifactDependencyIDs(ctx context.Context) (mapset.Set[types.ComponentID], error) {
	return r.artifactDependencies.Value(ctx).Get()
}

func (r *UpstreamResolver) FilteredArtifacts(attributes types.Attributes, ids mapset.Set[types.ComponentID]) ports.FileCollection {
	return r.Results.ResultsMatching(attributes, membership(ids))
}

func (r *UpstreamResolver) FilteredBuildDependencies(attributes types.Attributes, ids mapset.Set[types.ComponentID]) ports.FileCollection {
	return r.Results.ResultsMatching(attributes, membership(ids))
}

// SelectedArtifactsFor returns the unresolved collection of upstream
// artifacts matching attributes.
func (r *UpstreamResolver) SelectedArtifactsFor(ctx context.Context, attributes types.Attributes) (ports.FileCollection, error) {
	ids, err := r.ArtifactDependencyIDs(ctx)
	if err != nil {
		return nil, err
	}
	return r.FilteredArtifacts(attributes, ids), nil
}

// VisitBuildDependenciesFor declares the collection of upstream artifacts
// matching attributes as a prerequisite, so their producers run first.
func (r *UpstreamResolver) VisitBuildDependenciesFor(ctx context.Context, attributes types.Attributes, deps ports.TaskDependencyContext) error {
	ids, err := r.BuildDependencyIDs(ctx)
	if err != nil {
		return err
	}
	deps.Add(r.FilteredBuildDependencies(attributes, ids))
	return nil
}

// DependenciesFor binds the resolver to one transform step.
func (r *UpstreamResolver) DependenciesFor(step types.TransformStep) TransformUpstreamDependencies {
	if !step.RequiresDependencies {
		return NoDependencies
	}
	return newUpstreamDependencies(r, step)
}

// OwningProject reports the project that must be locked while the final
// artifacts are computed. Resolutions owned by a module or by nothing need no
// lock.
func (r *UpstreamResolver) OwningProject() (types.ComponentID, bool) {
	if r.Owner == nil || r.Owner.Kind != types.ComponentKindProject {
		return types.ComponentID{}, false
	}
	return *r.Owner, true
}

func membership(ids mapset.Set[types.ComponentID]) func(types.ComponentID) bool {
	return func(id types.ComponentID) bool {
		return ids.Contains(id)
	}
}
