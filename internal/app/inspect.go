package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"transform-deps/internal/policies"
	"transform-deps/internal/shared"
	"transform-deps/internal/types"
)

// Inspect reports both upstream identifier sets of a component without
// resolving any file.
func (s Service) Inspect(ctx context.Context, req InspectRequest) (InspectResult, error) {
	graphFile := strings.TrimSpace(req.GraphFile)
	if graphFile == "" {
		return InspectResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("graph file is required")
	}
	component, err := types.ParseComponentID(req.Component)
	if err != nil {
		return InspectResult{}, err
	}
	policy, err := policies.NewComponentFilterPolicy(req.Filters)
	if err != nil {
		return InspectResult{}, err
	}
	source := s.GraphSource(graphFile)
	factory, err := newResolverFactory(source, policy)
	if err != nil {
		return InspectResult{}, err
	}
	resolver := factory.ResolverFor(ctx, component)
	buildIDs, err := resolver.BuildDependencyIDs(ctx)
	if err != nil {
		return InspectResult{}, err
	}
	artifactIDs, err := resolver.ArtifactDependencyIDs(ctx)
	if err != nil {
		return InspectResult{}, err
	}
	artifactPass, err := source.PassProvider(types.PassKindArtifacts).ResolutionPass(ctx)
	if err != nil {
		return InspectResult{}, err
	}
	_, present := artifactPass.Find(component)
	return InspectResult{
		Component:               component.String(),
		BuildDependencies:       shared.SortedStrings(buildIDs),
		ArtifactDependencies:    shared.SortedStrings(artifactIDs),
		MissingFromArtifactPass: !present,
	}, nil
}
