package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"transform-deps/internal/adapters"
	"transform-deps/internal/core"
	"transform-deps/internal/policies"
	"transform-deps/internal/ports"
	"transform-deps/internal/shared"
	"transform-deps/internal/types"
)

func (s Service) Upstream(ctx context.Context, req UpstreamRequest) (UpstreamResult, error) {
	graphFile := strings.TrimSpace(req.GraphFile)
	if graphFile == "" {
		return UpstreamResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("graph file is required")
	}
	if strings.TrimSpace(req.Component) == "" {
		return UpstreamResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("component is required")
	}
	component, err := types.ParseComponentID(req.Component)
	if err != nil {
		return UpstreamResult{}, err
	}
	attributes, err := types.ParseAttributes(req.FromAttributes)
	if err != nil {
		return UpstreamResult{}, err
	}
	policy, err := policies.NewComponentFilterPolicy(req.Filters)
	if err != nil {
		return UpstreamResult{}, err
	}
	owner, err := parseOwner(req.Owner)
	if err != nil {
		return UpstreamResult{}, err
	}

	source := s.GraphSource(graphFile)
	factory, err := newResolverFactory(source, policy)
	if err != nil {
		return UpstreamResult{}, err
	}
	factory.Owner = owner
	step := types.TransformStep{
		Name:                 req.Transform,
		FromAttributes:       attributes,
		RequiresDependencies: req.RequiresDependencies,
	}
	deps := factory.DependenciesFor(ctx, component, step)

	collector := adapters.NewTaskGraphCollector()
	if err := collector.Collect(ctx, deps); err != nil {
		return UpstreamResult{}, err
	}
	var selectedFiles []string
	if req.ListSelected {
		selected, err := deps.SelectedArtifacts(ctx)
		if err != nil {
			return UpstreamResult{}, err
		}
		if selectedFiles, err = selected.Files(ctx); err != nil {
			return UpstreamResult{}, err
		}
	}
	if req.Finalize {
		deps.FinalizeIfNotAlready(ctx)
	}
	computed, err := deps.ComputeArtifacts(ctx).Get()
	if err != nil {
		return UpstreamResult{}, err
	}
	fingerprint, err := computed.Fingerprint(ctx, s.Fingerprinter)
	if err != nil {
		return UpstreamResult{}, err
	}

	result := UpstreamResult{
		Component:       component.String(),
		HasDependencies: deps.HasDependencies(),
		ProducerTasks:   collector.Tasks(),
		OwningProjects:  componentStrings(collector.OwningProjects()),
		SelectedFiles:   selectedFiles,
		Fingerprint:     fingerprint.Hash,
		OutputDir:       strings.TrimSpace(req.OutputDir),
	}
	if deps.HasDependencies() {
		resolver := factory.ResolverFor(ctx, component)
		buildIDs, err := resolver.BuildDependencyIDs(ctx)
		if err != nil {
			return UpstreamResult{}, err
		}
		artifactIDs, err := resolver.ArtifactDependencyIDs(ctx)
		if err != nil {
			return UpstreamResult{}, err
		}
		files, err := computed.Files()
		if err != nil {
			return UpstreamResult{}, err
		}
		paths, err := files.Files(ctx)
		if err != nil {
			return UpstreamResult{}, err
		}
		result.BuildDependencies = shared.SortedStrings(buildIDs)
		result.ArtifactDependencies = shared.SortedStrings(artifactIDs)
		result.Files = paths
	}

	if result.OutputDir != "" {
		report := types.UpstreamReport{
			Component:         result.Component,
			Transform:         step.Name,
			FromAttributes:    attributes.String(),
			BuildDependencies: result.BuildDependencies,
			ArtifactDeps:      result.ArtifactDependencies,
			ProducerTasks:     result.ProducerTasks,
			OwningProjects:    result.OwningProjects,
			Files:             result.Files,
			Fingerprint:       result.Fingerprint,
			GeneratedAt:       now(s.Clock).Format(time.RFC3339),
		}
		if err := s.Reports(result.OutputDir).WriteUpstreamReport(report); err != nil {
			return UpstreamResult{}, err
		}
	}

	log.Ctx(ctx).Info().
		Str("component", result.Component).
		Int("files", len(result.Files)).
		Int("producers", len(result.ProducerTasks)).
		Msg("upstream dependencies computed")
	return result, nil
}

func newResolverFactory(source ports.GraphSourcePort, policy policies.ComponentFilterPolicy) (*core.UpstreamResolverFactory, error) {
	artifacts, err := source.Artifacts()
	if err != nil {
		return nil, err
	}
	return core.NewUpstreamResolverFactory(
		source.PassProvider(types.PassKindGraph),
		source.PassProvider(types.PassKindArtifacts),
		policy.Matches,
		adapters.NewArtifactCatalogAdapter(artifacts),
	), nil
}

// parseOwner reads the optional owning project. Only projects carry state a
// scheduler has to lock, so modules are rejected.
func parseOwner(value string) (*types.ComponentID, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	owner, err := types.ParseComponentID(value)
	if err != nil {
		return nil, err
	}
	if owner.Kind != types.ComponentKindProject {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("owner must be a project, got %s", owner))
	}
	return &owner, nil
}

func componentStrings(ids []types.ComponentID) []string {
	var out []string
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}

func now(clock func() time.Time) time.Time {
	if clock != nil {
		return clock().UTC()
	}
	return time.Now().UTC()
}
