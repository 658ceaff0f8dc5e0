package core

import (
	"context"

	"transform-deps/internal/ports"
	"transform-deps/internal/types"
)

// TransformUpstreamDependencies gives one transform step access to the
// artifacts of its component's upstream dependencies.
//
// Callers check HasDependencies before asking for files: the value returned
// for steps that do not require dependencies answers SelectedArtifacts with
// ErrNoArtifactDependencies.
type TransformUpstreamDependencies interface {
	ports.TaskDependencyContainer
	HasDependencies() bool
	// SelectedArtifacts returns the matching upstream artifacts without
	// resolving them.
	SelectedArtifacts(ctx context.Context) (ports.FileCollection, error)
	// ComputeArtifacts resolves the artifacts once and returns the same
	// result on every call.
	ComputeArtifacts(ctx context.Context) Try[ArtifactTransformDependencies]
	// FinalizeIfNotAlready computes the artifacts now, outside of task
	// ordering. Producers must already have run.
	FinalizeIfNotAlready(ctx context.Context)
}

// NoDependencies is used for steps that do not require dependencies.
var NoDependencies TransformUpstreamDependencies = noDependencies{}

type noDependencies struct{}

func (noDependencies) HasDependencies() bool {
	return false
}

func (noDependencies) SelectedArtifacts(context.Context) (ports.FileCollection, error) {
	return nil, ErrNoArtifactDependencies
}

func (noDependencies) ComputeArtifacts(context.Context) Try[ArtifactTransformDependencies] {
	return Successful(NoArtifactDependencies)
}

func (noDependencies) VisitDependencies(context.Context, ports.TaskDependencyContext) error {
	return nil
}

func (noDependencies) FinalizeIfNotAlready(context.Context) {}

type upstreamDependencies struct {
	resolver *UpstreamResolver
	step     types.TransformStep
	value    *CalculatedValue[ArtifactTransformDependencies]
}

func newUpstreamDependencies(resolver *UpstreamResolver, step types.TransformStep) *upstreamDependencies {
	return &upstreamDependencies{
		resolver: resolver,
		step:     step,
		value: NewCalculatedValue[ArtifactTransformDependencies](
			"dependencies for "+step.String(),
			finalizeTransformDependencies{resolver: resolver, fromAttributes: step.FromAttributes},
		),
	}
}

func (d *upstreamDependencies) HasDependencies() bool {
	return true
}

func (d *upstreamDependencies) SelectedArtifacts(ctx context.Context) (ports.FileCollection, error) {
	return d.resolver.SelectedArtifactsFor(ctx, d.step.FromAttributes)
}

func (d *upstreamDependencies) ComputeArtifacts(ctx context.Context) Try[ArtifactTransformDependencies] {
	return d.value.Value(ctx)
}

// VisitDependencies declares the deferred value rather than the files, so the
// scheduler can order work around it without forcing it.
func (d *upstreamDependencies) VisitDependencies(_ context.Context, deps ports.TaskDependencyContext) error {
	deps.Add(d.value)
	return nil
}

func (d *upstreamDependencies) FinalizeIfNotAlready(ctx context.Context) {
	d.value.FinalizeIfNotAlready(ctx)
}

type finalizeTransformDependencies struct {
	resolver       *UpstreamResolver
	fromAttributes types.Attributes
}

func (f finalizeTransformDependencies) Calculate(ctx context.Context) (ArtifactTransformDependencies, error) {
	files, err := f.resolver.SelectedArtifactsFor(ctx, f.fromAttributes)
	if err != nil {
		return nil, err
	}
	// Resolve now so failures are reported through the calculated value.
	if _, err := files.Files(ctx); err != nil {
		return nil, err
	}
	return NewArtifactTransformDependencies(files), nil
}

func (f finalizeTransformDependencies) OwningProject() (types.ComponentID, bool) {
	return f.resolver.OwningProject()
}

func (f finalizeTransformDependencies) VisitDependencies(ctx context.Context, deps ports.TaskDependencyContext) error {
	return f.resolver.VisitBuildDependenciesFor(ctx, f.fromAttributes, deps)
}

var _ ports.ProjectStateUser = finalizeTransformDependencies{}
