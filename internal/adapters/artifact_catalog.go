package adapters

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"transform-deps/internal/ports"
	"transform-deps/internal/types"
)

// ArtifactCatalogAdapter renders file collections from a fixed catalog of
// component artifacts.
type ArtifactCatalogAdapter struct {
	Artifacts []types.Artifact
}

func NewArtifactCatalogAdapter(artifacts []types.Artifact) ArtifactCatalogAdapter {
	return ArtifactCatalogAdapter{Artifacts: artifacts}
}

func (a ArtifactCatalogAdapter) ResultsMatching(attributes types.Attributes, predicate func(types.ComponentID) bool) ports.FileCollection {
	return &filteredArtifacts{
		attributes: attributes,
		predicate:  predicate,
		artifacts:  a.Artifacts,
	}
}

type filteredArtifacts struct {
	attributes types.Attributes
	predicate  func(types.ComponentID) bool
	artifacts  []types.Artifact
}

func (f *filteredArtifacts) DisplayName() string {
	return "upstream artifacts matching " + f.attributes.String()
}

// Files resolves the collection. Any selected artifact that failed to resolve
// fails the whole collection.
func (f *filteredArtifacts) Files(_ context.Context) ([]string, error) {
	selected := f.selected()
	var failures []error
	files := make([]string, 0, len(selected))
	for _, artifact := range selected {
		if artifact.Failure != "" {
			failures = append(failures, fmt.Errorf("%s: %s", artifact.Component, artifact.Failure))
			continue
		}
		files = append(files, artifact.File)
	}
	if len(failures) > 0 {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("could not resolve all files for %s", f.DisplayName())).
			WithCause(errors.Join(failures...))
	}
	return files, nil
}

func (f *filteredArtifacts) VisitDependencies(_ context.Context, deps ports.TaskDependencyContext) error {
	for _, artifact := range f.selected() {
		if artifact.Producer != "" {
			deps.AddTask(artifact.Producer)
		}
	}
	return nil
}

func (f *filteredArtifacts) selected() []types.Artifact {
	var out []types.Artifact
	for _, artifact := range f.artifacts {
		if f.predicate != nil && !f.predicate(artifact.Component) {
			continue
		}
		if !artifact.Attributes.Matches(f.attributes) {
			continue
		}
		out = append(out, artifact)
	}
	sort.SliceStable(out, func(i, j int) bool {
		left, right := out[i].Component.String(), out[j].Component.String()
		if left != right {
			return left < right
		}
		return out[i].File < out[j].File
	})
	return out
}

var _ ports.FilteredResultFactory = ArtifactCatalogAdapter{}
