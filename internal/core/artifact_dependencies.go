package core

import (
	"context"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"transform-deps/internal/ports"
	"transform-deps/internal/types"
)

// ErrNoArtifactDependencies is returned when files are requested from a
// transform that declared it does not use its dependencies.
var ErrNoArtifactDependencies = errbuilder.New().
	WithCode(errbuilder.CodeFailedPrecondition).
	WithMsg("transform does not use artifact dependencies")

// ArtifactTransformDependencies is the finalized input a transform receives
// for its upstream dependencies.
type ArtifactTransformDependencies interface {
	Files() (ports.FileCollection, error)
	Fingerprint(ctx context.Context, fingerprinter ports.Fingerprinter) (types.Fingerprint, error)
}

// NoArtifactDependencies is the value computed for transforms without
// dependencies. It fingerprints as empty and has no files.
var NoArtifactDependencies ArtifactTransformDependencies = noArtifactDependencies{}

type noArtifactDependencies struct{}

func (noArtifactDependencies) Files() (ports.FileCollection, error) {
	return nil, ErrNoArtifactDependencies
}

func (noArtifactDependencies) Fingerprint(_ context.Context, fingerprinter ports.Fingerprinter) (types.Fingerprint, error) {
	return fingerprinter.Empty(), nil
}

type resolvedArtifactDependencies struct {
	files ports.FileCollection
}

func NewArtifactTransformDependencies(files ports.FileCollection) ArtifactTransformDependencies {
	return resolvedArtifactDependencies{files: files}
}

func (d resolvedArtifactDependencies) Files() (ports.FileCollection, error) {
	return d.files, nil
}

func (d resolvedArtifactDependencies) Fingerprint(ctx context.Context, fingerprinter ports.Fingerprinter) (types.Fingerprint, error) {
	return fingerprinter.Fingerprint(ctx, d.files)
}
